package storage

import (
	"sort"

	"github.com/pmurley/ulb-trade-engine/internal/models"
)

// SortTrades orders trades by date, then ID.
func SortTrades(trades []*models.CompletedTrade) {
	sort.SliceStable(trades, func(i, j int) bool {
		if !trades[i].Date.Equal(trades[j].Date) {
			return trades[i].Date.Before(trades[j].Date)
		}
		return trades[i].ID < trades[j].ID
	})
}

// FilterByTeam keeps the trades a team took part in.
func FilterByTeam(trades []*models.CompletedTrade, teamID string) []*models.CompletedTrade {
	var out []*models.CompletedTrade
	for _, t := range trades {
		if t.Involves(teamID) {
			out = append(out, t)
		}
	}
	return out
}
