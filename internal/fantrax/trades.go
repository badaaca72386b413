package fantrax

import (
	"sort"

	fmodels "github.com/pmurley/go-fantrax/models"
	"github.com/shopspring/decimal"

	"github.com/pmurley/ulb-trade-engine/internal/models"
)

const (
	tradeType     = "TRADE"
	tradeIDPrefix = "fantrax-"
)

// TradeID is the history ID used for a Fantrax trade group.
func TradeID(tradeGroupID string) string {
	return tradeIDPrefix + tradeGroupID
}

// GroupTransactionsByTradeGroup groups trade transactions by their TradeGroupID
func GroupTransactionsByTradeGroup(transactions []fmodels.Transaction) map[string][]fmodels.Transaction {
	groups := make(map[string][]fmodels.Transaction)
	for _, tx := range transactions {
		if tx.Type == tradeType && tx.TradeGroupID != "" {
			groups[tx.TradeGroupID] = append(groups[tx.TradeGroupID], tx)
		}
	}
	return groups
}

// TradesFromTransactions turns Fantrax trade groups into completed trades.
// Team A is the team sending the first player in the group. Groups that move
// players between more than two teams are returned separately as skipped
// group IDs since a completed trade has exactly two sides.
func TradesFromTransactions(transactions []fmodels.Transaction) (trades []models.CompletedTrade, skipped []string) {
	groups := GroupTransactionsByTradeGroup(transactions)

	groupIDs := make([]string, 0, len(groups))
	for id := range groups {
		groupIDs = append(groupIDs, id)
	}
	sort.Strings(groupIDs)

	for _, id := range groupIDs {
		t, ok := tradeFromGroup(id, groups[id])
		if !ok {
			skipped = append(skipped, id)
			continue
		}
		trades = append(trades, t)
	}

	sort.SliceStable(trades, func(i, j int) bool {
		if !trades[i].Date.Equal(trades[j].Date) {
			return trades[i].Date.Before(trades[j].Date)
		}
		return trades[i].ID < trades[j].ID
	})
	return trades, skipped
}

func tradeFromGroup(groupID string, group []fmodels.Transaction) (models.CompletedTrade, bool) {
	first := group[0]
	t := models.CompletedTrade{
		ID:          TradeID(groupID),
		Date:        first.ProcessedDate,
		TeamA:       first.FromTeamName,
		TeamB:       first.ToTeamName,
		RetainedByA: decimal.Zero,
		RetainedByB: decimal.Zero,
		Source:      models.SourceFantrax,
	}
	if t.TeamA == "" || t.TeamB == "" || t.TeamA == t.TeamB {
		return t, false
	}

	for _, tx := range group {
		if tx.ProcessedDate.Before(t.Date) {
			t.Date = tx.ProcessedDate
		}
		id := models.PlayerID(tx.PlayerName, tx.PlayerTeam)
		switch {
		case tx.FromTeamName == t.TeamA && tx.ToTeamName == t.TeamB:
			t.PlayersToB = append(t.PlayersToB, id)
		case tx.FromTeamName == t.TeamB && tx.ToTeamName == t.TeamA:
			t.PlayersToA = append(t.PlayersToA, id)
		default:
			return t, false
		}
	}
	return t, true
}
