package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradedPlayer represents a player in a trade with potential salary retention
type TradedPlayer struct {
	Player           Player
	RetentionPercent float64 // 0-100, where 50 = 50% retention
}

// GetRetainedSalary calculates how much salary is retained for a given year
func (tp *TradedPlayer) GetRetainedSalary(year int) int {
	if tp.RetentionPercent == 0 {
		return 0
	}

	salary, ok := tp.Player.GetSalary(year)
	if !ok {
		return 0
	}

	return int(float64(salary) * tp.RetentionPercent / 100.0)
}

// Trade sources
const (
	SourceEngine  = "engine"
	SourceFantrax = "fantrax"
)

// CompletedTrade is the historical record of an executed trade. Team A is the
// side that made the accepted proposal. Records are never modified once
// written.
type CompletedTrade struct {
	ID          string
	Date        time.Time
	TeamA       string
	TeamB       string
	PlayersToA  []string // player IDs arriving at team A
	PlayersToB  []string // player IDs arriving at team B
	PicksToA    []DraftPick
	PicksToB    []DraftPick
	RetainedByA decimal.Decimal
	RetainedByB decimal.Decimal
	Source      string
}

// Involves reports whether the team was a party to the trade.
func (ct *CompletedTrade) Involves(teamID string) bool {
	return ct.TeamA == teamID || ct.TeamB == teamID
}
