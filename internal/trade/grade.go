package trade

import "github.com/pmurley/ulb-trade-engine/internal/models"

// Grade is the retrospective net value each side of a completed trade gained.
type Grade struct {
	TeamA float64
	TeamB float64
}

// GradeTrade values a completed trade against a league snapshot. Team A's net
// is what it received minus what it sent, adjusted for the salary each side
// kept paying. Team B's grade is always the negation of team A's.
func GradeTrade(t models.CompletedTrade, league *League, value MarketValueFunc) Grade {
	in := PackageValue(league, value, t.PlayersToA, t.PicksToA)
	out := PackageValue(league, value, t.PlayersToB, t.PicksToB)
	retainedA, _ := t.RetainedByA.Float64()
	retainedB, _ := t.RetainedByB.Float64()

	net := in - out - retainedA + retainedB
	return Grade{TeamA: net, TeamB: -net}
}
