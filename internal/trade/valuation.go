package trade

import (
	"math"

	"github.com/pmurley/ulb-trade-engine/internal/models"
)

// MarketValueFunc prices a player in dollars. It must be non-negative and must
// not decrease as player quality rises.
type MarketValueFunc func(p models.Player) float64

// DefaultPointRate is the dollar value of one fantasy point.
const DefaultPointRate = 25000.0

// PointsMarketValue values a player by prior-season fantasy points.
func PointsMarketValue(rate float64) MarketValueFunc {
	return func(p models.Player) float64 {
		return math.Max(0, p.Points) * rate
	}
}

const (
	picksPerRound     = 18
	placeholderPick   = 9
	futurePickPercent = 0.8
)

type pickScale struct {
	ceiling float64
	floor   float64
}

var pickScales = []pickScale{
	{ceiling: 1560000, floor: 540000},
	{ceiling: 510000, floor: 170000},
	{ceiling: 160000, floor: 24000}, // every round after the second
}

// PickValue prices a draft pick. Picks with no known number are valued at the
// middle of their round, and picks in later drafts than season are discounted
// once regardless of how far out they are.
func PickValue(pick models.DraftPick, season int) float64 {
	scale := pickScales[len(pickScales)-1]
	if pick.Round >= 1 && pick.Round <= len(pickScales) {
		scale = pickScales[pick.Round-1]
	}

	number := pick.Number
	if number == 0 {
		number = placeholderPick
	}
	number = max(1, min(picksPerRound, number))

	step := (scale.ceiling - scale.floor) / float64(picksPerRound-1)
	value := scale.ceiling - float64(number-1)*step
	if pick.Year > season {
		value *= futurePickPercent
	}
	return value
}

// PackageValue sums the value of a set of players and picks. Unknown player
// IDs contribute nothing.
func PackageValue(league *League, value MarketValueFunc, players []string, picks []models.DraftPick) float64 {
	total := 0.0
	for _, id := range players {
		if p, ok := league.Players[id]; ok {
			total += value(p)
		}
	}
	for _, pk := range picks {
		total += PickValue(pk, league.Season)
	}
	return total
}
