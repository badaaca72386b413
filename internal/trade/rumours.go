package trade

import "github.com/pmurley/ulb-trade-engine/internal/models"

// Rumour is a structured trade-interest item. Turning it into prose is left to
// whoever posts it.
type Rumour struct {
	Team     string
	Position string
	Partner  string
}

var rumourChance = map[models.TradeActivity]float64{
	models.ActivityActive:   0.75,
	models.ActivityModerate: 0.5,
	models.ActivityPassive:  0.25,
}

// Rumours names teams shopping for help at a position of need and a team with
// depth to spare there. At most limit rumours are returned; limit <= 0 means
// no cap. Nothing is generated when trade requests are disabled.
func Rumours(league *League, opts Options, rng Random, limit int) []Rumour {
	if !opts.TradeRequestsEnabled {
		return nil
	}

	depth := make(map[string]map[string]int, len(league.Teams))
	ids := league.TeamIDs()
	for _, id := range ids {
		depth[id] = DepthChart(league, id)
	}

	var rumours []Rumour
	for _, id := range ids {
		if limit > 0 && len(rumours) >= limit {
			break
		}
		needs := PositionalNeeds(league, id)
		if len(needs) == 0 {
			continue
		}
		if !rng.Bool(rumourChance[league.Teams[id].Personality.Activity]) {
			continue
		}
		pos := needs[rng.Pick(len(needs))]
		for _, other := range ids {
			if other != id && depth[other][pos] > MinimumDepth {
				rumours = append(rumours, Rumour{Team: id, Position: pos, Partner: other})
				break
			}
		}
	}
	return rumours
}
