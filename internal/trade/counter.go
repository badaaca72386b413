package trade

import (
	"github.com/google/uuid"

	"github.com/pmurley/ulb-trade-engine/internal/models"
)

// counterNamespace seeds deterministic counter-offer IDs.
var counterNamespace = uuid.MustParse("6f1c2a7e-5d0b-4f43-9a55-3c1e8b7d2f10")

// CounterID derives the ID of the counter to a proposal.
func CounterID(parentID string) string {
	return uuid.NewSHA1(counterNamespace, []byte(parentID+":counter")).String()
}

// Counter builds the receiver's counter-offer: the sides are swapped, no salary
// is retained, and the cheapest pick the original proposer still holds outside
// the deal is added to the ask. Callers bound how many rounds they allow.
func Counter(p *Proposal, league *League) *Proposal {
	c := &Proposal{
		ID:               CounterID(p.ID),
		Proposer:         p.Receiver,
		Receiver:         p.Proposer,
		PlayersOffered:   append([]string(nil), p.PlayersRequested...),
		PlayersRequested: append([]string(nil), p.PlayersOffered...),
		PicksOffered:     append([]models.DraftPick(nil), p.PicksRequested...),
		PicksRequested:   append([]models.DraftPick(nil), p.PicksOffered...),
		Status:           StatusPending,
	}

	if extra, ok := cheapestPick(league, p.Proposer, p); ok {
		c.PicksRequested = append(c.PicksRequested, extra)
		c.Message = "Add " + extra.String() + " and we have a deal."
	} else {
		c.Message = "We would do it the other way around."
	}
	return c
}

// cheapestPick finds the lowest-valued pick a team holds that is not already
// part of the proposal. Ties go to the pick listed first.
func cheapestPick(league *League, teamID string, p *Proposal) (models.DraftPick, bool) {
	team, ok := league.Teams[teamID]
	if !ok {
		return models.DraftPick{}, false
	}
	var best models.DraftPick
	bestValue := 0.0
	found := false
	for _, pk := range team.Picks {
		if p.includesPick(pk) {
			continue
		}
		v := PickValue(pk, league.Season)
		if !found || v < bestValue {
			best, bestValue, found = pk, v, true
		}
	}
	return best, found
}
