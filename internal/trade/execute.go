package trade

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/pmurley/ulb-trade-engine/internal/models"
)

// ErrNotAccepted is returned when asked to execute a proposal that was not
// accepted.
var ErrNotAccepted = errors.New("proposal has not been accepted")

// Execution is the outcome of committing a trade.
type Execution struct {
	Players map[string]models.Player
	Teams   map[string]models.Team
	Trade   models.CompletedTrade
	// Missing lists player IDs named in the proposal that were not in the
	// league. They are left out of the trade record.
	Missing []string
}

// Execute moves every asset in an accepted proposal to its new team. The
// league passed in is not modified; the new rosters are returned in the
// Execution and can be installed with League.Apply.
func Execute(p *Proposal, league *League) (*Execution, error) {
	if p.Status != StatusAccepted {
		return nil, ErrNotAccepted
	}

	players := make(map[string]models.Player, len(league.Players))
	for id, pl := range league.Players {
		players[id] = pl
	}

	var missing []string
	move := func(ids []string, to string) []string {
		var moved []string
		for _, id := range ids {
			pl, ok := players[id]
			if !ok {
				missing = append(missing, id)
				continue
			}
			pl.ULBTeam = to
			players[id] = pl
			moved = append(moved, id)
		}
		return moved
	}
	toReceiver := move(p.PlayersOffered, p.Receiver)
	toProposer := move(p.PlayersRequested, p.Proposer)

	teams := make(map[string]models.Team, len(league.Teams))
	for id, t := range league.Teams {
		teams[id] = t
	}
	picksToReceiver := transferPicks(teams, p.PicksOffered, p.Proposer, p.Receiver)
	picksToProposer := transferPicks(teams, p.PicksRequested, p.Receiver, p.Proposer)

	return &Execution{
		Players: players,
		Teams:   teams,
		Missing: missing,
		Trade: models.CompletedTrade{
			ID:          p.ID,
			Date:        league.Date,
			TeamA:       p.Proposer,
			TeamB:       p.Receiver,
			PlayersToA:  toProposer,
			PlayersToB:  toReceiver,
			PicksToA:    picksToProposer,
			PicksToB:    picksToReceiver,
			RetainedByA: decimal.NewFromInt(int64(p.SalaryRetained)),
			RetainedByB: decimal.Zero,
			Source:      models.SourceEngine,
		},
	}, nil
}

// transferPicks rewrites the pick lists of both teams. Only the two affected
// teams get new slices; the rest share storage with the old snapshot.
func transferPicks(teams map[string]models.Team, picks []models.DraftPick, from, to string) []models.DraftPick {
	if len(picks) == 0 {
		return nil
	}
	src, dst := teams[from], teams[to]

	moving := make(map[string]bool, len(picks))
	for _, pk := range picks {
		moving[pk.Key()] = true
	}

	kept := make([]models.DraftPick, 0, len(src.Picks))
	var moved []models.DraftPick
	for _, pk := range src.Picks {
		if moving[pk.Key()] {
			pk.Owner = to
			moved = append(moved, pk)
			continue
		}
		kept = append(kept, pk)
	}
	src.Picks = kept
	dst.Picks = append(append([]models.DraftPick(nil), dst.Picks...), moved...)

	teams[from] = src
	teams[to] = dst
	return moved
}
