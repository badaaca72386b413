package trade

import (
	"fmt"

	"github.com/pmurley/ulb-trade-engine/internal/models"
)

// Validation is the outcome of the structural check on a proposal.
type Validation struct {
	Valid  bool
	Errors []string
}

// Validate checks that a proposal is well formed and that every asset is held
// by the side giving it up. All problems are reported, not just the first.
func Validate(p *Proposal, league *League) Validation {
	var errs []string

	if p.OfferedCount() == 0 {
		errs = append(errs, "proposal offers nothing")
	}
	if p.RequestedCount() == 0 {
		errs = append(errs, "proposal requests nothing")
	}

	proposer, proposerOK := league.Teams[p.Proposer]
	if !proposerOK {
		errs = append(errs, fmt.Sprintf("unknown proposing team %q", p.Proposer))
	}
	receiver, receiverOK := league.Teams[p.Receiver]
	if !receiverOK {
		errs = append(errs, fmt.Sprintf("unknown receiving team %q", p.Receiver))
	}
	if p.Proposer == p.Receiver {
		errs = append(errs, "a team cannot trade with itself")
	}

	for _, id := range p.PlayersOffered {
		pl, ok := league.Players[id]
		switch {
		case !ok:
			errs = append(errs, fmt.Sprintf("offered player %s does not exist", id))
		case pl.ULBTeam != p.Proposer:
			errs = append(errs, fmt.Sprintf("offered player %s is not on %s", pl.Name, p.Proposer))
		}
	}
	for _, id := range p.PlayersRequested {
		pl, ok := league.Players[id]
		switch {
		case !ok:
			errs = append(errs, fmt.Sprintf("requested player %s does not exist", id))
		case pl.ULBTeam != p.Receiver:
			errs = append(errs, fmt.Sprintf("requested player %s is not on %s", pl.Name, p.Receiver))
		}
	}

	for _, pk := range p.PicksOffered {
		errs = append(errs, checkPick("offered", pk, p.Proposer, proposer)...)
	}
	for _, pk := range p.PicksRequested {
		errs = append(errs, checkPick("requested", pk, p.Receiver, receiver)...)
	}

	players := append(append([]string{}, p.PlayersOffered...), p.PlayersRequested...)
	for _, id := range duplicates(players) {
		errs = append(errs, fmt.Sprintf("player %s appears more than once", id))
	}
	var picks []string
	for _, pk := range p.PicksOffered {
		picks = append(picks, pk.Key())
	}
	for _, pk := range p.PicksRequested {
		picks = append(picks, pk.Key())
	}
	for _, key := range duplicates(picks) {
		errs = append(errs, fmt.Sprintf("pick %s appears more than once", key))
	}

	if p.SalaryRetained < 0 {
		errs = append(errs, "salary retained cannot be negative")
	}

	return Validation{Valid: len(errs) == 0, Errors: errs}
}

// checkPick requires the pick to be held by team exactly as the league records
// it, slot number included.
func checkPick(side string, pk models.DraftPick, teamID string, team models.Team) []string {
	if pk.Round < 1 {
		return []string{fmt.Sprintf("%s pick %s has no valid round", side, pk.Key())}
	}
	held, ok := team.HeldPick(pk)
	if !ok {
		return []string{fmt.Sprintf("%s pick %s is not owned by %s", side, pk.Key(), teamID)}
	}
	if held.Number != pk.Number {
		return []string{fmt.Sprintf("%s pick %s has number %d, the league has %d", side, pk.Key(), pk.Number, held.Number)}
	}
	return nil
}

// duplicates lists each key that occurs more than once, in first-seen order.
func duplicates(keys []string) []string {
	seen := make(map[string]int, len(keys))
	var dups []string
	for _, k := range keys {
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, k)
		}
	}
	return dups
}
