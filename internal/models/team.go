package models

import (
	"fmt"
	"strings"
)

// Team is a franchise in the league. ID is the team name as it appears in the
// ULB Team column of the player pool.
type Team struct {
	ID          string      `yaml:"name"`
	Owners      []string    `yaml:"owners"` // Discord usernames, all considered equal
	Personality Personality `yaml:"personality"`
	Picks       []DraftPick `yaml:"picks"`
}

// IsOwner checks if a Discord username is an owner of the team
func (t Team) IsOwner(discordUser string) bool {
	for _, owner := range t.Owners {
		if strings.EqualFold(owner, discordUser) {
			return true
		}
	}
	return false
}

// OwnsPick reports whether the team currently holds the pick.
func (t Team) OwnsPick(pick DraftPick) bool {
	_, ok := t.HeldPick(pick)
	return ok
}

// HeldPick returns the team's own record of a pick, matched by Key.
func (t Team) HeldPick(pick DraftPick) (DraftPick, bool) {
	for _, p := range t.Picks {
		if p.Key() == pick.Key() {
			return p, true
		}
	}
	return DraftPick{}, false
}

// FindPick looks up a held pick by year and round, preferring the team's own
// selection over acquired ones.
func (t Team) FindPick(year, round int) (DraftPick, bool) {
	var found DraftPick
	ok := false
	for _, p := range t.Picks {
		if p.Year != year || p.Round != round {
			continue
		}
		if p.OriginalTeam == t.ID {
			return p, true
		}
		if !ok {
			found, ok = p, true
		}
	}
	return found, ok
}

// DraftPick is a selection in a future or current draft. Number is the pick
// position within the round once the draft order is known, 0 before that.
type DraftPick struct {
	Year         int    `yaml:"year"`
	Round        int    `yaml:"round"`
	OriginalTeam string `yaml:"original"`
	Owner        string `yaml:"owner,omitempty"`
	Number       int    `yaml:"number,omitempty"`
}

// Key identifies a pick independent of who holds it.
func (p DraftPick) Key() string {
	return fmt.Sprintf("%d-R%d-%s", p.Year, p.Round, p.OriginalTeam)
}

func (p DraftPick) String() string {
	s := fmt.Sprintf("%d Round %d", p.Year, p.Round)
	if p.Number > 0 {
		s += fmt.Sprintf(" #%d", p.Number)
	}
	if p.Owner != "" && p.OriginalTeam != p.Owner {
		s += fmt.Sprintf(" (via %s)", p.OriginalTeam)
	}
	return s
}

// DefaultPicks gives a team its own selections for the given number of
// upcoming drafts and rounds.
func DefaultPicks(teamID string, season, years, rounds int) []DraftPick {
	picks := make([]DraftPick, 0, years*rounds)
	for y := 0; y < years; y++ {
		for r := 1; r <= rounds; r++ {
			picks = append(picks, DraftPick{
				Year:         season + y,
				Round:        r,
				OriginalTeam: teamID,
				Owner:        teamID,
			})
		}
	}
	return picks
}

// TeamsForOwner returns all teams owned by a Discord user, in catalogue order
func TeamsForOwner(teams []Team, discordUser string) []Team {
	var owned []Team
	for _, t := range teams {
		if t.IsOwner(discordUser) {
			owned = append(owned, t)
		}
	}
	return owned
}
