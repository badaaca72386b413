package trade

import (
	"sort"
	"time"

	"github.com/pmurley/ulb-trade-engine/internal/models"
)

// League is an immutable snapshot of every player and team. Functions in this
// package never modify a League; the executor builds a new one.
type League struct {
	Season  int
	Date    time.Time // current in-game date
	Players map[string]models.Player
	Teams   map[string]models.Team
}

// NewLeague indexes players by ID and teams by ID. Picks listed without an
// owner are assigned to the team that lists them.
func NewLeague(season int, date time.Time, players []models.Player, teams []models.Team) *League {
	l := &League{
		Season:  season,
		Date:    date,
		Players: make(map[string]models.Player, len(players)),
		Teams:   make(map[string]models.Team, len(teams)),
	}
	for _, p := range players {
		l.Players[p.ID] = p
	}
	for _, t := range teams {
		picks := make([]models.DraftPick, len(t.Picks))
		for i, pk := range t.Picks {
			pk.Owner = t.ID
			if pk.OriginalTeam == "" {
				pk.OriginalTeam = t.ID
			}
			picks[i] = pk
		}
		t.Picks = picks
		l.Teams[t.ID] = t
	}
	return l
}

// Roster returns the players owned by a team, ordered by ID.
func (l *League) Roster(teamID string) models.PlayerList {
	var roster models.PlayerList
	for _, p := range l.Players {
		if p.ULBTeam == teamID {
			roster = append(roster, p)
		}
	}
	sort.Slice(roster, func(i, j int) bool {
		return roster[i].ID < roster[j].ID
	})
	return roster
}

// TeamIDs returns every team ID in sorted order.
func (l *League) TeamIDs() []string {
	ids := make([]string, 0, len(l.Teams))
	for id := range l.Teams {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TeamList returns every team in ID order.
func (l *League) TeamList() []models.Team {
	teams := make([]models.Team, 0, len(l.Teams))
	for _, id := range l.TeamIDs() {
		teams = append(teams, l.Teams[id])
	}
	return teams
}

// Apply returns the league that results from an execution. The receiver is
// left untouched.
func (l *League) Apply(e *Execution) *League {
	return &League{
		Season:  l.Season,
		Date:    l.Date,
		Players: e.Players,
		Teams:   e.Teams,
	}
}
