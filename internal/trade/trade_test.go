package trade

import (
	"time"

	"github.com/pmurley/ulb-trade-engine/internal/models"
)

const testSeason = 2025

// scriptedRandom replays fixed draws. Bool(p) is true when the next draw is
// below p; exhausted draws behave like 1.0 so Bool is false.
type scriptedRandom struct {
	draws  []float64
	floats []float64
	picks  []int
}

func (s *scriptedRandom) Float(min, max float64) float64 {
	f := 0.5
	if len(s.floats) > 0 {
		f, s.floats = s.floats[0], s.floats[1:]
	}
	return min + f*(max-min)
}

func (s *scriptedRandom) Int(min, max int) int { return min }

func (s *scriptedRandom) Bool(p float64) bool {
	d := 1.0
	if len(s.draws) > 0 {
		d, s.draws = s.draws[0], s.draws[1:]
	}
	return d < p
}

func (s *scriptedRandom) Pick(n int) int {
	i := 0
	if len(s.picks) > 0 {
		i, s.picks = s.picks[0], s.picks[1:]
	}
	return i % n
}

// dollars values a player at one dollar per point so fixtures can state
// market values directly.
var dollars = PointsMarketValue(1)

func player(id, team, pos string, age int, value float64) models.Player {
	return models.Player{ID: id, Name: "Player " + id, ULBTeam: team, Position: pos, Age: age, Points: value, Status: "40-Man"}
}

func team(id string, p models.Personality, picks ...models.DraftPick) models.Team {
	return models.Team{ID: id, Personality: p, Picks: picks}
}

func pick(year, round int, original string) models.DraftPick {
	return models.DraftPick{Year: year, Round: round, OriginalTeam: original, Owner: original}
}

// scenarioLeague builds two teams: A holds an SP worth 500k and its 2026
// picks; B holds three SPs and an OF worth 750k.
func scenarioLeague(b models.Personality) *League {
	players := []models.Player{
		player("a-sp", "A", "SP", 27, 500000),
		player("b-sp1", "B", "SP", 28, 100000),
		player("b-sp2", "B", "SP", 29, 100000),
		player("b-sp3", "B", "SP", 30, 100000),
		player("b-of", "B", "OF", 26, 750000),
	}
	teams := []models.Team{
		team("A", models.Personality{}, models.DefaultPicks("A", 2026, 1, 3)...),
		team("B", b, models.DefaultPicks("B", 2026, 1, 3)...),
	}
	return NewLeague(testSeason, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), players, teams)
}

func scenarioProposal() *Proposal {
	return &Proposal{
		ID:               "p-1",
		Proposer:         "A",
		Receiver:         "B",
		PlayersOffered:   []string{"a-sp"},
		PlayersRequested: []string{"b-of"},
		PicksOffered:     []models.DraftPick{pick(2026, 2, "A")},
	}
}

// thresholdLeague lets a test pick exact offered and requested values. The
// offered player is an SP so the receiver, holding three SPs, has no need.
func thresholdLeague(offered, requested float64) *League {
	players := []models.Player{
		player("offer", "A", "SP", 27, offered),
		player("ask", "B", "C", 27, requested),
		player("b-sp1", "B", "SP", 27, 0),
		player("b-sp2", "B", "SP", 27, 0),
		player("b-sp3", "B", "SP", 27, 0),
	}
	teams := []models.Team{
		team("A", models.Personality{}, pick(2026, 1, "A")),
		team("B", models.Personality{}),
	}
	return NewLeague(testSeason, time.Time{}, players, teams)
}

func thresholdProposal() *Proposal {
	return &Proposal{
		ID:               "t-1",
		Proposer:         "A",
		Receiver:         "B",
		PlayersOffered:   []string{"offer"},
		PlayersRequested: []string{"ask"},
	}
}
