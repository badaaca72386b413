package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sheetRow(team, name, pos, mlb, age, points, status string, contract ...string) []string {
	row := make([]string, 28)
	row[1] = team
	row[3] = name
	row[5] = pos
	row[6] = mlb
	row[7] = age
	row[8] = points
	row[11] = status
	for i, c := range contract {
		row[12+i] = c
	}
	return row
}

func TestParsePlayerRow(t *testing.T) {
	header := make([]string, 28)
	header[12] = "2026"
	header[13] = "2027"
	header[14] = "2028"

	row := sheetRow("Kansas City Monarchs", "Bobby Witt Jr.", "SS,3B", "KC", "25", "612.5", "40-Man",
		"$20,000,000", "$22,000,000", "FREE AGENT")

	p, err := ParsePlayerRow(row, header)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, "Kansas City Monarchs", p.ULBTeam)
	assert.Equal(t, "Bobby Witt Jr.", p.Name)
	assert.Equal(t, 25, p.Age)
	assert.InDelta(t, 612.5, p.Points, 0.001)
	assert.Equal(t, PlayerID("Bobby Witt Jr.", "KC"), p.ID)
	assert.Equal(t, "SS", p.PrimaryPosition())

	salary, ok := p.GetSalary(2026)
	require.True(t, ok)
	assert.Equal(t, 20000000, salary)
	assert.True(t, p.IsFreeAgent(2028))
}

func TestParsePlayerRowSkipsShortAndNameless(t *testing.T) {
	p, err := ParsePlayerRow([]string{"", "team"}, nil)
	assert.NoError(t, err)
	assert.Nil(t, p)

	p, err = ParsePlayerRow(make([]string, 28), nil)
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestParsePlayerRowDefaultsContractYears(t *testing.T) {
	row := sheetRow("Team", "Someone", "C", "NYY", "30", "100", "40-Man", "$1,000,000")
	p, err := ParsePlayerRow(row, nil)
	require.NoError(t, err)

	_, ok := p.GetSalary(defaultContractStartYear)
	assert.True(t, ok)
}

func TestPlayerIDIsStable(t *testing.T) {
	assert.Equal(t, PlayerID("Juan Soto", "nym"), PlayerID(" juan soto ", "NYM"))
	assert.NotEqual(t, PlayerID("Juan Soto", "NYM"), PlayerID("Juan Soto", "NYY"))
	assert.Len(t, PlayerID("x", "y"), 16)
}

func TestContractHelpers(t *testing.T) {
	p := Player{Contract: map[int]string{
		2025: "$10,000,000",
		2026: "$20,000,000",
		2027: "$30,000,000",
		2028: "FREE AGENT",
	}}

	assert.Equal(t, 3, p.YearsRemaining(2025))
	assert.Equal(t, 20000000, p.AnnualValue(2025))
	assert.Equal(t, 2, p.YearsRemaining(2026))
	assert.Equal(t, 25000000, p.AnnualValue(2026))
	assert.Equal(t, 0, p.YearsRemaining(2028))
	assert.Equal(t, 0, p.AnnualValue(2028))
}

func TestFlatContract(t *testing.T) {
	p := Player{Contract: FlatContract(2025, 4, 5000000)}
	assert.Equal(t, 4, p.YearsRemaining(2025))
	assert.Equal(t, 5000000, p.AnnualValue(2025))
	assert.True(t, p.IsFreeAgent(2029))
}

func TestPrimaryPositionAndDevelopment(t *testing.T) {
	tests := []struct {
		position string
		want     string
	}{
		{"CF,RF", "OF"},
		{"lf", "OF"},
		{"SP", "SP"},
		{" 1b , DH", "1B"},
		{"", ""},
	}
	for _, tt := range tests {
		p := Player{Position: tt.position}
		assert.Equal(t, tt.want, p.PrimaryPosition(), tt.position)
	}

	assert.True(t, (&Player{Status: "minors"}).IsDevelopment())
	assert.False(t, (&Player{Status: "40-Man"}).IsDevelopment())
}

func TestPlayerListHelpers(t *testing.T) {
	list := PlayerList{
		{ID: "b", Name: "Aaron Judge", ULBTeam: "Yankees", Position: "RF", Points: 700, Contract: FlatContract(2025, 1, 40000000)},
		{ID: "a", Name: "Juan Soto", ULBTeam: "Mets", Position: "LF", Points: 650, Contract: FlatContract(2025, 1, 50000000)},
		{ID: "c", Name: "Austin Wells", ULBTeam: "yankees", Position: "C", Points: 200},
	}

	assert.Len(t, list.FilterByTeam("YANKEES"), 2)
	assert.Len(t, list.SearchByName("ju"), 2)
	assert.Len(t, list.FindByExactName("juan soto"), 1)
	assert.Equal(t, 40000000, list.GetTeamPayroll("Yankees", 2025))
	assert.Equal(t, map[string]int{"OF": 2, "C": 1}, list.CountByPrimaryPosition())

	sorted := PlayerListFromMap(list.ByID())
	assert.Equal(t, "a", sorted[0].ID)
	assert.Equal(t, "c", sorted[2].ID)

	sorted.SortByPoints()
	assert.Equal(t, "Aaron Judge", sorted[0].Name)
}

func TestTradedPlayerRetention(t *testing.T) {
	tp := TradedPlayer{
		Player:           Player{Contract: FlatContract(2025, 2, 10000000)},
		RetentionPercent: 25,
	}
	assert.Equal(t, 2500000, tp.GetRetainedSalary(2025))
	assert.Equal(t, 0, tp.GetRetainedSalary(2030))
}

func TestPersonalityYAML(t *testing.T) {
	var team Team
	doc := `
name: Havana Bananas
owners: [bmoney831]
personality:
  window: win-now
  risk: aggressive
  activity: passive
  draft: high_upside
picks:
  - {year: 2026, round: 1, original: Havana Bananas}
`
	require.NoError(t, yaml.Unmarshal([]byte(doc), &team))
	assert.Equal(t, WindowWinNow, team.Personality.Window)
	assert.Equal(t, RiskAggressive, team.Personality.Risk)
	assert.Equal(t, ActivityPassive, team.Personality.Activity)
	assert.Equal(t, DraftHighUpside, team.Personality.Draft)
	assert.Equal(t, "win-now/aggressive/passive", team.Personality.String())
	require.Len(t, team.Picks, 1)
	assert.Equal(t, "2026-R1-Havana Bananas", team.Picks[0].Key())

	var bad Team
	err := yaml.Unmarshal([]byte("personality: {window: sideways}"), &bad)
	assert.Error(t, err)
}

func TestTeamPickLookups(t *testing.T) {
	team := Team{ID: "A", Owners: []string{"Owner1"}}
	team.Picks = append(team.Picks, DraftPick{Year: 2026, Round: 1, OriginalTeam: "B", Owner: "A"})
	team.Picks = append(team.Picks, DefaultPicks("A", 2026, 1, 2)...)

	p, ok := team.FindPick(2026, 1)
	require.True(t, ok)
	assert.Equal(t, "A", p.OriginalTeam)

	_, ok = team.FindPick(2030, 1)
	assert.False(t, ok)

	assert.True(t, team.OwnsPick(DraftPick{Year: 2026, Round: 1, OriginalTeam: "B"}))
	assert.False(t, team.OwnsPick(DraftPick{Year: 2026, Round: 3, OriginalTeam: "A"}))
	assert.True(t, team.IsOwner("owner1"))

	team.Picks[0].Number = 7
	held, ok := team.HeldPick(DraftPick{Year: 2026, Round: 1, OriginalTeam: "B"})
	require.True(t, ok)
	assert.Equal(t, 7, held.Number)

	// lookups work on map elements, as leagues store teams by value
	teams := map[string]Team{"A": team}
	assert.True(t, teams["A"].OwnsPick(DraftPick{Year: 2026, Round: 2, OriginalTeam: "A"}))
	_, ok = teams["A"].FindPick(2026, 2)
	assert.True(t, ok)

	assert.Len(t, TeamsForOwner([]Team{team, {ID: "C"}}, "Owner1"), 1)

	assert.Equal(t, "2026 Round 1 #4 (via B)", DraftPick{Year: 2026, Round: 1, Number: 4, OriginalTeam: "B", Owner: "A"}.String())
}
