package discord

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmurley/ulb-trade-engine/internal/models"
	"github.com/pmurley/ulb-trade-engine/internal/negotiation"
	"github.com/pmurley/ulb-trade-engine/internal/trade"
)

const (
	havana  = "Havana Bananas"
	seattle = "Seattle Weiners"
	monarch = "Kansas City Monarchs"
)

func rosterPlayer(id, name, team, pos string, age int, points float64) models.Player {
	return models.Player{
		ID:       id,
		Name:     name,
		ULBTeam:  team,
		Position: pos,
		MLBTeam:  "MLB",
		Age:      age,
		Points:   points,
		Status:   "40-Man",
		Contract: models.FlatContract(2025, 3, 20000000),
	}
}

func testLeague() *trade.League {
	players := []models.Player{
		rosterPlayer("soto", "Juan Soto", havana, "LF", 26, 650),
		rosterPlayer("alonso", "Pete Alonso", havana, "1B", 30, 480),
		rosterPlayer("witt", "Bobby Witt Jr.", seattle, "SS", 25, 612),
		rosterPlayer("smith-c", "Will Smith", seattle, "C", 30, 300),
		rosterPlayer("smith-rp", "Will Smith", seattle, "RP", 35, 90),
		rosterPlayer("prospect", "Jackson Holliday", seattle, "2B", 21, 40),
	}
	teams := []models.Team{
		{ID: havana, Owners: []string{"bmoney831"}, Picks: models.DefaultPicks(havana, 2026, 2, 3)},
		{ID: seattle, Picks: models.DefaultPicks(seattle, 2026, 2, 3)},
		{ID: monarch, Owners: []string{"bmoney831", "slightlyjason"}, Picks: models.DefaultPicks(monarch, 2026, 2, 3)},
	}
	return trade.NewLeague(2025, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), players, teams)
}

func TestParseProposal(t *testing.T) {
	req, err := parseProposal(strings.Fields("--as=Havana Seattle Weiners: Juan Soto (retain 25%), 2026 R2 for Bobby Witt Jr."))
	require.NoError(t, err)

	assert.Equal(t, "Havana", req.As)
	assert.Equal(t, seattle, req.Receiver)
	assert.Equal(t, []AssetSpec{
		{Name: "Juan Soto", RetentionPercent: 25},
		{PickYear: 2026, PickRound: 2},
	}, req.Offered)
	assert.Equal(t, []AssetSpec{{Name: "Bobby Witt Jr."}}, req.Requested)
}

func TestParseProposalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no team", "Soto for Witt"},
		{"empty team", ": Soto for Witt"},
		{"no for", "Seattle: Soto"},
		{"two fors", "Seattle: Soto for Witt for Alonso"},
		{"cash", "Seattle: cash ($5M) for Witt"},
		{"retention too high", "Seattle: Soto (retain 150%) for Witt"},
		{"retention unreadable", "Seattle: Soto (retain lots) for Witt"},
		{"retention without name", "Seattle: (retain 10%) for Witt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseProposal(strings.Fields(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParseAssetListPickForms(t *testing.T) {
	assets, err := parseAssetList("2026 R1, 2027 round 3,2028 Rd2")
	require.NoError(t, err)
	assert.Equal(t, []AssetSpec{
		{PickYear: 2026, PickRound: 1},
		{PickYear: 2027, PickRound: 3},
		{PickYear: 2028, PickRound: 2},
	}, assets)

	for _, a := range assets {
		assert.True(t, a.IsPick())
	}
	assert.False(t, AssetSpec{Name: "Soto"}.IsPick())
}

func TestResolveProposer(t *testing.T) {
	league := testLeague()

	team, err := resolveProposer(league, "SlightlyJason", "")
	require.NoError(t, err)
	assert.Equal(t, monarch, team.ID)

	_, err = resolveProposer(league, "bmoney831", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--as")

	team, err = resolveProposer(league, "bmoney831", "havana")
	require.NoError(t, err)
	assert.Equal(t, havana, team.ID)

	_, err = resolveProposer(league, "bmoney831", "seattle")
	assert.Error(t, err)

	_, err = resolveProposer(league, "stranger", "")
	assert.Error(t, err)
}

func TestResolveTeam(t *testing.T) {
	league := testLeague()

	team, _, ok := resolveTeam(league, "seattle weiners")
	require.True(t, ok)
	assert.Equal(t, seattle, team.ID)

	team, _, ok = resolveTeam(league, "Monarchs")
	require.True(t, ok)
	assert.Equal(t, monarch, team.ID)

	_, suggestions, ok := resolveTeam(league, "a")
	assert.False(t, ok)
	assert.Len(t, suggestions, 3)

	_, suggestions, ok = resolveTeam(league, "Yankees")
	assert.False(t, ok)
	assert.Empty(t, suggestions)
}

func TestBuildProposal(t *testing.T) {
	league := testLeague()
	req, err := parseProposal(strings.Fields("Seattle: Soto (retain 25%), 2026 R2 for Bobby Witt Jr."))
	require.NoError(t, err)

	p, problems := buildProposal(league, havana, seattle, req)
	require.Empty(t, problems)

	assert.Equal(t, havana, p.Proposer)
	assert.Equal(t, seattle, p.Receiver)
	assert.Equal(t, []string{"soto"}, p.PlayersOffered)
	assert.Equal(t, []string{"witt"}, p.PlayersRequested)
	require.Len(t, p.PicksOffered, 1)
	assert.Equal(t, "2026-R2-"+havana, p.PicksOffered[0].Key())
	assert.Equal(t, 5000000, p.SalaryRetained)
	assert.Equal(t, trade.StatusPending, p.Status)

	assert.True(t, trade.Validate(p, league).Valid)
}

func TestBuildProposalProblems(t *testing.T) {
	league := testLeague()
	req := &ProposalRequest{
		Offered: []AssetSpec{
			{Name: "Bobby Witt"},
			{PickYear: 2030, PickRound: 1},
		},
		Requested: []AssetSpec{
			{Name: "Will Smith"},
			{Name: "Holliday", RetentionPercent: 10},
		},
	}

	p, problems := buildProposal(league, havana, seattle, req)
	assert.Nil(t, p)
	require.Len(t, problems, 4)
	assert.Contains(t, problems[0], "is not on "+havana)
	assert.Contains(t, problems[1], "does not hold a 2030 Round 1 pick")
	assert.Contains(t, problems[2], "found 2 players")
	assert.Contains(t, problems[3], "retained")
}

func TestFindRosterPlayerPartialMatch(t *testing.T) {
	roster := testLeague().Roster(seattle)

	p, err := findRosterPlayer(roster, seattle, "holliday")
	require.NoError(t, err)
	assert.Equal(t, "prospect", p.ID)
}

func TestRepeatedAssetsFailValidation(t *testing.T) {
	league := testLeague()
	req, err := parseProposal(strings.Fields("Seattle: Soto, Soto, 2026 R2, 2026 R2 for Witt"))
	require.NoError(t, err)

	p, problems := buildProposal(league, havana, seattle, req)
	require.Empty(t, problems)

	v := trade.Validate(p, league)
	assert.False(t, v.Valid)
	assert.Equal(t, []string{
		"player soto appears more than once",
		"pick 2026-R2-" + havana + " appears more than once",
	}, v.Errors)
}

func TestBuildOutcomeEmbed(t *testing.T) {
	league := testLeague()
	proposal := &trade.Proposal{
		ID:               "p-1",
		Proposer:         havana,
		Receiver:         seattle,
		PlayersOffered:   []string{"soto"},
		PlayersRequested: []string{"witt"},
	}

	t.Run("invalid", func(t *testing.T) {
		out := &negotiation.Outcome{
			Proposal:   proposal,
			Validation: trade.Validation{Errors: []string{"proposal offers nothing"}},
		}
		embed := buildOutcomeEmbed(league, out)
		assert.Equal(t, "Offer Not Valid", embed.Title)
		require.Len(t, embed.Fields, 1)
		assert.Contains(t, embed.Fields[0].Value, "proposal offers nothing")
	})

	t.Run("countered", func(t *testing.T) {
		counter := trade.Counter(proposal, league)
		out := &negotiation.Outcome{
			Proposal:   proposal,
			Validation: trade.Validation{Valid: true},
			Result: &trade.Result{
				Status:    trade.StatusCountered,
				Counter:   counter,
				Valuation: trade.Valuation{AdjustedOffered: 16250000, AdjustedRequested: 18000000, Ratio: -0.097},
			},
		}
		embed := buildOutcomeEmbed(league, out)
		assert.Equal(t, seattle+" Counter", embed.Title)
		assert.Equal(t, colorCountered, embed.Color)

		var names []string
		for _, f := range embed.Fields {
			names = append(names, f.Name)
		}
		assert.Contains(t, names, "Counter-Offer")
		assert.Contains(t, names, "Gap")
		assert.Equal(t, "Proposal p-1", embed.Footer.Text)
	})

	t.Run("accepted", func(t *testing.T) {
		out := &negotiation.Outcome{
			Proposal:   proposal,
			Validation: trade.Validation{Valid: true},
			Result:     &trade.Result{Accepted: true, Status: trade.StatusAccepted},
			Trade:      &models.CompletedTrade{ID: "p-1"},
			Missing:    []string{"ghost"},
		}
		embed := buildOutcomeEmbed(league, out)
		assert.Equal(t, colorAccepted, embed.Color)
		assert.Equal(t, "Skipped", embed.Fields[len(embed.Fields)-1].Name)
	})
}

func TestBuildTradeEmbed(t *testing.T) {
	league := testLeague()
	ct := &models.CompletedTrade{
		ID:          "t-1",
		Date:        time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
		TeamA:       havana,
		TeamB:       seattle,
		PlayersToA:  []string{"witt"},
		PlayersToB:  []string{"soto", "ghost"},
		PicksToB:    []models.DraftPick{{Year: 2026, Round: 2, OriginalTeam: havana, Owner: seattle}},
		RetainedByA: decimal.NewFromInt(5000000),
		RetainedByB: decimal.Zero,
		Source:      models.SourceEngine,
	}

	embed := BuildTradeEmbed(league, ct)
	assert.Equal(t, colorTrade, embed.Color)
	assert.Contains(t, embed.Description, "Bobby Witt Jr.")
	assert.Contains(t, embed.Description, "Juan Soto")
	assert.Contains(t, embed.Description, "unknown player ghost")
	assert.Contains(t, embed.Description, "2026 Round 2 (via "+havana+")")
	assert.Equal(t, "2025-07-02T00:00:00Z", embed.Timestamp)
	assert.Contains(t, embed.Footer.Text, "4 assets moved")

	require.Len(t, embed.Fields, 1)
	assert.Contains(t, embed.Fields[0].Value, "$5,000,000")
}

func TestFormatNumbers(t *testing.T) {
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
	assert.Equal(t, "-1,500", formatNumber(-1500))
	assert.Equal(t, "2.5M", formatNumberShort(2500000))
	assert.Equal(t, "12K", formatNumberShort(12000))
	assert.Equal(t, "-12K", formatNumberShort(-12000))
	assert.Equal(t, "+$1.6M", formatSignedValue(1560000))
	assert.Equal(t, "-$540K", formatSignedValue(-540000))
	assert.Equal(t, "s", pluralize(2))
	assert.Equal(t, "", pluralize(1))
}
