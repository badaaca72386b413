package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pmurley/ulb-trade-engine/internal/models"
)

func TestValidateAcceptsWellFormedProposal(t *testing.T) {
	v := Validate(scenarioProposal(), scenarioLeague(models.Personality{}))
	assert.True(t, v.Valid)
	assert.Empty(t, v.Errors)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	league := scenarioLeague(models.Personality{})
	p := &Proposal{
		Proposer:         "A",
		Receiver:         "B",
		PlayersOffered:   []string{"b-of", "ghost"},
		PlayersRequested: []string{"a-sp"},
		PicksOffered:     []models.DraftPick{pick(2026, 1, "B")},
		PicksRequested:   []models.DraftPick{pick(2026, 1, "A"), pick(2026, 2, "B")},
		SalaryRetained:   -1,
	}

	v := Validate(p, league)
	assert.False(t, v.Valid)
	assert.Equal(t, []string{
		"offered player Player b-of is not on A",
		"offered player ghost does not exist",
		"requested player Player a-sp is not on B",
		"offered pick 2026-R1-B is not owned by A",
		"requested pick 2026-R1-A is not owned by B",
		"salary retained cannot be negative",
	}, v.Errors)
}

func TestValidateStructuralErrors(t *testing.T) {
	league := scenarioLeague(models.Personality{})

	tests := []struct {
		name string
		p    *Proposal
		want []string
	}{
		{
			name: "empty sides",
			p:    &Proposal{Proposer: "A", Receiver: "B"},
			want: []string{"proposal offers nothing", "proposal requests nothing"},
		},
		{
			name: "unknown teams",
			p: &Proposal{Proposer: "X", Receiver: "Y",
				PlayersOffered: []string{"a-sp"}, PlayersRequested: []string{"b-of"}},
			want: []string{
				`unknown proposing team "X"`,
				`unknown receiving team "Y"`,
				"offered player Player a-sp is not on X",
				"requested player Player b-of is not on Y",
			},
		},
		{
			name: "self trade",
			p: &Proposal{Proposer: "A", Receiver: "A",
				PicksOffered: []models.DraftPick{pick(2026, 1, "A")}, PicksRequested: []models.DraftPick{pick(2026, 2, "A")}},
			want: []string{"a team cannot trade with itself"},
		},
		{
			name: "player offered twice",
			p: &Proposal{Proposer: "A", Receiver: "B",
				PlayersOffered: []string{"a-sp", "a-sp"}, PlayersRequested: []string{"b-of"}},
			want: []string{"player a-sp appears more than once"},
		},
		{
			name: "player on both sides",
			p: &Proposal{Proposer: "A", Receiver: "B",
				PlayersOffered: []string{"a-sp"}, PlayersRequested: []string{"b-of", "a-sp"}},
			want: []string{
				"requested player Player a-sp is not on B",
				"player a-sp appears more than once",
			},
		},
		{
			name: "pick offered twice",
			p: &Proposal{Proposer: "A", Receiver: "B",
				PicksOffered:     []models.DraftPick{pick(2026, 2, "A"), pick(2026, 2, "A")},
				PlayersRequested: []string{"b-of"}},
			want: []string{"pick 2026-R2-A appears more than once"},
		},
		{
			name: "pick on both sides",
			p: &Proposal{Proposer: "A", Receiver: "B",
				PicksOffered:     []models.DraftPick{pick(2026, 2, "A")},
				PicksRequested:   []models.DraftPick{pick(2026, 2, "A")},
				PlayersRequested: []string{"b-of"}},
			want: []string{
				"requested pick 2026-R2-A is not owned by B",
				"pick 2026-R2-A appears more than once",
			},
		},
		{
			name: "pick number differs from the league",
			p: &Proposal{Proposer: "A", Receiver: "B",
				PicksOffered:     []models.DraftPick{{Year: 2026, Round: 1, OriginalTeam: "A", Owner: "A", Number: 1}},
				PlayersRequested: []string{"b-of"}},
			want: []string{"offered pick 2026-R1-A has number 1, the league has 0"},
		},
		{
			name: "round zero",
			p: &Proposal{Proposer: "A", Receiver: "B",
				PicksOffered:     []models.DraftPick{pick(2026, 0, "A")},
				PlayersRequested: []string{"b-of"}},
			want: []string{"offered pick 2026-R0-A has no valid round"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Validate(tt.p, league)
			assert.False(t, v.Valid)
			assert.Equal(t, tt.want, v.Errors)
		})
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	league := scenarioLeague(models.Personality{})
	before := len(league.Teams["A"].Picks)
	p := scenarioProposal()
	Validate(p, league)

	assert.Equal(t, StatusPending, p.Status)
	assert.Len(t, league.Teams["A"].Picks, before)
	assert.Equal(t, "A", league.Players["a-sp"].ULBTeam)
}

func TestValidateStopsDoubleCountedOffer(t *testing.T) {
	league := thresholdLeague(600000, 1000000)
	e := NewEvaluator(dollars, DefaultOptions())

	once := thresholdProposal()
	assert.True(t, Validate(once, league).Valid)
	assert.Equal(t, BandHardReject, e.Evaluate(once, league, &scriptedRandom{}).Band)

	twice := thresholdProposal()
	twice.PlayersOffered = []string{"offer", "offer"}
	v := Validate(twice, league)
	assert.False(t, v.Valid)
	assert.Equal(t, []string{"player offer appears more than once"}, v.Errors)
}
