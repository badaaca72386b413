package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmurley/ulb-trade-engine/internal/models"
)

func TestEvaluateBalancedReceiverAccepts(t *testing.T) {
	league := scenarioLeague(models.Personality{})
	e := NewEvaluator(dollars, DefaultOptions())

	res := e.Evaluate(scenarioProposal(), league, &scriptedRandom{})

	require.True(t, res.Accepted)
	assert.Equal(t, StatusAccepted, res.Status)
	assert.Equal(t, BandAccept, res.Band)
	assert.Nil(t, res.Counter)
	assert.InDelta(t, 780000, res.Valuation.RawOffered, 0.01)
	assert.InDelta(t, 750000, res.Valuation.RawRequested, 0.01)
	assert.InDelta(t, 30000, res.Valuation.Diff, 0.01)
	assert.Zero(t, res.Valuation.PositionalBonus)
}

func TestEvaluatePassiveReceiverBorderline(t *testing.T) {
	passive := models.Personality{Activity: models.ActivityPassive}

	t.Run("low draw accepts", func(t *testing.T) {
		league := scenarioLeague(passive)
		res := NewEvaluator(dollars, DefaultOptions()).
			Evaluate(scenarioProposal(), league, &scriptedRandom{draws: []float64{0.05}})

		assert.Equal(t, BandBorderline, res.Band)
		assert.InDelta(t, 862500, res.Valuation.AdjustedRequested, 0.01)
		assert.InDelta(t, -0.11, res.Valuation.Ratio, 0.0001)
		assert.True(t, res.Accepted)
		assert.Equal(t, StatusAccepted, res.Status)
	})

	t.Run("high draw counters", func(t *testing.T) {
		league := scenarioLeague(passive)
		res := NewEvaluator(dollars, DefaultOptions()).
			Evaluate(scenarioProposal(), league, &scriptedRandom{draws: []float64{0.9}})

		assert.Equal(t, BandBorderline, res.Band)
		assert.False(t, res.Accepted)
		assert.Equal(t, StatusCountered, res.Status)
		require.NotNil(t, res.Counter)

		c := res.Counter
		assert.Equal(t, "B", c.Proposer)
		assert.Equal(t, "A", c.Receiver)
		assert.Equal(t, []string{"b-of"}, c.PlayersOffered)
		assert.Equal(t, []string{"a-sp"}, c.PlayersRequested)
		require.Len(t, c.PicksRequested, 2)
		assert.Equal(t, pick(2026, 2, "A").Key(), c.PicksRequested[0].Key())
		assert.Equal(t, pick(2026, 3, "A").Key(), c.PicksRequested[1].Key())
		assert.Equal(t, StatusPending, c.Status)
	})
}

func TestEvaluateThresholdBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		offered  float64
		band     Band
		status   Status
		accepted bool
		counter  bool
	}{
		{"exactly even accepts", 1000000, BandAccept, StatusAccepted, true, false},
		{"just below even is borderline", 999999, BandBorderline, StatusAccepted, true, false},
		{"exactly -0.15 is borderline", 850000, BandBorderline, StatusCountered, false, true},
		{"just below -0.15 counters", 849999, BandCounter, StatusCountered, false, true},
		{"exactly -0.25 counters", 750000, BandCounter, StatusCountered, false, true},
		{"just below -0.25 hard rejects", 749999, BandHardReject, StatusRejected, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			league := thresholdLeague(tt.offered, 1000000)
			// a zero draw accepts any borderline proposal with a positive chance
			rng := &scriptedRandom{draws: []float64{0}}
			res := NewEvaluator(dollars, DefaultOptions()).Evaluate(thresholdProposal(), league, rng)

			assert.Equal(t, tt.band, res.Band)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.accepted, res.Accepted)
			assert.Equal(t, tt.counter, res.Counter != nil)
		})
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	aggressive := models.Personality{Risk: models.RiskAggressive, Activity: models.ActivityPassive}
	e := NewEvaluator(dollars, DefaultOptions())

	first := e.Evaluate(scenarioProposal(), scenarioLeague(aggressive), NewSeededRandom(42))
	second := e.Evaluate(scenarioProposal(), scenarioLeague(aggressive), NewSeededRandom(42))

	assert.Equal(t, first, second)
	assert.Greater(t, first.Valuation.RiskJitter, 0.0)
	assert.LessOrEqual(t, first.Valuation.RiskJitter, 0.05*first.Valuation.RawOffered)
}

func TestEvaluateRiskJitterSign(t *testing.T) {
	league := scenarioLeague(models.Personality{Risk: models.RiskConservative})
	res := NewEvaluator(dollars, DefaultOptions()).
		Evaluate(scenarioProposal(), league, &scriptedRandom{floats: []float64{1}})

	assert.InDelta(t, -0.05*780000, res.Valuation.RiskJitter, 0.01)
}

func TestEvaluatePositionalBonus(t *testing.T) {
	league := scenarioLeague(models.Personality{})
	p := scenarioProposal()
	// B has only one OF, so an offered outfielder fills a need.
	league.Players["a-sp"] = player("a-sp", "A", "CF", 27, 500000)

	res := NewEvaluator(dollars, DefaultOptions()).Evaluate(p, league, &scriptedRandom{})
	assert.InDelta(t, 75000, res.Valuation.PositionalBonus, 0.01)
}

func TestEvaluateWindowModifier(t *testing.T) {
	t.Run("win now", func(t *testing.T) {
		league := scenarioLeague(models.Personality{Window: models.WindowWinNow})
		v := NewEvaluator(dollars, DefaultOptions()).Valuation(scenarioProposal(), league, &scriptedRandom{})
		// +10% of the 27-year-old coming in, -10% of the 26-year-old going
		// out, -15% of the future second rounder.
		want := 0.10*500000 - 0.10*750000 - 0.15*280000
		assert.InDelta(t, want, v.WindowModifier, 0.01)
	})

	t.Run("win now ignores development players", func(t *testing.T) {
		league := scenarioLeague(models.Personality{Window: models.WindowWinNow})
		pl := league.Players["a-sp"]
		pl.Status = models.StatusMinors
		league.Players["a-sp"] = pl
		v := NewEvaluator(dollars, DefaultOptions()).Valuation(scenarioProposal(), league, &scriptedRandom{})
		assert.InDelta(t, -0.10*750000-0.15*280000, v.WindowModifier, 0.01)
	})

	t.Run("rebuilding", func(t *testing.T) {
		league := scenarioLeague(models.Personality{Window: models.WindowRebuilding})
		league.Players["a-sp"] = player("a-sp", "A", "SP", 22, 500000)
		v := NewEvaluator(dollars, DefaultOptions()).Valuation(scenarioProposal(), league, &scriptedRandom{})
		assert.InDelta(t, 0.10*500000+0.15*280000, v.WindowModifier, 0.01)
	})
}

func TestEvaluateContractTerms(t *testing.T) {
	league := scenarioLeague(models.Personality{})
	pl := league.Players["a-sp"]
	pl.Contract = models.FlatContract(testSeason, 5, 30000000)
	league.Players["a-sp"] = pl

	p := scenarioProposal()
	p.SalaryRetained = 2000000

	v := NewEvaluator(dollars, DefaultOptions()).Valuation(p, league, &scriptedRandom{})
	// two years past the third at 5% of AAV, plus 10% of AAV over 25M
	assert.InDelta(t, -3500000, v.ContractDiscount, 0.01)
	assert.InDelta(t, 1000000, v.RetentionBonus, 0.01)

	off := NewEvaluator(dollars, Options{}).Valuation(p, league, &scriptedRandom{})
	assert.Zero(t, off.ContractDiscount)
	assert.Zero(t, off.RetentionBonus)
}

func TestEvaluateZeroRequestedValue(t *testing.T) {
	league := thresholdLeague(1000, 0)
	res := NewEvaluator(dollars, DefaultOptions()).Evaluate(thresholdProposal(), league, &scriptedRandom{})

	assert.Zero(t, res.Valuation.Ratio)
	assert.True(t, res.Accepted)
}

func TestActivityMultiplier(t *testing.T) {
	assert.Equal(t, 0.90, activityMultiplier(models.ActivityActive))
	assert.Equal(t, 1.00, activityMultiplier(models.ActivityModerate))
	assert.Equal(t, 1.15, activityMultiplier(models.ActivityPassive))
}
