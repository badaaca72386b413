package trade

import (
	"fmt"
	"math"
)

// Decision thresholds on the value ratio.
const (
	HardRejectRatio = -0.25
	CounterRatio    = -0.15

	borderlineAcceptCeiling = 0.6
)

// Evaluator decides how a receiving team answers proposals.
type Evaluator struct {
	Value   MarketValueFunc
	Options Options
}

// NewEvaluator returns an evaluator; a nil value function falls back to
// PointsMarketValue at DefaultPointRate.
func NewEvaluator(value MarketValueFunc, opts Options) *Evaluator {
	if value == nil {
		value = PointsMarketValue(DefaultPointRate)
	}
	return &Evaluator{Value: value, Options: opts}
}

// Valuation computes the receiver's view of a proposal. rng is consulted only for
// risk jitter.
func (e *Evaluator) Valuation(p *Proposal, league *League, rng Random) Valuation {
	receiver := league.Teams[p.Receiver]
	personality := receiver.Personality

	v := Valuation{
		RawOffered:   PackageValue(league, e.Value, p.PlayersOffered, p.PicksOffered),
		RawRequested: PackageValue(league, e.Value, p.PlayersRequested, p.PicksRequested),
	}

	needs := PositionalNeeds(league, p.Receiver)
	for _, id := range p.PlayersOffered {
		if pl, ok := league.Players[id]; ok && contains(needs, pl.PrimaryPosition()) {
			v.PositionalBonus += positionalBonusRate * e.Value(pl)
		}
	}

	v.WindowModifier = windowModifier(personality.Window, league, e.Value, p)

	if e.Options.SalaryDumpTradesEnabled {
		v.ContractDiscount = contractAdjustment(league, p)
		v.RetentionBonus = retentionCreditRate * float64(p.SalaryRetained)
	}

	v.ActivityMultiplier = activityMultiplier(personality.Activity)
	v.RiskJitter = riskJitter(personality.Risk, v.RawOffered, rng)

	v.AdjustedOffered = v.RawOffered + v.PositionalBonus + v.WindowModifier +
		v.ContractDiscount + v.RetentionBonus + v.RiskJitter
	v.AdjustedRequested = v.RawRequested * v.ActivityMultiplier
	v.Diff = v.AdjustedOffered - v.AdjustedRequested
	if v.RawRequested != 0 {
		v.Ratio = v.Diff / v.RawRequested
	}
	return v
}

// Evaluate answers a validated proposal. A proposal that is close but not
// good enough comes back with a counter-offer attached.
func (e *Evaluator) Evaluate(p *Proposal, league *League, rng Random) Result {
	v := e.Valuation(p, league, rng)
	band := classify(v)

	res := Result{Band: band, Valuation: v}
	switch band {
	case BandHardReject:
		res.Status = StatusRejected
		res.Message = fmt.Sprintf("%s is not interested; the offer falls well short.", p.Receiver)
		return res
	case BandCounter:
		return withCounter(res, p, league)
	case BandAccept:
		return accept(res, p)
	}

	chance := borderlineAcceptCeiling * (1 - math.Abs(v.Ratio)/math.Abs(CounterRatio))
	if rng.Bool(chance) {
		return accept(res, p)
	}
	return withCounter(res, p, league)
}

func classify(v Valuation) Band {
	switch {
	case v.Ratio < HardRejectRatio:
		return BandHardReject
	case v.Ratio < CounterRatio:
		return BandCounter
	case v.Diff >= 0:
		return BandAccept
	}
	return BandBorderline
}

func accept(res Result, p *Proposal) Result {
	res.Accepted = true
	res.Status = StatusAccepted
	res.Message = fmt.Sprintf("%s accepts the trade.", p.Receiver)
	return res
}

func withCounter(res Result, p *Proposal, league *League) Result {
	res.Status = StatusCountered
	res.Counter = Counter(p, league)
	res.Message = fmt.Sprintf("%s declines but would consider a revised deal.", p.Receiver)
	return res
}
