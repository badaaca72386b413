package trade

import "github.com/pmurley/ulb-trade-engine/internal/models"

const (
	positionalBonusRate = 0.15
	windowPlayerRate    = 0.10
	windowPickRate      = 0.15
	veteranMinAge       = 25
	prospectMaxAge      = 23
	riskJitterRate      = 0.05
)

// windowRule describes how a competitive window reprices assets.
type windowRule struct {
	// favours reports whether a player is the kind of asset the window wants.
	favours  func(p *models.Player) bool
	pickRate float64
}

var windowRules = map[models.CompetitiveWindow]windowRule{
	models.WindowWinNow: {
		favours: func(p *models.Player) bool {
			return p.Age >= veteranMinAge && !p.IsDevelopment()
		},
		pickRate: -windowPickRate,
	},
	models.WindowRebuilding: {
		favours: func(p *models.Player) bool {
			return p.Age <= prospectMaxAge
		},
		pickRate: windowPickRate,
	},
}

// windowModifier is the adjustment the receiver's window applies to a deal:
// favoured players coming in are worth more, favoured players going out
// cost more, and offered picks are repriced.
func windowModifier(w models.CompetitiveWindow, league *League, value MarketValueFunc, p *Proposal) float64 {
	rule, ok := windowRules[w]
	if !ok {
		return 0
	}
	mod := 0.0
	for _, id := range p.PlayersOffered {
		if pl, ok := league.Players[id]; ok && rule.favours(&pl) {
			mod += windowPlayerRate * value(pl)
		}
	}
	for _, id := range p.PlayersRequested {
		if pl, ok := league.Players[id]; ok && rule.favours(&pl) {
			mod -= windowPlayerRate * value(pl)
		}
	}
	for _, pk := range p.PicksOffered {
		mod += rule.pickRate * PickValue(pk, league.Season)
	}
	return mod
}

var activityMultipliers = map[models.TradeActivity]float64{
	models.ActivityActive:   0.90,
	models.ActivityModerate: 1.00,
	models.ActivityPassive:  1.15,
}

// activityMultiplier scales what the receiver thinks it is giving up.
func activityMultiplier(a models.TradeActivity) float64 {
	if m, ok := activityMultipliers[a]; ok {
		return m
	}
	return 1.0
}

// riskJitter perturbs the offered value. Moderate teams never draw.
func riskJitter(r models.RiskTolerance, rawOffered float64, rng Random) float64 {
	span := riskJitterRate * rawOffered
	switch r {
	case models.RiskAggressive:
		return rng.Float(0, span)
	case models.RiskConservative:
		return -rng.Float(0, span)
	}
	return 0
}

const (
	longContractYears   = 3
	longContractRate    = 0.05
	expensiveAAV        = 25000000
	expensiveAAVRate    = 0.10
	retentionCreditRate = 0.5
)

// contractBurden is the penalty for taking on a contract: extra years past
// the third and salary above the expensive threshold both count.
func contractBurden(p *models.Player, season int) float64 {
	years := p.YearsRemaining(season)
	aav := float64(p.AnnualValue(season))
	burden := 0.0
	if years > longContractYears {
		burden += float64(years-longContractYears) * aav * longContractRate
	}
	if aav > expensiveAAV {
		burden += (aav - expensiveAAV) * expensiveAAVRate
	}
	return burden
}

// contractAdjustment penalises offered contracts and credits the receiver for
// shedding requested ones.
func contractAdjustment(league *League, p *Proposal) float64 {
	adj := 0.0
	for _, id := range p.PlayersOffered {
		if pl, ok := league.Players[id]; ok {
			adj -= contractBurden(&pl, league.Season)
		}
	}
	for _, id := range p.PlayersRequested {
		if pl, ok := league.Players[id]; ok {
			adj += contractBurden(&pl, league.Season)
		}
	}
	return adj
}
