package models

import (
	"fmt"
	"strings"
)

// CompetitiveWindow is a team's strategic posture. The zero value is balanced.
type CompetitiveWindow int

const (
	WindowBalanced CompetitiveWindow = iota
	WindowWinNow
	WindowRebuilding
)

// RiskTolerance controls the random perturbation a team adds to offers.
type RiskTolerance int

const (
	RiskModerate RiskTolerance = iota
	RiskAggressive
	RiskConservative
)

// TradeActivity is a team's general willingness to transact.
type TradeActivity int

const (
	ActivityModerate TradeActivity = iota
	ActivityActive
	ActivityPassive
)

// DraftPhilosophy is carried for the draft subsystem; trades ignore it.
type DraftPhilosophy int

const (
	DraftBestAvailable DraftPhilosophy = iota
	DraftPositionalNeed
	DraftHighUpside
)

// Personality is the read-only AI profile attached to a team.
type Personality struct {
	Window   CompetitiveWindow `yaml:"window"`
	Risk     RiskTolerance     `yaml:"risk"`
	Activity TradeActivity     `yaml:"activity"`
	Draft    DraftPhilosophy   `yaml:"draft"`
}

func (p Personality) String() string {
	return fmt.Sprintf("%s/%s/%s", p.Window, p.Risk, p.Activity)
}

var windowNames = map[CompetitiveWindow]string{
	WindowBalanced:   "balanced",
	WindowWinNow:     "win-now",
	WindowRebuilding: "rebuilding",
}

var riskNames = map[RiskTolerance]string{
	RiskModerate:     "moderate",
	RiskAggressive:   "aggressive",
	RiskConservative: "conservative",
}

var activityNames = map[TradeActivity]string{
	ActivityModerate: "moderate",
	ActivityActive:   "active",
	ActivityPassive:  "passive",
}

var draftNames = map[DraftPhilosophy]string{
	DraftBestAvailable:  "best-available",
	DraftPositionalNeed: "positional-need",
	DraftHighUpside:     "high-upside",
}

func (w CompetitiveWindow) String() string { return nameOf(windowNames, w) }
func (r RiskTolerance) String() string     { return nameOf(riskNames, r) }
func (a TradeActivity) String() string     { return nameOf(activityNames, a) }
func (d DraftPhilosophy) String() string   { return nameOf(draftNames, d) }

func (w CompetitiveWindow) MarshalText() ([]byte, error) { return []byte(w.String()), nil }
func (r RiskTolerance) MarshalText() ([]byte, error)     { return []byte(r.String()), nil }
func (a TradeActivity) MarshalText() ([]byte, error)     { return []byte(a.String()), nil }
func (d DraftPhilosophy) MarshalText() ([]byte, error)   { return []byte(d.String()), nil }

func (w *CompetitiveWindow) UnmarshalText(text []byte) error {
	return parseName(windowNames, "competitive window", text, w)
}

func (r *RiskTolerance) UnmarshalText(text []byte) error {
	return parseName(riskNames, "risk tolerance", text, r)
}

func (a *TradeActivity) UnmarshalText(text []byte) error {
	return parseName(activityNames, "trade activity", text, a)
}

func (d *DraftPhilosophy) UnmarshalText(text []byte) error {
	return parseName(draftNames, "draft philosophy", text, d)
}

func nameOf[T ~int](names map[T]string, v T) string {
	if name, ok := names[v]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(v))
}

func parseName[T ~int](names map[T]string, kind string, text []byte, dst *T) error {
	want := strings.ToLower(strings.TrimSpace(string(text)))
	want = strings.ReplaceAll(want, "_", "-")
	for v, name := range names {
		if name == want {
			*dst = v
			return nil
		}
	}
	return fmt.Errorf("unknown %s %q", kind, string(text))
}
