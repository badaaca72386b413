// Package trade decides how an AI-controlled team responds to a proposed
// exchange of players and draft picks, and commits accepted exchanges to a
// new league snapshot.
//
// Everything in this package is a pure function of its arguments. Callers
// that share a League or a Random across goroutines must serialise writes
// themselves.
package trade

import (
	"fmt"
	"strings"

	"github.com/pmurley/ulb-trade-engine/internal/models"
)

// Status is the lifecycle state of a proposal.
type Status int

const (
	StatusPending Status = iota
	StatusAccepted
	StatusRejected
	StatusCountered
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	case StatusCountered:
		return "countered"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Terminal reports whether no further evaluation follows this status.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Proposal is an offer from Proposer to Receiver. Players are referenced by
// catalogue ID.
type Proposal struct {
	ID               string
	Proposer         string
	Receiver         string
	PlayersOffered   []string
	PlayersRequested []string
	PicksOffered     []models.DraftPick
	PicksRequested   []models.DraftPick
	SalaryRetained   int // dollars the proposer keeps paying
	Status           Status
	Message          string
}

// OfferedCount is the number of assets on the proposer's side.
func (p *Proposal) OfferedCount() int {
	return len(p.PlayersOffered) + len(p.PicksOffered)
}

// RequestedCount is the number of assets on the receiver's side.
func (p *Proposal) RequestedCount() int {
	return len(p.PlayersRequested) + len(p.PicksRequested)
}

// includesPick reports whether the pick already appears on either side.
func (p *Proposal) includesPick(pick models.DraftPick) bool {
	for _, q := range p.PicksOffered {
		if q.Key() == pick.Key() {
			return true
		}
	}
	for _, q := range p.PicksRequested {
		if q.Key() == pick.Key() {
			return true
		}
	}
	return false
}

// Summary renders the proposal on one line using player names from the league.
func (p *Proposal) Summary(league *League) string {
	return fmt.Sprintf("%s sends %s to %s for %s",
		p.Proposer, describeAssets(league, p.PlayersOffered, p.PicksOffered),
		p.Receiver, describeAssets(league, p.PlayersRequested, p.PicksRequested))
}

func describeAssets(league *League, players []string, picks []models.DraftPick) string {
	var parts []string
	for _, id := range players {
		if pl, ok := league.Players[id]; ok {
			parts = append(parts, pl.Name)
		} else {
			parts = append(parts, id)
		}
	}
	for _, pk := range picks {
		parts = append(parts, pk.String())
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}

// Band is the decision region a proposal's value ratio fell into.
type Band int

const (
	BandHardReject Band = iota
	BandCounter
	BandBorderline
	BandAccept
)

func (b Band) String() string {
	switch b {
	case BandHardReject:
		return "hard-reject"
	case BandCounter:
		return "counter"
	case BandBorderline:
		return "borderline"
	case BandAccept:
		return "accept"
	}
	return fmt.Sprintf("Band(%d)", int(b))
}

// Valuation is the full breakdown behind a decision.
type Valuation struct {
	RawOffered         float64
	RawRequested       float64
	PositionalBonus    float64
	WindowModifier     float64
	ContractDiscount   float64
	RetentionBonus     float64
	RiskJitter         float64
	ActivityMultiplier float64
	AdjustedOffered    float64
	AdjustedRequested  float64
	Diff               float64
	Ratio              float64
}

// Result is the receiving team's answer to a proposal.
type Result struct {
	Accepted  bool
	Status    Status
	Band      Band
	Message   string
	Counter   *Proposal // set only when the rejection was close enough to revisit
	Valuation Valuation
}

// Options are the feature toggles that shape evaluation.
type Options struct {
	// SalaryDumpTradesEnabled turns on contract burden and retention terms.
	SalaryDumpTradesEnabled bool
	// TradeRequestsEnabled turns on rumour generation.
	TradeRequestsEnabled bool
}

// DefaultOptions enables every feature.
func DefaultOptions() Options {
	return Options{
		SalaryDumpTradesEnabled: true,
		TradeRequestsEnabled:    true,
	}
}
