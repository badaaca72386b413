// Package negotiation owns the live league and runs proposals through the
// trade engine one at a time, recording every committed trade.
package negotiation

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pmurley/ulb-trade-engine/internal/models"
	"github.com/pmurley/ulb-trade-engine/internal/observability"
	"github.com/pmurley/ulb-trade-engine/internal/storage"
	"github.com/pmurley/ulb-trade-engine/internal/trade"
	"github.com/pmurley/ulb-trade-engine/pkg/logger"
)

// DefaultMaxRounds bounds a multi-round negotiation.
const DefaultMaxRounds = 4

// Config wires a Negotiator's collaborators. Evaluator, Random and History
// are required.
type Config struct {
	Evaluator *trade.Evaluator
	Random    trade.Random
	History   storage.TradeHistoryStore
	Metrics   *observability.Metrics
	Logger    *logger.Logger
	MaxRounds int
}

// Negotiator serialises every read-modify-write of the league. The shared
// random source is only touched while the lock is held.
type Negotiator struct {
	mu        sync.Mutex
	league    *trade.League
	evaluator *trade.Evaluator
	rng       trade.Random
	history   storage.TradeHistoryStore
	metrics   *observability.Metrics
	logger    *logger.Logger
	maxRounds int
}

// Outcome is what happened to one proposal.
type Outcome struct {
	Proposal   *trade.Proposal
	Validation trade.Validation
	Result     *trade.Result // nil when validation failed
	Trade      *models.CompletedTrade
	Missing    []string
}

// Executed reports whether the proposal changed the league.
func (o *Outcome) Executed() bool {
	return o.Trade != nil
}

// New returns a negotiator over league.
func New(league *trade.League, cfg Config) *Negotiator {
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NewMetrics(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = DefaultMaxRounds
	}
	return &Negotiator{
		league:    league,
		evaluator: cfg.Evaluator,
		rng:       cfg.Random,
		history:   cfg.History,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		maxRounds: cfg.MaxRounds,
	}
}

// League returns the current snapshot. Snapshots are never modified, so the
// caller may keep it as long as it likes.
func (n *Negotiator) League() *trade.League {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.league
}

// Replace installs a reloaded league, e.g. after the player sheet changes.
func (n *Negotiator) Replace(league *trade.League) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.league = league
}

// Rebase rebuilds the league around a fresh player pool. Teams and the picks
// they hold carry over from the current snapshot.
func (n *Negotiator) Rebase(players []models.Player) *trade.League {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.league = trade.NewLeague(n.league.Season, n.league.Date, players, n.league.TeamList())
	return n.league
}

// Options returns the feature toggles the evaluator was built with.
func (n *Negotiator) Options() trade.Options {
	return n.evaluator.Options
}

// Submit runs a single round: validate, evaluate, and commit on acceptance.
// The proposal's status and message are updated in place. An error means the
// trade was accepted but could not be recorded; the league is unchanged.
func (n *Negotiator) Submit(ctx context.Context, p *trade.Proposal) (*Outcome, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.submit(ctx, p)
}

func (n *Negotiator) submit(ctx context.Context, p *trade.Proposal) (*Outcome, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	out := &Outcome{Proposal: p}

	out.Validation = trade.Validate(p, n.league)
	if !out.Validation.Valid {
		n.metrics.InvalidProposals.Inc()
		n.logger.Debug("Rejected invalid proposal ", p.ID, ": ", out.Validation.Errors)
		return out, nil
	}

	res := n.evaluator.Evaluate(p, n.league, n.rng)
	out.Result = &res
	p.Status = res.Status
	p.Message = res.Message
	n.metrics.Evaluations.WithLabelValues(res.Band.String(), res.Status.String()).Inc()
	n.logger.Info(fmt.Sprintf("%s answered proposal %s from %s: %s (ratio %.3f)",
		p.Receiver, p.ID, p.Proposer, res.Status, res.Valuation.Ratio))

	if !res.Accepted {
		return out, nil
	}
	if err := n.commit(ctx, p, out); err != nil {
		return out, err
	}
	return out, nil
}

// commit executes an accepted proposal, records it and installs the new
// league. Callers hold the lock.
func (n *Negotiator) commit(ctx context.Context, p *trade.Proposal, out *Outcome) error {
	exec, err := trade.Execute(p, n.league)
	if err != nil {
		return fmt.Errorf("failed to execute proposal %s: %w", p.ID, err)
	}
	if len(exec.Missing) > 0 {
		n.metrics.MissingPlayers.Add(float64(len(exec.Missing)))
		n.logger.Warn("Skipped unknown players in trade ", p.ID, ": ", exec.Missing)
	}

	if err := n.history.Append(ctx, &exec.Trade); err != nil {
		n.metrics.HistoryWriteErrors.Inc()
		return fmt.Errorf("failed to record trade %s: %w", p.ID, err)
	}

	n.league = n.league.Apply(exec)
	n.metrics.TradesExecuted.WithLabelValues(exec.Trade.Source).Inc()
	n.logger.Info("Executed trade: ", p.Summary(n.league))

	out.Trade = &exec.Trade
	out.Missing = exec.Missing
	return nil
}

// Accept commits a counter-offer the other side agreed to. The counter is
// validated again because the league may have moved since it was made.
func (n *Negotiator) Accept(ctx context.Context, counter *trade.Proposal) (*Outcome, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := &Outcome{Proposal: counter}
	out.Validation = trade.Validate(counter, n.league)
	if !out.Validation.Valid {
		n.metrics.InvalidProposals.Inc()
		return out, nil
	}

	counter.Status = trade.StatusAccepted
	counter.Message = "Counter-offer accepted."
	if err := n.commit(ctx, counter, out); err != nil {
		return out, err
	}
	return out, nil
}

// Negotiation is the full record of a multi-round exchange.
type Negotiation struct {
	Rounds []*Outcome
}

// Final is the last round played.
func (ng *Negotiation) Final() *Outcome {
	return ng.Rounds[len(ng.Rounds)-1]
}

// Settled reports whether the exchange ended in an executed trade.
func (ng *Negotiation) Settled() bool {
	return ng.Final().Executed()
}

// Negotiate lets both teams answer each other's counters until one side
// accepts, one side walks away or the round limit is reached. When the limit
// is hit the last counter is left unanswered and marked rejected.
func (n *Negotiator) Negotiate(ctx context.Context, p *trade.Proposal) (*Negotiation, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	ng := &Negotiation{}
	current := p
	for round := 1; ; round++ {
		out, err := n.submit(ctx, current)
		ng.Rounds = append(ng.Rounds, out)
		if err != nil {
			return ng, err
		}
		if out.Result == nil || out.Result.Counter == nil {
			break
		}
		if round >= n.maxRounds {
			out.Result.Counter.Status = trade.StatusRejected
			n.logger.Info("Negotiation ", p.ID, " stopped after ", round, " rounds")
			break
		}
		current = out.Result.Counter
	}
	n.metrics.NegotiationRounds.Observe(float64(len(ng.Rounds)))
	return ng, nil
}

// Needs lists a team's positions of need in the current league.
func (n *Negotiator) Needs(teamID string) []string {
	return trade.PositionalNeeds(n.League(), teamID)
}

// Rumours draws trade rumours from the current league.
func (n *Negotiator) Rumours(limit int) []trade.Rumour {
	n.mu.Lock()
	defer n.mu.Unlock()
	return trade.Rumours(n.league, n.evaluator.Options, n.rng, limit)
}
