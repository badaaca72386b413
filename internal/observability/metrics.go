// Package observability provides Prometheus metrics for the negotiation
// engine and the bot.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ulb_trades"

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Negotiation metrics
	Evaluations       *prometheus.CounterVec
	InvalidProposals  prometheus.Counter
	TradesExecuted    *prometheus.CounterVec
	MissingPlayers    prometheus.Counter
	NegotiationRounds prometheus.Histogram

	// History metrics
	HistoryWriteErrors prometheus.Counter
	TradesImported     prometheus.Counter

	registry prometheus.Gatherer
}

// NewMetrics registers every metric with reg. A nil reg uses a fresh
// private registry, which keeps tests and multiple negotiators apart.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		Evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "negotiation",
			Name:      "evaluations_total",
			Help:      "Total number of proposals evaluated, by decision band and status",
		}, []string{"band", "status"}),
		InvalidProposals: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "negotiation",
			Name:      "invalid_proposals_total",
			Help:      "Total number of proposals rejected by validation",
		}),
		TradesExecuted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "negotiation",
			Name:      "trades_executed_total",
			Help:      "Total number of trades committed to the league, by source",
		}, []string{"source"}),
		MissingPlayers: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "negotiation",
			Name:      "missing_players_total",
			Help:      "Total number of player references skipped during execution",
		}),
		NegotiationRounds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "negotiation",
			Name:      "rounds",
			Help:      "Number of rounds a multi-round negotiation took",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
		HistoryWriteErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "write_errors_total",
			Help:      "Total number of completed trades that failed to persist",
		}),
		TradesImported: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "imported_total",
			Help:      "Total number of trades imported from Fantrax",
		}),
		registry: reg,
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
