// Package observability provides Prometheus metrics for the game engine.
//
// # Description
//
// Metrics cover round outcomes, rule generation, object pool sampling and
// rollbacks, plus live session counts. They are exposed on /metrics.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
// Every method tolerates a nil *Metrics so callers may run uninstrumented.
package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "rulerush"

// Metrics holds all engine metrics. Initialize once per registry via NewMetrics.
type Metrics struct {
	// RoundsTotal counts resolved rounds.
	// Labels: outcome (success, mistake, timeout)
	RoundsTotal *prometheus.CounterVec

	// GamesTotal counts game lifecycle events.
	// Labels: event (started, over)
	GamesTotal *prometheus.CounterVec

	// RulesTotal counts generated rules.
	// Labels: category (color, shape, number), negated (true, false)
	RulesTotal *prometheus.CounterVec

	// GenerationFailuresTotal counts exhausted sampling budgets.
	// Labels: stage (valid, distractor, unsatisfiable)
	GenerationFailuresTotal *prometheus.CounterVec

	// RollbacksTotal counts rules dropped to recover a round.
	// Labels: path (round, penalty)
	RollbacksTotal *prometheus.CounterVec

	// GenerationAttempts observes sampled candidates per successful pool.
	GenerationAttempts prometheus.Histogram

	// LevelReached observes the final level of finished games.
	LevelReached prometheus.Histogram

	// ActiveSessions tracks sessions held in the store.
	ActiveSessions prometheus.Gauge
}

// NewMetrics registers the engine metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RoundsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "game",
			Name:      "rounds_total",
			Help:      "Resolved rounds by outcome.",
		}, []string{"outcome"}),
		GamesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "game",
			Name:      "games_total",
			Help:      "Games started and finished.",
		}, []string{"event"}),
		RulesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "rules",
			Name:      "generated_total",
			Help:      "Generated rules by category and negation.",
		}, []string{"category", "negated"}),
		GenerationFailuresTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "generator",
			Name:      "failures_total",
			Help:      "Object pool generation failures by stage.",
		}, []string{"stage"}),
		RollbacksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "game",
			Name:      "rollbacks_total",
			Help:      "Rules rolled back after generation failure.",
		}, []string{"path"}),
		GenerationAttempts: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "generator",
			Name:      "attempts",
			Help:      "Candidates sampled per successful object pool.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		LevelReached: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "game",
			Name:      "level_reached",
			Help:      "Level reached when a game ends.",
			Buckets:   prometheus.LinearBuckets(1, 2, 12),
		}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "sessions",
			Name:      "active",
			Help:      "Sessions currently held in memory.",
		}),
	}
}

func (m *Metrics) Round(outcome string) {
	if m == nil {
		return
	}
	m.RoundsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) GameStarted() {
	if m == nil {
		return
	}
	m.GamesTotal.WithLabelValues("started").Inc()
}

func (m *Metrics) GameOver(level int) {
	if m == nil {
		return
	}
	m.GamesTotal.WithLabelValues("over").Inc()
	m.LevelReached.Observe(float64(level))
}

func (m *Metrics) Rule(category string, negated bool) {
	if m == nil {
		return
	}
	m.RulesTotal.WithLabelValues(category, strconv.FormatBool(negated)).Inc()
}

func (m *Metrics) GenerationFailure(stage string) {
	if m == nil {
		return
	}
	m.GenerationFailuresTotal.WithLabelValues(stage).Inc()
}

func (m *Metrics) Rollback(path string) {
	if m == nil {
		return
	}
	m.RollbacksTotal.WithLabelValues(path).Inc()
}

func (m *Metrics) Generated(attempts int) {
	if m == nil {
		return
	}
	m.GenerationAttempts.Observe(float64(attempts))
}

func (m *Metrics) SessionsActive(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}
