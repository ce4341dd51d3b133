package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.Round("success")
	m.Round("success")
	m.Round("timeout")
	m.Rollback("penalty")
	m.GenerationFailure("distractor")
	m.Rule("color", true)
	m.GameStarted()
	m.GameOver(4)
	m.Generated(12)
	m.SessionsActive(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RoundsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RoundsTotal.WithLabelValues("timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RollbacksTotal.WithLabelValues("penalty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationFailuresTotal.WithLabelValues("distractor")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RulesTotal.WithLabelValues("color", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GamesTotal.WithLabelValues("over")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ActiveSessions))
	assert.Equal(t, 2, testutil.CollectAndCount(m.LevelReached)+testutil.CollectAndCount(m.GenerationAttempts))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Round("success")
		m.GameStarted()
		m.GameOver(1)
		m.Rule("shape", false)
		m.GenerationFailure("valid")
		m.Rollback("round")
		m.Generated(1)
		m.SessionsActive(0)
	})
}
