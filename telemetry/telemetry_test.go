package telemetry

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hilbert-circuits/solver"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.LevelWarn, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "passes", 3)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown passes=3")
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.ObserveResult(solver.Result{Solved: true, Passes: 3}, time.Millisecond)
	m.ObserveResult(solver.Result{Passes: 50}, time.Millisecond)
	m.ObserveRequest("circuit/evaluate", nil)
	m.ObserveRequest("circuit/evaluate", errors.New("bad"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Evaluations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Solved))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("circuit/evaluate", "error")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "circuit_evaluations_total 2"), body)
	assert.Contains(t, body, "circuit_propagation_passes_count 2")
}
