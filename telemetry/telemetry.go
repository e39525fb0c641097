// Package telemetry builds the logger and prometheus metrics shared by the
// commands.
package telemetry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hilbert-circuits/solver"
)

// NewLogger writes text records at level and above to w.
func NewLogger(level slog.Level, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

type Metrics struct {
	registry *prometheus.Registry

	Evaluations prometheus.Counter
	Solved      prometheus.Counter
	Passes      prometheus.Histogram
	Duration    prometheus.Histogram
	Requests    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "circuit_evaluations_total",
			Help: "Circuits evaluated.",
		}),
		Solved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "circuit_solved_total",
			Help: "Evaluations that reached the goal.",
		}),
		Passes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "circuit_propagation_passes",
			Help:    "Propagation passes per evaluation.",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34, 50},
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "circuit_evaluation_seconds",
			Help:    "Evaluation latency.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "circuit_rpc_requests_total",
			Help: "JSON-RPC requests by method and outcome.",
		}, []string{"method", "outcome"}),
	}
	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(m.Evaluations, m.Solved, m.Passes, m.Duration, m.Requests)
	return m
}

// ObserveResult records one evaluation.
func (m *Metrics) ObserveResult(res solver.Result, took time.Duration) {
	m.Evaluations.Inc()
	if res.Solved {
		m.Solved.Inc()
	}
	m.Passes.Observe(float64(res.Passes))
	m.Duration.Observe(took.Seconds())
}

func (m *Metrics) ObserveRequest(method string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Requests.WithLabelValues(method, outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	logger.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
