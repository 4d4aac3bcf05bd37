// Package metrics provides Prometheus instrumentation for the strategy engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DecisionsTotal counts decisions made, partitioned by kind and outcome.
	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strategy_decisions_total",
		Help: "Total number of decisions computed",
	}, []string{"kind", "outcome"})

	// DecisionLatency tracks decision computation latency per kind.
	DecisionLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "strategy_decision_latency_seconds",
		Help:    "Decision computation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	// TradeProposals tracks how many offers each proposal search emits.
	TradeProposals = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "strategy_trade_proposals_per_search",
		Help:    "Trade offers emitted per proposal search",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
	})

	// ActiveSessions tracks the number of active play sessions.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "strategy_active_sessions",
		Help: "Number of currently active sessions",
	})

	// WebSocketClients tracks connected WebSocket clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "strategy_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strategy_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "strategy_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		// Use the route pattern for path label to avoid high cardinality.
		path := r.URL.Path
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
