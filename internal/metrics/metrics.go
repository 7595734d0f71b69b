package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/eduai-labs/eduai-backend/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Verification code engine

	CodesIssuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eduai",
		Name:      "verification_codes_issued_total",
		Help:      "One-time codes issued, by purpose.",
	}, []string{"purpose"})

	CodeValidationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eduai",
		Name:      "verification_code_validations_total",
		Help:      "Code validation attempts, by purpose and outcome.",
	}, []string{"purpose", "outcome"})

	EmailsSentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eduai",
		Name:      "emails_sent_total",
		Help:      "Code delivery emails attempted, by outcome.",
	}, []string{"outcome"})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eduai",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eduai",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		CodesIssuedTotal,
		CodeValidationsTotal,
		EmailsSentTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer exposes /metrics plus the liveness and readiness probes on a
// separate port from the API.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})

	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(result)
}
