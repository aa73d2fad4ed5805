// Package metrics provides Prometheus instrumentation for the service.
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
	// HTTPRequestsTotal counts HTTP requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wealthlens_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wealthlens_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "route"})

	// HealthScores is the distribution of computed total health scores.
	HealthScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wealthlens_health_score",
		Help:    "Computed portfolio health scores",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	})

	HealthGrades = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wealthlens_health_grade_total",
		Help: "Computed health scores by grade",
	}, []string{"grade"})

	// GuardrailTriggers counts triggered compliance detectors.
	GuardrailTriggers = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wealthlens_guardrail_triggers_total",
		Help: "Triggered guardrail detectors by type and name",
	}, []string{"type", "name"})

	// ReportCache counts report cache lookups by result (hit, miss, error).
	ReportCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wealthlens_report_cache_total",
		Help: "Report cache lookups by result",
	}, []string{"result"})

	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wealthlens_reports_generated_total",
		Help: "Reports generated by outcome",
	}, []string{"outcome"})
)

// ObserveScore records a computed health score and its grade.
func ObserveScore(score int, grade string) {
	HealthScores.Observe(float64(score))
	HealthGrades.WithLabelValues(grade).Inc()
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request metrics labelled by the matched route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
