package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/mtlprog/wealthlens/internal/health"
	"github.com/mtlprog/wealthlens/internal/metrics"
	"github.com/mtlprog/wealthlens/internal/report"
)

// ServerConfig holds the settings NewServer needs beyond its services.
type ServerConfig struct {
	Port         string
	AdminAPIKey  string
	HistoryLimit int
}

// NewServer creates an HTTP server with all routes configured.
func NewServer(cfg ServerConfig, reports *report.Service, engine *health.Engine) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, reports, engine),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func newRouter(cfg ServerConfig, reports *report.Service, engine *health.Engine) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", metrics.Handler())

	analysis := NewAnalysisHandler(engine)
	mux.HandleFunc("POST /api/v1/normalize", analysis.Normalize)
	mux.HandleFunc("POST /api/v1/health-score", analysis.HealthScore)
	mux.HandleFunc("POST /api/v1/stability", analysis.Stability)
	mux.HandleFunc("POST /api/v1/scenarios/{kind}", analysis.Scenario)
	mux.HandleFunc("POST /api/v1/explain", analysis.Explain)
	mux.HandleFunc("POST /api/v1/guardrails/check", analysis.CheckGuardrails)

	if reports != nil {
		handler := NewHandler(reports, cfg.HistoryLimit)
		mux.HandleFunc("GET /api/v1/users/{userID}/report", handler.GetCurrentReport)
		mux.HandleFunc("GET /api/v1/users/{userID}/reports", handler.ListReports)
		mux.HandleFunc("GET /api/v1/users/{userID}/reports/latest", handler.GetLatestReport)
		mux.HandleFunc("GET /api/v1/users/{userID}/reports/{date}", handler.GetReportByDate)

		generateHandler := http.HandlerFunc(handler.GenerateReports)
		if cfg.AdminAPIKey != "" {
			mux.Handle("POST /api/v1/reports/generate", requireAuth(cfg.AdminAPIKey, generateHandler))
		} else {
			mux.Handle("POST /api/v1/reports/generate", generateHandler)
		}
	}

	return metrics.Middleware(mux)
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
