package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mtlprog/wealthlens/internal/health"
)

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{"valid token", "Bearer secret-key", http.StatusOK, true},
		{"missing header", "", http.StatusUnauthorized, false},
		{"wrong token", "Bearer wrong-key", http.StatusUnauthorized, false},
		{"malformed header", "Basic secret-key", http.StatusUnauthorized, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			requireAuth("secret-key", next).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if called != tt.wantCalled {
				t.Errorf("next called = %v, want %v", called, tt.wantCalled)
			}
		})
	}
}

func TestHealthzAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t, "")

	if w := serve(router, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Errorf("/healthz status = %d, want 200", w.Code)
	}

	serve(router, http.MethodPost, "/api/v1/health-score", portfolioJSON(t))
	w := serve(router, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "wealthlens_http_requests_total") {
		t.Error("/metrics does not expose the request counter")
	}
}

func TestRouterWithoutReportService(t *testing.T) {
	router := newRouter(ServerConfig{}, nil, health.NewEngine(health.NewDefaultRegistry()))

	if w := serve(router, http.MethodGet, "/api/v1/users/"+testUser+"/report", ""); w.Code != http.StatusNotFound {
		t.Errorf("report route status = %d, want 404", w.Code)
	}
	if w := serve(router, http.MethodPost, "/api/v1/stability", portfolioJSON(t)); w.Code != http.StatusOK {
		t.Errorf("stability status = %d, want 200", w.Code)
	}
}

func TestRouterMethodMismatch(t *testing.T) {
	router, _ := newTestRouter(t, "")
	if w := serve(router, http.MethodGet, "/api/v1/health-score", ""); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/v1/health-score status = %d, want 405", w.Code)
	}
}

func TestNewServer(t *testing.T) {
	svc, _ := newTestService(t)
	srv := NewServer(ServerConfig{Port: "9090"}, svc, health.NewEngine(health.NewDefaultRegistry()))
	if srv.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", srv.Addr)
	}
	if srv.Handler == nil {
		t.Error("Handler is nil")
	}
}
