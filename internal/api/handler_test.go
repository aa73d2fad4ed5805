package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mtlprog/wealthlens/internal/domain"
	"github.com/mtlprog/wealthlens/internal/health"
	"github.com/mtlprog/wealthlens/internal/holding"
	"github.com/mtlprog/wealthlens/internal/report"
	"github.com/mtlprog/wealthlens/internal/scenario"
)

const testUser = "7f1c3a4e-2b8d-4c6f-9a0e-5d3b1f2e4c6a"

func rawHolding(id, assetType string, value float64) domain.RawHolding {
	return domain.RawHolding{
		ID:            id,
		Assets:        &domain.RawAsset{ID: "a-" + id, Name: "Holding " + id, AssetType: assetType},
		InvestedValue: domain.Amount(value),
	}
}

func testPortfolio() []domain.RawHolding {
	return []domain.RawHolding{
		rawHolding("eq", "equity", 400000),
		rawHolding("fd", "fd", 300000),
		rawHolding("epf", "epf", 300000),
	}
}

func newTestService(t *testing.T) (*report.Service, *report.MemoryRepository) {
	t.Helper()
	holdings := holding.NewMemoryRepository()
	holdings.Put(testUser, testPortfolio())
	repo := report.NewMemoryRepository()
	return report.NewService(holdings, repo), repo
}

func newTestRouter(t *testing.T, adminKey string) (http.Handler, *report.MemoryRepository) {
	t.Helper()
	svc, repo := newTestService(t)
	cfg := ServerConfig{Port: "0", AdminAPIKey: adminKey, HistoryLimit: 30}
	return newRouter(cfg, svc, health.NewEngine(health.NewDefaultRegistry())), repo
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func portfolioJSON(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(testPortfolio())
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestGetCurrentReport(t *testing.T) {
	router, repo := newTestRouter(t, "")

	w := serve(router, http.MethodGet, "/api/v1/users/"+testUser+"/report", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body)
	}
	var got report.Report
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.UserID != testUser || got.Health.TotalScore != 70 {
		t.Errorf("report = %s score %d, want %s score 70", got.UserID, got.Health.TotalScore, testUser)
	}
	if _, err := repo.GetLatest(context.Background(), testUser); err != nil {
		t.Errorf("current report was not stored: %v", err)
	}
}

func TestGetCurrentReportErrors(t *testing.T) {
	router, _ := newTestRouter(t, "")

	tests := []struct {
		name   string
		user   string
		status int
	}{
		{"invalid id", "not-a-uuid", http.StatusBadRequest},
		{"no holdings", "00000000-0000-0000-0000-000000000001", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodGet, "/api/v1/users/"+tt.user+"/report", "")
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestGetReportByDate(t *testing.T) {
	router, repo := newTestRouter(t, "")
	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	if err := repo.Save(context.Background(), &report.Report{UserID: testUser, ReportDate: date}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		date   string
		status int
	}{
		{"found", "2026-02-28", http.StatusOK},
		{"missing", "2026-02-27", http.StatusNotFound},
		{"bad format", "28-02-2026", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodGet, "/api/v1/users/"+testUser+"/reports/"+tt.date, "")
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestGetLatestReport(t *testing.T) {
	router, repo := newTestRouter(t, "")

	if w := serve(router, http.MethodGet, "/api/v1/users/"+testUser+"/reports/latest", ""); w.Code != http.StatusNotFound {
		t.Errorf("empty history status = %d, want 404", w.Code)
	}
	if w := serve(router, http.MethodGet, "/api/v1/users/not-a-uuid/reports/latest", ""); w.Code != http.StatusBadRequest {
		t.Errorf("invalid id status = %d, want 400", w.Code)
	}

	for _, day := range []int{3, 9, 5} {
		r := &report.Report{UserID: testUser, ReportDate: time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)}
		if err := repo.Save(context.Background(), r); err != nil {
			t.Fatal(err)
		}
	}

	w := serve(router, http.MethodGet, "/api/v1/users/"+testUser+"/reports/latest", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body)
	}
	var got report.Report
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.ReportDate.Day() != 9 {
		t.Errorf("latest report date = %s, want 2026-03-09", got.ReportDate.Format(time.DateOnly))
	}
}

func TestListReports(t *testing.T) {
	router, repo := newTestRouter(t, "")
	for day := 1; day <= 4; day++ {
		r := &report.Report{UserID: testUser, ReportDate: time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC)}
		if err := repo.Save(context.Background(), r); err != nil {
			t.Fatal(err)
		}
	}

	w := serve(router, http.MethodGet, "/api/v1/users/"+testUser+"/reports?limit=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got []report.Report
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ReportDate.Day() != 4 {
		t.Errorf("got %d reports, want 2 starting at day 4", len(got))
	}

	w = serve(router, http.MethodGet, "/api/v1/users/"+testUser+"/reports?limit=abc", "")
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Errorf("invalid limit: got %d reports, want 4", len(got))
	}
}

func TestGenerateReports(t *testing.T) {
	router, repo := newTestRouter(t, "admin")

	if w := serve(router, http.MethodPost, "/api/v1/reports/generate", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("without token status = %d, want 401", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/generate", nil)
	req.Header.Set("Authorization", "Bearer admin")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]int
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["generated"] != 1 {
		t.Errorf("generated = %d, want 1", body["generated"])
	}
	if _, err := repo.GetLatest(context.Background(), testUser); err != nil {
		t.Errorf("GetLatest() error = %v", err)
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, "")

	for name, body := range map[string]string{
		"array":  portfolioJSON(t),
		"object": `{"holdings":` + portfolioJSON(t) + `}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := serve(router, http.MethodPost, "/api/v1/normalize", body)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body)
			}
			var got struct {
				Holdings []domain.NormalizedHolding `json:"holdings"`
			}
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatal(err)
			}
			if len(got.Holdings) != 3 {
				t.Errorf("holdings = %d, want 3", len(got.Holdings))
			}
		})
	}
}

func TestAnalysisRejectsBadBody(t *testing.T) {
	router, _ := newTestRouter(t, "")
	for _, path := range []string{"/api/v1/normalize", "/api/v1/health-score", "/api/v1/stability", "/api/v1/explain"} {
		for _, body := range []string{"", "{not json"} {
			if w := serve(router, http.MethodPost, path, body); w.Code != http.StatusBadRequest {
				t.Errorf("POST %s %q status = %d, want 400", path, body, w.Code)
			}
		}
	}
}

func TestHealthScoreEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := serve(router, http.MethodPost, "/api/v1/health-score", portfolioJSON(t))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got health.PortfolioHealthScore
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.TotalScore != 70 {
		t.Errorf("TotalScore = %d, want 70", got.TotalScore)
	}
}

func TestStabilityEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := serve(router, http.MethodPost, "/api/v1/stability", portfolioJSON(t))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got struct {
		Metrics struct {
			StabilityScore int `json:"stabilityScore"`
		} `json:"metrics"`
	}
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Metrics.StabilityScore != 60 {
		t.Errorf("StabilityScore = %d, want 60", got.Metrics.StabilityScore)
	}
}

func TestScenarioEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, "")

	sectored := testPortfolio()
	banking := "Banking"
	sectored[0].Assets.Sector = &banking
	sectoredJSON, err := json.Marshal(sectored)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		kind       string
		body       string
		status     int
		wantImpact float64
	}{
		{"drawdown default", "drawdown", portfolioJSON(t), http.StatusOK, 8},
		{"drawdown custom", "marketDrawdown", `{"holdings":` + portfolioJSON(t) + `,"declinePercent":-10}`, http.StatusOK, 4},
		{"sector derived exposure", "sector", `{"holdings":` + string(sectoredJSON) + `,"sector":"banking"}`, http.StatusOK, 12},
		{"sector explicit exposure", "sectorShock", `{"holdings":` + portfolioJSON(t) + `,"sector":"IT","exposurePercent":20}`, http.StatusOK, 6},
		{"sector missing", "sector", portfolioJSON(t), http.StatusBadRequest, 0},
		{"unknown kind", "meteor", portfolioJSON(t), http.StatusNotFound, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodPost, "/api/v1/scenarios/"+tt.kind, tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d; body = %s", w.Code, tt.status, w.Body)
			}
			if tt.status != http.StatusOK {
				return
			}
			var got struct {
				MarketDrawdown *struct {
					PortfolioImpactPercent float64 `json:"portfolioImpactPercent"`
				} `json:"marketDrawdown"`
				SectorShock *struct {
					PortfolioImpactPercent float64 `json:"portfolioImpactPercent"`
				} `json:"sectorShock"`
			}
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatal(err)
			}
			var impact float64
			switch {
			case got.MarketDrawdown != nil:
				impact = got.MarketDrawdown.PortfolioImpactPercent
			case got.SectorShock != nil:
				impact = got.SectorShock.PortfolioImpactPercent
			}
			if impact != tt.wantImpact {
				t.Errorf("impact = %v, want %v", impact, tt.wantImpact)
			}
		})
	}
}

func TestScenarioUnknownKindListsKinds(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := serve(router, http.MethodPost, "/api/v1/scenarios/meteor", portfolioJSON(t))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	for _, kind := range scenario.AllKinds() {
		if !strings.Contains(body["error"], string(kind)) {
			t.Errorf("error %q does not name %s", body["error"], kind)
		}
	}
}

func TestExplainEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := serve(router, http.MethodPost, "/api/v1/explain", `{"holdings":`+portfolioJSON(t)+`}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got health.Explanation
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got.Summary, "70 out of 100") {
		t.Errorf("Summary = %q, want it to mention 70 out of 100", got.Summary)
	}
	if len(got.Pillars) != 7 {
		t.Errorf("Pillars = %d, want 7", len(got.Pillars))
	}
}

func TestCheckGuardrails(t *testing.T) {
	router, _ := newTestRouter(t, "")

	tests := []struct {
		name        string
		body        string
		status      int
		wantBlocked bool
		wantAction  string
	}{
		{"safe question", `{"text":"How is my portfolio doing?"}`, http.StatusOK, false, "proceed"},
		{"advice question", `{"text":"Should I buy HDFC Bank?","mode":"input"}`, http.StatusOK, true, "refuse"},
		{"anxious question", `{"text":"I'm freaking out about my portfolio"}`, http.StatusOK, false, "calm"},
		{"output", `{"text":"Prices will rise and you can't go wrong.","mode":"output"}`, http.StatusOK, false, ""},
		{"bad mode", `{"text":"hello","mode":"other"}`, http.StatusBadRequest, false, ""},
		{"empty text", `{"text":"  "}`, http.StatusBadRequest, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodPost, "/api/v1/guardrails/check", tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}
			var got guardrailResponse
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatal(err)
			}
			if got.Blocked != tt.wantBlocked || string(got.Action) != tt.wantAction {
				t.Errorf("blocked/action = %v/%q, want %v/%q", got.Blocked, got.Action, tt.wantBlocked, tt.wantAction)
			}
		})
	}
}

func TestCheckGuardrailsOutputSanitized(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := serve(router, http.MethodPost, "/api/v1/guardrails/check", `{"text":"Prices will rise and you can't go wrong.","mode":"output"}`)
	var got guardrailResponse
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got.Results) == 0 {
		t.Error("Results is empty, want triggered post-generation checks")
	}
	if got.Sanitized == "" || strings.Contains(got.Sanitized, "can't go wrong") {
		t.Errorf("Sanitized = %q", got.Sanitized)
	}
}

func TestAnalysisAcceptsLooselyTypedStrings(t *testing.T) {
	router, _ := newTestRouter(t, "")
	body := `[
		{"id": 1, "assets": {"id": 2, "name": 5, "asset_type": "equity"}, "invested_value": 400000},
		{"id": 3, "assets": {"id": 4, "name": "Corp bond", "asset_type": "bond"}, "invested_value": 100000,
		 "notes": {"creditRating": "A"}}
	]`

	if w := serve(router, http.MethodPost, "/api/v1/health-score", body); w.Code != http.StatusOK {
		t.Fatalf("health-score status = %d, want 200; body = %s", w.Code, w.Body)
	}

	w := serve(router, http.MethodPost, "/api/v1/stability", body)
	if w.Code != http.StatusOK {
		t.Fatalf("stability status = %d, want 200", w.Code)
	}
	var got struct {
		CreditRisk struct {
			RiskLevel    string `json:"riskLevel"`
			BelowAACount int    `json:"belowAACount"`
		} `json:"creditRisk"`
	}
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.CreditRisk.RiskLevel != "High" || got.CreditRisk.BelowAACount != 1 {
		t.Errorf("CreditRisk = %+v, want High with one below-AA bond", got.CreditRisk)
	}
}
