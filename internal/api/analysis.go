package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/mtlprog/wealthlens/internal/domain"
	"github.com/mtlprog/wealthlens/internal/guardrail"
	"github.com/mtlprog/wealthlens/internal/health"
	"github.com/mtlprog/wealthlens/internal/metrics"
	"github.com/mtlprog/wealthlens/internal/normalize"
	"github.com/mtlprog/wealthlens/internal/scenario"
	"github.com/mtlprog/wealthlens/internal/stability"
)

const maxBodyBytes = 1 << 20

// AnalysisHandler scores holdings posted in the request body. Nothing is stored.
type AnalysisHandler struct {
	engine *health.Engine
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(engine *health.Engine) *AnalysisHandler {
	return &AnalysisHandler{engine: engine}
}

// holdingsRequest accepts {"holdings": [...]} plus scenario parameters.
type holdingsRequest struct {
	Holdings []domain.RawHolding `json:"holdings"`
	scenario.Params
}

// decodeBody reads a holdings request. A bare JSON array is accepted as the
// holdings list.
func decodeBody(w http.ResponseWriter, r *http.Request) (holdingsRequest, error) {
	var req holdingsRequest
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return req, fmt.Errorf("reading body: %w", err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return req, errors.New("empty body")
	}
	if body[0] == '[' {
		err = json.Unmarshal(body, &req.Holdings)
	} else {
		err = json.Unmarshal(body, &req)
	}
	if err != nil {
		return req, fmt.Errorf("decoding body: %w", err)
	}
	return req, nil
}

func (h *AnalysisHandler) normalized(w http.ResponseWriter, r *http.Request) (holdingsRequest, []domain.NormalizedHolding, bool) {
	req, err := decodeBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: expected holdings JSON")
		return req, nil, false
	}
	return req, normalize.NormalizeHoldings(req.Holdings), true
}

func (h *AnalysisHandler) score(holdings []domain.NormalizedHolding) health.PortfolioHealthScore {
	s := h.engine.Calculate(holdings, health.Options{Now: time.Now})
	metrics.ObserveScore(s.TotalScore, string(s.Grade))
	return s
}

// Normalize handles POST /api/v1/normalize.
func (h *AnalysisHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	_, holdings, ok := h.normalized(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"holdings": holdings,
		"summary":  normalize.Summarize(holdings),
	})
}

// HealthScore handles POST /api/v1/health-score.
func (h *AnalysisHandler) HealthScore(w http.ResponseWriter, r *http.Request) {
	_, holdings, ok := h.normalized(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.score(holdings))
}

// Stability handles POST /api/v1/stability.
func (h *AnalysisHandler) Stability(w http.ResponseWriter, r *http.Request) {
	_, holdings, ok := h.normalized(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stability.CalculateStabilityAnalysis(holdings))
}

// Scenario handles POST /api/v1/scenarios/{kind}.
func (h *AnalysisHandler) Scenario(w http.ResponseWriter, r *http.Request) {
	kind, err := scenario.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, unknownScenarioMessage())
		return
	}
	req, holdings, ok := h.normalized(w, r)
	if !ok {
		return
	}

	params := req.Params
	if kind == scenario.KindSectorShock {
		if strings.TrimSpace(params.Sector) == "" {
			writeError(w, http.StatusBadRequest, "sector is required for a sector shock")
			return
		}
		if params.ExposurePercent == 0 {
			params.ExposurePercent = scenario.SectorExposure(holdings, params.Sector)
		}
	}

	res, err := scenario.Run(kind, stability.CalculateStabilityAnalysis(holdings), params)
	if err != nil {
		writeError(w, http.StatusNotFound, unknownScenarioMessage())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func unknownScenarioMessage() string {
	kinds := lo.Map(scenario.AllKinds(), func(k scenario.Kind, _ int) string { return string(k) })
	return "unknown scenario, expected one of: " + strings.Join(kinds, ", ")
}

// Explain handles POST /api/v1/explain.
func (h *AnalysisHandler) Explain(w http.ResponseWriter, r *http.Request) {
	_, holdings, ok := h.normalized(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.score(holdings).Explain())
}

type guardrailRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type guardrailResponse struct {
	Results        []guardrail.Result `json:"results"`
	Blocked        bool               `json:"blocked"`
	Action         guardrail.Action   `json:"action,omitempty"`
	Rewritten      string             `json:"rewritten,omitempty"`
	CalmingContext string             `json:"calmingContext,omitempty"`
	Sanitized      string             `json:"sanitized,omitempty"`
}

// CheckGuardrails handles POST /api/v1/guardrails/check. Mode "input" checks a
// user question; mode "output" sanitizes generated text.
func (h *AnalysisHandler) CheckGuardrails(w http.ResponseWriter, r *http.Request) {
	var req guardrailRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	switch req.Mode {
	case "", "input":
		results, blocked, action := guardrail.RunPreLLM(req.Text)
		resp := guardrailResponse{Results: guardrail.Triggered(results), Blocked: blocked, Action: action}
		switch action {
		case guardrail.ActionRewrite:
			resp.Rewritten, _ = guardrail.RewriteAdviceQuery(req.Text)
		case guardrail.ActionCalm:
			resp.CalmingContext = guardrail.CalmingContext(req.Text)
		}
		writeJSON(w, http.StatusOK, resp)
	case "output":
		results, sanitized := guardrail.RunPostLLM(req.Text)
		writeJSON(w, http.StatusOK, guardrailResponse{Results: guardrail.Triggered(results), Sanitized: sanitized})
	default:
		writeError(w, http.StatusBadRequest, `mode must be "input" or "output"`)
	}
}
