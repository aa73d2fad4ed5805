// Package report builds, stores and caches per-user portfolio reports.
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mtlprog/wealthlens/internal/domain"
	"github.com/mtlprog/wealthlens/internal/health"
	"github.com/mtlprog/wealthlens/internal/normalize"
	"github.com/mtlprog/wealthlens/internal/scenario"
	"github.com/mtlprog/wealthlens/internal/stability"
)

// DateLayout is the wire format of report dates.
const DateLayout = "2006-01-02"

// Report is one user's computed portfolio analysis for a day.
type Report struct {
	ID         uuid.UUID                   `json:"id"`
	UserID     string                      `json:"userId"`
	ReportDate time.Time                   `json:"reportDate"`
	Health     health.PortfolioHealthScore `json:"health"`
	Stability  stability.Analysis          `json:"stability"`
	Totals     normalize.Summary           `json:"totals"`
	Scenarios  []scenario.Result           `json:"scenarios"`
	Summary    string                      `json:"summary"`
	CreatedAt  time.Time                   `json:"createdAt"`
}

// Scenarios included in every report.
var reportScenarios = []scenario.Kind{
	scenario.KindMarketDrawdown,
	scenario.KindRateShock,
	scenario.KindMarketRecovery,
}

// Build runs the full pipeline over raw holdings.
func Build(userID string, raw []domain.RawHolding, engine *health.Engine, now time.Time) *Report {
	holdings := normalize.NormalizeHoldings(raw)
	score := engine.Calculate(holdings, health.Options{Now: func() time.Time { return now }})
	analysis := stability.CalculateStabilityAnalysis(holdings)

	scenarios := make([]scenario.Result, 0, len(reportScenarios))
	for _, kind := range reportScenarios {
		res, err := scenario.Run(kind, analysis, scenario.Params{})
		if err != nil {
			slog.Warn("skipping report scenario", "kind", kind, "error", err)
			continue
		}
		scenarios = append(scenarios, res)
	}

	return &Report{
		ID:         uuid.New(),
		UserID:     userID,
		ReportDate: Day(now),
		Health:     score,
		Stability:  analysis,
		Totals:     normalize.Summarize(holdings),
		Scenarios:  scenarios,
		Summary:    score.Summary(),
		CreatedAt:  now.UTC(),
	}
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD report date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Fingerprint identifies a holdings set. Reports built from equal holdings
// share a fingerprint.
func Fingerprint(raw []domain.RawHolding) string {
	data, err := json.Marshal(raw)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
