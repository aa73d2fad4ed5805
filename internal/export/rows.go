package export

import (
	"strings"

	"github.com/samber/lo"

	"github.com/mtlprog/wealthlens/internal/health"
	"github.com/mtlprog/wealthlens/internal/report"
	"github.com/mtlprog/wealthlens/internal/scenario"
)

const (
	SummarySheet = "SUMMARY"
	PillarsSheet = "PILLARS"
)

// pillarOrder fixes the pillar columns of the SUMMARY sheet.
var pillarOrder = []health.PillarName{
	health.PillarAssetAllocation,
	health.PillarConcentrationRisk,
	health.PillarDiversificationOverlap,
	health.PillarMarketCapBalance,
	health.PillarSectorBalance,
	health.PillarGeographyBalance,
	health.PillarInvestmentQuality,
}

// summaryHeader returns the SUMMARY sheet columns.
// Date | User | Total Value | Score | Grade | 7 pillars | Stability | Stability Grade |
// Capital Protected % | Market-linked % | Credit Risk | Drawdown Impact %
func summaryHeader() []any {
	header := []any{"Date", "User", "Total Value", "Score", "Grade"}
	for _, p := range pillarOrder {
		header = append(header, p.DisplayName())
	}
	return append(header,
		"Stability", "Stability Grade", "Capital Protected %", "Market-linked %",
		"Credit Risk", "Drawdown Impact %")
}

func summaryRow(r *report.Report) []any {
	row := []any{
		r.ReportDate.Format(report.DateLayout),
		r.UserID,
		r.Health.Metadata.TotalValue,
		r.Health.TotalScore,
		health.GradeLabel(r.Health.Grade),
	}
	for _, name := range pillarOrder {
		if p, ok := r.Health.Pillar(name); ok {
			row = append(row, p.Score)
		} else {
			row = append(row, nil)
		}
	}

	m := r.Stability.Metrics
	row = append(row,
		m.StabilityScore,
		string(m.StabilityGrade),
		m.CapitalProtectedPercent,
		m.MarketLinkedPercent,
		string(r.Stability.CreditRisk.RiskLevel),
	)

	drawdown, ok := lo.Find(r.Scenarios, func(s scenario.Result) bool { return s.Kind == scenario.KindMarketDrawdown })
	if ok {
		row = append(row, drawdown.ImpactPercent())
	} else {
		row = append(row, nil)
	}
	return row
}

// buildSummary builds the SUMMARY sheet data, one row per report.
func buildSummary(reports []*report.Report) [][]any {
	data := make([][]any, 0, len(reports)+1)
	data = append(data, summaryHeader())
	for _, r := range reports {
		data = append(data, summaryRow(r))
	}
	return data
}

var pillarsHeader = []any{"Date", "User", "Pillar", "Score", "Weight", "Status", "Deductions"}

// buildPillars builds the PILLARS sheet data, one row per report and pillar.
func buildPillars(reports []*report.Report) [][]any {
	data := [][]any{pillarsHeader}
	for _, r := range reports {
		date := r.ReportDate.Format(report.DateLayout)
		for _, p := range r.Health.PillarBreakdown {
			reasons := lo.Map(p.Deductions, func(d health.Deduction, _ int) string { return d.Reason })
			data = append(data, []any{
				date, r.UserID, p.DisplayName, p.Score, p.Weight, string(p.Status),
				strings.Join(reasons, "; "),
			})
		}
	}
	return data
}
