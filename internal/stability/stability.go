// Package stability analyses how much of a portfolio is capital protected,
// its credit exposure and the make-up of its retirement accounts.
package stability

import (
	"github.com/samber/lo"

	"github.com/mtlprog/wealthlens/internal/domain"
)

// Grade is the stability band.
type Grade string

const (
	GradeHigh   Grade = "High"
	GradeMedium Grade = "Medium"
	GradeLow    Grade = "Low"
)

const (
	highGradeThreshold   = 60.0
	mediumGradeThreshold = 30.0
	mediumStabilityShare = 0.5
)

// Source is a capital-protected holding.
type Source struct {
	Name  string           `json:"name"`
	Type  domain.AssetKind `json:"type"`
	Value float64          `json:"value"`
}

// Metrics is the capital-protected versus market-linked split.
type Metrics struct {
	TotalValue              float64  `json:"totalValue"`
	CapitalProtectedValue   float64  `json:"capitalProtectedValue"`
	CapitalProtectedPercent float64  `json:"capitalProtectedPercent"`
	CapitalProtectedSources []Source `json:"capitalProtectedSources"`
	MarketLinkedValue       float64  `json:"marketLinkedValue"`
	MarketLinkedPercent     float64  `json:"marketLinkedPercent"`
	EquityExposurePercent   float64  `json:"equityExposurePercent"`
	StabilityScore          int      `json:"stabilityScore"`
	StabilityGrade          Grade    `json:"stabilityGrade"`
}

// Analysis is the full stability output.
type Analysis struct {
	Metrics    Metrics    `json:"metrics"`
	CreditRisk CreditRisk `json:"creditRisk"`
	Retirement Retirement `json:"retirement"`
	Insights   []string   `json:"insights"`
}

// CalculateStabilityAnalysis analyses normalized holdings. An empty list
// yields zero metrics, Low grade and no insights.
func CalculateStabilityAnalysis(holdings []domain.NormalizedHolding) Analysis {
	m := calculateMetrics(holdings)
	credit := calculateCreditRisk(holdings, m.TotalValue)
	retirement := calculateRetirement(holdings)

	return Analysis{
		Metrics:    m,
		CreditRisk: credit,
		Retirement: retirement,
		Insights:   insights(m, credit, retirement),
	}
}

func calculateMetrics(holdings []domain.NormalizedHolding) Metrics {
	total := sumValue(holdings)
	protected := lo.Filter(holdings, func(h domain.NormalizedHolding, _ int) bool { return h.IsCapitalProtected() })
	marketLinked := lo.Filter(holdings, func(h domain.NormalizedHolding, _ int) bool { return h.IsMarketLinked() })
	medium := lo.Filter(holdings, func(h domain.NormalizedHolding, _ int) bool {
		return h.StabilityFlag == domain.StabilityMedium && !h.IsCapitalProtected()
	})
	equity := lo.Filter(holdings, func(h domain.NormalizedHolding, _ int) bool {
		return h.AssetBucket == domain.BucketEquity
	})

	protectedValue := sumValue(protected)
	marketValue := sumValue(marketLinked)
	protectedPct := domain.Percent(protectedValue, total)
	mediumPct := domain.Percent(sumValue(medium), total)

	score := int(domain.Round(domain.Clamp(protectedPct+mediumPct*mediumStabilityShare, 0, 100), 0))

	sources := lo.Map(protected, func(h domain.NormalizedHolding, _ int) Source {
		return Source{Name: h.Name, Type: h.Kind, Value: h.CurrentValue}
	})

	return Metrics{
		TotalValue:              domain.Round(total, 2),
		CapitalProtectedValue:   domain.Round(protectedValue, 2),
		CapitalProtectedPercent: domain.Round(protectedPct, 2),
		CapitalProtectedSources: sources,
		MarketLinkedValue:       domain.Round(marketValue, 2),
		MarketLinkedPercent:     domain.Round(domain.Percent(marketValue, total), 2),
		EquityExposurePercent:   domain.Round(domain.Percent(sumValue(equity), total), 2),
		StabilityScore:          score,
		StabilityGrade:          gradeFor(float64(score)),
	}
}

func gradeFor(score float64) Grade {
	switch {
	case score >= highGradeThreshold:
		return GradeHigh
	case score >= mediumGradeThreshold:
		return GradeMedium
	default:
		return GradeLow
	}
}

func sumValue(holdings []domain.NormalizedHolding) float64 {
	return lo.SumBy(holdings, func(h domain.NormalizedHolding) float64 { return h.CurrentValue })
}
