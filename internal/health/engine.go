package health

import (
	"math"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/mtlprog/wealthlens/internal/domain"
)

const (
	MaxTopRisks            = 5
	MaxTopImprovements     = 5
	weakPillarCount        = 3
	weakPillarScore        = 70
	smallPortfolioValue    = 100000.0
	smallPortfolioHoldings = 5
)

// Suggestions shown for weak pillars.
var improvementByPillar = map[PillarName]string{
	PillarAssetAllocation:        "Review your equity and debt mix against the 55-75% equity and 20-35% debt ranges",
	PillarConcentrationRisk:      "Consider spreading value across more holdings so no single position dominates",
	PillarDiversificationOverlap: "Review overlapping mutual funds and consider consolidating similar schemes",
	PillarMarketCapBalance:       "Review the balance between large, mid and small cap exposure",
	PillarSectorBalance:          "Monitor sector exposure and consider rebalancing sectors above 25% of equity",
	PillarGeographyBalance:       "Consider whether some international exposure fits your goals",
	PillarInvestmentQuality:      "Review the track record and costs of your funds and stocks",
}

const (
	SmallPortfolioImprovement = "Consider gradually building the portfolio across more holdings to improve diversification"
	EmptyPortfolioImprovement = "Add holdings to your portfolio to see a health score"
)

// Options tune a calculation. The zero value uses time.Now.
type Options struct {
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Engine scores portfolios with a fixed pillar registry.
type Engine struct {
	registry *Registry
}

// NewEngine creates an engine over the given registry.
// Panics if the registry weights do not sum to 1.0 (programming error).
func NewEngine(r *Registry) *Engine {
	if err := r.Validate(); err != nil {
		panic(err.Error())
	}
	return &Engine{registry: r}
}

// CalculatePortfolioHealthScore scores holdings with the default pillars.
func CalculatePortfolioHealthScore(holdings []domain.NormalizedHolding, opts Options) PortfolioHealthScore {
	return NewEngine(NewDefaultRegistry()).Calculate(holdings, opts)
}

// Calculate runs every pillar and combines them into the weighted total.
func (e *Engine) Calculate(holdings []domain.NormalizedHolding, opts Options) PortfolioHealthScore {
	if len(holdings) == 0 {
		return emptyScore(opts.now())
	}

	in := NewInput(holdings)
	pillars := e.registry.CalculateAll(in)

	weighted := lo.SumBy(pillars, func(p PillarScore) float64 { return float64(p.Score) * p.Weight })
	total := int(math.Round(domain.Clamp(weighted, 0, 100)))

	return PortfolioHealthScore{
		TotalScore:      total,
		Grade:           GradeFor(total),
		PillarBreakdown: pillars,
		TopRisks:        topRisks(pillars),
		TopImprovements: topImprovements(pillars, in.Summary.TotalValue, len(holdings)),
		Metadata: ScoreMetadata{
			CalculatedAt:  opts.now().UTC(),
			TotalHoldings: len(holdings),
			TotalValue:    domain.Round(in.Summary.TotalValue, 2),
		},
	}
}

func emptyScore(now time.Time) PortfolioHealthScore {
	return PortfolioHealthScore{
		TotalScore:      0,
		Grade:           GradePoor,
		PillarBreakdown: []PillarScore{},
		TopRisks:        []Deduction{},
		TopImprovements: []string{EmptyPortfolioImprovement},
		Metadata:        ScoreMetadata{CalculatedAt: now.UTC()},
	}
}

// topRisks returns the highest-impact high-severity deductions. Ties keep
// pillar order.
func topRisks(pillars []PillarScore) []Deduction {
	risks := lo.Filter(lo.FlatMap(pillars, func(p PillarScore, _ int) []Deduction { return p.Deductions }),
		func(d Deduction, _ int) bool { return d.Severity == SeverityHigh })
	slices.SortStableFunc(risks, func(a, b Deduction) int {
		switch {
		case a.Impact > b.Impact:
			return -1
		case a.Impact < b.Impact:
			return 1
		default:
			return 0
		}
	})
	if len(risks) > MaxTopRisks {
		risks = risks[:MaxTopRisks]
	}
	return risks
}

// topImprovements maps the three lowest pillars under 70 to suggestions and
// adds the small-portfolio hint when it applies.
func topImprovements(pillars []PillarScore, totalValue float64, holdings int) []string {
	weak := lo.Filter(pillars, func(p PillarScore, _ int) bool { return p.Score < weakPillarScore })
	slices.SortStableFunc(weak, func(a, b PillarScore) int { return a.Score - b.Score })
	if len(weak) > weakPillarCount {
		weak = weak[:weakPillarCount]
	}

	out := []string{}
	for _, p := range weak {
		if s, ok := improvementByPillar[p.Name]; ok {
			out = append(out, s)
		}
	}
	if totalValue < smallPortfolioValue && holdings < smallPortfolioHoldings {
		out = append(out, SmallPortfolioImprovement)
	}
	if len(out) > MaxTopImprovements {
		out = out[:MaxTopImprovements]
	}
	return out
}
