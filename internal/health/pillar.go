package health

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/mtlprog/wealthlens/internal/domain"
	"github.com/mtlprog/wealthlens/internal/explain"
	"github.com/mtlprog/wealthlens/internal/normalize"
)

// Pillar weights; they sum to exactly 1.0.
const (
	WeightAssetAllocation        = 0.20
	WeightConcentrationRisk      = 0.20
	WeightDiversificationOverlap = 0.15
	WeightMarketCapBalance       = 0.15
	WeightSectorBalance          = 0.10
	WeightGeographyBalance       = 0.05
	WeightInvestmentQuality      = 0.15
)

const weightTolerance = 1e-9

// Input is what every pillar sees. MarketLinked holds the market-driven,
// non-retirement subset used by the diversification, market cap, sector
// and geography pillars.
type Input struct {
	Holdings     []domain.NormalizedHolding
	Summary      normalize.Summary
	MarketLinked []domain.NormalizedHolding
}

// NewInput derives the summary and market-linked subset from normalized holdings.
func NewInput(holdings []domain.NormalizedHolding) Input {
	return Input{
		Holdings: holdings,
		Summary:  normalize.Summarize(holdings),
		MarketLinked: lo.Filter(holdings, func(h domain.NormalizedHolding, _ int) bool {
			return h.IsMarketLinked() && h.AssetBucket != domain.BucketRetirement
		}),
	}
}

// Pillar computes one weighted sub-score.
type Pillar interface {
	Name() PillarName
	Weight() float64
	Calculate(in Input) PillarScore
}

// Registry holds pillars in evaluation order.
type Registry struct {
	pillars    []Pillar
	registered map[PillarName]bool
}

func NewRegistry() *Registry {
	return &Registry{registered: make(map[PillarName]bool)}
}

// Register adds a pillar.
// Panics if the pillar name is already registered (programming error).
func (r *Registry) Register(p Pillar) {
	if r.registered[p.Name()] {
		panic(fmt.Sprintf("duplicate pillar %q registered", p.Name()))
	}
	r.registered[p.Name()] = true
	r.pillars = append(r.pillars, p)
}

// Pillars returns the registered pillars in order.
func (r *Registry) Pillars() []Pillar {
	return append([]Pillar(nil), r.pillars...)
}

// TotalWeight sums the weights of every registered pillar.
func (r *Registry) TotalWeight() float64 {
	return lo.SumBy(r.pillars, func(p Pillar) float64 { return p.Weight() })
}

// Validate checks that the weights sum to 1.0.
func (r *Registry) Validate() error {
	if total := r.TotalWeight(); math.Abs(total-1.0) > weightTolerance {
		return fmt.Errorf("pillar weights sum to %v, want 1.0", total)
	}
	return nil
}

// CalculateAll runs every pillar in registration order.
func (r *Registry) CalculateAll(in Input) []PillarScore {
	return lo.Map(r.pillars, func(p Pillar, _ int) PillarScore { return p.Calculate(in) })
}

// NewDefaultRegistry registers the seven standard pillars.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(assetAllocationPillar{})
	r.Register(concentrationPillar{})
	r.Register(diversificationPillar{})
	r.Register(placeholderPillar{name: PillarMarketCapBalance, weight: WeightMarketCapBalance, neutral: 75,
		reason: "Market cap data not available for detailed analysis"})
	r.Register(sectorPillar{})
	r.Register(placeholderPillar{name: PillarGeographyBalance, weight: WeightGeographyBalance, neutral: 70,
		reason: "Geographic exposure data not available for detailed analysis"})
	r.Register(placeholderPillar{name: PillarInvestmentQuality, weight: WeightInvestmentQuality, neutral: 70,
		reason: "Fund quality metrics not available for detailed analysis"})
	return r
}

// newPillarScore subtracts every impact from 100, clamps and rounds.
func newPillarScore(name PillarName, weight float64, status PillarStatus, deductions []Deduction) PillarScore {
	if deductions == nil {
		deductions = []Deduction{}
	}
	impact := lo.SumBy(deductions, func(d Deduction) float64 { return d.Impact })
	score := int(math.Round(domain.Clamp(100-impact, 0, 100)))

	return PillarScore{
		Name:        name,
		DisplayName: name.DisplayName(),
		Score:       score,
		Weight:      weight,
		Status:      status,
		Deductions:  deductions,
		Metadata:    pillarMetadata(name, score),
	}
}

func pillarMetadata(name PillarName, score int) PillarMetadata {
	md := PillarMetadata{Tooltip: explain.PillarExplanation(string(name), score)}
	switch {
	case score >= 80:
		md.Color, md.Severity = "green", "low"
	case score >= 65:
		md.Color, md.Severity = "blue", "medium"
	case score >= 50:
		md.Color, md.Severity = "amber", "high"
	default:
		md.Color, md.Severity = "red", "critical"
	}
	return md
}

// scaled returns excess*factor capped at limit, rounded to two decimals.
func scaled(excess, factor, limit float64) float64 {
	return domain.Round(math.Min(excess*factor, limit), 2)
}
