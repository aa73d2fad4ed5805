package health

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"github.com/mtlprog/wealthlens/internal/domain"
)

const (
	SingleHoldingLimitPercent = 25.0
	TopHoldingsLimitPercent   = 60.0
	TopHoldingsCount          = 5
	MinHoldingCount           = 10
	MinHoldingCountValue      = 100000.0

	singleHoldingHighPercent = 40.0
	topHoldingsHighPercent   = 75.0
)

type concentrationPillar struct{}

func (concentrationPillar) Name() PillarName { return PillarConcentrationRisk }
func (concentrationPillar) Weight() float64  { return WeightConcentrationRisk }

func (p concentrationPillar) Calculate(in Input) PillarScore {
	total := in.Summary.TotalValue
	ranked := slices.Clone(in.Holdings)
	slices.SortStableFunc(ranked, func(a, b domain.NormalizedHolding) int {
		switch {
		case a.CurrentValue > b.CurrentValue:
			return -1
		case a.CurrentValue < b.CurrentValue:
			return 1
		default:
			return 0
		}
	})
	values := lo.Map(ranked, func(h domain.NormalizedHolding, _ int) float64 { return h.CurrentValue })

	var ds []Deduction

	if len(ranked) > 0 {
		largest := domain.Percent(values[0], total)
		if largest > SingleHoldingLimitPercent {
			ds = append(ds, Deduction{
				Reason:   fmt.Sprintf("Largest holding %s is %.1f%% of the portfolio", ranked[0].Name, largest),
				Impact:   scaled(largest-SingleHoldingLimitPercent, 2, 40),
				Severity: escalate(largest > singleHoldingHighPercent, SeverityMedium),
				Category: "single_holding",
			})
		}
	}

	top := values[:min(TopHoldingsCount, len(values))]
	topShare := domain.Percent(floats.Sum(top), total)
	if topShare > TopHoldingsLimitPercent {
		ds = append(ds, Deduction{
			Reason:   fmt.Sprintf("Top 5 holdings make up %.1f%% of the portfolio", topShare),
			Impact:   scaled(topShare-TopHoldingsLimitPercent, 0.8, 30),
			Severity: escalate(topShare > topHoldingsHighPercent, SeverityMedium),
			Category: "top_holdings",
		})
	}

	if n := len(ranked); n < MinHoldingCount && total > MinHoldingCountValue {
		ds = append(ds, Deduction{
			Reason:   fmt.Sprintf("Only %d holdings for a portfolio above ₹1,00,000", n),
			Impact:   scaled(float64(MinHoldingCount-n), 2, 15),
			Severity: SeverityLow,
			Category: "holding_count",
		})
	}

	return newPillarScore(p.Name(), p.Weight(), StatusScored, ds)
}
