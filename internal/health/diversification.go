package health

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/mtlprog/wealthlens/internal/domain"
)

const (
	MaxMutualFunds              = 15
	diversificationNeutralScore = 70
)

type diversificationPillar struct{}

func (diversificationPillar) Name() PillarName { return PillarDiversificationOverlap }
func (diversificationPillar) Weight() float64  { return WeightDiversificationOverlap }

func (p diversificationPillar) Calculate(in Input) PillarScore {
	if len(in.MarketLinked) == 0 {
		return newPillarScore(p.Name(), p.Weight(), StatusNotApplicable, []Deduction{{
			Reason:   "No market-linked holdings to assess diversification",
			Impact:   100 - diversificationNeutralScore,
			Severity: SeverityInfo,
			Category: "not_applicable",
		}})
	}

	funds := lo.CountBy(in.MarketLinked, func(h domain.NormalizedHolding) bool { return h.Kind == domain.KindMutualFund })
	stocks := lo.CountBy(in.MarketLinked, func(h domain.NormalizedHolding) bool { return h.Kind == domain.KindEquity })

	var ds []Deduction
	if funds > MaxMutualFunds {
		ds = append(ds, Deduction{
			Reason:   fmt.Sprintf("Holding %d mutual funds increases the chance of overlapping portfolios", funds),
			Impact:   scaled(float64(funds-MaxMutualFunds), 1.5, 20),
			Severity: SeverityMedium,
			Category: "fund_overlap",
		})
	}
	if stocks > 0 && funds == 0 {
		ds = append(ds, Deduction{
			Reason:   "Direct stocks are held without any mutual funds for diversification",
			Impact:   10,
			Severity: SeverityMedium,
			Category: "no_funds",
		})
	}

	return newPillarScore(p.Name(), p.Weight(), StatusScored, ds)
}
