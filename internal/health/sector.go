package health

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"github.com/mtlprog/wealthlens/internal/domain"
)

const (
	SectorLimitPercent     = 25.0
	sectorHighPercent      = 35.0
	unclassifiedSectorName = "Unclassified"
)

type sectorPillar struct{}

func (sectorPillar) Name() PillarName { return PillarSectorBalance }
func (sectorPillar) Weight() float64  { return WeightSectorBalance }

// Calculate measures each direct-equity sector against the total
// market-linked value. Holdings without a sector are not attributed.
func (p sectorPillar) Calculate(in Input) PillarScore {
	marketValue := floats.Sum(lo.Map(in.MarketLinked, func(h domain.NormalizedHolding, _ int) float64 {
		return h.CurrentValue
	}))
	if marketValue <= 0 {
		return newPillarScore(p.Name(), p.Weight(), StatusNotApplicable, nil)
	}

	stocks := lo.Filter(in.MarketLinked, func(h domain.NormalizedHolding, _ int) bool {
		return h.Kind == domain.KindEquity && h.Sector != "" && h.Sector != unclassifiedSectorName
	})
	bySector := lo.GroupBy(stocks, func(h domain.NormalizedHolding) string { return h.Sector })

	sectors := lo.Keys(bySector)
	slices.Sort(sectors)

	var ds []Deduction
	for _, sector := range sectors {
		value := lo.SumBy(bySector[sector], func(h domain.NormalizedHolding) float64 { return h.CurrentValue })
		share := domain.Percent(value, marketValue)
		if share <= SectorLimitPercent {
			continue
		}
		ds = append(ds, Deduction{
			Reason:   fmt.Sprintf("Sector %s is %.1f%% of market-linked holdings", sector, share),
			Impact:   scaled(share-SectorLimitPercent, 1.5, 25),
			Severity: escalate(share > sectorHighPercent, SeverityMedium),
			Category: "sector_concentration",
		})
	}

	return newPillarScore(p.Name(), p.Weight(), StatusScored, ds)
}
