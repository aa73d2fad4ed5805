package stability

import (
	"github.com/mtlprog/wealthlens/internal/domain"
)

// Share of each retirement account's value counted as stable.
var stabilityFactor = map[domain.AssetKind]float64{
	domain.KindEPF: 1.0,
	domain.KindPPF: 1.0,
	domain.KindNPS: 0.8,
}

// RetirementEntry is the contribution of one account type.
type RetirementEntry struct {
	Type                  domain.AssetKind   `json:"type"`
	Value                 float64            `json:"value"`
	PercentOfRetirement   float64            `json:"percentOfRetirement"`
	StabilityContribution float64            `json:"stabilityContribution"`
	TaxCategory           domain.TaxCategory `json:"taxCategory"`
}

// Retirement breaks down EPF, PPF and NPS holdings.
type Retirement struct {
	Breakdown                  []RetirementEntry `json:"breakdown"`
	TotalValue                 float64           `json:"totalValue"`
	StabilityContributionValue float64           `json:"stabilityContributionValue"`
	EEETotal                   float64           `json:"eeeTotal"`
	EETTotal                   float64           `json:"eetTotal"`
}

// EEEShare is the EEE portion of retirement value in percent.
func (r Retirement) EEEShare() float64 {
	return domain.Percent(r.EEETotal, r.TotalValue)
}

func calculateRetirement(holdings []domain.NormalizedHolding) Retirement {
	values := map[domain.AssetKind]float64{}
	for _, h := range holdings {
		if h.Kind.IsRetirement() {
			values[h.Kind] += h.CurrentValue
		}
	}
	total := values[domain.KindEPF] + values[domain.KindPPF] + values[domain.KindNPS]

	r := Retirement{Breakdown: make([]RetirementEntry, 0, 3)}
	var contribution float64
	for _, kind := range []domain.AssetKind{domain.KindEPF, domain.KindPPF, domain.KindNPS} {
		v := values[kind]
		c := v * stabilityFactor[kind]
		contribution += c
		tax := domain.TaxEEE
		if kind == domain.KindNPS {
			tax = domain.TaxEET
		}
		r.Breakdown = append(r.Breakdown, RetirementEntry{
			Type:                  kind,
			Value:                 domain.Round(v, 2),
			PercentOfRetirement:   domain.Round(domain.Percent(v, total), 2),
			StabilityContribution: domain.Round(c, 2),
			TaxCategory:           tax,
		})
	}

	r.TotalValue = domain.Round(total, 2)
	r.StabilityContributionValue = domain.Round(contribution, 2)
	r.EEETotal = domain.Round(values[domain.KindEPF]+values[domain.KindPPF], 2)
	r.EETTotal = domain.Round(values[domain.KindNPS], 2)
	return r
}
