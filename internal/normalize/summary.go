package normalize

import (
	"github.com/shopspring/decimal"

	"github.com/mtlprog/wealthlens/internal/domain"
)

// Summary holds portfolio totals by every classification axis.
type Summary struct {
	TotalValue       float64                           `json:"totalValue"`
	TotalInvested    float64                           `json:"totalInvested"`
	ByAssetBucket    map[domain.AssetBucket]float64    `json:"byAssetBucket"`
	ByRiskEngine     map[domain.RiskEngine]float64     `json:"byRiskEngine"`
	ByLiquidityLevel map[domain.LiquidityLevel]float64 `json:"byLiquidityLevel"`
	ByStabilityFlag  map[domain.StabilityFlag]float64  `json:"byStabilityFlag"`
	ByTaxCategory    map[domain.TaxCategory]float64    `json:"byTaxCategory"`
	ByKind           map[domain.AssetKind]float64      `json:"byKind"`
}

// Summarize aggregates current values along every classification axis.
// Every enum key is present even when its total is zero.
func Summarize(holdings []domain.NormalizedHolding) Summary {
	total := decimal.Zero
	invested := decimal.Zero
	buckets := seed(domain.AllAssetBuckets())
	engines := seed(domain.AllRiskEngines())
	levels := seed(domain.AllLiquidityLevels())
	flags := seed(domain.AllStabilityFlags())
	taxes := seed(domain.AllTaxCategories())
	kinds := seed(domain.AllAssetKinds())

	for _, h := range holdings {
		v := decimal.NewFromFloat(h.CurrentValue)
		total = total.Add(v)
		invested = invested.Add(decimal.NewFromFloat(h.InvestedValue))
		buckets[h.AssetBucket] = buckets[h.AssetBucket].Add(v)
		engines[h.RiskEngine] = engines[h.RiskEngine].Add(v)
		levels[h.LiquidityLevel] = levels[h.LiquidityLevel].Add(v)
		flags[h.StabilityFlag] = flags[h.StabilityFlag].Add(v)
		taxes[h.TaxCategory] = taxes[h.TaxCategory].Add(v)
		kinds[h.Kind] = kinds[h.Kind].Add(v)
	}

	return Summary{
		TotalValue:       total.InexactFloat64(),
		TotalInvested:    invested.InexactFloat64(),
		ByAssetBucket:    toFloat(buckets),
		ByRiskEngine:     toFloat(engines),
		ByLiquidityLevel: toFloat(levels),
		ByStabilityFlag:  toFloat(flags),
		ByTaxCategory:    toFloat(taxes),
		ByKind:           toFloat(kinds),
	}
}

func seed[K comparable](keys []K) map[K]decimal.Decimal {
	m := make(map[K]decimal.Decimal, len(keys))
	for _, k := range keys {
		m[k] = decimal.Zero
	}
	return m
}

func toFloat[K comparable](m map[K]decimal.Decimal) map[K]float64 {
	out := make(map[K]float64, len(m))
	for k, v := range m {
		out[k] = v.InexactFloat64()
	}
	return out
}
