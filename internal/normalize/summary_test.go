package normalize

import (
	"testing"

	"github.com/mtlprog/wealthlens/internal/domain"
)

func TestSummarizeSeedsEveryKey(t *testing.T) {
	holdings := NormalizeHoldings([]domain.RawHolding{
		rawHolding("1", "equity", 1000, nil),
		rawHolding("2", "stock", 500, nil),
	})
	s := Summarize(holdings)

	v, ok := s.ByAssetBucket[domain.BucketDebt]
	if !ok || v != 0 {
		t.Errorf("ByAssetBucket[Debt] = %v (present %v), want 0 present", v, ok)
	}
	for _, b := range domain.AllAssetBuckets() {
		if _, ok := s.ByAssetBucket[b]; !ok {
			t.Errorf("ByAssetBucket missing %s", b)
		}
	}
	for _, r := range domain.AllRiskEngines() {
		if _, ok := s.ByRiskEngine[r]; !ok {
			t.Errorf("ByRiskEngine missing %s", r)
		}
	}
	for _, l := range domain.AllLiquidityLevels() {
		if _, ok := s.ByLiquidityLevel[l]; !ok {
			t.Errorf("ByLiquidityLevel missing %s", l)
		}
	}
	for _, f := range domain.AllStabilityFlags() {
		if _, ok := s.ByStabilityFlag[f]; !ok {
			t.Errorf("ByStabilityFlag missing %s", f)
		}
	}
	for _, c := range domain.AllTaxCategories() {
		if _, ok := s.ByTaxCategory[c]; !ok {
			t.Errorf("ByTaxCategory missing %s", c)
		}
	}
	for _, k := range domain.AllAssetKinds() {
		if _, ok := s.ByKind[k]; !ok {
			t.Errorf("ByKind missing %s", k)
		}
	}
	if s.ByAssetBucket[domain.BucketEquity] != 1500 {
		t.Errorf("ByAssetBucket[Equity] = %v, want 1500", s.ByAssetBucket[domain.BucketEquity])
	}
}

func TestSummarizeEndToEndExample(t *testing.T) {
	holdings := NormalizeHoldings([]domain.RawHolding{
		rawHolding("eq", "equity", 400000, nil),
		rawHolding("fd", "fd", 300000, nil),
		rawHolding("epf", "epf", 300000, nil),
	})
	s := Summarize(holdings)

	if s.TotalValue != 1000000 {
		t.Errorf("TotalValue = %v, want 1000000", s.TotalValue)
	}
	want := map[domain.AssetBucket]float64{
		domain.BucketEquity:     400000,
		domain.BucketDebt:       300000,
		domain.BucketRetirement: 300000,
		domain.BucketGold:       0,
		domain.BucketCash:       0,
	}
	for b, v := range want {
		if s.ByAssetBucket[b] != v {
			t.Errorf("ByAssetBucket[%s] = %v, want %v", b, s.ByAssetBucket[b], v)
		}
	}
	if s.ByRiskEngine[domain.RiskPolicyDriven] != 300000 {
		t.Errorf("ByRiskEngine[Policy-driven] = %v, want 300000", s.ByRiskEngine[domain.RiskPolicyDriven])
	}
	if s.ByStabilityFlag[domain.StabilityHigh] != 600000 {
		t.Errorf("ByStabilityFlag[High] = %v, want 600000", s.ByStabilityFlag[domain.StabilityHigh])
	}
	if s.ByTaxCategory[domain.TaxEEE] != 300000 || s.ByTaxCategory[domain.TaxTaxable] != 700000 {
		t.Errorf("ByTaxCategory = %v, want EEE 300000 and Taxable 700000", s.ByTaxCategory)
	}
	if s.ByKind[domain.KindFD] != 300000 || s.ByKind[domain.KindPPF] != 0 {
		t.Errorf("ByKind = %v, want fd 300000 and ppf 0", s.ByKind)
	}
}

func TestSummarizeInvestedAndExactSums(t *testing.T) {
	holdings := NormalizeHoldings([]domain.RawHolding{
		rawHolding("1", "cash", 0.1, nil),
		rawHolding("2", "cash", 0.2, domain.AmountPtr(0.2)),
	})
	s := Summarize(holdings)
	if s.TotalValue != 0.3 {
		t.Errorf("TotalValue = %v, want 0.3", s.TotalValue)
	}
	if s.TotalInvested != 0.3 {
		t.Errorf("TotalInvested = %v, want 0.3", s.TotalInvested)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalValue != 0 || len(s.ByAssetBucket) != 5 {
		t.Errorf("Summarize(nil) = %+v", s)
	}
}
