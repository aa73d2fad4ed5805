package normalize

import (
	"testing"

	"github.com/mtlprog/wealthlens/internal/domain"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		assetType string
		want      domain.AssetKind
	}{
		{"equity", domain.KindEquity},
		{"Stocks", domain.KindEquity},
		{"mutual_fund", domain.KindMutualFund},
		{"Equity Mutual Fund", domain.KindMutualFund},
		{"MF", domain.KindMutualFund},
		{"etf", domain.KindETF},
		{"FD", domain.KindFD},
		{"fixed-deposit", domain.KindFD},
		{"bank fd", domain.KindFD},
		{"bond", domain.KindBond},
		{"g-sec", domain.KindBond},
		{"NCD", domain.KindBond},
		{"EPF", domain.KindEPF},
		{"Employee Provident Fund", domain.KindEPF},
		{"ppf", domain.KindPPF},
		{"Public Provident Fund", domain.KindPPF},
		{"public_provident_fund", domain.KindPPF},
		{"provident fund", domain.KindEPF},
		{"NPS Tier 1", domain.KindNPS},
		{"gold", domain.KindGold},
		{"Sovereign Gold Bond", domain.KindGold},
		{"savings account", domain.KindCash},
		{"bank", domain.KindCash},
		{"bank stock", domain.KindEquity},
		{"Bank Shares", domain.KindEquity},
		{"real_estate", domain.KindRealEstate},
		{"crypto", domain.KindOther},
		{"", domain.KindOther},
		{"sharetrading", domain.KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.assetType, func(t *testing.T) {
			if got := KindOf(tt.assetType); got != tt.want {
				t.Errorf("KindOf(%q) = %s, want %s", tt.assetType, got, tt.want)
			}
		})
	}
}

func TestClassifyTableRows(t *testing.T) {
	tests := []struct {
		assetType string
		want      domain.Profile
	}{
		{"epf", domain.Profile{Kind: domain.KindEPF, Bucket: domain.BucketRetirement, Risk: domain.RiskPolicyDriven, Liquidity: domain.LiquidityLocked, Tax: domain.TaxEEE, Stability: domain.StabilityHigh}},
		{"ppf", domain.Profile{Kind: domain.KindPPF, Bucket: domain.BucketRetirement, Risk: domain.RiskPolicyDriven, Liquidity: domain.LiquidityLocked, Tax: domain.TaxEEE, Stability: domain.StabilityHigh}},
		{"nps", domain.Profile{Kind: domain.KindNPS, Bucket: domain.BucketRetirement, Risk: domain.RiskMarketDriven, Liquidity: domain.LiquidityLocked, Tax: domain.TaxEET, Stability: domain.StabilityMedium}},
		{"fd", domain.Profile{Kind: domain.KindFD, Bucket: domain.BucketDebt, Risk: domain.RiskRateDriven, Liquidity: domain.LiquiditySemiLiquid, Tax: domain.TaxTaxable, Stability: domain.StabilityHigh}},
		{"bond", domain.Profile{Kind: domain.KindBond, Bucket: domain.BucketDebt, Risk: domain.RiskRateDriven, Liquidity: domain.LiquiditySemiLiquid, Tax: domain.TaxTaxable, Stability: domain.StabilityMedium}},
		{"gold", domain.Profile{Kind: domain.KindGold, Bucket: domain.BucketGold, Risk: domain.RiskMarketDriven, Liquidity: domain.LiquiditySemiLiquid, Tax: domain.TaxTaxable, Stability: domain.StabilityMedium}},
		{"cash", domain.Profile{Kind: domain.KindCash, Bucket: domain.BucketCash, Risk: domain.RiskRateDriven, Liquidity: domain.LiquidityLiquid, Tax: domain.TaxTaxable, Stability: domain.StabilityHigh}},
		{"property", domain.Profile{Kind: domain.KindRealEstate, Bucket: domain.BucketEquity, Risk: domain.RiskMarketDriven, Liquidity: domain.LiquidityLocked, Tax: domain.TaxTaxable, Stability: domain.StabilityMedium}},
		{"etf", domain.Profile{Kind: domain.KindETF, Bucket: domain.BucketEquity, Risk: domain.RiskMarketDriven, Liquidity: domain.LiquidityLiquid, Tax: domain.TaxTaxable, Stability: domain.StabilityMedium}},
		{"mutual fund", domain.Profile{Kind: domain.KindMutualFund, Bucket: domain.BucketEquity, Risk: domain.RiskMarketDriven, Liquidity: domain.LiquidityLiquid, Tax: domain.TaxTaxable, Stability: domain.StabilityMedium}},
		{"equity", domain.Profile{Kind: domain.KindEquity, Bucket: domain.BucketEquity, Risk: domain.RiskMarketDriven, Liquidity: domain.LiquidityLiquid, Tax: domain.TaxTaxable, Stability: domain.StabilityLow}},
		{"vintage cars", domain.Profile{Kind: domain.KindOther, Bucket: domain.BucketEquity, Risk: domain.RiskMarketDriven, Liquidity: domain.LiquiditySemiLiquid, Tax: domain.TaxTaxable, Stability: domain.StabilityMedium}},
	}

	for _, tt := range tests {
		t.Run(tt.assetType, func(t *testing.T) {
			if got := Classify(tt.assetType, ""); got != tt.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tt.assetType, got, tt.want)
			}
		})
	}
}

func TestClassifyNuancedCases(t *testing.T) {
	t.Run("debt fund by asset class", func(t *testing.T) {
		p := Classify("mutual_fund", "Debt")
		if p.Bucket != domain.BucketDebt || p.Risk != domain.RiskRateDriven || p.Liquidity != domain.LiquidityLiquid {
			t.Errorf("Classify(debt fund) = %+v, want Debt/Rate-driven/Liquid", p)
		}
	})

	t.Run("liquid fund by type", func(t *testing.T) {
		if p := Classify("Liquid Fund", ""); p.Bucket != domain.BucketDebt {
			t.Errorf("Classify(liquid fund).Bucket = %s, want Debt", p.Bucket)
		}
	})

	t.Run("gold themed fund", func(t *testing.T) {
		if p := Classify("mutual fund", "gold"); p.Bucket != domain.BucketGold {
			t.Errorf("Classify(gold fund).Bucket = %s, want Gold", p.Bucket)
		}
	})

	t.Run("sovereign bond", func(t *testing.T) {
		if p := Classify("bond", "government security"); p.Stability != domain.StabilityHigh {
			t.Errorf("Classify(government bond).Stability = %s, want High", p.Stability)
		}
		if p := Classify("g-sec", ""); p.Stability != domain.StabilityHigh {
			t.Errorf("Classify(g-sec).Stability = %s, want High", p.Stability)
		}
	})

	t.Run("sgb is locked", func(t *testing.T) {
		if p := Classify("SGB", ""); p.Liquidity != domain.LiquidityLocked {
			t.Errorf("Classify(SGB).Liquidity = %s, want Locked", p.Liquidity)
		}
	})

	t.Run("gold etf is liquid", func(t *testing.T) {
		if p := Classify("gold etf", ""); p.Liquidity != domain.LiquidityLiquid {
			t.Errorf("Classify(gold etf).Liquidity = %s, want Liquid", p.Liquidity)
		}
	})
}
