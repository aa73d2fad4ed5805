package normalize

import (
	"strings"

	"github.com/mtlprog/wealthlens/internal/domain"
)

type kindRule struct {
	kind     domain.AssetKind
	keywords []string
}

// Rules are matched top to bottom; the first whole-word keyword hit wins.
var kindRules = []kindRule{
	{domain.KindPPF, []string{"ppf", "public provident"}},
	{domain.KindEPF, []string{"epf", "provident fund", "employee provident fund"}},
	{domain.KindNPS, []string{"nps", "national pension"}},
	{domain.KindGold, []string{"gold", "sgb", "sovereign gold"}},
	{domain.KindFD, []string{"fd", "fixed deposit", "recurring deposit", "rd", "term deposit"}},
	{domain.KindBond, []string{"bond", "bonds", "debenture", "debentures", "ncd", "gsec", "g sec", "t bill", "treasury"}},
	{domain.KindRealEstate, []string{"real estate", "property", "land", "realestate"}},
	{domain.KindETF, []string{"etf", "etfs"}},
	{domain.KindMutualFund, []string{"mutual fund", "mutual funds", "mf", "fund", "funds"}},
	{domain.KindEquity, []string{"equity", "stock", "stocks", "share", "shares"}},
	// Last, so "bank stock" or "bank fd" resolve to the instrument.
	{domain.KindCash, []string{"cash", "savings", "bank", "savings account"}},
}

var kindProfiles = map[domain.AssetKind]domain.Profile{
	domain.KindEPF:        {Kind: domain.KindEPF, Bucket: domain.BucketRetirement, Risk: domain.RiskPolicyDriven, Liquidity: domain.LiquidityLocked, Tax: domain.TaxEEE, Stability: domain.StabilityHigh},
	domain.KindPPF:        {Kind: domain.KindPPF, Bucket: domain.BucketRetirement, Risk: domain.RiskPolicyDriven, Liquidity: domain.LiquidityLocked, Tax: domain.TaxEEE, Stability: domain.StabilityHigh},
	domain.KindNPS:        {Kind: domain.KindNPS, Bucket: domain.BucketRetirement, Risk: domain.RiskMarketDriven, Liquidity: domain.LiquidityLocked, Tax: domain.TaxEET, Stability: domain.StabilityMedium},
	domain.KindFD:         {Kind: domain.KindFD, Bucket: domain.BucketDebt, Risk: domain.RiskRateDriven, Liquidity: domain.LiquiditySemiLiquid, Tax: domain.TaxTaxable, Stability: domain.StabilityHigh},
	domain.KindBond:       {Kind: domain.KindBond, Bucket: domain.BucketDebt, Risk: domain.RiskRateDriven, Liquidity: domain.LiquiditySemiLiquid, Tax: domain.TaxTaxable, Stability: domain.StabilityMedium},
	domain.KindGold:       {Kind: domain.KindGold, Bucket: domain.BucketGold, Risk: domain.RiskMarketDriven, Liquidity: domain.LiquiditySemiLiquid, Tax: domain.TaxTaxable, Stability: domain.StabilityMedium},
	domain.KindCash:       {Kind: domain.KindCash, Bucket: domain.BucketCash, Risk: domain.RiskRateDriven, Liquidity: domain.LiquidityLiquid, Tax: domain.TaxTaxable, Stability: domain.StabilityHigh},
	domain.KindRealEstate: {Kind: domain.KindRealEstate, Bucket: domain.BucketEquity, Risk: domain.RiskMarketDriven, Liquidity: domain.LiquidityLocked, Tax: domain.TaxTaxable, Stability: domain.StabilityMedium},
	domain.KindETF:        {Kind: domain.KindETF, Bucket: domain.BucketEquity, Risk: domain.RiskMarketDriven, Liquidity: domain.LiquidityLiquid, Tax: domain.TaxTaxable, Stability: domain.StabilityMedium},
	domain.KindMutualFund: {Kind: domain.KindMutualFund, Bucket: domain.BucketEquity, Risk: domain.RiskMarketDriven, Liquidity: domain.LiquidityLiquid, Tax: domain.TaxTaxable, Stability: domain.StabilityMedium},
	domain.KindEquity:     {Kind: domain.KindEquity, Bucket: domain.BucketEquity, Risk: domain.RiskMarketDriven, Liquidity: domain.LiquidityLiquid, Tax: domain.TaxTaxable, Stability: domain.StabilityLow},
	domain.KindOther:      {Kind: domain.KindOther, Bucket: domain.BucketEquity, Risk: domain.RiskMarketDriven, Liquidity: domain.LiquiditySemiLiquid, Tax: domain.TaxTaxable, Stability: domain.StabilityMedium},
}

var (
	debtFundMarkers  = []string{"debt", "liquid", "gilt", "overnight", "money market", "bond", "corporate bond"}
	goldFundMarkers  = []string{"gold"}
	sovereignMarkers = []string{"government", "gsec", "g sec", "sovereign", "t bill", "treasury", "sdl"}
)

// fold lowercases and treats underscores, hyphens and runs of spaces as a single space.
func fold(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func containsWord(text, word string) bool {
	return strings.Contains(" "+text+" ", " "+word+" ")
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if containsWord(text, w) {
			return true
		}
	}
	return false
}

// KindOf resolves a free-text asset type to its closed kind; unknown text yields KindOther.
func KindOf(assetType string) domain.AssetKind {
	t := fold(assetType)
	if t == "" {
		return domain.KindOther
	}
	for _, r := range kindRules {
		if containsAny(t, r.keywords) {
			return r.kind
		}
	}
	return domain.KindOther
}

// ProfileOf returns the base classification of a kind.
func ProfileOf(kind domain.AssetKind) domain.Profile {
	p, ok := kindProfiles[kind]
	if !ok {
		return kindProfiles[domain.KindOther]
	}
	return p
}

// Classify resolves the full profile from the asset type and the hint text
// (asset class, notes and parsed metadata) used for the nuanced cases.
func Classify(assetType, hints string) domain.Profile {
	kind := KindOf(assetType)
	p := ProfileOf(kind)
	t := fold(assetType)
	h := fold(hints)

	switch kind {
	case domain.KindMutualFund, domain.KindETF:
		switch {
		case containsAny(t, goldFundMarkers) || containsAny(h, goldFundMarkers):
			p.Bucket = domain.BucketGold
			p.Liquidity = domain.LiquidityLiquid
		case containsAny(t, debtFundMarkers) || containsAny(h, debtFundMarkers):
			p.Bucket = domain.BucketDebt
			p.Risk = domain.RiskRateDriven
			p.Liquidity = domain.LiquidityLiquid
			p.Stability = domain.StabilityMedium
		}
	case domain.KindBond:
		if containsAny(t, sovereignMarkers) || containsAny(h, sovereignMarkers) {
			p.Stability = domain.StabilityHigh
		}
	case domain.KindGold:
		// SGBs run an 8 year tenure.
		switch {
		case containsAny(t, []string{"sgb", "sovereign gold"}):
			p.Liquidity = domain.LiquidityLocked
		case containsAny(t, []string{"etf", "fund", "mutual fund"}):
			p.Liquidity = domain.LiquidityLiquid
		}
	}
	return p
}
