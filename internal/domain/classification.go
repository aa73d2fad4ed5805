package domain

// AssetBucket is the coarse economic grouping of a holding.
type AssetBucket string

const (
	BucketEquity     AssetBucket = "Equity"
	BucketDebt       AssetBucket = "Debt"
	BucketGold       AssetBucket = "Gold"
	BucketCash       AssetBucket = "Cash"
	BucketRetirement AssetBucket = "Retirement"
)

// AllAssetBuckets returns every bucket in canonical order.
func AllAssetBuckets() []AssetBucket {
	return []AssetBucket{BucketEquity, BucketDebt, BucketGold, BucketCash, BucketRetirement}
}

// RiskEngine describes what primarily drives a holding's value changes.
type RiskEngine string

const (
	RiskMarketDriven RiskEngine = "Market-driven"
	RiskRateDriven   RiskEngine = "Rate-driven"
	RiskPolicyDriven RiskEngine = "Policy-driven"
)

// AllRiskEngines returns every risk engine in canonical order.
func AllRiskEngines() []RiskEngine {
	return []RiskEngine{RiskMarketDriven, RiskRateDriven, RiskPolicyDriven}
}

// LiquidityLevel describes how quickly a holding converts to cash.
type LiquidityLevel string

const (
	LiquidityLiquid     LiquidityLevel = "Liquid"
	LiquiditySemiLiquid LiquidityLevel = "Semi-liquid"
	LiquidityLocked     LiquidityLevel = "Locked"
)

// AllLiquidityLevels returns every liquidity level, most liquid first.
func AllLiquidityLevels() []LiquidityLevel {
	return []LiquidityLevel{LiquidityLiquid, LiquiditySemiLiquid, LiquidityLocked}
}

// TaxCategory is the Indian tax treatment at contribution, growth and withdrawal.
type TaxCategory string

const (
	TaxTaxable TaxCategory = "Taxable"
	TaxEEE     TaxCategory = "EEE"
	TaxEET     TaxCategory = "EET"
)

// AllTaxCategories returns every tax category in canonical order.
func AllTaxCategories() []TaxCategory {
	return []TaxCategory{TaxTaxable, TaxEEE, TaxEET}
}

// StabilityFlag is the volatility classification of a holding.
type StabilityFlag string

const (
	StabilityHigh   StabilityFlag = "High"
	StabilityMedium StabilityFlag = "Medium"
	StabilityLow    StabilityFlag = "Low"
)

// AllStabilityFlags returns every stability flag, most stable first.
func AllStabilityFlags() []StabilityFlag {
	return []StabilityFlag{StabilityHigh, StabilityMedium, StabilityLow}
}

// AssetKind is the closed instrument variant resolved from a free-text asset type.
type AssetKind string

const (
	KindEquity     AssetKind = "equity"
	KindMutualFund AssetKind = "mutual_fund"
	KindETF        AssetKind = "etf"
	KindFD         AssetKind = "fd"
	KindBond       AssetKind = "bond"
	KindEPF        AssetKind = "epf"
	KindPPF        AssetKind = "ppf"
	KindNPS        AssetKind = "nps"
	KindGold       AssetKind = "gold"
	KindCash       AssetKind = "cash"
	KindRealEstate AssetKind = "real_estate"
	KindOther      AssetKind = "other"
)

// AllAssetKinds returns every kind, fallback last.
func AllAssetKinds() []AssetKind {
	return []AssetKind{
		KindEquity, KindMutualFund, KindETF, KindFD, KindBond, KindEPF,
		KindPPF, KindNPS, KindGold, KindCash, KindRealEstate, KindOther,
	}
}

// IsRetirement reports whether the kind is a retirement account.
func (k AssetKind) IsRetirement() bool {
	return k == KindEPF || k == KindPPF || k == KindNPS
}

// IsFixedIncome reports whether the kind carries issuer credit risk.
func (k AssetKind) IsFixedIncome() bool {
	return k == KindFD || k == KindBond
}

// Profile is the full classification of a holding across every axis.
type Profile struct {
	Kind      AssetKind
	Bucket    AssetBucket
	Risk      RiskEngine
	Liquidity LiquidityLevel
	Tax       TaxCategory
	Stability StabilityFlag
}
