package domain

import (
	"bytes"
	"encoding/json"
)

// RawAsset is the asset master record joined to a stored holding.
type RawAsset struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	AssetType  string  `json:"asset_type"`
	Sector     *string `json:"sector,omitempty"`
	AssetClass *string `json:"asset_class,omitempty"`
	ISIN       *string `json:"isin,omitempty"`
	Symbol     *string `json:"symbol,omitempty"`
}

// RawHolding is a holding as it arrives from storage or the HTTP API.
type RawHolding struct {
	ID            string    `json:"id"`
	Assets        *RawAsset `json:"assets,omitempty"`
	InvestedValue Amount    `json:"invested_value"`
	CurrentValue  *Amount   `json:"current_value,omitempty"`
	Quantity      Amount    `json:"quantity"`
	Notes         *string   `json:"notes,omitempty"`
}

// UnmarshalJSON decodes an asset leniently. String fields accept any JSON
// value and a non-object asset decodes as empty.
func (a *RawAsset) UnmarshalJSON(b []byte) error {
	var w struct {
		ID         Text  `json:"id"`
		Name       Text  `json:"name"`
		AssetType  Text  `json:"asset_type"`
		Sector     *Text `json:"sector"`
		AssetClass *Text `json:"asset_class"`
		ISIN       *Text `json:"isin"`
		Symbol     *Text `json:"symbol"`
	}
	*a = RawAsset{}
	if b = bytes.TrimSpace(b); len(b) == 0 || b[0] != '{' {
		return nil
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*a = RawAsset{
		ID:         string(w.ID),
		Name:       string(w.Name),
		AssetType:  string(w.AssetType),
		Sector:     w.Sector.ptr(),
		AssetClass: w.AssetClass.ptr(),
		ISIN:       w.ISIN.ptr(),
		Symbol:     w.Symbol.ptr(),
	}
	return nil
}

// UnmarshalJSON decodes a holding leniently. Notes stored as a JSON object
// are kept as their raw JSON text.
func (h *RawHolding) UnmarshalJSON(b []byte) error {
	var w struct {
		ID            Text      `json:"id"`
		Assets        *RawAsset `json:"assets"`
		InvestedValue Amount    `json:"invested_value"`
		CurrentValue  *Amount   `json:"current_value"`
		Quantity      Amount    `json:"quantity"`
		Notes         *Text     `json:"notes"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*h = RawHolding{
		ID:            string(w.ID),
		Assets:        w.Assets,
		InvestedValue: w.InvestedValue,
		CurrentValue:  w.CurrentValue,
		Quantity:      w.Quantity,
		Notes:         w.Notes.ptr(),
	}
	return nil
}

// HoldingMetadata is the structured data some holdings keep in free-text notes.
type HoldingMetadata struct {
	LockInYears  *float64 `json:"lockInYears,omitempty"`
	MaturityDate string   `json:"maturityDate,omitempty"`
	TierType     string   `json:"tierType,omitempty"`
	CreditRating string   `json:"creditRating,omitempty"`
	AssetClass   string   `json:"assetClass,omitempty"`
	Issuer       string   `json:"issuer,omitempty"`
}

// NormalizedHolding is a holding classified onto the common risk, liquidity and tax schema.
type NormalizedHolding struct {
	HoldingID      string           `json:"holdingId"`
	AssetID        string           `json:"assetId"`
	Name           string           `json:"name"`
	AssetType      string           `json:"assetType"`
	Kind           AssetKind        `json:"kind"`
	InvestedValue  float64          `json:"investedValue"`
	CurrentValue   float64          `json:"currentValue"`
	Quantity       float64          `json:"quantity"`
	AssetBucket    AssetBucket      `json:"assetBucket"`
	RiskEngine     RiskEngine       `json:"riskEngine"`
	LiquidityLevel LiquidityLevel   `json:"liquidityLevel"`
	TaxCategory    TaxCategory      `json:"taxCategory"`
	StabilityFlag  StabilityFlag    `json:"stabilityFlag"`
	Sector         string           `json:"sector,omitempty"`
	AssetClass     string           `json:"assetClass,omitempty"`
	ISIN           string           `json:"isin,omitempty"`
	Symbol         string           `json:"symbol,omitempty"`
	Metadata       *HoldingMetadata `json:"metadata,omitempty"`
}

// IsMarketLinked reports whether market prices drive the holding's value.
func (h NormalizedHolding) IsMarketLinked() bool {
	return h.RiskEngine == RiskMarketDriven
}

// IsCapitalProtected reports whether the principal is bank or government backed.
func (h NormalizedHolding) IsCapitalProtected() bool {
	return h.StabilityFlag == StabilityHigh && h.RiskEngine != RiskMarketDriven
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
