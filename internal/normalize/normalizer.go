// Package normalize maps raw holdings onto the common classification schema
// and aggregates them into summary totals.
package normalize

import (
	"strings"

	"github.com/samber/lo"

	"github.com/mtlprog/wealthlens/internal/domain"
)

// NormalizeHolding classifies a single raw holding. It never fails: missing
// asset data falls back to the "other" profile and bad amounts become 0.
func NormalizeHolding(raw domain.RawHolding) domain.NormalizedHolding {
	asset := domain.RawAsset{}
	if raw.Assets != nil {
		asset = *raw.Assets
	}

	notes := domain.Deref(raw.Notes)
	md, hasMetadata := TryParseMetadata(notes)

	assetClass := domain.Deref(asset.AssetClass)
	hints := strings.Join([]string{assetClass, md.AssetClass, md.Issuer, notesHint(notes, hasMetadata)}, " ")
	profile := Classify(asset.AssetType, hints)

	invested := domain.NonNegative(raw.InvestedValue.Float64())
	current := invested
	if raw.CurrentValue != nil && raw.CurrentValue.Float64() != 0 {
		current = domain.NonNegative(raw.CurrentValue.Float64())
	}

	h := domain.NormalizedHolding{
		HoldingID:      raw.ID,
		AssetID:        asset.ID,
		Name:           asset.Name,
		AssetType:      asset.AssetType,
		Kind:           profile.Kind,
		InvestedValue:  invested,
		CurrentValue:   current,
		Quantity:       domain.NonNegative(raw.Quantity.Float64()),
		AssetBucket:    profile.Bucket,
		RiskEngine:     profile.Risk,
		LiquidityLevel: profile.Liquidity,
		TaxCategory:    profile.Tax,
		StabilityFlag:  profile.Stability,
		Sector:         strings.TrimSpace(domain.Deref(asset.Sector)),
		AssetClass:     assetClass,
		ISIN:           domain.Deref(asset.ISIN),
		Symbol:         domain.Deref(asset.Symbol),
	}
	if hasMetadata {
		h.Metadata = &md
	}
	if h.Name == "" {
		h.Name = raw.ID
	}
	return h
}

// NormalizeHoldings maps every raw holding, preserving order.
func NormalizeHoldings(raw []domain.RawHolding) []domain.NormalizedHolding {
	return lo.Map(raw, func(r domain.RawHolding, _ int) domain.NormalizedHolding {
		return NormalizeHolding(r)
	})
}

// Plain-text notes still carry hints such as "liquid fund"; JSON notes are
// already represented by the parsed metadata.
func notesHint(notes string, parsed bool) string {
	if parsed {
		return ""
	}
	return notes
}
