package normalize

import (
	"encoding/json"
	"strings"

	"github.com/mtlprog/wealthlens/internal/domain"
)

type rawMetadata struct {
	LockInYears  domain.Amount `json:"lockInYears"`
	LockIn       domain.Amount `json:"lock_in_years"`
	MaturityDate string        `json:"maturityDate"`
	Maturity     string        `json:"maturity_date"`
	TierType     string        `json:"tierType"`
	Tier         string        `json:"tier_type"`
	CreditRating string        `json:"creditRating"`
	Rating       string        `json:"credit_rating"`
	AssetClass   string        `json:"assetClass"`
	Issuer       string        `json:"issuer"`
}

// TryParseMetadata decodes holding notes as a JSON object. Empty, malformed or
// non-object notes report false; no error ever escapes.
func TryParseMetadata(notes string) (domain.HoldingMetadata, bool) {
	notes = strings.TrimSpace(notes)
	if !strings.HasPrefix(notes, "{") {
		return domain.HoldingMetadata{}, false
	}

	var raw rawMetadata
	if err := json.Unmarshal([]byte(notes), &raw); err != nil {
		return domain.HoldingMetadata{}, false
	}

	md := domain.HoldingMetadata{
		MaturityDate: firstNonEmpty(raw.MaturityDate, raw.Maturity),
		TierType:     firstNonEmpty(raw.TierType, raw.Tier),
		CreditRating: firstNonEmpty(raw.CreditRating, raw.Rating),
		AssetClass:   raw.AssetClass,
		Issuer:       raw.Issuer,
	}
	lockIn := raw.LockInYears.Float64()
	if lockIn == 0 {
		lockIn = raw.LockIn.Float64()
	}
	if lockIn > 0 {
		md.LockInYears = &lockIn
	}
	return md, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
