package stability

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/mtlprog/wealthlens/internal/domain"
)

// RiskLevel of the fixed-income book.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

const (
	RatingNotRated    = "Not Rated"
	RatingBankDeposit = "AAA (Bank Deposit)"
)

// Exposure is one FD or bond holding.
type Exposure struct {
	Name   string           `json:"name"`
	Type   domain.AssetKind `json:"type"`
	Value  float64          `json:"value"`
	Rating string           `json:"rating"`
}

// CreditRisk summarises issuer risk across FDs and bonds.
type CreditRisk struct {
	Exposures          []Exposure `json:"exposures"`
	TotalExposure      float64    `json:"totalExposure"`
	PercentOfPortfolio float64    `json:"percentOfPortfolio"`
	BelowAACount       int        `json:"belowAACount"`
	UnratedCount       int        `json:"unratedCount"`
	RiskLevel          RiskLevel  `json:"riskLevel"`
}

// Matches the rating grade inside strings such as "CRISIL AA+" or "IND A-".
// The grade must end at a word boundary or a modifier, so words like "Bond"
// or "Debenture" never match.
var ratingPattern = regexp.MustCompile(`(?i)\b(AAA|AA|A|BBB|BB|B|C|D|SOV)([+-]|\b)`)

// ratingClass is the rating with agency names and modifiers stripped.
type ratingClass int

const (
	ratingUnrated ratingClass = iota
	ratingAAOrBetter
	ratingBelowAA
)

func classifyRating(rating string) ratingClass {
	r := strings.ToUpper(strings.TrimSpace(rating))
	if r == "" || r == "NR" || strings.Contains(r, "NOT RATED") || strings.Contains(r, "UNRATED") {
		return ratingUnrated
	}
	for _, agency := range []string{"CRISIL", "ICRA", "CARE", "IND", "FITCH", "BRICKWORK", "BWR", "ACUITE"} {
		r = strings.ReplaceAll(r, agency, " ")
	}
	m := ratingPattern.FindStringSubmatch(r)
	if m == nil {
		return ratingUnrated
	}
	switch m[1] {
	case "AAA", "AA", "SOV":
		return ratingAAOrBetter
	default:
		return ratingBelowAA
	}
}

func calculateCreditRisk(holdings []domain.NormalizedHolding, portfolioTotal float64) CreditRisk {
	fixedIncome := lo.Filter(holdings, func(h domain.NormalizedHolding, _ int) bool { return h.Kind.IsFixedIncome() })

	cr := CreditRisk{Exposures: []Exposure{}, RiskLevel: RiskLow}
	for _, h := range fixedIncome {
		e := Exposure{Name: h.Name, Type: h.Kind, Value: h.CurrentValue}
		if h.Kind == domain.KindFD {
			e.Rating = RatingBankDeposit
		} else {
			e.Rating = RatingNotRated
			if h.Metadata != nil && h.Metadata.CreditRating != "" {
				e.Rating = h.Metadata.CreditRating
			}
			switch classifyRating(e.Rating) {
			case ratingBelowAA:
				cr.BelowAACount++
			case ratingUnrated:
				cr.UnratedCount++
			}
		}
		cr.Exposures = append(cr.Exposures, e)
		cr.TotalExposure += h.CurrentValue
	}

	cr.TotalExposure = domain.Round(cr.TotalExposure, 2)
	cr.PercentOfPortfolio = domain.Round(domain.Percent(cr.TotalExposure, portfolioTotal), 2)

	switch {
	case cr.BelowAACount > 0:
		cr.RiskLevel = RiskHigh
	case cr.UnratedCount > 0:
		cr.RiskLevel = RiskMedium
	}
	return cr
}
