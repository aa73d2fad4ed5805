// Package explain turns scores and deductions into fixed, compliance-safe
// copy. Every string it returns passes through guardrail.SanitizeAdvice.
package explain

import "github.com/mtlprog/wealthlens/internal/guardrail"

// Tier is the qualitative band of a 0-100 score.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierPoor      Tier = "poor"
)

// TierOf maps a score onto its band using the grade thresholds.
func TierOf(score int) Tier {
	switch {
	case score >= 80:
		return TierExcellent
	case score >= 65:
		return TierGood
	case score >= 50:
		return TierFair
	default:
		return TierPoor
	}
}

var pillarCopy = map[string]map[Tier]string{
	"asset_allocation": {
		TierExcellent: "Your mix of equity, debt and other assets sits close to a balanced range for long-term growth with stability.",
		TierGood:      "Your asset mix is reasonably balanced, with some room to bring equity or debt closer to the typical range.",
		TierFair:      "Your asset mix leans noticeably toward one asset type. Consider reviewing how equity and debt are split.",
		TierPoor:      "Your asset mix is far from a balanced range. Review whether the split between growth and stability matches your goals.",
	},
	"concentration_risk": {
		TierExcellent: "Value is well spread across holdings, so no single position dominates the portfolio.",
		TierGood:      "Value is mostly spread out, though a few holdings carry a meaningful share.",
		TierFair:      "A small number of holdings carry a large share of value. Consider monitoring how much rides on them.",
		TierPoor:      "Much of the portfolio sits in one or a few holdings. Review how a setback in any one of them would affect you.",
	},
	"diversification_overlap": {
		TierExcellent: "Your market-linked holdings are diversified without obvious duplication.",
		TierGood:      "Your market-linked holdings are fairly diversified with limited overlap.",
		TierFair:      "Some market-linked holdings may overlap or lack fund-level diversification. Consider reviewing them together.",
		TierPoor:      "Your market-linked holdings show heavy overlap or little diversification. Review whether they serve distinct purposes.",
	},
	"market_cap_balance": {
		TierExcellent: "Your exposure across large, mid and small companies looks balanced.",
		TierGood:      "Your market cap exposure looks broadly balanced based on the data available.",
		TierFair:      "Market cap exposure may lean toward one segment. Consider reviewing fund factsheets for detail.",
		TierPoor:      "Market cap exposure appears skewed. Review how much sits in smaller, more volatile companies.",
	},
	"sector_balance": {
		TierExcellent: "Direct equity is spread across sectors with no single sector dominating.",
		TierGood:      "Sector exposure is mostly balanced, with one or two sectors carrying more weight.",
		TierFair:      "One sector carries a large share of direct equity. Consider monitoring sector-specific risk.",
		TierPoor:      "Direct equity is heavily concentrated in a few sectors. Review how a downturn in those sectors would affect you.",
	},
	"geography_balance": {
		TierExcellent: "Your portfolio has a healthy spread of geographic exposure.",
		TierGood:      "Geographic exposure looks reasonable based on the data available.",
		TierFair:      "Your portfolio is mostly tied to one market. Consider whether some international exposure fits your goals.",
		TierPoor:      "Your portfolio depends almost entirely on one market. Review how comfortable you are with that single-country exposure.",
	},
	"investment_quality": {
		TierExcellent: "Your holdings show strong quality indicators.",
		TierGood:      "Your holdings show reasonable quality based on the data available.",
		TierFair:      "Some holdings may have weaker quality indicators. Consider reviewing their track record and costs.",
		TierPoor:      "Several holdings show weak quality indicators. Review their consistency, costs and fit with your goals.",
	},
}

// PillarExplanation returns the fixed copy for a pillar at the given score.
// Unknown pillars get a generic line rather than an empty string.
func PillarExplanation(pillar string, score int) string {
	byTier, ok := pillarCopy[pillar]
	if !ok {
		return guardrail.SanitizeAdvice(genericPillarCopy(TierOf(score)))
	}
	return guardrail.SanitizeAdvice(byTier[TierOf(score)])
}

func genericPillarCopy(t Tier) string {
	switch t {
	case TierExcellent:
		return "This area of your portfolio looks strong."
	case TierGood:
		return "This area of your portfolio looks healthy with minor gaps."
	case TierFair:
		return "This area of your portfolio could use a closer look."
	default:
		return "This area of your portfolio needs attention. Consider reviewing it."
	}
}
