package explain

import (
	"strings"

	"github.com/mtlprog/wealthlens/internal/guardrail"
)

var categoryCopy = map[string]string{
	"equity_underweight":   "A low equity share can slow long-term growth. Consider whether your growth allocation matches your time horizon.",
	"equity_overweight":    "A high equity share raises the portfolio's sensitivity to market swings. Review whether that volatility suits you.",
	"debt_underweight":     "Little debt exposure leaves fewer stable assets to cushion market falls. Consider reviewing your stability allocation.",
	"debt_overweight":      "A large debt share offers stability but may trail inflation over long periods. Review it against your goals.",
	"retirement_low":       "Retirement accounts form a small part of the portfolio. Consider reviewing long-term retirement readiness.",
	"single_holding":       "One holding carries a large share of value, so its ups and downs move the whole portfolio. Monitor that exposure.",
	"top_holdings":         "Your largest few holdings dominate the portfolio. Review how correlated they are.",
	"holding_count":        "A small number of holdings limits diversification. Consider gradually broadening the portfolio.",
	"fund_overlap":         "Many mutual funds often hold the same underlying stocks. Review them for overlap and consider consolidating.",
	"no_funds":             "Direct stocks without any funds rely entirely on individual picks. Consider whether diversified funds fit your approach.",
	"sector_concentration": "A single sector carries a large share of your equity. Monitor sector-specific news and risks.",
	"data_unavailable":     "This area needs fundamental or factsheet data that is not available yet, so a neutral score is shown.",
}

var reasonCopy = []struct {
	fragment string
	text     string
}{
	{"equity allocation", categoryCopy["equity_underweight"]},
	{"debt allocation", categoryCopy["debt_underweight"]},
	{"retirement", categoryCopy["retirement_low"]},
	{"largest holding", categoryCopy["single_holding"]},
	{"top 5", categoryCopy["top_holdings"]},
	{"holdings", categoryCopy["holding_count"]},
	{"mutual funds", categoryCopy["fund_overlap"]},
	{"sector", categoryCopy["sector_concentration"]},
	{"not available", categoryCopy["data_unavailable"]},
}

const genericDeductionCopy = "This factor lowered the score. Consider reviewing it alongside the rest of your portfolio."

// DeductionExplanation looks copy up by category, then by a fragment of the
// reason text, then falls back to a generic line.
func DeductionExplanation(category, reason string) string {
	if c, ok := categoryCopy[category]; ok {
		return guardrail.SanitizeAdvice(c)
	}
	r := strings.ToLower(reason)
	for _, rc := range reasonCopy {
		if strings.Contains(r, rc.fragment) {
			return guardrail.SanitizeAdvice(rc.text)
		}
	}
	return guardrail.SanitizeAdvice(genericDeductionCopy)
}
