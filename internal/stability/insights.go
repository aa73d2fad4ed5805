package stability

import (
	"fmt"

	"github.com/mtlprog/wealthlens/internal/guardrail"
)

const (
	MaxInsights = 5

	lowProtectionPercent  = 20.0
	lowProtectionMinValue = 500000.0
	highProtectionPercent = 70.0
	eeeMajorityPercent    = 50.0
	highMarketPercent     = 80.0
)

func insights(m Metrics, cr CreditRisk, r Retirement) []string {
	out := []string{}

	if m.CapitalProtectedPercent < lowProtectionPercent && m.TotalValue > lowProtectionMinValue {
		out = append(out, fmt.Sprintf(
			"Only %.1f%% of your portfolio is in capital-protected assets. Consider reviewing whether your stability allocation matches your needs.",
			m.CapitalProtectedPercent))
	}
	if m.CapitalProtectedPercent > highProtectionPercent {
		out = append(out, fmt.Sprintf(
			"%.1f%% of your portfolio is in capital-protected assets. Consider whether your growth assets match your long-term goals.",
			m.CapitalProtectedPercent))
	}
	switch cr.RiskLevel {
	case RiskHigh:
		out = append(out, fmt.Sprintf(
			"%d bond %s rated below AA. Review the credit quality of these issuers.",
			cr.BelowAACount, plural(cr.BelowAACount, "holding is", "holdings are")))
	case RiskMedium:
		out = append(out, fmt.Sprintf(
			"%d bond %s no credit rating on record. Monitor issuer quality for unrated bonds.",
			cr.UnratedCount, plural(cr.UnratedCount, "holding has", "holdings have")))
	}
	if r.TotalValue > 0 && r.EEEShare() >= eeeMajorityPercent {
		out = append(out, fmt.Sprintf(
			"%.1f%% of your retirement savings sit in EEE accounts (EPF/PPF), which are tax-exempt at contribution, growth and withdrawal.",
			r.EEEShare()))
	}
	if m.MarketLinkedPercent > highMarketPercent {
		out = append(out, fmt.Sprintf(
			"%.1f%% of your portfolio is market-linked. Monitor how comfortable you are with short-term volatility.",
			m.MarketLinkedPercent))
	}

	if len(out) > MaxInsights {
		out = out[:MaxInsights]
	}
	for i := range out {
		out[i] = guardrail.SanitizeAdvice(out[i])
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
