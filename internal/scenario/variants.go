package scenario

import (
	"fmt"
	"math"

	"github.com/mtlprog/wealthlens/internal/domain"
	"github.com/mtlprog/wealthlens/internal/stability"
)

// CalculateMarketDrawdown applies declinePercent to the market-linked share
// of the portfolio. Stability assets are assumed not to decline at all.
// The impact is reported as a positive magnitude.
func CalculateMarketDrawdown(a stability.Analysis, declinePercent float64) MarketDrawdown {
	m := a.Metrics
	magnitude := math.Abs(declinePercent)
	impact := m.MarketLinkedPercent * magnitude / 100

	return MarketDrawdown{
		DeclinePercent:         declinePercent,
		MarketLinkedPercent:    m.MarketLinkedPercent,
		StabilityPercent:       m.CapitalProtectedPercent,
		PortfolioImpactPercent: domain.Round(impact, 2),
		EstimatedImpactValue:   domain.Round(m.TotalValue*impact/100, 2),
		Explanation: explanation(
			fmt.Sprintf("If market-linked assets fell by %.0f%%, your portfolio would move by about %.1f%%.", magnitude, impact),
			fmt.Sprintf("%.1f%% of your portfolio is market-linked, while %.1f%% sits in capital-protected assets that are assumed to hold their value.",
				m.MarketLinkedPercent, m.CapitalProtectedPercent),
			"Your stability assets cushion part of a broad market fall. This shows sensitivity, not an expected outcome.",
		),
		Disclaimer: Disclaimer,
	}
}

// CalculateSectorShock applies a flat SectorShockPercent to the exposure in
// one sector.
func CalculateSectorShock(_ stability.Analysis, sector string, exposurePercent float64) SectorShock {
	exposure := domain.Clamp(exposurePercent, 0, 100)
	impact := exposure * math.Abs(SectorShockPercent) / 100
	if sector == "" {
		sector = "the selected sector"
	}

	return SectorShock{
		Sector:                 sector,
		ExposurePercent:        exposure,
		ShockPercent:           SectorShockPercent,
		PortfolioImpactPercent: domain.Round(impact, 2),
		Explanation: explanation(
			fmt.Sprintf("If %s fell by %.0f%%, your portfolio would move by about %.1f%%.", sector, math.Abs(SectorShockPercent), impact),
			fmt.Sprintf("%.1f%% of your portfolio is exposed to %s.", exposure, sector),
			"Concentrated sector exposure links more of your portfolio to events in a single industry.",
		),
		Disclaimer: Disclaimer,
	}
}

// CalculateRateShock applies the fixed volatility increase to market-linked
// assets and the fixed stability impact to capital-protected assets.
func CalculateRateShock(a stability.Analysis) RateShock {
	m := a.Metrics
	marketImpact := m.MarketLinkedPercent * RateShockVolatilityPercent / 100
	stabilityImpact := m.CapitalProtectedPercent * RateShockStabilityImpactPercent / 100
	impact := marketImpact + stabilityImpact

	return RateShock{
		VolatilityIncreasePercent: RateShockVolatilityPercent,
		StabilityImpactPercent:    RateShockStabilityImpactPercent,
		MarketLinkedImpact:        domain.Round(marketImpact, 2),
		StabilityAssetImpact:      domain.Round(stabilityImpact, 2),
		PortfolioImpactPercent:    domain.Round(impact, 2),
		Explanation: explanation(
			fmt.Sprintf("A sharp change in interest rates could move your portfolio by about %.1f%%.", impact),
			fmt.Sprintf("Market-linked assets (%.1f%%) are assumed to see %.0f%% more volatility and capital-protected assets (%.1f%%) a %.0f%% impact.",
				m.MarketLinkedPercent, RateShockVolatilityPercent, m.CapitalProtectedPercent, RateShockStabilityImpactPercent),
			"Rate-driven assets respond differently from market-driven ones, so the mix shapes how rate changes reach your portfolio.",
		),
		Disclaimer: Disclaimer,
	}
}

// CalculateMarketRecovery assumes equity exposure participates fully in a
// recovery of recoveryPercent.
func CalculateMarketRecovery(a stability.Analysis, recoveryPercent float64) MarketRecovery {
	equity := a.Metrics.EquityExposurePercent
	impact := equity * recoveryPercent / 100

	return MarketRecovery{
		RecoveryPercent:        recoveryPercent,
		EquityExposurePercent:  equity,
		ParticipationPercent:   equity,
		PortfolioImpactPercent: domain.Round(impact, 2),
		Explanation: explanation(
			fmt.Sprintf("If markets recovered by %.0f%%, your portfolio would move by about %.1f%%.", recoveryPercent, impact),
			fmt.Sprintf("%.1f%% of your portfolio is in equity, which is assumed to take part in the recovery one for one.", equity),
			"Your equity share sets how much of a rebound your portfolio would reflect. This is an illustration, not a projection.",
		),
		Disclaimer: Disclaimer,
	}
}
