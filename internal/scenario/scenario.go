// Package scenario illustrates how a portfolio would respond to a few fixed,
// hypothetical market conditions. The shock magnitudes are illustrative
// constants, not calibrated risk models.
package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mtlprog/wealthlens/internal/domain"
	"github.com/mtlprog/wealthlens/internal/guardrail"
	"github.com/mtlprog/wealthlens/internal/stability"
)

const (
	DefaultDrawdownPercent          = -20.0
	SectorShockPercent              = -30.0
	RateShockVolatilityPercent      = 10.0
	RateShockStabilityImpactPercent = 2.0
	DefaultRecoveryPercent          = 20.0
)

// Disclaimer is attached to every scenario result.
const Disclaimer = "Hypothetical illustration for educational purposes only. Not a forecast."

// ErrUnknownKind is returned by Run for an unsupported scenario.
var ErrUnknownKind = errors.New("unknown scenario kind")

// Kind names a scenario variant.
type Kind string

const (
	KindMarketDrawdown Kind = "marketDrawdown"
	KindSectorShock    Kind = "sectorShock"
	KindRateShock      Kind = "rateShock"
	KindMarketRecovery Kind = "marketRecovery"
)

// AllKinds returns every scenario kind in display order.
func AllKinds() []Kind {
	return []Kind{KindMarketDrawdown, KindSectorShock, KindRateShock, KindMarketRecovery}
}

// ParseKind accepts the camelCase kind or a short alias such as "drawdown".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(s)) {
	case "marketdrawdown", "drawdown":
		return KindMarketDrawdown, nil
	case "sectorshock", "sector":
		return KindSectorShock, nil
	case "rateshock", "rate":
		return KindRateShock, nil
	case "marketrecovery", "recovery":
		return KindMarketRecovery, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Explanation is the three-part narrative of a scenario.
type Explanation struct {
	What    string `json:"what"`
	Why     string `json:"why"`
	Meaning string `json:"meaning"`
}

type MarketDrawdown struct {
	DeclinePercent         float64     `json:"declinePercent"`
	MarketLinkedPercent    float64     `json:"marketLinkedPercent"`
	StabilityPercent       float64     `json:"stabilityPercent"`
	PortfolioImpactPercent float64     `json:"portfolioImpactPercent"`
	EstimatedImpactValue   float64     `json:"estimatedImpactValue"`
	Explanation            Explanation `json:"explanation"`
	Disclaimer             string      `json:"disclaimer"`
}

type SectorShock struct {
	Sector                 string      `json:"sector"`
	ExposurePercent        float64     `json:"exposurePercent"`
	ShockPercent           float64     `json:"shockPercent"`
	PortfolioImpactPercent float64     `json:"portfolioImpactPercent"`
	Explanation            Explanation `json:"explanation"`
	Disclaimer             string      `json:"disclaimer"`
}

type RateShock struct {
	VolatilityIncreasePercent float64     `json:"volatilityIncreasePercent"`
	StabilityImpactPercent    float64     `json:"stabilityImpactPercent"`
	MarketLinkedImpact        float64     `json:"marketLinkedImpact"`
	StabilityAssetImpact      float64     `json:"stabilityAssetImpact"`
	PortfolioImpactPercent    float64     `json:"portfolioImpactPercent"`
	Explanation               Explanation `json:"explanation"`
	Disclaimer                string      `json:"disclaimer"`
}

type MarketRecovery struct {
	RecoveryPercent        float64     `json:"recoveryPercent"`
	EquityExposurePercent  float64     `json:"equityExposurePercent"`
	ParticipationPercent   float64     `json:"participationPercent"`
	PortfolioImpactPercent float64     `json:"portfolioImpactPercent"`
	Explanation            Explanation `json:"explanation"`
	Disclaimer             string      `json:"disclaimer"`
}

// Result holds exactly one non-nil variant matching Kind.
type Result struct {
	Kind           Kind            `json:"kind"`
	MarketDrawdown *MarketDrawdown `json:"marketDrawdown,omitempty"`
	SectorShock    *SectorShock    `json:"sectorShock,omitempty"`
	RateShock      *RateShock      `json:"rateShock,omitempty"`
	MarketRecovery *MarketRecovery `json:"marketRecovery,omitempty"`
}

// ImpactPercent returns the portfolio impact of whichever variant is set.
func (r Result) ImpactPercent() float64 {
	switch {
	case r.MarketDrawdown != nil:
		return r.MarketDrawdown.PortfolioImpactPercent
	case r.SectorShock != nil:
		return r.SectorShock.PortfolioImpactPercent
	case r.RateShock != nil:
		return r.RateShock.PortfolioImpactPercent
	case r.MarketRecovery != nil:
		return r.MarketRecovery.PortfolioImpactPercent
	}
	return 0
}

// Params are the optional inputs of Run. Zero values select the defaults.
type Params struct {
	DeclinePercent  float64 `json:"declinePercent,omitempty"`
	Sector          string  `json:"sector,omitempty"`
	ExposurePercent float64 `json:"exposurePercent,omitempty"`
	RecoveryPercent float64 `json:"recoveryPercent,omitempty"`
}

// Run dispatches to the scenario named by kind.
func Run(kind Kind, a stability.Analysis, p Params) (Result, error) {
	switch kind {
	case KindMarketDrawdown:
		decline := p.DeclinePercent
		if decline == 0 {
			decline = DefaultDrawdownPercent
		}
		d := CalculateMarketDrawdown(a, decline)
		return Result{Kind: kind, MarketDrawdown: &d}, nil
	case KindSectorShock:
		s := CalculateSectorShock(a, p.Sector, p.ExposurePercent)
		return Result{Kind: kind, SectorShock: &s}, nil
	case KindRateShock:
		r := CalculateRateShock(a)
		return Result{Kind: kind, RateShock: &r}, nil
	case KindMarketRecovery:
		recovery := p.RecoveryPercent
		if recovery == 0 {
			recovery = DefaultRecoveryPercent
		}
		r := CalculateMarketRecovery(a, recovery)
		return Result{Kind: kind, MarketRecovery: &r}, nil
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// SectorExposure is the share of the portfolio, in percent, held in
// holdings whose sector matches name case-insensitively.
func SectorExposure(holdings []domain.NormalizedHolding, name string) float64 {
	var total, exposed float64
	for _, h := range holdings {
		total += h.CurrentValue
		if name != "" && strings.EqualFold(strings.TrimSpace(h.Sector), strings.TrimSpace(name)) {
			exposed += h.CurrentValue
		}
	}
	return domain.Round(domain.Percent(exposed, total), 2)
}

func explanation(what, why, meaning string) Explanation {
	return Explanation{
		What:    guardrail.SanitizeAdvice(what),
		Why:     guardrail.SanitizeAdvice(why),
		Meaning: guardrail.SanitizeAdvice(meaning),
	}
}
