package health

import (
	"fmt"

	"github.com/mtlprog/wealthlens/internal/domain"
)

// Optimal allocation ranges in percent of total value.
const (
	EquityMinPercent     = 55.0
	EquityMaxPercent     = 75.0
	DebtMinPercent       = 20.0
	DebtMaxPercent       = 35.0
	RetirementMinPercent = 10.0

	equityExtremeLow  = 30.0
	equityExtremeHigh = 90.0
	debtExtremeLow    = 10.0
	debtExtremeHigh   = 50.0

	allocationNeutralScore = 70
)

type assetAllocationPillar struct{}

func (assetAllocationPillar) Name() PillarName { return PillarAssetAllocation }
func (assetAllocationPillar) Weight() float64  { return WeightAssetAllocation }

func (p assetAllocationPillar) Calculate(in Input) PillarScore {
	total := in.Summary.TotalValue
	if total <= 0 {
		return newPillarScore(p.Name(), p.Weight(), StatusNotApplicable, []Deduction{{
			Reason:   "Portfolio has no current value to assess allocation",
			Impact:   100 - allocationNeutralScore,
			Severity: SeverityInfo,
			Category: "not_applicable",
		}})
	}

	equity := domain.Percent(in.Summary.ByAssetBucket[domain.BucketEquity], total)
	debt := domain.Percent(in.Summary.ByAssetBucket[domain.BucketDebt], total)
	retirement := domain.Percent(in.Summary.ByAssetBucket[domain.BucketRetirement], total)

	var ds []Deduction

	switch {
	case equity < EquityMinPercent:
		ds = append(ds, Deduction{
			Reason:   fmt.Sprintf("Equity allocation of %.1f%% is below the optimal range of 55-75%%", equity),
			Impact:   scaled(EquityMinPercent-equity, 1.5, 30),
			Severity: escalate(equity < equityExtremeLow, SeverityMedium),
			Category: "equity_underweight",
		})
	case equity > EquityMaxPercent:
		ds = append(ds, Deduction{
			Reason:   fmt.Sprintf("Equity allocation of %.1f%% is above the optimal range of 55-75%%", equity),
			Impact:   scaled(equity-EquityMaxPercent, 1.5, 30),
			Severity: escalate(equity > equityExtremeHigh, SeverityMedium),
			Category: "equity_overweight",
		})
	}

	switch {
	case debt < DebtMinPercent:
		ds = append(ds, Deduction{
			Reason:   fmt.Sprintf("Debt allocation of %.1f%% is below the optimal range of 20-35%%", debt),
			Impact:   scaled(DebtMinPercent-debt, 1.0, 20),
			Severity: escalate(debt < debtExtremeLow, SeverityLow),
			Category: "debt_underweight",
		})
	case debt > DebtMaxPercent:
		ds = append(ds, Deduction{
			Reason:   fmt.Sprintf("Debt allocation of %.1f%% is above the optimal range of 20-35%%", debt),
			Impact:   scaled(debt-DebtMaxPercent, 1.0, 20),
			Severity: escalate(debt > debtExtremeHigh, SeverityLow),
			Category: "debt_overweight",
		})
	}

	if retirement > 0 && retirement < RetirementMinPercent {
		ds = append(ds, Deduction{
			Reason:   fmt.Sprintf("Retirement allocation of %.1f%% is under 10%%", retirement),
			Impact:   5,
			Severity: SeverityLow,
			Category: "retirement_low",
		})
	}

	return newPillarScore(p.Name(), p.Weight(), StatusScored, ds)
}

// escalate returns high when extreme, otherwise the base severity.
func escalate(extreme bool, base Severity) Severity {
	if extreme {
		return SeverityHigh
	}
	return base
}
