// Package health computes the seven-pillar portfolio health score.
package health

import "time"

// PillarName identifies one of the seven pillars.
type PillarName string

const (
	PillarAssetAllocation        PillarName = "asset_allocation"
	PillarConcentrationRisk      PillarName = "concentration_risk"
	PillarDiversificationOverlap PillarName = "diversification_overlap"
	PillarMarketCapBalance       PillarName = "market_cap_balance"
	PillarSectorBalance          PillarName = "sector_balance"
	PillarGeographyBalance       PillarName = "geography_balance"
	PillarInvestmentQuality      PillarName = "investment_quality"
)

var displayNames = map[PillarName]string{
	PillarAssetAllocation:        "Asset Allocation",
	PillarConcentrationRisk:      "Concentration Risk",
	PillarDiversificationOverlap: "Diversification & Overlap",
	PillarMarketCapBalance:       "Market Cap Balance",
	PillarSectorBalance:          "Sector Balance",
	PillarGeographyBalance:       "Geography Balance",
	PillarInvestmentQuality:      "Investment Quality",
}

// DisplayName returns the user-facing pillar title.
func (n PillarName) DisplayName() string {
	if d, ok := displayNames[n]; ok {
		return d
	}
	return string(n)
}

// Severity of a deduction.
type Severity string

const (
	SeverityInfo   Severity = "info"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Deduction is one triggered rule and the points it removed.
type Deduction struct {
	Reason   string   `json:"reason"`
	Impact   float64  `json:"impact"`
	Severity Severity `json:"severity"`
	Category string   `json:"category"`
}

// PillarStatus tells whether a pillar was scored from holdings data.
type PillarStatus string

const (
	StatusScored          PillarStatus = "scored"
	StatusNotApplicable   PillarStatus = "not_applicable"
	StatusDataUnavailable PillarStatus = "data_unavailable"
)

// PillarMetadata carries presentation hints for a pillar.
type PillarMetadata struct {
	Color    string `json:"color"`
	Severity string `json:"severity"`
	Tooltip  string `json:"tooltip"`
}

// PillarScore is the result of one pillar.
type PillarScore struct {
	Name        PillarName     `json:"name"`
	DisplayName string         `json:"displayName"`
	Score       int            `json:"score"`
	Weight      float64        `json:"weight"`
	Status      PillarStatus   `json:"status"`
	Deductions  []Deduction    `json:"deductions"`
	Metadata    PillarMetadata `json:"metadata"`
}

// Grade is the four-tier band of the total score.
type Grade string

const (
	GradeExcellent Grade = "Excellent"
	GradeGood      Grade = "Good"
	GradeFair      Grade = "Fair"
	GradePoor      Grade = "Poor"
)

const (
	excellentThreshold = 80
	goodThreshold      = 65
	fairThreshold      = 50
)

// GradeFor maps a rounded total score to its grade; lower bounds are inclusive.
func GradeFor(score int) Grade {
	switch {
	case score >= excellentThreshold:
		return GradeExcellent
	case score >= goodThreshold:
		return GradeGood
	case score >= fairThreshold:
		return GradeFair
	default:
		return GradePoor
	}
}

// GradeLabel returns the user-facing label of a grade.
func GradeLabel(g Grade) string {
	if g == GradePoor {
		return "Needs Attention"
	}
	return string(g)
}

// ScoreMetadata describes the input a score was computed from.
type ScoreMetadata struct {
	CalculatedAt  time.Time `json:"calculatedAt"`
	TotalHoldings int       `json:"totalHoldings"`
	TotalValue    float64   `json:"totalValue"`
}

// PortfolioHealthScore is the full health score output.
type PortfolioHealthScore struct {
	TotalScore      int           `json:"totalScore"`
	Grade           Grade         `json:"grade"`
	PillarBreakdown []PillarScore `json:"pillarBreakdown"`
	TopRisks        []Deduction   `json:"topRisks"`
	TopImprovements []string      `json:"topImprovements"`
	Metadata        ScoreMetadata `json:"metadata"`
}

// Pillar returns the named pillar from the breakdown.
func (s PortfolioHealthScore) Pillar(name PillarName) (PillarScore, bool) {
	for _, p := range s.PillarBreakdown {
		if p.Name == name {
			return p, true
		}
	}
	return PillarScore{}, false
}
