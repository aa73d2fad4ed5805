package health

import (
	"github.com/samber/lo"

	"github.com/mtlprog/wealthlens/internal/explain"
)

// PillarNote is the plain-language reading of one pillar score.
type PillarNote struct {
	Name        PillarName `json:"name"`
	DisplayName string     `json:"displayName"`
	Score       int        `json:"score"`
	Explanation string     `json:"explanation"`
}

// DeductionNote explains one deduction.
type DeductionNote struct {
	Pillar      PillarName `json:"pillar"`
	Category    string     `json:"category"`
	Reason      string     `json:"reason"`
	Explanation string     `json:"explanation"`
}

// Explanation is the narrative form of a health score.
type Explanation struct {
	Summary    string          `json:"summary"`
	Pillars    []PillarNote    `json:"pillars"`
	Deductions []DeductionNote `json:"deductions"`
}

// Summary renders the one-paragraph summary of the score.
func (s PortfolioHealthScore) Summary() string {
	in := explain.SummaryInput{
		TotalScore:    s.TotalScore,
		GradeLabel:    GradeLabel(s.Grade),
		TotalHoldings: s.Metadata.TotalHoldings,
	}

	scored := lo.Filter(s.PillarBreakdown, func(p PillarScore, _ int) bool { return p.Status == StatusScored })
	if len(scored) > 0 {
		strongest := lo.MaxBy(scored, func(a, b PillarScore) bool { return a.Score > b.Score })
		weakest := lo.MinBy(scored, func(a, b PillarScore) bool { return a.Score < b.Score })
		in.StrongestPillar, in.StrongestScore = strongest.DisplayName, strongest.Score
		in.WeakestPillar, in.WeakestScore = weakest.DisplayName, weakest.Score
	}
	return explain.ScoreSummary(in)
}

// Explain builds the summary plus per-pillar and per-deduction copy.
func (s PortfolioHealthScore) Explain() Explanation {
	e := Explanation{
		Summary:    s.Summary(),
		Pillars:    make([]PillarNote, 0, len(s.PillarBreakdown)),
		Deductions: []DeductionNote{},
	}
	for _, p := range s.PillarBreakdown {
		e.Pillars = append(e.Pillars, PillarNote{
			Name:        p.Name,
			DisplayName: p.DisplayName,
			Score:       p.Score,
			Explanation: explain.PillarExplanation(string(p.Name), p.Score),
		})
		for _, d := range p.Deductions {
			e.Deductions = append(e.Deductions, DeductionNote{
				Pillar:      p.Name,
				Category:    d.Category,
				Reason:      d.Reason,
				Explanation: explain.DeductionExplanation(d.Category, d.Reason),
			})
		}
	}
	return e
}
