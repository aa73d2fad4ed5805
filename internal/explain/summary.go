package explain

import (
	"fmt"
	"strings"

	"github.com/mtlprog/wealthlens/internal/guardrail"
)

// SummaryInput is the slice of a health score the summary paragraph needs.
type SummaryInput struct {
	TotalScore      int
	GradeLabel      string
	TotalHoldings   int
	StrongestPillar string
	StrongestScore  int
	WeakestPillar   string
	WeakestScore    int
}

var gradeCopy = map[Tier]string{
	TierExcellent: "The portfolio is well structured across the areas measured.",
	TierGood:      "The portfolio is in good shape with a few areas to refine.",
	TierFair:      "The portfolio has a reasonable base with some areas worth reviewing.",
	TierPoor:      "Several areas of the portfolio would benefit from a closer review.",
}

// GradeDescription returns the one-line meaning of a score band.
func GradeDescription(score int) string {
	return gradeCopy[TierOf(score)]
}

// ScoreSummary renders a one-paragraph summary of a health score.
func ScoreSummary(in SummaryInput) string {
	if in.TotalHoldings == 0 {
		return "Add holdings to your portfolio to see a health score."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your portfolio health score is %d out of 100 (%s) across %d %s. %s",
		in.TotalScore, in.GradeLabel, in.TotalHoldings, plural(in.TotalHoldings, "holding", "holdings"),
		GradeDescription(in.TotalScore))

	if in.StrongestPillar != "" {
		fmt.Fprintf(&b, " Strongest area: %s (%d).", in.StrongestPillar, in.StrongestScore)
	}
	if in.WeakestPillar != "" && in.WeakestPillar != in.StrongestPillar {
		fmt.Fprintf(&b, " Area to review: %s (%d).", in.WeakestPillar, in.WeakestScore)
	}
	b.WriteString(" This is an educational assessment, not a recommendation.")

	return guardrail.SanitizeAdvice(b.String())
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
