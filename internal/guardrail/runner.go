package guardrail

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// Action is what the caller should do with a user question.
type Action string

const (
	ActionProceed Action = "proceed"
	ActionRefuse  Action = "refuse"
	ActionCalm    Action = "calm"
	ActionRewrite Action = "rewrite"
)

var (
	preLLM = []Detector{
		DetectBuyAdvice,
		DetectSellAdvice,
		DetectTimingAdvice,
		DetectPanic,
		DetectUrgency,
		DetectGuaranteeRequest,
		DetectPredictionRequest,
	}
	postLLM = []Detector{
		DetectOverconfidence,
		DetectPredictionOutput,
	}
)

// RunPreLLM checks a user question. Critical findings block with refuse,
// panic findings ask for a calming reply, anything else suggests a rewrite.
func RunPreLLM(text string) ([]Result, bool, Action) {
	results := lo.Map(preLLM, func(d Detector, _ int) Result { return d(text) })
	triggered := Triggered(results)

	switch {
	case len(triggered) == 0:
		return results, false, ActionProceed
	case lo.ContainsBy(triggered, func(r Result) bool { return r.Severity == SeverityCritical }):
		return results, true, ActionRefuse
	case lo.ContainsBy(triggered, func(r Result) bool { return r.Type == TypePanic }):
		return results, false, ActionCalm
	default:
		return results, false, ActionRewrite
	}
}

// RunPostLLM checks generated text and returns it sanitized.
func RunPostLLM(text string) ([]Result, string) {
	results := lo.Map(postLLM, func(d Detector, _ int) Result { return d(text) })
	sanitized, _ := SanitizeOutput(text)
	return results, sanitized
}

// Triggered filters results down to the ones that fired.
func Triggered(results []Result) []Result {
	return lo.Filter(results, func(r Result, _ int) bool { return r.Triggered })
}

var queryRewrites = []replacement{
	{regexp.MustCompile(`should\s+i\s+buy\s+(.+?)(\?|$)`), "Can you help me understand the risks and considerations when evaluating ${1}?"},
	{regexp.MustCompile(`should\s+i\s+sell\s+(.+?)(\?|$)`), "Can you help me understand how ${1} fits in my portfolio and what factors to consider?"},
	{regexp.MustCompile(`(what|which)\s+is\s+the\s+best\s+(stock|fund|investment)`), "Can you help me understand how to evaluate different ${2} options based on my goals?"},
	{regexp.MustCompile(`when\s+should\s+i\s+(buy|sell|invest)`), "Can you help me understand what factors influence ${1} decisions?"},
	{regexp.MustCompile(`will\s+(.+?)\s+(go\s+up|rise|fall|crash)`), "Can you help me understand what factors might influence ${1}'s performance?"},
}

// RewriteAdviceQuery turns an advice or prediction question into an
// educational one. The boolean reports whether a rewrite happened.
func RewriteAdviceQuery(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, r := range queryRewrites {
		if !r.re.MatchString(lower) {
			continue
		}
		rewritten := capitalize(r.re.ReplaceAllString(lower, r.with))
		slog.Info("query rewritten", "from", truncate(text, 50), "to", truncate(rewritten, 50))
		return rewritten, true
	}
	return text, false
}

// CalmingContext prefixes an anxious question with instructions to
// acknowledge the user's feelings first.
func CalmingContext(text string) string {
	return "[USER CONTEXT: The user appears anxious or concerned. " +
		"Please acknowledge their feelings first before providing information.]\n\n" + text
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
