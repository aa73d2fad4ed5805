package guardrail

import (
	"fmt"
	"regexp"
)

var (
	buyAdviceRules = rules(
		`\bshould\s+i\s+buy\b`, "Direct buy advice request",
		`\b(what|which)\s+(stock|share|fund|investment)\s+(should|to)\s+buy\b`, "Stock/fund recommendation request",
		`\brecommend\s+(a\s+)?(stock|share|fund|investment)\s+to\s+buy\b`, "Buy recommendation request",
		`\b(is|are)\s+.+\s+(a\s+)?good\s+buy\b`, "Buy evaluation request",
		`\bbest\s+(stock|share|fund)\s+to\s+buy\b`, "Best buy request",
		`\bgive\s+me\s+(a\s+)?buy\s+(tip|recommendation)\b`, "Buy tip request",
		`\bwhat\s+to\s+buy\b`, "General buy advice",
		`\bbuy\s+karna\s+chahiye\b`, "Hindi buy advice request",
	)

	sellAdviceRules = rules(
		`\bshould\s+i\s+sell\b`, "Direct sell advice request",
		`\bshould\s+i\s+(exit|redeem|withdraw)\b`, "Exit advice request",
		`\b(is\s+it|time)\s+to\s+sell\b`, "Timing sell request",
		`\bbook\s+(my\s+)?profits?\b`, "Profit booking advice",
		`\bcut\s+(my\s+)?loss(es)?\b`, "Loss cutting advice",
		`\bsell\s+karna\s+chahiye\b`, "Hindi sell advice request",
		`\bexit\s+karna\s+chahiye\b`, "Hindi exit advice request",
	)

	timingAdviceRules = rules(
		`\bwhen\s+should\s+i\s+(buy|sell|invest|exit)\b`, "Timing advice request",
		`\b(good|right|best)\s+time\s+to\s+(buy|sell|invest|enter|exit)\b`, "Market timing request",
		`\bwait\s+for\s+(a\s+)?(dip|correction|crash)\b`, "Dip timing request",
		`\bwait\s+and\s+watch\b`, "Wait advice request",
		`\btime\s+the\s+market\b`, "Market timing request",
		`\bbuy\s+the\s+dip\b`, "Dip buying advice",
		`\bentry\s+point\b`, "Entry timing request",
		`\bexit\s+point\b`, "Exit timing request",
	)

	urgencyRules = rules(
		`\bimmediately\b`, "Immediate action request",
		`\bright\s+now\b`, "Right now urgency",
		`\basap\b`, "ASAP urgency",
		`\burgent(ly)?\b`, "Urgent language",
		`\bquick(ly)?\b`, "Quick action request",
		`\bhurry\b`, "Hurry language",
		`\bbefore\s+it'?s\s+too\s+late\b`, "Time pressure",
		`\blast\s+chance\b`, "Last chance urgency",
		`\bnow\s+or\s+never\b`, "Now or never pressure",
		`!{2,}`, "Multiple exclamation marks",
	)

	guaranteeRules = rules(
		`\bguarantee(d)?\s+(return|profit|gain)s?\b`, "Guaranteed returns request",
		`\bguaranteed\s+returns?\b`, "Guaranteed returns request",
		`\bgive\s+me\s+guaranteed\b`, "Guaranteed request",
		`\bassured\s+(return|profit|gain)s?\b`, "Assured returns request",
		`\bfixed\s+returns?\b`, "Fixed return request",
		`\brisk[- ]?free\s+(return|investment|option)\b`, "Risk-free request",
		`\b100\s*%\s*safe\b`, "100% safe request",
		`\bno\s+(risk|loss)\b`, "No risk request",
		`\bzero\s+risk\b`, "Zero risk request",
		`\bsafe\s+investment\s+with\s+high\s+return\b`, "Safe high return request",
		`\bdouble\s+(my|your)\s+money\b`, "Double money request",
	)

	overconfidenceRules = rules(
		`\bwill\s+definitely\b`, "Definite prediction",
		`\bwill\s+certainly\b`, "Certain prediction",
		`\bguaranteed\s+to\b`, "Guarantee language",
		`\bcertain\s+to\b`, "Certainty language",
		`\bwithout\s+(a\s+)?doubt\b`, "No doubt language",
		`\b100\s*%`, "100% certainty",
		`\bno\s+risk\b`, "No risk claim",
		`\bcan'?t\s+(go\s+)?wrong\b`, "Can't go wrong claim",
		`\bsure\s+thing\b`, "Sure thing language",
		`\babsolutely\s+(will|certain)\b`, "Absolute certainty",
	)

	predictionRequestRules = rules(
		`\bwill\s+(the\s+)?(nifty|sensex|market|stock)\s+(go\s+)?(up|down|rise|fall|crash)\b`, "Market direction prediction",
		`\bwill\s+(the\s+)?market\s+go\s+(up|down)\b`, "Market direction prediction",
		`\bwill\s+.+\s+go\s+up\b`, "Go up prediction",
		`\bwhere\s+will\s+.+\s+(be|go|reach)\b`, "Price target prediction",
		`\bpredict\s+(the\s+)?(market|stock|price)\b`, "Direct prediction request",
		`\bforecast\b`, "Forecast request",
		`\btarget\s+price\b`, "Target price request",
		`\bprice\s+target\b`, "Price target request",
		`\bwhat\s+will\s+.+\s+(be|reach)\s+in\b`, "Future value prediction",
		`\bhow\s+(much|high|low)\s+will\s+.+\s+(go|reach)\b`, "Price level prediction",
		`\bexpected\s+(return|price|growth)\b`, "Expected return request",
	)

	predictionOutputRules = rules(
		`\bwill\s+(go\s+)?(up|rise|increase|grow)\b`, "Upward prediction",
		`\bwill\s+(go\s+)?(down|fall|decrease|drop|crash)\b`, "Downward prediction",
		`\bexpect(ed)?\s+to\s+(reach|hit|cross)\b`, "Price expectation",
		`\bshould\s+(reach|hit|cross)\s+\d+\b`, "Price target",
		`\blikely\s+to\s+(reach|hit|go)\b`, "Likely prediction",
		`\bprobably\s+will\s+(rise|fall|go)\b`, "Probable prediction",
	)
)

var (
	DetectBuyAdvice         = firstMatch(TypeAdvice, "buy_advice_detector", SeverityCritical, buyAdviceRules)
	DetectSellAdvice        = firstMatch(TypeAdvice, "sell_advice_detector", SeverityCritical, sellAdviceRules)
	DetectTimingAdvice      = firstMatch(TypeAdvice, "timing_advice_detector", SeverityCritical, timingAdviceRules)
	DetectUrgency           = firstMatch(TypePanic, "urgency_language_detector", SeverityMedium, urgencyRules)
	DetectGuaranteeRequest  = firstMatch(TypeOverconfidence, "guarantee_request_detector", SeverityCritical, guaranteeRules)
	DetectOverconfidence    = firstMatch(TypeOverconfidence, "overconfidence_output_detector", SeverityHigh, overconfidenceRules)
	DetectPredictionRequest = firstMatch(TypePrediction, "prediction_request_detector", SeverityCritical, predictionRequestRules)
	DetectPredictionOutput  = firstMatch(TypePrediction, "prediction_output_detector", SeverityCritical, predictionOutputRules)
)

type weightedRule struct {
	rule
	weight int
}

var panicRules = func() []weightedRule {
	pairs := []struct {
		expr   string
		reason string
		weight int
	}{
		{`\bcrash(ing|ed)?\b`, "Crash language", 2},
		{`\bpanic(king)?\b`, "Panic language", 3},
		{`\blost\s+everything\b`, "Total loss fear", 3},
		{`\bwipe(d)?\s+out\b`, "Wipeout fear", 3},
		{`\bdisaster\b`, "Disaster language", 2},
		{`\bcatastroph(e|ic)\b`, "Catastrophe language", 2},
		{`\bscared\b`, "Fear expression", 2},
		{`\bterrified\b`, "Terror expression", 3},
		{`\bfreaking\s+out\b`, "Panic expression", 3},
		{`\bcan'?t\s+sleep\b`, "Anxiety indicator", 2},
		{`\bworried\s+sick\b`, "Severe worry", 2},
		{`\bwhat\s+do\s+i\s+do\?*!*$`, "Helpless question", 2},
		{`\bhelp\s*!+`, "Urgent help request", 2},
		{`\bmarket\s+(is\s+)?(falling|tanking|bleeding)\b`, "Market fear", 2},
	}
	out := make([]weightedRule, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, weightedRule{
			rule:   rule{re: regexp.MustCompile(`(?i)` + p.expr), reason: p.reason},
			weight: p.weight,
		})
	}
	return out
}()

const (
	panicThreshold     = 2
	panicHighThreshold = 4
)

// DetectPanic sums the weights of every panic indicator present; a total of
// 2 or more triggers, 4 or more is high severity.
func DetectPanic(text string) Result {
	score := 0
	var primary *weightedRule
	for i := range panicRules {
		r := &panicRules[i]
		if r.re.MatchString(text) {
			score += r.weight
			if primary == nil {
				primary = r
			}
		}
	}

	if score < panicThreshold || primary == nil {
		return Result{Type: TypePanic, Name: "panic_language_detector"}
	}

	severity := SeverityMedium
	if score >= panicHighThreshold {
		severity = SeverityHigh
	}
	res := Result{
		Triggered: true,
		Type:      TypePanic,
		Name:      "panic_language_detector",
		Reason:    fmt.Sprintf("Panic indicators detected (score: %d). Primary: %s", score, primary.reason),
		Pattern:   pattern(primary.re),
		Severity:  severity,
	}
	logTrigger(res)
	return res
}
