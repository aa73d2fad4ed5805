// Package guardrail holds deterministic compliance checks for user questions
// and generated copy: advice, panic, overconfidence and prediction detectors
// plus sanitizers that soften offending language.
package guardrail

import (
	"log/slog"
	"regexp"

	"github.com/mtlprog/wealthlens/internal/metrics"
)

// Type groups detectors by the concern they guard.
type Type string

const (
	TypeAdvice         Type = "advice"
	TypePanic          Type = "panic"
	TypeOverconfidence Type = "overconfidence"
	TypePrediction     Type = "prediction"
)

// Severity of a triggered check.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Result is the outcome of one detector.
type Result struct {
	Triggered bool     `json:"triggered"`
	Type      Type     `json:"type"`
	Name      string   `json:"name"`
	Reason    string   `json:"reason,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	Severity  Severity `json:"severity,omitempty"`
}

// Detector inspects text and reports whether it trips a guardrail.
type Detector func(text string) Result

type rule struct {
	re     *regexp.Regexp
	reason string
}

func rules(pairs ...string) []rule {
	out := make([]rule, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, rule{re: regexp.MustCompile(`(?i)` + pairs[i]), reason: pairs[i+1]})
	}
	return out
}

// firstMatch builds a detector that triggers on the first matching rule.
func firstMatch(t Type, name string, severity Severity, rs []rule) Detector {
	return func(text string) Result {
		for _, r := range rs {
			if r.re.MatchString(text) {
				res := Result{
					Triggered: true,
					Type:      t,
					Name:      name,
					Reason:    r.reason,
					Pattern:   pattern(r.re),
					Severity:  severity,
				}
				logTrigger(res)
				return res
			}
		}
		return Result{Type: t, Name: name}
	}
}

func pattern(re *regexp.Regexp) string {
	s := re.String()
	if len(s) > 4 && s[:4] == "(?i)" {
		return s[4:]
	}
	return s
}

func logTrigger(r Result) {
	slog.Warn("guardrail triggered",
		"name", r.Name,
		"type", r.Type,
		"severity", r.Severity,
		"reason", r.Reason,
		"pattern", r.Pattern)
	metrics.GuardrailTriggers.WithLabelValues(string(r.Type), r.Name).Inc()
}
