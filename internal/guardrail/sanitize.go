package guardrail

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type replacement struct {
	re   *regexp.Regexp
	with string
}

func replacements(pairs ...string) []replacement {
	out := make([]replacement, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, replacement{re: regexp.MustCompile(`(?i)` + pairs[i]), with: pairs[i+1]})
	}
	return out
}

func apply(text string, rs []replacement) string {
	for _, r := range rs {
		text = r.re.ReplaceAllString(text, r.with)
	}
	return text
}

var (
	adviceReplacements = replacements(
		`\byou\s+should\s+(buy|sell|invest|exit)\b`, "you might consider",
		`\bi\s+recommend\s+(buying|selling|investing)\b`, "one approach could be",
		`\bi\s+advise\s+(you\s+to)?\b`, "you could consider",
		`\bmy\s+advice\s+is\b`, "one perspective is",
		`\bbuy\s+this\b`, "consider this",
		`\bsell\s+this\b`, "review this",
		`\byou\s+must\s+(buy|sell|invest)\b`, "you might want to consider",
	)

	predictionReplacements = replacements(
		`\bwill\s+(definitely|certainly)\s+(go\s+up|rise)\b`, "may potentially increase",
		`\bwill\s+(definitely|certainly)\s+(go\s+down|fall)\b`, "may potentially decrease",
		`\bwill\s+(go\s+up|rise|increase)\b`, "may fluctuate",
		`\bwill\s+(go\s+down|fall|decrease)\b`, "may fluctuate",
		`\bexpect(ed)?\s+to\s+reach\s+(\d+)\b`, "historically has been around ${2}",
		`\bshould\s+reach\s+(\d+)\b`, "has varied around ${1}",
	)

	overconfidenceReplacements = replacements(
		`\bdefinitely\b`, "likely",
		`\bcertainly\b`, "probably",
		`\bguaranteed\b`, "expected",
		`\babsolutely\b`, "generally",
		`\bwithout\s+(a\s+)?doubt\b`, "in most cases",
		`\b100%`, "very likely",
		`\bno\s+risk\b`, "lower risk",
		`\bcan'?t\s+go\s+wrong\b`, "has historically performed well",
		`\bsure\s+thing\b`, "reasonable option",
	)
)

// Transactional verbs and their compliance-safe substitutes.
var vocabulary = map[string]string{
	"buy":       "consider",
	"buying":    "considering",
	"sell":      "review",
	"selling":   "reviewing",
	"exit":      "review",
	"exiting":   "reviewing",
	"invest":    "allocate",
	"investing": "allocating",
}

var transactionalWord = regexp.MustCompile(`(?i)\b(buy|buying|sell|selling|exit|exiting|invest|investing)\b`)

// SanitizeAdviceLanguage softens advice phrasing such as "you should buy".
func SanitizeAdviceLanguage(text string) string {
	return apply(text, adviceReplacements)
}

// SanitizePredictionLanguage softens directional forecasts.
func SanitizePredictionLanguage(text string) string {
	return apply(text, predictionReplacements)
}

// SanitizeOverconfidenceLanguage softens certainty claims.
func SanitizeOverconfidenceLanguage(text string) string {
	return apply(text, overconfidenceReplacements)
}

// SanitizeAdvice rewrites advice phrasing and then substitutes any remaining
// standalone transactional verb. Generated copy always passes through it.
func SanitizeAdvice(text string) string {
	text = SanitizeAdviceLanguage(text)
	return transactionalWord.ReplaceAllStringFunc(text, func(w string) string {
		sub := vocabulary[strings.ToLower(w)]
		if r, _ := utf8.DecodeRuneInString(w); unicode.IsUpper(r) {
			return capitalize(sub)
		}
		return sub
	})
}

// ContainsTransactionalVerb reports whether text still has a buy, sell, exit
// or invest verb as a standalone word.
func ContainsTransactionalVerb(text string) bool {
	return transactionalWord.MatchString(text)
}

// SanitizeOutput applies every sanitizer and lists the ones that changed the text.
func SanitizeOutput(text string) (string, []string) {
	applied := []string{}
	steps := []struct {
		name string
		fn   func(string) string
	}{
		{"advice_language", SanitizeAdviceLanguage},
		{"prediction_language", SanitizePredictionLanguage},
		{"overconfidence_language", SanitizeOverconfidenceLanguage},
	}

	for _, s := range steps {
		next := s.fn(text)
		if next != text {
			applied = append(applied, s.name)
			text = next
		}
	}
	if len(applied) > 0 {
		slog.Info("output sanitized", "sanitizations", applied)
	}
	return text, applied
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
