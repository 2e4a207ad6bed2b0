// Package validate implements the deliverable validation engine: per-document
// quality scanning, standards checking, cross-artifact consistency analysis,
// architecture structure checks, and report aggregation. The engine is a pure
// function over in-memory text; every document defect becomes a finding,
// never an error.
package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/calebodette/docaudit/pkg/models"
)

// Named patterns encode the behavioral contract of the text scanners. Each has
// a matching and a non-matching case asserted in signals_test.go.
var (
	// headingPattern matches markdown heading lines and captures rank and label.
	headingPattern = regexp.MustCompile(`(?m)^(#{1,6})[ \t]+(.+)$`)

	// timeframePattern matches explicit duration mentions such as "6 months",
	// "12-week" or "90 days".
	timeframePattern = regexp.MustCompile(`(?i)\b(\d+)[-\s]?(day|week|month|year)s?\b`)

	// insertPlaceholderPattern matches bracketed fill-in markers left behind by
	// document templates, e.g. "[Insert client name]".
	insertPlaceholderPattern = regexp.MustCompile(`(?i)\[(insert|fill in)[^\]]*\]`)
)

// approximate day counts per duration unit, used only to compare timeframe
// mentions across documents.
var unitDays = map[string]int{
	"day":   1,
	"week":  7,
	"month": 30,
	"year":  365,
}

// Timeframe is one normalized duration mention.
type Timeframe struct {
	// Days is the approximate duration in days, the comparison key.
	Days int
	// Raw is the mention as written, kept for finding messages.
	Raw string
}

// Signals holds the derived per-artifact data shared between checkers within
// one validation pass. Signals are ephemeral: computed once per artifact and
// discarded when the pass ends.
type Signals struct {
	HeadingCount int
	Headings     []string
	Jargon       []string
	Placeholders []string
	Timeframes   map[int]Timeframe
	Technologies map[string]bool
}

// ExtractSignals computes the signals for one artifact using the vocabularies
// in rules.
func ExtractSignals(a models.Artifact, rules *models.RuleSet) Signals {
	sig := Signals{
		Timeframes:   make(map[int]Timeframe),
		Technologies: make(map[string]bool),
	}

	for _, m := range headingPattern.FindAllStringSubmatch(a.Text, -1) {
		sig.Headings = append(sig.Headings, normalizeHeading(m[2]))
	}
	sig.HeadingCount = len(sig.Headings)

	words := tokenSet(a.Text)
	for _, term := range rules.JargonTerms {
		if words[strings.ToLower(term)] {
			sig.Jargon = append(sig.Jargon, term)
		}
	}
	for _, term := range rules.TechTerms {
		if words[strings.ToLower(term)] {
			sig.Technologies[canonicalTech(term)] = true
		}
	}

	lower := strings.ToLower(a.Text)
	for _, token := range rules.PlaceholderTokens {
		if strings.Contains(lower, strings.ToLower(token)) {
			sig.Placeholders = append(sig.Placeholders, token)
		}
	}
	if m := insertPlaceholderPattern.FindString(a.Text); m != "" {
		sig.Placeholders = append(sig.Placeholders, m)
	}

	for _, m := range timeframePattern.FindAllStringSubmatch(a.Text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n == 0 {
			continue
		}
		days := n * unitDays[strings.ToLower(m[2])]
		if _, seen := sig.Timeframes[days]; !seen {
			sig.Timeframes[days] = Timeframe{Days: days, Raw: strings.TrimSpace(m[0])}
		}
	}

	return sig
}

// techAliases maps vocabulary spellings to one canonical technology name so
// that "postgresql" and "postgres" never read as a contradiction.
var techAliases = map[string]string{
	"postgresql": "postgres",
}

func canonicalTech(term string) string {
	term = strings.ToLower(term)
	if canon, ok := techAliases[term]; ok {
		return canon
	}
	return term
}

// tokenSet splits text into lowercase alphanumeric words for whole-word
// vocabulary matching.
func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	}) {
		set[w] = true
	}
	return set
}

// normalizeHeading strips markdown markers and uppercases a heading label for
// case-insensitive section matching.
func normalizeHeading(label string) string {
	label = strings.TrimSpace(label)
	label = strings.Trim(label, "*_`")
	return strings.ToUpper(label)
}
