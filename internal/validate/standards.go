package validate

import (
	"fmt"
	"strings"

	"github.com/calebodette/docaudit/pkg/models"
)

// section is one heading occurrence with its rank and body text.
type section struct {
	label string // normalized (uppercased) heading label
	rank  int    // number of leading # markers
	body  string
}

// CheckStandards applies the per-kind deliverable standard from rules to one
// document: required sections must be present as headings and carry a minimum
// body length, and timeline, scope-exclusion, and risk language must appear
// somewhere in the text. Kinds without a configured standard are a deliberate
// no-op and return nil.
func CheckStandards(kind models.DocumentKind, text string, rules *models.RuleSet) []models.Finding {
	std, ok := rules.Standards[kind]
	if !ok {
		return nil
	}

	scope := string(kind)
	sections := splitSections(text)

	var findings []models.Finding
	missing := 0
	for _, required := range std.RequiredSections {
		sec, found := findSection(sections, required)
		if !found {
			missing++
			findings = append(findings, models.Issue(scope,
				fmt.Sprintf("required section %q missing or not clearly labeled", required)))
			continue
		}
		if words := len(strings.Fields(sec.body)); words < std.MinSectionWords {
			findings = append(findings, models.Warning(scope,
				fmt.Sprintf("section %q is thin (%d words, expected at least %d)",
					required, words, std.MinSectionWords)))
		}
	}
	if missing == 0 {
		findings = append(findings, models.Pass(scope, "all required sections present"))
	}

	lower := strings.ToLower(text)

	if containsAny(lower, rules.TimelineTerms) || timeframePattern.MatchString(text) {
		findings = append(findings, models.Pass(scope, "timeline and milestones addressed"))
	} else {
		findings = append(findings, models.Warning(scope, "timeline or milestones not explicitly mentioned"))
	}

	if containsAny(lower, rules.ScopeExclusionTerms) {
		findings = append(findings, models.Pass(scope, "out-of-scope items explicitly defined"))
	} else {
		findings = append(findings, models.Warning(scope, "out-of-scope items not explicitly listed"))
	}

	if containsAny(lower, rules.RiskTerms) {
		findings = append(findings, models.Pass(scope, "risk management addressed"))
	} else {
		findings = append(findings, models.Warning(scope, "risk management not explicitly addressed"))
	}

	return findings
}

// splitSections parses markdown text into heading-delimited sections. The
// body of a section runs until the next heading of equal or higher rank.
func splitSections(text string) []section {
	matches := headingPattern.FindAllStringSubmatchIndex(text, -1)
	var sections []section
	for i, m := range matches {
		rank := m[3] - m[2]
		label := normalizeHeading(text[m[4]:m[5]])

		bodyStart := m[1]
		bodyEnd := len(text)
		for _, next := range matches[i+1:] {
			if next[3]-next[2] <= rank {
				bodyEnd = next[0]
				break
			}
		}
		sections = append(sections, section{
			label: label,
			rank:  rank,
			body:  strings.TrimSpace(text[bodyStart:bodyEnd]),
		})
	}
	return sections
}

// findSection locates the first section whose normalized heading contains the
// required label as a substring.
func findSection(sections []section, required string) (section, bool) {
	want := strings.ToUpper(strings.TrimSpace(required))
	for _, sec := range sections {
		if strings.Contains(sec.label, want) {
			return sec, true
		}
	}
	return section{}, false
}

func containsAny(lower string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(lower, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
