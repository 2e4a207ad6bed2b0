package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/calebodette/docaudit/pkg/models"
)

// CheckCompliance scans the combined deliverable text for references to
// industry standards (OWASP, ISO 27001, SOC 2, GDPR, ...). Standards are
// advisory: not every engagement needs one, so absence surfaces as a
// pass-severity suggestion and never moves the verdict.
func CheckCompliance(text string, rules *models.RuleSet) []models.Finding {
	lower := strings.ToLower(text)

	var referenced []string
	for _, std := range rules.ComplianceStandards {
		if strings.Contains(lower, strings.ToLower(std)) {
			referenced = append(referenced, std)
		}
	}
	sort.Strings(referenced)

	if len(referenced) == 0 {
		msg := "no industry standards referenced"
		if suggestions := suggestStandards(nil); len(suggestions) > 0 {
			msg += "; consider " + strings.Join(suggestions, ", ")
		}
		return []models.Finding{models.Pass(models.ScopeCompliance, msg)}
	}

	findings := []models.Finding{
		models.Pass(models.ScopeCompliance,
			fmt.Sprintf("referenced standards: %s", strings.Join(referenced, ", "))),
	}
	if suggestions := suggestStandards(referenced); len(suggestions) > 0 {
		findings = append(findings, models.Pass(models.ScopeCompliance,
			fmt.Sprintf("suggested additions: %s", strings.Join(suggestions, ", "))))
	}
	return findings
}

// standardFamilies groups related standards; one suggestion is made per
// family with no referenced member.
var standardFamilies = []struct {
	members    []string
	suggestion string
}{
	{[]string{"OWASP", "ASVS"}, "OWASP ASVS"},
	{[]string{"ISO 27001", "SOC 2", "SOC2"}, "ISO 27001 or SOC 2"},
	{[]string{"GDPR", "HIPAA", "PCI", "PCI-DSS"}, "GDPR/HIPAA/PCI as applicable"},
	{[]string{"NIST", "CIS"}, "NIST or CIS Benchmarks"},
}

func suggestStandards(referenced []string) []string {
	have := make(map[string]bool, len(referenced))
	for _, r := range referenced {
		have[r] = true
	}

	var suggestions []string
	for _, family := range standardFamilies {
		covered := false
		for _, m := range family.members {
			if have[m] {
				covered = true
				break
			}
		}
		if !covered {
			suggestions = append(suggestions, family.suggestion)
		}
	}
	return suggestions
}
