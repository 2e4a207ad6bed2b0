package validate

import (
	"strings"
	"testing"

	"github.com/calebodette/docaudit/pkg/models"
)

func TestCheckCompliance_NoStandardsReferenced(t *testing.T) {
	findings := CheckCompliance("A plain deliverable with no regulatory language.", models.DefaultRuleSet())

	if len(findings) != 1 {
		t.Fatalf("expected a single finding, got %v", findings)
	}
	f := findings[0]
	if f.Severity != models.SeverityPass {
		t.Errorf("absent standards are advisory and must not move the verdict: got %s", f.Severity)
	}
	if f.Scope != models.ScopeCompliance {
		t.Errorf("expected compliance scope, got %s", f.Scope)
	}
	if !strings.Contains(f.Message, "consider") {
		t.Errorf("suggestion should name candidate standards: %s", f.Message)
	}
}

func TestCheckCompliance_ReferencedStandards(t *testing.T) {
	text := "Security follows OWASP guidance; data handling complies with GDPR."
	findings := CheckCompliance(text, models.DefaultRuleSet())

	ref := findingWith(findings, "referenced standards")
	if ref == nil {
		t.Fatalf("expected a referenced-standards pass, got %v", findings)
	}
	if ref.Severity != models.SeverityPass {
		t.Errorf("expected pass, got %s", ref.Severity)
	}
	if !strings.Contains(ref.Message, "GDPR") || !strings.Contains(ref.Message, "OWASP") {
		t.Errorf("pass should name the referenced standards: %s", ref.Message)
	}

	// Uncovered families still get suggested.
	sugg := findingWith(findings, "suggested additions")
	if sugg == nil {
		t.Fatalf("expected suggestions for uncovered families, got %v", findings)
	}
	if !strings.Contains(sugg.Message, "ISO 27001") {
		t.Errorf("expected an audit-framework suggestion: %s", sugg.Message)
	}
	if strings.Contains(sugg.Message, "OWASP ASVS") {
		t.Errorf("covered families must not be re-suggested: %s", sugg.Message)
	}
}

func TestCheckCompliance_CaseInsensitive(t *testing.T) {
	findings := CheckCompliance("we align with owasp and soc 2 controls", models.DefaultRuleSet())

	ref := findingWith(findings, "referenced standards")
	if ref == nil {
		t.Fatalf("expected case-insensitive matches, got %v", findings)
	}
}
