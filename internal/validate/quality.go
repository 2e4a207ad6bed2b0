package validate

import (
	"fmt"
	"strings"

	"github.com/calebodette/docaudit/pkg/models"
)

// ScanQuality inspects one artifact's text in isolation: size, structure,
// jargon density, and placeholder markers. It never fails: an empty document
// produces a single issue finding and the scan stops there.
func ScanQuality(a models.Artifact, rules *models.RuleSet) []models.Finding {
	scope := string(a.Kind)

	if strings.TrimSpace(a.Text) == "" {
		return []models.Finding{models.Issue(scope, "document absent or empty")}
	}

	var findings []models.Finding
	size := a.ByteLength()

	switch {
	case size < rules.Size.MinBytes:
		findings = append(findings, models.Issue(scope,
			fmt.Sprintf("TOO_SHORT: document under %d bytes (%d bytes)", rules.Size.MinBytes, size)))
	case size < rules.Size.ShortBytes:
		findings = append(findings, models.Warning(scope,
			fmt.Sprintf("document quite short (%d bytes, expected at least %d)", size, rules.Size.ShortBytes)))
	default:
		findings = append(findings, models.Pass(scope,
			fmt.Sprintf("adequate length (%d bytes)", size)))
	}

	sig := ExtractSignals(a, rules)

	if sig.HeadingCount < rules.MinHeadings {
		findings = append(findings, models.Warning(scope,
			fmt.Sprintf("only %d heading(s) found, document may lack structure", sig.HeadingCount)))
	} else {
		findings = append(findings, models.Pass(scope,
			fmt.Sprintf("well-structured with %d sections", sig.HeadingCount)))
	}

	// Technical documents are exempt from the jargon check: jargon is
	// expected there.
	if rules.IsClientFacing(a.Kind) {
		if len(sig.Jargon) > rules.JargonLimit {
			findings = append(findings, models.Warning(scope,
				fmt.Sprintf("high technical jargon count (%d terms: %s), consider simplifying for a client audience",
					len(sig.Jargon), strings.Join(sig.Jargon, ", "))))
		} else {
			findings = append(findings, models.Pass(scope,
				fmt.Sprintf("client-friendly language (%d jargon terms)", len(sig.Jargon))))
		}
	}

	if len(sig.Placeholders) > 0 {
		findings = append(findings, models.Issue(scope,
			fmt.Sprintf("unresolved placeholder markers found (%s), document needs completion",
				strings.Join(sig.Placeholders, ", "))))
	} else {
		findings = append(findings, models.Pass(scope, "no placeholder markers found"))
	}

	return findings
}
