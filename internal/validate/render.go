package validate

import (
	"fmt"
	"strings"

	"github.com/calebodette/docaudit/pkg/models"
)

// severityMarker returns the bullet marker used in the rendered report.
func severityMarker(s models.Severity) string {
	switch s {
	case models.SeverityIssue:
		return "❌"
	case models.SeverityWarning:
		return "⚠️"
	default:
		return "✅"
	}
}

// renderReport produces the Markdown report for one validation pass. The
// output is a pure function of the findings, so repeated passes over the
// same artifacts render identical text.
func renderReport(report *models.Report, phases *phaseFindings) string {
	var sb strings.Builder
	sb.WriteString("# Validation Report\n\n")

	if phases == nil {
		sb.WriteString("No documents were provided.\n\n")
		writeFindings(&sb, report.Findings)
		renderSummary(&sb, report)
		return sb.String()
	}

	sb.WriteString("## Phase 1: Individual Artifact Quality\n\n")
	for _, kind := range phases.kinds {
		sb.WriteString(fmt.Sprintf("### %s\n\n", kind.Title()))
		writeFindings(&sb, phases.quality[kind])
	}

	sb.WriteString("## Phase 2: Professional Deliverable Standards\n\n")
	anyStandards := false
	for _, kind := range phases.kinds {
		if len(phases.standards[kind]) == 0 {
			continue
		}
		anyStandards = true
		sb.WriteString(fmt.Sprintf("### %s\n\n", kind.Title()))
		writeFindings(&sb, phases.standards[kind])
	}
	if !anyStandards {
		sb.WriteString("No deliverable standards configured for the provided documents.\n\n")
	}

	sb.WriteString("## Phase 3: Cross-Artifact Consistency\n\n")
	if len(phases.consistency) == 0 {
		sb.WriteString("Fewer than two documents present; consistency not evaluated.\n\n")
	} else {
		writeFindings(&sb, phases.consistency)
	}

	if len(phases.architecture) > 0 {
		sb.WriteString("## Phase 4: Technical Architecture\n\n")
		writeFindings(&sb, phases.architecture)
	}

	sb.WriteString("## Phase 5: Industry Standards & Best Practices\n\n")
	writeFindings(&sb, phases.compliance)

	renderSummary(&sb, report)
	return sb.String()
}

func writeFindings(sb *strings.Builder, findings []models.Finding) {
	for _, f := range findings {
		sb.WriteString(fmt.Sprintf("- %s %s\n", severityMarker(f.Severity), f.Message))
	}
	sb.WriteString("\n")
}

func renderSummary(sb *strings.Builder, report *models.Report) {
	sb.WriteString("---\n\n## Validation Summary\n\n")
	sb.WriteString(fmt.Sprintf("- ❌ **Issues (must fix):** %d\n", report.IssueCount))
	sb.WriteString(fmt.Sprintf("- ⚠️ **Warnings (should review):** %d\n", report.WarningCount))
	sb.WriteString(fmt.Sprintf("- ✅ **Passes:** %d\n\n", report.PassCount))

	switch report.Verdict {
	case models.VerdictPass:
		sb.WriteString("**✅ VALIDATION PASSED** - all deliverables meet professional standards.\n")
	case models.VerdictPartialPass:
		sb.WriteString("**⚠️ VALIDATION PARTIAL** - warnings detected; review before client delivery.\n")
	default:
		sb.WriteString("**❌ VALIDATION FAILED** - issues detected; revisions required before delivery.\n")
	}
}
