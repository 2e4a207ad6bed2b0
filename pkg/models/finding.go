package models

// Severity classifies a finding by how urgently it needs attention.
type Severity string

const (
	SeverityIssue   Severity = "issue"
	SeverityWarning Severity = "warning"
	SeverityPass    Severity = "pass"
)

// Scope values for findings that are not tied to a single document.
const (
	ScopeCrossArtifact = "cross-artifact"
	ScopeArchitecture  = "architecture"
	ScopeCompliance    = "compliance"
	ScopeGeneral       = "general"
)

// Finding is one atomic validation result. Findings are pure values: created
// by exactly one checker, never mutated after creation.
type Finding struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Scope    string   `json:"scope" yaml:"scope"`
	Message  string   `json:"message" yaml:"message"`
}

// Issue creates an issue-severity finding.
func Issue(scope, message string) Finding {
	return Finding{Severity: SeverityIssue, Scope: scope, Message: message}
}

// Warning creates a warning-severity finding.
func Warning(scope, message string) Finding {
	return Finding{Severity: SeverityWarning, Scope: scope, Message: message}
}

// Pass creates a pass-severity finding.
func Pass(scope, message string) Finding {
	return Finding{Severity: SeverityPass, Scope: scope, Message: message}
}
