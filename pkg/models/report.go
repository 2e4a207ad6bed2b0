package models

import "errors"

// ErrInvalidInput marks programmer errors in how the validation engine was
// called (malformed artifact maps, unknown kinds). Document defects are never
// reported through errors; they always surface as findings.
var ErrInvalidInput = errors.New("invalid validation input")

// Verdict is the aggregate outcome of a validation pass, derived purely from
// finding severity counts.
type Verdict string

const (
	VerdictPass        Verdict = "pass"
	VerdictPartialPass Verdict = "partial_pass"
	VerdictFail        Verdict = "fail"
)

// Report is the result of one validation pass. It is created fresh by each
// call to the engine and never mutated after return.
type Report struct {
	Findings     []Finding `json:"findings" yaml:"findings"`
	IssueCount   int       `json:"issue_count" yaml:"issue_count"`
	WarningCount int       `json:"warning_count" yaml:"warning_count"`
	PassCount    int       `json:"pass_count" yaml:"pass_count"`
	Verdict      Verdict   `json:"verdict" yaml:"verdict"`

	// Markdown is the rendered report text. Callers needing the verdict
	// programmatically must use the structured fields, not re-parse this.
	Markdown string `json:"-" yaml:"-"`
}

// Tally recomputes the severity counts and verdict from Findings.
func (r *Report) Tally() {
	r.IssueCount, r.WarningCount, r.PassCount = 0, 0, 0
	for _, f := range r.Findings {
		switch f.Severity {
		case SeverityIssue:
			r.IssueCount++
		case SeverityWarning:
			r.WarningCount++
		case SeverityPass:
			r.PassCount++
		}
	}
	switch {
	case r.IssueCount > 0:
		r.Verdict = VerdictFail
	case r.WarningCount > 0:
		r.Verdict = VerdictPartialPass
	default:
		r.Verdict = VerdictPass
	}
}

// Summary is the machine-readable slice of a report persisted alongside the
// rendered Markdown so collaborators never have to parse it back.
type Summary struct {
	Verdict      Verdict   `yaml:"verdict"`
	IssueCount   int       `yaml:"issue_count"`
	WarningCount int       `yaml:"warning_count"`
	PassCount    int       `yaml:"pass_count"`
	Findings     []Finding `yaml:"findings"`
	GeneratedAt  string    `yaml:"generated_at"`
}
