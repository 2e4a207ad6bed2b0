package models

// SizeThresholds holds the byte-length boundaries used by the quality scanner.
type SizeThresholds struct {
	// MinBytes is the floor below which a document is an issue.
	MinBytes int
	// ShortBytes is the floor below which a document is only a warning.
	ShortBytes int
}

// SectionRules describes the deliverable standard for one document kind.
type SectionRules struct {
	// RequiredSections are heading labels that must appear in the document.
	RequiredSections []string
	// MinSectionWords is the minimum body length for each required section.
	MinSectionWords int
}

// RuleSet bundles every threshold and vocabulary the validation engine
// consults. It is passed in at construction time so the engine stays
// referentially transparent and tests can substitute smaller vocabularies.
type RuleSet struct {
	Size SizeThresholds

	// MinHeadings is the heading count below which structure is flagged.
	MinHeadings int

	// JargonTerms is the vocabulary counted in client-facing documents, and
	// JargonLimit the count above which a warning is emitted.
	JargonTerms []string
	JargonLimit int
	// ClientFacingKinds are the kinds subject to the jargon check.
	ClientFacingKinds []DocumentKind

	// PlaceholderTokens are literal markers whose presence is a hard failure.
	PlaceholderTokens []string

	// Standards maps each kind to its deliverable standard. Kinds with no
	// entry are deliberately exempt from the standards checker.
	Standards map[DocumentKind]SectionRules

	// RiskTerms, ScopeExclusionTerms and TimelineTerms drive the one-shot
	// cross-cutting standards checks.
	RiskTerms           []string
	ScopeExclusionTerms []string
	TimelineTerms       []string

	// TechTerms is the technology vocabulary extracted for consistency
	// checking; DatastoreTerms is the subset whose cross-document conflict is
	// an issue rather than a warning.
	TechTerms      []string
	DatastoreTerms []string

	// EntryPointTerms are component names excused from orphan detection.
	EntryPointTerms []string
	// DiagramTokens are markers counted as a visual architecture aid.
	DiagramTokens []string

	// ComplianceStandards are industry-standard identifiers scanned for in
	// the combined deliverable text.
	ComplianceStandards []string
}

// DefaultRuleSet returns the rule set used when no configuration file
// overrides it. The vocabularies are heuristics, deliberately replaceable
// through configuration rather than baked into checker code.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		Size:        SizeThresholds{MinBytes: 100, ShortBytes: 500},
		MinHeadings: 2,
		JargonTerms: []string{
			"api", "db", "crud", "orm", "jwt", "oauth", "k8s", "kubectl", "dockerfile",
		},
		JargonLimit:       5,
		ClientFacingKinds: []DocumentKind{KindDiscovery, KindSOW},
		PlaceholderTokens: []string{"TODO", "TBD", "XXX"},
		Standards: map[DocumentKind]SectionRules{
			KindSOW: {
				RequiredSections: []string{
					"EXECUTIVE SUMMARY",
					"SUCCESS CRITERIA",
					"SCOPE & DELIVERABLES",
					"ACCEPTANCE CRITERIA",
					"TECHNICAL APPROACH",
					"PROJECT MANAGEMENT",
					"ASSUMPTIONS",
				},
				MinSectionWords: 100,
			},
			KindDiscovery: {
				RequiredSections: []string{
					"PROJECT UNDERSTANDING",
					"OBJECTIVES",
					"STAKEHOLDERS",
					"CONSTRAINTS",
				},
				MinSectionWords: 100,
			},
			KindRoadmap: {
				RequiredSections: []string{
					"PHASES",
					"MILESTONES",
					"TIMELINE",
				},
				MinSectionWords: 100,
			},
		},
		RiskTerms:           []string{"risk", "mitigation", "contingency"},
		ScopeExclusionTerms: []string{"out of scope", "out-of-scope", "excludes", "excluded"},
		TimelineTerms:       []string{"timeline", "milestone", "week", "month", "quarter"},
		TechTerms: []string{
			"postgres", "postgresql", "mysql", "mongodb", "redis", "kafka",
			"rabbitmq", "aws", "azure", "gcp", "dynamodb", "elasticsearch",
			"sqlite", "cassandra",
		},
		DatastoreTerms: []string{
			"postgres", "postgresql", "mysql", "mongodb", "dynamodb",
			"sqlite", "cassandra",
		},
		EntryPointTerms: []string{
			"user", "users", "client", "clients", "browser", "frontend",
			"database", "db", "storage", "cache", "queue", "logs", "monitoring",
		},
		DiagramTokens: []string{"```mermaid", "```dot", "diagram", "figure", "!["},
		ComplianceStandards: []string{
			"OWASP", "ASVS", "ISO 27001", "SOC 2", "SOC2", "GDPR", "HIPAA",
			"PCI", "PCI-DSS", "NIST", "CIS",
		},
	}
}

// IsClientFacing reports whether kind is subject to the jargon check.
func (rs *RuleSet) IsClientFacing(kind DocumentKind) bool {
	for _, k := range rs.ClientFacingKinds {
		if k == kind {
			return true
		}
	}
	return false
}
