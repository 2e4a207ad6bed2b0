package validate

import (
	"fmt"
	"strings"

	"github.com/calebodette/docaudit/pkg/models"
)

// Engine runs a full validation pass over a set of deliverable artifacts and
// aggregates the checker findings into one report. Each call is independent
// and reentrant: the engine holds no mutable state across invocations.
type Engine interface {
	Validate(artifacts map[models.DocumentKind]models.Artifact) (*models.Report, error)
}

type engine struct {
	rules *models.RuleSet

	// fixedDomain, when non-empty, skips domain detection.
	fixedDomain ProjectDomain
}

// NewEngine creates an Engine using the given rule set. A nil rule set falls
// back to the defaults. The project domain is detected from the combined
// artifact text on each pass.
func NewEngine(rules *models.RuleSet) Engine {
	if rules == nil {
		rules = models.DefaultRuleSet()
	}
	return &engine{rules: rules}
}

// NewEngineForDomain creates an Engine pinned to a known project domain,
// bypassing keyword-based detection.
func NewEngineForDomain(rules *models.RuleSet, domain ProjectDomain) Engine {
	if rules == nil {
		rules = models.DefaultRuleSet()
	}
	return &engine{rules: rules, fixedDomain: domain}
}

// phaseFindings holds checker output grouped by phase, in the order the
// phases run. The aggregate finding sequence and the rendered report both
// derive from it.
type phaseFindings struct {
	kinds        []models.DocumentKind
	quality      map[models.DocumentKind][]models.Finding
	standards    map[models.DocumentKind][]models.Finding
	consistency  []models.Finding
	architecture []models.Finding
	compliance   []models.Finding
}

// ordered flattens the phases into the canonical finding sequence: quality
// findings grouped by artifact, then standards, then consistency, then
// architecture, then compliance.
func (p *phaseFindings) ordered() []models.Finding {
	var findings []models.Finding
	for _, kind := range p.kinds {
		findings = append(findings, p.quality[kind]...)
	}
	for _, kind := range p.kinds {
		findings = append(findings, p.standards[kind]...)
	}
	findings = append(findings, p.consistency...)
	findings = append(findings, p.architecture...)
	findings = append(findings, p.compliance...)
	return findings
}

// Validate runs every checker in fixed phase order and returns the aggregate
// report. Document defects never fail the call; the only error mode is a
// malformed artifact map, reported as models.ErrInvalidInput.
func (e *engine) Validate(artifacts map[models.DocumentKind]models.Artifact) (*models.Report, error) {
	if err := checkInput(artifacts); err != nil {
		return nil, err
	}

	report := &models.Report{}

	if len(artifacts) == 0 {
		report.Findings = []models.Finding{
			models.Issue(models.ScopeGeneral, "no documents provided for validation"),
		}
		report.Tally()
		report.Markdown = renderReport(report, nil)
		return report, nil
	}

	// Map keys are authoritative: fill in a zero-value Kind so per-document
	// findings always carry their kind as scope.
	docs := make(map[models.DocumentKind]models.Artifact, len(artifacts))
	for kind, a := range artifacts {
		a.Kind = kind
		docs[kind] = a
	}

	phases := &phaseFindings{
		kinds:     presentKinds(docs),
		quality:   make(map[models.DocumentKind][]models.Finding),
		standards: make(map[models.DocumentKind][]models.Finding),
	}
	rules := withDomainTerms(e.rules, e.domainFor(docs, phases.kinds))

	// Phases 1 and 2: per-artifact quality and deliverable standards.
	for _, kind := range phases.kinds {
		phases.quality[kind] = ScanQuality(docs[kind], rules)
		phases.standards[kind] = CheckStandards(kind, docs[kind].Text, rules)
	}

	// Phase 3: cross-artifact consistency over shared signals.
	signals := make(map[models.DocumentKind]Signals, len(docs))
	for _, kind := range phases.kinds {
		signals[kind] = ExtractSignals(docs[kind], rules)
	}
	phases.consistency = CheckConsistency(signals, rules)

	// Phase 4: architecture structure, only for the technical architecture doc.
	if arch, ok := docs[models.KindArchitecture]; ok {
		phases.architecture = CheckArchitecture(arch.Text, rules)
	}

	// Phase 5: industry standards compliance over the combined text.
	phases.compliance = CheckCompliance(combinedText(docs, phases.kinds), rules)

	report.Findings = phases.ordered()
	report.Tally()
	report.Markdown = renderReport(report, phases)
	return report, nil
}

func (e *engine) domainFor(artifacts map[models.DocumentKind]models.Artifact, kinds []models.DocumentKind) ProjectDomain {
	if e.fixedDomain != "" {
		return e.fixedDomain
	}
	return DetectDomain(combinedText(artifacts, kinds))
}

// checkInput validates the artifact map shape. A violation here is a caller
// bug, not a document defect.
func checkInput(artifacts map[models.DocumentKind]models.Artifact) error {
	for kind, a := range artifacts {
		if !kind.IsValid() {
			return fmt.Errorf("%w: unknown document kind %q", models.ErrInvalidInput, kind)
		}
		if a.Kind != "" && a.Kind != kind {
			return fmt.Errorf("%w: artifact keyed %q carries kind %q", models.ErrInvalidInput, kind, a.Kind)
		}
	}
	return nil
}

// presentKinds returns the artifact map keys in canonical order.
func presentKinds(artifacts map[models.DocumentKind]models.Artifact) []models.DocumentKind {
	var kinds []models.DocumentKind
	for _, k := range models.KindOrder {
		if _, ok := artifacts[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func combinedText(artifacts map[models.DocumentKind]models.Artifact, kinds []models.DocumentKind) string {
	var sb strings.Builder
	for _, kind := range kinds {
		sb.WriteString(artifacts[kind].Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
