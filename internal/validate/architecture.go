package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/calebodette/docaudit/pkg/models"
)

// arrowPattern matches one "source -> target" connection. Names are trimmed
// non-empty runs of word characters, spaces, and hyphens.
var arrowPattern = regexp.MustCompile(`([A-Za-z0-9_ \-]+)\s*->\s*([A-Za-z0-9_ \-]+)`)

// Edge is one documented connection between two architecture components.
type Edge struct {
	Source string
	Target string
}

// Graph is the component/connection model parsed out of a technical
// architecture document.
type Graph struct {
	Components map[string]bool
	Edges      []Edge
}

// ParseArchitecture scans text line by line for "A -> B" connection notation.
// Each match adds an edge and both endpoint names to the component set; lines
// without the notation are ignored.
func ParseArchitecture(text string) Graph {
	g := Graph{Components: make(map[string]bool)}
	for _, line := range strings.Split(text, "\n") {
		for _, m := range arrowPattern.FindAllStringSubmatch(line, -1) {
			src := strings.TrimSpace(m[1])
			dst := strings.TrimSpace(m[2])
			if src == "" || dst == "" {
				continue
			}
			g.Edges = append(g.Edges, Edge{Source: src, Target: dst})
			g.Components[src] = true
			g.Components[dst] = true
		}
	}
	return g
}

// CheckArchitecture validates the structure of a technical architecture
// document: it must document at least one component connection, endpoints
// should participate in the flow or be recognized entry points, and a visual
// diagram reference is expected.
func CheckArchitecture(text string, rules *models.RuleSet) []models.Finding {
	g := ParseArchitecture(text)

	if len(g.Edges) == 0 {
		return []models.Finding{
			models.Issue(models.ScopeArchitecture, "no architecture relationships documented"),
		}
	}

	var findings []models.Finding

	orphans := findOrphans(g, rules.EntryPointTerms)
	if len(orphans) > 0 {
		findings = append(findings, models.Warning(models.ScopeArchitecture,
			fmt.Sprintf("possible orphan components (no outgoing connections): %s",
				strings.Join(orphans, ", "))))
	}

	lower := strings.ToLower(text)
	hasDiagram := false
	for _, token := range rules.DiagramTokens {
		if strings.Contains(lower, strings.ToLower(token)) {
			hasDiagram = true
			break
		}
	}
	if !hasDiagram {
		findings = append(findings, models.Warning(models.ScopeArchitecture,
			"no diagram detected, consider adding a visual architecture diagram"))
	}

	if len(orphans) == 0 {
		findings = append(findings, models.Pass(models.ScopeArchitecture,
			fmt.Sprintf("component and connection model present (%d components, %d connections)",
				len(g.Components), len(g.Edges))))
	}

	return findings
}

// findOrphans returns components that never appear as the source of an edge
// and are not in the entry-point vocabulary. Leaf nodes are normal, so these
// are surfaced as warnings, not issues.
func findOrphans(g Graph, entryPoints []string) []string {
	sources := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		sources[strings.ToLower(e.Source)] = true
	}
	known := make(map[string]bool, len(entryPoints))
	for _, ep := range entryPoints {
		known[strings.ToLower(ep)] = true
	}

	var orphans []string
	for comp := range g.Components {
		lower := strings.ToLower(comp)
		if !sources[lower] && !known[lower] {
			orphans = append(orphans, comp)
		}
	}
	sort.Strings(orphans)
	return orphans
}
