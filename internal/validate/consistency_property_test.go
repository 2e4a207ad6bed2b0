package validate

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/calebodette/docaudit/pkg/models"
)

// Consistency checking is symmetric: pairwise comparisons depend only on the
// set of artifacts, never on construction order, so any insertion order of
// the same signals yields identical findings.
func TestProperty_ConsistencyIsOrderIndependent(t *testing.T) {
	rules := models.DefaultRuleSet()

	texts := []string{
		"Delivery completes in 6 months.",
		"All phases fit in 12 weeks.",
		"Data is stored in PostgreSQL.",
		"Persistence layer: MongoDB with Redis caching.",
		"Streaming through Kafka on AWS, go-live in 180 days.",
	}

	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(2, len(models.KindOrder)).Draw(rt, "count")

		assignments := make(map[models.DocumentKind]string, count)
		for i := 0; i < count; i++ {
			kind := models.KindOrder[i]
			idx := rapid.IntRange(0, len(texts)-1).Draw(rt, "text")
			assignments[kind] = texts[idx]
		}

		build := func(order []models.DocumentKind) map[models.DocumentKind]Signals {
			sigs := make(map[models.DocumentKind]Signals, len(order))
			for _, kind := range order {
				sigs[kind] = ExtractSignals(models.Artifact{Kind: kind, Text: assignments[kind]}, rules)
			}
			return sigs
		}

		forward := make([]models.DocumentKind, 0, count)
		for kind := range assignments {
			forward = append(forward, kind)
		}
		reversed := make([]models.DocumentKind, len(forward))
		for i, kind := range forward {
			reversed[len(forward)-1-i] = kind
		}

		a := CheckConsistency(build(forward), rules)
		b := CheckConsistency(build(reversed), rules)

		if len(a) != len(b) {
			rt.Fatalf("finding counts differ by insertion order: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				rt.Fatalf("finding %d differs by insertion order: %v vs %v", i, a[i], b[i])
			}
		}
	})
}

// Swapping which document carries which text flips the message sides but
// never changes the severities produced.
func TestProperty_ConsistencySeveritiesAreSymmetric(t *testing.T) {
	rules := models.DefaultRuleSet()

	rapid.Check(t, func(rt *rapid.T) {
		months := rapid.IntRange(1, 24).Draw(rt, "months")
		weeks := rapid.IntRange(1, 52).Draw(rt, "weeks")

		textA := fmt.Sprintf("Delivery in %d months.", months)
		textB := fmt.Sprintf("Delivery in %d weeks.", weeks)

		one := signalsPair(rules, textA, textB)
		two := signalsPair(rules, textB, textA)

		countBySeverity := func(findings []models.Finding) map[models.Severity]int {
			m := make(map[models.Severity]int)
			for _, f := range findings {
				m[f.Severity]++
			}
			return m
		}

		ca := countBySeverity(CheckConsistency(one, rules))
		cb := countBySeverity(CheckConsistency(two, rules))
		for _, s := range []models.Severity{models.SeverityIssue, models.SeverityWarning, models.SeverityPass} {
			if ca[s] != cb[s] {
				rt.Fatalf("%s count differs when texts swap documents: %d vs %d", s, ca[s], cb[s])
			}
		}
	})
}

func signalsPair(rules *models.RuleSet, sowText, roadmapText string) map[models.DocumentKind]Signals {
	return map[models.DocumentKind]Signals{
		models.KindSOW:     ExtractSignals(models.Artifact{Kind: models.KindSOW, Text: sowText}, rules),
		models.KindRoadmap: ExtractSignals(models.Artifact{Kind: models.KindRoadmap, Text: roadmapText}, rules),
	}
}
