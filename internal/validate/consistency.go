package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/calebodette/docaudit/pkg/models"
)

// CheckConsistency compares extracted signals pairwise across all artifacts
// to flag contradictions. Timeline disagreements are warnings; contradictory
// concrete datastore choices are issues. With fewer than two artifacts the
// check is vacuous and returns nil. The comparison is symmetric: input order
// never changes the result.
func CheckConsistency(signals map[models.DocumentKind]Signals, rules *models.RuleSet) []models.Finding {
	if len(signals) < 2 {
		return nil
	}

	kinds := orderedKinds(signals)
	datastores := make(map[string]bool, len(rules.DatastoreTerms))
	for _, t := range rules.DatastoreTerms {
		datastores[canonicalTech(t)] = true
	}

	var findings []models.Finding
	for i := 0; i < len(kinds); i++ {
		for j := i + 1; j < len(kinds); j++ {
			a, b := kinds[i], kinds[j]
			sa, sb := signals[a], signals[b]

			if len(sa.Timeframes) > 0 && len(sb.Timeframes) > 0 && timeframesDisjoint(sa.Timeframes, sb.Timeframes) {
				findings = append(findings, models.Warning(models.ScopeCrossArtifact,
					fmt.Sprintf("timeline mismatch: %s mentions %s while %s mentions %s",
						a, joinTimeframes(sa.Timeframes), b, joinTimeframes(sb.Timeframes))))
			}

			if len(sa.Technologies) > 0 && len(sb.Technologies) > 0 &&
				setsDisjoint(sa.Technologies, sb.Technologies) &&
				(namesDatastore(sa.Technologies, datastores) || namesDatastore(sb.Technologies, datastores)) {
				findings = append(findings, models.Issue(models.ScopeCrossArtifact,
					fmt.Sprintf("technology contradiction: %s names %s while %s names %s",
						a, joinSet(sa.Technologies), b, joinSet(sb.Technologies))))
			}
		}
	}

	if len(findings) == 0 {
		findings = append(findings, models.Pass(models.ScopeCrossArtifact,
			fmt.Sprintf("no contradictions detected across %d documents", len(signals))))
	}
	return findings
}

// orderedKinds returns the map keys in canonical kind order so pairwise
// comparison output is deterministic regardless of map iteration order.
func orderedKinds(signals map[models.DocumentKind]Signals) []models.DocumentKind {
	var kinds []models.DocumentKind
	for _, k := range models.KindOrder {
		if _, ok := signals[k]; ok {
			kinds = append(kinds, k)
		}
	}
	// Unknown kinds sort after the canonical ones.
	var extra []models.DocumentKind
	for k := range signals {
		if !k.IsValid() {
			extra = append(extra, k)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(kinds, extra...)
}

func timeframesDisjoint(a, b map[int]Timeframe) bool {
	for days := range a {
		if _, ok := b[days]; ok {
			return false
		}
	}
	return true
}

func setsDisjoint(a, b map[string]bool) bool {
	for k := range a {
		if b[k] {
			return false
		}
	}
	return true
}

func namesDatastore(techs map[string]bool, datastores map[string]bool) bool {
	for t := range techs {
		if datastores[t] {
			return true
		}
	}
	return false
}

func joinTimeframes(tfs map[int]Timeframe) string {
	keys := make([]int, 0, len(tfs))
	for d := range tfs {
		keys = append(keys, d)
	}
	sort.Ints(keys)
	parts := make([]string, 0, len(keys))
	for _, d := range keys {
		parts = append(parts, tfs[d].Raw)
	}
	return strings.Join(parts, ", ")
}

func joinSet(set map[string]bool) string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
