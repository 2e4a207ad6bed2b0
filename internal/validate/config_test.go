package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/calebodette/docaudit/pkg/models"
)

func TestRuleSetLoader_MissingFileUsesDefaults(t *testing.T) {
	rules, err := NewRuleSetLoader(t.TempDir()).Load()
	if err != nil {
		t.Fatalf("a missing config file must not be an error: %v", err)
	}

	defaults := models.DefaultRuleSet()
	if rules.Size.MinBytes != defaults.Size.MinBytes {
		t.Errorf("min bytes = %d, want default %d", rules.Size.MinBytes, defaults.Size.MinBytes)
	}
	if rules.JargonLimit != defaults.JargonLimit {
		t.Errorf("jargon limit = %d, want default %d", rules.JargonLimit, defaults.JargonLimit)
	}
	if len(rules.Standards) != len(defaults.Standards) {
		t.Errorf("standards count = %d, want %d", len(rules.Standards), len(defaults.Standards))
	}
}

func TestRuleSetLoader_Overrides(t *testing.T) {
	dir := t.TempDir()
	config := `size:
  min_bytes: 250
  short_bytes: 800
structure:
  min_headings: 4
jargon:
  limit: 2
  terms:
    - grpc
    - protobuf
compliance:
  standards:
    - OWASP
`
	if err := os.WriteFile(filepath.Join(dir, ".docauditrc"), []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := NewRuleSetLoader(dir).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rules.Size.MinBytes != 250 || rules.Size.ShortBytes != 800 {
		t.Errorf("size = %+v, want 250/800", rules.Size)
	}
	if rules.MinHeadings != 4 {
		t.Errorf("min headings = %d, want 4", rules.MinHeadings)
	}
	if rules.JargonLimit != 2 {
		t.Errorf("jargon limit = %d, want 2", rules.JargonLimit)
	}
	if len(rules.JargonTerms) != 2 || rules.JargonTerms[0] != "grpc" {
		t.Errorf("jargon terms = %v, want [grpc protobuf]", rules.JargonTerms)
	}
	if len(rules.ComplianceStandards) != 1 {
		t.Errorf("compliance standards = %v, want [OWASP]", rules.ComplianceStandards)
	}

	// Untouched keys keep their defaults.
	defaults := models.DefaultRuleSet()
	if len(rules.TechTerms) != len(defaults.TechTerms) {
		t.Errorf("tech terms should be untouched: %v", rules.TechTerms)
	}
}

func TestRuleSetLoader_PerKindStandards(t *testing.T) {
	dir := t.TempDir()
	config := `standards:
  roadmap:
    sections:
      - PHASES
      - BUDGET
    min_words: 50
  discovery:
    sections: []
`
	if err := os.WriteFile(filepath.Join(dir, ".docauditrc"), []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := NewRuleSetLoader(dir).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	roadmap, ok := rules.Standards[models.KindRoadmap]
	if !ok {
		t.Fatal("expected a roadmap standard")
	}
	if len(roadmap.RequiredSections) != 2 || roadmap.RequiredSections[1] != "BUDGET" {
		t.Errorf("roadmap sections = %v", roadmap.RequiredSections)
	}
	if roadmap.MinSectionWords != 50 {
		t.Errorf("roadmap min words = %d, want 50", roadmap.MinSectionWords)
	}

	// An explicitly emptied section list removes the standard entirely.
	if _, ok := rules.Standards[models.KindDiscovery]; ok {
		t.Error("emptied discovery standard should be removed")
	}

	// Kinds absent from the file keep their defaults.
	if _, ok := rules.Standards[models.KindSOW]; !ok {
		t.Error("sow standard should keep its default")
	}
}

func TestRuleSetLoader_MalformedFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".docauditrc"), []byte("size: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewRuleSetLoader(dir).Load(); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
