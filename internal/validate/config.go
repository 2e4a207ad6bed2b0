package validate

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/calebodette/docaudit/pkg/models"
)

// RuleSetLoader loads the validation rule set, merging a .docauditrc YAML
// file over the built-in defaults.
type RuleSetLoader interface {
	Load() (*models.RuleSet, error)
}

// viperRuleSetLoader implements RuleSetLoader using Viper to read the
// optional .docauditrc file.
type viperRuleSetLoader struct {
	// basePath is the directory where .docauditrc resides.
	basePath string
}

// NewRuleSetLoader creates a RuleSetLoader that reads configuration relative
// to basePath.
func NewRuleSetLoader(basePath string) RuleSetLoader {
	return &viperRuleSetLoader{basePath: basePath}
}

// Load reads .docauditrc from the base path. If the file does not exist the
// default rule set is returned unchanged.
func (l *viperRuleSetLoader) Load() (*models.RuleSet, error) {
	rules := models.DefaultRuleSet()

	v := viper.New()
	v.SetConfigName(".docauditrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(l.basePath)

	// Defaults so missing keys fall back gracefully.
	v.SetDefault("size.min_bytes", rules.Size.MinBytes)
	v.SetDefault("size.short_bytes", rules.Size.ShortBytes)
	v.SetDefault("structure.min_headings", rules.MinHeadings)
	v.SetDefault("jargon.limit", rules.JargonLimit)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file found, defaults apply.
			return rules, nil
		}
		return nil, fmt.Errorf("reading .docauditrc: %w", err)
	}

	rules.Size.MinBytes = v.GetInt("size.min_bytes")
	rules.Size.ShortBytes = v.GetInt("size.short_bytes")
	rules.MinHeadings = v.GetInt("structure.min_headings")
	rules.JargonLimit = v.GetInt("jargon.limit")

	overrideSlice(v, "jargon.terms", &rules.JargonTerms)
	overrideSlice(v, "placeholders.tokens", &rules.PlaceholderTokens)
	overrideSlice(v, "vocab.tech", &rules.TechTerms)
	overrideSlice(v, "vocab.datastores", &rules.DatastoreTerms)
	overrideSlice(v, "vocab.entry_points", &rules.EntryPointTerms)
	overrideSlice(v, "vocab.diagram_tokens", &rules.DiagramTokens)
	overrideSlice(v, "vocab.risk", &rules.RiskTerms)
	overrideSlice(v, "vocab.scope_exclusions", &rules.ScopeExclusionTerms)
	overrideSlice(v, "vocab.timeline", &rules.TimelineTerms)
	overrideSlice(v, "compliance.standards", &rules.ComplianceStandards)

	// Per-kind deliverable standards: standards.<kind>.sections and
	// standards.<kind>.min_words.
	for _, kind := range models.KindOrder {
		sectionsKey := fmt.Sprintf("standards.%s.sections", kind)
		wordsKey := fmt.Sprintf("standards.%s.min_words", kind)
		if !v.IsSet(sectionsKey) && !v.IsSet(wordsKey) {
			continue
		}

		std := rules.Standards[kind]
		if v.IsSet(sectionsKey) {
			std.RequiredSections = v.GetStringSlice(sectionsKey)
		}
		if v.IsSet(wordsKey) {
			std.MinSectionWords = v.GetInt(wordsKey)
		} else if std.MinSectionWords == 0 {
			std.MinSectionWords = 100
		}

		if len(std.RequiredSections) == 0 {
			// An explicitly emptied section list removes the standard.
			delete(rules.Standards, kind)
			continue
		}
		rules.Standards[kind] = std
	}

	return rules, nil
}

// overrideSlice replaces target with the configured string slice when the key
// is explicitly set.
func overrideSlice(v *viper.Viper, key string, target *[]string) {
	if v.IsSet(key) {
		*target = v.GetStringSlice(key)
	}
}
