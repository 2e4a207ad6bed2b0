package validate

import (
	"regexp"

	"github.com/calebodette/docaudit/pkg/models"
)

// ProjectDomain classifies the engagement so domain-specific technology
// vocabulary can be added to the consistency checks.
type ProjectDomain string

const (
	DomainSoftware   ProjectDomain = "software_development"
	DomainAIML       ProjectDomain = "ai_ml"
	DomainTrading    ProjectDomain = "quantitative_trading"
	DomainRobotics   ProjectDomain = "robotics_iot"
	DomainFintech    ProjectDomain = "fintech"
	DomainHealthcare ProjectDomain = "healthcare"
	DomainEcommerce  ProjectDomain = "ecommerce"
	DomainGeneral    ProjectDomain = "general"
)

// domainPatterns maps each domain to the keyword patterns that vote for it.
var domainPatterns = map[ProjectDomain][]*regexp.Regexp{
	DomainTrading: {
		regexp.MustCompile(`(?i)\b(trading|trader|futures|options|portfolio|quant|quantitative)\b`),
		regexp.MustCompile(`(?i)\b(alpha|sharpe|drawdown|backtest)\b`),
		regexp.MustCompile(`(?i)\b(market making|order execution|high frequency)\b`),
	},
	DomainRobotics: {
		regexp.MustCompile(`(?i)\b(robot|robotics|iot|sensor|actuator)\b`),
		regexp.MustCompile(`(?i)\b(embedded|firmware|microcontroller)\b`),
		regexp.MustCompile(`(?i)\b(ros|plc|scada|telemetry)\b`),
	},
	DomainAIML: {
		regexp.MustCompile(`(?i)\b(machine learning|deep learning|neural|model training|inference)\b`),
		regexp.MustCompile(`(?i)\b(nlp|computer vision|recommendation engine)\b`),
		regexp.MustCompile(`(?i)\b(tensorflow|pytorch|scikit|hugging face)\b`),
	},
	DomainFintech: {
		regexp.MustCompile(`(?i)\b(fintech|payment|payments|banking|financial services)\b`),
		regexp.MustCompile(`(?i)\b(blockchain|crypto|defi|wallet)\b`),
		regexp.MustCompile(`(?i)\b(transaction|ledger|settlement)\b`),
	},
	DomainHealthcare: {
		regexp.MustCompile(`(?i)\b(healthcare|medical|clinical|patient|diagnosis)\b`),
		regexp.MustCompile(`(?i)\b(ehr|emr|hipaa|fhir|hl7)\b`),
		regexp.MustCompile(`(?i)\b(telemedicine|pharma)\b`),
	},
	DomainEcommerce: {
		regexp.MustCompile(`(?i)\b(ecommerce|e-commerce|retail|marketplace)\b`),
		regexp.MustCompile(`(?i)\b(cart|checkout|inventory|fulfillment)\b`),
		regexp.MustCompile(`(?i)\b(product catalog|order management)\b`),
	},
	DomainSoftware: {
		regexp.MustCompile(`(?i)\b(web app|mobile app|saas|microservice|microservices)\b`),
		regexp.MustCompile(`(?i)\b(backend|frontend|full[- ]stack)\b`),
	},
}

// domainTechTerms are extra technology vocabulary terms merged into the rule
// set when the corresponding domain is detected.
var domainTechTerms = map[ProjectDomain][]string{
	DomainAIML:       {"tensorflow", "pytorch", "sagemaker", "mlflow"},
	DomainTrading:    {"kdb", "timescaledb", "clickhouse"},
	DomainFintech:    {"stripe", "plaid"},
	DomainHealthcare: {"fhir", "hl7"},
	DomainEcommerce:  {"shopify", "stripe"},
	DomainRobotics:   {"mqtt", "influxdb"},
}

// domainOrder keeps detection deterministic when scores tie.
var domainOrder = []ProjectDomain{
	DomainTrading, DomainRobotics, DomainAIML, DomainFintech,
	DomainHealthcare, DomainEcommerce, DomainSoftware,
}

// DetectDomain classifies text by counting keyword pattern hits per domain.
// Fewer than two hits for every domain yields DomainGeneral.
func DetectDomain(text string) ProjectDomain {
	best := DomainGeneral
	bestScore := 0
	for _, domain := range domainOrder {
		score := 0
		for _, p := range domainPatterns[domain] {
			score += len(p.FindAllString(text, -1))
		}
		if score > bestScore {
			best = domain
			bestScore = score
		}
	}
	if bestScore < 2 {
		return DomainGeneral
	}
	return best
}

// withDomainTerms returns a shallow copy of rules with the detected domain's
// extra technology terms appended. The input rule set is never mutated.
func withDomainTerms(rules *models.RuleSet, domain ProjectDomain) *models.RuleSet {
	extra := domainTechTerms[domain]
	if len(extra) == 0 {
		return rules
	}
	merged := *rules
	merged.TechTerms = append(append([]string{}, rules.TechTerms...), extra...)
	return &merged
}
