package observability

import (
	"fmt"
	"time"
)

// AlertSeverity represents the urgency of an alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert represents a triggered alert condition.
type Alert struct {
	ID          string        `json:"id"`
	Condition   string        `json:"condition"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	TriggeredAt time.Time     `json:"triggered_at"`
}

// AlertThresholds configures when alerts fire over the validation run history.
type AlertThresholds struct {
	// ConsecutiveFailures is how many failed runs in a row before the
	// refinement loop is considered stuck.
	ConsecutiveFailures int `yaml:"consecutive_failures" json:"consecutive_failures"`
	// WarningCeiling is the per-run warning count above which chronic
	// warning load is flagged.
	WarningCeiling int `yaml:"warning_ceiling" json:"warning_ceiling"`
}

// DefaultAlertThresholds returns sensible defaults for alert thresholds.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		ConsecutiveFailures: 3,
		WarningCeiling:      10,
	}
}

// AlertEngine evaluates alert conditions against the run history.
type AlertEngine interface {
	Evaluate() ([]Alert, error)
}

// alertEngine implements AlertEngine by reading run events and checking
// thresholds.
type alertEngine struct {
	eventLog   EventLog
	thresholds AlertThresholds
}

// NewAlertEngine creates an AlertEngine with the given EventLog and thresholds.
func NewAlertEngine(eventLog EventLog, thresholds AlertThresholds) AlertEngine {
	return &alertEngine{eventLog: eventLog, thresholds: thresholds}
}

// Evaluate reads the run history and checks all alert conditions, returning
// any triggered alerts.
func (ae *alertEngine) Evaluate() ([]Alert, error) {
	events, err := ae.eventLog.Read(EventFilter{Type: EventRunCompleted})
	if err != nil {
		return nil, fmt.Errorf("reading run history: %w", err)
	}

	now := time.Now().UTC()
	var alerts []Alert
	alerts = append(alerts, ae.checkConsecutiveFailures(events, now)...)
	alerts = append(alerts, ae.checkIssueRegression(events, now)...)
	alerts = append(alerts, ae.checkChronicWarnings(events, now)...)
	return alerts, nil
}

// checkConsecutiveFailures fires when the last N runs all failed: the
// generation refinement loop is not converging.
func (ae *alertEngine) checkConsecutiveFailures(events []Event, now time.Time) []Alert {
	n := ae.thresholds.ConsecutiveFailures
	if n <= 0 || len(events) < n {
		return nil
	}
	for _, event := range events[len(events)-n:] {
		if verdict, _ := event.Data["verdict"].(string); verdict != "fail" {
			return nil
		}
	}
	return []Alert{{
		ID:          "consecutive-failures",
		Condition:   "consecutive_failures",
		Severity:    SeverityHigh,
		Message:     fmt.Sprintf("last %d validation runs all failed; the refinement loop is not converging", n),
		TriggeredAt: now,
	}}
}

// checkIssueRegression fires when the most recent run found more issues than
// the run before it.
func (ae *alertEngine) checkIssueRegression(events []Event, now time.Time) []Alert {
	if len(events) < 2 {
		return nil
	}
	prev := intField(events[len(events)-2], "issues")
	last := intField(events[len(events)-1], "issues")
	if last <= prev {
		return nil
	}
	return []Alert{{
		ID:          "issue-regression",
		Condition:   "issue_regression",
		Severity:    SeverityMedium,
		Message:     fmt.Sprintf("issue count rose from %d to %d between the last two runs", prev, last),
		TriggeredAt: now,
	}}
}

// checkChronicWarnings fires when the latest run carries an unusually heavy
// warning load even if no issue blocked it.
func (ae *alertEngine) checkChronicWarnings(events []Event, now time.Time) []Alert {
	if len(events) == 0 || ae.thresholds.WarningCeiling <= 0 {
		return nil
	}
	last := events[len(events)-1]
	warnings := intField(last, "warnings")
	if warnings <= ae.thresholds.WarningCeiling {
		return nil
	}
	return []Alert{{
		ID:          "chronic-warnings",
		Condition:   "chronic_warnings",
		Severity:    SeverityLow,
		Message:     fmt.Sprintf("latest run carries %d warnings (ceiling %d); deliverables need review", warnings, ae.thresholds.WarningCeiling),
		TriggeredAt: now,
	}}
}
