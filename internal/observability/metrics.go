package observability

import (
	"fmt"
	"time"
)

// Metrics holds calculated validation-run metrics derived from the event log.
type Metrics struct {
	RunsCompleted int            `json:"runs_completed"`
	RunsByVerdict map[string]int `json:"runs_by_verdict"`
	TotalIssues   int            `json:"total_issues"`
	TotalWarnings int            `json:"total_warnings"`
	TotalPasses   int            `json:"total_passes"`
	LastVerdict   string         `json:"last_verdict,omitempty"`
	EventCount    int            `json:"event_count"`
	OldestEvent   *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent   *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them into metrics.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		RunsByVerdict: make(map[string]int),
	}
	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		if event.Type != EventRunCompleted {
			continue
		}

		m.RunsCompleted++
		if verdict, ok := event.Data["verdict"].(string); ok {
			m.RunsByVerdict[verdict]++
			m.LastVerdict = verdict
		}
		m.TotalIssues += intField(event, "issues")
		m.TotalWarnings += intField(event, "warnings")
		m.TotalPasses += intField(event, "passes")
	}

	return m, nil
}

// intField reads a numeric data field, tolerating the float64 representation
// JSON decoding produces.
func intField(event Event, key string) int {
	switch v := event.Data[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
