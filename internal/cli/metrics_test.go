package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/calebodette/docaudit/internal/observability"
)

type metricsMock struct {
	metrics *observability.Metrics
	err     error
}

func (m *metricsMock) Calculate(_ time.Time) (*observability.Metrics, error) {
	return m.metrics, m.err
}

func TestMetricsCmd_NilCalculator(t *testing.T) {
	orig := MetricsCalc
	defer func() { MetricsCalc = orig }()
	MetricsCalc = nil

	err := metricsCmd.RunE(metricsCmd, []string{})
	if err == nil {
		t.Fatal("expected error when MetricsCalc is nil")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMetricsCmd_TableOutput(t *testing.T) {
	orig := MetricsCalc
	defer func() { MetricsCalc = orig }()

	now := time.Now().UTC()
	MetricsCalc = &metricsMock{metrics: &observability.Metrics{
		RunsCompleted: 3,
		RunsByVerdict: map[string]int{"pass": 1, "fail": 2},
		TotalIssues:   6,
		TotalWarnings: 2,
		LastVerdict:   "fail",
		EventCount:    3,
		OldestEvent:   &now,
		NewestEvent:   &now,
	}}

	if err := metricsCmd.RunE(metricsCmd, []string{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMetricsCmd_JSONOutput(t *testing.T) {
	orig := MetricsCalc
	defer func() { MetricsCalc = orig }()
	MetricsCalc = &metricsMock{metrics: &observability.Metrics{RunsByVerdict: map[string]int{}}}

	metricsJSON = true
	defer func() { metricsJSON = false }()

	if err := metricsCmd.RunE(metricsCmd, []string{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseSinceDuration(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"", false},
		{"7d", false},
		{"30d", false},
		{"24h", false},
		{"banana", true},
		{"7x", true},
	}
	for _, tt := range tests {
		_, err := parseSinceDuration(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSinceDuration(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestParseSinceDuration_Window(t *testing.T) {
	got, err := parseSinceDuration("48h")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Now().UTC().Add(-48 * time.Hour)
	if got.Sub(want) > time.Minute || want.Sub(got) > time.Minute {
		t.Errorf("48h window = %v, want about %v", got, want)
	}
}
