package observability

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSlackNotifier_NoAlerts(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL)
	if err := n.Notify(nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if called {
		t.Fatal("expected no HTTP request for empty alerts")
	}
}

func TestSlackNotifier_SendsAlerts(t *testing.T) {
	var receivedBody []byte
	var receivedContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedContentType = r.Header.Get("Content-Type")
		var err error
		receivedBody, err = io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("reading request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL)
	alerts := []Alert{
		{
			ID:          "consecutive-failures",
			Condition:   "consecutive_failures",
			Severity:    SeverityHigh,
			Message:     "last 3 validation runs all failed; the refinement loop is not converging",
			TriggeredAt: time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:          "chronic-warnings",
			Condition:   "chronic_warnings",
			Severity:    SeverityLow,
			Message:     "latest run carries 12 warnings (ceiling 10); deliverables need review",
			TriggeredAt: time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC),
		},
	}

	if err := n.Notify(alerts); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if receivedContentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", receivedContentType)
	}

	var msg slackMessage
	if err := json.Unmarshal(receivedBody, &msg); err != nil {
		t.Fatalf("unmarshaling request body: %v", err)
	}

	// Expect: header + section(alert1) + divider + section(alert2) = 4 blocks.
	if len(msg.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(msg.Blocks))
	}
	if msg.Blocks[0].Type != "header" {
		t.Errorf("expected first block type header, got %s", msg.Blocks[0].Type)
	}
	if !strings.Contains(msg.Blocks[1].Text.Text, "refinement loop") {
		t.Errorf("first section should carry the alert message: %s", msg.Blocks[1].Text.Text)
	}
	if !strings.Contains(msg.Blocks[1].Text.Text, "HIGH") {
		t.Errorf("section should carry the severity label: %s", msg.Blocks[1].Text.Text)
	}
	if msg.Blocks[2].Type != "divider" {
		t.Errorf("expected a divider between alerts, got %s", msg.Blocks[2].Type)
	}
}

func TestSlackNotifier_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL)
	err := n.Notify([]Alert{{ID: "x", Severity: SeverityLow, Message: "m", TriggeredAt: time.Now()}})
	if err == nil {
		t.Fatal("expected an error for a non-200 webhook response")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error should carry the status code: %v", err)
	}
}
