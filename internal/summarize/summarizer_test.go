package summarize

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/trendwatch/trendwatch/internal/analytics"
	"github.com/trendwatch/trendwatch/internal/logging"
	"github.com/trendwatch/trendwatch/internal/series"
	"github.com/trendwatch/trendwatch/internal/trends"
	"github.com/trendwatch/trendwatch/internal/window"
)

func testLogger() *logging.Logger {
	return logging.NewWithWriter(io.Discard, zerolog.ErrorLevel)
}

func sampleProjection() *trends.Projection {
	rank := 2
	slope := analytics.NewMetric(1.5)
	win := window.Window{
		Start: time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.December, 31, 23, 59, 59, 999000000, time.UTC),
	}

	return &trends.Projection{
		Records: []trends.Record{
			{
				Keyword:    "pumpkin spice",
				Category:   "Steady Growth",
				Direction:  analytics.DirectionUpward,
				Momentum:   analytics.MomentumStable,
				Slope:      slope,
				Average:    analytics.NewMetric(30),
				Volatility: analytics.NotApplicable(),
				Latest:     &series.ReportMetadata{Rank: &rank},
				PeakMonths: []time.Month{time.October},
			},
		},
		Window:     &win,
		MonthTally: map[time.Month]int{time.October: 1},
	}
}

func TestBuildPayload(t *testing.T) {
	payload := BuildPayload(sampleProjection())

	if len(payload.Keywords) != 1 {
		t.Fatalf("expected 1 keyword, got %d", len(payload.Keywords))
	}

	kw := payload.Keywords[0]
	if kw.Keyword != "pumpkin spice" || kw.Category != "Steady Growth" {
		t.Errorf("unexpected keyword summary: %+v", kw)
	}
	if kw.Slope == nil || *kw.Slope != 1.5 {
		t.Errorf("expected slope 1.5, got %v", kw.Slope)
	}
	// Not-applicable metrics are omitted, not zeroed
	if kw.Volatility != nil {
		t.Errorf("expected nil volatility, got %v", kw.Volatility)
	}
	if kw.Rank == nil || *kw.Rank != 2 {
		t.Errorf("expected rank 2, got %v", kw.Rank)
	}
	if len(kw.PeakMonths) != 1 || kw.PeakMonths[0] != "October" {
		t.Errorf("unexpected peak months %v", kw.PeakMonths)
	}

	if payload.MonthTally["October"] != 1 {
		t.Errorf("unexpected tally %v", payload.MonthTally)
	}
	if payload.WindowStart == "" || payload.WindowEnd == "" {
		t.Error("expected window bounds in the payload")
	}
}

func TestSummarize(t *testing.T) {
	var received Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		_, _ = w.Write([]byte(`{"summary":"October is the peak month."}`))
	}))
	defer srv.Close()

	s := New(testLogger(), srv.URL, 5*time.Second)
	result, err := s.Summarize(context.Background(), sampleProjection())
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if result.Summary != "October is the peak month." {
		t.Errorf("unexpected summary %q", result.Summary)
	}
	if len(received.Keywords) != 1 {
		t.Errorf("service received %d keywords", len(received.Keywords))
	}
}

func TestSummarize_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := New(testLogger(), srv.URL, 5*time.Second)
	if _, err := s.Summarize(context.Background(), sampleProjection()); err == nil {
		t.Error("expected error for 503 response")
	}
}

func TestSummarize_Disabled(t *testing.T) {
	s := New(testLogger(), "", time.Second)
	if s.Enabled() {
		t.Error("empty URL must disable the summarizer")
	}
	if _, err := s.Summarize(context.Background(), sampleProjection()); err == nil {
		t.Error("expected error when disabled")
	}
}
