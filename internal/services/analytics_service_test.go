package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/trendwatch/trendwatch/internal/config"
	"github.com/trendwatch/trendwatch/internal/logging"
	"github.com/trendwatch/trendwatch/internal/persistence"
	"github.com/trendwatch/trendwatch/internal/series"
	"github.com/trendwatch/trendwatch/internal/summarize"
)

func testService(t *testing.T, summarizer *summarize.Summarizer) *AnalyticsService {
	t.Helper()

	snapshots, err := persistence.NewSnapshotStore(config.PersistenceConfig{})
	if err != nil {
		t.Fatalf("snapshot store: %v", err)
	}

	return NewAnalyticsService(
		logging.NewWithWriter(io.Discard, zerolog.ErrorLevel),
		config.DefaultConfig().Analytics,
		snapshots,
		summarizer,
	)
}

func sampleIncoming(keyword string, values ...float64) map[string]*series.KeywordSeries {
	ks := series.NewKeywordSeries(keyword)
	for i, v := range values {
		ts := time.Date(2024, time.January+time.Month(i), 1, 0, 0, 0, 0, time.UTC).UnixMilli()
		ks.Points[ts] = v
	}
	return map[string]*series.KeywordSeries{keyword: ks}
}

func TestIngestAndProjection(t *testing.T) {
	svc := testService(t, nil)

	keywords, points := svc.Ingest(sampleIncoming("pumpkin spice", 10, 20, 30))
	if keywords != 1 || points != 3 {
		t.Errorf("expected 1 keyword / 3 points, got %d / %d", keywords, points)
	}

	proj := svc.Projection()
	if len(proj.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(proj.Records))
	}
	if proj.Records[0].Keyword != "pumpkin spice" {
		t.Errorf("unexpected keyword %q", proj.Records[0].Keyword)
	}
}

func TestProjectionCached(t *testing.T) {
	svc := testService(t, nil)
	svc.Ingest(sampleIncoming("pumpkin spice", 10, 20, 30))

	first := svc.Projection()
	second := svc.Projection()
	if first != second {
		t.Error("expected the cached projection pointer with no state change")
	}

	// Another ingest invalidates
	svc.Ingest(sampleIncoming("eggnog latte", 5, 6, 7))
	third := svc.Projection()
	if third == second {
		t.Error("expected recompute after ingest")
	}
	if len(third.Records) != 2 {
		t.Errorf("expected 2 records, got %d", len(third.Records))
	}

	// An options change invalidates too
	opts := svc.Options()
	opts.AnalysisWindowMonths = 12
	if err := svc.UpdateOptions(opts); err != nil {
		t.Fatalf("update options: %v", err)
	}
	if svc.Projection() == third {
		t.Error("expected recompute after options change")
	}
}

func TestUpdateOptionsValidates(t *testing.T) {
	svc := testService(t, nil)

	opts := svc.Options()
	opts.AnalysisWindowMonths = 2

	err := svc.UpdateOptions(opts)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) || serviceErr.Code != "INVALID_OPTIONS" {
		t.Errorf("expected INVALID_OPTIONS service error, got %v", err)
	}

	// Rejected options must not take effect
	if svc.Options().AnalysisWindowMonths == 2 {
		t.Error("invalid options were applied")
	}
}

func TestClear(t *testing.T) {
	svc := testService(t, nil)
	svc.Ingest(sampleIncoming("pumpkin spice", 10, 20))

	svc.Clear()
	if proj := svc.Projection(); len(proj.Records) != 0 {
		t.Errorf("expected empty projection after clear, got %d records", len(proj.Records))
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	svc := testService(t, nil)
	svc.Ingest(sampleIncoming("pumpkin spice", 10, 20, 30))
	ctx := context.Background()

	if err := svc.SaveSnapshot(ctx); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	svc.Clear()
	if err := svc.LoadSnapshot(ctx); err != nil {
		t.Fatalf("load snapshot: %v", err)
	}

	proj := svc.Projection()
	if len(proj.Records) != 1 || proj.Records[0].Keyword != "pumpkin spice" {
		t.Fatalf("snapshot did not restore the store: %+v", proj.Records)
	}
	if len(proj.Records[0].Points) != 3 {
		t.Errorf("expected 3 restored points, got %d", len(proj.Records[0].Points))
	}
}

func TestLoadSnapshotEmpty(t *testing.T) {
	svc := testService(t, nil)

	err := svc.LoadSnapshot(context.Background())
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) || serviceErr.Code != "NO_SNAPSHOT" {
		t.Errorf("expected NO_SNAPSHOT service error, got %v", err)
	}
}

func TestSummarizeDisabled(t *testing.T) {
	svc := testService(t, nil)
	svc.Ingest(sampleIncoming("pumpkin spice", 10, 20))

	_, err := svc.Summarize(context.Background())
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) || serviceErr.Code != "SUMMARIZER_DISABLED" {
		t.Errorf("expected SUMMARIZER_DISABLED, got %v", err)
	}
}

func TestSummarizeNoData(t *testing.T) {
	logger := logging.NewWithWriter(io.Discard, zerolog.ErrorLevel)
	svc := testService(t, summarize.New(logger, "http://localhost:1", time.Second))

	_, err := svc.Summarize(context.Background())
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) || serviceErr.Code != "NO_DATA" {
		t.Errorf("expected NO_DATA, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"summary":"Pumpkin spice is trending upward."}`))
	}))
	defer srv.Close()

	logger := logging.NewWithWriter(io.Discard, zerolog.ErrorLevel)
	svc := testService(t, summarize.New(logger, srv.URL, 5*time.Second))
	svc.Ingest(sampleIncoming("pumpkin spice", 10, 20, 30))

	result, err := svc.Summarize(context.Background())
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if result.Summary != "Pumpkin spice is trending upward." {
		t.Errorf("unexpected summary %q", result.Summary)
	}
}
