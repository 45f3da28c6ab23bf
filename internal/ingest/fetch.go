package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/trendwatch/trendwatch/internal/logging"
	"github.com/trendwatch/trendwatch/internal/series"
)

// ReportPayload is the JSON document the remote data source serves
type ReportPayload struct {
	ReportDate string           `json:"report_date"`
	Keywords   []KeywordPayload `json:"keywords"`
}

// KeywordPayload is one keyword entry in a fetched report.
// Point values are decoded loosely; non-numeric values are skipped.
type KeywordPayload struct {
	Keyword       string                 `json:"keyword"`
	Rank          *int                   `json:"rank,omitempty"`
	WeeklyChange  string                 `json:"weekly_change,omitempty"`
	MonthlyChange string                 `json:"monthly_change,omitempty"`
	YearlyChange  string                 `json:"yearly_change,omitempty"`
	Points        map[string]interface{} `json:"points"`
}

// Fetcher pulls keyword reports from the remote data source
type Fetcher struct {
	logger *logging.Logger
	url    string
	client *http.Client
}

// NewFetcher creates a fetcher for the configured data source URL
func NewFetcher(logger *logging.Logger, url string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		logger: logger,
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves one report from the data source and converts it into the
// merge input shape. Malformed keyword entries and point values are skipped
// and counted; a transport or decode failure is returned without touching
// any state.
func (f *Fetcher) Fetch(ctx context.Context) (map[string]*series.KeywordSeries, Stats, error) {
	var stats Stats

	if f.url == "" {
		return nil, stats, fmt.Errorf("no data source URL configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, stats, fmt.Errorf("data source fetch failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, stats, fmt.Errorf("data source returned status %d", resp.StatusCode)
	}

	var payload ReportPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, stats, fmt.Errorf("failed to decode report: %w", err)
	}

	return f.convert(payload, &stats), stats, nil
}

// convert turns a decoded payload into keyword series, skipping bad records
func (f *Fetcher) convert(payload ReportPayload, stats *Stats) map[string]*series.KeywordSeries {
	reportDate := series.NormalizeDate(time.Now())
	if payload.ReportDate != "" {
		if date, ok := parseDate(payload.ReportDate); ok {
			reportDate = date
		} else {
			f.logger.Warn("Report has unparseable report date, using today", "date", payload.ReportDate)
		}
	}

	out := make(map[string]*series.KeywordSeries, len(payload.Keywords))

	for _, kw := range payload.Keywords {
		if kw.Keyword == "" {
			stats.SkippedRows++
			f.logger.Warn("Skipping keyword entry without keyword")
			continue
		}

		ks, ok := out[kw.Keyword]
		if !ok {
			ks = series.NewKeywordSeries(kw.Keyword)
			out[kw.Keyword] = ks
		}

		for rawDate, rawValue := range kw.Points {
			date, ok := parseDate(rawDate)
			if !ok {
				stats.SkippedValues++
				f.logger.Warn("Skipping point with unparseable date", "keyword", kw.Keyword, "date", rawDate)
				continue
			}
			value, ok := toFloat64(rawValue)
			if !ok {
				stats.SkippedValues++
				f.logger.Warn("Skipping non-numeric point value", "keyword", kw.Keyword, "date", rawDate)
				continue
			}
			ks.Points[date.UnixMilli()] = value
			stats.Points++
		}

		meta := series.ReportMetadata{
			WeeklyChange:  kw.WeeklyChange,
			MonthlyChange: kw.MonthlyChange,
			YearlyChange:  kw.YearlyChange,
			ReportDate:    reportDate,
			Source:        series.SourceAPI,
		}
		if kw.Rank != nil {
			rank := *kw.Rank
			meta.Rank = &rank
		}
		ks.Metadata = append(ks.Metadata, meta)
	}

	stats.Keywords = len(out)
	return out
}

// toFloat64 coerces the numeric types JSON decoding can produce
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
