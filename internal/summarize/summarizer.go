// Package summarize is the boundary to the external text-generation
// service: it shapes the computed statistics into the payload that service
// consumes and delivers it. A failed call is surfaced to the caller and
// never touches analytics state.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/trendwatch/trendwatch/internal/logging"
	"github.com/trendwatch/trendwatch/internal/trends"
)

// KeywordSummary is the per-keyword statistics slice of the payload
type KeywordSummary struct {
	Keyword    string   `json:"keyword"`
	Category   string   `json:"category"`
	Direction  string   `json:"direction"`
	Momentum   string   `json:"momentum"`
	Slope      *float64 `json:"slope,omitempty"`
	Average    *float64 `json:"average,omitempty"`
	Volatility *float64 `json:"volatility,omitempty"`
	PeakMonths []string `json:"peak_months,omitempty"`
	Rank       *int     `json:"rank,omitempty"`
}

// Payload is the document posted to the summarization service
type Payload struct {
	GeneratedAt string           `json:"generated_at"`
	WindowStart string           `json:"window_start,omitempty"`
	WindowEnd   string           `json:"window_end,omitempty"`
	Keywords    []KeywordSummary `json:"keywords"`
	MonthTally  map[string]int   `json:"month_tally"`
}

// Result is the response from the summarization service
type Result struct {
	Summary string `json:"summary"`
}

// Summarizer posts statistics payloads to the text-generation endpoint
type Summarizer struct {
	logger *logging.Logger
	url    string
	client *http.Client
}

// New creates a summarizer for the configured endpoint; an empty URL
// disables it
func New(logger *logging.Logger, url string, timeout time.Duration) *Summarizer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Summarizer{
		logger: logger,
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether an endpoint is configured
func (s *Summarizer) Enabled() bool {
	return s.url != ""
}

// BuildPayload shapes a projection into the summarization document
func BuildPayload(proj *trends.Projection) *Payload {
	payload := &Payload{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Keywords:    make([]KeywordSummary, 0, len(proj.Records)),
		MonthTally:  make(map[string]int, len(proj.MonthTally)),
	}

	if proj.Window != nil {
		payload.WindowStart = proj.Window.Start.Format(time.RFC3339)
		payload.WindowEnd = proj.Window.End.Format(time.RFC3339)
	}

	for month, count := range proj.MonthTally {
		payload.MonthTally[month.String()] = count
	}

	for _, r := range proj.Records {
		summary := KeywordSummary{
			Keyword:   r.Keyword,
			Category:  r.Category,
			Direction: string(r.Direction),
			Momentum:  string(r.Momentum),
		}

		if v, ok := r.Slope.Value(); ok {
			summary.Slope = &v
		}
		if v, ok := r.Average.Value(); ok {
			summary.Average = &v
		}
		if v, ok := r.Volatility.Value(); ok {
			summary.Volatility = &v
		}
		for _, m := range r.PeakMonths {
			summary.PeakMonths = append(summary.PeakMonths, m.String())
		}
		if r.Latest != nil && r.Latest.Rank != nil {
			rank := *r.Latest.Rank
			summary.Rank = &rank
		}

		payload.Keywords = append(payload.Keywords, summary)
	}

	return payload
}

// Summarize posts the projection's statistics and returns the generated
// narrative
func (s *Summarizer) Summarize(ctx context.Context, proj *trends.Projection) (*Result, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("no summarizer endpoint configured")
	}

	body, err := json.Marshal(BuildPayload(proj))
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("summarization call failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("summarization service returned status %d: %s", resp.StatusCode, string(raw))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode summary response: %w", err)
	}

	return &result, nil
}
