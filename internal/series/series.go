// Package series owns the per-keyword time series store: accumulated
// popularity points plus the append-only report metadata log for each
// keyword, and the merge operation that folds new reports into it.
package series

import (
	"sort"
	"time"
)

// Source identifies where a report came from
type Source string

const (
	SourceCSV Source = "csv"
	SourceAPI Source = "api"
)

// Point represents a single observation with its UTC timestamp
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// ReportMetadata describes one ingested report for one keyword.
// Entries accumulate over repeated ingests and are never deleted or merged.
type ReportMetadata struct {
	Rank          *int      `json:"rank,omitempty"`
	WeeklyChange  string    `json:"weekly_change,omitempty"`
	MonthlyChange string    `json:"monthly_change,omitempty"`
	YearlyChange  string    `json:"yearly_change,omitempty"`
	ReportDate    time.Time `json:"report_date"`
	Source        Source    `json:"source"`
}

// KeywordSeries is the full accumulated history for one keyword.
// Points are keyed by unix-millisecond UTC timestamp; a timestamp appears
// at most once (last write wins on collision).
type KeywordSeries struct {
	Keyword  string
	Points   map[int64]float64
	Metadata []ReportMetadata
}

// NewKeywordSeries creates an empty series for a keyword
func NewKeywordSeries(keyword string) *KeywordSeries {
	return &KeywordSeries{
		Keyword: keyword,
		Points:  make(map[int64]float64),
	}
}

// Clone returns a deep copy of the series
func (ks *KeywordSeries) Clone() *KeywordSeries {
	points := make(map[int64]float64, len(ks.Points))
	for ts, v := range ks.Points {
		points[ts] = v
	}

	metadata := make([]ReportMetadata, len(ks.Metadata))
	for i, m := range ks.Metadata {
		metadata[i] = m
		if m.Rank != nil {
			rank := *m.Rank
			metadata[i].Rank = &rank
		}
	}

	return &KeywordSeries{
		Keyword:  ks.Keyword,
		Points:   points,
		Metadata: metadata,
	}
}

// SortedPoints returns the series points ordered by timestamp ascending
func (ks *KeywordSeries) SortedPoints() []Point {
	points := make([]Point, 0, len(ks.Points))
	for ts, v := range ks.Points {
		points = append(points, Point{Time: time.UnixMilli(ts).UTC(), Value: v})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})

	return points
}

// LatestMetadata returns the metadata entry with the maximum report date.
// Ties are broken by the first entry found in log order, which is stable
// because the log is append-only. Returns nil when no reports were ingested.
func (ks *KeywordSeries) LatestMetadata() *ReportMetadata {
	var latest *ReportMetadata
	for i := range ks.Metadata {
		if latest == nil || ks.Metadata[i].ReportDate.After(latest.ReportDate) {
			latest = &ks.Metadata[i]
		}
	}
	return latest
}

// NormalizeDate truncates a time to UTC midnight, the canonical observation
// timestamp granularity
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
