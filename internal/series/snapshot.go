package series

import (
	"fmt"
	"strconv"
	"time"
)

// Snapshot is the plain-data representation of a store that the persistence
// boundary relies on: nested maps and lists only, point maps keyed by the
// decimal string of the unix-millisecond timestamp, dates as ISO-8601.
type Snapshot struct {
	Keywords map[string]KeywordSnapshot `json:"keywords"`
}

// KeywordSnapshot is the plain-data form of one KeywordSeries
type KeywordSnapshot struct {
	Points   map[string]float64 `json:"points"`
	Metadata []MetadataSnapshot `json:"metadata"`
}

// MetadataSnapshot is the plain-data form of one ReportMetadata entry
type MetadataSnapshot struct {
	Rank          *int   `json:"rank,omitempty"`
	WeeklyChange  string `json:"weekly_change,omitempty"`
	MonthlyChange string `json:"monthly_change,omitempty"`
	YearlyChange  string `json:"yearly_change,omitempty"`
	ReportDate    string `json:"report_date"`
	Source        string `json:"source"`
}

// Snapshot converts the store into its persistence representation
func (s *Store) Snapshot() *Snapshot {
	snap := &Snapshot{Keywords: make(map[string]KeywordSnapshot, len(s.Keywords))}

	for keyword, ks := range s.Keywords {
		points := make(map[string]float64, len(ks.Points))
		for ts, v := range ks.Points {
			points[strconv.FormatInt(ts, 10)] = v
		}

		metadata := make([]MetadataSnapshot, len(ks.Metadata))
		for i, m := range ks.Metadata {
			entry := MetadataSnapshot{
				WeeklyChange:  m.WeeklyChange,
				MonthlyChange: m.MonthlyChange,
				YearlyChange:  m.YearlyChange,
				ReportDate:    m.ReportDate.UTC().Format(time.RFC3339),
				Source:        string(m.Source),
			}
			if m.Rank != nil {
				rank := *m.Rank
				entry.Rank = &rank
			}
			metadata[i] = entry
		}

		snap.Keywords[keyword] = KeywordSnapshot{Points: points, Metadata: metadata}
	}

	return snap
}

// Restore rebuilds a store from its persistence representation
func Restore(snap *Snapshot) (*Store, error) {
	store := NewStore()
	if snap == nil {
		return store, nil
	}

	for keyword, ksnap := range snap.Keywords {
		ks := NewKeywordSeries(keyword)

		for key, v := range ksnap.Points {
			ts, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid point timestamp %q for keyword %q: %w", key, keyword, err)
			}
			ks.Points[ts] = v
		}

		ks.Metadata = make([]ReportMetadata, len(ksnap.Metadata))
		for i, m := range ksnap.Metadata {
			reportDate, err := time.Parse(time.RFC3339, m.ReportDate)
			if err != nil {
				return nil, fmt.Errorf("invalid report date %q for keyword %q: %w", m.ReportDate, keyword, err)
			}

			entry := ReportMetadata{
				WeeklyChange:  m.WeeklyChange,
				MonthlyChange: m.MonthlyChange,
				YearlyChange:  m.YearlyChange,
				ReportDate:    reportDate.UTC(),
				Source:        Source(m.Source),
			}
			if m.Rank != nil {
				rank := *m.Rank
				entry.Rank = &rank
			}
			ks.Metadata[i] = entry
		}

		store.Keywords[keyword] = ks
	}

	return store, nil
}
