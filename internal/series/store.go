package series

import "time"

// Store is the aggregate root: one KeywordSeries per keyword, case-sensitive
// as typed by the source. The hosting service owns its lifecycle explicitly;
// Merge never mutates a store in place.
type Store struct {
	Keywords map[string]*KeywordSeries
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{Keywords: make(map[string]*KeywordSeries)}
}

// Clone returns a deep copy of the store
func (s *Store) Clone() *Store {
	out := NewStore()
	for keyword, ks := range s.Keywords {
		out.Keywords[keyword] = ks.Clone()
	}
	return out
}

// Len returns the number of keywords in the store
func (s *Store) Len() int {
	return len(s.Keywords)
}

// PointCount returns the total number of points across all keywords
func (s *Store) PointCount() int {
	total := 0
	for _, ks := range s.Keywords {
		total += len(ks.Points)
	}
	return total
}

// LatestTimestamp returns the maximum observation time across all series.
// The second return is false when the store holds no points at all.
func (s *Store) LatestTimestamp() (time.Time, bool) {
	var latest int64
	found := false

	for _, ks := range s.Keywords {
		for ts := range ks.Points {
			if !found || ts > latest {
				latest = ts
				found = true
			}
		}
	}

	if !found {
		return time.Time{}, false
	}
	return time.UnixMilli(latest).UTC(), true
}

// Merge folds incoming keyword series into an existing store and returns the
// merged state as a new store; the existing store is left untouched.
//
// For each incoming keyword: absent keywords are inserted as deep copies;
// present keywords union their point maps with incoming values overwriting
// existing ones on timestamp collision, and incoming metadata entries are
// appended to the log unconditionally. Re-ingesting the same report is
// therefore idempotent on points but appends a duplicate metadata entry —
// no report-level deduplication is attempted.
func Merge(existing *Store, incoming map[string]*KeywordSeries) *Store {
	var merged *Store
	if existing == nil {
		merged = NewStore()
	} else {
		merged = existing.Clone()
	}

	for keyword, in := range incoming {
		current, ok := merged.Keywords[keyword]
		if !ok {
			merged.Keywords[keyword] = in.Clone()
			continue
		}

		for ts, v := range in.Points {
			current.Points[ts] = v
		}
		for _, m := range in.Metadata {
			entry := m
			if m.Rank != nil {
				rank := *m.Rank
				entry.Rank = &rank
			}
			current.Metadata = append(current.Metadata, entry)
		}
	}

	return merged
}
