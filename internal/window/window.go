// Package window computes the rolling analysis interval from the latest
// known observation date and a configured month count.
package window

import "time"

// Window is an inclusive UTC date interval aligned to calendar months
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Compute derives the analysis window from the latest known observation
// date. End is the last instant (millisecond precision) of the calendar
// month containing latest; Start is the first instant of the month
// (months-1) months earlier, so the window spans exactly `months` calendar
// months inclusive. Returns ok=false when no latest date is known (empty
// store) — callers must treat "no window" as a single consistent state.
func Compute(latest time.Time, ok bool, months int) (Window, bool) {
	if !ok || months < 1 {
		return Window{}, false
	}

	latest = latest.UTC()

	end := time.Date(latest.Year(), latest.Month()+1, 1, 0, 0, 0, 0, time.UTC).
		Add(-time.Millisecond)
	start := time.Date(latest.Year(), latest.Month()-time.Month(months-1), 1, 0, 0, 0, 0, time.UTC)

	return Window{Start: start, End: end}, true
}

// Contains reports whether t falls inside the window (inclusive both ends)
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
