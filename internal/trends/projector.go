// Package trends assembles the display-ready trend record per keyword:
// window-restricted statistics, full-series moving average and seasonal
// indexes, latest report metadata and a rank-based sort order.
package trends

import (
	"math"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/trendwatch/trendwatch/internal/analytics"
	"github.com/trendwatch/trendwatch/internal/series"
	"github.com/trendwatch/trendwatch/internal/window"
)

// Options are the analysis thresholds a projection is computed with
type Options struct {
	WindowMonths             int
	MovingAverageWindow      int
	SeasonalPeakThresholdPct float64
	VolatilityCVThresholdPct float64
}

// Record is the derived, display-ready analytics record for one keyword.
// It is recomputed on every projection pass and never stored.
type Record struct {
	Keyword       string                    `json:"keyword"`
	Points        []series.Point            `json:"points"`
	WindowPoints  []series.Point            `json:"window_points"`
	Latest        *series.ReportMetadata    `json:"latest_metadata,omitempty"`
	MovingAverage []series.Point            `json:"moving_average"`
	Slope         analytics.Metric          `json:"slope"`
	Average       analytics.Metric          `json:"average"`
	StdDev        analytics.Metric          `json:"stddev"`
	Volatility    analytics.Metric          `json:"volatility"`
	Momentum      analytics.Momentum        `json:"momentum"`
	Direction     analytics.Direction       `json:"direction"`
	Category      string                    `json:"category"`
	Seasonal      []analytics.SeasonalIndex `json:"seasonal_indexes"`
	PeakMonths    []time.Month              `json:"peak_months,omitempty"`
}

// Projection is the full output of one analytics pass
type Projection struct {
	Records    []Record           `json:"records"`
	Window     *window.Window     `json:"window,omitempty"`
	MonthTally map[time.Month]int `json:"month_tally"`
}

// Project runs the full analytics pass over every keyword in the store.
// Windowed statistics (slope, volatility, momentum, category, average) are
// computed over the subset of points inside the analysis window; moving
// average and seasonal indexes over the full series. Keywords with no
// points are skipped. The result is sorted by latest-metadata rank
// ascending with unranked keywords last, ties broken by locale-aware
// keyword comparison.
func Project(store *series.Store, opts Options) *Projection {
	proj := &Projection{MonthTally: make(map[time.Month]int)}

	latest, hasData := store.LatestTimestamp()
	win, hasWindow := window.Compute(latest, hasData, opts.WindowMonths)
	if hasWindow {
		w := win
		proj.Window = &w
	}

	for keyword, ks := range store.Keywords {
		points := ks.SortedPoints()
		if len(points) == 0 {
			continue
		}

		windowPoints := points
		if hasWindow {
			windowPoints = filterWindow(points, win)
		}

		slope := analytics.TrendSlope(windowPoints)
		volatility := analytics.CoefficientOfVariation(windowPoints)
		momentum := analytics.ComputeMomentum(windowPoints)
		seasonal := analytics.SeasonalIndexes(points, opts.SeasonalPeakThresholdPct)

		record := Record{
			Keyword:       keyword,
			Points:        points,
			WindowPoints:  windowPoints,
			Latest:        ks.LatestMetadata(),
			MovingAverage: analytics.MovingAverage(points, opts.MovingAverageWindow),
			Slope:         slope,
			Average:       analytics.Mean(windowPoints),
			StdDev:        analytics.StdDev(windowPoints),
			Volatility:    volatility,
			Momentum:      momentum,
			Direction:     analytics.TrendDirection(slope),
			Category:      analytics.Categorize(slope, momentum, volatility, opts.VolatilityCVThresholdPct),
			Seasonal:      seasonal,
			PeakMonths:    analytics.PeakMonths(seasonal),
		}

		proj.Records = append(proj.Records, record)

		for _, m := range record.PeakMonths {
			proj.MonthTally[m]++
		}
	}

	sortRecords(proj.Records)

	return proj
}

// FilterByPeakMonth returns the records whose primary peak months include
// the given calendar month
func FilterByPeakMonth(records []Record, month time.Month) []Record {
	var out []Record
	for _, r := range records {
		for _, m := range r.PeakMonths {
			if m == month {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// filterWindow keeps the points falling inside the window; input is sorted,
// output preserves order
func filterWindow(points []series.Point, win window.Window) []series.Point {
	out := make([]series.Point, 0, len(points))
	for _, p := range points {
		if win.Contains(p.Time) {
			out = append(out, p)
		}
	}
	return out
}

// sortRecords orders by latest rank ascending (no rank sorts last), then by
// locale-aware keyword comparison
func sortRecords(records []Record) {
	collator := collate.New(language.Und)

	rank := func(r Record) float64 {
		if r.Latest == nil || r.Latest.Rank == nil {
			return math.Inf(1)
		}
		return float64(*r.Latest.Rank)
	}

	sort.SliceStable(records, func(i, j int) bool {
		ri, rj := rank(records[i]), rank(records[j])
		if ri != rj {
			return ri < rj
		}
		return collator.CompareString(records[i].Keyword, records[j].Keyword) < 0
	})
}
