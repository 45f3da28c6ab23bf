package analytics

import (
	"time"

	"github.com/trendwatch/trendwatch/internal/series"
)

// minSeasonalPoints is the minimum full-series size before seasonal indexes
// are considered meaningful; below it all 12 months report index 0.
const minSeasonalPoints = 12

// SeasonalIndex is one calendar month's average value expressed as a
// percentage of the full-series average. Index 0 means no seasonal signal
// for the month (no observations, or too little data overall) and callers
// display it as "not applicable" rather than a literal zero value.
type SeasonalIndex struct {
	Month  time.Month `json:"month"`
	Index  float64    `json:"index"`
	IsPeak bool       `json:"is_peak"`
}

// SeasonalIndexes groups all points of the full series by calendar month,
// pooling every year together (all Januaries form one bucket), and divides
// each month's average by the overall average, x100, rounded to 1 decimal.
// A month is flagged as a peak when its index reaches 100 + peakThresholdPct.
func SeasonalIndexes(points []series.Point, peakThresholdPct float64) []SeasonalIndex {
	indexes := make([]SeasonalIndex, 12)
	for i := range indexes {
		indexes[i].Month = time.Month(i + 1)
	}

	if len(points) < minSeasonalPoints {
		return indexes
	}

	var monthSums [12]float64
	var monthCounts [12]int
	total := 0.0

	for _, p := range points {
		m := int(p.Time.UTC().Month()) - 1
		monthSums[m] += p.Value
		monthCounts[m]++
		total += p.Value
	}

	overall := total / float64(len(points))
	if overall == 0 {
		return indexes
	}

	peakCutoff := 100 + peakThresholdPct
	for i := range indexes {
		if monthCounts[i] == 0 {
			continue
		}
		monthAvg := monthSums[i] / float64(monthCounts[i])
		index := round1(monthAvg / overall * 100)
		indexes[i].Index = index
		indexes[i].IsPeak = index >= peakCutoff
	}

	return indexes
}

// PeakMonths returns the month(s) whose seasonal index equals the maximum
// across all 12, ties included. A maximum of 0 means no real seasonal
// signal and yields no peak months.
func PeakMonths(indexes []SeasonalIndex) []time.Month {
	max := 0.0
	for _, si := range indexes {
		if si.Index > max {
			max = si.Index
		}
	}
	if max == 0 {
		return nil
	}

	var months []time.Month
	for _, si := range indexes {
		if si.Index == max {
			months = append(months, si.Month)
		}
	}
	return months
}
