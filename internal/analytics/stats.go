package analytics

import (
	"math"

	"github.com/trendwatch/trendwatch/internal/series"
)

// Momentum classifies the short-term signal: mean of the last 3 points
// against the mean of the 3 points preceding them.
type Momentum string

const (
	MomentumGaining       Momentum = "gaining"
	MomentumFading        Momentum = "fading"
	MomentumStable        Momentum = "stable"
	MomentumNotApplicable Momentum = "not_applicable"
)

// Direction classifies the windowed trend slope
type Direction string

const (
	DirectionUpward        Direction = "upward"
	DirectionDownward      Direction = "downward"
	DirectionFlat          Direction = "flat"
	DirectionNotApplicable Direction = "not_applicable"
)

const (
	// Slope thresholds for direction and category classification
	slopeFlatThreshold   = 0.1
	slopeStrongThreshold = 0.5

	// Momentum bands: last-3 mean vs prior-3 mean
	momentumGainFactor = 1.10
	momentumFadeFactor = 0.90
	momentumPoints     = 6

	// CategoryInsufficientData is forced whenever slope or momentum cannot
	// be computed, regardless of the other inputs
	CategoryInsufficientData = "Insufficient Data"
)

// TrendSlope computes the ordinary least-squares slope of value against
// point index. Points are treated as equally spaced regardless of actual
// date gaps. Requires at least 2 points; a degenerate index variance or a
// NaN result yields "not applicable".
func TrendSlope(points []series.Point) Metric {
	n := len(points)
	if n < 2 {
		return NotApplicable()
	}

	sumX := 0.0
	sumY := 0.0
	sumXY := 0.0
	sumX2 := 0.0

	for i, p := range points {
		x := float64(i)
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumX2 += x * x
	}

	denominator := float64(n)*sumX2 - sumX*sumX
	if denominator == 0 {
		return NotApplicable()
	}

	slope := (float64(n)*sumXY - sumX*sumY) / denominator
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return NotApplicable()
	}

	return NewMetric(slope)
}

// Mean computes the arithmetic mean of the point values; needs >=1 point
func Mean(points []series.Point) Metric {
	if len(points) == 0 {
		return NotApplicable()
	}

	sum := 0.0
	for _, p := range points {
		sum += p.Value
	}
	return NewMetric(sum / float64(len(points)))
}

// StdDev computes the population standard deviation of the point values.
// Defined for a single point (zero); not applicable for an empty series.
func StdDev(points []series.Point) Metric {
	if len(points) == 0 {
		return NotApplicable()
	}

	mean, _ := Mean(points).Value()
	sumSq := 0.0
	for _, p := range points {
		diff := p.Value - mean
		sumSq += diff * diff
	}
	return NewMetric(math.Sqrt(sumSq / float64(len(points))))
}

// CoefficientOfVariation computes (stddev / mean) * 100 rounded to 2
// decimals. Requires at least 2 points and a non-zero mean.
func CoefficientOfVariation(points []series.Point) Metric {
	if len(points) < 2 {
		return NotApplicable()
	}

	mean, _ := Mean(points).Value()
	if mean == 0 {
		return NotApplicable()
	}

	stddev, _ := StdDev(points).Value()
	return NewMetric(round2(stddev / mean * 100))
}

// ComputeMomentum compares the mean of the last 3 points against the mean
// of the 3 points before them. Requires at least 6 points.
func ComputeMomentum(points []series.Point) Momentum {
	n := len(points)
	if n < momentumPoints {
		return MomentumNotApplicable
	}

	last := (points[n-1].Value + points[n-2].Value + points[n-3].Value) / 3
	prev := (points[n-4].Value + points[n-5].Value + points[n-6].Value) / 3

	switch {
	case last > prev*momentumGainFactor:
		return MomentumGaining
	case last < prev*momentumFadeFactor:
		return MomentumFading
	default:
		return MomentumStable
	}
}

// TrendDirection derives the direction label from the windowed slope
func TrendDirection(slope Metric) Direction {
	v, ok := slope.Value()
	if !ok {
		return DirectionNotApplicable
	}

	switch {
	case v > slopeFlatThreshold:
		return DirectionUpward
	case v < -slopeFlatThreshold:
		return DirectionDownward
	default:
		return DirectionFlat
	}
}

// Categorize combines slope magnitude, momentum and the volatility flag
// into one of 9 base category labels, prefixed with "Volatile" when the
// coefficient of variation is at or above the configured threshold.
// Slope or momentum being not applicable forces "Insufficient Data".
func Categorize(slope Metric, momentum Momentum, cv Metric, cvThresholdPct float64) string {
	sv, ok := slope.Value()
	if !ok || momentum == MomentumNotApplicable {
		return CategoryInsufficientData
	}

	var base string
	switch {
	case sv > slopeStrongThreshold:
		if momentum == MomentumGaining {
			base = "Accelerating Growth"
		} else {
			base = "Strong Growth"
		}
	case sv > slopeFlatThreshold:
		if momentum == MomentumFading {
			base = "Slowing Growth"
		} else {
			base = "Steady Growth"
		}
	case sv >= -slopeFlatThreshold:
		switch momentum {
		case MomentumGaining:
			base = "Emerging"
		case MomentumFading:
			base = "Cooling"
		default:
			base = "Stable / Flat"
		}
	case sv >= -slopeStrongThreshold:
		base = "Steady Decline"
	default:
		base = "Sharp Decline"
	}

	if cvValue, cvOK := cv.Value(); cvOK && cvValue >= cvThresholdPct {
		return "Volatile " + base
	}
	return base
}
