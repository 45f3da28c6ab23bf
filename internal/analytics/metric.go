// Package analytics implements the descriptive statistics battery computed
// per keyword: trend slope, volatility, momentum, category, moving average
// and seasonal indexing. All functions are pure and operate on points the
// caller has already ordered by timestamp ascending.
package analytics

import (
	"encoding/json"
	"math"
)

// Metric is a computed statistic that distinguishes a real value from
// "not applicable". Zero is a valid computed value and must never be
// conflated with an unknown one, so absence is carried as an explicit tag
// rather than a sentinel number.
type Metric struct {
	value float64
	valid bool
}

// NewMetric creates a known metric value
func NewMetric(v float64) Metric {
	return Metric{value: v, valid: true}
}

// NotApplicable creates a metric with no computable value
func NotApplicable() Metric {
	return Metric{}
}

// Valid reports whether the metric holds a computed value
func (m Metric) Valid() bool {
	return m.valid
}

// Value returns the computed value and whether it is applicable
func (m Metric) Value() (float64, bool) {
	return m.value, m.valid
}

// MarshalJSON encodes a known value as a number and "not applicable" as null
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

// UnmarshalJSON decodes null as "not applicable"
func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = NotApplicable()
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = NewMetric(v)
	return nil
}

// round2 rounds to 2 decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds to 1 decimal place
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
