package models

import (
	"github.com/trendwatch/trendwatch/internal/trends"
	"github.com/trendwatch/trendwatch/internal/window"
)

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ErrorDetail describes a single error
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// IngestResponse reports the outcome of one ingestion
type IngestResponse struct {
	Keywords      int `json:"keywords"`
	Points        int `json:"points"`
	SkippedRows   int `json:"skipped_rows"`
	SkippedValues int `json:"skipped_values"`
	TotalKeywords int `json:"total_keywords"`
	TotalPoints   int `json:"total_points"`
}

// TrendsResponse returns the sorted derived trend records
type TrendsResponse struct {
	Records []trends.Record `json:"records"`
	Window  *window.Window  `json:"window,omitempty"`
	Count   int             `json:"count"`
	Month   string          `json:"month,omitempty"` // Set when filtered by peak month
}

// TrendResponse returns the derived record for a single keyword
type TrendResponse struct {
	Record trends.Record  `json:"record"`
	Window *window.Window `json:"window,omitempty"`
}

// PeaksResponse returns the per-month count of keywords peaking that month
type PeaksResponse struct {
	MonthTally map[string]int `json:"month_tally"`
}

// WindowResponse returns the active analysis window, if any
type WindowResponse struct {
	Window    *window.Window `json:"window,omitempty"`
	HasWindow bool           `json:"has_window"`
}

// AnalysisOptions is the wire form of the analysis thresholds
type AnalysisOptions struct {
	AnalysisWindowMonths     int     `json:"analysis_window_months"`
	MovingAverageWindow      int     `json:"moving_average_window"`
	SeasonalPeakThresholdPct float64 `json:"seasonal_peak_threshold_pct"`
	VolatilityCVThresholdPct float64 `json:"volatility_cv_threshold_pct"`
}

// SummarizeResponse returns the generated narrative
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// StatusResponse is a generic acknowledgement
type StatusResponse struct {
	Status string `json:"status"`
}
