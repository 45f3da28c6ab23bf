// Package ingest is the ingestion boundary: it parses CSV report exports
// and fetches JSON reports from the remote data source, producing the exact
// keyword-series shape the store merge consumes. Malformed records are
// skipped and logged here; they never reach the merge.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/trendwatch/trendwatch/internal/logging"
	"github.com/trendwatch/trendwatch/internal/series"
)

// Stats summarizes one ingestion pass
type Stats struct {
	Keywords      int `json:"keywords"`
	Points        int `json:"points"`
	SkippedRows   int `json:"skipped_rows"`
	SkippedValues int `json:"skipped_values"`
}

// columnLayout is the sniffed role of each CSV column
type columnLayout struct {
	keyword       int
	rank          int
	weeklyChange  int
	monthlyChange int
	yearlyChange  int
	reportDate    int
	// observation columns: index -> the UTC-midnight date the column carries
	observations map[int]time.Time
}

// dateFormats are the accepted observation and report date layouts
var dateFormats = []string{
	"2006-01-02",
	"2006-01",
	"Jan 2006",
	"January 2006",
	time.RFC3339,
}

// ParseCSV reads a keyword report export. The header row is sniffed: known
// columns (keyword, rank, change columns, report date) are matched by name,
// every remaining column whose header parses as a date becomes an
// observation column. Rows without a keyword and cells that do not parse
// are skipped and counted, never fatal. reportDate is the fallback report
// date for rows without an explicit one.
func ParseCSV(r io.Reader, reportDate time.Time, logger *logging.Logger) (map[string]*series.KeywordSeries, Stats, error) {
	var stats Stats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read CSV header: %w", err)
	}

	layout, err := sniffColumns(header)
	if err != nil {
		return nil, stats, err
	}

	out := make(map[string]*series.KeywordSeries)

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.SkippedRows++
			logger.Warn("Skipping malformed CSV row", "line", line, "error", err)
			continue
		}

		keyword := strings.TrimSpace(cell(row, layout.keyword))
		if keyword == "" {
			stats.SkippedRows++
			logger.Warn("Skipping CSV row without keyword", "line", line)
			continue
		}

		ks, ok := out[keyword]
		if !ok {
			ks = series.NewKeywordSeries(keyword)
			out[keyword] = ks
		}

		for col, date := range layout.observations {
			raw := strings.TrimSpace(cell(row, col))
			if raw == "" {
				continue
			}
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				stats.SkippedValues++
				logger.Warn("Skipping non-numeric value", "line", line, "keyword", keyword, "value", raw)
				continue
			}
			ks.Points[date.UnixMilli()] = value
			stats.Points++
		}

		meta := series.ReportMetadata{
			WeeklyChange:  strings.TrimSpace(cell(row, layout.weeklyChange)),
			MonthlyChange: strings.TrimSpace(cell(row, layout.monthlyChange)),
			YearlyChange:  strings.TrimSpace(cell(row, layout.yearlyChange)),
			ReportDate:    series.NormalizeDate(reportDate),
			Source:        series.SourceCSV,
		}

		if raw := strings.TrimSpace(cell(row, layout.rank)); raw != "" {
			if rank, err := strconv.Atoi(raw); err == nil {
				meta.Rank = &rank
			} else {
				logger.Warn("Skipping unparseable rank", "line", line, "keyword", keyword, "rank", raw)
			}
		}

		if raw := strings.TrimSpace(cell(row, layout.reportDate)); raw != "" {
			if date, ok := parseDate(raw); ok {
				meta.ReportDate = date
			} else {
				stats.SkippedValues++
				logger.Warn("Skipping unparseable report date", "line", line, "keyword", keyword, "date", raw)
			}
		}

		ks.Metadata = append(ks.Metadata, meta)
	}

	stats.Keywords = len(out)
	return out, stats, nil
}

// sniffColumns maps header names to column roles. Column name matching is
// case-insensitive with spaces and underscores treated the same.
func sniffColumns(header []string) (columnLayout, error) {
	layout := columnLayout{
		keyword:       -1,
		rank:          -1,
		weeklyChange:  -1,
		monthlyChange: -1,
		yearlyChange:  -1,
		reportDate:    -1,
		observations:  make(map[int]time.Time),
	}

	for i, name := range header {
		switch normalizeHeader(name) {
		case "keyword", "term", "query", "search term":
			if layout.keyword == -1 {
				layout.keyword = i
			}
		case "rank", "position":
			layout.rank = i
		case "weekly change":
			layout.weeklyChange = i
		case "monthly change":
			layout.monthlyChange = i
		case "yearly change":
			layout.yearlyChange = i
		case "report date", "date":
			layout.reportDate = i
		default:
			if date, ok := parseDate(strings.TrimSpace(name)); ok {
				layout.observations[i] = date
			}
		}
	}

	if layout.keyword == -1 {
		return layout, fmt.Errorf("CSV header has no keyword column")
	}
	if len(layout.observations) == 0 {
		return layout, fmt.Errorf("CSV header has no date columns")
	}

	return layout, nil
}

func normalizeHeader(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", " ")
}

// parseDate tries the accepted date layouts and normalizes to UTC midnight
func parseDate(raw string) (time.Time, bool) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return series.NormalizeDate(t), true
		}
	}
	return time.Time{}, false
}

// cell returns row[i], empty when the column is absent or the row is short
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
