package analytics

import (
	"testing"
	"time"

	"github.com/trendwatch/trendwatch/internal/series"
)

// monthPoint places a value in a given month and year
func monthPoint(year int, month time.Month, value float64) series.Point {
	return series.Point{
		Time:  time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		Value: value,
	}
}

func TestSeasonalIndexes_UniformYear(t *testing.T) {
	var pts []series.Point
	for m := time.January; m <= time.December; m++ {
		pts = append(pts, monthPoint(2024, m, 50))
	}

	indexes := SeasonalIndexes(pts, 25)
	if len(indexes) != 12 {
		t.Fatalf("expected 12 indexes, got %d", len(indexes))
	}
	for _, si := range indexes {
		if si.Index != 100 {
			t.Errorf("%s: expected index 100, got %f", si.Month, si.Index)
		}
		if si.IsPeak {
			t.Errorf("%s: uniform data must not flag a peak", si.Month)
		}
	}
}

func TestSeasonalIndexes_OctoberSpike(t *testing.T) {
	var pts []series.Point
	for m := time.January; m <= time.December; m++ {
		v := 10.0
		if m == time.October {
			v = 120
		}
		pts = append(pts, monthPoint(2024, m, v))
	}

	// overall = (11*10 + 120) / 12 = 19.1666..., October avg 120
	// -> index 626.1, well past the 125 cutoff
	indexes := SeasonalIndexes(pts, 25)

	oct := indexes[time.October-1]
	if oct.Index != 626.1 {
		t.Errorf("expected October index 626.1, got %f", oct.Index)
	}
	if !oct.IsPeak {
		t.Error("October should be flagged as a peak")
	}

	jan := indexes[time.January-1]
	if jan.IsPeak {
		t.Error("January should not be a peak")
	}
}

func TestSeasonalIndexes_PoolsAcrossYears(t *testing.T) {
	// Two Januaries in different years land in the same bucket
	pts := []series.Point{
		monthPoint(2023, time.January, 100),
		monthPoint(2024, time.January, 200),
	}
	for m := time.February; m <= time.June; m++ {
		pts = append(pts, monthPoint(2023, m, 50), monthPoint(2024, m, 50))
	}

	indexes := SeasonalIndexes(pts, 25)
	jan := indexes[time.January-1]
	// January avg 150, overall (300 + 10*50)/12 = 66.67 -> 225.0
	if jan.Index != 225.0 {
		t.Errorf("expected pooled January index 225.0, got %f", jan.Index)
	}
}

func TestSeasonalIndexes_TooFewPoints(t *testing.T) {
	pts := []series.Point{
		monthPoint(2024, time.January, 10),
		monthPoint(2024, time.February, 20),
	}

	indexes := SeasonalIndexes(pts, 25)
	if len(indexes) != 12 {
		t.Fatalf("expected 12 indexes, got %d", len(indexes))
	}
	for _, si := range indexes {
		if si.Index != 0 || si.IsPeak {
			t.Errorf("%s: expected zero index with no peak, got %f/%v", si.Month, si.Index, si.IsPeak)
		}
	}
}

func TestSeasonalIndexes_ZeroOverallAverage(t *testing.T) {
	var pts []series.Point
	for m := time.January; m <= time.December; m++ {
		pts = append(pts, monthPoint(2024, m, 0))
	}

	for _, si := range SeasonalIndexes(pts, 25) {
		if si.Index != 0 {
			t.Errorf("%s: expected zero index for all-zero series, got %f", si.Month, si.Index)
		}
	}
}

func TestPeakMonths(t *testing.T) {
	indexes := []SeasonalIndex{
		{Month: time.January, Index: 80},
		{Month: time.February, Index: 140},
		{Month: time.March, Index: 140},
		{Month: time.April, Index: 90},
	}

	months := PeakMonths(indexes)
	if len(months) != 2 {
		t.Fatalf("expected 2 tied peak months, got %d", len(months))
	}
	if months[0] != time.February || months[1] != time.March {
		t.Errorf("expected [February March], got %v", months)
	}
}

func TestPeakMonths_AllZero(t *testing.T) {
	indexes := SeasonalIndexes(nil, 25)
	if months := PeakMonths(indexes); months != nil {
		t.Errorf("expected no peak months for zero indexes, got %v", months)
	}
}
