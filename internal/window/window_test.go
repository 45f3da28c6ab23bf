package window

import (
	"testing"
	"time"
)

func TestCompute_TwelveMonths(t *testing.T) {
	latest := time.Date(2023, time.July, 10, 0, 0, 0, 0, time.UTC)

	win, ok := Compute(latest, true, 12)
	if !ok {
		t.Fatal("expected a window")
	}

	wantStart := time.Date(2022, time.August, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2023, time.July, 31, 23, 59, 59, 999000000, time.UTC)

	if !win.Start.Equal(wantStart) {
		t.Errorf("start: expected %s, got %s", wantStart, win.Start)
	}
	if !win.End.Equal(wantEnd) {
		t.Errorf("end: expected %s, got %s", wantEnd, win.End)
	}
}

func TestCompute_TwentyFourMonths(t *testing.T) {
	latest := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	win, ok := Compute(latest, true, 24)
	if !ok {
		t.Fatal("expected a window")
	}

	wantStart := time.Date(2022, time.April, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.March, 31, 23, 59, 59, 999000000, time.UTC)

	if !win.Start.Equal(wantStart) {
		t.Errorf("start: expected %s, got %s", wantStart, win.Start)
	}
	if !win.End.Equal(wantEnd) {
		t.Errorf("end: expected %s, got %s", wantEnd, win.End)
	}
}

func TestCompute_NoLatestDate(t *testing.T) {
	if _, ok := Compute(time.Time{}, false, 24); ok {
		t.Error("expected no window for an empty store")
	}
}

func TestCompute_InvalidMonths(t *testing.T) {
	latest := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if _, ok := Compute(latest, true, 0); ok {
		t.Error("expected no window for zero months")
	}
}

func TestContains_InclusiveBounds(t *testing.T) {
	latest := time.Date(2023, time.July, 10, 0, 0, 0, 0, time.UTC)
	win, _ := Compute(latest, true, 12)

	if !win.Contains(win.Start) {
		t.Error("window must include its start instant")
	}
	if !win.Contains(win.End) {
		t.Error("window must include its end instant")
	}
	if win.Contains(win.Start.Add(-time.Millisecond)) {
		t.Error("window must exclude the instant before start")
	}
	if win.Contains(win.End.Add(time.Millisecond)) {
		t.Error("window must exclude the instant after end")
	}
}
