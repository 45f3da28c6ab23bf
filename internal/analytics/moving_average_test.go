package analytics

import (
	"math"
	"testing"
)

func TestMovingAverage(t *testing.T) {
	pts := points(10, 20, 30, 40, 50)

	out := MovingAverage(pts, 3)
	if len(out) != 3 {
		t.Fatalf("expected len(points)-w+1 = 3 output points, got %d", len(out))
	}

	want := []float64{20, 30, 40}
	for i, v := range want {
		if math.Abs(out[i].Value-v) > 1e-9 {
			t.Errorf("point %d: expected %f, got %f", i, v, out[i].Value)
		}
		// Each averaged point is dated at the last point of its window
		if !out[i].Time.Equal(pts[i+2].Time) {
			t.Errorf("point %d: expected time %v, got %v", i, pts[i+2].Time, out[i].Time)
		}
	}
}

func TestMovingAverage_WindowEqualsLength(t *testing.T) {
	out := MovingAverage(points(10, 20, 30), 3)
	if len(out) != 1 {
		t.Fatalf("expected a single output point, got %d", len(out))
	}
	if out[0].Value != 20 {
		t.Errorf("expected 20, got %f", out[0].Value)
	}
}

func TestMovingAverage_Empty(t *testing.T) {
	if out := MovingAverage(nil, 3); out != nil {
		t.Errorf("expected nil for empty input, got %v", out)
	}
	if out := MovingAverage(points(10, 20), 3); out != nil {
		t.Errorf("expected nil when fewer points than window, got %v", out)
	}
	if out := MovingAverage(points(10, 20, 30), 1); out != nil {
		t.Errorf("expected nil for window < 2, got %v", out)
	}
}
