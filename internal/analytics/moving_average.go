package analytics

import "github.com/trendwatch/trendwatch/internal/series"

// MovingAverage computes the simple trailing moving average of size w over
// the full point series. One output point is produced per valid window
// position, dated at the window's last point. Requires w >= 2 and at least
// w points; otherwise the result is empty.
func MovingAverage(points []series.Point, w int) []series.Point {
	if w < 2 || len(points) < w {
		return nil
	}

	out := make([]series.Point, 0, len(points)-w+1)

	sum := 0.0
	for i, p := range points {
		sum += p.Value
		if i >= w {
			sum -= points[i-w].Value
		}
		if i >= w-1 {
			out = append(out, series.Point{
				Time:  p.Time,
				Value: sum / float64(w),
			})
		}
	}

	return out
}
