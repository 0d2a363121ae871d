package chart

import (
	"math"

	"go-ocr-lens/internal/analyzer"
)

type point struct {
	X, Y float64
}

// polar converts an angle (radians, counter-clockwise from +x) to screen
// coordinates, where y grows downward.
func polar(cx, cy, r, angle float64) point {
	return point{X: cx + r*math.Cos(angle), Y: cy - r*math.Sin(angle)}
}

func maxCount(words []analyzer.WordCount) int {
	m := 0
	for _, w := range words {
		if w.Count > m {
			m = w.Count
		}
	}
	return m
}

// radarAngles places n categories at 2πi/n.
func radarAngles(n int) []float64 {
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = 2 * math.Pi * float64(i) / float64(n)
	}
	return angles
}

// radarPoints scales each count against the largest one.
func radarPoints(cx, cy, r float64, words []analyzer.WordCount) []point {
	m := maxCount(words)
	angles := radarAngles(len(words))
	pts := make([]point, len(words))
	for i, w := range words {
		radius := 0.0
		if m > 0 {
			radius = r * float64(w.Count) / float64(m)
		}
		pts[i] = polar(cx, cy, radius, angles[i])
	}
	return pts
}

// screenXY rounds points to the integer grid the SVG writer takes.
func screenXY(pts []point) (xs, ys []int) {
	xs = make([]int, len(pts))
	ys = make([]int, len(pts))
	for i, p := range pts {
		xs[i] = int(math.Round(p.X))
		ys[i] = int(math.Round(p.Y))
	}
	return xs, ys
}
