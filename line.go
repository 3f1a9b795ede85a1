package smooth

import "iter"

// Line represents a single segment of a polyline.
type Line struct {
	P0 Point
	P1 Point
}

// Length returns the euclidean length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// Measure returns the length of the line as measured by m.
func (l Line) Measure(m Metric) float64 {
	if m == nil {
		return l.Length()
	}
	return m.Distance(l.P0, l.P1)
}

// Eval returns the point at t along the line.
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Interior returns the n-1 points that split the line into n pieces of equal
// length, in order from P0 to P1. Neither endpoint is included.
func (l Line) Interior(n int) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for i := 1; i < n; i++ {
			if !yield(l.Eval(float64(i) / float64(n))) {
				return
			}
		}
	}
}

// Cut returns the two points at 25% and 75% along the line. These are the
// points produced by a single corner-cutting step.
func (l Line) Cut() (Point, Point) {
	return l.Eval(0.25), l.Eval(0.75)
}
