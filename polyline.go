package smooth

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Polyline is an immutable, ordered sequence of at least two points,
// typically a route drawn by a user.
//
// Polylines are values. Operations on them return new polylines and never
// modify their inputs, so a polyline can be shared freely, for example as the
// saved original of a [Route] and as the input of a smoothing pass at the same
// time.
//
// The zero value has no points and is rejected by every operation with
// [ErrInvalidGeometry].
type Polyline struct {
	pts []Point
}

// NewPolyline returns a polyline consisting of a copy of pts. It returns
// [ErrInvalidGeometry] if there are fewer than two points or if any coordinate
// is NaN or infinite.
func NewPolyline(pts ...Point) (Polyline, error) {
	if len(pts) < 2 {
		return Polyline{}, fmt.Errorf("polyline with %d points: %w", len(pts), ErrInvalidGeometry)
	}
	for i, pt := range pts {
		if pt.IsNaN() || pt.IsInf() {
			return Polyline{}, fmt.Errorf("point %d is %s: %w", i, pt, ErrInvalidGeometry)
		}
	}
	return Polyline{pts: slices.Clone(pts)}, nil
}

// own wraps pts without copying. pts must not be retained by the caller.
func own(pts []Point) Polyline {
	return Polyline{pts: pts}
}

// Len returns the number of points.
func (p Polyline) Len() int {
	return len(p.pts)
}

// At returns the i'th point.
func (p Polyline) At(i int) Point {
	return p.pts[i]
}

// Start returns the first point.
func (p Polyline) Start() Point {
	return p.pts[0]
}

// End returns the last point.
func (p Polyline) End() Point {
	return p.pts[len(p.pts)-1]
}

// Points returns a copy of the polyline's points.
func (p Polyline) Points() []Point {
	return slices.Clone(p.pts)
}

// All returns an iterator over the polyline's points.
func (p Polyline) All() iter.Seq[Point] {
	return slices.Values(p.pts)
}

// Segments returns an iterator over the polyline's consecutive segments.
func (p Polyline) Segments() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for i := 1; i < len(p.pts); i++ {
			if !yield(Line{p.pts[i-1], p.pts[i]}) {
				return
			}
		}
	}
}

// Length returns the sum of the euclidean lengths of all segments.
func (p Polyline) Length() float64 {
	return p.Measure(Euclidean)
}

// Measure returns the sum of the segment lengths as measured by m.
func (p Polyline) Measure(m Metric) float64 {
	var l float64
	for seg := range p.Segments() {
		l += seg.Measure(m)
	}
	return l
}

// Equal reports whether two polylines consist of exactly the same points.
func (p Polyline) Equal(o Polyline) bool {
	return slices.Equal(p.pts, o.pts)
}

// IsValid reports whether the polyline has at least two points.
func (p Polyline) IsValid() bool {
	return len(p.pts) >= 2
}

func (p Polyline) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, pt := range p.pts {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(pt.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (p Polyline) validate() error {
	if !p.IsValid() {
		return fmt.Errorf("polyline with %d points: %w", len(p.pts), ErrInvalidGeometry)
	}
	return nil
}
