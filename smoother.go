package smooth

import (
	"fmt"
	"strings"
)

// Smoother turns a polyline into a smooth curve.
//
// Implementations must be pure: the same polyline and parameters always
// produce the same result. The first and last points are never moved, and the
// result never has fewer points than the input.
type Smoother interface {
	Smooth(p Polyline, params Params) (Polyline, error)
}

var (
	_ Smoother = CornerCutting{}
	_ Smoother = Spline{}
)

// CornerCutting smooths polylines by repeated corner cutting, also known as
// Chaikin's algorithm. Each pass replaces every segment [p₀, p₁] with the two
// points ¾p₀+¼p₁ and ¼p₀+¾p₁, keeping the first and last points in place.
// Each pass roughly doubles the number of points and shortens the path.
type CornerCutting struct {
	// Iterations maps the sharpness to the number of passes. If nil,
	// DefaultIterations is used. The result is clamped to [0, MaxIterations].
	Iterations IterationFunc
}

func (cc CornerCutting) iterations(sharpness float64) int {
	f := cc.Iterations
	if f == nil {
		f = DefaultIterations
	}
	return clampIterations(f(sharpness))
}

// Smooth implements [Smoother]. It fails with [ErrTooManyPoints] if the result
// would have more than [MaxPoints] points.
func (cc CornerCutting) Smooth(p Polyline, params Params) (Polyline, error) {
	if err := p.validate(); err != nil {
		return Polyline{}, err
	}
	n := cc.iterations(params.Clamp().Sharpness)
	if p.Len() > MaxPoints>>n {
		return Polyline{}, fmt.Errorf("%d passes over %d points: %w", n, p.Len(), ErrTooManyPoints)
	}
	return own(CutCorners(p.pts, n)), nil
}

// CutCorners applies n passes of corner cutting to pts and returns the new
// points. The result has len(pts)·2ⁿ points. pts is not modified. For n <= 0
// or fewer than two points it returns a copy of pts.
func CutCorners(pts []Point, n int) []Point {
	cur := append([]Point(nil), pts...)
	if len(cur) < 2 {
		return cur
	}
	for range n {
		next := make([]Point, 0, 2*len(cur))
		next = append(next, cur[0])
		for i := 1; i < len(cur); i++ {
			q, r := Line{cur[i-1], cur[i]}.Cut()
			next = append(next, q, r)
		}
		next = append(next, cur[len(cur)-1])
		cur = next
	}
	return cur
}

// Spline smooths polylines by fitting a piecewise cubic Bézier spline through
// all of their points and sampling it at evenly spaced parameter values.
//
// The control points of each piece are derived from the midpoints of the
// adjacent segments, pulled towards the on-curve point by the sharpness: a
// sharpness of 1 gives the roundest curve, values close to 0 approach the
// original polyline.
//
// The spline is sampled max(params.Resolution, p.Len()) times, so the output
// is independent of the input's point count unless the resolution is very
// low.
type Spline struct{}

// Smooth implements [Smoother].
func (Spline) Smooth(p Polyline, params Params) (Polyline, error) {
	if err := p.validate(); err != nil {
		return Polyline{}, err
	}
	params = params.Clamp()
	pieces := splinePieces(p.pts, params.Sharpness)
	n := max(params.Resolution, p.Len())

	out := make([]Point, n)
	segs := float64(len(pieces))
	for i := range n - 1 {
		t := float64(i) / float64(n-1) * segs
		k := min(int(t), len(pieces)-1)
		out[i] = pieces[k].Eval(t - float64(k))
	}
	out[n-1] = p.End()
	return own(out), nil
}

// splinePieces returns one cubic per segment of pts. The curve is C1 continuous
// at every interior point.
func splinePieces(pts []Point, sharpness float64) []CubicBez {
	centers := make([]Point, len(pts)-1)
	for i := range centers {
		centers[i] = pts[i].Midpoint(pts[i+1])
	}

	// controls[i] holds the incoming and outgoing control points of pts[i].
	controls := make([][2]Point, len(pts))
	controls[0] = [2]Point{pts[0], pts[0]}
	controls[len(pts)-1] = [2]Point{pts[len(pts)-1], pts[len(pts)-1]}
	for i := 0; i < len(centers)-1; i++ {
		pt := pts[i+1]
		// Shift the line between both centers so that it passes through pt.
		d := pt.Sub(centers[i].Midpoint(centers[i+1]))
		controls[i+1] = [2]Point{
			pt.Lerp(centers[i].Translate(d), sharpness),
			pt.Lerp(centers[i+1].Translate(d), sharpness),
		}
	}

	pieces := make([]CubicBez, len(centers))
	for i := range pieces {
		pieces[i] = CubicBez{pts[i], controls[i][1], controls[i+1][0], pts[i+1]}
	}
	return pieces
}

// StrategyByName returns the smoother called name. Recognized names are
// "chaikin" (or "corner-cutting") and "spline" (or "bezier"). The empty string
// selects corner cutting.
func StrategyByName(name string) (Smoother, error) {
	switch strings.ToLower(name) {
	case "", "chaikin", "corner-cutting", "cornercutting":
		return CornerCutting{}, nil
	case "spline", "bezier":
		return Spline{}, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}
}
