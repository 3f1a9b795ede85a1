package smooth

import (
	"fmt"
	"math"
)

// Densify inserts points into segments that are disproportionately long, so
// that smoothing algorithms with a uniform step don't under-sample long
// straight stretches.
//
// Let m be the length of the shortest segment of p, as measured by metric. Any
// segment longer than 2m is split into ceil(length/m) pieces of equal length.
// Other segments are kept as they are. Segments of zero length don't
// contribute to m. A nil metric selects [Euclidean].
//
// The result has the same first and last points as p and never has fewer
// points. A line consisting of a single segment is returned unchanged. If the
// result would have more than [MaxPoints] points, Densify fails with
// [ErrTooManyPoints].
func Densify(p Polyline, metric Metric) (Polyline, error) {
	if err := p.validate(); err != nil {
		return Polyline{}, err
	}
	if metric == nil {
		metric = Euclidean
	}

	lengths := make([]float64, 0, p.Len()-1)
	minLen := math.Inf(1)
	for seg := range p.Segments() {
		l := seg.Measure(metric)
		lengths = append(lengths, l)
		if l > 0 && l < minLen {
			minLen = l
		}
	}
	if math.IsInf(minLen, 1) {
		// All points coincide.
		return p, nil
	}

	pieces := make([]int, len(lengths))
	total := 1.0
	for i, l := range lengths {
		n := 1.0
		if l > 2*minLen {
			n = math.Ceil(l / minLen)
		}
		total += n
		if total > MaxPoints {
			return Polyline{}, fmt.Errorf("segment %d is %g times the shortest one: %w", i, l/minLen, ErrTooManyPoints)
		}
		pieces[i] = int(n)
	}

	out := make([]Point, 0, int(total))
	out = append(out, p.Start())
	i := 0
	for seg := range p.Segments() {
		if n := pieces[i]; n > 1 {
			for pt := range seg.Interior(n) {
				out = append(out, pt)
			}
		}
		out = append(out, seg.P1)
		i++
	}
	return own(out), nil
}
