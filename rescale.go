package smooth

import "fmt"

// Rescale stretches smoothed so that its length matches the length of
// original. Corner cutting shortens a path with every pass; Rescale undoes that
// shrinkage.
//
// The smoothed curve is scaled about its first point by the ratio of the two
// euclidean lengths, and its points are walked while accumulating the scaled
// length. Once the accumulated length would exceed the original length, the
// final point is interpolated inside the current segment so that it lands
// exactly at the original length, and the remaining points are discarded.
//
// The result starts at original's first point. Rescale returns
// [ErrDegenerateCurve] if either curve has zero length, including polylines
// with fewer than two points.
func Rescale(original, smoothed Polyline) (Polyline, error) {
	origLen := original.Length()
	if origLen == 0 {
		return Polyline{}, fmt.Errorf("original has zero length: %w", ErrDegenerateCurve)
	}
	smoothLen := smoothed.Length()
	if smoothLen == 0 {
		return Polyline{}, fmt.Errorf("smoothed curve has zero length: %w", ErrDegenerateCurve)
	}
	scale := origLen / smoothLen

	origin := original.Start()
	anchor := smoothed.Start()
	place := func(pt Point) Point {
		return origin.Translate(pt.Sub(anchor).Mul(scale))
	}

	out := make([]Point, 0, smoothed.Len())
	out = append(out, origin)
	var acc float64
	for i := 1; i < smoothed.Len(); i++ {
		prev, cur := out[len(out)-1], place(smoothed.At(i))
		d := smoothed.At(i-1).Distance(smoothed.At(i)) * scale
		if acc+d > origLen {
			t := (origLen - acc) / d
			out = append(out, prev.Lerp(cur, t))
			break
		}
		acc += d
		out = append(out, cur)
	}
	return own(out), nil
}
