package smooth

import (
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLineLength(t *testing.T) {
	l := Line{Pt(0.0, 0.0), Pt(1.0, 1.0)}
	want := math.Sqrt(2.0)
	epsilon := 1e-9
	if d := math.Abs(l.Length() - want); d > epsilon {
		t.Errorf("%g > %g", d, epsilon)
	}
	if d := math.Abs(l.Measure(nil) - want); d > epsilon {
		t.Errorf("%g > %g", d, epsilon)
	}
}

func TestLineInterior(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 0)}
	tests := []struct {
		n    int
		want []Point
	}{
		{0, nil},
		{1, nil},
		{2, []Point{Pt(5, 0)}},
		{4, []Point{Pt(2.5, 0), Pt(5, 0), Pt(7.5, 0)}},
	}
	for _, tt := range tests {
		got := slices.Collect(l.Interior(tt.n))
		diff(t, got, tt.want, cmpopts.EquateEmpty(), cmpopts.EquateApprox(0, 1e-12))
	}
}

func TestLineCut(t *testing.T) {
	q, r := Line{Pt(0, 0), Pt(8, 4)}.Cut()
	diff(t, []Point{q, r}, []Point{Pt(2, 1), Pt(6, 3)})
}
