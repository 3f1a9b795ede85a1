package smooth

import "math"

const (
	MinSharpness     = 0.01
	MaxSharpness     = 1.0
	DefaultSharpness = 0.85

	MaxResolution     = 100_000
	DefaultResolution = 1000

	// MaxIterations bounds the number of corner-cutting passes. Each pass
	// doubles the number of points.
	MaxIterations = 16

	// MaxPoints bounds the number of points Densify and corner cutting produce.
	MaxPoints = 1 << 22
)

// Params are the per-invocation smoothing parameters, typically coming from UI
// sliders. They are never stored alongside a route.
type Params struct {
	// Sharpness controls the strength of smoothing. Corner cutting derives
	// its iteration count from it; the spline uses it as its tension.
	Sharpness float64
	// Resolution is the number of points sampled from the spline. It is
	// ignored by corner cutting.
	Resolution int
}

// DefaultParams returns the parameters used when none are specified.
func DefaultParams() Params {
	return Params{
		Sharpness:  DefaultSharpness,
		Resolution: DefaultResolution,
	}
}

// Clamp returns params with Sharpness clamped to [MinSharpness, MaxSharpness]
// and Resolution clamped to [0, MaxResolution]. A NaN sharpness is replaced by
// DefaultSharpness.
func (params Params) Clamp() Params {
	s := params.Sharpness
	if math.IsNaN(s) {
		s = DefaultSharpness
	}
	params.Sharpness = min(max(s, MinSharpness), MaxSharpness)
	params.Resolution = min(max(params.Resolution, 0), MaxResolution)
	return params
}

// IterationFunc maps a sharpness value to a number of corner-cutting
// iterations.
type IterationFunc func(sharpness float64) int

// LinearIterations returns an IterationFunc computing round(sharpness*scale).
// [DefaultIterations] uses a scale of 10.
func LinearIterations(scale float64) IterationFunc {
	return func(sharpness float64) int {
		return int(math.Round(sharpness * scale))
	}
}

// DefaultIterations is LinearIterations(10).
var DefaultIterations = LinearIterations(10)

func clampIterations(n int) int {
	return min(max(n, 0), MaxIterations)
}
