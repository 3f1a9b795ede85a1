package smooth

import "errors"

var (
	// ErrInvalidGeometry is returned for polylines with fewer than two points
	// or with non-finite coordinates.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrDegenerateCurve is returned by [Rescale] when either the original or
	// the smoothed curve has zero length, as no finite scale factor exists.
	ErrDegenerateCurve = errors.New("degenerate curve")

	// ErrTooManyPoints is returned when densifying or smoothing would produce
	// more than [MaxPoints] points.
	ErrTooManyPoints = errors.New("too many points")

	// ErrUnknownStrategy is returned by [StrategyByName].
	ErrUnknownStrategy = errors.New("unknown smoothing strategy")

	// ErrDisplayOnly is returned when trying to edit the geometry of a smoothed
	// route.
	ErrDisplayOnly = errors.New("route is display-only while smoothed")
)
