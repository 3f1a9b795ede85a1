package smooth

import "fmt"

// Mode is the display state of a [Route].
type Mode int

const (
	// Drawing shows the route as drawn. The route can be edited.
	Drawing Mode = iota
	// Smoothed shows the smoothed curve. The route is display-only.
	Smoothed
)

func (m Mode) String() string {
	switch m {
	case Drawing:
		return "drawing"
	case Smoothed:
		return "smoothed"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the result of [Mode.String].
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "drawing":
		return Drawing, nil
	case "smoothed":
		return Smoothed, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// Route is a drawn route together with its smoothing state.
//
// A route remembers the polyline as it was drawn. Smoothing always starts from
// that original, never from a previously smoothed curve, and restoring it
// reproduces the original exactly.
//
// Routes are values. Every transition returns a new route and leaves the
// receiver untouched; when a transition fails, the returned route is the
// receiver.
type Route struct {
	original Polyline
	live     Polyline
	mode     Mode
}

// NewRoute returns a route in [Drawing] mode for a freshly drawn polyline.
func NewRoute(p Polyline) Route {
	return Route{original: p, live: p, mode: Drawing}
}

// RestoreRoute reconstructs a route from its persisted parts, for example a
// feature's geometry and its original-coordinates annotation. In [Drawing]
// mode, live is ignored.
func RestoreRoute(original, live Polyline, mode Mode) (Route, error) {
	if err := original.validate(); err != nil {
		return Route{}, fmt.Errorf("original: %w", err)
	}
	switch mode {
	case Drawing:
		return NewRoute(original), nil
	case Smoothed:
		if err := live.validate(); err != nil {
			return Route{}, fmt.Errorf("live: %w", err)
		}
		return Route{original: original, live: live, mode: Smoothed}, nil
	default:
		return Route{}, fmt.Errorf("unknown mode %d", int(mode))
	}
}

// Original returns the polyline as it was drawn.
func (r Route) Original() Polyline { return r.original }

// Live returns the polyline currently on display.
func (r Route) Live() Polyline { return r.live }

// Mode returns the route's current mode.
func (r Route) Mode() Mode { return r.mode }

// Smooth switches to [Smoothed] mode, running pl on the original polyline.
// If the route is already smoothed, the curve is recomputed with params.
func (r Route) Smooth(pl Pipeline, params Params) (Route, error) {
	out, err := pl.Apply(r.original, params)
	if err != nil {
		return r, err
	}
	return Route{original: r.original, live: out, mode: Smoothed}, nil
}

// Restore switches to [Drawing] mode, displaying the original polyline.
func (r Route) Restore() Route {
	return NewRoute(r.original)
}

// Toggle switches between [Drawing] and [Smoothed] mode.
func (r Route) Toggle(pl Pipeline, params Params) (Route, error) {
	if r.mode == Smoothed {
		return r.Restore(), nil
	}
	return r.Smooth(pl, params)
}

// Update reacts to changed smoothing parameters. A smoothed route is
// recomputed from its original; a route in [Drawing] mode is returned as is.
func (r Route) Update(pl Pipeline, params Params) (Route, error) {
	if r.mode != Smoothed {
		return r, nil
	}
	return r.Smooth(pl, params)
}

// Redraw replaces the geometry of a route after the user edited it. It fails
// with [ErrDisplayOnly] while the route is smoothed.
func (r Route) Redraw(p Polyline) (Route, error) {
	if r.mode == Smoothed {
		return r, ErrDisplayOnly
	}
	if err := p.validate(); err != nil {
		return r, err
	}
	return NewRoute(p), nil
}
