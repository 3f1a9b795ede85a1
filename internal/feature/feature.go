// Package feature maps routes to and from GeoJSON features, the format the
// map's drawing component exchanges with us.
//
// A route is a LineString feature. Its original, as-drawn coordinates are
// kept in the feature's properties so that smoothing can be reversed by any
// client holding the feature, without a round trip through server-side state.
package feature

import (
	"errors"
	"fmt"
	"maps"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"honnef.co/go/smooth"
)

const (
	// PropOriginal holds the original coordinates of a route.
	PropOriginal = "originalCoordinates"
	// PropMode holds the route's mode, "drawing" or "smoothed".
	PropMode = "mode"
)

// ErrNotLineString is returned for features whose geometry isn't a
// LineString.
var ErrNotLineString = errors.New("feature geometry is not a LineString")

// Polyline converts a LineString to a polyline.
func Polyline(ls orb.LineString) (smooth.Polyline, error) {
	pts := make([]smooth.Point, len(ls))
	for i, p := range ls {
		pts[i] = smooth.Pt(p.X(), p.Y())
	}
	return smooth.NewPolyline(pts...)
}

// LineString converts a polyline to a LineString.
func LineString(p smooth.Polyline) orb.LineString {
	ls := make(orb.LineString, 0, p.Len())
	for pt := range p.All() {
		ls = append(ls, orb.Point{pt.X, pt.Y})
	}
	return ls
}

// IsRoute reports whether f can be converted with [Route].
func IsRoute(f *geojson.Feature) bool {
	_, ok := f.Geometry.(orb.LineString)
	return ok
}

// Route reads the route stored in f. Features without the original-coordinates
// annotation are treated as freshly drawn. In drawing mode the geometry is
// authoritative and replaces the annotated original.
func Route(f *geojson.Feature) (smooth.Route, error) {
	ls, ok := f.Geometry.(orb.LineString)
	if !ok {
		return smooth.Route{}, fmt.Errorf("%T: %w", f.Geometry, ErrNotLineString)
	}
	live, err := Polyline(ls)
	if err != nil {
		return smooth.Route{}, fmt.Errorf("geometry: %w", err)
	}

	raw, ok := f.Properties[PropOriginal]
	if !ok {
		return smooth.NewRoute(live), nil
	}
	ols, err := decodeCoordinates(raw)
	if err != nil {
		return smooth.Route{}, fmt.Errorf("%s: %w", PropOriginal, err)
	}
	original, err := Polyline(ols)
	if err != nil {
		return smooth.Route{}, fmt.Errorf("%s: %w", PropOriginal, err)
	}
	mode, err := smooth.ParseMode(f.Properties.MustString(PropMode, ""))
	if err != nil {
		return smooth.Route{}, err
	}
	if mode == smooth.Drawing {
		// The geometry may have been edited since it was restored.
		return smooth.NewRoute(original).Redraw(live)
	}
	return smooth.RestoreRoute(original, live, mode)
}

// Feature returns a copy of base describing r. The ID and all unrelated
// properties of base are kept. base may be nil.
func Feature(r smooth.Route, base *geojson.Feature) *geojson.Feature {
	f := geojson.NewFeature(LineString(r.Live()))
	if base != nil {
		f.ID = base.ID
		f.Properties = maps.Clone(base.Properties)
		if f.Properties == nil {
			f.Properties = geojson.Properties{}
		}
	}
	f.Properties[PropOriginal] = LineString(r.Original())
	f.Properties[PropMode] = r.Mode().String()
	return f
}

// Op is a transition applied to each route of a collection.
type Op func(smooth.Route) (smooth.Route, error)

// Apply applies op to every LineString feature of fc and returns a new
// collection. Other features are copied unchanged. fc is not modified.
func Apply(fc *geojson.FeatureCollection, op Op) (*geojson.FeatureCollection, error) {
	out := geojson.NewFeatureCollection()
	out.ExtraMembers = maps.Clone(fc.ExtraMembers)
	for i, f := range fc.Features {
		if !IsRoute(f) {
			out.Append(f)
			continue
		}
		nf, err := ApplyFeature(f, op)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		out.Append(nf)
	}
	return out, nil
}

// ApplyFeature applies op to the route stored in f.
func ApplyFeature(f *geojson.Feature, op Op) (*geojson.Feature, error) {
	r, err := Route(f)
	if err != nil {
		return nil, err
	}
	r, err = op(r)
	if err != nil {
		return nil, err
	}
	return Feature(r, f), nil
}

func decodeCoordinates(v any) (orb.LineString, error) {
	switch v := v.(type) {
	case orb.LineString:
		return v, nil
	case [][2]float64:
		ls := make(orb.LineString, len(v))
		for i, p := range v {
			ls[i] = orb.Point(p)
		}
		return ls, nil
	case [][]float64:
		ls := make(orb.LineString, len(v))
		for i, p := range v {
			if len(p) < 2 {
				return nil, fmt.Errorf("position %d has %d coordinates", i, len(p))
			}
			ls[i] = orb.Point{p[0], p[1]}
		}
		return ls, nil
	case []any:
		// As decoded by encoding/json.
		ls := make(orb.LineString, len(v))
		for i, raw := range v {
			pos, ok := raw.([]any)
			if !ok || len(pos) < 2 {
				return nil, fmt.Errorf("position %d is not a coordinate pair", i)
			}
			x, okx := pos[0].(float64)
			y, oky := pos[1].(float64)
			if !okx || !oky {
				return nil, fmt.Errorf("position %d is not numeric", i)
			}
			ls[i] = orb.Point{x, y}
		}
		return ls, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}
