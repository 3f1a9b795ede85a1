package smooth

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Metric measures the distance between two points.
type Metric interface {
	Distance(a, b Point) float64
}

// Euclidean measures distances in coordinate space, treating longitude and
// latitude as planar coordinates.
var Euclidean Metric = euclidean{}

// GreatCircle measures distances in meters along the surface of the earth,
// using the haversine formula.
var GreatCircle Metric = greatCircle{}

type euclidean struct{}

func (euclidean) Distance(a, b Point) float64 { return a.Distance(b) }
func (euclidean) String() string              { return "euclidean" }

type greatCircle struct{}

func (greatCircle) Distance(a, b Point) float64 {
	return geo.DistanceHaversine(orb.Point{a.X, a.Y}, orb.Point{b.X, b.Y})
}

func (greatCircle) String() string { return "great-circle" }

// MetricByName returns the metric called name. The empty string selects
// [Euclidean].
func MetricByName(name string) (Metric, error) {
	switch strings.ToLower(name) {
	case "", "euclidean", "planar":
		return Euclidean, nil
	case "great-circle", "greatcircle", "haversine", "geo":
		return GreatCircle, nil
	default:
		return nil, fmt.Errorf("unknown metric %q", name)
	}
}
