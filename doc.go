// Package smooth converts hand-drawn routes into smooth curves and back.
//
// A user draws a route on a map as a sequence of longitude/latitude points.
// This package turns that sharp [Polyline] into a smooth curve of the same
// length, and remembers the original so that smoothing can be switched off
// again without any loss of precision.
//
// # Pipeline
//
// Smoothing is a [Pipeline] of three steps:
//
//   - [Densify] inserts points into segments that are much longer than the
//     shortest segment, so that the following step works on a locally uniform
//     point density.
//   - A [Smoother] computes the curve. Two strategies are provided:
//     [CornerCutting] (Chaikin's algorithm) and [Spline] (a piecewise cubic
//     Bézier spline through every point).
//   - [Rescale] stretches the curve back to the length of the drawn route,
//     undoing the shrinkage inherent in corner cutting.
//
// All steps are pure functions of their inputs. They accept and return
// [Polyline] values, which are immutable.
//
// # Routes
//
// [Route] models the two display states of a drawn route, [Drawing] and
// [Smoothed]. Smoothing always starts from the saved original polyline, never
// from a previously smoothed curve, so changing [Params] repeatedly doesn't
// compound distortion, and [Route.Restore] yields exactly the polyline that
// was drawn.
//
// # Coordinates
//
// Point.X is the longitude and Point.Y the latitude. Smoothing and rescaling
// treat coordinates as planar. Densification can optionally measure segments
// along great circles, see [GreatCircle].
//
// # Literature
//
//   - [An algorithm for high-speed curve generation] by George Chaikin
//
// [An algorithm for high-speed curve generation]: https://doi.org/10.1016/0146-664X(74)90028-8
package smooth
