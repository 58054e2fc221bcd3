// Package geodomain defines the capability interfaces that let the
// geometry algorithms (package geometry) and the rest of the core operate
// the same way over any coordinate domain, the way the teacher's
// per-sensor pose transform (internal/lidar/pose.go, internal/lidar/transform.go)
// lets the tracking pipeline treat "polar sensor frame" and "world frame"
// uniformly through a single ApplyPose/TransformToWorld call.
//
// Tracktable ships three concrete domains: spherical (package
// geodomain/spherical, longitude/latitude on an Earth-radius sphere),
// flat2d and flat3d (Euclidean, unitless). Every operation that needs
// domain-specific numeric semantics takes a Domain value as an explicit
// argument rather than relying on method dispatch through the point type
// itself — this is design option (a) from spec.md §9: a capability
// interface per geometry kind plus a per-domain provider object.
package geodomain

import "github.com/sandialabs/tracktable-go/internal/tracktable/point"

// Domain supplies the numeric primitives whose meaning differs between
// coordinate systems: distance, interpolation, turn angles, and speed.
type Domain interface {
	// Name is a short identifier, e.g. "spherical", "flat2d", "flat3d".
	Name() string

	// Dimension is the number of coordinates a Point in this domain has.
	Dimension() int

	// Distance returns the domain-appropriate length between p and q:
	// great-circle kilometers (spherical) or Euclidean norm (flat).
	Distance(p, q point.Point) float64

	// Interpolate returns the point a fraction t of the way from p to q,
	// clamped to the endpoints for t outside [0, 1].
	Interpolate(p, q point.Point, t float64) point.Point

	// Extrapolate uses the same formula as Interpolate but is not clamped;
	// callers may pass t < 0 or t > 1.
	Extrapolate(p, q point.Point, t float64) point.Point

	// SignedTurnAngle returns the signed angle at b between segments a->b
	// and b->c, in (-180, 180]. Returns 0 if any two of the three points
	// coincide.
	SignedTurnAngle(a, b, c point.Point) float64

	// UnsignedTurnAngle returns the unsigned angle at b, in [0, 180].
	// Returns 0 if any two of the three points coincide.
	UnsignedTurnAngle(a, b, c point.Point) float64

	// SpeedBetween returns Distance(p, q) / dtHours. Undefined (NaN) if
	// dtHours is 0.
	SpeedBetween(p, q point.Point, dtHours float64) float64
}

// Bearer is implemented by domains that have a notion of compass bearing
// (currently only spherical). Bearing is undefined for coincident points.
type Bearer interface {
	Bearing(p, q point.Point) float64
}

// Reckoner is implemented by domains that can compute a destination point
// from an origin, a distance, and a bearing: great-circle geodesy
// (spherical) or a planar offset (flat).
type Reckoner interface {
	Reckon(origin point.Point, distance, bearingDeg float64) point.Point
}

// GreatCircle is implemented by domains whose Distance measures length
// along a sphere's surface, which gives EarthRadiusKm its meaning. Only
// the spherical domain implements it.
type GreatCircle interface {
	EarthRadiusKm() float64
}

// EuclideanCoordinates is implemented by domains whose raw coordinates
// form a genuine Euclidean vector space, so a bounding box's
// coordinate-wise offset to a point is a valid lower bound on Distance to
// anything inside the box. The spherical domain does not implement it:
// longitude/latitude degrees don't scale linearly with great-circle
// kilometers, so no such bound holds in general.
type EuclideanCoordinates interface {
	EuclideanCoordinates() bool
}
