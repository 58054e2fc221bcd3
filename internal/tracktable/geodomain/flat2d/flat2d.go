// Package flat2d implements geodomain.Domain for unitless 2D Euclidean
// coordinates.
package flat2d

import (
	"math"

	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
)

// Domain is the flat 2D Euclidean coordinate domain.
type Domain struct{}

// Default is the package-level flat-2D domain instance.
var Default = Domain{}

func (Domain) Name() string   { return "flat2d" }
func (Domain) Dimension() int { return 2 }

// EuclideanCoordinates implements geodomain.EuclideanCoordinates.
func (Domain) EuclideanCoordinates() bool { return true }

// Distance returns the Euclidean norm of p-q.
func (Domain) Distance(p, q point.Point) float64 {
	dx := q.At(0) - p.At(0)
	dy := q.At(1) - p.At(1)
	return math.Hypot(dx, dy)
}

// Interpolate returns the linear mix of p and q at fraction t, clamped to
// [0, 1].
func (Domain) Interpolate(p, q point.Point, t float64) point.Point {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return mix(p, q, t)
}

// Extrapolate uses the same linear formula as Interpolate without
// clamping t.
func (Domain) Extrapolate(p, q point.Point, t float64) point.Point {
	return mix(p, q, t)
}

func mix(p, q point.Point, t float64) point.Point {
	x := p.At(0) + t*(q.At(0)-p.At(0))
	y := p.At(1) + t*(q.At(1)-p.At(1))
	return point.New(x, y)
}

// SignedTurnAngle returns the signed angle at b between a->b and b->c, in
// (-180, 180]. Returns 0 if any two of the three points coincide.
func (Domain) SignedTurnAngle(a, b, c point.Point) float64 {
	if a.Equal(b) || b.Equal(c) || a.Equal(c) {
		return 0
	}
	in := math.Atan2(b.At(1)-a.At(1), b.At(0)-a.At(0))
	out := math.Atan2(c.At(1)-b.At(1), c.At(0)-b.At(0))
	diff := (out - in) * 180 / math.Pi
	for diff <= -180 {
		diff += 360
	}
	for diff > 180 {
		diff -= 360
	}
	return diff
}

// UnsignedTurnAngle returns the absolute value of SignedTurnAngle.
func (d Domain) UnsignedTurnAngle(a, b, c point.Point) float64 {
	return math.Abs(d.SignedTurnAngle(a, b, c))
}

// SpeedBetween returns Distance(p, q) / dtHours; NaN if dtHours is 0.
func (d Domain) SpeedBetween(p, q point.Point, dtHours float64) float64 {
	if dtHours == 0 {
		return math.NaN()
	}
	return d.Distance(p, q) / dtHours
}

// Reckon computes the destination point reached by travelling distance
// along bearingDeg (degrees clockwise from the +Y axis, matching the
// spherical domain's north-relative convention) from origin, using a
// planar offset.
func (Domain) Reckon(origin point.Point, distance, bearingDeg float64) point.Point {
	rad := bearingDeg * math.Pi / 180.0
	dx := distance * math.Sin(rad)
	dy := distance * math.Cos(rad)
	return point.New(origin.At(0)+dx, origin.At(1)+dy)
}
