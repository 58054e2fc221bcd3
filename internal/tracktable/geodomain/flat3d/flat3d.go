// Package flat3d implements geodomain.Domain for unitless 3D Euclidean
// coordinates.
package flat3d

import (
	"math"

	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
)

// Domain is the flat 3D Euclidean coordinate domain.
type Domain struct{}

// Default is the package-level flat-3D domain instance.
var Default = Domain{}

func (Domain) Name() string   { return "flat3d" }
func (Domain) Dimension() int { return 3 }

// EuclideanCoordinates implements geodomain.EuclideanCoordinates.
func (Domain) EuclideanCoordinates() bool { return true }

// Distance returns the Euclidean norm of p-q.
func (Domain) Distance(p, q point.Point) float64 {
	dx := q.At(0) - p.At(0)
	dy := q.At(1) - p.At(1)
	dz := q.At(2) - p.At(2)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
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
	z := p.At(2) + t*(q.At(2)-p.At(2))
	return point.New(x, y, z)
}

// SignedTurnAngle returns the angle at b between a->b and b->c, signed by
// the z-component of the cross product of the two segment vectors (i.e.
// the turn's sense as seen looking down the +Z axis). Returns 0 if any
// two of the three points coincide.
func (Domain) SignedTurnAngle(a, b, c point.Point) float64 {
	if a.Equal(b) || b.Equal(c) || a.Equal(c) {
		return 0
	}
	in := [3]float64{b.At(0) - a.At(0), b.At(1) - a.At(1), b.At(2) - a.At(2)}
	out := [3]float64{c.At(0) - b.At(0), c.At(1) - b.At(1), c.At(2) - b.At(2)}

	dot := in[0]*out[0] + in[1]*out[1] + in[2]*out[2]
	cross := [3]float64{
		in[1]*out[2] - in[2]*out[1],
		in[2]*out[0] - in[0]*out[2],
		in[0]*out[1] - in[1]*out[0],
	}
	crossNorm := math.Sqrt(cross[0]*cross[0] + cross[1]*cross[1] + cross[2]*cross[2])

	angle := math.Atan2(crossNorm, dot) * 180 / math.Pi
	if cross[2] < 0 {
		angle = -angle
	}
	if angle <= -180 {
		angle += 360
	}
	return angle
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
// along bearingDeg (degrees clockwise from the +Y axis, as in flat2d) from
// origin, using a planar offset in X and Y; the Z coordinate is unchanged.
func (Domain) Reckon(origin point.Point, distance, bearingDeg float64) point.Point {
	rad := bearingDeg * math.Pi / 180.0
	dx := distance * math.Sin(rad)
	dy := distance * math.Cos(rad)
	return point.New(origin.At(0)+dx, origin.At(1)+dy, origin.At(2))
}
