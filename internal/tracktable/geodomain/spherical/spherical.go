// Package spherical implements geodomain.Domain for longitude/latitude
// points on an Earth-radius sphere. Distances are great-circle lengths in
// kilometers; bearings are compass azimuths. The conversion style here
// (explicit radians locals, named return values) follows
// internal/lidar/transform.go's SphericalToCartesian/ApplyPose.
package spherical

import (
	"math"

	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distance
// and geodesy calculations.
const EarthRadiusKm = 6371.0088

// Domain is the spherical coordinate domain: 2D points are (longitude,
// latitude) in degrees.
type Domain struct{}

// Default is the package-level spherical domain instance.
var Default = Domain{}

func (Domain) Name() string   { return "spherical" }
func (Domain) Dimension() int { return 2 }

// EarthRadiusKm implements geodomain.GreatCircle.
func (Domain) EarthRadiusKm() float64 { return EarthRadiusKm }

func toRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func toDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

// Distance returns the great-circle distance between p and q in
// kilometers, using the haversine formula.
func (Domain) Distance(p, q point.Point) float64 {
	lon1, lat1 := toRad(p.At(0)), toRad(p.At(1))
	lon2, lat2 := toRad(q.At(0)), toRad(q.At(1))

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	sinDLat2 := math.Sin(dLat / 2)
	sinDLon2 := math.Sin(dLon / 2)
	a := sinDLat2*sinDLat2 + math.Cos(lat1)*math.Cos(lat2)*sinDLon2*sinDLon2
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// Bearing returns the initial compass bearing from p to q in degrees,
// clockwise from north, in [0, 360). Undefined (NaN) for coincident
// points.
func (Domain) Bearing(p, q point.Point) float64 {
	if p.At(0) == q.At(0) && p.At(1) == q.At(1) {
		return math.NaN()
	}
	lon1, lat1 := toRad(p.At(0)), toRad(p.At(1))
	lon2, lat2 := toRad(q.At(0)), toRad(q.At(1))
	dLon := lon2 - lon1

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	theta := math.Atan2(y, x)
	deg := math.Mod(toDeg(theta)+360, 360)
	return deg
}

// Interpolate returns the point a fraction t of the way from p to q along
// the great circle, using spherical linear interpolation (slerp). t is
// clamped to [0, 1]: t <= 0 returns p and t >= 1 returns q exactly.
func (Domain) Interpolate(p, q point.Point, t float64) point.Point {
	if t <= 0 {
		return point.New(p.At(0), p.At(1))
	}
	if t >= 1 {
		return point.New(q.At(0), q.At(1))
	}
	return slerp(p, q, t)
}

// Extrapolate uses the same slerp formula as Interpolate but does not
// clamp t.
func (Domain) Extrapolate(p, q point.Point, t float64) point.Point {
	return slerp(p, q, t)
}

func slerp(p, q point.Point, t float64) point.Point {
	lon1, lat1 := toRad(p.At(0)), toRad(p.At(1))
	lon2, lat2 := toRad(q.At(0)), toRad(q.At(1))

	x1, y1, z1 := math.Cos(lat1)*math.Cos(lon1), math.Cos(lat1)*math.Sin(lon1), math.Sin(lat1)
	x2, y2, z2 := math.Cos(lat2)*math.Cos(lon2), math.Cos(lat2)*math.Sin(lon2), math.Sin(lat2)

	dot := x1*x2 + y1*y2 + z1*z2
	dot = math.Min(1, math.Max(-1, dot))
	omega := math.Acos(dot)

	var x, y, z float64
	if omega == 0 {
		x, y, z = x1, y1, z1
	} else {
		sinOmega := math.Sin(omega)
		a := math.Sin((1-t)*omega) / sinOmega
		b := math.Sin(t*omega) / sinOmega
		x = a*x1 + b*x2
		y = a*y1 + b*y2
		z = a*z1 + b*z2
	}

	lat := math.Asin(clamp(z, -1, 1))
	lon := math.Atan2(y, x)
	return point.New(toDeg(lon), toDeg(lat))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SignedTurnAngle returns the signed angle at b between segments a->b and
// b->c, using the initial bearings of each segment. Returns 0 if any two
// of the three points coincide.
func (d Domain) SignedTurnAngle(a, b, c point.Point) float64 {
	if a.Equal(b) || b.Equal(c) || a.Equal(c) {
		return 0
	}
	bearingIn := d.Bearing(a, b)
	bearingOut := d.Bearing(b, c)
	diff := bearingOut - bearingIn
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

// Reckon computes the destination point reached by travelling distanceKm
// along bearingDeg (degrees clockwise from north) from origin, using
// great-circle geodesy.
func (Domain) Reckon(origin point.Point, distanceKm, bearingDeg float64) point.Point {
	lat1 := toRad(origin.At(1))
	lon1 := toRad(origin.At(0))
	brng := toRad(bearingDeg)
	angularDist := distanceKm / EarthRadiusKm

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angularDist) +
		math.Cos(lat1)*math.Sin(angularDist)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(
		math.Sin(brng)*math.Sin(angularDist)*math.Cos(lat1),
		math.Cos(angularDist)-math.Sin(lat1)*math.Sin(lat2))

	lon2 = math.Mod(lon2+3*math.Pi, 2*math.Pi) - math.Pi
	return point.New(toDeg(lon2), toDeg(lat2))
}
