package geometry

import (
	"math"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
)

// ternaryIterations bounds the search used to minimize distance-to-point
// along a segment; the search interval [0,1] shrinks by a factor of 2/3
// each iteration, so 100 iterations is far beyond double precision.
const ternaryIterations = 100

// distancePointToSegment returns the minimum of d.Distance(p, x) over x on
// the segment from a to b, found by ternary search over the segment's
// parameter t in [0,1]. This is a single domain-generic algorithm: it
// works identically for Euclidean and great-circle segments because it
// only calls d.Distance and d.Interpolate, never raw coordinates.
func distancePointToSegment(d geodomain.Domain, p, a, b point.Point) float64 {
	if a.Equal(b) {
		return d.Distance(p, a)
	}
	lo, hi := 0.0, 1.0
	for i := 0; i < ternaryIterations; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		d1 := d.Distance(p, d.Interpolate(a, b, m1))
		d2 := d.Distance(p, d.Interpolate(a, b, m2))
		if d1 < d2 {
			hi = m2
		} else {
			lo = m1
		}
	}
	t := (lo + hi) / 2
	return d.Distance(p, d.Interpolate(a, b, t))
}

// distanceSegmentToSegment returns the minimum distance between segment
// a1-a2 and segment b1-b2, via nested ternary search.
func distanceSegmentToSegment(d geodomain.Domain, a1, a2, b1, b2 point.Point) float64 {
	if a1.Equal(a2) {
		return distancePointToSegment(d, a1, b1, b2)
	}
	lo, hi := 0.0, 1.0
	for i := 0; i < ternaryIterations; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		d1 := distancePointToSegment(d, d.Interpolate(a1, a2, m1), b1, b2)
		d2 := distancePointToSegment(d, d.Interpolate(a1, a2, m2), b1, b2)
		if d1 < d2 {
			hi = m2
		} else {
			lo = m1
		}
	}
	t := (lo + hi) / 2
	return distancePointToSegment(d, d.Interpolate(a1, a2, t), b1, b2)
}

// DistancePointToPolyline returns the minimum distance from p to any point
// on pl. An empty polyline has no meaningful distance and returns +Inf;
// a single-point polyline returns the point-to-point distance.
func DistancePointToPolyline(d geodomain.Domain, p point.Point, pl point.Polyline) float64 {
	if pl.Empty() {
		return posInf()
	}
	if pl.Len() == 1 {
		return d.Distance(p, pl.Points[0])
	}
	best := posInf()
	for i := 0; i+1 < pl.Len(); i++ {
		dist := distancePointToSegment(d, p, pl.Points[i], pl.Points[i+1])
		if dist < best {
			best = dist
		}
	}
	return best
}

// DistancePolylineToPolyline returns the minimum distance between any
// point on a and any point on b: 0 if they intersect.
func DistancePolylineToPolyline(d geodomain.Domain, a, b point.Polyline) float64 {
	if a.Empty() || b.Empty() {
		return posInf()
	}
	if IntersectsPolylines(d, a, b) {
		return 0
	}
	if a.Len() == 1 {
		return DistancePointToPolyline(d, a.Points[0], b)
	}
	if b.Len() == 1 {
		return DistancePointToPolyline(d, b.Points[0], a)
	}
	best := posInf()
	for i := 0; i+1 < a.Len(); i++ {
		for j := 0; j+1 < b.Len(); j++ {
			dist := distanceSegmentToSegment(d, a.Points[i], a.Points[i+1], b.Points[j], b.Points[j+1])
			if dist < best {
				best = dist
			}
		}
	}
	return best
}

func posInf() float64 {
	return math.Inf(1)
}
