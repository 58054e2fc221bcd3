// Package point implements the domain-agnostic geometry primitives shared
// by every coordinate domain: a fixed-dimension coordinate vector, an
// axis-aligned box, and an open polyline. The numeric meaning of these
// types (distance, bearing, interpolation) is supplied per domain by
// package geodomain; this package only holds the coordinates and the
// componentwise arithmetic that is valid regardless of domain.
package point

import "fmt"

// Point is a vector of N floating-point coordinates. N is 2 for the
// spherical (longitude/latitude) and flat-2D domains, and 3 for the
// flat-3D domain.
type Point struct {
	V []float64
}

// New constructs a Point from its coordinates. The slice is copied.
func New(coords ...float64) Point {
	v := make([]float64, len(coords))
	copy(v, coords)
	return Point{V: v}
}

// Dim returns the number of coordinates.
func (p Point) Dim() int { return len(p.V) }

// At returns the i'th coordinate.
func (p Point) At(i int) float64 { return p.V[i] }

// Clone returns a Point with its own backing array.
func (p Point) Clone() Point {
	v := make([]float64, len(p.V))
	copy(v, p.V)
	return Point{V: v}
}

// Equal reports whether p and q have the same dimension and identical
// coordinates.
func (p Point) Equal(q Point) bool {
	if len(p.V) != len(q.V) {
		return false
	}
	for i := range p.V {
		if p.V[i] != q.V[i] {
			return false
		}
	}
	return true
}

// Add returns the componentwise sum p+q. Always valid in flat domains;
// in the spherical domain it operates on raw (lon, lat) as if flat, which
// the caller must treat with caution (see package geodomain/spherical).
func Add(p, q Point) Point {
	mustSameDim(p, q)
	out := make([]float64, len(p.V))
	for i := range p.V {
		out[i] = p.V[i] + q.V[i]
	}
	return Point{V: out}
}

// Sub returns the componentwise difference p-q.
func Sub(p, q Point) Point {
	mustSameDim(p, q)
	out := make([]float64, len(p.V))
	for i := range p.V {
		out[i] = p.V[i] - q.V[i]
	}
	return Point{V: out}
}

// Scale returns p with every coordinate multiplied by s.
func Scale(p Point, s float64) Point {
	out := make([]float64, len(p.V))
	for i := range p.V {
		out[i] = p.V[i] * s
	}
	return Point{V: out}
}

// Div returns p with every coordinate divided by s.
func Div(p Point, s float64) Point {
	out := make([]float64, len(p.V))
	for i := range p.V {
		out[i] = p.V[i] / s
	}
	return Point{V: out}
}

func mustSameDim(p, q Point) {
	if len(p.V) != len(q.V) {
		panic(fmt.Sprintf("point: dimension mismatch (%d vs %d)", len(p.V), len(q.V)))
	}
}
