package point

import "fmt"

// Box is an axis-aligned bounding box: a pair of same-dimension corners
// with the invariant min[i] <= max[i] for every dimension i. Empty boxes
// (any min[i] > max[i]) are forbidden and rejected by NewBox.
type Box struct {
	Min, Max Point
}

// NewBox constructs a Box, validating the min/max invariant.
func NewBox(min, max Point) (Box, error) {
	if min.Dim() != max.Dim() {
		return Box{}, fmt.Errorf("point: box corners have different dimension (%d vs %d)", min.Dim(), max.Dim())
	}
	for i := 0; i < min.Dim(); i++ {
		if min.At(i) > max.At(i) {
			return Box{}, fmt.Errorf("point: invalid box, min[%d]=%v > max[%d]=%v", i, min.At(i), i, max.At(i))
		}
	}
	return Box{Min: min.Clone(), Max: max.Clone()}, nil
}

// Dim returns the box's dimension.
func (b Box) Dim() int { return b.Min.Dim() }

// Contains reports whether p is covered by b, border included.
func (b Box) Contains(p Point) bool {
	for i := 0; i < b.Dim(); i++ {
		if p.At(i) < b.Min.At(i) || p.At(i) > b.Max.At(i) {
			return false
		}
	}
	return true
}

// StrictlyContains reports whether p lies in b's open interior.
func (b Box) StrictlyContains(p Point) bool {
	for i := 0; i < b.Dim(); i++ {
		if p.At(i) <= b.Min.At(i) || p.At(i) >= b.Max.At(i) {
			return false
		}
	}
	return true
}

// Intersects reports whether b and other are not disjoint (touching
// borders count as intersecting).
func (b Box) Intersects(other Box) bool {
	for i := 0; i < b.Dim(); i++ {
		if b.Max.At(i) < other.Min.At(i) || other.Max.At(i) < b.Min.At(i) {
			return false
		}
	}
	return true
}

// Union returns the smallest box covering both b and other. The zero Box
// (no dimensions) covers nothing, so its union with a box is that box.
func Union(b, other Box) Box {
	if b.Dim() == 0 {
		return other
	}
	if other.Dim() == 0 {
		return b
	}
	dim := b.Dim()
	min := make([]float64, dim)
	max := make([]float64, dim)
	for i := 0; i < dim; i++ {
		min[i] = minf(b.Min.At(i), other.Min.At(i))
		max[i] = maxf(b.Max.At(i), other.Max.At(i))
	}
	return Box{Min: Point{V: min}, Max: Point{V: max}}
}

// BoundingBoxOf returns the smallest box covering every point in pts.
// Panics if pts is empty; callers must guard the empty case themselves
// since there is no meaningful empty box.
func BoundingBoxOf(pts []Point) Box {
	if len(pts) == 0 {
		panic("point: BoundingBoxOf called with no points")
	}
	dim := pts[0].Dim()
	min := make([]float64, dim)
	max := make([]float64, dim)
	copy(min, pts[0].V)
	copy(max, pts[0].V)
	for _, p := range pts[1:] {
		for i := 0; i < dim; i++ {
			if p.At(i) < min[i] {
				min[i] = p.At(i)
			}
			if p.At(i) > max[i] {
				max[i] = p.At(i)
			}
		}
	}
	return Box{Min: Point{V: min}, Max: Point{V: max}}
}

// Volume returns the product of b's per-dimension extents.
func (b Box) Volume() float64 {
	v := 1.0
	for i := 0; i < b.Dim(); i++ {
		v *= b.Max.At(i) - b.Min.At(i)
	}
	return v
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
