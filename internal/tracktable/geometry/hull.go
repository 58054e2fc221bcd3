package geometry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
)

// ConvexHull is the convex hull of a point set, projected onto the
// domain's first two coordinates (longitude/latitude for spherical, X/Y
// for flat2d and flat3d — the same XY-plane projection the teacher's
// EstimateOBBFromCluster uses for its PCA). Vertices are in
// counter-clockwise order with no repeated closing point.
type ConvexHull struct {
	Vertices []point.Point
}

// ConvexHullOf computes the convex hull of pts via the monotone chain
// algorithm on their (At(0), At(1)) projection. Fewer than 3 distinct
// points, or collinear points, produce a degenerate hull (0, 1, or 2
// vertices) rather than an error: Area and AspectRatio return 0 for it,
// and Perimeter returns 0 for 0 or 1 vertices and twice the chord length
// for 2 vertices.
func ConvexHullOf(pts []point.Point) ConvexHull {
	uniq := dedupePoints(pts)
	if len(uniq) < 3 {
		return ConvexHull{Vertices: uniq}
	}

	sort.Slice(uniq, func(i, j int) bool {
		if uniq[i].At(0) != uniq[j].At(0) {
			return uniq[i].At(0) < uniq[j].At(0)
		}
		return uniq[i].At(1) < uniq[j].At(1)
	})

	lower := buildChain(uniq)
	for i, j := 0, len(uniq)-1; i < j; i, j = i+1, j-1 {
		uniq[i], uniq[j] = uniq[j], uniq[i]
	}
	upper := buildChain(uniq)

	lower = lower[:len(lower)-1]
	upper = upper[:len(upper)-1]
	return ConvexHull{Vertices: append(lower, upper...)}
}

func buildChain(pts []point.Point) []point.Point {
	chain := make([]point.Point, 0, len(pts))
	for _, p := range pts {
		for len(chain) >= 2 && cross2D(chain[len(chain)-2], chain[len(chain)-1], p) <= 0 {
			chain = chain[:len(chain)-1]
		}
		chain = append(chain, p)
	}
	return chain
}

func cross2D(o, a, b point.Point) float64 {
	return (a.At(0)-o.At(0))*(b.At(1)-o.At(1)) - (a.At(1)-o.At(1))*(b.At(0)-o.At(0))
}

func dedupePoints(pts []point.Point) []point.Point {
	out := make([]point.Point, 0, len(pts))
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if p.Equal(q) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// Empty reports whether the hull has fewer than 3 vertices, i.e. no
// enclosed area.
func (h ConvexHull) Empty() bool { return len(h.Vertices) < 3 }

// Perimeter returns the sum of d.Distance around the closed hull. A
// degenerate 2-point hull's "perimeter" is twice the distance between
// them (there and back), matching the collinear-points scenario where a
// convex hull collapses to a line segment.
func (h ConvexHull) Perimeter(d geodomain.Domain) float64 {
	n := len(h.Vertices)
	if n < 2 {
		return 0
	}
	if n == 2 {
		return 2 * d.Distance(h.Vertices[0], h.Vertices[1])
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += d.Distance(h.Vertices[i], h.Vertices[j])
	}
	return total
}

// Area returns the hull's enclosed area. In flat domains this is the
// planar shoelace formula; in the spherical domain it is the
// longitude-trapezoid approximation described on sphericalArea, in square
// kilometers. Degenerate hulls (fewer than 3 vertices) have area 0.
func (h ConvexHull) Area(d geodomain.Domain) float64 {
	if h.Empty() {
		return 0
	}
	if gc, ok := d.(geodomain.GreatCircle); ok {
		return h.sphericalArea(gc.EarthRadiusKm())
	}
	return h.planarArea()
}

func (h ConvexHull) planarArea() float64 {
	n := len(h.Vertices)
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += h.Vertices[i].At(0)*h.Vertices[j].At(1) - h.Vertices[j].At(0)*h.Vertices[i].At(1)
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

// sphericalArea approximates spherical-polygon area from the hull's
// (longitude, latitude) vertices in degrees, using the same
// trapezoid-on-a-sphere identity as planimeter tools:
// A = R^2/2 * |sum((lon[i+1]-lon[i]) * (2 + sin(lat[i]) + sin(lat[i+1])))|.
// It applies the trapezoid rule to sin(latitude) over each edge's
// longitude span, so it is exact for edges along a meridian or a parallel
// and approximate for great-circle edges; the error shrinks with the
// edges' extent.
func (h ConvexHull) sphericalArea(earthRadiusKm float64) float64 {
	const degToRad = math.Pi / 180
	n := len(h.Vertices)
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		lon1, lat1 := h.Vertices[i].At(0)*degToRad, h.Vertices[i].At(1)*degToRad
		lon2, lat2 := h.Vertices[j].At(0)*degToRad, h.Vertices[j].At(1)*degToRad
		sum += (lon2 - lon1) * (2 + math.Sin(lat1) + math.Sin(lat2))
	}
	if sum < 0 {
		sum = -sum
	}
	return earthRadiusKm * earthRadiusKm * sum / 2
}

// AspectRatio returns the ratio of the smaller to the larger eigenvalue
// of the hull vertex set's covariance matrix, in [0, 1] (0 for collinear
// points, 1 for a perfectly round cluster) — the same PCA the teacher's
// EstimateOBBFromCluster performs, generalized from its closed-form 2x2
// solution to gonum's symmetric eigendecomposition.
func (h ConvexHull) AspectRatio() float64 {
	n := len(h.Vertices)
	if n < 2 {
		return 0
	}
	cx, cy := 0.0, 0.0
	for _, v := range h.Vertices {
		cx += v.At(0)
		cy += v.At(1)
	}
	cx /= float64(n)
	cy /= float64(n)

	var c00, c01, c11 float64
	for _, v := range h.Vertices {
		dx, dy := v.At(0)-cx, v.At(1)-cy
		c00 += dx * dx
		c01 += dx * dy
		c11 += dy * dy
	}
	nf := float64(n)
	cov := mat.NewSymDense(2, []float64{c00 / nf, c01 / nf, c01 / nf, c11 / nf})

	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return 0
	}
	values := eig.Values(nil)
	lo, hi := values[0], values[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi <= 0 {
		return 0
	}
	if lo < 0 {
		lo = 0
	}
	return lo / hi
}

// Centroid returns the area-weighted polygon centroid of the hull over
// its (At(0), At(1)) projection — distinct from GeometricMean's plain
// vertex average, which spec.md reserves for a trajectory's raw point
// set. For a degenerate hull (fewer than 3 vertices, or zero enclosed
// area) there is no well-defined polygon centroid, so this falls back to
// the vertex average instead. Any coordinates beyond the first two
// (flat3d altitude) are carried through as a plain average, since the
// polygon centroid formula is only defined in the hull's 2D projection.
func (h ConvexHull) Centroid() point.Point {
	n := len(h.Vertices)
	if n == 0 {
		return point.Point{}
	}
	dim := h.Vertices[0].Dim()

	if h.Empty() {
		return vertexAverage(h.Vertices, dim)
	}

	var area, cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		xi, yi := h.Vertices[i].At(0), h.Vertices[i].At(1)
		xj, yj := h.Vertices[j].At(0), h.Vertices[j].At(1)
		cross := xi*yj - xj*yi
		area += cross
		cx += (xi + xj) * cross
		cy += (yi + yj) * cross
	}
	area /= 2
	if area == 0 {
		return vertexAverage(h.Vertices, dim)
	}
	cx /= 6 * area
	cy /= 6 * area

	out := make([]float64, dim)
	out[0] = cx
	if dim > 1 {
		out[1] = cy
	}
	for i := 2; i < dim; i++ {
		var sum float64
		for _, v := range h.Vertices {
			sum += v.At(i)
		}
		out[i] = sum / float64(n)
	}
	return point.Point{V: out}
}

func vertexAverage(vertices []point.Point, dim int) point.Point {
	sum := make([]float64, dim)
	for _, v := range vertices {
		for i := 0; i < dim; i++ {
			sum[i] += v.At(i)
		}
	}
	for i := range sum {
		sum[i] /= float64(len(vertices))
	}
	return point.Point{V: sum}
}
