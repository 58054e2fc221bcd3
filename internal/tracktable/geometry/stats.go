package geometry

import (
	"math"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
)

// weiszfeldIterations bounds the geometric median's Weiszfeld iteration;
// the update contracts quickly for well-separated points, so this is far
// more than realistic point sets ever need.
const weiszfeldIterations = 200

// weiszfeldTolerance is the Euclidean length (in raw coordinates) of an
// iterate's movement below which the median iteration is considered
// converged.
const weiszfeldTolerance = 1e-12

// weiszfeldSingularity guards against dividing by a near-zero distance
// when an iterate lands on (or very near) one of the input points.
const weiszfeldSingularity = 1e-12

// GeometricMean returns the ordinary componentwise average of pts' raw
// coordinates. This is deliberately not a domain-aware centroid: even in
// the spherical domain it averages longitude and latitude directly,
// matching how the teacher's cluster centroid (internal/lidar/clustering.go
// computeClusterMetrics) averages world-frame coordinates without any
// projection step.
func GeometricMean(pts []point.Point) point.Point {
	if len(pts) == 0 {
		return point.Point{}
	}
	dim := pts[0].Dim()
	sum := make([]float64, dim)
	for _, p := range pts {
		for i := 0; i < dim; i++ {
			sum[i] += p.At(i)
		}
	}
	for i := range sum {
		sum[i] /= float64(len(pts))
	}
	return point.Point{V: sum}
}

// GeometricMedian returns the point minimizing the sum of d.Distance to
// every point in pts, found by Weiszfeld's iteration starting from the
// arithmetic mean. When an iterate lands within weiszfeldSingularity of an
// input point, the iteration stops and returns that iterate, which avoids
// the algorithm's 1/distance singularity.
func GeometricMedian(d geodomain.Domain, pts []point.Point) point.Point {
	if len(pts) == 0 {
		return point.Point{}
	}
	if len(pts) == 1 {
		return pts[0].Clone()
	}

	current := GeometricMean(pts)
	dim := current.Dim()

	for iter := 0; iter < weiszfeldIterations; iter++ {
		weighted := make([]float64, dim)
		weightSum := 0.0
		onPoint := false

		for _, p := range pts {
			dist := d.Distance(current, p)
			if dist < weiszfeldSingularity {
				onPoint = true
				break
			}
			w := 1 / dist
			for i := 0; i < dim; i++ {
				weighted[i] += w * p.At(i)
			}
			weightSum += w
		}
		if onPoint || weightSum == 0 {
			return current
		}

		next := make([]float64, dim)
		moved := 0.0
		for i := 0; i < dim; i++ {
			next[i] = weighted[i] / weightSum
			delta := next[i] - current.At(i)
			moved += delta * delta
		}
		current = point.Point{V: next}
		if math.Sqrt(moved) < weiszfeldTolerance {
			break
		}
	}
	return current
}

// RadiusOfGyration returns the root-mean-square distance from pts to
// their geometric mean, a single-number measure of how spread out a
// cluster or trajectory is.
func RadiusOfGyration(d geodomain.Domain, pts []point.Point) float64 {
	if len(pts) == 0 {
		return 0
	}
	mean := GeometricMean(pts)
	sumSq := 0.0
	for _, p := range pts {
		dist := d.Distance(mean, p)
		sumSq += dist * dist
	}
	return math.Sqrt(sumSq / float64(len(pts)))
}
