// Package dbscan implements density-based clustering over arbitrary-
// dimension points, built on package rtree for neighborhood queries. The
// algorithm itself — grid-free region queries, a queue-based core-point
// expansion, and a single labels-to-clusters reshaping pass — is adapted
// from the teacher's grid-based DBSCAN
// (internal/lidar/clustering.go: DBSCAN/expandCluster/buildClusters),
// generalized from a fixed 2D grid and Euclidean-only neighborhoods to a
// generic R-tree and an optional ellipsoidal refinement.
package dbscan

import (
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
	"github.com/sandialabs/tracktable-go/internal/tracktable/rtree"
)

// NoiseCluster is the reserved cluster identifier for points that are
// neither core points nor reachable from one.
const NoiseCluster = 0

// unvisited and tentativeNoise are internal label states distinct from
// NoiseCluster: a point marked tentativeNoise may still be reclaimed as a
// border point if a later seed's expansion reaches it. Both collapse to
// NoiseCluster in the labels RunWithIndex returns.
const (
	unvisited      = -2
	tentativeNoise = -1
)

// Params configures a clustering run.
type Params struct {
	// HalfSpan is the per-dimension half-width of the axis-aligned
	// neighborhood box searched around each candidate seed point.
	HalfSpan []float64

	// MinPoints is the minimum neighbor count (including the point
	// itself) for a point to become a core point.
	MinPoints int

	// EuclideanRefine, if true, discards box-query neighbors outside the
	// ellipsoid inscribed in the search box: points whose coordinate-wise
	// offset divided by the matching half-span has squared norm > 1.
	EuclideanRefine bool
}

// Run clusters pts, returning one label per input point in input order.
// Label 0 is noise; labels 1..K are assigned in the order clusters are
// first founded. Run builds its own R-tree for the duration of the call;
// rebuilding dominates runtime for small point sets — see RunWithIndex to
// amortize the index across repeated calls.
func Run(pts []point.Point, params Params) []int {
	entries := make([]rtree.Entry[int], len(pts))
	for i, p := range pts {
		entries[i] = rtree.Entry[int]{Geometry: p, Payload: i}
	}
	index := rtree.BulkLoad(entries)
	return RunWithIndex(pts, index, params)
}

// RunWithIndex clusters pts using a caller-supplied index, which must
// contain at least every point in pts addressed by its position (the
// Payload convention RunWithIndex itself uses when called from Run).
// Supplied for callers that amortize index construction across repeated
// clustering passes over the same or overlapping point sets.
func RunWithIndex(pts []point.Point, index *rtree.Tree[int], params Params) []int {
	n := len(pts)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = unvisited
	}
	nextCluster := 0

	for i := 0; i < n; i++ {
		if labels[i] != unvisited {
			continue
		}
		neighbors := regionQuery(pts, index, i, params)
		if len(neighbors) < params.MinPoints {
			labels[i] = tentativeNoise
			continue
		}
		nextCluster++
		expandCluster(pts, index, labels, i, neighbors, nextCluster, params)
	}

	for i, l := range labels {
		if l == unvisited || l == tentativeNoise {
			labels[i] = NoiseCluster
		}
	}
	return labels
}

func neighborhoodBox(p point.Point, halfSpan []float64) point.Box {
	dim := p.Dim()
	min := make([]float64, dim)
	max := make([]float64, dim)
	for i := 0; i < dim; i++ {
		min[i] = p.At(i) - halfSpan[i]
		max[i] = p.At(i) + halfSpan[i]
	}
	return point.Box{Min: point.Point{V: min}, Max: point.Point{V: max}}
}

// regionQuery returns the indices (into pts) of every point within the
// neighborhood box around pts[idx], after the optional ellipsoidal
// refinement.
func regionQuery(pts []point.Point, index *rtree.Tree[int], idx int, params Params) []int {
	box := neighborhoodBox(pts[idx], params.HalfSpan)
	hits := index.FindPointsInsideBox(box)

	out := make([]int, 0, len(hits))
	for _, e := range hits {
		if params.EuclideanRefine && !insideEllipsoid(pts[idx], e.Geometry, params.HalfSpan) {
			continue
		}
		out = append(out, e.Payload)
	}
	return out
}

func insideEllipsoid(center, p point.Point, halfSpan []float64) bool {
	sumSq := 0.0
	for i := 0; i < center.Dim(); i++ {
		norm := (p.At(i) - center.At(i)) / halfSpan[i]
		sumSq += norm * norm
	}
	return sumSq <= 1
}

// expandCluster grows clusterID from seed core point seedIdx, using a
// FIFO queue over neighbor indices — border points are labeled but not
// themselves expanded; only points that turn out to be core points
// contribute their own neighbors to the queue.
func expandCluster(pts []point.Point, index *rtree.Tree[int], labels []int,
	seedIdx int, neighbors []int, clusterID int, params Params) {

	labels[seedIdx] = clusterID
	queue := append([]int{}, neighbors...)

	for j := 0; j < len(queue); j++ {
		idx := queue[j]
		if labels[idx] == tentativeNoise {
			labels[idx] = clusterID
		}
		if labels[idx] != unvisited {
			continue
		}
		labels[idx] = clusterID

		more := regionQuery(pts, index, idx, params)
		if len(more) >= params.MinPoints {
			queue = append(queue, more...)
		}
	}
}

// ClusterMembers reshapes labels into per-cluster membership lists
// ordered by ascending cluster id (noise, label 0, is excluded). The
// returned slice is indexed by (clusterID - 1).
func ClusterMembers(labels []int) [][]int {
	maxID := 0
	for _, l := range labels {
		if l > maxID {
			maxID = l
		}
	}
	if maxID == 0 {
		return nil
	}
	out := make([][]int, maxID)
	for i, l := range labels {
		if l > 0 {
			out[l-1] = append(out[l-1], i)
		}
	}
	return out
}
