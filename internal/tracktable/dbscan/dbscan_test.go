package dbscan

import (
	"testing"

	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
)

// Two dense clusters on the X axis separated by a wide gap, plus a lone
// noise point, should produce exactly two non-noise clusters with the
// noise point labeled 0.
func TestRun_TwoClustersAndNoise(t *testing.T) {
	var pts []point.Point
	for i := 0; i < 5; i++ {
		pts = append(pts, point.New(float64(i)*0.1, 0))
	}
	for i := 0; i < 5; i++ {
		pts = append(pts, point.New(100+float64(i)*0.1, 0))
	}
	noiseIdx := len(pts)
	pts = append(pts, point.New(50, 50))

	labels := Run(pts, Params{HalfSpan: []float64{0.5, 0.5}, MinPoints: 3})

	if labels[noiseIdx] != NoiseCluster {
		t.Errorf("isolated point should be labeled noise, got %d", labels[noiseIdx])
	}

	firstCluster := labels[0]
	if firstCluster == NoiseCluster {
		t.Fatalf("first dense group should not be noise")
	}
	for i := 0; i < 5; i++ {
		if labels[i] != firstCluster {
			t.Errorf("point %d: got cluster %d, want %d", i, labels[i], firstCluster)
		}
	}

	secondCluster := labels[5]
	if secondCluster == NoiseCluster || secondCluster == firstCluster {
		t.Fatalf("second dense group should form its own non-noise cluster, got %d (first was %d)", secondCluster, firstCluster)
	}
	for i := 5; i < 10; i++ {
		if labels[i] != secondCluster {
			t.Errorf("point %d: got cluster %d, want %d", i, labels[i], secondCluster)
		}
	}
}

func TestRun_AllNoiseWhenMinPointsUnreachable(t *testing.T) {
	pts := []point.Point{
		point.New(0, 0), point.New(10, 10), point.New(20, 20),
	}
	labels := Run(pts, Params{HalfSpan: []float64{1, 1}, MinPoints: 2})
	for i, l := range labels {
		if l != NoiseCluster {
			t.Errorf("point %d: got cluster %d, want noise", i, l)
		}
	}
}

func TestClusterMembers(t *testing.T) {
	labels := []int{1, 2, 1, 0, 2, 1}
	members := ClusterMembers(labels)
	if len(members) != 2 {
		t.Fatalf("got %d clusters, want 2", len(members))
	}
	wantCluster1 := []int{0, 2, 5}
	wantCluster2 := []int{1, 4}
	if !intSliceEqual(members[0], wantCluster1) {
		t.Errorf("cluster 1 members = %v, want %v", members[0], wantCluster1)
	}
	if !intSliceEqual(members[1], wantCluster2) {
		t.Errorf("cluster 2 members = %v, want %v", members[1], wantCluster2)
	}
}

func TestClusterMembers_AllNoise(t *testing.T) {
	if got := ClusterMembers([]int{0, 0, 0}); got != nil {
		t.Errorf("expected nil for all-noise labels, got %v", got)
	}
}

func TestEuclideanRefine_RestrictsToEllipsoid(t *testing.T) {
	center := point.New(0, 0)
	corner := point.New(0.9, 0.9)
	pts := []point.Point{center, corner, corner}

	withoutRefine := Run(pts, Params{HalfSpan: []float64{1, 1}, MinPoints: 3})
	for i, l := range withoutRefine {
		if l == NoiseCluster {
			t.Errorf("point %d unexpectedly noise without refinement: %v", i, withoutRefine)
		}
	}

	withRefine := Run(pts, Params{HalfSpan: []float64{1, 1}, MinPoints: 3, EuclideanRefine: true})
	// corner is outside the inscribed circle (0.9^2+0.9^2=1.62>1), so
	// center no longer has 3 neighbors within the ellipsoid and none of
	// the three points can form a cluster of size >= 3.
	for i, l := range withRefine {
		if l != NoiseCluster {
			t.Errorf("point %d: got cluster %d, want noise under ellipsoidal refinement", i, l)
		}
	}
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
