package rtree

import (
	"sort"
	"testing"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain/flat2d"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
)

func gridEntries(n int) []Entry[int] {
	out := make([]Entry[int], 0, n*n)
	id := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out = append(out, Entry[int]{Geometry: point.New(float64(i), float64(j)), Payload: id})
			id++
		}
	}
	return out
}

func TestInsertAndSize(t *testing.T) {
	tr := New[int]()
	if !tr.Empty() {
		t.Fatalf("new tree should be empty")
	}
	for _, e := range gridEntries(10) {
		tr.Insert(e)
	}
	if tr.Size() != 100 {
		t.Fatalf("size = %d, want 100", tr.Size())
	}
}

func TestBulkLoadMatchesInsert(t *testing.T) {
	entries := gridEntries(8)
	bulk := BulkLoad(entries)
	if bulk.Size() != len(entries) {
		t.Fatalf("bulk size = %d, want %d", bulk.Size(), len(entries))
	}

	box, err := point.NewBox(point.New(2, 2), point.New(5, 5))
	if err != nil {
		t.Fatalf("box: %v", err)
	}
	got := bulk.FindPointsInsideBox(box)

	byInsert := New[int]()
	byInsert.InsertRange(entries)
	want := byInsert.FindPointsInsideBox(box)

	if len(got) != len(want) {
		t.Fatalf("bulk-loaded query returned %d hits, inserted tree returned %d", len(got), len(want))
	}
}

func TestFindPointsInsideBox(t *testing.T) {
	tr := BulkLoad(gridEntries(10))
	box, err := point.NewBox(point.New(3, 3), point.New(6, 6))
	if err != nil {
		t.Fatalf("box: %v", err)
	}
	got := tr.FindPointsInsideBox(box)
	want := 4 * 4 // x,y in {3,4,5,6}
	if len(got) != want {
		t.Fatalf("got %d points, want %d", len(got), want)
	}
	for _, e := range got {
		if !box.Contains(e.Geometry) {
			t.Errorf("point %v returned but not covered by box", e.Geometry)
		}
	}
}

func TestFindPointsStrictlyInsideBox(t *testing.T) {
	tr := BulkLoad(gridEntries(10))
	box, err := point.NewBox(point.New(3, 3), point.New(6, 6))
	if err != nil {
		t.Fatalf("box: %v", err)
	}
	got := tr.FindPointsStrictlyInsideBox(box)
	want := 2 * 2 // x,y strictly in {4,5}
	if len(got) != want {
		t.Fatalf("got %d strictly-inside points, want %d", len(got), want)
	}
}

func TestRemove(t *testing.T) {
	entries := gridEntries(5)
	tr := New[int]()
	tr.InsertRange(entries)
	before := tr.Size()

	target := entries[7]
	if !tr.Remove(target) {
		t.Fatalf("expected to remove an existing entry")
	}
	if tr.Size() != before-1 {
		t.Fatalf("size after remove = %d, want %d", tr.Size(), before-1)
	}
	if tr.Remove(target) {
		t.Fatalf("removing the same entry twice should fail the second time")
	}

	box, _ := point.NewBox(point.New(-100, -100), point.New(100, 100))
	for _, e := range tr.FindPointsInsideBox(box) {
		if e.Payload == target.Payload {
			t.Fatalf("removed entry still present in the tree")
		}
	}
}

func TestRemoveRange(t *testing.T) {
	entries := gridEntries(5)
	tr := New[int]()
	tr.InsertRange(entries)

	toRemove := entries[:5]
	n := tr.RemoveRange(toRemove)
	if n != 5 {
		t.Fatalf("removed %d entries, want 5", n)
	}
	if tr.Size() != 20 {
		t.Fatalf("size after RemoveRange = %d, want 20", tr.Size())
	}
}

func TestClear(t *testing.T) {
	tr := New[int]()
	tr.InsertRange(gridEntries(4))
	tr.Clear()
	if !tr.Empty() || tr.Size() != 0 {
		t.Fatalf("expected empty tree after Clear")
	}
}

func TestFindNearestNeighbors(t *testing.T) {
	d := flat2d.Default
	tr := BulkLoad(gridEntries(10))
	origin := point.New(4.5, 4.5)

	got := tr.FindNearestNeighbors(d, origin, 4)
	if len(got) != 4 {
		t.Fatalf("got %d neighbors, want 4", len(got))
	}

	dists := make([]float64, len(got))
	for i, e := range got {
		dists[i] = d.Distance(origin, e.Geometry)
	}
	if !sort.Float64sAreSorted(dists) {
		t.Errorf("nearest neighbors not returned in ascending distance order: %v", dists)
	}

	// The four grid points surrounding (4.5, 4.5) are all at distance
	// sqrt(0.5) from it, and are strictly nearer than anything else.
	want := 0.5*0.5 + 0.5*0.5
	almostEqual(t, dists[0]*dists[0], want, 1e-9)
}

func TestFindNearestNeighbors_IncludesExactMatch(t *testing.T) {
	d := flat2d.Default
	tr := BulkLoad(gridEntries(5))
	got := tr.FindNearestNeighbors(d, point.New(2, 2), 1)
	if len(got) != 1 {
		t.Fatalf("got %d neighbors, want 1", len(got))
	}
	if d.Distance(point.New(2, 2), got[0].Geometry) != 0 {
		t.Errorf("expected the query point itself as the nearest neighbor")
	}
}

func almostEqual(t *testing.T, got, want, tol float64) {
	t.Helper()
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	if diff > tol {
		t.Fatalf("got %v, want %v (tol %v)", got, want, tol)
	}
}
