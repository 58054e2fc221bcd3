package geometry

import (
	"testing"
	"time"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain/flat2d"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
	"github.com/sandialabs/tracktable-go/internal/tracktable/property"
	"github.com/sandialabs/tracktable-go/internal/tracktable/trajectory"
)

// S4: nine-point flat polyline, epsilon 0.01, keeps indices 0, 3, 4, 5, 8.
func TestSimplify_S4(t *testing.T) {
	d := flat2d.Default
	traj := trajectory.NewNoUUID(d)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	coords := [][2]float64{
		{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 5}, {5, 0}, {6, 0}, {7, 0}, {8, 0},
	}
	for i, c := range coords {
		p := trajectory.Point{
			Point:     point.New(c[0], c[1]),
			ObjectID:  "s4",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}
		if err := traj.Append(p); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	traj.Properties().Set("k", property.FromString("v"))

	out, err := Simplify(d, traj, 0.01)
	if err != nil {
		t.Fatalf("simplify: %v", err)
	}

	wantIdx := []int{0, 3, 4, 5, 8}
	if out.Len() != len(wantIdx) {
		t.Fatalf("got %d points, want %d", out.Len(), len(wantIdx))
	}
	for i, wi := range wantIdx {
		want := coords[wi]
		got := out.At(i)
		if got.At(0) != want[0] || got.At(1) != want[1] {
			t.Errorf("point %d: got (%v,%v), want (%v,%v)", i, got.At(0), got.At(1), want[0], want[1])
		}
	}

	if !out.Properties().Equal(*traj.Properties()) {
		t.Errorf("simplified trajectory lost its property map")
	}
}

func TestSimplify_ZeroToleranceKeepsEverything(t *testing.T) {
	d := flat2d.Default
	traj := trajectory.NewNoUUID(d)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range [][2]float64{{0, 0}, {1, 0.5}, {2, 0}, {3, 1}} {
		p := trajectory.Point{
			Point:     point.New(c[0], c[1]),
			ObjectID:  "zero",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}
		if err := traj.Append(p); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	out, err := Simplify(d, traj, 0)
	if err != nil {
		t.Fatalf("simplify: %v", err)
	}
	if out.Len() != traj.Len() {
		t.Fatalf("got %d points, want %d", out.Len(), traj.Len())
	}
}
