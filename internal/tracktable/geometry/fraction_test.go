package geometry

import (
	"testing"
	"time"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain/flat2d"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
	"github.com/sandialabs/tracktable-go/internal/tracktable/trajectory"
)

// S5: 2D trajectory [(0,0)@T, (4,1)@T+2h, (8,0)@T+4h].
// f=0.5 -> (4,1) exactly; f=0.25 -> (2, 0.5).
func TestPointAtTimeFraction_S5(t *testing.T) {
	d := flat2d.Default
	traj := trajectory.NewNoUUID(d)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pts := []struct {
		x, y float64
		dh   int
	}{
		{0, 0, 0},
		{4, 1, 2},
		{8, 0, 4},
	}
	for _, p := range pts {
		tp := trajectory.Point{
			Point:     point.New(p.x, p.y),
			ObjectID:  "s5",
			Timestamp: base.Add(time.Duration(p.dh) * time.Hour),
		}
		if err := traj.Append(tp); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	mid := PointAtTimeFraction(d, traj, 0.5)
	almostEqual(t, mid.At(0), 4, 1e-9)
	almostEqual(t, mid.At(1), 1, 1e-9)

	quarter := PointAtTimeFraction(d, traj, 0.25)
	almostEqual(t, quarter.At(0), 2, 1e-9)
	almostEqual(t, quarter.At(1), 0.5, 1e-9)
}

func TestPointAtLengthFraction_Endpoints(t *testing.T) {
	d := flat2d.Default
	traj := trajectory.NewNoUUID(d)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range [][2]float64{{0, 0}, {5, 0}, {10, 0}} {
		p := trajectory.Point{
			Point:     point.New(c[0], c[1]),
			ObjectID:  "len",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		if err := traj.Append(p); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	first := PointAtLengthFraction(d, traj, 0)
	last := PointAtLengthFraction(d, traj, 1)
	if !first.Point.Equal(traj.First().Point) {
		t.Errorf("f=0 should be exactly the first point")
	}
	if !last.Point.Equal(traj.Last().Point) {
		t.Errorf("f=1 should be exactly the last point")
	}
	half := PointAtLengthFraction(d, traj, 0.5)
	almostEqual(t, half.At(0), 5, 1e-9)
}
