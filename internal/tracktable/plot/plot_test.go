package plot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain/flat2d"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
	"github.com/sandialabs/tracktable-go/internal/tracktable/property"
	"github.com/sandialabs/tracktable-go/internal/tracktable/trajectory"
)

func square(objectID string, offset float64) *trajectory.Trajectory {
	tr := trajectory.New(flat2d.Default)
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	corners := [][2]float64{
		{offset, offset},
		{offset + 1, offset},
		{offset + 1, offset + 1},
		{offset, offset + 1},
	}
	for i, c := range corners {
		_ = tr.Append(trajectory.Point{
			Point:     point.New(c[0], c[1]),
			ObjectID:  objectID,
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Props:     property.NewMap(),
		})
	}
	return tr
}

func TestTrajectoryPlot_RendersWithoutError(t *testing.T) {
	trajs := []*trajectory.Trajectory{
		square("alpha", 0),
		square("bravo", 10),
	}

	p, err := TrajectoryPlot(flat2d.Default, trajs)
	if err != nil {
		t.Fatalf("TrajectoryPlot: %v", err)
	}
	if p == nil {
		t.Fatal("TrajectoryPlot returned a nil plot")
	}

	out := filepath.Join(t.TempDir(), "trajectories.png")
	if err := Save(p, out); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat output file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected a non-empty PNG file")
	}
}

func TestTrajectoryPlot_SkipsEmptyTrajectories(t *testing.T) {
	empty := trajectory.New(flat2d.Default)
	trajs := []*trajectory.Trajectory{empty, square("solo", 0)}

	p, err := TrajectoryPlot(flat2d.Default, trajs)
	if err != nil {
		t.Fatalf("TrajectoryPlot: %v", err)
	}
	if p == nil {
		t.Fatal("expected a non-nil plot even with one empty trajectory")
	}
}
