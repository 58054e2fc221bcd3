package plot

import (
	"strings"
	"testing"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain/flat2d"
	"github.com/sandialabs/tracktable-go/internal/tracktable/trajectory"
)

func TestTrajectoryHTML_RendersSeriesPerTrajectory(t *testing.T) {
	trajs := []*trajectory.Trajectory{
		square("alpha", 0),
		square("bravo", 10),
	}

	doc, err := TrajectoryHTML(flat2d.Default, trajs)
	if err != nil {
		t.Fatalf("TrajectoryHTML: %v", err)
	}
	if !strings.Contains(doc, "<html") {
		t.Error("expected a standalone HTML document")
	}
	if !strings.Contains(doc, "alpha") || !strings.Contains(doc, "bravo") {
		t.Error("expected both trajectory labels to appear in the rendered document")
	}
}

func TestTrajectoryHTML_SkipsEmptyTrajectories(t *testing.T) {
	empty := trajectory.New(flat2d.Default)
	trajs := []*trajectory.Trajectory{empty, square("solo", 0)}

	doc, err := TrajectoryHTML(flat2d.Default, trajs)
	if err != nil {
		t.Fatalf("TrajectoryHTML: %v", err)
	}
	if !strings.Contains(doc, "solo") {
		t.Error("expected the non-empty trajectory's label to appear")
	}
}
