package generators

import (
	"math"
	"testing"
	"time"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain/flat2d"
	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain/spherical"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
)

// TestConstantHeading_RoundTripDistance is spec scenario S6: a
// constant-speed generator starting at Albuquerque, heading toward Las
// Cruces, speed 42 m/s, interval 60s; after 100 points the straight-line
// distance from start to the 100th point (99 intervals of travel) should
// be about 99 * speed * interval.
func TestConstantHeading_RoundTripDistance(t *testing.T) {
	d := spherical.Default
	albuquerque := point.New(-106.6504, 35.0844)
	lasCruces := point.New(-106.7637, 32.3199)
	heading := d.Bearing(albuquerque, lasCruces)

	const speedMetersPerSec = 42.0
	cfg := Config{
		Domain:   d,
		Origin:   albuquerque,
		ObjectID: "s6",
		Start:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval: 60 * time.Second,
		Speed:    speedMetersPerSec / 1000.0,
		Count:    100,
	}
	gen := NewConstantHeadingGenerator(cfg, heading)

	var last point.Point
	n := 0
	for {
		p, ok := gen.Next()
		if !ok {
			break
		}
		last = p.Point
		n++
	}
	if n != 100 {
		t.Fatalf("got %d points, want 100", n)
	}

	got := d.Distance(albuquerque, last)
	want := 99 * (speedMetersPerSec / 1000.0) * 60.0
	if math.Abs(got-want) > 0.05 {
		t.Errorf("round-trip distance = %v km, want %v km (+/- 0.05)", got, want)
	}
}

func TestConstantHeading_TimestampsAdvance(t *testing.T) {
	d := flat2d.Default
	cfg := Config{
		Domain:   d,
		Origin:   point.New(0, 0),
		ObjectID: "a",
		Start:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval: 10 * time.Second,
		Speed:    1,
		Count:    5,
	}
	gen := NewConstantHeadingGenerator(cfg, 90)
	var prev time.Time
	for i := 0; i < 5; i++ {
		p, ok := gen.Next()
		if !ok {
			t.Fatalf("generator exhausted early at step %d", i)
		}
		if i > 0 && !p.Timestamp.After(prev) {
			t.Errorf("step %d: timestamp did not advance", i)
		}
		prev = p.Timestamp
	}
	if _, ok := gen.Next(); ok {
		t.Errorf("expected generator to be exhausted after Count points")
	}
}

func TestCircular_ReturnsNearOriginAfterFullTurn(t *testing.T) {
	d := flat2d.Default
	const turnRate = 9.0 // degrees per second; 360/9 = 40s to complete a circle
	interval := time.Second
	steps := int(360/turnRate) + 1

	cfg := Config{
		Domain:   d,
		Origin:   point.New(0, 0),
		ObjectID: "circle",
		Start:    time.Unix(0, 0).UTC(),
		Interval: interval,
		Speed:    1,
		Count:    steps,
	}
	gen := NewCircularGenerator(cfg, 0, turnRate)
	var last point.Point
	for i := 0; i < steps; i++ {
		p, ok := gen.Next()
		if !ok {
			t.Fatalf("generator exhausted early")
		}
		last = p.Point
	}
	if got := d.Distance(point.New(0, 0), last); got > 0.5 {
		t.Errorf("expected the circular path to return near the origin, got distance %v", got)
	}
}

func TestGrid_TurnsEveryNSteps(t *testing.T) {
	d := flat2d.Default
	cfg := Config{
		Domain:   d,
		Origin:   point.New(0, 0),
		ObjectID: "grid",
		Start:    time.Unix(0, 0).UTC(),
		Interval: time.Second,
		Speed:    1,
		Count:    5,
	}
	gen := NewGridGenerator(cfg, 0, 2)
	var pts []point.Point
	for i := 0; i < 5; i++ {
		p, ok := gen.Next()
		if !ok {
			t.Fatalf("generator exhausted early")
		}
		pts = append(pts, p.Point)
	}
	// Heading 0 (north, +Y) for steps 1-2, then a 90 degree clockwise turn
	// before step 3: the leg from point 2 to point 3 should move in X,
	// not Y.
	dy := pts[1].At(1) - pts[0].At(1)
	if dy <= 0 {
		t.Fatalf("expected northward travel on the first leg, got dy=%v", dy)
	}
	dx := pts[3].At(0) - pts[2].At(0)
	if math.Abs(dx) < 0.5 {
		t.Errorf("expected an eastward turn after %d steps, got dx=%v", 2, dx)
	}
}

// TestGrid_AlternatesTurnDirection pins down the raster/lawnmower shape:
// successive turns must alternate direction (clockwise, then
// counter-clockwise) so the path zigzags between two headings, rather
// than turning the same way every time and spiraling outward.
func TestGrid_AlternatesTurnDirection(t *testing.T) {
	d := flat2d.Default
	cfg := Config{
		Domain:   d,
		Origin:   point.New(0, 0),
		ObjectID: "grid",
		Start:    time.Unix(0, 0).UTC(),
		Interval: time.Second,
		Speed:    1,
		Count:    7,
	}
	gen := NewGridGenerator(cfg, 0, 2)
	var pts []point.Point
	for i := 0; i < 7; i++ {
		p, ok := gen.Next()
		if !ok {
			t.Fatalf("generator exhausted early")
		}
		pts = append(pts, p.Point)
	}

	// First leg after the first turn (points 2->3) heads east.
	firstLegDX := pts[3].At(0) - pts[2].At(0)
	firstLegDY := pts[3].At(1) - pts[2].At(1)
	if firstLegDX <= 0.5 || math.Abs(firstLegDY) > 1e-9 {
		t.Fatalf("expected the first turn to head east, got dx=%v dy=%v", firstLegDX, firstLegDY)
	}

	// The second turn must reverse direction back to north, not continue
	// rotating the same way (which would head south instead).
	secondLegDX := pts[5].At(0) - pts[4].At(0)
	secondLegDY := pts[5].At(1) - pts[4].At(1)
	if secondLegDY <= 0.5 || math.Abs(secondLegDX) > 1e-9 {
		t.Fatalf("expected the second turn to head back north (zigzag), got dx=%v dy=%v", secondLegDX, secondLegDY)
	}
}

func TestCollator_MergesByTimestamp(t *testing.T) {
	d := flat2d.Default
	base := time.Unix(0, 0).UTC()
	a := NewConstantHeadingGenerator(Config{
		Domain: d, Origin: point.New(0, 0), ObjectID: "a",
		Start: base, Interval: 10 * time.Second, Speed: 1, Count: 3,
	}, 0)
	b := NewConstantHeadingGenerator(Config{
		Domain: d, Origin: point.New(100, 100), ObjectID: "b",
		Start: base.Add(5 * time.Second), Interval: 10 * time.Second, Speed: 1, Count: 3,
	}, 0)

	c, err := NewCollator(a, b)
	if err != nil {
		t.Fatalf("NewCollator: %v", err)
	}
	merged, err := c.Collate()
	if err != nil {
		t.Fatalf("Collate: %v", err)
	}
	if len(merged) != 6 {
		t.Fatalf("got %d points, want 6", len(merged))
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].Timestamp.Before(merged[i-1].Timestamp) {
			t.Fatalf("points not in global timestamp order at index %d", i)
		}
	}
}

func TestCollator_ExhaustedReturnsError(t *testing.T) {
	d := flat2d.Default
	a := NewConstantHeadingGenerator(Config{
		Domain: d, Origin: point.New(0, 0), ObjectID: "a",
		Start: time.Unix(0, 0).UTC(), Interval: time.Second, Speed: 1, Count: 1,
	}, 0)
	c, err := NewCollator(a)
	if err != nil {
		t.Fatalf("NewCollator: %v", err)
	}
	if _, err := c.Next(); err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if _, err := c.Next(); err != ErrNoGeneratedPoints {
		t.Errorf("got %v, want ErrNoGeneratedPoints", err)
	}
}

func TestNewCollator_RequiresGenerators(t *testing.T) {
	if _, err := NewCollator(); err != ErrNoGenerators {
		t.Errorf("got %v, want ErrNoGenerators", err)
	}
	if _, err := NewCollator(nil); err != ErrNilGenerator {
		t.Errorf("got %v, want ErrNilGenerator", err)
	}
}
