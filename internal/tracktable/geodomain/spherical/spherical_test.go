package spherical

import (
	"math"
	"testing"

	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
)

// S1 from spec.md §8: Albuquerque to El Paso.
func TestDistanceAlbuquerqueElPaso(t *testing.T) {
	abq := point.New(-106.6504, 35.0844)
	elPaso := point.New(-106.4850, 31.7619)
	got := Default.Distance(abq, elPaso)
	want := 369.764
	if math.Abs(got-want) > 0.5 {
		t.Errorf("Distance = %v, want ~%v", got, want)
	}
}

func TestBearingUndefinedForCoincidentPoints(t *testing.T) {
	p := point.New(10, 20)
	if !math.IsNaN(Default.Bearing(p, p)) {
		t.Fatal("Bearing of coincident points must be NaN")
	}
}

func TestBearingRange(t *testing.T) {
	p := point.New(-106.6504, 35.0844)
	q := point.New(-106.4850, 31.7619)
	b := Default.Bearing(p, q)
	if b < 0 || b >= 360 {
		t.Errorf("Bearing = %v, want value in [0, 360)", b)
	}
}

// S5-style invariant 5 from spec.md §8: reckon inverts distance+bearing.
func TestReckonInvertsDistanceAndBearing(t *testing.T) {
	p := point.New(-106.6504, 35.0844)
	q := point.New(-106.4850, 31.7619)
	d := Default.Distance(p, q)
	b := Default.Bearing(p, q)
	got := Default.Reckon(p, d, b)
	if math.Abs(got.At(0)-q.At(0)) > 1e-4 || math.Abs(got.At(1)-q.At(1)) > 1e-4 {
		t.Errorf("Reckon(p, distance(p,q), bearing(p,q)) = %v, want ~%v", got.V, q.V)
	}
}

func TestInterpolateClampsOutsideUnitInterval(t *testing.T) {
	p := point.New(0, 0)
	q := point.New(10, 10)
	start := Default.Interpolate(p, q, -5)
	end := Default.Interpolate(p, q, 5)
	if !start.Equal(p) {
		t.Errorf("Interpolate(t<0) = %v, want p", start.V)
	}
	if !end.Equal(q) {
		t.Errorf("Interpolate(t>1) = %v, want q", end.V)
	}
}

func TestTurnAngleZeroOnCoincidentPoints(t *testing.T) {
	a := point.New(0, 0)
	b := point.New(1, 1)
	if got := Default.SignedTurnAngle(a, a, b); got != 0 {
		t.Errorf("SignedTurnAngle with coincident points = %v, want 0", got)
	}
}
