package flat2d

import (
	"math"
	"testing"

	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
)

func TestDistance(t *testing.T) {
	p := point.New(0, 0)
	q := point.New(3, 4)
	if got := Default.Distance(p, q); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestInterpolateMidpoint(t *testing.T) {
	p := point.New(0, 0)
	q := point.New(10, 0)
	got := Default.Interpolate(p, q, 0.5)
	if !got.Equal(point.New(5, 0)) {
		t.Errorf("Interpolate(0.5) = %v, want (5,0)", got.V)
	}
}

func TestExtrapolateNotClamped(t *testing.T) {
	p := point.New(0, 0)
	q := point.New(10, 0)
	got := Default.Extrapolate(p, q, 2)
	if !got.Equal(point.New(20, 0)) {
		t.Errorf("Extrapolate(2) = %v, want (20,0)", got.V)
	}
}

func TestSpeedBetweenZeroDt(t *testing.T) {
	p := point.New(0, 0)
	q := point.New(1, 0)
	if got := Default.SpeedBetween(p, q, 0); !math.IsNaN(got) {
		t.Errorf("SpeedBetween with dt=0 = %v, want NaN", got)
	}
}

func TestReckonRoundTrip(t *testing.T) {
	origin := point.New(0, 0)
	got := Default.Reckon(origin, 5, 90)
	if math.Abs(Default.Distance(origin, got)-5) > 1e-9 {
		t.Errorf("Reckon distance = %v, want 5", Default.Distance(origin, got))
	}
}
