package flat3d

import (
	"math"
	"testing"

	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
)

func TestDistance(t *testing.T) {
	p := point.New(0, 0, 0)
	q := point.New(2, 3, 6)
	if got := Default.Distance(p, q); got != 7 {
		t.Errorf("Distance = %v, want 7", got)
	}
}

func TestInterpolateMidpoint(t *testing.T) {
	p := point.New(0, 0, 0)
	q := point.New(10, 0, 10)
	got := Default.Interpolate(p, q, 0.5)
	if !got.Equal(point.New(5, 0, 5)) {
		t.Errorf("Interpolate(0.5) = %v, want (5,0,5)", got.V)
	}
}

func TestInterpolateClampsFraction(t *testing.T) {
	p := point.New(0, 0, 0)
	q := point.New(10, 0, 0)
	if got := Default.Interpolate(p, q, -1); !got.Equal(p) {
		t.Errorf("Interpolate(-1) = %v, want origin", got.V)
	}
	if got := Default.Interpolate(p, q, 2); !got.Equal(q) {
		t.Errorf("Interpolate(2) = %v, want destination", got.V)
	}
}

func TestExtrapolateNotClamped(t *testing.T) {
	p := point.New(0, 0, 0)
	q := point.New(10, 0, 0)
	got := Default.Extrapolate(p, q, 2)
	if !got.Equal(point.New(20, 0, 0)) {
		t.Errorf("Extrapolate(2) = %v, want (20,0,0)", got.V)
	}
}

func TestSpeedBetweenZeroDt(t *testing.T) {
	p := point.New(0, 0, 0)
	q := point.New(1, 0, 0)
	if got := Default.SpeedBetween(p, q, 0); !math.IsNaN(got) {
		t.Errorf("SpeedBetween with dt=0 = %v, want NaN", got)
	}
}

func TestSignedTurnAngleRightAngle(t *testing.T) {
	a := point.New(0, 0, 0)
	b := point.New(1, 0, 0)
	c := point.New(1, 1, 0)
	got := Default.SignedTurnAngle(a, b, c)
	if math.Abs(math.Abs(got)-90) > 1e-9 {
		t.Errorf("SignedTurnAngle = %v, want +/-90", got)
	}
}

func TestSignedTurnAngleCoincidentPoints(t *testing.T) {
	a := point.New(0, 0, 0)
	if got := Default.SignedTurnAngle(a, a, point.New(1, 0, 0)); got != 0 {
		t.Errorf("SignedTurnAngle with coincident points = %v, want 0", got)
	}
}

func TestUnsignedTurnAngleIsAbsoluteValue(t *testing.T) {
	a := point.New(0, 0, 0)
	b := point.New(1, 0, 0)
	c := point.New(1, 1, 0)
	signed := Default.SignedTurnAngle(a, b, c)
	unsigned := Default.UnsignedTurnAngle(a, b, c)
	if unsigned != math.Abs(signed) {
		t.Errorf("UnsignedTurnAngle = %v, want |%v|", unsigned, signed)
	}
}
