package geometry

import (
	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain"
	"github.com/sandialabs/tracktable-go/internal/tracktable/trajectory"
)

// Simplify reduces traj with the Douglas-Peucker algorithm, using d's
// distance function to measure perpendicular deviation. It always keeps
// the first and last points exactly, and preserves the host trajectory's
// property map verbatim. tolerance is in the domain's distance unit.
// Simplify(traj, 0) returns a trajectory equal to traj up to numeric
// equality (every point survives, since zero tolerance never admits a
// reduction).
func Simplify(d geodomain.Domain, traj *trajectory.Trajectory, tolerance float64) (*trajectory.Trajectory, error) {
	n := traj.Len()
	out := trajectory.New(traj.Domain())
	*out.Properties() = traj.Properties().Clone()

	if n == 0 {
		return out, nil
	}
	if n <= 2 || tolerance <= 0 {
		for i := 0; i < n; i++ {
			if err := out.Append(traj.At(i)); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	keep := make([]bool, n)
	keep[0] = true
	keep[n-1] = true
	douglasPeucker(d, traj, 0, n-1, tolerance, keep)

	for i := 0; i < n; i++ {
		if keep[i] {
			if err := out.Append(traj.At(i)); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// douglasPeucker recursively marks points to keep between indices lo and
// hi (inclusive), both of which are already marked kept by the caller.
func douglasPeucker(d geodomain.Domain, traj *trajectory.Trajectory, lo, hi int, tolerance float64, keep []bool) {
	if hi <= lo+1 {
		return
	}
	a := traj.At(lo).Point
	b := traj.At(hi).Point

	maxDist := -1.0
	maxIdx := -1
	for i := lo + 1; i < hi; i++ {
		dist := distancePointToSegment(d, traj.At(i).Point, a, b)
		if dist > maxDist {
			maxDist = dist
			maxIdx = i
		}
	}

	if maxDist > tolerance {
		keep[maxIdx] = true
		douglasPeucker(d, traj, lo, maxIdx, tolerance, keep)
		douglasPeucker(d, traj, maxIdx, hi, tolerance, keep)
	}
}
