package geometry

import (
	"sort"
	"time"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain"
	"github.com/sandialabs/tracktable-go/internal/tracktable/trajectory"
)

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// PointAtLengthFraction returns the point on traj whose cumulative arc
// length equals f*Length(traj), f in [0,1] (out-of-range f is clamped).
// f=0 returns the first point exactly; f=1 returns the last point
// exactly. Segment-local interpolation is used between sample points.
func PointAtLengthFraction(d geodomain.Domain, traj *trajectory.Trajectory, f float64) trajectory.Point {
	f = clampFraction(f)
	n := traj.Len()
	if n == 0 {
		return trajectory.Point{}
	}
	if n == 1 || f == 0 {
		return traj.First()
	}
	if f == 1 {
		return traj.Last()
	}
	target := f * Length(d, traj)

	idx := sort.Search(n, func(i int) bool { return traj.At(i).CurrentLength >= target })
	if idx <= 0 {
		return traj.First()
	}
	if idx >= n {
		return traj.Last()
	}
	prev := traj.At(idx - 1)
	next := traj.At(idx)
	segLen := next.CurrentLength - prev.CurrentLength
	var localT float64
	if segLen > 0 {
		localT = (target - prev.CurrentLength) / segLen
	}
	return interpolateTrajectoryPoint(d, prev, next, localT)
}

// PointAtTimeFraction is PointAtLengthFraction's time-domain counterpart:
// it returns the point at fraction f of traj's duration.
func PointAtTimeFraction(d geodomain.Domain, traj *trajectory.Trajectory, f float64) trajectory.Point {
	f = clampFraction(f)
	if traj.Empty() {
		return trajectory.Point{}
	}
	target := traj.StartTime().Add(time.Duration(f * float64(traj.Duration())))
	return PointAtTime(d, traj, target)
}

// TimeAtFraction returns the instant at arc-length fraction f — the
// inverse of PointAtLengthFraction with respect to time.
func TimeAtFraction(d geodomain.Domain, traj *trajectory.Trajectory, f float64) time.Time {
	p := PointAtLengthFraction(d, traj, f)
	return p.Timestamp
}

// PointAtTime binary-searches traj's points by timestamp. If t falls
// between two adjacent points, space and time are linearly interpolated.
// Outside traj's span, t clamps to the nearest endpoint (silently — see
// DESIGN.md Open Question O2).
func PointAtTime(d geodomain.Domain, traj *trajectory.Trajectory, t time.Time) trajectory.Point {
	n := traj.Len()
	if n == 0 {
		return trajectory.Point{}
	}
	if !t.After(traj.StartTime()) {
		return traj.First()
	}
	if !t.Before(traj.EndTime()) {
		return traj.Last()
	}

	idx := sort.Search(n, func(i int) bool { return !traj.At(i).Timestamp.Before(t) })
	if idx <= 0 {
		return traj.First()
	}
	if idx >= n {
		return traj.Last()
	}
	prev := traj.At(idx - 1)
	next := traj.At(idx)
	if prev.Timestamp.Equal(next.Timestamp) {
		return prev
	}
	span := next.Timestamp.Sub(prev.Timestamp)
	localT := float64(t.Sub(prev.Timestamp)) / float64(span)
	return interpolateTrajectoryPoint(d, prev, next, localT)
}

func interpolateTrajectoryPoint(d geodomain.Domain, prev, next trajectory.Point, localT float64) trajectory.Point {
	pos := d.Interpolate(prev.Point, next.Point, localT)
	span := next.Timestamp.Sub(prev.Timestamp)
	ts := prev.Timestamp.Add(time.Duration(localT * float64(span)))
	return trajectory.Point{
		Point:         pos,
		ObjectID:      prev.ObjectID,
		Timestamp:     ts,
		CurrentLength: prev.CurrentLength + d.Distance(prev.Point, pos),
		Props:         prev.Props.Clone(),
	}
}

// SubsetDuringInterval returns a new trajectory containing synthesized
// endpoints at t0 and t1 plus all original points strictly between them.
// It preserves the parent trajectory's property map.
func SubsetDuringInterval(d geodomain.Domain, traj *trajectory.Trajectory, t0, t1 time.Time) (*trajectory.Trajectory, error) {
	out := trajectory.New(traj.Domain())
	*out.Properties() = traj.Properties().Clone()

	start := PointAtTime(d, traj, t0)
	if err := out.Append(start); err != nil {
		return nil, err
	}
	for i := 0; i < traj.Len(); i++ {
		p := traj.At(i)
		if p.Timestamp.After(t0) && p.Timestamp.Before(t1) {
			if err := out.Append(p); err != nil {
				return nil, err
			}
		}
	}
	end := PointAtTime(d, traj, t1)
	if end.Timestamp.After(out.Last().Timestamp) {
		if err := out.Append(end); err != nil {
			return nil, err
		}
	}
	return out, nil
}
