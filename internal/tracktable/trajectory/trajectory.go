// Package trajectory implements the trajectory container: an ordered
// sequence of trajectory points sharing an object identifier, a property
// map, and a UUID. The container owns its points exclusively, the way
// the teacher's Tracker owns each TrackedObject.History []TrackPoint
// (internal/lidar/tracking.go) — but generalized from a single Kalman
// track in one fixed frame to a domain-parametric sequence that works
// over any geodomain.Domain.
package trajectory

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain"
	"github.com/sandialabs/tracktable-go/internal/tracktable/idgen"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
	"github.com/sandialabs/tracktable-go/internal/tracktable/property"
)

// ErrNonMonotonicTimestamp is returned by Append/InsertAt when a point
// would break the trajectory's non-decreasing timestamp invariant.
// spec.md §9 Open Question (i) is resolved as reject: see DESIGN.md O1.
var ErrNonMonotonicTimestamp = errors.New("trajectory: point timestamp precedes its predecessor")

// ErrIndexOutOfRange is returned by indexing operations given an
// out-of-bounds index.
var ErrIndexOutOfRange = errors.New("trajectory: index out of range")

// Point is a base point extended with an object identifier, a timestamp,
// a cumulative arc-length accumulator maintained by the container (never
// by the point in isolation), and a property map.
type Point struct {
	point.Point
	ObjectID      string
	Timestamp     time.Time
	CurrentLength float64
	Props         property.Map
}

// Trajectory is an ordered sequence of Points sharing (by convention) one
// object ID, plus a property map and a UUID.
type Trajectory struct {
	domain geodomain.Domain
	points []Point
	props  property.Map
	id     uuid.UUID
}

// New constructs an empty trajectory in the given domain, with a fresh
// random UUID.
func New(domain geodomain.Domain) *Trajectory {
	return &Trajectory{
		domain: domain,
		props:  property.NewMap(),
		id:     idgen.New(),
	}
}

// NewNoUUID constructs an empty trajectory with the nil UUID. UUID()
// returns the nil UUID until SetUUID or RegenerateUUID is called.
func NewNoUUID(domain geodomain.Domain) *Trajectory {
	return &Trajectory{
		domain: domain,
		props:  property.NewMap(),
	}
}

// Domain returns the trajectory's coordinate domain.
func (t *Trajectory) Domain() geodomain.Domain { return t.domain }

// Len returns the number of points.
func (t *Trajectory) Len() int { return len(t.points) }

// Empty reports whether the trajectory has no points.
func (t *Trajectory) Empty() bool { return len(t.points) == 0 }

// At returns the point at index i.
func (t *Trajectory) At(i int) Point { return t.points[i] }

// First returns the first point. Panics if the trajectory is empty.
func (t *Trajectory) First() Point { return t.points[0] }

// Last returns the last point. Panics if the trajectory is empty.
func (t *Trajectory) Last() Point { return t.points[len(t.points)-1] }

// Properties returns a pointer to the trajectory's property map, allowing
// callers to read and mutate it in place.
func (t *Trajectory) Properties() *property.Map { return &t.props }

// UUID returns the trajectory's UUID (the nil UUID if constructed with
// NewNoUUID and never explicitly set).
func (t *Trajectory) UUID() uuid.UUID { return t.id }

// SetUUID assigns an explicit UUID.
func (t *Trajectory) SetUUID(id uuid.UUID) { t.id = id }

// RegenerateUUID assigns a fresh random UUID from the process-wide
// generator (package idgen).
func (t *Trajectory) RegenerateUUID() { t.id = idgen.New() }

// Append adds p to the end of the trajectory, updating its current-length
// accumulator. Returns ErrNonMonotonicTimestamp if p's timestamp precedes
// the current last point's.
func (t *Trajectory) Append(p Point) error {
	if len(t.points) > 0 {
		last := t.points[len(t.points)-1]
		if p.Timestamp.Before(last.Timestamp) {
			return ErrNonMonotonicTimestamp
		}
		p.CurrentLength = last.CurrentLength + t.domain.Distance(last.Point, p.Point)
	} else {
		p.CurrentLength = 0
	}
	t.points = append(t.points, p)
	return nil
}

// InsertAt inserts p at index i, shifting subsequent points right, and
// recomputes every current-length accumulator from i onward. Returns
// ErrIndexOutOfRange if i is not in [0, Len()], or
// ErrNonMonotonicTimestamp if the insertion would violate the
// non-decreasing timestamp invariant relative to its new neighbors.
func (t *Trajectory) InsertAt(i int, p Point) error {
	if i < 0 || i > len(t.points) {
		return ErrIndexOutOfRange
	}
	if i > 0 && p.Timestamp.Before(t.points[i-1].Timestamp) {
		return ErrNonMonotonicTimestamp
	}
	if i < len(t.points) && t.points[i].Timestamp.Before(p.Timestamp) {
		return ErrNonMonotonicTimestamp
	}
	t.points = append(t.points, Point{})
	copy(t.points[i+1:], t.points[i:])
	t.points[i] = p
	t.recomputeLengthsFrom(i)
	return nil
}

func (t *Trajectory) recomputeLengthsFrom(i int) {
	for k := i; k < len(t.points); k++ {
		if k == 0 {
			t.points[k].CurrentLength = 0
			continue
		}
		prev := t.points[k-1]
		t.points[k].CurrentLength = prev.CurrentLength + t.domain.Distance(prev.Point, t.points[k].Point)
	}
}

// StartTime returns the timestamp of the first point, or the zero instant
// if the trajectory is empty.
func (t *Trajectory) StartTime() time.Time {
	if t.Empty() {
		return time.Time{}
	}
	return t.points[0].Timestamp
}

// EndTime returns the timestamp of the last point, or the zero instant if
// the trajectory is empty.
func (t *Trajectory) EndTime() time.Time {
	if t.Empty() {
		return time.Time{}
	}
	return t.points[len(t.points)-1].Timestamp
}

// Duration returns EndTime() - StartTime().
func (t *Trajectory) Duration() time.Duration {
	return t.EndTime().Sub(t.StartTime())
}

// ObjectID returns the object identifier of the first point, or "" if the
// trajectory is empty.
func (t *Trajectory) ObjectID() string {
	if t.Empty() {
		return ""
	}
	return t.points[0].ObjectID
}

// TrajectoryID derives the text identifier "<object_id>_<start>_<end>"
// with timestamps formatted YYYYMMDDHHMMSS, per spec.md §3/§6. It is
// recomputed on every call, never cached, so it cannot go stale.
func (t *Trajectory) TrajectoryID() string {
	const layout = "20060102150405"
	if t.Empty() {
		zero := time.Unix(0, 0).UTC()
		return fmt.Sprintf("_%s_%s", zero.Format(layout), zero.Format(layout))
	}
	return fmt.Sprintf("%s_%s_%s", t.ObjectID(), t.StartTime().UTC().Format(layout), t.EndTime().UTC().Format(layout))
}

// Slice returns a new trajectory containing points [begin, end), sharing
// a clone of the parent's property map. The parent's UUID is not copied;
// the slice gets a fresh UUID.
func (t *Trajectory) Slice(begin, end int) (*Trajectory, error) {
	if begin < 0 || end > len(t.points) || begin > end {
		return nil, ErrIndexOutOfRange
	}
	out := New(t.domain)
	out.props = t.props.Clone()
	for _, p := range t.points[begin:end] {
		// Re-append through Append so CurrentLength is recomputed relative
		// to the slice's own first point, matching invariant 1.
		cp := p
		if err := out.Append(cp); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Clone returns a deep copy of t, including its UUID.
func (t *Trajectory) Clone() *Trajectory {
	out := &Trajectory{
		domain: t.domain,
		points: make([]Point, len(t.points)),
		props:  t.props.Clone(),
		id:     t.id,
	}
	for i, p := range t.points {
		cp := p
		cp.Point = p.Point.Clone()
		cp.Props = p.Props.Clone()
		out.points[i] = cp
	}
	return out
}

// Equal reports whether t and other have pointwise-equal points (same
// coordinates, object ID, timestamp, and property map) and equal
// trajectory-level property maps. The UUID is deliberately excluded, per
// spec.md §4.C and DESIGN.md Open Question O4.
func (t *Trajectory) Equal(other *Trajectory) bool {
	if other == nil {
		return false
	}
	if !t.props.Equal(other.props) {
		return false
	}
	if len(t.points) != len(other.points) {
		return false
	}
	for i := range t.points {
		a, b := t.points[i], other.points[i]
		if !a.Point.Equal(b.Point) {
			return false
		}
		if a.ObjectID != b.ObjectID {
			return false
		}
		if !a.Timestamp.Equal(b.Timestamp) {
			return false
		}
		if !a.Props.Equal(b.Props) {
			return false
		}
	}
	return true
}

// IdentityEqual is Equal plus a UUID comparison, for callers (e.g.
// deduplication pipelines) that need UUID-sensitive equality — see
// DESIGN.md Open Question O4.
func (t *Trajectory) IdentityEqual(other *Trajectory) bool {
	return other != nil && t.id == other.id && t.Equal(other)
}
