package point

// Polyline is an ordered, possibly empty, open sequence of same-dimension
// points.
type Polyline struct {
	Points []Point
}

// NewPolyline wraps pts as a Polyline. The slice is not copied; callers
// that need an independent polyline should Clone it.
func NewPolyline(pts ...Point) Polyline {
	return Polyline{Points: pts}
}

// Len returns the number of points.
func (pl Polyline) Len() int { return len(pl.Points) }

// Empty reports whether the polyline has no points.
func (pl Polyline) Empty() bool { return len(pl.Points) == 0 }

// Clone returns a Polyline with its own backing array and point copies.
func (pl Polyline) Clone() Polyline {
	out := make([]Point, len(pl.Points))
	for i, p := range pl.Points {
		out[i] = p.Clone()
	}
	return Polyline{Points: out}
}
