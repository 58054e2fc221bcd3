// Package generators implements synthetic trajectory point sources:
// constant-speed-constant-heading, circular, and grid (raster) generators,
// plus a collator that merges several generators' output into global
// timestamp order. The stateful-source-with-advancing-timestamp shape
// follows internal/lidar/l4perception's synthetic cluster fixtures, and
// destination computation is built entirely on geodomain.Reckoner, the
// domain kernel's great-circle/planar-offset geodesy primitive.
package generators

import (
	"errors"
	"time"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
	"github.com/sandialabs/tracktable-go/internal/tracktable/property"
	"github.com/sandialabs/tracktable-go/internal/tracktable/trajectory"
)

// ErrNoGenerators is returned by NewCollator when given zero generators.
var ErrNoGenerators = errors.New("generators: collator requires at least one generator")

// ErrNilGenerator is returned by NewCollator when given a nil generator.
var ErrNilGenerator = errors.New("generators: nil generator")

// ErrNoGeneratedPoints is returned by Collator.Next once every generator
// has been exhausted.
var ErrNoGeneratedPoints = errors.New("generators: no more generated points")

// Generator is a stateful source of trajectory points with advancing
// timestamps. Next reports false once the generator has produced its
// configured point count; a false result never becomes true again.
type Generator interface {
	Next() (p trajectory.Point, ok bool)
}

// Config holds the parameters common to every generator variant.
type Config struct {
	Domain   geodomain.Reckoner
	Origin   point.Point
	ObjectID string
	Start    time.Time
	Interval time.Duration

	// Speed is expressed in the domain's native distance unit per second
	// (kilometers per second for the spherical domain).
	Speed float64

	// Count is the total number of points the generator will produce,
	// including the origin as point 0.
	Count int
}

func (c Config) stepDistance() float64 {
	return c.Speed * c.Interval.Seconds()
}

// ConstantHeadingGenerator produces a straight-line trajectory at a fixed
// speed and compass heading.
type ConstantHeadingGenerator struct {
	cfg     Config
	heading float64

	emitted int
	last    point.Point
	lastAt  time.Time
}

// NewConstantHeadingGenerator constructs a generator that travels at
// headingDeg from cfg.Origin.
func NewConstantHeadingGenerator(cfg Config, headingDeg float64) *ConstantHeadingGenerator {
	return &ConstantHeadingGenerator{cfg: cfg, heading: headingDeg}
}

// Next returns the generator's next point.
func (g *ConstantHeadingGenerator) Next() (trajectory.Point, bool) {
	if g.emitted >= g.cfg.Count {
		return trajectory.Point{}, false
	}
	if g.emitted == 0 {
		g.last = g.cfg.Origin
		g.lastAt = g.cfg.Start
	} else {
		g.last = g.cfg.Domain.Reckon(g.last, g.cfg.stepDistance(), g.heading)
		g.lastAt = g.lastAt.Add(g.cfg.Interval)
	}
	g.emitted++
	return trajectory.Point{
		Point:     g.last,
		ObjectID:  g.cfg.ObjectID,
		Timestamp: g.lastAt,
		Props:     property.NewMap(),
	}, true
}

// CircularGenerator produces a trajectory that turns at a constant rate,
// tracing an approximate circle. In a flat domain it returns to its
// origin after 360/TurnRateDegPerSec seconds.
type CircularGenerator struct {
	cfg           Config
	heading       float64
	turnRateDegPs float64

	emitted int
	last    point.Point
	lastAt  time.Time
}

// NewCircularGenerator constructs a generator starting at headingDeg and
// turning by turnRateDegPerSec every second.
func NewCircularGenerator(cfg Config, headingDeg, turnRateDegPerSec float64) *CircularGenerator {
	return &CircularGenerator{cfg: cfg, heading: headingDeg, turnRateDegPs: turnRateDegPerSec}
}

// Next returns the generator's next point.
func (g *CircularGenerator) Next() (trajectory.Point, bool) {
	if g.emitted >= g.cfg.Count {
		return trajectory.Point{}, false
	}
	if g.emitted == 0 {
		g.last = g.cfg.Origin
		g.lastAt = g.cfg.Start
	} else {
		g.last = g.cfg.Domain.Reckon(g.last, g.cfg.stepDistance(), g.heading)
		g.lastAt = g.lastAt.Add(g.cfg.Interval)
		g.heading += g.turnRateDegPs * g.cfg.Interval.Seconds()
		g.heading = normalizeDegrees(g.heading)
	}
	g.emitted++
	return trajectory.Point{
		Point:     g.last,
		ObjectID:  g.cfg.ObjectID,
		Timestamp: g.lastAt,
		Props:     property.NewMap(),
	}, true
}

func normalizeDegrees(deg float64) float64 {
	deg = mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func mod(a, b float64) float64 {
	m := a - b*float64(int(a/b))
	return m
}

// GridGenerator synthesizes a raster (lawnmower/boustrophedon) path:
// travel in a straight line for TurnEvery steps, then turn 90 degrees,
// alternating the turn direction (clockwise, then counter-clockwise,
// then clockwise, ...) each time a turn is due. The heading therefore
// zigzags between headingDeg and headingDeg+90 rather than spiraling
// outward the way a same-direction turn every time would.
type GridGenerator struct {
	cfg       Config
	heading   float64
	turnEvery int
	turnSign  float64

	emitted    int
	stepsOnLeg int
	last       point.Point
	lastAt     time.Time
}

// NewGridGenerator constructs a raster generator starting at headingDeg,
// turning 90 degrees every turnEvery steps, alternating turn direction.
func NewGridGenerator(cfg Config, headingDeg float64, turnEvery int) *GridGenerator {
	return &GridGenerator{cfg: cfg, heading: headingDeg, turnEvery: turnEvery, turnSign: 1}
}

// Next returns the generator's next point.
func (g *GridGenerator) Next() (trajectory.Point, bool) {
	if g.emitted >= g.cfg.Count {
		return trajectory.Point{}, false
	}
	if g.emitted == 0 {
		g.last = g.cfg.Origin
		g.lastAt = g.cfg.Start
	} else {
		if g.turnEvery > 0 && g.stepsOnLeg >= g.turnEvery {
			g.heading = normalizeDegrees(g.heading + 90*g.turnSign)
			g.turnSign = -g.turnSign
			g.stepsOnLeg = 0
		}
		g.last = g.cfg.Domain.Reckon(g.last, g.cfg.stepDistance(), g.heading)
		g.lastAt = g.lastAt.Add(g.cfg.Interval)
		g.stepsOnLeg++
	}
	g.emitted++
	return trajectory.Point{
		Point:     g.last,
		ObjectID:  g.cfg.ObjectID,
		Timestamp: g.lastAt,
		Props:     property.NewMap(),
	}, true
}

// Collator merges several generators' output into global timestamp order.
type Collator struct {
	generators []Generator
	pending    []*pendingPoint
}

type pendingPoint struct {
	source int
	point  trajectory.Point
	has    bool
}

// NewCollator constructs a Collator over the given generators. Returns
// ErrNoGenerators if gens is empty, or ErrNilGenerator if any entry is nil.
func NewCollator(gens ...Generator) (*Collator, error) {
	if len(gens) == 0 {
		return nil, ErrNoGenerators
	}
	for _, g := range gens {
		if g == nil {
			return nil, ErrNilGenerator
		}
	}
	c := &Collator{generators: gens, pending: make([]*pendingPoint, len(gens))}
	for i, g := range gens {
		p, ok := g.Next()
		c.pending[i] = &pendingPoint{source: i, point: p, has: ok}
	}
	return c, nil
}

// Next returns the next point in global timestamp order across all
// generators, refilling each generator's lookahead as it is consumed.
// Returns ErrNoGeneratedPoints once every generator is exhausted.
func (c *Collator) Next() (trajectory.Point, error) {
	best := -1
	for i, p := range c.pending {
		if !p.has {
			continue
		}
		if best == -1 || p.point.Timestamp.Before(c.pending[best].point.Timestamp) {
			best = i
		}
	}
	if best == -1 {
		return trajectory.Point{}, ErrNoGeneratedPoints
	}
	out := c.pending[best].point
	next, ok := c.generators[best].Next()
	c.pending[best] = &pendingPoint{source: best, point: next, has: ok}
	return out, nil
}

// Collate repeatedly calls Next until every generator is exhausted,
// returning the full merged sequence in global timestamp order.
func (c *Collator) Collate() ([]trajectory.Point, error) {
	var out []trajectory.Point
	for {
		p, err := c.Next()
		if err == ErrNoGeneratedPoints {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
}
