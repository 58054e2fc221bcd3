// Package plot renders trajectories to PNG using gonum.org/v1/plot,
// following internal/lidar/monitor/gridplotter.go's pattern: build a
// *plot.Plot, add one plotter.Line per series with a generated color and
// a legend entry, then Save at a fixed page size. Where the teacher
// plots a grid cell's value over frame index, this package plots a
// trajectory's points over its native 2D projection, plus each
// trajectory's convex hull outline.
package plot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain"
	"github.com/sandialabs/tracktable-go/internal/tracktable/geometry"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
	"github.com/sandialabs/tracktable-go/internal/tracktable/trajectory"
)

// TrajectoryPlot renders trajs as a set of polylines, one per
// trajectory, each overlaid with its own convex hull outline. Only the
// first two coordinates of each point are plotted; flat3d altitude and
// spherical domains' third coordinate (if any) are ignored, matching the
// teacher's own 2D grid plots.
func TrajectoryPlot(domain geodomain.Domain, trajs []*trajectory.Trajectory) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Trajectories (%s)", domain.Name())
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	colors := generateColors(len(trajs))

	for i, t := range trajs {
		if t.Empty() {
			continue
		}

		pts := make([]point.Point, t.Len())
		linePts := make(plotter.XYs, t.Len())
		for j := 0; j < t.Len(); j++ {
			pt := t.At(j)
			pts[j] = pt.Point
			linePts[j] = plotter.XY{X: pt.At(0), Y: pt.At(1)}
		}

		line, err := plotter.NewLine(linePts)
		if err != nil {
			return nil, fmt.Errorf("plot: trajectory %d line: %w", i, err)
		}
		line.Color = colors[i]
		line.Width = vg.Points(1.5)
		p.Add(line)

		label := t.ObjectID()
		if label == "" {
			label = fmt.Sprintf("trajectory %d", i)
		}
		p.Legend.Add(label, line)

		hull := geometry.ConvexHullOf(pts)
		if hull.Empty() {
			continue
		}
		hullPts := make(plotter.XYs, len(hull.Vertices)+1)
		for j, v := range hull.Vertices {
			hullPts[j] = plotter.XY{X: v.At(0), Y: v.At(1)}
		}
		hullPts[len(hull.Vertices)] = hullPts[0]

		hullLine, err := plotter.NewLine(hullPts)
		if err != nil {
			return nil, fmt.Errorf("plot: trajectory %d hull: %w", i, err)
		}
		hullLine.Color = colors[i]
		hullLine.Width = vg.Points(0.5)
		hullLine.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(hullLine)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p, nil
}

// Save renders p to a PNG file at path, sized like the teacher's ring
// plots (14x6 inches).
func Save(p *plot.Plot, path string) error {
	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("plot: save %q: %w", path, err)
	}
	return nil
}

// generateColors builds a palette of n distinct colors by walking the
// hue wheel, matching internal/lidar/monitor/gridplotter.go's
// generateColors/hslToRGB.
func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64
	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}
	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
