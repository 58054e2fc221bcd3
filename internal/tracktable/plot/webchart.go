// Interactive HTML rendering via go-echarts, following
// internal/lidar/monitor/echarts_handlers.go's scatter-chart idiom
// (NewScatter, SetGlobalOptions with Initialization/Title/Tooltip/XAxis/
// YAxis, one AddSeries call per logical group). Where the teacher charts
// a sensor's background grid or live tracks, this renders a trajectory
// set's points as one scatter series per trajectory; consecutive points
// are not joined by lines.
package plot

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain"
	"github.com/sandialabs/tracktable-go/internal/tracktable/trajectory"
)

// TrajectoryHTML renders trajs as an interactive scatter chart and
// returns the standalone HTML document produced by go-echarts. As in
// TrajectoryPlot, only the first two coordinates of each point are used.
func TrajectoryHTML(domain geodomain.Domain, trajs []*trajectory.Trajectory) (string, error) {
	maxAbs := 0.0
	for _, t := range trajs {
		for i := 0; i < t.Len(); i++ {
			pt := t.At(i)
			if v := math.Abs(pt.At(0)); v > maxAbs {
				maxAbs = v
			}
			if v := math.Abs(pt.At(1)); v > maxAbs {
				maxAbs = v
			}
		}
	}
	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Trajectories", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Trajectories", Subtitle: fmt.Sprintf("domain=%s count=%d", domain.Name(), len(trajs))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "x", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "y", NameLocation: "middle", NameGap: 30}),
	)

	colors := generateColors(len(trajs))
	for i, t := range trajs {
		if t.Empty() {
			continue
		}
		data := make([]opts.ScatterData, t.Len())
		for j := 0; j < t.Len(); j++ {
			pt := t.At(j)
			data[j] = opts.ScatterData{Value: []interface{}{pt.At(0), pt.At(1)}}
		}
		label := t.ObjectID()
		if label == "" {
			label = fmt.Sprintf("trajectory %d", i)
		}
		c := colors[i].(interface{ RGBA() (r, g, b, a uint32) })
		r, g, b, _ := c.RGBA()
		hex := fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
		scatter.AddSeries(label, data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hex}),
		)
	}

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		return "", fmt.Errorf("plot: render html: %w", err)
	}
	return buf.String(), nil
}
