// Command ttplot renders one or more codec-encoded trajectory files as a
// single chart, either a static PNG (gonum.org/v1/plot) or an interactive
// HTML page (go-echarts), selected by the output file's extension.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandialabs/tracktable-go/internal/tracktable/codec"
	"github.com/sandialabs/tracktable-go/internal/tracktable/plot"
	"github.com/sandialabs/tracktable-go/internal/tracktable/trajectory"
)

func main() {
	inputs := flag.String("i", "", "comma-separated codec-encoded trajectory files (required)")
	output := flag.String("o", "", "output path; .html renders an interactive chart, anything else a PNG (required)")
	flag.Parse()

	if *inputs == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Error: -i and -o are both required")
		flag.Usage()
		os.Exit(1)
	}

	paths := strings.Split(*inputs, ",")
	trajs := make([]*trajectory.Trajectory, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		raw, err := os.ReadFile(p)
		if err != nil {
			log.Fatalf("read %q: %v", p, err)
		}
		traj, err := codec.DecodeTrajectory(bytes.NewReader(raw))
		if err != nil {
			log.Fatalf("decode %q: %v", p, err)
		}
		trajs = append(trajs, traj)
	}
	if len(trajs) == 0 {
		log.Fatal("no trajectories decoded")
	}

	dom := trajs[0].Domain()
	for _, t := range trajs[1:] {
		if t.Domain().Name() != dom.Name() {
			log.Fatalf("mixed domains: %q and %q", dom.Name(), t.Domain().Name())
		}
	}

	if strings.EqualFold(filepath.Ext(*output), ".html") {
		doc, err := plot.TrajectoryHTML(dom, trajs)
		if err != nil {
			log.Fatalf("render html: %v", err)
		}
		if err := os.WriteFile(*output, []byte(doc), 0o644); err != nil {
			log.Fatalf("write %q: %v", *output, err)
		}
	} else {
		p, err := plot.TrajectoryPlot(dom, trajs)
		if err != nil {
			log.Fatalf("render plot: %v", err)
		}
		if err := plot.Save(p, *output); err != nil {
			log.Fatalf("save %q: %v", *output, err)
		}
	}

	fmt.Printf("plotted %d trajectories to %s\n", len(trajs), *output)
}
