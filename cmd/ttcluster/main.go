// Command ttcluster reads the points out of a codec-encoded trajectory
// file and runs DBSCAN over them, printing one cluster label per point.
// A trajectory is used as the point-set carrier since it is the only
// container package codec has a wire format for; timestamps and object
// IDs are ignored, only coordinates matter to the clustering run.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/sandialabs/tracktable-go/internal/tracktable/codec"
	"github.com/sandialabs/tracktable-go/internal/tracktable/dbscan"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
)

func main() {
	input := flag.String("i", "", "input codec-encoded trajectory file (required)")
	halfSpanFlag := flag.String("half-span", "", "comma-separated per-dimension neighborhood half-span (required)")
	minPoints := flag.Int("min-points", 4, "minimum neighbor count for a core point")
	refine := flag.Bool("euclidean-refine", false, "restrict neighborhoods to the inscribed ellipsoid")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -i is required")
		flag.Usage()
		os.Exit(1)
	}
	if *halfSpanFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: -half-span is required")
		flag.Usage()
		os.Exit(1)
	}

	halfSpan, err := parseFloats(*halfSpanFlag)
	if err != nil {
		log.Fatalf("parse -half-span: %v", err)
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("open %q: %v", *input, err)
	}
	traj, err := codec.DecodeTrajectory(f)
	f.Close()
	if err != nil {
		log.Fatalf("decode %q: %v", *input, err)
	}

	pts := make([]point.Point, traj.Len())
	for i := 0; i < traj.Len(); i++ {
		pts[i] = traj.At(i).Point
	}

	labels := dbscan.Run(pts, dbscan.Params{
		HalfSpan:        halfSpan,
		MinPoints:       *minPoints,
		EuclideanRefine: *refine,
	})

	clusters := dbscan.ClusterMembers(labels)
	fmt.Printf("%d points, %d clusters, %d noise\n", len(pts), len(clusters), countNoise(labels))
	for i, label := range labels {
		fmt.Printf("%d\t%d\n", i, label)
	}
}

func countNoise(labels []int) int {
	n := 0
	for _, l := range labels {
		if l == dbscan.NoiseCluster {
			n++
		}
	}
	return n
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d (%q): %w", i, p, err)
		}
		out[i] = v
	}
	return out, nil
}
