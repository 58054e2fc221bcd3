// Command ttsimplify reads a codec-encoded trajectory, runs
// Douglas-Peucker simplification at a given tolerance, and writes the
// simplified trajectory back out.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sandialabs/tracktable-go/internal/tracktable/codec"
	"github.com/sandialabs/tracktable-go/internal/tracktable/geometry"
)

func main() {
	input := flag.String("i", "", "input codec-encoded trajectory file (required)")
	output := flag.String("o", "", "output path (required)")
	tolerance := flag.Float64("tolerance", 1.0, "simplification tolerance, in the domain's native distance unit")
	flag.Parse()

	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Error: -i and -o are both required")
		flag.Usage()
		os.Exit(1)
	}

	in, err := os.Open(*input)
	if err != nil {
		log.Fatalf("open %q: %v", *input, err)
	}
	traj, err := codec.DecodeTrajectory(in)
	in.Close()
	if err != nil {
		log.Fatalf("decode %q: %v", *input, err)
	}

	simplified, err := geometry.Simplify(traj.Domain(), traj, *tolerance)
	if err != nil {
		log.Fatalf("simplify: %v", err)
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create %q: %v", *output, err)
	}
	defer out.Close()
	if err := codec.EncodeTrajectory(out, simplified); err != nil {
		log.Fatalf("encode %q: %v", *output, err)
	}

	fmt.Printf("simplified %d points to %d (tolerance=%g)\n", traj.Len(), simplified.Len(), *tolerance)
}
