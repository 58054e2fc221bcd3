// Command ttgen generates a synthetic trajectory using package
// generators and writes it as a codec-encoded file, in the spirit of
// cmd/tools/gen-vrlog's small flag-driven fixture generator.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sandialabs/tracktable-go/internal/tracktable/codec"
	"github.com/sandialabs/tracktable-go/internal/tracktable/generators"
	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
	"github.com/sandialabs/tracktable-go/internal/tracktable/property"
	"github.com/sandialabs/tracktable-go/internal/tracktable/trajectory"
)

func main() {
	output := flag.String("o", "sample.tt", "output path")
	domainName := flag.String("domain", "flat2d", "domain: spherical, flat2d, or flat3d")
	mode := flag.String("mode", "constant", "generator: constant, circular, or grid")
	objectID := flag.String("object-id", "sample", "object ID to stamp on every point")
	originX := flag.Float64("origin-x", 0, "origin coordinate 0 (longitude for spherical)")
	originY := flag.Float64("origin-y", 0, "origin coordinate 1 (latitude for spherical)")
	originZ := flag.Float64("origin-z", 0, "origin coordinate 2 (flat3d only)")
	heading := flag.Float64("heading", 0, "initial heading in degrees, clockwise from north")
	speed := flag.Float64("speed", 1, "speed in the domain's native distance unit per second")
	interval := flag.Duration("interval", time.Second, "time between generated points")
	count := flag.Int("n", 100, "number of points to generate")
	turnRate := flag.Float64("turn-rate", 5, "circular mode: turn rate in degrees per second")
	turnEvery := flag.Int("turn-every", 10, "grid mode: steps per leg before a 90-degree turn")
	flag.Parse()

	domain, ok := codec.DomainByName(*domainName)
	if !ok {
		log.Fatalf("unknown domain %q", *domainName)
	}
	reckoner, ok := domain.(geodomain.Reckoner)
	if !ok {
		log.Fatalf("domain %q does not support destination reckoning", *domainName)
	}

	var origin point.Point
	switch domain.Dimension() {
	case 3:
		origin = point.New(*originX, *originY, *originZ)
	default:
		origin = point.New(*originX, *originY)
	}

	cfg := generators.Config{
		Domain:   reckoner,
		Origin:   origin,
		ObjectID: *objectID,
		Start:    time.Now().UTC(),
		Interval: *interval,
		Speed:    *speed,
		Count:    *count,
	}

	var gen generators.Generator
	switch *mode {
	case "constant":
		gen = generators.NewConstantHeadingGenerator(cfg, *heading)
	case "circular":
		gen = generators.NewCircularGenerator(cfg, *heading, *turnRate)
	case "grid":
		gen = generators.NewGridGenerator(cfg, *heading, *turnEvery)
	default:
		log.Fatalf("unknown mode %q: want constant, circular, or grid", *mode)
	}

	traj := trajectory.New(domain)
	traj.Properties().Set("generator_mode", property.FromString(*mode))
	for {
		p, ok := gen.Next()
		if !ok {
			break
		}
		if err := traj.Append(p); err != nil {
			log.Fatalf("append generated point: %v", err)
		}
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create %q: %v", *output, err)
	}
	defer f.Close()

	if err := codec.EncodeTrajectory(f, traj); err != nil {
		log.Fatalf("encode trajectory: %v", err)
	}

	fmt.Printf("wrote %d points to %s (domain=%s, uuid=%s)\n", traj.Len(), *output, domain.Name(), traj.UUID())
}
