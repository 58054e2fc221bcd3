// Package geometry implements the polymorphic algorithms that operate on
// points, polylines, and trajectories within a single coordinate domain:
// length and arc-length/time queries, Douglas-Peucker simplification,
// convex-hull shape descriptors, distance, and intersection predicates.
//
// Every function takes a geodomain.Domain explicitly and is generic over
// any geometry built from package point and package trajectory, the way
// the teacher's computeClusterMetrics (internal/lidar/clustering.go)
// computes centroid/bounding-box/OBB metrics generically over a
// []WorldPoint regardless of which sensor produced them.
package geometry

import (
	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain"
	"github.com/sandialabs/tracktable-go/internal/tracktable/trajectory"
)

// Length returns the sum of adjacent-pair distances along traj. Empty or
// singleton trajectories have length 0.
func Length(d geodomain.Domain, traj *trajectory.Trajectory) float64 {
	if traj.Len() < 2 {
		return 0
	}
	return traj.At(traj.Len() - 1).CurrentLength
}

// EndToEndDistance returns the distance between traj's first and last
// points. Empty or singleton trajectories have end-to-end distance 0.
func EndToEndDistance(d geodomain.Domain, traj *trajectory.Trajectory) float64 {
	if traj.Len() < 2 {
		return 0
	}
	return d.Distance(traj.First().Point, traj.Last().Point)
}
