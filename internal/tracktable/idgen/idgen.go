// Package idgen provides the pluggable UUID generator used by trajectories
// (spec.md §9: "Trajectory UUID generator is pluggable; represent as a
// process-wide service with explicit install/current calls, initialized
// to a secure-random default, never relying on implicit global
// construction order"). The default generator is google/uuid's
// cryptographically strong v4 scheme, the same dependency the teacher
// uses for run and scene identifiers (internal/lidar/analysis_run_manager.go,
// internal/lidar/scene_store.go).
package idgen

import (
	"sync"

	"github.com/google/uuid"
)

// Generator produces a new random UUID on each call.
type Generator interface {
	New() uuid.UUID
}

// defaultGenerator wraps google/uuid's v4 generation.
type defaultGenerator struct{}

func (defaultGenerator) New() uuid.UUID { return uuid.New() }

var (
	mu      sync.RWMutex
	current Generator = defaultGenerator{}
)

// Install replaces the process-wide generator. Intended for tests that
// need deterministic UUIDs; production code should rely on the default.
func Install(g Generator) {
	mu.Lock()
	defer mu.Unlock()
	current = g
}

// Current returns the process-wide generator.
func Current() Generator {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// New is a convenience wrapper around Current().New().
func New() uuid.UUID {
	return Current().New()
}
