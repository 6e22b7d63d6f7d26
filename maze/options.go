// Package: mazeroute/maze
//
// options.go: functional options for grid maze construction.
//
// Contract:
//   • Options are functional (type Option func(*config)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs;
//     New itself never panics and reports only sentinel errors.
//   • Determinism is explicit: randomness flows through WithSeed or WithRand.

package maze

import (
	"fmt"
	"math/rand"
)

// DefaultSeed seeds the generator when random features are requested without
// WithSeed or WithRand, so that an unseeded maze is still reproducible.
const DefaultSeed int64 = 1

// Mud weight bounds used by PyRat-style mazes.
const (
	DefaultMudMin int64 = 4
	DefaultMudMax int64 = 9
)

// wall is an explicitly removed edge.
type wall struct{ u, v Vertex }

// config collects construction parameters for New.
type config struct {
	rng         *rand.Rand
	wallDensity float64 // probability of dropping a non-spanning-tree edge
	mudProb     float64 // probability that a kept edge is mud
	mudMin      int64
	mudMax      int64
	walls       []wall
}

func defaultConfig() config {
	return config{
		mudMin: DefaultMudMin,
		mudMax: DefaultMudMax,
	}
}

// Option customizes New.
type Option func(*config)

// WithSeed creates a deterministic generator from seed.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand supplies an explicit generator. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("maze: WithRand(nil)")
	}

	return func(c *config) {
		c.rng = r
	}
}

// WithWallDensity drops each grid edge that is not needed for connectivity
// with probability p. A random spanning tree is always kept, so every cell
// stays reachable. Panics unless 0 ≤ p ≤ 1.
func WithWallDensity(p float64) Option {
	if p < 0 || p > 1 {
		panic(fmt.Sprintf("maze: WithWallDensity(%g) outside [0,1]", p))
	}

	return func(c *config) {
		c.wallDensity = p
	}
}

// WithMud turns each kept edge into mud with probability p; mud weights are
// drawn uniformly from [min, max]. Panics unless 0 ≤ p ≤ 1 and 1 ≤ min ≤ max.
func WithMud(p float64, min, max int64) Option {
	if p < 0 || p > 1 {
		panic(fmt.Sprintf("maze: WithMud probability %g outside [0,1]", p))
	}
	if min < 1 || max < min {
		panic(fmt.Sprintf("maze: WithMud requires 1 ≤ min ≤ max, got min=%d max=%d", min, max))
	}

	return func(c *config) {
		c.mudProb = p
		c.mudMin = min
		c.mudMax = max
	}
}

// WithWall removes the edge between two orthogonally adjacent cells after
// generation. Explicit walls may disconnect the maze.
func WithWall(u, v Vertex) Option {
	return func(c *config) {
		c.walls = append(c.walls, wall{u: u, v: v})
	}
}
