// Package dijkstra defines core types and configuration options
// for the early-stopping Dijkstra search over a maze.Graph.
//
// Options:
//
//	– Source:           starting vertex (required, must be present in the graph).
//	– StopSet:          vertices that must be finalized before the search may stop.
//	– MaxDistance:      optional cap on distances to explore.
//	– InfEdgeThreshold: edges with weight >= this threshold are treated as impassable.
//
// Errors (sentinel):
//
//	– ErrNilGraph        if the provided graph is nil.
//	– ErrNoSource        if Source was never set.
//	– ErrVertexNotFound  if the source or a stop-set member is not in the graph.
//	– ErrNegativeWeight  if a negative edge weight is met during relaxation.
//	– ErrUnreachable     if a path is requested to a vertex left at Infinity.
//	– ErrNotFinalized    if a path is requested to a vertex reached but not settled.
//	– ErrBadMaxDistance  if MaxDistance < 0 (panic in the option constructor).
//	– ErrBadInfThreshold if InfEdgeThreshold <= 0 (panic in the option constructor).
package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/mazeroute/maze"
)

// Infinity is the distance of every vertex the search did not reach.
const Infinity int64 = math.MaxInt64

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGraph indicates that a nil graph was passed to Dijkstra.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrNoSource indicates that the Source option was not supplied.
	ErrNoSource = errors.New("dijkstra: source vertex not set")

	// ErrVertexNotFound indicates that the source or a stop-set vertex does
	// not exist in the provided graph.
	ErrVertexNotFound = errors.New("dijkstra: vertex not found in graph")

	// ErrNegativeWeight indicates that a negative edge weight was detected.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrUnreachable indicates that the requested destination kept an
	// infinite distance: no path exists from the source.
	ErrUnreachable = errors.New("dijkstra: destination unreachable from source")

	// ErrNotFinalized indicates that the search stopped before settling the
	// requested destination, so its tentative distance and predecessor chain
	// are not known to be shortest.
	ErrNotFinalized = errors.New("dijkstra: destination not finalized before the search stopped")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrBadInfThreshold indicates that InfEdgeThreshold was set to zero or a
	// negative value.
	ErrBadInfThreshold = errors.New("dijkstra: InfEdgeThreshold must be positive")
)

// Distances maps a vertex to its shortest-path cost from the source, or
// Infinity when it was not reached.
type Distances map[maze.Vertex]int64

// RoutingTable maps a vertex to its predecessor on the shortest-path tree,
// or maze.NoVertex for the source and for unreached vertices.
type RoutingTable map[maze.Vertex]maze.Vertex

// Path is an ordered walk from (excluding) a source to (including) a destination.
type Path []maze.Vertex

// Options configures the behavior of the Dijkstra algorithm.
//
// Source           – starting vertex (must be present in the graph).
// StopSet          – vertices whose distance must be final before stopping;
//
//	empty means "explore everything reachable".
//
// MaxDistance      – optional cap on distances to explore. Default Infinity.
// InfEdgeThreshold – treat edges with weight ≥ this threshold as walls. Default Infinity.
type Options struct {
	Source           maze.Vertex
	StopSet          []maze.Vertex
	MaxDistance      int64
	InfEdgeThreshold int64
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// Source sets the starting vertex.
func Source(v maze.Vertex) Option {
	return func(o *Options) {
		o.Source = v
	}
}

// WithStopSet lets the search terminate as soon as every listed vertex has
// been finalized. Calling it several times accumulates vertices.
func WithStopSet(vs ...maze.Vertex) Option {
	return func(o *Options) {
		o.StopSet = append(o.StopSet, vs...)
	}
}

// WithMaxDistance sets a maximum distance threshold.
// Vertices whose shortest distance would exceed this value are not explored.
// Panics with ErrBadMaxDistance on a negative value.
func WithMaxDistance(max int64) Option {
	if max < 0 {
		panic(ErrBadMaxDistance.Error())
	}

	return func(o *Options) {
		o.MaxDistance = max
	}
}

// WithInfEdgeThreshold defines a weight threshold above which edges are
// considered non-traversable. Panics with ErrBadInfThreshold unless threshold > 0.
func WithInfEdgeThreshold(threshold int64) Option {
	if threshold <= 0 {
		panic(ErrBadInfThreshold.Error())
	}

	return func(o *Options) {
		o.InfEdgeThreshold = threshold
	}
}

// DefaultOptions returns an Options struct initialized with defaults:
// Source = maze.NoVertex (must be overridden), empty StopSet, no caps.
func DefaultOptions() Options {
	return Options{
		Source:           maze.NoVertex,
		MaxDistance:      Infinity,
		InfEdgeThreshold: Infinity,
	}
}

// Result is the output of one search.
type Result struct {
	Source maze.Vertex
	Dist   Distances
	Prev   RoutingTable

	finalized map[maze.Vertex]bool
}

// Finalized reports whether the search settled v before stopping. Only
// finalized vertices are guaranteed to carry their true shortest distance.
func (r *Result) Finalized(v maze.Vertex) bool {
	return v == r.Source || r.finalized[v]
}

// Reachable reports whether v received a finite distance.
func (r *Result) Reachable(v maze.Vertex) bool {
	d, ok := r.Dist[v]

	return ok && d != Infinity
}

// PathTo reconstructs the shortest walk from the source to dest. The source
// itself yields an empty path and a nil error; an unreached destination yields
// ErrUnreachable. A destination that was reached but not finalized, because
// the stop-set or MaxDistance ended the search first, yields ErrNotFinalized:
// its predecessor chain may not be a shortest one. Use the package-level
// PathTo to read such a tentative chain anyway.
func (r *Result) PathTo(dest maze.Vertex) (Path, error) {
	if dest == r.Source {
		return Path{}, nil
	}
	if !r.Reachable(dest) {
		return nil, ErrUnreachable
	}
	if !r.Finalized(dest) {
		return nil, ErrNotFinalized
	}

	return PathTo(r.Prev, dest), nil
}
