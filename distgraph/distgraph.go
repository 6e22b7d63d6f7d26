// Package distgraph builds the complete distance graph over a set of points
// of interest: for every ordered pair (A, B) the shortest distance and the
// concrete walk from A to B in the underlying maze.
//
// Points are mapped onto a dense index 0..k-1 (the origin first, then targets
// in the order given) and both tables are stored row-major in flat slices, so
// a lookup is one map probe plus bounds-checked slice access.
//
// Complexity:
//
//   - Build: k-1 stop-set searches, each O((V + E) log V) at worst.
//   - Distance, Path: O(1) plus O(len(path)) for the copy.
//   - Remove: O(1).
package distgraph

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mazeroute/dijkstra"
	"github.com/katalvlaran/mazeroute/maze"
)

// Sentinel errors for distance-graph operations.
var (
	// ErrNilGraph indicates that Build received a nil graph.
	ErrNilGraph = errors.New("distgraph: graph is nil")

	// ErrUnknownPoint indicates a vertex that is not a live point of interest.
	ErrUnknownPoint = errors.New("distgraph: vertex is not a point of interest")

	// ErrUnreachable indicates a pair of points with no connecting walk.
	ErrUnreachable = errors.New("distgraph: points are not connected")
)

// DistanceGraph is a complete pairwise distance/path table. It is owned by a
// single planner and is not safe for concurrent mutation.
type DistanceGraph struct {
	points  []maze.Vertex       // dense index → vertex
	index   map[maze.Vertex]int // vertex → dense index
	removed []bool              // tombstones for consumed targets
	live    int
	dist    []int64         // k×k row-major
	paths   []dijkstra.Path // k×k row-major
}

// Build computes the distance graph over {origin} ∪ targets.
//
// Stages:
//  1. Validate the graph and the points; deduplicate targets (the origin is
//     stored once even when it is also a target).
//  2. Allocate the tables; unreachable pairs keep dijkstra.Infinity and a
//     nil path.
//  3. For point i, run one search with the points after i as stop-set. The
//     last point needs no search.
//  4. Record (i, j) and, by reversal, (j, i).
func Build(g maze.Graph, origin maze.Vertex, targets []maze.Vertex) (*DistanceGraph, error) {
	// 1. Validate and index the points.
	if g == nil {
		return nil, ErrNilGraph
	}

	points := make([]maze.Vertex, 0, len(targets)+1)
	index := make(map[maze.Vertex]int, len(targets)+1)
	for _, v := range append([]maze.Vertex{origin}, targets...) {
		if _, dup := index[v]; dup {
			continue
		}
		if !g.HasVertex(v) {
			return nil, fmt.Errorf("%w: %d is not in the graph", ErrUnknownPoint, v)
		}
		index[v] = len(points)
		points = append(points, v)
	}

	// 2. Allocate the dense tables; every pair starts unreachable.
	k := len(points)
	dg := &DistanceGraph{
		points:  points,
		index:   index,
		removed: make([]bool, k),
		live:    k,
		dist:    make([]int64, k*k),
		paths:   make([]dijkstra.Path, k*k),
	}
	for i := range dg.dist {
		dg.dist[i] = dijkstra.Infinity
	}

	// 3. One search per point against the points after it.
	for i := 0; i < k; i++ {
		dg.dist[i*k+i] = 0
		dg.paths[i*k+i] = dijkstra.Path{}
		if i == k-1 {
			break
		}

		res, err := dijkstra.Dijkstra(g, dijkstra.Source(points[i]), dijkstra.WithStopSet(points[i+1:]...))
		if err != nil {
			return nil, fmt.Errorf("distgraph: search from %d: %w", points[i], err)
		}
		// 4. Fill both directions of every reached pair.
		for j := i + 1; j < k; j++ {
			d := res.Dist[points[j]]
			if d == dijkstra.Infinity {
				continue
			}
			fwd := dijkstra.PathTo(res.Prev, points[j])
			dg.dist[i*k+j] = d
			dg.dist[j*k+i] = d
			dg.paths[i*k+j] = fwd
			dg.paths[j*k+i] = Reverse(fwd, points[i])
		}
	}

	return dg, nil
}

// Reverse derives the walk B→A from the walk A→B (which excludes A and ends
// at B): drop B, reverse what is left, and append A as the new destination.
// The result has the same cost as a direct search from B, but it is the same
// walk only when the shortest path between A and B is unique; with ties the
// direct search may settle on a different one.
func Reverse(path dijkstra.Path, a maze.Vertex) dijkstra.Path {
	if len(path) == 0 {
		return dijkstra.Path{}
	}
	out := make(dijkstra.Path, 0, len(path))
	for i := len(path) - 2; i >= 0; i-- {
		out = append(out, path[i])
	}

	return append(out, a)
}

// Len returns the number of live points.
func (dg *DistanceGraph) Len() int { return dg.live }

// Origin returns the vertex the graph was built around.
func (dg *DistanceGraph) Origin() maze.Vertex { return dg.points[0] }

// Points returns the live points in index order.
func (dg *DistanceGraph) Points() []maze.Vertex {
	out := make([]maze.Vertex, 0, dg.live)
	for i, v := range dg.points {
		if !dg.removed[i] {
			out = append(out, v)
		}
	}

	return out
}

// Index returns the dense index of a live point.
func (dg *DistanceGraph) Index(v maze.Vertex) (int, bool) {
	i, ok := dg.index[v]
	if !ok || dg.removed[i] {
		return 0, false
	}

	return i, true
}

// Has reports whether v is a live point.
func (dg *DistanceGraph) Has(v maze.Vertex) bool {
	_, ok := dg.Index(v)

	return ok
}

// Distance returns the shortest distance from a to b, dijkstra.Infinity when
// they are disconnected, or ErrUnknownPoint when either is not a live point.
func (dg *DistanceGraph) Distance(a, b maze.Vertex) (int64, error) {
	i, j, err := dg.pair(a, b)
	if err != nil {
		return 0, err
	}

	return dg.dist[i*len(dg.points)+j], nil
}

// Path returns a copy of the walk from a to b (excluding a, including b).
func (dg *DistanceGraph) Path(a, b maze.Vertex) (dijkstra.Path, error) {
	i, j, err := dg.pair(a, b)
	if err != nil {
		return nil, err
	}
	k := len(dg.points)
	if dg.dist[i*k+j] == dijkstra.Infinity {
		return nil, fmt.Errorf("%w: %d→%d", ErrUnreachable, a, b)
	}
	src := dg.paths[i*k+j]
	out := make(dijkstra.Path, len(src))
	copy(out, src)

	return out, nil
}

// Remove drops a consumed point. Its slot is tombstoned so the other indices
// stay valid.
func (dg *DistanceGraph) Remove(v maze.Vertex) error {
	i, ok := dg.Index(v)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPoint, v)
	}
	dg.removed[i] = true
	dg.live--

	return nil
}

func (dg *DistanceGraph) pair(a, b maze.Vertex) (int, int, error) {
	i, ok := dg.Index(a)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %d", ErrUnknownPoint, a)
	}
	j, ok := dg.Index(b)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %d", ErrUnknownPoint, b)
	}

	return i, j, nil
}
