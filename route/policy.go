package route

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mazeroute/cluster"
	"github.com/katalvlaran/mazeroute/dijkstra"
	"github.com/katalvlaran/mazeroute/distgraph"
	"github.com/katalvlaran/mazeroute/maze"
)

// Sentinel errors for route planning. All of them are recoverable: a planner
// that reports one still answers with a valid (possibly no-op) action.
var (
	// ErrEmptyTargetSet indicates that no target remains; the caller should
	// play maze.Nothing.
	ErrEmptyTargetSet = errors.New("route: no remaining targets")

	// ErrUnreachableTarget indicates that every remaining target lies in a
	// region disconnected from the agent.
	ErrUnreachableTarget = errors.New("route: no remaining target is reachable")

	// ErrStaleRoute marks a cached route that points at a target which is
	// gone. Planners recover from it by recomputing and only log it.
	ErrStaleRoute = errors.New("route: cached route is stale")

	// ErrNotPlanned indicates NextMove before any successful Plan.
	ErrNotPlanned = errors.New("route: Plan must be called before NextMove")

	// ErrUnknownPolicy indicates a policy name ParsePolicy does not know.
	ErrUnknownPolicy = errors.New("route: unknown policy")

	// ErrNilGraph indicates a planner constructed without a graph.
	ErrNilGraph = errors.New("route: graph is nil")
)

// DistanceFunc reports the distance from a fixed origin to v, or
// dijkstra.Infinity when v is unknown or unreachable.
type DistanceFunc func(v maze.Vertex) int64

// FromDistances adapts the output of one search.
func FromDistances(d dijkstra.Distances) DistanceFunc {
	return func(v maze.Vertex) int64 {
		if x, ok := d[v]; ok {
			return x
		}

		return dijkstra.Infinity
	}
}

// FromGraph adapts the row of from in a distance graph.
func FromGraph(dg *distgraph.DistanceGraph, from maze.Vertex) DistanceFunc {
	return func(v maze.Vertex) int64 {
		d, err := dg.Distance(from, v)
		if err != nil {
			return dijkstra.Infinity
		}

		return d
	}
}

// Nearest returns the reachable target with the smallest distance; equal
// distances go to the lowest vertex id.
func Nearest(targets []maze.Vertex, dist DistanceFunc) (maze.Vertex, error) {
	if len(targets) == 0 {
		return maze.NoVertex, ErrEmptyTargetSet
	}

	best, bestD := maze.NoVertex, dijkstra.Infinity
	for _, v := range targets {
		d := dist(v)
		if d == dijkstra.Infinity {
			continue
		}
		if d < bestD || (d == bestD && v < best) {
			best, bestD = v, d
		}
	}
	if best == maze.NoVertex {
		return maze.NoVertex, ErrUnreachableTarget
	}

	return best, nil
}

// ClusterScore is the cluster-weighted cost of heading for a target:
// distance − 2·(cluster size) + (cluster average distance). Lower is better.
func ClusterScore(d int64, size int, avg float64) float64 {
	return float64(d) - 2*float64(size) + avg
}

// ClusterWeightedNearest picks the reachable target with the lowest
// ClusterScore, favouring targets inside dense clusters over marginally closer
// isolated ones. Targets unknown to idx count as singletons. Equal scores go
// to the lowest vertex id.
func ClusterWeightedNearest(targets []maze.Vertex, dist DistanceFunc, idx *cluster.Index) (maze.Vertex, error) {
	if len(targets) == 0 {
		return maze.NoVertex, ErrEmptyTargetSet
	}

	best := maze.NoVertex
	var bestScore float64
	for _, v := range targets {
		d := dist(v)
		if d == dijkstra.Infinity {
			continue
		}
		size, avg := 1, 0.0
		if idx != nil {
			if id, ok := idx.ClusterOf(v); ok {
				size, avg = idx.Size(id), idx.AverageDistance(id)
			}
		}
		score := ClusterScore(d, size, avg)
		if best == maze.NoVertex || score < bestScore || (score == bestScore && v < best) {
			best, bestScore = v, score
		}
	}
	if best == maze.NoVertex {
		return maze.NoVertex, ErrUnreachableTarget
	}

	return best, nil
}

// Tour is a full visiting plan.
type Tour struct {
	Order []maze.Vertex // targets in visiting order
	Route dijkstra.Path // concatenated walk, origin excluded
	Cost  int64
}

// NearestTour builds the nearest-unvisited tour from origin: repeatedly move
// to the closest unvisited target from the current tail and append the walk.
// Targets disconnected from origin are left out; when none is reachable the
// error is ErrUnreachableTarget.
//
// Complexity: O(k²) distance lookups plus the length of the route.
func NearestTour(dg *distgraph.DistanceGraph, origin maze.Vertex, targets []maze.Vertex) (Tour, error) {
	if len(targets) == 0 {
		return Tour{}, ErrEmptyTargetSet
	}

	left := make([]maze.Vertex, 0, len(targets))
	seen := make(map[maze.Vertex]bool, len(targets))
	for _, v := range targets {
		if v == origin || seen[v] {
			continue
		}
		seen[v] = true
		left = append(left, v)
	}

	var tour Tour
	tail := origin
	for len(left) > 0 {
		next, err := Nearest(left, FromGraph(dg, tail))
		if errors.Is(err, ErrUnreachableTarget) {
			break
		}
		if err != nil {
			return Tour{}, err
		}
		leg, err := dg.Path(tail, next)
		if err != nil {
			return Tour{}, fmt.Errorf("route: leg %d→%d: %w", tail, next, err)
		}
		d, _ := dg.Distance(tail, next)

		tour.Order = append(tour.Order, next)
		tour.Route = append(tour.Route, leg...)
		tour.Cost += d
		tail = next
		left = without(left, next)
	}
	if len(tour.Order) == 0 && len(left) > 0 {
		return Tour{}, ErrUnreachableTarget
	}

	return tour, nil
}

// without returns s minus the first occurrence of v, preserving order.
func without(s []maze.Vertex, v maze.Vertex) []maze.Vertex {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}

	return s
}
