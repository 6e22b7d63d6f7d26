// Package dijkstra implements Dijkstra's shortest-path algorithm with early
// termination on a stop-set.
//
// The search finalizes vertices in non-decreasing distance order, so once
// every member of the stop-set is finalized no unfinalized vertex can lie on a
// shorter route to any of them and the search may stop. Equal tentative
// distances are broken by the lowest vertex id, which makes every result
// reproducible.
//
// Complexity:
//
//   - Time:  O((V + E) log V) worst case; usually far less with a small stop-set.
//   - Space: O(V + E) for the maps and the lazy heap.
package dijkstra

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/mazeroute/maze"
)

// Dijkstra computes shortest distances from Options.Source over g.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. Source must be set (ErrNoSource) and present (ErrVertexNotFound).
//  3. Every stop-set member must be present (ErrVertexNotFound).
//
// Termination:
//
//   - every stop-set member is finalized (the source counts as finalized), or
//   - the heap drains: no unfinalized vertex has a finite distance, or
//   - the next distance exceeds MaxDistance.
//
// Stop-set members that were never reached keep Infinity; callers decide
// what "no path" means for them.
func Dijkstra(g maze.Graph, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if g == nil {
		return nil, ErrNilGraph
	}
	if cfg.Source == maze.NoVertex {
		return nil, ErrNoSource
	}
	if !g.HasVertex(cfg.Source) {
		return nil, fmt.Errorf("%w: source %d", ErrVertexNotFound, cfg.Source)
	}

	pending := make(map[maze.Vertex]struct{}, len(cfg.StopSet))
	for _, v := range cfg.StopSet {
		if !g.HasVertex(v) {
			return nil, fmt.Errorf("%w: stop-set member %d", ErrVertexNotFound, v)
		}
		if v != cfg.Source {
			pending[v] = struct{}{}
		}
	}

	vertices := g.Vertices()
	r := &runner{
		g:       g,
		options: cfg,
		dist:    make(Distances, len(vertices)),
		prev:    make(RoutingTable, len(vertices)),
		visited: make(map[maze.Vertex]bool, len(vertices)),
		pending: pending,
		stopAll: len(cfg.StopSet) == 0,
		pq:      make(nodePQ, 0, len(vertices)),
	}
	r.init(vertices)
	if err := r.process(); err != nil {
		return nil, err
	}

	return &Result{Source: cfg.Source, Dist: r.dist, Prev: r.prev, finalized: r.visited}, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       maze.Graph
	options Options
	dist    Distances
	prev    RoutingTable
	visited map[maze.Vertex]bool     // finalized vertices
	pending map[maze.Vertex]struct{} // stop-set members not finalized yet
	stopAll bool                     // no stop-set: run to exhaustion
	pq      nodePQ
}

// init sets dist=Infinity and prev=NoVertex everywhere, then pushes the source.
func (r *runner) init(vertices []maze.Vertex) {
	for _, v := range vertices {
		r.dist[v] = Infinity
		r.prev[v] = maze.NoVertex
	}
	r.dist[r.options.Source] = 0

	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: r.options.Source, dist: 0})
}

// process repeatedly finalizes the closest unfinalized vertex and relaxes its
// edges until a termination condition holds.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		// 1. Every stop-set member is final: nothing left to learn.
		if !r.stopAll && len(r.pending) == 0 {
			return nil
		}

		// 2. Extract the closest candidate.
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id

		// 3. Skip stale entries left behind by lazy decrease-key.
		if r.visited[u] {
			continue
		}
		// 4. Respect MaxDistance; the heap is ordered, so all later items exceed it too.
		if item.dist > r.options.MaxDistance {
			return nil
		}

		// 5. Finalize u and tick it off the stop-set.
		r.visited[u] = true
		delete(r.pending, u)

		// 6. Relax outgoing edges.
		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// relax improves the tentative distance of every neighbour of u through u.
// Replacement happens only on a strictly smaller distance, so the first
// finalized predecessor wins ties.
func (r *runner) relax(u maze.Vertex) error {
	neighbors, err := r.g.Neighbors(u)
	if err != nil {
		return fmt.Errorf("dijkstra: failed to get neighbors of %d: %w", u, err)
	}

	for _, v := range neighbors {
		// 1. Finalized neighbours cannot improve.
		if r.visited[v] {
			continue
		}
		// 2. Fetch and check the weight.
		w, err := r.g.Weight(u, v)
		if err != nil {
			return fmt.Errorf("dijkstra: weight of %d→%d: %w", u, v, err)
		}
		if w < 0 {
			return fmt.Errorf("%w: edge %d→%d weight=%d", ErrNegativeWeight, u, v, w)
		}
		// 3. Impassable edge.
		if w >= r.options.InfEdgeThreshold {
			continue
		}

		// 4. Guard the addition against int64 overflow.
		if w > Infinity-r.dist[u] {
			continue
		}
		// 5. Update only on a strictly shorter distance within MaxDistance.
		newDist := r.dist[u] + w
		if newDist > r.options.MaxDistance || newDist >= r.dist[v] {
			continue
		}
		r.dist[v] = newDist
		r.prev[v] = u
		heap.Push(&r.pq, &nodeItem{id: v, dist: newDist})
	}

	return nil
}

// nodeItem represents a vertex and its tentative distance from the source.
type nodeItem struct {
	id   maze.Vertex
	dist int64
}

// nodePQ is a min-heap of *nodeItem ordered by (dist, id).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

// Less orders by distance, then by the lowest vertex id.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
