// Package dijkstra_test contains unit tests for the stop-set Dijkstra.
// These tests validate input checks, distances and predecessors on small
// graphs, early termination, thresholds, the tie-break rule, and a brute-force
// cross-check on random graphs.
package dijkstra_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/katalvlaran/mazeroute/dijkstra"
	"github.com/katalvlaran/mazeroute/maze"
)

// Named vertices keep the small fixtures readable.
const (
	A maze.Vertex = iota
	B
	C
	D
	E
	F
	G
)

type edge struct {
	u, v maze.Vertex
	w    int64
}

func build(t *testing.T, edges ...edge) *maze.Adjacency {
	t.Helper()
	g := maze.NewAdjacency()
	for _, e := range edges {
		if err := g.AddEdge(e.u, e.v, e.w); err != nil {
			t.Fatalf("AddEdge(%d,%d,%d): %v", e.u, e.v, e.w, err)
		}
	}

	return g
}

// ------------------------------------------------------------------------
// 1. Validation Tests: Ensure errors are returned for invalid inputs.
// ------------------------------------------------------------------------

func TestDijkstra_NilGraph(t *testing.T) {
	_, err := dijkstra.Dijkstra(nil, dijkstra.Source(A))
	if !errors.Is(err, dijkstra.ErrNilGraph) {
		t.Fatalf("Expected ErrNilGraph, got %v", err)
	}
}

func TestDijkstra_NoSource(t *testing.T) {
	g := build(t, edge{A, B, 1})
	_, err := dijkstra.Dijkstra(g)
	if !errors.Is(err, dijkstra.ErrNoSource) {
		t.Fatalf("Expected ErrNoSource, got %v", err)
	}
}

func TestDijkstra_SourceNotFound(t *testing.T) {
	g := build(t, edge{A, B, 1})
	_, err := dijkstra.Dijkstra(g, dijkstra.Source(42))
	if !errors.Is(err, dijkstra.ErrVertexNotFound) {
		t.Fatalf("Expected ErrVertexNotFound, got %v", err)
	}
}

func TestDijkstra_StopSetMemberNotFound(t *testing.T) {
	g := build(t, edge{A, B, 1})
	_, err := dijkstra.Dijkstra(g, dijkstra.Source(A), dijkstra.WithStopSet(B, 42))
	if !errors.Is(err, dijkstra.ErrVertexNotFound) {
		t.Fatalf("Expected ErrVertexNotFound, got %v", err)
	}
}

func TestDijkstra_OptionPanics(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}
	mustPanic("WithMaxDistance(-1)", func() { dijkstra.WithMaxDistance(-1) })
	mustPanic("WithInfEdgeThreshold(0)", func() { dijkstra.WithInfEdgeThreshold(0) })
}

// ------------------------------------------------------------------------
// 2. Basic Functionality: distances and predecessor chains.
// ------------------------------------------------------------------------

func TestDijkstra_SimpleTriangle(t *testing.T) {
	// A—B(1), B—C(2), A—C(5)
	g := build(t, edge{A, B, 1}, edge{B, C, 2}, edge{A, C, 5})

	res, err := dijkstra.Dijkstra(g, dijkstra.Source(A))
	if err != nil {
		t.Fatal(err)
	}
	if res.Dist[A] != 0 || res.Dist[B] != 1 || res.Dist[C] != 3 {
		t.Errorf("Unexpected distances: %v", res.Dist)
	}
	if res.Prev[B] != A {
		t.Errorf("prev[B] = %d; want %d", res.Prev[B], A)
	}
	if res.Prev[C] != B {
		t.Errorf("prev[C] = %d; want %d", res.Prev[C], B)
	}
	if res.Prev[A] != maze.NoVertex {
		t.Errorf("prev[A] = %d; want NoVertex", res.Prev[A])
	}
}

func TestDijkstra_ChainWithBranch(t *testing.T) {
	// A—B—C—D—E
	//         |
	//         F—G
	g := build(t,
		edge{A, B, 1}, edge{B, C, 1}, edge{C, D, 1},
		edge{D, E, 1}, edge{D, F, 1}, edge{F, G, 1},
	)

	res, err := dijkstra.Dijkstra(g, dijkstra.Source(A))
	if err != nil {
		t.Fatal(err)
	}

	expected := dijkstra.Distances{A: 0, B: 1, C: 2, D: 3, E: 4, F: 4, G: 5}
	for v, want := range expected {
		if got := res.Dist[v]; got != want {
			t.Errorf("dist[%d] = %d; want %d", v, got, want)
		}
	}

	path, err := res.PathTo(G)
	if err != nil {
		t.Fatal(err)
	}
	want := dijkstra.Path{B, C, D, F, G}
	if !equalPath(path, want) {
		t.Errorf("PathTo(G) = %v; want %v", path, want)
	}
}

func TestDijkstra_MudDetour(t *testing.T) {
	// Direct mud edge A—D(9) loses to the dry detour A—B—C—D (3).
	g := build(t, edge{A, D, 9}, edge{A, B, 1}, edge{B, C, 1}, edge{C, D, 1})

	res, err := dijkstra.Dijkstra(g, dijkstra.Source(A), dijkstra.WithStopSet(D))
	if err != nil {
		t.Fatal(err)
	}
	if res.Dist[D] != 3 {
		t.Errorf("dist[D] = %d; want 3", res.Dist[D])
	}
	if res.Prev[D] != C {
		t.Errorf("prev[D] = %d; want %d", res.Prev[D], C)
	}
}

// ------------------------------------------------------------------------
// 3. Stop-set: early termination and exhaustion.
// ------------------------------------------------------------------------

func TestDijkstra_StopSetTerminatesEarly(t *testing.T) {
	// Line A—B—C—D—E—F—G; stopping at B must leave the far end unexplored.
	g := build(t,
		edge{A, B, 1}, edge{B, C, 1}, edge{C, D, 1},
		edge{D, E, 1}, edge{E, F, 1}, edge{F, G, 1},
	)

	res, err := dijkstra.Dijkstra(g, dijkstra.Source(A), dijkstra.WithStopSet(B))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Finalized(B) || res.Dist[B] != 1 {
		t.Errorf("B must be finalized at distance 1, got finalized=%v dist=%d", res.Finalized(B), res.Dist[B])
	}
	if res.Finalized(D) {
		t.Errorf("D must not be finalized when the stop-set is {B}")
	}
	if res.Dist[G] != dijkstra.Infinity {
		t.Errorf("dist[G] = %d; want Infinity", res.Dist[G])
	}
}

func TestDijkstra_StopSetLeavesTentativePathUnreadable(t *testing.T) {
	// A—C costs 10 directly but 3 via B and D. Stopping at B leaves C with the
	// tentative 10, which must not be handed out as a shortest path.
	g := build(t, edge{A, B, 1}, edge{A, C, 10}, edge{B, D, 1}, edge{D, C, 1})

	res, err := dijkstra.Dijkstra(g, dijkstra.Source(A), dijkstra.WithStopSet(B))
	if err != nil {
		t.Fatal(err)
	}
	if res.Finalized(C) || !res.Reachable(C) {
		t.Fatalf("C: finalized=%v reachable=%v; want false, true", res.Finalized(C), res.Reachable(C))
	}
	if p, err := res.PathTo(C); !errors.Is(err, dijkstra.ErrNotFinalized) || p != nil {
		t.Errorf("PathTo(C) = %v, %v; want nil, ErrNotFinalized", p, err)
	}
	if p, err := res.PathTo(B); err != nil || !equalPath(p, dijkstra.Path{B}) {
		t.Errorf("PathTo(B) = %v, %v; want [B], nil", p, err)
	}

	full, err := dijkstra.Dijkstra(g, dijkstra.Source(A), dijkstra.WithStopSet(C))
	if err != nil {
		t.Fatal(err)
	}
	p, err := full.PathTo(C)
	if err != nil || full.Dist[C] != 3 || !equalPath(p, dijkstra.Path{B, D, C}) {
		t.Errorf("settled C: dist=%d path=%v err=%v; want 3 [B D C] <nil>", full.Dist[C], p, err)
	}
}

func TestDijkstra_StopSetOnlySource(t *testing.T) {
	g := build(t, edge{A, B, 1})

	res, err := dijkstra.Dijkstra(g, dijkstra.Source(A), dijkstra.WithStopSet(A))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Finalized(A) || res.Dist[A] != 0 {
		t.Errorf("source must be finalized at 0")
	}
	if res.Finalized(B) {
		t.Errorf("B must not be finalized")
	}
}

func TestDijkstra_UnreachableStopSetMember(t *testing.T) {
	// Two components: {A,B,C} and {D,E}. Asking for E must not loop forever.
	g := build(t, edge{A, B, 1}, edge{B, C, 1}, edge{D, E, 1})

	res, err := dijkstra.Dijkstra(g, dijkstra.Source(A), dijkstra.WithStopSet(C, E))
	if err != nil {
		t.Fatal(err)
	}
	if res.Dist[C] != 2 {
		t.Errorf("dist[C] = %d; want 2", res.Dist[C])
	}
	if res.Reachable(E) {
		t.Errorf("E must be unreachable, got dist %d", res.Dist[E])
	}
	if _, err := res.PathTo(E); !errors.Is(err, dijkstra.ErrUnreachable) {
		t.Errorf("PathTo(E) error = %v; want ErrUnreachable", err)
	}
}

// ------------------------------------------------------------------------
// 4. Thresholds.
// ------------------------------------------------------------------------

func TestDijkstra_MaxDistanceLimits(t *testing.T) {
	g := build(t, edge{A, B, 1}, edge{B, C, 1}, edge{C, D, 1})

	res, err := dijkstra.Dijkstra(g, dijkstra.Source(A), dijkstra.WithMaxDistance(1))
	if err != nil {
		t.Fatal(err)
	}
	if res.Dist[B] != 1 {
		t.Errorf("dist[B] = %d; want 1", res.Dist[B])
	}
	if res.Dist[C] != dijkstra.Infinity || res.Dist[D] != dijkstra.Infinity {
		t.Errorf("C and D must stay unreachable: %v", res.Dist)
	}
}

func TestDijkstra_InfThresholdStopsHeavyEdge(t *testing.T) {
	// A—B(2), B—C(4), A—C(10); threshold 5 removes A—C.
	g := build(t, edge{A, B, 2}, edge{B, C, 4}, edge{A, C, 10}, edge{C, D, 7})

	res, err := dijkstra.Dijkstra(g, dijkstra.Source(A), dijkstra.WithInfEdgeThreshold(5))
	if err != nil {
		t.Fatal(err)
	}
	if res.Dist[C] != 6 {
		t.Errorf("dist[C] = %d; want 6", res.Dist[C])
	}
	if res.Dist[D] != dijkstra.Infinity {
		t.Errorf("dist[D] = %d; want Infinity (C—D is a wall)", res.Dist[D])
	}
}

// ------------------------------------------------------------------------
// 5. Determinism: the lowest id wins ties.
// ------------------------------------------------------------------------

func TestDijkstra_TieBreakLowestID(t *testing.T) {
	// Diamond A—B—D, A—C—D with equal costs: D is reached through B (lower id).
	g := build(t, edge{A, C, 1}, edge{A, B, 1}, edge{C, D, 1}, edge{B, D, 1})

	for i := 0; i < 5; i++ {
		res, err := dijkstra.Dijkstra(g, dijkstra.Source(A))
		if err != nil {
			t.Fatal(err)
		}
		if res.Prev[D] != B {
			t.Fatalf("run %d: prev[D] = %d; want %d", i, res.Prev[D], B)
		}
	}
}

func TestDijkstra_GridDeterministic(t *testing.T) {
	m, err := maze.New(6, 6, maze.WithSeed(3), maze.WithMud(0.3, 4, 9))
	if err != nil {
		t.Fatal(err)
	}
	first, err := dijkstra.Dijkstra(m, dijkstra.Source(0))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		again, err := dijkstra.Dijkstra(m, dijkstra.Source(0))
		if err != nil {
			t.Fatal(err)
		}
		for _, v := range m.Vertices() {
			if first.Dist[v] != again.Dist[v] || first.Prev[v] != again.Prev[v] {
				t.Fatalf("vertex %d differs between runs", v)
			}
		}
	}
}

// ------------------------------------------------------------------------
// 6. Brute force: distances equal the cheapest simple path.
// ------------------------------------------------------------------------

// bruteForce enumerates every simple path from src and returns the cheapest
// cost per vertex.
func bruteForce(t *testing.T, g maze.Graph, src maze.Vertex) map[maze.Vertex]int64 {
	t.Helper()
	best := map[maze.Vertex]int64{src: 0}
	onPath := map[maze.Vertex]bool{src: true}
	var walk func(u maze.Vertex, cost int64)
	walk = func(u maze.Vertex, cost int64) {
		nbrs, err := g.Neighbors(u)
		if err != nil {
			t.Fatal(err)
		}
		for _, v := range nbrs {
			if onPath[v] {
				continue
			}
			w, err := g.Weight(u, v)
			if err != nil {
				t.Fatal(err)
			}
			c := cost + w
			if old, ok := best[v]; !ok || c < old {
				best[v] = c
			}
			onPath[v] = true
			walk(v, c)
			onPath[v] = false
		}
	}
	walk(src, 0)

	return best
}

func TestDijkstra_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 40; trial++ {
		n := 3 + rng.Intn(5)
		g := maze.NewAdjacency()
		for v := 0; v < n; v++ {
			if err := g.AddVertex(maze.Vertex(v)); err != nil {
				t.Fatal(err)
			}
		}
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				if rng.Float64() < 0.5 {
					if err := g.AddEdge(maze.Vertex(u), maze.Vertex(v), int64(rng.Intn(10))); err != nil {
						t.Fatal(err)
					}
				}
			}
		}

		src := maze.Vertex(rng.Intn(n))
		res, err := dijkstra.Dijkstra(g, dijkstra.Source(src))
		if err != nil {
			t.Fatal(err)
		}
		want := bruteForce(t, g, src)
		for _, v := range g.Vertices() {
			exp, ok := want[v]
			if !ok {
				exp = dijkstra.Infinity
			}
			if res.Dist[v] != exp {
				t.Fatalf("trial %d: dist[%d] = %d; want %d", trial, v, res.Dist[v], exp)
			}
			if !res.Reachable(v) {
				continue
			}
			path, err := res.PathTo(v)
			if err != nil {
				t.Fatal(err)
			}
			if cost := pathCost(t, g, src, path); cost != exp {
				t.Fatalf("trial %d: path to %d costs %d; want %d", trial, v, cost, exp)
			}
		}
	}
}

// ------------------------------------------------------------------------
// 7. Edge Cases and PathTo.
// ------------------------------------------------------------------------

func TestDijkstra_SingleVertex(t *testing.T) {
	g := maze.NewAdjacency()
	if err := g.AddVertex(A); err != nil {
		t.Fatal(err)
	}

	res, err := dijkstra.Dijkstra(g, dijkstra.Source(A), dijkstra.WithStopSet(A))
	if err != nil {
		t.Fatal(err)
	}
	if res.Dist[A] != 0 || res.Prev[A] != maze.NoVertex {
		t.Errorf("dist=%d prev=%d; want 0 and NoVertex", res.Dist[A], res.Prev[A])
	}
}

func TestPathTo_SourceToSelfIsEmpty(t *testing.T) {
	g := build(t, edge{A, B, 1}, edge{B, C, 1})
	res, err := dijkstra.Dijkstra(g, dijkstra.Source(A))
	if err != nil {
		t.Fatal(err)
	}

	if p := dijkstra.PathTo(res.Prev, A); len(p) != 0 {
		t.Errorf("PathTo(prev, source) = %v; want empty", p)
	}
	p, err := res.PathTo(A)
	if err != nil || len(p) != 0 {
		t.Errorf("Result.PathTo(source) = %v, %v; want empty, nil", p, err)
	}
}

func TestPathTo_UnknownDestinationIsEmpty(t *testing.T) {
	prev := dijkstra.RoutingTable{A: maze.NoVertex, B: A}
	if p := dijkstra.PathTo(prev, 99); len(p) != 0 {
		t.Errorf("PathTo(unknown) = %v; want empty", p)
	}
	if p := dijkstra.PathTo(prev, B); !equalPath(p, dijkstra.Path{B}) {
		t.Errorf("PathTo(B) = %v; want [B]", p)
	}
}

func TestPathTo_CycleGuard(t *testing.T) {
	prev := dijkstra.RoutingTable{A: B, B: A}
	if p := dijkstra.PathTo(prev, A); len(p) != 0 {
		t.Errorf("PathTo on a cyclic table = %v; want empty", p)
	}
}

// ------------------------------------------------------------------------
// 8. Helpers.
// ------------------------------------------------------------------------

func equalPath(a, b dijkstra.Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func pathCost(t *testing.T, g maze.Graph, src maze.Vertex, p dijkstra.Path) int64 {
	t.Helper()
	var cost int64
	prev := src
	for _, v := range p {
		w, err := g.Weight(prev, v)
		if err != nil {
			t.Fatalf("path step %d→%d: %v", prev, v, err)
		}
		cost += w
		prev = v
	}

	return cost
}
