package maze

import (
	"fmt"
	"sort"
)

// arc is one outgoing half of an undirected edge.
type arc struct {
	to     Vertex
	weight int64
}

// Adjacency is a general undirected weighted graph stored as sorted adjacency
// lists. It implements Graph and backs Maze; tests use it directly to model
// arbitrary topologies.
//
// Adjacency is not safe for concurrent mutation. Once built it may be read by
// any number of goroutines.
type Adjacency struct {
	vertices []Vertex         // ascending
	arcs     map[Vertex][]arc // per-vertex arcs, ascending by arc.to
}

// NewAdjacency returns an empty graph.
func NewAdjacency() *Adjacency {
	return &Adjacency{arcs: make(map[Vertex][]arc)}
}

// AddVertex inserts v if it is not present yet.
// Complexity: O(V) worst case for the ordered insert.
func (a *Adjacency) AddVertex(v Vertex) error {
	if v < 0 {
		return fmt.Errorf("%w: %d", ErrBadVertex, v)
	}
	if _, ok := a.arcs[v]; ok {
		return nil
	}
	a.arcs[v] = nil

	i := sort.Search(len(a.vertices), func(i int) bool { return a.vertices[i] >= v })
	a.vertices = append(a.vertices, 0)
	copy(a.vertices[i+1:], a.vertices[i:])
	a.vertices[i] = v

	return nil
}

// AddEdge connects u and v with the given weight, adding missing endpoints.
// Returns ErrNegativeWeight, ErrSelfLoop or ErrDuplicateEdge on invalid input.
func (a *Adjacency) AddEdge(u, v Vertex, weight int64) error {
	if weight < 0 {
		return fmt.Errorf("%w: %d-%d weight=%d", ErrNegativeWeight, u, v, weight)
	}
	if u == v {
		return fmt.Errorf("%w: %d", ErrSelfLoop, u)
	}
	if err := a.AddVertex(u); err != nil {
		return err
	}
	if err := a.AddVertex(v); err != nil {
		return err
	}
	if _, ok := a.find(u, v); ok {
		return fmt.Errorf("%w: %d-%d", ErrDuplicateEdge, u, v)
	}
	a.insertArc(u, arc{to: v, weight: weight})
	a.insertArc(v, arc{to: u, weight: weight})

	return nil
}

// RemoveEdge deletes the edge between u and v, turning it into a wall.
func (a *Adjacency) RemoveEdge(u, v Vertex) error {
	i, ok := a.find(u, v)
	if !ok {
		return fmt.Errorf("%w: %d-%d", ErrNotAdjacent, u, v)
	}
	a.arcs[u] = append(a.arcs[u][:i], a.arcs[u][i+1:]...)
	j, _ := a.find(v, u)
	a.arcs[v] = append(a.arcs[v][:j], a.arcs[v][j+1:]...)

	return nil
}

// Vertices returns a copy of all vertex ids in ascending order.
func (a *Adjacency) Vertices() []Vertex {
	out := make([]Vertex, len(a.vertices))
	copy(out, a.vertices)

	return out
}

// HasVertex reports whether v is present.
func (a *Adjacency) HasVertex(v Vertex) bool {
	_, ok := a.arcs[v]

	return ok
}

// Neighbors returns the vertices adjacent to v in ascending order.
func (a *Adjacency) Neighbors(v Vertex) ([]Vertex, error) {
	arcs, ok := a.arcs[v]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrVertexNotFound, v)
	}
	out := make([]Vertex, len(arcs))
	for i, e := range arcs {
		out[i] = e.to
	}

	return out, nil
}

// Weight returns the cost of the edge u-v.
func (a *Adjacency) Weight(u, v Vertex) (int64, error) {
	if !a.HasVertex(u) {
		return 0, fmt.Errorf("%w: %d", ErrVertexNotFound, u)
	}
	i, ok := a.find(u, v)
	if !ok {
		return 0, fmt.Errorf("%w: %d-%d", ErrNotAdjacent, u, v)
	}

	return a.arcs[u][i].weight, nil
}

// EdgeCount returns the number of undirected edges.
func (a *Adjacency) EdgeCount() int {
	n := 0
	for _, arcs := range a.arcs {
		n += len(arcs)
	}

	return n / 2
}

// find locates the arc u→v by binary search.
func (a *Adjacency) find(u, v Vertex) (int, bool) {
	arcs := a.arcs[u]
	i := sort.Search(len(arcs), func(i int) bool { return arcs[i].to >= v })
	if i < len(arcs) && arcs[i].to == v {
		return i, true
	}

	return i, false
}

// insertArc keeps a.arcs[u] sorted by destination.
func (a *Adjacency) insertArc(u Vertex, e arc) {
	i, _ := a.find(u, e.to)
	arcs := append(a.arcs[u], arc{})
	copy(arcs[i+1:], arcs[i:])
	arcs[i] = e
	a.arcs[u] = arcs
}
