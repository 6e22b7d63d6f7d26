// Package maze treats a rectangular PyRat-style grid as a weighted graph.
//
// Cells are vertices numbered in row-major order (y*Width + x). Orthogonal
// neighbours are connected unless a wall separates them; ordinary moves cost 1
// and mud costs between DefaultMudMin and DefaultMudMax.
//
// Complexity:
//
//   - New:               O(W×H·α(W×H)) with walls, O(W×H) otherwise.
//   - Neighbors, Weight: O(log d), d ≤ 4.
//   - LocationsToAction: O(log d).
package maze

import (
	"fmt"
	"math/rand"
)

// Maze is an immutable grid maze. It implements Graph and is safe for
// concurrent readers.
type Maze struct {
	Width, Height int
	graph         *Adjacency
}

// New builds a width×height maze. Without options every orthogonal pair of
// cells is connected with weight 1.
//
// Stages:
//  1. Validate dimensions (ErrEmptyGrid).
//  2. Emit candidate edges right and bottom of each cell in row-major order.
//  3. If walls are requested, keep a random spanning tree plus each other
//     edge with probability 1-density.
//  4. Assign mud weights.
//  5. Remove explicit walls (ErrNotAdjacent for unknown edges).
func New(width, height int, opts ...Option) (*Maze, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, width, height)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil && (cfg.wallDensity > 0 || cfg.mudProb > 0) {
		cfg.rng = rand.New(rand.NewSource(DefaultSeed))
	}

	m := &Maze{Width: width, Height: height, graph: NewAdjacency()}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if err := m.graph.AddVertex(m.Index(x, y)); err != nil {
				return nil, err
			}
		}
	}

	candidates := make([]wall, 0, 2*width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := m.Index(x, y)
			if x+1 < width {
				candidates = append(candidates, wall{u: u, v: m.Index(x+1, y)})
			}
			if y+1 < height {
				candidates = append(candidates, wall{u: u, v: m.Index(x, y+1)})
			}
		}
	}
	if cfg.wallDensity > 0 {
		candidates = keepSpanning(candidates, width*height, cfg.wallDensity, cfg.rng)
	}

	for _, e := range candidates {
		w := int64(1)
		if cfg.mudProb > 0 && cfg.rng.Float64() < cfg.mudProb {
			w = cfg.mudMin + cfg.rng.Int63n(cfg.mudMax-cfg.mudMin+1)
		}
		if err := m.graph.AddEdge(e.u, e.v, w); err != nil {
			return nil, err
		}
	}

	for _, e := range cfg.walls {
		if err := m.graph.RemoveEdge(e.u, e.v); err != nil {
			return nil, fmt.Errorf("maze: wall %d-%d: %w", e.u, e.v, err)
		}
	}

	return m, nil
}

// keepSpanning shuffles the candidate edges, keeps a spanning tree found by
// Kruskal's union-find, and keeps every remaining edge with probability 1-density.
// The result is sorted back into emission order so weights are drawn
// deterministically.
func keepSpanning(edges []wall, n int, density float64, rng *rand.Rand) []wall {
	order := rng.Perm(len(edges))

	parent := make([]int, n)
	rank := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	find := func(u int) int {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}

		return u
	}

	keep := make([]bool, len(edges))
	for _, i := range order {
		ru, rv := find(int(edges[i].u)), find(int(edges[i].v))
		if ru != rv {
			switch {
			case rank[ru] < rank[rv]:
				parent[ru] = rv
			case rank[ru] > rank[rv]:
				parent[rv] = ru
			default:
				parent[rv] = ru
				rank[ru]++
			}
			keep[i] = true
			continue
		}
		keep[i] = rng.Float64() >= density
	}

	out := edges[:0]
	for i, e := range edges {
		if keep[i] {
			out = append(out, e)
		}
	}

	return out
}

// Index maps (x,y) to its row-major vertex id.
func (m *Maze) Index(x, y int) Vertex {
	return Vertex(y*m.Width + x)
}

// Coordinate converts a vertex id back to (x,y).
func (m *Maze) Coordinate(v Vertex) (x, y int) {
	return int(v) % m.Width, int(v) / m.Width
}

// InBounds reports whether (x,y) lies inside the grid.
func (m *Maze) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Vertices returns all cells in ascending order.
func (m *Maze) Vertices() []Vertex { return m.graph.Vertices() }

// HasVertex reports whether v is a cell of the maze.
func (m *Maze) HasVertex(v Vertex) bool { return m.graph.HasVertex(v) }

// Neighbors returns the reachable orthogonal neighbours of v in ascending order.
func (m *Maze) Neighbors(v Vertex) ([]Vertex, error) { return m.graph.Neighbors(v) }

// Weight returns the number of turns needed to cross from u to v.
func (m *Maze) Weight(u, v Vertex) (int64, error) { return m.graph.Weight(u, v) }

// EdgeCount returns the number of open passages.
func (m *Maze) EdgeCount() int { return m.graph.EdgeCount() }

// LocationsToAction converts a move between adjacent cells into an Action.
// from == to yields Nothing.
func (m *Maze) LocationsToAction(from, to Vertex) (Action, error) {
	if !m.HasVertex(from) {
		return Nothing, fmt.Errorf("%w: %d", ErrVertexNotFound, from)
	}
	if !m.HasVertex(to) {
		return Nothing, fmt.Errorf("%w: %d", ErrVertexNotFound, to)
	}
	if from == to {
		return Nothing, nil
	}
	if _, err := m.Weight(from, to); err != nil {
		return Nothing, err
	}

	fx, fy := m.Coordinate(from)
	tx, ty := m.Coordinate(to)
	switch {
	case tx == fx && ty == fy-1:
		return North, nil
	case tx == fx+1 && ty == fy:
		return East, nil
	case tx == fx && ty == fy+1:
		return South, nil
	case tx == fx-1 && ty == fy:
		return West, nil
	}

	return Nothing, fmt.Errorf("%w: %d-%d", ErrNotAdjacent, from, to)
}

// Move applies a to from. A blocked or out-of-grid move returns ErrNotAdjacent
// and leaves the agent at from.
func (m *Maze) Move(from Vertex, a Action) (Vertex, error) {
	dx, dy, err := a.offset()
	if err != nil {
		return from, err
	}
	if !m.HasVertex(from) {
		return from, fmt.Errorf("%w: %d", ErrVertexNotFound, from)
	}
	if a == Nothing {
		return from, nil
	}
	x, y := m.Coordinate(from)
	nx, ny := x+dx, y+dy
	if !m.InBounds(nx, ny) {
		return from, fmt.Errorf("%w: %s from %d leaves the grid", ErrNotAdjacent, a, from)
	}
	to := m.Index(nx, ny)
	if _, err = m.Weight(from, to); err != nil {
		return from, err
	}

	return to, nil
}
