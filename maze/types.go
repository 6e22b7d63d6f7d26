// Package maze defines the read-only graph capability consumed by the routing
// packages, together with the vertex, action and sentinel-error types shared by
// every layer of github.com/katalvlaran/mazeroute.
package maze

import (
	"errors"
	"fmt"
)

// Vertex is an opaque identifier of a maze cell. For grid mazes it is the
// row-major index y*Width + x.
type Vertex int

// NoVertex marks "no vertex": the predecessor of a search source, an unreached
// vertex, or an unset target.
const NoVertex Vertex = -1

// Graph is the capability every routing algorithm consumes. Implementations
// must return Vertices and Neighbors in ascending order so that searches built
// on top of them are reproducible.
//
// A Graph is never mutated by the routing packages; sharing one instance
// between several agents requires no locking as long as nobody else mutates it.
type Graph interface {
	// Vertices returns every vertex in ascending order.
	Vertices() []Vertex
	// HasVertex reports whether v belongs to the graph.
	HasVertex(v Vertex) bool
	// Neighbors returns the vertices adjacent to v in ascending order.
	Neighbors(v Vertex) ([]Vertex, error)
	// Weight returns the non-negative cost of moving from u to adjacent v.
	Weight(u, v Vertex) (int64, error)
}

// Navigator is a Graph that can also translate a step between adjacent
// vertices into the Action the game engine expects.
type Navigator interface {
	Graph
	LocationsToAction(from, to Vertex) (Action, error)
}

// Sentinel errors for maze operations.
var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("maze: grid must have at least one row and one column")

	// ErrBadVertex indicates a negative vertex identifier.
	ErrBadVertex = errors.New("maze: vertex id must be non-negative")

	// ErrVertexNotFound indicates an operation referenced a vertex outside the graph.
	ErrVertexNotFound = errors.New("maze: vertex not found")

	// ErrNotAdjacent indicates that two vertices share no edge.
	ErrNotAdjacent = errors.New("maze: vertices are not adjacent")

	// ErrNegativeWeight indicates an attempt to store a negative edge weight.
	ErrNegativeWeight = errors.New("maze: edge weight must be non-negative")

	// ErrSelfLoop indicates an edge from a vertex to itself.
	ErrSelfLoop = errors.New("maze: self-loops are not allowed")

	// ErrDuplicateEdge indicates that the edge already exists.
	ErrDuplicateEdge = errors.New("maze: edge already exists")

	// ErrBadAction indicates an action value outside the Action enumeration.
	ErrBadAction = errors.New("maze: unknown action")
)

// Action is a discrete move of an agent between two adjacent cells.
type Action int

const (
	// Nothing keeps the agent in place. It is the no-op answer of a planner
	// that has nowhere to go.
	Nothing Action = iota
	// North moves to y-1.
	North
	// East moves to x+1.
	East
	// South moves to y+1.
	South
	// West moves to x-1.
	West
)

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a {
	case Nothing:
		return "nothing"
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// offset returns the (dx, dy) displacement of a.
func (a Action) offset() (dx, dy int, err error) {
	switch a {
	case Nothing:
		return 0, 0, nil
	case North:
		return 0, -1, nil
	case East:
		return 1, 0, nil
	case South:
		return 0, 1, nil
	case West:
		return -1, 0, nil
	default:
		return 0, 0, fmt.Errorf("%w: %d", ErrBadAction, int(a))
	}
}
