package arena

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/katalvlaran/mazeroute/maze"
)

// ErrTooMuchCheese indicates more cheese than free cells.
var ErrTooMuchCheese = errors.New("arena: not enough free cells for the cheese")

// PlaceCheese picks n distinct cells of m, none of them in exclude, using a
// generator seeded with seed. The result is sorted.
func PlaceCheese(m *maze.Maze, n int, seed int64, exclude ...maze.Vertex) ([]maze.Vertex, error) {
	if m == nil {
		return nil, ErrNilMaze
	}
	skip := make(map[maze.Vertex]bool, len(exclude))
	for _, v := range exclude {
		skip[v] = true
	}
	free := make([]maze.Vertex, 0, m.Width*m.Height)
	for _, v := range m.Vertices() {
		if !skip[v] {
			free = append(free, v)
		}
	}
	if n < 0 || n > len(free) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrTooMuchCheese, n, len(free))
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	out := append([]maze.Vertex(nil), free[:n]...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out, nil
}
