// Package dijkstra_test provides examples demonstrating how to use the
// stop-set Dijkstra search. Each example is runnable via
// “go test -run Example”.
package dijkstra_test

import (
	"fmt"

	"github.com/katalvlaran/mazeroute/dijkstra"
	"github.com/katalvlaran/mazeroute/maze"
)

// ExampleDijkstra_stopSet searches a 4×4 open grid from the top-left corner
// until the two cheese cells are settled, then prints the route to each.
func ExampleDijkstra_stopSet() {
	m, err := maze.New(4, 4)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	cheese := []maze.Vertex{m.Index(3, 0), m.Index(1, 2)}

	res, err := dijkstra.Dijkstra(m, dijkstra.Source(0), dijkstra.WithStopSet(cheese...))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, c := range cheese {
		path, _ := res.PathTo(c)
		fmt.Printf("cheese %d: dist=%d path=%v\n", c, res.Dist[c], path)
	}
	// Output:
	// cheese 3: dist=3 path=[1 2 3]
	// cheese 9: dist=3 path=[1 5 9]
}

// ExampleDijkstra_mud shows a search preferring a longer dry detour over a
// single mud crossing.
func ExampleDijkstra_mud() {
	g := maze.NewAdjacency()
	_ = g.AddEdge(0, 1, 6) // mud
	_ = g.AddEdge(0, 2, 1)
	_ = g.AddEdge(2, 3, 1)
	_ = g.AddEdge(3, 1, 1)

	res, err := dijkstra.Dijkstra(g, dijkstra.Source(0), dijkstra.WithStopSet(1))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Dist[1], dijkstra.PathTo(res.Prev, 1))
	// Output: 3 [2 3 1]
}
