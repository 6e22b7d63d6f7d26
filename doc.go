// Package mazeroute is a routing core for agents that collect targets
// ("cheese") in a weighted grid maze.
//
// The module is organized as small packages, each owning one concern:
//
//	maze/       grid mazes with walls and mud, the Graph capability, Actions
//	dijkstra/   single-source shortest paths with an early-stop target set
//	distgraph/  complete distance graph over the points of interest
//	cluster/    threshold clustering of targets, kept current as they vanish
//	route/      target-selection policies and the per-agent Planner
//	arena/      turn-synchronous matches between planners
//
// A typical agent builds a Planner once per episode:
//
//	m, _ := maze.New(21, 15, maze.WithSeed(7), maze.WithWallDensity(0.7), maze.WithMud(0.1, 4, 9))
//	p, _ := route.NewPlanner(m, route.WithPolicy(route.PolicyGreedyEachTurn))
//	_, _ = p.Plan(start, cheese)
//	act, err := p.NextMove(pos, remaining) // once per turn
//
// The maze is read-only after construction and may be shared by any number
// of planners; each Planner belongs to a single agent.
//
// See examples/cheese_hunt for a complete match.
package mazeroute
