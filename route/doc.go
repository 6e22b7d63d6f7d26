// Package route turns shortest-path data into moves for an agent collecting
// targets in a maze.
//
// The package has two layers.
//
// Pure selection functions operate on distances only:
//   - Nearest picks the closest reachable target (ties: lowest vertex id).
//   - ClusterWeightedNearest scores targets with ClusterScore,
//     distance − 2·size + average, where size and average describe the
//     target's proximity cluster.
//   - NearestTour chains nearest-unvisited choices into a full tour over a
//     distgraph.DistanceGraph, and RefineTour improves it with open-path 2-opt.
//
// Planner holds the per-episode state (distance graph, clusters, the route
// being walked) and answers one NextMove per game turn. Its Policy decides
// when the route is recomputed:
//
//	PolicyNearestTour      plan once, walk the whole tour
//	PolicyClusterWeighted  rescore every turn
//	PolicyGreedyPerTarget  pick a new target when the route is used up
//	PolicyGreedyEachTurn   as above, and drop targets someone else collected
//
// All policies recompute when the next step is no longer adjacent to the
// agent, which happens while it is stuck crossing mud.
//
// A Planner is owned by one agent and is not safe for concurrent use; any
// number of planners may share one read-only maze.
package route
