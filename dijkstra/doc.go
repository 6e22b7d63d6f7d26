// Package dijkstra provides the single-source shortest-path engine of
// mazeroute: Dijkstra's algorithm on a maze.Graph with non-negative integer
// weights, extended with an early-termination stop-set.
//
// Overview:
//
//   - Dijkstra(g, Source(v), WithStopSet(targets...)) finalizes vertices in
//     non-decreasing distance order and stops as soon as every stop-set member
//     is final. Planning from an agent to a handful of targets therefore only
//     explores the ball that contains them.
//   - Ties between equal tentative distances are broken by the lowest vertex id;
//     predecessors are replaced only on strictly shorter distances. Two runs on
//     the same input produce identical Distances and RoutingTable values.
//   - PathTo turns a RoutingTable into a Path that excludes the source.
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph, ErrNoSource, ErrVertexNotFound: invalid input.
//   - ErrNegativeWeight: a negative weight met during relaxation.
//   - ErrUnreachable: Result.PathTo on a destination left at Infinity.
//   - ErrNotFinalized: Result.PathTo on a destination reached but not settled.
//   - ErrBadMaxDistance, ErrBadInfThreshold: panics from option constructors.
//
// Unreachable stop-set members never cause an endless loop: the search ends
// when no unfinalized vertex has a finite distance, and those members keep
// Infinity.
//
// Thread safety:
//
//   - A call owns all of its state; concurrent calls over the same read-only
//     graph are safe.
package dijkstra
