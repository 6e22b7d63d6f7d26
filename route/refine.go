package route

import (
	"github.com/katalvlaran/mazeroute/dijkstra"
	"github.com/katalvlaran/mazeroute/distgraph"
	"github.com/katalvlaran/mazeroute/maze"
)

// RefineTour improves the visiting order of tour with deterministic
// first-improvement 2-opt on the open path origin → Order[0] → … → Order[n-1],
// where origin is dg.Origin(). The walk is rebuilt from dg.
//
// Reversing the segment [i..k] of the path P = (origin, Order...) changes the
// cost by Δ = d(a,c) + d(b,e) − d(a,b) − d(c,e) with a=P[i−1], b=P[i], c=P[k]
// and e=P[k+1]; when k is the last index the open end contributes nothing.
// A move is accepted only when Δ < 0, so the result never costs more than
// tour. Legs that dg cannot answer make the move ineligible.
//
// Complexity: O(iter·n²) distance lookups, O(n) per accepted move.
func RefineTour(dg *distgraph.DistanceGraph, tour Tour) Tour {
	n := len(tour.Order)
	if dg == nil || n < 2 {
		return tour
	}

	// P[0] is the fixed origin; positions 1..n are movable.
	p := make([]maze.Vertex, n+1)
	p[0] = dg.Origin()
	copy(p[1:], tour.Order)

	d := func(u, v maze.Vertex) int64 {
		x, err := dg.Distance(u, v)
		if err != nil {
			return dijkstra.Infinity
		}

		return x
	}
	// add sums finite legs; any infinite leg poisons the total.
	add := func(xs ...int64) int64 {
		var s int64
		for _, x := range xs {
			if x == dijkstra.Infinity {
				return dijkstra.Infinity
			}
			s += x
		}

		return s
	}

	improved := true
	for improved {
		improved = false
	scan:
		for i := 1; i < n; i++ {
			for k := i + 1; k <= n; k++ {
				a, b, c := p[i-1], p[i], p[k]
				var before, after int64
				if k == n {
					before = add(d(a, b))
					after = add(d(a, c))
				} else {
					e := p[k+1]
					before = add(d(a, b), d(c, e))
					after = add(d(a, c), d(b, e))
				}
				if after == dijkstra.Infinity || before == dijkstra.Infinity || after >= before {
					continue
				}
				for l, r := i, k; l < r; l, r = l+1, r-1 {
					p[l], p[r] = p[r], p[l]
				}
				improved = true
				break scan
			}
		}
	}

	out := Tour{Order: append([]maze.Vertex(nil), p[1:]...)}
	for i := 1; i <= n; i++ {
		leg, err := dg.Path(p[i-1], p[i])
		if err != nil {
			return tour
		}
		out.Route = append(out.Route, leg...)
		out.Cost += d(p[i-1], p[i])
	}
	if out.Cost > tour.Cost {
		return tour
	}

	return out
}
