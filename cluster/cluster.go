// Package cluster partitions targets into proximity clusters over a
// distance graph and keeps the partition current while targets are consumed.
//
// Two targets share a cluster iff a chain of pairwise distances, each strictly
// below the threshold, connects them: the connected components of the
// threshold graph, found with a disjoint-set (union-find) using path
// compression and union by rank.
//
// After construction clusters only shrink. They never merge or split again
// and their ids stay stable, so a cluster emptied by collection keeps its id
// with zero members.
package cluster

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/mazeroute/dijkstra"
	"github.com/katalvlaran/mazeroute/distgraph"
	"github.com/katalvlaran/mazeroute/maze"
)

// Sentinel errors for cluster operations.
var (
	// ErrNilDistanceGraph indicates New received a nil distance graph.
	ErrNilDistanceGraph = errors.New("cluster: distance graph is nil")

	// ErrNegativeThreshold indicates a threshold below zero.
	ErrNegativeThreshold = errors.New("cluster: threshold must be non-negative")

	// ErrUnknownTarget indicates a vertex that belongs to no cluster.
	ErrUnknownTarget = errors.New("cluster: target is not clustered")
)

// ID identifies a cluster; ids are dense and stable for the index lifetime.
type ID int

// Cluster is a snapshot of one cluster.
type Cluster struct {
	ID              ID
	Members         []maze.Vertex // ascending
	AverageDistance float64
}

type entry struct {
	members map[maze.Vertex]struct{}
	avg     float64
}

// Index owns the clusters of one planning episode and the vertex→cluster map
// kept in lockstep with them.
type Index struct {
	dg        *distgraph.DistanceGraph
	threshold int64
	clusters  []entry
	owner     map[maze.Vertex]ID
}

// New clusters targets using distances from dg.
//
// Stages:
//  1. Validate inputs; every target must be a live point of dg.
//  2. Union every pair whose distance is strictly below threshold.
//  3. Number components in order of first appearance in targets.
//  4. Cache the average intra-cluster distance of each component.
//
// Complexity: O(k²·α(k)) for k targets.
func New(dg *distgraph.DistanceGraph, targets []maze.Vertex, threshold int64) (*Index, error) {
	// 1. Validate inputs and deduplicate targets.
	if dg == nil {
		return nil, ErrNilDistanceGraph
	}
	if threshold < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeThreshold, threshold)
	}

	uniq := make([]maze.Vertex, 0, len(targets))
	seen := make(map[maze.Vertex]bool, len(targets))
	for _, v := range targets {
		if seen[v] {
			continue
		}
		if !dg.Has(v) {
			return nil, fmt.Errorf("%w: %d is not in the distance graph", ErrUnknownTarget, v)
		}
		seen[v] = true
		uniq = append(uniq, v)
	}

	// 2. Disjoint-set forest with path halving and union by rank.
	n := len(uniq)
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
	union := func(u, v int) {
		ru, rv := find(u), find(v)
		if ru == rv {
			return
		}
		switch {
		case rank[ru] < rank[rv]:
			parent[ru] = rv
		case rank[ru] > rank[rv]:
			parent[rv] = ru
		default:
			parent[rv] = ru
			rank[ru]++
		}
	}

	// 2a. Link every close pair.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d, err := dg.Distance(uniq[i], uniq[j])
			if err != nil {
				return nil, err
			}
			if d != dijkstra.Infinity && d < threshold {
				union(i, j)
			}
		}
	}

	// 3. Assign ids by first appearance of each root.
	idx := &Index{
		dg:        dg,
		threshold: threshold,
		owner:     make(map[maze.Vertex]ID, n),
	}
	rootID := make(map[int]ID, n)
	for i, v := range uniq {
		r := find(i)
		id, ok := rootID[r]
		if !ok {
			id = ID(len(idx.clusters))
			rootID[r] = id
			idx.clusters = append(idx.clusters, entry{members: make(map[maze.Vertex]struct{})})
		}
		idx.clusters[id].members[v] = struct{}{}
		idx.owner[v] = id
	}
	// 4. Averages.
	for id := range idx.clusters {
		idx.recompute(ID(id))
	}

	return idx, nil
}

// Threshold returns the distance bound the index was built with.
func (x *Index) Threshold() int64 { return x.threshold }

// Len returns the number of clusters, including emptied ones.
func (x *Index) Len() int { return len(x.clusters) }

// ClusterOf returns the cluster that currently holds v.
func (x *Index) ClusterOf(v maze.Vertex) (ID, bool) {
	id, ok := x.owner[v]

	return id, ok
}

// Size returns the member count of cluster id, or 0 for an unknown id.
func (x *Index) Size(id ID) int {
	if !x.valid(id) {
		return 0
	}

	return len(x.clusters[id].members)
}

// AverageDistance returns the cached mean pairwise distance of cluster id.
func (x *Index) AverageDistance(id ID) float64 {
	if !x.valid(id) {
		return 0
	}

	return x.clusters[id].avg
}

// Members returns the members of cluster id in ascending order.
func (x *Index) Members(id ID) []maze.Vertex {
	if !x.valid(id) {
		return nil
	}

	return sortedMembers(x.clusters[id].members)
}

// Clusters returns a snapshot of every cluster in id order.
func (x *Index) Clusters() []Cluster {
	out := make([]Cluster, len(x.clusters))
	for i, c := range x.clusters {
		out[i] = Cluster{ID: ID(i), Members: sortedMembers(c.members), AverageDistance: c.avg}
	}

	return out
}

// Remove takes a collected target out of its cluster and refreshes that
// cluster's average distance.
func (x *Index) Remove(v maze.Vertex) error {
	id, ok := x.owner[v]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTarget, v)
	}
	delete(x.clusters[id].members, v)
	delete(x.owner, v)
	x.recompute(id)

	return nil
}

// Sync removes every clustered target missing from remaining and returns the
// removed vertices in ascending order. Unknown vertices in remaining are ignored.
func (x *Index) Sync(remaining []maze.Vertex) []maze.Vertex {
	keep := make(map[maze.Vertex]struct{}, len(remaining))
	for _, v := range remaining {
		keep[v] = struct{}{}
	}

	var gone []maze.Vertex
	for v := range x.owner {
		if _, ok := keep[v]; !ok {
			gone = append(gone, v)
		}
	}
	sort.Slice(gone, func(i, j int) bool { return gone[i] < gone[j] })

	for _, v := range gone {
		_ = x.Remove(v)
	}

	return gone
}

// recompute refreshes the mean over all ordered member pairs; clusters with
// fewer than two members average 0.
func (x *Index) recompute(id ID) {
	members := sortedMembers(x.clusters[id].members)
	n := len(members)
	if n < 2 {
		x.clusters[id].avg = 0
		return
	}

	var sum float64
	for _, a := range members {
		for _, b := range members {
			if a == b {
				continue
			}
			d, err := x.dg.Distance(a, b)
			if err != nil || d == dijkstra.Infinity {
				continue
			}
			sum += float64(d)
		}
	}
	x.clusters[id].avg = sum / float64(n*n-n)
}

func (x *Index) valid(id ID) bool {
	return id >= 0 && int(id) < len(x.clusters)
}

func sortedMembers(set map[maze.Vertex]struct{}) []maze.Vertex {
	out := make([]maze.Vertex, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}
