package dijkstra

import "github.com/katalvlaran/mazeroute/maze"

// PathTo walks prev backwards from dest until a vertex without predecessor
// and returns the reversed walk, excluding the source and including dest.
//
// The result is empty both when dest is the source and when dest was never
// reached; use Result.PathTo or the distance map to tell the two apart.
//
// Complexity: O(len(path)).
func PathTo(prev RoutingTable, dest maze.Vertex) Path {
	var path Path
	for v := dest; ; {
		p, ok := prev[v]
		if !ok || p == maze.NoVertex {
			break
		}
		path = append(path, v)
		// A well-formed routing table is a tree; bail out on a cycle rather
		// than spinning forever.
		if len(path) > len(prev) {
			return Path{}
		}
		v = p
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	if path == nil {
		return Path{}
	}

	return path
}
