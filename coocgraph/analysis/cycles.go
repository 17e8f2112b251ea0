package analysis

import "Social_Graph/coocgraph/graph"

// FindCycle searches the entire graph (all components, not just the
// largest) for a cycle using a depth-first traversal that tracks the
// parent used to reach each node. Reaching an already-visited node that is
// not the current node's parent closes a cycle.
//
// When a cycle exists, the returned edges trace it in path order starting
// and ending at the node where the back edge was discovered. The second
// return value is false for a forest.
func FindCycle(g *graph.Graph) ([]graph.Edge, bool) {
	n := g.NumNodes()
	visited := make([]bool, n)
	parents := make([]graph.NodeID, n)
	for i := range parents {
		parents[i] = -1
	}

	for root := 0; root < n; root++ {
		if visited[root] {
			continue
		}
		if cycle := dfsCycle(g, graph.NodeID(root), -1, visited, parents); cycle != nil {
			return cycle, true
		}
	}
	return nil, false
}

func dfsCycle(g *graph.Graph, v, parent graph.NodeID, visited []bool, parents []graph.NodeID) []graph.Edge {
	visited[v] = true
	for _, w := range g.Neighbors(v) {
		if !visited[w] {
			parents[w] = v
			if cycle := dfsCycle(g, w, v, visited, parents); cycle != nil {
				return cycle
			}
			continue
		}
		if w == parent {
			continue
		}
		// Back edge v->w: the cycle is the tree path w..v plus this edge.
		return traceCycle(v, w, parents)
	}
	return nil
}

func traceCycle(v, w graph.NodeID, parents []graph.NodeID) []graph.Edge {
	var path []graph.NodeID
	for x := v; x != w; x = parents[x] {
		path = append(path, x)
	}
	path = append(path, w)

	// path currently runs v..w; reverse it so the cycle reads w..v,(v,w).
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	cycle := make([]graph.Edge, 0, len(path))
	for i := 1; i < len(path); i++ {
		cycle = append(cycle, graph.NewEdge(path[i-1], path[i]))
	}
	return append(cycle, graph.NewEdge(v, w))
}
