package analysis

import (
	"Social_Graph/coocgraph/graph"
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

// maxCycleSampleEdges bounds the number of edges included in the example
// cycle reported alongside a negative forest verdict.
const maxCycleSampleEdges = 3

// Result aggregates the structural metrics computed for one graph
// snapshot. Metric failures do not cascade: a diameter that cannot be
// computed is carried in DiameterErr while every other field remains
// valid.
type Result struct {
	// Components partitions the node set; each entry lists the member
	// node IDs of one connected component in ascending order. The
	// component order follows the ascending-id partition scan.
	Components [][]graph.NodeID

	// LargestIdx is the index into Components of the component with the
	// most nodes, ties broken by first-encountered order. It is -1 for a
	// graph with no nodes.
	LargestIdx int

	// Diameter is the greatest shortest-path distance between any two
	// nodes of the largest component. Only valid when DiameterErr is nil.
	Diameter int

	// DiameterErr is set when the diameter is undefined, typically
	// because the largest component has fewer than two nodes.
	DiameterErr error

	// Degrees maps each node ID to its incident-edge count.
	Degrees []int

	// AvgDegree is the mean of Degrees, or 0 for an empty graph.
	AvgDegree float64

	// Forest is true when no component contains a cycle.
	Forest bool

	// CycleSample holds up to maxCycleSampleEdges edges of one discovered
	// cycle, in path order, when Forest is false.
	CycleSample []graph.Edge
}

// Largest returns the node IDs of the largest connected component, or nil
// for an empty graph.
func (r *Result) Largest() []graph.NodeID {
	if r.LargestIdx < 0 {
		return nil
	}
	return r.Components[r.LargestIdx]
}

// Analyze computes the full metric bundle for g. The graph must not be
// mutated while the analysis runs; given that, the independent metrics
// (components, degrees, cycle check) are computed concurrently. Diameter
// runs last since it needs the largest component, and its failure is
// captured in the result rather than returned.
func Analyze(ctx context.Context, g *graph.Graph) (*Result, error) {
	if err := checkIntegrity(g); err != nil {
		return nil, err
	}

	res := &Result{LargestIdx: -1}
	var eg errgroup.Group
	eg.Go(func() error {
		res.Components = Components(g)
		for i, comp := range res.Components {
			if res.LargestIdx < 0 || len(comp) > len(res.Components[res.LargestIdx]) {
				res.LargestIdx = i
			}
		}
		return nil
	})
	eg.Go(func() error {
		res.Degrees, res.AvgDegree = Degrees(g)
		return nil
	})
	eg.Go(func() error {
		cycle, found := FindCycle(g)
		res.Forest = !found
		if found {
			if len(cycle) > maxCycleSampleEdges {
				cycle = cycle[:maxCycleSampleEdges]
			}
			res.CycleSample = cycle
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if res.LargestIdx < 0 {
		res.DiameterErr = xerrors.Errorf("diameter: graph has no nodes: %w", ErrDegenerateGraph)
		return res, nil
	}
	diameter, err := Diameter(ctx, g, res.Components[res.LargestIdx])
	if err != nil {
		res.DiameterErr = err
	} else {
		res.Diameter = diameter
	}
	return res, nil
}

// Components partitions the node set into maximal connected subsets using
// a breadth-first scan from each unvisited node in ascending id order.
// Every node is visited exactly once; O(nodes + edges) overall.
func Components(g *graph.Graph) [][]graph.NodeID {
	n := g.NumNodes()
	visited := make([]bool, n)
	var components [][]graph.NodeID

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		var comp []graph.NodeID
		queue := []graph.NodeID{graph.NodeID(start)}
		visited[start] = true
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			comp = append(comp, v)
			for _, w := range g.Neighbors(v) {
				if !visited[w] {
					visited[w] = true
					queue = append(queue, w)
				}
			}
		}
		components = append(components, comp)
	}
	return components
}

// Diameter returns the maximum shortest-path distance between any ordered
// pair of nodes in the induced subgraph over component. It runs one BFS
// per member node, O(V·(V+E)) on the component, and honors context
// cancellation between BFS roots.
func Diameter(ctx context.Context, g *graph.Graph, component []graph.NodeID) (int, error) {
	if len(component) < 2 {
		return 0, xerrors.Errorf("diameter: component has %d node(s): %w", len(component), ErrDegenerateGraph)
	}

	inComponent := make([]bool, g.NumNodes())
	for _, id := range component {
		inComponent[id] = true
	}

	dist := make([]int, g.NumNodes())
	best := 0
	for _, root := range component {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		ecc, reached := eccentricity(g, root, inComponent, dist)
		if reached != len(component) {
			return 0, xerrors.Errorf("diameter: only %d of %d nodes reachable from node %d: %w",
				reached, len(component), root, ErrDegenerateGraph)
		}
		if ecc > best {
			best = ecc
		}
	}
	return best, nil
}

// eccentricity runs a single BFS from root restricted to the marked
// component and returns the maximum finite distance observed plus the
// number of nodes reached. dist is scratch space reused across calls.
func eccentricity(g *graph.Graph, root graph.NodeID, inComponent []bool, dist []int) (int, int) {
	for i := range dist {
		dist[i] = -1
	}
	dist[root] = 0
	queue := []graph.NodeID{root}
	maxDist, reached := 0, 1
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range g.Neighbors(v) {
			if !inComponent[w] || dist[w] >= 0 {
				continue
			}
			dist[w] = dist[v] + 1
			if dist[w] > maxDist {
				maxDist = dist[w]
			}
			reached++
			queue = append(queue, w)
		}
	}
	return maxDist, reached
}

// Degrees returns the per-node incident-edge counts and their mean. The
// mean of an empty graph is defined as 0, not an error.
func Degrees(g *graph.Graph) ([]int, float64) {
	n := g.NumNodes()
	degrees := make([]int, n)
	if n == 0 {
		return degrees, 0
	}
	sum := 0
	for i := 0; i < n; i++ {
		degrees[i] = g.Degree(graph.NodeID(i))
		sum += degrees[i]
	}
	return degrees, float64(sum) / float64(n)
}

// IsForestByCount reports the forest verdict using the identity
// edges == nodes - components, which holds for undirected simple graphs.
// It must agree with FindCycle on every input and doubles as a cheap
// cross-check in tests.
func IsForestByCount(g *graph.Graph, numComponents int) bool {
	return g.NumEdges() == g.NumNodes()-numComponents
}

// checkIntegrity verifies that every adjacency entry references a node
// inside the node set and carries no self-loop. A violation means the
// graph was corrupted by its producer.
func checkIntegrity(g *graph.Graph) error {
	n := g.NumNodes()
	for v := 0; v < n; v++ {
		for _, w := range g.Neighbors(graph.NodeID(v)) {
			if !g.Contains(w) {
				return xerrors.Errorf("node %d links to non-existent node %d: %w", v, w, ErrCorruptGraph)
			}
			if w == graph.NodeID(v) {
				return xerrors.Errorf("node %d links to itself: %w", v, ErrCorruptGraph)
			}
		}
	}
	return nil
}
