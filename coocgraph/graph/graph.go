package graph

import (
	"sort"

	"golang.org/x/xerrors"
)

// NodeID identifies a single participant in a co-occurrence graph. IDs are
// dense integers in [0, NumNodes) assigned by the builder in first-seen
// order.
type NodeID int

// Edge represents an undirected connection between two participants that
// posted in at least one common discussion thread. Edges are stored in
// canonical form: U is always the smaller endpoint.
type Edge struct {
	U, V NodeID
}

// NewEdge returns the canonical representation of the edge between u and v.
func NewEdge(u, v NodeID) Edge {
	if v < u {
		u, v = v, u
	}
	return Edge{U: u, V: v}
}

// Graph is an undirected simple graph over a dense set of node IDs. It is
// mutated only while being built; once handed to an analyzer it must be
// treated as an immutable snapshot.
type Graph struct {
	adj   [][]NodeID
	edges map[Edge]struct{}
}

// New returns a graph with numNodes isolated nodes and no edges.
func New(numNodes int) *Graph {
	return &Graph{
		adj:   make([][]NodeID, numNodes),
		edges: make(map[Edge]struct{}),
	}
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int { return len(g.adj) }

// NumEdges returns the number of distinct undirected edges in the graph.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Contains reports whether id belongs to the graph's node set.
func (g *Graph) Contains(id NodeID) bool {
	return id >= 0 && int(id) < len(g.adj)
}

// AddEdge connects u and v. Inserting an edge that already exists is a
// no-op; edge multiplicity never accumulates regardless of how many thread
// groups independently co-occur the same pair.
func (g *Graph) AddEdge(u, v NodeID) error {
	if !g.Contains(u) || !g.Contains(v) {
		return xerrors.Errorf("add edge (%d,%d): %w", u, v, ErrUnknownNode)
	}
	if u == v {
		return xerrors.Errorf("add edge (%d,%d): %w", u, v, ErrSelfLoop)
	}
	e := NewEdge(u, v)
	if _, exists := g.edges[e]; exists {
		return nil
	}
	g.edges[e] = struct{}{}
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	return nil
}

// HasEdge reports whether u and v are directly connected.
func (g *Graph) HasEdge(u, v NodeID) bool {
	_, exists := g.edges[NewEdge(u, v)]
	return exists
}

// Neighbors returns the adjacency list for id. Callers must not mutate the
// returned slice.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	if !g.Contains(id) {
		return nil
	}
	return g.adj[id]
}

// Degree returns the number of edges incident to id.
func (g *Graph) Degree(id NodeID) int {
	if !g.Contains(id) {
		return 0
	}
	return len(g.adj[id])
}

// Edges returns all edges in canonical (U,V) ascending order.
func (g *Graph) Edges() []Edge {
	list := make([]Edge, 0, len(g.edges))
	for e := range g.edges {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].U != list[j].U {
			return list[i].U < list[j].U
		}
		return list[i].V < list[j].V
	})
	return list
}

// SortAdjacency orders every adjacency list ascending so that traversals
// visit neighbors in a stable, reproducible order. Builders call this once
// after the last edge insertion.
func (g *Graph) SortAdjacency() {
	for _, neighbors := range g.adj {
		sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })
	}
}
