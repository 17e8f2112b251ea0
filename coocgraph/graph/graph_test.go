package graph

import (
	"testing"

	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(GraphTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type GraphTestSuite struct{}

func (s *GraphTestSuite) TestNewGraphIsEmpty(c *gc.C) {
	g := New(0)
	c.Assert(g.NumNodes(), gc.Equals, 0)
	c.Assert(g.NumEdges(), gc.Equals, 0)
	c.Assert(g.Edges(), gc.HasLen, 0)
}

func (s *GraphTestSuite) TestAddEdge(c *gc.C) {
	g := New(3)
	c.Assert(g.AddEdge(0, 1), gc.IsNil)
	c.Assert(g.AddEdge(2, 1), gc.IsNil)
	c.Assert(g.NumEdges(), gc.Equals, 2)
	c.Assert(g.HasEdge(0, 1), gc.Equals, true)
	c.Assert(g.HasEdge(1, 0), gc.Equals, true, gc.Commentf("edges must be undirected"))
	c.Assert(g.HasEdge(1, 2), gc.Equals, true)
	c.Assert(g.HasEdge(0, 2), gc.Equals, false)
}

func (s *GraphTestSuite) TestAddEdgeIsIdempotent(c *gc.C) {
	g := New(2)
	c.Assert(g.AddEdge(0, 1), gc.IsNil)
	c.Assert(g.AddEdge(0, 1), gc.IsNil)
	c.Assert(g.AddEdge(1, 0), gc.IsNil)
	c.Assert(g.NumEdges(), gc.Equals, 1, gc.Commentf("edge multiplicity must never accumulate"))
	c.Assert(g.Degree(0), gc.Equals, 1)
	c.Assert(g.Degree(1), gc.Equals, 1)
}

func (s *GraphTestSuite) TestAddEdgeRejectsSelfLoops(c *gc.C) {
	g := New(2)
	err := g.AddEdge(1, 1)
	c.Assert(xerrors.Is(err, ErrSelfLoop), gc.Equals, true)
	c.Assert(g.NumEdges(), gc.Equals, 0)
}

func (s *GraphTestSuite) TestAddEdgeRejectsUnknownNodes(c *gc.C) {
	g := New(2)
	c.Assert(xerrors.Is(g.AddEdge(0, 2), ErrUnknownNode), gc.Equals, true)
	c.Assert(xerrors.Is(g.AddEdge(-1, 1), ErrUnknownNode), gc.Equals, true)
	c.Assert(g.NumEdges(), gc.Equals, 0)
}

func (s *GraphTestSuite) TestEdgesAreCanonicalAndSorted(c *gc.C) {
	g := New(4)
	c.Assert(g.AddEdge(3, 2), gc.IsNil)
	c.Assert(g.AddEdge(1, 0), gc.IsNil)
	c.Assert(g.AddEdge(3, 0), gc.IsNil)

	c.Assert(g.Edges(), gc.DeepEquals, []Edge{{U: 0, V: 1}, {U: 0, V: 3}, {U: 2, V: 3}})
}

func (s *GraphTestSuite) TestSortAdjacency(c *gc.C) {
	g := New(4)
	c.Assert(g.AddEdge(0, 3), gc.IsNil)
	c.Assert(g.AddEdge(0, 1), gc.IsNil)
	c.Assert(g.AddEdge(0, 2), gc.IsNil)
	g.SortAdjacency()

	c.Assert(g.Neighbors(0), gc.DeepEquals, []NodeID{1, 2, 3})
}

func (s *GraphTestSuite) TestIsolatedNodesHaveDegreeZero(c *gc.C) {
	g := New(3)
	c.Assert(g.AddEdge(0, 1), gc.IsNil)
	c.Assert(g.Degree(2), gc.Equals, 0)
	c.Assert(g.Neighbors(2), gc.HasLen, 0)
}
