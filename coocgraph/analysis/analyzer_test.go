package analysis

import (
	"Social_Graph/coocgraph/builder"
	"Social_Graph/coocgraph/graph"
	"Social_Graph/records"
	"context"
	"testing"

	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(AnalyzerTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type AnalyzerTestSuite struct{}

func buildGraph(c *gc.C, recs []records.Record) *graph.Graph {
	b := builder.New()
	for _, rec := range recs {
		b.Add(rec)
	}
	g, _, err := b.Build()
	c.Assert(err, gc.IsNil)
	return g
}

func (s *AnalyzerTestSuite) TestTriangleThread(c *gc.C) {
	// Three users in one thread form a triangle.
	g := buildGraph(c, []records.Record{
		{Page: "P1", Thread: "T1", User: "A"},
		{Page: "P1", Thread: "T1", User: "B"},
		{Page: "P1", Thread: "T1", User: "C"},
	})
	res, err := Analyze(context.Background(), g)
	c.Assert(err, gc.IsNil)

	c.Assert(g.NumNodes(), gc.Equals, 3)
	c.Assert(res.Components, gc.HasLen, 1)
	c.Assert(res.Largest(), gc.HasLen, 3)
	c.Assert(res.DiameterErr, gc.IsNil)
	c.Assert(res.Diameter, gc.Equals, 1)
	c.Assert(res.AvgDegree, gc.Equals, 2.0)
	c.Assert(res.Forest, gc.Equals, false)
	c.Assert(res.CycleSample, gc.HasLen, 3)
}

func (s *AnalyzerTestSuite) TestTwoPairs(c *gc.C) {
	g := buildGraph(c, []records.Record{
		{Page: "P1", Thread: "T1", User: "A"},
		{Page: "P1", Thread: "T1", User: "B"},
		{Page: "P2", Thread: "T2", User: "C"},
		{Page: "P2", Thread: "T2", User: "D"},
	})
	res, err := Analyze(context.Background(), g)
	c.Assert(err, gc.IsNil)

	c.Assert(res.Components, gc.HasLen, 2)
	c.Assert(res.Components[0], gc.HasLen, 2)
	c.Assert(res.Components[1], gc.HasLen, 2)
	c.Assert(res.LargestIdx, gc.Equals, 0, gc.Commentf("size ties must break to the first-encountered component"))
	c.Assert(res.DiameterErr, gc.IsNil)
	c.Assert(res.Diameter, gc.Equals, 1)
	c.Assert(res.Forest, gc.Equals, true)
	c.Assert(res.CycleSample, gc.IsNil)
}

func (s *AnalyzerTestSuite) TestLoneUser(c *gc.C) {
	g := buildGraph(c, []records.Record{
		{Page: "P1", Thread: "T1", User: "A"},
	})
	res, err := Analyze(context.Background(), g)
	c.Assert(err, gc.IsNil)

	c.Assert(res.Components, gc.HasLen, 1)
	c.Assert(res.Largest(), gc.HasLen, 1)
	c.Assert(xerrors.Is(res.DiameterErr, ErrDegenerateGraph), gc.Equals, true,
		gc.Commentf("diameter of a single-node component must be reported as degenerate"))
	c.Assert(res.AvgDegree, gc.Equals, 0.0)
	c.Assert(res.Forest, gc.Equals, true)
}

func (s *AnalyzerTestSuite) TestFourCycleAcrossThreads(c *gc.C) {
	// Four pairwise threads close a 4-cycle A-B-C-D-A.
	g := buildGraph(c, []records.Record{
		{Page: "P", Thread: "T1", User: "A"},
		{Page: "P", Thread: "T1", User: "B"},
		{Page: "P", Thread: "T2", User: "B"},
		{Page: "P", Thread: "T2", User: "C"},
		{Page: "P", Thread: "T3", User: "C"},
		{Page: "P", Thread: "T3", User: "D"},
		{Page: "P", Thread: "T4", User: "D"},
		{Page: "P", Thread: "T4", User: "A"},
	})
	res, err := Analyze(context.Background(), g)
	c.Assert(err, gc.IsNil)

	c.Assert(g.NumNodes(), gc.Equals, 4)
	c.Assert(g.NumEdges(), gc.Equals, 4)
	c.Assert(res.Components, gc.HasLen, 1)
	c.Assert(res.Diameter, gc.Equals, 2)
	c.Assert(res.Forest, gc.Equals, false)
	c.Assert(res.CycleSample, gc.HasLen, 3, gc.Commentf("example cycles are truncated for reporting"))
}

func (s *AnalyzerTestSuite) TestEmptyGraph(c *gc.C) {
	res, err := Analyze(context.Background(), graph.New(0))
	c.Assert(err, gc.IsNil)

	c.Assert(res.Components, gc.HasLen, 0)
	c.Assert(res.LargestIdx, gc.Equals, -1)
	c.Assert(res.Largest(), gc.IsNil)
	c.Assert(xerrors.Is(res.DiameterErr, ErrDegenerateGraph), gc.Equals, true)
	c.Assert(res.AvgDegree, gc.Equals, 0.0)
	c.Assert(res.Forest, gc.Equals, true)
}

func (s *AnalyzerTestSuite) TestComponentsPartitionTheNodeSet(c *gc.C) {
	g := buildGraph(c, []records.Record{
		{Page: "P", Thread: "T1", User: "A"},
		{Page: "P", Thread: "T1", User: "B"},
		{Page: "P", Thread: "T2", User: "C"},
		{Page: "P", Thread: "T2", User: "D"},
		{Page: "P", Thread: "T2", User: "E"},
		{Page: "P", Thread: "T3", User: "F"},
	})
	comps := Components(g)

	seen := make(map[graph.NodeID]int)
	for _, comp := range comps {
		for _, id := range comp {
			_, dup := seen[id]
			c.Assert(dup, gc.Equals, false, gc.Commentf("node %d appears in more than one component", id))
			seen[id] = 1
		}
	}
	c.Assert(seen, gc.HasLen, g.NumNodes(), gc.Commentf("every node must belong to exactly one component"))
}

func (s *AnalyzerTestSuite) TestCoOccurrenceImpliesConnectivity(c *gc.C) {
	recs := []records.Record{
		{Page: "P", Thread: "T1", User: "A"},
		{Page: "P", Thread: "T1", User: "B"},
		{Page: "P", Thread: "T1", User: "C"},
		{Page: "P", Thread: "T2", User: "C"},
		{Page: "P", Thread: "T2", User: "D"},
	}
	b := builder.New()
	for _, rec := range recs {
		b.Add(rec)
	}
	g, ix, err := b.Build()
	c.Assert(err, gc.IsNil)

	comps := Components(g)
	compOf := make(map[graph.NodeID]int)
	for i, comp := range comps {
		for _, id := range comp {
			compOf[id] = i
		}
	}
	// All five users interacted through shared threads, directly or not.
	first, _ := ix.IDOf("A")
	for _, u := range []string{"B", "C", "D"} {
		id, ok := ix.IDOf(u)
		c.Assert(ok, gc.Equals, true)
		c.Assert(compOf[id], gc.Equals, compOf[first])
	}
}

func (s *AnalyzerTestSuite) TestForestVerdictMatchesCountIdentity(c *gc.C) {
	inputs := [][]records.Record{
		{
			{Page: "P", Thread: "T1", User: "A"},
			{Page: "P", Thread: "T1", User: "B"},
			{Page: "P", Thread: "T1", User: "C"},
		},
		{
			{Page: "P", Thread: "T1", User: "A"},
			{Page: "P", Thread: "T1", User: "B"},
			{Page: "P", Thread: "T2", User: "B"},
			{Page: "P", Thread: "T2", User: "C"},
		},
		{
			{Page: "P", Thread: "T1", User: "A"},
		},
		nil,
	}
	for i, recs := range inputs {
		g := buildGraph(c, recs)
		comps := Components(g)
		_, hasCycle := FindCycle(g)
		c.Assert(!hasCycle, gc.Equals, IsForestByCount(g, len(comps)),
			gc.Commentf("input %d: DFS verdict and edge-count identity disagree", i))
	}
}

func (s *AnalyzerTestSuite) TestDiameterBoundsSingleSourceEccentricity(c *gc.C) {
	// Path A-B-C-D: diameter 3, eccentricity from B is 2.
	g := buildGraph(c, []records.Record{
		{Page: "P", Thread: "T1", User: "A"},
		{Page: "P", Thread: "T1", User: "B"},
		{Page: "P", Thread: "T2", User: "B"},
		{Page: "P", Thread: "T2", User: "C"},
		{Page: "P", Thread: "T3", User: "C"},
		{Page: "P", Thread: "T3", User: "D"},
	})
	comps := Components(g)
	c.Assert(comps, gc.HasLen, 1)

	diameter, err := Diameter(context.Background(), g, comps[0])
	c.Assert(err, gc.IsNil)
	c.Assert(diameter, gc.Equals, 3)

	inComponent := make([]bool, g.NumNodes())
	for _, id := range comps[0] {
		inComponent[id] = true
	}
	dist := make([]int, g.NumNodes())
	ecc, reached := eccentricity(g, 1, inComponent, dist)
	c.Assert(reached, gc.Equals, len(comps[0]))
	c.Assert(diameter >= ecc, gc.Equals, true)
}

func (s *AnalyzerTestSuite) TestDiameterRejectsDisconnectedNodeSets(c *gc.C) {
	g := buildGraph(c, []records.Record{
		{Page: "P", Thread: "T1", User: "A"},
		{Page: "P", Thread: "T1", User: "B"},
		{Page: "P", Thread: "T2", User: "C"},
		{Page: "P", Thread: "T2", User: "D"},
	})
	// Nodes 0..3 span two components; treating them as one violates the
	// induced-subgraph precondition.
	_, err := Diameter(context.Background(), g, []graph.NodeID{0, 1, 2, 3})
	c.Assert(xerrors.Is(err, ErrDegenerateGraph), gc.Equals, true)
}

func (s *AnalyzerTestSuite) TestCycleSampleTracesAPath(c *gc.C) {
	g := buildGraph(c, []records.Record{
		{Page: "P", Thread: "T1", User: "A"},
		{Page: "P", Thread: "T1", User: "B"},
		{Page: "P", Thread: "T1", User: "C"},
	})
	cycle, found := FindCycle(g)
	c.Assert(found, gc.Equals, true)
	c.Assert(cycle, gc.HasLen, 3)
	for i := 1; i < len(cycle); i++ {
		// Consecutive edges must share an endpoint.
		shared := cycle[i-1].U == cycle[i].U || cycle[i-1].U == cycle[i].V ||
			cycle[i-1].V == cycle[i].U || cycle[i-1].V == cycle[i].V
		c.Assert(shared, gc.Equals, true)
	}
	for _, e := range cycle {
		c.Assert(g.HasEdge(e.U, e.V), gc.Equals, true)
	}
}
