package reporting

import (
	"Social_Graph/coocgraph/analysis"
	"Social_Graph/coocgraph/builder"
	"Social_Graph/coocgraph/graph"
	"fmt"
	"io"

	"golang.org/x/xerrors"
)

// WriteSummary renders a human-readable analysis summary for one dataset
// to w. The layout mirrors the per-network console report of the original
// coursework tooling: counts, component structure, diameter (or the reason
// it is undefined), average degree and the cycle verdict.
func WriteSummary(w io.Writer, name string, g *graph.Graph, ix *builder.Index, res *analysis.Result) error {
	var err error
	printf := func(format string, args ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, args...)
	}

	printf("===== %s Analysis =====\n", name)
	printf("Number of nodes: %d\n", g.NumNodes())
	printf("Number of edges: %d\n", g.NumEdges())
	printf("Number of connected components: %d\n", len(res.Components))
	if largest := res.Largest(); largest != nil {
		printf("Nodes in largest connected component: %d\n", len(largest))
	}
	if res.DiameterErr != nil {
		printf("Diameter of largest connected component: undefined (%v)\n", res.DiameterErr)
	} else {
		printf("Diameter of largest connected component: %d\n", res.Diameter)
	}
	printf("Average degree: %.4f\n", res.AvgDegree)

	if res.Forest {
		printf("Network is a forest (no cycles)\n")
	} else {
		printf("Network contains cycles, e.g.: %s\n", formatCycle(res.CycleSample, ix))
	}
	if err != nil {
		return xerrors.Errorf("write summary: %w", err)
	}
	return nil
}

func formatCycle(cycle []graph.Edge, ix *builder.Index) string {
	out := ""
	for i, e := range cycle {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("(%s, %s)", userLabel(ix, e.U), userLabel(ix, e.V))
	}
	return out
}

func userLabel(ix *builder.Index, id graph.NodeID) string {
	if user, ok := ix.UserOf(id); ok {
		return user
	}
	return fmt.Sprintf("#%d", id)
}
