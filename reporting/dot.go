package reporting

import (
	"Social_Graph/coocgraph/builder"
	"Social_Graph/coocgraph/graph"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/xerrors"
)

// WriteDOT exports the graph in Graphviz DOT format so external tooling
// can produce a spatial layout drawing. Nodes are labelled with the user
// names from the index.
func WriteDOT(w io.Writer, name string, g *graph.Graph, ix *builder.Index) error {
	var err error
	printf := func(format string, args ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, args...)
	}

	printf("graph %s {\n", strconv.Quote(name))
	for id := 0; id < g.NumNodes(); id++ {
		printf("  n%d [label=%s];\n", id, strconv.Quote(userLabel(ix, graph.NodeID(id))))
	}
	for _, e := range g.Edges() {
		printf("  n%d -- n%d;\n", e.U, e.V)
	}
	printf("}\n")
	if err != nil {
		return xerrors.Errorf("write dot: %w", err)
	}
	return nil
}
