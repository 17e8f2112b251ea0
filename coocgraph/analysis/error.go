package analysis

import "golang.org/x/xerrors"

var (
	// ErrDegenerateGraph is returned by diameter computation when the
	// target component has fewer than two nodes or turns out not to be
	// connected. It is a reported, recoverable condition: the rest of the
	// metric bundle is still delivered.
	ErrDegenerateGraph = xerrors.New("component is too small or not connected")

	// ErrCorruptGraph indicates that the graph violates a structural
	// precondition (for example an adjacency entry referencing a node
	// outside the node set). It points at a defect in the builder and is
	// fatal to the analysis call.
	ErrCorruptGraph = xerrors.New("graph violates structural invariants")
)
