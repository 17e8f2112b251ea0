package graph

import "golang.org/x/xerrors"

var (
	// ErrUnknownNode is returned when an edge endpoint falls outside the
	// graph's node set. Seeing it at runtime indicates a defect in the
	// component that constructed the graph.
	ErrUnknownNode = xerrors.New("node is not part of the graph")

	// ErrSelfLoop is returned when an edge would connect a node to itself.
	ErrSelfLoop = xerrors.New("self-loops are not allowed")
)
