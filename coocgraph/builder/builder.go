package builder

import (
	"Social_Graph/coocgraph/graph"
	"Social_Graph/records"
	"sort"

	"golang.org/x/xerrors"
)

// threadKey is the compound key that groups interaction records into a
// single discussion thread.
type threadKey struct {
	page   string
	thread string
}

// Index maintains the bijection between participant names and the dense
// node IDs assigned to them. Both lookup directions are O(1).
type Index struct {
	idOf   map[string]graph.NodeID
	userOf []string
}

// IDOf returns the node ID assigned to user.
func (ix *Index) IDOf(user string) (graph.NodeID, bool) {
	id, ok := ix.idOf[user]
	return id, ok
}

// UserOf returns the user a node ID was assigned to.
func (ix *Index) UserOf(id graph.NodeID) (string, bool) {
	if id < 0 || int(id) >= len(ix.userOf) {
		return "", false
	}
	return ix.userOf[id], true
}

// Len returns the number of distinct users in the index.
func (ix *Index) Len() int { return len(ix.userOf) }

// Users returns all user names in node-ID order. Callers must not mutate
// the returned slice.
func (ix *Index) Users() []string { return ix.userOf }

// Builder accumulates interaction records and materializes them into a
// co-occurrence graph: one node per distinct user, one edge per pair of
// users that posted in at least one common thread.
//
// Builder instances are not safe for concurrent use.
type Builder struct {
	idOf    map[string]graph.NodeID
	userOf  []string
	members map[threadKey]map[graph.NodeID]struct{}

	// threadOrder preserves the first-seen order of thread keys so that
	// edge insertion (and therefore adjacency layout) is deterministic
	// for a given record sequence.
	threadOrder []threadKey
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{
		idOf:    make(map[string]graph.NodeID),
		members: make(map[threadKey]map[graph.NodeID]struct{}),
	}
}

// Add registers a single interaction record. The first record mentioning a
// user assigns it the next unused node ID.
func (b *Builder) Add(rec records.Record) {
	id, seen := b.idOf[rec.User]
	if !seen {
		id = graph.NodeID(len(b.userOf))
		b.idOf[rec.User] = id
		b.userOf = append(b.userOf, rec.User)
	}

	key := threadKey{page: rec.Page, thread: rec.Thread}
	group, exists := b.members[key]
	if !exists {
		group = make(map[graph.NodeID]struct{})
		b.members[key] = group
		b.threadOrder = append(b.threadOrder, key)
	}
	group[id] = struct{}{}
}

// Build materializes the accumulated records into a graph and the
// user↔id index. Every pair of distinct users sharing a thread group ends
// up connected; duplicate co-occurrences across threads collapse into a
// single edge.
func (b *Builder) Build() (*graph.Graph, *Index, error) {
	g := graph.New(len(b.userOf))

	for _, key := range b.threadOrder {
		group := b.members[key]
		if len(group) < 2 {
			continue
		}
		ids := sortedIDs(group)
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				if err := g.AddEdge(ids[i], ids[j]); err != nil {
					return nil, nil, xerrors.Errorf("build graph for thread %q/%q: %w", key.page, key.thread, err)
				}
			}
		}
	}
	g.SortAdjacency()

	ix := &Index{idOf: b.idOf, userOf: b.userOf}
	return g, ix, nil
}

// FromIterator drains a record source and builds the graph in one call.
// The iterator's own error, if any, aborts the build.
func FromIterator(it records.Iterator) (*graph.Graph, *Index, error) {
	b := New()
	for it.Next() {
		b.Add(it.Record())
	}
	if err := it.Error(); err != nil {
		return nil, nil, xerrors.Errorf("build graph: %w", err)
	}
	return b.Build()
}

func sortedIDs(group map[graph.NodeID]struct{}) []graph.NodeID {
	ids := make([]graph.NodeID, 0, len(group))
	for id := range group {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
