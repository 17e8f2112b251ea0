package report

import (
	"Social_Graph/coocgraph/analysis"
	"Social_Graph/coocgraph/builder"
	"Social_Graph/coocgraph/graph"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"
)

// ErrNotFound is returned when a report lookup fails.
var ErrNotFound = xerrors.New("not found")

// Report bundles the outputs of one build-and-analyze pass over a single
// dataset. Reports are immutable once published.
type Report struct {
	ID          uuid.UUID
	Dataset     string
	GeneratedAt time.Time

	Graph  *graph.Graph
	Index  *builder.Index
	Result *analysis.Result
}

// Store is an in-memory, concurrency-safe collection of reports. Each
// dataset keeps only its most recent report plus an entry in the overall
// id-keyed history.
type Store struct {
	mu sync.RWMutex

	byID      map[uuid.UUID]*Report
	byDataset map[string]*Report
}

// NewStore creates an empty report store.
func NewStore() *Store {
	return &Store{
		byID:      make(map[uuid.UUID]*Report),
		byDataset: make(map[string]*Report),
	}
}

// Publish assigns the report a fresh ID and records it, replacing any
// previous report for the same dataset in the per-dataset view.
func (s *Store) Publish(r *Report) error {
	if r.Dataset == "" {
		return xerrors.Errorf("publish report: dataset name has not been specified")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		r.ID = uuid.New()
		if _, exists := s.byID[r.ID]; !exists {
			break
		}
	}
	if prev := s.byDataset[r.Dataset]; prev != nil {
		delete(s.byID, prev.ID)
	}
	s.byID[r.ID] = r
	s.byDataset[r.Dataset] = r
	return nil
}

// Get returns the report with the given ID.
func (s *Store) Get(id uuid.UUID) (*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r := s.byID[id]
	if r == nil {
		return nil, xerrors.Errorf("get report: %w", ErrNotFound)
	}
	return r, nil
}

// GetByDataset returns the latest report for the named dataset.
func (s *Store) GetByDataset(dataset string) (*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r := s.byDataset[dataset]
	if r == nil {
		return nil, xerrors.Errorf("get report for dataset %q: %w", dataset, ErrNotFound)
	}
	return r, nil
}

// List returns the latest report for every dataset, ordered by dataset
// name for stable presentation.
func (s *Store) List() []*Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*Report, 0, len(s.byDataset))
	for _, r := range s.byDataset {
		list = append(list, r)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Dataset < list[j].Dataset })
	return list
}
