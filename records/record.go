package records

import "golang.org/x/xerrors"

// ErrMalformedRecord is returned by record sources when a row is missing
// one or more of the required fields. Malformed rows are rejected at the
// ingestion boundary; downstream components never see them.
var ErrMalformedRecord = xerrors.New("record is missing one or more required fields")

// Record represents a single discussion-board interaction: one user
// posting in one thread of one page.
type Record struct {
	// Page identifies the page the discussion belongs to.
	Page string

	// Thread identifies the discussion thread within the page.
	Thread string

	// User identifies the participant that posted in the thread.
	User string
}

// Validate checks that all required fields are present.
func (r Record) Validate() error {
	if r.Page == "" || r.Thread == "" || r.User == "" {
		return xerrors.Errorf("page=%q thread=%q user=%q: %w", r.Page, r.Thread, r.User, ErrMalformedRecord)
	}
	return nil
}

// Iterator is implemented by objects that can iterate a stream of
// interaction records.
type Iterator interface {
	// Next advances the iterator. If no more records are available or an
	// error occurs, calls to Next() return false.
	Next() bool

	// Error returns the last error encountered by the iterator.
	Error() error

	// Close releases any resources associated with the iterator.
	Close() error

	// Record returns the currently fetched record.
	Record() Record
}

// SliceIterator adapts an in-memory record slice to the Iterator contract.
// It is primarily useful in tests and when records have already been
// materialized by another component.
type SliceIterator struct {
	records []Record
	pos     int
}

// NewSliceIterator returns an iterator over the provided records.
func NewSliceIterator(list []Record) *SliceIterator {
	return &SliceIterator{records: list}
}

// Next implements Iterator.
func (it *SliceIterator) Next() bool {
	if it.pos >= len(it.records) {
		return false
	}
	it.pos++
	return true
}

// Error implements Iterator.
func (it *SliceIterator) Error() error { return nil }

// Close implements Iterator.
func (it *SliceIterator) Close() error { return nil }

// Record implements Iterator.
func (it *SliceIterator) Record() Record { return it.records[it.pos-1] }
