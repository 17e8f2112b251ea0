package csvfile

import (
	"Social_Graph/records"
	"encoding/csv"
	"io"
	"os"

	"golang.org/x/xerrors"
)

// Columns maps the three required record fields to the header names used
// by a particular dataset file.
type Columns struct {
	Page   string
	Thread string
	User   string
}

// DefaultColumns matches the header layout of the Wikipedia talk-page
// dataset exports.
var DefaultColumns = Columns{
	Page:   "page_name",
	Thread: "thread_subject",
	User:   "username",
}

func (c *Columns) applyDefaults() {
	if c.Page == "" {
		c.Page = DefaultColumns.Page
	}
	if c.Thread == "" {
		c.Thread = DefaultColumns.Thread
	}
	if c.User == "" {
		c.User = DefaultColumns.User
	}
}

// Open returns an iterator over the interaction records stored in the CSV
// file at path. The first row must be a header containing the mapped
// column names; unknown extra columns are ignored.
func Open(path string, cols Columns) (records.Iterator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("open csv dataset: %w", err)
	}
	it, err := newIterator(f, f, cols)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return it, nil
}

// NewIterator returns an iterator over CSV-encoded records read from r.
// The returned iterator's Close is a no-op with respect to r.
func NewIterator(r io.Reader, cols Columns) (records.Iterator, error) {
	return newIterator(r, nil, cols)
}

func newIterator(r io.Reader, closer io.Closer, cols Columns) (*iterator, error) {
	cols.applyDefaults()

	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, xerrors.Errorf("read csv header: file is empty")
		}
		return nil, xerrors.Errorf("read csv header: %w", err)
	}

	index := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		return -1
	}
	it := &iterator{
		r:         cr,
		closer:    closer,
		pageCol:   index(cols.Page),
		threadCol: index(cols.Thread),
		userCol:   index(cols.User),
		line:      1,
	}
	if it.pageCol < 0 || it.threadCol < 0 || it.userCol < 0 {
		return nil, xerrors.Errorf("csv header %v is missing one of the required columns (%q, %q, %q)",
			header, cols.Page, cols.Thread, cols.User)
	}
	return it, nil
}

type iterator struct {
	r      *csv.Reader
	closer io.Closer

	pageCol   int
	threadCol int
	userCol   int

	line    int
	lastErr error
	latched records.Record
}

// Next implements records.Iterator.
func (it *iterator) Next() bool {
	if it.lastErr != nil {
		return false
	}
	row, err := it.r.Read()
	if err == io.EOF {
		return false
	}
	it.line++
	if err != nil {
		it.lastErr = xerrors.Errorf("read csv row %d: %w", it.line, err)
		return false
	}
	rec := records.Record{
		Page:   row[it.pageCol],
		Thread: row[it.threadCol],
		User:   row[it.userCol],
	}
	if err := rec.Validate(); err != nil {
		it.lastErr = xerrors.Errorf("csv row %d: %w", it.line, err)
		return false
	}
	it.latched = rec
	return true
}

// Error implements records.Iterator.
func (it *iterator) Error() error { return it.lastErr }

// Close implements records.Iterator.
func (it *iterator) Close() error {
	if it.closer == nil {
		return nil
	}
	if err := it.closer.Close(); err != nil {
		return xerrors.Errorf("close csv dataset: %w", err)
	}
	return nil
}

// Record implements records.Iterator.
func (it *iterator) Record() records.Record { return it.latched }
