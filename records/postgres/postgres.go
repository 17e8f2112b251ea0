package postgres

import (
	"Social_Graph/records"
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"golang.org/x/xerrors"
)

// Store provides access to interaction records stored in a Postgres (or
// CockroachDB) table with page_name, thread_subject and username columns.
type Store struct {
	db    *sql.DB
	table string
}

// Open connects to the database described by dsn and targets the given
// table. Callers must call Close on the returned store when done.
func Open(dsn, table string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, xerrors.Errorf("open record store: %w", err)
	}
	return &Store{db: db, table: table}, nil
}

// Close terminates the connection to the backing database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return xerrors.Errorf("close record store: %w", err)
	}
	return nil
}

// Records returns an iterator over all interaction records in the table,
// in insertion order.
func (s *Store) Records(ctx context.Context) (records.Iterator, error) {
	query := fmt.Sprintf(
		`SELECT page_name, thread_subject, username FROM %s ORDER BY id`,
		pq.QuoteIdentifier(s.table),
	)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, xerrors.Errorf("query records: %w", err)
	}
	return &recordIterator{rows: rows}, nil
}

// recordIterator is a records.Iterator implementation over a row set.
type recordIterator struct {
	rows    *sql.Rows
	lastErr error
	latched records.Record
}

func (it *recordIterator) Next() bool {
	if it.lastErr != nil || !it.rows.Next() {
		return false
	}
	var rec records.Record
	it.lastErr = it.rows.Scan(&rec.Page, &rec.Thread, &rec.User)
	if it.lastErr != nil {
		return false
	}
	if err := rec.Validate(); err != nil {
		it.lastErr = err
		return false
	}
	it.latched = rec
	return true
}

func (it *recordIterator) Error() error {
	if it.lastErr != nil {
		return it.lastErr
	}
	return it.rows.Err()
}

func (it *recordIterator) Close() error {
	if err := it.rows.Close(); err != nil {
		return xerrors.Errorf("record iterator: %w", err)
	}
	return nil
}

func (it *recordIterator) Record() records.Record { return it.latched }
