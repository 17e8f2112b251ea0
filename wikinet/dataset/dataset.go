package dataset

import (
	"Social_Graph/records"
	"Social_Graph/records/csvfile"
	"Social_Graph/records/postgres"
	"Social_Graph/wikinet/config"
	"Social_Graph/wikinet/service/analyzer"
	"context"

	"github.com/hashicorp/go-multierror"
)

// FromConfig resolves the datasets declared in a manifest into openable
// analyzer inputs. The returned closer releases any database connections
// opened by table-backed datasets; it is a no-op when every dataset is
// file-backed.
func FromConfig(cfg *config.Config) ([]analyzer.Dataset, func() error) {
	var (
		list   []analyzer.Dataset
		tables []*tableDataset
	)
	for _, ds := range cfg.Datasets {
		if ds.Path != "" {
			list = append(list, &csvDataset{
				name: ds.Name,
				path: ds.Path,
				cols: csvfile.Columns{
					Page:   ds.Columns.Page,
					Thread: ds.Columns.Thread,
					User:   ds.Columns.User,
				},
			})
			continue
		}
		td := &tableDataset{name: ds.Name, table: ds.Table, dsn: cfg.Postgres.DSN}
		tables = append(tables, td)
		list = append(list, td)
	}

	closer := func() error {
		var err error
		for _, td := range tables {
			if closeErr := td.close(); closeErr != nil {
				err = multierror.Append(err, closeErr)
			}
		}
		return err
	}
	return list, closer
}

// csvDataset opens a fresh iterator over a CSV export for each pass.
type csvDataset struct {
	name string
	path string
	cols csvfile.Columns
}

func (d *csvDataset) Name() string { return d.name }

func (d *csvDataset) Open(_ context.Context) (records.Iterator, error) {
	return csvfile.Open(d.path, d.cols)
}

// tableDataset streams records from a Postgres table, connecting lazily on
// first use and reusing the connection across passes.
type tableDataset struct {
	name  string
	table string
	dsn   string
	store *postgres.Store
}

func (d *tableDataset) Name() string { return d.name }

func (d *tableDataset) Open(ctx context.Context) (records.Iterator, error) {
	if d.store == nil {
		store, err := postgres.Open(d.dsn, d.table)
		if err != nil {
			return nil, err
		}
		d.store = store
	}
	return d.store.Records(ctx)
}

func (d *tableDataset) close() error {
	if d.store == nil {
		return nil
	}
	return d.store.Close()
}
