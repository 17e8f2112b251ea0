package config

import (
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// Columns overrides the CSV header names for the three record fields.
// Empty fields fall back to the dataset-export defaults.
type Columns struct {
	Page   string `yaml:"page"`
	Thread string `yaml:"thread"`
	User   string `yaml:"user"`
}

// Dataset describes one input to analyze. Exactly one of Path (a CSV
// file) or Table (a Postgres table) must be set.
type Dataset struct {
	Name    string  `yaml:"name"`
	Path    string  `yaml:"path"`
	Table   string  `yaml:"table"`
	Columns Columns `yaml:"columns"`
}

// Postgres holds the connection settings for table-backed datasets.
type Postgres struct {
	DSN string `yaml:"dsn"`
}

// Config is the top-level wikinet configuration, typically loaded from a
// YAML manifest.
type Config struct {
	// Datasets lists the inputs to process, in order.
	Datasets []Dataset `yaml:"datasets"`

	// ListenAddr is the address the report frontend binds to.
	ListenAddr string `yaml:"listen_addr"`

	// UpdateInterval is the pause between successive passes over the
	// datasets. Zero means run a single pass and stop.
	UpdateInterval time.Duration `yaml:"update_interval"`

	// Postgres is required when any dataset is table-backed.
	Postgres Postgres `yaml:"postgres"`
}

// Load reads and validates a configuration manifest from path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("load config: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML-encoded configuration.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, xerrors.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the manifest for missing or contradictory settings.
func (c *Config) Validate() error {
	var err error
	if len(c.Datasets) == 0 {
		err = multierror.Append(err, xerrors.Errorf("no datasets have been specified"))
	}
	seen := make(map[string]bool)
	needDSN := false
	for i, ds := range c.Datasets {
		if ds.Name == "" {
			err = multierror.Append(err, xerrors.Errorf("dataset %d: name has not been specified", i))
		} else if seen[ds.Name] {
			err = multierror.Append(err, xerrors.Errorf("dataset %d: duplicate name %q", i, ds.Name))
		}
		seen[ds.Name] = true

		switch {
		case ds.Path == "" && ds.Table == "":
			err = multierror.Append(err, xerrors.Errorf("dataset %q: either a csv path or a table must be specified", ds.Name))
		case ds.Path != "" && ds.Table != "":
			err = multierror.Append(err, xerrors.Errorf("dataset %q: csv path and table are mutually exclusive", ds.Name))
		case ds.Table != "":
			needDSN = true
		}
	}
	if needDSN && c.Postgres.DSN == "" {
		err = multierror.Append(err, xerrors.Errorf("postgres DSN is required for table-backed datasets"))
	}
	if c.ListenAddr == "" {
		err = multierror.Append(err, xerrors.Errorf("listen address has not been specified"))
	}
	return err
}
