package analyzer

import (
	"Social_Graph/coocgraph/analysis"
	"Social_Graph/coocgraph/builder"
	"Social_Graph/pipeline"
	"Social_Graph/records"
	"Social_Graph/wikinet/report"
	"context"
	"io/ioutil"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Dataset is implemented by types that can open a stream of interaction
// records for one named input.
type Dataset interface {
	// Name returns the dataset name used in reports and metrics.
	Name() string

	// Open returns a fresh iterator over the dataset's records.
	Open(ctx context.Context) (records.Iterator, error)
}

// ReportSink is implemented by types that can receive finished analysis
// reports.
type ReportSink interface {
	Publish(r *report.Report) error
}

// Config encapsulates the settings for configuring the graph-analyzer
// service.
type Config struct {
	// The datasets to process, in order.
	Datasets []Dataset

	// The sink that receives one report per processed dataset.
	Reports ReportSink

	// The time between successive passes over the datasets. If zero, the
	// service performs a single pass and returns.
	UpdateInterval time.Duration

	// A clock instance for generating time-related events. If not
	// specified, the default wall-clock will be used instead.
	Clock clock.Clock

	// The logger to use. If not defined, an output-discarding logger
	// will be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if len(cfg.Datasets) == 0 {
		err = multierror.Append(err, xerrors.Errorf("no datasets have been provided"))
	}
	if cfg.Reports == nil {
		err = multierror.Append(err, xerrors.Errorf("report sink has not been provided"))
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: ioutil.Discard})
	}
	return err
}

// Service builds the co-occurrence graph for each configured dataset,
// analyzes it and publishes the resulting report. Datasets are processed
// sequentially and their failures are isolated: one broken input does not
// prevent the remaining datasets from being analyzed.
type Service struct {
	cfg Config
}

// NewService creates a new graph-analyzer service instance with the
// specified config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("analyzer service: config validation failed: %w", err)
	}
	return &Service{cfg: cfg}, nil
}

// Name implements service.Service.
func (svc *Service) Name() string { return "analyzer" }

// Run implements service.Service.
func (svc *Service) Run(ctx context.Context) error {
	svc.cfg.Logger.WithField("num_datasets", len(svc.cfg.Datasets)).Info("starting analyzer")
	for {
		svc.runPass(ctx)
		if svc.cfg.UpdateInterval == 0 {
			return nil
		}
		select {
		case <-svc.cfg.Clock.After(svc.cfg.UpdateInterval):
		case <-ctx.Done():
			return nil
		}
	}
}

func (svc *Service) runPass(ctx context.Context) {
	for _, ds := range svc.cfg.Datasets {
		if ctx.Err() != nil {
			return
		}
		logger := svc.cfg.Logger.WithField("dataset", ds.Name())
		startAt := svc.cfg.Clock.Now()
		rep, err := svc.processDataset(ctx, ds)
		if err != nil {
			datasetsProcessedTotal.WithLabelValues(ds.Name(), "error").Inc()
			logger.WithField("err", err).Error("dataset analysis failed")
			continue
		}
		elapsed := svc.cfg.Clock.Now().Sub(startAt)
		datasetsProcessedTotal.WithLabelValues(ds.Name(), "success").Inc()
		analysisDuration.WithLabelValues(ds.Name()).Observe(elapsed.Seconds())
		graphNodes.WithLabelValues(ds.Name()).Set(float64(rep.Graph.NumNodes()))
		graphEdges.WithLabelValues(ds.Name()).Set(float64(rep.Graph.NumEdges()))
		logger.WithFields(logrus.Fields{
			"report_id":  rep.ID,
			"nodes":      rep.Graph.NumNodes(),
			"edges":      rep.Graph.NumEdges(),
			"components": len(rep.Result.Components),
			"forest":     rep.Result.Forest,
			"elapsed":    elapsed,
		}).Info("dataset analyzed")
	}
}

func (svc *Service) processDataset(ctx context.Context, ds Dataset) (*report.Report, error) {
	it, err := ds.Open(ctx)
	if err != nil {
		return nil, xerrors.Errorf("open dataset %q: %w", ds.Name(), err)
	}
	defer func() { _ = it.Close() }()

	b := builder.New()
	p := pipeline.New(pipeline.FIFO(pipeline.ProcessorFunc(normalizeRecord)))
	if err := p.Process(ctx, &recordSource{it: it}, &builderSink{b: b}); err != nil {
		return nil, xerrors.Errorf("ingest dataset %q: %w", ds.Name(), err)
	}

	g, ix, err := b.Build()
	if err != nil {
		return nil, xerrors.Errorf("build graph for dataset %q: %w", ds.Name(), err)
	}
	res, err := analysis.Analyze(ctx, g)
	if err != nil {
		return nil, xerrors.Errorf("analyze dataset %q: %w", ds.Name(), err)
	}

	rep := &report.Report{
		Dataset:     ds.Name(),
		GeneratedAt: svc.cfg.Clock.Now(),
		Graph:       g,
		Index:       ix,
		Result:      res,
	}
	if err := svc.cfg.Reports.Publish(rep); err != nil {
		return nil, xerrors.Errorf("publish report for dataset %q: %w", ds.Name(), err)
	}
	return rep, nil
}

// normalizeRecord trims surrounding whitespace from every record field. A
// field that becomes empty after trimming is treated as malformed.
func normalizeRecord(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*recordPayload)
	payload.Record.Page = strings.TrimSpace(payload.Record.Page)
	payload.Record.Thread = strings.TrimSpace(payload.Record.Thread)
	payload.Record.User = strings.TrimSpace(payload.Record.User)
	if err := payload.Record.Validate(); err != nil {
		return nil, err
	}
	return payload, nil
}

// builderSink feeds normalized records into a graph builder.
type builderSink struct {
	b *builder.Builder
}

// Consume implements pipeline.Sink.
func (s *builderSink) Consume(_ context.Context, p pipeline.Payload) error {
	s.b.Add(p.(*recordPayload).Record)
	return nil
}
