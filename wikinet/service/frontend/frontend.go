package frontend

import (
	"Social_Graph/reporting"
	"Social_Graph/wikinet/report"
	"context"
	"html/template"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

const (
	indexEndpoint     = "/"
	reportEndpoint    = "/reports/{id}"
	dotEndpoint       = "/reports/{id}/dot"
	histogramEndpoint = "/reports/{id}/histogram"
	metricsEndpoint   = "/metrics"
	healthEndpoint    = "/healthz"
)

// ReportStore is implemented by types the frontend can read published
// analysis reports from. The frontend never mutates reports.
type ReportStore interface {
	Get(id uuid.UUID) (*report.Report, error)
	List() []*report.Report
}

// Config encapsulates the settings for configuring the front-end service.
type Config struct {
	// The store to read published reports from.
	Reports ReportStore

	// The address to listen for incoming requests.
	ListenAddr string

	// The logger to use. If not defined, an output-discarding logger
	// will be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Reports == nil {
		err = multierror.Append(err, xerrors.Errorf("report store has not been provided"))
	}
	if cfg.ListenAddr == "" {
		err = multierror.Append(err, xerrors.Errorf("listen address has not been specified"))
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: ioutil.Discard})
	}
	return err
}

// Service implements the report front-end for the wikinet application.
type Service struct {
	cfg    Config
	router *mux.Router
}

// NewService creates a new front-end service instance with the specified
// config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("front-end service: config validation failed: %w", err)
	}
	svc := &Service{cfg: cfg, router: mux.NewRouter()}
	svc.router.HandleFunc(indexEndpoint, svc.renderIndex).Methods(http.MethodGet)
	svc.router.HandleFunc(reportEndpoint, svc.renderReport).Methods(http.MethodGet)
	svc.router.HandleFunc(dotEndpoint, svc.renderDOT).Methods(http.MethodGet)
	svc.router.HandleFunc(histogramEndpoint, svc.renderHistogram).Methods(http.MethodGet)
	svc.router.Handle(metricsEndpoint, promhttp.Handler()).Methods(http.MethodGet)
	svc.router.HandleFunc(healthEndpoint, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	return svc, nil
}

// Name implements service.Service.
func (svc *Service) Name() string { return "front-end" }

// Run implements service.Service.
func (svc *Service) Run(ctx context.Context) error {
	svc.cfg.Logger.WithField("listen_addr", svc.cfg.ListenAddr).Info("starting front-end server")
	srv := &http.Server{
		Addr:    svc.cfg.ListenAddr,
		Handler: svc.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return xerrors.Errorf("front-end: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancelFn := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelFn()
		_ = srv.Shutdown(shutdownCtx)
	}
	return nil
}

var indexTemplate = template.Must(template.New("index").Parse(`<html>
<head><title>wikinet reports</title></head>
<body>
<h1>Dataset reports</h1>
<table border="1" cellpadding="4">
<tr><th>Dataset</th><th>Generated</th><th>Nodes</th><th>Edges</th><th>Components</th><th>Forest</th><th></th></tr>
{{range .}}
<tr>
  <td>{{.Dataset}}</td>
  <td>{{.GeneratedAt.Format "2006-01-02 15:04:05"}}</td>
  <td>{{.Graph.NumNodes}}</td>
  <td>{{.Graph.NumEdges}}</td>
  <td>{{len .Result.Components}}</td>
  <td>{{.Result.Forest}}</td>
  <td><a href="/reports/{{.ID}}">summary</a> | <a href="/reports/{{.ID}}/histogram">degrees</a> | <a href="/reports/{{.ID}}/dot">dot</a></td>
</tr>
{{end}}
</table>
</body>
</html>`))

func (svc *Service) renderIndex(w http.ResponseWriter, _ *http.Request) {
	if err := indexTemplate.Execute(w, svc.cfg.Reports.List()); err != nil {
		svc.cfg.Logger.WithField("err", err).Error("rendering index")
	}
}

func (svc *Service) lookupReport(w http.ResponseWriter, r *http.Request) *report.Report {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid report id", http.StatusBadRequest)
		return nil
	}
	rep, err := svc.cfg.Reports.Get(id)
	if err != nil {
		if xerrors.Is(err, report.ErrNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return nil
		}
		svc.cfg.Logger.WithField("err", err).Error("looking up report")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil
	}
	return rep
}

func (svc *Service) renderReport(w http.ResponseWriter, r *http.Request) {
	rep := svc.lookupReport(w, r)
	if rep == nil {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := reporting.WriteSummary(w, rep.Dataset, rep.Graph, rep.Index, rep.Result); err != nil {
		svc.cfg.Logger.WithField("err", err).Error("rendering report summary")
	}
}

func (svc *Service) renderDOT(w http.ResponseWriter, r *http.Request) {
	rep := svc.lookupReport(w, r)
	if rep == nil {
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	if err := reporting.WriteDOT(w, rep.Dataset, rep.Graph, rep.Index); err != nil {
		svc.cfg.Logger.WithField("err", err).Error("rendering report dot export")
	}
}

func (svc *Service) renderHistogram(w http.ResponseWriter, r *http.Request) {
	rep := svc.lookupReport(w, r)
	if rep == nil {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	buckets := reporting.DegreeDistribution(rep.Result.Degrees)
	if err := reporting.WriteHistogram(w, buckets); err != nil {
		svc.cfg.Logger.WithField("err", err).Error("rendering degree histogram")
	}
}
