package main

import (
	"Social_Graph/reporting"
	"Social_Graph/wikinet/config"
	"Social_Graph/wikinet/dataset"
	"Social_Graph/wikinet/report"
	"Social_Graph/wikinet/service"
	"Social_Graph/wikinet/service/analyzer"
	"Social_Graph/wikinet/service/frontend"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	runOnce    bool
	jsonLogs   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wikinet",
		Short: "Build and analyze social co-occurrence graphs from discussion-thread datasets",
		RunE:  runMain,
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "wikinet.yaml", "path to the dataset manifest")
	rootCmd.Flags().BoolVar(&runOnce, "once", false, "process every dataset once, print the reports and exit")
	rootCmd.Flags().BoolVar(&jsonLogs, "json-logs", false, "emit logs in JSON format")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMain(cmd *cobra.Command, _ []string) error {
	// A .env file can supply WIKINET_PG_DSN without putting credentials
	// in the manifest; missing files are fine.
	_ = godotenv.Load()

	logger := logrus.New()
	if jsonLogs {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	rootLogger := logger.WithField("app", "wikinet")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dsn := os.Getenv("WIKINET_PG_DSN"); dsn != "" {
		cfg.Postgres.DSN = dsn
	}

	datasets, closeDatasets := dataset.FromConfig(cfg)
	defer func() {
		if err := closeDatasets(); err != nil {
			rootLogger.WithField("err", err).Warn("closing datasets")
		}
	}()

	store := report.NewStore()
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if runOnce {
		return processOnce(ctx, datasets, store, rootLogger)
	}

	analyzerSvc, err := analyzer.NewService(analyzer.Config{
		Datasets:       datasets,
		Reports:        store,
		UpdateInterval: cfg.UpdateInterval,
		Logger:         rootLogger.WithField("service", "analyzer"),
	})
	if err != nil {
		return err
	}
	frontendSvc, err := frontend.NewService(frontend.Config{
		Reports:    store,
		ListenAddr: cfg.ListenAddr,
		Logger:     rootLogger.WithField("service", "front-end"),
	})
	if err != nil {
		return err
	}

	group := service.Group{analyzerSvc, frontendSvc}
	if err := group.Run(ctx); err != nil {
		rootLogger.WithField("err", err).Error("wikinet terminated with an error")
		return err
	}
	return nil
}

// processOnce mirrors the one-shot batch mode of the original coursework
// script: analyze every dataset, print the reports to stdout, exit.
func processOnce(ctx context.Context, datasets []analyzer.Dataset, store *report.Store, logger *logrus.Entry) error {
	svc, err := analyzer.NewService(analyzer.Config{
		Datasets: datasets,
		Reports:  store,
		Logger:   logger.WithField("service", "analyzer"),
	})
	if err != nil {
		return err
	}
	if err := svc.Run(ctx); err != nil {
		return err
	}

	for _, rep := range store.List() {
		if err := reporting.WriteSummary(os.Stdout, rep.Dataset, rep.Graph, rep.Index, rep.Result); err != nil {
			return err
		}
		fmt.Println()
		buckets := reporting.DegreeDistribution(rep.Result.Degrees)
		if err := reporting.WriteHistogram(os.Stdout, buckets); err != nil {
			return err
		}
		fmt.Println()
	}
	return nil
}
