package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	temporalclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"

	"github.com/edvin/regionfailover/internal/activity"
	"github.com/edvin/regionfailover/internal/config"
	"github.com/edvin/regionfailover/internal/db"
	"github.com/edvin/regionfailover/internal/logging"
	"github.com/edvin/regionfailover/internal/metrics"
	"github.com/edvin/regionfailover/internal/model"
	"github.com/edvin/regionfailover/internal/plan"
	"github.com/edvin/regionfailover/internal/topology"
	"github.com/edvin/regionfailover/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("worker"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Composition is pure; a bad input stops here before anything exists.
	topo, err := topology.NewOrchestrator(logger).Compose(ctx, cfg.TopologyInput())
	if err != nil {
		var cerr *topology.ConfigurationError
		if errors.As(err, &cerr) {
			logger.Fatal().Str("field", cerr.Field).Str("reason", cerr.Reason).Msg("invalid topology configuration")
		}
		logger.Fatal().Err(err).Msg("failed to compose topology")
	}

	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate ledger database")
	}

	ledgerPool, err := db.NewLedgerPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to ledger database")
	}
	defer ledgerPool.Close()

	if err := metrics.RegisterLedgerPoolMetrics(prometheus.DefaultRegisterer, ledgerPool); err != nil {
		logger.Fatal().Err(err).Msg("failed to register pool metrics")
	}

	sink := plan.NewS3Sink(plan.S3Options{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.PlanBucket,
		Prefix:    plan.Prefix(*topo),
	}, logger)

	tc, err := temporalclient.Dial(temporalclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to temporal")
	}
	defer tc.Close()

	w := worker.New(tc, workflow.TaskQueue, worker.Options{
		Interceptors: []interceptor.WorkerInterceptor{&workflow.ActivityInterceptor{}},
	})

	// Register activities
	w.RegisterActivity(activity.NewLedger(ledgerPool))
	w.RegisterActivity(activity.NewProvision(sink, logger))
	w.RegisterActivity(activity.NewHealthVerifier(nil, logger))

	// Register workflows
	w.RegisterWorkflow(workflow.ProvisionTopologyWorkflow)
	w.RegisterWorkflow(workflow.TeardownTopologyWorkflow)

	if cfg.MetricsAddr != "" {
		metricsSrv := metrics.NewServer(cfg.MetricsAddr, ledgerPool.Ping)
		go func() {
			logger.Info().Str("addr", cfg.MetricsAddr).Msg("starting metrics server")
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	if err := w.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start temporal worker")
	}
	defer w.Stop()
	logger.Info().Str("taskQueue", workflow.TaskQueue).Msg("temporal worker started")

	startProvisioning(ctx, tc, topo, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down worker")
}

// startProvisioning starts the provisioning workflow under the topology's
// stable id. A run that is in flight or has already completed for the same
// topology is left alone; a failed run is started again.
func startProvisioning(ctx context.Context, tc temporalclient.Client, topo *model.Topology, logger zerolog.Logger) {
	opts := workflow.ProvisionStartOptions(*topo)
	workflowID := opts.ID

	run, err := tc.ExecuteWorkflow(ctx, opts, workflow.ProvisionTopologyWorkflow, *topo)
	if err != nil {
		if temporal.IsWorkflowExecutionAlreadyStartedError(err) {
			logger.Info().Str("workflow_id", workflowID).Msg("provisioning already running or completed, skipping")
			return
		}
		logger.Fatal().Err(err).Str("workflow_id", workflowID).Msg("failed to start provisioning workflow")
	}

	logger.Info().
		Str("workflow_id", run.GetID()).
		Str("run_id", run.GetRunID()).
		Str("main_region", topo.Main.String()).
		Int("regions", len(topo.Regions)).
		Msg("provisioning workflow started")
}
