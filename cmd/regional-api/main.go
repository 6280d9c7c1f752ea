package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edvin/regionfailover/internal/api"
	"github.com/edvin/regionfailover/internal/config"
	"github.com/edvin/regionfailover/internal/logging"
	"github.com/edvin/regionfailover/internal/model"
	"github.com/edvin/regionfailover/internal/topology"
)

// drainPeriod covers the failure threshold of the health check so resolvers
// have stopped answering with this region before the listener closes.
const drainPeriod = model.HealthCheckRequestInterval * model.HealthCheckFailureThreshold

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("regional-api"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	topo, err := topology.NewOrchestrator(logger).Compose(context.Background(), cfg.TopologyInput())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to compose topology")
	}

	rt, ok := topo.ForRegion(model.Region(cfg.ServeRegion))
	if !ok {
		logger.Fatal().Str("serve_region", cfg.ServeRegion).Msg("region is not part of the topology")
	}

	srv := api.NewServer(logger, rt)

	httpServer := &http.Server{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", cfg.HTTPListenAddr).
			Str("role", string(rt.Role)).
			Str("health_path", rt.Endpoint.StageHealthPath()).
			Msg("starting regional API server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Dur("drain", drainPeriod).Msg("draining region")
	srv.SetServing(false)
	select {
	case <-time.After(drainPeriod):
	case <-quit:
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
}
