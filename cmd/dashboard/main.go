package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rickgao/zora-dashboard/internal/api"
	"github.com/rickgao/zora-dashboard/internal/config"
	"github.com/rickgao/zora-dashboard/internal/dashboard"
	"github.com/rickgao/zora-dashboard/internal/logging"
	"github.com/rickgao/zora-dashboard/internal/metrics"
	"github.com/rickgao/zora-dashboard/internal/poller"
	"github.com/rickgao/zora-dashboard/internal/server"
	"github.com/rickgao/zora-dashboard/internal/version"
	"github.com/rickgao/zora-dashboard/internal/whale"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults only when empty)")
	envFile := flag.String("env", ".env", "optional .env file")
	flag.Parse()

	if err := run(*configPath, *envFile); err != nil {
		fmt.Fprintf(os.Stderr, "dashboard: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, envFile string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	// Load configuration
	cfg, err := config.LoadAndValidate(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up structured logging
	logger, logCloser, err := logging.New(cfg.Logging, os.Stdout)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer logCloser.Close()
	logger = logger.With("version", version.Version)

	logger.Info("starting dashboard",
		"commit", version.Commit,
		"config", configPath,
		"api_url", cfg.API.RestURL,
		"port", cfg.Server.Port,
	)

	m := metrics.New(cfg.Metrics.Namespace)

	// Create API client
	apiClient := api.NewClient(
		cfg.API.RestURL,
		api.WithAPIKey(cfg.API.APIKey),
		api.WithChainID(cfg.API.ChainID),
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff),
		api.WithBreaker(api.BreakerConfig{
			FailureThreshold: cfg.API.Breaker.FailureThreshold,
			OpenTimeout:      cfg.API.Breaker.OpenTimeout,
		}),
		api.WithObserver(m),
	)

	source := whale.NewSource(whale.SourceConfig{
		TokenLimit:    cfg.Whale.Source.TokenLimit,
		SwapsPerToken: cfg.Whale.Source.SwapsPerToken,
		Concurrency:   cfg.Whale.Source.Concurrency,
	}, apiClient, logger)

	registry := poller.NewRegistry(poller.Config{
		Interval: cfg.Whale.Stream.Interval,
		MinUSD:   cfg.Whale.Stream.Threshold(),
		TopN:     cfg.Whale.Stream.TopN,
	}, source, m, logger)

	srv := server.New(*cfg, server.Deps{
		Dashboard: dashboard.New(apiClient, source, logger),
		Registry:  registry,
		Upstream:  apiClient,
		Metrics:   m,
	}, logger)

	// Handle shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("dashboard running",
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port),
	)

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "err", err)
	}
	if err := registry.Close(shutdownCtx); err != nil {
		logger.Error("whale registry shutdown failed", "err", err)
	}

	logger.Info("dashboard stopped")
	return nil
}
