package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/share-registry/share_registry/internal/config"
	"github.com/share-registry/share_registry/internal/infra"
	"github.com/share-registry/share_registry/internal/logging"
	"github.com/share-registry/share_registry/internal/notification"
	"github.com/share-registry/share_registry/internal/registry"
	"github.com/share-registry/share_registry/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	master, err := registry.ParseAddress(cfg.MasterAddress)
	if err != nil {
		logger.Error("parse master address", "error", err)
		os.Exit(1)
	}

	// The registry is instantiated exactly once per deployment, with the
	// master chosen through configuration.
	reg, err := registry.New(master, notification.NewLoggerSink(logger))
	if err != nil {
		logger.Error("construct registry", "error", err)
		os.Exit(1)
	}
	logger.Info("registry constructed", "master", master.String())

	ctx := context.Background()

	cache, cacheErr := infra.NewRedisClient(ctx, cfg.RedisURL)
	if cacheErr != nil {
		if !cfg.IsDev() {
			logger.Error("connect redis", "error", cacheErr)
			os.Exit(1)
		}
		logger.Warn("running without redis", "error", cacheErr)
		cache = nil
	}
	if cache != nil {
		defer func() {
			if err := cache.Close(); err != nil {
				logger.Warn("close redis", "error", err)
			}
		}()
	}

	srv, err := server.New(cfg, reg, cache, logger)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}
