package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/marmos91/pixvault/internal/logger"
	"github.com/marmos91/pixvault/pkg/auth"
	"github.com/marmos91/pixvault/pkg/config"
	"github.com/marmos91/pixvault/pkg/metrics"
	"github.com/marmos91/pixvault/pkg/server"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: "+config.GetDefaultConfigPath()+")")
	logLevel := flag.String("log-level", "", "Log level override (DEBUG, INFO, WARN, ERROR)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// CLI flag wins over config file and environment
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	logger.SetLevel(cfg.Logging.Level)
	logger.SetFormat(cfg.Logging.Format)

	fmt.Println("pixvault - personal image drive")
	logger.Info("Log level set to: %s", cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create the drive store (users, folders, files)
	store, err := config.CreateStore(ctx, &cfg.Store)
	if err != nil {
		log.Fatalf("Failed to create drive store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close drive store: %v", err)
		}
	}()
	logger.Info("Drive store initialized: type=%s, unique_names=%v", cfg.Store.Type, cfg.Store.UniqueNames)

	// Create the object store (image bytes)
	objects, err := config.CreateObjectStore(ctx, &cfg.Objects)
	if err != nil {
		log.Fatalf("Failed to create object store: %v", err)
	}
	logger.Info("Object store initialized: type=%s", cfg.Objects.Type)

	// Start the metrics listener if configured
	if cfg.Server.MetricsAddress != "" {
		go metrics.Serve(cfg.Server.MetricsAddress)
	}

	srv := server.New(server.Config{
		Store:      store,
		Objects:    objects,
		Tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		BcryptCost: cfg.Auth.BcryptCost,
	})

	// Serve until interrupted
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(cfg.Server.ListenAddress)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("Received signal %v, shutting down", sig)
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	if err := srv.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
	logger.Info("Shutdown complete")
}
