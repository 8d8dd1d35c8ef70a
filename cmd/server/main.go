package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/pgx-risk-server/internal/api"
	"github.com/pgx-risk-server/internal/config"
	"github.com/pgx-risk-server/internal/domain"
	"github.com/pgx-risk-server/internal/explain"
	"github.com/pgx-risk-server/internal/knowledge"
	"github.com/pgx-risk-server/internal/service"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := newLogger(cfg.Logging)

	kb, err := knowledge.New()
	if err != nil {
		log.Fatalf("Failed to load pharmacogenomic knowledge base: %v", err)
	}

	engine := service.NewRiskEngine(logger, kb, cfg.Analysis.Version)
	analyzer := service.NewAnalyzer(logger, kb, engine, newEnricher(logger, cfg.Enrichment))

	logger.WithFields(logrus.Fields{
		"host":    cfg.Server.Host,
		"port":    cfg.Server.Port,
		"version": cfg.Analysis.Version,
	}).Info("Starting pharmacogenomic risk server")

	server := api.NewServer(configManager, logger, kb, analyzer)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	// Start server
	if err := server.Start(ctx); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}

	logger.Info("Server stopped")
}

func newLogger(cfg domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// newEnricher wires the optional remote explanation provider. Any setup
// failure degrades to template-only explanations rather than aborting boot.
func newEnricher(logger *logrus.Logger, cfg domain.EnrichmentConfig) domain.ExplanationProvider {
	if !cfg.Enabled {
		return nil
	}
	provider, err := explain.NewOpenAIProvider(logger, cfg)
	if err != nil {
		logger.WithError(err).Warn("Explanation enrichment disabled, falling back to templates")
		return nil
	}
	return provider
}
