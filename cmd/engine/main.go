package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/complyport/compliance-engine/pkg/config"
	domain "github.com/complyport/compliance-engine/pkg/domain/generation"
	"github.com/complyport/compliance-engine/pkg/generation"
	"github.com/complyport/compliance-engine/pkg/guardrail"
	handlers "github.com/complyport/compliance-engine/pkg/handlers/http"
	"github.com/complyport/compliance-engine/pkg/infra/auditlog"
	"github.com/complyport/compliance-engine/pkg/infra/breaker"
	"github.com/complyport/compliance-engine/pkg/infra/database"
	infralogger "github.com/complyport/compliance-engine/pkg/infra/logger"
	"github.com/complyport/compliance-engine/pkg/infra/metrics"
	"github.com/complyport/compliance-engine/pkg/infra/providers"
	"github.com/complyport/compliance-engine/pkg/infra/providers/factory"
	"github.com/complyport/compliance-engine/pkg/server"
)

func main() {
	ctx := context.Background()

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infralogger.NewLogger()

	cfg, err := config.Load("./config")
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	auditSink := auditlog.NewRepository(db.DB, logger)

	guardCfg, err := guardrail.DecodeConfig(cfg.Guardrails.Settings)
	if err != nil {
		logger.Fatalf("failed to decode guardrail settings: %v", err)
	}
	pipeline := guardrail.NewPipeline(logger, guardCfg, guardrail.NewKeywordModerationScorer(), auditSink)

	breakers := breaker.NewRegistry(cfg.Breaker.Cooldown(), cfg.Breaker.MaxFailures)

	locator, err := factory.NewProviderLocator(ctx, cfg.Providers.Gemini.APIKey())
	if err != nil {
		logger.Fatalf("failed to initialize provider clients: %v", err)
	}

	quality := generation.NewLLMQualityAnalyzer(locator, domain.ProviderAnthropic, &providers.Config{
		APIKey:    cfg.Providers.Anthropic.APIKey(),
		Model:     cfg.Providers.Anthropic.Model,
		MaxTokens: cfg.Providers.Anthropic.MaxTokens,
	})

	registry := prometheus.NewRegistry()
	engineMetrics := metrics.NewEngine(registry)

	orchestrator := generation.NewOrchestrator(logger, cfg, locator, breakers, pipeline, quality, engineMetrics)
	jobs := generation.NewJobStore(logger)

	srv := server.New(cfg.Server, logger, server.Handlers{
		GenerateDocument: handlers.NewGenerateDocumentHandler(logger, orchestrator),
		GenerateBatch:    handlers.NewGenerateBatchHandler(logger, orchestrator, jobs),
		GetJob:           handlers.NewGetJobHandler(logger, jobs),
		GenerateContent:  handlers.NewGenerateContentHandler(logger, orchestrator),
		CheckGuardrails:  handlers.NewCheckGuardrailsHandler(logger, orchestrator),
	})

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	metricsSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return srv.Start()
	})
	group.Go(func() error {
		logger.WithField("addr", metricsSrv.Addr).Info("starting metrics server")
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			logger.WithField("signal", sig.String()).Info("shutting down")
		case <-groupCtx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("metrics server shutdown failed")
		}
		return srv.Shutdown()
	})

	if err := group.Wait(); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
	logger.Info("shutdown complete")
}
