package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/well-data-service/internal/adapter/gemini"
	httpadapter "github.com/couchcryptid/well-data-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/well-data-service/internal/adapter/kafka"
	"github.com/couchcryptid/well-data-service/internal/adapter/mapbox"
	"github.com/couchcryptid/well-data-service/internal/adapter/simulate"
	"github.com/couchcryptid/well-data-service/internal/config"
	"github.com/couchcryptid/well-data-service/internal/domain"
	"github.com/couchcryptid/well-data-service/internal/observability"
	"github.com/couchcryptid/well-data-service/internal/pipeline"
	"github.com/couchcryptid/well-data-service/internal/store"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	template := domain.Acrasia8()
	generator := domain.NewGenerator(cfg.GeneratorSeed)

	var extractor domain.Extractor
	switch cfg.ExtractionMode {
	case config.ModeGemini:
		client, err := gemini.NewClient(ctx, cfg.APIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		extractor = client
		logger.Info("extraction via gemini", "model", cfg.GeminiModel)
	default:
		extractor = simulate.New(generator, template, cfg.SimulateDelay, nil, logger)
		logger.Warn("no API key configured, uploads produce simulated wells", "delay", cfg.SimulateDelay)
	}

	// Publisher stays a nil interface when Kafka is off.
	var publisher pipeline.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("publishing ingested wells", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	}

	wells, err := store.New(template)
	if err != nil {
		logger.Error("failed to seed store", "error", err)
		os.Exit(1)
	}

	transformer := pipeline.NewTransformer(extractor, geocoder, logger, metrics, cfg.ExtractionTimeout)
	p := pipeline.New(transformer, wells, generator, template, publisher, logger, metrics)

	srv := httpadapter.NewServer(httpadapter.Options{
		Addr:           cfg.HTTPAddr,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, p, wells, logger)

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr, "mode", cfg.ExtractionMode)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
}
