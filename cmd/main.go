package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/UnknownOlympus/pinpoint/internal/config"
	"github.com/UnknownOlympus/pinpoint/internal/directory"
	"github.com/UnknownOlympus/pinpoint/internal/geocoding"
	"github.com/UnknownOlympus/pinpoint/internal/lookup"
	"github.com/UnknownOlympus/pinpoint/internal/mapsurface"
	"github.com/UnknownOlympus/pinpoint/internal/metrics"
	"github.com/UnknownOlympus/pinpoint/internal/notify"
	"github.com/UnknownOlympus/pinpoint/internal/repository"
	"github.com/UnknownOlympus/pinpoint/internal/server"
	"github.com/UnknownOlympus/pinpoint/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// Map surface backends.
const (
	surfaceMemory   = "memory"
	surfacePostgres = "postgres"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	surface, pinger, closeSurface, err := setupSurface(ctx, logger, cfg)
	if err != nil {
		log.Fatalf("Failed to set up map surface: %v", err)
	}
	defer closeSurface()

	// fatal releases the surface before exiting, deferred calls do not run after log.Fatalf.
	fatal := func(format string, args ...any) {
		closeSurface()
		log.Fatalf(format, args...)
	}

	opts := mapsurface.DefaultOptions()
	if err = mapsurface.Open(ctx, surface, opts); err != nil {
		fatal("Failed to mount map: %v", err)
	}

	addresses, err := directory.NewProvider(directory.ProviderConfig{
		Type:      directory.ProviderType(cfg.Directory.Type),
		BaseURL:   cfg.Directory.BaseURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
		Logger:    logger,
	})
	if err != nil {
		fatal("Failed to create directory provider: %v", err)
	}

	// Create geocoding provider using factory pattern based on configuration
	geocoder, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Geocoder.Type),
		APIKey:    cfg.Geocoder.APIKey,
		BaseURL:   cfg.Geocoder.BaseURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
		Logger:    logger,
	})
	if err != nil {
		fatal("Failed to create geocoding provider: %v", err)
	}

	logger.InfoContext(ctx, "Providers initialized",
		"directory", cfg.Directory.Type, "geocoder", cfg.Geocoder.Type, "surface", cfg.Surface)

	modal := notify.NewModal(logger)
	pipeline := lookup.NewPipeline(logger, addresses, geocoder, surface, modal, appMetrics, lookup.Options{
		DirectoryName:        cfg.Directory.Type,
		GeocoderName:         cfg.Geocoder.Type,
		Icon:                 opts.Icon,
		CloseUpZoom:          opts.CloseUpZoom,
		NotifyGeocoderErrors: cfg.NotifyGeocoderErrors,
	})
	view := service.NewMapView(logger, pipeline, surface)

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	srv := server.New(logger, view, surface, modal, reg, pinger)
	go func() {
		if err := srv.ListenAndServe(ctx, cfg.Port); err != nil {
			logger.ErrorContext(ctx, "HTTP server failed", "error", err)
			stop()
		}
	}()

	go view.Run(ctx, cfg.PostalCode)

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	<-view.Done()

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// setupSurface builds the configured map backend. The returned pinger is nil for the
// in-memory surface; the close func releases backend resources and is safe to call twice.
func setupSurface(
	ctx context.Context,
	logger *slog.Logger,
	cfg *config.Config,
) (mapsurface.Map, server.Pinger, func(), error) {
	switch cfg.Surface {
	case surfaceMemory, "":
		return mapsurface.NewMemorySurface(), nil, func() {}, nil
	case surfacePostgres:
		// Initialize the database connection.
		dtb, err := repository.NewDatabase(
			ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to DB: %w", err)
		}

		repo := repository.NewRepository(dtb, logger)
		if err = repo.EnsureSchema(ctx); err != nil {
			dtb.Close()
			return nil, nil, nil, fmt.Errorf("failed to prepare DB schema: %w", err)
		}

		return repo, dtb, sync.OnceFunc(dtb.Close), nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported map surface: %s", cfg.Surface)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
