package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	httpapi "github.com/swellwatch/buoy-tracker/internal/api/http"
	"github.com/swellwatch/buoy-tracker/internal/buoy"
	"github.com/swellwatch/buoy-tracker/internal/buoy/providers"
	"github.com/swellwatch/buoy-tracker/internal/config"
	"github.com/swellwatch/buoy-tracker/internal/scheduler"
	"github.com/swellwatch/buoy-tracker/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := newLogger(cfg.LogLevel)

	// Shared HTTP client for outbound feed calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge, cfg.ClockSkew)

	// Fixed station registry and the NDBC feed client with resilience
	// (backoff + circuit breaker).
	registry := buoy.NewRegistry(buoy.DefaultStations())
	provider := providers.NewNDBCProvider(httpClient, cfg.NDBCBaseURL)

	// Core service assembling reports over the store.
	service := buoy.NewService(memStore, registry, provider, buoy.ServiceConfig{
		Retention: cfg.StoreMaxAge,
		DeadZone:  cfg.TrendDeadZone,
	}, log)

	// Nearest-station lookups; disabled without a geocoder key.
	locator := buoy.NewLocator(registry, cfg.GeocoderAPIKey)

	// Scheduler that periodically polls the feed for every station.
	sched := scheduler.New(registry.All(), cfg.FetchInterval, service, log)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "buoy-tracker",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "active",
			"time":    time.Now().UTC(),
			"message": "buoy tracker is running",
		})
	})

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "buoy-tracker",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, locator)

	// Start server with graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("fiber server stopped")
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
}

// newLogger builds the root logger, falling back to info when the
// configured level does not parse.
func newLogger(levelStr string) zerolog.Logger {
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
}
