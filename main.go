package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/atlanticotrips/itinerary-engine/app/db"
	appLogger "github.com/atlanticotrips/itinerary-engine/app/logger"
	appmetrics "github.com/atlanticotrips/itinerary-engine/app/observability/metrics"
	"github.com/atlanticotrips/itinerary-engine/app/tracer"
	"github.com/atlanticotrips/itinerary-engine/config"
	"github.com/atlanticotrips/itinerary-engine/internal/api/catalog"
	generativeAI "github.com/atlanticotrips/itinerary-engine/internal/api/generative_ai"
	"github.com/atlanticotrips/itinerary-engine/internal/api/itinerary"
	"github.com/atlanticotrips/itinerary-engine/internal/api/scoring"
	"github.com/atlanticotrips/itinerary-engine/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	// --- Logger Setup ---
	logger := setupLogger()
	slog.SetDefault(logger)

	// --- Application Context & Shutdown ---
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Tracing & Metrics ---
	tracer.InitTracingAndMetrics(cfg.Handlers.Prometheus.Port)
	appmetrics.InitAppMetrics()

	// --- Database Setup ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	err = database.RunMigrations(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Dependency Injection ---
	catalogRepo := catalog.NewPostgresRepository(pool, logger)
	cacheTTL := cfg.Catalog.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	cachedCatalog := catalog.NewSnapshotCache(catalogRepo, cacheTTL, logger)

	scorer := scoring.NewKeywordScorer(logger)

	// Remote enhancer is optional; without a credential the engine runs the
	// local algorithm only.
	var aiClient generativeAI.Client
	if client, err := generativeAI.NewAIClient(ctx); err != nil {
		logger.Warn("Remote enhancer not configured, running local-only", slog.Any("error", err))
	} else {
		aiClient = client
	}

	remoteTimeout := cfg.Enhancer.Timeout
	if remoteTimeout <= 0 {
		remoteTimeout = 30 * time.Second
	}

	itineraryService := itinerary.NewService(cachedCatalog, scorer, aiClient, remoteTimeout, appmetrics.Get(), logger)
	itineraryHandler := itinerary.NewHandler(itineraryService, logger)

	// --- Router Setup ---
	mainRouter := router.SetupRouter(&router.Config{
		ItineraryHandler: itineraryHandler,
	})

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(cfg.Server.Timeout))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", mainRouter)

	// --- HTTP Server Setup ---
	srv := &http.Server{
		Addr:         cfg.Server.HTTPPort,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", srv.Addr))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" {
		// Colored logs for development
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		// JSON logs for production
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
