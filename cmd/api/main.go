// Package main is the entry point for the trip planner API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/Ath-12/ai-planner-final/internal/config"
	"github.com/Ath-12/ai-planner-final/internal/currency"
	"github.com/Ath-12/ai-planner-final/internal/genai"
	"github.com/Ath-12/ai-planner-final/internal/handler"
	"github.com/Ath-12/ai-planner-final/internal/middleware"
	"github.com/Ath-12/ai-planner-final/internal/repo"
	"github.com/Ath-12/ai-planner-final/internal/research"
	"github.com/Ath-12/ai-planner-final/internal/service"
	"github.com/Ath-12/ai-planner-final/migrations"
	"github.com/Ath-12/ai-planner-final/spec"
)

// maxBodyBytes caps request bodies. The planning form is a small JSON
// document; 1 MiB leaves generous headroom.
const maxBodyBytes = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	if err := runMigrations(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Clients and services ---------------------------------------------
	converter := currency.New(cfg.Exchange.APIKey, cfg.Exchange.BaseURL, cfg.Exchange.Timeout, logger)
	completer := genai.New(cfg.GenAI.APIKey, cfg.GenAI.BaseURL, cfg.GenAI.Model,
		genai.DefaultSampling, cfg.GenAI.Timeout, logger)
	researcher := research.New(cfg.Search.APIKey, cfg.Search.EngineID, cfg.Search.BaseURL,
		cfg.Search.Timeout, logger)
	if !researcher.Enabled() {
		slog.Info("link research disabled: no search credentials configured")
	}

	plans := repo.NewPlanRepo(pool)
	planner := service.NewPlannerService(plans, converter, completer, researcher, logger)
	exporter := service.NewExportService(plans)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → SlogLogger → Recoverer → CORS →
	// body size cap. RequestID first so every later stage can log it.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})
	r.Mount("/", handler.NewServer(planner, exporter).Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout must cover the slowest request: one completion call plus
	// overhead, so it sits above the GenAI client timeout.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.GenAI.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runMigrations applies any pending schema migrations before the server
// starts accepting traffic. goose wants a database/sql handle, opened here
// via the pgx stdlib driver and closed once migrations finish.
func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}

	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	if len(results) > 0 {
		slog.Info("applied migrations", "count", len(results))
	}
	return nil
}
