// main is the entry point of the students UI.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Install tracing (only when an OTLP endpoint is configured)
//  4. Build the students API client
//  5. Register the six views
//  6. Start the HTTP server in a separate goroutine
//  7. Block until an OS signal (Ctrl+C / kill) arrives, then shut down
//
// RUNNING:
//
//	go run ./cmd/students-ui --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/students-ui
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/students-ui/internal/config"
	"github.com/aanand-mishra/students-ui/internal/http/router"
	"github.com/aanand-mishra/students-ui/internal/http/templates"
	"github.com/aanand-mishra/students-ui/internal/storage/remote"
	"github.com/aanand-mishra/students-ui/internal/tracing"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Set as default so the views' package-level slog calls use it too.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting students-ui",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Tracing ────────────────────────────────────────────────────────
	shutdownTracing, err := tracing.Setup(context.Background(), cfg.Tracing)
	if err != nil {
		log.Error("failed to initialise tracing",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	// ── 4. Students API ───────────────────────────────────────────────────
	// The remote client is the only storage the UI has. It is held as
	// storage.Storage by the views, which never see HTTP details.
	storage, err := remote.New(cfg.StudentsAPI.BaseURL,
		remote.WithTimeout(cfg.StudentsAPI.Timeout))
	if err != nil {
		log.Error("failed to initialise students api client",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("students api configured",
		slog.String("base_url", storage.BaseURL()))

	// ── 5. Register Views ─────────────────────────────────────────────────
	pages, err := templates.New()
	if err != nil {
		log.Error("failed to parse templates",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router.New(storage, pages),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed once Shutdown is
		// called; that one is expected.
		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := shutdownTracing(ctx); err != nil {
		log.Error("failed to flush traces",
			slog.String("error", err.Error()))
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
