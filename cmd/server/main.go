package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/draftpress/editorial/pkg/editorial/api"
	"github.com/draftpress/editorial/pkg/editorial/config"
	"github.com/draftpress/editorial/pkg/editorial/repo/postgres"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Apply schema migrations before the pool starts serving requests.
	if cfg.DatabaseType == "postgres" {
		if err := migrate(cfg.DatabaseURL); err != nil {
			slog.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	svc, err := cfg.BuildService()
	if err != nil {
		slog.Error("Failed to build service", "error", err)
		os.Exit(1)
	}

	contentHandler := api.NewContentHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(api.RequestIDMiddleware)
	r.Use(api.IdentityMiddleware)

	r.Mount("/content", contentHandler.Routes())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "database", cfg.DatabaseType, "notifier", cfg.Notifier)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}
}

func migrate(databaseURL string) error {
	db, err := postgres.Open(databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	return postgres.Migrate(db)
}
