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
	"github.com/go-chi/render"

	"github.com/tripcraft/guidebook/pkg/guidebook"
	"github.com/tripcraft/guidebook/pkg/guidebook/api"
	"github.com/tripcraft/guidebook/pkg/guidebook/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Load configuration from environment
	serverConfig, err := config.Load(config.WithEnv())
	if err != nil {
		logger.Error("failed to load server configuration", "error", err)
		os.Exit(1)
	}

	if serverConfig.DatabaseType == "postgres" {
		if err := config.PingPostgres(serverConfig.DatabaseURL); err != nil {
			logger.Error("database not reachable", "error", err)
			os.Exit(1)
		}
	}

	// Build service from configuration
	svc, err := serverConfig.BuildService()
	if err != nil {
		logger.Error("failed to build service", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverConfig.Port),
		Handler: routes(svc),
	}

	// Start server in a goroutine
	go func() {
		logger.Info("guidebook admin server starting",
			"port", serverConfig.Port,
			"env", serverConfig.Environment,
			"database", serverConfig.DatabaseType)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exiting")
}

func routes(svc guidebook.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/countries", api.NewCountryHandler(svc).Routes())
		r.Mount("/cities", api.NewCityHandler(svc).Routes())
		r.Mount("/library", api.NewLibraryHandler(svc).Routes())
		r.Mount("/guidebooks", api.NewGuidebookHandler(svc).Routes())
	})

	return r
}
