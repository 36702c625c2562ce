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
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/joho/godotenv"

	"github.com/velidenizayhan/blog/pkg/blog"
	"github.com/velidenizayhan/blog/pkg/blog/api"
	"github.com/velidenizayhan/blog/pkg/blog/config"
	"github.com/velidenizayhan/blog/pkg/blog/web"
)

func main() {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load server configuration", "err", err)
		os.Exit(1)
	}

	if cfg.UsesPostgres() {
		if err := cfg.PingPostgres(); err != nil {
			slog.Error("Failed to connect to database", "err", err)
			os.Exit(1)
		}
	}

	svc, err := cfg.BuildService()
	if err != nil {
		slog.Error("Failed to build service", "err", err)
		os.Exit(1)
	}

	router, err := buildRouter(cfg, svc)
	if err != nil {
		slog.Error("Failed to build router", "err", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Blog server starting",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"storage_backend", cfg.Storage.Backend)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "err", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}

func buildRouter(cfg *config.ServerConfig, svc blog.Service) (http.Handler, error) {
	logger := httplog.NewLogger("blog", httplog.Options{
		LogLevel: slog.LevelInfo,
		Concise:  cfg.Environment == "production",
	})

	r := chi.NewRouter()

	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, http.StatusText(http.StatusOK))
	})
	r.Get("/healthz/ready", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, http.StatusText(http.StatusOK))
	})

	contactHandler := api.NewContactHandler(svc)
	uploadHandler := api.NewUploadHandler(svc)
	adminHandler := api.NewAdminHandler(svc, cfg.AdminPassword, cfg.AdminTokenSecret)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/contact", contactHandler.Routes())
		r.Mount("/upload", uploadHandler.Routes())
		r.Mount("/admin", adminHandler.Routes())
	})

	webHandler, err := web.NewHandler(svc, adminHandler)
	if err != nil {
		return nil, fmt.Errorf("failed to build web handler: %w", err)
	}
	r.Mount("/", webHandler.Routes())

	return r, nil
}
