package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/scantrack/scantrack-backend/internal/api/middleware"
	"github.com/scantrack/scantrack-backend/internal/api/rest"
	"github.com/scantrack/scantrack-backend/internal/api/websocket"
	"github.com/scantrack/scantrack-backend/internal/config"
	"github.com/scantrack/scantrack-backend/internal/pkg/logger"
	"github.com/scantrack/scantrack-backend/internal/repository"
	"github.com/scantrack/scantrack-backend/internal/service"
	"github.com/scantrack/scantrack-backend/internal/session"
	"github.com/scantrack/scantrack-backend/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.StdLogger(cfg.LogLevel)
	log.Info("scantrack backend starting", "port", cfg.Port, "db", cfg.DatabasePath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Event store
	store, err := repository.NewEventStore(cfg.DatabasePath)
	if err != nil {
		log.Error("failed to open event store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.RunMigrations(migrations.FS); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Broadcast hub
	hub := websocket.NewHub(ctx)
	go hub.Run()

	// Services
	ingestService := service.NewIngestService(store, hub)
	statsService := service.NewStatsService(store)
	exportService := service.NewExportService(store)

	// Router
	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.SecureHeaders)
	router.Use(middleware.MaxBodySize(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMin, cfg.BehindProxy))
	router.Use(middleware.StructuredLog)
	router.Use(middleware.Recovery)
	router.Use(session.Resolve)

	handler := rest.NewHandler(cfg, ingestService, statsService, exportService, log)
	handler.SetupRoutes(router)

	// Live viewer channel
	wsHandler := websocket.NewHandler(ctx, hub, log)
	router.HandleFunc("/ws", wsHandler.ServeWS).Methods("GET")

	// Operational endpoints
	healthz := rest.NewHealthzHandler(store)
	router.HandleFunc("/healthz/live", healthz.Live).Methods("GET")
	router.HandleFunc("/healthz/ready", healthz.Ready).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      c.Handler(router),
		ReadTimeout:  time.Duration(cfg.RequestTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", srv.Addr, "public_url", cfg.PublicURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	hub.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.ShutdownTimeoutSec)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
