package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ronniefr/api-logger/accesslog"
	"github.com/ronniefr/api-logger/internal/auth"
	"github.com/ronniefr/api-logger/internal/config"
	"github.com/ronniefr/api-logger/internal/handler"
	"github.com/ronniefr/api-logger/internal/repository"
	"github.com/ronniefr/api-logger/internal/service"
	"github.com/ronniefr/api-logger/metrics"
	"github.com/ronniefr/api-logger/middleware"
)

func main() {
	cfg := config.Load()

	zerolog.TimeFieldFormat = time.RFC3339Nano

	al, err := accesslog.New(cfg.Log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build access logger")
	}
	defer al.Close()

	// metrics
	metricsRegistry := metrics.NewRegistry()

	// services
	weather := service.NewWeather(50 * time.Millisecond)
	items := repository.NewItemStore()

	// handlers
	demo := handler.NewDemoHandler(weather, items)
	health := &handler.HealthHandler{}
	admin := handler.NewAdminHandler(al)

	// JWT auth (optional: only if JWT_SECRET is set)
	var jwtMiddleware func(http.Handler) http.Handler
	if cfg.JWTSecret != "" {
		jwtMiddleware = auth.RequireJWT([]byte(cfg.JWTSecret), cfg.JWTIssuer)
		log.Info().Msg("JWT authentication enabled for admin endpoints")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metricsRegistry.Handler())
	// Protect the logging admin endpoint with JWT if enabled
	if jwtMiddleware != nil {
		mux.Handle("/admin/logging", jwtMiddleware(admin))
	} else {
		mux.Handle("/admin/logging", admin)
	}
	mux.HandleFunc("/health", health.Liveness)
	mux.HandleFunc("/ready", health.Readiness)
	mux.HandleFunc("/status", health.Status)
	mux.HandleFunc("GET /weather/{city}", demo.Weather)
	mux.HandleFunc("POST /items", demo.CreateItem)
	mux.HandleFunc("GET /items/{id}", demo.GetItem)
	mux.HandleFunc("GET /error", demo.ServerError)
	mux.HandleFunc("GET /panic", demo.Crash)
	mux.HandleFunc("GET /ws", handler.Echo)

	// middleware chain
	h := middleware.RequestID(mux)
	h = middleware.Logging(al)(h)
	h = middleware.Instrument(metricsRegistry)(h)
	h = middleware.Recovery(h)

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: h}

	go func() {
		log.Info().Msgf("listening %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.GracefulShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server exited")
}
