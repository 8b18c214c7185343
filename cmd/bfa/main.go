package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grupocondor/condo-admin-bfa-go/internal/config"
	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/handler"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/cache"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/client"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/condocore"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/observability"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/resilience"
	"github.com/grupocondor/condo-admin-bfa-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("core_api_url", cfg.CoreAPIURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "condo-admin-bfa")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	unidadesCache := cache.New[[]domain.Unidad](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}

	// One breaker per upstream so a degraded AI backend never opens the
	// circuit for core-api traffic.
	coreBreaker := resilience.NewCircuitBreaker("condocore")
	facesBreaker := resilience.NewCircuitBreaker("faces")
	platesBreaker := resilience.NewCircuitBreaker("plates")

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	coreClient := condocore.NewClient(httpClient, cfg.CoreAPIURL, cfg.CoreAPIToken, coreBreaker, resilienceCfg, logger)
	faceClient := client.NewFaceClient(httpClient, cfg.FaceAPIURL, facesBreaker, resilienceCfg)
	platesClient := client.NewPlatesClient(httpClient, cfg.PlatesAPIURL, platesBreaker, resilienceCfg)

	// --- Services ---
	svcs := handler.Services{
		Expensas:   service.NewExpensasService(coreClient, coreClient, metrics, logger),
		Unidades:   service.NewUnidadesService(coreClient, unidadesCache, metrics, logger),
		Residentes: service.NewResidentesService(coreClient, faceClient, metrics, logger),
		Multas:     service.NewMultasService(coreClient, metrics, logger),
		Vehiculos:  service.NewVehiculosService(coreClient, platesClient, metrics, logger),
		Tareas:     service.NewMantenimientoService(coreClient, metrics, logger),
		Verifier:   service.NewTokenVerifier(cfg.JWTSecret),
	}

	// --- Router ---
	router := handler.NewRouter(svcs, metrics, cfg.AllowedOrigins, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
