package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mentorlane/api/internal/config"
	"github.com/mentorlane/api/internal/repository"
	"github.com/mentorlane/api/internal/service"
	server "github.com/mentorlane/api/internal/transport/http"
	"github.com/mentorlane/api/internal/transport/rpc"
	"github.com/mentorlane/api/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger := newLogger(cfg)

	logger.Info().
		Str("env", cfg.Env).
		Int("http_port", cfg.HTTPPort).
		Int("metrics_port", cfg.MetricsPort).
		Int("rpc_port", cfg.RPCPort).
		Str("store", cfg.StoreDriver).
		Bool("require_verified", cfg.AuthRequireVerified).
		Msg("starting mentorlane api")
	if cfg.JWTSecret == "" {
		logger.Warn().Msg("JWT_SECRET is not set, every credential will resolve unverified")
	}

	ctx := context.Background()

	// Initialize store
	db, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize store")
	}
	defer db.Close()

	// Initialize policy engine
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize policy engine")
	}

	// Initialize service
	svc := service.New(db, cfg, policyEngine, logger)

	apiServer := server.NewAPIServer(svc, logger)
	metricsServer := server.NewMetricsServer()

	// Start API server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := apiServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start api server")
		}
	}()

	// Start metrics server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.MetricsPort)
		if err := metricsServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start metrics server")
		}
	}()

	// Start internal RPC server
	var rpcServer *rpc.Server
	if cfg.RPCPort > 0 {
		rpcServer, err = rpc.NewServer(svc, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize rpc server")
		}
		if err := rpcServer.Listen(fmt.Sprintf(":%d", cfg.RPCPort)); err != nil {
			logger.Fatal().Err(err).Msg("failed to bind rpc server")
		}
		go func() {
			if err := rpcServer.Serve(); err != nil {
				logger.Fatal().Err(err).Msg("failed to start rpc server")
			}
		}()
		logger.Info().Int("port", cfg.RPCPort).Msg("internal rpc server started")
	}

	logger.Info().Int("port", cfg.HTTPPort).Msg("api server started")
	logger.Info().Int("port", cfg.MetricsPort).Msg("metrics server started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown api server gracefully")
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown metrics server gracefully")
	}
	if rpcServer != nil {
		if err := rpcServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown rpc server gracefully")
		}
	}

	logger.Info().Msg("stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		return store.NewSQLiteStore(cfg.DatabaseURL)
	case config.StoreDriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return store.NewMongoStore(connectCtx, cfg.MongoURL, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
