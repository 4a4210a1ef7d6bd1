// Package main is the entry point for the calorie tracking API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/calorietrack/calorie-api/internal/api"
	"github.com/calorietrack/calorie-api/internal/api/handler"
	"github.com/calorietrack/calorie-api/internal/api/middleware"
	"github.com/calorietrack/calorie-api/internal/core/service"
	"github.com/calorietrack/calorie-api/internal/infrastructure/config"
	"github.com/calorietrack/calorie-api/internal/infrastructure/crypto"
	"github.com/calorietrack/calorie-api/internal/infrastructure/db"
	redisdb "github.com/calorietrack/calorie-api/internal/infrastructure/db/redis"
	"github.com/calorietrack/calorie-api/internal/report"
	"github.com/calorietrack/calorie-api/pkg/logger"
)

const shutdownGrace = 10 * time.Second

// @title Calorie Tracking API
// @version 1.0
// @description Accounts, daily calorie ledger and PDF/CSV reports.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "calorie-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	store, err := db.Open(ctx, db.Config{
		Driver:   cfg.Store.Driver,
		DSN:      cfg.Store.DSN,
		MongoURI: cfg.Store.MongoURI,
		MongoDB:  cfg.Store.MongoDB,
		Timeout:  cfg.Store.Timeout,
		LogSQL:   cfg.LogLevel == "debug",
	})
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("failed to close store")
		}
	}()
	log.Info().Str("driver", cfg.Store.Driver).Msg("store ready")

	readiness := map[string]handler.Pinger{"store": store}

	// --- Rate limiting ---
	var limiter middleware.Limiter
	if cfg.RateLimit.Enabled {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Timeout:  cfg.Store.Timeout,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		fw, err := redisdb.NewFixedWindowLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window)
		if err != nil {
			return err
		}
		limiter = fw
		readiness["redis"] = redisPinger(rdb)
		log.Info().Int("max", cfg.RateLimit.Max).Dur("window", cfg.RateLimit.Window).Msg("auth rate limiting enabled")
	}

	// --- Services ---
	codec, err := crypto.NewFernetCodec(cfg.Auth.FernetKey)
	if err != nil {
		return err
	}
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	authService := service.NewAuthService(store.Users, tokens, log)
	intakeService := service.NewIntakeService(store.Intakes, log)
	reportService := service.NewReportService(intakeService, store.Artifacts, report.NewRenderer(), codec, log)

	e := api.NewRouter(api.Dependencies{
		Auth:          authService,
		Intake:        intakeService,
		Reports:       reportService,
		Tokens:        tokens,
		Limiter:       limiter,
		Readiness:     readiness,
		PublicBaseURL: cfg.PublicBaseURL,
		Log:           log,
		Registry:      prometheus.NewRegistry(),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting calorie api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func redisPinger(client *goredis.Client) handler.PingFunc {
	return func(ctx context.Context) error {
		return redisdb.Ping(ctx, client, 2*time.Second)
	}
}
