// Command auth-server starts the authentication HTTP service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/innowise/auth-service/internal/api"
	"github.com/innowise/auth-service/internal/core/password"
	"github.com/innowise/auth-service/internal/core/service"
	"github.com/innowise/auth-service/internal/core/token"
	"github.com/innowise/auth-service/internal/infrastructure/config"
	mongodb "github.com/innowise/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/innowise/auth-service/internal/infrastructure/db/redis"
	"github.com/innowise/auth-service/internal/infrastructure/queue"
	"github.com/innowise/auth-service/internal/infrastructure/seed"
	"github.com/innowise/auth-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting auth service")

	// --- Infrastructure ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	authRepo := mongodb.NewAuthRepository(db)
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Core wiring ---
	hasher := password.NewBcryptHasher(0) // default cost
	codec := token.NewCodec([]byte(cfg.JWT.Secret))
	limiter := redisdb.NewLoginLimiter(rdb, 0, 0) // default thresholds

	auditService := service.NewAuditService(mongodb.NewAuditRepository(db), log)
	dispatcher := queue.NewDispatcher(0, auditService, log)
	dispatcher.Start(ctx)

	if err := seed.Admin(ctx, authRepo, hasher, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password, log); err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}

	authService := service.NewAuthService(authRepo, hasher, codec,
		cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, limiter, dispatcher, log)
	adminService := service.NewAdminService(authRepo, dispatcher, log)

	// --- HTTP server ---
	e := api.NewRouter(authService, adminService, db, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
