package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"fitx/api/internal/cache"
	"fitx/api/internal/config"
	"fitx/api/internal/database"
	"fitx/api/internal/handlers"
	"fitx/api/internal/log"
	"fitx/api/internal/repository"
	"fitx/api/internal/repository/memstore"
	"fitx/api/internal/server"
	"fitx/api/internal/service"
	"fitx/api/internal/storage"
)

type stores struct {
	users     service.UserStore
	exercises service.ExerciseStore
	progress  service.ProgressStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	st, dbPool, checks, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open stores")
	}

	var (
		redisClient   *redis.Client
		exerciseCache service.ExerciseCache
	)
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
		exerciseCache = cache.NewExerciseCache(redisClient, cfg.Redis.ExerciseTTL)
		checks = append(checks, handlers.HealthCheck{
			Name:  "cache",
			Probe: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	authService := service.NewAuthService(st.users, cfg.Security, logger)
	exerciseService := service.NewExerciseService(st.exercises, exerciseCache, logger)

	var mediaService *service.MediaService
	if cfg.Storage.Enabled() {
		objectStore, err := storage.NewObjectStore(cfg.Storage)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init object store")
		}
		if err := objectStore.EnsureBucket(ctx); err != nil {
			logger.Warn().Err(err).Msg("ensure bucket failed")
		}
		mediaService = service.NewMediaService(exerciseService, objectStore, cfg.Storage, logger)
	}

	handlerSet := handlers.NewHandlerSet(handlers.Dependencies{
		Log:       logger,
		Config:    cfg,
		Auth:      authService,
		Exercises: exerciseService,
		Progress:  service.NewProgressService(st.progress, logger),
		Admin:     service.NewAdminService(st.users, logger),
		Media:     mediaService,
		Checks:    checks,
	})
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, dbPool, redisClient)
}

// openStores connects Postgres when a DSN is configured and falls back to
// in-memory stores otherwise.
func openStores(ctx context.Context, cfg *config.AppConfig, logger zerolog.Logger) (stores, *pgxpool.Pool, []handlers.HealthCheck, error) {
	if !cfg.Postgres.Enabled() {
		logger.Warn().Msg("postgres.dsn not set, using in-memory stores")
		mem := memstore.New()
		return stores{users: mem.Users, exercises: mem.Exercises, progress: mem.Progress}, nil, nil, nil
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		return stores{}, nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if cfg.Postgres.Migrate {
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return stores{}, nil, nil, err
		}
	}
	st := stores{
		users:     repository.NewUserRepository(pool),
		exercises: repository.NewExerciseRepository(pool),
		progress:  repository.NewProgressRepository(pool),
	}
	checks := []handlers.HealthCheck{{Name: "database", Probe: pool.Ping}}
	return st, pool, checks, nil
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, db *pgxpool.Pool, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	if db != nil {
		db.Close()
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("redis close error")
		}
	}

	logger.Info().Msg("server exited cleanly")
}
