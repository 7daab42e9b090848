package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"fitx/api/internal/cache"
	"fitx/api/internal/config"
	"fitx/api/internal/database"
	"fitx/api/internal/log"
	"fitx/api/internal/repository"
	"fitx/api/internal/seed"
	"fitx/api/internal/service"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("seed failed")
	}
}

// run parses flags, seeds the exercise catalog and optionally bootstraps an admin.
func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	catalogPath := fs.String("catalog", "config/exercises.yaml", "exercise catalog YAML file")
	truncate := fs.Bool("truncate", false, "delete every exercise before seeding")
	adminEmail := fs.String("admin-email", "", "create or promote this account to admin")
	adminUsername := fs.String("admin-username", "admin", "username for a newly created admin")
	adminPassword := fs.String("admin-password", "", "password for a newly created admin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *adminEmail != "" && *adminPassword == "" {
		return errors.New("-admin-password is required with -admin-email")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := log.New(cfg.Environment)

	if !cfg.Postgres.Enabled() {
		return errors.New("postgres.dsn is required for seeding")
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}

	var exerciseCache service.ExerciseCache
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, cached catalog will expire on its own")
		} else {
			defer client.Close()
			exerciseCache = cache.NewExerciseCache(client, cfg.Redis.ExerciseTTL)
		}
	}

	users := repository.NewUserRepository(pool)
	exercises := repository.NewExerciseRepository(pool)
	seeder := seed.NewSeeder(
		service.NewExerciseService(exercises, exerciseCache, logger),
		exercises,
		service.NewAuthService(users, cfg.Security, logger),
		users,
		logger,
	)

	entries, err := seed.LoadCatalogFile(*catalogPath)
	if err != nil {
		return fmt.Errorf("load catalog %s: %w", *catalogPath, err)
	}
	if _, err := seeder.SeedCatalog(ctx, entries, *truncate); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	if *adminEmail != "" {
		if _, err := seeder.BootstrapAdmin(ctx, seed.AdminAccount{
			Email:    *adminEmail,
			Username: *adminUsername,
			Password: *adminPassword,
		}); err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	}
	return nil
}
