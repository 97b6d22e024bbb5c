// Command loader seeds the news collection from a JSON array of articles,
// skipping duplicates and records without the critical fields.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bilgisen/newsseed/internal/cache"
	"github.com/bilgisen/newsseed/internal/config"
	"github.com/bilgisen/newsseed/internal/ingest"
	"github.com/bilgisen/newsseed/internal/lock"
	"github.com/bilgisen/newsseed/internal/logger"
	"github.com/bilgisen/newsseed/internal/source"
	"github.com/bilgisen/newsseed/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: cfg.LogOutput,
		Pretty: true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		stop()
		logger.Get().Fatal().Err(err).Msg("Loader failed")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	runLock, err := lock.Acquire(cfg.LockPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := runLock.Release(); err != nil {
			log.Error().Err(err).Msg("Error releasing lock")
		}
	}()

	db, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("error initializing %s store: %w", cfg.Backend, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing store")
		}
	}()

	reader := source.NewReader(source.NewFetcher(cfg.HTTPTimeout, cfg.HTTPRetries))
	items, err := reader.Read(ctx, cfg.InputPath)
	if err != nil {
		return fmt.Errorf("error reading JSON input: %w", err)
	}

	log.Info().
		Str("input", cfg.InputPath).
		Str("backend", cfg.Backend).
		Str("collection", cfg.Collection).
		Int("records", len(items)).
		Msg("Starting to load articles")

	opts := []ingest.Option{ingest.WithOutput(os.Stdout)}
	if cfg.RedisURL != "" {
		seen, err := cache.NewRedisClient(cfg.RedisURL, cache.ScopedPrefix(cfg.RedisPrefix, cfg.Backend, cfg.Collection))
		if err != nil {
			log.Warn().Err(err).Msg("Seen-id cache unavailable, using store checks only")
		} else {
			defer seen.Close()
			opts = append(opts, ingest.WithSeenCache(seen, cfg.CacheTTL))
		}
	}

	ingest.New(db, opts...).Run(ctx, items)
	return nil
}
