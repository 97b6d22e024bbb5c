// Command editor interactively updates fields of one stored news article.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bilgisen/newsseed/internal/archive"
	"github.com/bilgisen/newsseed/internal/config"
	"github.com/bilgisen/newsseed/internal/editor"
	"github.com/bilgisen/newsseed/internal/logger"
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
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg)
	if err != nil {
		stop()
		log.Fatal().Err(err).Str("backend", cfg.Backend).Msg("Error initializing store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing store")
		}
	}()

	opts := []editor.Option{}
	if snapshots, err := newArchive(ctx, cfg); err != nil {
		log.Warn().Err(err).Msg("Snapshots disabled")
	} else {
		opts = append(opts, editor.WithSnapshotter(snapshots))
	}

	// Edit errors are already printed on the console
	if _, err := editor.New(db, os.Stdin, os.Stdout, opts...).Run(ctx); err != nil {
		log.Error().Err(err).Msg("Edit session failed")
	}
}

func newArchive(ctx context.Context, cfg *config.Config) (*archive.Archive, error) {
	var uploader archive.Uploader
	if cfg.ArchiveUploadEnabled() {
		s3, err := archive.NewS3Uploader(ctx, cfg)
		if err != nil {
			return nil, err
		}
		uploader = s3
	}
	return archive.New(cfg.ArchivePath, uploader)
}
