// Package main provides the synthetic soundbank builder.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/crysense/soundforge/internal/bootstrap"
	"github.com/crysense/soundforge/internal/config"
	"github.com/crysense/soundforge/internal/dataset"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadSoundbank(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting soundbank build",
		slog.String("root", cfg.Root),
		slog.Int("backgrounds", cfg.NumBackgrounds),
		slog.Int("variants", cfg.NumVariants),
		slog.Int64("seed", cfg.Seed),
		slog.Bool("s3_enabled", cfg.S3Enabled()),
	)

	sink, err := bootstrap.NewSink(&cfg.Common, cfg.Root, logger)
	if err != nil {
		return err
	}

	svc := dataset.NewSoundbankService(sink, logger, dataset.SoundbankParams{
		SampleRate:     cfg.SampleRate,
		NumBackgrounds: cfg.NumBackgrounds,
		BgDurationSec:  cfg.BgDurationSec,
		NumVariants:    cfg.NumVariants,
	})

	rng := rand.New(rand.NewSource(cfg.Seed))

	report, err := svc.Build(ctx, rng)
	if err != nil {
		return err
	}
	if report.Failed() > 0 {
		logger.Warn("some soundbank files were not written",
			slog.Int("failed", report.Failed()),
		)
	}
	return nil
}
