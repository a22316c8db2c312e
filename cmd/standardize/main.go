// Package main provides the external-recording standardizer.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/crysense/soundforge/internal/config"
	"github.com/crysense/soundforge/internal/dataset"
	"github.com/crysense/soundforge/internal/transcode"
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

	cfg, err := config.LoadStandardize(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting standardization",
		slog.String("input_dir", cfg.InputDir),
		slog.String("output_dir", cfg.OutputDir),
		slog.String("prefix", cfg.Prefix),
		slog.Float64("duration_sec", cfg.DurationSec),
		slog.Bool("overwrite", cfg.Overwrite),
	)

	trans := transcode.NewStandardizer(cfg.FFmpegPath, cfg.SampleRate, cfg.DurationSec)
	svc := dataset.NewStandardizeService(trans, logger, cfg.OutputDir, cfg.Prefix,
		dataset.WithOverwrite(cfg.Overwrite),
	)

	report, err := svc.Run(ctx, cfg.InputDir)
	if err != nil {
		return err
	}
	if report.Failed() > 0 {
		logger.Warn("some files were not standardized",
			slog.Int("failed", report.Failed()),
		)
	}
	return nil
}
