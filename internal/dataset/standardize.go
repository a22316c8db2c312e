package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/crysense/soundforge/internal/transcode"
)

// ErrNoInputFiles is returned when the input tree contains no audio.
var ErrNoInputFiles = errors.New("dataset: no audio files found to standardize")

// StandardizeService flattens a tree of arbitrary recordings into
// sequentially named, standardized WAVs via the ffmpeg collaborator.
type StandardizeService struct {
	trans     *transcode.Standardizer
	logger    *slog.Logger
	outputDir string
	prefix    string
	overwrite bool
}

// StandardizeOption configures a StandardizeService.
type StandardizeOption func(*StandardizeService)

// WithOverwrite makes the service replace existing output files instead
// of skipping them.
func WithOverwrite(overwrite bool) StandardizeOption {
	return func(s *StandardizeService) {
		s.overwrite = overwrite
	}
}

// NewStandardizeService creates a StandardizeService writing to
// outputDir with the given filename prefix.
func NewStandardizeService(trans *transcode.Standardizer, logger *slog.Logger, outputDir, prefix string, opts ...StandardizeOption) *StandardizeService {
	if logger == nil {
		logger = slog.Default()
	}
	if prefix == "" {
		prefix = "clip"
	}
	s := &StandardizeService{
		trans:     trans,
		logger:    logger,
		outputDir: outputDir,
		prefix:    prefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run discovers audio under inputDir and converts each file. A missing
// ffmpeg binary or an empty input set is fatal before any work starts;
// a per-file conversion failure is logged and the batch continues.
func (s *StandardizeService) Run(ctx context.Context, inputDir string) (*Report, error) {
	if err := s.trans.Check(); err != nil {
		return nil, err
	}

	files, err := transcode.DiscoverAudio(inputDir)
	if err != nil {
		return nil, fmt.Errorf("discover audio under %s: %w", inputDir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInputFiles, inputDir)
	}

	if err := os.MkdirAll(s.outputDir, 0750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	s.logger.Info("standardizing recordings",
		slog.Int("files", len(files)),
		slog.String("input_dir", inputDir),
		slog.String("output_dir", s.outputDir),
	)

	report := &Report{}
	for i, src := range files {
		select {
		case <-ctx.Done():
			return report, fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		dst := filepath.Join(s.outputDir, fmt.Sprintf("%s_%05d.wav", s.prefix, i))
		item := Item{Index: i, Path: dst, Source: src}

		if _, err := os.Stat(dst); err == nil && !s.overwrite {
			item.Status = StatusSkipped
			report.Add(item)
			continue
		}

		if err := s.trans.Convert(ctx, src, dst); err != nil {
			s.logger.Warn("failed to standardize file",
				slog.String("source", src),
				slog.String("error", err.Error()),
			)
			item.Status = StatusFailed
			item.Error = err.Error()
		} else {
			item.Status = StatusCompleted
		}
		report.Add(item)
	}

	s.logger.Info("standardization complete",
		slog.Int("completed", report.Completed()),
		slog.Int("skipped", report.Skipped()),
		slog.Int("failed", report.Failed()),
	)
	return report, nil
}
