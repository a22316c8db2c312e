// Package bootstrap wires configuration into the dependencies shared by
// the soundforge commands.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/crysense/soundforge/internal/config"
	"github.com/crysense/soundforge/internal/storage"
)

// NewSink creates the output sink for a command: local disk, mirrored to
// S3 when the common configuration enables it.
func NewSink(cfg *config.Common, root string, logger *slog.Logger) (storage.Sink, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Prefix:          cfg.S3Prefix,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		sink, err := storage.NewS3Sink(root, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 sink: %w", err)
		}
		logger.Info("S3 mirroring configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return sink, nil
	}

	sink, err := storage.NewLocalSink(root)
	if err != nil {
		return nil, fmt.Errorf("create local sink: %w", err)
	}
	logger.Info("local sink configured",
		slog.String("root", root),
	)
	return sink, nil
}
