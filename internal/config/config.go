// Package config provides configuration loading from environment
// variables for the soundforge commands.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

// Common holds settings shared by every command.
type Common struct {
	// SampleRate is the output sample rate in Hz for all generated and
	// standardized audio.
	SampleRate int `env:"SAMPLE_RATE, default=16000" json:"sample_rate" validate:"gt=0"`

	// Optional S3 settings; when both bucket and region are set, outputs
	// are mirrored to S3 in addition to local disk.
	S3Bucket           string `env:"S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"S3_REGION" json:"s3_region,omitempty"`
	S3Prefix           string `env:"S3_PREFIX" json:"s3_prefix,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// S3Enabled returns true if S3 configuration is provided.
func (c *Common) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for production.
// Otherwise, it outputs human-readable text logs.
func (c *Common) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// Generate configures the synthetic mixture batch command.
type Generate struct {
	Common

	OutputDir   string  `env:"OUTPUT_DIR, default=dataset/noncry_synthetic" json:"output_dir"`
	NumSamples  int     `env:"NUM_SAMPLES, default=100" json:"num_samples" validate:"gt=0"`
	DurationSec float64 `env:"DURATION_SEC, default=7.0" json:"duration_sec" validate:"gt=0"`
	MinEvents   int     `env:"MIN_EVENTS, default=1" json:"min_events" validate:"gte=0"`
	MaxEvents   int     `env:"MAX_EVENTS, default=4" json:"max_events" validate:"gtefield=MinEvents"`
	StartIndex  int     `env:"START_INDEX, default=0" json:"start_index" validate:"gte=0"`
	Seed        int64   `env:"SEED, default=42" json:"seed"`
	Prefix      string  `env:"PREFIX, default=noncry" json:"prefix" validate:"required"`
	SNRMinDB    float64 `env:"SNR_MIN_DB, default=5" json:"snr_min_db"`
	SNRMaxDB    float64 `env:"SNR_MAX_DB, default=20" json:"snr_max_db" validate:"gtefield=SNRMinDB"`
	PeakTarget  float64 `env:"PEAK_TARGET, default=0.9" json:"peak_target" validate:"gt=0,lte=1"`
}

// Soundbank configures the soundbank builder command.
type Soundbank struct {
	Common

	Root           string  `env:"SOUNDBANK_ROOT, default=soundbank" json:"root"`
	NumBackgrounds int     `env:"NUM_BACKGROUNDS, default=10" json:"num_backgrounds" validate:"gt=0"`
	BgDurationSec  float64 `env:"BG_DURATION_SEC, default=30.0" json:"bg_duration_sec" validate:"gt=0"`
	NumVariants    int     `env:"NUM_VARIANTS, default=25" json:"num_variants" validate:"gt=0"`
	Seed           int64   `env:"SEED, default=42" json:"seed"`
}

// Standardize configures the external-recording standardizer command.
type Standardize struct {
	Common

	InputDir    string  `env:"INPUT_DIR, required" json:"input_dir"`
	OutputDir   string  `env:"OUTPUT_DIR, default=dataset/standardized" json:"output_dir"`
	Prefix      string  `env:"PREFIX, default=clip" json:"prefix" validate:"required"`
	DurationSec float64 `env:"DURATION_SEC, default=7.0" json:"duration_sec" validate:"gt=0"`
	Overwrite   bool    `env:"OVERWRITE, default=false" json:"overwrite"`
	FFmpegPath  string  `env:"FFMPEG_PATH" json:"ffmpeg_path,omitempty"`
}

var validate = validator.New()

// LoadGenerate reads the mixture generator configuration from the
// environment and validates it.
func LoadGenerate(ctx context.Context) (*Generate, error) {
	cfg := &Generate{}
	if err := load(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadSoundbank reads the soundbank builder configuration from the
// environment and validates it.
func LoadSoundbank(ctx context.Context) (*Soundbank, error) {
	cfg := &Soundbank{}
	if err := load(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadStandardize reads the standardizer configuration from the
// environment and validates it.
func LoadStandardize(ctx context.Context) (*Standardize, error) {
	cfg := &Standardize{}
	if err := load(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load(ctx context.Context, cfg any) error {
	if err := envconfig.Process(ctx, cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
