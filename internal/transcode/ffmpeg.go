// Package transcode standardizes externally sourced recordings to mono,
// fixed-rate, fixed-duration 16-bit PCM WAV by driving the ffmpeg CLI as
// a subprocess.
package transcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
var ErrFFmpegNotFound = errors.New("transcode: ffmpeg binary not found")

// Standardizer converts arbitrary input audio to the dataset contract:
// one channel, a fixed sample rate, and exactly the target duration via
// pad-then-trim filtering.
type Standardizer struct {
	ffmpegPath  string
	sampleRate  int
	durationSec float64
}

// NewStandardizer creates a Standardizer. If ffmpegPath is empty, it
// defaults to "ffmpeg" (found via PATH).
func NewStandardizer(ffmpegPath string, sampleRate int, durationSec float64) *Standardizer {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Standardizer{
		ffmpegPath:  ffmpegPath,
		sampleRate:  sampleRate,
		durationSec: durationSec,
	}
}

// Check verifies the ffmpeg binary is available. Absence is fatal at
// batch start, before any per-file work.
func (s *Standardizer) Check() error {
	if _, err := exec.LookPath(s.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, s.ffmpegPath)
	}
	return nil
}

// Convert transcodes src into a standardized WAV at dst. Inputs shorter
// than the target duration are padded with silence; longer inputs are
// trimmed.
func (s *Standardizer) Convert(ctx context.Context, src, dst string) error {
	// apad appends silence, atrim then enforces the exact duration.
	filter := fmt.Sprintf("apad,atrim=0:%g", s.durationSec)

	args := []string{
		"-y", // Overwrite output file without asking
		"-i", src,
		"-ac", "1", // Mono
		"-ar", strconv.Itoa(s.sampleRate),
		"-filter_complex", filter,
		"-c:a", "pcm_s16le",
		dst,
	}

	return s.runFFmpeg(ctx, args)
}

// runFFmpeg executes ffmpeg with the given arguments and returns an
// error containing stderr output if the command fails.
func (s *Standardizer) runFFmpeg(ctx context.Context, args []string) error {
	// #nosec G204 - ffmpegPath is set by the application, not user input
	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// Check if context was cancelled
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg cancelled: %w", ctx.Err())
		}
		return &FFmpegError{
			Args:   args,
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	return nil
}

// Duration returns the duration in seconds of an audio file, parsed from
// ffmpeg's banner output. Useful for verifying standardized outputs.
func (s *Standardizer) Duration(ctx context.Context, path string) (float64, error) {
	// #nosec G204 - ffmpegPath is set by the application, not user input
	cmd := exec.CommandContext(ctx, s.ffmpegPath,
		"-i", path,
		"-hide_banner",
		"-f", "null", "-",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	// ffmpeg writes duration info to stderr and exits non-zero for the
	// null muxer; the output is still usable.
	_ = cmd.Run()

	return parseDuration(stderr.String())
}

var durationRe = regexp.MustCompile(`Duration:\s*(\d+):(\d+):(\d+)\.(\d+)`)

// parseDuration extracts "Duration: HH:MM:SS.ms" from ffmpeg output.
func parseDuration(output string) (float64, error) {
	matches := durationRe.FindStringSubmatch(output)
	if len(matches) < 5 {
		return 0, fmt.Errorf("could not parse duration from ffmpeg output: %s", output)
	}

	hours, _ := strconv.ParseFloat(matches[1], 64)
	minutes, _ := strconv.ParseFloat(matches[2], 64)
	seconds, _ := strconv.ParseFloat(matches[3], 64)
	frac, _ := strconv.ParseFloat(matches[4], 64)

	divisor := 1.0
	for i := 0; i < len(matches[4]); i++ {
		divisor *= 10
	}

	return hours*3600 + minutes*60 + seconds + frac/divisor, nil
}

// FFmpegError represents an error from running ffmpeg, including the
// stderr output.
type FFmpegError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *FFmpegError) Error() string {
	return fmt.Sprintf("ffmpeg error: %v\nargs: %v\nstderr: %s", e.Err, e.Args, truncateStderr(e.Stderr))
}

func (e *FFmpegError) Unwrap() error {
	return e.Err
}

// truncateStderr keeps error logs readable for long ffmpeg dumps.
func truncateStderr(s string) string {
	const keep = 400
	s = strings.TrimSpace(s)
	if len(s) <= keep {
		return s
	}
	return s[len(s)-keep:]
}
