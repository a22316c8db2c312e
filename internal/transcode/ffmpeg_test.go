package transcode

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crysense/soundforge/internal/wavio"
)

// checkFFmpeg skips test if ffmpeg is not available.
func checkFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH, skipping test")
	}
}

// createTestWAV writes a short sine tone using ffmpeg's lavfi source.
func createTestWAV(t *testing.T, path string, durationSec float64, sampleRate int) {
	t.Helper()
	cmd := exec.Command("ffmpeg", "-y",
		"-f", "lavfi", "-i", "sine=frequency=440:duration="+strconv.FormatFloat(durationSec, 'f', -1, 64),
		"-ar", strconv.Itoa(sampleRate), "-ac", "1",
		path,
	)
	out, _ := cmd.CombinedOutput()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("failed to create test WAV: %s", string(out))
	}
}

func TestStandardizer_Check(t *testing.T) {
	t.Run("missing binary", func(t *testing.T) {
		s := NewStandardizer("/no/such/ffmpeg-binary", 16000, 7.0)
		assert.ErrorIs(t, s.Check(), ErrFFmpegNotFound)
	})

	t.Run("binary on PATH", func(t *testing.T) {
		checkFFmpeg(t)
		s := NewStandardizer("", 16000, 7.0)
		assert.NoError(t, s.Check())
	})
}

func TestStandardizer_Convert_PadsShortInput(t *testing.T) {
	checkFFmpeg(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "short.wav")
	dst := filepath.Join(dir, "out.wav")
	createTestWAV(t, src, 2.0, 44100)

	s := NewStandardizer("", 16000, 7.0)
	require.NoError(t, s.Convert(context.Background(), src, dst))

	samples, sr, err := wavio.DecodeFile(dst)
	require.NoError(t, err)
	assert.Equal(t, 16000, sr)
	assert.Equal(t, 112000, len(samples))
}

func TestStandardizer_Convert_TrimsLongInput(t *testing.T) {
	checkFFmpeg(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "long.wav")
	dst := filepath.Join(dir, "out.wav")
	createTestWAV(t, src, 10.0, 16000)

	s := NewStandardizer("", 16000, 7.0)
	require.NoError(t, s.Convert(context.Background(), src, dst))

	samples, _, err := wavio.DecodeFile(dst)
	require.NoError(t, err)
	assert.Equal(t, 112000, len(samples))
}

func TestStandardizer_Convert_FailsOnGarbage(t *testing.T) {
	checkFFmpeg(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "garbage.mp3")
	require.NoError(t, os.WriteFile(src, []byte("not audio"), 0600))

	s := NewStandardizer("", 16000, 7.0)
	err := s.Convert(context.Background(), src, filepath.Join(dir, "out.wav"))
	require.Error(t, err)

	var ffErr *FFmpegError
	assert.ErrorAs(t, err, &ffErr)
}

func TestParseDuration(t *testing.T) {
	out := "Input #0, wav, from 'x.wav':\n  Duration: 00:01:07.50, bitrate: 256 kb/s"
	d, err := parseDuration(out)
	require.NoError(t, err)
	assert.InDelta(t, 67.5, d, 1e-9)

	_, err = parseDuration("no duration here")
	assert.Error(t, err)
}
