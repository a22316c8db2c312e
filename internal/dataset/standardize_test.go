package dataset

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crysense/soundforge/internal/transcode"
	"github.com/crysense/soundforge/internal/wavio"
)

func checkFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH, skipping test")
	}
}

func createTone(t *testing.T, path string) {
	t.Helper()
	cmd := exec.Command("ffmpeg", "-y",
		"-f", "lavfi", "-i", "sine=frequency=440:duration=1",
		"-ar", "16000", "-ac", "1",
		path,
	)
	out, _ := cmd.CombinedOutput()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("failed to create tone: %s", string(out))
	}
}

func TestStandardizeService_MissingInputIsFatal(t *testing.T) {
	checkFFmpeg(t)

	trans := transcode.NewStandardizer("", 16000, 7.0)
	svc := NewStandardizeService(trans, newTestLogger(), t.TempDir(), "clip")

	_, err := svc.Run(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrNoInputFiles)
}

func TestStandardizeService_MissingFFmpegIsFatal(t *testing.T) {
	trans := transcode.NewStandardizer("/no/such/ffmpeg-binary", 16000, 7.0)
	svc := NewStandardizeService(trans, newTestLogger(), t.TempDir(), "clip")

	_, err := svc.Run(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, transcode.ErrFFmpegNotFound)
}

func TestStandardizeService_Run(t *testing.T) {
	checkFFmpeg(t)

	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	createTone(t, filepath.Join(inDir, "first.wav"))
	require.NoError(t, os.MkdirAll(filepath.Join(inDir, "nested"), 0750))
	createTone(t, filepath.Join(inDir, "nested", "second.wav"))

	trans := transcode.NewStandardizer("", 16000, 7.0)
	svc := NewStandardizeService(trans, newTestLogger(), outDir, "cry")

	report, err := svc.Run(context.Background(), inDir)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Completed())
	assert.Zero(t, report.Failed())

	for i := 0; i < 2; i++ {
		path := filepath.Join(outDir, "cry_0000"+string(rune('0'+i))+".wav")
		samples, sr, err := wavio.DecodeFile(path)
		require.NoError(t, err)
		assert.Equal(t, 16000, sr)
		assert.Equal(t, 112000, len(samples), "padded to exactly 7 s")
	}
}

func TestStandardizeService_SkipsExistingUnlessOverwrite(t *testing.T) {
	checkFFmpeg(t)

	inDir := t.TempDir()
	outDir := t.TempDir()
	createTone(t, filepath.Join(inDir, "tone.wav"))

	trans := transcode.NewStandardizer("", 16000, 7.0)
	svc := NewStandardizeService(trans, newTestLogger(), outDir, "cry")

	report, err := svc.Run(context.Background(), inDir)
	require.NoError(t, err)
	require.Equal(t, 1, report.Completed())

	// Second run skips
	report, err = svc.Run(context.Background(), inDir)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped())
	assert.Zero(t, report.Completed())

	// With overwrite it converts again
	svc = NewStandardizeService(trans, newTestLogger(), outDir, "cry", WithOverwrite(true))
	report, err = svc.Run(context.Background(), inDir)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Completed())
}

func TestStandardizeService_ContinuesPastBadFile(t *testing.T) {
	checkFFmpeg(t)

	inDir := t.TempDir()
	outDir := t.TempDir()
	// Sorted discovery: the corrupt file comes first.
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "a_corrupt.mp3"), []byte("junk"), 0600))
	createTone(t, filepath.Join(inDir, "b_good.wav"))

	trans := transcode.NewStandardizer("", 16000, 7.0)
	svc := NewStandardizeService(trans, newTestLogger(), outDir, "cry")

	report, err := svc.Run(context.Background(), inDir)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 1, report.Completed())
}
