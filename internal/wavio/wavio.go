// Package wavio converts float64 sample buffers to and from mono 16-bit
// PCM WAV data using the go-audio encoder/decoder.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrNotMono is returned when a decoded file has more than one channel.
var ErrNotMono = errors.New("wavio: expected mono audio")

const (
	bitDepth = 16
	pcmScale = 32767
)

// Encode writes samples as a mono 16-bit PCM WAV stream. Samples are
// clamped to [-1, 1] before quantization.
func Encode(w io.WriteSeeker, samples []float64, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, 1)

	data := make([]int, len(samples))
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		data[i] = int(math.Round(v * pcmScale))
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write PCM data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize WAV: %w", err)
	}
	return nil
}

// Marshal encodes samples into an in-memory WAV file.
func Marshal(samples []float64, sampleRate int) ([]byte, error) {
	var buf seekBuffer
	if err := Encode(&buf, samples, sampleRate); err != nil {
		return nil, err
	}
	return buf.data, nil
}

// DecodeFile reads a mono WAV file back into float64 samples in [-1, 1]
// and reports its sample rate.
func DecodeFile(path string) ([]float64, int, error) {
	f, err := os.Open(path) // #nosec G304 - path is provided by trusted caller
	if err != nil {
		return nil, 0, fmt.Errorf("open WAV file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("read PCM buffer: %w", err)
	}
	if buf.Format.NumChannels != 1 {
		return nil, 0, fmt.Errorf("%w: got %d channels", ErrNotMono, buf.Format.NumChannels)
	}

	scale := float64(pcmScale + 1)
	if buf.SourceBitDepth > 1 {
		scale = float64(int(1) << (buf.SourceBitDepth - 1))
	}
	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / scale
	}
	return samples, buf.Format.SampleRate, nil
}

// seekBuffer is a minimal in-memory io.WriteSeeker for the WAV encoder,
// which seeks back to patch chunk sizes on Close.
type seekBuffer struct {
	data []byte
	pos  int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.data) {
		grown := make([]byte, need)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(b.pos) + offset
	case io.SeekEnd:
		pos = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if pos < 0 {
		return 0, errors.New("negative seek position")
	}
	b.pos = int(pos)
	return pos, nil
}
