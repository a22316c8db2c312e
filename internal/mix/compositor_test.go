package mix

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crysense/soundforge/internal/synth"
)

func TestOverlay_OnlyWindowModified(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	mixture := synth.Background(rng, 16000, 2.0)
	before := make([]float64, len(mixture))
	copy(before, mixture)

	event := synth.Beep(16000, 0.5, 800)
	start := 8000
	n := Overlay(mixture, event, start, 10)
	require.Equal(t, len(event), n)

	assert.Equal(t, before[:start], mixture[:start])
	assert.Equal(t, before[start+len(event):], mixture[start+len(event):])
	assert.NotEqual(t, before[start:start+len(event)], mixture[start:start+len(event)])
	assert.Len(t, mixture, len(before))
}

func TestOverlay_AchievesTargetSNR(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	const snrDB = 12.0

	mixture := synth.Background(rng, 16000, 3.0)
	window := make([]float64, 16000)
	start := 16000
	copy(window, mixture[start:start+16000])

	event := synth.Beep(16000, 1.0, 700)
	require.Equal(t, len(event), Overlay(mixture, event, start, snrDB))

	// Isolate the event contribution and compare its power against the
	// background power in the same window.
	contribution := make([]float64, len(window))
	for i := range contribution {
		contribution[i] = mixture[start+i] - window[i]
	}
	gotDB := 10 * math.Log10(meanSquare(contribution)/meanSquare(window))
	assert.InDelta(t, snrDB, gotDB, 0.5)
}

func TestOverlay_BoundaryGuards(t *testing.T) {
	mixture := make([]float64, 100)
	event := []float64{1, 1, 1}

	assert.Zero(t, Overlay(mixture, event, -1, 10))
	assert.Zero(t, Overlay(mixture, event, 100, 10))
	assert.Zero(t, Overlay(mixture, event, 500, 10))

	// Tail clamp: only the overlapping samples change.
	n := Overlay(mixture, event, 98, 10)
	assert.Equal(t, 2, n)
	assert.NotZero(t, mixture[98])
	assert.NotZero(t, mixture[99])
	for _, v := range mixture[:98] {
		assert.Zero(t, v)
	}
}

func TestOverlay_SilentBackgroundIdentityGain(t *testing.T) {
	mixture := make([]float64, 1000)
	event := synth.Knock(16000, 0.05, 100)
	n := Overlay(mixture, event, 0, 15)
	require.Equal(t, len(event), n)
	// Identity gain: the event lands unscaled.
	for i, v := range event {
		assert.Equal(t, v, mixture[i])
	}
}
