package mix

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crysense/soundforge/internal/synth"
)

func TestComposer_SingleEventScenario(t *testing.T) {
	// duration=7.0s, sample_rate=16000, min=max=1, seed=0
	c := NewComposer(Params{
		SampleRate:  16000,
		DurationSec: 7.0,
		MinEvents:   1,
		MaxEvents:   1,
		SNRMinDB:    5,
		SNRMaxDB:    20,
		PeakTarget:  0.9,
	})

	res := c.Mixture(rand.New(rand.NewSource(0)))

	assert.Len(t, res.Samples, 112000)
	assert.Len(t, res.Placements, 1)
	assert.InDelta(t, 0.9, peak(res.Samples), 1e-9)

	p := res.Placements[0]
	assert.GreaterOrEqual(t, p.OnsetSec, 0.0)
	assert.LessOrEqual(t, p.OnsetSec+p.DurationSec, 7.0)
	assert.GreaterOrEqual(t, p.SNRDB, 5.0)
	assert.LessOrEqual(t, p.SNRDB, 20.0)
}

func TestComposer_ZeroEventsIsNormalizedBackground(t *testing.T) {
	c := NewComposer(Params{
		SampleRate:  16000,
		DurationSec: 2.0,
		MinEvents:   0,
		MaxEvents:   0,
		SNRMinDB:    5,
		SNRMaxDB:    20,
		PeakTarget:  0.9,
	})

	res := c.Mixture(rand.New(rand.NewSource(11)))
	require.Empty(t, res.Placements)

	want := synth.Background(rand.New(rand.NewSource(11)), 16000, 2.0)
	Normalize(want, 0.9)
	assert.Equal(t, want, res.Samples)
}

func TestComposer_DeterministicGivenSeed(t *testing.T) {
	c := NewComposer(DefaultParams())

	a := c.Mixture(rand.New(rand.NewSource(42)))
	b := c.Mixture(rand.New(rand.NewSource(42)))

	assert.Equal(t, a.Samples, b.Samples)
	assert.Equal(t, a.Placements, b.Placements)
}

func TestComposer_PeakNeverExceedsTarget(t *testing.T) {
	c := NewComposer(DefaultParams())
	for seed := int64(0); seed < 20; seed++ {
		res := c.Mixture(rand.New(rand.NewSource(seed)))
		assert.LessOrEqual(t, peak(res.Samples), 0.9+1e-9, "seed %d", seed)
	}
}

func TestComposer_PlacementsAlwaysContained(t *testing.T) {
	c := NewComposer(Params{
		SampleRate:  16000,
		DurationSec: 1.0, // Short mixture: many drawn events cannot fit
		MinEvents:   4,
		MaxEvents:   4,
		SNRMinDB:    5,
		SNRMaxDB:    20,
		PeakTarget:  0.9,
	})

	for seed := int64(0); seed < 50; seed++ {
		res := c.Mixture(rand.New(rand.NewSource(seed)))
		assert.Len(t, res.Samples, 16000)
		for _, p := range res.Placements {
			assert.LessOrEqual(t, p.OnsetSec+p.DurationSec, 1.0+1e-9, "seed %d", seed)
		}
	}
}

func TestComposer_EventCountWithinBounds(t *testing.T) {
	c := NewComposer(Params{
		SampleRate:  16000,
		DurationSec: 7.0,
		MinEvents:   2,
		MaxEvents:   5,
		SNRMinDB:    5,
		SNRMaxDB:    20,
		PeakTarget:  0.9,
	})

	for seed := int64(0); seed < 30; seed++ {
		res := c.Mixture(rand.New(rand.NewSource(seed)))
		// Skipped events can shrink the count below the minimum but the
		// upper bound always holds.
		assert.LessOrEqual(t, len(res.Placements), 5, "seed %d", seed)
	}
}

func TestNewComposer_Defaults(t *testing.T) {
	c := NewComposer(Params{})
	p := c.Params()
	assert.Equal(t, 16000, p.SampleRate)
	assert.InDelta(t, 7.0, p.DurationSec, 1e-9)
	assert.InDelta(t, 0.9, p.PeakTarget, 1e-9)
	// Event and SNR bounds are taken as given: zero events is valid.
	assert.Zero(t, p.MinEvents)
	assert.Zero(t, p.MaxEvents)
}

func peak(x []float64) float64 {
	var p float64
	for _, v := range x {
		if a := math.Abs(v); a > p {
			p = a
		}
	}
	return p
}
