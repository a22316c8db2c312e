package mix

import (
	"math/rand"

	"github.com/crysense/soundforge/internal/synth"
)

// Placement records one event that was actually inserted into a mixture.
type Placement struct {
	Kind        synth.Kind `json:"kind"`
	OnsetSec    float64    `json:"onset_sec"`
	DurationSec float64    `json:"duration_sec"`
	SNRDB       float64    `json:"snr_db"`
}

// Params configures mixture composition.
type Params struct {
	SampleRate  int
	DurationSec float64
	MinEvents   int
	MaxEvents   int
	SNRMinDB    float64
	SNRMaxDB    float64
	// PeakTarget is the normalization peak for the final buffer.
	PeakTarget float64
}

// DefaultParams returns the standard 7 s / 16 kHz mixture parameters.
func DefaultParams() Params {
	return Params{
		SampleRate:  16000,
		DurationSec: 7.0,
		MinEvents:   1,
		MaxEvents:   4,
		SNRMinDB:    5,
		SNRMaxDB:    20,
		PeakTarget:  0.9,
	}
}

// Result is one composed mixture: the normalized samples and the events
// that made it in. Events that could not fit are simply absent.
type Result struct {
	Samples    []float64
	Placements []Placement
}

// Composer builds complete mixtures: background, a random number of
// events overlaid at drawn SNRs and onsets, then peak normalization.
//
// All randomness flows through the *rand.Rand handed to Mixture. The
// draw order per mixture is fixed: background, event count, then per
// event kind, parameters, waveform noise, SNR, onset. Changing this
// order breaks seed reproducibility.
type Composer struct {
	params Params
}

// NewComposer creates a Composer. Zero rate, duration, or peak target
// fall back to DefaultParams; event and SNR bounds are taken as given,
// since zero events is a valid configuration.
func NewComposer(p Params) *Composer {
	def := DefaultParams()
	if p.SampleRate <= 0 {
		p.SampleRate = def.SampleRate
	}
	if p.DurationSec <= 0 {
		p.DurationSec = def.DurationSec
	}
	if p.PeakTarget <= 0 {
		p.PeakTarget = def.PeakTarget
	}
	return &Composer{params: p}
}

// Params returns the effective composition parameters.
func (c *Composer) Params() Params {
	return c.params
}

// Mixture composes one mixture using draws from rng.
func (c *Composer) Mixture(rng *rand.Rand) Result {
	p := c.params
	buf := synth.Background(rng, p.SampleRate, p.DurationSec)

	span := p.MaxEvents - p.MinEvents
	if span < 0 {
		span = 0
	}
	// One draw is always consumed, even for a fixed count, so the
	// stream position does not depend on the configured bounds.
	count := p.MinEvents + rng.Intn(span+1)

	kinds := synth.EventKinds()
	var placements []Placement
	for i := 0; i < count; i++ {
		kind := kinds[rng.Intn(len(kinds))]
		spec := synth.DrawSpec(rng, kind)
		event := spec.Render(rng, p.SampleRate)

		evDur := float64(len(event)) / float64(p.SampleRate)
		maxOnset := p.DurationSec - evDur
		if maxOnset <= 0 {
			// Event cannot fit entirely: skip it rather than
			// truncate, keeping its shape intact.
			continue
		}

		snr := p.SNRMinDB + (p.SNRMaxDB-p.SNRMinDB)*rng.Float64()
		onset := maxOnset * rng.Float64()
		start := int(onset * float64(p.SampleRate))
		if Overlay(buf, event, start, snr) == 0 {
			continue
		}
		placements = append(placements, Placement{
			Kind:        kind,
			OnsetSec:    onset,
			DurationSec: evDur,
			SNRDB:       snr,
		})
	}

	Normalize(buf, p.PeakTarget)
	return Result{Samples: buf, Placements: placements}
}
