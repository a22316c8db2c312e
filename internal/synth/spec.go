package synth

import "math/rand"

// Spec is a fully drawn generator invocation: a kind plus its numeric
// parameters. A Spec is immutable once drawn; parameters are sampled
// per event, never reused.
type Spec struct {
	// Kind selects the generator.
	Kind Kind
	// DurationSec is the event length in seconds. For clicks it is
	// always ClickDuration.
	DurationSec float64
	// Freq is the center frequency in Hz for beep and knock. Zero for
	// kinds that do not take a frequency parameter.
	Freq float64
}

// DrawSpec samples the parameters for one event of the given kind.
// Draw order (duration, then frequency where applicable) is part of the
// reproducibility contract.
func DrawSpec(rng *rand.Rand, kind Kind) Spec {
	s := Spec{Kind: kind}
	switch kind {
	case KindClick:
		s.DurationSec = ClickDuration
	case KindBeep:
		s.DurationSec = 0.3 + 2.0*rng.Float64()
		s.Freq = 600 + 1000*rng.Float64()
	case KindKnock:
		s.DurationSec = 0.3 + 2.0*rng.Float64()
		s.Freq = 80 + 120*rng.Float64()
	default:
		s.DurationSec = 0.3 + 2.0*rng.Float64()
	}
	return s
}

// Render synthesizes the waveform described by the spec. Noise-based
// kinds consume draws from rng; deterministic kinds leave it untouched.
func (s Spec) Render(rng *rand.Rand, sampleRate int) []float64 {
	switch s.Kind {
	case KindBackground:
		return Background(rng, sampleRate, s.DurationSec)
	case KindBeep:
		return Beep(sampleRate, s.DurationSec, s.Freq)
	case KindClick:
		return Click(rng, sampleRate)
	case KindChime:
		return Chime(sampleRate, s.DurationSec)
	case KindWhoosh:
		return Whoosh(rng, sampleRate, s.DurationSec)
	case KindKnock:
		return Knock(sampleRate, s.DurationSec, s.Freq)
	}
	return nil
}
