// Package synth provides parametric waveform generators for household
// ambience and discrete acoustic events. Generators are deterministic
// given a random source: the same *rand.Rand state and parameters
// reproduce bit-identical buffers. All buffers are mono float64 samples
// at the caller's sample rate and are unnormalized unless stated.
package synth

import (
	"math"
	"math/rand"
)

// Kind identifies one of the closed set of generators. The set is fixed
// by design; there is no plugin mechanism.
type Kind string

const (
	KindBackground Kind = "background"
	KindBeep       Kind = "beep"
	KindClick      Kind = "click"
	KindChime      Kind = "chime"
	KindWhoosh     Kind = "whoosh"
	KindKnock      Kind = "knock"
)

// ClickDuration is the fixed length of a click transient in seconds.
// Clicks model sharp taps; their duration is not a free parameter.
const ClickDuration = 0.03

// eventKinds is the draw order for event-type selection. The order is
// part of the reproducibility contract and must not change.
var eventKinds = []Kind{KindBeep, KindClick, KindChime, KindWhoosh, KindKnock}

// EventKinds returns the insertable event kinds in their fixed draw order.
func EventKinds() []Kind {
	out := make([]Kind, len(eventKinds))
	copy(out, eventKinds)
	return out
}

// NumSamples returns the buffer length for a duration at a sample rate.
func NumSamples(sampleRate int, durationSec float64) int {
	return int(math.Round(durationSec * float64(sampleRate)))
}

// Background generates household ambience: a low-frequency hum with slow
// amplitude modulation plus broadband noise. The hum center frequency is
// drawn from 60-140 Hz and the modulation rate from 0.1-0.4 Hz.
func Background(rng *rand.Rand, sampleRate int, durationSec float64) []float64 {
	humFreq := 60 + 80*rng.Float64()
	modFreq := 0.1 + 0.3*rng.Float64()

	n := NumSamples(sampleRate, durationSec)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		hum := 0.2 * math.Sin(2*math.Pi*humFreq*t)
		mod := 0.6 + 0.4*math.Sin(2*math.Pi*modFreq*t)
		out[i] = hum*mod + 0.03*rng.NormFloat64()
	}
	return out
}

// Beep generates a sinusoid at freq with a 10 ms linear attack and an
// exponential decay scaled to the requested duration.
func Beep(sampleRate int, durationSec, freq float64) []float64 {
	n := NumSamples(sampleRate, durationSec)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		env := math.Min(1, t/0.01) * math.Exp(-4*t/durationSec)
		out[i] = 0.5 * math.Sin(2*math.Pi*freq*t) * env
	}
	return out
}

// Click generates a fixed-length impulse with a decaying noise tail.
func Click(rng *rand.Rand, sampleRate int) []float64 {
	n := NumSamples(sampleRate, ClickDuration)
	out := make([]float64, n)
	for i := range out {
		x := 0.2 * rng.NormFloat64()
		if i == 0 {
			x++
		}
		decay := math.Exp(-8 * float64(i) / float64(n-1))
		out[i] = x * decay * 0.3
	}
	return out
}

// chimeFreqs is a C-major-triad partial set (C5, E5, G5).
var chimeFreqs = [3]float64{523.25, 659.25, 783.99}

// Chime generates three harmonically related sinusoids, each with an
// independent exponential decay.
func Chime(sampleRate int, durationSec float64) []float64 {
	n := NumSamples(sampleRate, durationSec)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		var s float64
		for _, f := range chimeFreqs {
			s += math.Sin(2*math.Pi*f*t) * math.Exp(-3*t/durationSec)
		}
		out[i] = s
	}
	return out
}

// Whoosh generates differenced white noise (a crude high-pass) shaped by
// a half-sine fade-in/fade-out spanning the full duration.
func Whoosh(rng *rand.Rand, sampleRate int, durationSec float64) []float64 {
	n := NumSamples(sampleRate, durationSec)
	noise := make([]float64, n)
	for i := range noise {
		noise[i] = rng.NormFloat64()
	}
	out := make([]float64, n)
	for i := range out {
		var hp float64
		if i > 0 {
			hp = noise[i] - noise[i-1]
		}
		t := float64(i) / float64(sampleRate)
		env := math.Sin(math.Pi * t / durationSec)
		out[i] = hp * env * 0.4
	}
	return out
}

// Knock generates a low-frequency sinusoid with a fast exponential decay,
// modeling an impact transient.
func Knock(sampleRate int, durationSec, freq float64) []float64 {
	n := NumSamples(sampleRate, durationSec)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		env := math.Exp(-10 * t / durationSec)
		out[i] = 0.6 * math.Sin(2*math.Pi*freq*t) * env
	}
	return out
}
