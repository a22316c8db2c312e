// Package mix composes event waveforms into background buffers at
// controlled signal-to-noise ratios and normalizes the result.
package mix

import "math"

// powerEps is the mean-square power below which a segment is treated as
// silent. Gain computation falls back to identity instead of dividing by
// a near-zero power.
const powerEps = 1e-10

// meanSquare returns the mean of x squared, the power of the segment.
func meanSquare(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum / float64(len(x))
}

// Gain returns the linear factor that scales event so its power relative
// to the background segment it overlaps equals snrDB. If either segment
// is effectively silent the gain is 1.
func Gain(background, event []float64, snrDB float64) float64 {
	bgPow := meanSquare(background)
	evPow := meanSquare(event)
	if bgPow < powerEps || evPow < powerEps {
		return 1
	}
	return math.Sqrt(bgPow/evPow) * math.Pow(10, snrDB/20)
}

// Normalize rescales x in place so its peak absolute amplitude equals
// target. A buffer whose peak is below powerEps is left unscaled.
func Normalize(x []float64, target float64) {
	var peak float64
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak < powerEps {
		return
	}
	scale := target / peak
	for i := range x {
		x[i] *= scale
	}
}
