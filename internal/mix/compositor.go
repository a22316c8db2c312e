package mix

// Overlay adds event into mixture starting at sample start, scaled so
// the event sits at snrDB relative to the background it overlaps. The
// mixture is modified in place; its length never changes and only the
// overlap window is touched. Returns the number of samples overlaid.
//
// Callers are expected to choose start so the event fits entirely; the
// end-of-buffer clamp here is a guard, not a truncation policy.
func Overlay(mixture, event []float64, start int, snrDB float64) int {
	if start < 0 || start >= len(mixture) {
		return 0
	}
	end := start + len(event)
	if end > len(mixture) {
		end = len(mixture)
	}
	n := end - start
	if n <= 0 {
		return 0
	}

	gain := Gain(mixture[start:end], event[:n], snrDB)
	for i := 0; i < n; i++ {
		mixture[start+i] += event[i] * gain
	}
	return n
}
