package core

import "math"

// Clamp limits value to the inclusive range [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return min(max(value, lo), hi)
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}
	if linear == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(linear)
}

// OctavesToRatio converts a pitch offset in octaves to a frequency ratio.
func OctavesToRatio(octaves float64) float64 {
	return math.Exp2(octaves)
}

// DecayScale maps a normalized decay control in [0, 1] to a multiplier on
// decay times in [1/4, 4], with 0.5 leaving them unchanged.
func DecayScale(decay float64) float64 {
	return math.Pow(4, 2*decay-1)
}
