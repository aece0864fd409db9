package resonance

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Decay describes an exponential envelope e^{-n/TauSamples}.
type Decay struct {
	TauSamples float64
	TauSeconds float64
	T60        float64 // seconds to fall by 60 dB
	Frames     int     // frames used in the fit
}

// DecayTime fits the envelope of signal in frames of frameLen samples.
// Frames are used up to the first silent one; at least two are required.
func DecayTime(signal []float64, sampleRate float64, frameLen int) (Decay, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return Decay{}, err
	}
	if frameLen < 1 {
		return Decay{}, fmt.Errorf("resonance: frame length must be positive: %d", frameLen)
	}

	numFrames := len(signal) / frameLen
	if numFrames < 2 {
		return Decay{}, fmt.Errorf("%w: need two frames of %d samples, have %d samples",
			ErrEmptySignal, frameLen, len(signal))
	}

	// Least-squares line through (frame center, ln RMS).
	var sx, sy, sxx, sxy float64
	used := 0
	for f := range numFrames {
		frame := signal[f*frameLen : (f+1)*frameLen]
		energy := vecmath.DotProduct(frame, frame)
		if energy <= 0 {
			break
		}

		x := float64(f*frameLen) + float64(frameLen-1)/2
		y := 0.5 * math.Log(energy/float64(frameLen))
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
		used++
	}

	if used < 2 {
		return Decay{}, fmt.Errorf("%w: fewer than two frames carry energy", ErrEmptySignal)
	}

	n := float64(used)
	slope := (n*sxy - sx*sy) / (n*sxx - sx*sx)
	if !(slope < 0) {
		return Decay{}, ErrNoDecay
	}

	tau := -1 / slope
	return Decay{
		TauSamples: tau,
		TauSeconds: tau / sampleRate,
		T60:        tau * math.Log(1000) / sampleRate,
		Frames:     used,
	}, nil
}
