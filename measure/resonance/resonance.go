package resonance

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-modal/dsp/window"
)

var (
	// ErrEmptySignal is returned when there is nothing to analyze.
	ErrEmptySignal = errors.New("resonance: empty signal")

	// ErrNoDecay is returned when the envelope does not fall.
	ErrNoDecay = errors.New("resonance: envelope does not decay")
)

// zeroPadFactor oversamples the spectrum before peak interpolation.
const zeroPadFactor = 4

// Peak is the strongest spectral component of a signal.
type Peak struct {
	Frequency float64 // Hz, interpolated between bins
	Magnitude float64 // linear magnitude of the peak bin
	Bin       int
	FFTSize   int
}

// PeakFrequency returns the strongest non-DC component of signal.
func PeakFrequency(signal []float64, sampleRate float64) (Peak, error) {
	if len(signal) == 0 {
		return Peak{}, ErrEmptySignal
	}
	if err := validateSampleRate(sampleRate); err != nil {
		return Peak{}, err
	}

	mag, fftSize, err := magnitudeSpectrum(signal)
	if err != nil {
		return Peak{}, err
	}

	best := 1
	for k := 2; k < len(mag); k++ {
		if mag[k] > mag[best] {
			best = k
		}
	}
	if mag[best] == 0 {
		return Peak{}, fmt.Errorf("%w: no spectral energy", ErrEmptySignal)
	}

	offset := 0.0
	if best > 0 && best < len(mag)-1 {
		offset = parabolicOffset(mag[best-1], mag[best], mag[best+1])
	}

	return Peak{
		Frequency: (float64(best) + offset) * sampleRate / float64(fftSize),
		Magnitude: mag[best],
		Bin:       best,
		FFTSize:   fftSize,
	}, nil
}

// magnitudeSpectrum returns |X[k]| for k in [0, N/2] of the Hann-windowed,
// zero-padded signal.
func magnitudeSpectrum(signal []float64) ([]float64, int, error) {
	fftSize := zeroPadFactor * nextPowerOfTwo(len(signal))

	windowed := append([]float64(nil), signal...)
	window.ApplyHann(windowed)

	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, 0, fmt.Errorf("resonance: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, 0, fmt.Errorf("resonance: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k], im[k] = real(out[k]), imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	return mag, fftSize, nil
}

// parabolicOffset returns the vertex offset in bins of the parabola through
// three log-magnitude points centered on a local maximum.
func parabolicOffset(left, center, right float64) float64 {
	if left <= 0 || center <= 0 || right <= 0 {
		return 0
	}

	a, b, c := math.Log(left), math.Log(center), math.Log(right)
	den := a - 2*b + c
	if den == 0 {
		return 0
	}
	return 0.5 * (a - c) / den
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func validateSampleRate(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("resonance: sample rate must be positive and finite: %f", sampleRate)
	}
	return nil
}
