package modal

import (
	"math"

	"github.com/cwbudde/algo-modal/dsp/vecops"
)

const defaultSampleRate = 48000

// Filter is a single damped complex resonator.
type Filter[T vecops.Float] struct {
	fs   T
	freq T
	t60  T

	decay        T
	oscRe, oscIm T

	ampRe, ampIm   T
	coefRe, coefIm T
	y1Re, y1Im     T
}

// NewFilter returns a resonator at freq Hz with the given T60 decay time in
// seconds and unit real amplitude, prepared for 48 kHz.
func NewFilter[T vecops.Float](freq, t60 T) *Filter[T] {
	f := &Filter[T]{freq: freq, t60: t60, ampRe: 1}
	f.Prepare(defaultSampleRate)
	return f
}

// Prepare recomputes the pole for sampleRate and clears the state.
func (f *Filter[T]) Prepare(sampleRate T) {
	f.fs = sampleRate
	f.decay = decayFactor(f.t60, f.fs)
	f.oscRe, f.oscIm = oscCoef(f.freq, f.fs)
	f.update()
	f.Reset()
}

// SetFreq sets the resonant frequency in Hz.
func (f *Filter[T]) SetFreq(freq T) {
	f.freq = freq
	f.oscRe, f.oscIm = oscCoef(f.freq, f.fs)
	f.update()
}

// SetDecay sets the time in seconds for the envelope to fall by 60 dB.
func (f *Filter[T]) SetDecay(t60 T) {
	f.t60 = t60
	f.decay = decayFactor(f.t60, f.fs)
	f.update()
}

// SetAmp sets the complex amplitude.
func (f *Filter[T]) SetAmp(re, im T) {
	f.ampRe, f.ampIm = re, im
}

// SetAmpPolar sets the amplitude from magnitude and phase in radians.
func (f *Filter[T]) SetAmpPolar(mag, phase T) {
	s, c := math.Sincos(float64(phase))
	f.ampRe, f.ampIm = mag*T(c), mag*T(s)
}

// Freq returns the resonant frequency in Hz.
func (f *Filter[T]) Freq() T { return f.freq }

// Reset clears the resonator state.
func (f *Filter[T]) Reset() {
	f.y1Re, f.y1Im = 0, 0
}

// ProcessSample advances the resonator by one input sample.
func (f *Filter[T]) ProcessSample(x T) T {
	re := f.ampRe*x + f.coefRe*f.y1Re - f.coefIm*f.y1Im
	im := f.ampIm*x + f.coefRe*f.y1Im + f.coefIm*f.y1Re
	f.y1Re, f.y1Im = re, im
	return im
}

// ProcessBlock filters buf in place.
func (f *Filter[T]) ProcessBlock(buf []T) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

func (f *Filter[T]) update() {
	f.coefRe = f.decay * f.oscRe
	f.coefIm = f.decay * f.oscIm
}

// decayFactor is the per-sample pole radius giving a 60 dB fall after t60
// seconds.
func decayFactor[T vecops.Float](t60, fs T) T {
	return T(math.Pow(0.001, 1/float64(t60*fs)))
}

// oscCoef is e^{j·2π·freq/fs}.
func oscCoef[T vecops.Float](freq, fs T) (re, im T) {
	s, c := math.Sincos(2 * math.Pi * float64(freq) / float64(fs))
	return T(c), T(s)
}
