package modal

import (
	"math"

	"github.com/cwbudde/algo-modal/dsp/vecops"
)

// Group advances one resonator per vector lane. Its state is owned by the
// group alone and changes only through ProcessSample and Reset.
type Group[T vecops.Float] struct {
	fs   T
	freq vecops.Vec[T]
	t60  vecops.Vec[T]

	decay vecops.Vec[T]
	osc   vecops.Complex[T]

	amp  vecops.Complex[T]
	coef vecops.Complex[T]
	y1   vecops.Complex[T]
}

func newGroup[T vecops.Float](width int) Group[T] {
	g := Group[T]{
		freq: vecops.ZeroVec[T](width),
		t60:  vecops.Splat[T](1, width),
		amp:  vecops.ZeroComplex[T](width),
	}
	g.Prepare(defaultSampleRate)
	return g
}

// LaneWidth returns the number of modes in the group.
func (g *Group[T]) LaneWidth() int { return g.freq.Width() }

// Prepare recomputes the poles for sampleRate and clears the state.
func (g *Group[T]) Prepare(sampleRate T) {
	g.fs = sampleRate
	g.decay = g.t60.Map(func(t60 T) T { return decayFactor(t60, g.fs) })
	g.osc = g.oscFor(g.freq)
	g.update()
	g.Reset()
}

// SetFreq sets the per-lane frequencies in Hz.
func (g *Group[T]) SetFreq(freq vecops.Vec[T]) {
	g.freq = freq
	g.osc = g.oscFor(freq)
	g.update()
}

// SetDecay sets the per-lane T60 decay times in seconds.
func (g *Group[T]) SetDecay(t60 vecops.Vec[T]) {
	fs := g.fs
	g.t60 = t60
	g.decay = t60.Map(func(t T) T { return decayFactor(t, fs) })
	g.update()
}

// SetAmp sets the per-lane complex amplitudes.
func (g *Group[T]) SetAmp(amp vecops.Complex[T]) {
	g.amp = amp
}

// Freq returns the per-lane frequencies.
func (g *Group[T]) Freq() vecops.Vec[T] { return g.freq }

// Amp returns the per-lane complex amplitudes.
func (g *Group[T]) Amp() vecops.Complex[T] { return g.amp }

// Reset zeroes the oscillator state.
func (g *Group[T]) Reset() {
	g.y1 = vecops.ZeroComplex[T](g.LaneWidth())
}

// ProcessSample advances every lane by one input sample and returns the
// per-lane outputs.
func (g *Group[T]) ProcessSample(x T) vecops.Vec[T] {
	y := g.amp.ScaleScalar(x).Add(g.coef.Mul(g.y1))
	g.y1 = y
	return y.Im
}

func (g *Group[T]) oscFor(freq vecops.Vec[T]) vecops.Complex[T] {
	return vecops.PolarUnit(freq.Scale(T(2 * math.Pi / float64(g.fs))))
}

func (g *Group[T]) update() {
	g.coef = g.osc.Scale(g.decay)
}
