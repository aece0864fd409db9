package modal

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-modal/dsp/buffer"
	"github.com/cwbudde/algo-modal/dsp/vecops"
)

// nyquistRatio is the fraction of the sample rate above which modes are
// silenced instead of aliasing.
const nyquistRatio = 0.495

var log1000 = math.Log(1000)

// Modulator is called before every group renders a sample. It may retune
// the group, typically with SetFreq. It runs once per group per sample.
type Modulator[T vecops.Float] func(g *Group[T], groupIndex, sampleIndex int)

// Bank renders a fixed capacity of modes, packed into groups of LaneWidth
// modes, into a mono render buffer.
//
// Groups are allocated once by NewBank. Only the first
// ceil(NumModesToProcess/LaneWidth) groups render; the rest are held at
// zero state so that raising the active count never replays old energy.
type Bank[T vecops.Float] struct {
	kernels *vecops.Kernels[T]
	width   int

	groups       []Group[T]
	activeGroups int
	numModes     int

	ampRe, ampIm []T
	ampNorm      T

	// Per-lane scratch for bulk updates, one slot per group lane.
	lanesA, lanesB []T

	maxFreq T
	render  *buffer.Buffer[T]
}

// NewBank returns a bank holding maxModes modes. The lane width is taken
// from the tier caps selects at construction. All modes start active with
// zero amplitude, so the bank is silent until amplitudes are set. The bank
// is prepared for 48 kHz with a 512-sample block.
func NewBank[T vecops.Float](maxModes int, caps *vecops.Capabilities) *Bank[T] {
	return NewBankForArch[T](maxModes, caps, caps.Arch())
}

// NewBankForArch is NewBank with the group lane width taken from arch
// instead of the current selection. Kernels still follow caps, so a bank
// built for a tier that is deselected later keeps producing equivalent
// output.
func NewBankForArch[T vecops.Float](maxModes int, caps *vecops.Capabilities, arch vecops.Arch) *Bank[T] {
	if maxModes < 1 {
		panic("modal: bank capacity must be positive")
	}

	width := vecops.LaneWidth[T](arch)
	numGroups := (maxModes + width - 1) / width
	lanes := numGroups * width

	b := &Bank[T]{
		kernels: vecops.New[T](caps),
		width:   width,
		groups:  make([]Group[T], numGroups),
		ampRe:   make([]T, maxModes),
		ampIm:   make([]T, maxModes),
		ampNorm: 1,
		lanesA:  vecops.MakeAligned[T](lanes, vecops.MaxAlignment),
		lanesB:  vecops.MakeAligned[T](lanes, vecops.MaxAlignment),
		render:  buffer.New[T](1, 512),
	}
	for i := range b.groups {
		b.groups[i] = newGroup[T](width)
	}

	b.numModes = maxModes
	b.activeGroups = numGroups
	b.maxFreq = T(nyquistRatio * defaultSampleRate)
	return b
}

// Prepare sets the sample rate and the largest block Process accepts.
// It reallocates the render buffer, so it must not run concurrently with
// Process.
func (b *Bank[T]) Prepare(sampleRate float64, maxBlockSize int) {
	b.maxFreq = T(nyquistRatio * sampleRate)
	b.render.SetMaxSize(1, maxBlockSize)

	for i := range b.groups {
		b.groups[i].Prepare(T(sampleRate))
	}
}

// Reset zeroes the state of every group.
func (b *Bank[T]) Reset() {
	for i := range b.groups {
		b.groups[i].Reset()
	}
}

// SetModeAmplitudes stores per-mode complex amplitudes from separate real
// and imaginary parts. Modes past the end of either slice get zero.
//
// When normalize > 0 and the first mode has non-zero magnitude, every
// amplitude is scaled by normalize/|amp[0]|, which keeps the output level
// comparable across mode tables.
func (b *Bank[T]) SetModeAmplitudes(re, im []T, normalize T) {
	clear(b.ampRe)
	clear(b.ampIm)
	copy(b.ampRe, re)
	copy(b.ampIm, im)

	b.updateNormalization(normalize)
	b.applyAmplitudes()
}

// SetModeAmplitudesComplex is SetModeAmplitudes for complex amplitudes.
func (b *Bank[T]) SetModeAmplitudesComplex(amps []complex128, normalize T) {
	clear(b.ampRe)
	clear(b.ampIm)
	for i, a := range amps[:min(len(amps), len(b.ampRe))] {
		b.ampRe[i], b.ampIm[i] = T(real(a)), T(imag(a))
	}

	b.updateNormalization(normalize)
	b.applyAmplitudes()
}

func (b *Bank[T]) updateNormalization(normalize T) {
	ref := T(cmplx.Abs(complex(float64(b.ampRe[0]), float64(b.ampIm[0]))))
	if normalize > 0 && ref > 0 {
		b.ampNorm = normalize / ref
	} else {
		b.ampNorm = 1
	}
}

// applyAmplitudes loads the normalized amplitudes into the groups, masking
// modes past the active count to zero.
func (b *Bank[T]) applyAmplitudes() {
	k := b.kernels
	n := b.numModes

	k.MultiplyScalar(b.lanesA[:n], b.ampRe, b.ampNorm)
	k.MultiplyScalar(b.lanesB[:n], b.ampIm, b.ampNorm)
	k.Fill(b.lanesA[n:], 0)
	k.Fill(b.lanesB[n:], 0)

	for g := range b.groups {
		lo, hi := g*b.width, (g+1)*b.width
		b.groups[g].SetAmp(vecops.Complex[T]{
			Re: vecops.LoadVec(b.lanesA[lo:hi]),
			Im: vecops.LoadVec(b.lanesB[lo:hi]),
		})
	}
}

// SetModeFrequencies sets freq[i] = base[i]·multiplier. Results above
// MaxFrequency are set to zero, silencing the mode rather than letting it
// alias. Modes past the end of base get zero.
func (b *Bank[T]) SetModeFrequencies(base []T, multiplier T) {
	n := min(len(base), len(b.ampRe))
	freqs := b.lanesA

	b.kernels.MultiplyScalar(freqs[:n], base, multiplier)
	b.kernels.Fill(freqs[n:], 0)
	for i, f := range freqs[:n] {
		if f > b.maxFreq {
			freqs[i] = 0
		}
	}

	for g := range b.groups {
		b.groups[g].SetFreq(vecops.LoadVec(freqs[g*b.width : (g+1)*b.width]))
	}
}

// SetModeDecays converts decay time constants measured at
// originalSampleRate into T60 times scaled by decayFactor:
//
//	t60 = decayFactor / (ln(exp(originalSampleRate/tau)) / ln(1000))
//
// The exp is evaluated in T before the log is taken, so constants too short
// for T overflow to a zero T60 instead of being simplified away. Modes past
// the end of baseTaus use tau = 1.
func (b *Bank[T]) SetModeDecays(baseTaus []T, originalSampleRate, decayFactor T) {
	k := b.kernels
	n := min(len(baseTaus), len(b.ampRe))
	taus, t60s := b.lanesA, b.lanesB

	k.Copy(taus[:n], baseTaus)
	k.Fill(taus[n:], 1)

	k.DivideScalar(t60s, originalSampleRate, taus)
	for i, x := range t60s {
		grown := T(math.Exp(float64(x)))
		t60s[i] = T(math.Log(float64(grown))) / T(log1000)
	}
	k.DivideScalar(t60s, decayFactor, t60s)

	b.setDecays(t60s)
}

// SetModeT60s sets the T60 decay time of every mode directly, in seconds.
// Modes past the end of t60s get zero.
func (b *Bank[T]) SetModeT60s(t60s []T) {
	n := min(len(t60s), len(b.ampRe))
	lanes := b.lanesA

	b.kernels.Copy(lanes[:n], t60s)
	b.kernels.Fill(lanes[n:], 0)
	b.setDecays(lanes)
}

func (b *Bank[T]) setDecays(t60s []T) {
	for g := range b.groups {
		b.groups[g].SetDecay(vecops.LoadVec(t60s[g*b.width : (g+1)*b.width]))
	}
}

// SetNumModesToProcess sets how many modes render. Amplitudes of modes past
// count are masked to zero and every group past the last active one is
// reset. A count above NumModes panics.
func (b *Bank[T]) SetNumModesToProcess(count int) {
	if count < 0 || count > len(b.ampRe) {
		panic("modal: active mode count exceeds capacity")
	}

	b.numModes = count
	b.activeGroups = (count + b.width - 1) / b.width
	b.applyAmplitudes()

	for g := b.activeGroups; g < len(b.groups); g++ {
		b.groups[g].Reset()
	}
}

// Process renders the active modes driven by input and returns the mono
// render buffer. len(input) must not exceed the prepared block size.
func (b *Bank[T]) Process(input []T) []T {
	out := b.startBlock(len(input))

	for g := range b.activeGroups {
		grp := &b.groups[g]
		for i, x := range input {
			out[i] += grp.ProcessSample(x).ReduceAdd()
		}
	}

	return out
}

// ProcessWithModulation is Process with mod called before each group
// renders each sample.
func (b *Bank[T]) ProcessWithModulation(input []T, mod Modulator[T]) []T {
	out := b.startBlock(len(input))

	for g := range b.activeGroups {
		grp := &b.groups[g]
		for i, x := range input {
			mod(grp, g, i)
			out[i] += grp.ProcessSample(x).ReduceAdd()
		}
	}

	return out
}

func (b *Bank[T]) startBlock(n int) []T {
	b.render.SetCurrentSize(1, n)
	b.render.Clear()
	return b.render.WritePointer(0)
}

// RenderBuffer returns the mono buffer the last block rendered into.
func (b *Bank[T]) RenderBuffer() *buffer.Buffer[T] { return b.render }

// RenderRMS returns the RMS level of the last rendered block, or 0 before
// any block.
func (b *Bank[T]) RenderRMS() T {
	if b.render.NumSamples() == 0 {
		return 0
	}
	return b.kernels.ComputeRMS(b.render.ReadPointer(0))
}

// RenderPeak returns the peak absolute sample of the last rendered block.
func (b *Bank[T]) RenderPeak() T {
	return b.kernels.FindAbsoluteMaximum(b.render.ReadPointer(0))
}

// NumModes returns the mode capacity.
func (b *Bank[T]) NumModes() int { return len(b.ampRe) }

// NumModesToProcess returns the active mode count.
func (b *Bank[T]) NumModesToProcess() int { return b.numModes }

// LaneWidth returns the number of modes per group.
func (b *Bank[T]) LaneWidth() int { return b.width }

// NumGroups returns the number of allocated groups.
func (b *Bank[T]) NumGroups() int { return len(b.groups) }

// NumActiveGroups returns the number of groups that render.
func (b *Bank[T]) NumActiveGroups() int { return b.activeGroups }

// Group returns group i for inspection or direct modulation.
func (b *Bank[T]) Group(i int) *Group[T] { return &b.groups[i] }

// MaxFrequency returns the highest frequency a mode may keep.
func (b *Bank[T]) MaxFrequency() T { return b.maxFreq }

// Kernels returns the kernel engine the bank's bulk updates run on.
func (b *Bank[T]) Kernels() *vecops.Kernels[T] { return b.kernels }
