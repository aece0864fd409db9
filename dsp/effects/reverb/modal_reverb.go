package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-modal/dsp/buffer"
	"github.com/cwbudde/algo-modal/dsp/core"
	"github.com/cwbudde/algo-modal/dsp/modal"
	"github.com/cwbudde/algo-modal/dsp/vecops"
)

const (
	defaultModalModes        = 64
	defaultModalPitch        = 0.0
	defaultModalDecay        = 0.5
	defaultModalMix          = 0.5
	defaultModalModRateHz    = 1.0
	defaultModalModDepth     = 0.5
	defaultModalOutputGainDB = -24.0

	maxModalModRateHz = 20.0

	// Amplitudes are normalized so the first mode has this magnitude.
	modalAmpNormalize = 1.0

	// Points of the 2^x table spanning the vibrato exponent range [-1, 1].
	// Odd, so x = 0 lands on a sample and yields exactly 1.
	modalVibratoTablePoints = 513

	// Channel views allocated up front; more channels grow the slice once.
	modalInitialChannels = 2
)

// Scratch channels of the per-block work buffer.
const (
	modalMonoCh = iota
	modalLFOCh
	modalVibratoCh
	modalScratchChannels
)

// ModalReverbOption mutates modal reverb construction parameters.
type ModalReverbOption func(*modalReverbConfig) error

type modalReverbConfig struct {
	pitch        float64
	decay        float64
	mix          float64
	modModes     int
	modRateHz    float64
	modDepth     float64
	outputGainDB float64
	table        modal.ModeTable
	useAdvanced  bool
	caps         *vecops.Capabilities
}

func defaultModalReverbConfig() modalReverbConfig {
	return modalReverbConfig{
		pitch:        defaultModalPitch,
		decay:        defaultModalDecay,
		mix:          defaultModalMix,
		modRateHz:    defaultModalModRateHz,
		modDepth:     defaultModalModDepth,
		outputGainDB: defaultModalOutputGainDB,
		table:        modal.SpringTable(defaultModalModes),
		useAdvanced:  true,
	}
}

// WithModalPitch sets the pitch offset in octaves, in [-1, 1].
func WithModalPitch(octaves float64) ModalReverbOption {
	return func(cfg *modalReverbConfig) error {
		if err := validateModalPitch(octaves); err != nil {
			return err
		}
		cfg.pitch = octaves
		return nil
	}
}

// WithModalDecay sets the normalized decay control in [0, 1].
func WithModalDecay(decay float64) ModalReverbOption {
	return func(cfg *modalReverbConfig) error {
		if err := validateModalDecay(decay); err != nil {
			return err
		}
		cfg.decay = decay
		return nil
	}
}

// WithModalMix sets the wet proportion in [0, 1].
func WithModalMix(mix float64) ModalReverbOption {
	return func(cfg *modalReverbConfig) error {
		if err := validateModalMix(mix); err != nil {
			return err
		}
		cfg.mix = mix
		return nil
	}
}

// WithModalModModes sets how many of the lowest modes receive vibrato.
// Zero disables modulation.
func WithModalModModes(n int) ModalReverbOption {
	return func(cfg *modalReverbConfig) error {
		if err := validateModalModModes(n); err != nil {
			return err
		}
		cfg.modModes = n
		return nil
	}
}

// WithModalModRateHz sets the vibrato LFO rate.
func WithModalModRateHz(rateHz float64) ModalReverbOption {
	return func(cfg *modalReverbConfig) error {
		if err := validateModalModRate(rateHz); err != nil {
			return err
		}
		cfg.modRateHz = rateHz
		return nil
	}
}

// WithModalModDepth sets the vibrato depth in octaves, in [0, 1].
func WithModalModDepth(depth float64) ModalReverbOption {
	return func(cfg *modalReverbConfig) error {
		if err := validateModalModDepth(depth); err != nil {
			return err
		}
		cfg.modDepth = depth
		return nil
	}
}

// WithModalOutputGainDB sets the gain applied to the wet signal.
func WithModalOutputGainDB(db float64) ModalReverbOption {
	return func(cfg *modalReverbConfig) error {
		if err := validateModalOutputGain(db); err != nil {
			return err
		}
		cfg.outputGainDB = db
		return nil
	}
}

// WithModalModeTable replaces the default spring mode table.
func WithModalModeTable(t modal.ModeTable) ModalReverbOption {
	return func(cfg *modalReverbConfig) error {
		if err := t.Validate(); err != nil {
			return err
		}
		cfg.table = t
		return nil
	}
}

// WithModalAdvancedTier selects whether blocks render on the advanced
// kernel tier when the machine has it.
func WithModalAdvancedTier(use bool) ModalReverbOption {
	return func(cfg *modalReverbConfig) error {
		cfg.useAdvanced = use
		return nil
	}
}

// WithModalCapabilities overrides the probed capabilities used for the
// advanced bank.
func WithModalCapabilities(caps *vecops.Capabilities) ModalReverbOption {
	return func(cfg *modalReverbConfig) error {
		if caps == nil {
			return fmt.Errorf("modal reverb capabilities must not be nil")
		}
		cfg.caps = caps
		return nil
	}
}

// ModalReverb is a spring-style reverb built on a modal resonator bank.
//
// Each block is mixed to mono, rendered through the bank and written back
// to every channel, then blended with the dry input. Two banks are kept,
// one per kernel tier, and the one matching the current tier selection
// renders the block.
type ModalReverb struct {
	cfg core.ProcessorConfig

	pitch        float64
	decay        float64
	mix          float64
	modModes     int
	modRateHz    float64
	modDepth     float64
	outputGainDB float64
	useAdvanced  bool

	table modal.ModeTable
	freqs []float32
	taus  []float32

	caps     *vecops.Capabilities
	base     *modal.Bank[float32]
	advanced *modal.Bank[float32]
	active   *modal.Bank[float32]
	kernels  *vecops.Kernels[float32]

	lfoPhase float64
	octaves  *core.LookupTable[float32]
	scratch  *buffer.Buffer[float32]

	// Reused per call so processing does not allocate.
	views [][]float32
	mono  [1][]float32

	// Per-block modulation state read by modulate.
	blockMult     float32
	blockModModes int
	blockMaxFreq  float32
	vibrato       []float32
	modulator     modal.Modulator[float32]
}

// NewModalReverb creates a modal reverb prepared for sampleRate and blocks
// of up to blockSize samples. Longer inputs are processed in slices.
func NewModalReverb(sampleRate float64, blockSize int, opts ...ModalReverbOption) (*ModalReverb, error) {
	pc, err := core.NewProcessorConfig(core.WithSampleRate(sampleRate), core.WithBlockSize(blockSize))
	if err != nil {
		return nil, fmt.Errorf("modal reverb: %w", err)
	}

	cfg := defaultModalReverbConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.caps == nil {
		cfg.caps = vecops.Probe()
	}

	r := &ModalReverb{
		cfg:          pc,
		pitch:        cfg.pitch,
		decay:        cfg.decay,
		mix:          cfg.mix,
		modModes:     cfg.modModes,
		modRateHz:    cfg.modRateHz,
		modDepth:     cfg.modDepth,
		outputGainDB: cfg.outputGainDB,
		useAdvanced:  cfg.useAdvanced,
		caps:         cfg.caps,
		kernels:      vecops.New[float32](cfg.caps),
		octaves:      core.NewLookupTable(exp2f, -1, 1, modalVibratoTablePoints),
		scratch:      buffer.New[float32](modalScratchChannels, pc.BlockSize),
		views:        make([][]float32, 0, modalInitialChannels),
	}
	r.modulator = r.modulate
	r.caps.SetUseAdvancedTier(r.useAdvanced)
	r.installTable(cfg.table)

	return r, nil
}

// installTable rebuilds both banks for t.
func (r *ModalReverb) installTable(t modal.ModeTable) {
	n := t.NumModes()
	r.table = t

	freqs, taus, ampsRe, ampsIm := modal.Columns[float32](t)
	r.taus = taus

	// Padded to whole vectors so modulate can read any lane of any group.
	r.freqs = make([]float32, (n+vecops.MaxLanes-1)/vecops.MaxLanes*vecops.MaxLanes)
	copy(r.freqs, freqs)

	// The advanced bank is laid out for the advanced tier whenever the
	// machine has one, regardless of the current selection.
	advancedArch := vecops.Base
	if r.caps.AdvancedTierAvailable() {
		advancedArch = vecops.Advanced
	}
	r.base = modal.NewBank[float32](n, vecops.NewCapabilities(false))
	r.advanced = modal.NewBankForArch[float32](n, r.caps, advancedArch)
	for _, b := range []*modal.Bank[float32]{r.base, r.advanced} {
		b.Prepare(r.cfg.SampleRate, r.cfg.BlockSize)
		b.SetModeAmplitudes(ampsRe, ampsIm, modalAmpNormalize)
	}
	r.active = nil
}

// SetSampleRate re-prepares both banks for a new sample rate and resets
// all state.
func (r *ModalReverb) SetSampleRate(sampleRate float64) error {
	pc, err := core.NewProcessorConfig(core.WithSampleRate(sampleRate), core.WithBlockSize(r.cfg.BlockSize))
	if err != nil {
		return fmt.Errorf("modal reverb: %w", err)
	}

	r.cfg = pc
	r.base.Prepare(pc.SampleRate, pc.BlockSize)
	r.advanced.Prepare(pc.SampleRate, pc.BlockSize)
	r.Reset()

	return nil
}

// SetPitch sets the pitch offset in octaves, in [-1, 1].
func (r *ModalReverb) SetPitch(octaves float64) error {
	if err := validateModalPitch(octaves); err != nil {
		return err
	}
	r.pitch = octaves
	return nil
}

// SetDecay sets the normalized decay control in [0, 1].
func (r *ModalReverb) SetDecay(decay float64) error {
	if err := validateModalDecay(decay); err != nil {
		return err
	}
	r.decay = decay
	return nil
}

// SetMix sets the wet proportion in [0, 1].
func (r *ModalReverb) SetMix(mix float64) error {
	if err := validateModalMix(mix); err != nil {
		return err
	}
	r.mix = mix
	return nil
}

// SetModModes sets how many of the lowest modes receive vibrato.
func (r *ModalReverb) SetModModes(n int) error {
	if err := validateModalModModes(n); err != nil {
		return err
	}
	r.modModes = n
	return nil
}

// SetModRateHz sets the vibrato LFO rate.
func (r *ModalReverb) SetModRateHz(rateHz float64) error {
	if err := validateModalModRate(rateHz); err != nil {
		return err
	}
	r.modRateHz = rateHz
	return nil
}

// SetModDepth sets the vibrato depth in octaves, in [0, 1].
func (r *ModalReverb) SetModDepth(depth float64) error {
	if err := validateModalModDepth(depth); err != nil {
		return err
	}
	r.modDepth = depth
	return nil
}

// SetOutputGainDB sets the gain applied to the wet signal.
func (r *ModalReverb) SetOutputGainDB(db float64) error {
	if err := validateModalOutputGain(db); err != nil {
		return err
	}
	r.outputGainDB = db
	return nil
}

// SetModeTable replaces the mode table. Both banks are rebuilt, so any
// ringing modes are dropped.
func (r *ModalReverb) SetModeTable(t modal.ModeTable) error {
	if err := t.Validate(); err != nil {
		return err
	}
	r.installTable(t)
	return nil
}

// SetUseAdvancedTier selects the advanced kernel tier for following
// blocks. It is ignored on machines without one.
func (r *ModalReverb) SetUseAdvancedTier(use bool) {
	r.useAdvanced = use
	r.caps.SetUseAdvancedTier(use)
}

// Reset clears the resonator state and restarts the LFO.
func (r *ModalReverb) Reset() {
	r.base.Reset()
	r.advanced.Reset()
	r.lfoPhase = 0
}

// ProcessInPlace processes a mono block in place.
func (r *ModalReverb) ProcessInPlace(buf []float32) error {
	r.mono[0] = buf
	err := r.ProcessChannels(r.mono[:])
	r.mono[0] = nil
	return err
}

// ProcessBuffer processes the active region of b in place.
func (r *ModalReverb) ProcessBuffer(b *buffer.Buffer[float32]) error {
	if b.NumChannels() == 0 {
		return nil
	}
	return r.ProcessChannels(b.ArrayOfWritePointers())
}

// ProcessChannels processes equally long channels in place.
func (r *ModalReverb) ProcessChannels(channels [][]float32) error {
	if len(channels) == 0 {
		return nil
	}

	n := len(channels[0])
	for ch, data := range channels {
		if len(data) != n {
			return fmt.Errorf("modal reverb channel %d length %d differs from %d", ch, len(data), n)
		}
	}

	if cap(r.views) < len(channels) {
		r.views = make([][]float32, 0, len(channels))
	}
	views := r.views[:len(channels)]

	block := r.cfg.BlockSize
	for off := 0; off < n; off += block {
		end := min(off+block, n)
		for ch, data := range channels {
			views[ch] = data[off:end]
		}
		r.processBlock(views, end-off)
	}
	clear(views)

	return nil
}

func (r *ModalReverb) processBlock(channels [][]float32, n int) {
	k := r.kernels

	r.scratch.SetCurrentSize(modalScratchChannels, n)
	mono := r.scratch.WritePointer(modalMonoCh)
	k.Copy(mono, channels[0])
	for _, data := range channels[1:] {
		k.Add(mono, mono, data)
	}
	if len(channels) > 1 {
		k.MultiplyScalar(mono, mono, 1/float32(len(channels)))
	}

	bank := r.selectBank()
	mult := float32(core.OctavesToRatio(r.pitch))
	bank.SetModeFrequencies(r.freqs[:len(r.taus)], mult)
	bank.SetModeDecays(r.taus, float32(r.table.AnalysisSampleRate), float32(core.DecayScale(r.decay)))

	var wet []float32
	if modModes := min(r.modModes, bank.NumModes()); modModes > 0 {
		r.fillVibrato(n)
		r.blockMult = mult
		r.blockModModes = modModes
		r.blockMaxFreq = bank.MaxFrequency()
		wet = bank.ProcessWithModulation(mono, r.modulator)
	} else {
		r.advanceLFO(n)
		wet = bank.Process(mono)
	}

	// wet·gain·mix + dry·(1-mix)
	scaled := r.scratch.WritePointer(modalMonoCh)
	k.MultiplyScalar(scaled, wet, float32(core.DBToLinear(r.outputGainDB)*r.mix))
	dry := float32(1 - r.mix)
	for _, data := range channels {
		k.MultiplyScalar(data, data, dry)
		k.Add(data, data, scaled)
	}
}

// selectBank returns the bank for the current tier and resets it when the
// tier changed since the last block.
func (r *ModalReverb) selectBank() *modal.Bank[float32] {
	bank := r.base
	if r.caps.UsingAdvancedTier() {
		bank = r.advanced
	}
	if bank != r.active {
		bank.Reset()
		r.active = bank
	}
	return bank
}

// fillVibrato renders the LFO for n samples and the per-sample frequency
// factor 2^(depth·lfo) derived from it.
func (r *ModalReverb) fillVibrato(n int) {
	lfo := r.scratch.WritePointer(modalLFOCh)
	vib := r.scratch.WritePointer(modalVibratoCh)

	r.renderLFO(lfo[:n])
	r.kernels.MultiplyScalar(vib[:n], lfo[:n], float32(r.modDepth))
	r.octaves.ProcessBlock(vib[:n], vib[:n])
	r.vibrato = vib[:n]
}

func exp2f(x float32) float32 { return float32(math.Exp2(float64(x))) }

func (r *ModalReverb) advanceLFO(n int) {
	r.lfoPhase = math.Mod(r.lfoPhase+2*math.Pi*r.modRateHz*float64(n)/r.cfg.SampleRate, 2*math.Pi)
}

func (r *ModalReverb) renderLFO(dst []float32) {
	step := 2 * math.Pi * r.modRateHz / r.cfg.SampleRate
	for i := range dst {
		dst[i] = float32(math.Sin(r.lfoPhase))
		r.lfoPhase += step
		if r.lfoPhase >= 2*math.Pi {
			r.lfoPhase -= 2 * math.Pi
		}
	}
}

// modulate retunes one group for one sample. Lanes at or past the
// modulated mode count keep the unmodulated frequency.
func (r *ModalReverb) modulate(g *modal.Group[float32], groupIndex, sampleIndex int) {
	w := g.LaneWidth()
	first := groupIndex * w
	if first >= r.blockModModes {
		return
	}

	vib := r.vibrato[sampleIndex] * r.blockMult

	var lanes [vecops.MaxLanes]float32
	for l := range w {
		m := first + l
		f := r.freqs[m] * r.blockMult
		if m < r.blockModModes {
			f = r.freqs[m] * vib
		}
		if f > r.blockMaxFreq {
			f = 0
		}
		lanes[l] = f
	}

	g.SetFreq(vecops.LoadVec(lanes[:w]))
}

// SampleRate returns sample rate in Hz.
func (r *ModalReverb) SampleRate() float64 { return r.cfg.SampleRate }

// BlockSize returns the largest block rendered in one pass.
func (r *ModalReverb) BlockSize() int { return r.cfg.BlockSize }

// Pitch returns the pitch offset in octaves.
func (r *ModalReverb) Pitch() float64 { return r.pitch }

// Decay returns the normalized decay control.
func (r *ModalReverb) Decay() float64 { return r.decay }

// Mix returns the wet proportion.
func (r *ModalReverb) Mix() float64 { return r.mix }

// ModModes returns the number of modulated modes.
func (r *ModalReverb) ModModes() int { return r.modModes }

// ModRateHz returns the vibrato LFO rate.
func (r *ModalReverb) ModRateHz() float64 { return r.modRateHz }

// ModDepth returns the vibrato depth in octaves.
func (r *ModalReverb) ModDepth() float64 { return r.modDepth }

// OutputGainDB returns the wet gain in dB.
func (r *ModalReverb) OutputGainDB() float64 { return r.outputGainDB }

// ModeTable returns the installed mode table.
func (r *ModalReverb) ModeTable() modal.ModeTable { return r.table }

// UsingAdvancedTier reports whether the next block renders on the
// advanced tier.
func (r *ModalReverb) UsingAdvancedTier() bool { return r.caps.UsingAdvancedTier() }

// Capabilities returns the capabilities consulted for tier selection.
func (r *ModalReverb) Capabilities() *vecops.Capabilities { return r.caps }

// Bank returns the bank the next block renders on.
func (r *ModalReverb) Bank() *modal.Bank[float32] {
	if r.caps.UsingAdvancedTier() {
		return r.advanced
	}
	return r.base
}

func validateModalPitch(octaves float64) error {
	if octaves < -1 || octaves > 1 || math.IsNaN(octaves) {
		return fmt.Errorf("modal reverb pitch must be in [-1, 1]: %f", octaves)
	}
	return nil
}

func validateModalDecay(decay float64) error {
	if decay < 0 || decay > 1 || math.IsNaN(decay) {
		return fmt.Errorf("modal reverb decay must be in [0, 1]: %f", decay)
	}
	return nil
}

func validateModalMix(mix float64) error {
	if mix < 0 || mix > 1 || math.IsNaN(mix) {
		return fmt.Errorf("modal reverb mix must be in [0, 1]: %f", mix)
	}
	return nil
}

func validateModalModModes(n int) error {
	if n < 0 {
		return fmt.Errorf("modal reverb mod modes must be >= 0: %d", n)
	}
	return nil
}

func validateModalModRate(rateHz float64) error {
	if rateHz <= 0 || rateHz > maxModalModRateHz || math.IsNaN(rateHz) {
		return fmt.Errorf("modal reverb mod rate must be in (0, %g]: %f", maxModalModRateHz, rateHz)
	}
	return nil
}

func validateModalModDepth(depth float64) error {
	if depth < 0 || depth > 1 || math.IsNaN(depth) {
		return fmt.Errorf("modal reverb mod depth must be in [0, 1]: %f", depth)
	}
	return nil
}

func validateModalOutputGain(db float64) error {
	if math.IsNaN(db) || math.IsInf(db, 0) {
		return fmt.Errorf("modal reverb output gain must be finite: %f", db)
	}
	return nil
}
