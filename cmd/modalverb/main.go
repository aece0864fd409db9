// Command modalverb renders audio through the modal spring reverb.
//
// Usage:
//
//	modalverb [flags]
//
// Without -in it renders the impulse response of the reverb. The result can
// be written to a WAV file, played back, and is summarized on stdout.
//
// Examples:
//
//	modalverb -out ir.wav
//	modalverb -seconds 6 -decay 0.9 -mod-modes 40 -mod-depth 0.1 -play
//	modalverb -in dry.wav -out wet.wav -mix 0.3 -tier base
//	modalverb -modes table.lua -out custom.wav
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-modal/dsp/effects/reverb"
	"github.com/cwbudde/algo-modal/dsp/modal"
	"github.com/cwbudde/algo-modal/dsp/vecops"
	"github.com/cwbudde/algo-modal/internal/modetable"
)

type options struct {
	sampleRate  float64
	blockSize   int
	seconds     float64
	pitch       float64
	decay       float64
	mix         float64
	modModes    int
	modRateHz   float64
	modDepth    float64
	gainDB      float64
	springModes int
	modesPath   string
	tier        string
	inPath      string
	outPath     string
	play        bool
}

func main() {
	var o options
	flag.Float64Var(&o.sampleRate, "rate", 48000, "sample rate in Hz (ignored with -in)")
	flag.IntVar(&o.blockSize, "block", 512, "processing block size in samples")
	flag.Float64Var(&o.seconds, "seconds", 4, "impulse response length in seconds (ignored with -in)")
	flag.Float64Var(&o.pitch, "pitch", 0, "pitch offset in octaves [-1, 1]")
	flag.Float64Var(&o.decay, "decay", 0.5, "decay control [0, 1]")
	flag.Float64Var(&o.mix, "mix", 1, "wet proportion [0, 1]")
	flag.IntVar(&o.modModes, "mod-modes", 0, "number of lowest modes with vibrato")
	flag.Float64Var(&o.modRateHz, "mod-rate", 1, "vibrato rate in Hz")
	flag.Float64Var(&o.modDepth, "mod-depth", 0.5, "vibrato depth in octaves [0, 1]")
	flag.Float64Var(&o.gainDB, "gain", -24, "wet output gain in dB")
	flag.IntVar(&o.springModes, "spring-modes", 64, "mode count of the built-in spring table")
	flag.StringVar(&o.modesPath, "modes", "", "Lua script defining the mode table")
	flag.StringVar(&o.tier, "tier", "auto", "kernel tier: auto, base or advanced")
	flag.StringVar(&o.inPath, "in", "", "input WAV file")
	flag.StringVar(&o.outPath, "out", "", "output WAV file (16-bit PCM)")
	flag.BoolVar(&o.play, "play", false, "play the result on the default audio device")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: modalverb [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders audio through the modal spring reverb.\n")
		fmt.Fprintf(os.Stderr, "Without -in the impulse response is rendered.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  modalverb -out ir.wav\n")
		fmt.Fprintf(os.Stderr, "  modalverb -in dry.wav -out wet.wav -mix 0.3\n")
		fmt.Fprintf(os.Stderr, "  modalverb -modes table.lua -play\n")
	}
	flag.Parse()

	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(o options) error {
	caps, err := capabilitiesFor(o.tier)
	if err != nil {
		return err
	}

	table, err := loadTable(o)
	if err != nil {
		return err
	}

	var (
		channels   [][]float32
		sampleRate = o.sampleRate
	)
	if o.inPath != "" {
		channels, sampleRate, err = readWAV(o.inPath)
		if err != nil {
			return err
		}
	} else {
		channels, err = impulse(o.sampleRate, o.seconds)
		if err != nil {
			return err
		}
	}

	r, err := reverb.NewModalReverb(sampleRate, o.blockSize,
		reverb.WithModalCapabilities(caps),
		reverb.WithModalAdvancedTier(caps.UsingAdvancedTier()),
		reverb.WithModalModeTable(table),
		reverb.WithModalPitch(o.pitch),
		reverb.WithModalDecay(o.decay),
		reverb.WithModalMix(o.mix),
		reverb.WithModalModModes(o.modModes),
		reverb.WithModalModRateHz(o.modRateHz),
		reverb.WithModalModDepth(o.modDepth),
		reverb.WithModalOutputGainDB(o.gainDB),
	)
	if err != nil {
		return err
	}

	prog := newProgress(os.Stderr)
	if err := render(r, channels, prog.update); err != nil {
		return err
	}
	prog.done()

	if err := writeReport(os.Stdout, r, analyze(channels, sampleRate, caps)); err != nil {
		return err
	}

	if o.outPath != "" {
		if err := writeWAV(o.outPath, channels, int(sampleRate)); err != nil {
			return err
		}
	}

	if o.play {
		if err := play(channels, int(sampleRate)); err != nil {
			return fmt.Errorf("playback: %w", err)
		}
	}

	return nil
}

// capabilitiesFor resolves a -tier value. "advanced" on a machine without
// the advanced tier is an error rather than a silent fallback.
func capabilitiesFor(tier string) (*vecops.Capabilities, error) {
	caps := vecops.Probe()

	switch tier {
	case "auto":
	case "base":
		caps.SetUseAdvancedTier(false)
	case "advanced":
		if !caps.AdvancedTierAvailable() {
			return nil, fmt.Errorf("advanced tier (%s) not available on this CPU", vecops.Advanced.Name)
		}
		caps.SetUseAdvancedTier(true)
	default:
		return nil, fmt.Errorf("unknown tier %q (want auto, base or advanced)", tier)
	}

	return caps, nil
}

func loadTable(o options) (modal.ModeTable, error) {
	if o.modesPath != "" {
		return modetable.LoadFile(o.modesPath)
	}
	if o.springModes < 1 {
		return modal.ModeTable{}, fmt.Errorf("spring mode count must be >= 1: %d", o.springModes)
	}
	return modal.SpringTable(o.springModes), nil
}

func impulse(sampleRate, seconds float64) ([][]float32, error) {
	n := int(sampleRate * seconds)
	if n < 1 {
		return nil, fmt.Errorf("impulse length must be at least one sample: %f s at %f Hz", seconds, sampleRate)
	}

	ch := make([]float32, n)
	ch[0] = 1
	return [][]float32{ch}, nil
}
