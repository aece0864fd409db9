package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-modal/dsp/buffer"
	"github.com/cwbudde/algo-modal/dsp/core"
	"github.com/cwbudde/algo-modal/dsp/effects/reverb"
	"github.com/cwbudde/algo-modal/dsp/vecops"
	"github.com/cwbudde/algo-modal/measure/resonance"
)

// decayFrame is the frame length DecayTime fits the envelope over.
const decayFrame = 256

var blockPool = buffer.NewPool[float32]()

// render runs channels through r in place, one block at a time, and
// reports the completed fraction after each block.
func render(r *reverb.ModalReverb, channels [][]float32, onBlock func(done float64)) error {
	if len(channels) == 0 {
		return nil
	}

	total := len(channels[0])
	block := r.BlockSize()
	for off := 0; off < total; off += block {
		n := min(block, total-off)

		b := blockPool.Get(len(channels), n)
		for ch, data := range channels {
			copy(b.WritePointer(ch), data[off:off+n])
		}
		if err := r.ProcessBuffer(b); err != nil {
			blockPool.Put(b)
			return err
		}
		for ch, data := range channels {
			copy(data[off:off+n], b.ReadPointer(ch))
		}
		blockPool.Put(b)

		if onBlock != nil {
			onBlock(float64(off+n) / float64(total))
		}
	}

	return nil
}

type report struct {
	Frames   int
	Channels int
	Tier     string

	PeakDB float64
	RMSDB  float64
	NaNs   int
	Infs   int

	Peak     resonance.Peak
	PeakErr  error
	Decay    resonance.Decay
	DecayErr error
}

// analyze summarizes the first channel; NaN and Inf counts cover all.
func analyze(channels [][]float32, sampleRate float64, caps *vecops.Capabilities) report {
	k := vecops.New[float32](caps)
	rep := report{Channels: len(channels), Tier: caps.Arch().Name}
	if len(channels) == 0 || len(channels[0]) == 0 {
		rep.PeakErr = resonance.ErrEmptySignal
		rep.DecayErr = resonance.ErrEmptySignal
		return rep
	}

	for _, data := range channels {
		rep.NaNs += k.CountNaNs(data)
		rep.Infs += k.CountInfs(data)
	}

	first := channels[0]
	rep.Frames = len(first)
	rep.PeakDB = core.LinearToDB(float64(k.FindAbsoluteMaximum(first)))
	rep.RMSDB = core.LinearToDB(float64(k.ComputeRMS(first)))

	signal := make([]float64, len(first))
	for i, v := range first {
		signal[i] = float64(v)
	}
	rep.Peak, rep.PeakErr = resonance.PeakFrequency(signal, sampleRate)
	rep.Decay, rep.DecayErr = resonance.DecayTime(signal, sampleRate, decayFrame)

	return rep
}

func writeReport(w io.Writer, r *reverb.ModalReverb, rep report) error {
	table := r.ModeTable()

	lines := []string{
		fmt.Sprintf("tier:        %s (%d lanes, advanced available: %t)", rep.Tier, r.Bank().LaneWidth(), r.Capabilities().AdvancedTierAvailable()),
		fmt.Sprintf("modes:       %d (%d groups), max frequency %.1f Hz", table.NumModes(), r.Bank().NumGroups(), r.Bank().MaxFrequency()),
		fmt.Sprintf("frames:      %d x %d channels", rep.Frames, rep.Channels),
		fmt.Sprintf("peak:        %.2f dBFS", rep.PeakDB),
		fmt.Sprintf("rms:         %.2f dBFS", rep.RMSDB),
		fmt.Sprintf("non-finite:  %d NaN, %d Inf", rep.NaNs, rep.Infs),
	}

	if rep.PeakErr != nil {
		lines = append(lines, fmt.Sprintf("resonance:   n/a (%v)", rep.PeakErr))
	} else {
		lines = append(lines, fmt.Sprintf("resonance:   %.2f Hz", rep.Peak.Frequency))
	}

	switch {
	case errors.Is(rep.DecayErr, resonance.ErrNoDecay):
		lines = append(lines, "decay:       n/a (signal does not decay)")
	case rep.DecayErr != nil:
		lines = append(lines, fmt.Sprintf("decay:       n/a (%v)", rep.DecayErr))
	default:
		lines = append(lines, fmt.Sprintf("decay:       T60 %.3f s (tau %.0f samples)", rep.Decay.T60, rep.Decay.TauSamples))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	return nil
}
