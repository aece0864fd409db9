package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth  = 16
	wavFormatPCM = 1
)

// readWAV decodes a PCM WAV file into per-channel float32 samples in
// [-1, 1).
func readWAV(path string) ([][]float32, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, 0, fmt.Errorf("%s: not a valid WAV file", path)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}

	numCh := buf.Format.NumChannels
	if numCh < 1 || len(buf.Data) < numCh {
		return nil, 0, fmt.Errorf("%s: no audio frames", path)
	}

	scale := 1 / float32(audio.IntMaxSignedValue(int(d.BitDepth))+1)
	frames := len(buf.Data) / numCh
	channels := make([][]float32, numCh)
	for ch := range channels {
		channels[ch] = make([]float32, frames)
	}
	for i, v := range buf.Data[:frames*numCh] {
		channels[i%numCh][i/numCh] = float32(v) * scale
	}

	return channels, float64(buf.Format.SampleRate), nil
}

// writeWAV encodes channels as interleaved 16-bit PCM. Samples are clipped
// to full scale; NaN is written as silence.
func writeWAV(path string, channels [][]float32, sampleRate int) error {
	if len(channels) == 0 {
		return fmt.Errorf("write %s: no channels", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	numCh := len(channels)
	frames := len(channels[0])
	full := float64(audio.IntMaxSignedValue(wavBitDepth))

	data := make([]int, frames*numCh)
	for ch, samples := range channels {
		for i, v := range samples {
			x := float64(v)
			if math.IsNaN(x) {
				x = 0
			}
			data[i*numCh+ch] = int(math.Round(max(-1, min(1, x)) * full))
		}
	}

	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, numCh, wavFormatPCM)
	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numCh, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	})
	if err == nil {
		err = enc.Close()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
