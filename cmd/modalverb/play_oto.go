//go:build !headless

package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

// play sends the mono sum of channels to the default output device and
// blocks until playback ends.
func play(channels [][]float32, sampleRate int) error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return err
	}
	<-ready

	frames := len(channels[0])
	pcm := make([]byte, 4*frames)
	for i := range frames {
		var sum float32
		for _, data := range channels {
			sum += data[i]
		}
		sum /= float32(len(channels))
		binary.LittleEndian.PutUint32(pcm[4*i:], math.Float32bits(sum))
	}

	player := ctx.NewPlayer(bytes.NewReader(pcm))
	defer player.Close()

	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	return nil
}
