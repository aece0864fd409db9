package reverb_test

import (
	"fmt"

	"github.com/cwbudde/algo-modal/dsp/effects/reverb"
)

func ExampleModalReverb() {
	r, err := reverb.NewModalReverb(48000, 256,
		reverb.WithModalDecay(0.7),
		reverb.WithModalMix(1),
		reverb.WithModalModModes(16),
		reverb.WithModalModDepth(0.05),
	)
	if err != nil {
		panic(err)
	}

	buf := make([]float32, 1024)
	buf[0] = 1
	if err := r.ProcessInPlace(buf); err != nil {
		panic(err)
	}

	var energy float64
	for _, v := range buf {
		energy += float64(v) * float64(v)
	}
	fmt.Println(energy > 0)
	// Output: true
}
