package resonance_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-modal/measure/resonance"
)

func ExampleDecayTime() {
	const fs = 48000

	sig := make([]float64, 9600)
	for i := range sig {
		sig[i] = math.Exp(-float64(i)/1200) * math.Sin(2*math.Pi*500*float64(i)/fs)
	}

	d, err := resonance.DecayTime(sig, fs, 480)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("tau %.0f samples, T60 %.3f s\n", d.TauSamples, d.T60)

	// Output:
	// tau 1200 samples, T60 0.173 s
}
