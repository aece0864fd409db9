package vecops_test

import (
	"fmt"

	"github.com/cwbudde/algo-modal/dsp/vecops"
)

func ExampleKernels() {
	caps := vecops.Probe()
	k := vecops.New[float64](caps)

	x := []float64{1, -2, 3, -4, 5, -6, 7, -8, 9}
	y := make([]float64, len(x))
	k.IntegerPower(y, x, 3)

	fmt.Println(k.Accumulate(x))
	fmt.Println(k.FindAbsoluteMaximum(x))
	fmt.Println(k.InnerProduct(x, x))
	fmt.Println(y)

	// Output:
	// 5
	// 9
	// 285
	// [1 -8 27 -64 125 -216 343 -512 729]
}

func ExampleCapabilities_SetUseAdvancedTier() {
	caps := vecops.NewCapabilities(true)
	caps.SetUseAdvancedTier(false)
	fmt.Println(caps.Arch().Tier)

	caps.SetUseAdvancedTier(true)
	fmt.Println(caps.Arch().Tier)

	// Output:
	// base
	// advanced
}
