package vecops

import (
	"strconv"
	"testing"
)

func BenchmarkInnerProduct(b *testing.B) {
	sizes := []int{16, 256, 4096}
	for _, tier := range testTiers {
		k := New[float32](tier.caps)
		for _, size := range sizes {
			x := MakeAligned[float32](size, MaxAlignment)
			y := MakeAligned[float32](size, MaxAlignment)
			for i := range x {
				x[i] = float32(i)
				y[i] = float32(i) * 0.5
			}

			b.Run(tier.name+"/"+strconv.Itoa(size), func(b *testing.B) {
				b.SetBytes(int64(size * 4 * 2))
				for i := 0; i < b.N; i++ {
					_ = k.InnerProduct(x, y)
				}
			})
		}
	}
}

func BenchmarkIntegerPower(b *testing.B) {
	const size = 1024

	k := New[float64](Probe())
	src := MakeAligned[float64](size, MaxAlignment)
	dst := MakeAligned[float64](size, MaxAlignment)
	for i := range src {
		src[i] = 1 + float64(i)/size
	}

	for _, e := range []int{2, 7, 16, 24} {
		b.Run(strconv.Itoa(e), func(b *testing.B) {
			b.SetBytes(size * 8)
			for i := 0; i < b.N; i++ {
				k.IntegerPower(dst, src, e)
			}
		})
	}
}
