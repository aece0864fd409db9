package testutil

import (
	"math"
	"testing"
	"unsafe"
)

func unsafePointer[T Float](s []T) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(s))
}

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine[float64](1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise[float32](42, 1.0, 64)
	b := DeterministicNoise[float32](42, 1.0, 64)
	RequireSliceEqual(t, a, b)

	c := DeterministicNoise[float32](43, 1.0, 64)
	if d, _ := MaxAbsDiff(a, c); d == 0 {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse[float64](8, 3)
	for i, v := range imp {
		want := 0.0
		if i == 3 {
			want = 1
		}
		if v != want {
			t.Fatalf("imp[%d] = %v, want %v", i, v, want)
		}
	}

	for i, v := range Impulse[float64](4, 10) {
		if v != 0 {
			t.Fatalf("imp[%d] = %v, want all zeros for out-of-bounds pos", i, v)
		}
	}
}

func TestDC(t *testing.T) {
	for i, v := range DC(float32(0.5), 4) {
		if v != 0.5 {
			t.Fatalf("DC[%d] = %v, want 0.5", i, v)
		}
	}
}
