package window

import (
	"math"
	"testing"
)

func TestHann(t *testing.T) {
	tests := []struct {
		name string
		size int
		opts []Option
		want []float64
	}{
		{name: "single point", size: 1, want: []float64{1}},
		{name: "symmetric", size: 5, want: []float64{0, 0.5, 1, 0.5, 0}},
		{name: "periodic", size: 4, opts: []Option{WithPeriodic()}, want: []float64{0, 0.5, 1, 0.5}},
		{name: "nil option", size: 3, opts: []Option{nil}, want: []float64{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Hann(tt.size, tt.opts...)
			if err != nil {
				t.Fatalf("Hann() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len=%d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Fatalf("coefficient[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestHannSymmetry(t *testing.T) {
	w, err := Hann(63)
	if err != nil {
		t.Fatalf("Hann() error = %v", err)
	}
	for i := range w {
		if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
			t.Fatalf("coefficient[%d] = %v, mirror = %v", i, w[i], w[len(w)-1-i])
		}
	}
}

func TestHannRejectsEmpty(t *testing.T) {
	for _, size := range []int{0, -3} {
		if _, err := Hann(size); err == nil {
			t.Fatalf("Hann(%d) error = nil", size)
		}
	}
}

func TestApplyHann(t *testing.T) {
	buf := []float64{2, 2, 2, 2, 2}
	ApplyHann(buf)

	want := []float64{0, 1, 2, 1, 0}
	for i := range buf {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Fatalf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}

	ApplyHann(nil)
}
