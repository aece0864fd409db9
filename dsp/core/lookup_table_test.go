package core

import (
	"math"
	"sync"
	"testing"
)

func exp2f(x float32) float32 { return float32(math.Exp2(float64(x))) }

func TestLookupTableMatchesFunction(t *testing.T) {
	tests := []struct {
		name      string
		fn        func(float64) float64
		lo, hi    float64
		numPoints int
		tol       float64
	}{
		{name: "exp2", fn: math.Exp2, lo: -1, hi: 1, numPoints: 513, tol: 5e-6},
		{name: "sin", fn: math.Sin, lo: 0, hi: math.Pi, numPoints: 1024, tol: 2e-6},
		{name: "tanh", fn: math.Tanh, lo: -4, hi: 4, numPoints: 4096, tol: 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lut := NewLookupTable(tt.fn, tt.lo, tt.hi, tt.numPoints)
			for i := range 1001 {
				x := tt.lo + (tt.hi-tt.lo)*float64(i)/1000
				if got, want := lut.Process(x), tt.fn(x); math.Abs(got-want) > tt.tol {
					t.Fatalf("Process(%v) = %v, want %v", x, got, want)
				}
				if got, want := lut.ProcessUnchecked(x), tt.fn(x); math.Abs(got-want) > tt.tol {
					t.Fatalf("ProcessUnchecked(%v) = %v, want %v", x, got, want)
				}
			}
		})
	}
}

func TestLookupTableHitsSamplePoints(t *testing.T) {
	lut := NewLookupTable(exp2f, -1, 1, 513)
	for _, x := range []float32{-1, -0.5, 0, 0.5, 1} {
		if got, want := lut.Process(x), exp2f(x); got != want {
			t.Fatalf("Process(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestLookupTableClamps(t *testing.T) {
	lut := NewLookupTable(math.Exp2, -1, 1, 65)

	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: "below", x: -7, want: 0.5},
		{name: "above", x: 3, want: 2},
		{name: "minus inf", x: math.Inf(-1), want: 0.5},
		{name: "plus inf", x: math.Inf(1), want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lut.Process(tt.x); math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("Process(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}

	if got := lut.Process(math.NaN()); !math.IsNaN(got) {
		t.Fatalf("Process(NaN) = %v, want NaN", got)
	}
}

func TestLookupTableProcessBlock(t *testing.T) {
	lut := NewLookupTable(exp2f, -1, 1, 257)
	src := []float32{-2, -1, -0.25, 0, 0.75, 1, 5}
	dst := make([]float32, len(src))
	lut.ProcessBlock(dst, src)

	for i, x := range src {
		if want := lut.Process(x); dst[i] != want {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}

	lut.ProcessBlock(src, src)
	for i := range src {
		if src[i] != dst[i] {
			t.Fatalf("in place [%d] = %v, want %v", i, src[i], dst[i])
		}
	}
}

func TestLookupTableRangePanics(t *testing.T) {
	tests := []struct {
		name      string
		lo, hi    float64
		numPoints int
	}{
		{name: "min equals max", lo: 1, hi: 1, numPoints: 16},
		{name: "min above max", lo: 2, hi: -2, numPoints: 16},
		{name: "nan bound", lo: math.NaN(), hi: 1, numPoints: 16},
		{name: "single point", lo: 0, hi: 1, numPoints: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("Initialise did not panic")
				}
			}()

			var lut LookupTable[float64]
			lut.Initialise(math.Exp2, tt.lo, tt.hi, tt.numPoints)
		})
	}
}

func TestLookupTableInitialiseOnce(t *testing.T) {
	var lut LookupTable[float64]
	if lut.IsInitialised() {
		t.Fatal("zero table reports initialised")
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		ran   int
		calls int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			did := lut.InitialiseOnce(math.Exp2, -1, 1, 33)
			mu.Lock()
			calls++
			if did {
				ran++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if ran != 1 || calls != 8 {
		t.Fatalf("initialised %d times over %d calls, want 1 over 8", ran, calls)
	}
	if !lut.IsInitialised() || lut.NumPoints() != 33 {
		t.Fatalf("IsInitialised() = %v, NumPoints() = %d", lut.IsInitialised(), lut.NumPoints())
	}
	if lut.InitialiseOnce(math.Sin, 0, 1, 8) {
		t.Fatal("InitialiseOnce ran on an initialised table")
	}
	if lut.Min() != -1 || lut.Max() != 1 {
		t.Fatalf("range = [%v, %v], want [-1, 1]", lut.Min(), lut.Max())
	}
}
