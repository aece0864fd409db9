package modal

import (
	"math"
	"testing"
)

func TestFilterImpulseResponse(t *testing.T) {
	const (
		freq = 250.0
		t60  = 0.1
		fs   = 8000.0
	)

	f := NewFilter[float64](freq, t60)
	f.Prepare(fs)

	r := math.Pow(0.001, 1/(t60*fs))
	w := 2 * math.Pi * freq / fs

	buf := make([]float64, 800)
	buf[0] = 1
	f.ProcessBlock(buf)

	for n, v := range buf {
		want := math.Pow(r, float64(n)) * math.Sin(w*float64(n))
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("y[%d] = %v, want %v", n, v, want)
		}
	}

	// After T60 seconds the envelope is 60 dB down.
	if env := math.Pow(r, t60*fs); math.Abs(env-0.001) > 1e-12 {
		t.Fatalf("envelope at T60 = %v, want 0.001", env)
	}
}

func TestFilterAmplitudePhase(t *testing.T) {
	f := NewFilter[float64](1000, 1)
	f.SetAmpPolar(2, math.Pi/2)

	// With amplitude 2j the first output is Im(2j) = 2.
	if got := f.ProcessSample(1); math.Abs(got-2) > 1e-15 {
		t.Fatalf("first sample = %v, want 2", got)
	}

	f.Reset()
	f.SetAmp(1, 0)
	if got := f.ProcessSample(1); got != 0 {
		t.Fatalf("first sample with real amplitude = %v, want 0", got)
	}
}

func TestFilterRetune(t *testing.T) {
	f := NewFilter[float32](100, 0.5)
	f.SetFreq(2000)
	f.SetDecay(0.05)

	if f.Freq() != 2000 {
		t.Fatalf("Freq() = %v, want 2000", f.Freq())
	}

	var peak float32
	buf := make([]float32, 9600)
	buf[0] = 1
	f.ProcessBlock(buf)
	for _, v := range buf[8000:] {
		peak = max(peak, float32(math.Abs(float64(v))))
	}
	if peak > 1e-6 {
		t.Fatalf("tail peak %v after 166 ms of a 50 ms T60", peak)
	}
}
