package vecops

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestVecArithmetic(t *testing.T) {
	a := LoadVec([]float64{1, -2, 3, -4})
	b := LoadVec([]float64{2, 2, -1, 8})

	checks := []struct {
		name string
		got  Vec[float64]
		want []float64
	}{
		{"Add", a.Add(b), []float64{3, 0, 2, 4}},
		{"Sub", a.Sub(b), []float64{-1, -4, 4, -12}},
		{"Mul", a.Mul(b), []float64{2, -4, -3, -32}},
		{"Div", a.Div(b), []float64{0.5, -1, -3, -0.5}},
		{"Abs", a.Abs(), []float64{1, 2, 3, 4}},
		{"Max", a.Max(b), []float64{2, 2, 3, 8}},
		{"Min", a.Min(b), []float64{1, -2, -1, -4}},
		{"Neg", a.Neg(), []float64{-1, 2, -3, 4}},
		{"Scale", a.Scale(2), []float64{2, -4, 6, -8}},
	}

	for _, c := range checks {
		got := make([]float64, 4)
		c.got.Store(got)
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%s lane %d = %v, want %v", c.name, i, got[i], c.want[i])
			}
		}
	}

	if got := a.ReduceAdd(); got != -2 {
		t.Fatalf("ReduceAdd() = %v, want -2", got)
	}
	if got := b.ReduceMax(); got != 8 {
		t.Fatalf("ReduceMax() = %v, want 8", got)
	}
}

func TestVecWithLaneCopies(t *testing.T) {
	v := Splat[float32](1, 4)
	w := v.WithLane(2, 5)

	if v.Lane(2) != 1 {
		t.Fatal("WithLane modified the receiver")
	}
	if w.Lane(2) != 5 || w.Width() != 4 {
		t.Fatalf("WithLane() lane = %v width = %d", w.Lane(2), w.Width())
	}
}

func TestVecWidthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Splat with width 9 did not panic")
		}
	}()
	Splat[float32](0, MaxLanes+1)
}

func TestComplexMatchesComplex128(t *testing.T) {
	x := []complex128{complex(1, 2), complex(-0.5, 0.25), complex(0, -3), complex(2, 0)}
	y := []complex128{complex(0.5, -1), complex(3, 3), complex(-1, 0.5), complex(0.1, 0.9)}

	cx := toComplex(x)
	cy := toComplex(y)

	prod := cx.Mul(cy)
	re := cx.MulReal(cy)
	im := cx.MulImag(cy)
	sum := cx.Add(cy)
	mag := cx.Abs()
	arg := cx.Arg()

	for i := range x {
		want := x[i] * y[i]
		if cmplx.Abs(prod.Lane(i)-want) > 1e-13 {
			t.Fatalf("Mul lane %d = %v, want %v", i, prod.Lane(i), want)
		}
		if math.Abs(re.Lane(i)-real(want)) > 1e-13 || math.Abs(im.Lane(i)-imag(want)) > 1e-13 {
			t.Fatalf("MulReal/MulImag lane %d disagree with Mul", i)
		}
		if sum.Lane(i) != x[i]+y[i] {
			t.Fatalf("Add lane %d = %v, want %v", i, sum.Lane(i), x[i]+y[i])
		}
		if math.Abs(mag.Lane(i)-cmplx.Abs(x[i])) > 1e-15 {
			t.Fatalf("Abs lane %d = %v, want %v", i, mag.Lane(i), cmplx.Abs(x[i]))
		}
		if math.Abs(arg.Lane(i)-cmplx.Phase(x[i])) > 1e-15 {
			t.Fatalf("Arg lane %d = %v, want %v", i, arg.Lane(i), cmplx.Phase(x[i]))
		}
	}
}

func TestComplexPow(t *testing.T) {
	exps := []complex128{complex(1, 0), complex(0, 1), complex(-0.5, 2), complex(2, -0.25)}
	base := 3.0

	got := toComplex(exps).Pow(base)
	for i, e := range exps {
		want := cmplx.Pow(complex(base, 0), e)
		if cmplx.Abs(got.Lane(i)-want) > 1e-12 {
			t.Fatalf("Pow lane %d = %v, want %v", i, got.Lane(i), want)
		}
	}
}

func TestPolar(t *testing.T) {
	mag := LoadVec([]float64{1, 2})
	angle := LoadVec([]float64{0, math.Pi / 2})

	c := Polar(mag, angle)
	if math.Abs(c.Re.Lane(0)-1) > 1e-15 || math.Abs(c.Im.Lane(0)) > 1e-15 {
		t.Fatalf("lane 0 = %v, want 1", c.Lane(0))
	}
	if math.Abs(c.Re.Lane(1)) > 1e-15 || math.Abs(c.Im.Lane(1)-2) > 1e-15 {
		t.Fatalf("lane 1 = %v, want 2i", c.Lane(1))
	}
}

func toComplex(x []complex128) Complex[float64] {
	re := make([]float64, len(x))
	im := make([]float64, len(x))
	for i, v := range x {
		re[i], im[i] = real(v), imag(v)
	}
	return Complex[float64]{Re: LoadVec(re), Im: LoadVec(im)}
}
