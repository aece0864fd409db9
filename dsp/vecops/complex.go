package vecops

import "math"

// Complex is a vector of complex numbers held as separate real and
// imaginary registers of equal width.
type Complex[T Float] struct {
	Re, Im Vec[T]
}

// ZeroComplex returns a width-lane complex vector of zeros.
func ZeroComplex[T Float](width int) Complex[T] {
	return Complex[T]{Re: ZeroVec[T](width), Im: ZeroVec[T](width)}
}

// Polar returns mag·e^{j·angle} lane-wise.
func Polar[T Float](mag, angle Vec[T]) Complex[T] {
	c := PolarUnit(angle)
	return Complex[T]{Re: c.Re.Mul(mag), Im: c.Im.Mul(mag)}
}

// PolarUnit returns e^{j·angle} lane-wise.
func PolarUnit[T Float](angle Vec[T]) Complex[T] {
	c := Complex[T]{Re: angle, Im: angle}
	for i := range angle.n {
		s, co := math.Sincos(float64(angle.lanes[i]))
		c.Re.lanes[i] = T(co)
		c.Im.lanes[i] = T(s)
	}
	return c
}

// Width returns the lane count.
func (c Complex[T]) Width() int { return c.Re.n }

// Lane returns lane i as a complex128.
func (c Complex[T]) Lane(i int) complex128 {
	return complex(float64(c.Re.Lane(i)), float64(c.Im.Lane(i)))
}

// Add returns c + o.
func (c Complex[T]) Add(o Complex[T]) Complex[T] {
	return Complex[T]{Re: c.Re.Add(o.Re), Im: c.Im.Add(o.Im)}
}

// Mul returns the lane-wise complex product c·o.
func (c Complex[T]) Mul(o Complex[T]) Complex[T] {
	return Complex[T]{
		Re: c.Re.Mul(o.Re).Sub(c.Im.Mul(o.Im)),
		Im: c.Re.Mul(o.Im).Add(c.Im.Mul(o.Re)),
	}
}

// MulReal returns Re(c·o) without computing the imaginary part.
func (c Complex[T]) MulReal(o Complex[T]) Vec[T] {
	return c.Re.Mul(o.Re).Sub(c.Im.Mul(o.Im))
}

// MulImag returns Im(c·o) without computing the real part.
func (c Complex[T]) MulImag(o Complex[T]) Vec[T] {
	return c.Re.Mul(o.Im).Add(c.Im.Mul(o.Re))
}

// Scale multiplies both parts by the real vector s.
func (c Complex[T]) Scale(s Vec[T]) Complex[T] {
	return Complex[T]{Re: c.Re.Mul(s), Im: c.Im.Mul(s)}
}

// ScaleScalar multiplies every lane by s.
func (c Complex[T]) ScaleScalar(s T) Complex[T] {
	return Complex[T]{Re: c.Re.Scale(s), Im: c.Im.Scale(s)}
}

// Abs returns the lane-wise magnitude.
func (c Complex[T]) Abs() Vec[T] {
	out := c.Re
	for i := range c.Re.n {
		out.lanes[i] = T(math.Hypot(float64(c.Re.lanes[i]), float64(c.Im.lanes[i])))
	}
	return out
}

// Arg returns the lane-wise phase angle.
func (c Complex[T]) Arg() Vec[T] {
	out := c.Re
	for i := range c.Re.n {
		out.lanes[i] = T(math.Atan2(float64(c.Im.lanes[i]), float64(c.Re.lanes[i])))
	}
	return out
}

// Pow returns x^c lane-wise for a real base x > 0.
func (c Complex[T]) Pow(x T) Complex[T] {
	lx := T(math.Log(float64(x)))
	mag := c.Re.Scale(lx).Map(func(v T) T { return T(math.Exp(float64(v))) })
	return Polar(mag, c.Im.Scale(lx))
}
