package vecops

import "math"

// Kernels bundles the block operations for one element type. Each call
// reads the tier selection from its Capabilities, so a selection change
// applies from the next call on.
type Kernels[T Float] struct {
	caps *Capabilities
}

// New returns kernels bound to caps. A nil caps runs the base tier.
func New[T Float](caps *Capabilities) *Kernels[T] {
	return &Kernels[T]{caps: caps}
}

// Arch returns the tier the next call will run on.
func (k *Kernels[T]) Arch() Arch {
	return k.caps.Arch()
}

// Capabilities returns the capability value the kernels consult.
func (k *Kernels[T]) Capabilities() *Capabilities {
	return k.caps
}

// Divide sets dst[i] = dividend[i] / divisor[i].
func (k *Kernels[T]) Divide(dst, dividend, divisor []T) {
	BinaryOp(k.Arch(), dst, dividend, divisor,
		func(x, y T) T { return x / y },
		func(x, y Vec[T]) Vec[T] { return x.Div(y) })
}

// DivideScalar sets dst[i] = dividend / divisor[i].
func (k *Kernels[T]) DivideScalar(dst []T, dividend T, divisor []T) {
	a := k.Arch()
	num := Splat(dividend, LaneWidth[T](a))
	UnaryOp(a, dst, divisor,
		func(y T) T { return dividend / y },
		func(y Vec[T]) Vec[T] { return num.Div(y) })
}

// Multiply sets dst[i] = x[i] * y[i].
func (k *Kernels[T]) Multiply(dst, x, y []T) {
	BinaryOp(k.Arch(), dst, x, y,
		func(x, y T) T { return x * y },
		func(x, y Vec[T]) Vec[T] { return x.Mul(y) })
}

// MultiplyScalar sets dst[i] = src[i] * s.
func (k *Kernels[T]) MultiplyScalar(dst, src []T, s T) {
	UnaryOp(k.Arch(), dst, src,
		func(x T) T { return x * s },
		func(x Vec[T]) Vec[T] { return x.Scale(s) })
}

// Add sets dst[i] = x[i] + y[i].
func (k *Kernels[T]) Add(dst, x, y []T) {
	BinaryOp(k.Arch(), dst, x, y,
		func(x, y T) T { return x + y },
		func(x, y Vec[T]) Vec[T] { return x.Add(y) })
}

// Fill sets every element of dst to v.
func (k *Kernels[T]) Fill(dst []T, v T) {
	a := k.Arch()
	splat := Splat(v, LaneWidth[T](a))
	UnaryOp(a, dst, dst,
		func(T) T { return v },
		func(Vec[T]) Vec[T] { return splat })
}

// Copy copies src[:len(dst)] into dst.
func (k *Kernels[T]) Copy(dst, src []T) {
	if len(src) < len(dst) {
		panic("vecops: source shorter than destination")
	}
	copy(dst, src)
}

// Accumulate returns the sum of src. It is 0 for an empty slice.
func (k *Kernels[T]) Accumulate(src []T) T {
	return Reduce(k.Arch(), src, 0,
		func(acc, x T) T { return acc + x },
		func(acc, x Vec[T]) Vec[T] { return acc.Add(x) },
		HorizontalAdd[T])
}

// InnerProduct returns the sum of a[i]*b[i] over len(a) elements.
func (k *Kernels[T]) InnerProduct(a, b []T) T {
	return Reduce2(k.Arch(), a, b,
		func(acc, x, y T) T { return acc + x*y },
		func(acc, x, y Vec[T]) Vec[T] { return acc.Add(x.Mul(y)) },
		HorizontalAdd[T])
}

// FindAbsoluteMaximum returns the largest |src[i]|, or 0 for an empty slice.
func (k *Kernels[T]) FindAbsoluteMaximum(src []T) T {
	return Reduce(k.Arch(), src, 0,
		func(acc, x T) T { return max(acc, abs(x)) },
		func(acc, x Vec[T]) Vec[T] { return acc.Max(x.Abs()) },
		HorizontalMax[T])
}

// ComputeRMS returns sqrt(mean(src²)). src must not be empty.
func (k *Kernels[T]) ComputeRMS(src []T) T {
	if len(src) == 0 {
		panic("vecops: RMS of empty input")
	}

	sum := Reduce(k.Arch(), src, 0,
		func(acc, x T) T { return acc + x*x },
		func(acc, x Vec[T]) Vec[T] { return acc.Add(x.Mul(x)) },
		HorizontalAdd[T])

	return T(math.Sqrt(float64(sum / T(len(src)))))
}
