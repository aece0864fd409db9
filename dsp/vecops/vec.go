package vecops

import "math"

// Vec is one emulated vector register: Width lanes of T advanced together
// by every operation. Lanes past Width are always zero.
type Vec[T Float] struct {
	lanes [MaxLanes]T
	n     int
}

// Splat returns a width-lane vector with every lane set to x.
func Splat[T Float](x T, width int) Vec[T] {
	checkWidth(width)

	v := Vec[T]{n: width}
	for i := range width {
		v.lanes[i] = x
	}
	return v
}

// ZeroVec returns a width-lane vector of zeros.
func ZeroVec[T Float](width int) Vec[T] {
	checkWidth(width)
	return Vec[T]{n: width}
}

// LoadVec returns a vector holding src, one lane per element.
func LoadVec[T Float](src []T) Vec[T] {
	checkWidth(len(src))

	v := Vec[T]{n: len(src)}
	copy(v.lanes[:], src)
	return v
}

func checkWidth(width int) {
	if width < 1 || width > MaxLanes {
		panic("vecops: vector width out of range")
	}
}

// Width returns the lane count.
func (v Vec[T]) Width() int { return v.n }

// Lane returns lane i.
func (v Vec[T]) Lane(i int) T { return v.lanes[:v.n][i] }

// WithLane returns a copy of v with lane i replaced by x.
func (v Vec[T]) WithLane(i int, x T) Vec[T] {
	v.lanes[:v.n][i] = x
	return v
}

// Store writes the lanes to dst[:Width].
func (v Vec[T]) Store(dst []T) {
	copy(dst[:v.n], v.lanes[:v.n])
}

// Add returns v + o lane-wise.
func (v Vec[T]) Add(o Vec[T]) Vec[T] {
	for i := range v.n {
		v.lanes[i] += o.lanes[i]
	}
	return v
}

// Sub returns v - o lane-wise.
func (v Vec[T]) Sub(o Vec[T]) Vec[T] {
	for i := range v.n {
		v.lanes[i] -= o.lanes[i]
	}
	return v
}

// Mul returns v * o lane-wise.
func (v Vec[T]) Mul(o Vec[T]) Vec[T] {
	for i := range v.n {
		v.lanes[i] *= o.lanes[i]
	}
	return v
}

// Div returns v / o lane-wise.
func (v Vec[T]) Div(o Vec[T]) Vec[T] {
	for i := range v.n {
		v.lanes[i] /= o.lanes[i]
	}
	return v
}

// Scale returns v * s.
func (v Vec[T]) Scale(s T) Vec[T] {
	for i := range v.n {
		v.lanes[i] *= s
	}
	return v
}

// Neg returns -v.
func (v Vec[T]) Neg() Vec[T] {
	for i := range v.n {
		v.lanes[i] = -v.lanes[i]
	}
	return v
}

// Abs returns |v| lane-wise.
func (v Vec[T]) Abs() Vec[T] {
	for i := range v.n {
		v.lanes[i] = abs(v.lanes[i])
	}
	return v
}

// Max returns the lane-wise maximum of v and o.
func (v Vec[T]) Max(o Vec[T]) Vec[T] {
	for i := range v.n {
		if o.lanes[i] > v.lanes[i] {
			v.lanes[i] = o.lanes[i]
		}
	}
	return v
}

// Min returns the lane-wise minimum of v and o.
func (v Vec[T]) Min(o Vec[T]) Vec[T] {
	for i := range v.n {
		if o.lanes[i] < v.lanes[i] {
			v.lanes[i] = o.lanes[i]
		}
	}
	return v
}

// Map applies f to every lane. It is the escape hatch for transcendental
// functions that have no lane-wise instruction.
func (v Vec[T]) Map(f func(T) T) Vec[T] {
	for i := range v.n {
		v.lanes[i] = f(v.lanes[i])
	}
	return v
}

// ReduceAdd collapses the lanes by addition.
func (v Vec[T]) ReduceAdd() T {
	var sum T
	for i := range v.n {
		sum += v.lanes[i]
	}
	return sum
}

// ReduceMax collapses the lanes by maximum.
func (v Vec[T]) ReduceMax() T {
	m := v.lanes[0]
	for i := 1; i < v.n; i++ {
		if v.lanes[i] > m {
			m = v.lanes[i]
		}
	}
	return m
}

// Horizontal collapses a vector to a scalar. The operator must match the
// reduction it finishes: sums need HorizontalAdd, maxima HorizontalMax.
type Horizontal[T Float] func(Vec[T]) T

// HorizontalAdd sums the lanes.
func HorizontalAdd[T Float](v Vec[T]) T { return v.ReduceAdd() }

// HorizontalMax returns the largest lane.
func HorizontalMax[T Float](v Vec[T]) T { return v.ReduceMax() }

func abs[T Float](x T) T {
	return T(math.Abs(float64(x)))
}
