package vecops

// The primitives below are the only place that decides between the scalar
// and vector paths. Every exported kernel is a pair of operators handed to
// one of them, so both paths always compute the same function.

// UnaryOp writes op(src[i]) to dst[i] for every i < len(dst).
//
// Lengths under two registers run the scalar loop. Longer inputs run whole
// registers through vecOp and finish the remainder through scalarOp. Loads
// and stores are resolved once per call from the alignment of each operand.
func UnaryOp[T Float](a Arch, dst, src []T, scalarOp func(T) T, vecOp func(Vec[T]) Vec[T]) {
	n := len(dst)
	if len(src) < n {
		panic("vecops: source shorter than destination")
	}

	w := LaneWidth[T](a)
	if n < 2*w {
		for i := range n {
			dst[i] = scalarOp(src[i])
		}
		return
	}

	load := loaderFor[T](AlignmentOf(src, a))
	store := storerFor[T](AlignmentOf(dst, a))

	i := 0
	for ; i+w <= n; i += w {
		store(dst[i:], vecOp(load(src[i:], w)))
	}

	for ; i < n; i++ {
		dst[i] = scalarOp(src[i])
	}
}

// BinaryOp writes op(x[i], y[i]) to dst[i] for every i < len(dst). The three
// operands are classified independently.
func BinaryOp[T Float](a Arch, dst, x, y []T, scalarOp func(T, T) T, vecOp func(Vec[T], Vec[T]) Vec[T]) {
	n := len(dst)
	if len(x) < n || len(y) < n {
		panic("vecops: operand shorter than destination")
	}

	w := LaneWidth[T](a)
	if n < 2*w {
		for i := range n {
			dst[i] = scalarOp(x[i], y[i])
		}
		return
	}

	loadX := loaderFor[T](AlignmentOf(x, a))
	loadY := loaderFor[T](AlignmentOf(y, a))
	store := storerFor[T](AlignmentOf(dst, a))

	i := 0
	for ; i+w <= n; i += w {
		store(dst[i:], vecOp(loadX(x[i:], w), loadY(y[i:], w)))
	}

	for ; i < n; i++ {
		dst[i] = scalarOp(x[i], y[i])
	}
}

// Reduce folds src into init with scalarOp, or with vecOp on whole registers
// collapsed by horizontal. The seed occupies lane 0 of the vector
// accumulator only; the remaining lanes start at zero. horizontal must match
// the fold: HorizontalAdd for sums, HorizontalMax for maxima.
//
// A misaligned src is first advanced element by element through scalarOp
// until it reaches the boundary, so the vector path only issues aligned
// loads. When the boundary is unreachable the unaligned loads are used.
func Reduce[T Float](a Arch, src []T, init T, scalarOp func(acc, x T) T, vecOp func(acc, x Vec[T]) Vec[T], horizontal Horizontal[T]) T {
	n := len(src)
	w := LaneWidth[T](a)

	if n < 2*w {
		acc := init
		for _, x := range src {
			acc = scalarOp(acc, x)
		}
		return acc
	}

	al := AlignmentOf(src, a)
	if al == Unaligned {
		if k, ok := alignedOffset(src, a); ok {
			acc := init
			for _, x := range src[:k] {
				acc = scalarOp(acc, x)
			}
			return Reduce(a, src[k:], acc, scalarOp, vecOp, horizontal)
		}
	}

	load := loaderFor[T](al)
	acc := ZeroVec[T](w).WithLane(0, init)

	i := 0
	for ; i+w <= n; i += w {
		acc = vecOp(acc, load(src[i:], w))
	}

	result := horizontal(acc)
	for ; i < n; i++ {
		result = scalarOp(result, src[i])
	}

	return result
}

// Reduce2 folds the pairs (x[i], y[i]) starting from zero. No seed is
// needed, so the accumulator starts as a zero register and no prefix is
// peeled; each operand picks its own load form.
func Reduce2[T Float](a Arch, x, y []T, scalarOp func(acc, x, y T) T, vecOp func(acc, x, y Vec[T]) Vec[T], horizontal Horizontal[T]) T {
	n := len(x)
	if len(y) < n {
		panic("vecops: operand length mismatch")
	}

	w := LaneWidth[T](a)

	var result T
	if n < 2*w {
		for i := range n {
			result = scalarOp(result, x[i], y[i])
		}
		return result
	}

	loadX := loaderFor[T](AlignmentOf(x, a))
	loadY := loaderFor[T](AlignmentOf(y, a))
	acc := ZeroVec[T](w)

	i := 0
	for ; i+w <= n; i += w {
		acc = vecOp(acc, loadX(x[i:], w), loadY(y[i:], w))
	}

	result = horizontal(acc)
	for ; i < n; i++ {
		result = scalarOp(result, x[i], y[i])
	}

	return result
}
