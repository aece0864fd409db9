package core

import (
	"sync/atomic"

	"github.com/cwbudde/algo-modal/dsp/vecops"
)

// LookupTable approximates a function of one variable over [min, max] by
// linear interpolation between equally spaced samples.
//
// The zero value is uninitialised; Process on it panics. Initialise must
// not run concurrently with Process.
type LookupTable[T vecops.Float] struct {
	initialised atomic.Bool

	lo, hi T
	scaler T
	offset T

	// numPoints samples plus a copy of the last one, so interpolation at
	// the upper bound never reads past the end.
	points []T
}

// NewLookupTable returns a table initialised for fn over [lo, hi].
func NewLookupTable[T vecops.Float](fn func(T) T, lo, hi T, numPoints int) *LookupTable[T] {
	t := &LookupTable[T]{}
	t.Initialise(fn, lo, hi, numPoints)
	return t
}

// Initialise samples fn at numPoints equally spaced inputs spanning
// [lo, hi], both ends included. It panics unless lo < hi and
// numPoints >= 2.
func (t *LookupTable[T]) Initialise(fn func(T) T, lo, hi T, numPoints int) {
	if !(lo < hi) {
		panic("core: lookup table range must satisfy min < max")
	}
	if numPoints < 2 {
		panic("core: lookup table needs at least two points")
	}

	last := T(numPoints - 1)
	points := make([]T, numPoints+1)
	for i := range numPoints {
		x := lo + (hi-lo)*T(i)/last
		points[i] = fn(clampTo(x, lo, hi))
	}
	points[numPoints] = points[numPoints-1]

	t.lo, t.hi = lo, hi
	t.scaler = last / (hi - lo)
	t.offset = -lo * t.scaler
	t.points = points
	t.initialised.Store(true)
}

// InitialiseOnce runs Initialise unless the table is already initialised
// and reports whether it ran. Of several concurrent callers exactly one
// initialises.
func (t *LookupTable[T]) InitialiseOnce(fn func(T) T, lo, hi T, numPoints int) bool {
	if t.initialised.Load() {
		return false
	}
	if !t.initialised.CompareAndSwap(false, true) {
		return false
	}
	t.Initialise(fn, lo, hi, numPoints)
	return true
}

// IsInitialised reports whether Initialise has run.
func (t *LookupTable[T]) IsInitialised() bool {
	return t.initialised.Load()
}

// Min returns the lower bound of the table range.
func (t *LookupTable[T]) Min() T { return t.lo }

// Max returns the upper bound of the table range.
func (t *LookupTable[T]) Max() T { return t.hi }

// NumPoints returns the number of sampled points.
func (t *LookupTable[T]) NumPoints() int { return max(len(t.points)-1, 0) }

// Process returns the interpolated value at x, clamped to the table range.
// NaN passes through.
func (t *LookupTable[T]) Process(x T) T {
	if x != x {
		return x
	}
	return t.ProcessUnchecked(clampTo(x, t.lo, t.hi))
}

// ProcessUnchecked returns the interpolated value at x, which must lie in
// [Min(), Max()]. Inputs outside the range index out of bounds.
func (t *LookupTable[T]) ProcessUnchecked(x T) T {
	pos := t.scaler*x + t.offset
	i := int(pos)
	frac := pos - T(i)

	a := t.points[i]
	return a + frac*(t.points[i+1]-a)
}

// ProcessBlock writes Process(src[i]) to dst[i]. dst and src may alias.
func (t *LookupTable[T]) ProcessBlock(dst, src []T) {
	if len(dst) < len(src) {
		panic("core: lookup table destination shorter than source")
	}
	for i, x := range src {
		dst[i] = t.Process(x)
	}
}

func clampTo[T vecops.Float](x, lo, hi T) T {
	return min(max(x, lo), hi)
}
