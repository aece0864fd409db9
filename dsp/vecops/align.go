package vecops

import "unsafe"

// Alignment classifies one memory operand against a tier's boundary.
type Alignment uint8

const (
	// Unaligned operands must use the unaligned load and store forms.
	Unaligned Alignment = iota

	// Aligned operands start on the tier's alignment boundary.
	Aligned
)

// String returns "aligned" or "unaligned".
func (a Alignment) String() string {
	if a == Aligned {
		return "aligned"
	}
	return "unaligned"
}

func addrOf[T Float](s []T) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(s)))
}

// AlignmentOf classifies the first element of s against a's alignment.
// An empty slice with a nil backing array counts as aligned.
func AlignmentOf[T Float](s []T, a Arch) Alignment {
	if addrOf(s)%a.Alignment == 0 {
		return Aligned
	}
	return Unaligned
}

// IsAligned reports whether s starts on a's alignment boundary.
func IsAligned[T Float](s []T, a Arch) bool {
	return AlignmentOf(s, a) == Aligned
}

// alignedOffset returns the number of leading elements of s to skip before
// the remainder starts on a's boundary. ok is false when no element of s can
// reach the boundary, either because the element size does not divide the
// misalignment or because the boundary lies past the end of the slice.
func alignedOffset[T Float](s []T, a Arch) (k int, ok bool) {
	var zero T
	size := unsafe.Sizeof(zero)

	mis := addrOf(s) % a.Alignment
	if mis == 0 {
		return 0, true
	}

	gap := a.Alignment - mis
	if gap%size != 0 {
		return 0, false
	}

	k = int(gap / size)
	if k >= len(s) {
		return 0, false
	}

	return k, true
}

// MakeAligned returns a zeroed slice of n elements whose first element sits
// on an alignment-byte boundary. alignment must be a power of two.
func MakeAligned[T Float](n int, alignment uintptr) []T {
	if alignment == 0 || alignment&(alignment-1) != 0 {
		panic("vecops: alignment must be a power of two")
	}

	var zero T
	size := unsafe.Sizeof(zero)

	pad := int(alignment / size)
	raw := make([]T, n+pad)

	off := 0
	if mis := addrOf(raw) % alignment; mis != 0 {
		off = int((alignment - mis) / size)
	}

	return raw[off : off+n : off+n]
}

type (
	loadFunc[T Float]  func(src []T, width int) Vec[T]
	storeFunc[T Float] func(dst []T, v Vec[T])
)

// loaderFor resolves the load implementation for one operand.
func loaderFor[T Float](al Alignment) loadFunc[T] {
	return [...]loadFunc[T]{
		Unaligned: loadUnaligned[T],
		Aligned:   loadAligned[T],
	}[al]
}

// storerFor resolves the store implementation for one operand.
func storerFor[T Float](al Alignment) storeFunc[T] {
	return [...]storeFunc[T]{
		Unaligned: storeUnaligned[T],
		Aligned:   storeAligned[T],
	}[al]
}

func loadUnaligned[T Float](src []T, width int) Vec[T] {
	return LoadVec(src[:width])
}

func loadAligned[T Float](src []T, width int) Vec[T] {
	checkAligned(src, width)
	return LoadVec(src[:width])
}

func storeUnaligned[T Float](dst []T, v Vec[T]) {
	v.Store(dst)
}

func storeAligned[T Float](dst []T, v Vec[T]) {
	checkAligned(dst, v.n)
	v.Store(dst)
}

// checkAligned enforces the register boundary that aligned access assumes.
func checkAligned[T Float](s []T, width int) {
	var zero T
	reg := uintptr(width) * unsafe.Sizeof(zero)
	if addrOf(s)%reg != 0 {
		panic("vecops: aligned access on misaligned address")
	}
}
