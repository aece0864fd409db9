package testutil

import "unsafe"

// FixtureAlignment is the boundary used by Placed. It covers the strictest
// vector tier.
const FixtureAlignment = 32

// Placed returns a copy of data whose first element lies offset elements
// past a FixtureAlignment boundary. Offset 0 yields an aligned slice, any
// other offset smaller than the lane count yields a misaligned one.
func Placed[T Float](data []T, offset int) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	pad := FixtureAlignment / size

	raw := make([]T, len(data)+2*pad+offset)
	addr := int(uintptr(unsafe.Pointer(unsafe.SliceData(raw))))

	start := 0
	if mis := addr % FixtureAlignment; mis != 0 {
		start = (FixtureAlignment - mis) / size
	}
	start += offset

	out := raw[start : start+len(data) : start+len(data)]
	copy(out, data)
	return out
}

// Offsets are the element offsets exercised by alignment tests: aligned and
// one element past the boundary.
var Offsets = [2]int{0, 1}
