package vecops

import "math"

// CountNaNs returns the number of NaN elements in src. It is meant for
// checks outside the audio path; the kernels themselves let NaN propagate.
func (k *Kernels[T]) CountNaNs(src []T) int {
	count := 0
	for _, x := range src {
		if math.IsNaN(float64(x)) {
			count++
		}
	}
	return count
}

// CountInfs returns the number of infinite elements in src.
func (k *Kernels[T]) CountInfs(src []T) int {
	count := 0
	for _, x := range src {
		if math.IsInf(float64(x), 0) {
			count++
		}
	}
	return count
}
