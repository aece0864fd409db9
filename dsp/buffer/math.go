package buffer

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-modal/dsp/vecops"
)

// CopyChannel copies channel srcCh of src into channel dstCh of dst over
// the shorter of the two active lengths.
func CopyChannel[T vecops.Float](dst *Buffer[T], dstCh int, src *Buffer[T], srcCh int) {
	s := src.ReadPointer(srcCh)
	d := dst.WritePointer(dstCh)
	copy(d, s)
}

// AddChannel adds gain × channel srcCh of src into channel dstCh of dst
// over the shorter of the two active lengths.
func AddChannel[T vecops.Float](dst *Buffer[T], dstCh int, src *Buffer[T], srcCh int, gain T) {
	s := src.ReadPointer(srcCh)
	d := dst.WritePointer(dstCh)
	n := min(len(s), len(d))
	addScaled(d[:n], s[:n], gain)
}

// ApplyGain multiplies the active region of b by gain.
func ApplyGain[T vecops.Float](b *Buffer[T], gain T) {
	if gain == 1 {
		return
	}
	if gain == 0 {
		b.Clear()
		return
	}

	for _, ch := range b.ArrayOfWritePointers() {
		scale(ch, gain)
	}
}

// SumToMono replaces channel 0 of b with the average of all its active
// channels.
func SumToMono[T vecops.Float](b *Buffer[T]) {
	n := b.NumChannels()
	if n < 2 {
		return
	}

	chans := b.ArrayOfWritePointers()
	for _, ch := range chans[1:] {
		addScaled(chans[0], ch, 1)
	}
	scale(chans[0], 1/T(n))
}

// addScaled sets dst[i] += gain*src[i]. Unity-gain float64 data runs on the
// block kernels of algo-vecmath.
func addScaled[T vecops.Float](dst, src []T, gain T) {
	if d, ok := any(dst).([]float64); ok && gain == 1 {
		vecmath.AddBlockInPlace(d, any(src).([]float64))
		return
	}

	for i := range dst {
		dst[i] += gain * src[i]
	}
}

func scale[T vecops.Float](dst []T, gain T) {
	if d, ok := any(dst).([]float64); ok {
		vecmath.ScaleBlockInPlace(d, float64(gain))
		return
	}

	for i := range dst {
		dst[i] *= gain
	}
}
