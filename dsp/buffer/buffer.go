package buffer

import (
	"unsafe"

	"github.com/cwbudde/algo-modal/dsp/vecops"
)

// Buffer holds per-channel contiguous sample storage with a fixed capacity
// and a variable active region.
//
// Buffer is not safe for concurrent use. SetMaxSize must not run while
// another goroutine processes the buffer.
type Buffer[T vecops.Float] struct {
	channels [][]T
	views    [][]T

	numChannels int
	numSamples  int
	cleared     bool
}

// New returns a buffer with capacity for channels×samples, all of it
// active and zeroed.
func New[T vecops.Float](channels, samples int) *Buffer[T] {
	b := &Buffer[T]{}
	b.SetMaxSize(channels, samples)
	return b
}

// SetMaxSize reallocates the storage. Both counts are clamped to at least 1.
// The active region is reset and then grown to the full new capacity, so
// the whole buffer is active and zero afterwards.
func (b *Buffer[T]) SetMaxSize(channels, samples int) {
	channels = max(channels, 1)
	samples = max(samples, 1)

	stride := channelStride[T](samples)
	data := vecops.MakeAligned[T](channels*stride, vecops.MaxAlignment)

	b.channels = make([][]T, channels)
	for ch := range b.channels {
		start := ch * stride
		b.channels[ch] = data[start : start+samples : start+samples]
	}
	b.views = make([][]T, channels)

	b.numChannels = 0
	b.numSamples = 0
	b.cleared = true

	b.SetCurrentSize(channels, samples)
}

// channelStride rounds samples up so every channel starts on a
// MaxAlignment boundary.
func channelStride[T vecops.Float](samples int) int {
	var zero T
	perBoundary := int(vecops.MaxAlignment / unsafe.Sizeof(zero))
	return (samples + perBoundary - 1) / perBoundary * perBoundary
}

// SetCurrentSize changes the active region without reallocating. Samples
// and channels that become active are zero-filled; shrinking leaves storage
// untouched. Sizes beyond the capacity panic.
func (b *Buffer[T]) SetCurrentSize(channels, samples int) {
	if channels < 0 || samples < 0 || channels > len(b.channels) || samples > b.MaxSamples() {
		panic("buffer: size exceeds allocated capacity")
	}

	if samples > b.numSamples {
		for ch := range b.numChannels {
			clear(b.channels[ch][b.numSamples:samples])
		}
	}

	for ch := b.numChannels; ch < channels; ch++ {
		clear(b.channels[ch][:samples])
	}

	b.numChannels = channels
	b.numSamples = samples
}

// WritePointer returns the active samples of channel ch for writing. The
// buffer stops assuming it is zero.
func (b *Buffer[T]) WritePointer(ch int) []T {
	b.checkChannel(ch)
	b.cleared = false
	return b.channels[ch][:b.numSamples]
}

// ReadPointer returns the active samples of channel ch. Callers must not
// write through it; use WritePointer for that.
func (b *Buffer[T]) ReadPointer(ch int) []T {
	b.checkChannel(ch)
	return b.channels[ch][:b.numSamples]
}

// ArrayOfWritePointers returns the active samples of every active channel.
// The outer slice is owned by the buffer and reused by the next call.
func (b *Buffer[T]) ArrayOfWritePointers() [][]T {
	b.cleared = false
	return b.fillViews()
}

// ArrayOfReadPointers is the read-only counterpart of ArrayOfWritePointers.
func (b *Buffer[T]) ArrayOfReadPointers() [][]T {
	return b.fillViews()
}

func (b *Buffer[T]) fillViews() [][]T {
	views := b.views[:b.numChannels]
	for ch := range views {
		views[ch] = b.channels[ch][:b.numSamples]
	}
	return views
}

func (b *Buffer[T]) checkChannel(ch int) {
	if ch < 0 || ch >= b.numChannels {
		panic("buffer: channel index out of range")
	}
}

// Clear zeroes the active region. It does nothing when the region is known
// to be zero already.
func (b *Buffer[T]) Clear() {
	if b.cleared {
		return
	}

	for ch := range b.numChannels {
		clear(b.channels[ch][:b.numSamples])
	}
	b.cleared = true
}

// HasBeenCleared reports whether the active region is known to be zero.
func (b *Buffer[T]) HasBeenCleared() bool { return b.cleared }

// NumChannels returns the active channel count.
func (b *Buffer[T]) NumChannels() int { return b.numChannels }

// NumSamples returns the active sample count.
func (b *Buffer[T]) NumSamples() int { return b.numSamples }

// MaxChannels returns the allocated channel count.
func (b *Buffer[T]) MaxChannels() int { return len(b.channels) }

// MaxSamples returns the allocated samples per channel.
func (b *Buffer[T]) MaxSamples() int {
	if len(b.channels) == 0 {
		return 0
	}
	return len(b.channels[0])
}
