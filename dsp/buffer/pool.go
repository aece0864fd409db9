package buffer

import (
	"sync"

	"github.com/cwbudde/algo-modal/dsp/vecops"
)

// Pool provides sync.Pool-based Buffer reuse for offline rendering, where
// buffers of varying shape are needed per job.
type Pool[T vecops.Float] struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool[T vecops.Float]() *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return &Buffer[T]{}
			},
		},
	}
}

// Get returns a buffer whose active region is channels×samples and zero.
// Storage is reused when the pooled buffer is large enough. Callers must
// return it via Put when done.
func (p *Pool[T]) Get(channels, samples int) *Buffer[T] {
	b := p.pool.Get().(*Buffer[T])
	if b.MaxChannels() < channels || b.MaxSamples() < samples {
		b.SetMaxSize(channels, samples)
	}

	b.SetCurrentSize(0, 0)
	b.SetCurrentSize(channels, samples)
	b.cleared = true
	return b
}

// Put returns a Buffer to the pool for reuse.
// The caller must not use the buffer after calling Put.
func (p *Pool[T]) Put(b *Buffer[T]) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}
