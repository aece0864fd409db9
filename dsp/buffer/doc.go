// Package buffer provides the fixed-capacity, multi-channel sample buffer
// that backs real-time audio data, plus a pool for offline rendering.
//
// A Buffer separates allocated capacity from the active region. Storage is
// allocated only by New and SetMaxSize; SetCurrentSize moves the active
// region within that capacity without allocating, so it is safe to call on
// every block. The active region reads as zero until written, and Clear
// skips the fill when nothing has been written since the last one.
//
// Every channel starts on a vecops.MaxAlignment boundary, so channel slices
// take the aligned load and store forms of the kernel engine.
package buffer
