// Package vecops is the vectorized numeric kernel engine behind the modal
// resonator bank.
//
// Kernels operate on plain slices and never allocate. Each call picks a code
// path from three facts known at entry: the block length, the lane width of
// the selected tier, and the alignment of every slice operand.
//
//   - Blocks shorter than two full vectors run a plain scalar loop.
//   - Longer blocks run floor(n/lanes) vector operations and finish the tail
//     with the scalar loop.
//   - Each operand is classified once as aligned or unaligned, and the
//     matching load/store pair is taken from a small dispatch table.
//   - Single-source reductions whose input starts misaligned peel a scalar
//     prefix until the slice is aligned, then continue vectorized.
//
// # Tiers
//
// Two tiers exist per platform. Base is always usable; Advanced doubles the
// register width on amd64 when the CPU reports AVX. Tier selection is held
// by an explicit Capabilities value resolved once at startup with Probe and
// handed to every Kernels instance, rather than hidden in a global.
//
// # Vector values
//
// Vec is a register-sized group of lanes advanced together by one
// operation; Complex pairs two of them. The modal package builds its
// lane-packed resonators from these.
package vecops
