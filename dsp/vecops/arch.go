package vecops

import (
	"unsafe"

	"github.com/cwbudde/algo-modal/internal/cpu"
)

// Float is the set of element types the kernels accept.
type Float interface {
	~float32 | ~float64
}

// Tier identifies one of the two capability levels.
type Tier int

const (
	// TierBase is always available.
	TierBase Tier = iota

	// TierAdvanced is selected at runtime when the hardware supports it.
	TierAdvanced
)

// String returns the tier name.
func (t Tier) String() string {
	if t == TierAdvanced {
		return "advanced"
	}
	return "base"
}

// MaxLanes is the widest lane count any tier produces (32-byte registers
// of float32).
const MaxLanes = 8

// MaxAlignment is the strictest alignment any tier requires, in bytes.
const MaxAlignment uintptr = 32

// Arch describes a vector tier: its register width and the address
// boundary aligned loads and stores require.
type Arch struct {
	Tier          Tier
	Name          string
	RegisterBytes int
	Alignment     uintptr
}

// LaneWidth returns the number of T lanes in one register of a.
func LaneWidth[T Float](a Arch) int {
	var zero T
	return a.RegisterBytes / int(unsafe.Sizeof(zero))
}

// tierEntry binds an Arch to the instruction set it needs. Entries are
// consulted from highest priority down; the first supported one wins.
type tierEntry struct {
	arch     Arch
	level    cpu.SIMDLevel
	priority int
}

// selectTier returns the best tier supported by features.
func selectTier(features cpu.Features) Arch {
	best := tiers[0]
	for _, e := range tiers[1:] {
		if e.priority > best.priority && cpu.Supports(features, e.level) {
			best = e
		}
	}
	return best.arch
}

var (
	// Base is the always-available tier of this platform.
	Base = tiers[0].arch

	// Advanced is the runtime-selected tier of this platform.
	Advanced = tiers[1].arch
)
