package vecops

import (
	"sync/atomic"

	"github.com/cwbudde/algo-modal/internal/cpu"
)

// Capabilities records whether the advanced tier exists on this machine and
// whether callers currently want it.
//
// The selection is written during configuration and read by every kernel
// call. It is stored atomically, so a write racing a block in flight makes
// that block run on either tier; both produce equivalent results.
type Capabilities struct {
	available   bool
	useAdvanced atomic.Bool
}

// Probe inspects the CPU once and returns capabilities with the advanced
// tier enabled whenever it is available.
func Probe() *Capabilities {
	return NewCapabilities(selectTier(cpu.DetectFeatures()).Tier == TierAdvanced)
}

// NewCapabilities returns capabilities for a machine on which the advanced
// tier is (or is not) available. The advanced tier starts selected when
// available.
func NewCapabilities(advancedAvailable bool) *Capabilities {
	c := &Capabilities{available: advancedAvailable}
	c.useAdvanced.Store(advancedAvailable)
	return c
}

// AdvancedTierAvailable reports the probed hardware support.
func (c *Capabilities) AdvancedTierAvailable() bool {
	return c != nil && c.available
}

// SetUseAdvancedTier selects or deselects the advanced tier. Selecting it on
// hardware without support keeps the base tier. It is a no-op on a nil
// receiver.
func (c *Capabilities) SetUseAdvancedTier(use bool) {
	if c == nil {
		return
	}
	c.useAdvanced.Store(use && c.available)
}

// UsingAdvancedTier reports the current selection. A nil receiver reports
// false.
func (c *Capabilities) UsingAdvancedTier() bool {
	return c != nil && c.useAdvanced.Load()
}

// Arch returns the tier kernels run on right now.
func (c *Capabilities) Arch() Arch {
	if c.UsingAdvancedTier() {
		return Advanced
	}
	return Base
}
