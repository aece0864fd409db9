//go:build arm64

package vecops

import "github.com/cwbudde/algo-modal/internal/cpu"

// NEON is the only vector width on arm64, so both tiers share it.
var tiers = [2]tierEntry{
	{
		arch:     Arch{Tier: TierBase, Name: "neon", RegisterBytes: 16, Alignment: 16},
		level:    cpu.SIMDNone,
		priority: 10,
	},
	{
		arch:     Arch{Tier: TierAdvanced, Name: "neon", RegisterBytes: 16, Alignment: 16},
		level:    cpu.SIMDNEON,
		priority: 15,
	},
}
