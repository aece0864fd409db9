//go:build !amd64 && !arm64

package vecops

import "github.com/cwbudde/algo-modal/internal/cpu"

// Other platforms get a 16-byte emulated register. Detection here never
// reports AVX, so the wide entry is reachable only through forced features.
var tiers = [2]tierEntry{
	{
		arch:     Arch{Tier: TierBase, Name: "generic", RegisterBytes: 16, Alignment: 16},
		level:    cpu.SIMDNone,
		priority: 0,
	},
	{
		arch:     Arch{Tier: TierAdvanced, Name: "generic-wide", RegisterBytes: 32, Alignment: 32},
		level:    cpu.SIMDAVX,
		priority: 20,
	},
}
