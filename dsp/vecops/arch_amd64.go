//go:build amd64

package vecops

import "github.com/cwbudde/algo-modal/internal/cpu"

// SSE2 is the x86-64 baseline; AVX doubles the register width.
var tiers = [2]tierEntry{
	{
		arch:     Arch{Tier: TierBase, Name: "sse2", RegisterBytes: 16, Alignment: 16},
		level:    cpu.SIMDNone,
		priority: 10,
	},
	{
		arch:     Arch{Tier: TierAdvanced, Name: "avx", RegisterBytes: 32, Alignment: 32},
		level:    cpu.SIMDAVX,
		priority: 20,
	},
}
