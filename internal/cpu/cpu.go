// Package cpu probes the vector instruction sets that decide which kernel
// tier may run on this machine.
//
// The probe runs once, on first use, and is cached for the lifetime of the
// process. Tests can pin a feature set with SetForcedFeatures to exercise a
// tier that the host does not have.
package cpu

import (
	"sync"
	"sync/atomic"
)

// SIMDLevel names an instruction set a kernel tier depends on.
type SIMDLevel int

const (
	// SIMDNone needs nothing beyond the Go compiler.
	SIMDNone SIMDLevel = iota

	// SIMDSSE2 is the 128-bit x86-64 baseline.
	SIMDSSE2

	// SIMDAVX is 256-bit x86-64 floating point.
	SIMDAVX

	// SIMDNEON is ARM Advanced SIMD (128-bit).
	SIMDNEON
)

// String returns a human-readable name for the level.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "None"
	case SIMDSSE2:
		return "SSE2"
	case SIMDAVX:
		return "AVX"
	case SIMDNEON:
		return "NEON"
	default:
		return "Unknown"
	}
}

// Features describes the CPU capabilities relevant to tier selection.
type Features struct {
	HasSSE2 bool
	HasAVX  bool
	HasAVX2 bool
	HasFMA  bool
	HasNEON bool

	// ForceBase hides every optional extension so only the base tier is
	// reported usable.
	ForceBase bool

	// Architecture is runtime.GOARCH of the probed machine.
	Architecture string
}

var (
	detected   Features
	detectOnce sync.Once
	detectMu   sync.Mutex

	forced atomic.Pointer[Features]
)

// DetectFeatures returns the cached features of the running CPU, or the
// forced set if one is installed.
func DetectFeatures() Features {
	if f := forced.Load(); f != nil {
		return *f
	}

	detectMu.Lock()
	defer detectMu.Unlock()

	detectOnce.Do(func() {
		detected = detectFeaturesImpl()
	})

	return detected
}

// SetForcedFeatures overrides hardware detection. Intended for tests.
func SetForcedFeatures(f Features) {
	forced.Store(&f)
}

// ResetDetection drops any forced features and the cached probe result.
func ResetDetection() {
	forced.Store(nil)

	detectMu.Lock()
	detectOnce = sync.Once{}
	detected = Features{}
	detectMu.Unlock()
}

// Supports reports whether features satisfy level.
func Supports(features Features, level SIMDLevel) bool {
	if level == SIMDNone {
		return true
	}

	if features.ForceBase {
		return false
	}

	switch level {
	case SIMDSSE2:
		return features.HasSSE2
	case SIMDAVX:
		return features.HasAVX
	case SIMDNEON:
		return features.HasNEON
	default:
		return false
	}
}
