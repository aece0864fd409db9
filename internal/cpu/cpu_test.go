package cpu

import (
	"runtime"
	"testing"
)

func TestDetectFeaturesReportsArchitecture(t *testing.T) {
	ResetDetection()
	defer ResetDetection()

	f := DetectFeatures()
	if f.Architecture != runtime.GOARCH {
		t.Fatalf("Architecture = %q, want %q", f.Architecture, runtime.GOARCH)
	}

	if runtime.GOARCH == "amd64" && !f.HasSSE2 {
		t.Fatal("amd64 must report SSE2")
	}
}

func TestForcedFeaturesOverrideDetection(t *testing.T) {
	defer ResetDetection()

	SetForcedFeatures(Features{HasAVX: true, Architecture: "test"})

	f := DetectFeatures()
	if !f.HasAVX || f.Architecture != "test" {
		t.Fatalf("forced features not returned: %+v", f)
	}

	ResetDetection()

	if got := DetectFeatures(); got.Architecture != runtime.GOARCH {
		t.Fatalf("after reset Architecture = %q, want %q", got.Architecture, runtime.GOARCH)
	}
}

func TestSupports(t *testing.T) {
	tests := []struct {
		name     string
		features Features
		level    SIMDLevel
		want     bool
	}{
		{"none always", Features{}, SIMDNone, true},
		{"sse2 present", Features{HasSSE2: true}, SIMDSSE2, true},
		{"avx missing", Features{HasSSE2: true}, SIMDAVX, false},
		{"avx present", Features{HasSSE2: true, HasAVX: true}, SIMDAVX, true},
		{"force base hides avx", Features{HasAVX: true, ForceBase: true}, SIMDAVX, false},
		{"force base keeps none", Features{ForceBase: true}, SIMDNone, true},
		{"neon", Features{HasNEON: true}, SIMDNEON, true},
		{"unknown level", Features{HasAVX: true}, SIMDLevel(99), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Supports(tt.features, tt.level); got != tt.want {
				t.Fatalf("Supports(%+v, %v) = %v, want %v", tt.features, tt.level, got, tt.want)
			}
		})
	}
}

func TestSIMDLevelString(t *testing.T) {
	if SIMDAVX.String() != "AVX" || SIMDLevel(42).String() != "Unknown" {
		t.Fatalf("unexpected names: %s %s", SIMDAVX, SIMDLevel(42))
	}
}
