//go:build !amd64 && !arm64

package cpu

import "runtime"

// detectFeaturesImpl reports no vector extensions; only the base tier runs.
func detectFeaturesImpl() Features {
	return Features{
		Architecture: runtime.GOARCH,
	}
}
