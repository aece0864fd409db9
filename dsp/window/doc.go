// Package window generates the tapering windows applied before spectral
// analysis.
package window
