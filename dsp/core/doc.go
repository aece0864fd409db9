// Package core holds the processing settings and unit conversions shared by
// the processors and tools in this module.
package core
