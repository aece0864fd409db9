// Package resonance measures the two properties that define a resonant
// mode in a rendered signal: where it rings and how fast it dies.
//
// PeakFrequency locates the strongest spectral peak with a Hann-windowed
// FFT and parabolic interpolation between bins. DecayTime fits a line to
// the log of the frame-wise RMS envelope and reports the exponential time
// constant.
package resonance
