// Package modal implements banks of damped complex resonators ("modes").
//
// Each mode is a one-pole complex filter
//
//	y[n] = a·x[n] + p·y[n-1],   p = r·e^{j·2π·f/fs}
//
// whose imaginary part is the output. A mode driven by an impulse rings as
// a sinusoid at f with an exponential envelope set by the pole radius r.
//
// Filter is a single mode. Group packs one mode per vector lane and
// advances all of them with one vector operation per sample. Bank owns a
// fixed array of groups, an active-mode count, and a mono render buffer,
// and renders blocks through the vecops kernel engine.
package modal
