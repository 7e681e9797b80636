// Package spectrum provides an FFT-backed stereo magnitude source for
// the band analyzer.
//
// The package does not implement FFT or window generation itself. It
// maintains per-channel ring buffers of time-domain samples, applies
// caller-supplied window coefficients, and extracts magnitude spectra
// through an external FFT plan on demand.
package spectrum
