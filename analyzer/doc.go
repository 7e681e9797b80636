// Package analyzer implements a real-time spectral-band analyzer.
//
// The analyzer consumes frequency-domain magnitude samples for a stereo
// pair of channels and aggregates them into a small number of
// logarithmically spaced bands. Each update runs five stages in order:
// sample ingestion, band aggregation, temporal smoothing, adaptive
// normalization, and amplitude aggregation.
//
// The package intentionally does not implement FFT, windowing, audio
// decoding, or playback. Magnitude spectra are pulled from an external
// [SpectrumSource] collaborator, or handed in directly via
// [Analyzer.Process].
//
// The analyzer is single-threaded, buffer-oriented, and not thread-safe.
package analyzer
