package analyzer

const (
	// baseDecayRate is the per-update decay step a freshly pushed
	// envelope starts from.
	baseDecayRate = 0.005
	// decayAcceleration multiplies the decay step on every decaying
	// update, producing the accelerating release.
	decayAcceleration = 1.2
)

// SpectrumSource supplies one channel's magnitude spectrum for the
// current frame. Fetch must fill dst entirely or return an error; on
// error the analyzer skips the update and leaves its state untouched.
type SpectrumSource interface {
	FetchSpectrum(dst []float64, ch Channel) error
}

// Analyzer aggregates magnitude spectra into logarithmically spaced
// bands with envelope smoothing and adaptive peak normalization.
//
// All state is allocated at construction and mutated in place; an
// update performs no allocation. The analyzer is not thread-safe.
type Analyzer struct {
	cfg    Config
	widths []int

	// Most recent magnitude arrays, overwritten wholesale on ingestion.
	leftSamples  []float64
	rightSamples []float64

	// Staging buffers so a failed fetch cannot clobber the last frame.
	stageLeft  []float64
	stageRight []float64

	rawBands                []float64
	smoothedBands           []float64
	decayRate               []float64
	bandPeak                []float64
	normalizedBands         []float64
	normalizedSmoothedBands []float64

	loudness                float64
	smoothedLoudness        float64
	loudnessPeak            float64
	amplitudeFactor         float64
	bufferedAmplitudeFactor float64

	currentSample  float64
	currentBand    int
	currentAverage float64

	ticksSinceUpdate int
}

// New creates an analyzer with the given options. It fails when the
// configured sample count cannot cover the bucket partition of the
// chosen band count.
func New(opts ...Option) (*Analyzer, error) {
	cfg := ApplyOptions(opts...)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	widths, err := bucketWidths(cfg.BandCount)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		cfg:    cfg,
		widths: widths,

		leftSamples:  make([]float64, cfg.SampleCount),
		rightSamples: make([]float64, cfg.SampleCount),
		stageLeft:    make([]float64, cfg.SampleCount),
		stageRight:   make([]float64, cfg.SampleCount),

		rawBands:                make([]float64, cfg.BandCount),
		smoothedBands:           make([]float64, cfg.BandCount),
		decayRate:               make([]float64, cfg.BandCount),
		bandPeak:                make([]float64, cfg.BandCount),
		normalizedBands:         make([]float64, cfg.BandCount),
		normalizedSmoothedBands: make([]float64, cfg.BandCount),
	}

	a.Reset()

	return a, nil
}

// Reset clears all runtime state, reseeds every band peak from the
// configured profile seed, and restores the base decay rates.
func (a *Analyzer) Reset() {
	for i := range a.leftSamples {
		a.leftSamples[i] = 0
		a.rightSamples[i] = 0
	}

	for i := range a.rawBands {
		a.rawBands[i] = 0
		a.smoothedBands[i] = 0
		a.decayRate[i] = baseDecayRate
		a.normalizedBands[i] = 0
		a.normalizedSmoothedBands[i] = 0
	}

	a.FetchProfile(a.cfg.ProfileSeed)

	a.loudness = 0
	a.smoothedLoudness = 0
	a.loudnessPeak = 0
	a.amplitudeFactor = 0
	a.bufferedAmplitudeFactor = 0

	a.currentSample = 0
	a.currentBand = 0
	a.currentAverage = 0

	a.ticksSinceUpdate = 0
}

// FetchProfile reseeds every band peak to the given value. The host
// may call this to reset normalization sensitivity, e.g. on a track
// change; band peaks then ratchet upward from the seed again.
func (a *Analyzer) FetchProfile(seed float64) {
	for i := range a.bandPeak {
		a.bandPeak[i] = seed
	}
}

// Tick admits or skips one external tick. Every FrameInterval-th tick
// pulls both channel spectra from src and runs a full update; skipped
// ticks return false with no error. With a frame interval of 0 the
// analyzer never auto-updates and every tick is a no-op; the host
// drives updates through [Analyzer.Process] instead.
func (a *Analyzer) Tick(src SpectrumSource) (bool, error) {
	if a.cfg.FrameInterval == 0 {
		return false, nil
	}

	a.ticksSinceUpdate++
	if a.ticksSinceUpdate < a.cfg.FrameInterval {
		return false, nil
	}

	if src == nil {
		return false, errNilSource
	}

	if err := src.FetchSpectrum(a.stageLeft, ChannelLeft); err != nil {
		return false, err
	}

	if err := src.FetchSpectrum(a.stageRight, ChannelRight); err != nil {
		return false, err
	}

	a.ticksSinceUpdate = 0

	copy(a.leftSamples, a.stageLeft)
	copy(a.rightSamples, a.stageRight)
	a.runUpdate()

	return true, nil
}

// Process ingests one frame of magnitude arrays directly and runs a
// full update. Both slices must have the configured sample count.
func (a *Analyzer) Process(left, right []float64) error {
	if err := validateSamples("left", left, a.cfg.SampleCount); err != nil {
		return err
	}

	if err := validateSamples("right", right, a.cfg.SampleCount); err != nil {
		return err
	}

	copy(a.leftSamples, left)
	copy(a.rightSamples, right)
	a.runUpdate()

	return nil
}

func (a *Analyzer) runUpdate() {
	a.aggregateBands()
	a.smoothBands()
	a.normalizeBands()
	a.aggregateAmplitude()
}

// aggregateBands partitions the spectrum into the configured buckets
// and computes one weighted average per band. Bin b carries weight
// b+1 across the whole sweep, and each bucket divides by the running
// total of bins consumed so far, not by its own width.
func (a *Analyzer) aggregateBands() {
	multiplier := a.cfg.FrequencyMultiplier
	pos := 0

	for i, width := range a.widths {
		sum := 0.0

		for j := 0; j < width; j++ {
			v := a.binValue(pos)
			sum += v * float64(pos+1)
			a.currentSample = v
			pos++
		}

		avg := sum / float64(pos)
		if multiplier != 0 {
			avg *= multiplier
		}

		a.rawBands[i] = avg
		a.currentBand = i
		a.currentAverage = avg
	}
}

func (a *Analyzer) binValue(pos int) float64 {
	switch a.cfg.ChannelMode {
	case ChannelModeLeft:
		return a.leftSamples[pos]
	case ChannelModeRight:
		return a.rightSamples[pos]
	default:
		return a.leftSamples[pos] + a.rightSamples[pos]
	}
}

// smoothBands updates the per-band envelope: attack snaps to the raw
// value and resets the decay rate, decay subtracts the current rate
// and then accelerates it.
func (a *Analyzer) smoothBands() {
	for i, raw := range a.rawBands {
		switch {
		case raw > a.smoothedBands[i]:
			a.smoothedBands[i] = raw
			a.decayRate[i] = baseDecayRate

		case raw < a.smoothedBands[i]:
			a.smoothedBands[i] -= a.decayRate[i]
			if a.cfg.ClampDecay && a.smoothedBands[i] < 0 {
				a.smoothedBands[i] = 0
			}
			a.decayRate[i] *= decayAcceleration
		}
	}
}

// normalizeBands ratchets the per-band peaks and divides raw and
// smoothed bands by them. A zero peak yields 0, never NaN or Inf.
func (a *Analyzer) normalizeBands() {
	for i, raw := range a.rawBands {
		if raw > a.bandPeak[i] {
			a.bandPeak[i] = raw
		}

		a.normalizedBands[i] = safeDiv(raw, a.bandPeak[i])
		a.normalizedSmoothedBands[i] = safeDiv(a.smoothedBands[i], a.bandPeak[i])
	}
}

// aggregateAmplitude sums the smoothed band energies into a loudness
// scalar normalized against its own running peak.
func (a *Analyzer) aggregateAmplitude() {
	loudSum := 0.0
	smoothSum := 0.0

	for i := range a.smoothedBands {
		loudSum += a.smoothedBands[i]
		smoothSum += a.normalizedSmoothedBands[i]
	}

	if loudSum > a.loudnessPeak {
		a.loudnessPeak = loudSum
	}

	a.loudness = safeDiv(loudSum, a.loudnessPeak)
	a.smoothedLoudness = safeDiv(smoothSum, a.loudnessPeak)

	a.amplitudeFactor = a.loudness

	if a.cfg.BufferedAmplitudeFromSmoothed {
		a.bufferedAmplitudeFactor = a.smoothedLoudness
	} else {
		a.bufferedAmplitudeFactor = a.loudness
	}
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// BandCount returns the configured number of bands.
func (a *Analyzer) BandCount() int { return a.cfg.BandCount }

// SampleCount returns the configured per-channel magnitude length.
func (a *Analyzer) SampleCount() int { return a.cfg.SampleCount }

// FrameInterval returns the configured tick admission interval.
func (a *Analyzer) FrameInterval() int { return a.cfg.FrameInterval }

// RawBands returns a copy of the current unsmoothed band averages.
func (a *Analyzer) RawBands() []float64 { return copyBands(a.rawBands) }

// SmoothedBands returns a copy of the current envelope band values.
func (a *Analyzer) SmoothedBands() []float64 { return copyBands(a.smoothedBands) }

// NormalizedBands returns a copy of the raw bands divided by their
// running peaks.
func (a *Analyzer) NormalizedBands() []float64 { return copyBands(a.normalizedBands) }

// NormalizedSmoothedBands returns a copy of the smoothed bands divided
// by the running raw peaks.
func (a *Analyzer) NormalizedSmoothedBands() []float64 { return copyBands(a.normalizedSmoothedBands) }

// BandPeaks returns a copy of the running per-band raw maxima.
func (a *Analyzer) BandPeaks() []float64 { return copyBands(a.bandPeak) }

// Loudness returns the smoothed band sum normalized by the loudness
// peak.
func (a *Analyzer) Loudness() float64 { return a.loudness }

// SmoothedLoudness returns the normalized smoothed band sum divided by
// the loudness peak.
func (a *Analyzer) SmoothedLoudness() float64 { return a.smoothedLoudness }

// AmplitudeFactor returns the global amplitude signal in 0..1.
func (a *Analyzer) AmplitudeFactor() float64 { return a.amplitudeFactor }

// BufferedAmplitudeFactor returns the buffered amplitude signal. See
// [WithBufferedAmplitudeFromSmoothed] for its numerator semantics.
func (a *Analyzer) BufferedAmplitudeFactor() float64 { return a.bufferedAmplitudeFactor }

// CurrentSample returns the last bin value visited by the aggregation
// sweep of the most recent update.
func (a *Analyzer) CurrentSample() float64 { return a.currentSample }

// CurrentFrequencyBand returns the last band index the aggregation
// sweep processed.
func (a *Analyzer) CurrentFrequencyBand() int { return a.currentBand }

// CurrentFrequencyAverageResult returns the last band average the
// aggregation sweep produced.
func (a *Analyzer) CurrentFrequencyAverageResult() float64 { return a.currentAverage }

func copyBands(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)

	return out
}
