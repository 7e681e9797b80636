package spectrum

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-specband/analyzer"
	"github.com/cwbudde/algo-vecmath"
)

var errNotFilled = errors.New("spectrum: ring buffer not yet filled")

type config struct {
	window []float64
}

// Option configures a [Source].
type Option func(*config)

// WithWindow sets the window coefficients applied to each analysis
// frame before the FFT. The coefficients must match the FFT size.
// Without a window the frame is transformed as-is (rectangular).
func WithWindow(coeffs []float64) Option {
	return func(c *config) {
		c.window = coeffs
	}
}

// Source pulls magnitude spectra from a pair of time-domain sample
// streams. It implements [analyzer.SpectrumSource].
//
// Fetching fails until each channel's ring buffer has been filled
// once, so the analyzer never ingests a partial frame.
type Source struct {
	fftSize int
	window  []float64

	plan *algofft.Plan[complex128]

	rings  [2][]float64
	write  [2]int
	filled [2]int

	frame  []float64
	input  []complex128
	output []complex128
	re     []float64
	im     []float64
	mags   []float64
}

var _ analyzer.SpectrumSource = (*Source)(nil)

// New creates a stereo magnitude source with the given FFT size, which
// must be a positive power of two.
func New(fftSize int, opts ...Option) (*Source, error) {
	if fftSize <= 0 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("spectrum fft size must be a positive power of two: %d", fftSize)
	}

	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.window != nil && len(cfg.window) != fftSize {
		return nil, fmt.Errorf("spectrum window length mismatch: got=%d want=%d", len(cfg.window), fftSize)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum init fft plan: %w", err)
	}

	s := &Source{
		fftSize: fftSize,
		window:  cfg.window,
		plan:    plan,

		frame:  make([]float64, fftSize),
		input:  make([]complex128, fftSize),
		output: make([]complex128, fftSize),
		re:     make([]float64, fftSize),
		im:     make([]float64, fftSize),
		mags:   make([]float64, fftSize),
	}

	for ch := range s.rings {
		s.rings[ch] = make([]float64, fftSize)
	}

	return s, nil
}

// FFTSize returns the analysis frame length.
func (s *Source) FFTSize() int { return s.fftSize }

// Push appends time-domain samples to one channel's ring buffer.
func (s *Source) Push(ch analyzer.Channel, samples []float64) error {
	idx, err := channelIndex(ch)
	if err != nil {
		return err
	}

	for _, v := range samples {
		s.rings[idx][s.write[idx]] = v

		s.write[idx]++
		if s.write[idx] >= s.fftSize {
			s.write[idx] = 0
		}

		if s.filled[idx] < s.fftSize {
			s.filled[idx]++
		}
	}

	return nil
}

// PushStereo appends interleaved left/right samples to both channels.
// The slice length must be even.
func (s *Source) PushStereo(interleaved []float64) error {
	if len(interleaved)%2 != 0 {
		return fmt.Errorf("spectrum interleaved stereo length must be even: %d", len(interleaved))
	}

	for i := 0; i < len(interleaved); i += 2 {
		if err := s.Push(analyzer.ChannelLeft, interleaved[i:i+1]); err != nil {
			return err
		}
		if err := s.Push(analyzer.ChannelRight, interleaved[i+1:i+2]); err != nil {
			return err
		}
	}

	return nil
}

// Reset clears both ring buffers; fetching fails again until they have
// been refilled.
func (s *Source) Reset() {
	for ch := range s.rings {
		for i := range s.rings[ch] {
			s.rings[ch][i] = 0
		}
		s.write[ch] = 0
		s.filled[ch] = 0
	}
}

// FetchSpectrum fills dst with the leading magnitude bins of the given
// channel's current analysis frame. dst must not exceed the FFT size.
func (s *Source) FetchSpectrum(dst []float64, ch analyzer.Channel) error {
	idx, err := channelIndex(ch)
	if err != nil {
		return err
	}

	if s.filled[idx] < s.fftSize {
		return fmt.Errorf("%w: channel %d has %d of %d samples", errNotFilled, ch, s.filled[idx], s.fftSize)
	}

	if len(dst) > s.fftSize {
		return fmt.Errorf("spectrum destination length %d exceeds fft size %d", len(dst), s.fftSize)
	}

	// Unroll the ring oldest-first so the frame is in time order.
	read := s.write[idx]
	for i := 0; i < s.fftSize; i++ {
		s.frame[i] = s.rings[idx][read]

		read++
		if read >= s.fftSize {
			read = 0
		}
	}

	if s.window != nil {
		vecmath.MulBlockInPlace(s.frame, s.window)
	}

	for i, v := range s.frame {
		s.input[i] = complex(v, 0)
	}

	if err := s.plan.Forward(s.output, s.input); err != nil {
		return fmt.Errorf("spectrum forward fft: %w", err)
	}

	for i, c := range s.output {
		s.re[i] = real(c)
		s.im[i] = imag(c)
	}

	vecmath.Magnitude(s.mags, s.re, s.im)
	copy(dst, s.mags[:len(dst)])

	return nil
}

func channelIndex(ch analyzer.Channel) (int, error) {
	switch ch {
	case analyzer.ChannelLeft:
		return 0, nil
	case analyzer.ChannelRight:
		return 1, nil
	default:
		return 0, fmt.Errorf("spectrum channel invalid: %d", ch)
	}
}
