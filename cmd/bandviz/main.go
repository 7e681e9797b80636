// Command bandviz renders the spectral band analyzer live in the
// terminal, driven by a synthetic stereo test signal.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwbudde/algo-specband/analyzer"
	"github.com/cwbudde/algo-specband/spectrum"
)

// CLI defines the command-line interface.
type CLI struct {
	Bands      int           `short:"b" default:"8" help:"Band count (8 or 64)."`
	FFTSize    int           `default:"2048" help:"Analysis FFT size (power of two)."`
	SampleRate float64       `default:"48000" help:"Synthesis sample rate in Hz."`
	Interval   time.Duration `default:"33ms" help:"Tick interval."`
	Multiplier float64       `default:"1" help:"Frequency multiplier applied to raw bands."`
	Seed       float64       `default:"0" help:"Profile seed for the band peaks."`
}

func main() {
	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("bandviz"),
		kong.Description("Live terminal view of the spectral band analyzer."),
		kong.UsageOnError(),
	)

	sampleCount, err := analyzer.MinSampleCount(cli.Bands)
	if err != nil {
		fail(err)
	}
	if cli.FFTSize < sampleCount {
		fail(fmt.Errorf("fft size %d too small for %d bands: need >= %d", cli.FFTSize, cli.Bands, sampleCount))
	}

	src, err := spectrum.New(cli.FFTSize)
	if err != nil {
		fail(err)
	}

	a, err := analyzer.New(
		analyzer.WithBandCount(cli.Bands),
		analyzer.WithSampleCount(sampleCount),
		analyzer.WithFrequencyMultiplier(cli.Multiplier),
		analyzer.WithProfileSeed(cli.Seed),
	)
	if err != nil {
		fail(err)
	}

	m := newModel(cli, a, src)

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "bandviz: %v\n", err)
	os.Exit(1)
}
