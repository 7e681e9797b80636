package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cwbudde/algo-specband/analyzer"
	"github.com/cwbudde/algo-specband/spectrum"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

type tickMsg time.Time

type model struct {
	interval time.Duration

	analyzer *analyzer.Analyzer
	source   *spectrum.Source
	gen      *generator

	buf    []float64 // interleaved synthesis scratch
	pushed int
	full   bool

	width  int
	height int
	err    error
}

func newModel(cli *CLI, a *analyzer.Analyzer, src *spectrum.Source) *model {
	samplesPerTick := int(cli.SampleRate * cli.Interval.Seconds())
	if samplesPerTick < 1 {
		samplesPerTick = 1
	}

	return &model{
		interval: cli.Interval,
		analyzer: a,
		source:   src,
		gen:      newGenerator(cli.SampleRate),
		buf:      make([]float64, 2*samplesPerTick),
		width:    80,
		height:   24,
	}
}

func (m *model) Init() tea.Cmd {
	return m.tick()
}

func (m *model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.gen.fill(m.buf)

		if err := m.source.PushStereo(m.buf); err != nil {
			m.err = err
			return m, tea.Quit
		}

		m.pushed += len(m.buf) / 2
		if m.pushed >= m.source.FFTSize() {
			m.full = true
		}

		if m.full {
			if _, err := m.analyzer.Tick(m.source); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}

		return m, m.tick()
	}

	return m, nil
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("specband — %d bands", m.analyzer.BandCount())))
	b.WriteString("\n\n")

	if !m.full {
		b.WriteString(faintStyle.Render("filling analysis buffer..."))
		b.WriteString("\n")
		return b.String()
	}

	barWidth := m.width - 8
	if barWidth < 10 {
		barWidth = 10
	}

	values := m.analyzer.NormalizedSmoothedBands()
	maxRows := m.height - 6
	step := 1
	if maxRows > 0 && len(values) > maxRows {
		step = (len(values) + maxRows - 1) / maxRows
	}

	for i := 0; i < len(values); i += step {
		v := clamp(values[i], 0, 1)
		filled := int(v * float64(barWidth))

		b.WriteString(fmt.Sprintf("%3d ", i))
		b.WriteString(barStyle.Render(strings.Repeat("█", filled)))
		b.WriteString(strings.Repeat(" ", barWidth-filled))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(faintStyle.Render(fmt.Sprintf(
		"amplitude %.3f  buffered %.3f  loudness %.3f  [q] quit",
		m.analyzer.AmplitudeFactor(),
		m.analyzer.BufferedAmplitudeFactor(),
		m.analyzer.Loudness(),
	)))
	b.WriteString("\n")

	return b.String()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// generator synthesizes a stereo test signal made of a few sine
// partials whose lowest partial sweeps slowly, so different bands
// light up over time.
type generator struct {
	sampleRate float64
	phases     []float64
	freqs      []float64
	sweepPhase float64
}

func newGenerator(sampleRate float64) *generator {
	return &generator{
		sampleRate: sampleRate,
		phases:     make([]float64, 4),
		freqs:      []float64{110, 440, 1760, 7040},
	}
}

func (g *generator) fill(interleaved []float64) {
	sweepRate := 2 * math.Pi * 0.05 / g.sampleRate

	for i := 0; i < len(interleaved); i += 2 {
		g.sweepPhase += sweepRate
		sweep := 1 + 0.5*math.Sin(g.sweepPhase)

		var left, right float64
		for p := range g.phases {
			freq := g.freqs[p]
			if p == 0 {
				freq *= sweep
			}

			g.phases[p] += 2 * math.Pi * freq / g.sampleRate
			if g.phases[p] > 2*math.Pi {
				g.phases[p] -= 2 * math.Pi
			}

			amp := 1 / float64(p+1)
			left += amp * math.Sin(g.phases[p])
			right += amp * math.Sin(g.phases[p]*1.003)
		}

		interleaved[i] = left * 0.25
		interleaved[i+1] = right * 0.25
	}
}
