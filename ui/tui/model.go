package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kilianp07/lfpfade/core/degradation"
	"github.com/kilianp07/lfpfade/core/simulation"
	"github.com/kilianp07/lfpfade/pkg/chart"
)

// Source tags simulation events issued from the terminal UI.
const Source = "tui"

type field int

const (
	fieldCapacity field = iota
	fieldDoD
	fieldEoL
	fieldCycles
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Battery Pack Capacity (kWh)",
	"Depth of Discharge (%)",
	"End of Life Threshold (%)",
	"Max Cycle Count",
}

const sparkWidth = 48

// Model is the interactive calculator.
type Model struct {
	sim   *simulation.Simulator
	theme Theme
	keys  keyMap
	help  help.Model

	bounds degradation.Bounds
	inputs degradation.Inputs
	focus  field

	result simulation.Result
	err    error
}

// New returns a calculator initialised with the simulator's defaults.
func New(sim *simulation.Simulator) Model {
	set := sim.Settings()
	m := Model{
		sim:    sim,
		theme:  DefaultTheme(),
		keys:   defaultKeys(),
		help:   help.New(),
		bounds: set.Bounds,
		inputs: set.Defaults,
	}
	m.recompute()
	return m
}

// Run starts the terminal UI and blocks until the user quits.
func Run(sim *simulation.Simulator) error {
	p := tea.NewProgram(New(sim), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Inputs returns the current input values.
func (m Model) Inputs() degradation.Inputs { return m.inputs }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.focus = (m.focus + 1) % fieldCount
		case key.Matches(msg, m.keys.Prev):
			m.focus = (m.focus + fieldCount - 1) % fieldCount
		case key.Matches(msg, m.keys.Inc):
			m.adjust(1)
		case key.Matches(msg, m.keys.Dec):
			m.adjust(-1)
		case key.Matches(msg, m.keys.Reset):
			m.inputs = m.sim.Settings().Defaults
			m.recompute()
		}
	}
	return m, nil
}

// adjust moves the focused field by dir steps and clamps it to the bounds.
func (m *Model) adjust(dir int) {
	b := m.bounds
	switch m.focus {
	case fieldCapacity:
		step := b.CapacityStepKWh
		if step <= 0 {
			step = 0.1
		}
		v := math.Round((m.inputs.CapacityKWh+float64(dir)*step)/step) * step
		// Trim float noise such as 5.1000000001.
		v = math.Round(v*1e6) / 1e6
		m.inputs.CapacityKWh = math.Max(v, b.MinCapacityKWh)
	case fieldDoD:
		m.inputs.DoDPercent = stepRange(b.DoDPercent, m.inputs.DoDPercent, dir)
	case fieldEoL:
		m.inputs.EoLPercent = stepRange(b.EoLPercent, m.inputs.EoLPercent, dir)
	case fieldCycles:
		m.inputs.Cycles = stepRange(b.Cycles, m.inputs.Cycles, dir)
	}
	m.recompute()
}

func stepRange(r degradation.IntRange, v, dir int) int {
	step := r.Step
	if step < 1 {
		step = 1
	}
	return r.Clamp(v + dir*step)
}

func (m *Model) recompute() {
	res, err := m.sim.Run(context.Background(), Source, m.inputs)
	m.err = err
	if err == nil {
		m.result = res
	}
}

func (m Model) View() string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.Title.Render("🔋 Lithium Battery Degradation Simulator"))
	b.WriteString("\n")
	b.WriteString(t.Subtitle.Render("Usable capacity fade of an LFP pack over its cycle life."))
	b.WriteString("\n\n")

	values := [fieldCount]string{
		fmt.Sprintf("%.1f", m.inputs.CapacityKWh),
		fmt.Sprintf("%d", m.inputs.DoDPercent),
		fmt.Sprintf("%d", m.inputs.EoLPercent),
		fmt.Sprintf("%d", m.inputs.Cycles),
	}
	for f := fieldCapacity; f < fieldCount; f++ {
		label, cursor := t.Label, "  "
		if f == m.focus {
			label, cursor = t.Focused, "▸ "
		}
		b.WriteString(cursor + label.Render(fieldLabels[f]) + t.Value.Render(values[f]) + "\n")
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(t.Error.Render("✗ " + m.err.Error()))
		b.WriteString("\n\n")
	}
	if m.result.Curve.Len() > 0 {
		b.WriteString(m.cardsView())
		b.WriteString("\n")
		for _, w := range m.result.Warnings {
			b.WriteString(t.Warning.Render("! " + w))
			b.WriteString("\n")
		}
		b.WriteString(t.Subtitle.Render("State of Health"))
		b.WriteString("\n")
		b.WriteString(t.SOH.Render(sparkline(m.result.Curve.SOH, sparkWidth)))
		b.WriteString(fmt.Sprintf("  %.1f%% → %.1f%%\n",
			m.result.Summary.StartSOH*100, m.result.Summary.EndSOH*100))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) cardsView() string {
	cards := chart.SummaryCards(m.result.Config, m.result.Summary)
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		body := lipgloss.JoinVertical(lipgloss.Center,
			c.Icon+" "+m.theme.CardHead.Render(c.Title),
			m.theme.Value.Render(c.Value),
			m.theme.Subtitle.Render(c.Subtitle),
		)
		rendered = append(rendered, m.theme.Card.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
