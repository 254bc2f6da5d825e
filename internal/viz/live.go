// Package viz renders a running simulation in the terminal: the
// concentration field as a density ramp plus a free-energy trace.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/sgrier/spinodal/internal/metrics"
	"github.com/sgrier/spinodal/internal/solver"
)

const (
	fieldCols       = 64
	fieldRows       = 28
	historyCapacity = 600
)

// density ramp from alpha-rich to beta-rich composition
const shades = " .:-=+*#%@"

type TickMsg time.Time

// Model drives the solver from the bubbletea event loop. One tick runs
// stepsPerFrame solver steps, so the display never outruns the physics.
type Model struct {
	solver        *solver.Solver
	stepsPerFrame int
	step          int
	running       bool
	energyHistory []float64
}

// NewModel wraps an initialized solver for live viewing.
func NewModel(s *solver.Solver, stepsPerFrame int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	return Model{
		solver:        s,
		stepsPerFrame: stepsPerFrame,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerFrame; i++ {
				m.solver.Step()
				m.step++
			}
			energy := metrics.Functional(m.solver.Concentration(), m.solver.Params, m.solver.Grid.CellSize)
			if len(m.energyHistory) == historyCapacity {
				m.energyHistory = m.energyHistory[1:]
			}
			m.energyHistory = append(m.energyHistory, energy)
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder

	status := ""
	if !m.running {
		status = pausedStyle.Render("  [paused]")
	}
	sb.WriteString(headerStyle.Render(fmt.Sprintf("spinodal  %s  stepper=%s%s",
		m.solver.SeedName(), m.solver.StepperName(), status)))
	sb.WriteString("\n")

	sb.WriteString(fieldStyle.Render(m.renderField()))
	sb.WriteString("\n")

	t := float64(m.step) * m.solver.Dt
	sb.WriteString(labelStyle.Render("step") + valueStyle.Render(fmt.Sprintf("%d", m.step)) + "\n")
	sb.WriteString(labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.2f", t)) + "\n")
	sb.WriteString(labelStyle.Render("mass") + valueStyle.Render(fmt.Sprintf("%.8f", m.solver.Mass())) + "\n")
	if len(m.energyHistory) > 0 {
		sb.WriteString(labelStyle.Render("free energy") +
			valueStyle.Render(fmt.Sprintf("%.4f", m.energyHistory[len(m.energyHistory)-1])) + "\n")
	}

	if len(m.energyHistory) >= 2 {
		graph := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("free energy"),
		)
		sb.WriteString(graphStyle.Render(graph))
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("space pause/resume  q quit"))
	return sb.String()
}

// renderField downsamples the grid to the terminal viewport and maps
// concentration to the shade ramp between the two phase compositions.
func (m Model) renderField() string {
	n := m.solver.Grid.Points
	p := m.solver.Params

	cols := fieldCols
	rows := fieldRows
	if cols > n {
		cols = n
	}
	if rows > n {
		rows = n
	}

	var sb strings.Builder
	for r := 0; r < rows; r++ {
		j := r * n / rows
		for col := 0; col < cols; col++ {
			i := col * n / cols
			frac := (m.solver.C(i, j) - p.CAlpha) / (p.CBeta - p.CAlpha)
			idx := int(frac * float64(len(shades)))
			if idx < 0 {
				idx = 0
			}
			if idx >= len(shades) {
				idx = len(shades) - 1
			}
			sb.WriteByte(shades[idx])
		}
		if r < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
