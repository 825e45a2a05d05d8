// sim/display/app.go
//
// Live terminal animation of a running simulation, built on bubbletea's
// Elm architecture: the Model holds the simulator, Update advances it one
// mobility step per frame, and View renders the highway as text.

package display

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sim "github.com/beam-sim/beam-sim/sim"
)

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	edgeStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	noLinkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))   // red: no serving beam
	cleanLinkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))  // blue: clean connection
	interferedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")) // orange: interfered
	busyBeamStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	idleBeamStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// frameMsg triggers one animation frame.
type frameMsg time.Time

// Model is the bubbletea application state: a simulator advanced one
// mobility step per frame.
type Model struct {
	sim        *sim.Simulator
	frameEvery time.Duration

	width  int
	paused bool
	done   bool
}

// NewModel wraps a simulator for display. speed scales playback relative to
// real time (15 means 15x faster than the simulated clock).
func NewModel(s *sim.Simulator, speed float64) Model {
	if speed <= 0 {
		speed = 1
	}
	return Model{
		sim:        s,
		frameEvery: time.Duration(float64(s.StepTicks) * float64(time.Millisecond) / speed),
		width:      80,
	}
}

func (m Model) Init() tea.Cmd {
	return m.frame()
}

func (m Model) frame() tea.Cmd {
	return tea.Tick(m.frameEvery, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case frameMsg:
		if m.paused {
			return m, m.frame()
		}
		if !m.sim.Step() {
			m.done = true
			return m, tea.Quit
		}
		return m, m.frame()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	clockSec := float64(m.sim.Clock) / sim.TicksPerSecond
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s — %s — t=%.1fs", m.sim.Scenario.Name, m.sim.Policy.Name(), clockSec)))
	b.WriteString("\n\n")

	b.WriteString(m.renderBeams())
	b.WriteString("\n")
	b.WriteString(m.renderHighway())
	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space pause · q quit"))
	b.WriteString("\n")
	return b.String()
}

// renderBeams shows one glyph per sector, grouped by site:
// filled when transmitting, hollow when idle.
func (m Model) renderBeams() string {
	var b strings.Builder
	b.WriteString("beams ")
	idx := 0
	for siteNum, site := range m.sim.Scenario.Sites {
		if siteNum > 0 {
			b.WriteString("  ")
		}
		b.WriteString(fmt.Sprintf("site%d:", siteNum))
		for range site.Azimuths {
			sector := m.sim.Sectors[idx]
			idx++
			if sector.ServingVehicle != nil {
				if sector.ServingVehicle.HasInterference {
					b.WriteString(interferedStyle.Render("●"))
				} else {
					b.WriteString(busyBeamStyle.Render("●"))
				}
			} else {
				b.WriteString(idleBeamStyle.Render("○"))
			}
		}
	}
	b.WriteString("\n")
	return b.String()
}

// renderHighway draws each lane as a row of road with vehicle glyphs placed
// by scaled x position.
func (m Model) renderHighway() string {
	cols := m.width - 2
	if cols < 20 {
		cols = 20
	}

	maxX := 1.0
	for _, lane := range m.sim.Scenario.Lanes {
		if lane.StartX > maxX {
			maxX = lane.StartX
		}
		if lane.EndX > maxX {
			maxX = lane.EndX
		}
	}

	type cell struct {
		glyph string
		style lipgloss.Style
	}
	var b strings.Builder
	b.WriteString(edgeStyle.Render(strings.Repeat("=", cols)))
	b.WriteString("\n")
	for laneNum, lane := range m.sim.Scenario.Lanes {
		row := make([]cell, cols)
		for i := range row {
			row[i] = cell{glyph: "·", style: edgeStyle}
		}
		eastbound := lane.EndX > lane.StartX
		for _, v := range m.sim.Vehicles {
			if v.Lane != laneNum || !v.IsActive() {
				continue
			}
			col := int(v.Position().X / maxX * float64(cols-1))
			if col < 0 {
				col = 0
			}
			if col >= cols {
				col = cols - 1
			}
			glyph := "<"
			if eastbound {
				glyph = ">"
			}
			style := noLinkStyle
			if v.IsAssociated() {
				style = cleanLinkStyle
				if v.HasInterference {
					style = interferedStyle
				}
			}
			row[col] = cell{glyph: glyph, style: style}
		}
		for _, c := range row {
			b.WriteString(c.style.Render(c.glyph))
		}
		b.WriteString("\n")
	}
	b.WriteString(edgeStyle.Render(strings.Repeat("=", cols)))
	b.WriteString("\n")
	return b.String()
}

// renderStats shows the running totals.
func (m Model) renderStats() string {
	total := m.sim.Metrics.ObservedTime()
	if total == 0 {
		return "collecting...\n"
	}
	return fmt.Sprintf("connected %.1f%% · no service %.1f%% · interfered %.1f%%\n",
		100*float64(m.sim.Metrics.Connected)/float64(total),
		100*float64(m.sim.Metrics.Disconnected)/float64(total),
		100*float64(m.sim.Metrics.Interfered)/float64(total))
}

// Run drives the animation until the simulation ends or the user quits.
// The simulator is finalized either way.
func Run(s *sim.Simulator, speed float64) error {
	program := tea.NewProgram(NewModel(s, speed))
	_, err := program.Run()
	s.Finalize()
	return err
}
