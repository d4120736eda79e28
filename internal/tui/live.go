package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravlab/internal/body"
	"github.com/san-kum/gravlab/internal/engine"
)

const (
	canvasWidth     = 72
	canvasHeight    = 24
	historyCapacity = 300
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model runs a simulation at a fixed frame rate and renders the bodies
// projected onto the xz plane, scaled by the system extent.
type Model struct {
	sim        *engine.Simulation
	name       string
	dt         float64
	t          float64
	frameRate  int
	running    bool
	canvas     [][]rune
	energyHist []float64
}

func NewModel(sim *engine.Simulation, name string, dt float64, frameRate int) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	canvas := make([][]rune, canvasHeight)
	for i := range canvas {
		canvas[i] = make([]rune, canvasWidth)
	}
	return Model{
		sim:        sim,
		name:       name,
		dt:         dt,
		frameRate:  frameRate,
		running:    true,
		canvas:     canvas,
		energyHist: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "c":
			m.sim.SetCollisionsEnabled(!m.sim.CollisionsEnabled())
		}
	case TickMsg:
		if m.running {
			if err := m.sim.Step(m.dt); err != nil {
				return m, tea.Quit
			}
			m.t += m.dt
			m.energyHist = append(m.energyHist, m.sim.TotalEnergy())
			if len(m.energyHist) > historyCapacity {
				m.energyHist = m.energyHist[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) clear() {
	for y := range m.canvas {
		for x := range m.canvas[y] {
			m.canvas[y][x] = ' '
		}
	}
}

func (m *Model) set(x, y int, c rune) {
	if x >= 0 && x < canvasWidth && y >= 0 && y < canvasHeight {
		m.canvas[y][x] = c
	}
}

func glyph(b *body.Body) rune {
	switch b.Kind {
	case body.Compact:
		return '@'
	case body.Planet:
		return 'o'
	case body.Spiral:
		return '*'
	case body.Elliptical:
		return '#'
	default:
		return 'O'
	}
}

// draw projects body positions onto the canvas, centered on the center
// of mass and scaled so the system extent fills the view.
func (m *Model) draw() {
	m.clear()

	com := m.sim.CenterOfMass()
	extent := m.sim.SystemExtent()

	for _, b := range m.sim.Bodies() {
		rel := b.Position.Sub(com)
		x := int((rel.X/extent + 1) / 2 * float64(canvasWidth-1))
		y := int((rel.Z/extent + 1) / 2 * float64(canvasHeight-1))
		m.set(x, y, glyph(b))
	}
}

func (m Model) View() string {
	m.draw()

	rows := make([]string, len(m.canvas))
	for i, row := range m.canvas {
		rows[i] = string(row)
	}
	canvasView := canvasStyle.Render(strings.Join(rows, "\n"))

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHist) > 1 {
		chart := asciigraph.Plot(m.energyHist,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("Energy"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Len())) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3f", m.sim.TotalEnergy())) + "\n")
	collisions := "off"
	if m.sim.CollisionsEnabled() {
		collisions = "on"
	}
	s.WriteString(labelStyle.Render("Collisions") + valueStyle.Render(collisions) + "\n")
	s.WriteString(labelStyle.Render("Mode") + valueStyle.Render(m.sim.Mode().String()) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause C:Collisions Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run starts the live view and blocks until the user quits.
func Run(sim *engine.Simulation, name string, dt float64, frameRate int) error {
	p := tea.NewProgram(NewModel(sim, name, dt, frameRate))
	_, err := p.Run()
	return err
}
