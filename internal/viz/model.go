package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/voxdiff/internal/grid"
	"github.com/san-kum/voxdiff/internal/metrics"
)

const (
	sidebarWidth  = 45
	defaultWidth  = 80
	defaultHeight = 24
	minCanvasW    = 10
	minCanvasH    = 5
)

type frameMsg struct{ colors []grid.Color }

type settingsMsg struct {
	background grid.Color
	pointSize  float64
}

type statsMsg struct {
	last  metrics.Sample
	alive []float64
}

// Model draws the point cloud on a braille canvas next to a stats sidebar.
// Rune keys are forwarded to keys for the engine's handlers.
type Model struct {
	title      string
	scene      *Scene
	canvas     *Canvas
	theme      Theme
	keys       chan<- rune
	background string
	frames     int
	last       metrics.Sample
	alive      []float64
	showHelp   bool
}

func NewModel(title string, scene *Scene, theme Theme, keys chan<- rune) Model {
	m := Model{
		title:  title,
		scene:  scene,
		canvas: NewCanvas(defaultWidth-sidebarWidth, defaultHeight-2),
		theme:  theme,
		keys:   keys,
	}
	m.draw()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := max(msg.Width-sidebarWidth-4, minCanvasW)
		h := max(msg.Height-2, minCanvasH)
		m.canvas = NewCanvas(w, h)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.handleKey(msg)
	case frameMsg:
		m.scene.SetColors(msg.colors)
		m.frames++
	case settingsMsg:
		m.background = Hex(msg.background)
		m.scene.PointSize = msg.pointSize
	case statsMsg:
		m.last = msg.last
		m.alive = msg.alive
	}
	m.draw()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "x":
		m.scene.Camera.RotateX(0.1)
	case "X":
		m.scene.Camera.RotateX(-0.1)
	case "y":
		m.scene.Camera.RotateY(0.1)
	case "Y":
		m.scene.Camera.RotateY(-0.1)
	case "z":
		m.scene.Camera.RotateZ(0.1)
	case "Z":
		m.scene.Camera.RotateZ(-0.1)
	case "+", "=":
		m.scene.Camera.ZoomIn()
	case "-", "_":
		m.scene.Camera.ZoomOut()
	case "t":
		m.theme = NextTheme(m.theme.Name)
	case "?":
		m.showHelp = !m.showHelp
	}

	if msg.Type != tea.KeyRunes || m.keys == nil {
		return
	}
	for _, r := range msg.Runes {
		select {
		case m.keys <- r:
		default:
		}
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.scene.Draw(m.canvas)
}

func (m Model) View() string {
	canvasStyle := lipgloss.NewStyle().Padding(1, 2)
	if m.background != "" {
		canvasStyle = canvasStyle.Background(lipgloss.Color(m.background))
	}
	statsStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(m.theme.Muted).Padding(1, 2).Width(sidebarWidth)
	headerStyle := lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true).MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(m.theme.Muted).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(m.theme.Text)
	graphStyle := lipgloss.NewStyle().Foreground(m.theme.Secondary).Padding(1, 0)
	helpStyle := lipgloss.NewStyle().Foreground(m.theme.Muted).MarginTop(1)

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.frames))
	row("Tick", fmt.Sprintf("%d", m.last.Tick))
	row("Alive", fmt.Sprintf("%d", m.last.Alive))
	row("Total", fmt.Sprintf("%.3f", m.last.Total))
	row("Mean", fmt.Sprintf("%.4f", m.last.Mean))
	row("Grown", fmt.Sprintf("%d", m.last.Grown))
	row("Decayed", fmt.Sprintf("%d", m.last.Decayed))

	if len(m.alive) > 1 {
		chart := asciigraph.Plot(m.alive, asciigraph.Height(6), asciigraph.Width(30), asciigraph.Caption("Alive cells"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nQ:Quit T:Theme ?:Help"))
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.Render()), statsStyle.Render(s.String()))

	if m.showHelp {
		help := lipgloss.NewStyle().Foreground(m.theme.Accent).Render(`
  x / X    rotate about X
  y / Y    rotate about Y
  z / Z    rotate about Z
  + / -    zoom
  t        cycle theme
  ctrl+c   abort
`)
		return help + "\n" + body
	}
	return body
}
