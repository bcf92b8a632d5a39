// Package term is a terminal front-end for the grid engine. Each grid cell
// is drawn as a two-column block coloured with the cell's fill.
package term

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"infigrid/internal/anim"
	"infigrid/internal/core"
	"infigrid/internal/grid"
	"infigrid/internal/kernel"
	"infigrid/internal/viewport"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// cellWidth is the number of terminal columns per grid cell.
const cellWidth = 2

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	emptyCell   = strings.Repeat(" ", cellWidth)
)

type tickMsg time.Time

type styleKey struct {
	fill      color.RGBA
	border    color.RGBA
	hasBorder bool
}

// Model is a bubbletea model over an engine. The viewport is measured in
// content units with one terminal row per cell row.
type Model struct {
	engine *grid.Engine
	flood  *anim.Driver
	vp     *viewport.Viewport
	cell   core.Size
	centre core.Point

	width, height int
	styles        map[styleKey]lipgloss.Style
}

// New returns a model for engine over a content area of the given
// dimension. flood may be nil.
func New(engine *grid.Engine, content float64, flood *anim.Driver) Model {
	cell := engine.Config().CellSize
	return Model{
		engine: engine,
		flood:  flood,
		vp:     viewport.New(content, core.Size{W: cell.W, H: cell.H}),
		cell:   cell,
		centre: core.Point{X: content / 2, Y: content / 2},
		styles: map[styleKey]lipgloss.Style{},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := m.width == 0
		m.width, m.height = msg.Width, msg.Height
		rect := m.vp.Resize(m.screen())
		if first {
			rect = m.vp.CenterOn(m.centre)
		}
		m.engine.Handle(grid.ScrollEvent{Rect: rect})
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		if m.flood == nil || !m.flood.Running() {
			return m, nil
		}
		m.flood.Step()
		if !m.flood.Running() {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		m.scroll(-m.cell.W, 0)
	case "right", "l":
		m.scroll(m.cell.W, 0)
	case "up", "k":
		m.scroll(0, -m.cell.H)
	case "down", "j":
		m.scroll(0, m.cell.H)
	case "pgup":
		m.scroll(0, -m.screen().H)
	case "pgdown":
		m.scroll(0, m.screen().H)
	case " ", "space", "c":
		m.engine.Handle(grid.CycleEvent{})
	case "r":
		m.engine.Handle(grid.RefreshEvent{})
	case "1", "2", "3", "4":
		tag := kernel.Tags()[msg.String()[0]-'1']
		m.engine.Handle(grid.SelectEvent{Kernel: tag})
	case "f":
		if m.flood == nil {
			return m, nil
		}
		m.flood.Toggle()
		if m.flood.Running() {
			return m, m.tick()
		}
	}
	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.flood.Interval(), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) scroll(dx, dy float64) {
	m.engine.Handle(grid.ScrollEvent{Rect: m.vp.ScrollBy(dx, dy)})
}

// screen returns the grid area in content units: one status line is
// reserved at the bottom.
func (m Model) screen() core.Size {
	cols := max(m.width/cellWidth, 1)
	rows := max(m.height-1, 1)
	return core.Size{W: float64(cols) * m.cell.W, H: float64(rows) * m.cell.H}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	cols := max(m.width/cellWidth, 1)
	rows := max(m.height-1, 1)
	first := core.IndexAt(m.vp.Rect().Min, m.cell)

	var b strings.Builder
	for r := range rows {
		for c := range cols {
			i := first.Offset(core.Index{Row: r, Column: c})
			cv, ok := m.engine.Cell(i)
			if !ok {
				b.WriteString(emptyCell)
				continue
			}
			b.WriteString(m.renderCell(cv.Attrs))
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.status(first))
	return b.String()
}

func (m Model) renderCell(a kernel.Attributes) string {
	key := styleKey{fill: a.Fill}
	if a.Border != nil {
		key.border, key.hasBorder = a.Border.Color, true
	}
	style, ok := m.styles[key]
	if !ok {
		style = lipgloss.NewStyle().Background(hex(a.Fill))
		if key.hasBorder {
			style = style.Foreground(hex(key.border))
		}
		m.styles[key] = style
	}
	if key.hasBorder {
		return style.Render("[]")
	}
	return style.Render(emptyCell)
}

func (m Model) status(first core.Index) string {
	st := m.engine.Stats()
	k := m.engine.KernelIndex(first)
	line := fmt.Sprintf("%s  active %d  pool %d  top-left %d,%d", st.Kernel, st.Active, st.Allocated, k.Row, k.Column)
	if m.flood != nil && m.flood.Running() {
		line += fmt.Sprintf("  flood %d", m.flood.Flood().Filled())
	}
	return statusStyle.Render(line) + dimStyle.Render("  arrows scroll · space cycle · r refresh · f flood · q quit")
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
