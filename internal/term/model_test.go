package term

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infigrid/internal/anim"
	"infigrid/internal/core"
	"infigrid/internal/grid"
	"infigrid/internal/kernel"
)

const content = 1000

func newEngine(opts ...grid.Option) *grid.Engine {
	cell := core.Size{W: 10, H: 10}
	return grid.New(grid.Config{CellSize: cell, Origin: grid.OriginFor(content, cell)}, opts...)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestResizeCentresAndLaysOut(t *testing.T) {
	e := newEngine()
	m, _ := send(t, New(e, content, nil), tea.WindowSizeMsg{Width: 20, Height: 6})

	assert.Equal(t, core.RectAt(450, 475, core.Size{W: 100, H: 50}), e.Viewport())
	assert.Equal(t, 7*12, e.Stats().Active)

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[5], "blank")
	assert.Contains(t, lines[5], "top-left -3,-5")
}

func TestArrowKeysScrollOneCell(t *testing.T) {
	e := newEngine()
	m, _ := send(t, New(e, content, nil), tea.WindowSizeMsg{Width: 20, Height: 6})
	before := e.Viewport()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, before.Translate(10, 0), e.Viewport())
	m, _ = send(t, m, runes("j"))
	assert.Equal(t, before.Translate(10, 10), e.Viewport())
	_, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, before.Translate(0, 10), e.Viewport())
	assert.Equal(t, 7*12, e.Stats().Active, "scrolling keeps the active set size")
}

func TestKeysSelectKernels(t *testing.T) {
	e := newEngine()
	m, _ := send(t, New(e, content, nil), tea.WindowSizeMsg{Width: 20, Height: 6})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, kernel.Checkerboard, e.Kernel())
	m, _ = send(t, m, runes("3"))
	assert.Equal(t, kernel.Circle, e.Kernel())
	_, _ = send(t, m, runes("1"))
	assert.Equal(t, kernel.Blank, e.Kernel())
}

func TestBorderedCellsRenderBrackets(t *testing.T) {
	b := kernel.DefaultBuiltins()
	e := newEngine(
		grid.WithCustomKernel(kernel.Bordered(b, kernel.Border{Color: kernel.Gray, Width: 1})),
		grid.WithKernel(kernel.Custom),
	)
	m, _ := send(t, New(e, content, nil), tea.WindowSizeMsg{Width: 20, Height: 6})
	assert.Contains(t, m.View(), "[]")
}

func TestQuit(t *testing.T) {
	m := New(newEngine(), content, nil)
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := send(t, m, msg)
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok)
	}
}

func TestFloodTicks(t *testing.T) {
	e := newEngine()
	d := anim.NewDriver(e, 20, kernel.Ember, nil)
	m, _ := send(t, New(e, content, d), tea.WindowSizeMsg{Width: 60, Height: 30})

	m, cmd := send(t, m, runes("f"))
	require.NotNil(t, cmd)
	assert.True(t, d.Running())
	assert.Equal(t, kernel.Custom, e.Kernel())

	m, cmd = send(t, m, tickMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, d.Flood().Filled())
	_, _ = send(t, m, tickMsg(time.Now()))
	assert.Equal(t, 5, d.Flood().Filled())
	assert.Contains(t, m.View(), "flood 5")
}

func TestEmptyViewBeforeSize(t *testing.T) {
	assert.Empty(t, New(newEngine(), content, nil).View())
}
