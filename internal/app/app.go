//go:build ebiten

package app

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"infigrid/internal/anim"
	"infigrid/internal/config"
	"infigrid/internal/core"
	"infigrid/internal/grid"
	"infigrid/internal/render"
	"infigrid/internal/ui"
	"infigrid/internal/viewport"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	hudWidth    = 220
	keyScroll   = 8.0
	wheelScroll = 24.0
	zoomStep    = 1.1
	tapSlop     = 4
)

var (
	background = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	floodColor = color.RGBA{R: 0xf5, G: 0xc5, B: 0x42, A: 255}
)

// Game adapts a grid engine to the ebiten.Game interface. Input is turned
// into viewport changes and fed to the engine as events.
type Game struct {
	engine   *grid.Engine
	vp       *viewport.Viewport
	painter  *render.GridPainter
	hud      *ui.HUD
	overlay  *ui.Overlay
	flood    *anim.Driver
	log      *slog.Logger
	cells    []grid.CellView
	w, h     int
	dragging bool
	dragFrom image.Point
	dragLast image.Point
}

// New builds the engine described by cfg and a game sized w×h.
func New(cfg config.Config, w, h, tps int, log *slog.Logger) (*Game, error) {
	opts, err := cfg.EngineOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, grid.WithLogger(log))
	engine := grid.New(cfg.GridConfig(), opts...)

	g := &Game{
		engine:  engine,
		overlay: ui.NewOverlay(),
		log:     log,
		w:       w,
		h:       h,
	}
	g.flood = anim.NewDriver(engine, tps, floodColor, log)
	g.hud = ui.NewHUD(NewTunables(engine, g.flood), hudWidth)
	g.vp = viewport.New(cfg.ContentDimension, g.gridSize())
	g.painter = render.NewGridPainter(int(g.gridSize().W), int(g.gridSize().H))
	engine.Handle(grid.ScrollEvent{Rect: g.vp.Rect()})
	log.Info("grid ready", "cell", cfg.CellSize, "kernel", engine.Kernel(), "viewport", fmt.Sprint(g.vp.Rect()))
	return g, nil
}

func (g *Game) gridSize() core.Size {
	return core.Size{W: float64(max(g.w-hudWidth, 1)), H: float64(max(g.h, 1))}
}

// Update handles per-frame input and advances the flood animation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	onPanel := g.hud.Update(g.w - hudWidth)
	g.overlay.Update()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.engine.Handle(grid.RefreshEvent{})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.engine.Handle(grid.CycleEvent{})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.flood.Toggle()
	}

	g.handleScroll()
	g.handleZoom()
	if !onPanel {
		g.handleDrag()
	}
	g.flood.Update()

	st := g.engine.Stats()
	flood := "off"
	if g.flood.Running() {
		flood = fmt.Sprintf("%d cells", g.flood.Flood().Filled())
	}
	g.hud.SetStatus(
		"kernel: "+st.Kernel.String(),
		fmt.Sprintf("active: %d  pool: %d", st.Active, st.Allocated),
		fmt.Sprintf("zoom: %.2f", g.vp.Zoom()),
		"flood: "+flood,
	)
	return nil
}

func (g *Game) handleScroll() {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= keyScroll
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += keyScroll
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= keyScroll
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += keyScroll
	}
	if !ebiten.IsKeyPressed(ebiten.KeyControl) {
		wx, wy := ebiten.Wheel()
		dx -= wx * wheelScroll
		dy -= wy * wheelScroll
	}
	if dx != 0 || dy != 0 {
		g.engine.Handle(grid.ScrollEvent{Rect: g.vp.ScrollBy(dx, dy)})
	}
}

func (g *Game) handleZoom() {
	factor := 1.0
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		factor *= zoomStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		factor /= zoomStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		_, wy := ebiten.Wheel()
		factor *= math.Pow(zoomStep, wy)
	}
	if factor == 1 {
		return
	}
	mx, my := ebiten.CursorPosition()
	focus := core.Point{X: float64(mx), Y: float64(my)}
	g.engine.Handle(grid.ZoomEvent{Rect: g.vp.ZoomBy(factor, focus)})
}

// handleDrag scrolls while the left button is held. A press released
// without moving is a tap, which cycles the kernel.
func (g *Game) handleDrag() {
	mx, my := ebiten.CursorPosition()
	cur := image.Pt(mx, my)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.dragging = true
		g.dragFrom, g.dragLast = cur, cur
	case g.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		d := g.dragLast.Sub(cur)
		g.dragLast = cur
		if d != (image.Point{}) {
			g.engine.Handle(grid.ScrollEvent{Rect: g.vp.ScrollBy(float64(d.X), float64(d.Y))})
		}
	case g.dragging:
		g.dragging = false
		moved := cur.Sub(g.dragFrom)
		if abs(moved.X) <= tapSlop && abs(moved.Y) <= tapSlop {
			g.engine.Handle(grid.CycleEvent{})
		}
	}
}

// Draw renders the visible cells, the debug overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	size := g.gridSize()
	view := screen.SubImage(image.Rect(0, 0, int(size.W), int(size.H))).(*ebiten.Image)
	g.cells = g.engine.AppendCells(g.cells[:0])
	g.painter.Blit(view, g.cells, g.vp, background)
	g.overlay.Draw(view, g.cells, g.vp, g.engine.KernelIndex)
	g.hud.Draw(screen, g.w-hudWidth)
}

// Layout tracks the window size and resizes the viewport to match.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.engine.Handle(grid.ScrollEvent{Rect: g.vp.Resize(g.gridSize())})
	}
	return outsideWidth, outsideHeight
}

// Close releases every active cell.
func (g *Game) Close() { g.engine.Close() }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
