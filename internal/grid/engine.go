package grid

import (
	"log/slog"
	"runtime"
	"sync"

	"infigrid/internal/core"
	"infigrid/internal/kernel"
)

// DefaultParallelThreshold is the smallest batch evaluated on more than one
// goroutine.
const DefaultParallelThreshold = 64

// Config controls the geometry of the grid and how kernels are scheduled.
type Config struct {
	// CellSize is the extent of every cell in content units.
	CellSize core.Size
	// Origin translates raw indices into kernel indices.
	Origin core.Index
	// Workers bounds the goroutines evaluating one batch of kernels.
	// Values below 2 evaluate serially; a negative value uses GOMAXPROCS.
	Workers int
	// ParallelThreshold is the minimum batch size worth parallelising.
	ParallelThreshold int
}

// OriginFor returns the origin offset that maps the centre of a square
// content area of the given dimension to kernel index (0, 0).
func OriginFor(dimension float64, cell core.Size) core.Index {
	half := dimension / 2
	return core.Index{Row: -int(half / cell.H), Column: -int(half / cell.W)}
}

// ContentOrigin returns the content coordinates of the top-left corner of
// kernel index (0, 0).
func (c Config) ContentOrigin() core.Point {
	return core.Geometry(c.Origin.Neg(), c.CellSize).Min
}

// Option customises an Engine.
type Option func(*Engine)

// WithPainter routes cell updates to p.
func WithPainter(p Painter) Option {
	return func(e *Engine) {
		if p != nil {
			e.painter = p
		}
	}
}

// WithLogger sets the logger used for pass and kernel diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithBuiltins overrides the parameters of the built-in kernels.
func WithBuiltins(b kernel.Builtins) Option {
	return func(e *Engine) { e.selector.SetBuiltins(b) }
}

// WithKernel selects the initial kernel.
func WithKernel(t kernel.Tag) Option {
	return func(e *Engine) { e.selector.Select(t) }
}

// WithCustomKernel installs the initial custom kernel.
func WithCustomKernel(f kernel.Func) Option {
	return func(e *Engine) { e.selector.SetCustom(f) }
}

// Engine owns the active cell map and the cell pool. All methods are safe for
// concurrent use; each call runs to completion under a single lock so no
// partial pass is ever observable.
type Engine struct {
	mu sync.Mutex

	cfg      Config
	pool     *Pool
	active   map[core.Index]Handle
	selector kernel.Selector
	painter  Painter
	log      *slog.Logger

	viewport core.Rect
	passes   int
	workers  int

	batch batch
}

// Stats summarises the engine's bookkeeping.
type Stats struct {
	Active    int
	Free      int
	Allocated int
	Passes    int
	Kernel    kernel.Tag
}

// New builds an engine. A cell size that is not strictly positive is a
// programmer error and panics.
func New(cfg Config, opts ...Option) *Engine {
	if !cfg.CellSize.Valid() {
		panic("grid: cell size must be positive")
	}
	if cfg.ParallelThreshold <= 0 {
		cfg.ParallelThreshold = DefaultParallelThreshold
	}
	e := &Engine{
		cfg:      cfg,
		active:   make(map[core.Index]Handle),
		selector: kernel.NewSelector(kernel.DefaultBuiltins()),
		painter:  nopPainter{},
		log:      newNopLogger(),
		workers:  cfg.Workers,
	}
	if e.workers < 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	for _, opt := range opts {
		opt(e)
	}
	e.pool = NewPool(kernel.Attributes{Fill: e.selector.Builtins().Palette.Cell})
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// KernelIndex translates a raw grid index into the index kernels see.
func (e *Engine) KernelIndex(i core.Index) core.Index { return i.Offset(e.cfg.Origin) }

// GridIndex translates a kernel index back into a raw grid index.
func (e *Engine) GridIndex(k core.Index) core.Index { return k.Offset(e.cfg.Origin.Neg()) }

// Viewport returns the rectangle of the last layout pass.
func (e *Engine) Viewport() core.Rect {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewport
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		Active:    len(e.active),
		Free:      e.pool.Free(),
		Allocated: e.pool.Allocated(),
		Passes:    e.passes,
		Kernel:    e.selector.Tag(),
	}
}

// Cell returns the active cell at i.
func (e *Engine) Cell(i core.Index) (CellView, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.active[i]
	if !ok {
		return CellView{}, false
	}
	c := e.pool.Cell(h)
	return CellView{Index: i, Frame: c.Frame(), Attrs: c.Attributes()}, true
}

// AppendCells appends a snapshot of every active cell to dst, in no
// particular order, and returns the extended slice.
func (e *Engine) AppendCells(dst []CellView) []CellView {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, h := range e.active {
		c := e.pool.Cell(h)
		dst = append(dst, CellView{Index: i, Frame: c.Frame(), Attrs: c.Attributes()})
	}
	return dst
}

// Close tears the engine down, evicting every cell and destroying the pool.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, h := range e.active {
		e.painter.Evict(i, e.pool.Cell(h).Frame())
	}
	clear(e.active)
	e.pool.Reset()
	e.viewport = core.Rect{}
}
