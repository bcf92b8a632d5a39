//go:build !ebiten

package render

// GridPainter is a placeholder for headless builds.
type GridPainter struct{}

// NewGridPainter returns nil in the headless build.
func NewGridPainter(int, int) *GridPainter { return nil }
