// Package grid implements the virtualized infinite grid.
//
// An Engine tracks the cells whose geometry falls inside the current
// viewport. Each layout pass diffs the newly required index range against the
// active map, returns cells that left the viewport to a Pool and materializes
// cells that entered it, running the active kernel for every new cell. Cells
// that stay visible keep their attributes until Refresh or ProcessItem
// invalidates them.
//
// Kernels see indices translated by the configured origin so that kernel
// index (0, 0) sits at the centre of the content area, while the engine and
// its painters work with raw content-space indices.
package grid
