// Package planbuf implements the per-agent Plan Buffer: the already
// committed current cell plus a short tentative forward plan under
// construction (spec.md §3).
package planbuf

import "github.com/elektrokombinacija/fspibt-grid/internal/gridmap"

// Path is the deque of cells described in spec.md §3: Front() is the
// cell the agent occupies at the current committed timestep; any
// further entries are tentative cells under construction for the next
// timestep(s). A growable slice gives O(1) amortized push/trim at the
// tail, which is all the scheduler ever needs.
type Path struct {
	cells []gridmap.Cell
}

// NewPath creates a path whose only entry is the agent's starting cell.
func NewPath(start gridmap.Cell) *Path {
	return &Path{cells: []gridmap.Cell{start}}
}

// Len returns the number of cells currently buffered.
func (p *Path) Len() int { return len(p.cells) }

// Front returns the committed current cell. Never called on an empty
// path, the invariant in spec.md §3 guarantees Len() >= 1 always.
func (p *Path) Front() gridmap.Cell { return p.cells[0] }

// Back returns the tentative tail cell (or Front() if no tentative
// cell has been pushed yet this timestep).
func (p *Path) Back() gridmap.Cell { return p.cells[len(p.cells)-1] }

// At returns the cell at index i.
func (p *Path) At(i int) gridmap.Cell { return p.cells[i] }

// Push appends a tentative cell to the tail.
func (p *Path) Push(c gridmap.Cell) { p.cells = append(p.cells, c) }

// PushWait duplicates the current tail, i.e. "the agent stays put for
// one more tentative step", how §4.3/§4.4 express inserting a wait
// just before the tentative front without disturbing the committed
// prefix.
func (p *Path) PushWait() { p.Push(p.Back()) }

// Pop removes the tentative tail cell. Never called on a path of
// length 1 (the caller must only pop what it has pushed).
func (p *Path) Pop() {
	p.cells = p.cells[:len(p.cells)-1]
}

// Cells exposes the full buffered sequence, read-only, for conflict
// detection, which needs to scan the whole tentative plan.
func (p *Path) Cells() []gridmap.Cell { return p.cells }

// ResizeAndRestore truncates the path to sizeBefore-1 entries and then
// pushes lastCell, exactly reproducing the path's state at the moment
// a PathState snapshot was taken (spec.md §3, §4.3/§4.4 rollback).
func (p *Path) ResizeAndRestore(sizeBefore int, lastCell gridmap.Cell) {
	if sizeBefore-1 < 0 {
		sizeBefore = 1
	}
	p.cells = p.cells[:sizeBefore-1]
	p.cells = append(p.cells, lastCell)
}

// CommitAdvance pops the committed front cell once the driver has read
// the next committed cell at index 1, restoring the invariant that the
// path always starts at "now".
func (p *Path) CommitAdvance() {
	p.cells = p.cells[1:]
}
