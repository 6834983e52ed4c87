// Package gridmap holds the grid map and the cell graph agents move over.
package gridmap

import "fmt"

// CellID is a dense integer id over the grid, row-major: id = y*width + x.
type CellID int

// Cell is a single grid location. Equality is by ID.
type Cell struct {
	ID   CellID
	X, Y int
}

// Grid is a 4-connected grid map with a set of blocked cells.
type Grid struct {
	Width, Height int
	blocked       []bool // indexed by CellID
	cells         []Cell
}

// New creates a Width x Height grid with no blocked cells.
func New(width, height int) *Grid {
	g := &Grid{
		Width:   width,
		Height:  height,
		blocked: make([]bool, width*height),
		cells:   make([]Cell, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			id := g.idOf(x, y)
			g.cells[id] = Cell{ID: id, X: x, Y: y}
		}
	}
	return g
}

func (g *Grid) idOf(x, y int) CellID {
	return CellID(y*g.Width + x)
}

// SetBlocked marks (x,y) as blocked or passable. Out-of-range is a no-op.
func (g *Grid) SetBlocked(x, y int, blocked bool) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.blocked[g.idOf(x, y)] = blocked
}

// Exists reports whether (x,y) is inside the map and not blocked.
func (g *Grid) Exists(x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return false
	}
	return !g.blocked[g.idOf(x, y)]
}

// Cell returns the Cell at (x,y). Panics if out of range; callers must
// guard with Exists first, matching the graph's getNode/existNode split
// in the original C++ solver.
func (g *Grid) Cell(x, y int) Cell {
	return g.cells[g.idOf(x, y)]
}

// CellByID returns the Cell for a given dense id.
func (g *Grid) CellByID(id CellID) Cell {
	return g.cells[id]
}

// NumCells returns the total number of cells (width*height), including
// blocked ones.
func (g *Grid) NumCells() int {
	return len(g.cells)
}

// Neighbors returns the passable 4-neighbors of c, up to 4, in a fixed
// order (up, down, left, right) so that sort stability downstream is
// deterministic.
func (g *Grid) Neighbors(c Cell) []Cell {
	candidates := [4][2]int{
		{c.X, c.Y - 1},
		{c.X, c.Y + 1},
		{c.X - 1, c.Y},
		{c.X + 1, c.Y},
	}
	out := make([]Cell, 0, 4)
	for _, xy := range candidates {
		if g.Exists(xy[0], xy[1]) {
			out = append(out, g.Cell(xy[0], xy[1]))
		}
	}
	return out
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
