package pibt

import (
	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
)

// boundaryCandidates enumerates the cells on the outer perimeter of
// parent's footprint expanded by child's footprint, per spec.md §4.3
// step 2. The two footprint modes diverge only here: a rectangle
// perimeter sweep for squares, a midpoint-circle sweep for disks.
func boundaryCandidates(g *gridmap.Grid, parentTail gridmap.Cell, child, parent footprint.Footprint) []gridmap.Cell {
	if child.Kind == footprint.Disk {
		radius := parent.CeilSize() + child.CeilSize()
		return filterExisting(g, midpointCircle(parentTail, radius))
	}
	return filterExisting(g, rectanglePerimeter(parentTail, parent.CeilSize(), child.CeilSize()))
}

func filterExisting(g *gridmap.Grid, cells []gridmap.Cell) []gridmap.Cell {
	out := cells[:0]
	for _, c := range cells {
		if g.Exists(c.X, c.Y) {
			out = append(out, g.Cell(c.X, c.Y))
		}
	}
	return out
}

// rectanglePerimeter enumerates the four sides of the rectangle
// [x-Sc, x+Sp] x [y-Sc, y+Sp] at stride max(1, floor((Sp+Sc)/4)),
// exactly as getNodesToAvoidInheritanceConflict does for squares.
func rectanglePerimeter(anchor gridmap.Cell, sp, sc int) []gridmap.Cell {
	x, y := anchor.X, anchor.Y
	stride := (sp + sc) / 4
	if stride < 1 {
		stride = 1
	}
	var out []gridmap.Cell
	for delta := -sc; delta <= sp; delta += stride {
		out = append(out,
			gridmap.Cell{X: x + delta, Y: y - sc},
			gridmap.Cell{X: x + delta, Y: y + sp},
			gridmap.Cell{X: x - sc, Y: y + delta},
			gridmap.Cell{X: x + sp, Y: y + delta},
		)
	}
	return out
}

// midpointCircle enumerates the integer grid cells lying on a circle
// of the given radius centered at anchor, using the standard
// eight-way-symmetric midpoint circle algorithm.
func midpointCircle(anchor gridmap.Cell, radius int) []gridmap.Cell {
	if radius <= 0 {
		return []gridmap.Cell{anchor}
	}
	seen := make(map[[2]int]bool)
	var out []gridmap.Cell
	add := func(dx, dy int) {
		key := [2]int{dx, dy}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, gridmap.Cell{X: anchor.X + dx, Y: anchor.Y + dy})
	}

	x, y := radius, 0
	d := 1 - radius
	for x >= y {
		add(x, y)
		add(y, x)
		add(-y, x)
		add(-x, y)
		add(-x, -y)
		add(-y, -x)
		add(y, -x)
		add(x, -y)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
	return out
}
