// Package footprint implements the disk/square geometry sum type shared
// by every agent, the overlap predicate between two footprints, and the
// footprint-fit test against a grid.
package footprint

import (
	"math"

	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
)

// Kind distinguishes the two footprint modes. A single instance never
// mixes them (spec.md §3).
type Kind int

const (
	Disk Kind = iota
	Square
)

// Footprint is the tagged variant described in spec.md §3: either a
// disk of radius R or a square of side S, anchored at an agent's cell.
type Footprint struct {
	Kind Kind
	R    float64 // valid when Kind == Disk
	S    float64 // valid when Kind == Square
}

// NewDisk builds a disk footprint of radius r.
func NewDisk(r float64) Footprint { return Footprint{Kind: Disk, R: r} }

// NewSquare builds a square footprint of side s.
func NewSquare(s float64) Footprint { return Footprint{Kind: Square, S: s} }

// Size returns the footprint's characteristic extent: R for disks, S
// for squares. Used wherever the spec treats "size" uniformly (escape
// search step cap, boundary stride).
func (f Footprint) Size() float64 {
	if f.Kind == Disk {
		return f.R
	}
	return f.S
}

// CeilSize returns ceil(Size()), the integer extent used by the square
// collision predicate and the boundary-rectangle construction.
func (f Footprint) CeilSize() int {
	return int(math.Ceil(f.Size()))
}

// Overlap tests whether footprint a anchored at pa collides with
// footprint b anchored at pb, per spec.md §3. The two modes never mix
// within one instance, so Overlap assumes a.Kind == b.Kind.
func Overlap(pa gridmap.Cell, a Footprint, pb gridmap.Cell, b Footprint) bool {
	switch a.Kind {
	case Disk:
		dx := float64(pa.X - pb.X)
		dy := float64(pa.Y - pb.Y)
		dist := math.Sqrt(dx*dx + dy*dy)
		return dist < a.R+b.R
	default: // Square
		sa := float64(a.CeilSize())
		sb := float64(b.CeilSize())
		px, py := float64(pa.X), float64(pa.Y)
		qx, qy := float64(pb.X), float64(pb.Y)
		return px > qx-sa && px < qx+sb && py > qy-sa && py < qy+sb
	}
}

// Fits reports whether the footprint anchored at (x,y) lies entirely
// within passable grid cells. The anchor cell must exist; beyond it, a
// disk checks every cell within Euclidean distance CeilSize() of the
// anchor, and a square checks the CeilSize() x CeilSize() block
// [x, x+size) x [y, y+size) that starts at the anchor.
func Fits(g *gridmap.Grid, x, y int, f Footprint) bool {
	if !g.Exists(x, y) {
		return false
	}
	size := f.CeilSize()
	for dx := -size; dx <= size; dx++ {
		for dy := -size; dy <= size; dy++ {
			switch f.Kind {
			case Disk:
				if float64(dx*dx+dy*dy) > float64(size*size) {
					continue
				}
			default:
				// square footprint spans [x, x+size) x [y, y+size) from its anchor
				if dx < 0 || dy < 0 || dx >= size || dy >= size {
					continue
				}
			}
			if !g.Exists(x+dx, y+dy) {
				return false
			}
		}
	}
	return true
}
