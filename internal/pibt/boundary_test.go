package pibt

import (
	"testing"

	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
)

func TestRectanglePerimeterCoversCorners(t *testing.T) {
	anchor := gridmap.Cell{X: 5, Y: 5}
	cells := rectanglePerimeter(anchor, 2, 1)

	want := []gridmap.Cell{
		{X: 5, Y: 4}, {X: 5, Y: 7}, {X: 4, Y: 5}, {X: 7, Y: 5},
		{X: 4, Y: 4}, {X: 7, Y: 4}, {X: 4, Y: 7}, {X: 7, Y: 7},
	}
	for _, w := range want {
		found := false
		for _, c := range cells {
			if c == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("rectanglePerimeter(%v, 2, 1) missing expected cell %v in %v", anchor, w, cells)
		}
	}
}

func TestMidpointCircleZeroRadiusIsAnchor(t *testing.T) {
	anchor := gridmap.Cell{X: 3, Y: 3}
	cells := midpointCircle(anchor, 0)
	if len(cells) != 1 || cells[0] != anchor {
		t.Fatalf("radius 0 should yield only the anchor cell, got %v", cells)
	}
}

func TestMidpointCircleIsEquidistant(t *testing.T) {
	anchor := gridmap.Cell{X: 10, Y: 10}
	radius := 4
	cells := midpointCircle(anchor, radius)
	if len(cells) == 0 {
		t.Fatalf("expected at least one boundary cell for radius %d", radius)
	}
	for _, c := range cells {
		dx, dy := c.X-anchor.X, c.Y-anchor.Y
		distSq := dx*dx + dy*dy
		// grid cells cannot all sit at exactly the Euclidean radius; every
		// plotted cell must lie within one cell of it.
		if distSq > (radius+1)*(radius+1) {
			t.Errorf("cell %v is farther from anchor than radius+1 allows (distSq=%d)", c, distSq)
		}
		if distSq < (radius-1)*(radius-1) {
			t.Errorf("cell %v is nearer to anchor than radius-1 allows (distSq=%d)", c, distSq)
		}
	}
}

func TestMidpointCircleNoDuplicates(t *testing.T) {
	cells := midpointCircle(gridmap.Cell{X: 0, Y: 0}, 5)
	seen := map[gridmap.Cell]bool{}
	for _, c := range cells {
		if seen[c] {
			t.Errorf("duplicate cell %v in midpointCircle output", c)
		}
		seen[c] = true
	}
}

func TestBoundaryCandidatesFiltersOffGrid(t *testing.T) {
	g := gridmap.New(3, 3)
	disk := footprint.NewDisk(0.5)
	cells := boundaryCandidates(g, gridmap.Cell{X: 0, Y: 0}, disk, disk)
	for _, c := range cells {
		if !g.Exists(c.X, c.Y) {
			t.Errorf("boundaryCandidates returned off-grid cell %v", c)
		}
	}
}

func TestBoundaryCandidatesDiskVsSquare(t *testing.T) {
	g := gridmap.New(20, 20)
	anchor := gridmap.Cell{X: 10, Y: 10}
	disk := footprint.NewDisk(1.0)
	square := footprint.NewSquare(1.0)

	diskCells := boundaryCandidates(g, anchor, disk, disk)
	squareCells := boundaryCandidates(g, anchor, square, square)

	if len(diskCells) == 0 {
		t.Errorf("expected disk boundary candidates")
	}
	if len(squareCells) == 0 {
		t.Errorf("expected square boundary candidates")
	}
}
