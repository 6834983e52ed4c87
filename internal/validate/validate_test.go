package validate

import (
	"testing"

	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
)

func cell(x, y int) gridmap.Cell { return gridmap.Cell{X: x, Y: y} }

func TestPlanAcceptsValidSingleAgentPath(t *testing.T) {
	configs := [][]gridmap.Cell{
		{cell(0, 0)},
		{cell(1, 0)},
		{cell(2, 0)},
	}
	goals := []gridmap.Cell{cell(2, 0)}
	fps := []footprint.Footprint{footprint.NewSquare(0.45)}

	if err := Plan(configs, goals, fps); err != nil {
		t.Errorf("expected a valid plan to pass, got: %v", err)
	}
}

func TestPlanRejectsEmptyPlan(t *testing.T) {
	if err := Plan(nil, nil, nil); err == nil {
		t.Errorf("expected an error for an empty plan")
	}
}

func TestPlanRejectsGoalMismatch(t *testing.T) {
	configs := [][]gridmap.Cell{
		{cell(0, 0)},
		{cell(1, 0)},
	}
	goals := []gridmap.Cell{cell(2, 0)}
	fps := []footprint.Footprint{footprint.NewSquare(0.45)}

	if err := Plan(configs, goals, fps); err == nil {
		t.Errorf("expected an error when the final configuration does not reach the goal")
	}
}

func TestPlanRejectsNonAdjacentJump(t *testing.T) {
	configs := [][]gridmap.Cell{
		{cell(0, 0)},
		{cell(2, 0)}, // jumped two cells in one timestep
	}
	goals := []gridmap.Cell{cell(2, 0)}
	fps := []footprint.Footprint{footprint.NewSquare(0.45)}

	if err := Plan(configs, goals, fps); err == nil {
		t.Errorf("expected an error for a non-adjacent jump between timesteps")
	}
}

func TestPlanRejectsFootprintOverlap(t *testing.T) {
	configs := [][]gridmap.Cell{
		{cell(0, 0), cell(2, 0)},
		{cell(1, 0), cell(1, 0)}, // both agents land on the same cell
	}
	goals := []gridmap.Cell{cell(1, 0), cell(1, 0)}
	fps := []footprint.Footprint{footprint.NewSquare(1.0), footprint.NewSquare(1.0)}

	if err := Plan(configs, goals, fps); err == nil {
		t.Errorf("expected an error for overlapping footprints")
	}
}

func TestPlanRejectsSwapConflict(t *testing.T) {
	configs := [][]gridmap.Cell{
		{cell(0, 0), cell(1, 0)},
		{cell(1, 0), cell(0, 0)}, // two agents swap across an edge
	}
	goals := []gridmap.Cell{cell(1, 0), cell(0, 0)}
	fps := []footprint.Footprint{footprint.NewSquare(0.45), footprint.NewSquare(0.45)}

	if err := Plan(configs, goals, fps); err == nil {
		t.Errorf("expected an error for a swap conflict across a shared edge")
	}
}

func TestAdjacentOrSame(t *testing.T) {
	cases := []struct {
		a, b gridmap.Cell
		want bool
	}{
		{cell(0, 0), cell(0, 0), true},
		{cell(0, 0), cell(1, 0), true},
		{cell(0, 0), cell(0, 1), true},
		{cell(0, 0), cell(1, 1), false},
		{cell(0, 0), cell(2, 0), false},
	}
	for _, c := range cases {
		if got := adjacentOrSame(c.a, c.b); got != c.want {
			t.Errorf("adjacentOrSame(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
