package pibt

import (
	"testing"

	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
)

func TestSkipProbabilitySquareIsConstant(t *testing.T) {
	g := gridmap.New(5, 5)
	sched, _ := buildScheduler(g, nil, Config{InheritanceDepth: 5})
	sq := footprint.NewSquare(0.45)

	if got := sched.skipProbability(sq, 0); got != squareSkipProbability {
		t.Errorf("square skip probability = %v, want %v", got, squareSkipProbability)
	}
	if got := sched.skipProbability(sq, 10); got != squareSkipProbability {
		t.Errorf("square skip probability should not depend on conflict depth, got %v", got)
	}
}

func TestSkipProbabilityDiskHasTwoTiers(t *testing.T) {
	g := gridmap.New(5, 5)
	sched, _ := buildScheduler(g, nil, Config{InheritanceDepth: 5})
	disk := footprint.NewDisk(0.5)

	if got := sched.skipProbability(disk, 0); got != diskSkipProbabilityShallow {
		t.Errorf("shallow disk skip probability = %v, want %v", got, diskSkipProbabilityShallow)
	}
	if got := sched.skipProbability(disk, 3); got != diskSkipProbabilityDeep {
		t.Errorf("deep disk skip probability (depth 3 * 2 > 5) = %v, want %v", got, diskSkipProbabilityDeep)
	}
}

func TestEscapeFailsOverInheritanceDepth(t *testing.T) {
	g := gridmap.New(5, 5)
	fp := footprint.NewSquare(0.45)
	sched, _ := buildScheduler(g, []agentDef{
		{start: g.Cell(0, 0), goal: g.Cell(4, 4), fp: fp},
		{start: g.Cell(1, 0), goal: g.Cell(4, 4), fp: fp},
	}, Config{InheritanceDepth: 1, MaxTimestep: 20})

	child, parent := sched.agents[0], sched.agents[1]
	parent.Path.Push(g.Cell(2, 0))
	// Pre-fill the conflict set past the depth cap so escape refuses to search.
	sched.conflict = conflictSet{0: struct{}{}, 1: struct{}{}}

	if _, ok := sched.escape(child, parent); ok {
		t.Errorf("escape should refuse to search once the conflict set exceeds InheritanceDepth")
	}
}

func TestEscapeFindsSideStepOnOpenGrid(t *testing.T) {
	g := gridmap.New(5, 5)
	fp := footprint.NewSquare(0.45)
	sched, _ := buildScheduler(g, []agentDef{
		{start: g.Cell(2, 2), goal: g.Cell(4, 4), fp: fp},
		{start: g.Cell(2, 3), goal: g.Cell(0, 0), fp: fp},
	}, Config{InheritanceDepth: 5, MaxTimestep: 20, Seed: 1})

	child, parent := sched.agents[0], sched.agents[1]
	parent.Path.Push(g.Cell(2, 2)) // parent wants child's cell

	snaps, ok := sched.escape(child, parent)
	if !ok {
		t.Fatalf("escape should find a side cell on an open 5x5 grid")
	}
	if child.Path.Back() == g.Cell(2, 2) {
		t.Errorf("child should have moved off its original cell, still at %v", child.Path.Back())
	}
	if _, present := snaps[child.Index]; !present {
		t.Errorf("escape's returned snapshot map should include the child it moved")
	}
}
