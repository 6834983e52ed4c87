package pibt

import (
	"testing"

	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
)

func TestFirstBlockingPeerFindsShorterOverlap(t *testing.T) {
	fp := footprint.NewSquare(1.0)
	a := NewAgent(0, cell(0, 0), cell(5, 5), fp, 0, 0)
	b := NewAgent(1, cell(1, 0), cell(5, 5), fp, 0, 0)
	sched := &Scheduler{agents: []*Agent{a, b}}

	a.Path.Push(cell(1, 0)) // a's tail now overlaps b's tail, which hasn't moved
	peer, found := sched.firstBlockingPeer(a)
	if !found || peer.Index != 1 {
		t.Fatalf("expected to find agent 1 as the blocking peer, got %v, %v", peer, found)
	}
}

func TestFirstBlockingPeerIgnoresEqualOrLongerPaths(t *testing.T) {
	fp := footprint.NewSquare(1.0)
	a := NewAgent(0, cell(0, 0), cell(5, 5), fp, 0, 0)
	b := NewAgent(1, cell(1, 0), cell(5, 5), fp, 0, 0)
	sched := &Scheduler{agents: []*Agent{a, b}}

	a.Path.Push(cell(1, 0))
	b.Path.Push(cell(2, 0)) // now equal length to a, should be ignored regardless of overlap

	if _, found := sched.firstBlockingPeer(a); found {
		t.Errorf("a peer with a path no shorter than a's should never be returned")
	}
}

func TestSolveInheritanceSucceedsOnOpenGrid(t *testing.T) {
	g := gridmap.New(5, 5)
	fp := footprint.NewSquare(0.45)
	sched, _ := buildScheduler(g, []agentDef{
		{start: g.Cell(2, 2), goal: g.Cell(4, 4), fp: fp},
		{start: g.Cell(2, 3), goal: g.Cell(0, 0), fp: fp},
	}, Config{InheritanceDepth: 5, MaxTimestep: 20, Seed: 1})

	a, b := sched.agents[0], sched.agents[1]
	a.Path.Push(g.Cell(2, 3)) // a wants b's cell; b hasn't moved, shorter path

	snaps, ok := sched.solveInheritance(a)
	if !ok {
		t.Fatalf("solveInheritance should succeed on an open grid with room to step aside")
	}
	if len(sched.conflict) != 0 {
		t.Errorf("solveInheritance should leave the conflict set empty on success, got %v", sched.conflict)
	}
	if b.Path.Back() == g.Cell(2, 3) {
		t.Errorf("blocking peer should have been moved off its original cell")
	}
	if _, present := snaps[b.Index]; !present {
		t.Errorf("returned snapshot map should record the peer it moved")
	}
}

func TestSolveInheritanceRollsBackOnFailure(t *testing.T) {
	g := gridmap.New(3, 1)
	g.SetBlocked(2, 0, true) // dead end: b has nowhere left to step but onto a
	fp := footprint.NewSquare(0.45)
	sched, _ := buildScheduler(g, []agentDef{
		{start: g.Cell(0, 0), goal: g.Cell(1, 0), fp: fp},
		{start: g.Cell(1, 0), goal: g.Cell(0, 0), fp: fp},
	}, Config{InheritanceDepth: 5, MaxTimestep: 20})

	a, b := sched.agents[0], sched.agents[1]
	bBackBefore := b.Path.Back()
	a.Path.Push(g.Cell(1, 0)) // a wants b's cell; no room to escape in the dead-end corridor

	_, ok := sched.solveInheritance(a)
	if ok {
		t.Fatalf("solveInheritance should fail with no escape room in a 1-wide corridor")
	}
	if len(sched.conflict) != 0 {
		t.Errorf("a failed solveInheritance should leave the conflict set empty, got %v", sched.conflict)
	}
	if b.Path.Back() != bBackBefore {
		t.Errorf("a failed solveInheritance should roll back any tentative peer moves, b.Back()=%v want %v", b.Path.Back(), bBackBefore)
	}
}
