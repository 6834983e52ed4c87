// Package pibt implements the Priority-Inheritance-with-Backtracking
// scheduler extended for sized agents (LA-PIBT for squares, FSPIBT for
// disks): the hardest-engineering core of this repo (spec.md §1).
package pibt

import (
	"sort"

	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
	"github.com/elektrokombinacija/fspibt-grid/internal/planbuf"
)

// Agent is a scheduled agent, spec.md §3. Agents are referenced by
// stable integer index everywhere in this package rather than by
// pointer, so the conflict set and snapshot maps can be plain
// map[int]... without any ownership cycle (spec.md §9).
type Agent struct {
	Index      int
	Goal       gridmap.Cell
	Elapsed    int
	InitD      int
	TieBreaker float64
	Footprint  footprint.Footprint
	Path       *planbuf.Path
}

// NewAgent creates an agent starting at start with the given goal,
// footprint and tie-breaker draw. InitD must be filled in by the
// caller from the Distance Oracle before scheduling starts.
func NewAgent(index int, start, goal gridmap.Cell, fp footprint.Footprint, initD int, tieBreaker float64) *Agent {
	return &Agent{
		Index:      index,
		Goal:       goal,
		InitD:      initD,
		TieBreaker: tieBreaker,
		Footprint:  fp,
		Path:       planbuf.NewPath(start),
	}
}

// AtGoal reports whether the agent's current committed cell is its goal.
func (a *Agent) AtGoal() bool {
	return a.Path.Front() == a.Goal
}

// higherPriority implements the total order of spec.md §3: compare by
// Elapsed DESC, then InitD DESC, then TieBreaker DESC.
func higherPriority(a, b *Agent) bool {
	if a.Elapsed != b.Elapsed {
		return a.Elapsed > b.Elapsed
	}
	if a.InitD != b.InitD {
		return a.InitD > b.InitD
	}
	return a.TieBreaker > b.TieBreaker
}

// sortByPriority orders agents highest-priority first.
func sortByPriority(agents []*Agent) {
	sort.SliceStable(agents, func(i, j int) bool {
		return higherPriority(agents[i], agents[j])
	})
}
