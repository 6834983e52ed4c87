// Package distance implements the read-only Distance Oracle: for every
// agent, the footprint-feasible shortest-path distance from any cell to
// that agent's goal, computed once by reverse BFS (spec.md §4.1).
package distance

import (
	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
)

// unreachableOffset is added to the makespan cap T to form the sentinel
// distance T+1 for cells the BFS never reaches (see Unreachable).
const unreachableOffset = 1

// Oracle holds one distance table per agent.
type Oracle struct {
	grid      *gridmap.Grid
	maxT      int
	tables    [][]int // tables[agentIdx][cellID]
	unreached int      // T+1, the sentinel value
}

// AgentSpec is the minimal information the oracle needs per agent: its
// goal and footprint. Built before scheduling starts.
type AgentSpec struct {
	Goal      gridmap.Cell
	Footprint footprint.Footprint
}

// Build computes dist[i][v] for every agent i and cell v via reverse
// BFS from goal(i), restricted to cells where agent i's footprint fits.
// Non-fitting cells are never pushed and keep the sentinel value.
func Build(g *gridmap.Grid, maxTimestep int, agents []AgentSpec) *Oracle {
	o := &Oracle{
		grid:      g,
		maxT:      maxTimestep,
		tables:    make([][]int, len(agents)),
		unreached: maxTimestep + unreachableOffset,
	}
	for i, a := range agents {
		o.tables[i] = bfsFrom(g, a.Goal, a.Footprint, o.unreached)
	}
	return o
}

func bfsFrom(g *gridmap.Grid, goal gridmap.Cell, fp footprint.Footprint, sentinel int) []int {
	dist := make([]int, g.NumCells())
	for i := range dist {
		dist[i] = sentinel
	}
	if !footprint.Fits(g, goal.X, goal.Y, fp) {
		return dist
	}

	queue := make([]gridmap.Cell, 0, g.NumCells())
	dist[goal.ID] = 0
	queue = append(queue, goal)

	for head := 0; head < len(queue); head++ {
		n := queue[head]
		for _, m := range g.Neighbors(n) {
			if !footprint.Fits(g, m.X, m.Y, fp) {
				continue
			}
			if dist[n.ID]+1 < dist[m.ID] {
				dist[m.ID] = dist[n.ID] + 1
				queue = append(queue, m)
			}
		}
	}
	return dist
}

// Dist returns dist[agentIdx][v], or the UNREACHABLE sentinel if v was
// never reached by agent agentIdx's BFS.
func (o *Oracle) Dist(agentIdx int, v gridmap.Cell) int {
	return o.tables[agentIdx][v.ID]
}

// Unreachable returns the sentinel value T+1.
func (o *Oracle) Unreachable() int {
	return o.unreached
}
