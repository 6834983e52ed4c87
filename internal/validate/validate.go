// Package validate implements the post-hoc solution validator of
// spec.md §7/§8: an independent check that a solved plan satisfies the
// invariants listed on Plan, run by the CLI driver after solving.
package validate

import (
	"fmt"

	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
)

// Plan validates configs against goals and per-agent footprints:
// every agent ends at its goal, no footprints overlap at any timestep,
// every move is to a 4-neighbor or a wait, and no two agents swap
// cells. configs[0] is not compared with the agents' starts.
// configs[t][i] is agent i's cell at timestep t. Returns the first
// violation found, or nil if the plan is valid.
func Plan(configs [][]gridmap.Cell, goals []gridmap.Cell, footprints []footprint.Footprint) error {
	if len(configs) == 0 {
		return fmt.Errorf("validate: empty plan")
	}
	n := len(footprints)

	for i := 0; i < n; i++ {
		if configs[len(configs)-1][i] != goals[i] {
			return fmt.Errorf("validate: agent %d ends at %v, not goal %v", i, configs[len(configs)-1][i], goals[i])
		}
	}

	start := configs[0]
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if footprint.Overlap(start[i], footprints[i], start[j], footprints[j]) {
				return fmt.Errorf("validate: agents %d and %d overlap at t=0 (%v, %v)", i, j, start[i], start[j])
			}
		}
	}

	for t := 1; t < len(configs); t++ {
		prev, cur := configs[t-1], configs[t]
		for i := 0; i < n; i++ {
			if !adjacentOrSame(prev[i], cur[i]) {
				return fmt.Errorf("validate: agent %d jumped from %v to %v at t=%d", i, prev[i], cur[i], t)
			}
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if footprint.Overlap(cur[i], footprints[i], cur[j], footprints[j]) {
					return fmt.Errorf("validate: agents %d and %d overlap at t=%d (%v, %v)", i, j, t, cur[i], cur[j])
				}
				if cur[i] == prev[j] && cur[j] == prev[i] && prev[i] != prev[j] {
					return fmt.Errorf("validate: agents %d and %d swapped at t=%d", i, j, t)
				}
			}
		}
	}
	return nil
}

func adjacentOrSame(a, b gridmap.Cell) bool {
	if a == b {
		return true
	}
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return (dx == 1 && dy == 0) || (dx == 0 && dy == 1)
}
