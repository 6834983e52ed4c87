// Package geninstance implements the random start/goal generation and
// "well-formed" instance generation that spec.md §1 keeps outside the
// PIBT core, consumed only through the Distance Oracle it builds on.
package geninstance

import (
	"fmt"
	"math/rand"

	"github.com/elektrokombinacija/fspibt-grid/internal/distance"
	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
)

// maxPlacementAttempts bounds the retries random placement takes to
// avoid footprint-overlapping starts, matching the bounded-retry
// placement in the original instance generator (SPEC_FULL.md §6).
const maxPlacementAttempts = 200

// Placement is one agent's randomly generated start and goal.
type Placement struct {
	Start, Goal gridmap.Cell
}

// GenerateRandom draws N start cells whose footprints fit the grid and
// don't overlap each other, and N independent goal cells under the
// same constraint (spec.md §6 `random_problem=1`).
func GenerateRandom(g *gridmap.Grid, footprints []footprint.Footprint, rng *rand.Rand) ([]Placement, error) {
	starts, err := placeNonOverlapping(g, footprints, rng)
	if err != nil {
		return nil, fmt.Errorf("geninstance: random starts: %w", err)
	}
	goals, err := placeNonOverlapping(g, footprints, rng)
	if err != nil {
		return nil, fmt.Errorf("geninstance: random goals: %w", err)
	}
	out := make([]Placement, len(footprints))
	for i := range out {
		out[i] = Placement{Start: starts[i], Goal: goals[i]}
	}
	return out, nil
}

// GenerateWellFormed draws starts the same way GenerateRandom does,
// then for each agent draws goal candidates until the Distance Oracle
// reports the goal reachable from that agent's start (spec.md §6
// `well_formed=1`). Requires building one single-agent oracle per
// candidate goal, since the full oracle is keyed by final goal.
func GenerateWellFormed(g *gridmap.Grid, footprints []footprint.Footprint, maxTimestep int, rng *rand.Rand) ([]Placement, error) {
	starts, err := placeNonOverlapping(g, footprints, rng)
	if err != nil {
		return nil, fmt.Errorf("geninstance: well-formed starts: %w", err)
	}

	out := make([]Placement, len(footprints))
	for i, fp := range footprints {
		goal, ok := reachableGoal(g, fp, starts[i], maxTimestep, rng)
		if !ok {
			return nil, fmt.Errorf("geninstance: agent %d: no reachable goal found after %d attempts", i, maxPlacementAttempts)
		}
		out[i] = Placement{Start: starts[i], Goal: goal}
	}
	return out, nil
}

func reachableGoal(g *gridmap.Grid, fp footprint.Footprint, start gridmap.Cell, maxTimestep int, rng *rand.Rand) (gridmap.Cell, bool) {
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		candidate := randomFittingCell(g, fp, rng)
		oracle := distance.Build(g, maxTimestep, []distance.AgentSpec{{Goal: candidate, Footprint: fp}})
		if oracle.Dist(0, start) != oracle.Unreachable() {
			return candidate, true
		}
	}
	return gridmap.Cell{}, false
}

func placeNonOverlapping(g *gridmap.Grid, footprints []footprint.Footprint, rng *rand.Rand) ([]gridmap.Cell, error) {
	placed := make([]gridmap.Cell, 0, len(footprints))
	for i, fp := range footprints {
		ok := false
		for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
			candidate := randomFittingCell(g, fp, rng)
			if !overlapsAny(candidate, fp, placed, footprints[:i]) {
				placed = append(placed, candidate)
				ok = true
				break
			}
		}
		if !ok {
			return nil, fmt.Errorf("agent %d: could not place without overlap after %d attempts", i, maxPlacementAttempts)
		}
	}
	return placed, nil
}

func overlapsAny(c gridmap.Cell, fp footprint.Footprint, placed []gridmap.Cell, placedFootprints []footprint.Footprint) bool {
	for i, p := range placed {
		if footprint.Overlap(c, fp, p, placedFootprints[i]) {
			return true
		}
	}
	return false
}

func randomFittingCell(g *gridmap.Grid, fp footprint.Footprint, rng *rand.Rand) gridmap.Cell {
	for {
		x := rng.Intn(g.Width)
		y := rng.Intn(g.Height)
		if footprint.Fits(g, x, y, fp) {
			return g.Cell(x, y)
		}
	}
}
