package pibt

import "github.com/elektrokombinacija/fspibt-grid/internal/footprint"

// conflictSet is the mutable set C of spec.md §3: agents currently
// inside an inheritance chain for the agent being stepped, keyed by
// stable index.
type conflictSet map[int]struct{}

func (c conflictSet) has(idx int) bool {
	_, ok := c[idx]
	return ok
}

// collision implements spec.md §4.2 collision(a): true if some other
// agent not currently in the conflict set occupies, at any tentative
// timestep from a's proposed index onward, a cell that overlaps a's
// tentative tail.
func collision(a *Agent, allAgents []*Agent, c conflictSet) bool {
	for _, b := range allAgents {
		if b.Index == a.Index || c.has(b.Index) {
			continue
		}
		if b.Path.Len() < a.Path.Len() {
			continue
		}
		for idx := a.Path.Len() - 1; idx < b.Path.Len(); idx++ {
			if footprint.Overlap(a.Path.Back(), a.Footprint, b.Path.At(idx), b.Footprint) {
				return true
			}
		}
	}
	return false
}

// collisionAgainstConflictSet implements spec.md §4.2
// collision_against_conflict_set(a, parent): scan every agent currently
// in the conflict set, except that the parent's own final tentative
// cell is skipped: the parent is about to vacate it as part of this
// same push, so it cannot legally block the child.
func collisionAgainstConflictSet(a *Agent, parentIdx int, allAgents []*Agent, c conflictSet) bool {
	for idx := range c {
		b := allAgents[idx]
		limit := b.Path.Len()
		if b.Index == parentIdx {
			limit--
		}
		for i := 0; i < limit; i++ {
			if footprint.Overlap(a.Path.Back(), a.Footprint, b.Path.At(i), b.Footprint) {
				return true
			}
		}
	}
	return false
}

// inheritance implements spec.md §4.2 inheritance(a): some
// strictly-lower-priority agent (shorter tentative path) whose current
// tentative tail overlaps a's tentative tail.
func inheritance(a *Agent, allAgents []*Agent) bool {
	for _, b := range allAgents {
		if b.Index == a.Index {
			continue
		}
		if b.Path.Len() >= a.Path.Len() {
			continue
		}
		if footprint.Overlap(a.Path.Back(), a.Footprint, b.Path.Back(), b.Footprint) {
			return true
		}
	}
	return false
}
