package pibt

import (
	"math"
	"sort"

	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
)

// squareSkipProbability is the anti-deadlock random skip for the
// square (LAPIBT) variant, preserved verbatim from the source solver
// (spec.md §4.3, §9): it MUST be non-zero or symmetric instances
// livelock.
const squareSkipProbability = 0.175

// Disk (FSPIBT) escape uses a steeper skip once the inheritance chain
// is already deep, to push harder for diversity before the depth cap
// kicks in. Both values are non-zero per the same anti-deadlock
// requirement; see DESIGN.md for why two tiers instead of one.
const (
	diskSkipProbabilityShallow = 0.5
	diskSkipProbabilityDeep    = 0.8
)

func (s *Scheduler) skipProbability(fp footprint.Footprint, conflictDepth int) float64 {
	if fp.Kind == footprint.Square {
		return squareSkipProbability
	}
	if conflictDepth*2 > s.cfg.InheritanceDepth {
		return diskSkipProbabilityDeep
	}
	return diskSkipProbabilityShallow
}

// escape implements spec.md §4.3: find a short path for child out of
// the combined conflict region so parent can take its preferred move.
// Returns the accumulated snapshot map and true on success, or
// (nil, false) on failure (caller must not mutate anything on failure,
// escape undoes every tentative mutation it made itself).
func (s *Scheduler) escape(child, parent *Agent) (snapshots, bool) {
	if len(s.conflict) > s.cfg.InheritanceDepth {
		s.notifyEscape(child.Index, parent.Index, false)
		return nil, false
	}

	candidates := boundaryCandidates(s.grid, parent.Path.Back(), child.Footprint, parent.Footprint)
	from := child.Path.Back()
	sort.SliceStable(candidates, func(i, j int) bool {
		return euclidean(from, candidates[i]) < euclidean(from, candidates[j])
	})

	maxSteps := 3 * int(math.Ceil(math.Max(child.Footprint.Size(), parent.Footprint.Size())))

	for _, target := range candidates {
		if s.oracle.Dist(child.Index, target) == s.oracle.Unreachable() {
			continue
		}
		if s.rng.Float64() < s.skipProbability(child.Footprint, len(s.conflict)) {
			continue
		}

		snaps, ok := s.walkToward(child, parent, target, maxSteps)
		if ok {
			s.notifyEscape(child.Index, parent.Index, true)
			return snaps, true
		}
	}
	s.notifyEscape(child.Index, parent.Index, false)
	return nil, false
}

// walkToward runs the bounded greedy walk of spec.md §4.3 from child's
// current tail toward target.
func (s *Scheduler) walkToward(child, parent *Agent, target gridmap.Cell, maxSteps int) (snapshots, bool) {
	visited := map[gridmap.CellID]bool{child.Path.Back().ID: true}
	snaps := snapshots{}
	snaps.captureIfAbsent(child)
	stepCount := 0

	for child.Path.Back() != target {
		neighbors := s.grid.Neighbors(child.Path.Back())
		sort.SliceStable(neighbors, func(i, j int) bool {
			return euclidean(target, neighbors[i]) < euclidean(target, neighbors[j])
		})

		found := false
		for _, n := range neighbors {
			if visited[n.ID] {
				continue
			}
			if !footprint.Fits(s.grid, n.X, n.Y, child.Footprint) {
				visited[n.ID] = true
				continue
			}
			if stepCount > maxSteps {
				break
			}

			child.Path.Push(n)
			waited := s.syncConflictSetLengths(child, snaps)

			s.checkTime()
			if collision(child, s.agents, s.conflict) || collisionAgainstConflictSet(child, parent.Index, s.agents, s.conflict) {
				child.Path.Pop()
				s.undoWaits(waited)
				visited[n.ID] = true
				continue
			}

			if inheritance(child, s.agents) {
				newSnaps, ok := s.solveInheritance(child)
				if !ok {
					child.Path.Pop()
					s.undoWaits(waited)
					visited[n.ID] = true
					continue
				}
				mergeFirstWriteWins(snaps, newSnaps)
			}

			s.advanceNonConflictSnapshotted(child, snaps)

			visited[n.ID] = true
			stepCount++
			found = true
			break
		}

		if !found {
			snaps.rollback(s.agents)
			return nil, false
		}
	}

	return snaps, true
}

// syncConflictSetLengths appends a wait to every agent in the conflict
// set whose path is no longer than child's, after child's own push,
// snapshotting each one first if not already snapshotted. Returns the
// indices that were actually given a wait, so a failed push can be
// undone precisely.
func (s *Scheduler) syncConflictSetLengths(child *Agent, snaps snapshots) []int {
	var waited []int
	for idx := range s.conflict {
		other := s.agents[idx]
		if other.Path.Len() <= child.Path.Len() {
			snaps.captureIfAbsent(other)
			other.Path.PushWait()
			waited = append(waited, idx)
		}
	}
	return waited
}

func (s *Scheduler) undoWaits(waited []int) {
	for _, idx := range waited {
		s.agents[idx].Path.Pop()
	}
}

// advanceNonConflictSnapshotted keeps every already-snapshotted agent
// outside the conflict set (and other than child itself) synchronized
// with the moving front once a step is accepted.
func (s *Scheduler) advanceNonConflictSnapshotted(child *Agent, snaps snapshots) {
	for idx := range snaps {
		if idx == child.Index || s.conflict.has(idx) {
			continue
		}
		s.agents[idx].Path.PushWait()
	}
}

func euclidean(a, b gridmap.Cell) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
