package pibt

import "github.com/elektrokombinacija/fspibt-grid/internal/gridmap"

// PathState is the rollback record of spec.md §3: enough to restore an
// agent's path to its exact prior tail.
type PathState struct {
	SizeBefore int
	LastCell   gridmap.Cell
}

// snapshots is the map from agent index to PathState that escape and
// the inheritance resolver pass around and merge, per spec.md §4.3/4.4.
type snapshots map[int]PathState

func takeSnapshot(a *Agent) PathState {
	return PathState{SizeBefore: a.Path.Len(), LastCell: a.Path.Back()}
}

// captureIfAbsent records a's current state the first time it is
// touched within a call, so rollback always recovers the caller's
// entry state rather than an intermediate one.
func (s snapshots) captureIfAbsent(a *Agent) {
	if _, ok := s[a.Index]; !ok {
		s[a.Index] = takeSnapshot(a)
	}
}

// rollback restores every snapshotted agent's path to its recorded
// state.
func (s snapshots) rollback(agents []*Agent) {
	for idx, st := range s {
		agents[idx].Path.ResizeAndRestore(st.SizeBefore, st.LastCell)
	}
}

// mergeFirstWriteWins merges src into dst, keeping dst's existing entry
// whenever both maps snapshot the same agent (the earliest prior
// state wins so that rolling back to the outermost snapshot always
// recovers the state before the entire inheritance chain started).
func mergeFirstWriteWins(dst, src snapshots) {
	for idx, st := range src {
		if _, ok := dst[idx]; !ok {
			dst[idx] = st
		}
	}
}
