package pibt

import "github.com/elektrokombinacija/fspibt-grid/internal/footprint"

// solveInheritance implements spec.md §4.4: push a into the conflict
// set, then repeatedly push every lower-priority peer whose tail
// overlaps a's tail out of the way via escape, restarting the scan
// after each successful push since pushing a peer can introduce new
// overlaps. Returns the accumulated snapshot map and true on success,
// or (nil, false) on failure after a full rollback.
func (s *Scheduler) solveInheritance(a *Agent) (snapshots, bool) {
	s.conflict[a.Index] = struct{}{}
	acc := snapshots{}

	for {
		s.checkTime()
		peer, found := s.firstBlockingPeer(a)
		if !found {
			break
		}

		newSnaps, ok := s.escape(peer, a)
		if !ok {
			acc.rollback(s.agents)
			delete(s.conflict, a.Index)
			s.notifyInheritance(a.Index, false)
			return nil, false
		}
		mergeFirstWriteWins(acc, newSnaps)
		// restart: pushing peer may have introduced new overlaps
	}

	delete(s.conflict, a.Index)
	s.notifyInheritance(a.Index, true)
	return acc, true
}

// firstBlockingPeer finds a lower-priority agent (shorter tentative
// path) whose current tail overlaps a's tail, in agent-index order for
// determinism.
func (s *Scheduler) firstBlockingPeer(a *Agent) (*Agent, bool) {
	for _, b := range s.agents {
		if b.Index == a.Index {
			continue
		}
		if b.Path.Len() >= a.Path.Len() {
			continue
		}
		if footprint.Overlap(a.Path.Back(), a.Footprint, b.Path.Back(), b.Footprint) {
			return b, true
		}
	}
	return nil, false
}
