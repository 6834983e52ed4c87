package pibt

import "github.com/elektrokombinacija/fspibt-grid/internal/gridmap"

// Observer is the extension point a visualizer hooks into to narrate a
// run as it happens, adapted from the CBS-tree observer pattern
// (SPEC_FULL.md §4): escape search and inheritance resolution are the
// two events worth watching live, the same way the CBS observer narrated
// node expansion and conflict detection.
type Observer interface {
	// OnTimestep is called once per committed joint configuration.
	OnTimestep(t int, config []gridmap.Cell)
	// OnEscapeAttempt is called after every escape() call for child
	// pushed out of parent's way, reporting whether it succeeded.
	OnEscapeAttempt(childIdx, parentIdx int, ok bool)
	// OnInheritance is called after every solveInheritance() call on a,
	// reporting whether the whole inheritance chain resolved.
	OnInheritance(agentIdx int, ok bool)
}

func (s *Scheduler) notifyTimestep(t int, config []gridmap.Cell) {
	if s.cfg.Observer != nil {
		s.cfg.Observer.OnTimestep(t, config)
	}
}

func (s *Scheduler) notifyEscape(childIdx, parentIdx int, ok bool) {
	if s.cfg.Observer != nil {
		s.cfg.Observer.OnEscapeAttempt(childIdx, parentIdx, ok)
	}
}

func (s *Scheduler) notifyInheritance(agentIdx int, ok bool) {
	if s.cfg.Observer != nil {
		s.cfg.Observer.OnInheritance(agentIdx, ok)
	}
}
