package viewer

import (
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
	"github.com/elektrokombinacija/fspibt-grid/internal/pibt"
)

// RecordingObserver implements pibt.Observer, accumulating events for
// later timeline playback. Adapted from AlgoStateObserver, which did
// the same job for the CBS tree (SPEC_FULL.md §4).
type RecordingObserver struct {
	events   []Event
	timestep int
}

// NewRecordingObserver creates an empty recording observer, usable
// before a State exists (the scheduler runs before the viewer app is
// built, see cmd/fspibtvis).
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{}
}

// Events returns every event recorded so far.
func (o *RecordingObserver) Events() []Event { return o.events }

// OnTimestep tracks the current timestep so escape/inheritance events
// reported in between timestep boundaries are stamped correctly.
func (o *RecordingObserver) OnTimestep(t int, config []gridmap.Cell) {
	o.timestep = t
}

// OnEscapeAttempt records one escape search outcome.
func (o *RecordingObserver) OnEscapeAttempt(childIdx, parentIdx int, ok bool) {
	o.events = append(o.events, Event{
		Timestep: o.timestep, Kind: EventEscape, AgentA: childIdx, AgentB: parentIdx, OK: ok,
	})
}

// OnInheritance records one inheritance-chain resolution outcome.
func (o *RecordingObserver) OnInheritance(agentIdx int, ok bool) {
	o.events = append(o.events, Event{
		Timestep: o.timestep, Kind: EventInheritance, AgentA: agentIdx, OK: ok,
	})
}

var _ pibt.Observer = (*RecordingObserver)(nil)
