package viewer

import (
	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
	"github.com/elektrokombinacija/fspibt-grid/internal/solutionlog"
)

// State holds everything the viewer needs to render one solved run: the
// grid it ran on, the per-agent footprints, the solution log summary,
// and playback position. Grounded on the original vis/state.State, with
// Instance/Solution collapsed into the grid+Summary this repo already
// produces.
type State struct {
	Grid       *gridmap.Grid
	Footprints []footprint.Footprint
	Summary    solutionlog.Summary
	Playback   *PlaybackState

	// Live events accumulated from an Observer while the scheduler ran,
	// kept for the escape/inheritance overlay.
	Events []Event
}

// Event is one narrated scheduling event, adapted from the CBS tree
// observer's node/conflict events onto PIBT's escape/inheritance steps.
type Event struct {
	Timestep int
	Kind     EventKind
	AgentA   int
	AgentB   int
	OK       bool
}

// EventKind distinguishes the two events a PIBT run produces worth
// narrating live.
type EventKind int

const (
	EventEscape EventKind = iota
	EventInheritance
)

// NewState builds viewer state for a solved (or unsolved) Summary.
func NewState(g *gridmap.Grid, footprints []footprint.Footprint, summary solutionlog.Summary) *State {
	maxStep := 0
	if len(summary.Solution) > 0 {
		maxStep = len(summary.Solution) - 1
	}
	return &State{
		Grid:       g,
		Footprints: footprints,
		Summary:    summary,
		Playback:   NewPlaybackState(maxStep),
	}
}

// CurrentConfig returns the interpolated agent positions at the current
// playback step: since PIBT positions are discrete per timestep, this
// linearly interpolates between the floor and ceil steps purely for
// smooth on-screen motion, with no effect on the underlying plan.
func (s *State) CurrentConfig() []Pos {
	n := len(s.Footprints)
	out := make([]Pos, n)
	if len(s.Summary.Solution) == 0 {
		for i := range out {
			out[i] = cellPos(s.Summary.Starts[i])
		}
		return out
	}

	t := s.Playback.CurrentStep
	lo := int(t)
	hi := lo + 1
	if hi >= len(s.Summary.Solution) {
		hi = len(s.Summary.Solution) - 1
	}
	if lo >= len(s.Summary.Solution) {
		lo = len(s.Summary.Solution) - 1
	}
	alpha := t - float64(lo)

	for i := 0; i < n; i++ {
		a := cellPos(s.Summary.Solution[lo][i])
		b := cellPos(s.Summary.Solution[hi][i])
		out[i] = Pos{
			X: a.X + alpha*(b.X-a.X),
			Y: a.Y + alpha*(b.Y-a.Y),
		}
	}
	return out
}

// EventsAt returns events narrated at exactly timestep t, for the
// timeline overlay.
func (s *State) EventsAt(t int) []Event {
	var out []Event
	for _, e := range s.Events {
		if e.Timestep == t {
			out = append(out, e)
		}
	}
	return out
}

// Pos is a floating-point grid position, used only for interpolated
// rendering.
type Pos struct{ X, Y float64 }

func cellPos(c gridmap.Cell) Pos {
	return Pos{X: float64(c.X), Y: float64(c.Y)}
}
