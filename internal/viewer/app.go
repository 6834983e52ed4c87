package viewer

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
	"github.com/elektrokombinacija/fspibt-grid/internal/solutionlog"
)

// App is the grid/footprint/timeline viewer application, adapted from
// the research visualizer's App down to a single read-only 2D surface
// (SPEC_FULL.md §4): no camera, no editing, just a solved plan played
// back over its grid.
type App struct {
	state    *State
	theme    *material.Theme
	grid     *GridView
	timeline *Timeline
}

// NewApp builds a viewer over an already-solved run.
func NewApp(g *gridmap.Grid, footprints []footprint.Footprint, summary solutionlog.Summary) *App {
	st := NewState(g, footprints, summary)
	return &App{
		state:    st,
		theme:    material.NewTheme(),
		grid:     NewGridView(st),
		timeline: NewTimeline(st),
	}
}

// State exposes the underlying viewer state, so a caller can attach a
// RecordingObserver before Run starts receiving frames.
func (a *App) State() *State { return a.state }

// Run drives the Gio event loop until the window closes.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.state.Playback.Playing {
				a.state.Playback.Advance()
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	switch e.Name {
	case key.NameSpace:
		a.state.Playback.TogglePlay()
	case key.NameLeftArrow:
		a.state.Playback.StepBack()
	case key.NameRightArrow:
		a.state.Playback.StepForward()
	case key.NameHome:
		a.state.Playback.Reset()
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 20, G: 20, B: 24, A: 255})
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.grid.Layout(gtx, a.theme)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeline.Layout(gtx, a.theme)
		}),
	)
}
