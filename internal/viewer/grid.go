package viewer

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
)

const cellSize = 28

var (
	colorBackground = color.NRGBA{R: 25, G: 28, B: 32, A: 255}
	colorBlocked    = color.NRGBA{R: 50, G: 50, B: 55, A: 255}
	colorPassable   = color.NRGBA{R: 40, G: 45, B: 50, A: 255}
	colorGoal       = color.NRGBA{R: 255, G: 215, B: 0, A: 160}
	colorAgent      = color.NRGBA{R: 100, G: 200, B: 255, A: 255}
	colorEscapeOK   = color.NRGBA{R: 120, G: 220, B: 140, A: 255}
	colorEscapeFail = color.NRGBA{R: 220, G: 90, B: 90, A: 255}
)

// GridView is the main 2D render surface: the grid, blocked cells,
// per-agent footprints at the current playback step, and goal markers.
// Adapted from widgets.Workspace, dropping the pan/zoom camera and
// click-to-edit interaction the research visualizer needed and this
// read-only viewer does not (SPEC_FULL.md §4).
type GridView struct {
	state *State
}

// NewGridView creates a grid view bound to st.
func NewGridView(st *State) *GridView {
	return &GridView{state: st}
}

// Layout renders the grid for the current playback step.
func (v *GridView) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, colorBackground)

	g := v.state.Grid
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			col := colorPassable
			if !g.Exists(x, y) {
				col = colorBlocked
			}
			rect := image.Rect(x*cellSize, y*cellSize, (x+1)*cellSize-1, (y+1)*cellSize-1)
			paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
		}
	}

	for _, goal := range v.state.Summary.Goals {
		cx := float32(goal.X*cellSize) + cellSize/2
		cy := float32(goal.Y*cellSize) + cellSize/2
		drawDiamond(gtx, cx, cy, cellSize/3, colorGoal)
	}

	positions := v.state.CurrentConfig()
	for i, p := range positions {
		cx := float32(p.X*cellSize) + cellSize/2
		cy := float32(p.Y*cellSize) + cellSize/2
		drawFootprint(gtx, cx, cy, v.state.Footprints[i], colorAgent)
	}

	for _, ev := range v.state.EventsAt(int(v.state.Playback.CurrentStep)) {
		drawEventMarker(gtx, v.state, ev)
	}

	return layout.Dimensions{Size: bounds}
}

func drawFootprint(gtx layout.Context, cx, cy float32, fp footprint.Footprint, col color.NRGBA) {
	if fp.Kind == footprint.Disk {
		r := float32(fp.R) * cellSize
		drawCircle(gtx, cx, cy, r, col)
		return
	}
	s := float32(fp.S) * cellSize
	rect := image.Rect(int(cx-s), int(cy-s), int(cx+s), int(cy+s))
	paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
}

func drawCircle(gtx layout.Context, cx, cy, r float32, col color.NRGBA) {
	var p clip.Path
	p.Begin(gtx.Ops)
	const segments = 24
	for i := 0; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / segments
		x := cx + r*float32(math.Cos(theta))
		y := cy + r*float32(math.Sin(theta))
		if i == 0 {
			p.MoveTo(f32.Pt(x, y))
		} else {
			p.LineTo(f32.Pt(x, y))
		}
	}
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: p.End()}.Op())
}

func drawDiamond(gtx layout.Context, cx, cy, r float32, col color.NRGBA) {
	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(f32.Pt(cx, cy-r))
	p.LineTo(f32.Pt(cx+r, cy))
	p.LineTo(f32.Pt(cx, cy+r))
	p.LineTo(f32.Pt(cx-r, cy))
	p.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: p.End()}.Op())
}

func drawEventMarker(gtx layout.Context, st *State, ev Event) {
	if ev.AgentA < 0 || ev.AgentA >= len(st.Footprints) {
		return
	}
	positions := st.CurrentConfig()
	p := positions[ev.AgentA]
	cx := float32(p.X*cellSize) + cellSize/2
	cy := float32(p.Y*cellSize) + cellSize/6
	col := colorEscapeFail
	if ev.OK {
		col = colorEscapeOK
	}
	rect := image.Rect(int(cx-4), int(cy-4), int(cx+4), int(cy+4))
	paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
}
