// Package viewer implements a Gio-based grid/footprint/timeline viewer
// for LA-PIBT and FSPIBT solution logs, repurposing the research
// visualizer's playback and widget layer onto a 4-connected grid
// instead of a continuous 3D airspace (SPEC_FULL.md §4).
package viewer

import "time"

// PlaybackState manages scrubbing through a solved plan's timesteps.
// Grounded on the original continuous-time PlaybackState, but the unit
// here is a discrete timestep index rather than seconds, since PIBT
// commits one joint configuration per timestep (spec.md §4.6).
type PlaybackState struct {
	CurrentStep float64
	MaxStep     int
	Speed       float64
	Playing     bool
	lastUpdate  time.Time
}

// NewPlaybackState creates a playback state over maxStep timesteps.
func NewPlaybackState(maxStep int) *PlaybackState {
	return &PlaybackState{MaxStep: maxStep, Speed: 1.0, lastUpdate: time.Now()}
}

// TogglePlay toggles playback, restarting from zero once it is at the end.
func (p *PlaybackState) TogglePlay() {
	p.Playing = !p.Playing
	if p.Playing {
		p.lastUpdate = time.Now()
		if p.CurrentStep >= float64(p.MaxStep) {
			p.CurrentStep = 0
		}
	}
}

// Pause stops playback.
func (p *PlaybackState) Pause() { p.Playing = false }

// Reset rewinds to the first timestep.
func (p *PlaybackState) Reset() {
	p.CurrentStep = 0
	p.Playing = false
}

// Advance moves playback forward by elapsed wall-clock time, at Speed
// timesteps per second.
func (p *PlaybackState) Advance() {
	if !p.Playing {
		return
	}
	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	p.lastUpdate = now
	p.CurrentStep += elapsed * p.Speed
	if p.CurrentStep >= float64(p.MaxStep) {
		p.CurrentStep = float64(p.MaxStep)
		p.Playing = false
	}
}

// SetStep clamps and sets the current timestep.
func (p *PlaybackState) SetStep(t float64) {
	if t < 0 {
		t = 0
	}
	if t > float64(p.MaxStep) {
		t = float64(p.MaxStep)
	}
	p.CurrentStep = t
}

// StepForward pauses and advances by one whole timestep.
func (p *PlaybackState) StepForward() {
	p.Pause()
	p.SetStep(float64(int(p.CurrentStep)) + 1)
}

// StepBack pauses and rewinds by one whole timestep.
func (p *PlaybackState) StepBack() {
	p.Pause()
	p.SetStep(float64(int(p.CurrentStep)) - 1)
}

// SetSpeed clamps the playback speed to a sane range.
func (p *PlaybackState) SetSpeed(speed float64) {
	if speed < 0.1 {
		speed = 0.1
	}
	if speed > 10 {
		speed = 10
	}
	p.Speed = speed
}

// Progress returns playback position as a 0-1 fraction.
func (p *PlaybackState) Progress() float64 {
	if p.MaxStep <= 0 {
		return 0
	}
	return p.CurrentStep / float64(p.MaxStep)
}
