package main

import (
	"fmt"
	"time"

	"github.com/lixenwraith/ascii3d/input"
)

const helpLine = "xyz rotate  spc spin  p pause  s shape  o proj  +/- zoom  r reset  q quit"

// fpsMeter averages frame rate over one-second windows
type fpsMeter struct {
	frames  int
	elapsed time.Duration
	value   float64
}

// tick records one frame; returns true when a new reading is available
func (m *fpsMeter) tick(dt time.Duration) bool {
	m.frames++
	m.elapsed += dt
	if m.elapsed < time.Second {
		return false
	}
	m.value = float64(m.frames) / m.elapsed.Seconds()
	m.frames = 0
	m.elapsed = 0
	return true
}

func (a *app) drawHUD(v input.View) {
	status := fmt.Sprintf("%s  %s  zoom %.2f  fps %.0f", v.Shape, v.Projection, v.Zoom, a.fps.value)
	switch {
	case v.Paused:
		status += "  [paused]"
	case !v.Spin:
		status += "  [spin off]"
	}
	if v.Sound {
		status += "  [sound]"
	}
	a.fb.DrawText(0, 0, status, hudDepth)

	rot := v.Rotation
	a.fb.DrawText(0, 1, fmt.Sprintf("rot %.0f %.0f %.0f  faces %d drawn %d culled %d",
		float64(rot.X), float64(rot.Y), float64(rot.Z), a.stats.Faces, a.stats.Drawn, a.stats.Culled), hudDepth)

	if h := a.fb.Height(); h > 3 {
		a.fb.DrawText(0, h-1, helpLine, hudDepth)
	}
}
