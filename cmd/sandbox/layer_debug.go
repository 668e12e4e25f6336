package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/ember/engine/colors"
	"github.com/hubastard/ember/engine/core"
	"github.com/hubastard/ember/engine/gfx/batch"
	"github.com/hubastard/ember/engine/scene"
	"github.com/hubastard/ember/engine/text"
)

// LayerDebug overlays last-frame batcher statistics as text, rendered through
// the same batcher with a top-left-origin scene.
type LayerDebug struct {
	r     *batch.Renderer
	font  *text.Font
	cam   *scene.OrthoCamera2D
	stats batch.Statistics
	tick  int
}

func (l *LayerDebug) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewOrtho2D(w, h)
	l.cam.SetPosition(float32(w/2), float32(h/2)) // origin top-left
}

func (l *LayerDebug) OnDetach(e *core.Engine) {}

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) { l.tick++ }

func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {
	if l.font == nil {
		return
	}
	// Snapshot before our own overlay resets the counters.
	l.stats = l.r.Stats()

	scale := mgl32.Vec2{0.5, 0.5}
	lineH := text.LineHeight(l.font, scale[1])

	l.r.BeginScene(l.cam, batch.FlagTopLeftOrigin)
	y := lineH
	for _, line := range []string{
		fmt.Sprintf("frame %d", l.tick),
		fmt.Sprintf("draw calls: %d", l.stats.DrawCalls),
		fmt.Sprintf("quads: %d  tris: %d  cubes: %d", l.stats.Quads, l.stats.Triangles, l.stats.Cubes),
		fmt.Sprintf("textures: %d", l.stats.TextureCount),
	} {
		text.DrawText(l.r, l.font, line, mgl32.Vec2{8, y}, scale, colors.Yellow)
		y += lineH
	}
	l.r.EndScene()
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	if v, ok := ev.(core.EventResize); ok {
		l.cam.SetViewportPixels(v.W, v.H)
		l.cam.SetPosition(float32(v.W/2), float32(v.H/2))
	}
	return false
}
