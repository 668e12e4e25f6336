package main

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/ember/engine/assets"
	"github.com/hubastard/ember/engine/colors"
	"github.com/hubastard/ember/engine/core"
	"github.com/hubastard/ember/engine/gfx/batch"
	glbackend "github.com/hubastard/ember/engine/gfx/gl"
	"github.com/hubastard/ember/engine/scene"
)

// Layer2D exercises every primitive the batcher knows: quads, rotated and
// textured quads, triangles, lines, and a spinning cube rendered through a
// perspective camera in a second scene bracket.
type Layer2D struct {
	r       *batch.Renderer
	cam     *scene.OrthoCamera2D
	ctrl    *scene.OrthoController2D
	cam3d   *scene.PerspectiveCamera
	checker *glbackend.Texture
	t       float32

	custom    *glbackend.Shader // optional override, toggled with P
	useCustom bool
	pHeld     bool
}

func (l *Layer2D) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewOrtho2D(w, h)
	l.ctrl = scene.NewOrthoController2D(l.cam)
	l.cam3d = scene.NewPerspective(45, w, h)
	l.cam3d.Position = mgl32.Vec3{0, 1.5, 4}
	l.cam3d.PitchDeg = -20

	if tw, th, pixels, err := assets.LoadPNG("checker.png"); err == nil {
		l.checker = glbackend.NewTextureRGBA8(tw, th, pixels)
	} else {
		l.checker = glbackend.NewTextureRGBA8(2, 2, checkerPixels())
	}

	if sh, err := glbackend.NewShaderFromAssets("batch.vert", "flat.frag"); err == nil {
		l.custom = sh
	}
}

func (l *Layer2D) OnDetach(e *core.Engine) {
	l.checker.Delete()
	if l.custom != nil {
		l.custom.Delete()
	}
}

func (l *Layer2D) OnUpdate(e *core.Engine, dt float64) {
	l.ctrl.Update(e, float32(dt))
	l.t += float32(dt)

	if down := e.Input.IsKeyDown(core.KeyP); down && !l.pHeld {
		l.useCustom = !l.useCustom
		l.pHeld = true
	} else if !down {
		l.pHeld = false
	}

	if e.Input.IsKeyDown(core.KeyEscape) {
		e.Window.RequestClose()
	}
}

func (l *Layer2D) OnRender(e *core.Engine, alpha float64) {
	r := l.r

	r.BeginScene(l.cam, 0)
	{
		if l.useCustom && l.custom != nil {
			r.SetShader(l.custom)
		}
		r.DrawQuad(mgl32.Vec3{-220, 0, 0}, mgl32.Vec2{120, 120}, colors.Red)
		r.DrawRotatedQuad(mgl32.Vec3{0, 0, 0}, l.t*45, mgl32.Vec3{0, 0, 1}, mgl32.Vec2{120, 120}, colors.Green)
		r.DrawTexturedQuad(mgl32.Vec3{220, 0, 0}, mgl32.Vec2{120, 120}, l.checker, colors.White)

		r.DrawTriangle(mgl32.Vec3{-220, 180, 0}, mgl32.Vec2{100, 100}, colors.Yellow)
		r.DrawRotatedTriangle(mgl32.Vec3{0, 180, 0}, -l.t*30, mgl32.Vec3{0, 0, 1}, mgl32.Vec2{100, 100}, colors.Cyan)

		r.DrawLine(mgl32.Vec2{-300, -160}, mgl32.Vec2{300, -160}, colors.Magenta, 4)
		r.DrawLine(mgl32.Vec2{-300, -200}, mgl32.Vec2{300, -240}, colors.WithAlpha(colors.White, 0.6), 2)
	}
	r.EndScene()

	r.BeginScene(l.cam3d, 0)
	{
		r.DrawRotatedCube(mgl32.Vec3{0, 0, 0}, l.t*60, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1.5, 1.5, 1.5}, colors.Blue)
		r.DrawTexturedCube(mgl32.Vec3{-2.5, 0, -1}, mgl32.Vec3{1, 1, 1}, l.checker, colors.White)
	}
	r.EndScene()
}

func (l *Layer2D) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventResize:
		l.cam.SetViewportPixels(v.W, v.H)
		l.cam3d.SetViewportPixels(v.W, v.H)
	}
	return false
}

// 2x2 white/gray checker used when no texture asset is present.
func checkerPixels() []byte {
	return []byte{
		255, 255, 255, 255, 128, 128, 128, 255,
		128, 128, 128, 255, 255, 255, 255, 255,
	}
}
