package scene

import (
	"math"

	"github.com/hubastard/ember/engine/core"
)

// OrthoController2D: WASD move, Q/E rotate, Z/X or the scroll wheel zoom.
type OrthoController2D struct {
	MoveSpeed float32
	RotSpeed  float32
	ZoomSpeed float32
	Camera    *OrthoCamera2D
}

func NewOrthoController2D(cam *OrthoCamera2D) *OrthoController2D {
	return &OrthoController2D{
		MoveSpeed: 200,
		RotSpeed:  2.0,
		ZoomSpeed: 1.2,
		Camera:    cam,
	}
}

func (cc *OrthoController2D) Update(e *core.Engine, dt float32) {
	in := e.Input
	speed := cc.MoveSpeed * dt / cc.Camera.Zoom
	rotSpeed := cc.RotSpeed * dt

	if in.IsKeyDown(core.KeyW) {
		cc.Camera.Move(0, speed)
	}
	if in.IsKeyDown(core.KeyS) {
		cc.Camera.Move(0, -speed)
	}
	if in.IsKeyDown(core.KeyA) {
		cc.Camera.Move(-speed, 0)
	}
	if in.IsKeyDown(core.KeyD) {
		cc.Camera.Move(speed, 0)
	}
	if in.IsKeyDown(core.KeyQ) {
		cc.Camera.Rotate(rotSpeed)
	}
	if in.IsKeyDown(core.KeyE) {
		cc.Camera.Rotate(-rotSpeed)
	}
	if in.IsKeyDown(core.KeyZ) {
		cc.Camera.SetZoom(cc.Camera.Zoom / cc.ZoomSpeed)
	}
	if in.IsKeyDown(core.KeyX) {
		cc.Camera.SetZoom(cc.Camera.Zoom * cc.ZoomSpeed)
	}

	if _, yoff := in.TakeScroll(); yoff != 0 {
		cc.Camera.SetZoom(cc.Camera.Zoom * float32(math.Pow(float64(cc.ZoomSpeed), yoff)))
	}
}
