package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveCamera is a yaw/pitch fly camera for 3D scenes.
type PerspectiveCamera struct {
	Position  mgl32.Vec3
	YawDeg    float32 // -90 looks down -Z
	PitchDeg  float32
	FovYDeg   float32
	Aspect    float32
	Near, Far float32
}

func NewPerspective(fovYDeg float32, viewportW, viewportH int) *PerspectiveCamera {
	return &PerspectiveCamera{
		Position: mgl32.Vec3{0, 0, 3},
		YawDeg:   -90,
		FovYDeg:  fovYDeg,
		Aspect:   float32(viewportW) / float32(viewportH),
		Near:     0.1,
		Far:      100,
	}
}

func (c *PerspectiveCamera) SetViewportPixels(w, h int) {
	if h > 0 {
		c.Aspect = float32(w) / float32(h)
	}
}

// Forward derives the look direction from yaw and pitch.
func (c *PerspectiveCamera) Forward() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.YawDeg))
	pitch := float64(mgl32.DegToRad(c.PitchDeg))
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

func (c *PerspectiveCamera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovYDeg), c.Aspect, c.Near, c.Far)
}

func (c *PerspectiveCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}
