package scene

import "github.com/go-gl/mathgl/mgl32"

// OrthoCamera2D provides an orthographic camera with position, rotation,
// zoom. It satisfies the batcher's Camera contract.
type OrthoCamera2D struct {
	Left, Right, Bottom, Top float32
	Near, Far                float32
	X, Y                     float32
	RotationRad              float32
	Zoom                     float32 // 1 = no zoom
}

func NewOrtho2D(width, height int) *OrthoCamera2D {
	halfW := float32(width) * 0.5
	halfH := float32(height) * 0.5
	return &OrthoCamera2D{
		Left: -halfW, Right: halfW,
		Bottom: -halfH, Top: halfH,
		Near: -1, Far: 1,
		Zoom: 1,
	}
}

func (c *OrthoCamera2D) SetViewportPixels(w, h int) {
	halfW := float32(w) * 0.5
	halfH := float32(h) * 0.5
	c.Left, c.Right = -halfW, halfW
	c.Bottom, c.Top = -halfH, halfH
}

func (c *OrthoCamera2D) SetPosition(x, y float32) { c.X, c.Y = x, y }
func (c *OrthoCamera2D) Move(dx, dy float32)     { c.X += dx; c.Y += dy }
func (c *OrthoCamera2D) Rotate(dRad float32)     { c.RotationRad += dRad }

func (c *OrthoCamera2D) SetZoom(z float32) {
	if z < 0.05 {
		z = 0.05
	}
	c.Zoom = z
}

func (c *OrthoCamera2D) Width() float32  { return c.Right - c.Left }
func (c *OrthoCamera2D) Height() float32 { return c.Top - c.Bottom }

func (c *OrthoCamera2D) Projection() mgl32.Mat4 {
	z := c.Zoom
	return mgl32.Ortho(c.Left/z, c.Right/z, c.Bottom/z, c.Top/z, c.Near, c.Far)
}

// View is R(-rot) * T(-pos), the inverse of the camera transform.
func (c *OrthoCamera2D) View() mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(-c.RotationRad).Mul4(mgl32.Translate3D(-c.X, -c.Y, 0))
}
