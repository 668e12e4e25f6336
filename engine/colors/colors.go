package colors

import "github.com/go-gl/mathgl/mgl32"

// Color aliases mgl32.Vec4 so palette values feed the renderer directly.
type Color = mgl32.Vec4

var (
	White    = Color{1, 1, 1, 1}
	Red      = Color{1, 0, 0, 1}
	Green    = Color{0, 1, 0, 1}
	Blue     = Color{0, 0, 1, 1}
	Black    = Color{0, 0, 0, 1}
	Magenta  = Color{1, 0, 1, 1}
	Cyan     = Color{0, 1, 1, 1}
	Yellow   = Color{1, 1, 0, 1}
	Gray     = Color{0.5, 0.5, 0.5, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
)

func WithAlpha(c Color, a float32) Color {
	c[3] = a
	return c
}
