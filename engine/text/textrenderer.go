package text

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/ember/engine/gfx/batch"
)

// DrawText emits one textured quad per glyph of s through r. pos is the
// baseline origin in scene units; scale multiplies the glyph pixel metrics.
// Glyphs share the batcher's texture slot table with every other textured
// primitive, so long runs batch into the same draw commands.
func DrawText(r *batch.Renderer, f *Font, s string, pos, scale mgl32.Vec2, color mgl32.Vec4) {
	x := pos[0]
	y := pos[1]

	// Small u epsilons, scaled by the font size, keep samples from bleeding
	// into the neighboring glyph columns.
	clean := 0.00001 * f.SizePx

	for _, c := range s {
		g, ok := f.Glyphs[c]
		if !ok {
			continue
		}

		normWidth := SpriteCoordinate(mgl32.Vec2{g.Size[0], 0}, f.AtlasW, f.AtlasH)[0] - 0.00002*f.SizePx

		xpos := x + g.Bearing[0]*scale[0]
		ypos := y - (g.Size[1]-g.Bearing[1])*scale[1]
		w := g.Size[0] * scale[0]
		h := g.Size[1] * scale[1]

		corners := [batch.QuadVertexCount]mgl32.Vec3{
			{xpos, ypos, 0},
			{xpos + w, ypos, 0},
			{xpos + w, ypos + h, 0},
			{xpos, ypos + h, 0},
		}
		coords := [batch.QuadVertexCount]mgl32.Vec2{
			{g.Offset + clean, g.VBottom},
			{g.Offset + normWidth + clean, g.VBottom},
			{g.Offset + normWidth + clean, 0},
			{g.Offset + clean, 0},
		}

		r.DrawQuadCorners(corners, coords, f.Texture, color)

		// Advance is stored in 1/64 pixel units.
		x += float32(g.Advance>>6) * scale[0]
	}
}

// MeasureText reports the width and height of s at the given scale, without
// emitting anything.
func MeasureText(f *Font, s string, scale mgl32.Vec2) (width, height float32) {
	height = (f.Ascent - f.Descent) * scale[1]
	for _, c := range s {
		g, ok := f.Glyphs[c]
		if !ok {
			continue
		}
		width += float32(g.Advance>>6) * scale[0]
	}
	return width, height
}

// LineHeight is the baseline-to-baseline distance at the given vertical scale.
func LineHeight(f *Font, scaleY float32) float32 {
	return (f.Ascent - f.Descent) * scaleY
}
