package batch

import "github.com/go-gl/mathgl/mgl32"

// SubTexture describes a UV sub-rect of a full texture.
type SubTexture struct {
	Texture Texture
	U0, V0  float32
	U1, V1  float32
}

// FromPixels builds a subtexture from pixel coordinates within an atlas.
func FromPixels(tex Texture, x, y, w, h, atlasW, atlasH int) SubTexture {
	u0 := float32(x) / float32(atlasW)
	v0 := float32(y) / float32(atlasH)
	u1 := float32(x+w) / float32(atlasW)
	v1 := float32(y+h) / float32(atlasH)
	return SubTexture{Texture: tex, U0: u0, V0: v0, U1: u1, V1: v1}
}

// FromGrid builds a subtexture from tile grid coordinates (cx,cy) of cell
// size (cw,ch).
func FromGrid(tex Texture, cx, cy, cw, ch, atlasW, atlasH int) SubTexture {
	return FromPixels(tex, cx*cw, cy*ch, cw, ch, atlasW, atlasH)
}

// DrawSubTexQuad emits a quad sampling the sub-rect of sub's texture.
func (r *Renderer) DrawSubTexQuad(pos mgl32.Vec3, size mgl32.Vec2, sub SubTexture, color mgl32.Vec4) {
	uv := [QuadVertexCount]mgl32.Vec2{
		{sub.U0, sub.V0},
		{sub.U1, sub.V0},
		{sub.U1, sub.V1},
		{sub.U0, sub.V1},
	}
	r.DrawTexturedQuadUV(pos, size, sub.Texture, uv, color)
}
