package glbackend

import "github.com/go-gl/gl/v4.5-core/gl"

// Texture is an immutable-storage RGBA8 2D texture.
type Texture struct {
	id   uint32
	w, h int
}

// NewTextureRGBA8 uploads tightly packed RGBA pixels (row-major). Nearest
// filtering and clamped wrapping, which is what atlases want.
func NewTextureRGBA8(w, h int, pixels []byte) *Texture {
	t := &Texture{w: w, h: h}
	gl.CreateTextures(gl.TEXTURE_2D, 1, &t.id)
	gl.TextureStorage2D(t.id, 1, gl.RGBA8, int32(w), int32(h))
	gl.TextureParameteri(t.id, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TextureParameteri(t.id, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TextureParameteri(t.id, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TextureParameteri(t.id, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	if len(pixels) > 0 {
		gl.TextureSubImage2D(t.id, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	}
	return t
}

func (t *Texture) TextureID() uint32 { return t.id }
func (t *Texture) Size() (int, int)  { return t.w, t.h }

func (t *Texture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
