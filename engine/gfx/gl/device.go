package glbackend

import "github.com/go-gl/gl/v4.5-core/gl"

// Device implements batch.Device on the GL context owned by the calling
// goroutine.
type Device struct{}

// DrawMultiIndirect issues one glMultiDrawElementsIndirect over the currently
// bound indirect buffer. Stride 0 means tightly packed commands.
func (Device) DrawMultiIndirect(commandCount, stride int) {
	gl.MultiDrawElementsIndirect(gl.TRIANGLES, gl.UNSIGNED_INT, nil, int32(commandCount), int32(stride))
}

func (Device) SetPolygonMode(wireframe bool) {
	if wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (Device) BindTextureUnit(unit uint32, texture uint32) {
	if texture != 0 {
		gl.BindTextureUnit(unit, texture)
	}
}

func (Device) SetLineWidth(width float32) {
	if width > 0 {
		gl.LineWidth(width)
	}
}
