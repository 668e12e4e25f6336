package glbackend

import (
	"github.com/go-gl/gl/v4.5-core/gl"

	"github.com/hubastard/ember/engine/gfx/batch"
)

// VertexArray declares the batch vertex layout over a vertex and index
// buffer: pos3 + color4 + uv2 + texIndex1 + materialID1, all float32.
type VertexArray struct {
	id uint32
}

func NewVertexArray(vertices, indices *Buffer) *VertexArray {
	va := &VertexArray{}
	gl.CreateVertexArrays(1, &va.id)

	sizes := []int32{3, 4, 2, 1, 1}
	offset := uint32(0)
	for loc, size := range sizes {
		gl.EnableVertexArrayAttrib(va.id, uint32(loc))
		gl.VertexArrayAttribFormat(va.id, uint32(loc), size, gl.FLOAT, false, offset*4)
		gl.VertexArrayAttribBinding(va.id, uint32(loc), 0)
		offset += uint32(size)
	}

	gl.VertexArrayVertexBuffer(va.id, 0, vertices.ID(), 0, int32(batch.VertexStride))
	gl.VertexArrayElementBuffer(va.id, indices.ID())
	return va
}

func (va *VertexArray) Bind() { gl.BindVertexArray(va.id) }

func (va *VertexArray) Delete() {
	if va.id != 0 {
		gl.DeleteVertexArrays(1, &va.id)
		va.id = 0
	}
}
