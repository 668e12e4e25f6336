package glbackend

import "github.com/go-gl/gl/v4.5-core/gl"

// Buffer wraps a named GL buffer with immutable storage. Contents are
// rewritten in place each flush via NamedBufferSubData.
type Buffer struct {
	id     uint32
	target uint32
	size   int
}

func NewVertexBuffer(size int) *Buffer   { return newBuffer(gl.ARRAY_BUFFER, size) }
func NewIndexBuffer(size int) *Buffer    { return newBuffer(gl.ELEMENT_ARRAY_BUFFER, size) }
func NewIndirectBuffer(size int) *Buffer { return newBuffer(gl.DRAW_INDIRECT_BUFFER, size) }

func newBuffer(target uint32, size int) *Buffer {
	b := &Buffer{target: target, size: size}
	gl.CreateBuffers(1, &b.id)
	gl.NamedBufferStorage(b.id, size, nil, gl.DYNAMIC_STORAGE_BIT)
	return b
}

func (b *Buffer) Bind()         { gl.BindBuffer(b.target, b.id) }
func (b *Buffer) Capacity() int { return b.size }
func (b *Buffer) ID() uint32    { return b.id }

func (b *Buffer) SetData(data []byte, offset int) {
	if len(data) == 0 {
		return
	}
	gl.NamedBufferSubData(b.id, offset, len(data), gl.Ptr(data))
}

func (b *Buffer) Delete() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

// ShaderStorageBuffer is a Buffer that also attaches to an SSBO bind point on
// Bind, so the shader sees it as a storage block.
type ShaderStorageBuffer struct {
	Buffer
	bindPoint uint32
}

func NewShaderStorageBuffer(size int, bindPoint uint32) *ShaderStorageBuffer {
	b := &ShaderStorageBuffer{bindPoint: bindPoint}
	b.target = gl.SHADER_STORAGE_BUFFER
	b.size = size
	gl.CreateBuffers(1, &b.id)
	gl.NamedBufferStorage(b.id, size, nil, gl.DYNAMIC_STORAGE_BIT)
	return b
}

func (b *ShaderStorageBuffer) Bind() {
	gl.BindBuffer(b.target, b.id)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, b.bindPoint, b.id)
}
