package glbackend

import (
	"github.com/go-gl/gl/v4.5-core/gl"

	"github.com/hubastard/ember/engine/gfx/batch"
	"github.com/hubastard/ember/engine/text"
)

// Backend owns the GL resources behind a batch.Renderer: the four persistent
// buffers, the VAO declaring the vertex layout, and the default shader.
// Create it on the context-owning goroutine and pair with Shutdown.
type Backend struct {
	vao       *VertexArray
	vertices  *Buffer
	indices   *Buffer
	commands  *Buffer
	transform *ShaderStorageBuffer
	shader    *Shader

	renderer *batch.Renderer
}

// arrayBuffer binds the VAO together with the vertex buffer, so the batcher's
// single Bind of its vertex target establishes the full input state.
type arrayBuffer struct {
	*Buffer
	vao *VertexArray
}

func (b arrayBuffer) Bind() {
	b.vao.Bind()
	b.Buffer.Bind()
}

// New allocates buffers sized from cfg, compiles the default shader and
// assembles a ready batch.Renderer.
func New(cfg batch.Config) (*Backend, error) {
	cfg = cfg.WithDefaults()

	be := &Backend{
		vertices:  NewVertexBuffer(cfg.MaxVertices * batch.VertexStride),
		indices:   NewIndexBuffer(cfg.MaxIndices * batch.IndexStride),
		commands:  NewIndirectBuffer(cfg.MaxDrawCommands * batch.DrawCommandStride),
		transform: NewShaderStorageBuffer(16*4, 0),
	}
	be.vao = NewVertexArray(be.vertices, be.indices)

	shader, err := NewShader(defaultVertexSource, defaultFragmentSource)
	if err != nil {
		be.Shutdown()
		return nil, err
	}
	be.shader = shader

	r, err := batch.New(batch.Target{
		Vertices:  arrayBuffer{be.vertices, be.vao},
		Indices:   be.indices,
		Commands:  be.commands,
		Transform: be.transform,
		Shader:    be.shader,
		Device:    Device{},
	}, cfg)
	if err != nil {
		be.Shutdown()
		return nil, err
	}
	be.renderer = r

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.DEPTH_TEST)

	return be, nil
}

// Renderer returns the batcher writing into this backend.
func (be *Backend) Renderer() *batch.Renderer { return be.renderer }

func (be *Backend) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (be *Backend) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// UploadRGBA implements text.TextureUploader for font atlases.
func (be *Backend) UploadRGBA(w, h int, pixels []byte) (text.Texture, error) {
	return NewTextureRGBA8(w, h, pixels), nil
}

func (be *Backend) Shutdown() {
	if be.shader != nil {
		be.shader.Delete()
	}
	if be.vao != nil {
		be.vao.Delete()
	}
	for _, b := range []*Buffer{be.vertices, be.indices, be.commands} {
		if b != nil {
			b.Delete()
		}
	}
	if be.transform != nil {
		be.transform.Delete()
	}
}

const defaultVertexSource = `
#version 450 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec4 aColor;
layout(location = 2) in vec2 aUV;
layout(location = 3) in float aTexIndex;
layout(location = 4) in float aMaterialID;

layout(std430, binding = 0) readonly buffer SceneTransform {
	mat4 uProjView;
};

out vec4 vColor;
out vec2 vUV;
flat out float vTexIndex;
flat out float vMaterialID;

void main() {
	vColor = aColor;
	vUV = aUV;
	vTexIndex = aTexIndex;
	vMaterialID = aMaterialID;
	gl_Position = uProjView * vec4(aPos, 1.0);
}
` + "\x00"

const defaultFragmentSource = `
#version 450 core
in vec4 vColor;
in vec2 vUV;
flat in float vTexIndex;
flat in float vMaterialID;

uniform sampler2D textures[32];

out vec4 FragColor;

void main() {
	vec4 color = vColor;
	int idx = int(vTexIndex);
	if (idx >= 0) {
		color *= texture(textures[idx], vUV);
	}
	FragColor = color;
}
` + "\x00"
