package batch

import "github.com/go-gl/mathgl/mgl32"

// Buffer is the contract the batcher needs from a GPU-side buffer object.
// Implementations persist across frames; the batcher overwrites their
// contents in place on every flush.
type Buffer interface {
	Bind()
	SetData(data []byte, offset int)
	Capacity() int
}

// Shader is a compiled program. SetIntArray is used once at init to bind the
// sampler table indices.
type Shader interface {
	Bind()
	SetIntArray(name string, values []int32)
	ID() uint32
}

// Texture is anything that resolves to a GL texture name.
type Texture interface {
	TextureID() uint32
}

// Camera supplies the scene transform. The batcher combines projection and
// view once per BeginScene.
type Camera interface {
	Projection() mgl32.Mat4
	View() mgl32.Mat4
}

// Device issues the low-level commands the batcher cannot express through
// Buffer/Shader alone.
type Device interface {
	DrawMultiIndirect(commandCount, stride int)
	SetPolygonMode(wireframe bool)
	BindTextureUnit(unit uint32, texture uint32)
	SetLineWidth(width float32)
}

// Flags are scene-global render switches, set once in BeginScene.
type Flags uint32

const (
	// FlagWireframe draws the scene with line polygon mode.
	FlagWireframe Flags = 1 << iota
	// FlagTopLeftOrigin treats positions as the shape's top-left corner
	// instead of its center.
	FlagTopLeftOrigin
)

// Config bounds the arena sizes. The batcher never exceeds these without
// flushing first. Zero values pick the defaults.
type Config struct {
	MaxVertices     int
	MaxIndices      int
	MaxDrawCommands int
	MaxTextureSlots int
}

// WithDefaults fills in unset limits. Texture slots are capped at 32, the
// common GL sampler-array limit.
func (c Config) WithDefaults() Config {
	if c.MaxVertices <= 0 {
		c.MaxVertices = 40000
	}
	if c.MaxIndices <= 0 {
		c.MaxIndices = 60000
	}
	if c.MaxDrawCommands <= 0 {
		c.MaxDrawCommands = 64
	}
	if c.MaxTextureSlots <= 0 || c.MaxTextureSlots > 32 {
		c.MaxTextureSlots = 32
	}
	return c
}

// Target bundles the GPU resources one renderer submits into.
type Target struct {
	Vertices  Buffer
	Indices   Buffer
	Commands  Buffer
	Transform Buffer // shared projection*view storage block
	Shader    Shader
	Device    Device
}
