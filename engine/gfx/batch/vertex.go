package batch

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the interleaved layout consumed by the default shader:
// pos3 + color4 + uv2 + texIndex1 + materialID1 = 11 floats.
type Vertex struct {
	Position   mgl32.Vec3
	Color      mgl32.Vec4
	TexCoord   mgl32.Vec2
	TexIndex   float32
	MaterialID float32
}

// NoTexture marks a vertex that samples no texture.
const NoTexture float32 = -1

// NoMaterial is the material sentinel restored at BeginScene.
const NoMaterial int32 = -1

const (
	QuadVertexCount     = 4
	QuadIndexCount      = 6
	TriangleVertexCount = 3
	TriangleIndexCount  = 3
	CubeFaceCount       = 6
	CubeVertexCount     = CubeFaceCount * QuadVertexCount
	CubeIndexCount      = CubeFaceCount * QuadIndexCount
)

// DrawCommand mirrors the glDrawElementsIndirect command layout. BaseInstance
// doubles as a per-draw identifier the shader can index with.
type DrawCommand struct {
	VertexCount   uint32
	InstanceCount uint32
	FirstIndex    uint32
	BaseVertex    uint32
	BaseInstance  uint32
}

const (
	VertexStride      = int(unsafe.Sizeof(Vertex{}))
	IndexStride       = int(unsafe.Sizeof(uint32(0)))
	DrawCommandStride = int(unsafe.Sizeof(DrawCommand{}))
)

// Reference shapes the emitters transform. Quad and triangle are centered on
// the origin with side 1; the cube spans the unit box around the origin, one
// quad-ordered group of four corners per face.
var (
	quadPositions = [QuadVertexCount]mgl32.Vec4{
		{-0.5, -0.5, 0, 1},
		{0.5, -0.5, 0, 1},
		{0.5, 0.5, 0, 1},
		{-0.5, 0.5, 0, 1},
	}

	trianglePositions = [TriangleVertexCount]mgl32.Vec4{
		{-0.5, -0.5, 0, 1},
		{0.5, -0.5, 0, 1},
		{0, 0.5, 0, 1},
	}

	quadTexCoords = [QuadVertexCount]mgl32.Vec2{
		{0, 0},
		{1, 0},
		{1, 1},
		{0, 1},
	}

	cubePositions = [CubeVertexCount]mgl32.Vec4{
		// front (+z)
		{-0.5, -0.5, 0.5, 1},
		{0.5, -0.5, 0.5, 1},
		{0.5, 0.5, 0.5, 1},
		{-0.5, 0.5, 0.5, 1},
		// back (-z)
		{0.5, -0.5, -0.5, 1},
		{-0.5, -0.5, -0.5, 1},
		{-0.5, 0.5, -0.5, 1},
		{0.5, 0.5, -0.5, 1},
		// left (-x)
		{-0.5, -0.5, -0.5, 1},
		{-0.5, -0.5, 0.5, 1},
		{-0.5, 0.5, 0.5, 1},
		{-0.5, 0.5, -0.5, 1},
		// right (+x)
		{0.5, -0.5, 0.5, 1},
		{0.5, -0.5, -0.5, 1},
		{0.5, 0.5, -0.5, 1},
		{0.5, 0.5, 0.5, 1},
		// top (+y)
		{-0.5, 0.5, 0.5, 1},
		{0.5, 0.5, 0.5, 1},
		{0.5, 0.5, -0.5, 1},
		{-0.5, 0.5, -0.5, 1},
		// bottom (-y)
		{-0.5, -0.5, -0.5, 1},
		{0.5, -0.5, -0.5, 1},
		{0.5, -0.5, 0.5, 1},
		{-0.5, -0.5, 0.5, 1},
	}
)

// Raw byte views over the arenas, valid until the backing slice reallocates.
// The arenas never reallocate after New, so these are safe to hand to the
// buffer contract for the duration of a SetData call.

func vertexBytes(v []Vertex) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*VertexStride)
}

func indexBytes(v []uint32) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*IndexStride)
}

func commandBytes(v []DrawCommand) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*DrawCommandStride)
}

func matrixBytes(m *mgl32.Mat4) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&m[0])), int(unsafe.Sizeof(*m)))
}
