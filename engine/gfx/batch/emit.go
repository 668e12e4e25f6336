package batch

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// quadIndices appends one quad's topology: two triangles, six indices, local
// vertex order 0-1-2-2-3-0.
func (r *Renderer) quadIndices() {
	o := r.indexOffset
	r.inds = append(r.inds, o, o+1, o+2, o+2, o+3, o)
	r.indexOffset += QuadVertexCount
}

func (r *Renderer) triangleIndices() {
	o := r.indexOffset
	r.inds = append(r.inds, o, o+1, o+2)
	r.indexOffset += TriangleVertexCount
}

// modelMatrix composes translate*scale for an axis-aligned shape. With
// FlagTopLeftOrigin the position names the shape's top-left corner, so the
// translation shifts by half the size.
func (r *Renderer) modelMatrix(pos mgl32.Vec3, size mgl32.Vec2) mgl32.Mat4 {
	t := r.translation(pos, size)
	return t.Mul4(mgl32.Scale3D(size[0], size[1], 1))
}

// rotatedModelMatrix composes translate*rotate*scale; rotation is axis-angle
// in degrees.
func (r *Renderer) rotatedModelMatrix(pos mgl32.Vec3, deg float32, axis mgl32.Vec3, size mgl32.Vec2) mgl32.Mat4 {
	t := r.translation(pos, size)
	return t.
		Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(deg), axis)).
		Mul4(mgl32.Scale3D(size[0], size[1], 1))
}

func (r *Renderer) translation(pos mgl32.Vec3, size mgl32.Vec2) mgl32.Mat4 {
	if r.flags&FlagTopLeftOrigin != 0 {
		return mgl32.Translate3D(pos[0]+size[0]/2, pos[1]+size[1]/2, pos[2])
	}
	return mgl32.Translate3D(pos[0], pos[1], pos[2])
}

// quad is the shared quad emitter: capacity check, topology, then four
// transformed vertices carrying the caller's color, coordinates and slot.
func (r *Renderer) quad(model mgl32.Mat4, color mgl32.Vec4, texIndex float32, uv [QuadVertexCount]mgl32.Vec2) {
	r.reserve(QuadVertexCount, QuadIndexCount)
	r.quadIndices()
	for i := 0; i < QuadVertexCount; i++ {
		r.push(Vertex{
			Position:   model.Mul4x1(quadPositions[i]).Vec3(),
			Color:      color,
			TexCoord:   uv[i],
			TexIndex:   texIndex,
			MaterialID: float32(r.material),
		})
	}
	r.cmdVerts += QuadIndexCount
	r.stats.Quads++
}

func (r *Renderer) triangle(model mgl32.Mat4, color mgl32.Vec4) {
	r.reserve(TriangleVertexCount, TriangleIndexCount)
	r.triangleIndices()
	for i := 0; i < TriangleVertexCount; i++ {
		r.push(Vertex{
			Position:   model.Mul4x1(trianglePositions[i]).Vec3(),
			Color:      color,
			TexCoord:   mgl32.Vec2{},
			TexIndex:   NoTexture,
			MaterialID: float32(r.material),
		})
	}
	r.cmdVerts += TriangleIndexCount
	r.stats.Triangles++
}

func (r *Renderer) cube(model mgl32.Mat4, color mgl32.Vec4, texIndex float32, uv [QuadVertexCount]mgl32.Vec2) {
	r.reserve(CubeVertexCount, CubeIndexCount)
	for f := 0; f < CubeFaceCount; f++ {
		r.quadIndices()
	}
	for i := 0; i < CubeVertexCount; i++ {
		r.push(Vertex{
			Position:   model.Mul4x1(cubePositions[i]).Vec3(),
			Color:      color,
			TexCoord:   uv[i%QuadVertexCount],
			TexIndex:   texIndex,
			MaterialID: float32(r.material),
		})
	}
	r.cmdVerts += CubeIndexCount
	r.stats.Cubes++
}

// DrawQuad emits a solid-color quad.
func (r *Renderer) DrawQuad(pos mgl32.Vec3, size mgl32.Vec2, color mgl32.Vec4) {
	r.quad(r.modelMatrix(pos, size), color, NoTexture, quadTexCoords)
}

// DrawQuadUV emits a solid-color quad with caller-supplied texture
// coordinates.
func (r *Renderer) DrawQuadUV(pos mgl32.Vec3, size mgl32.Vec2, uv [QuadVertexCount]mgl32.Vec2, color mgl32.Vec4) {
	r.quad(r.modelMatrix(pos, size), color, NoTexture, uv)
}

// DrawTexturedQuad emits a quad sampling tex, tinted by color.
func (r *Renderer) DrawTexturedQuad(pos mgl32.Vec3, size mgl32.Vec2, tex Texture, color mgl32.Vec4) {
	r.reserve(QuadVertexCount, QuadIndexCount)
	slot := r.textureSlot(tex.TextureID())
	r.quad(r.modelMatrix(pos, size), color, slot, quadTexCoords)
}

// DrawTexturedQuadUV is DrawTexturedQuad with caller-supplied coordinates,
// e.g. an atlas sub-rect.
func (r *Renderer) DrawTexturedQuadUV(pos mgl32.Vec3, size mgl32.Vec2, tex Texture, uv [QuadVertexCount]mgl32.Vec2, color mgl32.Vec4) {
	r.reserve(QuadVertexCount, QuadIndexCount)
	slot := r.textureSlot(tex.TextureID())
	r.quad(r.modelMatrix(pos, size), color, slot, uv)
}

// DrawRotatedQuad emits a quad rotated by deg degrees around axis.
func (r *Renderer) DrawRotatedQuad(pos mgl32.Vec3, deg float32, axis mgl32.Vec3, size mgl32.Vec2, color mgl32.Vec4) {
	r.quad(r.rotatedModelMatrix(pos, deg, axis, size), color, NoTexture, quadTexCoords)
}

// DrawRotatedTexturedQuad is DrawRotatedQuad sampling tex.
func (r *Renderer) DrawRotatedTexturedQuad(pos mgl32.Vec3, deg float32, axis mgl32.Vec3, size mgl32.Vec2, tex Texture, color mgl32.Vec4) {
	r.reserve(QuadVertexCount, QuadIndexCount)
	slot := r.textureSlot(tex.TextureID())
	r.quad(r.rotatedModelMatrix(pos, deg, axis, size), color, slot, quadTexCoords)
}

// DrawTriangle emits a solid-color triangle.
func (r *Renderer) DrawTriangle(pos mgl32.Vec3, size mgl32.Vec2, color mgl32.Vec4) {
	r.triangle(r.modelMatrix(pos, size), color)
}

// DrawRotatedTriangle emits a triangle rotated by deg degrees around axis.
func (r *Renderer) DrawRotatedTriangle(pos mgl32.Vec3, deg float32, axis mgl32.Vec3, size mgl32.Vec2, color mgl32.Vec4) {
	r.triangle(r.rotatedModelMatrix(pos, deg, axis, size), color)
}

// DrawCube emits a solid-color cube: six quad faces, 24 vertices, 36 indices.
func (r *Renderer) DrawCube(pos mgl32.Vec3, size mgl32.Vec3, color mgl32.Vec4) {
	model := mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(mgl32.Scale3D(size[0], size[1], size[2]))
	r.cube(model, color, NoTexture, quadTexCoords)
}

// DrawTexturedCube emits a cube sampling tex on every face.
func (r *Renderer) DrawTexturedCube(pos mgl32.Vec3, size mgl32.Vec3, tex Texture, color mgl32.Vec4) {
	model := mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(mgl32.Scale3D(size[0], size[1], size[2]))
	r.reserve(CubeVertexCount, CubeIndexCount)
	slot := r.textureSlot(tex.TextureID())
	r.cube(model, color, slot, quadTexCoords)
}

// DrawRotatedCube emits a cube rotated by deg degrees around axis.
func (r *Renderer) DrawRotatedCube(pos mgl32.Vec3, deg float32, axis mgl32.Vec3, size mgl32.Vec3, color mgl32.Vec4) {
	model := mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(deg), axis)).
		Mul4(mgl32.Scale3D(size[0], size[1], size[2]))
	r.cube(model, color, NoTexture, quadTexCoords)
}

// DrawLine emits the segment p1..p2 as a quad of the given width: translate
// to the midpoint, rotate to the segment angle, scale to (length, width, 1).
func (r *Renderer) DrawLine(p1, p2 mgl32.Vec2, color mgl32.Vec4, width float32) {
	dx := p2[0] - p1[0]
	dy := p2[1] - p1[1]
	length := float32(math.Hypot(float64(dx), float64(dy)))
	angle := float32(math.Atan2(float64(dy), float64(dx)))

	model := mgl32.Translate3D(p1[0]+dx/2, p1[1]+dy/2, 0).
		Mul4(mgl32.HomogRotate3DZ(angle)).
		Mul4(mgl32.Scale3D(length, width, 1))

	r.quad(model, color, NoTexture, quadTexCoords)
}

// DrawQuadCorners writes a textured quad whose positions are given directly
// in screen space, bypassing the model-matrix path. The text renderer uses
// this for glyph quads.
func (r *Renderer) DrawQuadCorners(pos [QuadVertexCount]mgl32.Vec3, uv [QuadVertexCount]mgl32.Vec2, tex Texture, color mgl32.Vec4) {
	r.reserve(QuadVertexCount, QuadIndexCount)
	slot := r.textureSlot(tex.TextureID())
	r.quadIndices()
	for i := 0; i < QuadVertexCount; i++ {
		r.push(Vertex{
			Position:   pos[i],
			Color:      color,
			TexCoord:   uv[i],
			TexIndex:   slot,
			MaterialID: float32(r.material),
		})
	}
	r.cmdVerts += QuadIndexCount
	r.stats.Quads++
}
