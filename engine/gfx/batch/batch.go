// Package batch coalesces immediate-mode draw requests (quads, triangles,
// lines, cubes, glyph quads) into as few GPU submissions as possible. Vertices
// and indices accumulate in fixed-capacity arenas; when an arena or the
// texture slot table would overflow, the current batch is flushed and a fresh
// one started, so every primitive lands fully inside one draw command.
//
// A Renderer is single-threaded: all calls, including the implicit flushes,
// run to completion on the calling goroutine, which must own the GL context.
package batch

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls    int
	Quads        int
	Triangles    int
	Cubes        int
	TextureCount int
}

// Renderer batches primitives into the buffers of its Target. Create one with
// New, bracket every frame with BeginScene/EndScene, and serialize all calls
// on the context-owning goroutine.
type Renderer struct {
	target Target
	cfg    Config

	shader   Shader // current; reset to the target's at BeginScene
	projView mgl32.Mat4
	flags    Flags
	material int32

	verts []Vertex // arena; len is the write cursor
	inds  []uint32
	slots []uint32 // bound texture ids; index is the sampler slot

	indexOffset uint32 // next unused vertex index value
	batchVerts  int    // vertices written since startBatch

	commands  []DrawCommand
	drawCount int    // finalized commands this batch
	cmdVerts  uint32 // count accumulating into the in-progress command
	baseVert  uint32 // base vertex for the next finalized command

	stats Statistics
}

// New validates the target and prepares the arenas. The shader's sampler
// table is bound to slot indices once, here.
func New(target Target, cfg Config) (*Renderer, error) {
	if target.Vertices == nil || target.Indices == nil || target.Commands == nil || target.Transform == nil {
		return nil, errors.New("batch: target is missing a buffer")
	}
	if target.Shader == nil {
		return nil, errors.New("batch: target has no shader")
	}
	if target.Device == nil {
		return nil, errors.New("batch: target has no device")
	}
	cfg = cfg.WithDefaults()

	r := &Renderer{
		target:   target,
		cfg:      cfg,
		shader:   target.Shader,
		material: NoMaterial,
		verts:    make([]Vertex, 0, cfg.MaxVertices),
		inds:     make([]uint32, 0, cfg.MaxIndices),
		slots:    make([]uint32, 0, cfg.MaxTextureSlots),
		commands: make([]DrawCommand, cfg.MaxDrawCommands),
	}

	samplers := make([]int32, cfg.MaxTextureSlots)
	for i := range samplers {
		samplers[i] = int32(i)
	}
	target.Shader.Bind()
	target.Shader.SetIntArray("textures", samplers)

	return r, nil
}

// BeginScene stores the combined camera transform and render flags, restores
// the default shader and material, and starts a fresh batch.
func (r *Renderer) BeginScene(cam Camera, flags Flags) {
	r.flags = flags
	r.projView = cam.Projection().Mul4(cam.View())
	r.shader = r.target.Shader
	r.material = NoMaterial
	r.stats = Statistics{}
	r.startBatch()
}

// EndScene finalizes the in-progress draw command and issues the last GPU
// submission of the scene. Emitting after EndScene without a new BeginScene
// is undefined.
func (r *Renderer) EndScene() {
	r.makeCommand()
	r.nextCommand()
	r.submit()
}

// Stats returns the counters accumulated since BeginScene.
func (r *Renderer) Stats() Statistics { return r.stats }

// SetShader routes subsequent submissions through s until the scene ends or
// SetDefaultShader is called.
func (r *Renderer) SetShader(s Shader) { r.shader = s }

// SetDefaultShader restores the target's shader.
func (r *Renderer) SetDefaultShader() { r.shader = r.target.Shader }

// ShaderID reports the id of the currently selected shader.
func (r *Renderer) ShaderID() uint32 { return r.shader.ID() }

// SetMaterial tags subsequently emitted vertices with id.
func (r *Renderer) SetMaterial(id uint32) { r.material = int32(id) }

// ClearMaterial restores the no-material sentinel.
func (r *Renderer) ClearMaterial() { r.material = NoMaterial }

// SetLineThickness sets the width used for line-mode polygons.
func (r *Renderer) SetLineThickness(w float32) {
	if w > 0 {
		r.target.Device.SetLineWidth(w)
	}
}

// startBatch clears the texture table and resets every cursor and counter.
func (r *Renderer) startBatch() {
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	r.slots = r.slots[:0]
	r.indexOffset = 0
	r.batchVerts = 0
	r.drawCount = 0
	r.cmdVerts = 0
	r.baseVert = 0
}

// newBatch is the only mid-scene submission path: finalize the in-progress
// command, submit, and start over. Every emitter routes through here when a
// capacity bound would be exceeded.
func (r *Renderer) newBatch() {
	r.makeCommand()
	r.nextCommand()
	r.submit()
	r.startBatch()
}

// makeCommand finalizes the in-progress draw command in the current slot.
// The command table has no implicit growth; overflowing it is a programming
// error, not a schedulable flush.
func (r *Renderer) makeCommand() {
	if r.drawCount >= r.cfg.MaxDrawCommands {
		panic("batch: draw command capacity exceeded")
	}
	r.commands[r.drawCount] = DrawCommand{
		VertexCount:   r.cmdVerts,
		InstanceCount: 1,
		FirstIndex:    0,
		BaseVertex:    r.baseVert,
		BaseInstance:  uint32(r.drawCount),
	}
}

// nextCommand advances to the next command slot.
func (r *Renderer) nextCommand() {
	r.drawCount++
	r.baseVert += uint32(r.batchVerts)
	r.cmdVerts = 0
}

// submit uploads the arena contents, the finalized command list and the scene
// transform, binds the active texture slots, and issues one multi-draw-
// indirect call covering all finalized commands. Synchronous from the
// caller's point of view.
func (r *Renderer) submit() {
	dev := r.target.Device
	dev.SetPolygonMode(r.flags&FlagWireframe != 0)

	r.target.Vertices.Bind()
	r.target.Indices.Bind()

	r.target.Commands.Bind()
	r.target.Commands.SetData(commandBytes(r.commands[:r.drawCount]), 0)

	r.shader.Bind()

	r.target.Transform.Bind()
	r.target.Transform.SetData(matrixBytes(&r.projView), 0)

	for i, id := range r.slots {
		dev.BindTextureUnit(uint32(i), id)
	}

	r.target.Vertices.SetData(vertexBytes(r.verts), 0)
	r.target.Indices.SetData(indexBytes(r.inds), 0)

	dev.DrawMultiIndirect(r.drawCount, 0)
	r.stats.DrawCalls++
}

// reserve flushes the current batch when writing nVerts/nInds more entries
// would overflow either arena. Called before any state is mutated, so the
// primitive about to be written always lands in a single batch.
func (r *Renderer) reserve(nVerts, nInds int) {
	if r.batchVerts+nVerts > r.cfg.MaxVertices || len(r.inds)+nInds > r.cfg.MaxIndices {
		r.newBatch()
	}
}

// textureSlot resolves a texture id to a sampler slot, reusing an existing
// assignment within the current batch. When the table is full the batch is
// flushed first and id takes slot 0 of the fresh table. Linear search: the
// table is at most 32 entries.
func (r *Renderer) textureSlot(id uint32) float32 {
	for i, bound := range r.slots {
		if bound == id {
			return float32(i)
		}
	}
	if len(r.slots) == r.cfg.MaxTextureSlots {
		r.newBatch()
	}
	r.slots = append(r.slots, id)
	if n := len(r.slots); n > r.stats.TextureCount {
		r.stats.TextureCount = n
	}
	return float32(len(r.slots) - 1)
}

// push appends one vertex to the arena. Callers are responsible for having
// reserved capacity first.
func (r *Renderer) push(v Vertex) {
	r.verts = append(r.verts, v)
	r.batchVerts++
}
