package batch

import (
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// --- fakes for the GPU contracts ---

type fakeBuffer struct {
	binds  int
	writes [][]byte
}

func (b *fakeBuffer) Bind() { b.binds++ }
func (b *fakeBuffer) SetData(data []byte, offset int) {
	b.writes = append(b.writes, append([]byte(nil), data...))
}
func (b *fakeBuffer) Capacity() int { return 1 << 20 }

type fakeShader struct {
	binds  int
	arrays map[string][]int32
}

func (s *fakeShader) Bind() { s.binds++ }
func (s *fakeShader) SetIntArray(name string, values []int32) {
	if s.arrays == nil {
		s.arrays = map[string][]int32{}
	}
	s.arrays[name] = append([]int32(nil), values...)
}
func (s *fakeShader) ID() uint32 { return 1 }

type fakeDevice struct {
	draws     []int // command count per DrawMultiIndirect
	wireframe []bool
	units     map[uint32]uint32
	lineWidth float32
}

func (d *fakeDevice) DrawMultiIndirect(commandCount, stride int) {
	d.draws = append(d.draws, commandCount)
}
func (d *fakeDevice) SetPolygonMode(wireframe bool) {
	d.wireframe = append(d.wireframe, wireframe)
}
func (d *fakeDevice) BindTextureUnit(unit uint32, texture uint32) {
	if d.units == nil {
		d.units = map[uint32]uint32{}
	}
	d.units[unit] = texture
}
func (d *fakeDevice) SetLineWidth(width float32) { d.lineWidth = width }

type fakeTexture uint32

func (t fakeTexture) TextureID() uint32 { return uint32(t) }

type fakeCamera struct{}

func (fakeCamera) Projection() mgl32.Mat4 { return mgl32.Ident4() }
func (fakeCamera) View() mgl32.Mat4       { return mgl32.Ident4() }

// --- harness ---

type harness struct {
	r              *Renderer
	vb, ib, cb, tb *fakeBuffer
	shader         *fakeShader
	dev            *fakeDevice
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{
		vb: &fakeBuffer{}, ib: &fakeBuffer{}, cb: &fakeBuffer{}, tb: &fakeBuffer{},
		shader: &fakeShader{}, dev: &fakeDevice{},
	}
	r, err := New(Target{
		Vertices:  h.vb,
		Indices:   h.ib,
		Commands:  h.cb,
		Transform: h.tb,
		Shader:    h.shader,
		Device:    h.dev,
	}, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.r = r
	return h
}

func decodeCommands(data []byte) []DrawCommand {
	n := len(data) / DrawCommandStride
	if n == 0 {
		return nil
	}
	out := make([]DrawCommand, n)
	copy(out, unsafe.Slice((*DrawCommand)(unsafe.Pointer(&data[0])), n))
	return out
}

func decodeVertices(data []byte) []Vertex {
	n := len(data) / VertexStride
	if n == 0 {
		return nil
	}
	out := make([]Vertex, n)
	copy(out, unsafe.Slice((*Vertex)(unsafe.Pointer(&data[0])), n))
	return out
}

func decodeIndices(data []byte) []uint32 {
	n := len(data) / IndexStride
	if n == 0 {
		return nil
	}
	out := make([]uint32, n)
	copy(out, unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), n))
	return out
}

// allCommands concatenates the command lists of every submission so far.
func (h *harness) allCommands() []DrawCommand {
	var out []DrawCommand
	for _, w := range h.cb.writes {
		out = append(out, decodeCommands(w)...)
	}
	return out
}

// --- tests ---

func TestNewValidatesTarget(t *testing.T) {
	_, err := New(Target{}, Config{})
	if err == nil {
		t.Fatal("expected error for empty target")
	}
}

func TestSamplerTableBoundAtInit(t *testing.T) {
	h := newHarness(t, Config{MaxTextureSlots: 8})
	got := h.shader.arrays["textures"]
	if len(got) != 8 {
		t.Fatalf("sampler table length = %d, want 8", len(got))
	}
	for i, v := range got {
		if v != int32(i) {
			t.Fatalf("sampler[%d] = %d, want %d", i, v, i)
		}
	}
	if h.shader.binds == 0 {
		t.Fatal("shader was never bound during init")
	}
}

func TestSingleBatchQuadCounts(t *testing.T) {
	for _, n := range []int{1, 2, 5, 10} {
		h := newHarness(t, Config{})
		h.r.BeginScene(fakeCamera{}, 0)
		for i := 0; i < n; i++ {
			h.r.DrawQuad(mgl32.Vec3{float32(i), 0, 0}, mgl32.Vec2{1, 1}, mgl32.Vec4{1, 1, 1, 1})
		}
		h.r.EndScene()

		if len(h.dev.draws) != 1 {
			t.Fatalf("n=%d: %d submissions, want 1", n, len(h.dev.draws))
		}
		cmds := h.allCommands()
		if len(cmds) != 1 {
			t.Fatalf("n=%d: %d draw commands, want 1", n, len(cmds))
		}
		c := cmds[0]
		if c.VertexCount != uint32(6*n) {
			t.Errorf("n=%d: VertexCount = %d, want %d", n, c.VertexCount, 6*n)
		}
		if c.InstanceCount != 1 || c.FirstIndex != 0 || c.BaseVertex != 0 || c.BaseInstance != 0 {
			t.Errorf("n=%d: command = %+v", n, c)
		}
	}
}

func TestQuadOverflowSplitsBatch(t *testing.T) {
	// Four quads per batch; the fifth must flush and land whole in a new one.
	h := newHarness(t, Config{MaxVertices: 16})
	h.r.BeginScene(fakeCamera{}, 0)
	for i := 0; i < 5; i++ {
		h.r.DrawQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, mgl32.Vec4{1, 1, 1, 1})
	}
	h.r.EndScene()

	if len(h.dev.draws) != 2 {
		t.Fatalf("%d submissions, want 2", len(h.dev.draws))
	}
	cmds := h.allCommands()
	if len(cmds) != 2 {
		t.Fatalf("%d draw commands, want 2", len(cmds))
	}
	if cmds[0].VertexCount != 24 || cmds[0].BaseVertex != 0 {
		t.Errorf("first command = %+v, want VertexCount 24 BaseVertex 0", cmds[0])
	}
	// The arena restarts from zero after a flush, so the next command's
	// base vertex is the sum of its own batch's prior commands: zero.
	if cmds[1].VertexCount != 6 || cmds[1].BaseVertex != 0 {
		t.Errorf("second command = %+v, want VertexCount 6 BaseVertex 0", cmds[1])
	}

	first := decodeVertices(h.vb.writes[0])
	second := decodeVertices(h.vb.writes[1])
	if len(first) != 16 || len(second) != 4 {
		t.Errorf("vertex uploads = %d,%d; want 16,4", len(first), len(second))
	}
}

func TestIndexOverflowSplitsBatch(t *testing.T) {
	h := newHarness(t, Config{MaxVertices: 1000, MaxIndices: 12})
	h.r.BeginScene(fakeCamera{}, 0)
	for i := 0; i < 3; i++ {
		h.r.DrawQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, mgl32.Vec4{1, 1, 1, 1})
	}
	h.r.EndScene()
	if len(h.dev.draws) != 2 {
		t.Fatalf("%d submissions, want 2", len(h.dev.draws))
	}
}

func TestTextureSlotIdempotent(t *testing.T) {
	h := newHarness(t, Config{})
	tex := fakeTexture(42)
	h.r.BeginScene(fakeCamera{}, 0)
	h.r.DrawTexturedQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, tex, mgl32.Vec4{1, 1, 1, 1})
	h.r.DrawTexturedQuad(mgl32.Vec3{2, 0, 0}, mgl32.Vec2{1, 1}, tex, mgl32.Vec4{1, 1, 1, 1})
	h.r.EndScene()

	verts := decodeVertices(h.vb.writes[0])
	if len(verts) != 8 {
		t.Fatalf("%d vertices, want 8", len(verts))
	}
	for i, v := range verts {
		if v.TexIndex != 0 {
			t.Errorf("vertex %d TexIndex = %v, want 0", i, v.TexIndex)
		}
	}
	if h.r.Stats().TextureCount != 1 {
		t.Errorf("TextureCount = %d, want 1", h.r.Stats().TextureCount)
	}
	if h.dev.units[0] != 42 {
		t.Errorf("texture unit 0 bound to %d, want 42", h.dev.units[0])
	}
}

func TestTextureSlotOverflowFlushes(t *testing.T) {
	const maxSlots = 4
	h := newHarness(t, Config{MaxTextureSlots: maxSlots})
	h.r.BeginScene(fakeCamera{}, 0)
	for i := 0; i < maxSlots+1; i++ {
		h.r.DrawTexturedQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, fakeTexture(100+i), mgl32.Vec4{1, 1, 1, 1})
	}
	// The fifth distinct texture must have forced a mid-scene flush.
	if len(h.dev.draws) != 1 {
		t.Fatalf("%d mid-scene submissions, want 1", len(h.dev.draws))
	}
	h.r.EndScene()

	first := decodeVertices(h.vb.writes[0])
	if len(first) != maxSlots*QuadVertexCount {
		t.Fatalf("first batch has %d vertices, want %d", len(first), maxSlots*QuadVertexCount)
	}
	for q := 0; q < maxSlots; q++ {
		if got := first[q*QuadVertexCount].TexIndex; got != float32(q) {
			t.Errorf("quad %d TexIndex = %v, want %d", q, got, q)
		}
	}

	// The overflowing texture gets slot 0 of the fresh table.
	second := decodeVertices(h.vb.writes[1])
	if len(second) != QuadVertexCount {
		t.Fatalf("second batch has %d vertices, want %d", len(second), QuadVertexCount)
	}
	if second[0].TexIndex != 0 {
		t.Errorf("post-flush TexIndex = %v, want 0", second[0].TexIndex)
	}
	if h.dev.units[0] != 100+maxSlots {
		t.Errorf("unit 0 after flush = %d, want %d", h.dev.units[0], 100+maxSlots)
	}
}

func TestWireframeFlag(t *testing.T) {
	h := newHarness(t, Config{})
	h.r.BeginScene(fakeCamera{}, FlagWireframe)
	h.r.DrawQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, mgl32.Vec4{1, 1, 1, 1})
	h.r.EndScene()
	if len(h.dev.wireframe) != 1 || !h.dev.wireframe[0] {
		t.Fatalf("polygon mode calls = %v, want [true]", h.dev.wireframe)
	}
}

func TestMaterialTagging(t *testing.T) {
	h := newHarness(t, Config{})
	h.r.BeginScene(fakeCamera{}, 0)
	h.r.SetMaterial(3)
	h.r.DrawQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, mgl32.Vec4{1, 1, 1, 1})
	h.r.ClearMaterial()
	h.r.DrawQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, mgl32.Vec4{1, 1, 1, 1})
	h.r.EndScene()

	verts := decodeVertices(h.vb.writes[0])
	if verts[0].MaterialID != 3 {
		t.Errorf("tagged MaterialID = %v, want 3", verts[0].MaterialID)
	}
	if verts[4].MaterialID != -1 {
		t.Errorf("cleared MaterialID = %v, want -1", verts[4].MaterialID)
	}
}

func TestBeginSceneResetsState(t *testing.T) {
	h := newHarness(t, Config{})
	h.r.BeginScene(fakeCamera{}, 0)
	h.r.SetMaterial(7)
	h.r.DrawTexturedQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, fakeTexture(9), mgl32.Vec4{1, 1, 1, 1})
	h.r.EndScene()

	h.r.BeginScene(fakeCamera{}, 0)
	h.r.DrawQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, mgl32.Vec4{1, 1, 1, 1})
	h.r.EndScene()

	verts := decodeVertices(h.vb.writes[1])
	if verts[0].MaterialID != -1 {
		t.Errorf("MaterialID after new scene = %v, want -1", verts[0].MaterialID)
	}
	if verts[0].TexIndex != NoTexture {
		t.Errorf("TexIndex after new scene = %v, want %v", verts[0].TexIndex, NoTexture)
	}
	if h.r.Stats().TextureCount != 0 {
		t.Errorf("TextureCount after new scene = %d, want 0", h.r.Stats().TextureCount)
	}
}

func TestCustomShaderUsedAtSubmit(t *testing.T) {
	h := newHarness(t, Config{})
	custom := &fakeShader{}
	h.r.BeginScene(fakeCamera{}, 0)
	h.r.SetShader(custom)
	if h.r.ShaderID() != custom.ID() {
		t.Fatalf("ShaderID = %d, want %d", h.r.ShaderID(), custom.ID())
	}
	h.r.DrawQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, mgl32.Vec4{1, 1, 1, 1})
	h.r.EndScene()
	if custom.binds == 0 {
		t.Error("custom shader never bound")
	}

	// BeginScene restores the default shader.
	h.r.BeginScene(fakeCamera{}, 0)
	if h.r.ShaderID() != h.shader.ID() {
		t.Errorf("ShaderID after BeginScene = %d, want default %d", h.r.ShaderID(), h.shader.ID())
	}
}

func TestTransformUploadedEachSubmit(t *testing.T) {
	h := newHarness(t, Config{})
	h.r.BeginScene(fakeCamera{}, 0)
	h.r.DrawQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, mgl32.Vec4{1, 1, 1, 1})
	h.r.EndScene()
	if len(h.tb.writes) != 1 || len(h.tb.writes[0]) != 64 {
		t.Fatalf("transform uploads = %d, want one 64-byte write", len(h.tb.writes))
	}
}

func TestDrawCommandOverflowPanics(t *testing.T) {
	h := newHarness(t, Config{MaxDrawCommands: 4})
	h.r.BeginScene(fakeCamera{}, 0)
	h.r.drawCount = h.r.cfg.MaxDrawCommands // simulate a scene out of command slots
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on draw command overflow")
		}
	}()
	h.r.EndScene()
}

func TestStats(t *testing.T) {
	h := newHarness(t, Config{})
	h.r.BeginScene(fakeCamera{}, 0)
	h.r.DrawQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, mgl32.Vec4{1, 1, 1, 1})
	h.r.DrawTriangle(mgl32.Vec3{}, mgl32.Vec2{1, 1}, mgl32.Vec4{1, 1, 1, 1})
	h.r.DrawCube(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, mgl32.Vec4{1, 1, 1, 1})
	h.r.DrawLine(mgl32.Vec2{}, mgl32.Vec2{1, 0}, mgl32.Vec4{1, 1, 1, 1}, 1)
	h.r.EndScene()

	s := h.r.Stats()
	if s.DrawCalls != 1 || s.Quads != 2 || s.Triangles != 1 || s.Cubes != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestSetLineThickness(t *testing.T) {
	h := newHarness(t, Config{})
	h.r.SetLineThickness(3)
	if h.dev.lineWidth != 3 {
		t.Errorf("line width = %v, want 3", h.dev.lineWidth)
	}
	h.r.SetLineThickness(-1) // ignored
	if h.dev.lineWidth != 3 {
		t.Errorf("line width = %v, want 3 after invalid set", h.dev.lineWidth)
	}
}
