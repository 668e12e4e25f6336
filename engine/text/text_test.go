package text

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"

	"github.com/hubastard/ember/engine/gfx/batch"
)

// --- fakes satisfying the batch contracts ---

type fakeBuffer struct {
	writes [][]byte
}

func (b *fakeBuffer) Bind() {}
func (b *fakeBuffer) SetData(data []byte, offset int) {
	b.writes = append(b.writes, append([]byte(nil), data...))
}
func (b *fakeBuffer) Capacity() int { return 1 << 20 }

type fakeShader struct{}

func (fakeShader) Bind()                                  {}
func (fakeShader) SetIntArray(name string, values []int32) {}
func (fakeShader) ID() uint32                             { return 1 }

type fakeDevice struct{}

func (fakeDevice) DrawMultiIndirect(commandCount, stride int) {}
func (fakeDevice) SetPolygonMode(wireframe bool)              {}
func (fakeDevice) BindTextureUnit(unit, texture uint32)       {}
func (fakeDevice) SetLineWidth(width float32)                 {}

type fakeTexture uint32

func (t fakeTexture) TextureID() uint32 { return uint32(t) }

type fakeCamera struct{}

func (fakeCamera) Projection() mgl32.Mat4 { return mgl32.Ident4() }
func (fakeCamera) View() mgl32.Mat4       { return mgl32.Ident4() }

type fakeUploader struct {
	w, h   int
	pixels []byte
}

func (u *fakeUploader) UploadRGBA(w, h int, pixels []byte) (Texture, error) {
	u.w, u.h = w, h
	u.pixels = pixels
	return fakeTexture(1), nil
}

func newRenderer(t *testing.T) (*batch.Renderer, *fakeBuffer) {
	t.Helper()
	vb := &fakeBuffer{}
	r, err := batch.New(batch.Target{
		Vertices:  vb,
		Indices:   &fakeBuffer{},
		Commands:  &fakeBuffer{},
		Transform: &fakeBuffer{},
		Shader:    fakeShader{},
		Device:    fakeDevice{},
	}, batch.Config{})
	if err != nil {
		t.Fatalf("batch.New: %v", err)
	}
	return r, vb
}

func decodeVertices(data []byte) []batch.Vertex {
	n := len(data) / batch.VertexStride
	if n == 0 {
		return nil
	}
	out := make([]batch.Vertex, n)
	copy(out, unsafe.Slice((*batch.Vertex)(unsafe.Pointer(&data[0])), n))
	return out
}

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-3 }

// testFont builds a synthetic two-glyph font so the quad math is checkable by
// hand: 'A' is 8x10 px with bearing (1,9) and advance 10; 'B' is 6x10.
func testFont() *Font {
	return &Font{
		SizePx: 32,
		Ascent: 24, Descent: -8,
		AtlasW: 100, AtlasH: 10,
		Texture: fakeTexture(1),
		Glyphs: map[rune]Glyph{
			'A': {
				Size: mgl32.Vec2{8, 10}, Bearing: mgl32.Vec2{1, 9},
				Advance: fixed.I(10), Offset: 0.01, VBottom: 1,
			},
			'B': {
				Size: mgl32.Vec2{6, 10}, Bearing: mgl32.Vec2{0, 10},
				Advance: fixed.I(8), Offset: 0.12, VBottom: 1,
			},
		},
	}
}

func TestDrawTextGlyphQuad(t *testing.T) {
	r, vb := newRenderer(t)
	f := testFont()

	r.BeginScene(fakeCamera{}, 0)
	DrawText(r, f, "A", mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}, mgl32.Vec4{1, 1, 1, 1})
	r.EndScene()

	verts := decodeVertices(vb.writes[0])
	if len(verts) != batch.QuadVertexCount {
		t.Fatalf("%d vertices, want %d", len(verts), batch.QuadVertexCount)
	}

	// Bearing shifts the quad right by 1 and the glyph dips 1 px below the
	// baseline (size.y 10, bearing.y 9).
	want := []mgl32.Vec2{{1, -1}, {9, -1}, {9, 9}, {1, 9}}
	for i, w := range want {
		if !near(verts[i].Position[0], w[0]) || !near(verts[i].Position[1], w[1]) {
			t.Errorf("vertex %d position = %v, want %v", i, verts[i].Position, w)
		}
	}

	// Bottom corners carry the glyph's bottom v, top corners v=0 (glyph tops
	// sit at atlas row 0).
	if !near(verts[0].TexCoord[1], 1) || !near(verts[1].TexCoord[1], 1) {
		t.Errorf("bottom v = %v, %v, want 1", verts[0].TexCoord[1], verts[1].TexCoord[1])
	}
	if verts[2].TexCoord[1] != 0 || verts[3].TexCoord[1] != 0 {
		t.Errorf("top v = %v, %v, want 0", verts[2].TexCoord[1], verts[3].TexCoord[1])
	}
	// Left u is the glyph column plus the bleed epsilon.
	if verts[0].TexCoord[0] <= 0.01 || verts[0].TexCoord[0] >= 0.011 {
		t.Errorf("left u = %v, want just above 0.01", verts[0].TexCoord[0])
	}
	if verts[1].TexCoord[0] <= verts[0].TexCoord[0] {
		t.Errorf("right u %v not greater than left u %v", verts[1].TexCoord[0], verts[0].TexCoord[0])
	}
}

func TestDrawTextPenAdvance(t *testing.T) {
	r, vb := newRenderer(t)
	f := testFont()

	r.BeginScene(fakeCamera{}, 0)
	DrawText(r, f, "AB", mgl32.Vec2{0, 0}, mgl32.Vec2{2, 1}, mgl32.Vec4{1, 1, 1, 1})
	r.EndScene()

	verts := decodeVertices(vb.writes[0])
	if len(verts) != 2*batch.QuadVertexCount {
		t.Fatalf("%d vertices, want %d", len(verts), 2*batch.QuadVertexCount)
	}
	// 'A' advances 10 px, doubled by scale.x; 'B' has zero x bearing.
	if got := verts[4].Position[0]; !near(got, 20) {
		t.Errorf("second glyph starts at x=%v, want 20", got)
	}
}

func TestDrawTextSkipsMissingGlyphs(t *testing.T) {
	r, vb := newRenderer(t)
	f := testFont()

	r.BeginScene(fakeCamera{}, 0)
	DrawText(r, f, "AéB", mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}, mgl32.Vec4{1, 1, 1, 1})
	r.EndScene()

	if verts := decodeVertices(vb.writes[0]); len(verts) != 2*batch.QuadVertexCount {
		t.Fatalf("%d vertices, want %d", len(verts), 2*batch.QuadVertexCount)
	}
}

func TestMeasureText(t *testing.T) {
	f := testFont()
	w, h := MeasureText(f, "AB", mgl32.Vec2{1, 1})
	if !near(w, 18) {
		t.Errorf("width = %v, want 18", w)
	}
	if !near(h, 32) {
		t.Errorf("height = %v, want 32", h)
	}

	w2, _ := MeasureText(f, "AB", mgl32.Vec2{0.5, 1})
	if !near(w2, 9) {
		t.Errorf("half-scale width = %v, want 9", w2)
	}
}

func TestLineHeight(t *testing.T) {
	f := testFont()
	if got := LineHeight(f, 0.5); !near(got, 16) {
		t.Errorf("LineHeight = %v, want 16", got)
	}
}

func TestSpriteCoordinate(t *testing.T) {
	got := SpriteCoordinate(mgl32.Vec2{25, 5}, 100, 10)
	if got != (mgl32.Vec2{0.25, 0.5}) {
		t.Errorf("SpriteCoordinate = %v", got)
	}
}

func TestLoadTTF(t *testing.T) {
	dir := t.TempDir()
	fonts := filepath.Join(dir, "assets", "fonts")
	if err := os.MkdirAll(fonts, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(fonts, "test.ttf"), gomono.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldWD) })

	up := &fakeUploader{}
	f, err := LoadTTF(up, "test.ttf", 24)
	if err != nil {
		t.Fatalf("LoadTTF: %v", err)
	}
	defer f.Close()

	if f.AtlasW <= 0 || f.AtlasH <= 0 {
		t.Fatalf("atlas %vx%v", f.AtlasW, f.AtlasH)
	}
	if len(up.pixels) != up.w*up.h*4 {
		t.Fatalf("uploaded %d bytes for %dx%d atlas", len(up.pixels), up.w, up.h)
	}
	if f.Ascent <= 0 || f.Descent >= 0 {
		t.Errorf("ascent %v descent %v", f.Ascent, f.Descent)
	}

	g, ok := f.Glyphs['A']
	if !ok {
		t.Fatal("no glyph for 'A'")
	}
	if g.Advance <= 0 || g.Size[0] <= 0 || g.Size[1] <= 0 {
		t.Errorf("glyph 'A' = %+v", g)
	}
	if g.Offset < 0 || g.Offset >= 1 || g.VBottom <= 0 || g.VBottom > 1 {
		t.Errorf("glyph 'A' atlas coords = %+v", g)
	}

	// Monospace face: every printable glyph advances the same.
	if a, x := f.Glyphs['A'].Advance, f.Glyphs['x'].Advance; a != x {
		t.Errorf("advances differ in monospace font: %v vs %v", a, x)
	}

	// The rasterized strip is not empty.
	var coverage int
	for i := 3; i < len(up.pixels); i += 4 {
		if up.pixels[i] != 0 {
			coverage++
		}
	}
	if coverage == 0 {
		t.Error("atlas has no coverage")
	}
}

func TestLoadTTFMissingFile(t *testing.T) {
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldWD) })
	if _, err := LoadTTF(&fakeUploader{}, "nope.ttf", 24); err == nil {
		t.Fatal("expected error for missing font file")
	}
}
