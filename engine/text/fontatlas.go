package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Texture is anything that resolves to a GL texture name.
type Texture interface {
	TextureID() uint32
}

// TextureUploader turns a packed RGBA atlas into a GPU texture.
type TextureUploader interface {
	UploadRGBA(w, h int, pixels []byte) (Texture, error)
}

// Glyph holds one pre-rasterized character's metrics and its place in the
// atlas strip.
type Glyph struct {
	Size    mgl32.Vec2    // bitmap size in pixels
	Bearing mgl32.Vec2    // left bearing, and baseline-to-top distance
	Advance fixed.Int26_6 // horizontal advance in 1/64 pixel units
	Offset  float32       // normalized u of the glyph's column in the strip
	VBottom float32       // normalized v of the glyph's bottom edge
}

// Font is a single-strip glyph atlas: all glyphs side by side in one row.
type Font struct {
	SizePx         float32
	Ascent         float32
	Descent        float32 // negative, distance below the baseline
	AtlasW, AtlasH float32
	Texture        Texture
	Glyphs         map[rune]Glyph

	face      font.Face
	closeFace func()
}

func (f *Font) Close() {
	if f != nil && f.closeFace != nil {
		f.closeFace()
		f.closeFace = nil
	}
}

// SpriteCoordinate maps a pixel extent into normalized atlas coordinates.
func SpriteCoordinate(px mgl32.Vec2, atlasW, atlasH float32) mgl32.Vec2 {
	return mgl32.Vec2{px[0] / atlasW, px[1] / atlasH}
}

// Kern reports the kerning adjustment between two runes in pixels.
func (f *Font) Kern(a, b rune) float32 {
	if f.face == nil {
		return 0
	}
	return float32(f.face.Kern(a, b)) / 64
}

// LoadTTF rasterizes ASCII 32..126 at sizePx into a horizontal strip atlas
// (white glyphs, alpha coverage) and uploads it through up.
func LoadTTF(up TextureUploader, ttfRelPath string, sizePx float32) (*Font, error) {
	path := filepath.Join("assets", "fonts", ttfRelPath)
	ttfData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}

	ft, err := opentype.Parse(ttfData)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())

	type meas struct {
		r      rune
		w, h   int
		adv    fixed.Int26_6
		bx, by float32
	}
	const padding = 1
	var (
		measure []meas
		stripW  = padding
		stripH  int
	)
	for rr := rune(32); rr <= rune(126); rr++ {
		bounds, adv, ok := face.GlyphBounds(rr)
		if !ok {
			continue
		}
		w := (bounds.Max.X - bounds.Min.X).Round()
		h := (bounds.Max.Y - bounds.Min.Y).Round()
		measure = append(measure, meas{
			r: rr, w: w, h: h,
			adv: adv,
			bx:  float32(bounds.Min.X.Round()),
			by:  float32(-bounds.Min.Y.Round()),
		})
		stripW += w + padding
		if h > stripH {
			stripH = h
		}
	}
	if stripH == 0 {
		_ = face.Close()
		return nil, fmt.Errorf("font %q has no renderable glyphs", ttfRelPath)
	}

	dst := image.NewRGBA(image.Rect(0, 0, stripW, stripH))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{color.RGBA{}}, image.Point{}, draw.Src)
	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	glyphs := make(map[rune]Glyph, len(measure))
	x := padding
	for _, g := range measure {
		glyph := Glyph{
			Size:    mgl32.Vec2{float32(g.w), float32(g.h)},
			Bearing: mgl32.Vec2{g.bx, g.by},
			Advance: g.adv,
			Offset:  float32(x) / float32(stripW),
			VBottom: float32(g.h) / float32(stripH),
		}
		if g.w > 0 && g.h > 0 {
			// Glyph top at row 0; the dot sits on the baseline.
			drawer.Dot = fixed.P(x-int(g.bx), int(g.by))
			drawer.DrawString(string(g.r))
			x += g.w + padding
		}
		glyphs[g.r] = glyph
	}

	tex, err := up.UploadRGBA(stripW, stripH, dst.Pix)
	if err != nil {
		_ = face.Close()
		return nil, err
	}

	return &Font{
		SizePx:    sizePx,
		Ascent:    ascent,
		Descent:   descent,
		AtlasW:    float32(stripW),
		AtlasH:    float32(stripH),
		Texture:   tex,
		Glyphs:    glyphs,
		face:      face,
		closeFace: func() { _ = face.Close() },
	}, nil
}
