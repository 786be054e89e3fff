package ui2d

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const atlasColumns = 16

// glyphRanges are the code points baked into the atlas: printable ASCII and Latin-1.
var glyphRanges = [][2]rune{{0x20, 0x7e}, {0xa1, 0xff}}

// atlas is a grid of fixed-size glyph cells rasterized from basicfont.
type atlas struct {
	img    *image.Alpha
	index  map[rune]int
	cellW  int
	cellH  int
	ascent int
}

func newAtlas() *atlas {
	face := basicfont.Face7x13
	a := &atlas{
		index:  make(map[rune]int),
		cellW:  face.Advance,
		cellH:  face.Height,
		ascent: face.Ascent,
	}

	var runes []rune
	for _, r := range glyphRanges {
		for c := r[0]; c <= r[1]; c++ {
			runes = append(runes, c)
		}
	}
	rows := (len(runes) + atlasColumns - 1) / atlasColumns
	a.img = image.NewAlpha(image.Rect(0, 0, atlasColumns*a.cellW, rows*a.cellH))

	d := font.Drawer{Dst: a.img, Src: image.Opaque, Face: face}
	for i, r := range runes {
		a.index[r] = i
		col, row := i%atlasColumns, i/atlasColumns
		d.Dot = fixed.P(col*a.cellW, row*a.cellH+a.ascent)
		d.DrawString(string(r))
	}
	return a
}

// uv returns the texture coordinates of r's cell. Unknown runes map to '?'.
func (a *atlas) uv(r rune) (u0, v0, u1, v1 float32) {
	i, ok := a.index[r]
	if !ok {
		i = a.index['?']
	}
	w, h := float32(a.img.Rect.Dx()), float32(a.img.Rect.Dy())
	col, row := i%atlasColumns, i/atlasColumns
	u0 = float32(col*a.cellW) / w
	v0 = float32(row*a.cellH) / h
	u1 = float32((col+1)*a.cellW) / w
	v1 = float32((row+1)*a.cellH) / h
	return
}

// Font is a monospaced bitmap font uploaded as an alpha texture.
type Font struct {
	atlas     *atlas
	textureID uint32
}

// NewFont rasterizes the atlas and uploads it. Requires a GL context.
func NewFont() *Font {
	f := &Font{atlas: newAtlas()}

	// White RGBA with coverage in alpha, matching the text shader.
	img := f.atlas.img
	rgba := make([]byte, len(img.Pix)*4)
	for i, a := range img.Pix {
		rgba[i*4], rgba[i*4+1], rgba[i*4+2], rgba[i*4+3] = 255, 255, 255, a
	}

	gl.GenTextures(1, &f.textureID)
	gl.BindTexture(gl.TEXTURE_2D, f.textureID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return f
}

// TextureID returns the atlas texture.
func (f *Font) TextureID() uint32 { return f.textureID }

// GlyphSize returns the cell size in pixels.
func (f *Font) GlyphSize() (int, int) { return f.atlas.cellW, f.atlas.cellH }

// GetGlyphUV returns the atlas coordinates of r.
func (f *Font) GetGlyphUV(r rune) (u0, v0, u1, v1 float32) { return f.atlas.uv(r) }

// MeasureText returns the size of text drawn at scale.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	return measure(text, f.atlas.cellW, f.atlas.cellH, scale)
}

func measure(text string, cellW, cellH int, scale float32) (float32, float32) {
	lines, longest, cur := 1, 0, 0
	for _, r := range text {
		if r == '\n' {
			lines++
			cur = 0
			continue
		}
		cur++
		longest = max(longest, cur)
	}
	return float32(longest*cellW) * scale, float32(lines*cellH) * scale
}

// Close deletes the atlas texture.
func (f *Font) Close() {
	if f.textureID != 0 {
		gl.DeleteTextures(1, &f.textureID)
		f.textureID = 0
	}
}
