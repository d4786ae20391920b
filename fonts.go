package pixelterm

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Weight selects a font variant for glyph lookup.
type Weight int

const (
	// WeightRegular is the base font weight. It always resolves.
	WeightRegular Weight = iota
	// WeightBold falls back to regular when no bold face was supplied.
	WeightBold
	// WeightItalic falls back to regular when no italic face was supplied.
	WeightItalic
)

type glyphKey struct {
	symbol string
	weight Weight
}

// FontTable holds fixed-size glyph masks for the regular, bold, and italic
// weights. All weights share one cell size; masks are rasterized lazily from
// the underlying faces and cached.
//
// Lookups never fail: a grapheme the face cannot render resolves to the
// fallback glyph, and a missing weight resolves to the regular face.
type FontTable struct {
	faces    [3]font.Face
	cellW    int
	cellH    int
	ascent   int
	fallback string
	cache    map[glyphKey]*image.Alpha
	blank    *image.Alpha
}

// NewFontTable creates a font table from a required regular face and optional
// bold and italic faces. All faces must produce the same glyph cell size;
// mismatched or zero-sized cells are a configuration error.
func NewFontTable(regular, bold, italic font.Face) (*FontTable, error) {
	if regular == nil {
		return nil, fmt.Errorf("%w: regular font is required", ErrConfiguration)
	}

	cellW, cellH, ascent := cellMetrics(regular)
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("%w: regular font has zero-sized glyph cell", ErrConfiguration)
	}

	for _, f := range []struct {
		name string
		face font.Face
	}{{"bold", bold}, {"italic", italic}} {
		if f.face == nil {
			continue
		}
		w, h, _ := cellMetrics(f.face)
		if w != cellW || h != cellH {
			return nil, fmt.Errorf("%w: %s font cell %dx%d does not match regular cell %dx%d",
				ErrConfiguration, f.name, w, h, cellW, cellH)
		}
	}

	return &FontTable{
		faces:  [3]font.Face{regular, bold, italic},
		cellW:  cellW,
		cellH:  cellH,
		ascent: ascent,
		cache:  make(map[glyphKey]*image.Alpha),
		blank:  image.NewAlpha(image.Rect(0, 0, cellW, cellH)),
	}, nil
}

// CellSize returns the glyph cell dimensions in pixels.
func (t *FontTable) CellSize() (width, height int) {
	return t.cellW, t.cellH
}

// SetFallbackGlyph sets the grapheme rendered in place of symbols the faces
// cannot render. The default is empty, which renders a blank cell.
func (t *FontTable) SetFallbackGlyph(symbol string) {
	t.fallback = symbol
}

// Glyph returns the mask for the given symbol and weight. It never fails:
// missing graphemes resolve to the fallback glyph (or a blank mask), and
// missing weights resolve to the regular face. The returned mask is shared;
// callers must not modify it.
func (t *FontTable) Glyph(symbol string, weight Weight) *image.Alpha {
	if symbol == "" || symbol == " " {
		return t.blank
	}

	key := glyphKey{symbol: symbol, weight: weight}
	if m, ok := t.cache[key]; ok {
		return m
	}

	face := t.face(weight)
	m := t.rasterize(face, symbol)
	if m == nil && t.fallback != "" && t.fallback != symbol {
		m = t.rasterize(face, t.fallback)
	}
	if m == nil {
		m = t.blank
	}

	t.cache[key] = m
	return m
}

// face returns the face for a weight, falling back to regular.
func (t *FontTable) face(w Weight) font.Face {
	if w >= 0 && int(w) < len(t.faces) && t.faces[w] != nil {
		return t.faces[w]
	}
	return t.faces[WeightRegular]
}

// rasterize draws the symbol into a cell-sized alpha mask. Returns nil when
// the face has no glyph for the symbol's leading rune. Glyphs wider than the
// cell are clipped to it.
func (t *FontTable) rasterize(face font.Face, symbol string) *image.Alpha {
	r, _ := utf8.DecodeRuneInString(symbol)
	if _, _, ok := face.GlyphBounds(r); !ok {
		return nil
	}

	dst := image.NewAlpha(image.Rect(0, 0, t.cellW, t.cellH))
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Alpha{A: 0xff}),
		Face: face,
		Dot:  fixed.P(0, t.ascent),
	}
	d.DrawString(symbol)

	return dst
}

// cellMetrics derives the glyph cell size from a face: width from the advance
// of 'M', height and ascent from the face metrics.
func cellMetrics(face font.Face) (width, height, ascent int) {
	adv, _ := face.GlyphAdvance('M')
	m := face.Metrics()
	return adv.Ceil(), m.Height.Ceil(), m.Ascent.Ceil()
}

// weightFor maps cell flags to a font weight. Bold wins when both bold and
// italic are set.
func weightFor(flags CellFlags) Weight {
	switch {
	case flags&CellFlagBold != 0:
		return WeightBold
	case flags&CellFlagItalic != 0:
		return WeightItalic
	default:
		return WeightRegular
	}
}

// LoadFont loads a TrueType or OpenType font from a file path.
func LoadFont(path string, size float64) (font.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadFontFromReader(f, size)
}

// LoadFontFromReader loads a TrueType or OpenType font from an io.Reader.
func LoadFontFromReader(r io.Reader, size float64) (font.Face, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return LoadFontFromBytes(data, size)
}

// LoadFontFromBytes loads a TrueType or OpenType font from raw bytes.
func LoadFontFromBytes(data []byte, size float64) (font.Face, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	return face, nil
}
