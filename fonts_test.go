package pixelterm

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// fakeFace is a monospace face with a controllable glyph set. Every present
// glyph renders as a fully opaque cell-sized mask, which makes pixel
// assertions trivial.
type fakeFace struct {
	w      int
	h      int
	ascent int
	runes  map[rune]bool
}

func newFakeFace(w, h int, runes string) *fakeFace {
	f := &fakeFace{w: w, h: h, ascent: h - 1, runes: make(map[rune]bool)}
	for _, r := range runes {
		f.runes[r] = true
	}
	f.runes['M'] = true
	return f
}

func (f *fakeFace) Close() error { return nil }

func (f *fakeFace) Metrics() font.Metrics {
	return font.Metrics{
		Height:  fixed.I(f.h),
		Ascent:  fixed.I(f.ascent),
		Descent: fixed.I(f.h - f.ascent),
	}
}

func (f *fakeFace) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

func (f *fakeFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	if !f.runes[r] {
		return 0, false
	}
	return fixed.I(f.w), true
}

func (f *fakeFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	if !f.runes[r] {
		return fixed.Rectangle26_6{}, 0, false
	}
	bounds := fixed.R(0, -f.ascent, f.w, f.h-f.ascent)
	return bounds, fixed.I(f.w), true
}

func (f *fakeFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	if !f.runes[r] {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	x, y := dot.X.Floor(), dot.Y.Floor()
	dr := image.Rect(x, y-f.ascent, x+f.w, y-f.ascent+f.h)
	return dr, image.NewUniform(color.Alpha{A: 0xff}), image.Point{}, fixed.I(f.w), true
}

func TestFontTableCellSize(t *testing.T) {
	ft, err := NewFontTable(basicfont.Face7x13, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, h := ft.CellSize()
	if w != 7 || h != 13 {
		t.Errorf("expected 7x13 cell, got %dx%d", w, h)
	}
}

func TestFontTableRequiresRegular(t *testing.T) {
	_, err := NewFontTable(nil, nil, nil)
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestFontTableMismatchedSizes(t *testing.T) {
	regular := newFakeFace(6, 10, "A")
	bold := newFakeFace(6, 12, "A")

	_, err := NewFontTable(regular, bold, nil)
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for mismatched cells, got %v", err)
	}
}

func TestGlyphMaskSize(t *testing.T) {
	ft, err := NewFontTable(newFakeFace(6, 10, "A"), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mask := ft.Glyph("A", WeightRegular)
	if got := mask.Bounds(); got.Dx() != 6 || got.Dy() != 10 {
		t.Errorf("expected 6x10 mask, got %dx%d", got.Dx(), got.Dy())
	}
}

func TestGlyphMissingWeightFallsBackToRegular(t *testing.T) {
	ft, err := NewFontTable(newFakeFace(6, 10, "A"), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	regular := ft.Glyph("A", WeightRegular)
	bold := ft.Glyph("A", WeightBold)
	italic := ft.Glyph("A", WeightItalic)

	if !bytes.Equal(bold.Pix, regular.Pix) {
		t.Error("expected bold lookup to fall back to the regular glyph")
	}
	if !bytes.Equal(italic.Pix, regular.Pix) {
		t.Error("expected italic lookup to fall back to the regular glyph")
	}
}

func TestGlyphMissingGraphemeBlankByDefault(t *testing.T) {
	ft, err := NewFontTable(newFakeFace(6, 10, "A"), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mask := ft.Glyph("Z", WeightRegular)
	for _, a := range mask.Pix {
		if a != 0 {
			t.Fatal("expected blank mask for a missing grapheme")
		}
	}
}

func TestGlyphMissingGraphemeUsesFallback(t *testing.T) {
	ft, err := NewFontTable(newFakeFace(6, 10, "A?"), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ft.SetFallbackGlyph("?")

	want := ft.Glyph("?", WeightRegular)
	got := ft.Glyph("Z", WeightRegular)

	if !bytes.Equal(got.Pix, want.Pix) {
		t.Error("expected missing grapheme to resolve to the fallback glyph")
	}
}

func TestGlyphBlankSymbols(t *testing.T) {
	ft, err := NewFontTable(newFakeFace(6, 10, "A"), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, sym := range []string{"", " "} {
		mask := ft.Glyph(sym, WeightRegular)
		for _, a := range mask.Pix {
			if a != 0 {
				t.Fatalf("expected blank mask for %q", sym)
			}
		}
	}
}

func TestGlyphCached(t *testing.T) {
	ft, err := NewFontTable(newFakeFace(6, 10, "A"), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ft.Glyph("A", WeightRegular) != ft.Glyph("A", WeightRegular) {
		t.Error("expected repeated lookups to return the cached mask")
	}
}

func TestWeightFor(t *testing.T) {
	if got := weightFor(0); got != WeightRegular {
		t.Errorf("expected regular, got %v", got)
	}
	if got := weightFor(CellFlagBold); got != WeightBold {
		t.Errorf("expected bold, got %v", got)
	}
	if got := weightFor(CellFlagItalic); got != WeightItalic {
		t.Errorf("expected italic, got %v", got)
	}
	if got := weightFor(CellFlagBold | CellFlagItalic); got != WeightBold {
		t.Errorf("expected bold to win, got %v", got)
	}
}
