package pixelterm

import (
	"image"
	"image/color"
	"image/draw"
)

// compositor renders single cells into a reusable cell-sized pixel block.
// Every color it emits has been quantized through the target's color model,
// so the framebuffer and the display always agree on representable colors.
type compositor struct {
	fonts       *FontTable
	theme       Theme
	model       color.Model
	cursor      CursorConfig
	cursorGlyph string
	block       *image.RGBA
}

func newCompositor(fonts *FontTable, theme Theme, model color.Model, cursor CursorConfig, cursorGlyph string) *compositor {
	w, h := fonts.CellSize()
	return &compositor{
		fonts:       fonts,
		theme:       theme,
		model:       model,
		cursor:      cursor,
		cursorGlyph: cursorGlyph,
		block:       image.NewRGBA(image.Rect(0, 0, w, h)),
	}
}

// background returns the quantized default background color.
func (cp *compositor) background() color.RGBA {
	return cp.quantize(cp.theme.Background)
}

// render composites one cell, with optional cursor overlay, into the shared
// block. The block is exactly the font cell size and never touches pixels
// outside it; it is valid until the next render call.
//
// A cell suppressed by an inactive blink phase (or the hidden flag) renders
// as a fully background-filled block. Cursor overlays still apply on top of
// a suppressed cell, so the cursor stays visible while text blinks.
func (cp *compositor) render(cell Cell, isCursor bool, slowOn, fastOn bool) *image.RGBA {
	fg := cp.quantize(cp.theme.Resolve(cell.Fg, true))
	bg := cp.quantize(cp.theme.Resolve(cell.Bg, false))

	if cell.HasFlag(CellFlagDim) {
		fg = cp.quantize(dimColor(fg))
	}
	if cell.HasFlag(CellFlagReverse) {
		fg, bg = bg, fg
	}

	hidden := cell.HasFlag(CellFlagHidden) ||
		(cell.HasFlag(CellFlagBlinkSlow) && !slowOn) ||
		(cell.HasFlag(CellFlagBlinkFast) && !fastOn)

	altGlyph := isCursor && cp.cursor.Style == CursorAltGlyph
	if isCursor && cp.cursor.Style == CursorInverse {
		fg, bg = bg, fg
	}

	cp.fill(bg)

	if altGlyph {
		cp.drawGlyph(cp.cursorGlyph, WeightRegular, cp.quantize(cp.cursor.Color))
	} else if !hidden {
		cp.drawGlyph(cell.Symbol, weightFor(cell.Flags), fg)

		w, h := cp.fonts.CellSize()
		if cell.HasFlag(CellFlagUnderline) {
			uc := fg
			if cell.UnderlineColor != nil {
				uc = cp.quantize(cp.theme.Resolve(cell.UnderlineColor, true))
			}
			cp.hline(0, h-1, w, uc)
		}
		if cell.HasFlag(CellFlagStrike) {
			cp.hline(0, h/2, w, fg)
		}
	}

	if isCursor {
		w, h := cp.fonts.CellSize()
		c := cp.quantize(cp.cursor.Color)
		switch cp.cursor.Style {
		case CursorUnderline:
			cp.hline(0, h-1, w, c)
		case CursorOutline:
			cp.hline(0, 0, w, c)
			cp.hline(0, h-1, w, c)
			cp.vline(0, 0, h, c)
			cp.vline(w-1, 0, h, c)
		}
	}

	return cp.block
}

// drawGlyph paints the glyph mask for the symbol over the block in the given
// color. Mask pixels at or above half coverage take the color; the rest keep
// the block's background.
func (cp *compositor) drawGlyph(symbol string, weight Weight, c color.RGBA) {
	if symbol == "" || symbol == " " {
		return
	}

	mask := cp.fonts.Glyph(symbol, weight)
	b := cp.block.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.AlphaAt(x, y).A >= 0x80 {
				cp.block.SetRGBA(x, y, c)
			}
		}
	}
}

// fill paints the whole block with one color.
func (cp *compositor) fill(c color.RGBA) {
	draw.Draw(cp.block, cp.block.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// hline draws a horizontal run of w pixels starting at (x, y).
func (cp *compositor) hline(x, y, w int, c color.RGBA) {
	for i := 0; i < w; i++ {
		cp.block.SetRGBA(x+i, y, c)
	}
}

// vline draws a vertical run of h pixels starting at (x, y).
func (cp *compositor) vline(x, y, h int, c color.RGBA) {
	for i := 0; i < h; i++ {
		cp.block.SetRGBA(x, y+i, c)
	}
}

// quantize converts a color through the display's native model.
func (cp *compositor) quantize(c color.RGBA) color.RGBA {
	r, g, b, a := cp.model.Convert(c).RGBA()
	return color.RGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}
}
