package pixelterm

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FlushFunc commits a fully composited frame to the physical display. It is
// the extension point for slow full-frame hardware (e-paper controllers and
// similar): the backend hands it the complete framebuffer image once per
// frame and blocks until it returns.
type FlushFunc func(img *image.RGBA) error

// Alignment places the character grid inside the display when the resolution
// is not an exact multiple of the glyph cell size.
type Alignment int

const (
	// AlignStart puts the remainder margin at the right or bottom.
	AlignStart Alignment = iota
	// AlignCenter splits the remainder margin evenly.
	AlignCenter
	// AlignEnd puts the remainder margin at the left or top.
	AlignEnd
)

type config struct {
	fonts       *FontTable
	regular     font.Face
	bold        font.Face
	italic      font.Face
	theme       Theme
	cursor      CursorConfig
	blink       BlinkConfig
	blinkOff    bool
	noFB        bool
	flush       FlushFunc
	halign      Alignment
	valign      Alignment
	fallback    string
	cursorGlyph string
}

// Option configures a Backend.
type Option func(*config)

// WithFonts sets the font faces for the regular, bold, and italic weights.
// Bold and italic may be nil; those weights then fall back to regular.
func WithFonts(regular, bold, italic font.Face) Option {
	return func(c *config) {
		c.regular = regular
		c.bold = bold
		c.italic = italic
	}
}

// WithFontTable sets a prebuilt font table, overriding WithFonts.
func WithFontTable(t *FontTable) Option {
	return func(c *config) {
		c.fonts = t
	}
}

// WithTheme sets the color theme. The default is ThemeANSI.
func WithTheme(t Theme) Option {
	return func(c *config) {
		c.theme = t
	}
}

// WithCursor sets the cursor appearance and blink behavior.
func WithCursor(cfg CursorConfig) Option {
	return func(c *config) {
		c.cursor = cfg
	}
}

// WithBlink sets the blink timing for text modifiers and the cursor.
func WithBlink(cfg BlinkConfig) Option {
	return func(c *config) {
		c.blink = cfg
	}
}

// WithoutBlink disables blinking entirely: both phases are pinned on, blink
// modifiers become no-ops, and the cursor never blink-hides.
func WithoutBlink() Option {
	return func(c *config) {
		c.blinkOff = true
	}
}

// WithoutFramebuffer puts the backend in direct-write mode: every frame is
// treated as fully dirty and written straight to the target, and no
// previous-frame memory is retained. Trades CPU and bandwidth for RAM.
// Batched mode (WithFlush) is unavailable without a framebuffer.
func WithoutFramebuffer() Option {
	return func(c *config) {
		c.noFB = true
	}
}

// WithFlush switches the backend to batched mode: dirty cells are composited
// into the framebuffer and the complete image is handed to fn once per frame.
// Requires the framebuffer.
func WithFlush(fn FlushFunc) Option {
	return func(c *config) {
		c.flush = fn
	}
}

// WithAlignment sets how the grid is placed inside the display when remainder
// pixels exist. The default is AlignStart for both axes.
func WithAlignment(horizontal, vertical Alignment) Option {
	return func(c *config) {
		c.halign = horizontal
		c.valign = vertical
	}
}

// WithFallbackGlyph sets the grapheme rendered in place of symbols the fonts
// cannot render. The default renders a blank cell.
func WithFallbackGlyph(symbol string) Option {
	return func(c *config) {
		c.fallback = symbol
	}
}

// WithCursorGlyph sets the grapheme used by the CursorAltGlyph style. The
// default is "_".
func WithCursorGlyph(symbol string) Option {
	return func(c *config) {
		c.cursorGlyph = symbol
	}
}

// Backend renders cell grids onto a DrawTarget. It owns the framebuffer,
// snapshot, cursor, and blink state; all work happens synchronously inside
// the caller's Draw call.
type Backend struct {
	target DrawTarget
	blockW BlockWriter

	fonts *FontTable
	comp  *compositor
	fb    *framebuffer
	flush FlushFunc
	blink *blinkState

	cursor cursorState

	rows   int
	cols   int
	cellW  int
	cellH  int
	pixelW int
	pixelH int
	offX   int
	offY   int

	// Committed state of the last successful frame. snapshot is nil before
	// the first frame and after Clear.
	snapshot   *Grid
	snapCursor *cellPos
	snapSlowOn bool
	snapFastOn bool
}

// New creates a backend over the given draw target. The grid dimensions are
// fixed for the backend's lifetime: display pixels divided by the glyph cell
// size, with any remainder left as margin.
func New(target DrawTarget, opts ...Option) (*Backend, error) {
	cfg := config{
		theme:       ThemeANSI(),
		cursor:      DefaultCursorConfig(),
		blink:       DefaultBlinkConfig(),
		cursorGlyph: "_",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if target == nil {
		return nil, fmt.Errorf("%w: nil draw target", ErrConfiguration)
	}

	pixelW, pixelH := target.Size()
	if pixelW <= 0 || pixelH <= 0 {
		return nil, fmt.Errorf("%w: zero-sized display %dx%d", ErrConfiguration, pixelW, pixelH)
	}

	if cfg.flush != nil && cfg.noFB {
		return nil, fmt.Errorf("%w: batched flush requires the framebuffer", ErrConfiguration)
	}

	fonts := cfg.fonts
	if fonts == nil {
		regular := cfg.regular
		if regular == nil {
			regular = basicfont.Face7x13
		}
		var err error
		fonts, err = NewFontTable(regular, cfg.bold, cfg.italic)
		if err != nil {
			return nil, err
		}
	}
	if cfg.fallback != "" {
		fonts.SetFallbackGlyph(cfg.fallback)
	}

	cellW, cellH := fonts.CellSize()
	cols := pixelW / cellW
	rows := pixelH / cellH
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("%w: display %dx%d smaller than one %dx%d cell",
			ErrConfiguration, pixelW, pixelH, cellW, cellH)
	}

	b := &Backend{
		target: target,
		fonts:  fonts,
		comp:   newCompositor(fonts, cfg.theme, target.ColorModel(), cfg.cursor, cfg.cursorGlyph),
		flush:  cfg.flush,
		blink:  newBlinkState(cfg.blink, !cfg.blinkOff),
		cursor: newCursorState(cfg.cursor),
		rows:   rows,
		cols:   cols,
		cellW:  cellW,
		cellH:  cellH,
		pixelW: pixelW,
		pixelH: pixelH,
		offX:   alignOffset(cfg.halign, pixelW-cols*cellW),
		offY:   alignOffset(cfg.valign, pixelH-rows*cellH),
	}
	if bw, ok := target.(BlockWriter); ok {
		b.blockW = bw
	}
	if !cfg.noFB {
		b.fb = newFramebuffer(pixelW, pixelH, b.comp.background())
	}

	return b, nil
}

// alignOffset places a remainder margin according to the alignment.
func alignOffset(a Alignment, extra int) int {
	switch a {
	case AlignCenter:
		return extra / 2
	case AlignEnd:
		return extra
	default:
		return 0
	}
}

// Size returns the grid dimensions in character cells.
func (b *Backend) Size() (cols, rows int) {
	return b.cols, b.rows
}

// CellSize returns the glyph cell dimensions in pixels.
func (b *Backend) CellSize() (width, height int) {
	return b.cellW, b.cellH
}

// PixelSize returns the display resolution in pixels.
func (b *Backend) PixelSize() (width, height int) {
	return b.pixelW, b.pixelH
}

// SetCursor moves the cursor to the given cell position.
func (b *Backend) SetCursor(row, col int) {
	b.cursor.row = row
	b.cursor.col = col
}

// CursorPosition returns the current cursor cell position.
func (b *Backend) CursorPosition() (row, col int) {
	return b.cursor.row, b.cursor.col
}

// ShowCursor makes the cursor visible.
func (b *Backend) ShowCursor() {
	b.cursor.visible = true
}

// HideCursor makes the cursor invisible.
func (b *Backend) HideCursor() {
	b.cursor.visible = false
}

// renderedCursor returns the cell the cursor overlay will be drawn on this
// frame, or nil when the cursor is hidden, blink-hidden, or out of the grid.
func (b *Backend) renderedCursor() *cellPos {
	if !b.cursor.visible {
		return nil
	}
	if b.cursor.config.Blink && !b.blink.slowOn {
		return nil
	}
	if b.cursor.row < 0 || b.cursor.row >= b.rows || b.cursor.col < 0 || b.cursor.col >= b.cols {
		return nil
	}
	return &cellPos{row: b.cursor.row, col: b.cursor.col}
}

// Draw renders one frame: advance the blink phase, diff the grid against the
// committed snapshot, composite each dirty cell, write the results to the
// target (incremental mode) or hand the framebuffer to the flush callback
// (batched mode), then commit the snapshot. On any write or flush error the
// frame is aborted and the snapshot is voided: the framebuffer already holds
// blocks the display never received, so the next Draw recomposites and
// rewrites every cell instead of diffing against state that was never shown.
func (b *Backend) Draw(src CellGridSource) error {
	if src == nil {
		return fmt.Errorf("%w: nil grid source", ErrConfiguration)
	}
	if src.Rows() != b.rows || src.Cols() != b.cols {
		return fmt.Errorf("%w: source grid %dx%d does not match backend %dx%d",
			ErrConfiguration, src.Cols(), src.Rows(), b.cols, b.rows)
	}

	b.blink.tick()
	cursor := b.renderedCursor()

	var dirty []cellPos
	if b.fb == nil || b.snapshot == nil {
		dirty = diffGrids(nil, src, diffState{})
	} else {
		dirty = diffGrids(b.snapshot, src, diffState{
			prevCursor:  b.snapCursor,
			curCursor:   cursor,
			slowToggled: b.blink.slowOn != b.snapSlowOn,
			fastToggled: b.blink.fastOn != b.snapFastOn,
		})
	}

	for _, pos := range dirty {
		cell := src.Cell(pos.row, pos.col)
		block := b.comp.render(cell, posIs(cursor, pos), b.blink.slowOn, b.blink.fastOn)

		x := b.offX + pos.col*b.cellW
		y := b.offY + pos.row*b.cellH
		if b.fb != nil {
			b.fb.blit(x, y, block)
		}
		if b.flush == nil {
			if err := b.writeBlock(x, y, block); err != nil {
				b.dropSnapshot()
				return err
			}
		}
	}

	if b.flush != nil {
		if err := b.flush(b.fb.Image()); err != nil {
			b.dropSnapshot()
			return fmt.Errorf("%w: %v", ErrFlush, err)
		}
	}

	if b.fb != nil {
		b.snapshot = copyOf(src)
		b.snapCursor = cursor
		b.snapSlowOn = b.blink.slowOn
		b.snapFastOn = b.blink.fastOn
	}

	return nil
}

// dropSnapshot voids the committed state after a failed frame. The
// framebuffer may hold blocks blitted for the frame that never reached the
// display, so diffing against any snapshot would leak them into later
// flushes.
func (b *Backend) dropSnapshot() {
	b.snapshot = nil
	b.snapCursor = nil
}

// Clear resets the display to the theme background and voids the snapshot,
// forcing the next Draw to repaint every cell. In batched mode the cleared
// framebuffer reaches the panel on the next flush.
func (b *Backend) Clear() error {
	bg := b.comp.background()

	if b.fb != nil {
		b.fb.fill(bg)
	}
	b.snapshot = nil
	b.snapCursor = nil

	if b.flush != nil {
		return nil
	}
	return b.fillTarget(bg)
}

// Flush forces an immediate flush regardless of dirty state: batched mode
// invokes the callback with the current framebuffer, incremental mode
// repaints the target from it. Without a framebuffer there is nothing
// retained to flush and Flush is a no-op.
func (b *Backend) Flush() error {
	switch {
	case b.flush != nil:
		if err := b.flush(b.fb.Image()); err != nil {
			return fmt.Errorf("%w: %v", ErrFlush, err)
		}
		return nil
	case b.fb != nil:
		return b.writeImage(image.Rect(0, 0, b.pixelW, b.pixelH), b.fb.Image())
	default:
		return nil
	}
}

// writeBlock writes one composited cell block to the target at pixel (x, y).
func (b *Backend) writeBlock(x, y int, block *image.RGBA) error {
	if b.blockW != nil {
		r := image.Rect(x, y, x+b.cellW, y+b.cellH)
		if err := b.blockW.WriteBlock(r, block); err != nil {
			return fmt.Errorf("%w: block at (%d, %d): %v", ErrDeviceWrite, x, y, err)
		}
		return nil
	}

	for py := 0; py < b.cellH; py++ {
		for px := 0; px < b.cellW; px++ {
			if err := b.target.SetPixel(x+px, y+py, block.RGBAAt(px, py)); err != nil {
				return fmt.Errorf("%w: pixel (%d, %d): %v", ErrDeviceWrite, x+px, y+py, err)
			}
		}
	}

	return nil
}

// writeImage writes an image covering the display rectangle r to the target.
func (b *Backend) writeImage(r image.Rectangle, img *image.RGBA) error {
	if b.blockW != nil {
		if err := b.blockW.WriteBlock(r, img); err != nil {
			return fmt.Errorf("%w: %v", ErrDeviceWrite, err)
		}
		return nil
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if err := b.target.SetPixel(x, y, img.RGBAAt(x-r.Min.X, y-r.Min.Y)); err != nil {
				return fmt.Errorf("%w: pixel (%d, %d): %v", ErrDeviceWrite, x, y, err)
			}
		}
	}

	return nil
}

// fillTarget paints the whole display with one color.
func (b *Backend) fillTarget(c color.RGBA) error {
	if b.fb != nil {
		return b.writeImage(image.Rect(0, 0, b.pixelW, b.pixelH), b.fb.Image())
	}

	img := image.NewRGBA(image.Rect(0, 0, b.pixelW, b.pixelH))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return b.writeImage(image.Rect(0, 0, b.pixelW, b.pixelH), img)
}
