package pixelterm

import (
	"image/color"

	"github.com/unilibs/uniwidth"
)

// CellFlags is a bitmask of cell rendering attributes.
type CellFlags uint16

const (
	// CellFlagBold renders the cell with the bold font weight.
	CellFlagBold CellFlags = 1 << iota
	// CellFlagDim halves the foreground color intensity.
	CellFlagDim
	// CellFlagItalic renders the cell with the italic font weight.
	CellFlagItalic
	// CellFlagUnderline draws a line along the bottom row of the cell.
	CellFlagUnderline
	// CellFlagStrike draws a line through the middle of the cell.
	CellFlagStrike
	// CellFlagReverse swaps the foreground and background colors.
	CellFlagReverse
	// CellFlagHidden renders the cell using the background color only.
	CellFlagHidden
	// CellFlagBlinkSlow toggles cell visibility with the slow blink phase.
	CellFlagBlinkSlow
	// CellFlagBlinkFast toggles cell visibility with the fast blink phase.
	CellFlagBlinkFast
)

// Cell stores the grapheme, colors, and formatting attributes for one grid
// position. Nil colors resolve to the theme defaults at render time.
// UnderlineColor overrides the foreground for the underline; nil underlines
// in the foreground color.
type Cell struct {
	Symbol         string
	Fg             color.Color
	Bg             color.Color
	UnderlineColor color.Color
	Flags          CellFlags
}

// NewCell creates a cell initialized with a space character and default colors.
func NewCell() Cell {
	return Cell{Symbol: " "}
}

// HasFlag returns true if the given flag is set.
func (c *Cell) HasFlag(f CellFlags) bool {
	return c.Flags&f != 0
}

// SetFlag sets the given flag.
func (c *Cell) SetFlag(f CellFlags) {
	c.Flags |= f
}

// ClearFlag clears the given flag.
func (c *Cell) ClearFlag(f CellFlags) {
	c.Flags &^= f
}

// IsWide returns true if the cell's symbol occupies two display columns
// (CJK ideographs, fullwidth forms, emoji).
func (c Cell) IsWide() bool {
	return uniwidth.StringWidth(c.Symbol) >= 2
}

// Equal reports whether two cells render identically: same symbol, colors,
// and flags.
func (c Cell) Equal(o Cell) bool {
	return c.Symbol == o.Symbol &&
		c.Flags == o.Flags &&
		colorEqual(c.Fg, o.Fg) &&
		colorEqual(c.Bg, o.Bg) &&
		colorEqual(c.UnderlineColor, o.UnderlineColor)
}

// colorEqual compares two cell colors. Named and indexed colors compare by
// identity of their reference, not by their placeholder RGBA values.
func colorEqual(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == b
	}

	switch av := a.(type) {
	case *NamedColor:
		bv, ok := b.(*NamedColor)
		return ok && av.Name == bv.Name
	case *IndexedColor:
		bv, ok := b.(*IndexedColor)
		return ok && av.Index == bv.Index
	}

	if _, ok := b.(*NamedColor); ok {
		return false
	}
	if _, ok := b.(*IndexedColor); ok {
		return false
	}

	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

// CellGridSource is a read-only view of the cell grid produced by the UI
// toolkit for one frame. Coordinates are 0-based, row-major.
type CellGridSource interface {
	// Rows returns the grid height in character rows.
	Rows() int
	// Cols returns the grid width in character columns.
	Cols() int
	// Cell returns the cell at the given position.
	Cell(row, col int) Cell
}

// Grid is a concrete fixed-size cell grid. It implements CellGridSource and
// is the snapshot representation used for frame diffing.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid creates a grid with the given dimensions, filled with blank cells.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}

	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	for i := range g.cells {
		g.cells[i] = NewCell()
	}

	return g
}

// Rows returns the grid height in character rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the grid width in character columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Cell returns the cell at the given position. Out-of-range positions return
// a blank cell.
func (g *Grid) Cell(row, col int) Cell {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return NewCell()
	}
	return g.cells[row*g.cols+col]
}

// SetCell replaces the cell at the given position. Out-of-range positions are
// ignored.
func (g *Grid) SetCell(row, col int, c Cell) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.cells[row*g.cols+col] = c
}

// Fill sets every cell in the grid to c.
func (g *Grid) Fill(c Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// SetString writes s starting at the given position, one rune per cell. Wide
// runes take two columns; the spacer column is set to a blank cell with the
// same background. Writing stops at the end of the row.
func (g *Grid) SetString(row, col int, s string, fg, bg color.Color, flags CellFlags) {
	for _, r := range s {
		if col >= g.cols {
			return
		}

		g.SetCell(row, col, Cell{Symbol: string(r), Fg: fg, Bg: bg, Flags: flags})
		col++

		if uniwidth.RuneWidth(r) == 2 {
			g.SetCell(row, col, Cell{Symbol: " ", Fg: fg, Bg: bg, Flags: flags})
			col++
		}
	}
}

// copyOf captures a snapshot copy of an arbitrary cell grid source.
func copyOf(src CellGridSource) *Grid {
	g := NewGrid(src.Rows(), src.Cols())
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			g.cells[row*g.cols+col] = src.Cell(row, col)
		}
	}
	return g
}
