package pixelterm

// cellPos is a grid coordinate.
type cellPos struct {
	row int
	col int
}

// diffState carries the per-frame inputs that can dirty an unchanged cell:
// cursor movement and blink phase transitions.
type diffState struct {
	// prevCursor and curCursor are the rendered cursor positions of the
	// previous and current frame; nil means no cursor was (or will be) drawn.
	prevCursor *cellPos
	curCursor  *cellPos

	slowToggled bool
	fastToggled bool
}

// diffGrids compares the current grid against the previous snapshot and
// returns the dirty cells in row-major order. A cell is dirty if its content
// changed, if it is covered by a cursor that moved or changed visibility, or
// if it carries a blink modifier whose phase toggled this frame. A nil
// previous grid marks every cell dirty.
func diffGrids(prev *Grid, cur CellGridSource, st diffState) []cellPos {
	rows, cols := cur.Rows(), cur.Cols()

	if prev == nil {
		dirty := make([]cellPos, 0, rows*cols)
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				dirty = append(dirty, cellPos{row: row, col: col})
			}
		}
		return dirty
	}

	cursorMoved := !posEqual(st.prevCursor, st.curCursor)

	var dirty []cellPos
	for row := 0; row < rows; row++ {
		// A dirty wide glyph carries into the following spacer cell, so the
		// pair always repaints as a unit.
		wideCarry := false

		for col := 0; col < cols; col++ {
			pos := cellPos{row: row, col: col}
			cell := cur.Cell(row, col)
			carried := wideCarry
			wideCarry = false

			switch {
			case carried:
			case !cell.Equal(prev.Cell(row, col)):
			case cursorMoved && (posIs(st.prevCursor, pos) || posIs(st.curCursor, pos)):
			case st.slowToggled && cell.HasFlag(CellFlagBlinkSlow):
			case st.fastToggled && cell.HasFlag(CellFlagBlinkFast):
			default:
				continue
			}

			if cell.IsWide() {
				wideCarry = true
			}
			dirty = append(dirty, pos)
		}
	}

	return dirty
}

func posEqual(a, b *cellPos) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func posIs(p *cellPos, pos cellPos) bool {
	return p != nil && *p == pos
}
