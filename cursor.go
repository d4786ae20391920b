package pixelterm

import "image/color"

// CursorStyle determines how the cursor is rendered.
type CursorStyle int

const (
	// CursorInverse swaps the foreground and background of the cursor cell.
	CursorInverse CursorStyle = iota
	// CursorUnderline draws a line along the bottom row of the cursor cell
	// in the cursor color.
	CursorUnderline
	// CursorOutline draws a one-pixel border around the cursor cell in the
	// cursor color.
	CursorOutline
	// CursorAltGlyph replaces the cell's glyph with the configured cursor
	// glyph drawn in the cursor color.
	CursorAltGlyph
)

// CursorConfig controls cursor appearance and blink behavior.
type CursorConfig struct {
	// Style is the visual style of the cursor.
	Style CursorStyle

	// Color is the cursor color for the non-inverse styles.
	Color color.RGBA

	// Blink hides the cursor during the off part of the slow blink phase.
	// It has no effect when blink is disabled on the backend.
	Blink bool

	// Visible is the initial visibility. ShowCursor and HideCursor change it
	// at runtime.
	Visible bool
}

// DefaultCursorConfig returns a visible, blinking, inverse-style cursor.
func DefaultCursorConfig() CursorConfig {
	return CursorConfig{
		Style:   CursorInverse,
		Color:   color.RGBA{229, 229, 229, 255},
		Blink:   true,
		Visible: true,
	}
}

// cursorState tracks the cursor position and visibility (0-based cell
// coordinates), owned by the backend.
type cursorState struct {
	config  CursorConfig
	row     int
	col     int
	visible bool
}

func newCursorState(config CursorConfig) cursorState {
	return cursorState{config: config, visible: config.Visible}
}
