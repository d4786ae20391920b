// Package pixelterm renders a character-cell text UI onto pixel-addressable
// displays.
//
// It takes a grid of styled cells (grapheme, colors, attributes) produced once
// per frame by a text-UI toolkit and converts it into a minimal sequence of
// pixel writes on an abstract draw target, using bitmap glyphs rasterized from
// any font.Face, a color theme, cursor overlays, and a frame-counted blink
// phase. It is designed for constrained targets: some displays take hundreds
// of milliseconds per full update, so the backend diffs each frame against the
// previously committed one and only redraws cells that changed.
//
// # Quick Start
//
// Create a backend over a draw target and feed it grids:
//
//	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
//	backend, err := pixelterm.New(pixelterm.NewImageTarget(img))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cols, rows := backend.Size()
//	grid := pixelterm.NewGrid(rows, cols)
//	grid.SetString(0, 0, "Hello", nil, nil, pixelterm.CellFlagBold)
//	if err := backend.Draw(grid); err != nil {
//	    log.Fatal(err)
//	}
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Backend]: orchestrates diff, composition, writes, and flushing
//   - [Grid] / [Cell]: the styled character grid consumed each frame
//   - [FontTable]: fixed-size glyph masks per weight, with fallbacks
//   - [Theme]: total mapping from toolkit colors to display colors
//   - [DrawTarget]: the abstract pixel destination backing the display
//
// # Display Classes
//
// Fast random-access displays use the default incremental mode: dirty cells
// are written straight to the target. Slow full-frame displays (e-paper and
// similar) use batched mode: pass [WithFlush] and the backend composites the
// whole frame into its framebuffer, then hands the complete image to the
// callback once per frame. Hosts without RAM for a framebuffer can pass
// [WithoutFramebuffer] to trade bandwidth for memory: every frame is then
// composited and written in full, and no previous-frame state is kept.
//
// # Concurrency
//
// A Backend is single-threaded and call-driven: all work happens inside Draw
// on the caller's goroutine, including the flush callback. Callers that need
// a responsive UI loop should run Draw on a dedicated goroutine and serialize
// access themselves.
package pixelterm
