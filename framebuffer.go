package pixelterm

import (
	"image"
	"image/color"
	"image/draw"
)

// framebuffer retains the last fully composited frame. It backs accurate
// diffing on write-only displays and is the payload handed whole to the
// flush callback in batched mode.
type framebuffer struct {
	img *image.RGBA
}

func newFramebuffer(width, height int, bg color.RGBA) *framebuffer {
	f := &framebuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	f.fill(bg)
	return f
}

// fill paints the whole framebuffer with one color.
func (f *framebuffer) fill(c color.RGBA) {
	draw.Draw(f.img, f.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// blit copies a composited cell block to the given pixel origin.
func (f *framebuffer) blit(x, y int, block *image.RGBA) {
	r := block.Bounds().Add(image.Pt(x, y).Sub(block.Bounds().Min))
	draw.Draw(f.img, r, block, block.Bounds().Min, draw.Src)
}

// Image returns the retained frame image. Callers must not keep references
// across Draw calls.
func (f *framebuffer) Image() *image.RGBA {
	return f.img
}
