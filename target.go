package pixelterm

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// DrawTarget is the abstract pixel-addressable destination backing the
// physical display. Implementations may be write-only; the backend never
// reads pixels back.
type DrawTarget interface {
	// Size returns the display resolution in pixels.
	Size() (width, height int)

	// ColorModel returns the display's native color model. The backend
	// quantizes every composited color through it, so limited-color panels
	// see only colors they can represent (see PaletteModel).
	ColorModel() color.Model

	// SetPixel writes one pixel. The color is already quantized through
	// ColorModel.
	SetPixel(x, y int, c color.RGBA) error
}

// BlockWriter is an optional DrawTarget fast path for displays that accept
// rectangular pixel blocks in one transfer.
type BlockWriter interface {
	// WriteBlock writes the given image into the display rectangle r. The
	// image bounds match r in size.
	WriteBlock(r image.Rectangle, img *image.RGBA) error
}

// ImageTarget adapts a draw.Image as a DrawTarget. Useful for in-memory
// displays, tests, and hosts that own an OS framebuffer mapping.
type ImageTarget struct {
	img draw.Image
}

// NewImageTarget creates a target backed by the given image.
func NewImageTarget(img draw.Image) *ImageTarget {
	return &ImageTarget{img: img}
}

// Size returns the image dimensions.
func (t *ImageTarget) Size() (width, height int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// ColorModel returns the underlying image's color model.
func (t *ImageTarget) ColorModel() color.Model {
	return t.img.ColorModel()
}

// SetPixel writes one pixel.
func (t *ImageTarget) SetPixel(x, y int, c color.RGBA) error {
	t.img.Set(t.img.Bounds().Min.X+x, t.img.Bounds().Min.Y+y, c)
	return nil
}

// WriteBlock implements BlockWriter.
func (t *ImageTarget) WriteBlock(r image.Rectangle, img *image.RGBA) error {
	dst := r.Add(t.img.Bounds().Min)
	draw.Draw(t.img, dst, img, img.Bounds().Min, draw.Src)
	return nil
}

// RGB565Target renders into a packed 16-bit RGB565 byte buffer, the native
// layout of many SPI TFT controllers. Callers provide the backing buffer and
// its stride in bytes; a driver then transfers the buffer to the panel.
type RGB565Target struct {
	// Buf is the backing buffer, two bytes per pixel, little-endian.
	Buf []byte
	// Stride is the number of bytes per row.
	Stride int
	// W is the display width in pixels.
	W int
	// H is the display height in pixels.
	H int
}

// Size returns the display dimensions.
func (t *RGB565Target) Size() (width, height int) {
	return t.W, t.H
}

// ColorModel returns the RGB565 quantization model.
func (t *RGB565Target) ColorModel() color.Model {
	return rgb565Model
}

// SetPixel writes one pixel into the packed buffer.
func (t *RGB565Target) SetPixel(x, y int, c color.RGBA) error {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return fmt.Errorf("pixel (%d, %d) out of bounds %dx%d", x, y, t.W, t.H)
	}

	off := y*t.Stride + x*2
	if off < 0 || off+1 >= len(t.Buf) {
		return fmt.Errorf("pixel (%d, %d) beyond buffer of %d bytes", x, y, len(t.Buf))
	}

	p := rgb565From888(c.R, c.G, c.B)
	t.Buf[off] = byte(p)
	t.Buf[off+1] = byte(p >> 8)

	return nil
}

// rgb565Model quantizes colors to the RGB565 representable set, expanded back
// to 8 bits per channel.
var rgb565Model = color.ModelFunc(func(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	p := rgb565From888(uint8(r>>8), uint8(g>>8), uint8(b>>8))
	return color.RGBA{
		R: uint8((p >> 11) << 3),
		G: uint8((p >> 5 & 0x3f) << 2),
		B: uint8((p & 0x1f) << 3),
		A: 255,
	}
})

func rgb565From888(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}
