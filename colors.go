package pixelterm

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// IndexedColor references a color by 256-color palette index. Resolution to
// actual RGBA happens at render time using the theme.
type IndexedColor struct {
	Index int
}

// RGBA implements color.Color, returning a placeholder (actual resolution
// happens at render time).
func (c *IndexedColor) RGBA() (r, g, b, a uint32) {
	return 0, 0, 0, 0xffff
}

// NamedColor references a color by semantic name (ANSI slot, foreground,
// background, cursor). Resolution to actual RGBA happens at render time using
// the theme.
type NamedColor struct {
	Name int
}

// RGBA implements color.Color, returning a placeholder (actual resolution
// happens at render time).
func (c *NamedColor) RGBA() (r, g, b, a uint32) {
	return 0, 0, 0, 0xffff
}

// Named color indices for the standard ANSI set (used with NamedColor).
// Indices 0-7 are the base colors, 8-15 the bright variants.
const (
	NamedColorBlack = iota
	NamedColorRed
	NamedColorGreen
	NamedColorYellow
	NamedColorBlue
	NamedColorMagenta
	NamedColorCyan
	NamedColorWhite
	NamedColorBrightBlack
	NamedColorBrightRed
	NamedColorBrightGreen
	NamedColorBrightYellow
	NamedColorBrightBlue
	NamedColorBrightMagenta
	NamedColorBrightCyan
	NamedColorBrightWhite
)

// Named color indices for semantic colors (used with NamedColor).
const (
	NamedColorForeground = 256 // Default foreground text color
	NamedColorBackground = 257 // Default background color
	NamedColorCursor     = 258 // Cursor color
)

// Theme is a total mapping from toolkit colors to display colors. It is a
// plain value: clone it and override fields to derive a custom theme.
type Theme struct {
	// Foreground is the default text color used when a cell has no explicit
	// foreground.
	Foreground color.RGBA

	// Background is the default fill color used when a cell has no explicit
	// background.
	Background color.RGBA

	// Palette holds the 16 standard ANSI colors (8 base + 8 bright).
	Palette [16]color.RGBA
}

// ThemeANSI returns the ANSI-faithful theme used by default.
func ThemeANSI() Theme {
	return Theme{
		Foreground: color.RGBA{229, 229, 229, 255},
		Background: color.RGBA{0, 0, 0, 255},
		Palette: [16]color.RGBA{
			{0, 0, 0, 255},       // Black
			{205, 49, 49, 255},   // Red
			{13, 188, 121, 255},  // Green
			{229, 229, 16, 255},  // Yellow
			{36, 114, 200, 255},  // Blue
			{188, 63, 188, 255},  // Magenta
			{17, 168, 205, 255},  // Cyan
			{229, 229, 229, 255}, // White
			{102, 102, 102, 255}, // Bright Black
			{241, 76, 76, 255},   // Bright Red
			{35, 209, 139, 255},  // Bright Green
			{245, 245, 67, 255},  // Bright Yellow
			{59, 142, 234, 255},  // Bright Blue
			{214, 112, 214, 255}, // Bright Magenta
			{41, 184, 219, 255},  // Bright Cyan
			{255, 255, 255, 255}, // Bright White
		},
	}
}

// ThemeTokyoNight returns a curated dark theme with blue and purple tones.
func ThemeTokyoNight() Theme {
	return Theme{
		Foreground: color.RGBA{0xa9, 0xb1, 0xd6, 255},
		Background: color.RGBA{0x1a, 0x1b, 0x26, 255},
		Palette: [16]color.RGBA{
			{0x41, 0x48, 0x68, 255}, // Black
			{0xf7, 0x76, 0x8e, 255}, // Red
			{0x73, 0xda, 0xca, 255}, // Green
			{0xe0, 0xaf, 0x68, 255}, // Yellow
			{0x7a, 0xa2, 0xf7, 255}, // Blue
			{0xbb, 0x9a, 0xf7, 255}, // Magenta
			{0x7d, 0xcf, 0xff, 255}, // Cyan
			{0xc0, 0xca, 0xf5, 255}, // White
			{0x41, 0x48, 0x68, 255}, // Bright Black
			{0xf7, 0x76, 0x8e, 255}, // Bright Red
			{0x73, 0xda, 0xca, 255}, // Bright Green
			{0xe0, 0xaf, 0x68, 255}, // Bright Yellow
			{0x7a, 0xa2, 0xf7, 255}, // Bright Blue
			{0xbb, 0x9a, 0xf7, 255}, // Bright Magenta
			{0x7d, 0xcf, 0xff, 255}, // Bright Cyan
			{0xc0, 0xca, 0xf5, 255}, // Bright White
		},
	}
}

// Resolve maps a cell color to display RGBA. It is total: every input,
// including nil and out-of-range indices, resolves to a defined color. The fg
// flag selects the default used for nil and unknown colors.
func (t Theme) Resolve(c color.Color, fg bool) color.RGBA {
	if c == nil {
		if fg {
			return t.Foreground
		}
		return t.Background
	}

	switch v := c.(type) {
	case color.RGBA:
		return v
	case *IndexedColor:
		switch {
		case v.Index >= 0 && v.Index < 16:
			return t.Palette[v.Index]
		case v.Index >= 16 && v.Index < 256:
			return extendedColor(v.Index)
		}
		if fg {
			return t.Foreground
		}
		return t.Background
	case *NamedColor:
		return t.resolveNamed(v.Name, fg)
	default:
		r, g, b, a := c.RGBA()
		return color.RGBA{
			R: uint8(r >> 8),
			G: uint8(g >> 8),
			B: uint8(b >> 8),
			A: uint8(a >> 8),
		}
	}
}

// resolveNamed resolves a named color index to RGBA.
func (t Theme) resolveNamed(name int, fg bool) color.RGBA {
	switch {
	case name >= 0 && name < 16:
		return t.Palette[name]
	case name == NamedColorForeground:
		return t.Foreground
	case name == NamedColorBackground:
		return t.Background
	case name == NamedColorCursor:
		return t.Foreground
	default:
		if fg {
			return t.Foreground
		}
		return t.Background
	}
}

// extendedColor computes entries 16-255 of the xterm palette: a 6x6x6 color
// cube (16-231) followed by a 24-step grayscale ramp (232-255).
func extendedColor(index int) color.RGBA {
	if index < 232 {
		i := index - 16
		r := i / 36
		g := (i / 6) % 6
		b := i % 6
		return color.RGBA{
			R: uint8(r * 51),
			G: uint8(g * 51),
			B: uint8(b * 51),
			A: 255,
		}
	}

	gray := uint8(8 + (index-232)*10)
	return color.RGBA{gray, gray, gray, 255}
}

// dimColor halves each RGB component, producing a darker variant for the dim
// attribute.
func dimColor(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R >> 1, G: c.G >> 1, B: c.B >> 1, A: c.A}
}

// paletteModel quantizes colors to a fixed set by perceptual (Lab) distance.
type paletteModel struct {
	colors []color.Color
	lab    []colorful.Color
}

// PaletteModel returns a color.Model that maps any color to the perceptually
// nearest of the given colors. It is meant as the ColorModel of draw targets
// with a limited native color set (1-bit, grayscale, or tricolor e-paper
// panels). PaletteModel panics if no colors are given.
func PaletteModel(colors ...color.Color) color.Model {
	if len(colors) == 0 {
		panic("pixelterm: PaletteModel requires at least one color")
	}

	m := &paletteModel{colors: colors, lab: make([]colorful.Color, len(colors))}
	for i, c := range colors {
		m.lab[i] = labOf(c)
	}

	return m
}

// Convert implements color.Model.
func (m *paletteModel) Convert(c color.Color) color.Color {
	target := labOf(c)

	best := 0
	bestDist := m.lab[0].DistanceLab(target)
	for i := 1; i < len(m.lab); i++ {
		if d := m.lab[i].DistanceLab(target); d < bestDist {
			best = i
			bestDist = d
		}
	}

	return m.colors[best]
}

// labOf converts a color for Lab distance comparison. Fully transparent
// colors (which go-colorful cannot normalize) compare as black.
func labOf(c color.Color) colorful.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return colorful.Color{}
	}
	return cf
}
