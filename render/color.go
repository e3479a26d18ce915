package render

import "fmt"

// Color is an 8-bit-per-channel RGBA color. Channels are not premultiplied;
// premultiplication happens at the pixmap boundary.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Transparent = Color{0, 0, 0, 0}
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Red         = Color{255, 0, 0, 255}
	Green       = Color{0, 128, 0, 255}
	Blue        = Color{0, 0, 255, 255}
	Gray        = Color{128, 128, 128, 255}
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

// ColorFromUint32 unpacks a 0xRRGGBBAA value, the wire format the widget
// layer uses for color properties.
func ColorFromUint32(v uint32) Color {
	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}
}

// Uint32 packs the color as 0xRRGGBBAA.
func (c Color) Uint32() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// ScaleAlpha multiplies the alpha channel by t in [0,1]. Used to apply the
// context's global alpha to solid paints.
func (c Color) ScaleAlpha(t float32) Color {
	if t <= 0 {
		c.A = 0
		return c
	}
	if t >= 1 {
		return c
	}
	c.A = uint8(float32(c.A)*t + 0.5)
	return c
}

// Blend linearly interpolates between c and other. t=0 returns c, t=1
// returns other. Channels interpolate independently.
func (c Color) Blend(other Color, t float32) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return other
	}
	lerp := func(a, b uint8) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*t + 0.5)
	}
	return Color{
		R: lerp(c.R, other.R),
		G: lerp(c.G, other.G),
		B: lerp(c.B, other.B),
		A: lerp(c.A, other.A),
	}
}

// IsOpaque reports whether the color is fully opaque.
func (c Color) IsOpaque() bool {
	return c.A == 255
}

func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
