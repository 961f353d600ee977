package scene

import "image/color"

// Color is an 8-bit RGBA color (straight alpha).
type Color = color.RGBA

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// Scale multiplies the color channels by s in [0,1]; alpha is kept.
func Scale(c Color, s float32) Color {
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	t := uint32(s * 255)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// WithAlpha returns c with alpha a.
func WithAlpha(c Color, a uint8) Color { c.A = a; return c }

// blend composites src over dst (straight alpha).
func blend(dst, src Color) Color {
	if src.A == 0xFF {
		return src
	}
	if src.A == 0 {
		return dst
	}
	a := uint32(src.A)
	ia := 255 - a
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*ia) / 255)
	}
	return Color{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: uint8(a + uint32(dst.A)*ia/255),
	}
}
