package scene

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPalette is the line palette used when none is configured.
var DefaultPalette = []Color{
	RGB(0x4F, 0x8C, 0xFF),
	RGB(0x7A, 0x5C, 0xFF),
	RGB(0x2E, 0xD1, 0xC5),
	RGB(0xA8, 0xB8, 0xFF),
}

// ParsePalette parses "#rrggbb" strings.
func ParsePalette(hex []string) ([]Color, error) {
	out := make([]Color, 0, len(hex))
	for _, h := range hex {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if !strings.HasPrefix(h, "#") {
			h = "#" + h
		}
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette %q: %w", h, err)
		}
		r, g, b := c.RGB255()
		out = append(out, RGB(r, g, b))
	}
	return out, nil
}

// Gradient is a vertical two-stop gradient blended in Lab space.
type Gradient struct {
	Top    Color
	Bottom Color
}

// DefaultGradient is the static fallback background.
func DefaultGradient() Gradient {
	return Gradient{Top: RGB(0x0B, 0x10, 0x2A), Bottom: RGB(0x1C, 0x12, 0x3E)}
}

// At returns the gradient color at t in [0,1].
func (g Gradient) At(t float64) Color {
	if t <= 0 {
		return g.Top
	}
	if t >= 1 {
		return g.Bottom
	}
	a, _ := colorful.MakeColor(g.Top)
	b, _ := colorful.MakeColor(g.Bottom)
	r, gg, bb := a.BlendLab(b, t).Clamped().RGB255()
	return RGB(r, gg, bb)
}

// Draw fills the target row by row.
func (g Gradient) Draw(t Target) {
	if t == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	den := float64(h - 1)
	if den <= 0 {
		den = 1
	}
	for y := 0; y < h; y++ {
		FillRect(t, 0, y, w, 1, g.At(float64(y)/den))
	}
}
