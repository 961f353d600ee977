package hero

import (
	"fmt"
	"image/color"
	"math"

	"wavefield/wavekit/scene"
	"wavefield/wavekit/wave"
)

// Options configures a Background. The zero LineCount picks the device
// default; the zero AnimationSpeed means 1.
type Options struct {
	LineCount           int
	Palette             []color.RGBA
	AnimationSpeed      float64
	EnableInteractivity bool
}

// DefaultOptions returns interactive defaults with the built-in palette.
func DefaultOptions() Options {
	return Options{
		Palette:             scene.DefaultPalette,
		AnimationSpeed:      1,
		EnableInteractivity: true,
	}
}

// Validate rejects negative counts and speeds.
func (o Options) Validate() error {
	if o.LineCount < 0 {
		return fmt.Errorf("line count %d: %w", o.LineCount, wave.ErrInvalidConfig)
	}
	if o.AnimationSpeed < 0 || math.IsNaN(o.AnimationSpeed) || math.IsInf(o.AnimationSpeed, 0) {
		return fmt.Errorf("animation speed %v: %w", o.AnimationSpeed, wave.ErrInvalidConfig)
	}
	return nil
}

func (o Options) normalized() Options {
	if o.AnimationSpeed == 0 {
		o.AnimationSpeed = 1
	}
	if len(o.Palette) == 0 {
		o.Palette = scene.DefaultPalette
	}
	return o
}

// lineCount returns the effective number of lines for tier.
func (o Options) lineCount(tier wave.Tier) int {
	if o.LineCount > 0 {
		return o.LineCount
	}
	return tier.Lines
}

// LineSpread is the vertical distance between the outermost line offsets in
// world units.
const LineSpread = 1.6

// lineStyles colors lines by index modulo the palette and fans them out
// vertically around the origin.
func lineStyles(n int, palette []color.RGBA, pixelWidth float32) []scene.LineStyle {
	styles := make([]scene.LineStyle, n)
	for i := range styles {
		off := float32(0)
		if n > 1 {
			off = (float32(i)/float32(n-1) - 0.5) * LineSpread
		}
		styles[i] = scene.LineStyle{
			Color:  scene.WithAlpha(palette[i%len(palette)], 0xC8),
			Width:  pixelWidth,
			Offset: wave.Point3{0, off, 0},
		}
	}
	return styles
}
