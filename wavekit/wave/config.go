// Package wave holds the per-line animation parameters and the pure geometry
// generator that turns a line configuration and a time value into 3D points.
package wave

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned by LineConfig.Validate.
var ErrInvalidConfig = errors.New("wave: invalid line config")

// MinPointCount is the smallest sample count a line can have.
const MinPointCount = 2

// LineConfig describes one wave line.
type LineConfig struct {
	Amplitude  float64 // vertical/depth displacement
	Frequency  float64 // spatial oscillation rate along the line
	Phase      float64 // per-line phase offset
	Speed      float64 // temporal oscillation rate
	PointCount int     // samples along the line
}

// Validate reports whether c satisfies the line invariants.
func (c LineConfig) Validate() error {
	switch {
	case c.PointCount < MinPointCount:
		return fmt.Errorf("%w: point count %d < %d", ErrInvalidConfig, c.PointCount, MinPointCount)
	case c.Amplitude < 0 || math.IsNaN(c.Amplitude):
		return fmt.Errorf("%w: amplitude %v", ErrInvalidConfig, c.Amplitude)
	case c.Frequency < 0 || math.IsNaN(c.Frequency):
		return fmt.Errorf("%w: frequency %v", ErrInvalidConfig, c.Frequency)
	case c.Speed < 0 || math.IsNaN(c.Speed):
		return fmt.Errorf("%w: speed %v", ErrInvalidConfig, c.Speed)
	}
	return nil
}

// clamped returns c with every field forced into its valid range.
func (c LineConfig) clamped() LineConfig {
	if c.PointCount < MinPointCount {
		c.PointCount = MinPointCount
	}
	c.Amplitude = nonNegative(c.Amplitude)
	c.Frequency = nonNegative(c.Frequency)
	c.Speed = nonNegative(c.Speed)
	return c
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// Line pairs the immutable base configuration with the live one the loop
// rewrites every frame. Interaction effects are always base + influence.
type Line struct {
	Base LineConfig
	Live LineConfig
}

// Phase returns the evenly distributed phase of line i out of n.
func Phase(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(i) / float64(n) * 2 * math.Pi
}

// NormalizedIndex maps line i of n into [0,1).
func NormalizedIndex(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(i) / float64(n)
}

// NewLines builds n lines for a tier. animationSpeed <= 0 is treated as 1.
func NewLines(n int, tier Tier, animationSpeed float64) []Line {
	if n <= 0 {
		return nil
	}
	if animationSpeed <= 0 || math.IsNaN(animationSpeed) {
		animationSpeed = 1
	}
	lines := make([]Line, n)
	for i := range lines {
		ni := NormalizedIndex(i, n)
		cfg := LineConfig{
			Amplitude:  tier.Amplitude,
			Frequency:  BaseFrequency + ni*FrequencySpread,
			Phase:      Phase(i, n),
			Speed:      (BaseSpeed + ni*SpeedSpread) * animationSpeed * tier.SpeedMultiplier,
			PointCount: tier.PointCount,
		}.clamped()
		lines[i] = Line{Base: cfg, Live: cfg}
	}
	return lines
}
