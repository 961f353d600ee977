package wave

import "math"

// Pointer influence gains. Inputs are smoothed pointer axes in [-1,1].
const (
	AmplitudeGain = 0.5
	FrequencyGain = 0.3
)

// Influence returns base with the pointer effect applied. Only |x| and |y|
// matter, and each axis is clamped to 1, so the result is bounded by
// base + gain.
func Influence(base LineConfig, x, y float64) LineConfig {
	live := base
	live.Amplitude = base.Amplitude + AmplitudeGain*unit(x)
	live.Frequency = base.Frequency + FrequencyGain*unit(y)
	return live
}

func unit(v float64) float64 {
	v = math.Abs(v)
	if v > 1 {
		return 1
	}
	if math.IsNaN(v) {
		return 0
	}
	return v
}
