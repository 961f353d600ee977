package wave

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Span is the horizontal extent of every line in world units. Lines are
// centered on x=0; PointCount only changes sampling density.
const Span = 20.0

// Point3 is one sample of a line in world space.
type Point3 = mgl32.Vec3

// GeneratePoints samples cfg at time. It allocates; hot paths should use
// AppendPoints with a reused buffer.
func GeneratePoints(cfg LineConfig, time float64) []Point3 {
	return AppendPoints(nil, cfg, time)
}

// AppendPoints writes the samples of cfg at time into dst[:0] and returns the
// resulting slice. It only allocates when cap(dst) < PointCount.
func AppendPoints(dst []Point3, cfg LineConfig, time float64) []Point3 {
	n := cfg.PointCount
	if n < MinPointCount {
		n = MinPointCount
	}
	if cap(dst) < n {
		dst = make([]Point3, n)
	}
	dst = dst[:n]

	wt := time * cfg.Speed
	last := float64(n - 1)
	for i := 0; i < n; i++ {
		t := float64(i) / last
		x := (t - 0.5) * Span
		y := math.Sin(t*cfg.Frequency+wt+cfg.Phase) * cfg.Amplitude
		z := math.Cos(t*cfg.Frequency*0.5+wt*0.7+cfg.Phase) * cfg.Amplitude * 0.5
		dst[i] = Point3{float32(x), float32(y), float32(z)}
	}
	return dst
}
