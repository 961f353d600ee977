// Package interact turns raw pointer and touch input into a smoothed 2D
// position in normalized device coordinates.
package interact

// DefaultLerp is the per-frame smoothing factor.
const DefaultLerp = 0.1

// Vec2 is a normalized position; both axes are in [-1,1].
type Vec2 struct {
	X, Y float64
}

// TouchPoint is one active touch in client coordinates.
type TouchPoint struct {
	ID   int
	X, Y float64
}

// Tracker holds the target and current pointer position. The target moves
// immediately on input; the current value eases toward it once per Tick.
//
// A Tracker is owned by a single animation loop and is not safe for
// concurrent use.
type Tracker struct {
	lerp float64

	width  float64
	height float64

	target  Vec2
	current Vec2
}

// NewTracker returns a tracker with the given smoothing factor. Values outside
// (0,1] fall back to DefaultLerp.
func NewTracker(lerp float64) *Tracker {
	if !(lerp > 0 && lerp <= 1) {
		lerp = DefaultLerp
	}
	return &Tracker{lerp: lerp}
}

// Resize sets the viewport used for normalization.
func (t *Tracker) Resize(width, height int) {
	t.width = float64(width)
	t.height = float64(height)
}

// OnPointerMove records a pointer position in client coordinates.
func (t *Tracker) OnPointerMove(clientX, clientY float64) {
	if t.width <= 0 || t.height <= 0 {
		return
	}
	t.target = Vec2{
		X: clamp((clientX/t.width)*2 - 1),
		Y: clamp(-(clientY/t.height)*2 + 1),
	}
}

// OnTouch maps the first active touch through OnPointerMove. Further touches
// are ignored.
func (t *Tracker) OnTouch(points []TouchPoint) {
	if len(points) == 0 {
		return
	}
	t.OnPointerMove(points[0].X, points[0].Y)
}

// OnPointerLeave relaxes the target back to the center.
func (t *Tracker) OnPointerLeave() {
	t.target = Vec2{}
}

// Tick advances the current position one smoothing step and returns it.
func (t *Tracker) Tick() (x, y float64) {
	t.current.X += (t.target.X - t.current.X) * t.lerp
	t.current.Y += (t.target.Y - t.current.Y) * t.lerp
	return t.current.X, t.current.Y
}

// Current returns the smoothed position without advancing it.
func (t *Tracker) Current() Vec2 { return t.current }

// Target returns the latest normalized input position.
func (t *Tracker) Target() Vec2 { return t.target }

// Reset snaps both positions to the center.
func (t *Tracker) Reset() {
	t.target = Vec2{}
	t.current = Vec2{}
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
