package scene

import "github.com/go-gl/mathgl/mgl32"

// LineStyle is the per-line material and placement.
type LineStyle struct {
	Color  Color
	Width  float32    // stroke width in pixels at pixel ratio 1
	Offset mgl32.Vec3 // world-space translation applied to every point
}

type line struct {
	enabled bool
	style   LineStyle
	pts     []mgl32.Vec3
}

// Scene is a fixed-capacity arena of line primitives plus a camera. Line ids
// are slot indices and stay stable until the line is removed.
type Scene struct {
	Camera     Camera
	Background Color

	lines []line
	alive []bool
}

// CreateScene allocates a scene with room for maxLines lines.
func CreateScene(maxLines int) *Scene {
	if maxLines < 0 {
		maxLines = 0
	}
	return &Scene{
		Camera:     DefaultCamera(),
		Background: RGB(0x05, 0x08, 0x12),
		lines:      make([]line, maxLines),
		alive:      make([]bool, maxLines),
	}
}

// Cap returns the slot capacity.
func (s *Scene) Cap() int {
	if s == nil {
		return 0
	}
	return len(s.lines)
}

// Len returns the number of live lines.
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, a := range s.alive {
		if a {
			n++
		}
	}
	return n
}

// AddLine claims the first free slot and returns its id, or -1 if full.
// pointHint preallocates the point buffer.
func (s *Scene) AddLine(style LineStyle, pointHint int) int {
	if s == nil {
		return -1
	}
	for i := range s.lines {
		if s.alive[i] {
			continue
		}
		if style.Width <= 0 {
			style.Width = 1
		}
		if style.Color == (Color{}) {
			style.Color = RGB(0xCC, 0xCC, 0xCC)
		}
		if pointHint < 0 {
			pointHint = 0
		}
		s.lines[i] = line{
			enabled: true,
			style:   style,
			pts:     make([]mgl32.Vec3, 0, pointHint),
		}
		s.alive[i] = true
		return i
	}
	return -1
}

// RemoveLine frees a slot and drops its buffer.
func (s *Scene) RemoveLine(id int) {
	if !s.valid(id) {
		return
	}
	s.alive[id] = false
	s.lines[id] = line{}
}

// Reset removes every line.
func (s *Scene) Reset() {
	if s == nil {
		return
	}
	for i := range s.lines {
		s.alive[i] = false
		s.lines[i] = line{}
	}
}

// SetLineEnabled toggles drawing of a line.
func (s *Scene) SetLineEnabled(id int, enabled bool) {
	if !s.valid(id) {
		return
	}
	s.lines[id].enabled = enabled
}

// UpdateLinePoints copies pts into the line's buffer. The buffer grows only
// when pts is longer than anything the slot has held before.
func (s *Scene) UpdateLinePoints(id int, pts []mgl32.Vec3) bool {
	if !s.valid(id) {
		return false
	}
	l := &s.lines[id]
	if cap(l.pts) < len(pts) {
		l.pts = make([]mgl32.Vec3, len(pts))
	}
	l.pts = l.pts[:len(pts)]
	copy(l.pts, pts)
	return true
}

// LinePoints returns the current points of a line. The slice is owned by the
// scene and is overwritten by the next update.
func (s *Scene) LinePoints(id int) []mgl32.Vec3 {
	if !s.valid(id) {
		return nil
	}
	return s.lines[id].pts
}

// LineStyleOf returns the style of a line.
func (s *Scene) LineStyleOf(id int) (LineStyle, bool) {
	if !s.valid(id) {
		return LineStyle{}, false
	}
	return s.lines[id].style, true
}

func (s *Scene) valid(id int) bool {
	return s != nil && id >= 0 && id < len(s.lines) && s.alive[id]
}

func (s *Scene) eachLine(fn func(l *line)) {
	for i := range s.lines {
		if !s.alive[i] || !s.lines[i].enabled {
			continue
		}
		fn(&s.lines[i])
	}
}
