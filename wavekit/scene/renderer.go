package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Renderer draws the lines of a scene into a target.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	// PixelRatio scales stroke widths. Values <= 0 mean 1.
	PixelRatio float32
	// Clear controls whether Render clears the target to the scene
	// background first.
	Clear bool

	screen []screenPoint
}

type screenPoint struct {
	x, y float32
	ok   bool
}

// NewRenderer returns a renderer that clears before drawing.
func NewRenderer() *Renderer {
	return &Renderer{PixelRatio: 1, Clear: true}
}

// Render renders a scene into the target.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if r.Clear {
		t.Clear(s.Background)
	}

	aspect := float32(w) / float32(h)
	vp := s.Camera.Projection(aspect).Mul4(s.Camera.View())

	ratio := r.PixelRatio
	if ratio <= 0 || math.IsNaN(float64(ratio)) {
		ratio = 1
	}

	s.eachLine(func(l *line) {
		r.renderLine(t, w, h, vp, l, ratio)
	})
}

func (r *Renderer) renderLine(t Target, w, h int, vp mgl32.Mat4, l *line, ratio float32) {
	if len(l.pts) < 2 {
		return
	}
	if cap(r.screen) < len(l.pts) {
		r.screen = make([]screenPoint, len(l.pts))
	}
	r.screen = r.screen[:len(l.pts)]

	mvp := vp
	if l.style.Offset != (mgl32.Vec3{}) {
		mvp = vp.Mul4(mgl32.Translate3D(l.style.Offset.X(), l.style.Offset.Y(), l.style.Offset.Z()))
	}
	for i, p := range l.pts {
		ndc, ok := clipToNDC(mvp.Mul4x1(p.Vec4(1)))
		if !ok {
			r.screen[i] = screenPoint{}
			continue
		}
		x, y := ndcToScreen(ndc, w, h)
		r.screen[i] = screenPoint{x: x, y: y, ok: true}
	}

	width := l.style.Width * ratio
	lt, native := t.(LineTarget)
	for i := 1; i < len(r.screen); i++ {
		a, b := r.screen[i-1], r.screen[i]
		if !a.ok || !b.ok {
			continue
		}
		if native {
			lt.StrokeLine(a.x, a.y, b.x, b.y, width, l.style.Color)
			continue
		}
		r.drawLine(t, round(a.x), round(a.y), round(b.x), round(b.y), brushRadius(width), l.style.Color)
	}
}

func round(v float32) int {
	return int(math.Floor(float64(v) + 0.5))
}

// brushRadius converts a stroke width into a square brush half-extent.
func brushRadius(width float32) int {
	if width <= 1.5 {
		return 0
	}
	return int((width - 1) / 2)
}

func (r *Renderer) drawLine(t Target, x0, y0, x1, y1, radius int, c Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(t, x0, y0, radius, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func plot(t Target, x, y, radius int, c Color) {
	if radius == 0 {
		t.SetPixel(x, y, c)
		return
	}
	for yy := y - radius; yy <= y+radius; yy++ {
		for xx := x - radius; xx <= x+radius; xx++ {
			t.SetPixel(xx, yy, c)
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
