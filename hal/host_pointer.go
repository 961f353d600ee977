//go:build cgo

package hal

import (
	"wavefield/wavekit/bus"

	"github.com/hajimehoshi/ebiten/v2"
)

// pointerState turns ebiten's polled cursor and touch state into bus events.
type pointerState struct {
	inside     bool
	lastX      int
	lastY      int
	touchIDs   []ebiten.TouchID
	touches    []bus.Touch
	hadTouches bool
}

// poll publishes pointer, leave and touch events. ratio converts screen
// pixels back to client pixels.
func (p *pointerState) poll(h *host, ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}

	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 {
		p.touches = p.touches[:0]
		for _, id := range p.touchIDs {
			x, y := ebiten.TouchPosition(id)
			p.touches = append(p.touches, bus.Touch{
				ID: int(id),
				X:  float64(x) / ratio,
				Y:  float64(y) / ratio,
			})
		}
		h.bus.Publish(bus.Event{Type: bus.EventTouch, Touches: p.touches})
		p.hadTouches = true
		return
	}
	if p.hadTouches {
		p.hadTouches = false
		h.bus.Publish(bus.Event{Type: bus.EventPointerLeave})
	}

	x, y := ebiten.CursorPosition()
	cx, cy := float64(x)/ratio, float64(y)/ratio
	w, ht := h.Viewport()
	inside := cx >= 0 && cy >= 0 && cx < float64(w) && cy < float64(ht)
	switch {
	case inside && (x != p.lastX || y != p.lastY || !p.inside):
		h.bus.Publish(bus.Event{Type: bus.EventPointerMove, X: cx, Y: cy})
	case !inside && p.inside:
		h.bus.Publish(bus.Event{Type: bus.EventPointerLeave})
	}
	p.inside = inside
	p.lastX, p.lastY = x, y
}
