package scene

import "github.com/go-gl/mathgl/mgl32"

// Adapter binds a line arena to a surface. Callers address lines by their
// build index; the adapter maps indices to arena slots.
type Adapter struct {
	Scene   *Scene
	Surface *Surface

	ids []int
}

// NewAdapter returns an adapter over s and surf.
func NewAdapter(s *Scene, surf *Surface) *Adapter {
	return &Adapter{Scene: s, Surface: surf}
}

// Build allocates one slot per style and returns the number allocated.
// Previously built lines are released first.
func (a *Adapter) Build(styles []LineStyle, pointHint int) int {
	if a == nil || a.Scene == nil {
		return 0
	}
	a.Release()
	for _, st := range styles {
		id := a.Scene.AddLine(st, pointHint)
		if id < 0 {
			break
		}
		a.ids = append(a.ids, id)
	}
	return len(a.ids)
}

// Lines returns the number of built lines.
func (a *Adapter) Lines() int {
	if a == nil {
		return 0
	}
	return len(a.ids)
}

// Materialize replaces the points of line i in place.
func (a *Adapter) Materialize(i int, pts []mgl32.Vec3) {
	if a == nil || i < 0 || i >= len(a.ids) {
		return
	}
	a.Scene.UpdateLinePoints(a.ids[i], pts)
}

// Release frees every built slot.
func (a *Adapter) Release() {
	if a == nil {
		return
	}
	for _, id := range a.ids {
		a.Scene.RemoveLine(id)
	}
	a.ids = a.ids[:0]
}

// OnContextLost registers fn for context loss. The loss event's default is
// always prevented so the surface stays restorable.
func (a *Adapter) OnContextLost(fn func()) (cancel func()) {
	if a == nil || a.Surface == nil {
		return func() {}
	}
	return a.Surface.OnContextLost(func(ev *LossEvent) {
		ev.PreventDefault()
		if fn != nil {
			fn()
		}
	})
}

// OnContextRestored registers fn for context restoration.
func (a *Adapter) OnContextRestored(fn func()) (cancel func()) {
	if a == nil || a.Surface == nil {
		return func() {}
	}
	return a.Surface.OnContextRestored(fn)
}
