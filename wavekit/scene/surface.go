package scene

import "sync"

// LossEvent is delivered to context-lost listeners. Restoration is only
// possible when at least one listener calls PreventDefault.
type LossEvent struct {
	prevented bool
}

// PreventDefault keeps the context restorable.
func (e *LossEvent) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *LossEvent) DefaultPrevented() bool { return e.prevented }

// Surface tracks the loss and restoration of a host graphics context.
type Surface struct {
	mu        sync.Mutex
	lost      bool
	destroyed bool
	nextID    int
	onLost    map[int]func(*LossEvent)
	onRestore map[int]func()
}

// NewSurface returns a live surface.
func NewSurface() *Surface {
	return &Surface{
		onLost:    make(map[int]func(*LossEvent)),
		onRestore: make(map[int]func()),
	}
}

// OnContextLost registers fn and returns a function removing it.
func (s *Surface) OnContextLost(fn func(*LossEvent)) (cancel func()) {
	if s == nil || fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.onLost[id] = fn
	s.mu.Unlock()
	return s.remover(func() { delete(s.onLost, id) })
}

// OnContextRestored registers fn and returns a function removing it.
func (s *Surface) OnContextRestored(fn func()) (cancel func()) {
	if s == nil || fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.onRestore[id] = fn
	s.mu.Unlock()
	return s.remover(func() { delete(s.onRestore, id) })
}

func (s *Surface) remover(del func()) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			del()
			s.mu.Unlock()
		})
	}
}

// Lose marks the context lost and notifies listeners. It reports whether the
// context can later be restored. Losing an already lost surface is a no-op.
func (s *Surface) Lose() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	if s.lost || s.destroyed {
		ok := !s.destroyed
		s.mu.Unlock()
		return ok
	}
	s.lost = true
	fns := make([]func(*LossEvent), 0, len(s.onLost))
	for _, fn := range s.onLost {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	ev := &LossEvent{}
	for _, fn := range fns {
		fn(ev)
	}

	if !ev.DefaultPrevented() {
		s.mu.Lock()
		s.destroyed = true
		s.mu.Unlock()
		return false
	}
	return true
}

// Restore brings a lost context back and notifies listeners. It returns false
// when the surface is not lost or was destroyed.
func (s *Surface) Restore() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	if !s.lost || s.destroyed {
		s.mu.Unlock()
		return false
	}
	s.lost = false
	fns := make([]func(), 0, len(s.onRestore))
	for _, fn := range s.onRestore {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return true
}

// Lost reports whether the context is currently lost.
func (s *Surface) Lost() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lost
}

// Destroyed reports whether the context was lost without PreventDefault.
func (s *Surface) Destroyed() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

// Listeners returns the number of registered lost and restored listeners.
func (s *Surface) Listeners() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.onLost) + len(s.onRestore)
}
