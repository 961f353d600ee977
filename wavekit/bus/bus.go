// Package bus provides the event bus hosts use to hand environment signals
// (pointer, touch, viewport) to whichever component needs them. Components get
// the bus injected instead of reading shared global state.
package bus

import "sync"

// EventType identifies an event.
type EventType string

const (
	EventPointerMove  EventType = "pointer.move"
	EventPointerLeave EventType = "pointer.leave"
	EventTouch        EventType = "pointer.touch"
	EventViewportSize EventType = "viewport.resize"
)

// Touch is one active touch point in client coordinates.
type Touch struct {
	ID   int
	X, Y float64
}

// Event is a bus event. Only the fields relevant to Type are set.
type Event struct {
	Type EventType

	X, Y float64 // pointer position in client coordinates

	Width, Height int // viewport size

	Touches []Touch
}

// Handler handles one event.
type Handler func(Event)

type subscription struct {
	id uint64
	fn Handler
}

// Bus is a synchronous pub/sub bus. Handlers run on the publisher's goroutine
// in subscription order.
type Bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[EventType][]subscription
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{handlers: make(map[EventType][]subscription)}
}

// Subscribe registers fn for t and returns a function that removes it. The
// returned function is safe to call more than once.
func (b *Bus) Subscribe(t EventType, fn Handler) (unsubscribe func()) {
	if b == nil || fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[t] = append(b.handlers[t], subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(t, id) })
	}
}

func (b *Bus) remove(t EventType, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[t]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		next := make([]subscription, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(b.handlers, t)
		} else {
			b.handlers[t] = next
		}
		return
	}
}

// Publish delivers ev to every handler subscribed to ev.Type.
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := b.handlers[ev.Type]
	b.mu.RUnlock()
	for _, s := range subs {
		s.fn(ev)
	}
}

// Subscribers returns the number of handlers registered for t.
func (b *Bus) Subscribers(t EventType) int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[t])
}

// Total returns the number of handlers across all event types.
func (b *Bus) Total() int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, subs := range b.handlers {
		n += len(subs)
	}
	return n
}
