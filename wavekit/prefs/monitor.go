// Package prefs tracks the user and device preferences that modulate the
// animation: reduced motion and device class.
package prefs

import (
	"regexp"
	"sync"
)

// DeviceClass is the coarse device category.
type DeviceClass uint8

const (
	Desktop DeviceClass = iota
	Mobile
)

func (c DeviceClass) String() string {
	if c == Mobile {
		return "mobile"
	}
	return "desktop"
}

// DefaultBreakpoint is the viewport width below which a device is mobile.
const DefaultBreakpoint = 768

var mobileAgent = regexp.MustCompile(`(?i)android|webos|iphone|ipad|ipod|blackberry|iemobile|opera mini|\bios\b`)

// IsMobileAgent reports whether a platform or user-agent string names a known
// mobile platform.
func IsMobileAgent(agent string) bool {
	return agent != "" && mobileAgent.MatchString(agent)
}

// Classify combines the agent match with the viewport width. Either one is
// enough to classify as mobile. A zero width is unknown and never matches.
func Classify(agent string, width, breakpoint int) DeviceClass {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	if IsMobileAgent(agent) || (width > 0 && width < breakpoint) {
		return Mobile
	}
	return Desktop
}

type listener[T any] struct {
	id uint64
	fn func(T)
}

// Monitor holds the current preferences and notifies subscribers on change.
// Callbacks run on the goroutine that caused the change.
type Monitor struct {
	mu sync.Mutex

	agent      string
	breakpoint int
	width      int

	reduced bool
	device  DeviceClass

	nextID    uint64
	onReduced []listener[bool]
	onDevice  []listener[DeviceClass]
}

// Options configures a Monitor.
type Options struct {
	Agent         string // platform or user-agent string
	Breakpoint    int
	Width         int
	ReducedMotion bool
}

// NewMonitor returns a monitor with the given initial state.
func NewMonitor(opts Options) *Monitor {
	if opts.Breakpoint <= 0 {
		opts.Breakpoint = DefaultBreakpoint
	}
	return &Monitor{
		agent:      opts.Agent,
		breakpoint: opts.Breakpoint,
		width:      opts.Width,
		reduced:    opts.ReducedMotion,
		device:     Classify(opts.Agent, opts.Width, opts.Breakpoint),
	}
}

// ReducedMotion returns the current reduced-motion preference.
func (m *Monitor) ReducedMotion() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reduced
}

// SetReducedMotion updates the preference and notifies subscribers if it
// changed.
func (m *Monitor) SetReducedMotion(on bool) {
	m.mu.Lock()
	if m.reduced == on {
		m.mu.Unlock()
		return
	}
	m.reduced = on
	subs := append([]listener[bool](nil), m.onReduced...)
	m.mu.Unlock()

	for _, l := range subs {
		l.fn(on)
	}
}

// OnReducedMotionChange subscribes fn; the returned cancel is idempotent.
func (m *Monitor) OnReducedMotionChange(fn func(bool)) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.onReduced = append(m.onReduced, listener[bool]{id: id, fn: fn})
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.onReduced = removeListener(m.onReduced, id)
	}
}

// Device returns the current device class.
func (m *Monitor) Device() DeviceClass {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.device
}

// Width returns the last viewport width seen.
func (m *Monitor) Width() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width
}

// Resize re-evaluates the device class for a new viewport.
func (m *Monitor) Resize(width, _ int) {
	m.mu.Lock()
	m.width = width
	next := Classify(m.agent, width, m.breakpoint)
	if next == m.device {
		m.mu.Unlock()
		return
	}
	m.device = next
	subs := append([]listener[DeviceClass](nil), m.onDevice...)
	m.mu.Unlock()

	for _, l := range subs {
		l.fn(next)
	}
}

// OnDeviceChange subscribes fn; the returned cancel is idempotent.
func (m *Monitor) OnDeviceChange(fn func(DeviceClass)) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.onDevice = append(m.onDevice, listener[DeviceClass]{id: id, fn: fn})
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.onDevice = removeListener(m.onDevice, id)
	}
}

// Listeners returns the number of active subscriptions.
func (m *Monitor) Listeners() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.onReduced) + len(m.onDevice)
}

func removeListener[T any](ls []listener[T], id uint64) []listener[T] {
	for i, l := range ls {
		if l.id == id {
			return append(ls[:i:i], ls[i+1:]...)
		}
	}
	return ls
}
