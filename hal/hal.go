// Package hal runs the wave background inside a concrete host: a GPU window
// (ebiten), a terminal (tcell) or a headless software framebuffer. Every host
// exposes the same Host facilities to the app and drives it from one loop
// goroutine.
package hal

import (
	"errors"
	"runtime"
	"strings"
	"time"

	"wavefield/wavekit/bus"
	"wavefield/wavekit/capability"
	"wavefield/wavekit/scene"
	"wavefield/wavekit/visibility"
	"wavefield/wavekit/wave"
)

// ErrNoWindow is returned by RunWindow in builds without cgo.
var ErrNoWindow = errors.New("hal: window mode requires cgo (build with CGO_ENABLED=1)")

// Clock reports time since the host started.
type Clock interface {
	Elapsed() time.Duration
}

// Host is the contact point between the app and the outside world.
type Host interface {
	Name() string
	// Platform is the user-agent-like string used for device classification.
	Platform() string
	Bus() *bus.Bus
	Surface() *scene.Surface
	Visibility() visibility.Source
	Graphics() capability.ContextFactory
	Viewport() (w, h int)
	Clock() Clock
}

// App is what a host runs. Step and Draw are called from the host loop.
type App interface {
	// Step advances one frame. A non-nil error stops the host.
	Step() error
	Draw(t scene.Target)
	FrameMode() wave.FrameMode
	// PixelRatio caps the device pixel ratio for the render resolution.
	PixelRatio(device float64) float64
	Close()
}

// NewApp builds the app for a host.
type NewApp func(Host) (App, error)

// Platform returns agent when set, else the runtime "GOOS/GOARCH" pair.
func Platform(agent string) string {
	if s := strings.TrimSpace(agent); s != "" {
		return s
	}
	return runtime.GOOS + "/" + runtime.GOARCH
}

// DemandTPS is the tick rate used when the app asks for on-demand frames.
const DemandTPS = 30

// ticksPerSecond maps a frame mode onto a host tick rate.
func ticksPerSecond(m wave.FrameMode, continuous int) int {
	if m == wave.FrameDemand && continuous > DemandTPS {
		return DemandTPS
	}
	return continuous
}

// host is the shared Host implementation; each runner fills in its parts.
type host struct {
	name     string
	platform string
	bus      *bus.Bus
	surface  *scene.Surface
	vis      visibility.Source
	gfx      capability.ContextFactory
	clock    Clock

	width, height int
}

func newHost(name, agent string, gfx capability.ContextFactory, vis visibility.Source, clock Clock) *host {
	return &host{
		name:     name,
		platform: Platform(agent),
		bus:      bus.New(),
		surface:  scene.NewSurface(),
		vis:      vis,
		gfx:      gfx,
		clock:    clock,
	}
}

func (h *host) Name() string                        { return h.name }
func (h *host) Platform() string                    { return h.platform }
func (h *host) Bus() *bus.Bus                       { return h.bus }
func (h *host) Surface() *scene.Surface             { return h.surface }
func (h *host) Visibility() visibility.Source       { return h.vis }
func (h *host) Graphics() capability.ContextFactory { return h.gfx }
func (h *host) Viewport() (w, ht int)               { return h.width, h.height }
func (h *host) Clock() Clock                        { return h.clock }

// resize records the viewport and publishes it when it changed.
func (h *host) resize(w, ht int) {
	if w == h.width && ht == h.height {
		return
	}
	h.width, h.height = w, ht
	h.bus.Publish(bus.Event{Type: bus.EventViewportSize, Width: w, Height: ht})
}
