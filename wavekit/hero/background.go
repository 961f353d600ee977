package hero

import (
	"errors"
	"fmt"
	"math"
	"time"

	"wavefield/wavekit/bus"
	"wavefield/wavekit/capability"
	"wavefield/wavekit/interact"
	"wavefield/wavekit/prefs"
	"wavefield/wavekit/scene"
	"wavefield/wavekit/visibility"
	"wavefield/wavekit/wave"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrUnmounted is returned by Frame after Unmount.
var ErrUnmounted = errors.New("hero: background unmounted")

// ErrSceneFull is returned by Mount when the injected scene cannot hold the
// line set.
var ErrSceneFull = errors.New("hero: scene capacity exceeded")

// Deps are the host facilities a Background attaches to.
type Deps struct {
	Bus        *bus.Bus
	Prefs      *prefs.Monitor
	Detector   *capability.Detector
	Surface    *scene.Surface
	Visibility visibility.Observer
	Recorder   Recorder
	Log        zerolog.Logger

	// Scene overrides the line arena. By default one sized to the line count
	// is created.
	Scene *scene.Scene

	// Width and Height are the initial viewport in client pixels.
	Width, Height int
}

// Background is the animated wave-line hero background.
type Background struct {
	id   uuid.UUID
	log  zerolog.Logger
	deps Deps
	opts Options

	snap   capability.Snapshot
	tier   wave.Tier
	mobile bool
	orch   *Orchestrator
	graph  *scene.Adapter
	rend   *scene.Renderer
	grad   scene.Gradient

	tracker *interact.Tracker
	driver  *Driver
	// stale marks a kept line set built for a previous device tier.
	stale   bool

	start   time.Duration
	started bool
	frames  uint64

	cleanups  []func()
	mounted   bool
	unmounted bool
}

// Mount probes the environment, picks a render path and attaches every
// listener. On error everything attached so far is released.
func Mount(deps Deps, opts Options) (*Background, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("mount: %w", err)
	}
	opts = opts.normalized()
	if deps.Prefs == nil {
		deps.Prefs = prefs.NewMonitor(prefs.Options{Width: deps.Width})
	}
	if deps.Surface == nil {
		deps.Surface = scene.NewSurface()
	}
	if deps.Visibility == nil {
		deps.Visibility = visibility.New(nil)
	}
	if deps.Recorder == nil {
		deps.Recorder = nopRecorder{}
	}

	b := &Background{
		id:      uuid.New(),
		deps:    deps,
		opts:    opts,
		rend:    scene.NewRenderer(),
		grad:    scene.DefaultGradient(),
		tracker: interact.NewTracker(interact.DefaultLerp),
	}
	b.log = deps.Log.With().Str("component", "hero").Str("mount", b.id.String()).Logger()
	b.orch = NewOrchestrator(b.log)
	b.tracker.Resize(deps.Width, deps.Height)

	b.snap = capability.TakeSnapshot(deps.Detector, deps.Prefs)
	b.mobile = b.snap.Device == prefs.Mobile
	b.tier = wave.TierFor(b.mobile)

	sc := deps.Scene
	if sc == nil {
		sc = scene.CreateScene(max(opts.lineCount(wave.MobileTier), opts.lineCount(wave.DesktopTier)))
	}
	b.graph = scene.NewAdapter(sc, deps.Surface)

	b.attach()

	var mountErr error
	b.cleanups = append(b.cleanups, b.orch.OnTransition(func(from, to RenderState) {
		err := b.onTransition(from, to)
		switch {
		case err == nil:
		case !b.mounted:
			mountErr = err
		default:
			b.log.Error().Err(err).Msg("start animation")
			b.orch.transition(StaticFallback)
		}
	}))
	b.deps.Recorder.SetState(Loading.String())
	b.orch.Resolve(b.snap)
	if mountErr != nil {
		b.Unmount()
		return nil, fmt.Errorf("mount: %w", mountErr)
	}
	b.mounted = true

	b.log.Info().
		Bool("graphics", b.snap.GraphicsSupported).
		Str("library", b.snap.Library).
		Bool("reduced_motion", b.snap.ReducedMotion).
		Stringer("device", b.snap.Device).
		Stringer("state", b.orch.State()).
		Msg("mounted")
	return b, nil
}

func (b *Background) attach() {
	d := b.deps
	if d.Bus != nil {
		b.cleanups = append(b.cleanups,
			d.Bus.Subscribe(bus.EventPointerMove, func(ev bus.Event) {
				b.tracker.OnPointerMove(ev.X, ev.Y)
			}),
			d.Bus.Subscribe(bus.EventPointerLeave, func(bus.Event) {
				b.tracker.OnPointerLeave()
			}),
			d.Bus.Subscribe(bus.EventTouch, func(ev bus.Event) {
				pts := make([]interact.TouchPoint, len(ev.Touches))
				for i, t := range ev.Touches {
					pts[i] = interact.TouchPoint{ID: t.ID, X: t.X, Y: t.Y}
				}
				b.tracker.OnTouch(pts)
			}),
			d.Bus.Subscribe(bus.EventViewportSize, func(ev bus.Event) {
				b.tracker.Resize(ev.Width, ev.Height)
				d.Prefs.Resize(ev.Width, ev.Height)
			}),
		)
	}
	b.cleanups = append(b.cleanups,
		d.Prefs.OnReducedMotionChange(func(on bool) {
			b.log.Info().Bool("reduced_motion", on).Msg("motion preference changed")
			b.orch.ReducedMotionChanged(on)
		}),
		d.Prefs.OnDeviceChange(b.onDeviceChange),
		b.graph.OnContextLost(func() {
			if b.orch.ContextLost() {
				b.deps.Recorder.ContextLost()
			}
		}),
		b.graph.OnContextRestored(func() {
			b.orch.ContextRestored()
		}),
		d.Visibility.OnChange(func(visible bool) {
			b.log.Debug().Bool("visible", visible).Msg("visibility")
		}),
	)
}

func (b *Background) onTransition(from, to RenderState) error {
	b.deps.Recorder.SetState(to.String())
	switch to {
	case Animating:
		if from == ContextLost && b.driver != nil && !b.stale {
			return nil
		}
		return b.startAnimation()
	case StaticFallback:
		b.stopAnimation()
	}
	return nil
}

func (b *Background) onDeviceChange(c prefs.DeviceClass) {
	b.mobile = c == prefs.Mobile
	b.tier = wave.TierFor(b.mobile)
	b.log.Info().Stringer("device", c).Msg("device class changed")
	if b.orch.State() != Animating {
		b.stale = b.driver != nil
		return
	}
	if err := b.startAnimation(); err != nil {
		b.log.Error().Err(err).Msg("rebuild line set")
		b.orch.transition(StaticFallback)
	}
}

func (b *Background) startAnimation() error {
	b.stopAnimation()
	n := b.opts.lineCount(b.tier)
	lines := wave.NewLines(n, b.tier, b.opts.AnimationSpeed)
	styles := lineStyles(len(lines), b.opts.Palette, 1.5)
	if got := b.graph.Build(styles, b.tier.PointCount); got < len(lines) {
		b.graph.Release()
		return fmt.Errorf("%d of %d lines: %w", got, len(lines), ErrSceneFull)
	}
	b.driver = NewDriver(lines, b.tracker, b.graph, b.deps.Visibility, b.opts.EnableInteractivity)
	b.started = false
	b.stale = false
	b.log.Debug().Int("lines", n).Int("points", b.tier.PointCount).Msg("line set built")
	return nil
}

func (b *Background) stopAnimation() {
	if b.driver != nil {
		b.driver.Release()
		b.driver = nil
	}
	b.graph.Release()
	b.tracker.Reset()
}

// Frame advances the animation to now, the host clock reading. It returns
// ErrUnmounted once the background is unmounted; hosts stop their loop on it.
func (b *Background) Frame(now time.Duration) error {
	if b == nil || b.unmounted {
		return ErrUnmounted
	}
	b.deps.Visibility.Poll()
	if b.orch.State() != Animating || b.driver == nil {
		return nil
	}
	if !b.started {
		b.start = now
		b.started = true
	}
	t0 := time.Now()
	if b.driver.Tick((now - b.start).Seconds()) {
		b.frames++
		b.deps.Recorder.ObserveFrame(time.Since(t0))
	}
	return nil
}

// Draw paints the current state into t.
func (b *Background) Draw(t scene.Target) {
	if b == nil || t == nil || b.unmounted {
		return
	}
	switch b.orch.State() {
	case Animating:
		b.rend.Render(t, b.graph.Scene)
	case Loading:
		b.grad.Draw(t)
		scene.DrawCaptionCentered(t, "loading", scene.RGBA(0xFF, 0xFF, 0xFF, 0x90))
	case ContextLost:
		b.grad.Draw(t)
		scene.DrawCaptionCentered(t, "restoring", scene.RGBA(0xFF, 0xFF, 0xFF, 0x90))
	default:
		b.grad.Draw(t)
	}
}

// PixelRatio caps a device pixel ratio to the tier maximum.
func (b *Background) PixelRatio(device float64) float64 {
	if device <= 0 || math.IsNaN(device) {
		device = 1
	}
	return math.Min(device, b.tier.MaxPixelRatio)
}

// SetDevicePixelRatio scales stroke widths for the capped ratio.
func (b *Background) SetDevicePixelRatio(device float64) {
	b.rend.PixelRatio = float32(b.PixelRatio(device))
}

// Unmount releases every listener and the line set. It is safe to call more
// than once.
func (b *Background) Unmount() {
	if b == nil || b.unmounted {
		return
	}
	b.unmounted = true
	for i := len(b.cleanups) - 1; i >= 0; i-- {
		b.cleanups[i]()
	}
	b.cleanups = nil
	b.stopAnimation()
	b.log.Info().Uint64("frames", b.frames).Msg("unmounted")
}

// State returns the current render state.
func (b *Background) State() RenderState { return b.orch.State() }

// Snapshot returns the environment captured at mount.
func (b *Background) Snapshot() capability.Snapshot { return b.snap }

// Tier returns the active device tier.
func (b *Background) Tier() wave.Tier { return b.tier }

// FrameMode reports how often the host should schedule frames.
func (b *Background) FrameMode() wave.FrameMode {
	return wave.FrameModeFor(b.mobile, b.opts.EnableInteractivity)
}

// Lines returns the live line set, or nil when not animating.
func (b *Background) Lines() []wave.Line { return b.driver.Lines() }

// Frames returns the number of frames materialized so far.
func (b *Background) Frames() uint64 { return b.frames }

// ID returns the mount id used in logs.
func (b *Background) ID() uuid.UUID { return b.id }

// Scene returns the line arena.
func (b *Background) Scene() *scene.Scene { return b.graph.Scene }
