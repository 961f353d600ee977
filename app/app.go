// Package app wires the hero background into a host: it builds the
// preference monitor and capability detector from the host facilities,
// mounts the background and forwards live preference changes.
package app

import (
	"fmt"

	"wavefield/hal"
	"wavefield/internal/config"
	"wavefield/wavekit/capability"
	"wavefield/wavekit/hero"
	"wavefield/wavekit/prefs"
	"wavefield/wavekit/scene"
	"wavefield/wavekit/visibility"
	"wavefield/wavekit/wave"

	"github.com/rs/zerolog"
)

// App runs one mounted background.
type App struct {
	host  hal.Host
	log   zerolog.Logger
	prefs *prefs.Monitor
	bg    *hero.Background

	// motion carries reduced-motion updates from the config watcher.
	motion <-chan bool
}

var _ hal.App = (*App)(nil)

// New returns a hal.NewApp that mounts a background configured by cfg. rec
// may be nil. Values received on motion are applied at the start of the
// next Step, on the host loop goroutine.
func New(cfg *config.Config, log zerolog.Logger, rec hero.Recorder, motion <-chan bool) hal.NewApp {
	return func(h hal.Host) (hal.App, error) {
		a, err := Start(h, cfg, log, rec, motion)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
}

// Start mounts a background on h.
func Start(h hal.Host, cfg *config.Config, log zerolog.Logger, rec hero.Recorder, motion <-chan bool) (*App, error) {
	opts, err := Options(cfg)
	if err != nil {
		return nil, err
	}
	log = log.With().Str("host", h.Name()).Logger()

	w, ht := h.Viewport()
	mon := prefs.NewMonitor(prefs.Options{
		Agent:         h.Platform(),
		Breakpoint:    cfg.Device.Breakpoint,
		Width:         w,
		ReducedMotion: cfg.Motion.Reduced,
	})

	bg, err := hero.Mount(hero.Deps{
		Bus:        h.Bus(),
		Prefs:      mon,
		Detector:   capability.NewDetector(h.Graphics(), log),
		Surface:    h.Surface(),
		Visibility: visibility.New(h.Visibility()),
		Recorder:   rec,
		Log:        log,
		Width:      w,
		Height:     ht,
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", h.Name(), err)
	}
	return &App{host: h, log: log, prefs: mon, bg: bg, motion: motion}, nil
}

// Options maps the line settings of cfg onto background options.
func Options(cfg *config.Config) (hero.Options, error) {
	opts := hero.DefaultOptions()
	if cfg == nil {
		return opts, nil
	}
	if len(cfg.Lines.Palette) > 0 {
		pal, err := scene.ParsePalette(cfg.Lines.Palette)
		if err != nil {
			return hero.Options{}, fmt.Errorf("lines.palette: %w", err)
		}
		opts.Palette = pal
	}
	opts.LineCount = cfg.Lines.Count
	opts.AnimationSpeed = cfg.Lines.Speed
	opts.EnableInteractivity = cfg.Lines.Interactive
	if err := opts.Validate(); err != nil {
		return hero.Options{}, err
	}
	return opts, nil
}

// Step applies pending preference updates and advances one frame.
func (a *App) Step() error {
	a.drainMotion()
	return a.bg.Frame(a.host.Clock().Elapsed())
}

func (a *App) drainMotion() {
	for a.motion != nil {
		select {
		case on, ok := <-a.motion:
			if !ok {
				a.motion = nil
				return
			}
			a.prefs.SetReducedMotion(on)
		default:
			return
		}
	}
}

func (a *App) Draw(t scene.Target) { a.bg.Draw(t) }

func (a *App) FrameMode() wave.FrameMode { return a.bg.FrameMode() }

// PixelRatio caps the device ratio to the tier and scales strokes with it.
func (a *App) PixelRatio(device float64) float64 {
	a.bg.SetDevicePixelRatio(device)
	return a.bg.PixelRatio(device)
}

// Close unmounts the background.
func (a *App) Close() { a.bg.Unmount() }

// Background exposes the mounted background.
func (a *App) Background() *hero.Background { return a.bg }
