package hal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"wavefield/wavekit/capability"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Width, Height int
	Hz            int
	Ticks         uint64 // stop after N ticks (0 = run until ctx is done)
	Snapshot      string // PNG path written on exit
	NoGraphics    bool   // report no graphics support
	Agent         string
}

// RunHeadless runs the app against a software framebuffer without opening a
// window. Time advances by exactly 1/Hz per tick.
func RunHeadless(ctx context.Context, newApp NewApp, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 960, 540
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	clock := newStepClock(cfg.Hz)
	gfx := capability.Static{ID: "software", Available: !cfg.NoGraphics}
	h := newHost("headless", cfg.Agent, gfx, nil, clock)
	h.width, h.height = cfg.Width, cfg.Height
	fb := NewFramebuffer(cfg.Width, cfg.Height)

	app, err := newApp(h)
	if err != nil {
		return fmt.Errorf("start app: %w", err)
	}
	defer app.Close()

	runErr := headlessLoop(ctx, app, fb, clock, d, cfg.Ticks)

	if cfg.Snapshot != "" {
		if err := writeSnapshot(fb, cfg.Snapshot); err != nil {
			return errors.Join(runErr, err)
		}
	}
	return runErr
}

func headlessLoop(ctx context.Context, app App, fb *Framebuffer, clock *stepClock, d time.Duration, ticks uint64) error {
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-t.C:
			clock.step()
			if err := app.Step(); err != nil {
				return err
			}
			app.Draw(fb)
			tick++
			if ticks > 0 && tick >= ticks {
				return nil
			}
		}
	}
}

func writeSnapshot(fb *Framebuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := fb.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	return f.Close()
}
