package hal

import (
	"fmt"

	"wavefield/wavekit/scene"
	"wavefield/wavekit/wave"

	"github.com/rs/zerolog"
)

// RestoreAfter is the number of clean draws after a recovered draw panic
// before the host restores the surface.
const RestoreAfter = 30

// drawGuard turns a panicking draw into a context loss and restores the
// surface once drawing has stayed clean for RestoreAfter frames.
type drawGuard struct {
	surface *scene.Surface
	log     zerolog.Logger

	pending bool
	clean   int
}

func newDrawGuard(s *scene.Surface, log zerolog.Logger) *drawGuard {
	return &drawGuard{surface: s, log: log}
}

// draw calls app.Draw and reports whether it panicked.
func (g *drawGuard) draw(app App, t scene.Target) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error().Str("panic", fmt.Sprint(r)).Msg("draw failed, treating as context loss")
			g.surface.Lose()
			g.pending = true
			g.clean = 0
			panicked = true
		}
	}()
	app.Draw(t)
	g.settle()
	return false
}

func (g *drawGuard) settle() {
	if !g.pending {
		return
	}
	g.clean++
	if g.clean < RestoreAfter {
		return
	}
	g.pending = false
	g.clean = 0
	if g.surface.Lost() && g.surface.Restore() {
		g.log.Info().Msg("surface restored after draw failure")
	}
}

// pacer follows the app's frame mode and reports tick-rate changes.
type pacer struct {
	hz  int
	tps int
}

// rate returns the tick rate for m and whether it differs from the last one.
func (p *pacer) rate(m wave.FrameMode) (tps int, changed bool) {
	t := ticksPerSecond(m, p.hz)
	if t == p.tps {
		return t, false
	}
	p.tps = t
	return t, true
}
