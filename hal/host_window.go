//go:build cgo

package hal

import (
	"context"
	"errors"
	"fmt"

	"wavefield/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
)

// WindowConfig controls the desktop window host.
type WindowConfig struct {
	Title         string
	Width, Height int
	Hz            int
	// Libraries are the graphics identifiers probed newest first; "auto"
	// accepts whatever ebiten picked.
	Libraries []string
	Agent     string
}

// RunWindow opens a window and runs the app on ebiten's game loop. It blocks
// until the window closes, ctx is done, or the app fails. F9 toggles a
// simulated context loss.
func RunWindow(ctx context.Context, newApp NewApp, cfg WindowConfig, log zerolog.Logger) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if len(cfg.Libraries) == 0 {
		cfg.Libraries = []string{"auto", "opengl"}
	}
	title := cfg.Title
	if title == "" {
		title = "wavefield"
	}

	g := &windowGame{
		ctx:    ctx,
		log:    log.With().Str("component", "window").Logger(),
		newApp: newApp,
		pace:   pacer{hz: cfg.Hz},
		ratio:  1,
	}
	g.h = newHost("window", cfg.Agent, ebitenGraphics{ids: cfg.Libraries}, windowVisibility{}, newWallClock())
	g.h.width, g.h.height = cfg.Width, cfg.Height

	ebiten.SetWindowTitle(title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Hz)

	err := ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{GraphicsLibrary: ebiten.GraphicsLibraryAuto})
	if g.app != nil {
		g.app.Close()
	}
	if errors.Is(err, ebiten.Termination) {
		return g.err
	}
	return err
}

type windowGame struct {
	ctx    context.Context
	log    zerolog.Logger
	h      *host
	newApp NewApp
	app    App
	err    error

	guard   *drawGuard
	pace    pacer
	ratio   float64
	pointer pointerState
}

func (g *windowGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if g.app == nil {
		// Graphics can only be probed once the game loop runs.
		app, err := g.newApp(g.h)
		if err != nil {
			g.err = fmt.Errorf("start app: %w", err)
			return ebiten.Termination
		}
		g.app = app
		g.guard = newDrawGuard(g.h.surface, g.log)
	}

	g.pointer.poll(g.h, g.ratio)
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		if g.h.surface.Lost() {
			g.h.surface.Restore()
		} else {
			g.h.surface.Lose()
		}
	}

	if err := g.app.Step(); err != nil {
		g.err = err
		return ebiten.Termination
	}
	if tps, changed := g.pace.rate(g.app.FrameMode()); changed {
		ebiten.SetTPS(tps)
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	if g.app == nil {
		return
	}
	g.guard.draw(g.app, ebitenTarget{img: screen})
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.h.resize(outsideWidth, outsideHeight)
	g.ratio = 1
	if g.app != nil {
		device := 1.0
		if m := ebiten.Monitor(); m != nil {
			device = m.DeviceScaleFactor()
		}
		g.ratio = g.app.PixelRatio(device)
	}
	return int(float64(outsideWidth) * g.ratio), int(float64(outsideHeight) * g.ratio)
}

// windowVisibility treats a minimized window as hidden.
type windowVisibility struct{}

func (windowVisibility) Supported() bool { return true }
func (windowVisibility) Visible() bool   { return !ebiten.IsWindowMinimized() }
