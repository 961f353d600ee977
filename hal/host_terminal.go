package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wavefield/wavekit/bus"
	"wavefield/wavekit/capability"
	"wavefield/wavekit/scene"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
)

// Terminal cells are treated as 8x16 client pixels so viewport widths line
// up with the window host's device classification.
const (
	cellPixelsX = 8
	cellPixelsY = 16
)

// TerminalConfig controls the terminal host runner.
type TerminalConfig struct {
	Hz         int
	Ticks      uint64
	NoGraphics bool
	Agent      string
	Log        zerolog.Logger
}

// RunTerminal renders into the controlling terminal with half-block cells
// until ctx is done, q/Esc/Ctrl-C is pressed, or Ticks ticks have run.
// 'l' simulates a context loss and 'r' restores it.
func RunTerminal(ctx context.Context, newApp NewApp, cfg TerminalConfig) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer s.Fini()
	return runTerminal(ctx, s, newApp, cfg)
}

func runTerminal(ctx context.Context, s tcell.Screen, newApp NewApp, cfg TerminalConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}
	s.EnableMouse(tcell.MouseMotionEvents)
	s.EnableFocus()
	s.HideCursor()

	vis := &focusSource{focused: true}
	var gfx capability.ContextFactory = terminalGraphics{s: s}
	if cfg.NoGraphics {
		gfx = capability.Static{ID: "terminal"}
	}
	h := newHost("terminal", cfg.Agent, gfx, vis, newWallClock())
	out := newCellTarget(s)
	w, ht := out.resize()
	h.width, h.height = w*cellPixelsX, ht*cellPixelsY

	app, err := newApp(h)
	if err != nil {
		return fmt.Errorf("start app: %w", err)
	}
	defer app.Close()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go s.ChannelEvents(events, quit)

	guard := newDrawGuard(h.surface, cfg.Log.With().Str("component", "terminal").Logger())
	pace := pacer{hz: cfg.Hz}
	tps, _ := pace.rate(app.FrameMode())
	t := time.NewTicker(time.Second / time.Duration(tps))
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if stop := handleTerminalEvent(h, vis, out, ev); stop {
				return nil
			}
		case <-t.C:
			if err := app.Step(); err != nil {
				return err
			}
			guard.draw(app, out)
			out.flush()
			if tps, changed := pace.rate(app.FrameMode()); changed {
				t.Reset(time.Second / time.Duration(tps))
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

func handleTerminalEvent(h *host, vis *focusSource, out *cellTarget, ev tcell.Event) (stop bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'l':
			h.surface.Lose()
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			h.surface.Restore()
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		h.bus.Publish(bus.Event{
			Type: bus.EventPointerMove,
			X:    float64(x*cellPixelsX + cellPixelsX/2),
			Y:    float64(y*cellPixelsY + cellPixelsY/2),
		})
	case *tcell.EventFocus:
		vis.focused = ev.Focused
		if !ev.Focused {
			h.bus.Publish(bus.Event{Type: bus.EventPointerLeave})
		}
	case *tcell.EventResize:
		w, ht := out.resize()
		h.resize(w*cellPixelsX, ht*cellPixelsY)
	}
	return false
}

// focusSource reports terminal focus as visibility.
type focusSource struct{ focused bool }

func (f *focusSource) Supported() bool { return true }
func (f *focusSource) Visible() bool   { return f.focused }

// cellTarget renders two pixels per cell using the upper half block: the
// foreground paints the top pixel and the background the bottom one.
type cellTarget struct {
	s   tcell.Screen
	buf *scene.RGBATarget
}

func newCellTarget(s tcell.Screen) *cellTarget {
	return &cellTarget{s: s, buf: scene.NewRGBATarget(0, 0)}
}

// resize matches the pixel buffer to the screen and returns the cell size.
func (c *cellTarget) resize() (w, h int) {
	w, h = c.s.Size()
	c.buf.Resize(w, h*2)
	return w, h
}

func (c *cellTarget) Size() (w, h int)                   { return c.buf.Size() }
func (c *cellTarget) Clear(col scene.Color)              { c.buf.Clear(col) }
func (c *cellTarget) SetPixel(x, y int, col scene.Color) { c.buf.SetPixel(x, y, col) }

func (c *cellTarget) flush() {
	w, h := c.buf.Size()
	for y := 0; y+1 < h; y += 2 {
		for x := 0; x < w; x++ {
			top := c.buf.At(x, y)
			bot := c.buf.At(x, y+1)
			st := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			c.s.SetContent(x, y/2, '▀', nil, st)
		}
	}
	c.s.Show()
}

// terminalGraphics probes the terminal's color depth. "truecolor" needs 24-bit
// color and "256" a 256-color palette.
type terminalGraphics struct{ s tcell.Screen }

func (terminalGraphics) Identifiers() []string { return []string{"truecolor", "256"} }

func (g terminalGraphics) Acquire(id string) (capability.Context, error) {
	need := 256
	if id == "truecolor" {
		need = 1 << 24
	}
	if n := g.s.Colors(); n < need {
		return nil, fmt.Errorf("%s: terminal reports %d colors: %w", id, n, capability.ErrUnavailable)
	}
	return terminalContext{}, nil
}

type terminalContext struct{}

// CompileShader checks that an RGB color survives conversion to a terminal
// color.
func (terminalContext) CompileShader([]byte) (capability.Shader, error) {
	c := tcell.NewRGBColor(0x4F, 0x8C, 0xFF)
	if !c.Valid() {
		return nil, errors.New("terminal: rgb colors unsupported")
	}
	return terminalShader{}, nil
}

func (terminalContext) Release() {}

type terminalShader struct{}

func (terminalShader) Release() {}
