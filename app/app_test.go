package app

import (
	"context"
	"testing"
	"time"

	"wavefield/hal"
	"wavefield/internal/config"
	"wavefield/wavekit/bus"
	"wavefield/wavekit/capability"
	"wavefield/wavekit/hero"
	"wavefield/wavekit/scene"
	"wavefield/wavekit/visibility"
	"wavefield/wavekit/wave"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct{ now time.Duration }

func (c *manualClock) Elapsed() time.Duration { return c.now }

type fakeHost struct {
	platform string
	gfx      capability.ContextFactory
	bus      *bus.Bus
	surface  *scene.Surface
	clock    *manualClock
	w, h     int
}

func newFakeHost(platform string, w, h int, supported bool) *fakeHost {
	return &fakeHost{
		platform: platform,
		gfx:      capability.Static{ID: "fake", Available: supported},
		bus:      bus.New(),
		surface:  scene.NewSurface(),
		clock:    &manualClock{},
		w:        w,
		h:        h,
	}
}

func (f *fakeHost) Name() string                        { return "fake" }
func (f *fakeHost) Platform() string                    { return f.platform }
func (f *fakeHost) Bus() *bus.Bus                       { return f.bus }
func (f *fakeHost) Surface() *scene.Surface             { return f.surface }
func (f *fakeHost) Visibility() visibility.Source       { return nil }
func (f *fakeHost) Graphics() capability.ContextFactory { return f.gfx }
func (f *fakeHost) Viewport() (w, h int)                { return f.w, f.h }
func (f *fakeHost) Clock() hal.Clock                    { return f.clock }

func defaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Decode(config.New(""))
	require.NoError(t, err)
	return cfg
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := defaults(t)
	cfg.Lines.Count = 4
	cfg.Lines.Speed = 1.5
	cfg.Lines.Interactive = false
	cfg.Lines.Palette = []string{"#ff0000"}

	opts, err := Options(cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, opts.LineCount)
	assert.Equal(t, 1.5, opts.AnimationSpeed)
	assert.False(t, opts.EnableInteractivity)
	require.Len(t, opts.Palette, 1)
	assert.Equal(t, scene.RGB(0xFF, 0, 0), opts.Palette[0])

	cfg.Lines.Palette = []string{"nope"}
	_, err = Options(cfg)
	assert.Error(t, err)

	cfg.Lines.Palette = nil
	cfg.Lines.Count = -1
	_, err = Options(cfg)
	assert.ErrorIs(t, err, wave.ErrInvalidConfig)
}

func TestStartDesktopAnimates(t *testing.T) {
	h := newFakeHost("linux/amd64", 1280, 720, true)
	a, err := Start(h, defaults(t), zerolog.Nop(), nil, nil)
	require.NoError(t, err)
	defer a.Close()

	bg := a.Background()
	assert.Equal(t, hero.Animating, bg.State())
	assert.Len(t, bg.Lines(), 12)
	assert.Equal(t, wave.FrameContinuous, a.FrameMode())
	assert.Equal(t, 2.0, a.PixelRatio(3))

	h.clock.now = 16 * time.Millisecond
	require.NoError(t, a.Step())
	h.clock.now = 32 * time.Millisecond
	require.NoError(t, a.Step())
	assert.Equal(t, uint64(2), bg.Frames())

	fb := hal.NewFramebuffer(64, 36)
	a.Draw(fb)
	assert.Equal(t, bg.Scene().Background, fb.At(0, 0))
}

func TestStartMobileAgent(t *testing.T) {
	h := newFakeHost("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)", 1280, 720, true)
	cfg := defaults(t)
	cfg.Lines.Interactive = false
	a, err := Start(h, cfg, zerolog.Nop(), nil, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Len(t, a.Background().Lines(), 6)
	assert.Equal(t, wave.FrameDemand, a.FrameMode())
	assert.Equal(t, 1.5, a.PixelRatio(3))
}

func TestStartWithoutGraphics(t *testing.T) {
	h := newFakeHost("", 1280, 720, false)
	a, err := Start(h, defaults(t), zerolog.Nop(), nil, nil)
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, hero.StaticFallback, a.Background().State())
}

func TestMotionUpdatesApplyOnStep(t *testing.T) {
	h := newFakeHost("", 1280, 720, true)
	motion := make(chan bool, 2)
	a, err := Start(h, defaults(t), zerolog.Nop(), nil, motion)
	require.NoError(t, err)
	defer a.Close()

	motion <- true
	assert.Equal(t, hero.Animating, a.Background().State(), "not applied before Step")
	require.NoError(t, a.Step())
	assert.Equal(t, hero.StaticFallback, a.Background().State())

	motion <- false
	close(motion)
	require.NoError(t, a.Step())
	assert.Equal(t, hero.Animating, a.Background().State())
	require.NoError(t, a.Step())
}

func TestCloseStopsHost(t *testing.T) {
	h := newFakeHost("", 1280, 720, true)
	a, err := Start(h, defaults(t), zerolog.Nop(), nil, nil)
	require.NoError(t, err)

	a.Close()
	a.Close()
	assert.ErrorIs(t, a.Step(), hero.ErrUnmounted)
	assert.Zero(t, h.bus.Total())
	assert.Zero(t, h.surface.Listeners())
}

func TestNewRunsHeadless(t *testing.T) {
	cfg := defaults(t)
	var started *App
	newApp := New(cfg, zerolog.Nop(), nil, nil)
	wrapped := func(h hal.Host) (hal.App, error) {
		a, err := newApp(h)
		if err == nil {
			started = a.(*App)
		}
		return a, err
	}
	err := hal.RunHeadless(testContext(t), wrapped, hal.HeadlessConfig{Width: 960, Height: 540, Hz: 1000, Ticks: 3})
	require.NoError(t, err)
	require.NotNil(t, started)
	assert.Equal(t, uint64(3), started.Background().Frames())
}

// testContext returns a context canceled when the test ends
// (stand-in for testing.T.Context, which needs Go 1.24).
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
