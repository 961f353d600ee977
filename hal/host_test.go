package hal

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"wavefield/wavekit/bus"
	"wavefield/wavekit/capability"
	"wavefield/wavekit/scene"
	"wavefield/wavekit/wave"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApp struct {
	h      Host
	steps  int
	draws  int
	closed int
	mode   wave.FrameMode
	fail   error
	fill   scene.Color
	times  []time.Duration
	panics int
}

func (a *fakeApp) Step() error {
	a.steps++
	a.times = append(a.times, a.h.Clock().Elapsed())
	return a.fail
}

func (a *fakeApp) Draw(t scene.Target) {
	a.draws++
	if a.panics > 0 {
		a.panics--
		panic("draw failed")
	}
	t.Clear(a.fill)
}

func (a *fakeApp) FrameMode() wave.FrameMode         { return a.mode }
func (a *fakeApp) PixelRatio(device float64) float64 { return device }
func (a *fakeApp) Close()                            { a.closed++ }

func newFake(app *fakeApp) NewApp {
	return func(h Host) (App, error) {
		app.h = h
		return app, nil
	}
}

func TestPlatform(t *testing.T) {
	assert.Equal(t, "iPhone", Platform(" iPhone "))
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, Platform(""))
}

func TestTicksPerSecond(t *testing.T) {
	assert.Equal(t, 60, ticksPerSecond(wave.FrameContinuous, 60))
	assert.Equal(t, DemandTPS, ticksPerSecond(wave.FrameDemand, 60))
	assert.Equal(t, 20, ticksPerSecond(wave.FrameDemand, 20))
}

func TestStepClock(t *testing.T) {
	c := newStepClock(50)
	assert.Zero(t, c.Elapsed())
	c.step()
	c.step()
	assert.Equal(t, 40*time.Millisecond, c.Elapsed())
}

func TestHostResizePublishesOnChange(t *testing.T) {
	h := newHost("test", "", capability.Static{}, nil, newStepClock(60))
	var got []bus.Event
	h.Bus().Subscribe(bus.EventViewportSize, func(ev bus.Event) { got = append(got, ev) })

	h.resize(100, 50)
	h.resize(100, 50)
	h.resize(120, 50)

	require.Len(t, got, 2)
	assert.Equal(t, 120, got[1].Width)
	w, ht := h.Viewport()
	assert.Equal(t, 120, w)
	assert.Equal(t, 50, ht)
}

func TestRunHeadlessTicksAndSnapshot(t *testing.T) {
	app := &fakeApp{fill: scene.RGB(10, 20, 30)}
	path := filepath.Join(t.TempDir(), "frame.png")

	err := RunHeadless(context.Background(), newFake(app), HeadlessConfig{
		Width: 16, Height: 8, Hz: 1000, Ticks: 5, Snapshot: path,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, app.steps)
	assert.Equal(t, 5, app.draws)
	assert.Equal(t, 1, app.closed)
	assert.Equal(t, time.Millisecond, app.times[0])
	assert.Equal(t, 5*time.Millisecond, app.times[4])
	assert.Equal(t, "headless", app.h.Name())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	r, g, b, _ := img.At(3, 3).RGBA()
	assert.Equal(t, []uint32{10, 20, 30}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestRunHeadlessGraphicsFlag(t *testing.T) {
	app := &fakeApp{}
	require.NoError(t, RunHeadless(context.Background(), newFake(app), HeadlessConfig{Hz: 1000, Ticks: 1}))
	assert.True(t, capability.Detect(app.h.Graphics()))

	app = &fakeApp{}
	require.NoError(t, RunHeadless(context.Background(), newFake(app), HeadlessConfig{Hz: 1000, Ticks: 1, NoGraphics: true}))
	assert.False(t, capability.Detect(app.h.Graphics()))
}

func TestRunHeadlessStopsOnStepError(t *testing.T) {
	boom := errors.New("boom")
	app := &fakeApp{fail: boom}
	err := RunHeadless(context.Background(), newFake(app), HeadlessConfig{Hz: 1000})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, app.steps)
	assert.Equal(t, 1, app.closed)
}

func TestRunHeadlessCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	app := &fakeApp{}
	assert.NoError(t, RunHeadless(ctx, newFake(app), HeadlessConfig{Hz: 10}))
}

func TestRunHeadlessAppError(t *testing.T) {
	boom := errors.New("no app")
	err := RunHeadless(context.Background(), func(Host) (App, error) { return nil, boom }, HeadlessConfig{})
	assert.ErrorIs(t, err, boom)
}

func TestFramebufferSnapshotIsCopy(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Clear(scene.RGB(1, 1, 1))
	snap := fb.Snapshot()
	fb.SetPixel(0, 0, scene.RGB(9, 9, 9))
	assert.Equal(t, uint8(1), snap.Pix[0])
	assert.Equal(t, scene.RGB(9, 9, 9), fb.At(0, 0))

	fb.Resize(4, 3)
	w, h := fb.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)
}

func zeroLog() zerolog.Logger { return zerolog.Nop() }
