package hero

import (
	"testing"

	"wavefield/wavekit/interact"
	"wavefield/wavekit/visibility"
	"wavefield/wavekit/wave"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordGraph struct {
	calls map[int]int
	last  map[int][]wave.Point3
}

func newRecordGraph() *recordGraph {
	return &recordGraph{calls: map[int]int{}, last: map[int][]wave.Point3{}}
}

func (g *recordGraph) Materialize(line int, pts []wave.Point3) {
	g.calls[line]++
	g.last[line] = pts
}

type switchSource struct{ visible bool }

func (s *switchSource) Supported() bool { return true }
func (s *switchSource) Visible() bool   { return s.visible }

func TestDriverZeroLines(t *testing.T) {
	g := newRecordGraph()
	d := NewDriver(nil, interact.NewTracker(0), g, nil, true)
	assert.False(t, d.Tick(1))
	assert.Empty(t, g.calls)

	var nilDriver *Driver
	assert.False(t, nilDriver.Tick(1))
}

func TestDriverMaterializesEveryLine(t *testing.T) {
	lines := wave.NewLines(4, wave.DesktopTier, 1)
	g := newRecordGraph()
	d := NewDriver(lines, interact.NewTracker(0), g, nil, true)

	require.True(t, d.Tick(0.5))
	require.True(t, d.Tick(0.6))
	for i := 0; i < 4; i++ {
		assert.Equal(t, 2, g.calls[i])
		assert.Equal(t, wave.GeneratePoints(lines[i].Live, 0.6), g.last[i])
	}
}

func TestDriverReusesBuffers(t *testing.T) {
	g := newRecordGraph()
	d := NewDriver(wave.NewLines(2, wave.MobileTier, 1), nil, g, nil, false)
	d.Tick(0)
	first := &g.last[0][0]
	d.Tick(1)
	assert.Same(t, first, &g.last[0][0])
}

func TestDriverInfluence(t *testing.T) {
	lines := wave.NewLines(3, wave.DesktopTier, 1)
	tr := interact.NewTracker(1)
	tr.Resize(100, 100)
	tr.OnPointerMove(0, 100)

	d := NewDriver(lines, tr, newRecordGraph(), nil, true)
	d.Tick(0)
	for _, l := range d.Lines() {
		assert.InDelta(t, l.Base.Amplitude+wave.AmplitudeGain, l.Live.Amplitude, 1e-9)
		assert.InDelta(t, l.Base.Frequency+wave.FrequencyGain, l.Live.Frequency, 1e-9)
	}

	still := NewDriver(wave.NewLines(3, wave.DesktopTier, 1), tr, newRecordGraph(), nil, false)
	still.Tick(0)
	for _, l := range still.Lines() {
		assert.Equal(t, l.Base, l.Live)
	}
}

func TestDriverPausesWhileHidden(t *testing.T) {
	src := &switchSource{visible: false}
	vis := visibility.New(src)
	g := newRecordGraph()
	d := NewDriver(wave.NewLines(2, wave.MobileTier, 1), nil, g, vis, true)

	assert.False(t, d.Tick(0))
	assert.Empty(t, g.calls)

	src.visible = true
	vis.Poll()
	assert.True(t, d.Tick(0))
	assert.Equal(t, 1, g.calls[0])
}

func TestDriverRelease(t *testing.T) {
	g := newRecordGraph()
	d := NewDriver(wave.NewLines(2, wave.MobileTier, 1), nil, g, nil, true)
	d.Release()
	assert.False(t, d.Tick(0))
	assert.Nil(t, d.Lines())
}
