package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceLossWithoutPreventDefaultDestroys(t *testing.T) {
	s := NewSurface()
	called := 0
	cancel := s.OnContextLost(func(*LossEvent) { called++ })
	defer cancel()

	assert.False(t, s.Lose())
	assert.Equal(t, 1, called)
	assert.True(t, s.Destroyed())
	assert.False(t, s.Restore())
}

func TestSurfaceRoundTrip(t *testing.T) {
	s := NewSurface()
	restored := 0
	s.OnContextLost(func(ev *LossEvent) { ev.PreventDefault() })
	s.OnContextRestored(func() { restored++ })

	require.True(t, s.Lose())
	assert.True(t, s.Lost())
	assert.True(t, s.Lose(), "second loss is a no-op")

	require.True(t, s.Restore())
	assert.False(t, s.Lost())
	assert.Equal(t, 1, restored)
	assert.False(t, s.Restore(), "restore while live is a no-op")
}

func TestSurfaceCancelIsIdempotent(t *testing.T) {
	s := NewSurface()
	c1 := s.OnContextLost(func(*LossEvent) {})
	c2 := s.OnContextRestored(func() {})
	c3 := s.OnContextRestored(func() {})
	require.Equal(t, 3, s.Listeners())

	c1()
	c1()
	c2()
	assert.Equal(t, 1, s.Listeners())
	c3()
	c2()
	assert.Zero(t, s.Listeners())
}

func TestAdapterPreventsDefault(t *testing.T) {
	surf := NewSurface()
	a := NewAdapter(CreateScene(4), surf)
	lost := 0
	cancel := a.OnContextLost(func() { lost++ })

	assert.True(t, surf.Lose())
	assert.Equal(t, 1, lost)
	assert.False(t, surf.Destroyed())

	cancel()
	assert.Zero(t, surf.Listeners())
}

func TestAdapterBuildMaterializeRelease(t *testing.T) {
	s := CreateScene(3)
	a := NewAdapter(s, NewSurface())
	styles := []LineStyle{{Width: 1}, {Width: 2}, {Width: 3}, {Width: 4}}

	assert.Equal(t, 3, a.Build(styles, 4), "capacity bounds the build")
	assert.Equal(t, 3, a.Lines())

	a.Materialize(1, []mgl32.Vec3{{1, 2, 3}, {4, 5, 6}})
	assert.Equal(t, []mgl32.Vec3{{1, 2, 3}, {4, 5, 6}}, s.LinePoints(1))
	a.Materialize(7, []mgl32.Vec3{{1, 2, 3}})

	assert.Equal(t, 2, a.Build(styles[:2], 4), "rebuild releases previous lines")
	assert.Equal(t, 2, s.Len())

	a.Release()
	a.Release()
	assert.Zero(t, s.Len())
	assert.Zero(t, a.Lines())
}
