package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type strokeTarget struct {
	*RGBATarget
	strokes []float32
}

func (s *strokeTarget) StrokeLine(x0, y0, x1, y1, width float32, c Color) {
	s.strokes = append(s.strokes, width)
}

func horizontalScene(color Color) *Scene {
	s := CreateScene(1)
	id := s.AddLine(LineStyle{Color: color, Width: 1}, 2)
	s.UpdateLinePoints(id, []mgl32.Vec3{{-5, 0, 0}, {5, 0, 0}})
	return s
}

func TestRenderSoftwareLine(t *testing.T) {
	red := RGB(0xFF, 0, 0)
	s := horizontalScene(red)
	tgt := NewRGBATarget(64, 32)

	NewRenderer().Render(tgt, s)

	assert.Equal(t, red, tgt.At(32, 16))
	assert.Equal(t, s.Background, tgt.At(0, 0))
	assert.Equal(t, s.Background, tgt.At(32, 0))
}

func TestRenderDisabledLine(t *testing.T) {
	red := RGB(0xFF, 0, 0)
	s := horizontalScene(red)
	s.SetLineEnabled(0, false)
	tgt := NewRGBATarget(64, 32)

	NewRenderer().Render(tgt, s)

	assert.Equal(t, s.Background, tgt.At(32, 16))
}

func TestRenderUsesNativeStrokes(t *testing.T) {
	s := CreateScene(1)
	id := s.AddLine(LineStyle{Width: 2}, 5)
	pts := []mgl32.Vec3{{-4, 0, 0}, {-2, 1, 0}, {0, 0, 0}, {2, -1, 0}, {4, 0, 0}}
	require.True(t, s.UpdateLinePoints(id, pts))

	tgt := &strokeTarget{RGBATarget: NewRGBATarget(32, 32)}
	r := NewRenderer()
	r.PixelRatio = 1.5
	r.Render(tgt, s)

	require.Len(t, tgt.strokes, len(pts)-1)
	for _, w := range tgt.strokes {
		assert.InDelta(t, 3.0, w, 1e-6)
	}
}

func TestRenderWideSoftwareLine(t *testing.T) {
	s := CreateScene(1)
	id := s.AddLine(LineStyle{Color: RGB(0, 0xFF, 0), Width: 3}, 2)
	s.UpdateLinePoints(id, []mgl32.Vec3{{-5, 0, 0}, {5, 0, 0}})
	tgt := NewRGBATarget(64, 32)

	NewRenderer().Render(tgt, s)

	assert.Equal(t, RGB(0, 0xFF, 0), tgt.At(32, 15))
	assert.Equal(t, RGB(0, 0xFF, 0), tgt.At(32, 17))
}

func TestRenderSteadyStateDoesNotAllocate(t *testing.T) {
	s := horizontalScene(RGB(0xFF, 0xFF, 0xFF))
	tgt := NewRGBATarget(32, 16)
	r := NewRenderer()
	r.Render(tgt, s)

	allocs := testing.AllocsPerRun(20, func() { r.Render(tgt, s) })
	assert.Zero(t, allocs)
}

func TestRenderNilAndEmpty(t *testing.T) {
	var r *Renderer
	r.Render(NewRGBATarget(4, 4), CreateScene(1))
	NewRenderer().Render(nil, CreateScene(1))
	NewRenderer().Render(NewRGBATarget(0, 0), CreateScene(1))
}

func TestFillRectFallback(t *testing.T) {
	tgt := NewRGBATarget(4, 4)
	FillRect(tgt, 1, 1, 2, 2, RGB(1, 2, 3))
	assert.Equal(t, RGB(1, 2, 3), tgt.At(1, 1))
	assert.Equal(t, RGB(1, 2, 3), tgt.At(2, 2))
	assert.Equal(t, Color{}, tgt.At(0, 0))
}

func TestBlendHalfAlpha(t *testing.T) {
	tgt := NewRGBATarget(1, 1)
	tgt.Clear(RGB(0, 0, 0))
	tgt.SetPixel(0, 0, RGBA(200, 100, 0, 0x80))
	got := tgt.At(0, 0)
	assert.InDelta(t, 100, int(got.R), 1)
	assert.InDelta(t, 50, int(got.G), 1)
	assert.Equal(t, uint8(0xFF), got.A)
}
