//go:build cgo

package hal

import (
	"fmt"
	"image/color"
	"strings"

	"wavefield/wavekit/capability"
	"wavefield/wavekit/scene"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ebitenGraphics probes the graphics library ebiten is running on. An
// identifier matches when it names that library or is "auto".
type ebitenGraphics struct {
	ids []string
}

func (g ebitenGraphics) Identifiers() []string { return g.ids }

func (g ebitenGraphics) Acquire(id string) (capability.Context, error) {
	var info ebiten.DebugInfo
	ebiten.ReadDebugInfo(&info)
	lib := info.GraphicsLibrary
	if lib == ebiten.GraphicsLibraryUnknown {
		return nil, fmt.Errorf("%s: %w", id, capability.ErrUnavailable)
	}
	if id != "auto" && !strings.EqualFold(lib.String(), id) {
		return nil, fmt.Errorf("%s: running on %s: %w", id, lib, capability.ErrUnavailable)
	}
	return ebitenContext{}, nil
}

type ebitenContext struct{}

func (ebitenContext) CompileShader(src []byte) (capability.Shader, error) {
	s, err := ebiten.NewShader(src)
	if err != nil {
		return nil, err
	}
	return ebitenShader{s: s}, nil
}

func (ebitenContext) Release() {}

type ebitenShader struct{ s *ebiten.Shader }

func (e ebitenShader) Release() { e.s.Deallocate() }

// ebitenTarget draws on an ebiten image with antialiased vector strokes.
// Scene colors carry straight alpha, so they are passed on as NRGBA.
type ebitenTarget struct {
	img *ebiten.Image
}

var (
	_ scene.LineTarget = ebitenTarget{}
	_ scene.RectTarget = ebitenTarget{}
)

func (t ebitenTarget) Size() (w, h int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t ebitenTarget) Clear(c scene.Color) { t.img.Fill(color.NRGBA(c)) }

func (t ebitenTarget) SetPixel(x, y int, c scene.Color) { t.img.Set(x, y, color.NRGBA(c)) }

func (t ebitenTarget) StrokeLine(x0, y0, x1, y1, width float32, c scene.Color) {
	vector.StrokeLine(t.img, x0, y0, x1, y1, width, color.NRGBA(c), true)
}

func (t ebitenTarget) FillRect(x, y, w, h int, c scene.Color) {
	vector.DrawFilledRect(t.img, float32(x), float32(y), float32(w), float32(h), color.NRGBA(c), false)
}
