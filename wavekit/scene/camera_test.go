package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaultCameraProjectsOriginToCenter(t *testing.T) {
	c := DefaultCamera()
	vp := c.Projection(1).Mul4(c.View())
	ndc, ok := clipToNDC(vp.Mul4x1(mgl32.Vec4{0, 0, 0, 1}))
	if !ok {
		t.Fatalf("origin clipped")
	}
	x, y := ndcToScreen(ndc, 101, 101)
	if x != 50 || y != 50 {
		t.Fatalf("origin at (%v,%v), want (50,50)", x, y)
	}
}

func TestDefaultCameraFramesSpan(t *testing.T) {
	c := DefaultCamera()
	vp := c.Projection(16.0 / 9.0).Mul4(c.View())
	for _, x := range []float32{-10, 10} {
		ndc, ok := clipToNDC(vp.Mul4x1(mgl32.Vec4{x, 0, 0, 1}))
		if !ok {
			t.Fatalf("x=%v clipped", x)
		}
		if ndc.X < -1 || ndc.X > 1 {
			t.Fatalf("x=%v outside viewport: ndc %v", x, ndc.X)
		}
	}
}

func TestClipRejectsBehindEye(t *testing.T) {
	if _, ok := clipToNDC(mgl32.Vec4{0, 0, 0, 0}); ok {
		t.Fatalf("w=0 accepted")
	}
	if _, ok := clipToNDC(mgl32.Vec4{0, 0, 0, -1}); ok {
		t.Fatalf("w<0 accepted")
	}
}

func TestOrthoNotIdentity(t *testing.T) {
	c := DefaultCamera()
	c.Type = CameraOrtho
	if c.Projection(1) == mgl32.Ident4() {
		t.Fatalf("ortho unexpectedly identity")
	}
	if c.View() == mgl32.Ident4() {
		t.Fatalf("lookAt unexpectedly identity")
	}
}
