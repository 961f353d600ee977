package hal

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"

	"wavefield/wavekit/scene"
)

// Framebuffer is a locked RGBA software framebuffer.
type Framebuffer struct {
	mu  sync.Mutex
	tgt *scene.RGBATarget
}

var _ scene.Target = (*Framebuffer)(nil)

// NewFramebuffer allocates a w*h framebuffer.
func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{tgt: scene.NewRGBATarget(w, h)}
}

func (f *Framebuffer) Size() (w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tgt.Size()
}

func (f *Framebuffer) Clear(c scene.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tgt.Clear(c)
}

func (f *Framebuffer) SetPixel(x, y int, c scene.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tgt.SetPixel(x, y, c)
}

// At returns one pixel.
func (f *Framebuffer) At(x, y int) scene.Color {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tgt.At(x, y)
}

// Resize reallocates the framebuffer when the size changes.
func (f *Framebuffer) Resize(w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tgt.Resize(w, h)
}

// Snapshot copies the current contents.
func (f *Framebuffer) Snapshot() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	src := f.tgt.Img
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}

// WritePNG encodes the current contents as PNG.
func (f *Framebuffer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, f.Snapshot()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
