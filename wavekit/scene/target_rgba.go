package scene

import "image"

// RGBATarget renders into an *image.RGBA with src-over blending.
type RGBATarget struct {
	Img *image.RGBA
}

// NewRGBATarget allocates a w*h RGBA target.
func NewRGBATarget(w, h int) *RGBATarget {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &RGBATarget{Img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (t *RGBATarget) Size() (w, h int) {
	if t == nil || t.Img == nil {
		return 0, 0
	}
	b := t.Img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *RGBATarget) Clear(c Color) {
	if t == nil || t.Img == nil {
		return
	}
	pix := t.Img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}

func (t *RGBATarget) SetPixel(x, y int, c Color) {
	if t == nil || t.Img == nil {
		return
	}
	b := t.Img.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return
	}
	off := t.Img.PixOffset(b.Min.X+x, b.Min.Y+y)
	p := t.Img.Pix[off : off+4 : off+4]
	out := blend(Color{R: p[0], G: p[1], B: p[2], A: p[3]}, c)
	p[0], p[1], p[2], p[3] = out.R, out.G, out.B, out.A
}

// At returns the pixel at x,y, or the zero color when out of bounds.
func (t *RGBATarget) At(x, y int) Color {
	if t == nil || t.Img == nil {
		return Color{}
	}
	b := t.Img.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return Color{}
	}
	return t.Img.RGBAAt(b.Min.X+x, b.Min.Y+y)
}

// Resize reallocates the backing image when the size changes.
func (t *RGBATarget) Resize(w, h int) {
	if t == nil {
		return
	}
	if cw, ch := t.Size(); cw == w && ch == h && t.Img != nil {
		return
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	t.Img = image.NewRGBA(image.Rect(0, 0, w, h))
}
