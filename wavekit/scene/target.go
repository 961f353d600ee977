package scene

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// LineTarget is implemented by targets that stroke vectors natively.
type LineTarget interface {
	Target
	StrokeLine(x0, y0, x1, y1, width float32, c Color)
}

// RectTarget is implemented by targets that fill rectangles natively.
type RectTarget interface {
	Target
	FillRect(x, y, w, h int, c Color)
}

// FillRect fills a rectangle on t, using the native path when available.
func FillRect(t Target, x, y, w, h int, c Color) {
	if t == nil || w <= 0 || h <= 0 {
		return
	}
	if rt, ok := t.(RectTarget); ok {
		rt.FillRect(x, y, w, h, c)
		return
	}
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			t.SetPixel(xx, yy, c)
		}
	}
}
