package scene

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// CaptionHeight is the glyph cell height of the caption font in pixels.
const CaptionHeight = 8

var captionFont = &proggy.TinySZ8pt7b

// targetDisplayer lets tinyfont draw into a Target.
type targetDisplayer struct {
	t Target
}

var _ drivers.Displayer = targetDisplayer{}

func (d targetDisplayer) Size() (x, y int16) {
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d targetDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.t.SetPixel(int(x), int(y), c)
}

func (d targetDisplayer) Display() error { return nil }

// CaptionWidth returns the rendered width of s in pixels.
func CaptionWidth(s string) int {
	_, outbox := tinyfont.LineWidth(captionFont, s)
	return int(outbox)
}

// DrawCaption writes s with its top-left corner at x,y.
func DrawCaption(t Target, x, y int, s string, c Color) {
	if t == nil || s == "" {
		return
	}
	tinyfont.WriteLine(targetDisplayer{t: t}, captionFont, int16(x), int16(y+CaptionHeight), s, c)
}

// DrawCaptionCentered writes s centered on the target.
func DrawCaptionCentered(t Target, s string, c Color) {
	if t == nil {
		return
	}
	w, h := t.Size()
	x := (w - CaptionWidth(s)) / 2
	y := (h - CaptionHeight) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	DrawCaption(t, x, y, s, c)
}
