package hero

import (
	"wavefield/wavekit/interact"
	"wavefield/wavekit/visibility"
	"wavefield/wavekit/wave"
)

// Graph receives the points of each line once per frame.
type Graph interface {
	Materialize(line int, pts []wave.Point3)
}

// Driver advances the animation by one frame per Tick. It owns the line
// configs and one point buffer per line; all of it is reused across frames.
type Driver struct {
	lines       []wave.Line
	bufs        [][]wave.Point3
	tracker     *interact.Tracker
	graph       Graph
	visible     visibility.Observer
	interactive bool
}

// NewDriver returns a driver over lines. tracker and vis may be nil.
func NewDriver(lines []wave.Line, tracker *interact.Tracker, graph Graph, vis visibility.Observer, interactive bool) *Driver {
	bufs := make([][]wave.Point3, len(lines))
	for i, l := range lines {
		bufs[i] = make([]wave.Point3, 0, l.Base.PointCount)
	}
	return &Driver{
		lines:       lines,
		bufs:        bufs,
		tracker:     tracker,
		graph:       graph,
		visible:     vis,
		interactive: interactive,
	}
}

// Lines returns the driver's line set.
func (d *Driver) Lines() []wave.Line {
	if d == nil {
		return nil
	}
	return d.lines
}

// Tick renders one frame at elapsed seconds since animation start. It returns
// false when nothing was produced (no lines, or the view is hidden).
func (d *Driver) Tick(elapsed float64) bool {
	if d == nil || len(d.lines) == 0 {
		return false
	}
	if d.visible != nil && !d.visible.Visible() {
		return false
	}

	var x, y float64
	if d.tracker != nil {
		x, y = d.tracker.Tick()
	}

	for i := range d.lines {
		l := &d.lines[i]
		if d.interactive {
			l.Live = wave.Influence(l.Base, x, y)
		} else {
			l.Live = l.Base
		}
		d.bufs[i] = wave.AppendPoints(d.bufs[i][:0], l.Live, elapsed)
		if d.graph != nil {
			d.graph.Materialize(i, d.bufs[i])
		}
	}
	return true
}

// Release drops the line set and buffers. The driver is a no-op afterwards.
func (d *Driver) Release() {
	if d == nil {
		return
	}
	d.lines = nil
	d.bufs = nil
	d.graph = nil
}
