// Package visibility reports whether the view hosting the animation can be
// seen. Hosts with a real signal (window focus/minimize, terminal focus
// reporting) get a native observer; everything else gets a synthetic one that
// always reports visible.
package visibility

// Source is a host signal polled once per frame.
type Source interface {
	// Supported reports whether the host can tell visibility at all.
	Supported() bool
	Visible() bool
}

// Observer tracks visibility and notifies on change.
type Observer interface {
	Visible() bool
	// OnChange subscribes fn; the returned cancel is idempotent.
	OnChange(fn func(visible bool)) (cancel func())
	// Poll samples the host signal. Hosts call it once per frame.
	Poll()
	Native() bool
}

// New selects the native observer when src is usable, else the synthetic one.
func New(src Source) Observer {
	if src != nil && src.Supported() {
		return &native{src: src, visible: src.Visible()}
	}
	return synthetic{}
}

type native struct {
	src     Source
	visible bool

	nextID uint64
	subs   map[uint64]func(bool)
}

func (n *native) Native() bool  { return true }
func (n *native) Visible() bool { return n.visible }

func (n *native) OnChange(fn func(bool)) func() {
	if n.subs == nil {
		n.subs = make(map[uint64]func(bool))
	}
	n.nextID++
	id := n.nextID
	n.subs[id] = fn
	return func() { delete(n.subs, id) }
}

func (n *native) Poll() {
	v := n.src.Visible()
	if v == n.visible {
		return
	}
	n.visible = v
	for _, fn := range n.subs {
		fn(v)
	}
}

type synthetic struct{}

func (synthetic) Native() bool  { return false }
func (synthetic) Visible() bool { return true }
func (synthetic) Poll()         {}

// OnChange reports "visible" right away and never again.
func (synthetic) OnChange(fn func(bool)) func() {
	if fn != nil {
		fn(true)
	}
	return func() {}
}
