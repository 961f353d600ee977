package hero

import (
	"wavefield/wavekit/capability"

	"github.com/rs/zerolog"
)

// RenderState is the render path the background is on.
type RenderState uint8

const (
	Loading RenderState = iota
	StaticFallback
	ContextLost
	Animating
)

func (s RenderState) String() string {
	switch s {
	case Loading:
		return "loading"
	case StaticFallback:
		return "static"
	case ContextLost:
		return "context_lost"
	case Animating:
		return "animating"
	default:
		return "unknown"
	}
}

// Orchestrator is the render state machine. It is driven from a single
// goroutine and takes no locks.
type Orchestrator struct {
	log zerolog.Logger

	state     RenderState
	supported bool
	// lost is set by a context loss in any state and cleared by a restore.
	lost      bool

	nextID    uint64
	observers []transitionObserver
}

type transitionObserver struct {
	id uint64
	fn func(from, to RenderState)
}

// NewOrchestrator returns an orchestrator in Loading.
func NewOrchestrator(log zerolog.Logger) *Orchestrator {
	return &Orchestrator{log: log}
}

// State returns the current state.
func (o *Orchestrator) State() RenderState { return o.state }

// OnTransition subscribes fn to state changes.
func (o *Orchestrator) OnTransition(fn func(from, to RenderState)) (cancel func()) {
	o.nextID++
	id := o.nextID
	o.observers = append(o.observers, transitionObserver{id: id, fn: fn})
	return func() {
		for i, ob := range o.observers {
			if ob.id == id {
				o.observers = append(o.observers[:i], o.observers[i+1:]...)
				return
			}
		}
	}
}

// Resolve leaves Loading. It picks StaticFallback when graphics are
// unsupported or reduced motion is on, and Animating otherwise. The capability
// result is kept for the rest of the orchestrator's life. Calls outside
// Loading are ignored.
func (o *Orchestrator) Resolve(snap capability.Snapshot) RenderState {
	if o.state != Loading {
		return o.state
	}
	o.supported = snap.GraphicsSupported
	switch {
	case !snap.GraphicsSupported:
		o.log.Warn().Msg("graphics unsupported, showing static background")
		o.transition(StaticFallback)
	case snap.ReducedMotion:
		o.log.Info().Msg("reduced motion requested, showing static background")
		o.transition(StaticFallback)
	default:
		o.transition(o.animatingState())
	}
	return o.state
}

// animatingState is where animation resumes: Animating, or ContextLost while
// the surface has not been restored yet.
func (o *Orchestrator) animatingState() RenderState {
	if o.lost {
		return ContextLost
	}
	return Animating
}

// Lost reports whether a context loss is waiting for its restore.
func (o *Orchestrator) Lost() bool { return o.lost }

// ContextLost records a loss and moves Animating to ContextLost. It reports
// whether the state changed. A loss in any other state is remembered until
// ContextRestored, so animation cannot resume on a lost surface.
func (o *Orchestrator) ContextLost() bool {
	o.lost = true
	if o.state != Animating {
		return false
	}
	o.log.Warn().Msg("graphics context lost")
	o.transition(ContextLost)
	return true
}

// ContextRestored clears a pending loss and moves ContextLost back to
// Animating.
func (o *Orchestrator) ContextRestored() bool {
	o.lost = false
	if o.state != ContextLost {
		return false
	}
	o.log.Info().Msg("graphics context restored")
	o.transition(Animating)
	return true
}

// ReducedMotionChanged applies a live preference change. Turning reduced
// motion on while animating (or while the context is lost) falls back to the
// static background; turning it off again resumes animation when graphics are
// supported, or waits in ContextLost when the surface is still lost.
func (o *Orchestrator) ReducedMotionChanged(on bool) bool {
	switch {
	case on && (o.state == Animating || o.state == ContextLost):
		o.transition(StaticFallback)
		return true
	case !on && o.state == StaticFallback && o.supported:
		o.transition(o.animatingState())
		return true
	}
	return false
}

func (o *Orchestrator) transition(to RenderState) {
	from := o.state
	if from == to {
		return
	}
	o.state = to
	o.log.Debug().Stringer("from", from).Stringer("to", to).Msg("render state")
	for _, ob := range append([]transitionObserver(nil), o.observers...) {
		ob.fn(from, to)
	}
}
