package hero

import "time"

// Recorder receives frame and state telemetry.
type Recorder interface {
	ObserveFrame(d time.Duration)
	SetState(state string)
	ContextLost()
}

type nopRecorder struct{}

func (nopRecorder) ObserveFrame(time.Duration) {}
func (nopRecorder) SetState(string)            {}
func (nopRecorder) ContextLost()               {}
