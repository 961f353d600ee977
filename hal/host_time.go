package hal

import "time"

// wallClock reads the monotonic wall clock.
type wallClock struct {
	start time.Time
}

func newWallClock() *wallClock { return &wallClock{start: time.Now()} }

func (c *wallClock) Elapsed() time.Duration { return time.Since(c.start) }

// stepClock advances by a fixed amount per step so headless runs are
// reproducible regardless of scheduling jitter.
type stepClock struct {
	dt  time.Duration
	seq uint64
}

func newStepClock(hz int) *stepClock {
	if hz <= 0 {
		hz = 60
	}
	return &stepClock{dt: time.Second / time.Duration(hz)}
}

func (c *stepClock) Elapsed() time.Duration { return time.Duration(c.seq) * c.dt }

func (c *stepClock) step() { c.seq++ }
