package timing

import "time"

// Limiter controls frame rate timing for emulation.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// Constants for CHIP-8 timing
const (
	// TargetFPS is the display refresh rate the run loop is driven at.
	TargetFPS = 60

	// StepsPerFrame is the default number of instructions executed per frame.
	StepsPerFrame = 8
)

// TimerInterval is the period of the delay and sound timers, 1000/60.3 ms.
const TimerInterval = time.Second * 10 / 603

// FrameDuration returns the target duration of a single frame.
func FrameDuration() time.Duration {
	return time.Second / TargetFPS
}
