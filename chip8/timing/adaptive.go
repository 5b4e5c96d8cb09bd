package timing

import (
	"log/slog"
	"time"
)

// spinThreshold is the remaining wait below which the limiter busy-waits
// instead of sleeping.
const spinThreshold = 2 * time.Millisecond

// AdaptiveLimiter paces frames against an absolute schedule so that late
// frames are made up for, and falls back to "now" when far behind.
type AdaptiveLimiter struct {
	frameTime     time.Duration
	nextFrameTime time.Time
	frameCounter  int64
	start         time.Time
}

// NewAdaptiveLimiter paces frames at FrameDuration.
func NewAdaptiveLimiter() *AdaptiveLimiter {
	return NewAdaptiveLimiterWithDuration(FrameDuration())
}

// NewAdaptiveLimiterWithDuration paces frames at the given duration.
func NewAdaptiveLimiterWithDuration(frameTime time.Duration) *AdaptiveLimiter {
	now := time.Now()
	return &AdaptiveLimiter{
		frameTime:     frameTime,
		nextFrameTime: now,
		start:         now,
	}
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := time.Now()
	wait := a.nextFrameTime.Sub(now)

	switch {
	case wait > spinThreshold:
		time.Sleep(wait - time.Millisecond)
		fallthrough
	case wait > 0:
		for time.Now().Before(a.nextFrameTime) {
		}
	case wait < -5*a.frameTime:
		// too far behind to catch up, drop the backlog
		slog.Debug("Frame limiter resync", "behind_ms", (-wait).Milliseconds())
		a.nextFrameTime = now
	}

	a.nextFrameTime = a.nextFrameTime.Add(a.frameTime)
	a.frameCounter++

	if a.frameCounter%(TargetFPS*10) == 0 {
		elapsed := time.Since(a.start)
		slog.Debug("Frame rate", "fps", float64(a.frameCounter)/elapsed.Seconds())
	}
}

func (a *AdaptiveLimiter) Reset() {
	a.nextFrameTime = time.Now()
	a.start = a.nextFrameTime
	a.frameCounter = 0
}
