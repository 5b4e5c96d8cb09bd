package timing

import "time"

// TickerLimiter uses time.Ticker for simple, consistent frame timing.
// Less accurate than AdaptiveLimiter but cheaper on CPU.
type TickerLimiter struct {
	ticker    *time.Ticker
	frameTime time.Duration
}

func NewTickerLimiter() *TickerLimiter {
	return &TickerLimiter{
		ticker:    time.NewTicker(FrameDuration()),
		frameTime: FrameDuration(),
	}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ticker.C
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.frameTime)
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}

// NewLimiter returns the limiter registered under name: "adaptive", "ticker"
// or "none". Unknown names fall back to adaptive.
func NewLimiter(name string) Limiter {
	switch name {
	case "ticker":
		return NewTickerLimiter()
	case "none":
		return NewNoOpLimiter()
	default:
		return NewAdaptiveLimiter()
	}
}
