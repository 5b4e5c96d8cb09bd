package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerInterval(t *testing.T) {
	// 1000/60.3 ms
	assert.InDelta(t, 16.5837, float64(TimerInterval)/float64(time.Millisecond), 0.001)
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManualClock(start)

	assert.Equal(t, start, c.Now())
	c.Advance(TimerInterval)
	assert.Equal(t, start.Add(TimerInterval), c.Now())
}

func TestNewLimiter(t *testing.T) {
	assert.IsType(t, &noOpLimiter{}, NewLimiter("none"))
	assert.IsType(t, &AdaptiveLimiter{}, NewLimiter("adaptive"))
	assert.IsType(t, &AdaptiveLimiter{}, NewLimiter("bogus"))

	ticker := NewLimiter("ticker").(*TickerLimiter)
	defer ticker.Stop()
	assert.Equal(t, FrameDuration(), ticker.frameTime)
}

func TestAdaptiveLimiter_Paces(t *testing.T) {
	l := NewAdaptiveLimiterWithDuration(5 * time.Millisecond)
	start := time.Now()
	for i := 0; i < 4; i++ {
		l.WaitForNextFrame()
	}
	// first frame is immediate, the next three wait one period each
	assert.GreaterOrEqual(t, time.Since(start), 14*time.Millisecond)
}
