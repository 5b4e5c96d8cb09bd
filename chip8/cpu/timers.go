package cpu

import "github.com/valerio/go-chip8/chip8/timing"

// tickTimers decrements the delay and sound timers once if more than one
// timer interval has elapsed since the last tick. The tick timestamp moves by
// exactly one interval, so a backlog is drained one tick per step instead of
// being rounded away.
func (c *CPU) tickTimers() {
	if c.clock.Now().Sub(c.lastTimerTick) <= timing.TimerInterval {
		return
	}
	c.lastTimerTick = c.lastTimerTick.Add(timing.TimerInterval)

	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
	}
}
