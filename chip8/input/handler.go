package input

import (
	"time"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/timing"
)

const (
	// debounceDuration is the minimum time between debounced events
	debounceDuration = 300 * time.Millisecond
)

// Handler filters backend events, debouncing Press/Release of emulator actions.
// Keypad events always pass, games poll them every frame.
type Handler struct {
	lastActionTime map[action.Action]time.Time
	debounceDelay  time.Duration
	clock          timing.Clock
}

func NewHandler() *Handler {
	return NewHandlerWithClock(timing.SystemClock{})
}

func NewHandlerWithClock(clock timing.Clock) *Handler {
	return &Handler{
		lastActionTime: make(map[action.Action]time.Time),
		debounceDelay:  debounceDuration,
		clock:          clock,
	}
}

// ProcessEvent returns true if the event should be handled, false if it was debounced
func (h *Handler) ProcessEvent(evt backend.InputEvent) bool {
	if evt.Action.IsKeypad() {
		return true
	}

	if evt.Type == event.Press || evt.Type == event.Release {
		now := h.clock.Now()
		if lastTime, exists := h.lastActionTime[evt.Action]; exists {
			if now.Sub(lastTime) < h.debounceDelay {
				return false
			}
		}
		h.lastActionTime[evt.Action] = now
	}

	return true
}
