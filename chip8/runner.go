package chip8

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/event"
)

// Run starts the machine and drives it against b until a quit action
// arrives. The backend must already be initialized; cleaning it up is left
// to the caller. A fault halts the engine but not the loop, so the machine
// can still be reset; the fault is returned if it was never cleared.
func (e *Emulator) Run(b backend.Backend) error {
	handler := input.NewHandler()
	actions, _ := b.(backend.ActionHandler)

	e.quit = false
	e.Start()
	slog.Info("Emulation started", "rom", e.ROMName(), "cycles_per_frame", e.config.CyclesPerFrame)

	for !e.quit {
		if err := e.RunFrame(); err != nil {
			// the engine is stopped and the fault kept in e.err; keep
			// servicing the backend so reset and quit still arrive
			slog.Debug("Frame aborted", "frame", e.frameCount, "error", err)
		}

		events, err := b.Update(e.fb)
		if err != nil {
			return fmt.Errorf("backend update failed: %w", err)
		}

		for _, evt := range events {
			if !handler.ProcessEvent(evt) {
				continue
			}
			e.HandleAction(evt.Action, evt.Type)
			if actions != nil && !evt.Action.IsKeypad() && evt.Type == event.Press {
				actions.HandleAction(evt.Action)
			}
		}

		e.limiter.WaitForNextFrame()
	}

	slog.Info("Emulation finished", "frames", e.frameCount, "cycles", e.cpu.GetCycles())
	return e.err
}
