package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

func TestManager_KeypadRouting(t *testing.T) {
	keypad := NewKeypad()
	m := NewManager(keypad)

	m.Trigger(action.Chip8KeyB, event.Press)
	assert.True(t, keypad.IsKeyPressed(0xB))

	m.Trigger(action.Chip8KeyB, event.Release)
	assert.False(t, keypad.IsKeyPressed(0xB))

	m.Trigger(action.Chip8Key3, event.Hold)
	assert.True(t, keypad.IsKeyPressed(0x3))
}

func TestManager_Callbacks(t *testing.T) {
	m := NewManager(NewKeypad())

	pauses, releases := 0, 0
	m.On(action.EmulatorPauseToggle, event.Press, func() { pauses++ })
	m.On(action.EmulatorPauseToggle, event.Release, func() { releases++ })

	m.Trigger(action.EmulatorPauseToggle, event.Press)
	m.Trigger(action.EmulatorPauseToggle, event.Press)
	m.Trigger(action.EmulatorPauseToggle, event.Release)
	m.Trigger(action.EmulatorQuit, event.Press)

	assert.Equal(t, 2, pauses)
	assert.Equal(t, 1, releases)
}

func TestManager_NilKeypad(t *testing.T) {
	m := NewManager(nil)
	assert.NotPanics(t, func() { m.Trigger(action.Chip8Key1, event.Press) })
}
