package input

import (
	"log/slog"

	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

// Manager routes input actions: keypad actions update the keypad directly,
// everything else runs the callbacks registered with On.
type Manager struct {
	handlers map[action.Action]map[event.Type][]func()
	keypad   *Keypad
}

func NewManager(k *Keypad) *Manager {
	return &Manager{
		handlers: make(map[action.Action]map[event.Type][]func()),
		keypad:   k,
	}
}

// Keypad returns the keypad the manager writes to.
func (m *Manager) Keypad() *Keypad {
	return m.keypad
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type. Debouncing is the
// caller's concern, see Handler.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if act.IsKeypad() {
		if m.keypad == nil {
			return
		}
		switch evt {
		case event.Press, event.Hold:
			m.keypad.Press(act.Key())
		case event.Release:
			m.keypad.Release(act.Key())
		}
		return
	}

	callbacks := m.handlers[act][evt]
	if len(callbacks) == 0 {
		slog.Debug("Unhandled input action", "action", act, "event", evt)
		return
	}
	for _, callback := range callbacks {
		callback()
	}
}
