package action

import "fmt"

// Action represents input actions that can be performed in the emulator
type Action int

const (
	// CHIP-8 hex keypad, the value of each action is the key index
	Chip8Key0 Action = iota
	Chip8Key1
	Chip8Key2
	Chip8Key3
	Chip8Key4
	Chip8Key5
	Chip8Key6
	Chip8Key7
	Chip8Key8
	Chip8Key9
	Chip8KeyA
	Chip8KeyB
	Chip8KeyC
	Chip8KeyD
	Chip8KeyE
	Chip8KeyF

	// Emulator features
	EmulatorDebugToggle
	EmulatorSnapshot
	EmulatorPauseToggle
	EmulatorStepFrame
	EmulatorStepInstruction
	EmulatorReset
	EmulatorQuit

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease
)

// Category groups actions by who consumes them.
type Category int

const (
	CategoryKeypad Category = iota
	CategoryEmulator
	CategoryDebug
)

type Info struct {
	Name        string
	Category    Category
	Description string
}

var infos = map[Action]Info{
	EmulatorDebugToggle:     {"debug-toggle", CategoryEmulator, "Toggle the debug panels"},
	EmulatorSnapshot:        {"snapshot", CategoryEmulator, "Save a PNG of the current frame"},
	EmulatorPauseToggle:     {"pause", CategoryEmulator, "Pause or resume execution"},
	EmulatorStepFrame:       {"step-frame", CategoryEmulator, "Run one frame while paused"},
	EmulatorStepInstruction: {"step-instruction", CategoryEmulator, "Run one instruction while paused"},
	EmulatorReset:           {"reset", CategoryEmulator, "Reload the program and reset the machine"},
	EmulatorQuit:            {"quit", CategoryEmulator, "Exit the emulator"},
	DebugLogLevelIncrease:   {"log-more", CategoryDebug, "Lower the log level threshold"},
	DebugLogLevelDecrease:   {"log-less", CategoryDebug, "Raise the log level threshold"},
}

// FromKey returns the keypad action for a CHIP-8 key index.
func FromKey(key uint8) (Action, bool) {
	if key > 0xF {
		return 0, false
	}
	return Chip8Key0 + Action(key), true
}

// IsKeypad reports whether the action is one of the sixteen hex keys.
func (a Action) IsKeypad() bool {
	return a >= Chip8Key0 && a <= Chip8KeyF
}

// Key returns the keypad index of a keypad action.
func (a Action) Key() uint8 {
	return uint8(a - Chip8Key0)
}

func GetInfo(a Action) Info {
	if a.IsKeypad() {
		return Info{
			Name:        fmt.Sprintf("key-%X", a.Key()),
			Category:    CategoryKeypad,
			Description: fmt.Sprintf("CHIP-8 key %X", a.Key()),
		}
	}
	if info, ok := infos[a]; ok {
		return info
	}
	return Info{Name: fmt.Sprintf("action-%d", int(a)), Category: CategoryEmulator}
}

func (a Action) String() string {
	return GetInfo(a).Name
}
