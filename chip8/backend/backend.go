package backend

import (
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// Backend represents a complete emulator platform (rendering + input)
// Backends are responsible for:
// - Rendering frames to their specific output (terminal, window, files)
// - Translating platform-specific input events to InputEvents
// - Handling backend-specific features (snapshots, debug panels, log level)
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Update.
	Init(config BackendConfig) error

	// Update renders the provided frame and returns the input events
	// collected since the previous call.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// ActionHandler is implemented by backends that react to emulator actions
// themselves, e.g. toggling a debug panel or saving a snapshot.
type ActionHandler interface {
	HandleAction(act action.Action)
}

// MainThreadRunner is implemented by backends whose event loop must own the
// main goroutine. The emulator then runs on another goroutine and Run blocks
// until the backend is cleaned up.
type MainThreadRunner interface {
	Run() error
}

// InputEvent is a single action reported by a backend
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// DebugDataProvider exposes emulator state to debug displays
type DebugDataProvider interface {
	ExtractDebugData() *debug.CompleteDebugData
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title         string
	ROMName       string // used for snapshot file names
	Scale         int
	ShowDebug     bool              // Backends may ignore unsupported features
	Callbacks     BackendCallbacks  // Callbacks for backend communication
	DebugProvider DebugDataProvider // Optional source for debug panels
}

// BackendCallbacks allows backends to communicate with the emulator
type BackendCallbacks struct {
	// Control callbacks
	OnQuit func() // Backend requests shutdown (e.g., window close)
}
