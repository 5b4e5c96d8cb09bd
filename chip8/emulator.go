package chip8

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// debug panels show this much memory around PC
const (
	snapshotBefore = 16
	snapshotAfter  = 32
)

// Config holds the emulator settings, usually populated from CLI flags.
type Config struct {
	// CyclesPerFrame is the number of instructions executed per frame.
	CyclesPerFrame int
	// Strict makes unknown opcodes fail instead of being skipped.
	Strict bool
	// Seed for the random source of RND. Zero seeds from the current time.
	Seed int64
	// Trace logs every executed instruction at debug level.
	Trace bool
	// Limiter names the frame limiter: "adaptive", "ticker" or "none".
	Limiter string
	// RecorderSize is the number of recent steps kept for debug panels.
	RecorderSize int
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() Config {
	return Config{
		CyclesPerFrame: timing.StepsPerFrame,
		Limiter:        "adaptive",
		RecorderSize:   debug.DefaultRecorderSize,
	}
}

// Emulator drives the interpreter: it owns the engine and its collaborators,
// runs it frame by frame and reacts to input actions.
type Emulator struct {
	config Config

	cpu      *cpu.CPU
	mem      *memory.Memory
	fb       *video.FrameBuffer
	keypad   *input.Keypad
	inputs   *input.Manager
	recorder *debug.Recorder
	limiter  timing.Limiter
	rom      *memory.ROM
	program  []byte

	running       bool
	quit          bool
	debuggerState debug.DebuggerState
	frameCount    uint64
	err           error
}

// New creates an emulator with nothing loaded. Zero values in config fall
// back to DefaultConfig.
func New(config Config) *Emulator {
	defaults := DefaultConfig()
	if config.CyclesPerFrame <= 0 {
		config.CyclesPerFrame = defaults.CyclesPerFrame
	}
	if config.RecorderSize <= 0 {
		config.RecorderSize = defaults.RecorderSize
	}

	e := &Emulator{
		config:   config,
		mem:      memory.New(),
		fb:       video.NewFrameBuffer(),
		keypad:   input.NewKeypad(),
		recorder: debug.NewRecorder(config.RecorderSize),
		limiter:  timing.NewLimiter(config.Limiter),
	}
	e.inputs = input.NewManager(e.keypad)

	e.cpu = cpu.New(e.mem, e.fb)
	e.cpu.AttachKeypad(e.keypad)
	e.cpu.SetStrict(config.Strict)

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e.cpu.SetRandom(rand.New(rand.NewSource(seed)))

	if config.Trace {
		e.cpu.AttachObserver(debug.Observers{e.recorder, debug.NewTracer(nil)})
	} else {
		e.cpu.AttachObserver(e.recorder)
	}

	e.registerActions()
	return e
}

// NewWithFile creates an emulator and loads the ROM at path into it.
func NewWithFile(path string, config Config) (*Emulator, error) {
	rom, err := memory.NewROMFromFile(path)
	if err != nil {
		return nil, err
	}

	e := New(config)
	if err := e.LoadROM(rom); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Emulator) registerActions() {
	e.inputs.On(action.EmulatorPauseToggle, event.Press, e.TogglePause)
	e.inputs.On(action.EmulatorStepInstruction, event.Press, func() {
		e.requestStep(debug.DebuggerStepInstruction)
	})
	e.inputs.On(action.EmulatorStepFrame, event.Press, func() {
		e.requestStep(debug.DebuggerStepFrame)
	})
	e.inputs.On(action.EmulatorReset, event.Press, e.Reset)
	e.inputs.On(action.EmulatorQuit, event.Press, func() {
		slog.Info("Quit requested")
		e.quit = true
	})
}

// LoadROM loads rom, fully resetting the machine.
func (e *Emulator) LoadROM(rom *memory.ROM) error {
	if err := e.LoadProgram(rom.Bytes()); err != nil {
		return fmt.Errorf("loading %s: %w", rom.Name(), err)
	}
	e.rom = rom
	return nil
}

// LoadProgram replaces the program in memory and resets the machine. A
// rejected program leaves the previous one in place.
func (e *Emulator) LoadProgram(program []byte) error {
	if err := e.cpu.LoadProgram(program); err != nil {
		return err
	}
	e.program = append(e.program[:0], program...)
	e.rom = nil
	e.afterReset()
	return nil
}

// Start resumes execution. Timers restart from now, so time spent stopped
// is not charged to them.
func (e *Emulator) Start() {
	if e.running {
		return
	}
	e.running = true
	e.cpu.ResyncTimers()
	e.limiter.Reset()
	slog.Debug("Emulator started")
}

// Stop halts execution; state is kept and Start picks up where it left.
func (e *Emulator) Stop() {
	if !e.running {
		return
	}
	e.running = false
	slog.Debug("Emulator stopped")
}

// Reset stops the machine, reloads the last program so self-modified code
// and font writes are undone, and starts it again. A fault is cleared.
func (e *Emulator) Reset() {
	e.Stop()
	if err := e.cpu.LoadProgram(e.program); err != nil {
		slog.Error("Reloading program failed", "error", err)
		e.cpu.Reset()
	}
	e.afterReset()
	e.Start()
	slog.Info("Emulator reset")
}

func (e *Emulator) afterReset() {
	e.keypad.ReleaseAll()
	e.recorder.Reset()
	e.frameCount = 0
	e.err = nil
	e.debuggerState = debug.DebuggerRunning
}

// IsRunning reports whether the engine is executing instructions.
func (e *Emulator) IsRunning() bool {
	return e.running
}

// Err returns the fault that stopped the engine, if any.
func (e *Emulator) Err() error {
	return e.err
}

// Step executes a single instruction regardless of the debugger state.
func (e *Emulator) Step() error {
	if err := e.cpu.Step(); err != nil {
		e.fault(err)
		return err
	}
	return nil
}

func (e *Emulator) fault(err error) {
	e.err = err
	e.running = false
	slog.Error("Emulation stopped", "error", err, "pc", fmt.Sprintf("0x%03X", e.cpu.GetPC()))
}

// RunFrame advances the machine by one frame according to the debugger
// state: CyclesPerFrame instructions when running, one instruction or one
// frame for a pending step, nothing when paused or stopped.
func (e *Emulator) RunFrame() error {
	if !e.running {
		return nil
	}

	steps := 0
	switch e.debuggerState {
	case debug.DebuggerRunning:
		steps = e.config.CyclesPerFrame
	case debug.DebuggerStepInstruction:
		steps = 1
	case debug.DebuggerStepFrame:
		steps = e.config.CyclesPerFrame
	case debug.DebuggerPaused:
		return nil
	}

	if e.debuggerState != debug.DebuggerRunning {
		// timers stay frozen while paused, a debugger step only sees its own time
		e.cpu.ResyncTimers()
		e.debuggerState = debug.DebuggerPaused
	}

	for i := 0; i < steps; i++ {
		if err := e.Step(); err != nil {
			return err
		}
	}
	e.frameCount++
	return nil
}

// TogglePause switches between running and paused.
func (e *Emulator) TogglePause() {
	if e.debuggerState == debug.DebuggerRunning {
		e.debuggerState = debug.DebuggerPaused
		slog.Info("Paused")
		return
	}
	e.debuggerState = debug.DebuggerRunning
	e.cpu.ResyncTimers()
	e.limiter.Reset()
	slog.Info("Resumed")
}

// requestStep schedules a single step while paused; it is ignored while running.
func (e *Emulator) requestStep(state debug.DebuggerState) {
	if e.debuggerState == debug.DebuggerRunning {
		slog.Debug("Step ignored while running", "step", state)
		return
	}
	e.debuggerState = state
}

// DebuggerState returns the current pause/step state.
func (e *Emulator) DebuggerState() debug.DebuggerState {
	return e.debuggerState
}

// HandleAction applies an input action: keypad actions change the keypad,
// emulator actions run their registered callbacks.
func (e *Emulator) HandleAction(act action.Action, evt event.Type) {
	e.inputs.Trigger(act, evt)
}

// CurrentFrame returns the framebuffer the engine draws into.
func (e *Emulator) CurrentFrame() *video.FrameBuffer {
	return e.fb
}

// Keypad returns the keypad read by the engine.
func (e *Emulator) Keypad() *input.Keypad {
	return e.keypad
}

// FrameCount returns the number of frames executed since the last reset.
func (e *Emulator) FrameCount() uint64 {
	return e.frameCount
}

// ROMName returns the name of the loaded ROM, empty for raw programs.
func (e *Emulator) ROMName() string {
	if e.rom == nil {
		return ""
	}
	return e.rom.Name()
}

// ExtractDebugData copies the machine state for debug displays.
func (e *Emulator) ExtractDebugData() *debug.CompleteDebugData {
	if e.cpu == nil || e.mem == nil {
		return nil
	}

	pc := e.cpu.GetPC()
	return &debug.CompleteDebugData{
		CPU:           debug.NewCPUState(e.cpu),
		Memory:        debug.ExtractMemorySnapshot(e.mem, pc, snapshotBefore, snapshotAfter),
		DebuggerState: e.debuggerState,
		RAM:           e.mem.Slice(0, memory.Size),
		Keys:          e.keypad.State(),
		Recent:        e.recorder.Steps(),
		ROMName:       e.ROMName(),
	}
}
