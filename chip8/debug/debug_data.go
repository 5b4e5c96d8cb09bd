package debug

import "github.com/valerio/go-chip8/chip8/cpu"

// CPUState contains all CPU register information for debugging
type CPUState struct {
	V     [cpu.RegisterCount]uint8
	I     uint16
	PC    uint16
	SP    uint8
	Stack [cpu.StackSize]uint16

	DelayTimer uint8
	SoundTimer uint8
	Opcode     uint16
	Cycles     uint64
}

// NewCPUState copies the register file of the engine.
func NewCPUState(c *cpu.CPU) *CPUState {
	s := c.State()
	return &CPUState{
		V:          s.V,
		I:          s.I,
		PC:         s.PC,
		SP:         s.SP,
		Stack:      s.Stack,
		DelayTimer: s.Delay,
		SoundTimer: s.Sound,
		Opcode:     uint16(c.CurrentOpcode()),
		Cycles:     c.GetCycles(),
	}
}

// MemorySnapshot contains a snapshot of memory for disassembly
type MemorySnapshot struct {
	StartAddr uint16
	Bytes     []uint8
}

// DebuggerState represents the current debugger state
type DebuggerState int

const (
	DebuggerRunning DebuggerState = iota
	DebuggerPaused
	DebuggerStepInstruction
	DebuggerStepFrame
)

func (s DebuggerState) String() string {
	switch s {
	case DebuggerRunning:
		return "running"
	case DebuggerPaused:
		return "paused"
	case DebuggerStepInstruction:
		return "step-instruction"
	case DebuggerStepFrame:
		return "step-frame"
	default:
		return "unknown"
	}
}

// CompleteDebugData contains all debug information needed by debug displays
type CompleteDebugData struct {
	CPU           *CPUState
	Memory        *MemorySnapshot
	DebuggerState DebuggerState
	RAM           []byte // full address space copy, nil when not captured
	Keys          [16]bool
	Recent        []StepRecord // oldest first, empty without a recorder
	ROMName       string
}
