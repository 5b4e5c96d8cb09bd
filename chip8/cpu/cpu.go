package cpu

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16
	// StackSize is the maximum call depth.
	StackSize = 16
	// FlagRegister is the index of VF, used for carry, borrow and collision.
	FlagRegister = 0xF
)

var (
	// ErrStackOverflow is returned by a call with every stack slot in use.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned by a return with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrUnknownOpcode is returned for unassigned words, only in strict mode.
	ErrUnknownOpcode = errors.New("unknown opcode")
)

// Display receives the frame buffer after clear and draw instructions.
type Display interface {
	Draw(frame *video.FrameBuffer)
}

// Keypad is polled by the key skip and wait-for-key instructions.
type Keypad interface {
	IsKeyPressed(key uint8) bool
	// PressedKey returns the lowest numbered pressed key, if any.
	PressedKey() (uint8, bool)
}

// Observer is notified after every successfully executed instruction.
// It must not modify the engine.
type Observer interface {
	OnStep(info StepInfo)
}

// MemoryReader gives read-only access to memory contents.
type MemoryReader interface {
	Slice(address uint16, length int) []byte
}

// State is a value copy of the register file.
type State struct {
	V     [RegisterCount]uint8
	I     uint16
	PC    uint16
	SP    uint8
	Stack [StackSize]uint16
	Delay uint8
	Sound uint8
}

// StepInfo describes the instruction that was just executed.
type StepInfo struct {
	PC       uint16      // address of the executed instruction
	Word     Instruction // executed instruction
	NextWord Instruction // instruction at the new PC, 0 if unreadable
	State    State
	Memory   MemoryReader
	Cycles   uint64
}

// CPU is the CHIP-8 interpreter engine. It owns registers, stack and timers
// and mutates the memory and frame buffer it is bound to.
type CPU struct {
	// registers
	v          [RegisterCount]uint8
	i          uint16
	pc         uint16
	sp         uint8
	stack      [StackSize]uint16
	delayTimer uint8
	soundTimer uint8

	// metadata
	currentOpcode Instruction
	cycles        uint64
	lastTimerTick time.Time
	strict        bool

	mem *memory.Memory
	fb  *video.FrameBuffer

	// optional collaborators
	display  Display
	keypad   Keypad
	observer Observer

	clock timing.Clock
	rng   *rand.Rand
}

// New returns an engine bound to mem and fb, reset to power-on state.
func New(mem *memory.Memory, fb *video.FrameBuffer) *CPU {
	c := &CPU{
		mem:   mem,
		fb:    fb,
		clock: timing.SystemClock{},
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	c.Reset()
	return c
}

func (c *CPU) AttachDisplay(d Display)   { c.display = d }
func (c *CPU) AttachKeypad(k Keypad)     { c.keypad = k }
func (c *CPU) AttachObserver(o Observer) { c.observer = o }
func (c *CPU) SetRandom(r *rand.Rand)    { c.rng = r }
func (c *CPU) SetStrict(strict bool)     { c.strict = strict }

// FrameBuffer returns the frame buffer the engine draws into.
func (c *CPU) FrameBuffer() *video.FrameBuffer { return c.fb }

// SetClock replaces the time source of the timers and restarts the tick phase.
func (c *CPU) SetClock(clock timing.Clock) {
	c.clock = clock
	c.ResyncTimers()
}

// ResyncTimers restarts the tick phase at the current time, dropping any
// backlog accumulated while the engine was not stepping.
func (c *CPU) ResyncTimers() {
	c.lastTimerTick = c.clock.Now()
}

// Reset reinitializes registers, stack, timers and frame buffer and rewrites
// the font. Program space is left as loaded.
func (c *CPU) Reset() {
	c.v = [RegisterCount]uint8{}
	c.i = 0
	c.pc = memory.ProgramStart
	c.sp = 0
	c.stack = [StackSize]uint16{}
	c.delayTimer = 0
	c.soundTimer = 0
	c.currentOpcode = 0
	c.cycles = 0
	c.mem.RestoreFont()
	c.fb.Clear()
	c.ResyncTimers()
}

// LoadProgram rebuilds memory from the font base plus program and resets the engine.
// On error the engine and memory are left untouched.
func (c *CPU) LoadProgram(program []byte) error {
	if err := c.mem.Load(program); err != nil {
		return err
	}
	c.Reset()
	return nil
}

// Step executes a single fetch-decode-execute cycle, evaluating the timers first.
// On error PC still points at the faulting instruction.
func (c *CPU) Step() error {
	c.tickTimers()

	pc := c.pc
	instruction, err := Decode(c)
	if err != nil {
		return fmt.Errorf("fetch at 0x%03X: %w", pc, err)
	}

	if err := instruction(c, c.currentOpcode); err != nil {
		return fmt.Errorf("execute %s at 0x%03X: %w", c.currentOpcode, pc, err)
	}
	c.cycles++

	if c.observer != nil {
		c.observer.OnStep(c.stepInfo(pc))
	}
	return nil
}

func (c *CPU) stepInfo(pc uint16) StepInfo {
	next, err := c.mem.ReadWord(c.pc)
	if err != nil {
		next = 0
	}
	return StepInfo{
		PC:       pc,
		Word:     c.currentOpcode,
		NextWord: Instruction(next),
		State:    c.State(),
		Memory:   c.mem,
		Cycles:   c.cycles,
	}
}

// State returns a copy of the register file.
func (c *CPU) State() State {
	return State{
		V:     c.v,
		I:     c.i,
		PC:    c.pc,
		SP:    c.sp,
		Stack: c.stack,
		Delay: c.delayTimer,
		Sound: c.soundTimer,
	}
}

// Debug getters
func (c *CPU) GetPC() uint16              { return c.pc }
func (c *CPU) GetI() uint16               { return c.i }
func (c *CPU) GetV(x uint8) uint8         { return c.v[x&0xF] }
func (c *CPU) GetSP() uint8               { return c.sp }
func (c *CPU) GetDelayTimer() uint8       { return c.delayTimer }
func (c *CPU) GetSoundTimer() uint8       { return c.soundTimer }
func (c *CPU) GetCycles() uint64          { return c.cycles }
func (c *CPU) CurrentOpcode() Instruction { return c.currentOpcode }
