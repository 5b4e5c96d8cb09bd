package cpu

import (
	"fmt"

	"github.com/valerio/go-chip8/chip8/memory"
)

const instructionSize = 2

// advance moves PC to the next instruction.
func (c *CPU) advance() {
	c.pc += instructionSize
}

// skipIf advances past the next instruction when condition holds, otherwise
// just to the next one.
func (c *CPU) skipIf(condition bool) {
	if condition {
		c.pc += instructionSize
	}
	c.advance()
}

// pushStack stores a return address. Nesting deeper than StackSize is an error
// and leaves the stack untouched.
func (c *CPU) pushStack(address uint16) error {
	if int(c.sp) >= StackSize {
		return ErrStackOverflow
	}
	c.stack[c.sp] = address
	c.sp++
	return nil
}

func (c *CPU) popStack() (uint16, error) {
	if c.sp == 0 {
		return 0, ErrStackUnderflow
	}
	c.sp--
	return c.stack[c.sp], nil
}

func (c *CPU) setFlag(condition bool) {
	if condition {
		c.v[FlagRegister] = 1
		return
	}
	c.v[FlagRegister] = 0
}

// unknown handles an unassigned word: an error in strict mode, a no-op that
// still advances PC otherwise.
func (c *CPU) unknown(instruction Instruction) error {
	if c.strict {
		return fmt.Errorf("%w: %s", ErrUnknownOpcode, instruction)
	}
	c.advance()
	return nil
}

// checkRange verifies that length bytes starting at start are addressable,
// so that multi-byte memory instructions fail before mutating anything.
func checkRange(start uint16, length int) error {
	if length <= 0 {
		return nil
	}
	end := uint32(start) + uint32(length) - 1
	if end > memory.MaxAddress {
		return fmt.Errorf("%w: 0x%04X-0x%04X", memory.ErrAddressOutOfRange, start, end)
	}
	return nil
}

func (c *CPU) drawFrame() {
	if c.display != nil {
		c.display.Draw(c.fb)
	}
}

// isKeyPressed treats every key as released when no keypad is attached.
func (c *CPU) isKeyPressed(key uint8) bool {
	if c.keypad == nil {
		return false
	}
	return c.keypad.IsKeyPressed(key)
}

func (c *CPU) pressedKey() (uint8, bool) {
	if c.keypad == nil {
		return 0, false
	}
	return c.keypad.PressedKey()
}

// bcd splits value into hundreds, tens and units.
func bcd(value uint8) [3]uint8 {
	return [3]uint8{value / 100, (value / 10) % 10, value % 10}
}
