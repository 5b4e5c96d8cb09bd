package cpu

import (
	"fmt"

	"github.com/valerio/go-chip8/chip8/bit"
)

// Instruction is a raw 16 bit CHIP-8 instruction word.
//
//	op  = bits 15-12   x  = bits 11-8   y = bits 7-4
//	n   = bits 3-0     kk = bits 7-0    nnn = bits 11-0
type Instruction uint16

// Op returns the top nibble, selecting the instruction family.
func (i Instruction) Op() uint8 { return bit.Nibble(uint16(i), 3) }

// X returns the first register operand.
func (i Instruction) X() uint8 { return bit.Nibble(uint16(i), 2) }

// Y returns the second register operand.
func (i Instruction) Y() uint8 { return bit.Nibble(uint16(i), 1) }

// N returns the low nibble immediate.
func (i Instruction) N() uint8 { return bit.Nibble(uint16(i), 0) }

// KK returns the low byte immediate.
func (i Instruction) KK() uint8 { return bit.Low(uint16(i)) }

// NNN returns the 12 bit address immediate.
func (i Instruction) NNN() uint16 { return uint16(i) & 0x0FFF }

func (i Instruction) String() string {
	return fmt.Sprintf("%04X", uint16(i))
}

// Opcode executes one instruction family. Handlers own the PC advance.
type Opcode func(*CPU, Instruction) error

// Decode fetches the word at PC and returns the handler for its family.
// The word is stored as the current opcode; PC is left untouched.
func Decode(c *CPU) (Opcode, error) {
	word, err := c.mem.ReadWord(c.pc)
	if err != nil {
		return nil, err
	}

	c.currentOpcode = Instruction(word)
	return opcodes[c.currentOpcode.Op()], nil
}

var opcodes = [16]Opcode{
	opcode0x0, opcode0x1, opcode0x2, opcode0x3,
	opcode0x4, opcode0x5, opcode0x6, opcode0x7,
	opcode0x8, opcode0x9, opcode0xA, opcode0xB,
	opcode0xC, opcode0xD, opcode0xE, opcode0xF,
}
