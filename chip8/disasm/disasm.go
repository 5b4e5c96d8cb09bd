package disasm

import (
	"fmt"

	"github.com/valerio/go-chip8/chip8/bit"
)

// InstructionSize is the width of every CHIP-8 instruction in bytes.
const InstructionSize = 2

// WordReader is the subset of memory the disassembler needs.
type WordReader interface {
	ReadWord(addr uint16) (uint16, error)
}

// DisassemblyLine represents a single disassembled instruction
type DisassemblyLine struct {
	Address     uint16
	Word        uint16
	Instruction string
	Length      int
}

// Disassemble returns the mnemonic for a single instruction word.
// Unassigned words are rendered as data.
func Disassemble(word uint16) string {
	x := bit.Nibble(word, 2)
	y := bit.Nibble(word, 1)
	n := bit.Nibble(word, 0)
	kk := bit.Low(word)
	nnn := word & 0x0FFF

	switch bit.Nibble(word, 3) {
	case 0x0:
		switch word {
		case 0x00E0:
			return "CLS"
		case 0x00EE:
			return "RET"
		}
		return fmt.Sprintf("SYS 0x%03X", nnn)
	case 0x1:
		return fmt.Sprintf("JP 0x%03X", nnn)
	case 0x2:
		return fmt.Sprintf("CALL 0x%03X", nnn)
	case 0x3:
		return fmt.Sprintf("SE V%X, 0x%02X", x, kk)
	case 0x4:
		return fmt.Sprintf("SNE V%X, 0x%02X", x, kk)
	case 0x5:
		if n == 0 {
			return fmt.Sprintf("SE V%X, V%X", x, y)
		}
	case 0x6:
		return fmt.Sprintf("LD V%X, 0x%02X", x, kk)
	case 0x7:
		return fmt.Sprintf("ADD V%X, 0x%02X", x, kk)
	case 0x8:
		if mnemonic, ok := aluMnemonics[n]; ok {
			return fmt.Sprintf("%s V%X, V%X", mnemonic, x, y)
		}
	case 0x9:
		if n == 0 {
			return fmt.Sprintf("SNE V%X, V%X", x, y)
		}
	case 0xA:
		return fmt.Sprintf("LD I, 0x%03X", nnn)
	case 0xB:
		return fmt.Sprintf("JP V0, 0x%03X", nnn)
	case 0xC:
		return fmt.Sprintf("RND V%X, 0x%02X", x, kk)
	case 0xD:
		return fmt.Sprintf("DRW V%X, V%X, %d", x, y, n)
	case 0xE:
		switch kk {
		case 0x9E:
			return fmt.Sprintf("SKP V%X", x)
		case 0xA1:
			return fmt.Sprintf("SKNP V%X", x)
		}
	case 0xF:
		if template, ok := miscTemplates[kk]; ok {
			return fmt.Sprintf(template, x)
		}
	}

	return fmt.Sprintf("DW 0x%04X", word)
}

var aluMnemonics = map[uint8]string{
	0x0: "LD",
	0x1: "OR",
	0x2: "AND",
	0x3: "XOR",
	0x4: "ADD",
	0x5: "SUB",
	0x6: "SHR",
	0x7: "SUBN",
	0xE: "SHL",
}

var miscTemplates = map[uint8]string{
	0x07: "LD V%X, DT",
	0x0A: "LD V%X, K",
	0x15: "LD DT, V%X",
	0x18: "LD ST, V%X",
	0x1E: "ADD I, V%X",
	0x29: "LD F, V%X",
	0x33: "LD B, V%X",
	0x55: "LD [I], V%X",
	0x65: "LD V%X, [I]",
}

// DisassembleBytes disassembles the instruction at offset in data and returns
// it with its length. A trailing odd byte is rendered as data.
func DisassembleBytes(data []byte, offset int) (string, int) {
	if offset < 0 || offset >= len(data) {
		return "??", 1
	}
	if offset+1 >= len(data) {
		return fmt.Sprintf("DB 0x%02X", data[offset]), 1
	}
	return Disassemble(bit.Combine(data[offset], data[offset+1])), InstructionSize
}

// DisassembleAt disassembles the instruction at the given program counter
func DisassembleAt(pc uint16, mem WordReader) DisassemblyLine {
	word, err := mem.ReadWord(pc)
	if err != nil {
		return DisassemblyLine{Address: pc, Instruction: "??", Length: InstructionSize}
	}
	return DisassemblyLine{
		Address:     pc,
		Word:        word,
		Instruction: Disassemble(word),
		Length:      InstructionSize,
	}
}

// DisassembleRange disassembles multiple instructions starting from the given PC
func DisassembleRange(startPC uint16, count int, mem WordReader) []DisassemblyLine {
	lines := make([]DisassemblyLine, 0, count)
	for pc := uint32(startPC); len(lines) < count && pc < 0x1000; pc += InstructionSize {
		lines = append(lines, DisassembleAt(uint16(pc), mem))
	}
	return lines
}

// DisassembleAround disassembles instructions around the given PC.
// Instructions are fixed width, so the window is aligned on currentPC.
func DisassembleAround(currentPC uint16, beforeCount, afterCount int, mem WordReader) []DisassemblyLine {
	before := beforeCount
	if maxBefore := int(currentPC) / InstructionSize; before > maxBefore {
		before = maxBefore
	}
	start := currentPC - uint16(before*InstructionSize)
	return DisassembleRange(start, before+1+afterCount, mem)
}

// FormatDisassemblyLine formats a disassembly line for display
func FormatDisassemblyLine(line DisassemblyLine, isCurrentPC bool) string {
	prefix := " "
	if isCurrentPC {
		prefix = "→"
	}

	return fmt.Sprintf("%s0x%03X: %04X  %s", prefix, line.Address, line.Word, line.Instruction)
}
