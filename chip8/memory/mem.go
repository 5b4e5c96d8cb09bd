package memory

import (
	"errors"
	"fmt"
)

// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: built-in font (16 glyphs, 5 bytes each)
//	0x050-0x1FF: unused interpreter area
//	0x200-0xFFF: program space
const (
	Size         = 0x1000
	MaxAddress   = 0xFFF
	ProgramStart = 0x200

	// MaxProgramSize is the largest ROM that fits between ProgramStart and MaxAddress.
	MaxProgramSize = Size - ProgramStart
)

var (
	// ErrROMTooLarge is returned when a program does not fit in program space.
	ErrROMTooLarge = errors.New("rom too large")
	// ErrAddressOutOfRange is returned for any access past MaxAddress.
	ErrAddressOutOfRange = errors.New("address out of range")
)

// Memory is the flat 4KB address space of the machine.
// It is allocated once and never resized.
type Memory struct {
	data [Size]byte
}

// New returns a memory image holding only the font set.
func New() *Memory {
	m := &Memory{}
	m.Clear()
	return m
}

// Clear wipes memory and rewrites the font set at address 0.
func (m *Memory) Clear() {
	m.data = [Size]byte{}
	m.RestoreFont()
}

// RestoreFont rewrites the font set, undoing any program writes below 0x050.
func (m *Memory) RestoreFont() {
	copy(m.data[FontStart:], Font[:])
}

// Load rebuilds memory from the font base and copies the program at ProgramStart.
// An oversized program is rejected and leaves memory untouched.
func (m *Memory) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, max %d", ErrROMTooLarge, len(program), MaxProgramSize)
	}

	m.Clear()
	copy(m.data[ProgramStart:], program)
	return nil
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (byte, error) {
	if address > MaxAddress {
		return 0, fmt.Errorf("%w: read at 0x%04X", ErrAddressOutOfRange, address)
	}
	return m.data[address], nil
}

// ReadWord reads a big-endian 16 bit word at address and address+1.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	if address >= MaxAddress {
		return 0, fmt.Errorf("%w: word read at 0x%04X", ErrAddressOutOfRange, address)
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// Write stores value at the given address.
func (m *Memory) Write(address uint16, value byte) error {
	if address > MaxAddress {
		return fmt.Errorf("%w: write at 0x%04X", ErrAddressOutOfRange, address)
	}
	m.data[address] = value
	return nil
}

// Slice returns a copy of length bytes starting at address, truncated at the
// end of memory. Used by debuggers, never by the interpreter.
func (m *Memory) Slice(address uint16, length int) []byte {
	if int(address) >= Size || length <= 0 {
		return nil
	}
	end := int(address) + length
	if end > Size {
		end = Size
	}
	out := make([]byte, end-int(address))
	copy(out, m.data[address:end])
	return out
}
