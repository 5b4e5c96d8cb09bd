package sdl2

import (
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/memory"
)

// The memory map draws every byte of the address space as one pixel,
// 64 bytes per row.
const (
	MemoryMapWidth  = 64
	MemoryMapHeight = memory.Size / MemoryMapWidth
)

// Packed RGBA8888 highlight colors
const (
	pcColor     uint32 = 0xFF3030FF
	indexColor  uint32 = 0x30FF30FF
	recentColor uint32 = 0x3070FFFF
	fontColor   uint32 = 0x806020FF
)

// MemoryMapPixels renders data as a packed RGBA8888 image. Plain bytes are
// shaded by value, the font area is tinted, recently executed instructions
// are blue, I is green and the instruction at PC is red.
func MemoryMapPixels(data *debug.CompleteDebugData) []uint32 {
	pixels := make([]uint32, MemoryMapWidth*MemoryMapHeight)
	if data == nil {
		return pixels
	}

	for addr, value := range data.RAM {
		if addr >= len(pixels) {
			break
		}
		if addr < len(memory.Font) && value != 0 {
			pixels[addr] = fontColor
			continue
		}
		pixels[addr] = gray(value)
	}

	for _, step := range data.Recent {
		mark(pixels, step.PC, recentColor)
	}
	if data.CPU != nil {
		mark(pixels, data.CPU.I, indexColor)
		mark(pixels, data.CPU.PC, pcColor)
	}
	return pixels
}

// mark colors the two bytes of the instruction word at addr
func mark(pixels []uint32, addr uint16, color uint32) {
	for i := 0; i < 2; i++ {
		if idx := int(addr) + i; idx < len(pixels) {
			pixels[idx] = color
		}
	}
}

func gray(v byte) uint32 {
	// keep zero bytes visible against the window background
	level := uint32(v)/2 + 24
	return level<<24 | level<<16 | level<<8 | 0xFF
}
