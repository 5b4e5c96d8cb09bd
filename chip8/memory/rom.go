package memory

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ROM is a raw CHIP-8 program image, loaded verbatim at ProgramStart.
type ROM struct {
	data []byte
	name string
}

// NewROM wraps a copy of data. It fails when the program would not fit in memory.
func NewROM(name string, data []byte) (*ROM, error) {
	if len(data) > MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrROMTooLarge, len(data), MaxProgramSize)
	}

	rom := &ROM{
		data: make([]byte, len(data)),
		name: name,
	}
	copy(rom.data, data)
	return rom, nil
}

// NewROMFromFile reads a ROM from disk. The ROM name is the file name without extension.
func NewROMFromFile(path string) (*ROM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rom %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rom, err := NewROM(name, data)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded ROM", "name", name, "bytes", len(data))
	return rom, nil
}

// Bytes returns the program bytes. The slice must not be modified.
func (r *ROM) Bytes() []byte {
	return r.data
}

// Name returns the ROM name.
func (r *ROM) Name() string {
	return r.name
}

// Size returns the program size in bytes.
func (r *ROM) Size() int {
	return len(r.data)
}
