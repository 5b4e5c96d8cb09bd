package debug

// MemoryReader provides read-only access to emulator memory for debug tools
// This interface decouples debug tools from the specific memory implementation
type MemoryReader interface {
	// Slice returns a copy of up to length bytes starting at addr
	Slice(addr uint16, length int) []byte
}

// ExtractMemorySnapshot copies the region around pc, before bytes behind it and
// after bytes past it, clamped to the address space. The start address keeps
// the parity of pc so instructions stay aligned.
func ExtractMemorySnapshot(reader MemoryReader, pc uint16, before, after int) *MemorySnapshot {
	start := int(pc) - before
	if start < 0 {
		start = int(pc) % 2
	}
	if (int(pc)-start)%2 != 0 {
		start++
	}

	bytes := reader.Slice(uint16(start), int(pc)-start+after)
	return &MemorySnapshot{
		StartAddr: uint16(start),
		Bytes:     bytes,
	}
}
