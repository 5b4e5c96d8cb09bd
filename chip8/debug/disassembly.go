package debug

import (
	"github.com/valerio/go-chip8/chip8/disasm"
)

// pcOutsideSnapshot marks the last panel line when PC is not covered by the snapshot.
const pcOutsideSnapshot = "[PC outside snapshot range]"

type DisasmLine struct {
	Address     uint16
	Instruction string
	IsCurrent   bool
}

// DisasmBuffer is reused across frames so the terminal panel does not
// allocate on every redraw.
type DisasmBuffer struct {
	Lines    []DisasmLine
	AllLines []DisasmLine
}

func NewDisasmBuffer(maxLines int) *DisasmBuffer {
	return &DisasmBuffer{
		Lines:    make([]DisasmLine, 0, maxLines),
		AllLines: make([]DisasmLine, 0, maxLines*3),
	}
}

func CreateDisassembly(snapshot *MemorySnapshot, pc uint16, maxLines int) []DisasmLine {
	return CreateDisassemblyWithBuffer(snapshot, pc, maxLines, NewDisasmBuffer(maxLines))
}

// CreateDisassemblyWithBuffer returns at most maxLines lines of the snapshot,
// centered on pc when pc lies inside it.
func CreateDisassemblyWithBuffer(snapshot *MemorySnapshot, pc uint16, maxLines int, buf *DisasmBuffer) []DisasmLine {
	if snapshot == nil || maxLines <= 0 {
		return nil
	}

	current := decodeSnapshot(snapshot, pc, buf)
	buf.Lines = buf.Lines[:0]

	if current < 0 {
		head := buf.AllLines
		if len(head) > maxLines-1 {
			head = head[:maxLines-1]
		}
		buf.Lines = append(buf.Lines, head...)
		buf.Lines = append(buf.Lines, DisasmLine{Address: pc, Instruction: pcOutsideSnapshot, IsCurrent: true})
		return buf.Lines
	}

	first := clamp(current-maxLines/2, 0, len(buf.AllLines)-maxLines)
	last := min(first+maxLines, len(buf.AllLines))
	buf.Lines = append(buf.Lines, buf.AllLines[first:last]...)
	return buf.Lines
}

// decodeSnapshot fills buf.AllLines and returns the index of the line at pc, -1 if none.
func decodeSnapshot(snapshot *MemorySnapshot, pc uint16, buf *DisasmBuffer) int {
	buf.AllLines = buf.AllLines[:0]
	current := -1
	for offset := 0; offset < len(snapshot.Bytes); {
		addr := snapshot.StartAddr + uint16(offset)
		text, length := disasm.DisassembleBytes(snapshot.Bytes, offset)
		if addr == pc {
			current = len(buf.AllLines)
		}
		buf.AllLines = append(buf.AllLines, DisasmLine{Address: addr, Instruction: text, IsCurrent: addr == pc})
		offset += length
	}
	return current
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
