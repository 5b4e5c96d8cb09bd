package debug

import (
	"sync"

	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/disasm"
)

// DefaultRecorderSize is the number of steps kept by NewRecorder(0).
const DefaultRecorderSize = 64

// StepRecord is the retained part of a step notification. The memory view is
// not kept since it would alias live memory.
type StepRecord struct {
	PC          uint16
	Word        uint16
	Instruction string
	State       cpu.State
	Cycles      uint64
}

// Recorder keeps the most recent steps in a ring buffer. The emulator loop
// writes it while a backend may read it, so it is synchronized.
type Recorder struct {
	mu      sync.Mutex
	records []StepRecord
	next    int
	full    bool
}

func NewRecorder(size int) *Recorder {
	if size <= 0 {
		size = DefaultRecorderSize
	}
	return &Recorder{records: make([]StepRecord, size)}
}

func (r *Recorder) OnStep(info cpu.StepInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[r.next] = StepRecord{
		PC:          info.PC,
		Word:        uint16(info.Word),
		Instruction: disasm.Disassemble(uint16(info.Word)),
		State:       info.State,
		Cycles:      info.Cycles,
	}
	r.next = (r.next + 1) % len(r.records)
	if r.next == 0 {
		r.full = true
	}
}

// Steps returns the recorded steps, oldest first.
func (r *Recorder) Steps() []StepRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		return append([]StepRecord(nil), r.records[:r.next]...)
	}
	out := make([]StepRecord, 0, len(r.records))
	out = append(out, r.records[r.next:]...)
	return append(out, r.records[:r.next]...)
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.full {
		return len(r.records)
	}
	return r.next
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next = 0
	r.full = false
}
