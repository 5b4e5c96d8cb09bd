package debug

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/disasm"
)

// Tracer logs every executed instruction at debug level.
type Tracer struct {
	logger *slog.Logger
}

// NewTracer returns a tracer writing to logger. A nil logger follows
// slog.Default, which backends may replace after the tracer is attached.
func NewTracer(logger *slog.Logger) *Tracer {
	return &Tracer{logger: logger}
}

func (t *Tracer) OnStep(info cpu.StepInfo) {
	logger := t.logger
	if logger == nil {
		logger = slog.Default()
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	logger.Debug("step",
		"pc", fmt.Sprintf("0x%03X", info.PC),
		"op", info.Word.String(),
		"asm", disasm.Disassemble(uint16(info.Word)),
		"next", info.NextWord.String(),
		"i", fmt.Sprintf("0x%03X", info.State.I),
		"sp", info.State.SP,
		"v", fmt.Sprintf("% X", info.State.V[:]),
		"dt", info.State.Delay,
		"st", info.State.Sound,
		"cycle", info.Cycles)
}

// Observers fans a step notification out to several observers in order.
type Observers []cpu.Observer

func (o Observers) OnStep(info cpu.StepInfo) {
	for _, observer := range o {
		observer.OnStep(info)
	}
}
