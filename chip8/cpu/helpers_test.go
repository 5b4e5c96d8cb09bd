package cpu

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

type fakeKeypad struct {
	pressed [16]bool
}

func (k *fakeKeypad) IsKeyPressed(key uint8) bool {
	return key < 16 && k.pressed[key]
}

func (k *fakeKeypad) PressedKey() (uint8, bool) {
	for key, down := range k.pressed {
		if down {
			return uint8(key), true
		}
	}
	return 0, false
}

type fakeDisplay struct {
	draws int
	last  []bool
}

func (d *fakeDisplay) Draw(frame *video.FrameBuffer) {
	d.draws++
	d.last = frame.ToSlice()
}

type stepRecorder struct {
	steps []StepInfo
}

func (r *stepRecorder) OnStep(info StepInfo) {
	r.steps = append(r.steps, info)
}

// program encodes instruction words as a big-endian ROM image.
func program(words ...uint16) []byte {
	out := make([]byte, 0, len(words)*2)
	for _, w := range words {
		out = append(out, bit.High(w), bit.Low(w))
	}
	return out
}

// newTestCPU loads words at 0x200 into a fresh engine driven by a manual clock
// and a fixed random seed.
func newTestCPU(t *testing.T, words ...uint16) (*CPU, *timing.ManualClock) {
	t.Helper()

	c := New(memory.New(), video.NewFrameBuffer())
	clock := timing.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c.SetClock(clock)
	c.SetRandom(rand.New(rand.NewSource(1)))
	require.NoError(t, c.LoadProgram(program(words...)))
	return c, clock
}

func stepN(t *testing.T, c *CPU, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, c.Step(), "step %d", i)
	}
}
