package cpu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/memory"
)

func TestCLS(t *testing.T) {
	c, _ := newTestCPU(t, 0x00E0)
	display := &fakeDisplay{}
	c.AttachDisplay(display)
	c.fb.TogglePixel(5, 5)

	stepN(t, c, 1)

	assert.Equal(t, 0, c.fb.LitPixels())
	assert.Equal(t, 1, display.draws)
	assert.Equal(t, uint16(0x202), c.pc)
}

func TestJump(t *testing.T) {
	c, _ := newTestCPU(t, 0x1ABC)
	stepN(t, c, 1)
	assert.Equal(t, uint16(0xABC), c.pc)
}

func TestCallReturn(t *testing.T) {
	c, _ := newTestCPU(t,
		0x2206, // 0x200: CALL 0x206
		0x6105, // 0x202: LD V1, 0x05
		0x1204, // 0x204: JP 0x204
		0x00EE, // 0x206: RET
	)

	stepN(t, c, 1)
	assert.Equal(t, uint16(0x206), c.pc)
	assert.Equal(t, uint8(1), c.sp)
	assert.Equal(t, uint16(0x200), c.stack[0])

	stepN(t, c, 1)
	assert.Equal(t, uint16(0x202), c.pc, "return lands after the call")
	assert.Equal(t, uint8(0), c.sp)

	stepN(t, c, 1)
	assert.Equal(t, uint8(5), c.v[1])
}

func TestNestedCalls(t *testing.T) {
	c, _ := newTestCPU(t,
		0x2204, // 0x200: CALL 0x204
		0x1202, // 0x202: JP 0x202
		0x2208, // 0x204: CALL 0x208
		0x00EE, // 0x206: RET
		0x00EE, // 0x208: RET
	)

	stepN(t, c, 2)
	assert.Equal(t, uint8(2), c.sp)
	stepN(t, c, 2)
	assert.Equal(t, uint8(0), c.sp)
	assert.Equal(t, uint16(0x202), c.pc)
}

func TestSkips(t *testing.T) {
	tests := []struct {
		desc   string
		instr  uint16
		v1, v2 uint8
		wantPC uint16
	}{
		{desc: "SE Vx, byte taken", instr: 0x3142, v1: 0x42, wantPC: 0x204},
		{desc: "SE Vx, byte not taken", instr: 0x3142, v1: 0x41, wantPC: 0x202},
		{desc: "SNE Vx, byte taken", instr: 0x4142, v1: 0x41, wantPC: 0x204},
		{desc: "SNE Vx, byte not taken", instr: 0x4142, v1: 0x42, wantPC: 0x202},
		{desc: "SE Vx, Vy taken", instr: 0x5120, v1: 7, v2: 7, wantPC: 0x204},
		{desc: "SE Vx, Vy not taken", instr: 0x5120, v1: 7, v2: 8, wantPC: 0x202},
		{desc: "SNE Vx, Vy taken", instr: 0x9120, v1: 7, v2: 8, wantPC: 0x204},
		{desc: "SNE Vx, Vy not taken", instr: 0x9120, v1: 7, v2: 7, wantPC: 0x202},
	}
	for _, tC := range tests {
		t.Run(tC.desc, func(t *testing.T) {
			c, _ := newTestCPU(t, tC.instr)
			c.v[1], c.v[2] = tC.v1, tC.v2

			stepN(t, c, 1)
			assert.Equal(t, tC.wantPC, c.pc)
		})
	}
}

func TestLoadAndAddImmediate(t *testing.T) {
	c, _ := newTestCPU(t, 0x63FF, 0x7302, 0x7300)
	c.v[FlagRegister] = 0x55

	stepN(t, c, 2)
	assert.Equal(t, uint8(0x01), c.v[3], "ADD wraps modulo 256")
	assert.Equal(t, uint8(0x55), c.v[FlagRegister], "ADD Vx, byte leaves VF alone")
}

func TestLogicOps(t *testing.T) {
	tests := []struct {
		desc  string
		instr Instruction
		want  uint8
	}{
		{desc: "LD", instr: 0x8120, want: 0x0F},
		{desc: "OR", instr: 0x8121, want: 0x3F},
		{desc: "AND", instr: 0x8122, want: 0x0C},
		{desc: "XOR", instr: 0x8123, want: 0x33},
	}
	for _, tC := range tests {
		t.Run(tC.desc, func(t *testing.T) {
			c, _ := newTestCPU(t)
			c.v[1], c.v[2] = 0x3C, 0x0F

			require.NoError(t, opcode0x8(c, tC.instr))
			assert.Equal(t, tC.want, c.v[1])
			assert.Equal(t, uint8(0x0F), c.v[2])
			assert.Equal(t, uint16(0x202), c.pc)
		})
	}
}

func TestADD_CarryForAllOperands(t *testing.T) {
	c, _ := newTestCPU(t)
	for vx := 0; vx < 256; vx++ {
		for vy := 0; vy < 256; vy++ {
			c.v[1], c.v[2] = uint8(vx), uint8(vy)
			require.NoError(t, opcode0x8(c, 0x8124))

			wantFlag := uint8(0)
			if vx+vy > 255 {
				wantFlag = 1
			}
			if c.v[1] != uint8((vx+vy)%256) || c.v[FlagRegister] != wantFlag {
				t.Fatalf("ADD %d + %d = %d VF=%d; want %d VF=%d", vx, vy, c.v[1], c.v[FlagRegister], (vx+vy)%256, wantFlag)
			}
		}
	}
}

func TestSUB_BorrowForAllOperands(t *testing.T) {
	c, _ := newTestCPU(t)
	for vx := 0; vx < 256; vx++ {
		for vy := 0; vy < 256; vy++ {
			c.v[1], c.v[2] = uint8(vx), uint8(vy)
			require.NoError(t, opcode0x8(c, 0x8125))

			wantFlag := uint8(0)
			if vx > vy {
				wantFlag = 1
			}
			if c.v[1] != uint8(vx-vy) || c.v[FlagRegister] != wantFlag {
				t.Fatalf("SUB %d - %d = %d VF=%d; want %d VF=%d", vx, vy, c.v[1], c.v[FlagRegister], uint8(vx-vy), wantFlag)
			}
		}
	}
}

func TestSUBN_BorrowForAllOperands(t *testing.T) {
	c, _ := newTestCPU(t)
	for vx := 0; vx < 256; vx++ {
		for vy := 0; vy < 256; vy++ {
			c.v[1], c.v[2] = uint8(vx), uint8(vy)
			require.NoError(t, opcode0x8(c, 0x8127))

			wantFlag := uint8(0)
			if vy > vx {
				wantFlag = 1
			}
			if c.v[1] != uint8(vy-vx) || c.v[FlagRegister] != wantFlag {
				t.Fatalf("SUBN %d - %d = %d VF=%d; want %d VF=%d", vy, vx, c.v[1], c.v[FlagRegister], uint8(vy-vx), wantFlag)
			}
		}
	}
}

func TestShifts(t *testing.T) {
	c, _ := newTestCPU(t)
	for vx := 0; vx < 256; vx++ {
		c.v[1] = uint8(vx)
		require.NoError(t, opcode0x8(c, 0x8126))
		assert.Equal(t, uint8(vx>>1), c.v[1])
		assert.Equal(t, uint8(vx&1), c.v[FlagRegister], "SHR flag for %d", vx)

		c.v[1] = uint8(vx)
		require.NoError(t, opcode0x8(c, 0x812E))
		assert.Equal(t, uint8(vx<<1), c.v[1])
		assert.Equal(t, uint8(vx>>7), c.v[FlagRegister], "SHL flag for %d", vx)
	}
}

func TestALU_FlagRegisterAsDestination(t *testing.T) {
	c, _ := newTestCPU(t)
	c.v[FlagRegister], c.v[2] = 0xFF, 0x03

	require.NoError(t, opcode0x8(c, 0x8F24))
	assert.Equal(t, uint8(0x02), c.v[FlagRegister], "result overwrites the carry")
}

func TestIndexAndJumpWithOffset(t *testing.T) {
	c, _ := newTestCPU(t, 0xA123, 0xB300)
	c.v[0] = 0x10

	stepN(t, c, 2)
	assert.Equal(t, uint16(0x123), c.i)
	assert.Equal(t, uint16(0x310), c.pc)
}

func TestRandom(t *testing.T) {
	c, _ := newTestCPU(t, 0xC10F, 0xC200)

	expected := uint8(rand.New(rand.NewSource(1)).Intn(256)) & 0x0F
	stepN(t, c, 2)

	assert.Equal(t, expected, c.v[1])
	assert.Zero(t, c.v[1]&0xF0)
	assert.Zero(t, c.v[2])
}

func TestDraw_CollisionScenario(t *testing.T) {
	c, _ := newTestCPU(t, 0xA20A, 0x6100, 0xD111, 0xA20B, 0xD111, 0xFF40)
	display := &fakeDisplay{}
	c.AttachDisplay(display)

	stepN(t, c, 3)
	assert.Equal(t, uint8(0), c.v[FlagRegister])
	assert.Equal(t, 8, c.fb.LitPixels())

	stepN(t, c, 2)
	assert.Equal(t, uint8(1), c.v[FlagRegister])
	assert.False(t, c.fb.GetPixel(1, 0), "second sprite erased x=1")
	assert.Equal(t, 7, c.fb.LitPixels())
	assert.Equal(t, 2, display.draws)
}

func TestDraw_SameSpriteTwiceErases(t *testing.T) {
	c, _ := newTestCPU(t,
		0xA203, // I = 0x203, the low byte of the next word
		0xD001,
		0xD001,
		0xFFFF,
	)

	stepN(t, c, 4)
	assert.Equal(t, uint8(1), c.v[FlagRegister])
	assert.Equal(t, 0, c.fb.LitPixels())
}

func TestDraw_ClearsFlagWithoutCollision(t *testing.T) {
	c, _ := newTestCPU(t, 0xA050, 0xD015)
	c.v[FlagRegister] = 1
	// I points past the font, at zeroed memory
	stepN(t, c, 2)
	assert.Equal(t, uint8(0), c.v[FlagRegister])
}

func TestDraw_FontGlyph(t *testing.T) {
	c, _ := newTestCPU(t, 0x6A0F, 0xFA29, 0xD005)
	stepN(t, c, 3)

	// F glyph: F0 80 F0 80 80
	assert.True(t, c.fb.GetPixel(3, 0))
	assert.True(t, c.fb.GetPixel(0, 4))
	assert.False(t, c.fb.GetPixel(1, 4))
}

func TestDraw_SpriteOutOfMemory(t *testing.T) {
	c, _ := newTestCPU(t, 0xD005)
	c.i = 0xFFE

	err := c.Step()
	assert.ErrorIs(t, err, memory.ErrAddressOutOfRange)
	assert.Equal(t, uint16(0x200), c.pc)
	assert.Equal(t, 0, c.fb.LitPixels())
}

func TestKeySkips(t *testing.T) {
	tests := []struct {
		desc   string
		instr  uint16
		keypad *fakeKeypad
		wantPC uint16
	}{
		{desc: "SKP pressed", instr: 0xE59E, keypad: &fakeKeypad{pressed: [16]bool{0xA: true}}, wantPC: 0x204},
		{desc: "SKP released", instr: 0xE59E, keypad: &fakeKeypad{}, wantPC: 0x202},
		{desc: "SKNP pressed", instr: 0xE5A1, keypad: &fakeKeypad{pressed: [16]bool{0xA: true}}, wantPC: 0x202},
		{desc: "SKNP released", instr: 0xE5A1, keypad: &fakeKeypad{}, wantPC: 0x204},
		{desc: "SKP without keypad", instr: 0xE59E, wantPC: 0x202},
		{desc: "SKNP without keypad", instr: 0xE5A1, wantPC: 0x204},
	}
	for _, tC := range tests {
		t.Run(tC.desc, func(t *testing.T) {
			c, _ := newTestCPU(t, tC.instr)
			if tC.keypad != nil {
				c.AttachKeypad(tC.keypad)
			}
			c.v[5] = 0xA

			stepN(t, c, 1)
			assert.Equal(t, tC.wantPC, c.pc)
		})
	}
}

func TestTimerRegisters(t *testing.T) {
	c, _ := newTestCPU(t, 0x6033, 0xF015, 0xF018, 0xF107)
	stepN(t, c, 4)

	assert.Equal(t, uint8(0x33), c.delayTimer)
	assert.Equal(t, uint8(0x33), c.soundTimer)
	assert.Equal(t, uint8(0x33), c.v[1])
}

func TestWaitForKey(t *testing.T) {
	c, _ := newTestCPU(t, 0xF40A, 0x1202)
	keypad := &fakeKeypad{}
	c.AttachKeypad(keypad)

	stepN(t, c, 5)
	assert.Equal(t, uint16(0x200), c.pc, "PC holds while no key is down")

	keypad.pressed[7] = true
	keypad.pressed[3] = true
	stepN(t, c, 1)
	assert.Equal(t, uint8(3), c.v[4], "lowest pressed key wins")
	assert.Equal(t, uint16(0x202), c.pc)
}

func TestWaitForKey_KeyZero(t *testing.T) {
	c, _ := newTestCPU(t, 0xF40A)
	c.v[4] = 0xFF
	c.AttachKeypad(&fakeKeypad{pressed: [16]bool{0: true}})

	stepN(t, c, 1)
	assert.Equal(t, uint8(0), c.v[4])
	assert.Equal(t, uint16(0x202), c.pc)
}

func TestWaitForKey_NoKeypad(t *testing.T) {
	c, _ := newTestCPU(t, 0xF40A)
	stepN(t, c, 3)
	assert.Equal(t, uint16(0x200), c.pc)
}

func TestIndexArithmetic(t *testing.T) {
	c, _ := newTestCPU(t, 0xA100, 0x6220, 0xF21E, 0x6307, 0xF329)
	stepN(t, c, 3)
	assert.Equal(t, uint16(0x120), c.i)

	stepN(t, c, 2)
	assert.Equal(t, uint16(35), c.i, "glyph 7 starts at 7*5")
}

func TestBCD(t *testing.T) {
	tests := []struct {
		value uint8
		want  []byte
	}{
		{value: 254, want: []byte{2, 5, 4}},
		{value: 0, want: []byte{0, 0, 0}},
		{value: 9, want: []byte{0, 0, 9}},
		{value: 100, want: []byte{1, 0, 0}},
		{value: 255, want: []byte{2, 5, 5}},
	}
	for _, tC := range tests {
		c, _ := newTestCPU(t, 0xA300, 0xF533)
		c.v[5] = tC.value

		stepN(t, c, 2)
		assert.Equal(t, tC.want, c.mem.Slice(0x300, 3), "BCD of %d", tC.value)
		assert.Equal(t, uint16(0x300), c.i)
	}
}

func TestStoreLoadRegisters(t *testing.T) {
	c, _ := newTestCPU(t, 0xA400, 0xF355, 0x6000, 0x6100, 0x6200, 0x6300, 0x64AA, 0xF365)
	c.v = [RegisterCount]uint8{0x10, 0x20, 0x30, 0x40, 0x50}

	stepN(t, c, 2)
	assert.Equal(t, []byte{0x10, 0x20, 0x30, 0x40, 0x00}, c.mem.Slice(0x400, 5), "only V0..V3 stored")
	assert.Equal(t, uint16(0x400), c.i, "I is unchanged")

	stepN(t, c, 6)
	assert.Equal(t, [RegisterCount]uint8{0x10, 0x20, 0x30, 0x40, 0xAA}, c.v, "only V0..V3 loaded")
}

func TestStoreRegisters_OutOfMemory(t *testing.T) {
	c, _ := newTestCPU(t, 0xF355)
	c.i = 0xFFE

	err := c.Step()
	assert.ErrorIs(t, err, memory.ErrAddressOutOfRange)
	assert.Equal(t, uint16(0x200), c.pc)
	b, _ := c.mem.Read(0xFFE)
	assert.Zero(t, b, "nothing written")
}

func TestBCD_OutOfMemory(t *testing.T) {
	c, _ := newTestCPU(t, 0xF033)
	c.i = 0xFFE
	assert.ErrorIs(t, c.Step(), memory.ErrAddressOutOfRange)
}

func TestUnknownOpcodes_Permissive(t *testing.T) {
	words := []uint16{0x0123, 0x812F, 0xE1FF, 0xF1FF, 0x00E1}
	for _, w := range words {
		c, _ := newTestCPU(t, w)
		c.v[1] = 0x42
		before := c.State()

		stepN(t, c, 1)

		after := c.State()
		assert.Equal(t, before.PC+2, after.PC, "word %04X", w)
		after.PC = before.PC
		assert.Equal(t, before, after, "word %04X mutates nothing but PC", w)
	}
}

func TestUnknownOpcodes_Strict(t *testing.T) {
	c, _ := newTestCPU(t, 0x0123)
	c.SetStrict(true)

	err := c.Step()
	assert.ErrorIs(t, err, ErrUnknownOpcode)
	assert.Equal(t, uint16(0x200), c.pc)
}
