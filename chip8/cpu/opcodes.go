package cpu

import (
	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/memory"
)

//CLS, RET
//#0x00E0, 0x00EE:
func opcode0x0(cpu *CPU, instr Instruction) error {
	switch instr {
	case 0x00E0:
		cpu.fb.Clear()
		cpu.drawFrame()
	case 0x00EE:
		// the call pushed its own address, so the +2 below lands after it
		address, err := cpu.popStack()
		if err != nil {
			return err
		}
		cpu.pc = address
	default:
		return cpu.unknown(instr)
	}

	cpu.advance()
	return nil
}

//JP addr
//#0x1nnn:
func opcode0x1(cpu *CPU, instr Instruction) error {
	cpu.pc = instr.NNN()
	return nil
}

//CALL addr
//#0x2nnn:
func opcode0x2(cpu *CPU, instr Instruction) error {
	if err := cpu.pushStack(cpu.pc); err != nil {
		return err
	}
	cpu.pc = instr.NNN()
	return nil
}

//SE Vx, byte
//#0x3xkk:
func opcode0x3(cpu *CPU, instr Instruction) error {
	cpu.skipIf(cpu.v[instr.X()] == instr.KK())
	return nil
}

//SNE Vx, byte
//#0x4xkk:
func opcode0x4(cpu *CPU, instr Instruction) error {
	cpu.skipIf(cpu.v[instr.X()] != instr.KK())
	return nil
}

//SE Vx, Vy
//#0x5xy0:
func opcode0x5(cpu *CPU, instr Instruction) error {
	cpu.skipIf(cpu.v[instr.X()] == cpu.v[instr.Y()])
	return nil
}

//LD Vx, byte
//#0x6xkk:
func opcode0x6(cpu *CPU, instr Instruction) error {
	cpu.v[instr.X()] = instr.KK()
	cpu.advance()
	return nil
}

//ADD Vx, byte
//#0x7xkk:
func opcode0x7(cpu *CPU, instr Instruction) error {
	cpu.v[instr.X()] += instr.KK()
	cpu.advance()
	return nil
}

//LD, OR, AND, XOR, ADD, SUB, SHR, SUBN, SHL Vx, Vy
//#0x8xyn:
func opcode0x8(cpu *CPU, instr Instruction) error {
	x := instr.X()
	vx, vy := cpu.v[x], cpu.v[instr.Y()]

	// VF is written before Vx, so with x == F the result wins over the flag.
	switch instr.N() {
	case 0x0:
		cpu.v[x] = vy
	case 0x1:
		cpu.v[x] = vx | vy
	case 0x2:
		cpu.v[x] = vx & vy
	case 0x3:
		cpu.v[x] = vx ^ vy
	case 0x4:
		result, carry := bit.CheckedAdd(vx, vy)
		cpu.setFlag(carry)
		cpu.v[x] = result
	case 0x5:
		result, borrow := bit.CheckedSub(vx, vy)
		cpu.setFlag(!borrow && result != 0)
		cpu.v[x] = result
	case 0x6:
		cpu.setFlag(bit.IsSet(0, vx))
		cpu.v[x] = vx >> 1
	case 0x7:
		result, borrow := bit.CheckedSub(vy, vx)
		cpu.setFlag(!borrow && result != 0)
		cpu.v[x] = result
	case 0xE:
		cpu.setFlag(bit.IsSet(7, vx))
		cpu.v[x] = vx << 1
	default:
		return cpu.unknown(instr)
	}

	cpu.advance()
	return nil
}

//SNE Vx, Vy
//#0x9xy0:
func opcode0x9(cpu *CPU, instr Instruction) error {
	cpu.skipIf(cpu.v[instr.X()] != cpu.v[instr.Y()])
	return nil
}

//LD I, addr
//#0xAnnn:
func opcode0xA(cpu *CPU, instr Instruction) error {
	cpu.i = instr.NNN()
	cpu.advance()
	return nil
}

//JP V0, addr
//#0xBnnn:
func opcode0xB(cpu *CPU, instr Instruction) error {
	cpu.pc = instr.NNN() + uint16(cpu.v[0x0])
	return nil
}

//RND Vx, byte
//#0xCxkk:
func opcode0xC(cpu *CPU, instr Instruction) error {
	cpu.v[instr.X()] = uint8(cpu.rng.Intn(256)) & instr.KK()
	cpu.advance()
	return nil
}

//DRW Vx, Vy, nibble
//#0xDxyn:
func opcode0xD(cpu *CPU, instr Instruction) error {
	rows := int(instr.N())
	if err := checkRange(cpu.i, rows); err != nil {
		return err
	}

	x, y := int(cpu.v[instr.X()]), int(cpu.v[instr.Y()])
	sprite := cpu.mem.Slice(cpu.i, rows)

	cpu.setFlag(cpu.fb.DrawSprite(x, y, sprite))
	cpu.advance()
	cpu.drawFrame()
	return nil
}

//SKP Vx, SKNP Vx
//#0xEx9E, 0xExA1:
func opcode0xE(cpu *CPU, instr Instruction) error {
	pressed := cpu.isKeyPressed(cpu.v[instr.X()])

	switch instr.KK() {
	case 0x9E:
		cpu.skipIf(pressed)
	case 0xA1:
		cpu.skipIf(!pressed)
	default:
		return cpu.unknown(instr)
	}
	return nil
}

//LD Vx, DT / K / [I] ... LD DT, ST, F, B, [I]; ADD I, Vx
//#0xFxkk:
func opcode0xF(cpu *CPU, instr Instruction) error {
	x := instr.X()
	vx := cpu.v[x]

	switch instr.KK() {
	case 0x07:
		cpu.v[x] = cpu.delayTimer
	case 0x0A:
		key, ok := cpu.pressedKey()
		if !ok {
			// PC stays put, the instruction runs again next step
			return nil
		}
		cpu.v[x] = key
	case 0x15:
		cpu.delayTimer = vx
	case 0x18:
		cpu.soundTimer = vx
	case 0x1E:
		cpu.i += uint16(vx)
	case 0x29:
		cpu.i = memory.GlyphAddress(vx)
	case 0x33:
		if err := checkRange(cpu.i, 3); err != nil {
			return err
		}
		for offset, digit := range bcd(vx) {
			cpu.mem.Write(cpu.i+uint16(offset), digit)
		}
	case 0x55:
		if err := checkRange(cpu.i, int(x)+1); err != nil {
			return err
		}
		for r := uint8(0); r <= x; r++ {
			cpu.mem.Write(cpu.i+uint16(r), cpu.v[r])
		}
	case 0x65:
		if err := checkRange(cpu.i, int(x)+1); err != nil {
			return err
		}
		for r := uint8(0); r <= x; r++ {
			cpu.v[r], _ = cpu.mem.Read(cpu.i + uint16(r))
		}
	default:
		return cpu.unknown(instr)
	}

	cpu.advance()
	return nil
}
