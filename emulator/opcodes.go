package emulator

/*
INSTRUCTIONS IMPLEMENTATION

The following section is a set of all instruction operations allowed to us in Chip8.
See this documentation for more details:
https://github.com/mattmikolay/chip-8/wiki/Mastering-CHIP%E2%80%908
https://github.com/mattmikolay/chip-8/wiki/CHIP%E2%80%908-Instruction-Set

Every operation returns how the program counter moves on. None of them touch
the program counter for the normal step or skip, Step() does that once the
operation succeeded. Operations that can fault check everything before they
write anything.

The shift and subtract instructions have conflicting historical conventions.
This implementation uses one set throughout: shifts read VY and store into VX,
subtractions set VF when there is no borrow, and VF is written after VX so the
flag survives when X is F.
*/

func (c8 *Chip8) execute(in Instruction) (pcAdvance, *Fault) {
	switch in.N0 {
	case 0x0:
		switch in.Addr() {
		case 0x0E0:
			return c8.op00E0()
		case 0x0EE:
			return c8.op00EE()
		}
		return c8.op0nnn(in)
	case 0x1:
		return c8.op1nnn(in)
	case 0x2:
		return c8.op2nnn(in)
	case 0x3:
		return c8.op3xkk(in)
	case 0x4:
		return c8.op4xkk(in)
	case 0x5:
		if in.N() == 0x0 {
			return c8.op5xy0(in)
		}
	case 0x6:
		return c8.op6xkk(in)
	case 0x7:
		return c8.op7xkk(in)
	case 0x8:
		switch in.N() {
		case 0x0:
			return c8.op8xy0(in)
		case 0x1:
			return c8.op8xy1(in)
		case 0x2:
			return c8.op8xy2(in)
		case 0x3:
			return c8.op8xy3(in)
		case 0x4:
			return c8.op8xy4(in)
		case 0x5:
			return c8.op8xy5(in)
		case 0x6:
			return c8.op8xy6(in)
		case 0x7:
			return c8.op8xy7(in)
		case 0xE:
			return c8.op8xyE(in)
		}
	case 0x9:
		if in.N() == 0x0 {
			return c8.op9xy0(in)
		}
	case 0xA:
		return c8.opAnnn(in)
	case 0xB:
		return c8.opBnnn(in)
	case 0xC:
		return c8.opCxkk(in)
	case 0xD:
		return c8.opDxyn(in)
	case 0xE:
		switch in.Byte() {
		case 0x9E:
			return c8.opEx9E(in)
		case 0xA1:
			return c8.opExA1(in)
		}
	case 0xF:
		switch in.Byte() {
		case 0x07:
			return c8.opFx07(in)
		case 0x0A:
			return c8.opFx0A(in)
		case 0x15:
			return c8.opFx15(in)
		case 0x18:
			return c8.opFx18(in)
		case 0x1E:
			return c8.opFx1E(in)
		case 0x29:
			return c8.opFx29(in)
		case 0x33:
			return c8.opFx33(in)
		case 0x55:
			return c8.opFx55(in)
		case 0x65:
			return c8.opFx65(in)
		}
	}

	return pcKeep, c8.newFault(ErrInvalidOpcode, 0)
}

/*
00E0 - CLS
Clear the display
*/
func (c8 *Chip8) op00E0() (pcAdvance, *Fault) {
	c8.screen.clear()
	return pcStep, nil
}

/*
00EE - RET
Return from a subroutine
*/
func (c8 *Chip8) op00EE() (pcAdvance, *Fault) {
	if c8.stackPointer == 0 {
		return pcKeep, c8.newFault(ErrStackUnderflow, 0)
	}
	c8.stackPointer--
	c8.programCounter = c8.stack[c8.stackPointer]
	return pcKeep, nil
}

/*
0nnn - SYS addr
Jump to a machine code routine at nnn.
There is no machine code to run, the legacy behaviour is a plain jump.
*/
func (c8 *Chip8) op0nnn(in Instruction) (pcAdvance, *Fault) {
	c8.programCounter = in.Addr()
	return pcKeep, nil
}

/*
1nnn - JP addr
Jump to location nnn.
A jump doesn't remember its origin, so no stack interaction required.
*/
func (c8 *Chip8) op1nnn(in Instruction) (pcAdvance, *Fault) {
	c8.programCounter = in.Addr()
	return pcKeep, nil
}

/*
2nnn - CALL addr
Call subroutine at nnn.
The address of the following instruction is pushed, 00EE returns to it.
*/
func (c8 *Chip8) op2nnn(in Instruction) (pcAdvance, *Fault) {
	if int(c8.stackPointer) >= STACK_DEPTH {
		return pcKeep, c8.newFault(ErrStackOverflow, 0)
	}
	c8.stack[c8.stackPointer] = c8.programCounter + 2
	c8.stackPointer++
	c8.programCounter = in.Addr()
	return pcKeep, nil
}

/*
3xkk - SE Vx, byte
Skip next instruction if Vx = kk.
*/
func (c8 *Chip8) op3xkk(in Instruction) (pcAdvance, *Fault) {
	return skipIf(c8.registers[in.X()] == in.Byte()), nil
}

/*
4xkk - SNE Vx, byte
Skip next instruction if Vx != kk.
*/
func (c8 *Chip8) op4xkk(in Instruction) (pcAdvance, *Fault) {
	return skipIf(c8.registers[in.X()] != in.Byte()), nil
}

/*
5xy0 - SE Vx, Vy
Skip next instruction if Vx = Vy.
*/
func (c8 *Chip8) op5xy0(in Instruction) (pcAdvance, *Fault) {
	return skipIf(c8.registers[in.X()] == c8.registers[in.Y()]), nil
}

/*
6xkk - LD Vx, byte
Set Vx = kk.
*/
func (c8 *Chip8) op6xkk(in Instruction) (pcAdvance, *Fault) {
	c8.registers[in.X()] = in.Byte()
	return pcStep, nil
}

/*
7xkk - ADD Vx, byte
Set Vx = Vx + kk.
Wraps around at 256 and leaves VF alone.
*/
func (c8 *Chip8) op7xkk(in Instruction) (pcAdvance, *Fault) {
	c8.registers[in.X()] += in.Byte()
	return pcStep, nil
}

/*
8xy0 - LD Vx, Vy
Set Vx = Vy.
*/
func (c8 *Chip8) op8xy0(in Instruction) (pcAdvance, *Fault) {
	c8.registers[in.X()] = c8.registers[in.Y()]
	return pcStep, nil
}

/*
8xy1 - OR Vx, Vy
Set Vx = Vx OR Vy.
*/
func (c8 *Chip8) op8xy1(in Instruction) (pcAdvance, *Fault) {
	c8.registers[in.X()] |= c8.registers[in.Y()]
	return pcStep, nil
}

/*
8xy2 - AND Vx, Vy
Set Vx = Vx AND Vy.
*/
func (c8 *Chip8) op8xy2(in Instruction) (pcAdvance, *Fault) {
	c8.registers[in.X()] &= c8.registers[in.Y()]
	return pcStep, nil
}

/*
8xy3 - XOR Vx, Vy
Set Vx = Vx XOR Vy.
*/
func (c8 *Chip8) op8xy3(in Instruction) (pcAdvance, *Fault) {
	c8.registers[in.X()] ^= c8.registers[in.Y()]
	return pcStep, nil
}

/*
8xy4 - ADD Vx, Vy
Set Vx = Vx + Vy, set VF = carry.
If the result is greater than 8 bits (i.e., > 255,) VF is set to 1, otherwise 0.
Only the lowest 8 bits of the result are kept, and stored in Vx.
*/
func (c8 *Chip8) op8xy4(in Instruction) (pcAdvance, *Fault) {
	sum := uint16(c8.registers[in.X()]) + uint16(c8.registers[in.Y()])

	c8.registers[in.X()] = byte(sum)
	c8.setFlag(sum > 0xFF)

	return pcStep, nil
}

/*
8xy5 - SUB Vx, Vy
Set Vx = Vx - Vy, set VF = NOT borrow.
If Vx >= Vy, then VF is set to 1, otherwise 0.
*/
func (c8 *Chip8) op8xy5(in Instruction) (pcAdvance, *Fault) {
	vx, vy := c8.registers[in.X()], c8.registers[in.Y()]

	c8.registers[in.X()] = vx - vy
	c8.setFlag(vx >= vy)

	return pcStep, nil
}

/*
8xy6 - SHR Vx {, Vy}
Set Vx = Vy SHR 1.
VF is set to the least significant bit of Vy before the shift.
*/
func (c8 *Chip8) op8xy6(in Instruction) (pcAdvance, *Fault) {
	vy := c8.registers[in.Y()]

	c8.registers[in.X()] = vy >> 1
	c8.registers[FLAG_REGISTER] = vy & 0x1

	return pcStep, nil
}

/*
8xy7 - SUBN Vx, Vy
Set Vx = Vy - Vx, set VF = NOT borrow.
If Vy >= Vx, then VF is set to 1, otherwise 0.
*/
func (c8 *Chip8) op8xy7(in Instruction) (pcAdvance, *Fault) {
	vx, vy := c8.registers[in.X()], c8.registers[in.Y()]

	c8.registers[in.X()] = vy - vx
	c8.setFlag(vy >= vx)

	return pcStep, nil
}

/*
8xyE - SHL Vx {, Vy}
Set Vx = Vy SHL 1.
VF is set to the most significant bit of Vy before the shift.
*/
func (c8 *Chip8) op8xyE(in Instruction) (pcAdvance, *Fault) {
	vy := c8.registers[in.Y()]

	c8.registers[in.X()] = vy << 1
	c8.registers[FLAG_REGISTER] = vy >> 7

	return pcStep, nil
}

/*
9xy0 - SNE Vx, Vy
Skip next instruction if Vx != Vy.
*/
func (c8 *Chip8) op9xy0(in Instruction) (pcAdvance, *Fault) {
	return skipIf(c8.registers[in.X()] != c8.registers[in.Y()]), nil
}

/*
Annn - LD I, addr
Set I = nnn.
*/
func (c8 *Chip8) opAnnn(in Instruction) (pcAdvance, *Fault) {
	c8.indexRegister = in.Addr()
	return pcStep, nil
}

/*
Bnnn - JP V0, addr
Jump to location nnn + V0.
The target can be past 0xFFF, the next fetch reports that.
*/
func (c8 *Chip8) opBnnn(in Instruction) (pcAdvance, *Fault) {
	c8.programCounter = in.Addr() + uint16(c8.registers[0])
	return pcKeep, nil
}

/*
Cxkk - RND Vx, byte
Set Vx = random byte AND kk.
*/
func (c8 *Chip8) opCxkk(in Instruction) (pcAdvance, *Fault) {
	c8.registers[in.X()] = byte(c8.rand.Uint32()) & in.Byte()
	return pcStep, nil
}

/*
Dxyn - DRW Vx, Vy, nibble
Display n-byte sprite starting at memory location I at (Vx, Vy), set VF = collision.
Each sprite byte is one row of eight pixels which are XORed onto the screen.
VF is set if any pixel that was on is turned off. Pixels past the edges of the
screen are clipped.
*/
func (c8 *Chip8) opDxyn(in Instruction) (pcAdvance, *Fault) {
	height := int(in.N())
	addr := int(c8.indexRegister)

	var sprite []byte
	if height > 0 {
		if bad, ok := c8.memory.outside(addr, height); ok {
			return pcKeep, c8.newFault(ErrAddressOverflow, bad)
		}
		sprite = c8.memory[addr : addr+height]
	}

	x := int(c8.registers[in.X()])
	y := int(c8.registers[in.Y()])

	collision := c8.screen.drawSprite(x, y, sprite)
	c8.setFlag(collision)

	return pcStep, nil
}

/*
Ex9E - SKP Vx
Skip next instruction if key with the value of Vx is pressed.
*/
func (c8 *Chip8) opEx9E(in Instruction) (pcAdvance, *Fault) {
	return skipIf(c8.keypad.Pressed(int(c8.registers[in.X()]))), nil
}

/*
ExA1 - SKNP Vx
Skip next instruction if key with the value of Vx is not pressed.
*/
func (c8 *Chip8) opExA1(in Instruction) (pcAdvance, *Fault) {
	return skipIf(!c8.keypad.Pressed(int(c8.registers[in.X()]))), nil
}

/*
Fx07 - LD Vx, DT
Set Vx = delay timer value.
*/
func (c8 *Chip8) opFx07(in Instruction) (pcAdvance, *Fault) {
	c8.registers[in.X()] = c8.timers.delay
	return pcStep, nil
}

/*
Fx0A - LD Vx, K
Wait for a key press, store the value of the key in Vx.
While no key has been seen the PC is kept, so the same instruction runs again
on the next Step().
*/
func (c8 *Chip8) opFx0A(in Instruction) (pcAdvance, *Fault) {
	key, ok := c8.keypad.awaitKey()
	if !ok {
		return pcKeep, nil
	}
	c8.registers[in.X()] = key
	return pcStep, nil
}

/*
Fx15 - LD DT, Vx
Set delay timer = Vx.
*/
func (c8 *Chip8) opFx15(in Instruction) (pcAdvance, *Fault) {
	c8.timers.delay = c8.registers[in.X()]
	return pcStep, nil
}

/*
Fx18 - LD ST, Vx
Set sound timer = Vx.
*/
func (c8 *Chip8) opFx18(in Instruction) (pcAdvance, *Fault) {
	c8.timers.sound = c8.registers[in.X()]
	return pcStep, nil
}

/*
Fx1E - ADD I, Vx
Set I = I + Vx.
Saturates at 0xFFFF rather than wrapping.
*/
func (c8 *Chip8) opFx1E(in Instruction) (pcAdvance, *Fault) {
	sum := uint32(c8.indexRegister) + uint32(c8.registers[in.X()])
	c8.indexRegister = uint16(min(sum, 0xFFFF))
	return pcStep, nil
}

/*
Fx29 - LD F, Vx
Set I = location of sprite for digit Vx.
The font characters are located at FONTSET_START_ADDRESS and are five bytes
each. Vx is deliberately clamped to its low nibble so I always lands on one
of the 16 glyphs: Vx = 0x20 selects the glyph for 0 at 0x050.
*/
func (c8 *Chip8) opFx29(in Instruction) (pcAdvance, *Fault) {
	digit := uint16(c8.registers[in.X()] & 0xF)
	c8.indexRegister = FONTSET_START_ADDRESS + FONT_GLYPH_SIZE*digit
	return pcStep, nil
}

/*
Fx33 - LD B, Vx
Store BCD representation of Vx in memory locations I, I+1, and I+2.
The hundreds digit goes to I, the tens digit to I+1 and the ones digit to I+2.
*/
func (c8 *Chip8) opFx33(in Instruction) (pcAdvance, *Fault) {
	addr := int(c8.indexRegister)
	if bad, ok := c8.memory.outside(addr, 3); ok {
		return pcKeep, c8.newFault(ErrAddressOverflow, bad)
	}

	value := c8.registers[in.X()]
	c8.memory[addr] = value / 100
	c8.memory[addr+1] = value / 10 % 10
	c8.memory[addr+2] = value % 10

	return pcStep, nil
}

/*
Fx55 - LD [I], Vx
Store registers V0 through Vx in memory starting at location I.
I is set to I + X + 1 afterwards.
*/
func (c8 *Chip8) opFx55(in Instruction) (pcAdvance, *Fault) {
	addr := int(c8.indexRegister)
	count := int(in.X()) + 1
	if bad, ok := c8.memory.outside(addr, count); ok {
		return pcKeep, c8.newFault(ErrAddressOverflow, bad)
	}

	copy(c8.memory[addr:addr+count], c8.registers[:count])
	c8.indexRegister += uint16(count)

	return pcStep, nil
}

/*
Fx65 - LD Vx, [I]
Read registers V0 through Vx from memory starting at location I.
I is set to I + X + 1 afterwards.
*/
func (c8 *Chip8) opFx65(in Instruction) (pcAdvance, *Fault) {
	addr := int(c8.indexRegister)
	count := int(in.X()) + 1
	if bad, ok := c8.memory.outside(addr, count); ok {
		return pcKeep, c8.newFault(ErrAddressOverflow, bad)
	}

	copy(c8.registers[:count], c8.memory[addr:addr+count])
	c8.indexRegister += uint16(count)

	return pcStep, nil
}

func (c8 *Chip8) setFlag(set bool) {
	if set {
		c8.registers[FLAG_REGISTER] = 1
	} else {
		c8.registers[FLAG_REGISTER] = 0
	}
}
