package emulator

// Instruction is a decoded 16-bit instruction word split into its four
// nibbles, N0 being the most significant.
type Instruction struct {
	N0, N1, N2, N3 uint8
}

// Decode splits word into nibbles. It is defined for every possible word,
// whether the word means anything is decided at dispatch.
func Decode(word uint16) Instruction {
	return Instruction{
		N0: uint8(word >> 12),
		N1: uint8(word>>8) & 0xF,
		N2: uint8(word>>4) & 0xF,
		N3: uint8(word) & 0xF,
	}
}

// Word reassembles the instruction word from its nibbles.
func (in Instruction) Word() uint16 {
	return uint16(in.N0)<<12 | uint16(in.N1)<<8 | uint16(in.N2)<<4 | uint16(in.N3)
}

// Addr is the 12-bit address NNN.
func (in Instruction) Addr() uint16 {
	return uint16(in.N1)<<8 | uint16(in.N2)<<4 | uint16(in.N3)
}

// Byte is the 8-bit immediate KK.
func (in Instruction) Byte() byte {
	return in.N2<<4 | in.N3
}

func (in Instruction) X() uint8 { return in.N1 }
func (in Instruction) Y() uint8 { return in.N2 }
func (in Instruction) N() uint8 { return in.N3 }

// pcAdvance is what happens to the program counter once an instruction has
// been executed.
type pcAdvance int

const (
	// pcKeep leaves the program counter alone, the instruction set it itself
	pcKeep pcAdvance = iota
	// pcStep moves on to the next instruction
	pcStep
	// pcSkip skips over the next instruction
	pcSkip
)

func skipIf(cond bool) pcAdvance {
	if cond {
		return pcSkip
	}
	return pcStep
}
