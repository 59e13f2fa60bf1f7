package emulator

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Disassemble returns the mnemonic for an instruction word, using the
// Cowgod style of the instruction set documentation. Words that aren't
// instructions are shown as data.
func Disassemble(word uint16) string {
	in := Decode(word)

	op, ok := lookupOpcode(word)
	if !ok {
		// 0nnn is absent from the opcode table but executes as a jump.
		if in.N0 == 0x0 {
			return fmt.Sprintf("SYS 0x%03X", in.Addr())
		}
		return fmt.Sprintf("dw 0x%04X", word)
	}

	name := strings.ToUpper(op.Instruction.Name)
	operands := formatOperands(in, op)
	if operands == "" {
		return name
	}
	return name + " " + operands
}

// lookupOpcode finds the opcode table entry whose masked value matches word.
func lookupOpcode(word uint16) (chip8.Opcode, bool) {
	for _, op := range chip8.Opcodes[word>>12] {
		if word&op.Info.Mask == op.Info.Value {
			return op, op.Instruction != nil
		}
	}
	return chip8.Opcode{}, false
}

// addressingMode returns the mode the instruction uses for the matched opcode.
func addressingMode(op chip8.Opcode) chip8.Mode {
	for mode, info := range op.Instruction.Addressing {
		if info == op.Info {
			return mode
		}
	}
	return chip8.NoAddressing
}

func formatOperands(in Instruction, op chip8.Opcode) string {
	x, y := in.X(), in.Y()

	// The key skips are filed under the register value mode but take only VX.
	switch op.Instruction {
	case chip8.Skp, chip8.Sknp:
		return fmt.Sprintf("V%X", x)
	}

	switch addressingMode(op) {
	case chip8.AbsoluteAddressing:
		return fmt.Sprintf("0x%03X", in.Addr())
	case chip8.V0AbsoluteAddressing:
		return fmt.Sprintf("V0, 0x%03X", in.Addr())
	case chip8.RegisterValueAddressing:
		return fmt.Sprintf("V%X, 0x%02X", x, in.Byte())
	case chip8.RegisterRegisterAddressing:
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.RegisterRegisterNibbleAddressing:
		return fmt.Sprintf("V%X, V%X, %d", x, y, in.N())
	case chip8.RegisterDTAddressing:
		return fmt.Sprintf("V%X, DT", x)
	case chip8.RegisterKAddressing:
		return fmt.Sprintf("V%X, K", x)
	case chip8.RegisterIndirectIAddressing:
		return fmt.Sprintf("V%X, [I]", x)
	case chip8.DTRegisterAddressing:
		return fmt.Sprintf("DT, V%X", x)
	case chip8.STRegisterAddressing:
		return fmt.Sprintf("ST, V%X", x)
	case chip8.FRegisterAddressing:
		return fmt.Sprintf("F, V%X", x)
	case chip8.BRegisterAddressing:
		return fmt.Sprintf("B, V%X", x)
	case chip8.IAbsoluteAddressing:
		return fmt.Sprintf("I, 0x%03X", in.Addr())
	case chip8.IRegisterAddressing:
		return fmt.Sprintf("I, V%X", x)
	case chip8.IIndirectRegisterAddressing:
		return fmt.Sprintf("[I], V%X", x)
	default:
		return ""
	}
}

// DisassembleProgram writes one line per instruction word of program, with
// the address each word is loaded at. An odd trailing byte is shown as data.
func DisassembleProgram(w io.Writer, program []byte) error {
	for i := 0; i < len(program); i += 2 {
		addr := int(START_ADDRESS) + i

		if i+1 == len(program) {
			_, err := fmt.Fprintf(w, "0x%03X  %02X    db 0x%02X\n", addr, program[i], program[i])
			return err
		}

		word := uint16(program[i])<<8 | uint16(program[i+1])
		if _, err := fmt.Fprintf(w, "0x%03X  %04X  %s\n", addr, word, Disassemble(word)); err != nil {
			return err
		}
	}
	return nil
}
