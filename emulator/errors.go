package emulator

import (
	"errors"
	"fmt"
)

// Fault kinds. All of them are fatal, a machine that reported one of these
// refuses to execute any further instruction.
var (
	ErrInvalidOpcode   = errors.New("invalid opcode")
	ErrAddressOverflow = errors.New("address overflow")
	ErrStackOverflow   = errors.New("stack overflow")
	ErrStackUnderflow  = errors.New("stack underflow")
)

// Fault is the error returned by Step. Err is one of the fault kinds above
// so callers can test it with errors.Is.
type Fault struct {
	Err error

	// PC is the address of the instruction that faulted.
	PC uint16

	// Opcode is the instruction word, zero when the fetch itself failed.
	Opcode uint16

	// Address is the offending memory address, or -1 when the fault isn't
	// about memory.
	Address int
}

func (f *Fault) Error() string {
	switch {
	case errors.Is(f.Err, ErrInvalidOpcode):
		return fmt.Sprintf("%v 0x%04X at 0x%03X", f.Err, f.Opcode, f.PC)
	case f.Address >= 0:
		return fmt.Sprintf("%v: address 0x%04X (opcode 0x%04X at 0x%03X)", f.Err, f.Address, f.Opcode, f.PC)
	}
	return fmt.Sprintf("%v (opcode 0x%04X at 0x%03X)", f.Err, f.Opcode, f.PC)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
