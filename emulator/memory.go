package emulator

import "fmt"

/*
The CHIP-8 has 4096 bytes of memory, meaning the address space is from 0x000 to 0xFFF.
The address space is segmented into three sections:

	0x000-0x1FF: Originally reserved for the CHIP-8 interpreter. Nothing reads or writes here except for...
	0x050-0x09F: Storage space for the 16 built-in characters (0 through F), see font.go.
	0x200-0xFFF: Instructions from the ROM are stored starting at 0x200, anything left after the ROM's space is free to use.
*/
const MEMORY_SIZE = 4096
const START_ADDRESS uint16 = 0x200
const FONTSET_START_ADDRESS uint16 = 0x50

// memory is the flat byte store. Every access is bounds checked, an address
// outside [0, 0xFFF] is never wrapped or truncated.
type memory [MEMORY_SIZE]byte

// outside reports whether the n byte range starting at addr leaves memory,
// along with the first address of the range that doesn't fit.
func (m *memory) outside(addr, n int) (int, bool) {
	switch {
	case addr < 0 || addr >= MEMORY_SIZE:
		return addr, true
	case addr+n > MEMORY_SIZE:
		return MEMORY_SIZE, true
	}
	return 0, false
}

func (m *memory) read(addr int) (byte, error) {
	if bad, ok := m.outside(addr, 1); ok {
		return 0, fmt.Errorf("%w: read at 0x%04X", ErrAddressOverflow, bad)
	}
	return m[addr], nil
}

func (m *memory) load(addr int, data []byte) error {
	if bad, ok := m.outside(addr, len(data)); ok {
		return fmt.Errorf("%w: %d bytes at 0x%04X do not fit, first bad address 0x%04X", ErrAddressOverflow, len(data), addr, bad)
	}
	copy(m[addr:], data)
	return nil
}

// replace is load with everything from addr to the end of memory zeroed
// first, so nothing of a previous image survives past the new one.
func (m *memory) replace(addr int, data []byte) error {
	if bad, ok := m.outside(addr, len(data)); ok {
		return fmt.Errorf("%w: %d bytes at 0x%04X do not fit, first bad address 0x%04X", ErrAddressOverflow, len(data), addr, bad)
	}
	clear(m[addr:])
	copy(m[addr:], data)
	return nil
}

func (m *memory) reset() {
	clear(m[:])
}
