package emulator

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecodeRoundTrip(t *testing.T) {
	for w := 0; w <= 0xFFFF; w++ {
		word := uint16(w)
		in := Decode(word)
		if in.Word() != word {
			t.Fatalf("decoding 0x%04X round trips to 0x%04X", word, in.Word())
		}
	}
}

func TestDecodeFields(t *testing.T) {
	in := Decode(0xD7A3)

	assert.Equal(t, uint8(0xD), in.N0)
	assert.Equal(t, uint8(0x7), in.X())
	assert.Equal(t, uint8(0xA), in.Y())
	assert.Equal(t, uint8(0x3), in.N())
	assert.Equal(t, uint16(0x7A3), in.Addr())
	assert.Equal(t, byte(0xA3), in.Byte())
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		word uint16
		want string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x0123, "SYS 0x123"},
		{0x1ABC, "JP 0xABC"},
		{0x2300, "CALL 0x300"},
		{0x3A42, "SE VA, 0x42"},
		{0x4A42, "SNE VA, 0x42"},
		{0x5AB0, "SE VA, VB"},
		{0x5AB1, "dw 0x5AB1"},
		{0x6105, "LD V1, 0x05"},
		{0x71FF, "ADD V1, 0xFF"},
		{0x8120, "LD V1, V2"},
		{0x8124, "ADD V1, V2"},
		{0x8127, "SUBN V1, V2"},
		{0x812E, "SHL V1, V2"},
		{0x8129, "dw 0x8129"},
		{0x9120, "SNE V1, V2"},
		{0xA22A, "LD I, 0x22A"},
		{0xB200, "JP V0, 0x200"},
		{0xC30F, "RND V3, 0x0F"},
		{0xD015, "DRW V0, V1, 5"},
		{0xE49E, "SKP V4"},
		{0xE4A1, "SKNP V4"},
		{0xE4A2, "dw 0xE4A2"},
		{0xF207, "LD V2, DT"},
		{0xF20A, "LD V2, K"},
		{0xF215, "LD DT, V2"},
		{0xF218, "LD ST, V2"},
		{0xF21E, "ADD I, V2"},
		{0xF229, "LD F, V2"},
		{0xF233, "LD B, V2"},
		{0xF255, "LD [I], V2"},
		{0xF265, "LD V2, [I]"},
		{0xF2FF, "dw 0xF2FF"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Disassemble(tt.word))
	}
}

// Every word the disassembler can name must execute, every word it shows
// as data must fault as an invalid opcode.
func TestDisassembleAgreesWithDispatch(t *testing.T) {
	c8 := newTestMachine(t)

	for w := 0; w <= 0xFFFF; w++ {
		word := uint16(w)
		c8.Reset()
		c8.indexRegister = 0x300

		_, f := c8.execute(Decode(word))
		invalid := f != nil && f.Err == ErrInvalidOpcode
		data := Disassemble(word)[:2] == "dw"
		if invalid != data {
			t.Fatalf("0x%04X: invalid opcode %v, disassembled as %q", word, invalid, Disassemble(word))
		}
	}
}
