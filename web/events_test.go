package web

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecodeInput(t *testing.T) {
	tests := []struct {
		message []byte
		want    input
	}{
		{[]byte{Key, 0x0, 1}, input{event: Key, key: 0x0, down: true}},
		{[]byte{Key, 0xF, 0}, input{event: Key, key: 0xF}},
		{[]byte{Reset}, input{event: Reset}},
		{[]byte{Closing}, input{event: Closing}},
	}

	for _, tt := range tests {
		got, err := decodeInput(tt.message)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestDecodeInputErrors(t *testing.T) {
	for _, message := range [][]byte{
		nil,
		{Key, 0x10, 1},
		{Key, 0x1},
		{0x7F},
	} {
		_, err := decodeInput(message)
		assert.True(t, errors.Is(err, ErrBadMessage), "message not rejected")
	}
}

func TestEncode(t *testing.T) {
	packed := make([]byte, 256)
	packed[3] = 0x81

	msg := encodeFrame(packed)
	assert.Equal(t, 257, len(msg))
	assert.Equal(t, Frame, msg[0])
	assert.Equal(t, byte(0x81), msg[4])

	assert.Equal(t, []byte{Tone, 1}, encodeTone(true))
	assert.Equal(t, []byte{Tone, 0}, encodeTone(false))
}
