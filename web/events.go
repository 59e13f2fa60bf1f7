package web

import (
	"errors"
	"fmt"

	"github.com/adrichey/go-chip8vm/emulator"
)

// Type is the first byte of a message sent to the browser.
type Type = uint8

const (
	// Frame is followed by the packed screen, see FrameBuffer.Packed().
	Frame Type = iota
	// Tone is followed by 1 while the buzzer sounds and 0 otherwise.
	Tone
)

// Event is the first byte of a message sent by the browser.
type Event = uint8

const (
	_ Event = iota
	// Key is followed by the keypad index and 1 for down or 0 for up.
	Key
	Reset
	Closing = 255
)

var ErrBadMessage = errors.New("bad message")

// input is a decoded browser message.
type input struct {
	event Event
	key   int
	down  bool
}

func encodeFrame(packed []byte) []byte {
	return append([]byte{Frame}, packed...)
}

func encodeTone(on bool) []byte {
	if on {
		return []byte{Tone, 1}
	}
	return []byte{Tone, 0}
}

func decodeInput(message []byte) (input, error) {
	if len(message) == 0 {
		return input{}, fmt.Errorf("%w: empty", ErrBadMessage)
	}

	switch message[0] {
	case Key:
		if len(message) != 3 {
			return input{}, fmt.Errorf("%w: key message of %d bytes", ErrBadMessage, len(message))
		}
		if message[1] >= emulator.KEY_COUNT {
			return input{}, fmt.Errorf("%w: key 0x%02X", ErrBadMessage, message[1])
		}
		return input{event: Key, key: int(message[1]), down: message[2] != 0}, nil
	case Reset, Closing:
		return input{event: message[0]}, nil
	}

	return input{}, fmt.Errorf("%w: event 0x%02X", ErrBadMessage, message[0])
}
