package terminal

import (
	"github.com/adrichey/go-chip8vm/emulator"
	"github.com/adrichey/go-chip8vm/keymap"
	"github.com/adrichey/go-chip8vm/runner"
)

// keyboard turns a stream of key presses into keypad presses and releases.
type keyboard struct {
	// frames left until a key is released, 0 for keys that are up
	held [emulator.KEY_COUNT]int
}

func (k *keyboard) feed(b byte, keys *emulator.Keypad) runner.Event {
	switch b {
	case keyInterrupt, keyEsc:
		return runner.EventQuit
	case keyBackspace, keyDelete:
		return runner.EventReset
	}

	key, ok := keymap.Key(rune(b))
	if !ok {
		return runner.EventNone
	}

	// holdFrames+1 since expire() runs at the end of the same poll
	k.held[key] = holdFrames + 1
	keys.Press(key)

	return runner.EventNone
}

func (k *keyboard) expire(keys *emulator.Keypad) {
	for key, left := range k.held {
		if left == 0 {
			continue
		}
		k.held[key] = left - 1
		if left == 1 {
			keys.Release(key)
		}
	}
}
