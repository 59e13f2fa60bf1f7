package emulator

/*
Key Mappings:
Keypad       Keyboard
+-+-+-+-+    +-+-+-+-+
|1|2|3|C|    |1|2|3|4|
+-+-+-+-+    +-+-+-+-+
|4|5|6|D|    |Q|W|E|R|
+-+-+-+-+ => +-+-+-+-+
|7|8|9|E|    |A|S|D|F|
+-+-+-+-+    +-+-+-+-+
|A|0|B|F|    |Z|X|C|V|
+-+-+-+-+    +-+-+-+-+

The keyboard side of the table belongs to the host. The core only knows the
keypad indices 0x0 to 0xF.
*/
const KEY_COUNT = 16

// Keypad is the input latch: the current state of the 16 keys, plus the
// awaiting-key state used by Fx0A.
type Keypad struct {
	keys [KEY_COUNT]bool

	// set while Fx0A is blocked waiting for a key
	awaiting bool

	// first key asserted while awaiting
	latched    byte
	hasLatched bool
}

// Press asserts key. Indices outside 0x0-0xF are ignored.
func (k *Keypad) Press(key int) {
	if key < 0 || key >= KEY_COUNT {
		return
	}
	if k.awaiting && !k.hasLatched && !k.keys[key] {
		k.latched = byte(key)
		k.hasLatched = true
	}
	k.keys[key] = true
}

// Release deasserts key. Indices outside 0x0-0xF are ignored.
func (k *Keypad) Release(key int) {
	if key < 0 || key >= KEY_COUNT {
		return
	}
	k.keys[key] = false
}

// Pressed returns the state of key. Indices outside 0x0-0xF are never pressed.
func (k *Keypad) Pressed(key int) bool {
	if key < 0 || key >= KEY_COUNT {
		return false
	}
	return k.keys[key]
}

// Awaiting is true while the machine is blocked in Fx0A.
func (k *Keypad) Awaiting() bool {
	return k.awaiting
}

/*
awaitKey is the state machine behind Fx0A.

Idle: if a key is already down the lowest such key is returned straight away,
otherwise we move to the awaiting state.
Awaiting: nothing happens until Press() latches a key, that key is returned
and we are back to idle.
*/
func (k *Keypad) awaitKey() (byte, bool) {
	if k.awaiting {
		if !k.hasLatched {
			return 0, false
		}
		key := k.latched
		k.awaiting = false
		k.hasLatched = false
		return key, true
	}

	for key, down := range k.keys {
		if down {
			return byte(key), true
		}
	}

	k.awaiting = true
	k.hasLatched = false
	return 0, false
}

func (k *Keypad) resetLatch() {
	k.awaiting = false
	k.hasLatched = false
	k.latched = 0
}
