package emulator

/*
The CHIP-8 has two countdown timers, delay and sound.
If a timer value is zero, it stays zero.
If it is loaded with a value, it is decremented by every tick. The ticks come
from outside, conventionally at 60Hz.
While the sound timer is non-zero a tone should be playing.
*/
const DEFAULT_TIMER_VALUE byte = 0xFF

type timers struct {
	delay byte
	sound byte
}

func (t *timers) tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

func (t *timers) reset() {
	t.delay = DEFAULT_TIMER_VALUE
	t.sound = DEFAULT_TIMER_VALUE
}
