package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adrichey/go-chip8vm/emulator"
	"github.com/retroenv/retrogolib/assert"
)

type fakeFrontend struct {
	events   []Event
	polls    int
	presents int
	press    int
}

func (f *fakeFrontend) Poll(keys *emulator.Keypad) Event {
	f.polls++
	if f.press >= 0 && f.polls == 3 {
		keys.Press(f.press)
	}
	if len(f.events) == 0 {
		return EventNone
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev
}

func (f *fakeFrontend) Present(fb *emulator.FrameBuffer) error {
	f.presents++
	fb.ClearDirty()
	return nil
}

type fakeAudio struct {
	tones []bool
}

func (a *fakeAudio) SetTone(on bool) error {
	a.tones = append(a.tones, on)
	return nil
}

func newMachine(t *testing.T, program ...byte) *emulator.Chip8 {
	t.Helper()

	vm := emulator.New(emulator.Options{})
	assert.NoError(t, vm.Load(program))
	return vm
}

func TestRunFrames(t *testing.T) {
	// loop: ADD V0, 1; JP 0x200
	vm := newMachine(t, 0x70, 0x01, 0x12, 0x00)
	fe := &fakeFrontend{press: -1}
	audio := &fakeAudio{}

	r := New(vm, fe, audio, Config{InstructionsPerSecond: 600})
	assert.NoError(t, r.RunFrames(3))

	assert.Equal(t, uint64(3), r.Frames())
	assert.Equal(t, 3, fe.polls)
	// 10 instructions per frame, half of them are adds
	assert.Equal(t, byte(15), vm.V(0))
	assert.Equal(t, emulator.DEFAULT_TIMER_VALUE-3, vm.DelayTimer())
	assert.Equal(t, []bool{true, true, true}, audio.tones)
	// the power on state is dirty, nothing draws after that
	assert.Equal(t, 1, fe.presents)
}

func TestRunFramesQuit(t *testing.T) {
	vm := newMachine(t, 0x12, 0x00)
	fe := &fakeFrontend{events: []Event{EventNone, EventQuit}, press: -1}

	r := New(vm, fe, nil, Config{})
	assert.NoError(t, r.RunFrames(10))
	assert.Equal(t, uint64(1), r.Frames())
}

func TestRunFramesReset(t *testing.T) {
	vm := newMachine(t, 0x70, 0x01, 0x12, 0x00)
	fe := &fakeFrontend{events: []Event{EventNone, EventReset}, press: -1}

	r := New(vm, fe, nil, Config{InstructionsPerSecond: 120})
	assert.NoError(t, r.RunFrames(2))

	// the second frame starts from a fresh machine
	assert.Equal(t, byte(1), vm.V(0))
}

func TestRunFramesFault(t *testing.T) {
	vm := newMachine(t, 0x00, 0xEE)
	fe := &fakeFrontend{press: -1}

	r := New(vm, fe, nil, Config{})
	err := r.RunFrames(5)
	assert.True(t, errors.Is(err, emulator.ErrStackUnderflow))
	assert.Equal(t, uint64(0), r.Frames())
}

func TestRunFramesKeyWait(t *testing.T) {
	// LD V1, K; JP 0x202
	vm := newMachine(t, 0xF1, 0x0A, 0x12, 0x02)
	fe := &fakeFrontend{press: 0xB}

	r := New(vm, fe, nil, Config{})
	assert.NoError(t, r.RunFrames(2))
	assert.True(t, vm.Keys().Awaiting())
	assert.Equal(t, uint16(0x200), vm.PC())

	// the third poll presses the key
	assert.NoError(t, r.RunFrames(1))
	assert.False(t, vm.Keys().Awaiting())
	assert.Equal(t, byte(0xB), vm.V(1))
	assert.Equal(t, uint16(0x202), vm.PC())
}

func TestRunCancel(t *testing.T) {
	vm := newMachine(t, 0x12, 0x00)
	fe := &fakeFrontend{press: -1}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	r := New(vm, fe, nil, Config{})
	err := r.Run(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, r.Frames() > 0)
}
