// Package runner is the clock driver. It owns real time pacing: once per
// frame it polls the frontend for input, runs a batch of instructions, ticks
// the timers, updates the tone and hands a changed screen to the frontend.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/adrichey/go-chip8vm/emulator"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the rate of the timer tick, and of everything else the
// runner does once per frame.
const FrameRate = 60

// DefaultInstructionsPerSecond is a speed most programs are written for.
const DefaultInstructionsPerSecond = 700

// Machine is what the runner drives. *emulator.Chip8 implements it.
type Machine interface {
	Step() error
	Tick()
	Reset()
	ToneEnabled() bool
	FrameBuffer() *emulator.FrameBuffer
	Keys() *emulator.Keypad
}

// Event is the result of polling a frontend.
type Event int

const (
	EventNone Event = iota
	EventQuit
	EventReset
)

// Frontend is the renderer and the input mapper of a host.
type Frontend interface {
	// Poll translates pending host input into keypad presses and releases.
	Poll(keys *emulator.Keypad) Event

	// Present draws the frame buffer. Called only when it is dirty, the
	// frontend clears the dirty flag once it consumed the frame.
	Present(fb *emulator.FrameBuffer) error
}

// AudioSink follows the tone signal of the machine.
type AudioSink interface {
	SetTone(on bool) error
}

type Config struct {
	// InstructionsPerSecond defaults to DefaultInstructionsPerSecond.
	InstructionsPerSecond int

	// Logger defaults to a logger that discards everything.
	Logger *log.Logger
}

// Runner drives a machine. All access to the machine happens on the
// goroutine that calls Run or RunFrames.
type Runner struct {
	vm       Machine
	frontend Frontend
	audio    AudioSink
	logger   *log.Logger

	perFrame int
	frames   uint64
}

// New creates a runner. audio may be nil.
func New(vm Machine, frontend Frontend, audio AudioSink, cfg Config) *Runner {
	r := &Runner{
		vm:       vm,
		frontend: frontend,
		audio:    audio,
		logger:   cfg.Logger,
	}

	ips := cfg.InstructionsPerSecond
	if ips <= 0 {
		ips = DefaultInstructionsPerSecond
	}
	r.perFrame = max(1, ips/FrameRate)

	if r.audio == nil {
		r.audio = silence{}
	}
	if r.logger == nil {
		r.logger = log.NewNop()
	}

	return r
}

// Frames is the number of frames run so far.
func (r *Runner) Frames() uint64 {
	return r.frames
}

// Run runs frames at FrameRate until the frontend quits, the machine faults
// or ctx is done. A quit returns nil, a fault is returned as is.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	r.logger.Info("running", log.Int("instructions_per_frame", r.perFrame), log.Int("frame_rate", FrameRate))

	for {
		done, err := r.frame()
		if err != nil || done {
			r.logger.Info("stopped", log.Uint64("frames", r.frames))
			return err
		}

		select {
		case <-ctx.Done():
			r.logger.Info("cancelled", log.Uint64("frames", r.frames))
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunFrames runs n frames as fast as possible. It stops early when the
// frontend quits or the machine faults.
func (r *Runner) RunFrames(n int) error {
	for i := 0; i < n; i++ {
		done, err := r.frame()
		if err != nil || done {
			return err
		}
	}
	return nil
}

func (r *Runner) frame() (bool, error) {
	keys := r.vm.Keys()

	switch r.frontend.Poll(keys) {
	case EventQuit:
		return true, nil
	case EventReset:
		r.logger.Info("reset", log.Uint64("frame", r.frames))
		r.vm.Reset()
	}

	for i := 0; i < r.perFrame; i++ {
		if err := r.vm.Step(); err != nil {
			return true, err
		}

		// nothing changes until the next poll delivers a key
		if keys.Awaiting() {
			break
		}
	}

	r.vm.Tick()

	if err := r.audio.SetTone(r.vm.ToneEnabled()); err != nil {
		return true, fmt.Errorf("audio: %w", err)
	}

	if fb := r.vm.FrameBuffer(); fb.Dirty() {
		if err := r.frontend.Present(fb); err != nil {
			return true, fmt.Errorf("presenting frame: %w", err)
		}
	}

	r.frames++

	return false, nil
}

type silence struct{}

func (silence) SetTone(bool) error { return nil }
