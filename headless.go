package main

import (
	"github.com/adrichey/go-chip8vm/emulator"
	"github.com/adrichey/go-chip8vm/runner"
	"github.com/adrichey/go-chip8vm/screendigest"
	"github.com/retroenv/retrogolib/log"
)

// headless is a frontend without a screen or a keyboard. It logs a digest of
// every distinct screen, which makes runs easy to compare.
type headless struct {
	logger  *log.Logger
	screens screendigest.Tracker
	changes int
}

func (h *headless) Poll(*emulator.Keypad) runner.Event {
	return runner.EventNone
}

func (h *headless) Present(fb *emulator.FrameBuffer) error {
	if h.screens.Changed(fb.Packed()) {
		h.changes++
		h.logger.Info("screen", log.Stringer("digest", h.screens.Last()), log.Int("changes", h.changes))
	}
	fb.ClearDirty()
	return nil
}
