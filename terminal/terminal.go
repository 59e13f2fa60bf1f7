// Package terminal runs the machine in a text terminal. The screen is drawn
// with half block characters, two pixel rows per line of text.
package terminal

import (
	"bufio"
	"fmt"
	"io"

	"github.com/adrichey/go-chip8vm/emulator"
	"github.com/adrichey/go-chip8vm/runner"
	"github.com/pkg/term"
	"github.com/retroenv/retrogolib/log"
)

// list of ASCII codes with a meaning of their own
const (
	keyInterrupt = 3
	keyEsc       = 27
	keyBackspace = 8
	keyDelete    = 127
)

// a terminal only reports key presses, a key counts as held for this many
// frames after the last time it was seen.
const holdFrames = 6

const (
	cursorHome = "\x1b[H"
	clearAll   = "\x1b[2J"
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

// Terminal implements runner.Frontend on the controlling terminal.
type Terminal struct {
	tty    *term.Term
	out    *bufio.Writer
	logger *log.Logger

	input chan byte
	done  chan struct{} // closed by Close
	keys  keyboard
}

// Open puts the controlling terminal into raw mode. Output goes to out.
func Open(out io.Writer, logger *log.Logger) (*Terminal, error) {
	tty, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}

	if logger == nil {
		logger = log.NewNop()
	}

	t := &Terminal{
		tty:    tty,
		out:    bufio.NewWriter(out),
		logger: logger,
		input:  make(chan byte, 64),
		done:   make(chan struct{}),
	}

	go t.read(tty)

	_, _ = t.out.WriteString(clearAll + hideCursor)
	_ = t.out.Flush()

	return t, nil
}

// read forwards input bytes from r until r fails or the terminal is closed.
// A full input channel never keeps it alive past Close.
func (t *Terminal) read(r io.Reader) {
	defer close(t.input)

	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case t.input <- b:
			case <-t.done:
				return
			}
		}
		if err != nil {
			t.logger.Debug("terminal input stopped", log.Err(err))
			return
		}
	}
}

// Close restores the terminal to the mode it was in before Open.
func (t *Terminal) Close() error {
	close(t.done)

	_, _ = t.out.WriteString(showCursor + "\r\n")
	_ = t.out.Flush()

	if err := t.tty.Restore(); err != nil {
		_ = t.tty.Close()
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return t.tty.Close()
}

// Poll handles the input that arrived since the last frame. Escape or ^C
// quits, backspace resets the machine.
func (t *Terminal) Poll(keys *emulator.Keypad) runner.Event {
	ev := runner.EventNone

	for {
		select {
		case b, ok := <-t.input:
			if !ok {
				return runner.EventQuit
			}
			if e := t.keys.feed(b, keys); ev == runner.EventNone {
				ev = e
			}
			continue
		default:
		}
		break
	}

	t.keys.expire(keys)

	return ev
}

// Present draws fb and clears its dirty flag.
func (t *Terminal) Present(fb *emulator.FrameBuffer) error {
	if _, err := t.out.WriteString(cursorHome); err != nil {
		return err
	}
	if err := Render(t.out, fb); err != nil {
		return err
	}
	if err := t.out.Flush(); err != nil {
		return err
	}

	fb.ClearDirty()

	return nil
}

// Render writes fb as 16 lines of half block characters. Lines end in
// "\r\n" since a raw mode terminal doesn't translate newlines.
func Render(w io.Writer, fb *emulator.FrameBuffer) error {
	line := make([]rune, 0, emulator.VIDEO_WIDTH)

	for y := 0; y < emulator.VIDEO_HEIGHT; y += 2 {
		line = line[:0]
		for x := 0; x < emulator.VIDEO_WIDTH; x++ {
			line = append(line, halfBlock(fb.Pixel(x, y), fb.Pixel(x, y+1)))
		}
		if _, err := fmt.Fprintf(w, "%s\r\n", string(line)); err != nil {
			return err
		}
	}
	return nil
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	}
	return ' '
}
