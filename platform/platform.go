// Package platform is the SDL2 host: a window that shows the frame buffer,
// the keyboard as keypad and the buzzer as a square wave.
package platform

import (
	"fmt"

	"github.com/adrichey/go-chip8vm/emulator"
	"github.com/adrichey/go-chip8vm/runner"
	"github.com/veandco/go-sdl2/sdl"
)

const WINDOW_TITLE = "CHIP-8"

// DEFAULT_SCALE is the size in window pixels of one screen pixel.
const DEFAULT_SCALE = 20

type Options struct {
	Scale int

	// Grid draws a grey outline around every pixel and a red one around
	// every 8x4 block, which is handy when debugging sprites.
	Grid bool
}

// Platform implements runner.Frontend. SDL has to be driven from the main
// thread, so the caller locks it before New.
type Platform struct {
	window   *sdl.Window
	renderer *sdl.Renderer

	scale int32
	grid  bool

	audio *Audio
}

func New(opts Options) (*Platform, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = DEFAULT_SCALE
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("initialising sdl: %w", err)
	}

	p := &Platform{
		scale: int32(scale),
		grid:  opts.Grid,
	}

	var winWidth, winHeight int32 = emulator.VIDEO_WIDTH * p.scale, emulator.VIDEO_HEIGHT * p.scale

	window, err := sdl.CreateWindow(WINDOW_TITLE, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, winWidth, winHeight, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}
	p.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	p.renderer = renderer

	return p, nil
}

// Audio opens the SDL audio device. The device is closed with the platform.
func (p *Platform) Audio() (*Audio, error) {
	if p.audio != nil {
		return p.audio, nil
	}
	aud, err := NewAudio()
	if err != nil {
		return nil, err
	}
	p.audio = aud
	return aud, nil
}

// Close releases everything New and Audio created and shuts SDL down.
func (p *Platform) Close() error {
	var err error
	if p.audio != nil {
		p.audio.Close()
		p.audio = nil
	}
	if p.renderer != nil {
		err = p.renderer.Destroy()
		p.renderer = nil
	}
	if p.window != nil {
		if werr := p.window.Destroy(); err == nil {
			err = werr
		}
		p.window = nil
	}
	sdl.Quit()
	return err
}

// Poll drains the SDL event queue into keys. Escape or closing the window
// quits, F5 resets the machine.
func (p *Platform) Poll(keys *emulator.Keypad) runner.Event {
	ev := runner.EventNone

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			ev = runner.EventQuit
		case *sdl.KeyboardEvent:
			down := t.Type == sdl.KEYDOWN

			switch t.Keysym.Sym {
			case sdl.K_ESCAPE:
				if down {
					ev = runner.EventQuit
				}
			case sdl.K_F5:
				if down && t.Repeat == 0 && ev == runner.EventNone {
					ev = runner.EventReset
				}
			default:
				key, ok := keypadIndex(t.Keysym.Sym)
				if !ok {
					continue
				}
				if down {
					keys.Press(key)
				} else {
					keys.Release(key)
				}
			}
		}
	}

	return ev
}

// Present draws fb and clears its dirty flag.
func (p *Platform) Present(fb *emulator.FrameBuffer) error {
	if err := p.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return err
	}
	if err := p.renderer.Clear(); err != nil {
		return err
	}

	if err := p.renderer.SetDrawColor(255, 255, 255, 255); err != nil {
		return err
	}
	for y := 0; y < emulator.VIDEO_HEIGHT; y++ {
		for x := 0; x < emulator.VIDEO_WIDTH; x++ {
			if !fb.Pixel(x, y) {
				continue
			}
			rect := &sdl.Rect{X: int32(x) * p.scale, Y: int32(y) * p.scale, W: p.scale, H: p.scale}
			if err := p.renderer.FillRect(rect); err != nil {
				return err
			}
		}
	}

	if p.grid {
		if err := p.drawGrid(); err != nil {
			return err
		}
	}

	p.renderer.Present()
	fb.ClearDirty()

	return nil
}

func (p *Platform) drawGrid() error {
	for _, line := range gridLines(p.scale) {
		if line.block {
			if err := p.renderer.SetDrawColor(255, 0, 0, 255); err != nil {
				return err
			}
		} else {
			if err := p.renderer.SetDrawColor(64, 64, 64, 255); err != nil {
				return err
			}
		}
		if err := p.renderer.DrawLine(line.x1, line.y1, line.x2, line.y2); err != nil {
			return err
		}
	}
	return nil
}

type gridLine struct {
	x1, y1, x2, y2 int32
	block          bool
}

// gridLines returns the pixel outlines first and the block outlines last, so
// the red lines end up on top.
func gridLines(scale int32) []gridLine {
	w, h := emulator.VIDEO_WIDTH*scale, emulator.VIDEO_HEIGHT*scale

	var lines, blocks []gridLine
	for x := int32(0); x <= emulator.VIDEO_WIDTH; x++ {
		l := gridLine{x1: x * scale, y1: 0, x2: x * scale, y2: h, block: x%8 == 0}
		if l.block {
			blocks = append(blocks, l)
		} else {
			lines = append(lines, l)
		}
	}
	for y := int32(0); y <= emulator.VIDEO_HEIGHT; y++ {
		l := gridLine{x1: 0, y1: y * scale, x2: w, y2: y * scale, block: y%4 == 0}
		if l.block {
			blocks = append(blocks, l)
		} else {
			lines = append(lines, l)
		}
	}

	return append(lines, blocks...)
}
