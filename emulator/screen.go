package emulator

const VIDEO_HEIGHT = 32
const VIDEO_WIDTH = 64

// FrameBuffer is the 64x32 monochrome display. The interpreter is the only
// writer; a renderer reads the pixels when Dirty() is true and calls
// ClearDirty() once it has consumed the frame.
type FrameBuffer struct {
	pixels [VIDEO_HEIGHT][VIDEO_WIDTH]bool
	dirty  bool
}

// Pixel returns the state of the pixel at x, y. Coordinates outside the
// screen are always off.
func (fb *FrameBuffer) Pixel(x, y int) bool {
	if x < 0 || x >= VIDEO_WIDTH || y < 0 || y >= VIDEO_HEIGHT {
		return false
	}
	return fb.pixels[y][x]
}

// Dirty is true if the frame buffer changed since the last ClearDirty().
func (fb *FrameBuffer) Dirty() bool {
	return fb.dirty
}

func (fb *FrameBuffer) ClearDirty() {
	fb.dirty = false
}

// Snapshot returns a copy of the frame buffer, for consumers that live on
// another goroutine.
func (fb *FrameBuffer) Snapshot() FrameBuffer {
	return *fb
}

/*
Packed returns the screen as 256 bytes, one bit per pixel. Each row is 8 bytes
and the most significant bit of a byte is the leftmost pixel, the same layout
the sprites use.
*/
func (fb *FrameBuffer) Packed() []byte {
	out := make([]byte, VIDEO_WIDTH*VIDEO_HEIGHT/8)
	for y := range fb.pixels {
		for x, on := range fb.pixels[y] {
			if on {
				out[y*VIDEO_WIDTH/8+x/8] |= 0x80 >> (x % 8)
			}
		}
	}
	return out
}

func (fb *FrameBuffer) clear() {
	fb.pixels = [VIDEO_HEIGHT][VIDEO_WIDTH]bool{}
	fb.dirty = true
}

/*
drawSprite XORs sprite onto the screen with its top left corner at x, y.
Every byte of the sprite is one 8 pixel row. Pixels that fall outside the
screen are dropped rather than wrapped around.
Returns true if any pixel that was on got turned off.
*/
func (fb *FrameBuffer) drawSprite(x, y int, sprite []byte) bool {
	collision := false

	for row, bits := range sprite {
		py := y + row
		if py >= VIDEO_HEIGHT {
			break
		}

		for col := 0; col < 8; col++ {
			px := x + col
			if px >= VIDEO_WIDTH {
				break
			}

			if bits&(0x80>>col) == 0 {
				continue
			}

			if fb.pixels[py][px] {
				collision = true
			}
			fb.pixels[py][px] = !fb.pixels[py][px]
		}
	}

	// a draw always counts as a change, even if no pixel flipped
	fb.dirty = true

	return collision
}
