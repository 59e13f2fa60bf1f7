package emulator

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDrawTwiceClears(t *testing.T) {
	c8 := newTestMachine(t)
	c8.registers[1] = 10
	c8.registers[2] = 5

	// digit 0 from the font table, 5 rows
	c8.indexRegister = FONTSET_START_ADDRESS
	execute(t, c8, 0xD125)
	assert.Equal(t, byte(0), c8.V(FLAG_REGISTER))
	assert.True(t, c8.screen.Pixel(10, 5))
	assert.False(t, c8.screen.Pixel(11, 6))

	execute(t, c8, 0xD125)
	assert.Equal(t, byte(1), c8.V(FLAG_REGISTER))
	for y := 0; y < VIDEO_HEIGHT; y++ {
		for x := 0; x < VIDEO_WIDTH; x++ {
			assert.False(t, c8.screen.Pixel(x, y))
		}
	}
}

func TestDrawCollisionResetsFlag(t *testing.T) {
	c8 := newTestMachine(t)
	c8.registers[FLAG_REGISTER] = 1
	c8.indexRegister = FONTSET_START_ADDRESS

	execute(t, c8, 0xD015)

	assert.Equal(t, byte(0), c8.V(FLAG_REGISTER))
}

func TestDrawClips(t *testing.T) {
	c8 := newTestMachine(t)
	c8.memory[0x300] = 0xFF
	c8.memory[0x301] = 0xFF
	c8.indexRegister = 0x300
	c8.registers[1] = 60
	c8.registers[2] = 31

	execute(t, c8, 0xD122)

	for x := 60; x < VIDEO_WIDTH; x++ {
		assert.True(t, c8.screen.Pixel(x, 31))
	}
	// nothing wrapped to the left edge or the top
	for x := 0; x < 4; x++ {
		assert.False(t, c8.screen.Pixel(x, 31))
		assert.False(t, c8.screen.Pixel(x, 0))
	}
	assert.False(t, c8.screen.Pixel(60, 0))
}

func TestDrawOffScreen(t *testing.T) {
	c8 := newTestMachine(t)
	c8.indexRegister = FONTSET_START_ADDRESS
	c8.registers[1] = 200
	c8.registers[2] = 100
	c8.screen.ClearDirty()

	execute(t, c8, 0xD125)

	assert.True(t, c8.screen.Dirty(), "a draw always sets the dirty flag")
	assert.Equal(t, byte(0), c8.V(FLAG_REGISTER))
	assert.Equal(t, make([]byte, 256), c8.screen.Packed())
}

func TestDrawZeroRows(t *testing.T) {
	c8 := newTestMachine(t)
	c8.indexRegister = 0xFFFF
	c8.screen.ClearDirty()

	execute(t, c8, 0xD120)

	assert.True(t, c8.screen.Dirty())
	assert.Equal(t, START_ADDRESS+2, c8.PC())
}

func TestDrawOverflow(t *testing.T) {
	c8 := newTestMachine(t, 0xD1, 0x25)
	c8.indexRegister = 0xFFD
	c8.registers[FLAG_REGISTER] = 0x55
	c8.screen.ClearDirty()

	err := c8.Step()
	assert.ErrorIs(t, err, ErrAddressOverflow)
	assert.False(t, c8.screen.Dirty(), "a failed draw leaves the screen alone")
	assert.Equal(t, byte(0x55), c8.V(FLAG_REGISTER))
}

func TestPacked(t *testing.T) {
	var fb FrameBuffer
	fb.drawSprite(0, 0, []byte{0x81})
	fb.drawSprite(63, 31, []byte{0x80})

	packed := fb.Packed()
	assert.Equal(t, byte(0x81), packed[0])
	assert.Equal(t, byte(0x01), packed[255])
}

func TestSnapshotIsCopy(t *testing.T) {
	var fb FrameBuffer
	fb.drawSprite(0, 0, []byte{0x80})

	snap := fb.Snapshot()
	fb.clear()

	assert.True(t, snap.Pixel(0, 0))
	assert.False(t, fb.Pixel(0, 0))
}
