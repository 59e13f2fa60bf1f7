package tone

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSquare(t *testing.T) {
	g := New(8, 2, 0.5)

	buf := make([]int16, 8)
	g.Square(buf)

	// two periods of four samples each
	amp := g.amplitude
	assert.Equal(t, []int16{amp, amp, -amp, -amp, amp, amp, -amp, -amp}, buf)
}

func TestSquarePhaseCarriesOver(t *testing.T) {
	whole := New(0, 0, 0)
	a := make([]int16, 100)
	whole.Square(a)

	split := New(0, 0, 0)
	b := make([]int16, 100)
	split.Square(b[:37])
	split.Square(b[37:])

	assert.Equal(t, a, b)
}

func TestDefaults(t *testing.T) {
	g := New(0, 0, 2)
	assert.Equal(t, SampleRate, g.SampleRate())

	buf := make([]int16, FrameSamples)
	g.Square(buf)

	high := 0
	for _, s := range buf {
		assert.True(t, s == g.amplitude || s == -g.amplitude, "not a square wave sample")
		if s > 0 {
			high++
		}
	}
	// roughly half of the frame is high
	assert.True(t, high > FrameSamples/2-60 && high < FrameSamples/2+60)

	g.Silence(buf)
	for _, s := range buf {
		assert.Equal(t, int16(0), s)
	}
}
