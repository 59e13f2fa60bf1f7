// Package screendigest hashes frame buffer contents, so that screens can be
// compared without keeping them around.
package screendigest

import (
	"fmt"

	"github.com/adrichey/go-chip8vm/emulator"
	"github.com/cespare/xxhash"
)

// Digest is the hash of one screen.
type Digest uint64

func (d Digest) String() string {
	return fmt.Sprintf("%016x", uint64(d))
}

// Of hashes the pixels of fb. The dirty flag doesn't take part.
func Of(fb *emulator.FrameBuffer) Digest {
	return Bytes(fb.Packed())
}

// Bytes hashes a screen in the packed layout of FrameBuffer.Packed().
func Bytes(packed []byte) Digest {
	return Digest(xxhash.Sum64(packed))
}

// Tracker remembers the last digest it saw.
type Tracker struct {
	last  Digest
	valid bool
}

// Changed reports whether packed differs from the screen passed to the
// previous call. The first call is always a change.
func (t *Tracker) Changed(packed []byte) bool {
	d := Bytes(packed)
	if t.valid && d == t.last {
		return false
	}
	t.last = d
	t.valid = true
	return true
}

// Last returns the most recent digest.
func (t *Tracker) Last() Digest {
	return t.last
}
