// Package rom loads CHIP-8 program images. An image is a raw byte stream,
// copied verbatim into memory from 0x200.
package rom

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/adrichey/go-chip8vm/emulator"
)

// MaxSize is the largest image that fits between 0x200 and 0xFFF.
const MaxSize = emulator.MEMORY_SIZE - int(emulator.START_ADDRESS)

var (
	ErrEmpty    = errors.New("ROM is empty")
	ErrTooLarge = errors.New("ROM does not fit into memory")
)

// Read reads a program image from r.
func Read(r io.Reader) ([]byte, error) {
	// read one byte more than fits, to tell a full image from an oversized one
	data, err := io.ReadAll(io.LimitReader(r, int64(MaxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}

	switch {
	case len(data) == 0:
		return nil, ErrEmpty
	case len(data) > MaxSize:
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, MaxSize)
	}

	return data, nil
}

// LoadFile reads the program image at path.
func LoadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ROM '%s': %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}
