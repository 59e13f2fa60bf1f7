package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := ParseFlags([]string{"pong.ch8"})
	assert.NoError(t, err)

	assert.Equal(t, "pong.ch8", opts.Input)
	assert.Equal(t, SDL, opts.Frontend)
	assert.Equal(t, 700, opts.InstructionsPerSecond)
	assert.Equal(t, 20, opts.Scale)
	assert.Equal(t, ":8090", opts.Addr)
	assert.Equal(t, DEFAULT_FRAMES, opts.Frames)
	assert.False(t, opts.Grid)
	assert.False(t, opts.Disassemble)
	assert.Equal(t, "", opts.Wav)
}

func TestParseFlags(t *testing.T) {
	opts, err := ParseFlags([]string{
		"-frontend", "Headless", "-ips", "1200", "-frames", "30",
		"-wav", "out.wav", "-grid", "-scale", "10", "-debug", "pong.ch8",
	})
	assert.NoError(t, err)

	assert.Equal(t, Headless, opts.Frontend)
	assert.Equal(t, 1200, opts.InstructionsPerSecond)
	assert.Equal(t, 30, opts.Frames)
	assert.Equal(t, "out.wav", opts.Wav)
	assert.Equal(t, 10, opts.Scale)
	assert.True(t, opts.Grid)
	assert.True(t, opts.Debug)
}

func TestParseFlagsUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no rom", nil},
		{"unknown flag", []string{"-nope", "pong.ch8"}},
		{"flag after rom", []string{"pong.ch8", "-debug"}},
		{"unknown frontend", []string{"-frontend", "vga", "pong.ch8"}},
		{"zero ips", []string{"-ips", "0", "pong.ch8"}},
		{"negative scale", []string{"-scale", "-1", "pong.ch8"}},
		{"zero frames", []string{"-frames", "0", "pong.ch8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr), "not a usage error")

			var out bytes.Buffer
			usageErr.ShowUsage(&out)
			assert.True(t, strings.HasPrefix(out.String(), "usage: chip8vm"))
			assert.True(t, strings.Contains(out.String(), "-frontend"))
		})
	}
}

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer

	logger := NewLogger(&out, false, false)
	logger.Debug("hidden")
	logger.Info("shown")
	assert.False(t, strings.Contains(out.String(), "hidden"))
	assert.True(t, strings.Contains(out.String(), "shown"))

	out.Reset()
	logger = NewLogger(&out, false, true)
	logger.Info("hidden")
	logger.Error("shown")
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))

	logger = NewLogger(&out, true, true)
	assert.Equal(t, log.DebugLevel, logger.Level())
}

func TestPrintBanner(t *testing.T) {
	var out bytes.Buffer
	PrintBanner(&out, Options{}, "1.2.3", "", "")
	assert.True(t, strings.Contains(out.String(), "chip8vm"))
	assert.True(t, strings.Contains(out.String(), "version: "))

	out.Reset()
	PrintBanner(&out, Options{Quiet: true}, "1.2.3", "", "")
	assert.Equal(t, 0, out.Len())
}
