// Package config handles the command line and the setup that depends on it.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/adrichey/go-chip8vm/runner"
)

// frontends
const (
	SDL      = "sdl"
	Terminal = "terminal"
	Web      = "web"
	Headless = "headless"
)

var frontends = []string{SDL, Terminal, Web, Headless}

// DEFAULT_FRAMES is the length of a headless run, ten seconds of machine time.
const DEFAULT_FRAMES = 600

const DEFAULT_STATSVIEW_ADDR = "localhost:12600"

const (
	DEFAULT_SCALE = 20
	DEFAULT_ADDR  = ":8090"
)

type Options struct {
	Input string

	Frontend              string
	InstructionsPerSecond int
	Scale                 int
	Grid                  bool
	Addr                  string
	Frames                int

	// Wav records the tone to this file instead of playing it.
	Wav string

	Disassemble bool
	Debug       bool
	Quiet       bool

	StatsView     bool
	StatsViewAddr string
}

// ParseFlags parses the command line arguments, without the program name.
func ParseFlags(args []string) (Options, error) {
	flags := flag.NewFlagSet("chip8vm", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	rest := flags.Args()
	if len(rest) == 0 {
		return opts, &UsageError{flags: flags, msg: "no ROM file given"}
	}
	if len(rest) > 1 {
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("argument %s found after the ROM file, options have to come first", rest[1]),
		}
	}
	opts.Input = rest[0]

	if err := normalizeOptions(&opts); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	return opts, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *Options) {
	flags.StringVar(&opts.Frontend, "frontend", SDL, "where the machine runs ("+strings.Join(frontends, "/")+")")
	flags.IntVar(&opts.InstructionsPerSecond, "ips", runner.DefaultInstructionsPerSecond, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", DEFAULT_SCALE, "window pixels per screen pixel (sdl)")
	flags.BoolVar(&opts.Grid, "grid", false, "draw the pixel and sprite block grid (sdl)")
	flags.StringVar(&opts.Addr, "addr", DEFAULT_ADDR, "listen address (web)")
	flags.IntVar(&opts.Frames, "frames", DEFAULT_FRAMES, "number of frames to run (headless)")
	flags.StringVar(&opts.Wav, "wav", "", "record the tone to this .wav file instead of playing it")
	flags.BoolVar(&opts.Disassemble, "disassemble", false, "print the disassembled ROM and exit")
	flags.BoolVar(&opts.Debug, "debug", false, "log every executed instruction")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")
	flags.BoolVar(&opts.StatsView, "statsview", false, "serve runtime statistics charts")
	flags.StringVar(&opts.StatsViewAddr, "statsview-addr", DEFAULT_STATSVIEW_ADDR, "listen address of the statistics server")
}

func normalizeOptions(opts *Options) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if !slices.Contains(frontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s", opts.Frontend, strings.Join(frontends, ", "))
	}

	switch {
	case opts.InstructionsPerSecond <= 0:
		return fmt.Errorf("instructions per second has to be positive, got %d", opts.InstructionsPerSecond)
	case opts.Scale <= 0:
		return fmt.Errorf("scale has to be positive, got %d", opts.Scale)
	case opts.Frames <= 0:
		return fmt.Errorf("frames has to be positive, got %d", opts.Frames)
	}

	return nil
}

// UsageError is a problem with the command line. The usage text helps more
// than the error alone.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: chip8vm [options] <ROM file>\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}
