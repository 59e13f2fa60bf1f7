// Package main implements a CHIP-8 interpreter with SDL, terminal, browser and
// headless frontends.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/adrichey/go-chip8vm/config"
	"github.com/adrichey/go-chip8vm/emulator"
	"github.com/adrichey/go-chip8vm/platform"
	"github.com/adrichey/go-chip8vm/rom"
	"github.com/adrichey/go-chip8vm/runner"
	"github.com/adrichey/go-chip8vm/statsview"
	"github.com/adrichey/go-chip8vm/terminal"
	"github.com/adrichey/go-chip8vm/wavsink"
	"github.com/adrichey/go-chip8vm/web"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func init() {
	// SDL wants all calls on the main thread
	runtime.LockOSThread()
}

func main() {
	opts, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			config.PrintBanner(os.Stdout, opts, version, commit, date)
			logger.Error(usageErr.Error())
			usageErr.ShowUsage(os.Stdout)
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if !opts.Disassemble {
		config.PrintBanner(os.Stdout, opts, version, commit, date)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, opts, logger)
	stop()

	if err != nil {
		logger.Error("stopped", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts config.Options, logger *log.Logger) error {
	program, err := rom.LoadFile(opts.Input)
	if err != nil {
		return err
	}

	if opts.Disassemble {
		return emulator.DisassembleProgram(os.Stdout, program)
	}

	vm := emulator.New(emulator.Options{Logger: logger})
	if err := vm.Load(program); err != nil {
		return err
	}

	if opts.StatsView {
		stopStats := statsview.Launch(opts.StatsViewAddr, logger)
		defer stopStats()
	}

	fe, audio, closers, err := openFrontend(opts, logger)
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if cerr := closers[i].Close(); cerr != nil {
				logger.Warn("closing", log.Err(cerr))
			}
		}
	}()
	if err != nil {
		return err
	}

	r := runner.New(vm, fe, audio, runner.Config{
		InstructionsPerSecond: opts.InstructionsPerSecond,
		Logger:                logger,
	})

	if opts.Frontend == config.Headless {
		err = r.RunFrames(opts.Frames)
	} else {
		err = r.Run(ctx)
	}

	return report(os.Stderr, vm, err, logger)
}

// openFrontend returns the frontend and audio sink for opts, and whatever
// has to be closed once the run is over, in opening order. The closers are
// valid even when an error is returned.
func openFrontend(opts config.Options, logger *log.Logger) (runner.Frontend, runner.AudioSink, []io.Closer, error) {
	var closers []io.Closer
	var fe runner.Frontend
	var audio runner.AudioSink

	switch opts.Frontend {
	case config.SDL:
		p, err := platform.New(platform.Options{Scale: opts.Scale, Grid: opts.Grid})
		if err != nil {
			return nil, nil, closers, err
		}
		closers = append(closers, p)
		fe = p

		if opts.Wav == "" {
			aud, err := p.Audio()
			if err != nil {
				logger.Warn("no audio", log.Err(err))
			} else {
				audio = aud
			}
		}

	case config.Terminal:
		t, err := terminal.Open(os.Stdout, logger)
		if err != nil {
			return nil, nil, closers, err
		}
		closers = append(closers, t)
		fe = t

	case config.Web:
		s, err := web.Listen(opts.Addr, logger)
		if err != nil {
			return nil, nil, closers, err
		}
		closers = append(closers, s)
		fe = s
		audio = s

	default:
		fe = &headless{logger: logger}
	}

	if opts.Wav != "" {
		sink, err := wavsink.Create(opts.Wav)
		if err != nil {
			return nil, nil, closers, err
		}
		closers = append(closers, sink)
		audio = sink
	}

	return fe, audio, closers, nil
}

// report turns the end of a run into the error main exits with. A fault is
// printed with the machine state, cancelling isn't an error.
func report(w io.Writer, vm *emulator.Chip8, err error, logger *log.Logger) error {
	var fault *emulator.Fault
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		logger.Info("operation cancelled")
		return nil
	case errors.As(err, &fault):
		fmt.Fprintf(w, "machine fault: %v\n%s\n", fault, vm)
		return fault
	}
	return err
}
