package config

import (
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/buildinfo"
)

// PrintBanner writes the program name and version, unless quiet.
func PrintBanner(w io.Writer, opts Options, version, commit, date string) {
	if opts.Quiet {
		return
	}
	fmt.Fprintln(w, "[------------------------------]")
	fmt.Fprintln(w, "[ chip8vm - CHIP-8 interpreter ]")
	fmt.Fprintf(w, "[------------------------------]\n\n")
	fmt.Fprintf(w, "version: %s\n\n", buildinfo.Version(version, commit, date))
}
