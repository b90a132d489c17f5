package main

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// TerminalWidth reports the width of the terminal behind Stdout, or 0
	// when Stdout is not a terminal.
	TerminalWidth func() int

	// StdinIsTerminal reports whether Stdin is interactive. Rendering an
	// interactive stdin would block on user input.
	StdinIsTerminal func() bool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:           os.Stdin,
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		TerminalWidth:   fdWidth(os.Stdout),
		StdinIsTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

func fdWidth(f *os.File) func() int {
	return func() int {
		if !term.IsTerminal(int(f.Fd())) {
			return 0
		}
		w, _, err := term.GetSize(int(f.Fd()))
		if err != nil {
			return 0
		}
		return w
	}
}
