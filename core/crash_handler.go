// Package core holds process-wide crash handling shared by the command and the loop goroutines.
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/lixenwraith/ascii-donut/terminal"
)

var (
	crashMu       sync.Mutex
	crashTerminal terminal.Terminal
	crashHooks    []func(r any)

	// Swapped by tests
	crashStdout io.Writer = os.Stdout
	crashStderr io.Writer = os.Stderr
	crashExit             = os.Exit
)

// RegisterTerminal makes HandleCrash restore term through Fini instead of a blind reset
func RegisterTerminal(term terminal.Terminal) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashTerminal = term
}

// OnCrash registers fn to run after the terminal is restored and before the process exits
func OnCrash(fn func(r any)) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashHooks = append(crashHooks, fn)
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	term := crashTerminal
	hooks := append(([]func(r any))(nil), crashHooks...)
	crashMu.Unlock()

	// Terminal cleanup if available
	if term != nil {
		term.Fini()
	} else {
		terminal.EmergencyReset(crashStdout)
	}

	// Use \r\n in case the terminal is still in raw mode
	fmt.Fprintf(crashStderr, "\r\n\x1b[31mDONUT CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashStderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	for _, hook := range hooks {
		hook(r)
	}

	crashExit(1)
}

// Recover handles a panic in the calling goroutine; use as `defer core.Recover()`
func Recover() {
	if r := recover(); r != nil {
		HandleCrash(r)
	}
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer Recover()
		fn()
	}()
}
