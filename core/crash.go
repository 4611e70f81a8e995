// Package core holds process-wide crash handling shared by the main loop and its goroutines.
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/lixenwraith/ascii3d/terminal"
)

// Finalizer restores the terminal; terminal.Terminal satisfies it
type Finalizer interface {
	Fini()
}

var crashTerminal atomic.Pointer[Finalizer]

// exit is swapped in tests
var (
	osExit = os.Exit
	exit   = osExit
)

// RegisterTerminal sets the terminal to restore on crash; nil clears it
func RegisterTerminal(t Finalizer) {
	if t == nil {
		crashTerminal.Store(nil)
		return
	}
	crashTerminal.Store(&t)
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}
	report(os.Stdout, os.Stderr, r, debug.Stack())
	exit(1)
}

func report(out, errOut io.Writer, r any, stack []byte) {
	if t := crashTerminal.Load(); t != nil {
		(*t).Fini()
	} else {
		terminal.EmergencyReset(out)
	}

	// Raw mode may still be set, so every line ends in \r\n
	fmt.Fprintf(errOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(errOut, "Stack Trace:\r\n%s\r\n", stack)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
