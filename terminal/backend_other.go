//go:build !unix

package terminal

import (
	"errors"
)

// ErrNotTerminal is returned by Init on platforms without a raw-mode backend
var ErrNotTerminal = errors.New("ansi backend requires a unix terminal")

type stubBackend struct{}

func newBackend() Backend { return stubBackend{} }

func (stubBackend) Init() error                              { return ErrNotTerminal }
func (stubBackend) Fini()                                    {}
func (stubBackend) Size() (int, int)                         { return 80, 24 }
func (stubBackend) Write([]byte) error                       { return ErrNotTerminal }
func (stubBackend) Read(<-chan struct{}) ([]byte, error)     { return nil, ErrNotTerminal }
func (stubBackend) SetResizeHandler(func(width, height int)) {}

func resetTerminalMode() {}
