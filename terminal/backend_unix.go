//go:build unix

package terminal

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Init when stdin is redirected
var ErrNotTerminal = errors.New("stdin is not a terminal")

const (
	// pollTimeout bounds each wait on stdin; a quiet poll lets the reader flush a lone ESC
	pollTimeout = 100 * time.Millisecond

	fallbackCols = 80
	fallbackRows = 24
)

// ttyBackend drives the controlling terminal through stdin/stdout file descriptors
type ttyBackend struct {
	keys   int // stdin fd, switched to raw mode
	screen *os.File
	saved  *term.State
	winch  *winchWatcher
	buf    [256]byte
}

func newBackend() Backend {
	return &ttyBackend{keys: int(os.Stdin.Fd()), screen: os.Stdout}
}

func (t *ttyBackend) Init() error {
	if !term.IsTerminal(t.keys) {
		return ErrNotTerminal
	}
	saved, err := term.MakeRaw(t.keys)
	if err != nil {
		return err
	}
	t.saved = saved
	return nil
}

// Fini stops the resize watcher before leaving raw mode
func (t *ttyBackend) Fini() {
	if t.winch != nil {
		t.winch.stop()
		t.winch = nil
	}
	if t.saved != nil {
		_ = term.Restore(t.keys, t.saved)
		t.saved = nil
	}
}

func (t *ttyBackend) Size() (int, int) {
	return winsize(int(t.screen.Fd()))
}

func (t *ttyBackend) Write(p []byte) error {
	_, err := t.screen.Write(p)
	return err
}

// Read returns the next chunk of key bytes
// A nil chunk with nil error means stop was requested, the poll timed out, or stdin hit EOF.
func (t *ttyBackend) Read(stop <-chan struct{}) ([]byte, error) {
	for {
		select {
		case <-stop:
			return nil, nil
		default:
		}

		n, ready, err := readReady(t.keys, t.buf[:], pollTimeout)
		switch {
		case err != nil:
			return nil, err
		case !ready:
			return nil, nil
		case n < 0:
			continue
		case n == 0:
			return nil, nil
		}
		return t.buf[:n], nil
	}
}

func (t *ttyBackend) SetResizeHandler(handler func(width, height int)) {
	if t.winch != nil {
		t.winch.stop()
	}
	t.winch = watchWinch(t.Size, handler)
}

// readReady waits up to timeout for fd to become readable and reads once into buf
// ready is false on timeout. n is -1 when an interrupted call should be retried.
func readReady(fd int, buf []byte, timeout time.Duration) (n int, ready bool, err error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	got, err := unix.Poll(fds, int(timeout/time.Millisecond))
	if err == unix.EINTR {
		return -1, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	if got == 0 {
		return 0, false, nil
	}

	n, err = unix.Read(fd, buf)
	if err == unix.EINTR || err == unix.EAGAIN {
		return -1, true, nil
	}
	if err != nil {
		return 0, true, err
	}
	return n, true, nil
}

// winchWatcher forwards SIGWINCH as a fresh size until stopped
type winchWatcher struct {
	sig  chan os.Signal
	quit chan struct{}
	done chan struct{}
}

// watchWinch subscribes to SIGWINCH before returning, so no resize after the call is missed
// Zero sizes are dropped.
func watchWinch(size func() (int, int), handler func(width, height int)) *winchWatcher {
	w := &winchWatcher{
		sig:  make(chan os.Signal, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	signal.Notify(w.sig, syscall.SIGWINCH)

	go func() {
		defer close(w.done)
		defer signal.Stop(w.sig)
		for {
			select {
			case <-w.quit:
				return
			case <-w.sig:
				if cols, rows := size(); cols > 0 && rows > 0 {
					handler(cols, rows)
				}
			}
		}
	}()
	return w
}

func (w *winchWatcher) stop() {
	close(w.quit)
	<-w.done
}

// winsize reports the window of fd in cells, 80x24 when the ioctl fails or reports zero
func winsize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return fallbackCols, fallbackRows
	}
	return int(ws.Col), int(ws.Row)
}

// resetTerminalMode puts the controlling tty back into cooked mode after a crash
// Errors are ignored; the process is already exiting.
func resetTerminalMode() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()

	fd := int(tty.Fd())
	tios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return
	}
	tios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	tios.Iflag |= unix.ICRNL
	_ = unix.IoctlSetTermios(fd, ioctlSetTermios, tios)
}
