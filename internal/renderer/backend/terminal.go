package backend

import (
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/dshills/termpaint/internal/renderer/ansi"
)

// Fallback size when the output is not a terminal.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

const (
	altScreenEnter = "\x1b[?1049h"
	altScreenExit  = "\x1b[?1049l"
)

// TerminalOptions configures a Terminal.
type TerminalOptions struct {
	// AltScreen switches to the alternate screen while running.
	AltScreen bool
}

// Terminal writes frames to a file, normally stdout.
type Terminal struct {
	mu sync.Mutex

	out         *os.File
	fd          int
	interactive bool
	opts        TerminalOptions

	resize  *resizeHandler
	events  chan ResizeEvent
	started bool
}

// NewTerminal creates a terminal backend on stdout.
func NewTerminal() (*Terminal, error) {
	return NewTerminalFile(os.Stdout, TerminalOptions{})
}

// NewTerminalFile creates a terminal backend on f.
func NewTerminalFile(f *os.File, opts TerminalOptions) (*Terminal, error) {
	fd := int(f.Fd())
	return &Terminal{
		out:         f,
		fd:          fd,
		interactive: term.IsTerminal(fd),
		opts:        opts,
		events:      make(chan ResizeEvent, 1),
	}, nil
}

// Init hides the cursor, enters the alternate screen when configured and
// starts watching for resizes. It does nothing for non-terminal output.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started || !t.interactive {
		t.started = true
		return nil
	}

	seq := ansi.HideCursor
	if t.opts.AltScreen {
		seq = altScreenEnter + seq
	}
	if _, err := t.out.WriteString(seq); err != nil {
		return err
	}

	t.resize = newResizeHandler(t.fd, t.events)
	t.resize.start()
	t.started = true
	return nil
}

// Shutdown stops resize watching and restores style and cursor.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return
	}
	t.started = false
	if t.resize != nil {
		t.resize.stop()
		t.resize = nil
	}
	if !t.interactive {
		return
	}

	seq := ansi.Reset + ansi.ShowCursor
	if t.opts.AltScreen {
		seq += altScreenExit
	}
	_, _ = t.out.WriteString(seq)
}

// SetAltScreen chooses whether Init enters the alternate screen. It has no
// effect once Init has run.
func (t *Terminal) SetAltScreen(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		t.opts.AltScreen = on
	}
}

// Write writes p to the terminal.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Size returns the terminal dimensions, or 80×24 when they are unknown.
func (t *Terminal) Size() (int, int) {
	if !t.interactive {
		return DefaultWidth, DefaultHeight
	}
	w, h, err := term.GetSize(t.fd)
	if err != nil || w <= 0 || h <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return w, h
}

// Resizes returns the resize event channel.
func (t *Terminal) Resizes() <-chan ResizeEvent {
	return t.events
}

// Interactive reports whether the output is a terminal.
func (t *Terminal) Interactive() bool {
	return t.interactive
}
