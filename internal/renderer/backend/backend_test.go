package backend

import (
	"os"
	"testing"
)

var (
	_ Backend = (*Terminal)(nil)
	_ Backend = (*Memory)(nil)
)

func TestMemoryWriteAndSize(t *testing.T) {
	m := NewMemory(40, 10)
	if w, h := m.Size(); w != 40 || h != 10 {
		t.Errorf("Size() = %dx%d, want 40x10", w, h)
	}

	m.Write([]byte("ab"))
	m.Write([]byte("cd"))
	if m.String() != "abcd" || m.Writes() != 2 {
		t.Errorf("String() = %q, Writes() = %d", m.String(), m.Writes())
	}

	m.Reset()
	if m.String() != "" || m.Writes() != 0 {
		t.Error("Reset should clear output")
	}
}

func TestMemoryResizeKeepsLatest(t *testing.T) {
	m := NewMemory(40, 10)
	m.Resize(50, 12)
	m.Resize(60, 20)

	select {
	case ev := <-m.Resizes():
		if ev.Width != 60 || ev.Height != 20 {
			t.Errorf("event = %+v, want 60x20", ev)
		}
	default:
		t.Fatal("expected a resize event")
	}
	select {
	case ev := <-m.Resizes():
		t.Errorf("stale event delivered: %+v", ev)
	default:
	}
	if w, h := m.Size(); w != 60 || h != 20 {
		t.Errorf("Size() = %dx%d, want 60x20", w, h)
	}
}

func TestTerminalNonInteractive(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	term, err := NewTerminalFile(f, TerminalOptions{AltScreen: true})
	if err != nil {
		t.Fatal(err)
	}
	if term.Interactive() {
		t.Fatal("a regular file should not be interactive")
	}
	if w, h := term.Size(); w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Size() = %dx%d, want fallback", w, h)
	}

	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	term.Write([]byte("frame"))
	term.Shutdown()

	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "frame" {
		t.Errorf("non-interactive output = %q, want only frame bytes", data)
	}
}
