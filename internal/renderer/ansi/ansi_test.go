package ansi

import (
	"bytes"
	"testing"
)

func TestCursorTo(t *testing.T) {
	tests := []struct {
		x, y int
		want string
	}{
		{0, 0, "\x1b[1;1H"},
		{9, 4, "\x1b[5;10H"},
		{199, 99, "\x1b[100;200H"},
		{-3, -1, "\x1b[1;1H"},
	}
	for _, tt := range tests {
		if got := CursorTo(tt.x, tt.y); got != tt.want {
			t.Errorf("CursorTo(%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSequence(t *testing.T) {
	if got := Sequence(nil); got != "" {
		t.Errorf("Sequence(nil) = %q, want empty", got)
	}
	if got := Sequence([]string{"0", "1", "38", "5", "196"}); got != "\x1b[0;1;38;5;196m" {
		t.Errorf("Sequence = %q", got)
	}

	var b bytes.Buffer
	WriteSequence(&b, []string{"4", "31"})
	if b.String() != "\x1b[4;31m" {
		t.Errorf("WriteSequence = %q", b.String())
	}
}

func TestScreenControlSequences(t *testing.T) {
	tests := []struct {
		name, got, want string
	}{
		{"clear", ClearScreen, "\x1b[2J\x1b[H"},
		{"hide", HideCursor, "\x1b[?25l"},
		{"show", ShowCursor, "\x1b[?25h"},
		{"reset", Reset, "\x1b[0m"},
		{"erase end", EraseLineEnd, "\x1b[K"},
		{"erase line", EraseLine, "\x1b[2K"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestDetectLevel(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Level
	}{
		{"colorterm", map[string]string{"COLORTERM": "truecolor", "TERM": "xterm"}, LevelTrueColor},
		{"kitty", map[string]string{"KITTY_WINDOW_ID": "1"}, LevelTrueColor},
		{"term direct", map[string]string{"TERM": "xterm-direct"}, LevelTrueColor},
		{"256", map[string]string{"TERM": "screen-256color"}, Level256},
		{"dumb", map[string]string{"TERM": "dumb"}, Level16},
		{"empty", map[string]string{}, Level16},
		{"plain xterm", map[string]string{"TERM": "xterm"}, Level256},
	}
	for _, tt := range tests {
		getenv := func(k string) string { return tt.env[k] }
		if got := DetectLevel(getenv); got != tt.want {
			t.Errorf("%s: DetectLevel() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"16": Level16, "256": Level256, "TrueColor": LevelTrueColor, "24bit": LevelTrueColor} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("lots"); err == nil {
		t.Error("ParseLevel should reject unknown names")
	}
}
