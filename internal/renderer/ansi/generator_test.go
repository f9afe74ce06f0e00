package ansi

import (
	"strings"
	"testing"

	"github.com/dshills/termpaint/internal/renderer/core"
)

func joined(codes []string) string {
	return strings.Join(codes, ";")
}

func TestColorCodes(t *testing.T) {
	g := NewGenerator(LevelTrueColor)

	tests := []struct {
		name   string
		color  core.Color
		fg, bg string
	}{
		{"default", core.ColorDefault, "", ""},
		{"inherit", core.ColorInherit, "", ""},
		{"red", core.Named(core.Red), "31", "41"},
		{"white", core.Named(core.White), "37", "47"},
		{"bright black", core.Named(core.BrightBlack), "90", "100"},
		{"bright cyan", core.Named(core.BrightCyan), "96", "106"},
		{"hex red", core.Hex(255, 0, 0), "38;5;196", "48;5;196"},
		{"hex black", core.Hex(0, 0, 0), "38;5;16", "48;5;16"},
		{"hex white", core.Hex(255, 255, 255), "38;5;231", "48;5;231"},
		{"rgb", core.RGB(10, 20, 30), "38;2;10;20;30", "48;2;10;20;30"},
	}
	for _, tt := range tests {
		if got := joined(g.FgCodes(tt.color)); got != tt.fg {
			t.Errorf("%s: FgCodes = %q, want %q", tt.name, got, tt.fg)
		}
		if got := joined(g.BgCodes(tt.color)); got != tt.bg {
			t.Errorf("%s: BgCodes = %q, want %q", tt.name, got, tt.bg)
		}
	}
}

func TestCubeIndex(t *testing.T) {
	// 128/255*5 = 2.51 rounds to 3.
	if got := CubeIndex(128, 0, 255); got != 16+36*3+5 {
		t.Errorf("CubeIndex(128,0,255) = %d, want %d", got, 16+36*3+5)
	}
}

func TestColorDowngrade(t *testing.T) {
	g256 := NewGenerator(Level256)
	if got := joined(g256.FgCodes(core.RGB(255, 0, 0))); got != "38;5;196" {
		t.Errorf("256: RGB red = %q, want 38;5;196", got)
	}

	g16 := NewGenerator(Level16)
	tests := []struct {
		color core.Color
		want  string
	}{
		{core.RGB(250, 250, 250), "97"},
		{core.Hex(0, 0, 0), "30"},
		{core.RGB(0, 0, 238), "34"},
		{core.Named(core.Yellow), "33"},
	}
	for _, tt := range tests {
		if got := joined(g16.FgCodes(tt.color)); got != tt.want {
			t.Errorf("16: FgCodes(%v) = %q, want %q", tt.color, got, tt.want)
		}
	}
}

func TestCodes(t *testing.T) {
	g := NewGenerator(LevelTrueColor)
	cell := core.Cell{
		Char:  "x",
		Fg:    core.Named(core.Green),
		Bg:    core.Named(core.Black),
		Attrs: core.AttrBold | core.AttrStrikethrough | core.AttrInverse,
	}
	if got := joined(g.Codes(cell)); got != "1;7;9;32;40" {
		t.Errorf("Codes = %q, want 1;7;9;32;40", got)
	}
}

func TestTransition(t *testing.T) {
	g := NewGenerator(LevelTrueColor)
	plain := core.Cell{Char: "a"}
	bold := core.Cell{Char: "b", Attrs: core.AttrBold}
	boldRed := core.Cell{Char: "c", Attrs: core.AttrBold, Fg: core.Named(core.Red)}
	boldBlue := core.Cell{Char: "d", Attrs: core.AttrBold, Fg: core.Named(core.Blue)}

	tests := []struct {
		name       string
		prev, next core.Cell
		want       string
	}{
		{"identical plain", plain, plain, ""},
		{"identical styled", boldRed, core.Cell{Char: "z", Attrs: core.AttrBold, Fg: core.Named(core.Red)}, ""},
		{"add flag", plain, bold, "1"},
		{"add color", bold, boldRed, "31"},
		{"change color", boldRed, boldBlue, "34"},
		{"flag off", bold, plain, "0"},
		{"flag off keeps rest", core.Cell{Attrs: core.AttrBold | core.AttrItalic, Fg: core.Named(core.Red)}, core.Cell{Attrs: core.AttrItalic, Fg: core.Named(core.Red)}, "0;3;31"},
		{"fg unset", boldRed, bold, "0;1"},
		{"bg unset", core.Cell{Bg: core.Named(core.Blue)}, core.Cell{Bg: core.ColorInherit}, "0"},
		{"default to inherit", core.Cell{Fg: core.ColorDefault}, core.Cell{Fg: core.ColorInherit}, ""},
	}
	for _, tt := range tests {
		if got := joined(g.Transition(tt.prev, tt.next)); got != tt.want {
			t.Errorf("%s: Transition = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestTransitionSkipsEquivalentDowngrades(t *testing.T) {
	g := NewGenerator(Level256)
	prev := core.Cell{Fg: core.RGB(255, 0, 0)}
	next := core.Cell{Fg: core.RGB(254, 1, 1)}
	if codes := g.Transition(prev, next); len(codes) != 0 {
		t.Errorf("colors that map to the same palette entry should emit nothing, got %v", codes)
	}
}
