package grid

import (
	"testing"

	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/dirty"
)

func TestNewGrid(t *testing.T) {
	g := New(80, 24)
	w, h := g.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}

	c, ok := g.Get(0, 0)
	if !ok {
		t.Fatal("Get(0,0) should be in bounds")
	}
	if !c.IsTransparent() || c.Dirty {
		t.Errorf("new cells should be blank and clean, got %+v", c)
	}
}

func TestNewGridClampsSize(t *testing.T) {
	g := New(0, -5)
	w, h := g.Size()
	if w != 1 || h != 1 {
		t.Errorf("expected size clamped to (1, 1), got (%d, %d)", w, h)
	}
}

func TestGridGetOutOfBounds(t *testing.T) {
	g := New(10, 5)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 5}} {
		if _, ok := g.Get(p[0], p[1]); ok {
			t.Errorf("Get(%d,%d) should be out of bounds", p[0], p[1])
		}
	}
}

func TestGridSetMarksDirtyOnlyOnVisualChange(t *testing.T) {
	g := New(10, 5)

	g.Set(2, 2, core.NewPatch().WithLayer("root").WithNode(4))
	c, _ := g.Get(2, 2)
	if c.Dirty {
		t.Error("metadata-only write should not mark dirty")
	}

	g.Set(2, 2, core.NewPatch().WithChar("x"))
	c, _ = g.Get(2, 2)
	if !c.Dirty {
		t.Error("char change should mark dirty")
	}
	if c.LayerID != "root" || c.NodeID != 4 {
		t.Errorf("earlier metadata should survive a partial update: %+v", c)
	}

	if g.Set(-1, 0, core.NewPatch().WithChar("x")) {
		t.Error("out of bounds Set should report false")
	}
}

func TestGridFillAndClearRegion(t *testing.T) {
	g := New(20, 10)
	fill := core.NewPatch().WithChar("#").WithBg(core.Named(core.Blue))

	g.FillRegion(core.NewRect(-5, -5, 10, 10), fill)

	inside, _ := g.Get(4, 4)
	if inside.Char != "#" {
		t.Errorf("cell inside fill = %q, want #", inside.Char)
	}
	outside, _ := g.Get(5, 5)
	if outside.Char != " " {
		t.Errorf("cell outside fill = %q, want blank", outside.Char)
	}

	g.ClearRegion(core.NewRect(0, 0, 2, 2))
	cleared, _ := g.Get(1, 1)
	if !cleared.IsTransparent() {
		t.Errorf("cleared cell should be transparent, got %+v", cleared)
	}
	kept, _ := g.Get(3, 3)
	if kept.Char != "#" {
		t.Error("cell outside clear region should keep its content")
	}

	// Entirely out of range: no panic, no change.
	g.FillRegion(core.NewRect(100, 100, 5, 5), fill)
	g.ClearRegion(core.NewRect(-50, -50, 5, 5))
}

func TestGridResizePreservesContent(t *testing.T) {
	g := New(10, 5)
	g.Set(0, 0, core.NewPatch().WithChar("A"))
	g.Set(9, 4, core.NewPatch().WithChar("Z"))

	g.Resize(20, 10)
	c, ok := g.Get(0, 0)
	if !ok || c.Char != "A" {
		t.Errorf("after grow, (0,0) = %q, want A", c.Char)
	}
	c, _ = g.Get(9, 4)
	if c.Char != "Z" {
		t.Errorf("after grow, (9,4) = %q, want Z", c.Char)
	}
	grown, _ := g.Get(15, 8)
	if !grown.IsTransparent() {
		t.Errorf("new cells should be blank, got %+v", grown)
	}

	g.Resize(5, 3)
	c, _ = g.Get(0, 0)
	if c.Char != "A" {
		t.Errorf("after shrink, (0,0) = %q, want A", c.Char)
	}
	if _, ok := g.Get(9, 4); ok {
		t.Error("cell outside shrunk grid should be out of bounds")
	}

	g.Resize(0, 0)
	if w, h := g.Size(); w != 1 || h != 1 {
		t.Errorf("resize should clamp to 1x1, got %dx%d", w, h)
	}
}

func TestGridDirtyTracking(t *testing.T) {
	g := New(10, 3)
	if g.DirtyCount() != 0 {
		t.Fatalf("new grid DirtyCount() = %d, want 0", g.DirtyCount())
	}

	g.MarkAllDirty()
	if g.DirtyCount() != 30 {
		t.Errorf("DirtyCount() = %d, want 30", g.DirtyCount())
	}

	g.MarkClean()
	if g.DirtyCount() != 0 {
		t.Errorf("after MarkClean DirtyCount() = %d, want 0", g.DirtyCount())
	}
}

func TestGridDirtyRegions(t *testing.T) {
	g := New(10, 3)
	for y := 0; y < 2; y++ {
		for x := 2; x < 5; x++ {
			g.Set(x, y, core.NewPatch().WithChar("x"))
		}
	}
	g.Set(8, 2, core.NewPatch().WithChar("y"))

	regions := g.DirtyRegions()
	want := []dirty.Region{
		{StartRow: 0, EndRow: 1, StartCol: 2, EndCol: 5},
		{StartRow: 2, EndRow: 2, StartCol: 8, EndCol: 9},
	}
	if len(regions) != len(want) {
		t.Fatalf("got %d regions, want %d: %+v", len(regions), len(want), regions)
	}
	for i := range want {
		if regions[i] != want[i] {
			t.Errorf("region %d = %+v, want %+v", i, regions[i], want[i])
		}
	}
}

func TestGridWriteStringRoundTrip(t *testing.T) {
	g := New(80, 5)
	n := g.WriteString(3, 1, "Hello", core.NewPatch().WithFg(core.Named(core.Green)))
	if n != 5 {
		t.Errorf("WriteString returned %d, want 5", n)
	}

	got := ""
	for x := 3; x < 8; x++ {
		c, _ := g.Get(x, 1)
		got += c.Char
	}
	if got != "Hello" {
		t.Errorf("read back %q, want Hello", got)
	}
}

func TestGridWriteStringClipsAtEdge(t *testing.T) {
	g := New(10, 1)
	n := g.WriteString(8, 0, "Hello", core.NewPatch())
	if n != 2 {
		t.Errorf("WriteString returned %d, want 2", n)
	}
	c, _ := g.Get(9, 0)
	if c.Char != "e" {
		t.Errorf("(9,0) = %q, want e", c.Char)
	}

	if n := g.WriteString(0, 4, "nope", core.NewPatch()); n != 0 {
		t.Errorf("write on missing row returned %d, want 0", n)
	}
}

func TestGridWriteStringNegativeStart(t *testing.T) {
	g := New(10, 1)
	n := g.WriteString(-2, 0, "abcd", core.NewPatch())
	if n != 2 {
		t.Errorf("WriteString returned %d, want 2", n)
	}
	c, _ := g.Get(0, 0)
	if c.Char != "c" {
		t.Errorf("(0,0) = %q, want c", c.Char)
	}
}

func TestGridWriteStringGraphemes(t *testing.T) {
	g := New(10, 1)
	n := g.WriteString(0, 0, "éx", core.NewPatch())
	if n != 2 {
		t.Fatalf("WriteString returned %d, want 2", n)
	}
	c, _ := g.Get(0, 0)
	if c.Char != "é" {
		t.Errorf("(0,0) = %q, want combined grapheme", c.Char)
	}
}

func TestGridWriteStringWide(t *testing.T) {
	g := New(5, 1)
	n := g.WriteString(0, 0, "日本語", core.NewPatch())
	if n != 2 {
		t.Fatalf("WriteString returned %d, want 2 (third glyph does not fit)", n)
	}
	first, _ := g.Get(0, 0)
	cont, _ := g.Get(1, 0)
	second, _ := g.Get(2, 0)
	if first.Char != "日" || cont.Char != "" || second.Char != "本" {
		t.Errorf("unexpected cells: %q %q %q", first.Char, cont.Char, second.Char)
	}
	last, _ := g.Get(4, 0)
	if last.Char != " " {
		t.Errorf("(4,0) = %q, want blank", last.Char)
	}
}

func TestGridCopyFromAndEquals(t *testing.T) {
	a := New(4, 2)
	b := New(4, 2)
	a.WriteString(0, 0, "ab", core.NewPatch())

	if a.Equals(b) {
		t.Fatal("grids with different content should not be equal")
	}

	b.CopyFrom(a)
	if !a.Equals(b) {
		t.Error("CopyFrom should make grids visually equal")
	}
	c, _ := b.Get(0, 0)
	if !c.Dirty {
		t.Error("copied cell with new content should be dirty")
	}
	untouched, _ := b.Get(3, 1)
	if untouched.Dirty {
		t.Error("copied cell without visual change should stay clean")
	}
}

func TestCharWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"日", 2},
		{"é", 1},
	}
	for _, tt := range tests {
		if got := CharWidth(tt.in); got != tt.want {
			t.Errorf("CharWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
