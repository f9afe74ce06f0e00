package compositor

import (
	"testing"

	"github.com/dshills/termpaint/internal/renderer/core"
)

func TestMergeBackgroundInheritance(t *testing.T) {
	bottom := core.Cell{Char: "X", Fg: core.Named(core.Red), NodeID: 1}
	top := core.Cell{Char: " ", Bg: core.Named(core.Blue), NodeID: 2}

	got := Merge(bottom, top)
	if got.Char != "X" {
		t.Errorf("Char = %q, want X", got.Char)
	}
	if !got.Fg.Equals(core.Named(core.Red)) {
		t.Errorf("Fg = %v, want red", got.Fg)
	}
	if !got.Bg.Equals(core.Named(core.Blue)) {
		t.Errorf("Bg = %v, want blue", got.Bg)
	}
	if got.NodeID != 1 {
		t.Errorf("transparent source should not take attribution, NodeID = %d", got.NodeID)
	}
}

func TestMergeOpaqueSource(t *testing.T) {
	acc := core.Cell{Char: "a", Fg: core.Named(core.Red), Bg: core.Named(core.Green), Attrs: core.AttrBold, ZIndex: 7, LayerID: "root"}
	src := core.Cell{Char: "b", Attrs: core.AttrItalic, ZIndex: 3, LayerID: "top", NodeID: 4}

	got := Merge(acc, src)
	if got.Char != "b" || got.Attrs != core.AttrItalic || got.Fg.IsSet() {
		t.Errorf("opaque source should replace glyph, fg and attrs: %+v", got)
	}
	if !got.Bg.Equals(core.Named(core.Green)) {
		t.Errorf("unset source background should keep acc background, got %v", got.Bg)
	}
	if got.ZIndex != 7 {
		t.Errorf("ZIndex = %d, want max 7", got.ZIndex)
	}
	if got.LayerID != "top" || got.NodeID != 4 {
		t.Errorf("attribution = %q/%d, want top/4", got.LayerID, got.NodeID)
	}
}

func TestMergeStyledSpaceIsOpaque(t *testing.T) {
	acc := core.Cell{Char: "X"}
	src := core.Cell{Char: " ", Attrs: core.AttrUnderline}
	if got := Merge(acc, src); got.Char != " " {
		t.Errorf("underlined space should overwrite, got %q", got.Char)
	}
}

func TestCompositeZOrder(t *testing.T) {
	c := New(20, 10)
	m := c.Layers()

	a := m.CreateLayer("a", 0, core.NewRect(0, 0, 10, 5), 1)
	a.Buffer.FillRegion(a.Buffer.Bounds(), core.NewPatch().WithChar("B").WithBg(core.Named(core.Red)))

	b := m.CreateLayer("b", 1, core.NewRect(5, 2, 10, 5), 2)
	b.Buffer.FillRegion(b.Buffer.Bounds(), core.NewPatch().WithChar("F").WithBg(core.Named(core.Blue)))

	result := c.Composite()

	tests := []struct {
		x, y int
		char string
		bg   core.Color
	}{
		{0, 0, "B", core.Named(core.Red)},
		{7, 3, "F", core.Named(core.Blue)},
		{14, 6, "F", core.Named(core.Blue)},
		{19, 9, " ", core.ColorDefault},
	}
	for _, tt := range tests {
		cell, _ := result.Get(tt.x, tt.y)
		if cell.Char != tt.char || !cell.Bg.Equals(tt.bg) {
			t.Errorf("(%d,%d) = %q/%v, want %q/%v", tt.x, tt.y, cell.Char, cell.Bg, tt.char, tt.bg)
		}
	}
}

func TestCompositeSkipsHiddenLayers(t *testing.T) {
	c := New(5, 1)
	l := c.Layers().CreateLayer("hidden", 3, core.NewRect(0, 0, 5, 1), 1)
	l.Buffer.WriteString(0, 0, "xxxxx", core.NewPatch())
	c.Layers().SetVisible("hidden", false)

	cell, _ := c.Composite().Get(0, 0)
	if cell.Char != " " {
		t.Errorf("hidden layer leaked into result: %q", cell.Char)
	}
}

func TestCompositeContainerFillShowsThroughChild(t *testing.T) {
	c := New(10, 3)
	root := c.Layers().Root()
	root.Buffer.FillRegion(core.NewRect(0, 0, 10, 3), core.NewPatch().WithBg(core.Named(core.Blue)))

	child := c.Layers().CreateLayer("child", 1, core.NewRect(2, 1, 5, 1), 2)
	child.Buffer.WriteString(0, 0, "hi", core.NewPatch().WithFg(core.Named(core.White)))

	result := c.Composite()
	text, _ := result.Get(2, 1)
	gap, _ := result.Get(5, 1)
	if text.Char != "h" || !text.Bg.Equals(core.Named(core.Blue)) {
		t.Errorf("text cell = %+v, want h on blue", text)
	}
	if gap.Char != " " || !gap.Bg.Equals(core.Named(core.Blue)) {
		t.Errorf("gap cell = %+v, want blank on blue", gap)
	}
}

func TestCompositeIsFullRecompute(t *testing.T) {
	c := New(4, 1)
	l := c.Layers().CreateLayer("tmp", 1, core.NewRect(0, 0, 4, 1), 1)
	l.Buffer.WriteString(0, 0, "abcd", core.NewPatch())
	c.Composite()

	c.Layers().Reset()
	cell, _ := c.Composite().Get(0, 0)
	if cell.Char != " " {
		t.Errorf("stale content after reset: %q", cell.Char)
	}
	if !cell.Dirty {
		t.Error("cell that changed between composites should be dirty")
	}
}

func TestCompositorResize(t *testing.T) {
	c := New(10, 5)
	c.Resize(30, 8)
	if w, h := c.Size(); w != 30 || h != 8 {
		t.Errorf("Size() = %dx%d, want 30x8", w, h)
	}
	if c.Layers().Root().Bounds.Width != 30 {
		t.Error("root layer not resized")
	}
}

func TestCompositeTintedBlankKeepsGlyph(t *testing.T) {
	c := New(3, 1)
	c.Layers().Root().Buffer.Set(0, 0, core.NewPatch().WithChar("X").WithFg(core.Named(core.Red)).WithNode(1))

	top := c.Layers().CreateLayer("top", 1, core.NewRect(0, 0, 3, 1), 2)
	top.Buffer.Set(0, 0, core.NewPatch().WithChar(" ").WithBg(core.Named(core.Blue)).WithNode(2))

	cell, _ := c.Composite().Get(0, 0)
	if cell.Char != "X" {
		t.Errorf("Char = %q, want X", cell.Char)
	}
	if !cell.Fg.Equals(core.Named(core.Red)) {
		t.Errorf("Fg = %v, want red", cell.Fg)
	}
	if !cell.Bg.Equals(core.Named(core.Blue)) {
		t.Errorf("Bg = %v, want blue", cell.Bg)
	}
	if cell.NodeID != 1 {
		t.Errorf("NodeID = %d, want 1", cell.NodeID)
	}
}

func TestCompositeOpaqueFillHidesGlyph(t *testing.T) {
	c := New(3, 1)
	c.Layers().Root().Buffer.WriteString(0, 0, "abc", core.NewPatch())

	panel := c.Layers().CreateLayer("panel", 1, core.NewRect(1, 0, 2, 1), 2)
	panel.Buffer.FillRegion(panel.Buffer.Bounds(),
		core.NewPatch().WithChar(" ").WithBg(core.Named(core.Blue)).WithOpaque(true).WithNode(2))

	result := c.Composite()
	tests := []struct {
		x    int
		char string
	}{
		{0, "a"},
		{1, " "},
		{2, " "},
	}
	for _, tt := range tests {
		cell, _ := result.Get(tt.x, 0)
		if cell.Char != tt.char {
			t.Errorf("(%d,0) Char = %q, want %q", tt.x, cell.Char, tt.char)
		}
	}
}

func TestCompositeWideGlyphClaimsNextColumn(t *testing.T) {
	c := New(4, 1)
	c.Layers().Root().Buffer.WriteString(0, 0, "abcd", core.NewPatch())

	top := c.Layers().CreateLayer("top", 1, core.NewRect(0, 0, 4, 1), 2)
	top.Buffer.WriteString(0, 0, "中", core.NewPatch())

	result := c.Composite()
	if cell, _ := result.Get(0, 0); cell.Char != "中" {
		t.Errorf("(0,0) Char = %q, want 中", cell.Char)
	}
	if cell, _ := result.Get(1, 0); cell.Char != "" {
		t.Errorf("(1,0) Char = %q, want continuation", cell.Char)
	}
	if cell, _ := result.Get(2, 0); cell.Char != "c" {
		t.Errorf("(2,0) Char = %q, want c", cell.Char)
	}
}
