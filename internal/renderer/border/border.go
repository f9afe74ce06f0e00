// Package border holds the box-drawing glyph tables and paints borders
// into a grid.
package border

import (
	"strings"

	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/grid"
)

// Style is a border line style.
type Style uint8

const (
	StyleSingle Style = iota // ┌─┐│└┘
	StyleDouble              // ╔═╗║╚╝
	StyleThick               // ┏━┓┃┗┛
	StyleDashed              // ┌╌┐╎└┘
	StyleDotted              // ┌┈┐┊└┘
	StyleASCII               // +-+|++
)

var styleNames = [...]string{
	StyleSingle: "single",
	StyleDouble: "double",
	StyleThick:  "thick",
	StyleDashed: "dashed",
	StyleDotted: "dotted",
	StyleASCII:  "ascii",
}

// String returns the style name.
func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "unknown"
}

// ParseStyle parses a style name. "bold" and "heavy" are aliases of thick;
// "round" and "rounded" fall back to single.
func ParseStyle(name string) (Style, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "single", "round", "rounded", "classic":
		return StyleSingle, true
	case "double":
		return StyleDouble, true
	case "thick", "bold", "heavy":
		return StyleThick, true
	case "dashed":
		return StyleDashed, true
	case "dotted":
		return StyleDotted, true
	case "ascii":
		return StyleASCII, true
	default:
		return StyleSingle, false
	}
}

// Glyphs is the six-glyph table of a style.
type Glyphs struct {
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
	Horizontal  string
	Vertical    string
}

var glyphTable = [...]Glyphs{
	StyleSingle: {"┌", "┐", "└", "┘", "─", "│"},
	StyleDouble: {"╔", "╗", "╚", "╝", "═", "║"},
	StyleThick:  {"┏", "┓", "┗", "┛", "━", "┃"},
	StyleDashed: {"┌", "┐", "└", "┘", "╌", "╎"},
	StyleDotted: {"┌", "┐", "└", "┘", "┈", "┊"},
	StyleASCII:  {"+", "+", "+", "+", "-", "|"},
}

// GlyphsFor returns the glyph table of s. Unknown styles use single.
func GlyphsFor(s Style) Glyphs {
	if int(s) >= len(glyphTable) {
		s = StyleSingle
	}
	return glyphTable[s]
}

// Sides selects which edges are drawn.
type Sides struct {
	Top, Right, Bottom, Left bool
}

// AllSides draws every edge.
func AllSides() Sides {
	return Sides{Top: true, Right: true, Bottom: true, Left: true}
}

// Any reports whether at least one edge is drawn.
func (s Sides) Any() bool {
	return s.Top || s.Right || s.Bottom || s.Left
}

// Insets returns the space each drawn edge takes from the content box.
func (s Sides) Insets() (top, right, bottom, left int) {
	return b2i(s.Top), b2i(s.Right), b2i(s.Bottom), b2i(s.Left)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Draw paints the border of r into g using p for style and attribution.
// A corner gets its corner glyph when both adjacent edges are drawn and
// continues the single drawn edge otherwise. Everything is clipped to g.
func Draw(g *grid.Grid, r core.Rect, style Style, sides Sides, p core.Patch) {
	if r.IsEmpty() || !sides.Any() {
		return
	}
	gl := GlyphsFor(style)
	right, bottom := r.Right()-1, r.Bottom()-1

	if sides.Top {
		for x := r.X; x <= right; x++ {
			g.Set(x, r.Y, p.WithChar(gl.Horizontal))
		}
	}
	if sides.Bottom {
		for x := r.X; x <= right; x++ {
			g.Set(x, bottom, p.WithChar(gl.Horizontal))
		}
	}
	if sides.Left {
		for y := r.Y; y <= bottom; y++ {
			g.Set(r.X, y, p.WithChar(gl.Vertical))
		}
	}
	if sides.Right {
		for y := r.Y; y <= bottom; y++ {
			g.Set(right, y, p.WithChar(gl.Vertical))
		}
	}

	if r.Width < 2 || r.Height < 2 {
		return
	}
	if sides.Top && sides.Left {
		g.Set(r.X, r.Y, p.WithChar(gl.TopLeft))
	}
	if sides.Top && sides.Right {
		g.Set(right, r.Y, p.WithChar(gl.TopRight))
	}
	if sides.Bottom && sides.Left {
		g.Set(r.X, bottom, p.WithChar(gl.BottomLeft))
	}
	if sides.Bottom && sides.Right {
		g.Set(right, bottom, p.WithChar(gl.BottomRight))
	}
}
