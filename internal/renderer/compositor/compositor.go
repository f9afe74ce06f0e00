// Package compositor merges the visible layers of a frame, in ascending
// z-order, into a single result grid.
package compositor

import (
	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/grid"
	"github.com/dshills/termpaint/internal/renderer/layer"
)

// Compositor owns the layer stack and the full-terminal result grid.
// The result is recomputed from scratch on every Composite call.
type Compositor struct {
	layers *layer.Manager
	result *grid.Grid
}

// New creates a compositor for a width×height terminal.
func New(width, height int) *Compositor {
	return &Compositor{
		layers: layer.NewManager(width, height),
		result: grid.New(width, height),
	}
}

// Layers returns the layer manager.
func (c *Compositor) Layers() *layer.Manager {
	return c.layers
}

// Result returns the grid produced by the last Composite call.
func (c *Compositor) Result() *grid.Grid {
	return c.result
}

// Size returns the terminal dimensions.
func (c *Compositor) Size() (width, height int) {
	return c.result.Size()
}

// Resize resizes the root layer and the result grid.
func (c *Compositor) Resize(width, height int) {
	c.layers.ResizeRoot(width, height)
	c.result.Resize(width, height)
}

// Composite merges every visible layer into the result grid and returns it.
func (c *Compositor) Composite() *grid.Grid {
	width, height := c.result.Size()
	screen := core.NewRect(0, 0, width, height)

	var visible []*layer.Layer
	for _, l := range c.layers.Sorted() {
		if l.Visible && l.Bounds.Intersects(screen) {
			visible = append(visible, l)
		}
	}

	for y := 0; y < height; y++ {
		wide := false
		for x := 0; x < width; x++ {
			acc := core.EmptyCell()
			for _, l := range visible {
				src, ok := l.CellAt(x, y)
				if !ok {
					continue
				}
				acc = Merge(acc, src)
			}
			// The right half of a wide glyph belongs to it, whatever the
			// lower layers hold there.
			if wide {
				acc.Char = ""
			}
			wide = grid.CharWidth(acc.Char) == 2
			c.result.Put(x, y, acc)
		}
	}
	return c.result
}

// Merge folds src over acc.
//
// A src that covers the glyph replaces the glyph, foreground and attributes
// and takes over attribution; z-index keeps the higher of the two. A set
// src background always replaces acc's background, even when src leaves
// the glyph alone, so a colored blank tints the content beneath it.
func Merge(acc, src core.Cell) core.Cell {
	if src.CoversGlyph() {
		acc.Char = src.Char
		acc.Fg = src.Fg
		acc.Attrs = src.Attrs
		acc.ZIndex = max(acc.ZIndex, src.ZIndex)
		acc.LayerID = src.LayerID
		acc.NodeID = src.NodeID
		acc.Opaque = src.Opaque
	}
	if src.Bg.IsSet() {
		acc.Bg = src.Bg
	}
	return acc
}
