// Package grid provides the cell-addressable buffer every renderer stage
// paints into. A Grid tracks per-cell dirty bits, clips every write to its
// extents and never panics on out-of-range input.
package grid

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/dirty"
)

// Grid is a 2D array of styled cells stored row-major.
type Grid struct {
	width  int
	height int
	cells  []core.Cell
}

// New creates a grid of blank cells. Dimensions are clamped to at least 1×1.
func New(width, height int) *Grid {
	width, height = clampSize(width, height)
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]core.Cell, width*height),
	}
	blank := core.EmptyCell()
	for i := range g.cells {
		g.cells[i] = blank
	}
	return g
}

func clampSize(width, height int) (int, int) {
	return max(width, 1), max(height, 1)
}

// Size returns the grid dimensions.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Bounds returns the grid extents as a rectangle at the origin.
func (g *Grid) Bounds() core.Rect {
	return core.NewRect(0, 0, g.width, g.height)
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the cell at (x, y). ok is false when out of bounds.
func (g *Grid) Get(x, y int) (core.Cell, bool) {
	if !g.inBounds(x, y) {
		return core.Cell{}, false
	}
	return g.cells[y*g.width+x], true
}

// Set merges a patch over the cell at (x, y). Returns false when out of
// bounds.
func (g *Grid) Set(x, y int, p core.Patch) bool {
	if !g.inBounds(x, y) {
		return false
	}
	idx := y*g.width + x
	g.cells[idx] = g.cells[idx].Apply(p)
	return true
}

// Put replaces the cell at (x, y) wholesale, computing the dirty bit
// against the prior value. Returns false when out of bounds.
func (g *Grid) Put(x, y int, c core.Cell) bool {
	if !g.inBounds(x, y) {
		return false
	}
	idx := y*g.width + x
	g.cells[idx] = g.cells[idx].Replace(c)
	return true
}

// FillRegion applies p to every cell of r, clipped to the grid.
func (g *Grid) FillRegion(r core.Rect, p core.Patch) {
	r = r.Clamp(g.width, g.height)
	for y := r.Y; y < r.Bottom(); y++ {
		row := y * g.width
		for x := r.X; x < r.Right(); x++ {
			g.cells[row+x] = g.cells[row+x].Apply(p)
		}
	}
}

// ClearRegion resets every cell of r, clipped to the grid, to a blank cell.
func (g *Grid) ClearRegion(r core.Rect) {
	r = r.Clamp(g.width, g.height)
	blank := core.EmptyCell()
	for y := r.Y; y < r.Bottom(); y++ {
		row := y * g.width
		for x := r.X; x < r.Right(); x++ {
			g.cells[row+x] = g.cells[row+x].Replace(blank)
		}
	}
}

// Clear resets the whole grid to blank cells.
func (g *Grid) Clear() {
	g.ClearRegion(g.Bounds())
}

// Resize changes the grid dimensions, keeping top-left aligned content.
// New cells are blank and dirty; dimensions are clamped to at least 1×1.
func (g *Grid) Resize(width, height int) {
	width, height = clampSize(width, height)
	if width == g.width && height == g.height {
		return
	}

	cells := make([]core.Cell, width*height)
	blank := core.EmptyCell()
	blank.Dirty = true
	for i := range cells {
		cells[i] = blank
	}

	copyW := min(width, g.width)
	copyH := min(height, g.height)
	for y := 0; y < copyH; y++ {
		copy(cells[y*width:y*width+copyW], g.cells[y*g.width:y*g.width+copyW])
	}

	g.cells = cells
	g.width = width
	g.height = height
}

// MarkAllDirty flags every cell as changed.
func (g *Grid) MarkAllDirty() {
	for i := range g.cells {
		g.cells[i].Dirty = true
	}
}

// MarkClean clears every dirty flag.
func (g *Grid) MarkClean() {
	for i := range g.cells {
		g.cells[i].Dirty = false
	}
}

// DirtyCount returns the number of dirty cells.
func (g *Grid) DirtyCount() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Dirty {
			n++
		}
	}
	return n
}

// DirtyRegions returns the dirty cells as row spans, with vertically
// adjacent spans over the same columns coalesced.
func (g *Grid) DirtyRegions() []dirty.Region {
	c := dirty.NewCollector()
	for y := 0; y < g.height; y++ {
		row := y * g.width
		for x := 0; x < g.width; x++ {
			if g.cells[row+x].Dirty {
				c.Add(y, x)
			}
		}
	}
	return c.Regions()
}

// Row returns a copy of row y, or nil when out of bounds.
func (g *Grid) Row(y int) []core.Cell {
	if y < 0 || y >= g.height {
		return nil
	}
	out := make([]core.Cell, g.width)
	copy(out, g.cells[y*g.width:(y+1)*g.width])
	return out
}

// CopyFrom replaces this grid's cells with src's, cell by cell, so dirty
// bits reflect the visual difference. Cells outside the overlap are left
// untouched.
func (g *Grid) CopyFrom(src *Grid) {
	w := min(g.width, src.width)
	h := min(g.height, src.height)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*g.width + x
			g.cells[idx] = g.cells[idx].Replace(src.cells[y*src.width+x])
		}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		width:  g.width,
		height: g.height,
		cells:  make([]core.Cell, len(g.cells)),
	}
	copy(out.cells, g.cells)
	return out
}

// Equals reports whether two grids have the same size and visually equal
// cells everywhere.
func (g *Grid) Equals(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if !g.cells[i].VisualEquals(other.cells[i]) {
			return false
		}
	}
	return true
}

// WriteString writes s starting at (x, y), one grapheme per cell, applying
// p to every written cell. A wide grapheme also claims the cell to its right,
// which gets the "" continuation char. Writing stops at the right edge and a
// wide grapheme that does not fit is dropped. Returns the number of graphemes
// written.
func (g *Grid) WriteString(x, y int, s string, p core.Patch) int {
	if y < 0 || y >= g.height || s == "" {
		return 0
	}

	written := 0
	col := x
	gr := uniseg.NewGraphemes(s)
	for gr.Next() && col < g.width {
		cluster := gr.Str()
		w := CharWidth(cluster)
		if col < 0 {
			col += w
			continue
		}
		if w == 2 && col+1 >= g.width {
			break
		}

		g.Set(col, y, p.WithChar(cluster))
		if w == 2 {
			g.Set(col+1, y, p.WithChar(""))
		}
		col += w
		written++
	}
	return written
}

// CharWidth returns the terminal column width of a grapheme: 2 for wide
// clusters, 1 otherwise. The empty continuation char is 0 wide.
func CharWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	if runewidth.StringWidth(cluster) == 2 {
		return 2
	}
	return 1
}
