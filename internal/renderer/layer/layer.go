// Package layer provides z-ordered, bounded sub-buffers and the manager
// that owns them.
package layer

import (
	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/grid"
)

// RootID is the id of the layer that always exists and covers the terminal.
const RootID = "root"

// Layer is a named, z-indexed sub-buffer placed at Bounds in global
// coordinates.
type Layer struct {
	ID      string
	ZIndex  int
	Visible bool

	// Opacity is stored for callers but never applied when compositing.
	Opacity float64

	Bounds core.Rect
	Buffer *grid.Grid
	NodeID core.NodeID

	// seq orders layers with equal z-index by creation.
	seq uint64
}

func newLayer(id string, z int, bounds core.Rect, nodeID core.NodeID, seq uint64) *Layer {
	return &Layer{
		ID:      id,
		ZIndex:  z,
		Visible: true,
		Opacity: 1,
		Bounds:  bounds,
		Buffer:  grid.New(bounds.Width, bounds.Height),
		NodeID:  nodeID,
		seq:     seq,
	}
}

// IsRoot returns true for the root layer.
func (l *Layer) IsRoot() bool {
	return l.ID == RootID
}

// ToLocal converts global coordinates to buffer coordinates.
func (l *Layer) ToLocal(x, y int) (int, int) {
	return x - l.Bounds.X, y - l.Bounds.Y
}

// Contains reports whether the global point falls within the layer bounds.
func (l *Layer) Contains(x, y int) bool {
	return l.Bounds.Contains(x, y)
}

// CellAt returns the layer's cell at global (x, y).
func (l *Layer) CellAt(x, y int) (core.Cell, bool) {
	if !l.Contains(x, y) {
		return core.Cell{}, false
	}
	lx, ly := l.ToLocal(x, y)
	return l.Buffer.Get(lx, ly)
}

// SetOpacity stores the opacity clamped to [0, 1].
func (l *Layer) SetOpacity(o float64) {
	l.Opacity = min(max(o, 0), 1)
}
