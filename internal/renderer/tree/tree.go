// Package tree defines the paint-node tree the renderer consumes. Nodes
// live in a flat arena and refer to each other by index.
package tree

import (
	"github.com/dshills/termpaint/internal/renderer/border"
	"github.com/dshills/termpaint/internal/renderer/core"
)

// Position is a node's positioning category.
type Position uint8

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
)

// IsStatic reports normal-flow positioning.
func (p Position) IsStatic() bool {
	return p == PositionStatic
}

// ParsePosition parses a position name. Unknown names are static.
func ParsePosition(s string) Position {
	switch s {
	case "relative":
		return PositionRelative
	case "absolute":
		return PositionAbsolute
	case "fixed":
		return PositionFixed
	default:
		return PositionStatic
	}
}

// Border describes a node's border.
type Border struct {
	Style      border.Style
	Color      core.Color
	Background core.Color
	Sides      border.Sides
}

// StyleResolver supplies computed colors for a node. Returning an unset
// color falls back to the node's own fields.
type StyleResolver interface {
	Color() core.Color
	Background() core.Color
	BorderColor() core.Color
}

// Constraints bound a layout callback.
type Constraints struct {
	MaxWidth  int
	MaxHeight int
}

// LayoutFunc computes a node's bounds on demand.
type LayoutFunc func(Constraints) core.Rect

// Node is one positioned, styled rectangle.
type Node struct {
	// ID is the node's index in the arena.
	ID core.NodeID
	// Key is the stable identity published with hit regions.
	Key string

	Parent   core.NodeID
	Children []core.NodeID

	// Bounds is the resolved box in terminal coordinates. Layout, when
	// set, takes precedence.
	Bounds core.Rect
	Layout LayoutFunc

	ZIndex          int
	StackingContext bool
	Position        Position
	Hidden          bool

	Text  string
	Fg    core.Color
	Bg    core.Color
	Attrs core.Attribute

	Border      *Border
	Style       StyleResolver
	Interactive *Interactive
}

// CreatesLayer reports whether the node paints into its own layer.
func (n *Node) CreatesLayer() bool {
	return n.StackingContext || n.ZIndex != 0
}

// ResolveBounds returns the node's box, running Layout when present.
func (n *Node) ResolveBounds(c Constraints) core.Rect {
	if n.Layout != nil {
		return n.Layout(c)
	}
	return n.Bounds
}

// Tree is a flat arena of nodes. The first node added is the root.
type Tree struct {
	nodes []Node
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{}
}

// Add appends n under parent and returns its id. Pass core.NoNode as the
// parent of the root. An unknown parent makes the node a detached root.
func (t *Tree) Add(parent core.NodeID, n Node) core.NodeID {
	id := core.NodeID(len(t.nodes))
	n.ID = id
	n.Children = nil
	n.Parent = core.NoNode
	if p, ok := t.Node(parent); ok {
		n.Parent = parent
		p.Children = append(p.Children, id)
	}
	t.nodes = append(t.nodes, n)
	return id
}

// Node returns the node with id.
func (t *Tree) Node(id core.NodeID) (*Node, bool) {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil, false
	}
	return &t.nodes[id], true
}

// Root returns the root id, or core.NoNode for an empty tree.
func (t *Tree) Root() core.NodeID {
	if len(t.nodes) == 0 {
		return core.NoNode
	}
	return 0
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Roots returns every node without a parent, in insertion order.
func (t *Tree) Roots() []core.NodeID {
	var roots []core.NodeID
	for i := range t.nodes {
		if t.nodes[i].Parent == core.NoNode {
			roots = append(roots, t.nodes[i].ID)
		}
	}
	return roots
}

// PaintOrder returns the children of id ordered for painting: normal-flow
// children first, then positioned ones, each group in insertion order.
func (t *Tree) PaintOrder(id core.NodeID) []core.NodeID {
	n, ok := t.Node(id)
	if !ok {
		return nil
	}
	ordered := make([]core.NodeID, 0, len(n.Children))
	for _, c := range n.Children {
		if child, ok := t.Node(c); ok && child.Position.IsStatic() {
			ordered = append(ordered, c)
		}
	}
	for _, c := range n.Children {
		if child, ok := t.Node(c); ok && !child.Position.IsStatic() {
			ordered = append(ordered, c)
		}
	}
	return ordered
}

// Walk visits nodes depth first in paint order, parents before children.
// Returning false from fn skips the node's subtree.
func (t *Tree) Walk(fn func(n *Node) bool) {
	for _, r := range t.Roots() {
		t.walk(r, fn)
	}
}

func (t *Tree) walk(id core.NodeID, fn func(n *Node) bool) {
	n, ok := t.Node(id)
	if !ok || !fn(n) {
		return
	}
	for _, c := range t.PaintOrder(id) {
		t.walk(c, fn)
	}
}
