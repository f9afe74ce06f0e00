package core

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint8

// Text attribute flags.
const (
	AttrNone          Attribute = 0
	AttrBold          Attribute = 1 << iota
	AttrDim                     // Faint/dim text
	AttrItalic                  // Italic text
	AttrUnderline               // Underlined text
	AttrStrikethrough           // Strikethrough text
	AttrInverse                 // Reverse video (swap fg/bg)
)

// AllAttributes lists every flag in SGR emission order.
var AllAttributes = [...]Attribute{
	AttrBold, AttrDim, AttrItalic, AttrUnderline, AttrInverse, AttrStrikethrough,
}

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// NodeID addresses a node in the paint-node arena. NoNode marks cells that
// no node painted.
type NodeID int

// NoNode is the attribution of unpainted cells.
const NoNode NodeID = -1

// Cell is one character position's full visual state.
type Cell struct {
	// Char is a single grapheme. "" means no content.
	Char string

	Fg    Color
	Bg    Color
	Attrs Attribute

	// Attribution, used for hit-testing and debugging. Not visual.
	ZIndex  int
	LayerID string
	NodeID  NodeID

	// Opaque marks a background fill painted by a node. An opaque blank
	// hides the glyphs of lower layers. Not visual.
	Opaque bool

	// Dirty marks a visual change since the last successful flush.
	Dirty bool
}

// EmptyCell returns a blank, unstyled, unattributed cell.
func EmptyCell() Cell {
	return Cell{Char: " ", NodeID: NoNode}
}

// IsTransparent reports whether the cell lets lower layers show through.
// A space is only transparent when it carries no style and no color.
func (c Cell) IsTransparent() bool {
	if c.Char == "" {
		return true
	}
	return c.Char == " " &&
		c.Attrs == AttrNone &&
		!c.Fg.IsSet() &&
		!c.Bg.IsSet()
}

// CoversGlyph reports whether the cell replaces the glyph of a lower layer
// when composited. Unlike IsTransparent it ignores the background: a
// colored blank tints the glyph beneath it unless it is Opaque.
func (c Cell) CoversGlyph() bool {
	if c.Char == "" {
		return false
	}
	if c.Char != " " || c.Opaque {
		return true
	}
	return c.Attrs != AttrNone || c.Fg.IsSet()
}

// VisualEquals compares the fields that reach the terminal:
// char, colors and attributes.
func (c Cell) VisualEquals(other Cell) bool {
	return c.Char == other.Char &&
		c.Attrs == other.Attrs &&
		c.Fg.Equals(other.Fg) &&
		c.Bg.Equals(other.Bg)
}

// StyleEquals compares colors and attributes only.
func (c Cell) StyleEquals(other Cell) bool {
	return c.Attrs == other.Attrs &&
		c.Fg.Equals(other.Fg) &&
		c.Bg.Equals(other.Bg)
}

// Apply returns a copy of c with the patch applied. The result is dirty if c
// was, or if a visual field changed.
func (c Cell) Apply(p Patch) Cell {
	next := c
	if p.fields&fieldChar != 0 {
		next.Char = p.char
	}
	if p.fields&fieldFg != 0 {
		next.Fg = p.fg
	}
	if p.fields&fieldBg != 0 {
		next.Bg = p.bg
	}
	if p.fields&fieldAttrs != 0 {
		next.Attrs = p.attrs
	}
	if p.fields&fieldZIndex != 0 {
		next.ZIndex = p.zIndex
	}
	if p.fields&fieldLayer != 0 {
		next.LayerID = p.layerID
	}
	if p.fields&fieldNode != 0 {
		next.NodeID = p.nodeID
	}
	if p.fields&fieldOpaque != 0 {
		next.Opaque = p.opaque
	}
	next.Dirty = c.Dirty || !c.VisualEquals(next)
	return next
}

// Replace returns other with its dirty bit computed against c.
func (c Cell) Replace(other Cell) Cell {
	other.Dirty = c.Dirty || !c.VisualEquals(other)
	return other
}

type patchField uint8

const (
	fieldChar patchField = 1 << iota
	fieldFg
	fieldBg
	fieldAttrs
	fieldZIndex
	fieldLayer
	fieldNode
	fieldOpaque
)

// Patch is a sparse set of cell field changes. Only the fields set through
// the With* builders are applied.
type Patch struct {
	fields  patchField
	char    string
	fg      Color
	bg      Color
	attrs   Attribute
	zIndex  int
	layerID string
	nodeID  NodeID
	opaque  bool
}

// NewPatch returns an empty patch.
func NewPatch() Patch {
	return Patch{}
}

// PatchFromCell returns a patch that sets every field of c.
func PatchFromCell(c Cell) Patch {
	return NewPatch().
		WithChar(c.Char).
		WithFg(c.Fg).
		WithBg(c.Bg).
		WithAttrs(c.Attrs).
		WithZIndex(c.ZIndex).
		WithLayer(c.LayerID).
		WithNode(c.NodeID).
		WithOpaque(c.Opaque)
}

// WithChar sets the grapheme.
func (p Patch) WithChar(ch string) Patch {
	p.fields |= fieldChar
	p.char = ch
	return p
}

// WithFg sets the foreground color.
func (p Patch) WithFg(c Color) Patch {
	p.fields |= fieldFg
	p.fg = c
	return p
}

// WithBg sets the background color.
func (p Patch) WithBg(c Color) Patch {
	p.fields |= fieldBg
	p.bg = c
	return p
}

// WithAttrs sets the attribute flags.
func (p Patch) WithAttrs(a Attribute) Patch {
	p.fields |= fieldAttrs
	p.attrs = a
	return p
}

// WithZIndex sets the z-index attribution.
func (p Patch) WithZIndex(z int) Patch {
	p.fields |= fieldZIndex
	p.zIndex = z
	return p
}

// WithLayer sets the layer attribution.
func (p Patch) WithLayer(id string) Patch {
	p.fields |= fieldLayer
	p.layerID = id
	return p
}

// WithNode sets the node attribution.
func (p Patch) WithNode(id NodeID) Patch {
	p.fields |= fieldNode
	p.nodeID = id
	return p
}

// WithOpaque marks the cell as a node's background fill.
func (p Patch) WithOpaque(opaque bool) Patch {
	p.fields |= fieldOpaque
	p.opaque = opaque
	return p
}

// IsEmpty returns true if the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.fields == 0
}

// Char returns the patch's grapheme and whether it is set.
func (p Patch) Char() (string, bool) {
	return p.char, p.fields&fieldChar != 0
}
