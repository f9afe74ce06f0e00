package renderer

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/termpaint/internal/renderer/border"
	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/hitregion"
	"github.com/dshills/termpaint/internal/renderer/layer"
	"github.com/dshills/termpaint/internal/renderer/tree"
)

// nodeState is what one frame resolves for a node before painting.
type nodeState struct {
	visible bool
	bounds  core.Rect
	layerID string
	zIndex  int
	fg, bg  core.Color
}

// frame holds the per-frame resolution of a tree.
type frame struct {
	r     *Renderer
	t     *tree.Tree
	nodes []nodeState
}

func newFrame(r *Renderer, t *tree.Tree) *frame {
	n := 0
	if t != nil {
		n = t.Len()
	}
	return &frame{r: r, t: t, nodes: make([]nodeState, n)}
}

func layerIDFor(n *tree.Node) string {
	return "node-" + strconv.Itoa(int(n.ID))
}

// assignLayers discards the previous frame's layers and creates one per
// node that opens a stacking context or has a z-index. Other nodes share
// their parent's layer.
func (f *frame) assignLayers() {
	layers := f.r.comp.Layers()
	layers.Reset()
	if f.t == nil {
		return
	}

	screen := f.r.screen()
	constraints := tree.Constraints{MaxWidth: f.r.width, MaxHeight: f.r.height}

	f.t.Walk(func(n *tree.Node) bool {
		if n.Hidden {
			return false
		}
		st := &f.nodes[n.ID]
		st.visible = true
		st.bounds = n.ResolveBounds(constraints)
		st.layerID = layer.RootID

		var parent *nodeState
		if n.Parent != core.NoNode {
			parent = &f.nodes[n.Parent]
			st.layerID = parent.layerID
			st.zIndex = parent.zIndex
		}
		st.fg, st.bg = f.resolveColors(n, parent)

		if n.CreatesLayer() {
			st.layerID = layerIDFor(n)
			st.zIndex = n.ZIndex
			layers.CreateLayer(st.layerID, n.ZIndex, st.bounds.Intersection(screen), n.ID)
		}
		return true
	})
}

// resolveColors applies the style resolver and resolves inherit against
// the parent.
func (f *frame) resolveColors(n *tree.Node, parent *nodeState) (fg, bg core.Color) {
	fg, bg = n.Fg, n.Bg
	if n.Style != nil {
		fg = n.Style.Color().Or(fg)
		bg = n.Style.Background().Or(bg)
	}
	if parent != nil {
		if fg.IsInherit() {
			fg = parent.fg
		}
		if bg.IsInherit() {
			bg = parent.bg
		}
	}
	if fg.IsInherit() {
		fg = core.ColorDefault
	}
	if bg.IsInherit() {
		bg = core.ColorDefault
	}
	return fg, bg
}

// paint draws every visible node into its layer, parents first and
// normal-flow siblings before positioned ones.
func (f *frame) paint() {
	if f.t == nil {
		return
	}
	f.t.Walk(func(n *tree.Node) bool {
		st := &f.nodes[n.ID]
		if !st.visible {
			return false
		}
		l, ok := f.r.comp.Layers().Get(st.layerID)
		if !ok {
			f.r.log.Debug("node %d: layer %q missing, skipped", n.ID, st.layerID)
			return true
		}
		f.paintNode(n, st, l)
		return true
	})
}

func (f *frame) paintNode(n *tree.Node, st *nodeState, l *layer.Layer) {
	local := st.bounds.Translate(-l.Bounds.X, -l.Bounds.Y)
	if local.IsEmpty() {
		return
	}
	buf := l.Buffer
	owner := core.NewPatch().
		WithLayer(l.ID).
		WithNode(n.ID).
		WithZIndex(st.zIndex)

	if st.bg.IsSet() {
		buf.FillRegion(local, owner.
			WithChar(" ").
			WithFg(core.ColorDefault).
			WithBg(st.bg).
			WithAttrs(core.AttrNone).
			WithOpaque(true))
	}

	content := local
	b := n.Border
	if b != nil && b.Sides.Any() {
		content = local.Inset(b.Sides.Insets())
	}

	if n.Text != "" && !content.IsEmpty() {
		p := owner.WithFg(st.fg).WithAttrs(n.Attrs)
		if st.bg.IsSet() {
			p = p.WithBg(st.bg)
		}
		for i, line := range strings.Split(n.Text, "\n") {
			if i >= content.Height {
				break
			}
			line = runewidth.Truncate(line, content.Width, "")
			buf.WriteString(content.X, content.Y+i, line, p)
		}
	}

	if b != nil && b.Sides.Any() {
		color := b.Color
		if n.Style != nil {
			color = n.Style.BorderColor().Or(color)
		}
		if color.IsInherit() {
			color = st.fg
		}
		p := owner.WithFg(color).WithAttrs(core.AttrNone)
		if bg := b.Background.Or(st.bg); bg.IsSet() {
			p = p.WithBg(bg)
		}
		border.Draw(buf, local, b.Style, b.Sides, p)
	}
}

// publishRegions stages the visible interactive nodes and swaps them in.
func (f *frame) publishRegions() {
	reg := f.r.regions
	reg.Begin()
	if f.t != nil {
		screen := f.r.screen()
		f.t.Walk(func(n *tree.Node) bool {
			st := &f.nodes[n.ID]
			if !st.visible {
				return false
			}
			if n.Interactive == nil || n.Interactive.Disabled {
				return true
			}
			box := hitBounds(n, st.bounds, screen)
			if box.IsEmpty() {
				return true
			}
			key := n.Key
			if key == "" {
				key = strconv.Itoa(int(n.ID))
			}
			reg.Stage(hitregion.Region{
				NodeID: n.ID,
				Key:    key,
				Kind:   n.Interactive.Kind.String(),
				X:      box.X,
				Y:      box.Y,
				Width:  box.Width,
				Height: box.Height,
				ZIndex: st.zIndex,
			})
			return true
		})
	}
	reg.Commit()
}

// hitBounds returns a node's clickable box. An open dropdown grows by its
// visible option count, down or up, and widens to its longest label.
func hitBounds(n *tree.Node, bounds, screen core.Rect) core.Rect {
	in := n.Interactive
	if in.Kind == tree.KindDropdown && in.Open {
		rows := in.VisibleOptions()
		if in.DropUp {
			bounds.Y -= rows
		}
		bounds.Height += rows

		widest := 0
		for _, opt := range in.Options {
			widest = max(widest, runewidth.StringWidth(opt))
		}
		bounds.Width = max(bounds.Width, widest)
	}
	return bounds.Intersection(screen)
}
