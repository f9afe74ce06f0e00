package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/termpaint/internal/plugin/lua"
	"github.com/dshills/termpaint/internal/renderer/border"
	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/tree"
)

// Logger receives style script failures.
type Logger interface {
	Warn(msg string, args ...any)
}

// Scene is a loaded scene: its node tree and the style script backing it.
type Scene struct {
	Path string
	// ScriptPath is the resolved style script, empty when the scene has
	// none.
	ScriptPath string
	Tree       *tree.Tree
	Styles     *lua.Styles
}

// Close releases the style script, if any.
func (s *Scene) Close() error {
	if s.Styles == nil {
		return nil
	}
	return s.Styles.Close()
}

// Load reads and builds the scene file at path.
func Load(path string, log Logger) (*Scene, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}

	var (
		styles *lua.Styles
		script string
	)
	if doc.StyleScript != "" {
		script = doc.StyleScript
		if !filepath.IsAbs(script) {
			script = filepath.Join(filepath.Dir(path), script)
		}
		styles, err = lua.Load(script)
		if err != nil {
			return nil, fmt.Errorf("scene %s: %w", path, err)
		}
		if log != nil {
			styles.SetLogger(log)
		}
	}

	t, err := Build(doc, styles)
	if err != nil {
		if styles != nil {
			styles.Close()
		}
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return &Scene{Path: path, ScriptPath: script, Tree: t, Styles: styles}, nil
}

// Build converts a document into a tree. styles may be nil when no node
// names a style function.
func Build(doc Document, styles *lua.Styles) (*tree.Tree, error) {
	b := &builder{
		t:      tree.New(),
		styles: styles,
		seen:   make(map[string]bool),
	}
	if err := b.add(core.NoNode, doc.Root); err != nil {
		return nil, err
	}
	return b.t, nil
}

type builder struct {
	t      *tree.Tree
	styles *lua.Styles
	seen   map[string]bool
}

func (b *builder) add(parent core.NodeID, spec NodeSpec) error {
	n, err := b.node(spec)
	if err != nil {
		return err
	}
	id := b.t.Add(parent, n)
	for _, child := range spec.Children {
		if err := b.add(id, child); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) node(spec NodeSpec) (tree.Node, error) {
	key := spec.ID
	if key == "" {
		key = uuid.NewString()
	}
	if b.seen[key] {
		return tree.Node{}, fmt.Errorf("%w: duplicate id %q", ErrInvalidNode, key)
	}
	b.seen[key] = true

	if spec.Width < 0 || spec.Height < 0 {
		return tree.Node{}, fmt.Errorf("%w: %q has negative size %dx%d", ErrInvalidNode, key, spec.Width, spec.Height)
	}

	n := tree.Node{
		Key:             key,
		Bounds:          core.NewRect(spec.X, spec.Y, spec.Width, spec.Height),
		ZIndex:          spec.Z,
		StackingContext: spec.Stacking,
		Position:        tree.ParsePosition(strings.ToLower(spec.Position)),
		Hidden:          spec.Hidden,
		Text:            norm.NFC.String(spec.Text),
		Fg:              core.ParseColor(spec.Color),
		Bg:              core.ParseColor(spec.Background),
		Attrs:           attrs(spec),
	}

	if spec.Border != nil {
		bd, err := borderFrom(key, spec.Border)
		if err != nil {
			return tree.Node{}, err
		}
		n.Border = bd
	}

	if spec.Interactive != nil {
		kind, ok := tree.ParseInteractiveKind(strings.ToLower(spec.Interactive.Type))
		if !ok {
			return tree.Node{}, fmt.Errorf("%w: %q has unknown interactive type %q", ErrInvalidNode, key, spec.Interactive.Type)
		}
		n.Interactive = &tree.Interactive{
			Kind:         kind,
			Open:         spec.Interactive.Open,
			Disabled:     spec.Interactive.Disabled,
			Options:      spec.Interactive.Options,
			MaxVisible:   spec.Interactive.MaxVisible,
			ScrollOffset: spec.Interactive.ScrollOffset,
			DropUp:       spec.Interactive.DropUp,
		}
	}

	if spec.Style != "" {
		if b.styles == nil {
			return tree.Node{}, fmt.Errorf("%w: %q uses style %q but the scene has no style_script", ErrInvalidNode, key, spec.Style)
		}
		n.Style = b.styles.Resolver(spec.Style, nodeInfo(key, spec))
	}

	return n, nil
}

func attrs(spec NodeSpec) core.Attribute {
	var a core.Attribute
	flags := []struct {
		on   bool
		attr core.Attribute
	}{
		{spec.Bold, core.AttrBold},
		{spec.Dim, core.AttrDim},
		{spec.Italic, core.AttrItalic},
		{spec.Underline, core.AttrUnderline},
		{spec.Inverse, core.AttrInverse},
		{spec.Strikethrough, core.AttrStrikethrough},
	}
	for _, f := range flags {
		if f.on {
			a = a.With(f.attr)
		}
	}
	return a
}

func borderFrom(key string, spec *BorderSpec) (*tree.Border, error) {
	style, ok := border.ParseStyle(spec.Style)
	if !ok {
		return nil, fmt.Errorf("%w: %q has unknown border style %q", ErrInvalidNode, key, spec.Style)
	}

	sides := border.AllSides()
	if len(spec.Sides) > 0 {
		sides = border.Sides{}
		for _, s := range spec.Sides {
			switch strings.ToLower(s) {
			case "top":
				sides.Top = true
			case "right":
				sides.Right = true
			case "bottom":
				sides.Bottom = true
			case "left":
				sides.Left = true
			default:
				return nil, fmt.Errorf("%w: %q has unknown border side %q", ErrInvalidNode, key, s)
			}
		}
	}

	return &tree.Border{
		Style:      style,
		Color:      core.ParseColor(spec.Color),
		Background: core.ParseColor(spec.Background),
		Sides:      sides,
	}, nil
}

func nodeInfo(key string, spec NodeSpec) lua.NodeInfo {
	info := lua.NodeInfo{
		Key:    key,
		Text:   spec.Text,
		X:      spec.X,
		Y:      spec.Y,
		Width:  spec.Width,
		Height: spec.Height,
		ZIndex: spec.Z,
	}
	if in := spec.Interactive; in != nil {
		info.Kind = strings.ToLower(in.Type)
		info.Disabled = in.Disabled
		info.Open = in.Open
	}
	return info
}
