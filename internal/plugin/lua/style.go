package lua

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/tree"
)

// Logger receives script failures.
type Logger interface {
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}

// NodeInfo is the read-only view of a node passed to a style function.
type NodeInfo struct {
	Key      string
	Text     string
	Kind     string
	X, Y     int
	Width    int
	Height   int
	ZIndex   int
	Disabled bool
	Open     bool
}

func (n NodeInfo) table(t *lua.LTable) {
	t.RawSetString("key", lua.LString(n.Key))
	t.RawSetString("text", lua.LString(n.Text))
	t.RawSetString("kind", lua.LString(n.Kind))
	t.RawSetString("x", lua.LNumber(n.X))
	t.RawSetString("y", lua.LNumber(n.Y))
	t.RawSetString("width", lua.LNumber(n.Width))
	t.RawSetString("height", lua.LNumber(n.Height))
	t.RawSetString("z", lua.LNumber(n.ZIndex))
	t.RawSetString("disabled", lua.LBool(n.Disabled))
	t.RawSetString("open", lua.LBool(n.Open))
}

// Result is the style a script computed. Unset colors fall back to the
// node's own fields.
type Result struct {
	Fg     core.Color
	Bg     core.Color
	Border core.Color
}

// Color returns the computed foreground.
func (r Result) Color() core.Color { return r.Fg }

// Background returns the computed background.
func (r Result) Background() core.Color { return r.Bg }

// BorderColor returns the computed border color.
func (r Result) BorderColor() core.Color { return r.Border }

// Styles holds a loaded style script.
type Styles struct {
	state *State
	log   Logger
}

// Load runs the script at path and returns its styles.
func Load(path string, opts ...StateOption) (*Styles, error) {
	s := &Styles{state: NewState(opts...), log: nopLogger{}}
	if err := s.state.DoFile(path); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("load style script %s: %w", path, err)
	}
	return s, nil
}

// LoadString runs code and returns its styles.
func LoadString(code string, opts ...StateOption) (*Styles, error) {
	s := &Styles{state: NewState(opts...), log: nopLogger{}}
	if err := s.state.DoString(code); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("load style script: %w", err)
	}
	return s, nil
}

// SetLogger sets where script failures are reported.
func (s *Styles) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	s.log = l
}

// Has reports whether the script defines fn.
func (s *Styles) Has(fn string) bool {
	return s.state.HasFunction(fn)
}

// Evaluate calls fn for the node and converts its returned table.
func (s *Styles) Evaluate(fn string, info NodeInfo) (Result, error) {
	arg := s.state.NewTable()
	info.table(arg)

	ret, err := s.state.Call(fn, arg)
	if err != nil {
		return Result{}, fmt.Errorf("style %s: %w", fn, err)
	}
	if len(ret) == 0 {
		return Result{}, nil
	}
	tbl, ok := ret[0].(*lua.LTable)
	if !ok {
		if ret[0] == lua.LNil {
			return Result{}, nil
		}
		return Result{}, fmt.Errorf("style %s: returned %s, want table", fn, ret[0].Type())
	}

	return Result{
		Fg:     colorField(tbl, "color"),
		Bg:     colorField(tbl, "background"),
		Border: colorField(tbl, "border"),
	}, nil
}

func colorField(t *lua.LTable, key string) core.Color {
	if v, ok := t.RawGetString(key).(lua.LString); ok {
		return core.ParseColor(string(v))
	}
	return core.ColorDefault
}

// Resolver returns a tree.StyleResolver that evaluates fn on first use.
// A failing script is logged once and leaves every color unset.
func (s *Styles) Resolver(fn string, info NodeInfo) tree.StyleResolver {
	return &resolver{styles: s, fn: fn, info: info}
}

// Close releases the Lua state.
func (s *Styles) Close() error {
	return s.state.Close()
}

type resolver struct {
	styles *Styles
	fn     string
	info   NodeInfo

	once   sync.Once
	result Result
}

func (r *resolver) resolve() Result {
	r.once.Do(func() {
		res, err := r.styles.Evaluate(r.fn, r.info)
		if err != nil {
			r.styles.log.Warn("style script failed for node %q: %v", r.info.Key, err)
			return
		}
		r.result = res
	})
	return r.result
}

func (r *resolver) Color() core.Color       { return r.resolve().Fg }
func (r *resolver) Background() core.Color  { return r.resolve().Bg }
func (r *resolver) BorderColor() core.Color { return r.resolve().Border }
