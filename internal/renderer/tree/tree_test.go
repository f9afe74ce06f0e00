package tree

import (
	"testing"

	"github.com/dshills/termpaint/internal/renderer/core"
)

func TestTreeAdd(t *testing.T) {
	tr := New()
	if tr.Root() != core.NoNode {
		t.Error("empty tree should have no root")
	}

	root := tr.Add(core.NoNode, Node{Key: "root"})
	a := tr.Add(root, Node{Key: "a"})
	b := tr.Add(root, Node{Key: "b"})
	aa := tr.Add(a, Node{Key: "aa"})

	if tr.Len() != 4 {
		t.Errorf("Len() = %d, want 4", tr.Len())
	}
	r, _ := tr.Node(root)
	if len(r.Children) != 2 || r.Children[0] != a || r.Children[1] != b {
		t.Errorf("root children = %v", r.Children)
	}
	n, _ := tr.Node(aa)
	if n.Parent != a || n.ID != aa {
		t.Errorf("node aa = %+v", n)
	}
	if _, ok := tr.Node(42); ok {
		t.Error("Node(42) should not exist")
	}
}

func TestTreeDetachedParent(t *testing.T) {
	tr := New()
	tr.Add(core.NoNode, Node{Key: "root"})
	orphan := tr.Add(17, Node{Key: "orphan"})
	n, _ := tr.Node(orphan)
	if n.Parent != core.NoNode {
		t.Errorf("unknown parent should detach node, Parent = %d", n.Parent)
	}
	if got := len(tr.Roots()); got != 2 {
		t.Errorf("Roots() has %d entries, want 2", got)
	}
}

func TestWalkPaintOrder(t *testing.T) {
	tr := New()
	root := tr.Add(core.NoNode, Node{Key: "root"})
	tr.Add(root, Node{Key: "abs", Position: PositionAbsolute})
	flow := tr.Add(root, Node{Key: "flow"})
	tr.Add(flow, Node{Key: "flow-child"})
	tr.Add(root, Node{Key: "flow2"})

	var order []string
	tr.Walk(func(n *Node) bool {
		order = append(order, n.Key)
		return true
	})

	want := []string{"root", "flow", "flow-child", "flow2", "abs"}
	if len(order) != len(want) {
		t.Fatalf("Walk visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Walk[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestWalkSkipSubtree(t *testing.T) {
	tr := New()
	root := tr.Add(core.NoNode, Node{Key: "root"})
	hidden := tr.Add(root, Node{Key: "hidden", Hidden: true})
	tr.Add(hidden, Node{Key: "inner"})

	var seen []string
	tr.Walk(func(n *Node) bool {
		seen = append(seen, n.Key)
		return !n.Hidden
	})
	if len(seen) != 2 {
		t.Errorf("Walk visited %v, want root and hidden only", seen)
	}
}

func TestCreatesLayer(t *testing.T) {
	tests := []struct {
		node Node
		want bool
	}{
		{Node{}, false},
		{Node{ZIndex: 3}, true},
		{Node{ZIndex: -1}, true},
		{Node{StackingContext: true}, true},
	}
	for i, tt := range tests {
		if got := tt.node.CreatesLayer(); got != tt.want {
			t.Errorf("case %d: CreatesLayer() = %v, want %v", i, got, tt.want)
		}
	}
}

func TestResolveBounds(t *testing.T) {
	n := Node{Bounds: core.NewRect(1, 2, 3, 4)}
	if got := n.ResolveBounds(Constraints{}); got != n.Bounds {
		t.Errorf("ResolveBounds = %+v, want %+v", got, n.Bounds)
	}

	n.Layout = func(c Constraints) core.Rect {
		return core.NewRect(0, 0, c.MaxWidth, 1)
	}
	if got := n.ResolveBounds(Constraints{MaxWidth: 40}); got != core.NewRect(0, 0, 40, 1) {
		t.Errorf("Layout not used: %+v", got)
	}
}

func TestVisibleOptions(t *testing.T) {
	tests := []struct {
		in   Interactive
		want int
	}{
		{Interactive{Options: []string{"a", "b"}}, 2},
		{Interactive{Options: make([]string, 9)}, DefaultMaxVisible},
		{Interactive{Options: make([]string, 9), MaxVisible: 3}, 3},
		{Interactive{Options: make([]string, 9), ScrollOffset: 7}, 2},
		{Interactive{}, 0},
	}
	for i, tt := range tests {
		if got := tt.in.VisibleOptions(); got != tt.want {
			t.Errorf("case %d: VisibleOptions() = %d, want %d", i, got, tt.want)
		}
	}
}

func TestParsers(t *testing.T) {
	if ParsePosition("absolute") != PositionAbsolute || ParsePosition("bogus") != PositionStatic {
		t.Error("ParsePosition mismatch")
	}
	if k, ok := ParseInteractiveKind("dropdown"); !ok || k != KindDropdown {
		t.Errorf("ParseInteractiveKind(dropdown) = %v, %v", k, ok)
	}
	if _, ok := ParseInteractiveKind("slider"); ok {
		t.Error("unknown kind should not parse")
	}
}
