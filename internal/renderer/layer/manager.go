package layer

import (
	"sort"

	"github.com/dshills/termpaint/internal/renderer/core"
)

// Manager owns every layer of a frame, keyed by id.
//
// The z-sorted view is invalidated on any mutation that can reorder layers
// and rebuilt on the next read. Manager is not safe for concurrent use.
type Manager struct {
	// layers contains all registered layers, keyed by ID.
	layers map[string]*Layer

	// sorted caches layers ascending by z-index.
	sorted []*Layer

	// needsSort indicates sorted must be rebuilt.
	needsSort bool

	nextSeq uint64
}

// NewManager creates a manager whose root layer covers width×height.
func NewManager(width, height int) *Manager {
	m := &Manager{
		layers:    make(map[string]*Layer),
		needsSort: true,
	}
	m.layers[RootID] = newLayer(RootID, 0, core.NewRect(0, 0, max(width, 1), max(height, 1)), core.NoNode, m.seq())
	return m
}

func (m *Manager) seq() uint64 {
	m.nextSeq++
	return m.nextSeq
}

// Root returns the root layer.
func (m *Manager) Root() *Layer {
	return m.layers[RootID]
}

// CreateLayer registers a layer. Re-registering an existing id updates its
// z-index, bounds and node in place and resizes its buffer.
func (m *Manager) CreateLayer(id string, z int, bounds core.Rect, nodeID core.NodeID) *Layer {
	if l, ok := m.layers[id]; ok {
		if l.ZIndex != z {
			l.ZIndex = z
			m.needsSort = true
		}
		if l.Bounds != bounds {
			l.Bounds = bounds
			l.Buffer.Resize(bounds.Width, bounds.Height)
		}
		l.NodeID = nodeID
		return l
	}

	l := newLayer(id, z, bounds, nodeID, m.seq())
	m.layers[id] = l
	m.needsSort = true
	return l
}

// Get returns a layer by id.
func (m *Manager) Get(id string) (*Layer, bool) {
	l, ok := m.layers[id]
	return l, ok
}

// Has reports whether a layer is registered.
func (m *Manager) Has(id string) bool {
	_, ok := m.layers[id]
	return ok
}

// Count returns the number of layers, root included.
func (m *Manager) Count() int {
	return len(m.layers)
}

// Remove deletes a layer. The root layer cannot be removed.
func (m *Manager) Remove(id string) bool {
	if id == RootID {
		return false
	}
	if _, ok := m.layers[id]; !ok {
		return false
	}
	delete(m.layers, id)
	m.needsSort = true
	return true
}

// SetZIndex changes a layer's z-index.
func (m *Manager) SetZIndex(id string, z int) bool {
	l, ok := m.layers[id]
	if !ok {
		return false
	}
	if l.ZIndex != z {
		l.ZIndex = z
		m.needsSort = true
	}
	return true
}

// SetVisible shows or hides a layer.
func (m *Manager) SetVisible(id string, visible bool) bool {
	l, ok := m.layers[id]
	if !ok {
		return false
	}
	l.Visible = visible
	return true
}

// BringToFront places a layer above every other layer.
func (m *Manager) BringToFront(id string) bool {
	l, ok := m.layers[id]
	if !ok {
		return false
	}
	top := l.ZIndex
	first := true
	for oid, other := range m.layers {
		if oid == id {
			continue
		}
		if first || other.ZIndex > top {
			top = other.ZIndex
			first = false
		}
	}
	if first {
		return true
	}
	return m.SetZIndex(id, top+1)
}

// SendToBack places a layer below every other non-root layer.
func (m *Manager) SendToBack(id string) bool {
	l, ok := m.layers[id]
	if !ok {
		return false
	}
	bottom := l.ZIndex
	first := true
	for oid, other := range m.layers {
		if oid == id || oid == RootID {
			continue
		}
		if first || other.ZIndex < bottom {
			bottom = other.ZIndex
			first = false
		}
	}
	if first {
		return true
	}
	return m.SetZIndex(id, bottom-1)
}

// Sorted returns the layers ascending by z-index. Layers with equal z-index
// keep creation order. The returned slice must not be modified.
func (m *Manager) Sorted() []*Layer {
	m.ensureSorted()
	return m.sorted
}

func (m *Manager) ensureSorted() {
	if !m.needsSort {
		return
	}

	m.sorted = make([]*Layer, 0, len(m.layers))
	for _, l := range m.layers {
		m.sorted = append(m.sorted, l)
	}
	sort.Slice(m.sorted, func(i, j int) bool {
		a, b := m.sorted[i], m.sorted[j]
		if a.ZIndex != b.ZIndex {
			return a.ZIndex < b.ZIndex
		}
		return a.seq < b.seq
	})

	m.needsSort = false
}

// Reset drops every non-root layer and clears the root buffer.
func (m *Manager) Reset() {
	root := m.layers[RootID]
	m.layers = map[string]*Layer{RootID: root}
	root.Buffer.Clear()
	m.needsSort = true
}

// ResizeRoot resizes the root layer to cover width×height.
func (m *Manager) ResizeRoot(width, height int) {
	root := m.layers[RootID]
	width, height = max(width, 1), max(height, 1)
	root.Bounds = core.NewRect(0, 0, width, height)
	root.Buffer.Resize(width, height)
}
