// Package hitregion publishes the visible interactive regions of the last
// rendered frame.
//
// The renderer stages a frame's regions and swaps them in with one atomic
// store, so readers on other goroutines see either the previous frame's
// complete set or the new one, never a mix.
package hitregion

import (
	"sync/atomic"

	"github.com/dshills/termpaint/internal/renderer/core"
)

// Region is the on-screen box of one interactive node.
type Region struct {
	NodeID core.NodeID `json:"nodeId"`
	Key    string      `json:"key"`
	Kind   string      `json:"kind"`
	X      int         `json:"x"`
	Y      int         `json:"y"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	ZIndex int         `json:"zIndex"`
}

// Rect returns the region's box.
func (r Region) Rect() core.Rect {
	return core.NewRect(r.X, r.Y, r.Width, r.Height)
}

// Contains reports whether (x, y) is inside the region.
func (r Region) Contains(x, y int) bool {
	return r.Rect().Contains(x, y)
}

// Registry holds the published regions plus a staging area for the frame
// being rendered. Staging is single-writer; reads are safe from any
// goroutine.
type Registry struct {
	published atomic.Pointer[[]Region]
	staging   []Region
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	empty := []Region{}
	r.published.Store(&empty)
	return r
}

// Begin discards any staged regions.
func (r *Registry) Begin() {
	r.staging = nil
}

// Stage adds a region to the pending frame. Empty regions are ignored.
func (r *Registry) Stage(reg Region) {
	if reg.Width <= 0 || reg.Height <= 0 {
		return
	}
	r.staging = append(r.staging, reg)
}

// Commit publishes the staged regions, replacing the previous set.
func (r *Registry) Commit() {
	staged := r.staging
	if staged == nil {
		staged = []Region{}
	}
	r.staging = nil
	r.published.Store(&staged)
}

// Snapshot returns the published regions. The slice must not be modified.
func (r *Registry) Snapshot() []Region {
	return *r.published.Load()
}

// Len returns the number of published regions.
func (r *Registry) Len() int {
	return len(r.Snapshot())
}

// HitTest returns the topmost published region containing (x, y). Among
// equal z-indexes the one registered last wins.
func (r *Registry) HitTest(x, y int) (Region, bool) {
	var (
		best  Region
		found bool
	)
	for _, reg := range r.Snapshot() {
		if !reg.Contains(x, y) {
			continue
		}
		if !found || reg.ZIndex >= best.ZIndex {
			best = reg
			found = true
		}
	}
	return best, found
}

// Find returns the published region of a node key.
func (r *Registry) Find(key string) (Region, bool) {
	for _, reg := range r.Snapshot() {
		if reg.Key == key {
			return reg, true
		}
	}
	return Region{}, false
}
