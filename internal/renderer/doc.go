// Package renderer paints a tree of positioned, styled rectangles onto a
// terminal as minimal ANSI output.
//
// Each frame runs the same pipeline:
//
//	┌──────────────────────────────────────────┐
//	│ tree.Tree (already laid out paint nodes) │
//	├──────────────────────────────────────────┤
//	│ layer.Manager   one layer per stacking   │
//	│                 context, root always on  │
//	├──────────────────────────────────────────┤
//	│ paint           background, text, border │
//	├──────────────────────────────────────────┤
//	│ compositor      z-ascending merge        │
//	├──────────────────────────────────────────┤
//	│ display         diff / full / static     │
//	├──────────────────────────────────────────┤
//	│ hitregion       staged, swapped at once  │
//	└──────────────────────────────────────────┘
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.DefaultOptions())
//	err := r.RenderFrame(ctx, t, renderer.ModeDiff)
package renderer
