// Package display double-buffers what is on screen against what should be,
// and turns the difference into one write of ANSI output.
package display

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dshills/termpaint/internal/renderer/ansi"
	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/dirty"
	"github.com/dshills/termpaint/internal/renderer/grid"
)

// ErrWrite wraps failures of the output sink.
var ErrWrite = errors.New("display: write failed")

// Kind identifies how a flush painted the screen.
type Kind uint8

const (
	// KindNone means nothing changed and nothing was written.
	KindNone Kind = iota
	// KindDiff emitted only changed cells.
	KindDiff
	// KindFull rewrote every row.
	KindFull
	// KindStatic wrote the content block without cursor positioning.
	KindStatic
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindDiff:
		return "diff"
	case KindFull:
		return "full"
	case KindStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Change is one differing cell between the screen and the target.
type Change struct {
	X, Y int
	Old  core.Cell
	New  core.Cell
}

// FlushOptions controls a flush.
type FlushOptions struct {
	// ClearScreen clears the terminal before a full repaint.
	ClearScreen bool
}

// FlushResult reports what a flush did.
type FlushResult struct {
	Kind    Kind
	Changed int
	Bytes   int
}

// Buffer holds the believed on-screen grid (current), the target grid
// (pending) and the cursor position to leave behind after a flush.
//
// current only advances after a successful write, so a failed flush is
// retried in full by the next one.
type Buffer struct {
	current *grid.Grid
	pending *grid.Grid

	gen    *ansi.Generator
	policy dirty.Policy

	cursor    core.Point
	cursorSet bool

	// forceFull makes the next flush a full repaint.
	forceFull bool
}

// New creates a display buffer. The first flush is always a full repaint
// because the terminal content is unknown.
func New(width, height int, gen *ansi.Generator) *Buffer {
	return &Buffer{
		current:   grid.New(width, height),
		pending:   grid.New(width, height),
		gen:       gen,
		policy:    dirty.DefaultPolicy(),
		forceFull: true,
	}
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (width, height int) {
	return b.pending.Size()
}

// Current returns the grid believed to be on screen.
func (b *Buffer) Current() *grid.Grid {
	return b.current
}

// Pending returns the target grid.
func (b *Buffer) Pending() *grid.Grid {
	return b.pending
}

// Policy returns the full-repaint policy.
func (b *Buffer) Policy() *dirty.Policy {
	return &b.policy
}

// Generator returns the ANSI code generator.
func (b *Buffer) Generator() *ansi.Generator {
	return b.gen
}

// SetCursor sets where the cursor is left after a flush.
func (b *Buffer) SetCursor(x, y int) {
	b.cursor = core.Point{X: x, Y: y}
	b.cursorSet = true
}

// Cursor returns the stored cursor position.
func (b *Buffer) Cursor() (core.Point, bool) {
	return b.cursor, b.cursorSet
}

// ForceFullRepaint makes the next flush repaint everything.
func (b *Buffer) ForceFullRepaint() {
	b.forceFull = true
}

// FullRepaintPending reports whether the next flush is forced to be full.
func (b *Buffer) FullRepaintPending() bool {
	return b.forceFull
}

// Resize resizes both grids in place and forces a full repaint.
func (b *Buffer) Resize(width, height int) {
	b.current.Resize(width, height)
	b.pending.Resize(width, height)
	b.forceFull = true
}

// UpdateFromComposite copies the compositor result into pending.
func (b *Buffer) UpdateFromComposite(g *grid.Grid) {
	b.pending.CopyFrom(g)
}

// Diff returns every cell where pending differs visually from current, in
// row-major order. The column right of a wide glyph that changed is
// reported too, since the terminal cleared it along with the glyph.
func (b *Buffer) Diff() []Change {
	width, height := b.pending.Size()
	var changes []Change
	for y := 0; y < height; y++ {
		leftChanged, leftWasWide := false, false
		for x := 0; x < width; x++ {
			next, _ := b.pending.Get(x, y)
			prev, ok := b.current.Get(x, y)
			changed := !ok || !prev.VisualEquals(next)
			if changed || (leftChanged && leftWasWide) {
				changes = append(changes, Change{X: x, Y: y, Old: prev, New: next})
			}
			leftChanged = changed
			leftWasWide = ok && grid.CharWidth(prev.Char) == 2
		}
	}
	return changes
}

// Flush brings the terminal in line with pending using a positional diff,
// or a full repaint when one is forced or the changed share of cells
// exceeds the policy threshold. Changed always reports the diff size.
func (b *Buffer) Flush(w io.Writer, opts FlushOptions) (FlushResult, error) {
	changes := b.Diff()
	width, height := b.pending.Size()

	if b.forceFull || b.policy.FullRepaint(len(changes), width*height) {
		res, err := b.FlushFull(w, opts)
		res.Changed = len(changes)
		return res, err
	}
	if len(changes) == 0 {
		return FlushResult{Kind: KindNone}, nil
	}
	return b.flushChanges(w, changes)
}

// FlushDiff emits only the changed cells.
func (b *Buffer) FlushDiff(w io.Writer) (FlushResult, error) {
	changes := b.Diff()
	if len(changes) == 0 {
		return FlushResult{Kind: KindNone}, nil
	}
	return b.flushChanges(w, changes)
}

func (b *Buffer) flushChanges(w io.Writer, changes []Change) (FlushResult, error) {
	var out bytes.Buffer
	style := core.EmptyCell()
	curX, curY := -1, -1

	for _, ch := range changes {
		// Covered by a wide glyph written just before.
		if ch.Y == curY && ch.X < curX {
			continue
		}
		text, width := b.glyphAt(ch.X, ch.Y)
		if width == 0 {
			continue
		}

		if ch.X != curX || ch.Y != curY {
			ansi.WriteCursorTo(&out, ch.X, ch.Y)
		}
		ansi.WriteSequence(&out, b.gen.Transition(style, ch.New))
		out.WriteString(text)

		style = ch.New
		curX, curY = ch.X+width, ch.Y
	}
	out.WriteString(ansi.Reset)
	b.writeCursor(&out)

	n, err := b.commit(w, &out)
	return FlushResult{Kind: KindDiff, Changed: len(changes), Bytes: n}, err
}

// FlushFull rewrites every row, optionally clearing the screen first.
func (b *Buffer) FlushFull(w io.Writer, opts FlushOptions) (FlushResult, error) {
	var out bytes.Buffer
	if opts.ClearScreen {
		out.WriteString(ansi.ClearScreen)
	} else {
		out.WriteString(ansi.Home)
	}

	width, height := b.pending.Size()
	style := core.EmptyCell()
	for y := 0; y < height; y++ {
		// Both clear and home leave the cursor at the first row.
		if y > 0 {
			ansi.WriteCursorTo(&out, 0, y)
		}
		for x := 0; x < width; {
			text, cw := b.glyphAt(x, y)
			if cw == 0 {
				x++
				continue
			}
			cell, _ := b.pending.Get(x, y)
			ansi.WriteSequence(&out, b.gen.Transition(style, cell))
			out.WriteString(text)
			style = cell
			x += cw
		}
	}
	out.WriteString(ansi.Reset)
	b.writeCursor(&out)

	n, err := b.commit(w, &out)
	if err == nil {
		b.forceFull = false
	}
	return FlushResult{Kind: KindFull, Changed: width * height, Bytes: n}, err
}

// FlushStatic writes pending as a plain block for non-interactive output.
// Trailing blank rows are dropped, trailing blank cells are trimmed from
// each line and no cursor positioning is emitted.
func (b *Buffer) FlushStatic(w io.Writer) (FlushResult, error) {
	var out bytes.Buffer
	rows := b.ContentHeight()
	for y := 0; y < rows; y++ {
		last := b.lastVisibleColumn(y)
		style := core.EmptyCell()
		for x := 0; x <= last; {
			text, cw := b.glyphAt(x, y)
			if cw == 0 {
				x++
				continue
			}
			cell, _ := b.pending.Get(x, y)
			ansi.WriteSequence(&out, b.gen.Transition(style, cell))
			out.WriteString(text)
			style = cell
			x += cw
		}
		if len(b.gen.Codes(style)) > 0 {
			out.WriteString(ansi.Reset)
		}
		out.WriteByte('\n')
	}

	n, err := b.commit(w, &out)
	return FlushResult{Kind: KindStatic, Changed: rows, Bytes: n}, err
}

// ContentHeight returns the number of rows up to and including the last
// row with a visible glyph or a set background.
func (b *Buffer) ContentHeight() int {
	_, height := b.pending.Size()
	for y := height - 1; y >= 0; y-- {
		if b.lastVisibleColumn(y) >= 0 {
			return y + 1
		}
	}
	return 0
}

func (b *Buffer) lastVisibleColumn(y int) int {
	row := b.pending.Row(y)
	for x := len(row) - 1; x >= 0; x-- {
		if visible(row[x]) {
			return x
		}
	}
	return -1
}

func visible(c core.Cell) bool {
	return c.Bg.IsSet() || (c.Char != "" && c.Char != " ")
}

// glyphAt returns the text to emit for pending (x, y) and how many columns
// it covers. A cell right after a wide glyph covers nothing, whatever it
// holds; an orphaned continuation is emitted as a space.
func (b *Buffer) glyphAt(x, y int) (string, int) {
	cell, ok := b.pending.Get(x, y)
	if !ok {
		return "", 0
	}
	if left, ok := b.pending.Get(x-1, y); ok && grid.CharWidth(left.Char) == 2 {
		return "", 0
	}
	if cell.Char == "" {
		return " ", 1
	}
	width := grid.CharWidth(cell.Char)
	if width == 2 {
		if _, ok := b.pending.Get(x+1, y); !ok {
			return " ", 1
		}
	}
	return cell.Char, width
}

func (b *Buffer) writeCursor(out *bytes.Buffer) {
	if b.cursorSet {
		ansi.WriteCursorTo(out, b.cursor.X, b.cursor.Y)
	}
}

// commit writes out in one call and, on success, syncs current to pending.
func (b *Buffer) commit(w io.Writer, out *bytes.Buffer) (int, error) {
	n, err := w.Write(out.Bytes())
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	b.sync()
	return n, nil
}

func (b *Buffer) sync() {
	b.current.CopyFrom(b.pending)
	b.current.MarkClean()
	b.pending.MarkClean()
}
