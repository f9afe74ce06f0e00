package renderer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dshills/termpaint/internal/renderer/ansi"
	"github.com/dshills/termpaint/internal/renderer/compositor"
	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/dirty"
	"github.com/dshills/termpaint/internal/renderer/display"
	"github.com/dshills/termpaint/internal/renderer/hitregion"
	"github.com/dshills/termpaint/internal/renderer/tree"
)

// Mode selects how a frame reaches the terminal.
type Mode uint8

const (
	// ModeDiff emits changed cells, switching to a full repaint when the
	// change density crosses the threshold.
	ModeDiff Mode = iota
	// ModeFull rewrites every row.
	ModeFull
	// ModeStatic writes the content block once with no cursor positioning.
	ModeStatic
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeDiff:
		return "diff"
	case ModeFull:
		return "full"
	case ModeStatic:
		return "static"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "diff", "":
		return ModeDiff, nil
	case "full":
		return ModeFull, nil
	case "static":
		return ModeStatic, nil
	default:
		return ModeDiff, fmt.Errorf("unknown render mode %q", s)
	}
}

// Output is the byte sink frames are written to, plus the terminal size.
type Output interface {
	io.Writer
	Size() (width, height int)
}

// Logger receives frame-level diagnostics. *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Options configures the renderer.
type Options struct {
	// Logger receives diagnostics. Nil discards them.
	Logger Logger

	// ColorLevel is the terminal color capability.
	ColorLevel ansi.Level

	// FullRepaintThreshold is the share of changed cells above which a
	// diff frame becomes a full repaint. Zero keeps the default.
	FullRepaintThreshold float64

	// LayoutMaxHeight lets static frames grow past the visible rows. Zero
	// sizes them to the lowest node of the tree.
	LayoutMaxHeight int

	// ClearOnFull clears the screen before a full repaint.
	ClearOnFull bool
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		ColorLevel:           ansi.Level256,
		FullRepaintThreshold: dirty.DefaultThreshold,
		ClearOnFull:          true,
	}
}

// FrameStats describes the last rendered frame.
type FrameStats struct {
	Mode     Mode
	Flush    display.FlushResult
	Layers   int
	Regions  int
	Duration time.Duration
}

// Renderer drives one frame at a time: layers, paint, composite, flush and
// hit-region publication. RenderFrame must not be called concurrently;
// Regions and HitTest are safe from any goroutine.
type Renderer struct {
	opts Options
	log  Logger
	out  Output

	width, height int

	comp    *compositor.Compositor
	disp    *display.Buffer
	regions *hitregion.Registry

	frameCount uint64
	last       FrameStats
}

// New creates a renderer sized to out.
func New(out Output, opts Options) *Renderer {
	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}
	width, height := clampSize(out.Size())

	disp := display.New(width, height, ansi.NewGenerator(opts.ColorLevel))
	if opts.FullRepaintThreshold > 0 {
		disp.Policy().SetThreshold(opts.FullRepaintThreshold)
	}

	return &Renderer{
		opts:    opts,
		log:     log,
		out:     out,
		width:   width,
		height:  height,
		comp:    compositor.New(width, height),
		disp:    disp,
		regions: hitregion.NewRegistry(),
	}
}

func clampSize(width, height int) (int, int) {
	return max(width, 1), max(height, 1)
}

// Size returns the current frame dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Options returns the renderer options.
func (r *Renderer) Options() Options {
	return r.opts
}

// FrameCount returns the number of successfully flushed frames.
func (r *Renderer) FrameCount() uint64 {
	return r.frameCount
}

// LastFrame returns statistics of the last successful frame.
func (r *Renderer) LastFrame() FrameStats {
	return r.last
}

// Compositor returns the compositor.
func (r *Renderer) Compositor() *compositor.Compositor {
	return r.comp
}

// Display returns the display buffer.
func (r *Renderer) Display() *display.Buffer {
	return r.disp
}

// SetCursor sets where the cursor is left after each interactive flush.
func (r *Renderer) SetCursor(x, y int) {
	r.disp.SetCursor(x, y)
}

// MarkFullRedraw forces the next frame to repaint everything.
func (r *Renderer) MarkFullRedraw() {
	r.disp.ForceFullRepaint()
}

// Registry returns the hit-region registry.
func (r *Renderer) Registry() *hitregion.Registry {
	return r.regions
}

// Regions returns the interactive regions of the last frame.
func (r *Renderer) Regions() []hitregion.Region {
	return r.regions.Snapshot()
}

// HitTest returns the topmost interactive region at (x, y).
func (r *Renderer) HitTest(x, y int) (hitregion.Region, bool) {
	return r.regions.HitTest(x, y)
}

// RenderFrame paints t and writes the result to the output in mode.
//
// A frame either completes or leaves the previously flushed state intact:
// on error nothing is synced and the hit regions keep their last value.
func (r *Renderer) RenderFrame(ctx context.Context, t *tree.Tree, mode Mode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()

	r.absorbResize(mode, t)

	f := newFrame(r, t)
	f.assignLayers()
	f.paint()

	result := r.comp.Composite()
	r.disp.UpdateFromComposite(result)

	if err := ctx.Err(); err != nil {
		return err
	}

	res, err := r.flush(mode)
	if err != nil {
		r.log.Warn("frame %d: flush failed: %v", r.frameCount+1, err)
		return fmt.Errorf("render frame: %w", err)
	}

	f.publishRegions()

	r.frameCount++
	r.last = FrameStats{
		Mode:     mode,
		Flush:    res,
		Layers:   r.comp.Layers().Count(),
		Regions:  r.regions.Len(),
		Duration: time.Since(start),
	}
	r.log.Debug("frame %d: %s flush, %d cells, %d bytes, %d layers",
		r.frameCount, res.Kind, res.Changed, res.Bytes, r.last.Layers)
	return nil
}

// absorbResize resizes every buffer to the output before compositing.
// Static frames may be taller than the terminal: LayoutMaxHeight when set,
// otherwise the lowest edge of the tree.
func (r *Renderer) absorbResize(mode Mode, t *tree.Tree) {
	width, height := clampSize(r.out.Size())
	if mode == ModeStatic {
		limit := r.opts.LayoutMaxHeight
		if limit <= 0 {
			limit = contentBottom(t, width, height)
		}
		height = max(height, limit)
	}
	if width == r.width && height == r.height {
		return
	}

	r.log.Debug("resize %dx%d -> %dx%d", r.width, r.height, width, height)
	r.width, r.height = width, height
	r.comp.Resize(width, height)
	r.disp.Resize(width, height)
}

// MaxStaticHeight caps the height derived from a tree in static mode.
const MaxStaticHeight = 10000

// contentBottom returns the lowest bottom edge of the visible nodes of t,
// capped at MaxStaticHeight.
func contentBottom(t *tree.Tree, width, height int) int {
	if t == nil {
		return 0
	}
	c := tree.Constraints{MaxWidth: width, MaxHeight: height}
	bottom := 0
	t.Walk(func(n *tree.Node) bool {
		if n.Hidden {
			return false
		}
		if b := n.ResolveBounds(c); !b.IsEmpty() {
			bottom = max(bottom, b.Bottom())
		}
		return true
	})
	return min(bottom, MaxStaticHeight)
}

func (r *Renderer) flush(mode Mode) (display.FlushResult, error) {
	opts := display.FlushOptions{ClearScreen: r.opts.ClearOnFull}
	switch mode {
	case ModeStatic:
		return r.disp.FlushStatic(r.out)
	case ModeFull:
		return r.disp.FlushFull(r.out, opts)
	default:
		return r.disp.Flush(r.out, opts)
	}
}

// screen returns the frame rectangle.
func (r *Renderer) screen() core.Rect {
	return core.NewRect(0, 0, r.width, r.height)
}
