package ansi

import (
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/termpaint/internal/renderer/core"
)

// attrCodes maps each flag to its SGR code, in emission order.
var attrCodes = [...]struct {
	attr core.Attribute
	code string
}{
	{core.AttrBold, codeBold},
	{core.AttrDim, codeDim},
	{core.AttrItalic, codeItalic},
	{core.AttrUnderline, codeUnderline},
	{core.AttrInverse, codeInverse},
	{core.AttrStrikethrough, codeStrikethrough},
}

// Generator converts cell styles into SGR codes for one color level.
// It caches 16-color approximations and is not safe for concurrent use.
type Generator struct {
	level   Level
	nearest map[[3]uint8]core.ANSIName
}

// NewGenerator creates a generator emitting colors at the given level.
func NewGenerator(level Level) *Generator {
	return &Generator{
		level:   level,
		nearest: make(map[[3]uint8]core.ANSIName),
	}
}

// Level returns the color level.
func (g *Generator) Level() Level {
	return g.level
}

// FgCodes returns the foreground codes for c. Unset colors yield none.
func (g *Generator) FgCodes(c core.Color) []string {
	return g.colorCodes(c, false)
}

// BgCodes returns the background codes for c. Unset colors yield none.
func (g *Generator) BgCodes(c core.Color) []string {
	return g.colorCodes(c, true)
}

func (g *Generator) colorCodes(c core.Color, bg bool) []string {
	switch c.Kind {
	case core.KindNamed:
		return []string{namedCode(c.Name, bg)}

	case core.KindHex:
		if g.level == Level16 {
			return []string{namedCode(g.nearestNamed(c.R, c.G, c.B), bg)}
		}
		return paletteCodes(CubeIndex(c.R, c.G, c.B), bg)

	case core.KindRGB:
		switch g.level {
		case Level16:
			return []string{namedCode(g.nearestNamed(c.R, c.G, c.B), bg)}
		case Level256:
			return paletteCodes(CubeIndex(c.R, c.G, c.B), bg)
		}
		prefix := "38"
		if bg {
			prefix = "48"
		}
		return []string{
			prefix, "2",
			strconv.Itoa(int(c.R)),
			strconv.Itoa(int(c.G)),
			strconv.Itoa(int(c.B)),
		}

	default:
		return nil
	}
}

func namedCode(n core.ANSIName, bg bool) string {
	base := 30
	if n.Bright() {
		base = 90
		n -= core.BrightBlack
	}
	if bg {
		base += 10
	}
	return strconv.Itoa(base + int(n))
}

func paletteCodes(idx int, bg bool) []string {
	prefix := "38"
	if bg {
		prefix = "48"
	}
	return []string{prefix, "5", strconv.Itoa(idx)}
}

// CubeIndex maps a triplet onto the 6×6×6 cube of the 256-color palette.
func CubeIndex(r, g, b uint8) int {
	return 16 + 36*cubeLevel(r) + 6*cubeLevel(g) + cubeLevel(b)
}

func cubeLevel(c uint8) int {
	return int(math.Round(float64(c) / 255 * 5))
}

// nearestNamed picks the ANSI color closest to the triplet in CIE-Lab space.
func (g *Generator) nearestNamed(r, gr, b uint8) core.ANSIName {
	key := [3]uint8{r, gr, b}
	if n, ok := g.nearest[key]; ok {
		return n
	}

	target := colorful.Color{R: float64(r) / 255, G: float64(gr) / 255, B: float64(b) / 255}
	best := core.Black
	bestDist := math.MaxFloat64
	for n := core.Black; n <= core.BrightWhite; n++ {
		pr, pg, pb := n.Palette()
		candidate := colorful.Color{R: float64(pr) / 255, G: float64(pg) / 255, B: float64(pb) / 255}
		if d := target.DistanceLab(candidate); d < bestDist {
			bestDist = d
			best = n
		}
	}
	g.nearest[key] = best
	return best
}

// attrList returns the codes for every flag in a, in emission order.
func attrList(a core.Attribute) []string {
	var codes []string
	for _, ac := range attrCodes {
		if a.Has(ac.attr) {
			codes = append(codes, ac.code)
		}
	}
	return codes
}

// Codes returns the complete code list for c: flags, then foreground, then
// background.
func (g *Generator) Codes(c core.Cell) []string {
	codes := attrList(c.Attrs)
	codes = append(codes, g.FgCodes(c.Fg)...)
	codes = append(codes, g.BgCodes(c.Bg)...)
	return codes
}

// NeedsReset reports whether moving from prev to next style requires a full
// reset: a flag turns off or a color goes from set to unset.
func NeedsReset(prev, next core.Cell) bool {
	if prev.Attrs&^next.Attrs != 0 {
		return true
	}
	if prev.Fg.IsSet() && !next.Fg.IsSet() {
		return true
	}
	return prev.Bg.IsSet() && !next.Bg.IsSet()
}

// Transition returns the smallest code list that changes the terminal
// style from prev to next. Identical styles yield no codes.
func (g *Generator) Transition(prev, next core.Cell) []string {
	if NeedsReset(prev, next) {
		return append([]string{codeReset}, g.Codes(next)...)
	}

	codes := attrList(next.Attrs &^ prev.Attrs)
	if !next.Fg.Equals(prev.Fg) {
		if fg := g.FgCodes(next.Fg); !equalCodes(fg, g.FgCodes(prev.Fg)) {
			codes = append(codes, fg...)
		}
	}
	if !next.Bg.Equals(prev.Bg) {
		if bg := g.BgCodes(next.Bg); !equalCodes(bg, g.BgCodes(prev.Bg)) {
			codes = append(codes, bg...)
		}
	}
	return codes
}

func equalCodes(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
