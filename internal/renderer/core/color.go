package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ColorKind identifies which variant a Color holds.
type ColorKind uint8

const (
	// KindDefault is "no color": the terminal's own default is used.
	KindDefault ColorKind = iota
	// KindInherit takes the parent's resolved color at paint time.
	KindInherit
	// KindNamed is one of the sixteen fixed ANSI colors.
	KindNamed
	// KindHex is a hex triplet. Emitted through the 256-color cube.
	KindHex
	// KindRGB is an explicit RGB triplet. Emitted as 24-bit truecolor.
	KindRGB
)

// String returns the name of the kind.
func (k ColorKind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindInherit:
		return "inherit"
	case KindNamed:
		return "named"
	case KindHex:
		return "hex"
	case KindRGB:
		return "rgb"
	default:
		return "unknown"
	}
}

// ANSIName is one of the sixteen standard terminal colors.
// Values 0-7 are the normal colors, 8-15 their bright variants.
type ANSIName uint8

// The sixteen ANSI colors, in SGR order.
const (
	Black ANSIName = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

var ansiNames = [16]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"blackBright", "redBright", "greenBright", "yellowBright",
	"blueBright", "magentaBright", "cyanBright", "whiteBright",
}

// ansiPalette holds the xterm default RGB values of the sixteen colors.
// Used when a named color has to be compared against an RGB value.
var ansiPalette = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// String returns the canonical name of the color.
func (n ANSIName) String() string {
	if int(n) < len(ansiNames) {
		return ansiNames[n]
	}
	return "unknown"
}

// Bright reports whether n is one of the bright variants (90-97 / 100-107).
func (n ANSIName) Bright() bool {
	return n >= BrightBlack && n <= BrightWhite
}

// Palette returns the xterm default RGB value for n.
func (n ANSIName) Palette() (r, g, b uint8) {
	p := ansiPalette[n&0x0F]
	return p[0], p[1], p[2]
}

// Color is a tagged color value. The zero value is the default color.
type Color struct {
	Kind    ColorKind
	Name    ANSIName
	R, G, B uint8
}

// ColorDefault is "no color".
var ColorDefault = Color{Kind: KindDefault}

// ColorInherit defers to the parent's color.
var ColorInherit = Color{Kind: KindInherit}

// Named returns a fixed ANSI color.
func Named(n ANSIName) Color {
	return Color{Kind: KindNamed, Name: n & 0x0F}
}

// Hex returns a hex-triplet color.
func Hex(r, g, b uint8) Color {
	return Color{Kind: KindHex, R: r, G: g, B: b}
}

// RGB returns a truecolor value.
func RGB(r, g, b uint8) Color {
	return Color{Kind: KindRGB, R: r, G: g, B: b}
}

// IsSet reports whether the color carries an actual value.
// Default and Inherit are both unset.
func (c Color) IsSet() bool {
	return c.Kind != KindDefault && c.Kind != KindInherit
}

// IsDefault returns true if this is the default color.
func (c Color) IsDefault() bool {
	return c.Kind == KindDefault
}

// IsInherit returns true if this color defers to the parent.
func (c Color) IsInherit() bool {
	return c.Kind == KindInherit
}

// Or returns c when it is set and fallback otherwise.
func (c Color) Or(fallback Color) Color {
	if c.IsSet() {
		return c
	}
	return fallback
}

// Equals returns true if two colors are identical.
func (c Color) Equals(other Color) bool {
	if c.Kind != other.Kind {
		return false
	}
	switch c.Kind {
	case KindNamed:
		return c.Name == other.Name
	case KindHex, KindRGB:
		return c.R == other.R && c.G == other.G && c.B == other.B
	default:
		return true
	}
}

// Triplet returns the RGB value of any set color.
// ok is false for Default and Inherit.
func (c Color) Triplet() (r, g, b uint8, ok bool) {
	switch c.Kind {
	case KindNamed:
		r, g, b = c.Name.Palette()
		return r, g, b, true
	case KindHex, KindRGB:
		return c.R, c.G, c.B, true
	default:
		return 0, 0, 0, false
	}
}

// String returns the color in the notation ParseColor accepts.
func (c Color) String() string {
	switch c.Kind {
	case KindInherit:
		return "inherit"
	case KindNamed:
		return c.Name.String()
	case KindHex:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	case KindRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	default:
		return "default"
	}
}

// ParseColor converts a color string into a Color.
//
// Accepted forms: "" / "none" / "default" (Default), "inherit", the sixteen
// ANSI names ("red", "redBright", "bright-red", "gray"), "#rgb" / "#rrggbb",
// "rgb(r,g,b)", and any other X11 color name tcell knows. Anything else
// resolves to Default: a malformed color renders unstyled, it never fails.
func ParseColor(s string) Color {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	switch lower {
	case "", "none", "default", "null":
		return ColorDefault
	case "inherit":
		return ColorInherit
	}

	if n, ok := lookupANSIName(lower); ok {
		return Named(n)
	}

	if strings.HasPrefix(lower, "#") {
		c, err := colorful.Hex(lower)
		if err != nil {
			return ColorDefault
		}
		r, g, b := c.RGB255()
		return Hex(r, g, b)
	}

	if strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")") {
		return parseRGBFunc(lower[4 : len(lower)-1])
	}

	if tc, ok := tcell.ColorNames[lower]; ok {
		r, g, b := tc.RGB()
		if r < 0 {
			return ColorDefault
		}
		return RGB(uint8(r), uint8(g), uint8(b))
	}

	return ColorDefault
}

// lookupANSIName matches the sixteen names with the common spellings of the
// bright variants: "redBright", "bright-red", "bright_red", "brightred".
func lookupANSIName(lower string) (ANSIName, bool) {
	name := strings.NewReplacer("-", "", "_", "", " ", "").Replace(lower)
	switch name {
	case "gray", "grey":
		return BrightBlack, true
	}

	bright := false
	if strings.HasPrefix(name, "bright") {
		bright = true
		name = strings.TrimPrefix(name, "bright")
	} else if strings.HasSuffix(name, "bright") {
		bright = true
		name = strings.TrimSuffix(name, "bright")
	}

	for i := 0; i < 8; i++ {
		if ansiNames[i] == name {
			n := ANSIName(i)
			if bright {
				n += BrightBlack
			}
			return n, true
		}
	}
	return 0, false
}

func parseRGBFunc(body string) Color {
	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return ColorDefault
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return ColorDefault
		}
		ch[i] = uint8(v)
	}
	return RGB(ch[0], ch[1], ch[2])
}
