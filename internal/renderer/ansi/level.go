package ansi

import (
	"fmt"
	"strings"
)

// Level is a terminal color capability.
type Level uint8

const (
	// Level16 supports the 16 named ANSI colors only.
	Level16 Level = iota
	// Level256 supports the xterm 256-color palette.
	Level256
	// LevelTrueColor supports 24-bit RGB.
	LevelTrueColor
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case Level16:
		return "16"
	case Level256:
		return "256"
	case LevelTrueColor:
		return "truecolor"
	default:
		return "unknown"
	}
}

// ParseLevel parses a level name: "16", "256" or "truecolor" ("24bit" and
// "true" are accepted too).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "16", "ansi", "basic":
		return Level16, nil
	case "256", "256color":
		return Level256, nil
	case "truecolor", "24bit", "true", "rgb":
		return LevelTrueColor, nil
	default:
		return Level16, fmt.Errorf("unknown color level %q", s)
	}
}

// terminal-specific variables that imply truecolor support
var trueColorEnv = []string{
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"ITERM_SESSION_ID",
	"ALACRITTY_WINDOW_ID",
	"ALACRITTY_LOG",
	"WEZTERM_PANE",
}

// DetectLevel determines color capability from the environment. getenv is
// usually os.Getenv.
func DetectLevel(getenv func(string) string) Level {
	// 1. COLORTERM is set by most modern terminals.
	colorterm := strings.ToLower(getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		return LevelTrueColor
	}

	// 2. Terminal-specific variables.
	for _, key := range trueColorEnv {
		if getenv(key) != "" {
			return LevelTrueColor
		}
	}

	// 3. TERM hints.
	term := strings.ToLower(getenv("TERM"))
	switch {
	case strings.Contains(term, "truecolor"),
		strings.Contains(term, "24bit"),
		strings.Contains(term, "direct"):
		return LevelTrueColor
	case strings.Contains(term, "256"):
		return Level256
	case term == "", term == "dumb", term == "linux", strings.HasPrefix(term, "vt"):
		return Level16
	}

	return Level256
}
