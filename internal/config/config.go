// Package config provides termpaint's layered configuration: built-in
// defaults, then an optional TOML file, then TERMPAINT_ environment
// variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/dshills/termpaint/internal/config/loader"
)

// Sentinel errors for configuration problems.
var (
	// ErrInvalidValue indicates a setting outside its allowed set or range.
	ErrInvalidValue = errors.New("invalid config value")
	// ErrTypeMismatch indicates a setting of the wrong type.
	ErrTypeMismatch = errors.New("config type mismatch")
)

// Config is the fully resolved configuration.
type Config struct {
	Renderer RendererConfig
	Logging  LoggingConfig
	Scene    SceneConfig
}

// RendererConfig configures the render orchestrator.
type RendererConfig struct {
	// Mode is one of diff, full or static.
	Mode string
	// ColorLevel is one of auto, 16, 256 or truecolor.
	ColorLevel string
	// FullRepaintThreshold is the changed-cell fraction above which a diff
	// flush becomes a full repaint.
	FullRepaintThreshold float64
	// LayoutMaxHeight is the grid height used in static mode. Zero grows
	// the grid to the lowest node of the scene.
	LayoutMaxHeight int
	// ClearOnFull clears the screen before a full repaint instead of homing.
	ClearOnFull bool
	// AltScreen switches interactive terminals to the alternate screen.
	AltScreen bool
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	// Level is debug, info, warn, error or off.
	Level string
	// File redirects the log from stderr when set.
	File string
}

// SceneConfig configures the scene source.
type SceneConfig struct {
	Path string
	// Watch re-renders when the scene file changes.
	Watch      bool
	DebounceMs int
	// RegionsFile receives the published hit regions as JSON after each frame.
	RegionsFile string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Renderer: RendererConfig{
			Mode:                 "diff",
			ColorLevel:           "auto",
			FullRepaintThreshold: 0.5,
			LayoutMaxHeight:      0,
			ClearOnFull:          true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Scene: SceneConfig{
			DebounceMs: 100,
		},
	}
}

// ToMap converts the configuration into the nested map form the loaders
// produce.
func (c Config) ToMap() map[string]any {
	return map[string]any{
		"renderer": map[string]any{
			"mode":                 c.Renderer.Mode,
			"colorLevel":           c.Renderer.ColorLevel,
			"fullRepaintThreshold": c.Renderer.FullRepaintThreshold,
			"layoutMaxHeight":      int64(c.Renderer.LayoutMaxHeight),
			"clearOnFull":          c.Renderer.ClearOnFull,
			"altScreen":            c.Renderer.AltScreen,
		},
		"logging": map[string]any{
			"level": c.Logging.Level,
			"file":  c.Logging.File,
		},
		"scene": map[string]any{
			"path":        c.Scene.Path,
			"watch":       c.Scene.Watch,
			"debounceMs":  int64(c.Scene.DebounceMs),
			"regionsFile": c.Scene.RegionsFile,
		},
	}
}

// Load reads the configuration file at path (which may be empty or
// missing) and the process environment over the defaults.
func Load(path string) (Config, error) {
	return LoadWith(loader.Sources(path)...)
}

// LoadWith merges the given sources, in order, over the defaults.
func LoadWith(sources ...loader.Loader) (Config, error) {
	merged := Default().ToMap()
	for _, src := range sources {
		data, err := src.Load()
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		merged = loader.DeepMerge(merged, data)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromMap decodes a nested map over the defaults. Unknown keys are ignored.
func FromMap(m map[string]any) (Config, error) {
	cfg := Default()
	d := decoder{m: m}

	d.getString("renderer.mode", &cfg.Renderer.Mode)
	d.getString("renderer.colorLevel", &cfg.Renderer.ColorLevel)
	d.getFloat("renderer.fullRepaintThreshold", &cfg.Renderer.FullRepaintThreshold)
	d.getInt("renderer.layoutMaxHeight", &cfg.Renderer.LayoutMaxHeight)
	d.getBool("renderer.clearOnFull", &cfg.Renderer.ClearOnFull)
	d.getBool("renderer.altScreen", &cfg.Renderer.AltScreen)

	d.getString("logging.level", &cfg.Logging.Level)
	d.getString("logging.file", &cfg.Logging.File)

	d.getString("scene.path", &cfg.Scene.Path)
	d.getBool("scene.watch", &cfg.Scene.Watch)
	d.getInt("scene.debounceMs", &cfg.Scene.DebounceMs)
	d.getString("scene.regionsFile", &cfg.Scene.RegionsFile)

	if len(d.errs) > 0 {
		return Config{}, errors.Join(d.errs...)
	}
	return cfg, nil
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	var errs []error
	invalid := func(path string, v any) {
		errs = append(errs, fmt.Errorf("%w: %s = %v", ErrInvalidValue, path, v))
	}

	switch c.Renderer.Mode {
	case "diff", "full", "static":
	default:
		invalid("renderer.mode", c.Renderer.Mode)
	}
	switch c.Renderer.ColorLevel {
	case "auto", "16", "256", "truecolor":
	default:
		invalid("renderer.colorLevel", c.Renderer.ColorLevel)
	}
	if t := c.Renderer.FullRepaintThreshold; math.IsNaN(t) || t < 0 || t > 1 {
		invalid("renderer.fullRepaintThreshold", t)
	}
	if c.Renderer.LayoutMaxHeight < 0 {
		invalid("renderer.layoutMaxHeight", c.Renderer.LayoutMaxHeight)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error", "off":
	default:
		invalid("logging.level", c.Logging.Level)
	}
	if c.Scene.DebounceMs < 0 {
		invalid("scene.debounceMs", c.Scene.DebounceMs)
	}

	return errors.Join(errs...)
}

// decoder pulls typed values out of a nested map, collecting type errors.
type decoder struct {
	m    map[string]any
	errs []error
}

func (d *decoder) mismatch(path, want string, v any) {
	d.errs = append(d.errs, fmt.Errorf("%w: %s: expected %s, got %T", ErrTypeMismatch, path, want, v))
}

func (d *decoder) getString(path string, dst *string) {
	v, ok := loader.GetByPath(d.m, path)
	if !ok {
		return
	}
	switch val := v.(type) {
	case string:
		*dst = val
	case int64:
		// TERMPAINT_COLOR=256 arrives as an integer.
		*dst = strconv.FormatInt(val, 10)
	default:
		d.mismatch(path, "string", v)
	}
}

func (d *decoder) getInt(path string, dst *int) {
	v, ok := loader.GetByPath(d.m, path)
	if !ok {
		return
	}
	switch val := v.(type) {
	case int64:
		*dst = int(val)
	case int:
		*dst = val
	case float64:
		if val != math.Trunc(val) {
			d.mismatch(path, "integer", v)
			return
		}
		*dst = int(val)
	default:
		d.mismatch(path, "integer", v)
	}
}

func (d *decoder) getFloat(path string, dst *float64) {
	v, ok := loader.GetByPath(d.m, path)
	if !ok {
		return
	}
	switch val := v.(type) {
	case float64:
		*dst = val
	case int64:
		*dst = float64(val)
	case int:
		*dst = float64(val)
	default:
		d.mismatch(path, "number", v)
	}
}

func (d *decoder) getBool(path string, dst *bool) {
	v, ok := loader.GetByPath(d.m, path)
	if !ok {
		return
	}
	switch val := v.(type) {
	case bool:
		*dst = val
	case int64:
		*dst = val != 0
	default:
		d.mismatch(path, "boolean", v)
	}
}
