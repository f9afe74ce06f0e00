// Package app wires configuration, logging, the output backend, scene
// loading and file watching around the renderer, and runs the render loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/termpaint/internal/config"
	"github.com/dshills/termpaint/internal/renderer"
	"github.com/dshills/termpaint/internal/renderer/ansi"
	"github.com/dshills/termpaint/internal/renderer/backend"
	"github.com/dshills/termpaint/internal/scene"
	"github.com/dshills/termpaint/internal/watcher"
)

// Options are command-line overrides applied over the loaded
// configuration. Empty strings and false leave the configured value.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	ScenePath   string
	Mode        string
	ColorLevel  string
	Watch       bool
	AltScreen   bool
	RegionsFile string
	LogLevel    string

	// Once renders a single frame and returns.
	Once bool

	// Getenv reads the environment for color detection. Defaults to
	// os.Getenv.
	Getenv func(string) string
}

// Application owns one renderer and the scene it draws.
type Application struct {
	mu sync.Mutex

	opts    Options
	cfg     config.Config
	log     *Logger
	logFile io.Closer

	backend  backend.Backend
	renderer *renderer.Renderer
	mode     renderer.Mode

	scene   *scene.Scene
	watcher watcher.Watcher

	running atomic.Bool
}

// New loads configuration and builds the renderer over be.
func New(opts Options, be backend.Backend) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	applyOverrides(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	app := &Application{
		opts:    opts,
		cfg:     cfg,
		backend: be,
	}

	if err := app.setupLogger(); err != nil {
		return nil, &InitError{Component: "logger", Err: err}
	}

	app.mode, err = renderer.ParseMode(cfg.Renderer.Mode)
	if err != nil {
		return nil, &InitError{Component: "renderer", Err: err}
	}
	if !be.Interactive() && app.mode != renderer.ModeStatic {
		app.log.Info("output is not a terminal, using static mode")
		app.mode = renderer.ModeStatic
	}

	if as, ok := be.(altScreener); ok {
		as.SetAltScreen(cfg.Renderer.AltScreen)
	}

	level, err := colorLevel(cfg.Renderer.ColorLevel, opts.Getenv)
	if err != nil {
		return nil, &InitError{Component: "renderer", Err: err}
	}

	app.renderer = renderer.New(be, renderer.Options{
		Logger:               app.log.WithComponent("renderer"),
		ColorLevel:           level,
		FullRepaintThreshold: cfg.Renderer.FullRepaintThreshold,
		LayoutMaxHeight:      cfg.Renderer.LayoutMaxHeight,
		ClearOnFull:          cfg.Renderer.ClearOnFull,
	})
	app.log.Debug("renderer ready: mode=%s color=%s", app.mode, level)

	return app, nil
}

// altScreener is a backend that can switch to the alternate screen.
type altScreener interface {
	SetAltScreen(on bool)
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.ScenePath != "" {
		cfg.Scene.Path = opts.ScenePath
	}
	if opts.Mode != "" {
		cfg.Renderer.Mode = opts.Mode
	}
	if opts.ColorLevel != "" {
		cfg.Renderer.ColorLevel = opts.ColorLevel
	}
	if opts.Watch {
		cfg.Scene.Watch = true
	}
	if opts.AltScreen {
		cfg.Renderer.AltScreen = true
	}
	if opts.RegionsFile != "" {
		cfg.Scene.RegionsFile = opts.RegionsFile
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
}

func colorLevel(name string, getenv func(string) string) (ansi.Level, error) {
	if name == "" || name == "auto" {
		return ansi.DetectLevel(getenv), nil
	}
	return ansi.ParseLevel(name)
}

func (app *Application) setupLogger() error {
	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(app.cfg.Logging.Level)
	if app.cfg.Logging.File != "" {
		f, err := os.OpenFile(app.cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		cfg.Output = f
		app.logFile = f
	}
	app.log = NewLogger(cfg)
	return nil
}

// Config returns the resolved configuration.
func (app *Application) Config() config.Config {
	return app.cfg
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.log
}

// Renderer returns the renderer.
func (app *Application) Renderer() *renderer.Renderer {
	return app.renderer
}

// Mode returns the render mode in effect.
func (app *Application) Mode() renderer.Mode {
	return app.mode
}

// Scene returns the current scene, or nil before the first load.
func (app *Application) Scene() *scene.Scene {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.scene
}

// LoadScene (re)loads the configured scene file. On failure the previous
// scene stays current.
func (app *Application) LoadScene() error {
	path := app.cfg.Scene.Path
	if path == "" {
		return ErrNoScene
	}

	sc, err := scene.Load(path, app.log.WithComponent("style"))
	if err != nil {
		return NewOperationError("load", path, err)
	}

	app.mu.Lock()
	prev := app.scene
	app.scene = sc
	app.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
	app.log.Debug("scene %s loaded: %d nodes", path, sc.Tree.Len())
	return nil
}

// Render draws the current scene once and exports its hit regions when
// configured.
func (app *Application) Render(ctx context.Context) error {
	sc := app.Scene()
	if sc == nil {
		return ErrNoScene
	}

	if err := app.renderer.RenderFrame(ctx, sc.Tree, app.mode); err != nil {
		return err
	}

	if path := app.cfg.Scene.RegionsFile; path != "" {
		w, h := app.renderer.Size()
		if err := WriteRegions(path, app.renderer.FrameCount(), w, h, app.renderer.Regions()); err != nil {
			app.log.Warn("%v", err)
		}
	}
	return nil
}

// Run initializes the backend, renders the scene and, unless the mode is
// static or Once is set, re-renders on resize and scene changes until ctx
// is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	if err := app.LoadScene(); err != nil {
		return err
	}
	if err := app.Render(ctx); err != nil {
		return err
	}

	if app.opts.Once || app.mode == renderer.ModeStatic {
		return nil
	}

	var events <-chan watcher.Event
	var watchErrs <-chan error
	if app.cfg.Scene.Watch {
		if err := app.startWatcher(); err != nil {
			return &InitError{Component: "watcher", Err: err}
		}
		events = app.watcher.Events()
		watchErrs = app.watcher.Errors()
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-app.backend.Resizes():
			app.log.Debug("resize to %dx%d", ev.Width, ev.Height)
			app.renderLogged(ctx)

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			app.log.Info("%s changed (%s), reloading", ev.Path, ev.Op)
			if err := app.reloadWatched(); err != nil {
				app.log.Warn("reload failed, keeping previous scene: %v", err)
				continue
			}
			app.renderLogged(ctx)

		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			app.log.Warn("watcher: %v", err)
		}
	}
}

func (app *Application) renderLogged(ctx context.Context) {
	if err := app.Render(ctx); err != nil && !errors.Is(err, context.Canceled) {
		app.log.Error("%v", err)
	}
}

func (app *Application) startWatcher() error {
	inner, err := watcher.NewFSNotifyWatcher()
	if err != nil {
		return err
	}
	debounce := time.Duration(app.cfg.Scene.DebounceMs) * time.Millisecond
	app.watcher = watcher.NewDebouncedWatcher(inner, debounce)
	return app.watchSceneFiles()
}

// watchSceneFiles adds the scene and its style script to the watcher.
func (app *Application) watchSceneFiles() error {
	sc := app.Scene()
	paths := []string{app.cfg.Scene.Path}
	if sc != nil && sc.ScriptPath != "" {
		paths = append(paths, sc.ScriptPath)
	}
	for _, p := range paths {
		if err := app.watcher.Watch(p); err != nil && !errors.Is(err, watcher.ErrAlreadyWatching) {
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}
	return nil
}

// reloadWatched reloads the scene and picks up a newly referenced style
// script.
func (app *Application) reloadWatched() error {
	if err := app.LoadScene(); err != nil {
		return err
	}
	if err := app.watchSceneFiles(); err != nil {
		app.log.Warn("%v", err)
	}
	return nil
}

// Shutdown releases the watcher, the scene and the log file.
func (app *Application) Shutdown() {
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.log.Warn("close watcher: %v", err)
		}
		app.watcher = nil
	}

	app.mu.Lock()
	sc := app.scene
	app.scene = nil
	app.mu.Unlock()
	if sc != nil {
		sc.Close()
	}

	if app.logFile != nil {
		app.logFile.Close()
		app.logFile = nil
	}
}
