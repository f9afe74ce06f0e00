// Package main is the entry point for termpaint, which renders a scene
// file to the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/termpaint/internal/app"
	"github.com/dshills/termpaint/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, ok := parseFlags()
	if !ok {
		return 2
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		return 1
	}

	application, err := app.New(opts, term)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (app.Options, bool) {
	var opts app.Options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.Mode, "mode", "", "Render mode (diff, full, static)")
	flag.StringVar(&opts.ColorLevel, "color", "", "Color level (auto, 16, 256, truecolor)")
	flag.BoolVar(&opts.Watch, "watch", false, "Re-render when the scene file changes")
	flag.BoolVar(&opts.Watch, "w", false, "Re-render when the scene file changes (shorthand)")
	flag.StringVar(&opts.RegionsFile, "regions", "", "Write hit regions as JSON to this file after each frame")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error, off)")
	flag.BoolVar(&opts.Once, "once", false, "Render a single frame and exit")
	flag.BoolVar(&opts.AltScreen, "alt-screen", false, "Use the alternate screen on terminals")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "termpaint - render scene files to the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: termpaint [options] [scene]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  termpaint ui.yaml                 Render and follow resizes\n")
		fmt.Fprintf(os.Stderr, "  termpaint -watch ui.yaml          Re-render on every save\n")
		fmt.Fprintf(os.Stderr, "  termpaint -mode static ui.json    Print once, scrollback friendly\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("termpaint %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error", "off":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, error, or off)\n", opts.LogLevel)
		return opts, false
	}

	switch flag.NArg() {
	case 0:
	case 1:
		opts.ScenePath = flag.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: expected at most one scene file, got %d\n", flag.NArg())
		return opts, false
	}

	return opts, true
}
