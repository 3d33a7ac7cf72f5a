package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atomicstack/stockroom/internal/app"
	"github.com/atomicstack/stockroom/internal/config"
	"github.com/atomicstack/stockroom/internal/logging"
	"github.com/atomicstack/stockroom/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	screen := probeTerminal()
	events.App.Start(startupTracePayload(cfg, screen))
	if screen.Source == "" {
		fmt.Fprintln(os.Stderr, "Error: stockroom needs an interactive terminal")
		os.Exit(2)
	}

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload describes the flags, database and terminal a session
// starts with.
func startupTracePayload(cfg config.Config, screen terminal) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	return map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"config":   cfg,
		"database": describeDatabase(cfg.App.DBPath),
		"terminal": screen,
	}
}

type database struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Bytes  int64  `json:"bytes,omitempty"`
	Error  string `json:"error,omitempty"`
}

func describeDatabase(path string) database {
	db := database{Path: path}
	if abs, err := filepath.Abs(path); err == nil {
		db.Path = abs
	}
	info, err := os.Stat(db.Path)
	switch {
	case err == nil:
		db.Exists = true
		db.Bytes = info.Size()
	case !os.IsNotExist(err):
		db.Error = err.Error()
	}
	return db
}

// terminal is the first standard descriptor attached to a terminal. Source is
// empty when none is.
type terminal struct {
	Source string `json:"source,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

func probeTerminal() terminal {
	for _, probe := range []struct {
		name string
		file *os.File
	}{
		{"stdout", os.Stdout},
		{"stdin", os.Stdin},
		{"stderr", os.Stderr},
	} {
		fd := int(probe.file.Fd())
		if !term.IsTerminal(fd) {
			continue
		}
		screen := terminal{Source: probe.name}
		if width, height, err := term.GetSize(fd); err == nil {
			screen.Width = width
			screen.Height = height
		}
		return screen
	}
	return terminal{}
}
