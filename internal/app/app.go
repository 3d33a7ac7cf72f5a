package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/stockroom/internal/backend"
	"github.com/atomicstack/stockroom/internal/inventory"
	"github.com/atomicstack/stockroom/internal/logging/events"
	"github.com/atomicstack/stockroom/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Page names accepted for the start page.
const (
	PageDashboard = "dashboard"
	PageTasks     = "tasks"
)

// Config describes user-provided application options.
type Config struct {
	DBPath     string
	Seed       bool
	PageSize   int
	MaxOptions int
	Refresh    time.Duration
	StartPage  string
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) (err error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer func() { events.App.Stop(err) }()

	store, err := inventory.Open(ctx, inventory.Options{Path: cfg.DBPath})
	if err != nil {
		return fmt.Errorf("open inventory: %w", err)
	}
	defer store.Close()

	if cfg.Seed {
		if _, err := store.Seed(ctx); err != nil {
			return fmt.Errorf("seed inventory: %w", err)
		}
	}

	watcher := backend.NewWatcher(store, cfg.Refresh)
	if watcher != nil {
		defer watcher.Stop()
	}
	model := ui.NewModel(ui.Options{
		Backend:    store,
		Watcher:    watcher,
		Context:    ctx,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		PageSize:   cfg.PageSize,
		MaxOptions: cfg.MaxOptions,
		StartPage:  ui.ParsePage(cfg.StartPage),
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
