package config

import (
	"testing"
	"time"

	"github.com/atomicstack/stockroom/internal/app"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.DBPath != "stockroom.db" || cfg.App.PageSize != 10 || cfg.App.MaxOptions != 8 {
		t.Fatalf("unexpected defaults %+v", cfg.App)
	}
	if cfg.App.Refresh != 30*time.Second || cfg.App.StartPage != app.PageDashboard {
		t.Fatalf("unexpected defaults %+v", cfg.App)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("validate defaults: %v", err)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	env := []string{
		"STOCKROOM_DB=/tmp/env.db",
		"STOCKROOM_PAGE_SIZE=25",
		"STOCKROOM_REFRESH=5s",
		"STOCKROOM_TRACE=true",
		"malformed",
	}
	cfg, err := LoadArgs([]string{"--db", "/tmp/flag.db", "--seed"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.DBPath != "/tmp/flag.db" {
		t.Fatalf("expected flag to win, got %q", cfg.App.DBPath)
	}
	if cfg.App.PageSize != 25 || cfg.App.Refresh != 5*time.Second || !cfg.Logging.Trace || !cfg.App.Seed {
		t.Fatalf("expected environment values applied, got %+v", cfg)
	}
	if cfg.Flags["pageSize"] != "25" || cfg.Flags["refresh"] != "5s" {
		t.Fatalf("unexpected flag snapshot %v", cfg.Flags)
	}
}

func TestInvalidEnvironmentFallsBack(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"STOCKROOM_REFRESH=soon", "STOCKROOM_MAX_OPTIONS=lots"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Refresh != 30*time.Second || cfg.App.MaxOptions != 8 {
		t.Fatalf("expected fallbacks, got %+v", cfg.App)
	}
}

func TestLoadArgsRejectsInvalidValues(t *testing.T) {
	cases := [][]string{
		{"--width", "-1"},
		{"--height", "-2"},
		{"--page-size", "0"},
		{"--max-options", "0"},
		{"--refresh", "-1s"},
		{"--bogus"},
	}
	for _, args := range cases {
		if _, err := LoadArgs(args, nil); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestValidateRejectsUnknownStartPage(t *testing.T) {
	cfg, err := LoadArgs([]string{"--start", "reports"}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatal("expected unknown start page rejected")
	}
	cfg.App.StartPage = app.PageTasks
	cfg.App.DBPath = " "
	if err := Validate(cfg); err == nil {
		t.Fatal("expected blank db path rejected")
	}
}
