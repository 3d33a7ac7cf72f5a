package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/stockroom/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envDBPath     = "STOCKROOM_DB"
	envSeed       = "STOCKROOM_SEED"
	envPageSize   = "STOCKROOM_PAGE_SIZE"
	envMaxOptions = "STOCKROOM_MAX_OPTIONS"
	envRefresh    = "STOCKROOM_REFRESH"
	envStart      = "STOCKROOM_START"
	envWidth      = "STOCKROOM_WIDTH"
	envHeight     = "STOCKROOM_HEIGHT"
	envShowFooter = "STOCKROOM_FOOTER"
	envVerbose    = "STOCKROOM_VERBOSE"
	envTrace      = "STOCKROOM_TRACE"
	envLogFile    = "STOCKROOM_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("stockroom", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	dbPath := fs.String("db", envOrDefault(env, envDBPath, "stockroom.db"), "path to the SQLite database")
	seed := fs.Bool("seed", envOrBool(env, envSeed, false), "fill an empty database with demo data")
	pageSize := fs.Int("page-size", envOrInt(env, envPageSize, 10), "rows fetched per dashboard table page")
	maxOptions := fs.Int("max-options", envOrInt(env, envMaxOptions, 8), "dropdown rows shown by selection fields")
	refresh := fs.Duration("refresh", envOrDuration(env, envRefresh, 30*time.Second), "metrics refresh interval (0 disables)")
	start := fs.String("start", envOrDefault(env, envStart, app.PageDashboard), "page shown at startup (dashboard or tasks)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "keep success messages in the status line")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *pageSize <= 0 {
		return Config{}, fmt.Errorf("page-size must be > 0 (got %d)", *pageSize)
	}
	if *maxOptions <= 0 {
		return Config{}, fmt.Errorf("max-options must be > 0 (got %d)", *maxOptions)
	}
	if *refresh < 0 {
		return Config{}, fmt.Errorf("refresh must be >= 0 (got %s)", *refresh)
	}

	cfg := Config{
		App: app.Config{
			DBPath:     *dbPath,
			Seed:       *seed,
			PageSize:   *pageSize,
			MaxOptions: *maxOptions,
			Refresh:    *refresh,
			StartPage:  *start,
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
			Verbose:    *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"db":         *dbPath,
			"seed":       strconv.FormatBool(*seed),
			"pageSize":   strconv.Itoa(*pageSize),
			"maxOptions": strconv.Itoa(*maxOptions),
			"refresh":    refresh.String(),
			"start":      *start,
			"width":      strconv.Itoa(*width),
			"height":     strconv.Itoa(*height),
			"footer":     strconv.FormatBool(*footer),
			"trace":      strconv.FormatBool(*trace),
			"verbose":    strconv.FormatBool(*verbose),
			"logFile":    *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.DBPath) == "" {
		return fmt.Errorf("db path is required")
	}
	switch cfg.App.StartPage {
	case app.PageDashboard, app.PageTasks:
	default:
		return fmt.Errorf("start must be %q or %q (got %q)", app.PageDashboard, app.PageTasks, cfg.App.StartPage)
	}
	return nil
}
