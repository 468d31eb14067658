package config

import (
	"fmt"
	"time"
)

// Mode selects the user interface.
type Mode string

const (
	ModeTUI     Mode = "tui"
	ModeConsole Mode = "console"
)

// Config holds runtime settings for the noticeboard client.
//
// Fields:
//   - ServerURL: base URL of the notice board backend.
//   - RequestTimeout: upper bound for a single HTTP request.
//   - SessionRefreshInterval: how often the session is re-read in the
//     background; zero disables the watcher.
//   - DatabasePath: SQLite file keeping the session cookies between runs.
//   - LogFile: where JSON logs go (the terminal belongs to the UI).
//   - Mode: "tui" or "console".
type Config struct {
	ServerURL              string
	RequestTimeout         time.Duration
	SessionRefreshInterval time.Duration
	DatabasePath           string
	LogFile                string
	Mode                   Mode
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3000"
	c.RequestTimeout = 10 * time.Second
	c.SessionRefreshInterval = 60 * time.Second
	c.DatabasePath = "noticeboard.db"
	c.LogFile = "noticeboard.log"
	c.Mode = ModeTUI
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModeTUI, ModeConsole:
	default:
		return fmt.Errorf("unknown mode %q, want %q or %q", c.Mode, ModeTUI, ModeConsole)
	}
	if c.ServerURL == "" {
		return fmt.Errorf("server url must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if given) and command-line flags. Later sources take
// precedence over earlier ones. Invalid input panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	if err := cfg.validate(); err != nil {
		panic(err)
	}
	return cfg
}
