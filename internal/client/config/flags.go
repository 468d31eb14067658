package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/noticeboard/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   backend base URL
//	-t int      request timeout (seconds)
//	-i int      session refresh interval (seconds), 0 disables it
//	-d string   session database path
//	-l string   log file path
//	-m string   ui mode: tui or console
//
// Durations are only overwritten when their flag is given, so sub-second
// values from a config file survive.
//
// os.Args is filtered with flagx.FilterArgs first so -c/-config and flags
// owned by other components do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-i", "-d", "-l", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	refresh := fs.Int("i", int(cfg.SessionRefreshInterval.Seconds()), "session refresh interval (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "session database path")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "log file path")
	mode := fs.String("m", string(cfg.Mode), "ui mode: tui or console")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.SessionRefreshInterval = time.Duration(*refresh) * time.Second
		}
	})
	cfg.Mode = Mode(*mode)
}
