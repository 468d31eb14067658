package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/noticeboard/internal/flagx"
	"github.com/dmitrijs2005/noticeboard/internal/timex"
)

// FileConfig is a DTO used only for decoding config files. Durations use
// timex.Duration so files may spell them as "10s" or integer nanoseconds.
type FileConfig struct {
	ServerURL              string         `json:"server_url" yaml:"server_url"`
	RequestTimeout         timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	SessionRefreshInterval timex.Duration `json:"session_refresh_interval" yaml:"session_refresh_interval"`
	DatabasePath           string         `json:"database_path" yaml:"database_path"`
	LogFile                string         `json:"log_file" yaml:"log_file"`
	Mode                   string         `json:"mode" yaml:"mode"`
}

// parseFile overlays cfg with values from the file named by -c/-config.
// Files ending in .yaml or .yml are read as YAML, anything else as JSON.
// Keys absent from the file keep their current value. Read and decode
// errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.SessionRefreshInterval.Duration != 0 {
		cfg.SessionRefreshInterval = fc.SessionRefreshInterval.Duration
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	if fc.Mode != "" {
		cfg.Mode = Mode(fc.Mode)
	}
}
