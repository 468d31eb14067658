package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:3000", c.ServerURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 60*time.Second, c.SessionRefreshInterval)
	assert.Equal(t, "noticeboard.db", c.DatabasePath)
	assert.Equal(t, "noticeboard.log", c.LogFile)
	assert.Equal(t, ModeTUI, c.Mode)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"noticeboard"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:3000", cfg.ServerURL)
	assert.Equal(t, ModeTUI, cfg.Mode)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempFile(t, "cfg.json", `{"server_url":"http://file:1","mode":"console","request_timeout":"3s"}`)
	os.Args = []string{"noticeboard", "-c", path, "-a", "http://flag:2"}

	cfg := LoadConfig()

	assert.Equal(t, "http://flag:2", cfg.ServerURL)
	assert.Equal(t, ModeConsole, cfg.Mode)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_InvalidModePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"noticeboard", "-m", "gui"}

	require.Panics(t, func() { LoadConfig() })
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"console", func(c *Config) { c.Mode = ModeConsole }, false},
		{"refresh disabled", func(c *Config) { c.SessionRefreshInterval = 0 }, false},
		{"bad mode", func(c *Config) { c.Mode = "x" }, true},
		{"no url", func(c *Config) { c.ServerURL = "" }, true},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tc.mutate(&c)
			err := c.validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
