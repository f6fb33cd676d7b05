package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, FormatText, cfg.OutputFormat)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, "/contact", cfg.ContactURL)
	assert.Empty(t, cfg.LogDir, "file logging is off by default")
	assert.True(t, cfg.Leads.Enabled)
	assert.Equal(t, "leads.db", cfg.Leads.DBPath)
	assert.Empty(t, cfg.Leads.ExportPath)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg *Config)
		wantErr string
	}{
		{
			name:    "empty file keeps defaults",
			content: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			name: "full override",
			content: `
log_level: debug
output_format: html
color: never
contact_url: https://example.org/book
log_dir: logs
leads:
  enabled: true
  db_path: /var/lib/screening/leads.db
  export_path: exports/leads.json
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, FormatHTML, cfg.OutputFormat)
				assert.Equal(t, ColorNever, cfg.Color)
				assert.Equal(t, "https://example.org/book", cfg.ContactURL)
				assert.Equal(t, "logs", cfg.LogDir)
				assert.Equal(t, "/var/lib/screening/leads.db", cfg.Leads.DBPath)
				assert.Equal(t, "exports/leads.json", cfg.Leads.ExportPath)
			},
		},
		{
			name:    "explicit false disables leads",
			content: "leads:\n  enabled: false\n",
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Leads.Enabled)
				assert.Equal(t, "leads.db", cfg.Leads.DBPath, "untouched keys keep defaults")
			},
		},
		{
			name:    "partial top level",
			content: "log_level: warn\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "warn", cfg.LogLevel)
				assert.Equal(t, FormatText, cfg.OutputFormat)
				assert.True(t, cfg.Leads.Enabled)
			},
		},
		{
			name:    "malformed yaml",
			content: "log_level: [unclosed",
			wantErr: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.content))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	level := "error"
	format := FormatHTML
	record := false

	cfg.MergeWithFlags(&level, &format, nil, &record)

	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, FormatHTML, cfg.OutputFormat)
	assert.Equal(t, ColorAuto, cfg.Color, "nil flag leaves value alone")
	assert.False(t, cfg.Leads.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "invalid log_level"},
		{name: "bad format", mutate: func(c *Config) { c.OutputFormat = "pdf" }, wantErr: "invalid output_format"},
		{name: "bad color", mutate: func(c *Config) { c.Color = "sometimes" }, wantErr: "invalid color"},
		{
			name:    "leads enabled without db",
			mutate:  func(c *Config) { c.Leads.DBPath = "" },
			wantErr: "leads.db_path cannot be empty",
		},
		{
			name: "leads disabled without db is fine",
			mutate: func(c *Config) {
				c.Leads.Enabled = false
				c.Leads.DBPath = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetHome(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "custom")
		t.Setenv(HomeEnv, dir)

		home, err := GetHome()
		require.NoError(t, err)
		assert.Equal(t, dir, home)
		assert.DirExists(t, dir)

		path, err := ConfigPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "config.yaml"), path)
	})

	t.Run("falls back to working directory", func(t *testing.T) {
		t.Setenv(HomeEnv, "")
		dir := t.TempDir()
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(wd) })

		home, err := GetHome()
		require.NoError(t, err)
		assert.Equal(t, ".screening", filepath.Base(home))
		assert.DirExists(t, home)
	})
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/h", "leads.db"), ResolvePath("/h", "leads.db"))
	assert.Equal(t, "/abs/leads.db", ResolvePath("/h", "/abs/leads.db"))
	assert.Equal(t, ":memory:", ResolvePath("/h", ":memory:"))
	assert.Equal(t, "", ResolvePath("/h", ""))
}
