package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harrison/screening/internal/logger"
)

// Output formats for rendered results
const (
	FormatText = "text"
	FormatHTML = "html"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// LeadsConfig controls where completed assessment summaries are recorded
type LeadsConfig struct {
	// Enabled turns lead recording on
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite database for leads, relative to the home directory
	DBPath string `yaml:"db_path"`

	// ExportPath is an optional JSON file that also receives each lead
	ExportPath string `yaml:"export_path"`
}

// Config represents screening configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// OutputFormat is the result format: text or html
	OutputFormat string `yaml:"output_format"`

	// Color is auto, always, or never
	Color string `yaml:"color"`

	// ContactURL is the scheduling page linked from HTML results
	ContactURL string `yaml:"contact_url"`

	// LogDir enables file logging when set, relative to the home directory
	LogDir string `yaml:"log_dir"`

	// Leads contains lead recording configuration
	Leads LeadsConfig `yaml:"leads"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		OutputFormat: FormatText,
		Color:        ColorAuto,
		ContactURL:   "/contact",
		LogDir:       "",
		Leads: LeadsConfig{
			Enabled:    true,
			DBPath:     "leads.db",
			ExportPath: "",
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file yields the defaults; a malformed file is an error.
// Keys present in the file override the defaults, even when set to a zero value.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Decode again into a map so explicit zero values ("enabled: false") can
	// be told apart from absent keys
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if _, ok := rawMap["log_level"]; ok {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if _, ok := rawMap["output_format"]; ok {
		cfg.OutputFormat = fileCfg.OutputFormat
	}
	if _, ok := rawMap["color"]; ok {
		cfg.Color = fileCfg.Color
	}
	if _, ok := rawMap["contact_url"]; ok {
		cfg.ContactURL = fileCfg.ContactURL
	}
	if _, ok := rawMap["log_dir"]; ok {
		cfg.LogDir = fileCfg.LogDir
	}

	if leadsSection, ok := rawMap["leads"].(map[string]interface{}); ok {
		if _, exists := leadsSection["enabled"]; exists {
			cfg.Leads.Enabled = fileCfg.Leads.Enabled
		}
		if _, exists := leadsSection["db_path"]; exists {
			cfg.Leads.DBPath = fileCfg.Leads.DBPath
		}
		if _, exists := leadsSection["export_path"]; exists {
			cfg.Leads.ExportPath = fileCfg.Leads.ExportPath
		}
	}

	return cfg, nil
}

// MergeWithFlags applies CLI flag values on top of the configuration.
// Nil flags leave the configured value alone.
func (c *Config) MergeWithFlags(logLevel, outputFormat, color *string, recordLeads *bool) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if outputFormat != nil {
		c.OutputFormat = *outputFormat
	}
	if color != nil {
		c.Color = *color
	}
	if recordLeads != nil {
		c.Leads.Enabled = *recordLeads
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.OutputFormat != FormatText && c.OutputFormat != FormatHTML {
		return fmt.Errorf("invalid output_format %q, must be one of: text, html", c.OutputFormat)
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", c.Color)
	}

	if c.Leads.Enabled && c.Leads.DBPath == "" {
		return fmt.Errorf("leads.db_path cannot be empty when leads are enabled")
	}

	return nil
}
