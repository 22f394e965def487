// Package config holds the runtime configuration for the extraction tool.
// Values come from flags first, then SCPI_-prefixed environment variables,
// then defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Input format constants
	FormatAuto = "auto"
	FormatDocx = "docx"
	FormatPDF  = "pdf"

	// Default values
	DefaultFormat      = FormatAuto
	DefaultOutputPath  = "commands.json"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 200 * 1024 * 1024 // 200MB

	envPrefix = "SCPI"
)

// Config holds all configuration for an extraction run.
type Config struct {
	// Input configuration
	ManualPath string
	Format     string // "docx", "pdf" or "auto"
	IndexPath  string // optional command-index mapping file

	// Output configuration
	OutputPath  string
	ManualTitle string

	// Classifier profile overrides; empty means the built-in default
	HeaderStyle  string
	HeaderFont   string
	SectionStyle string
	SyntaxFonts  []string

	// Application configuration
	LogLevel    string
	MaxFileSize int64
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Format:      DefaultFormat,
		OutputPath:  DefaultOutputPath,
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// BindFlags registers the shared flags on the given flag set. Viper
// binding happens in Load, against the flag set of the command that
// actually runs.
func BindFlags(fs *pflag.FlagSet) {
	cfg := DefaultConfig()

	fs.String("manual", cfg.ManualPath, "Path to the programmer manual (.docx or .pdf)")
	fs.String("format", cfg.Format, "Input format: 'docx', 'pdf' or 'auto'")
	fs.String("index", cfg.IndexPath, "Optional YAML command-index mapping file")
	fs.StringP("output", "o", cfg.OutputPath, "Output path for the command catalog JSON")
	fs.String("title", cfg.ManualTitle, "Manual title recorded in the catalog")
	fs.String("header-style", cfg.HeaderStyle, "Paragraph style name of command headers")
	fs.String("header-font", cfg.HeaderFont, "Font family of command headers")
	fs.String("section-style", cfg.SectionStyle, "Paragraph style name of section labels")
	fs.StringSlice("syntax-fonts", cfg.SyntaxFonts, "Monospace fonts marking syntax lines")
	fs.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.Int64("maxfilesize", cfg.MaxFileSize, "Maximum manual file size in bytes")
}

// Load populates a Config from the given flag set and the SCPI_
// environment variables, expands the file paths and validates the result.
func Load(fs *pflag.FlagSet) (*Config, error) {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	fs.VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	cfg := DefaultConfig()

	cfg.ManualPath = viper.GetString("manual")
	cfg.Format = viper.GetString("format")
	cfg.IndexPath = viper.GetString("index")
	cfg.OutputPath = viper.GetString("output")
	cfg.ManualTitle = viper.GetString("title")
	cfg.HeaderStyle = viper.GetString("header-style")
	cfg.HeaderFont = viper.GetString("header-font")
	cfg.SectionStyle = viper.GetString("section-style")
	cfg.SyntaxFonts = viper.GetStringSlice("syntax-fonts")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")

	if cfg.ManualPath != "" {
		if abs, err := filepath.Abs(cfg.ManualPath); err == nil {
			cfg.ManualPath = abs
		}
	}
	if cfg.IndexPath != "" {
		if abs, err := filepath.Abs(cfg.IndexPath); err == nil {
			cfg.IndexPath = abs
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ManualPath == "" {
		return errors.New("manual path cannot be empty")
	}
	if _, err := os.Stat(c.ManualPath); err != nil {
		return fmt.Errorf("cannot access manual %s: %w", c.ManualPath, err)
	}

	switch c.Format {
	case FormatAuto, FormatDocx, FormatPDF:
	default:
		return fmt.Errorf("invalid format: %s (must be one of: auto, docx, pdf)", c.Format)
	}

	if c.IndexPath != "" {
		if _, err := os.Stat(c.IndexPath); err != nil {
			return fmt.Errorf("cannot access index file %s: %w", c.IndexPath, err)
		}
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// ResolveFormat returns the effective input format, deciding "auto" from
// the manual's file extension.
func (c *Config) ResolveFormat() (string, error) {
	if c.Format != FormatAuto {
		return c.Format, nil
	}
	switch strings.ToLower(filepath.Ext(c.ManualPath)) {
	case ".docx":
		return FormatDocx, nil
	case ".pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("cannot determine format of %s: use --format", c.ManualPath)
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{ManualPath: %s, Format: %s, OutputPath: %s, IndexPath: %s, LogLevel: %s, MaxFileSize: %d}",
		c.ManualPath, c.Format, c.OutputPath, c.IndexPath, c.LogLevel, c.MaxFileSize)
}
