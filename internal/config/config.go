package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdrender/internal/fileutil"
	"github.com/alnah/go-mdrender/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrOutOfRange      = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid output format")
)

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Field limits.
const (
	MaxUserAgentLength = 200
	MaxLayoutMetric    = 200.0
	MaxParallelFetches = 64
	MinWidth           = 20
	MaxWidth           = 1000
)

// Config holds all configuration for rendering.
type Config struct {
	Layout LayoutConfig `yaml:"layout"`
	Images ImagesConfig `yaml:"images"`
	Code   CodeConfig   `yaml:"code"`
	Output OutputConfig `yaml:"output"`
}

// LayoutConfig defines spacing metrics in points.
type LayoutConfig struct {
	BlockGap         float64 `yaml:"blockGap"`         // default: 12
	ListItemGap      float64 `yaml:"listItemGap"`      // default: 6
	NestedListIndent float64 `yaml:"nestedListIndent"` // default: 12
	TableCellPadding float64 `yaml:"tableCellPadding"` // default: 5
}

// ImagesConfig defines image loading options.
type ImagesConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Timeout     time.Duration `yaml:"timeout"`     // per fetch, 0 = no limit (default: 30s)
	MaxBytes    int64         `yaml:"maxBytes"`    // 0 = no limit (default: 20MiB)
	MaxParallel int           `yaml:"maxParallel"` // 0 = derived from CPU count
	UserAgent   string        `yaml:"userAgent"`
}

// CodeConfig defines code block options.
type CodeConfig struct {
	Highlight bool `yaml:"highlight"`
}

// OutputConfig defines how the CLI presents the render tree.
type OutputConfig struct {
	Format string `yaml:"format"` // "text" or "yaml" (default: "text")
	Width  int    `yaml:"width"`  // columns, 0 = terminal width
}

// Validate checks ranges and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	metrics := []struct {
		name  string
		value float64
	}{
		{"layout.blockGap", c.Layout.BlockGap},
		{"layout.listItemGap", c.Layout.ListItemGap},
		{"layout.nestedListIndent", c.Layout.NestedListIndent},
		{"layout.tableCellPadding", c.Layout.TableCellPadding},
	}
	for _, m := range metrics {
		if m.value < 0 || m.value > MaxLayoutMetric {
			return fmt.Errorf("%w: %s must be between 0 and %.0f, got %.2f", ErrOutOfRange, m.name, MaxLayoutMetric, m.value)
		}
	}

	// Validate image fields
	if c.Images.Timeout < 0 {
		return fmt.Errorf("%w: images.timeout must not be negative, got %s", ErrOutOfRange, c.Images.Timeout)
	}
	if c.Images.MaxBytes < 0 {
		return fmt.Errorf("%w: images.maxBytes must not be negative, got %d", ErrOutOfRange, c.Images.MaxBytes)
	}
	if c.Images.MaxParallel < 0 || c.Images.MaxParallel > MaxParallelFetches {
		return fmt.Errorf("%w: images.maxParallel must be between 0 and %d, got %d", ErrOutOfRange, MaxParallelFetches, c.Images.MaxParallel)
	}
	if err := validateFieldLength("images.userAgent", c.Images.UserAgent, MaxUserAgentLength); err != nil {
		return err
	}

	// Validate output fields
	switch strings.ToLower(c.Output.Format) {
	case "", FormatText, FormatYAML:
		// valid
	default:
		return fmt.Errorf("%w: output.format %q (must be text or yaml)", ErrInvalidFormat, c.Output.Format)
	}
	if c.Output.Width != 0 && (c.Output.Width < MinWidth || c.Output.Width > MaxWidth) {
		return fmt.Errorf("%w: output.width must be 0 or between %d and %d, got %d", ErrOutOfRange, MinWidth, MaxWidth, c.Output.Width)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			BlockGap:         12,
			ListItemGap:      6,
			NestedListIndent: 12,
			TableCellPadding: 5,
		},
		Images: ImagesConfig{
			Enabled:  true,
			Timeout:  30 * time.Second,
			MaxBytes: 20 << 20,
		},
		Code:   CodeConfig{Highlight: true},
		Output: OutputConfig{Format: FormatText},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, string, error) {
	if nameOrPath == "" {
		return nil, "", ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, "", err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, "", fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return cfg, configPath, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-mdrender/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-mdrender", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
