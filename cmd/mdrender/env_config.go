package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdrender/internal/config"
	"github.com/alnah/go-mdrender/internal/logger"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string        // MDRENDER_CONFIG: config file name or path
	Format       string        // MDRENDER_FORMAT: text or yaml
	Width        int           // MDRENDER_WIDTH: wrap width in columns
	Timeout      time.Duration // MDRENDER_TIMEOUT: overall render timeout
	ImageTimeout time.Duration // MDRENDER_IMAGE_TIMEOUT: per-image fetch timeout
	NoImages     bool          // MDRENDER_NO_IMAGES: disable image fetching
	Workers      int           // MDRENDER_WORKERS: parallel image fetches

	// Problems found while parsing, reported by warnEnvConfig.
	problems []string
}

const envPrefix = "MDRENDER_"

// knownEnvVars lists valid MDRENDER_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDRENDER_CONFIG":        true,
	"MDRENDER_FORMAT":        true,
	"MDRENDER_WIDTH":         true,
	"MDRENDER_TIMEOUT":       true,
	"MDRENDER_IMAGE_TIMEOUT": true,
	"MDRENDER_NO_IMAGES":     true,
	"MDRENDER_WORKERS":       true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable values are ignored and recorded as problems.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDRENDER_CONFIG"),
		Format:     strings.ToLower(strings.TrimSpace(os.Getenv("MDRENDER_FORMAT"))),
	}

	if v := os.Getenv("MDRENDER_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Width = n
		} else {
			cfg.problem("MDRENDER_WIDTH", v)
		}
	}
	if v := os.Getenv("MDRENDER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			cfg.problem("MDRENDER_TIMEOUT", v)
		}
	}
	if v := os.Getenv("MDRENDER_IMAGE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ImageTimeout = d
		} else {
			cfg.problem("MDRENDER_IMAGE_TIMEOUT", v)
		}
	}
	if v := os.Getenv("MDRENDER_NO_IMAGES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NoImages = b
		} else {
			cfg.problem("MDRENDER_NO_IMAGES", v)
		}
	}
	if v := os.Getenv("MDRENDER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		} else {
			cfg.problem("MDRENDER_WORKERS", v)
		}
	}

	return cfg
}

func (e *envConfig) problem(name, value string) {
	e.problems = append(e.problems, fmt.Sprintf("ignoring %s=%q: invalid value", name, value))
}

// warnEnvConfig logs invalid values and unrecognized MDRENDER_* variables.
// Helps catch typos like MDRENDER_WITDH.
func warnEnvConfig(env *envConfig, log *logger.Logger) {
	for _, p := range env.problems {
		log.EnvWarning(p)
	}
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			log.EnvWarning(fmt.Sprintf("unknown environment variable %s (typo?)", name))
		}
	}
}

// applyEnvConfig applies environment variable values to cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Format != "" {
		cfg.Output.Format = env.Format
	}
	if env.Width > 0 {
		cfg.Output.Width = env.Width
	}
	if env.ImageTimeout > 0 {
		cfg.Images.Timeout = env.ImageTimeout
	}
	if env.NoImages {
		cfg.Images.Enabled = false
	}
	if env.Workers > 0 {
		cfg.Images.MaxParallel = env.Workers
	}
}
