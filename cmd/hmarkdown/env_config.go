package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-hmarkdown/internal/config"
)

// envPrefix is the prefix shared by all recognized environment variables.
const envPrefix = "HMARKDOWN_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // HMARKDOWN_CONFIG: config file name or path
	InputDir       string // HMARKDOWN_INPUT_DIR: default input directory
	OutputDir      string // HMARKDOWN_OUTPUT_DIR: default output directory
	Transform      string // HMARKDOWN_TRANSFORM: goldmark or none
	HighlightStyle string // HMARKDOWN_HIGHLIGHT_STYLE: chroma style name
	Workers        int    // HMARKDOWN_WORKERS: parallel workers
}

// knownEnvVars lists valid HMARKDOWN_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HMARKDOWN_CONFIG":          true,
	"HMARKDOWN_INPUT_DIR":       true,
	"HMARKDOWN_OUTPUT_DIR":      true,
	"HMARKDOWN_TRANSFORM":       true,
	"HMARKDOWN_HIGHLIGHT_STYLE": true,
	"HMARKDOWN_WORKERS":         true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:     os.Getenv("HMARKDOWN_CONFIG"),
		InputDir:       os.Getenv("HMARKDOWN_INPUT_DIR"),
		OutputDir:      os.Getenv("HMARKDOWN_OUTPUT_DIR"),
		Transform:      os.Getenv("HMARKDOWN_TRANSFORM"),
		HighlightStyle: os.Getenv("HMARKDOWN_HIGHLIGHT_STYLE"),
	}

	// Invalid or non-positive worker counts are ignored
	if workers := os.Getenv("HMARKDOWN_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized HMARKDOWN_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides file values with environment values.
// Resulting precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Transform != "" {
		cfg.Render.Transform = env.Transform
	}
	if env.HighlightStyle != "" {
		cfg.Render.Highlight.Style = env.HighlightStyle
	}
}
