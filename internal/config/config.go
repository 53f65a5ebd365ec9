package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-hmarkdown/internal/fileutil"
	"github.com/alnah/go-hmarkdown/internal/pipeline"
	"github.com/alnah/go-hmarkdown/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound   = errors.New("config file not found")
	ErrEmptyConfigName  = errors.New("config name cannot be empty")
	ErrConfigParse      = errors.New("failed to parse config")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
	ErrInvalidTransform = errors.New("invalid transform")
	ErrUnknownStyle     = errors.New("unknown highlight style")
)

// Transform names accepted by render.transform.
const (
	TransformGoldmark = "goldmark"
	TransformNone     = "none"
)

// DefaultCSS is the built-in stylesheet used for standalone output.
const DefaultCSS = "default"

// appDirName is the directory under the user config dir searched for configs.
const appDirName = "go-hmarkdown"

// Field length limits.
const (
	MaxPathLength  = 4096 // PATH_MAX on Linux
	MaxTitleLength = 200  // <title> text
	MaxStyleLength = 50   // chroma style names are short
)

// Config holds all configuration for the CLI.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Render RenderConfig `yaml:"render"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Standalone bool   `yaml:"standalone"` // Wrap output in a full HTML5 document
	Title      string `yaml:"title"`      // Document title (empty = front matter, then first heading)
	CSS        string `yaml:"css"`        // Style name or CSS file path for standalone output (empty = none)
	AssetPath  string `yaml:"assetPath"`  // Directory holding styles/{name}.css overrides
}

// RenderConfig defines the render pipeline options.
type RenderConfig struct {
	Transform   string          `yaml:"transform"` // "goldmark" or "none" (default: "goldmark")
	FrontMatter bool            `yaml:"frontMatter"`
	HardWraps   bool            `yaml:"hardWraps"`
	XHTML       bool            `yaml:"xhtml"`
	Unsafe      bool            `yaml:"unsafe"`
	Typographer bool            `yaml:"typographer"`
	Highlight   HighlightConfig `yaml:"highlight"`
}

// HighlightConfig defines fenced code highlighting options.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // chroma style name (default: "github")
}

// UsesGoldmark reports whether markdown is converted with goldmark.
func (r RenderConfig) UsesGoldmark() bool {
	return r.Transform == "" || strings.EqualFold(r.Transform, TransformGoldmark)
}

// GoldmarkOptions maps the render section onto goldmark options.
func (r RenderConfig) GoldmarkOptions() pipeline.GoldmarkOptions {
	style := r.Highlight.Style
	if style == "" {
		style = pipeline.DefaultHighlightStyle
	}
	return pipeline.GoldmarkOptions{
		HardWraps:      r.HardWraps,
		XHTML:          r.XHTML,
		Unsafe:         r.Unsafe,
		Typographer:    r.Typographer,
		Highlight:      r.Highlight.Enabled,
		HighlightStyle: style,
	}
}

// Validate checks enumerations, style names and field lengths.
// Called automatically by LoadConfig, but available for callers that build
// a Config by hand.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.title", c.Output.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.css", c.Output.CSS, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.assetPath", c.Output.AssetPath, MaxPathLength); err != nil {
		return err
	}

	switch strings.ToLower(c.Render.Transform) {
	case "", TransformGoldmark, TransformNone:
		// valid
	default:
		return fmt.Errorf("%w: render.transform %q (must be %s or %s)",
			ErrInvalidTransform, c.Render.Transform, TransformGoldmark, TransformNone)
	}

	if err := validateFieldLength("render.highlight.style", c.Render.Highlight.Style, MaxStyleLength); err != nil {
		return err
	}
	if style := c.Render.Highlight.Style; style != "" && !pipeline.HighlightStyleExists(style) {
		return fmt.Errorf("%w: render.highlight.style %q", ErrUnknownStyle, style)
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

// DefaultConfig returns the configuration used when no file is given:
// goldmark with front matter and highlighting, fragment output next to the
// source.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{DefaultDir: ""},
		Output: OutputConfig{DefaultDir: "", Standalone: false, CSS: DefaultCSS},
		Render: RenderConfig{
			Transform:   TransformGoldmark,
			FrontMatter: true,
			Highlight: HighlightConfig{
				Enabled: true,
				Style:   pipeline.DefaultHighlightStyle,
			},
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-hmarkdown/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
