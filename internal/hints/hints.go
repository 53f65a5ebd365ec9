// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// maxListedStyles caps how many style names ForHighlightStyle prints.
const maxListedStyles = 12

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-hmarkdown/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-hmarkdown) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-hmarkdown") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForHighlightStyle returns hints for unknown chroma style errors.
// Long lists are truncated.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	listed := available
	suffix := ""
	if len(listed) > maxListedStyles {
		listed = listed[:maxListedStyles]
		suffix = ", ..."
	}
	return format("available: " + strings.Join(listed, ", ") + suffix)
}

// ForStyleNotFound returns hints for unknown page stylesheet errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return format("pass a CSS file path with --css ./style.css")
	}
	return formatHints([]string{
		"available: " + strings.Join(available, ", "),
		"or pass a CSS file path with --css ./style.css",
	})
}

// ForTransform returns hints for an invalid render.transform value.
func ForTransform() string {
	return format("use \"goldmark\" to convert markdown or \"none\" to keep it")
}

// ForNoMarkdownFiles returns hints when a directory holds no markdown sources.
func ForNoMarkdownFiles() string {
	return formatHints([]string{
		"only .md and .markdown files are rendered",
		"use - to read from stdin",
	})
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
