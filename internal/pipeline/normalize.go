package pipeline

import (
	"regexp"
	"strings"
)

// Escape sequences for the two characters the pipeline reserves.
// "~" introduces every escape and marker; "$" is escaped so replacement
// templates never see a literal dollar sign.
const (
	TildeEscape  = "~T"
	DollarEscape = "~D"
)

// TabWidth is the number of spaces a tab expands to.
// Expansion is not column-aware.
const TabWidth = 2

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Lines holding only horizontal whitespace
	whitespaceOnlyLine = regexp.MustCompile(`(?m)^[ \t]+$`)
)

var (
	sentinelEscaper   = strings.NewReplacer("~", TildeEscape, "$", DollarEscape)
	sentinelUnescaper = strings.NewReplacer(TildeEscape, "~", DollarEscape, "$")
	tabExpansion      = strings.Repeat(" ", TabWidth)
)

// Clean normalizes raw input before block extraction.
// Order matters: escape sentinels first, then normalize line endings so every
// later line-oriented pattern only sees "\n", then expand tabs, then blank out
// whitespace-only lines.
func Clean(content string) string {
	content = EscapeSentinels(content)
	content = NormalizeLineEndings(content)
	content = Detab(content)
	content = StripBlankLines(content)
	return content
}

// EscapeSentinels replaces "~" with "~T" and "$" with "~D".
func EscapeSentinels(content string) string {
	if !strings.ContainsAny(content, "~$") {
		return content
	}
	return sentinelEscaper.Replace(content)
}

// Unescape is the exact inverse of EscapeSentinels.
// Both sequences are replaced in one left-to-right pass, so an escaped
// literal "~D" ("~TD") comes back as "~D" and not as "$".
func Unescape(content string) string {
	if !strings.Contains(content, "~") {
		return content
	}
	return sentinelUnescaper.Replace(content)
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// Detab replaces every tab with TabWidth spaces.
func Detab(content string) string {
	if !strings.Contains(content, "\t") {
		return content
	}
	return strings.ReplaceAll(content, "\t", tabExpansion)
}

// StripBlankLines empties lines that contain only spaces and tabs.
// The line itself is kept, so line count is unchanged.
func StripBlankLines(content string) string {
	return whitespaceOnlyLine.ReplaceAllString(content, "")
}
