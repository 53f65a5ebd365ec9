package hmarkdown

import (
	"github.com/alnah/go-hmarkdown/internal/hooks"
	"github.com/alnah/go-hmarkdown/internal/pipeline"
	"github.com/alnah/go-hmarkdown/internal/store"
)

// Render renders text with a fresh default engine.
func Render(text string) string {
	return NewEngine().Render(text)
}

// ToHTML is an alias for Render.
func ToHTML(text string) string {
	return Render(text)
}

// Clean escapes "~" and "$", normalizes line endings, expands tabs and
// empties whitespace-only lines.
func Clean(text string) string {
	return pipeline.Clean(text)
}

// Detab replaces every tab with two spaces.
func Detab(text string) string {
	return pipeline.Detab(text)
}

// ExtractBlocks replaces raw block-level HTML in cleaned text with markers,
// storing the fragments in blocks.
func ExtractBlocks(text string, blocks *BlockStore) string {
	return pipeline.ExtractBlocks(text, blocks)
}

// RestoreBlocks replaces markers with their fragments, returning the indices
// of markers that had none.
func RestoreBlocks(text string, blocks *BlockStore) (string, []int) {
	return pipeline.RestoreBlocks(text, blocks)
}

// Restore replaces markers with their fragments and undoes the escaping
// done by Clean.
func Restore(text string, blocks *BlockStore) string {
	return pipeline.Restore(text, blocks)
}

// NewBlockStore creates an empty BlockStore.
func NewBlockStore() *BlockStore {
	return store.NewList()
}

// NewHooks creates a hook registry with the given stages pre-created.
func NewHooks(stages ...string) *Hooks {
	return hooks.NewRegistry(stages...)
}

// Standalone wraps a rendered fragment in an HTML5 document.
// An empty title falls back to the first heading in body.
func Standalone(body, title, css string) string {
	if title == "" {
		title = pipeline.FirstHeading(body)
	}
	return pipeline.Standalone(body, title, css)
}

// HighlightCSS returns the stylesheet for code highlighted in the named
// chroma style. An empty name selects the default style.
func HighlightCSS(style string) (string, error) {
	return pipeline.HighlightCSS(style)
}

// HighlightStyleExists reports whether style names a chroma style.
func HighlightStyleExists(style string) bool {
	return pipeline.HighlightStyleExists(style)
}

// RebasePaths rewrites relative resource paths in rendered HTML written
// against sourceDir so they resolve from outputDir.
func RebasePaths(html, sourceDir, outputDir string) (string, error) {
	return pipeline.RebasePaths(html, sourceDir, outputDir)
}

// HighlightStyles returns the registered chroma style names, sorted.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}
