package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// markerParagraph matches a marker that goldmark wrapped in a paragraph.
var markerParagraph = regexp.MustCompile(`<p>(~K\d+K)</p>`)

// Transformer is the grammar stage: it turns cleaned, block-isolated text
// into markup. It must leave "~K<n>K", "~T" and "~D" sequences intact.
type Transformer interface {
	Transform(text string) string
}

// TransformFunc adapts an ordinary function to Transformer.
type TransformFunc func(string) string

// Transform calls f(text).
func (f TransformFunc) Transform(text string) string {
	return f(text)
}

// Identity returns text unchanged. It is the default grammar stage.
var Identity = TransformFunc(func(text string) string { return text })

// GoldmarkOptions configures GoldmarkTransformer.
type GoldmarkOptions struct {
	HardWraps      bool   // Treat newlines as <br>
	XHTML          bool   // Self-closing tags
	Unsafe         bool   // Render inline raw HTML instead of omitting it
	Typographer    bool   // Smart quotes, dashes and ellipses
	Highlight      bool   // Highlight fenced code with a known language
	HighlightStyle string // Chroma style name used for CSS generation
}

// GoldmarkTransformer converts markdown to an HTML fragment using goldmark (pure Go).
type GoldmarkTransformer struct {
	md   goldmark.Markdown
	opts GoldmarkOptions
}

// NewGoldmarkTransformer creates a GoldmarkTransformer with GFM-style block
// extensions. Strikethrough is left out on purpose: "~" is the escape character
// at this stage and single-tilde runs would be read as delimiters.
func NewGoldmarkTransformer(opts GoldmarkOptions) *GoldmarkTransformer {
	exts := []goldmark.Extender{
		extension.Table,
		extension.TaskList,
		extension.Linkify,
		extension.Footnote,
		extension.DefinitionList,
	}
	if opts.Typographer {
		exts = append(exts, extension.Typographer)
	}

	rendererOpts := []renderer.Option{}
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if opts.XHTML {
		rendererOpts = append(rendererOpts, html.WithXHTML())
	}
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}
	if opts.Highlight {
		rendererOpts = append(rendererOpts, renderer.WithNodeRenderers(
			util.Prioritized(newCodeBlockRenderer(), codeBlockRendererPriority),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &GoldmarkTransformer{md: md, opts: opts}
}

// Options returns the options the transformer was built with.
func (g *GoldmarkTransformer) Options() GoldmarkOptions {
	return g.opts
}

// Convert renders text to an HTML fragment.
// Paragraphs holding nothing but a block marker are unwrapped so the restored
// block is not nested inside <p>.
func (g *GoldmarkTransformer) Convert(text string) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return UnwrapMarkerParagraphs(buf.String()), nil
}

// Transform is Convert without the error: on failure the input is returned
// unchanged and left for the restore stage.
func (g *GoldmarkTransformer) Transform(text string) string {
	out, err := g.Convert(text)
	if err != nil {
		return text
	}
	return out
}

// UnwrapMarkerParagraphs turns "<p>~K0K</p>" into "~K0K".
func UnwrapMarkerParagraphs(content string) string {
	return markerParagraph.ReplaceAllString(content, "$1")
}
