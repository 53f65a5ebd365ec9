package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// codeBlockRendererPriority wins over goldmark's default HTML renderer (1000).
const codeBlockRendererPriority = 200

// ErrUnknownHighlightStyle indicates a chroma style name is not registered.
var ErrUnknownHighlightStyle = errors.New("unknown highlight style")

// codeBlockRenderer highlights fenced code with chroma.
// Fenced code reaches the renderer with "~T"/"~D" escapes still in place;
// they are undone before lexing and re-applied to the highlighted markup so
// the final restore pass inverts them once.
type codeBlockRenderer struct {
	formatter *chromahtml.Formatter
}

func newCodeBlockRenderer() *codeBlockRenderer {
	return &codeBlockRenderer{
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	lang := string(n.Language(source))
	code := rawCode(n, source)

	highlighted, ok := r.highlight(Unescape(lang), Unescape(string(code)))
	if !ok {
		writePlainCode(w, lang, code)
		return ast.WalkSkipChildren, nil
	}
	_, _ = w.WriteString(EscapeSentinels(highlighted))
	return ast.WalkSkipChildren, nil
}

// highlight returns chroma markup, or false when the language is unknown or
// lexing fails.
func (r *codeBlockRenderer) highlight(lang, code string) (string, bool) {
	if lang == "" {
		return "", false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var buf bytes.Buffer
	// Classes only: the style is irrelevant to markup and supplied via HighlightCSS.
	if err := r.formatter.Format(&buf, styles.Fallback, iterator); err != nil {
		return "", false
	}
	return buf.String(), true
}

// rawCode concatenates the code block's lines as written.
func rawCode(n *ast.FencedCodeBlock, source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.Bytes()
}

// writePlainCode mirrors goldmark's default fenced code output.
func writePlainCode(w util.BufWriter, lang string, code []byte) {
	_, _ = w.WriteString("<pre><code")
	if lang != "" {
		_, _ = w.WriteString(` class="language-`)
		_, _ = w.Write(util.EscapeHTML([]byte(lang)))
		_, _ = w.WriteString(`"`)
	}
	_ = w.WriteByte('>')
	_, _ = w.Write(util.EscapeHTML(code))
	_, _ = w.WriteString("</code></pre>\n")
}

// HighlightStyles returns the registered chroma style names, sorted.
func HighlightStyles() []string {
	return styles.Names()
}

// HighlightStyleExists reports whether name is a registered chroma style.
func HighlightStyleExists(name string) bool {
	for _, s := range styles.Names() {
		if s == name {
			return true
		}
	}
	return false
}

// HighlightCSS returns the stylesheet for highlighted code in the named style.
func HighlightCSS(name string) (string, error) {
	if name == "" {
		name = DefaultHighlightStyle
	}
	if !HighlightStyleExists(name) {
		return "", fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, name)
	}

	var buf strings.Builder
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, styles.Get(name)); err != nil {
		return "", fmt.Errorf("writing %s stylesheet: %w", name, err)
	}
	return buf.String(), nil
}
