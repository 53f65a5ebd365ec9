package pipeline

import (
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rebasedAttrs lists the attributes that carry a resource path, per element.
var rebasedAttrs = map[atom.Atom]string{
	atom.Img:    "src",
	atom.A:      "href",
	atom.Link:   "href",
	atom.Source: "src",
	atom.Video:  "src",
	atom.Audio:  "src",
}

// RebasePaths rewrites relative resource paths written against sourceDir so
// they resolve from outputDir instead. It is used when rendered HTML is
// written to a different directory than its markdown source.
//
// Returns the HTML unchanged when either directory is empty or both resolve
// to the same place. Absolute paths, URLs, anchors and query-only references
// are never touched.
func RebasePaths(htmlContent, sourceDir, outputDir string) (string, error) {
	if sourceDir == "" || outputDir == "" {
		return htmlContent, nil
	}

	absSource, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}
	absOutput, err := filepath.Abs(outputDir)
	if err != nil {
		return "", err
	}
	if absSource == absOutput {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	changed := rebaseNode(doc, absSource, absOutput)
	if !changed {
		return htmlContent, nil
	}
	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node and whether it was a fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Body context avoids the implicit <html><body> wrapper.
	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the tree back to a string. Fragments render their
// children only.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// rebaseNode walks the tree and reports whether any attribute was rewritten.
func rebaseNode(n *html.Node, sourceDir, outputDir string) bool {
	changed := false
	if n.Type == html.ElementNode {
		if name, ok := rebasedAttrs[n.DataAtom]; ok {
			changed = rebaseAttr(n, name, sourceDir, outputDir)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if rebaseNode(c, sourceDir, outputDir) {
			changed = true
		}
	}
	return changed
}

func rebaseAttr(n *html.Node, name, sourceDir, outputDir string) bool {
	for i, attr := range n.Attr {
		if attr.Key != name || !isRelativePath(attr.Val) {
			continue
		}

		path, suffix := splitReference(attr.Val)
		target := filepath.Join(sourceDir, filepath.FromSlash(path))
		rel, err := filepath.Rel(outputDir, target)
		if err != nil {
			continue
		}
		n.Attr[i].Val = filepath.ToSlash(rel) + suffix
		return true
	}
	return false
}

// splitReference separates a path from its "?query" or "#fragment" suffix.
func splitReference(ref string) (path, suffix string) {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		return ref[:i], ref[i:]
	}
	return ref, ""
}

// isRelativePath reports whether ref is a filesystem path relative to the
// document.
func isRelativePath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "?") {
		return false
	}
	if strings.HasPrefix(ref, "//") || strings.HasPrefix(ref, "/") || filepath.IsAbs(ref) {
		return false
	}
	// Any scheme (http:, mailto:, data:, file:) makes it a URL.
	if i := strings.IndexByte(ref, ':'); i > 0 && !strings.ContainsAny(ref[:i], "/.") {
		return false
	}
	return true
}
