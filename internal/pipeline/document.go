package pipeline

import (
	"html"
	"regexp"
	"strings"
)

// DefaultTitle is used when a standalone document has no title.
const DefaultTitle = "Document"

var (
	// headingPattern matches h1-h6 elements, capturing level and inner HTML.
	headingPattern = regexp.MustCompile(`(?is)<h([1-6])\b[^>]*>(.*?)</h[1-6]>`)

	// htmlTagPattern matches any HTML tag.
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// htmlTemplate wraps a rendered fragment in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%TITLE%</title>
</head>
<body>
%BODY%
</body>
</html>
`

// Standalone wraps body in an HTML5 document titled title, with css (if any)
// injected into the head.
func Standalone(body, title, css string) string {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	// strings.Replacer scans the template once, so body and title are
	// never themselves searched for placeholders.
	doc := strings.NewReplacer(
		"%TITLE%", html.EscapeString(title),
		"%BODY%", strings.TrimRight(body, "\n"),
	).Replace(htmlTemplate)
	return InjectCSS(doc, css)
}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func InjectCSS(htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>\n"
	lowerHTML := strings.ToLower(htmlContent)

	// Try inserting before </head>
	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	// Try inserting after <body>
	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	// Fallback: prepend
	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// FirstHeading returns the text of the highest-level heading in content,
// taking the earliest one on ties. Returns "" when there is no heading.
func FirstHeading(content string) string {
	best, bestLevel := "", 7
	for _, m := range headingPattern.FindAllStringSubmatch(content, -1) {
		level := int(m[1][0] - '0')
		if level >= bestLevel {
			continue
		}
		text := stripHTMLTags(m[2])
		if text == "" {
			continue
		}
		best, bestLevel = text, level
		if level == 1 {
			break
		}
	}
	return best
}

// stripHTMLTags removes tags and decodes entities, leaving plain text.
func stripHTMLTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(htmlTagPattern.ReplaceAllString(s, "")))
}
