package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-hmarkdown/internal/hooks"
	"github.com/alnah/go-hmarkdown/internal/yamlutil"
)

// frontMatterPattern matches a YAML block opening the document:
// "---" on the first line, closed by "---" or "...".
// Runs before line endings are normalized, so \r\n is accepted.
var frontMatterPattern = regexp.MustCompile(
	`\A---[ \t]*\r?\n(?:((?s:.*?))\r?\n)?(?:---|\.\.\.)[ \t]*(?:\r?\n|\z)`)

// FrontMatter is one top-level front matter entry.
type FrontMatter struct {
	Key   string
	Value any
}

// SplitFrontMatter separates a leading YAML block from the document body.
// ok is false when there is no block or it does not parse as a mapping;
// body is then the unchanged input.
func SplitFrontMatter(content string) (entries []FrontMatter, body string, ok bool) {
	m := frontMatterPattern.FindStringSubmatchIndex(content)
	if m == nil {
		return nil, content, false
	}

	body = content[m[1]:]
	if m[2] < 0 || strings.TrimSpace(content[m[2]:m[3]]) == "" {
		return nil, body, true
	}

	items, err := yamlutil.UnmarshalOrdered([]byte(content[m[2]:m[3]]))
	if err != nil {
		return nil, content, false
	}

	entries = make([]FrontMatter, 0, len(items))
	for _, item := range items {
		entries = append(entries, FrontMatter{Key: fmt.Sprint(item.Key), Value: item.Value})
	}
	return entries, body, true
}

// FrontMatterHook returns a hook that strips front matter and hands each
// entry to set, in document order. Documents without valid front matter
// pass through unchanged.
func FrontMatterHook(set func(key string, value any)) hooks.Hook {
	return func(content string) string {
		entries, body, ok := SplitFrontMatter(content)
		if !ok {
			return content
		}
		for _, e := range entries {
			set(e.Key, e.Value)
		}
		return body
	}
}
