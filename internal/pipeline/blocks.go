package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/alnah/go-hmarkdown/internal/store"
)

// matchTimeout bounds each extraction pass. A pass that times out leaves
// the text as it was before that pass.
const matchTimeout = 2 * time.Second

// Block extraction needs backreferences and lookahead, which RE2 lacks.
var (
	// Opening tag at line start through a closing tag that also starts a line.
	// Runs first so ins/del wrappers and nested same-tag blocks are taken whole.
	nestedBlockPattern = mustCompileBlock(
		`^(<(` + tagAlternation(blockTags, editTags) + `)\b[^\r]*?\n</\2>[ \t]*(?=\n+))`)

	// Opening tag at line start through its closing tag anywhere on a later
	// (or the same) line.
	looseBlockPattern = mustCompileBlock(
		`^(<(` + tagAlternation(blockTags) + `)\b[^\r]*?.*</\2>[ \t]*(?=\n+)\n)`)

	// <hr>, <hr/> and <hr /> indented up to three spaces.
	horizontalRulePattern = mustCompileBlock(
		`(\n[ ]{0,3}(<(hr)\b([^<>])*?/?>)[ \t]*(?=\n{2,}))`)

	// Comments standing alone between blank lines.
	standaloneCommentPattern = mustCompileBlock(
		`(\n\n[ ]{0,3}<!(--[^\r]*?--\s*)+>[ \t]*(?=\n{2,}))`)

	// ~K<index>K
	markerPattern = regexp.MustCompile(`~K(\d+)K`)

	// ~F<index>F stands for a fenced code region during extraction.
	fencePattern = regexp.MustCompile(`~F(\d+)F`)
)

func mustCompileBlock(expr string) *regexp2.Regexp {
	re := regexp2.MustCompile(expr, regexp2.Multiline)
	re.MatchTimeout = matchTimeout
	return re
}

// Marker returns the inline token that stands for fragment index.
func Marker(index int) string {
	return "~K" + strconv.Itoa(index) + "K"
}

// SaveBlock trims leading and trailing newlines from fragment, stores it and
// returns its marker padded with blank lines so it always forms its own block.
func SaveBlock(blocks *store.List, fragment string) string {
	fragment = strings.TrimLeft(fragment, "\n")
	fragment = strings.TrimRight(fragment, "\n")
	return "\n\n" + Marker(blocks.Store(fragment)) + "\n\n"
}

// ExtractBlocks replaces raw block-level HTML in normalized text with markers,
// storing each matched fragment in blocks.
//
// Matching is textual. Nesting is only handled as far as the nested pass
// followed by the loose pass reaches; deeper same-tag nesting is not isolated.
// HTML inside a backtick fenced code region is never extracted; a region
// that sits inside an extracted block is stored with it verbatim.
// A nil store leaves text unchanged.
func ExtractBlocks(text string, blocks *store.List) string {
	if blocks == nil || !strings.Contains(text, "<") {
		return text
	}

	text, fences := protectFences(text)
	save := func(m regexp2.Match) string {
		return SaveBlock(blocks, unprotectFences(m.GroupByNumber(1).String(), fences))
	}

	for _, re := range []*regexp2.Regexp{
		nestedBlockPattern,
		looseBlockPattern,
		horizontalRulePattern,
		standaloneCommentPattern,
	} {
		text = replaceBlocks(re, text, save)
	}
	return unprotectFences(text, fences)
}

// protectFences replaces every backtick fenced code region with ~F<index>F.
// A region spans the opening line through the closing line, or to the end
// of text when unclosed. Trailing newlines stay outside the stand-in.
func protectFences(text string) (string, []string) {
	if !strings.Contains(text, "```") {
		return text, nil
	}

	var (
		out     strings.Builder
		region  strings.Builder
		regions []string
		open    int
	)
	flush := func() {
		body := region.String()
		code := strings.TrimRight(body, "\n")
		out.WriteString("~F" + strconv.Itoa(len(regions)) + "F")
		out.WriteString(body[len(code):])
		regions = append(regions, code)
		region.Reset()
		open = 0
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		if open == 0 {
			if n, ok := openingFence(line); ok {
				open = n
				region.WriteString(line)
				continue
			}
			out.WriteString(line)
			continue
		}
		region.WriteString(line)
		if closesFence(line, open) {
			flush()
		}
	}
	if open > 0 {
		flush()
	}
	return out.String(), regions
}

// unprotectFences puts fenced regions back in place of their stand-ins.
func unprotectFences(text string, fences []string) string {
	if len(fences) == 0 || !strings.Contains(text, "~F") {
		return text
	}
	return fencePattern.ReplaceAllStringFunc(text, func(token string) string {
		index, err := strconv.Atoi(token[2 : len(token)-1])
		if err != nil || index >= len(fences) {
			return token
		}
		return fences[index]
	})
}

// openingFence reports whether line opens a backtick fence and its length.
func openingFence(line string) (int, bool) {
	rest, ok := trimFenceIndent(line)
	if !ok {
		return 0, false
	}
	n := len(rest) - len(strings.TrimLeft(rest, "`"))
	if n < 3 || strings.Contains(rest[n:], "`") {
		return 0, false
	}
	return n, true
}

// closesFence reports whether line closes a fence opened with n backticks.
func closesFence(line string, n int) bool {
	rest, ok := trimFenceIndent(line)
	if !ok {
		return false
	}
	count := len(rest) - len(strings.TrimLeft(rest, "`"))
	return count >= n && strings.TrimSpace(rest[count:]) == ""
}

// trimFenceIndent strips up to three leading spaces.
func trimFenceIndent(line string) (string, bool) {
	rest := strings.TrimLeft(line, " ")
	return rest, len(line)-len(rest) <= 3
}

// replaceBlocks runs one extraction pass.
func replaceBlocks(re *regexp2.Regexp, text string, save regexp2.MatchEvaluator) string {
	out, err := re.ReplaceFunc(text, save, -1, -1)
	if err != nil {
		return text
	}
	return out
}

// RestoreBlocks replaces every marker in text with its stored fragment in a
// single left-to-right scan. Markers inside a fragment are expanded as well;
// a fragment can only refer to fragments stored before it.
//
// Markers with no stored fragment are left verbatim and their indices
// returned in missing, in order of appearance.
func RestoreBlocks(text string, blocks *store.List) (restored string, missing []int) {
	if !strings.Contains(text, "~K") {
		return text, nil
	}

	restored = markerPattern.ReplaceAllStringFunc(text, func(marker string) string {
		return expandMarker(marker, blocks.Len(), blocks, &missing)
	})
	return restored, missing
}

// expandMarker resolves one marker whose index must be below limit.
func expandMarker(marker string, limit int, blocks *store.List, missing *[]int) string {
	index, err := strconv.Atoi(marker[2 : len(marker)-1])
	if err != nil {
		return marker
	}

	fragment, ok := blocks.Fetch(index)
	if !ok || index >= limit {
		*missing = append(*missing, index)
		return marker
	}

	if !strings.Contains(fragment, "~K") {
		return fragment
	}
	return markerPattern.ReplaceAllStringFunc(fragment, func(inner string) string {
		return expandMarker(inner, index, blocks, missing)
	})
}

// Restore substitutes markers and then undoes sentinel escaping.
// Stored fragments were captured from escaped text, so one Unescape over the
// combined result inverts every escape exactly once.
func Restore(text string, blocks *store.List) string {
	text, _ = RestoreBlocks(text, blocks)
	return Unescape(text)
}
