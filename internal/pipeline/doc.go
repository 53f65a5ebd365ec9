// Package pipeline implements the text stages of a render.
//
// Stages, in render order:
//   - Clean: escape the reserved "~" and "$" characters, normalize line
//     endings, expand tabs and blank out whitespace-only lines
//   - ExtractBlocks: move raw block-level HTML into a store.List and leave
//     "~K<n>K" markers in its place
//   - Transformer: the grammar stage (Identity by default, or goldmark)
//   - Restore: put stored fragments back and undo the escaping
//
// The package also carries the optional pieces built around those stages:
// front matter extraction, chroma highlighting for fenced code and the
// standalone HTML5 document wrapper.
//
// Every stage is a total function over text. None of them return errors;
// inputs they cannot handle pass through unchanged.
package pipeline
