package hmarkdown

import (
	"sync"

	"github.com/alnah/go-hmarkdown/internal/hooks"
	"github.com/alnah/go-hmarkdown/internal/pipeline"
	"github.com/alnah/go-hmarkdown/internal/store"
)

// Stages run by every render.
const (
	StageBefore  = "before"
	StageCleaned = "cleaned"
	StageAfter   = "after"
)

// Public names for the pipeline building blocks.
type (
	// Hooks is the named, ordered hook registry of an Engine.
	Hooks = hooks.Registry
	// Hook transforms text. Hooks should be pure.
	Hook = hooks.Hook
	// BlockStore holds fragments set aside during one render.
	BlockStore = store.List
	// HashStore maps string keys to values in first-insertion order.
	HashStore = store.Hash
	// Transformer is the grammar stage.
	Transformer = pipeline.Transformer
	// TransformFunc adapts a function to Transformer.
	TransformFunc = pipeline.TransformFunc
	// GoldmarkOptions configures the goldmark grammar stage.
	GoldmarkOptions = pipeline.GoldmarkOptions
)

// Result is the outcome of Engine.Process.
type Result struct {
	// Output is the rendered text.
	Output string
	// Blocks is the number of raw HTML fragments that were set aside.
	Blocks int
	// Missing lists marker indices that had no stored fragment, in order of
	// appearance. Such markers are left in Output verbatim.
	Missing []int
}

// Engine runs the render pipeline. It is safe for concurrent use; renders
// on the same Engine are serialized.
type Engine struct {
	mu          sync.Mutex
	hooks       *hooks.Registry
	meta        *store.Hash
	transformer pipeline.Transformer
}

// NewEngine creates an Engine. Without options the grammar stage is the
// identity, so only block isolation and escaping take effect.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		hooks:       hooks.NewRegistry(StageBefore, StageCleaned, StageAfter),
		meta:        store.NewHash(),
		transformer: pipeline.Identity,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Render runs the full pipeline over text.
func (e *Engine) Render(text string) string {
	return e.Process(text).Output
}

// ToHTML is an alias for Render.
func (e *Engine) ToHTML(text string) string {
	return e.Render(text)
}

// Process runs the full pipeline and reports what happened to raw blocks.
// Meta is cleared before the before hooks run.
func (e *Engine) Process(text string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.meta.Reset()
	blocks := store.NewList()

	text = e.hooks.Run(StageBefore, text)
	text = pipeline.Clean(text)
	text = e.hooks.Run(StageCleaned, text)
	text = pipeline.ExtractBlocks(text+"\n\n", blocks)
	text = e.transformer.Transform(text)

	text, missing := pipeline.RestoreBlocks(text, blocks)
	text = pipeline.Unescape(text)
	text = e.hooks.Run(StageAfter, text)

	return Result{
		Output:  text,
		Blocks:  blocks.Len(),
		Missing: missing,
	}
}

// Hooks returns the engine's hook registry.
func (e *Engine) Hooks() *Hooks {
	return e.hooks
}

// Meta returns the keyed store filled by hooks during the last render, such
// as front matter entries. Read it between renders.
func (e *Engine) Meta() *HashStore {
	return e.meta
}

// Transformer returns the engine's grammar stage.
func (e *Engine) Transformer() Transformer {
	return e.transformer
}
