package hmarkdown

import "github.com/alnah/go-hmarkdown/internal/pipeline"

// Option configures an Engine.
type Option func(*Engine)

// WithTransformer sets the grammar stage. A nil t keeps the current one.
func WithTransformer(t Transformer) Option {
	return func(e *Engine) {
		if t != nil {
			e.transformer = t
		}
	}
}

// WithTransformFunc sets the grammar stage from a plain function.
func WithTransformFunc(fn func(string) string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.transformer = pipeline.TransformFunc(fn)
		}
	}
}

// WithGoldmark uses goldmark as the grammar stage.
func WithGoldmark(opts GoldmarkOptions) Option {
	return func(e *Engine) {
		e.transformer = pipeline.NewGoldmarkTransformer(opts)
	}
}

// WithFrontMatter registers a before hook that strips a leading YAML front
// matter block and records its top-level entries in Meta.
func WithFrontMatter() Option {
	return func(e *Engine) {
		e.hooks.Add(StageBefore, pipeline.FrontMatterHook(e.meta.Set))
	}
}

// WithHook registers fn on stage.
func WithHook(stage string, fn Hook) Option {
	return func(e *Engine) {
		e.hooks.Add(stage, fn)
	}
}
