// Package hmarkdown prepares markdown for a grammar stage without letting
// that stage touch the raw HTML an author wrote by hand.
//
// # Quick Start
//
// Render with the default engine (no grammar, block isolation only):
//
//	out := hmarkdown.Render("<div>kept</div>\n\nsome *text*")
//
// Or build an engine that converts markdown with goldmark:
//
//	engine := hmarkdown.NewEngine(
//	    hmarkdown.WithGoldmark(hmarkdown.GoldmarkOptions{Highlight: true}),
//	    hmarkdown.WithFrontMatter(),
//	)
//	html := engine.Render(source)
//	title := engine.Meta().GetString("title")
//
// # Render Pipeline
//
// Every render runs the same linear sequence:
//
//  1. "before" hooks
//  2. Clean: "~" becomes "~T", "$" becomes "~D", line endings become "\n",
//     tabs become two spaces, whitespace-only lines are emptied
//  3. "cleaned" hooks, which see escapes exactly as above
//  4. Two newlines are appended and raw block-level HTML is replaced by
//     "~K<n>K" markers, each on its own paragraph
//  5. The transformer runs once over the result
//  6. Markers are replaced by their stored fragments, then the escapes are
//     undone in one pass
//  7. "after" hooks
//
// No stage returns an error. A marker whose fragment does not exist is left
// in the output as-is; Process reports it in Result.Missing.
//
// # Hooks
//
// Stages are open: any name can be used with Hooks().Add, but only
// StageBefore, StageCleaned and StageAfter are run by the engine. Hooks in a
// stage run in registration order, so the hook added last wraps outermost.
// Hooks run while the engine is locked and must not call back into it.
//
// # Concurrency
//
// An Engine serializes its renders; each render owns a fresh block store.
// For parallel work use one engine per goroutine, or an EnginePool:
//
//	pool := hmarkdown.NewEnginePool(4, hmarkdown.WithGoldmark(hmarkdown.GoldmarkOptions{}))
//	defer pool.Close()
//
//	engine, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(engine)
package hmarkdown
