package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	hmarkdown "github.com/alnah/go-hmarkdown"
	"github.com/alnah/go-hmarkdown/internal/assets"
	"github.com/alnah/go-hmarkdown/internal/config"
	"github.com/alnah/go-hmarkdown/internal/fileutil"
	flag "github.com/spf13/pflag"
)

// stdinPath is the input argument that selects standard input.
const stdinPath = "-"

// Sentinel errors for CLI operations.
var (
	ErrUsage           = errors.New("invalid usage")
	ErrNoInput         = errors.New("no input specified")
	ErrNoMarkdownFiles = errors.New("no markdown files found")
	ErrReadMarkdown    = errors.New("failed to read markdown file")
	ErrWriteOutput     = errors.New("failed to write output")
)

// renderParams groups values shared across a batch.
type renderParams struct {
	cfg *config.Config
	css string // page and highlight stylesheets for standalone output
}

// runRenderCmd parses render flags and runs the render.
func runRenderCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return usageError(err)
	}
	return runRender(ctx, positional, flags, env)
}

// runRender orchestrates config resolution, discovery and the batch.
func runRender(ctx context.Context, positionalArgs []string, flags *renderFlags, env *Environment) error {
	if len(positionalArgs) > 1 {
		return fmt.Errorf("%w: render takes one input, got %d", ErrUsage, len(positionalArgs))
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := loadEffectiveConfig(flags.common.config, envCfg, env.Stderr, flags.common.quiet)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins), then re-check what changed
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	params, err := buildRenderParams(cfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := hmarkdown.ResolvePoolSize(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	pool := hmarkdown.NewEnginePool(poolSize, engineOptions(cfg)...)
	defer pool.Close()

	if inputPath == stdinPath {
		return renderStdin(ctx, pool, flags.output, params, env)
	}

	outputDir := resolveOutputDir(flags.output, cfg)
	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}

	start := env.Now()
	results := renderBatch(ctx, pool, files, params)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if flags.common.verbose {
		fmt.Fprintf(env.Stdout, "Total: %v\n", env.Now().Sub(start).Round(time.Millisecond))
	}
	if failedCount > 0 {
		return fmt.Errorf("%d render(s) failed", failedCount)
	}
	return nil
}

// loadEffectiveConfig resolves the config file (flag, then HMARKDOWN_CONFIG)
// and applies environment overrides on top of it.
func loadEffectiveConfig(configFlag string, envCfg *envConfig, stderr io.Writer, quiet bool) (*config.Config, error) {
	if !quiet {
		warnUnknownEnvVars(stderr)
	}

	name := configFlag
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
// Bool flags only apply when given, so a config "true" survives an absent flag.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.set["standalone"] {
		cfg.Output.Standalone = flags.standalone
	}
	if flags.title != "" {
		cfg.Output.Title = flags.title
	}
	if flags.css != "" {
		cfg.Output.CSS = flags.css
	}
	if flags.noCSS {
		cfg.Output.CSS = ""
	}
	if flags.assetPath != "" {
		cfg.Output.AssetPath = flags.assetPath
	}

	md := flags.markdown
	if md.raw {
		cfg.Render.Transform = config.TransformNone
	}
	if flags.set["hard-wraps"] {
		cfg.Render.HardWraps = md.hardWraps
	}
	if flags.set["typographer"] {
		cfg.Render.Typographer = md.typographer
	}
	if flags.set["unsafe"] {
		cfg.Render.Unsafe = md.unsafe
	}
	if md.style != "" {
		cfg.Render.Highlight.Style = md.style
	}
	if md.noHighlight {
		cfg.Render.Highlight.Enabled = false
	}
	if md.noMeta {
		cfg.Render.FrontMatter = false
	}
}

// engineOptions maps the render section onto engine options.
func engineOptions(cfg *config.Config) []hmarkdown.Option {
	var opts []hmarkdown.Option
	if cfg.Render.UsesGoldmark() {
		opts = append(opts, hmarkdown.WithGoldmark(cfg.Render.GoldmarkOptions()))
	}
	if cfg.Render.FrontMatter {
		opts = append(opts, hmarkdown.WithFrontMatter())
	}
	return opts
}

// buildRenderParams computes values shared by every file of a batch.
// Standalone output carries the page stylesheet followed by the chroma rules.
func buildRenderParams(cfg *config.Config) (*renderParams, error) {
	params := &renderParams{cfg: cfg}
	if !cfg.Output.Standalone {
		return params, nil
	}

	resolver, err := assets.NewAssetResolver(cfg.Output.AssetPath)
	if err != nil {
		return nil, fmt.Errorf("loading styles: %w", err)
	}
	page, err := assets.ResolveStyle(cfg.Output.CSS, resolver)
	if err != nil {
		return nil, fmt.Errorf("loading styles: %w", err)
	}

	var sheets []string
	if page != "" {
		sheets = append(sheets, strings.TrimSpace(page))
	}
	if cfg.Render.UsesGoldmark() && cfg.Render.Highlight.Enabled {
		highlight, err := hmarkdown.HighlightCSS(cfg.Render.Highlight.Style)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, highlight)
	}
	params.css = strings.Join(sheets, "\n\n")
	return params, nil
}

// renderDocument renders content and wraps it when standalone output is on.
// The title is the configured one, then front matter "title", then the
// first heading. The count of isolated HTML blocks is returned alongside.
func renderDocument(engine *hmarkdown.Engine, content string, params *renderParams) (string, int) {
	res := engine.Process(content)
	if !params.cfg.Output.Standalone {
		return res.Output, res.Blocks
	}

	title := params.cfg.Output.Title
	if title == "" {
		title = metaTitle(engine)
	}
	return hmarkdown.Standalone(res.Output, title, params.css), res.Blocks
}

// metaTitle returns front matter "title" as text. Scalars of any kind are
// formatted; maps, lists and null yield "".
func metaTitle(engine *hmarkdown.Engine) string {
	v, ok := engine.Meta().Get("title")
	if !ok {
		return ""
	}
	switch v := v.(type) {
	case string:
		return v
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// resolveInputPath picks the positional input, then input.defaultDir.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir picks the -o flag, then output.defaultDir.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// renderStdin renders standard input to -o or standard output.
func renderStdin(ctx context.Context, pool Pool, output string, params *renderParams, env *Environment) error {
	content, err := readInput(stdinPath, env.Stdin)
	if err != nil {
		return err
	}

	engine, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	out, _ := renderDocument(engine, content, params)
	pool.Release(engine)

	if output == "" {
		_, err := io.WriteString(env.Stdout, out)
		return err
	}

	// -o names a file only when it ends in .html and is not a directory.
	if fileutil.DirExists(output) || !strings.HasSuffix(strings.ToLower(output), htmlExtension) {
		output = filepath.Join(output, "stdin"+htmlExtension)
	}
	if err := writeOutput(output, out); err != nil {
		return err
	}
	return nil
}

// writeOutput creates the parent directory and writes content atomically.
func writeOutput(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err)
	}
	// #nosec G306 -- HTML files are meant to be readable
	if err := fileutil.WriteFileAtomic(path, []byte(content), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// usageError marks flag parsing failures as usage errors.
func usageError(err error) error {
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
