package main

// Notes:
// - End-to-end tests go through runMain with temp directories and the real
//   engine pool; goldmark output is checked by substring since attribute
//   order and heading IDs belong to goldmark.
// - Environment variables are not set here; env precedence is covered in
//   env_config_test.go.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	hmarkdown "github.com/alnah/go-hmarkdown"
	"github.com/alnah/go-hmarkdown/internal/assets"
	"github.com/alnah/go-hmarkdown/internal/config"
)

// ---------------------------------------------------------------------------
// TestRender_EndToEnd - Full CLI renders
// ---------------------------------------------------------------------------

func TestRender_SingleFile(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"doc.md": "# Hello\n\n<div class=\"note\">\n*raw*\n</div>\n\nCosts $5 ~ approx\n",
	})
	input := filepath.Join(dir, "doc.md")

	env, stdout, stderr := testEnv("")
	if code := runMain([]string{"hmarkdown", "render", input}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}

	out := readFile(t, filepath.Join(dir, "doc.html"))
	for _, want := range []string{
		"Hello</h1>",
		"<div class=\"note\">\n*raw*\n</div>",
		"Costs $5 ~ approx",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "~T") || strings.Contains(out, "~D") || strings.Contains(out, "~K") {
		t.Errorf("output leaks internal escapes:\n%s", out)
	}
	if !strings.Contains(stdout.String(), "Created") {
		t.Errorf("stdout = %q, want Created line", stdout)
	}
}

func TestRender_ImplicitCommand(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"doc.md": "*x*\n"})

	env, _, stderr := testEnv("")
	if code := runMain([]string{"hmarkdown", filepath.Join(dir, "doc.md")}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}
	if out := readFile(t, filepath.Join(dir, "doc.html")); !strings.Contains(out, "<em>x</em>") {
		t.Errorf("output = %q, want <em>x</em>", out)
	}
}

func TestRender_Directory(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"a.md":      "# A\n",
		"sub/b.md":  "# B\n",
		"notes.txt": "skip",
	})
	outDir := filepath.Join(t.TempDir(), "site")

	env, stdout, stderr := testEnv("")
	code := runMain([]string{"hmarkdown", "render", dir, "-o", outDir, "--workers", "2"}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}

	if out := readFile(t, filepath.Join(outDir, "a.html")); !strings.Contains(out, "A</h1>") {
		t.Errorf("a.html = %q", out)
	}
	if out := readFile(t, filepath.Join(outDir, "sub", "b.html")); !strings.Contains(out, "B</h1>") {
		t.Errorf("sub/b.html = %q", out)
	}
	if _, err := os.Stat(filepath.Join(outDir, "notes.html")); !os.IsNotExist(err) {
		t.Error("non-markdown file should not be rendered")
	}
	if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("stdout = %q, want summary", stdout)
	}
}

func TestRender_Verbose(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"doc.md": "<div>x</div>\n\n# T\n"})

	env, stdout, stderr := testEnv("")
	code := runMain([]string{"hmarkdown", "render", filepath.Join(dir, "doc.md"), "-v", "-w", "1"}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}

	if !strings.Contains(stderr.String(), "Pool size: 1") {
		t.Errorf("stderr = %q, want pool size", stderr)
	}
	if !strings.Contains(stdout.String(), "(1 blocks,") {
		t.Errorf("stdout = %q, want block count", stdout)
	}
	// testEnv freezes the clock.
	if !strings.Contains(stdout.String(), "Total: 0s") {
		t.Errorf("stdout = %q, want total", stdout)
	}
}

func TestRender_StandaloneWithFrontMatter(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"guide.md": "---\ntitle: User Guide\n---\n# Getting started\n\n```go\nfmt.Println(1)\n```\n",
	})

	env, _, stderr := testEnv("")
	code := runMain([]string{"hmarkdown", "render", filepath.Join(dir, "guide.md"), "--standalone"}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}

	out := readFile(t, filepath.Join(dir, "guide.html"))
	for _, want := range []string{"<!DOCTYPE html>", "<title>User Guide</title>", "<style>", ".chroma", "Getting started</h1>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "title: User Guide") {
		t.Error("front matter should be stripped from the body")
	}
}

func TestRender_StandaloneTitleFlag(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"doc.md": "# Heading\n"})

	env, _, stderr := testEnv("")
	code := runMain([]string{"hmarkdown", "render", filepath.Join(dir, "doc.md"), "--standalone", "--title", "Custom", "--no-highlight", "--no-css"}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}

	out := readFile(t, filepath.Join(dir, "doc.html"))
	if !strings.Contains(out, "<title>Custom</title>") {
		t.Errorf("output missing custom title:\n%s", out)
	}
	if strings.Contains(out, "<style>") {
		t.Error("--no-highlight --no-css should omit the stylesheet")
	}
}

func TestRender_Stylesheets(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"doc.md":                "# Doc\n",
		"site.css":              "h1 { color: teal; }",
		"theme/styles/corp.css": "h1 { color: navy; }",
	})

	tests := []struct {
		name string
		out  string
		args []string
		want string
	}{
		{"css file path", "path.html", []string{"--css", filepath.Join(dir, "site.css")}, "h1 { color: teal; }"},
		{"asset path style", "named.html", []string{"--css", "corp", "--asset-path", filepath.Join(dir, "theme")}, "h1 { color: navy; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := filepath.Join(dir, "out", tt.out)
			args := append([]string{"hmarkdown", "render", filepath.Join(dir, "doc.md"), "--standalone", "--no-highlight", "-o", out}, tt.args...)

			env, _, stderr := testEnv("")
			if code := runMain(args, env); code != ExitSuccess {
				t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
			}
			if got := readFile(t, out); !strings.Contains(got, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestRender_Raw(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"doc.md": "*x*\n"})

	env, _, stderr := testEnv("")
	if code := runMain([]string{"hmarkdown", "render", filepath.Join(dir, "doc.md"), "--raw"}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}

	if out := readFile(t, filepath.Join(dir, "doc.html")); out != "*x*\n\n\n" {
		t.Errorf("output = %q, want %q", out, "*x*\n\n\n")
	}
}

func TestRender_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"doc.md":    "*x*\n",
		"site.yaml": "render:\n  transform: none\n",
	})

	env, _, stderr := testEnv("")
	code := runMain([]string{"hmarkdown", "render", filepath.Join(dir, "doc.md"), "--config", filepath.Join(dir, "site.yaml")}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}

	if out := readFile(t, filepath.Join(dir, "doc.html")); strings.Contains(out, "<em>") {
		t.Errorf("transform: none should keep markdown, got %q", out)
	}
}

func TestRender_RebasesRelativePaths(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"src/doc.md": "![logo](img/logo.png)\n\n[home](https://example.com)\n",
	})
	outDir := filepath.Join(dir, "out")

	env, _, stderr := testEnv("")
	code := runMain([]string{"hmarkdown", "render", filepath.Join(dir, "src", "doc.md"), "-o", outDir}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}

	out := readFile(t, filepath.Join(outDir, "doc.html"))
	if !strings.Contains(out, `src="../src/img/logo.png"`) {
		t.Errorf("image path not rebased:\n%s", out)
	}
	if !strings.Contains(out, `href="https://example.com"`) {
		t.Errorf("absolute URL should be kept:\n%s", out)
	}
}

func TestRender_Stdin(t *testing.T) {
	t.Parallel()

	t.Run("to stdout", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv("**bold** and <span>$</span>\n")
		if code := runMain([]string{"hmarkdown", "render", "-"}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
		}
		if !strings.Contains(stdout.String(), "<strong>bold</strong>") {
			t.Errorf("stdout = %q, want <strong>bold</strong>", stdout)
		}
	})

	t.Run("to file", func(t *testing.T) {
		t.Parallel()

		target := filepath.Join(t.TempDir(), "nested", "page.html")
		env, stdout, stderr := testEnv("# Piped\n")
		if code := runMain([]string{"hmarkdown", "render", "-", "-o", target}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
		}
		if stdout.Len() != 0 {
			t.Errorf("stdout = %q, want empty", stdout)
		}
		if out := readFile(t, target); !strings.Contains(out, "Piped</h1>") {
			t.Errorf("page.html = %q", out)
		}
	})

	t.Run("to directory named like a page", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "site.html")
		if err := os.Mkdir(dir, 0o750); err != nil {
			t.Fatal(err)
		}
		env, _, stderr := testEnv("# Piped\n")
		if code := runMain([]string{"hmarkdown", "render", "-", "-o", dir}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
		}
		if out := readFile(t, filepath.Join(dir, "stdin.html")); !strings.Contains(out, "Piped</h1>") {
			t.Errorf("stdin.html = %q", out)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRender_Errors - Exit codes and hints
// ---------------------------------------------------------------------------

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"doc.md":      "# Doc\n",
		"doc.txt":     "text",
		"empty/x.txt": "text",
		"bad.yaml":    "render:\n  transform: pandoc\n",
	})

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{
			name:       "negative workers",
			args:       []string{"render", filepath.Join(dir, "doc.md"), "--workers", "-1"},
			wantCode:   ExitUsage,
			wantStderr: "invalid worker count",
		},
		{
			name:       "too many workers",
			args:       []string{"render", filepath.Join(dir, "doc.md"), "-w", "1000"},
			wantCode:   ExitUsage,
			wantStderr: "maximum",
		},
		{
			name:       "two inputs",
			args:       []string{"render", filepath.Join(dir, "doc.md"), filepath.Join(dir, "doc.md")},
			wantCode:   ExitUsage,
			wantStderr: "one input",
		},
		{
			name:       "wrong extension",
			args:       []string{"render", filepath.Join(dir, "doc.txt")},
			wantCode:   ExitUsage,
			wantStderr: ".md or .markdown",
		},
		{
			name:       "no markdown in directory",
			args:       []string{"render", filepath.Join(dir, "empty")},
			wantCode:   ExitIO,
			wantStderr: "hint:",
		},
		{
			name:       "unknown style",
			args:       []string{"render", filepath.Join(dir, "doc.md"), "--style", "no-such-style"},
			wantCode:   ExitUsage,
			wantStderr: "available:",
		},
		{
			name:       "unknown stylesheet",
			args:       []string{"render", filepath.Join(dir, "doc.md"), "--standalone", "--css", "no-such-sheet"},
			wantCode:   ExitUsage,
			wantStderr: "--css ./style.css",
		},
		{
			name:       "missing asset path",
			args:       []string{"render", filepath.Join(dir, "doc.md"), "--standalone", "--asset-path", filepath.Join(dir, "missing")},
			wantCode:   ExitUsage,
			wantStderr: "invalid base path",
		},
		{
			name:       "invalid config",
			args:       []string{"render", filepath.Join(dir, "doc.md"), "--config", filepath.Join(dir, "bad.yaml")},
			wantCode:   ExitUsage,
			wantStderr: "goldmark",
		},
		{
			name:       "missing config",
			args:       []string{"render", filepath.Join(dir, "doc.md"), "--config", filepath.Join(dir, "nope.yaml")},
			wantCode:   ExitUsage,
			wantStderr: "--config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := testEnv("")
			code := runMain(append([]string{"hmarkdown"}, tt.args...), env)
			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI overrides config
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("explicit flags win", func(t *testing.T) {
		t.Parallel()

		flags, _, err := parseRenderFlags([]string{
			"--standalone", "--title", "T", "--raw", "--hard-wraps",
			"--typographer", "--unsafe", "--style", "monokai", "--no-highlight", "--no-front-matter",
			"--css", "minimal", "--asset-path", "theme",
		}, &strings.Builder{})
		if err != nil {
			t.Fatalf("parseRenderFlags() error = %v", err)
		}

		cfg := config.DefaultConfig()
		mergeFlags(flags, cfg)

		if !cfg.Output.Standalone || cfg.Output.Title != "T" {
			t.Errorf("Output = %+v", cfg.Output)
		}
		if cfg.Render.UsesGoldmark() {
			t.Error("--raw should select transform none")
		}
		if !cfg.Render.HardWraps || !cfg.Render.Typographer || !cfg.Render.Unsafe {
			t.Errorf("Render = %+v", cfg.Render)
		}
		if cfg.Render.Highlight.Enabled || cfg.Render.Highlight.Style != "monokai" {
			t.Errorf("Highlight = %+v", cfg.Render.Highlight)
		}
		if cfg.Render.FrontMatter {
			t.Error("--no-front-matter should disable front matter")
		}
		if cfg.Output.CSS != "minimal" || cfg.Output.AssetPath != "theme" {
			t.Errorf("Output = %+v", cfg.Output)
		}
	})

	t.Run("no-css clears stylesheet", func(t *testing.T) {
		t.Parallel()

		flags, _, err := parseRenderFlags([]string{"--no-css"}, &strings.Builder{})
		if err != nil {
			t.Fatalf("parseRenderFlags() error = %v", err)
		}

		cfg := config.DefaultConfig()
		mergeFlags(flags, cfg)

		if cfg.Output.CSS != "" {
			t.Errorf("Output.CSS = %q, want empty", cfg.Output.CSS)
		}
	})

	t.Run("absent flags keep config", func(t *testing.T) {
		t.Parallel()

		flags, _, err := parseRenderFlags(nil, &strings.Builder{})
		if err != nil {
			t.Fatalf("parseRenderFlags() error = %v", err)
		}

		cfg := config.DefaultConfig()
		cfg.Output.Standalone = true
		cfg.Render.HardWraps = true
		mergeFlags(flags, cfg)

		if !cfg.Output.Standalone || !cfg.Render.HardWraps {
			t.Errorf("config values overwritten by absent flags: %+v", cfg)
		}
	})

	t.Run("explicit false overrides config", func(t *testing.T) {
		t.Parallel()

		flags, _, err := parseRenderFlags([]string{"--standalone=false"}, &strings.Builder{})
		if err != nil {
			t.Fatalf("parseRenderFlags() error = %v", err)
		}

		cfg := config.DefaultConfig()
		cfg.Output.Standalone = true
		mergeFlags(flags, cfg)

		if cfg.Output.Standalone {
			t.Error("--standalone=false should override config")
		}
	})
}

// ---------------------------------------------------------------------------
// TestEngineOptions / TestBuildRenderParams / TestRenderDocument
// ---------------------------------------------------------------------------

func TestEngineOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Config)
		input  string
		want   string
	}{
		{
			name:   "goldmark with front matter",
			modify: func(*config.Config) {},
			input:  "---\na: 1\n---\n*x*\n",
			want:   "<p><em>x</em></p>\n",
		},
		{
			name: "identity without front matter",
			modify: func(c *config.Config) {
				c.Render.Transform = config.TransformNone
				c.Render.FrontMatter = false
			},
			input: "*x*",
			want:  "*x*\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.modify(cfg)

			got := hmarkdown.NewEngine(engineOptions(cfg)...).Render(tt.input)
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildRenderParams(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	params, err := buildRenderParams(cfg)
	if err != nil {
		t.Fatalf("buildRenderParams() error = %v", err)
	}
	if params.css != "" {
		t.Error("fragment output should not carry a stylesheet")
	}

	cfg.Output.Standalone = true
	params, err = buildRenderParams(cfg)
	if err != nil {
		t.Fatalf("buildRenderParams() error = %v", err)
	}
	if !strings.Contains(params.css, ".chroma") {
		t.Errorf("standalone css = %q, want chroma rules", params.css)
	}
	defaultSheet, err := assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if !strings.HasPrefix(params.css, strings.TrimSpace(defaultSheet)) {
		t.Error("standalone css should start with the page stylesheet")
	}

	cfg.Output.CSS = "no-such-sheet"
	if _, err := buildRenderParams(cfg); !errors.Is(err, assets.ErrStyleNotFound) {
		t.Errorf("error = %v, want ErrStyleNotFound", err)
	}
	cfg.Output.CSS = config.DefaultCSS

	cfg.Render.Highlight.Style = "no-such-style"
	if _, err := buildRenderParams(cfg); !errors.Is(err, hmarkdown.ErrUnknownHighlightStyle) {
		t.Errorf("error = %v, want ErrUnknownHighlightStyle", err)
	}
}

func TestRenderDocument_TitlePrecedence(t *testing.T) {
	t.Parallel()

	const doc = "---\ntitle: From Meta\n---\n# From Heading\n"

	tests := []struct {
		name        string
		configTitle string
		frontMatter bool
		input       string
		wantTitle   string
	}{
		{"config title wins", "From Config", true, doc, "<title>From Config</title>"},
		{"front matter title", "", true, doc, "<title>From Meta</title>"},
		{"numeric front matter title", "", true, "---\ntitle: 2024\n---\n# From Heading\n", "<title>2024</title>"},
		{"boolean front matter title", "", true, "---\ntitle: true\n---\nplain\n", "<title>true</title>"},
		{"list front matter title falls back", "", true, "---\ntitle: [a, b]\n---\n# From Heading\n", "<title>From Heading</title>"},
		{"first heading", "", true, "# From Heading\n", "<title>From Heading</title>"},
		{"default title", "", false, "plain", "<title>Document</title>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.Output.Standalone = true
			cfg.Output.Title = tt.configTitle
			cfg.Render.FrontMatter = tt.frontMatter
			params := &renderParams{cfg: cfg}

			engine := hmarkdown.NewEngine(engineOptions(cfg)...)
			out, _ := renderDocument(engine, tt.input, params)
			if !strings.Contains(out, tt.wantTitle) {
				t.Errorf("output missing %q:\n%s", tt.wantTitle, out)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveInputPath / TestResolveOutputDir
// ---------------------------------------------------------------------------

func TestResolveInputPath(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	if _, err := resolveInputPath(nil, cfg); !errors.Is(err, ErrNoInput) {
		t.Errorf("error = %v, want ErrNoInput", err)
	}

	cfg.Input.DefaultDir = "/docs"
	if got, _ := resolveInputPath(nil, cfg); got != "/docs" {
		t.Errorf("resolveInputPath() = %q, want /docs", got)
	}
	if got, _ := resolveInputPath([]string{"a.md"}, cfg); got != "a.md" {
		t.Errorf("resolveInputPath() = %q, want a.md", got)
	}
}

func TestResolveOutputDir(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Output.DefaultDir = "/site"

	if got := resolveOutputDir("", cfg); got != "/site" {
		t.Errorf("resolveOutputDir() = %q, want /site", got)
	}
	if got := resolveOutputDir("out", cfg); got != "out" {
		t.Errorf("resolveOutputDir() = %q, want out", got)
	}
}

// ---------------------------------------------------------------------------
// TestRenderStdin_CanceledContext
// ---------------------------------------------------------------------------

func TestRenderStdin_ClosedPool(t *testing.T) {
	t.Parallel()

	pool := hmarkdown.NewEnginePool(1)
	pool.Close()

	env, _, _ := testEnv("x")
	params := &renderParams{cfg: config.DefaultConfig()}
	err := renderStdin(context.Background(), pool, "", params, env)
	if !errors.Is(err, hmarkdown.ErrPoolClosed) {
		t.Errorf("error = %v, want ErrPoolClosed", err)
	}
}
