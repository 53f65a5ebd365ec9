package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// markdownFlags holds goldmark and highlighting overrides.
// Bool overrides are only applied when the flag was set explicitly.
type markdownFlags struct {
	raw         bool   // skip goldmark, keep markdown text
	hardWraps   bool   // --hard-wraps
	typographer bool   // --typographer
	unsafe      bool   // --unsafe
	style       string // chroma style
	noHighlight bool   // disable chroma
	noMeta      bool   // keep front matter in the text
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common     commonFlags
	markdown   markdownFlags
	output     string
	workers    int
	standalone bool
	title      string
	css        string // style name or CSS file path
	noCSS      bool
	assetPath  string
	set        map[string]bool // flag names given on the command line
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addMarkdownFlags adds grammar stage flags to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.BoolVar(&f.raw, "raw", false, "skip markdown conversion (isolate and restore HTML blocks only)")
	fs.BoolVar(&f.hardWraps, "hard-wraps", false, "render newlines as <br>")
	fs.BoolVar(&f.typographer, "typographer", false, "smart quotes and dashes")
	fs.BoolVar(&f.unsafe, "unsafe", false, "let goldmark emit raw HTML it would otherwise omit")
	fs.StringVarP(&f.style, "style", "s", "", "chroma style for code blocks")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable code highlighting")
	fs.BoolVar(&f.noMeta, "no-front-matter", false, "keep front matter in the text")
}

// newRenderFlagSet creates the render FlagSet bound to f.
func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(cmdRender, flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.standalone, "standalone", false, "wrap output in a full HTML5 document")
	fs.StringVar(&f.title, "title", "", "document title for --standalone (\"\" = front matter or first heading)")

	// Stylesheet flags
	fs.StringVar(&f.css, "css", "", "stylesheet for --standalone: style name or CSS file path")
	fs.BoolVar(&f.noCSS, "no-css", false, "omit the page stylesheet")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with styles/{name}.css overrides")

	addCommonFlags(fs, &f.common)
	addMarkdownFlags(fs, &f.markdown)

	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{set: map[string]bool{}}
	fs := newRenderFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printRenderUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	return f, fs.Args(), nil
}

// newCommonFlagSet creates a FlagSet holding only the common flags.
func newCommonFlagSet(name string, f *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	addCommonFlags(fs, f)
	return fs
}

// parseCommonFlags parses flags for commands that only take common flags.
func parseCommonFlags(name string, args []string, stderr io.Writer, usage func(io.Writer)) (*commonFlags, []string, error) {
	f := &commonFlags{}
	fs := newCommonFlagSet(name, f)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
