package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hmarkdown <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render markdown files to HTML")
	fmt.Fprintln(w, "  clean      Show input as the markdown stage receives it")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'hmarkdown help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hmarkdown render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown files to HTML. Raw HTML blocks pass through untouched.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, directory, or - for stdin")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --standalone          Wrap output in a full HTML5 document")
	fmt.Fprintln(w, "      --title <s>           Document title (\"\" = front matter, then H1)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "      --raw                 Skip markdown conversion")
	fmt.Fprintln(w, "      --hard-wraps          Render newlines as <br>")
	fmt.Fprintln(w, "      --typographer         Smart quotes and dashes")
	fmt.Fprintln(w, "      --unsafe              Allow raw inline HTML")
	fmt.Fprintln(w, "      --no-front-matter     Keep YAML front matter in the text")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Stylesheet (--standalone):")
	fmt.Fprintln(w, "      --css <name|path>     Built-in style (default, minimal) or CSS file")
	fmt.Fprintln(w, "      --no-css              Omit the page stylesheet")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/{name}.css overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Code Highlighting:")
	fmt.Fprintln(w, "  -s, --style <name>        Chroma style (default: github)")
	fmt.Fprintln(w, "      --no-highlight        Disable highlighting")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  HMARKDOWN_CONFIG, HMARKDOWN_INPUT_DIR, HMARKDOWN_OUTPUT_DIR,")
	fmt.Fprintln(w, "  HMARKDOWN_TRANSFORM, HMARKDOWN_HIGHLIGHT_STYLE, HMARKDOWN_WORKERS")
}

// printCleanUsage prints usage for the clean command.
func printCleanUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hmarkdown clean [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print input escaped and normalized. Reads stdin without input or with -.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -b, --blocks              Replace raw HTML blocks with markers,")
	fmt.Fprintln(w, "                            listing fragments on stderr")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hmarkdown config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Do not warn about unknown variables")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case cmdRender:
		printRenderUsage(env.Stdout)
	case cmdClean:
		printCleanUsage(env.Stdout)
	case cmdConfig:
		printConfigUsage(env.Stdout)
	case cmdCompletion:
		printCompletionUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: hmarkdown version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: hmarkdown help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
