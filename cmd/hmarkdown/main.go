package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(maxprocsLogger(env.Stderr, hasVerboseFlag(os.Args[1:]))))

	os.Exit(runMain(os.Args, env))
}

// maxprocsLogger routes automaxprocs messages to w when verbose, else drops them.
func maxprocsLogger(w io.Writer, verbose bool) func(string, ...interface{}) {
	if !verbose {
		return func(string, ...interface{}) {}
	}
	return func(format string, args ...interface{}) {
		fmt.Fprintf(w, format+"\n", args...)
	}
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// runMain dispatches the command in args and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]

	// A markdown path or "-" as first argument implies "render".
	if !isCommand(cmd) && (looksLikeMarkdown(cmd) || cmd == stdinPath) {
		cmd, rest = cmdRender, args[1:]
	}

	var err error
	switch cmd {
	case cmdRender:
		ctx, stop := notifyContext(env.Context())
		defer stop()
		err = runRenderCmd(ctx, rest, env)
	case cmdClean:
		err = runCleanCmd(rest, env)
	case cmdConfig:
		err = runConfigCmd(rest, env)
	case cmdCompletion:
		err = runCompletion(rest, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "go-hmarkdown %s\n", Version)
	case cmdHelp, "-h", "--help":
		runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err.Error()+hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// Command names.
const (
	cmdRender     = "render"
	cmdClean      = "clean"
	cmdConfig     = "config"
	cmdCompletion = "completion"
	cmdVersion    = "version"
	cmdHelp       = "help"
)

// isCommand reports whether name is a known command.
func isCommand(name string) bool {
	switch name {
	case cmdRender, cmdClean, cmdConfig, cmdCompletion, cmdVersion, cmdHelp:
		return true
	}
	return false
}
