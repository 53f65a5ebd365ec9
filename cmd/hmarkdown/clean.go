package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	hmarkdown "github.com/alnah/go-hmarkdown"
	flag "github.com/spf13/pflag"
)

// cleanFlags holds flags for the clean command.
type cleanFlags struct {
	blocks bool // also isolate raw HTML blocks
}

// newCleanFlagSet creates the clean FlagSet bound to f.
func newCleanFlagSet(f *cleanFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(cmdClean, flag.ContinueOnError)
	fs.BoolVarP(&f.blocks, "blocks", "b", false, "replace raw HTML blocks with markers")
	return fs
}

// runCleanCmd prints input the way the grammar stage receives it:
// escaped, normalized and, with --blocks, with HTML blocks replaced by
// markers. Fragments are listed on stderr.
func runCleanCmd(args []string, env *Environment) error {
	f := &cleanFlags{}
	fs := newCleanFlagSet(f)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printCleanUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return usageError(err)
	}

	positional := fs.Args()
	if len(positional) > 1 {
		return fmt.Errorf("%w: clean takes one input, got %d", ErrUsage, len(positional))
	}

	input := stdinPath
	if len(positional) == 1 {
		input = positional[0]
	}

	content, err := readInput(input, env.Stdin)
	if err != nil {
		return err
	}

	text := hmarkdown.Clean(content)
	if !f.blocks {
		_, err = io.WriteString(env.Stdout, text)
		return err
	}

	blocks := hmarkdown.NewBlockStore()
	text = hmarkdown.ExtractBlocks(text+"\n\n", blocks)
	if _, err := io.WriteString(env.Stdout, text); err != nil {
		return err
	}
	for i, fragment := range blocks.Fragments() {
		fmt.Fprintf(env.Stderr, "~K%dK: %q\n", i, fragment)
	}
	return nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- user-provided input
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	return string(data), nil
}
