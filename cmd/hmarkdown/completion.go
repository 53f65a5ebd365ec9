package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alnah/go-hmarkdown/internal/assets"
	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags, e.g. "*.yaml,*.yml"
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	FilePattern string // glob for file arguments; empty = no file arguments
}

// completionMeta holds completion hints for flags.
// Names, types and descriptions come from the FlagSets.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
func flagCompletionMeta() map[string]completionMeta {
	return map[string]completionMeta{
		"config":     {FileGlob: "*.yaml,*.yml"},
		"css":        {Values: assets.NewEmbeddedLoader().Names()},
		"output":     {IsDir: true},
		"asset-path": {IsDir: true},
	}
}

// extractFlags converts a FlagSet into completion flag definitions.
func extractFlags(fs *flag.FlagSet) []flagDef {
	meta := flagCompletionMeta()
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if m, ok := meta[f.Name]; ok {
			switch {
			case len(m.Values) > 0:
				fd.Type = flagEnum
				fd.Values = m.Values
			case m.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = m.FileGlob
			case m.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	sort.Slice(flags, func(i, j int) bool { return flags[i].Long < flags[j].Long })
	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:        cmdRender,
			Desc:        "Render markdown files to HTML",
			Flags:       extractFlags(newRenderFlagSet(&renderFlags{})),
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:        cmdClean,
			Desc:        "Show input as the markdown stage receives it",
			Flags:       extractFlags(newCleanFlagSet(&cleanFlags{})),
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:  cmdConfig,
			Desc:  "Print the effective configuration",
			Flags: extractFlags(newCommonFlagSet(cmdConfig, &commonFlags{})),
		},
		{Name: cmdVersion, Desc: "Show version information"},
		{Name: cmdHelp, Desc: "Show help for a command"},
		{Name: cmdCompletion, Desc: "Generate shell completion script"},
	}
}

// GenerateCompletion writes a shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(getCommands())
	case ShellZsh:
		script = zshScript(getCommands())
	case ShellFish:
		script = fishScript(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: completion takes one shell, got %d", ErrUsage, len(args))
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// commandNames returns the space-separated command list.
func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// globs splits "*.a,*.b" into its patterns.
func globs(pattern string) []string {
	if pattern == "" {
		return nil
	}
	return strings.Split(pattern, ",")
}

// bashExtGlob turns "*.md,*.markdown" into a compgen -X filter.
func bashExtGlob(pattern string) string {
	var exts []string
	for _, g := range globs(pattern) {
		exts = append(exts, strings.TrimPrefix(g, "*."))
	}
	return "!*.@(" + strings.Join(exts, "|") + ")"
}

func bashScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# bash completion for hmarkdown\n\n")
	b.WriteString("_hmarkdown_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", commandNames(cmds))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		if c.Name == cmdCompletion {
			fmt.Fprintf(&b, "    %s)\n", c.Name)
			b.WriteString("        COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"${cur}\"))\n")
			b.WriteString("        ;;\n")
			continue
		}
		if c.Name == cmdHelp {
			fmt.Fprintf(&b, "    %s)\n", c.Name)
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", commandNames(cmds))
			b.WriteString("        ;;\n")
			continue
		}
		if len(c.Flags) == 0 && c.FilePattern == "" {
			continue
		}

		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        case \"${prev}\" in\n")
		for _, f := range c.Flags {
			opts := "--" + f.Long
			if f.Short != "" {
				opts = "-" + f.Short + "|" + opts
			}
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, "            %s)\n                COMPREPLY=($(compgen -W \"%s\" -f -- \"${cur}\"))\n                return\n                ;;\n",
					opts, strings.Join(f.Values, " "))
			case flagFile:
				fmt.Fprintf(&b, "            %s)\n                COMPREPLY=($(compgen -f -X '%s' -- \"${cur}\"))\n                return\n                ;;\n",
					opts, bashExtGlob(f.FileGlob))
			case flagDir:
				fmt.Fprintf(&b, "            %s)\n                COMPREPLY=($(compgen -d -- \"${cur}\"))\n                return\n                ;;\n", opts)
			}
		}
		b.WriteString("        esac\n")

		var words []string
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
		}
		b.WriteString("        if [[ \"${cur}\" == -* ]]; then\n")
		fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", strings.Join(words, " "))
		if c.FilePattern != "" {
			b.WriteString("        else\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '%s' -- \"${cur}\") $(compgen -d -- \"${cur}\"))\n", bashExtGlob(c.FilePattern))
		}
		b.WriteString("        fi\n")
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -F _hmarkdown_completions hmarkdown\n")
	return b.String()
}

// zshEscape escapes characters special inside _arguments specs.
func zshEscape(s string) string {
	return strings.NewReplacer("[", "\\[", "]", "\\]", ":", "\\:", "'", "'\\''").Replace(s)
}

func zshScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef hmarkdown\n\n")
	b.WriteString("_hmarkdown() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range cmds {
		switch {
		case c.Name == cmdCompletion:
			fmt.Fprintf(&b, "    %s)\n        _values 'shell' bash zsh fish\n        ;;\n", c.Name)
			continue
		case c.Name == cmdHelp:
			fmt.Fprintf(&b, "    %s)\n        _describe 'command' commands\n        ;;\n", c.Name)
			continue
		case len(c.Flags) == 0 && c.FilePattern == "":
			continue
		}

		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments \\\n")
		for _, f := range c.Flags {
			action := ""
			switch f.Type {
			case flagEnum:
				action = ":value:(" + strings.Join(f.Values, " ") + ")"
			case flagFile:
				action = ":file:_files -g '(" + strings.ReplaceAll(f.FileGlob, ",", "|") + ")'"
			case flagDir:
				action = ":directory:_files -/"
			case flagString, flagInt:
				action = ":value:"
			}
			desc := zshEscape(f.Desc)
			if f.Short != "" {
				fmt.Fprintf(&b, "            '(-%s --%s)'{-%s,--%s}'[%s]%s' \\\n", f.Short, f.Long, f.Short, f.Long, desc, action)
			} else {
				fmt.Fprintf(&b, "            '--%s[%s]%s' \\\n", f.Long, desc, action)
			}
		}
		if c.FilePattern != "" {
			fmt.Fprintf(&b, "            '*:input:_files -g \"(%s)\"'\n", strings.ReplaceAll(c.FilePattern, ",", "|"))
		} else {
			b.WriteString("            && return\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _hmarkdown hmarkdown\n")
	return b.String()
}

// fishEscape escapes single quotes for fish strings.
func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

func fishScript(cmds []commandDef) string {
	var b strings.Builder
	names := commandNames(cmds)

	b.WriteString("# fish completion for hmarkdown\n\n")
	b.WriteString("function __fish_hmarkdown_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_hmarkdown_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c hmarkdown -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c hmarkdown -n __fish_hmarkdown_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("-n '__fish_hmarkdown_using_command %s'", c.Name)
		switch c.Name {
		case cmdCompletion:
			fmt.Fprintf(&b, "complete -c hmarkdown %s -a 'bash zsh fish'\n", cond)
			continue
		case cmdHelp:
			fmt.Fprintf(&b, "complete -c hmarkdown %s -a '%s'\n", cond, names)
			continue
		}

		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c hmarkdown %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += fmt.Sprintf(" -r -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -r -a '(__fish_complete_directories)'"
			case flagString, flagInt:
				line += " -r"
			}
			line += fmt.Sprintf(" -d '%s'", fishEscape(f.Desc))
			b.WriteString(line + "\n")
		}
		if c.FilePattern != "" {
			var exts []string
			for _, g := range globs(c.FilePattern) {
				exts = append(exts, strings.TrimPrefix(g, "*"))
			}
			fmt.Fprintf(&b, "complete -c hmarkdown %s -k -a '(__fish_complete_suffix %s)'\n", cond, strings.Join(exts, " "))
		}
	}
	return b.String()
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hmarkdown completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(hmarkdown completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(hmarkdown completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    hmarkdown completion fish > ~/.config/fish/completions/hmarkdown.fish")
}
