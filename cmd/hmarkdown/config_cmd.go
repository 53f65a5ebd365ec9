package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// runConfigCmd prints the effective configuration as YAML: the config file
// (if any) with HMARKDOWN_* overrides applied on top of the defaults.
func runConfigCmd(args []string, env *Environment) error {
	flags, positional, err := parseCommonFlags(cmdConfig, args, env.Stderr, printConfigUsage)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: config takes no arguments", ErrUsage)
	}

	cfg, err := loadEffectiveConfig(flags.config, loadEnvConfig(), env.Stderr, flags.quiet)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}
