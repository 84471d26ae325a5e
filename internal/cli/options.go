package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/mqmods/internal/config"
	"github.com/vvka-141/mqmods/internal/tui"
)

// resolveOptions merges the option layers.
// Priority (highest to lowest): flags and positional argument > parameter file > environment
func resolveOptions(cmd *cobra.Command, args []string, lookupEnv func(string) (string, bool)) (config.Options, error) {
	envOpts, err := config.FromEnv(lookupEnv)
	if err != nil {
		return config.Options{}, err
	}
	opts := envOpts

	if rootFlags.paramFile != "" {
		fileOpts, err := config.Load(rootFlags.paramFile)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return config.Options{}, fmt.Errorf("%w\n\nTip: create one with:\n  mqmods --create-param-file=%s", err, rootFlags.paramFile)
			}
			return config.Options{}, err
		}
		opts = opts.Overlay(*fileOpts)
	}

	return opts.Overlay(flagOptions(cmd, args)), nil
}

// flagOptions collects the options given explicitly on the command line.
func flagOptions(cmd *cobra.Command, args []string) config.Options {
	var opts config.Options
	flags := cmd.Flags()

	if len(args) > 0 {
		opts.InputFilePath = strings.TrimSpace(args[0])
	} else if flags.Changed("input") {
		opts.InputFilePath = strings.TrimSpace(rootFlags.input)
	}
	if flags.Changed("update") {
		opts.UpdateParameters = config.Bool(rootFlags.update)
	}
	if flags.Changed("dedup-first-search") {
		opts.DedupFirstSearch = config.Bool(rootFlags.dedupFirstSearch)
	}
	if flags.Changed("verbose") {
		opts.Verbose = config.Bool(getVerboseFlag(cmd))
	}
	if flags.Changed("log-file") {
		opts.LogFile = rootFlags.logFile
	}
	return opts
}

// writeParamFileTemplate writes the template to path, or to w when path is "-".
func writeParamFileTemplate(w io.Writer, opts config.Options, path string) error {
	if path == "" || path == "-" {
		return config.WriteTemplate(w, opts)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parameter file %s: %w", path, err)
	}
	if err := config.WriteTemplate(f, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write parameter file %s: %w", path, err)
	}

	fmt.Fprintf(w, "Created parameter file %s\n", path)
	return nil
}

// writerColorEnabled reports whether w is a terminal that accepts colors.
func writerColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return tui.ColorEnabled(f)
}
