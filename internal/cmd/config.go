package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/hironow/msgtrans"
	"github.com/spf13/cobra"
)

// addPassFlags registers the flags shared by commands that run a pass.
func addPassFlags(cmd *cobra.Command) {
	cmd.Flags().String("translation-root", "", "Directory holding translation files (default: package directories)")
	cmd.Flags().String("encoding", "", "Translation file encoding: utf-8, iso-8859-1 (default utf-8)")
	cmd.Flags().Int("workers", 0, "Interfaces processed in parallel (0 = number of CPUs)")
}

// resolveConfig builds the pass configuration from the optional root
// argument, the project config file and the command's flags. Flags win
// over the file.
func resolveConfig(cmd *cobra.Command, args []string) (msgtrans.Config, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return msgtrans.Config{}, fmt.Errorf("invalid path: %w", err)
	}

	cfg := msgtrans.Config{Root: abs, Index: true}
	cfg.Verbose, _ = cmd.Flags().GetBool("verbose")
	if f := cmd.Flags().Lookup("translation-root"); f != nil && f.Value.String() != "" {
		// Relative to the working directory, unlike the config file entry.
		if cfg.TranslationRoot, err = filepath.Abs(f.Value.String()); err != nil {
			return msgtrans.Config{}, fmt.Errorf("invalid translation root: %w", err)
		}
	}
	if f := cmd.Flags().Lookup("encoding"); f != nil {
		cfg.Encoding = f.Value.String()
	}
	if cmd.Flags().Lookup("workers") != nil {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Lookup("no-index") != nil {
		noIndex, _ := cmd.Flags().GetBool("no-index")
		cfg.Index = !noIndex
	}
	if cmd.Flags().Lookup("dry-run") != nil {
		cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = msgtrans.ProjectConfigPath(abs)
	}
	project, err := msgtrans.LoadProjectConfig(path)
	if err != nil {
		return msgtrans.Config{}, err
	}
	cfg.Apply(project)

	if err := cfg.Validate(); err != nil {
		return msgtrans.Config{}, err
	}
	return cfg, nil
}
