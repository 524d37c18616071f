package cmd

import (
	"fmt"

	"github.com/hironow/msgtrans"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [root]",
		Short: "Initialize project configuration",
		Long: `Write ` + msgtrans.ConfigFileName + ` at root (default: the current directory).

Asks for the translation root, the translation file encoding,
the number of workers and whether to generate locale lookups.
Unanswered prompts keep the defaults.`,
		Example: `  # Initialize the current module
  msgtrans init

  # Initialize and then generate
  msgtrans init ./service && msgtrans generate ./service`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	w := cmd.ErrOrStderr()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s╔══════════════════════════════════════════════╗%s\n", msgtrans.ColorCyan, msgtrans.ColorReset)
	fmt.Fprintf(w, "%s║          msgtrans init                       ║%s\n", msgtrans.ColorCyan, msgtrans.ColorReset)
	fmt.Fprintf(w, "%s╚══════════════════════════════════════════════╝%s\n", msgtrans.ColorCyan, msgtrans.ColorReset)
	fmt.Fprintln(w)

	path, err := msgtrans.RunInitWithReader(root, cmd.InOrStdin(), w)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nConfig saved to %s\n", path)
	return nil
}
