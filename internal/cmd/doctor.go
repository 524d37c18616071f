package cmd

import (
	"errors"
	"fmt"

	"github.com/hironow/msgtrans"
	"github.com/spf13/cobra"
)

func newDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [root]",
		Short: "Check the toolchain and project setup",
		Long: `Check that the environment can build what msgtrans generates.

Verifies: the go toolchain (required), gofmt (optional), the go.mod
that gives root its import path, the project config, and the
configured translation root.`,
		Example: `  # Check the current module
  msgtrans doctor

  # Machine-readable output
  msgtrans doctor -o json ./service`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, args []string) error {
	outputFmt, _ := cmd.Flags().GetString("output")
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	checks := msgtrans.RunDoctor(cmd.Context(), root)
	ok := msgtrans.DoctorOK(checks)

	if outputFmt == "json" {
		out, err := msgtrans.FormatDoctorJSON(checks)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		if !ok {
			return errors.New("some required checks failed")
		}
		return nil
	}

	// text output
	w := cmd.ErrOrStderr()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s╔══════════════════════════════════════════════╗%s\n", msgtrans.ColorCyan, msgtrans.ColorReset)
	fmt.Fprintf(w, "%s║          msgtrans doctor                     ║%s\n", msgtrans.ColorCyan, msgtrans.ColorReset)
	fmt.Fprintf(w, "%s╚══════════════════════════════════════════════╝%s\n", msgtrans.ColorCyan, msgtrans.ColorReset)
	fmt.Fprintln(w)

	for _, c := range checks {
		if c.OK {
			detail := c.Version
			if detail == "" {
				detail = c.Detail
			}
			fmt.Fprintf(w, "  %s✓%s  %-16s %s (%s)\n", msgtrans.ColorGreen, msgtrans.ColorReset, c.Name, detail, c.Path)
			continue
		}
		color := msgtrans.ColorRed
		label := "MISSING (required)"
		if !c.Required {
			label = "not found (optional)"
			color = msgtrans.ColorYellow
		}
		if c.Detail != "" {
			label += ": " + c.Detail
		}
		fmt.Fprintf(w, "  %s✗%s  %-16s %s\n", color, msgtrans.ColorReset, c.Name, label)
	}
	fmt.Fprintln(w)

	if !ok {
		return errors.New("some required checks failed. Fix them and try again")
	}
	fmt.Fprintln(w, "All checks passed.")
	return nil
}
