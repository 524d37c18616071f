package cmd

import (
	"fmt"

	"github.com/hironow/msgtrans"
	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [root]",
		Short: "Validate translation files without generating",
		Long: `Run a full pass over root without writing anything and report
orphan keys, blank values, unreadable files and malformed interfaces.

Exits non-zero when errors are found, or with --strict, when warnings
are found.`,
		Example: `  # Validate the current module
  msgtrans check

  # Fail CI on warnings too
  msgtrans check --strict -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}

	addPassFlags(cmd)
	cmd.Flags().Bool("strict", false, "Treat warnings as failures")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	outputFmt, _ := cmd.Flags().GetString("output")
	strict, _ := cmd.Flags().GetBool("strict")

	shutdown := initTelemetry()
	defer shutdown()

	report, err := msgtrans.Check(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if err := printReport(cmd.OutOrStdout(), report, cfg.Verbose, outputFmt); err != nil {
		return err
	}

	errs := report.Count(msgtrans.SeverityError)
	warns := report.Count(msgtrans.SeverityWarning)
	if errs > 0 || (strict && warns > 0) {
		return diagnosticsError(fmt.Errorf(msgtrans.Msg("check_failed"), errs, warns))
	}
	msgtrans.LogOK("%s", msgtrans.Msg("check_ok"))
	return nil
}
