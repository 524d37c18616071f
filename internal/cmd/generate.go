package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hironow/msgtrans"
	"github.com/spf13/cobra"
)

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [root]",
		Short: "Generate translated types for message interfaces",
		Long: `Scan root (default: the current directory) for message bundle and
logger interfaces and generate, next to each interface, its default
implementation, one type per translation file and a locale lookup.

Missing intermediate locales are synthesized so that every translation
falls back through its parent locales to the default messages.`,
		Example: `  # Generate for the current module
  msgtrans generate

  # Show what would be written, without writing
  msgtrans generate --dry-run -v ./pkg

  # Regenerate whenever an interface or translation file changes
  msgtrans generate --watch

  # Get a desktop notification when a watch pass fails
  msgtrans generate --watch --notify`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerate,
	}

	addPassFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "Render and validate without writing files")
	cmd.Flags().Bool("no-index", false, "Do not generate the per-interface locale lookup")
	cmd.Flags().Bool("watch", false, "Regenerate on changes until interrupted")
	cmd.Flags().Bool("notify", false, "With --watch, send a desktop notification when a pass fails")
	cmd.Flags().String("notify-cmd", "", "With --watch, run this shell command when a pass fails ({title}, {message})")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	outputFmt, _ := cmd.Flags().GetString("output")
	watch, _ := cmd.Flags().GetBool("watch")
	notifier := msgtrans.Notifier(&msgtrans.NopNotifier{})
	if watch {
		desktop, _ := cmd.Flags().GetBool("notify")
		notifyCmd, _ := cmd.Flags().GetString("notify-cmd")
		notifier = msgtrans.NewNotifier(notifyCmd, desktop)
	}

	shutdown := initTelemetry()
	defer shutdown()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	msgtrans.LogInfo(msgtrans.Msg("scanning"), cfg.Root)
	if cfg.TranslationRoot != "" {
		msgtrans.LogInfo(msgtrans.Msg("translations"), cfg.TranslationRoot)
	}
	if cfg.DryRun {
		msgtrans.LogWarn("%s", msgtrans.Msg("dry_run"))
	}

	if err := generatePass(ctx, cmd.OutOrStdout(), cfg, outputFmt, notifier); err != nil && !watch {
		return err
	}
	if !watch {
		return nil
	}

	dirs, err := msgtrans.WatchDirs(cfg)
	if err != nil {
		return err
	}
	msgtrans.LogInfo(msgtrans.Msg("watching"), len(dirs))
	return msgtrans.Watch(ctx, dirs, msgtrans.DefaultDebounce, func(changed []string) {
		msgtrans.LogInfo(msgtrans.Msg("change_detected"), strings.Join(changed, ", "))
		if err := generatePass(ctx, cmd.OutOrStdout(), cfg, outputFmt, notifier); err != nil && !errors.Is(err, context.Canceled) {
			msgtrans.LogError(msgtrans.Msg("pass_failed"), err)
		}
	}, nil)
}

// generatePass runs one pass and prints its report. A pass that reported
// error diagnostics is announced through n and returns an ExitError with code 2.
func generatePass(ctx context.Context, w io.Writer, cfg msgtrans.Config, outputFmt string, n msgtrans.Notifier) error {
	emitter := &msgtrans.GoEmitter{DryRun: cfg.DryRun}
	report, err := msgtrans.Generate(ctx, cfg, emitter)
	if err != nil {
		return err
	}
	if err := printReport(w, report, cfg.Verbose, outputFmt); err != nil {
		return err
	}
	if len(report.Interfaces) == 0 {
		msgtrans.LogWarn("%s", msgtrans.Msg("no_interfaces"))
	}
	if cfg.Verbose {
		for _, p := range report.Written {
			msgtrans.LogNote("%s", p)
		}
	}
	msgtrans.LogOK(msgtrans.Msg("written"), len(report.Written))
	if len(report.Removed) > 0 {
		if cfg.Verbose {
			for _, p := range report.Removed {
				msgtrans.LogNote("%s", p)
			}
		}
		msgtrans.LogOK(msgtrans.Msg("removed"), len(report.Removed))
	}
	if errs := report.Count(msgtrans.SeverityError); errs > 0 {
		if err := msgtrans.NotifyReport(ctx, n, report); err != nil {
			msgtrans.LogWarn("notify: %v", err)
		}
		return diagnosticsError(fmt.Errorf("%d error(s) during generation", errs))
	}
	return nil
}

func printReport(w io.Writer, report *msgtrans.Report, verbose bool, outputFmt string) error {
	if outputFmt == "json" {
		out, err := msgtrans.FormatReportJSON(report)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
		return nil
	}
	msgtrans.LogDiagnostics(report.Diagnostics, verbose)
	msgtrans.PrintReport(w, report, verbose)
	return nil
}

// initTelemetry starts tracing and metrics and returns their flush.
func initTelemetry() func() {
	shutdownTracer := msgtrans.InitTracer("msgtrans", Version)
	shutdownMeter := msgtrans.InitMeter("msgtrans", Version)
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownTracer(shutdownCtx)
		shutdownMeter(shutdownCtx)
	}
}
