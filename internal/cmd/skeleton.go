package cmd

import (
	"fmt"

	"github.com/hironow/msgtrans"
	"github.com/spf13/cobra"
)

func newSkeletonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skeleton [root]",
		Short: "Write translation skeleton files",
		Long: `Write, for each message interface under root, a properties file
listing every translation key with its default message.

Skeletons are named <Interface>` + msgtrans.GeneratedSuffix + ` and are
ignored by generation until renamed to a real locale.`,
		Example: `  # Skeletons for every interface
  msgtrans skeleton

  # One interface, into a separate directory
  msgtrans skeleton --interface Messages --dir ./i18n`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSkeleton,
	}

	cmd.Flags().String("encoding", "", "Skeleton encoding: utf-8, iso-8859-1 (default utf-8)")
	cmd.Flags().StringP("interface", "i", "", "Only this interface (name or import path qualified name)")
	cmd.Flags().String("dir", "", "Output directory (default: translation root or package directory)")

	return cmd
}

func runSkeleton(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	only, _ := cmd.Flags().GetString("interface")
	dir, _ := cmd.Flags().GetString("dir")

	diags := msgtrans.NewDiagnostics()
	ifaces, err := msgtrans.ScanTree(cmd.Context(), cfg.Root, cfg.Workers, diags)
	if err != nil {
		return err
	}
	msgtrans.LogDiagnostics(diags.Drain(), cfg.Verbose)

	disc := msgtrans.NewDiscovery(cfg.TranslationRoot)
	n := 0
	for _, iface := range ifaces {
		if only != "" && only != iface.Name && only != iface.QualifiedName() {
			continue
		}
		out := dir
		if out == "" {
			out = disc.Dir(iface)
		}
		path, err := msgtrans.WriteSkeleton(iface, out, cfg.Encoding)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		msgtrans.LogOK(msgtrans.Msg("skeleton_written"), path)
		n++
	}
	if n == 0 && only != "" {
		return fmt.Errorf(msgtrans.Msg("skeleton_none"), only)
	}
	return nil
}
