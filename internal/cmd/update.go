package cmd

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/hironow/msgtrans"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

func newUpdateCommand() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Self-update msgtrans to the latest release",
		Long: `Self-update msgtrans to the latest GitHub release.

Downloads the latest release, verifies it against checksums.txt and
replaces the running binary. Generated code does not depend on the
msgtrans version, so regenerating after an update is only needed to
pick up generator fixes. Use --check to only look for a newer release.`,
		Example: `  # Check for updates
  msgtrans update --check

  # Update to the latest version
  msgtrans update`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			updater, err := selfupdate.NewUpdater(selfupdate.Config{
				Validator: &selfupdate.ChecksumValidator{UniqueFilename: "checksums.txt"},
			})
			if err != nil {
				return fmt.Errorf("failed to create updater: %w", err)
			}

			latest, found, err := updater.DetectLatest(cmd.Context(), selfupdate.ParseSlug("hironow/msgtrans"))
			if err != nil {
				return fmt.Errorf("failed to detect latest version: %w", err)
			}
			w := cmd.OutOrStdout()
			if !found {
				fmt.Fprintln(w, msgtrans.Msg("update_none"))
				return nil
			}

			ver := strings.TrimPrefix(Version, "v")
			switch compareRelease(Version, latest.Version()) {
			case releaseUnknown:
				fmt.Fprintf(w, msgtrans.Msg("update_dev")+"\n", Version, latest.Version())
				return nil
			case releaseCurrent:
				fmt.Fprintf(w, msgtrans.Msg("update_current")+"\n", ver)
				return nil
			}

			if checkOnly {
				fmt.Fprintf(w, msgtrans.Msg("update_available")+"\n", ver, latest.Version())
				return nil
			}

			exe, err := selfupdate.ExecutablePath()
			if err != nil {
				return fmt.Errorf("failed to locate executable: %w", err)
			}

			if err := updater.UpdateTo(cmd.Context(), latest, exe); err != nil {
				return fmt.Errorf("update failed: %w", err)
			}

			fmt.Fprintf(w, msgtrans.Msg("updated")+"\n", latest.Version())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&checkOnly, "check", "C", false, "Check for updates without installing")

	return cmd
}

type releaseStatus int

const (
	// releaseUnknown: the running build is not a release, e.g. "dev".
	releaseUnknown releaseStatus = iota
	releaseCurrent
	releaseNewer
)

// compareRelease compares the running version with the latest release.
// Both may carry a "v" prefix. A build ahead of the latest release is current.
func compareRelease(current, latest string) releaseStatus {
	cur, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return releaseUnknown
	}
	rel, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return releaseUnknown
	}
	if rel.GreaterThan(cur) {
		return releaseNewer
	}
	return releaseCurrent
}
