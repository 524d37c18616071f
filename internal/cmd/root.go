package cmd

import (
	"github.com/hironow/msgtrans"
	"github.com/spf13/cobra"
)

func init() {
	cobra.EnableTraverseRunHooks = true
}

// NewRootCommand creates and returns the root cobra command for msgtrans.
// Exported for testability (SetArgs/SetOut) and docgen.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "msgtrans",
		Short: "Translation type generator for Go message interfaces",
		Long: `msgtrans generates locale-specific implementations of message
bundle and logger interfaces from .properties translation files.`,
		Version: Version,
		// Silence usage on RunE errors (cobra prints usage by default on error)
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lang, _ := cmd.Flags().GetString("lang")
			if lang == "ja" || lang == "en" || lang == "fr" {
				msgtrans.Lang = lang
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format: text, json")
	rootCmd.PersistentFlags().StringP("lang", "l", "en", "Output language: en, ja, fr")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Project config file (default <root>/"+msgtrans.ConfigFileName+")")

	rootCmd.AddCommand(
		newGenerateCommand(),
		newCheckCommand(),
		newSkeletonCommand(),
		newInitCommand(),
		newDoctorCommand(),
		newVersionCommand(),
		newUpdateCommand(),
	)

	return rootCmd
}
