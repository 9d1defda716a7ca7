package cmd

import (
	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	var manifestOnly bool

	cmd := &cobra.Command{
		Use:   "preview <response-file>",
		Short: "Print the Expo Snack bundle for a response",
		Long: `The 'preview' subcommand prints the bundle the preview sandbox consumes: every file tagged CODE
or ASSET, and the normalized dependencies wrapped as {version}. Use --manifest for the bare preview manifest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDependencies, err := handleRootCommand(cmd)
			if err != nil {
				return err
			}

			result, err := loadProject(cmd, rootDependencies, args[0])
			if err != nil {
				return err
			}

			format := rootDependencies.Config.OutputFormat
			if format == "text" {
				format = "json"
			}
			if manifestOnly {
				return writeStructured(cmd.OutOrStdout(), format, result.Preview)
			}
			return writeStructured(cmd.OutOrStdout(), format, result.Preview.Snack(rootDependencies.snackMeta()))
		},
	}

	cmd.Flags().BoolVar(&manifestOnly, "manifest", false, "Print the preview manifest instead of the Snack bundle")
	return cmd
}
