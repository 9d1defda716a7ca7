package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/meysamhadeli/snackforge/constants/lipgloss"
	"github.com/meysamhadeli/snackforge/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExportCmd() *cobra.Command {
	var out string
	var force bool
	var ignoreFile string

	cmd := &cobra.Command{
		Use:   "export <response-file>",
		Short: "Write the generated project into a zip archive",
		Long: `The 'export' subcommand writes every generated file into a zip archive, in path order.
Paths matching the patterns in the ignore file are left out, as are node_modules, .git and .expo.`,
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

			patterns, err := utils.GetIgnorePatterns(ignoreFile)
			if err != nil {
				return err
			}

			if _, err := os.Stat(out); err == nil && !force {
				accepted, err := utils.ConfirmPrompt(cmd.OutOrStdout(), fmt.Sprintf("%s already exists. Overwrite?", out), bufio.NewReader(cmd.InOrStdin()))
				if err != nil {
					return err
				}
				if !accepted {
					fmt.Fprintln(cmd.OutOrStdout(), lipgloss.Yellow.Render("Export cancelled."))
					return nil
				}
			}

			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}

			written, err := utils.WriteArchive(file, result.Files, patterns)
			if closeErr := file.Close(); err == nil && closeErr != nil {
				err = fmt.Errorf("failed to close %s: %w", out, closeErr)
			}
			if err != nil {
				_ = os.Remove(out)
				return err
			}

			rootDependencies.Logger.Debug("archive written",
				zap.String("generation", result.GenerationID),
				zap.String("out", out),
				zap.Int("files", len(written)),
				zap.Int("skipped", len(result.Files)-len(written)))

			fmt.Fprintln(cmd.OutOrStdout(), lipgloss.Green.Render(fmt.Sprintf("✓ Wrote %d files to %s", len(written), out)))
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", utils.DefaultArchiveName, "Path of the zip archive to write")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing archive without confirmation")
	cmd.Flags().StringVar(&ignoreFile, "ignore", ".snackignore", "File with gitignore-style patterns of paths to leave out")
	return cmd
}
